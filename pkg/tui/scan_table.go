package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/scanlog/scanlog/pkg/models"
)

// DisplayTimeLayout is how scan times are shown in the table.
const DisplayTimeLayout = "2006-01-02 15:04:05"

const (
	idColumnWidth   = 8
	timeColumnWidth = 19
	minBarcodeWidth = 12
)

// ScanTable renders the loaded scans.
type ScanTable struct {
	table        table.Model
	scans        []models.Scan
	loc          *time.Location
	barcodeWidth int
}

// NewScanTable creates an empty table rendering times in loc.
func NewScanTable(loc *time.Location) *ScanTable {
	st := &ScanTable{loc: loc, barcodeWidth: 30}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorInactive)).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(ColorActive)).
		Background(lipgloss.Color(ColorSelected)).
		Bold(true)

	st.table = table.New(
		table.WithColumns(st.columns()),
		table.WithHeight(10),
		table.WithStyles(styles),
	)
	return st
}

func (st *ScanTable) columns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: idColumnWidth},
		{Title: "Barcode", Width: st.barcodeWidth},
		{Title: "Scanned At", Width: timeColumnWidth},
	}
}

// SetScans replaces the rows.
func (st *ScanTable) SetScans(scans []models.Scan) {
	st.scans = scans
	st.table.SetRows(st.rows())
	if st.table.Cursor() >= len(scans) {
		st.table.SetCursor(0)
	}
}

func (st *ScanTable) rows() []table.Row {
	rows := make([]table.Row, 0, len(st.scans))
	for _, s := range st.scans {
		rows = append(rows, table.Row{
			strconv.FormatInt(s.ID, 10),
			truncate.StringWithTail(s.Barcode, uint(st.barcodeWidth), "…"),
			s.ScannedAt.In(st.loc).Format(DisplayTimeLayout),
		})
	}
	return rows
}

// SetSize fits the table into width x height cells.
func (st *ScanTable) SetSize(width, height int) {
	st.barcodeWidth = width - idColumnWidth - timeColumnWidth - 8
	if st.barcodeWidth < minBarcodeWidth {
		st.barcodeWidth = minBarcodeWidth
	}
	st.table.SetColumns(st.columns())
	st.table.SetRows(st.rows())
	if height < 3 {
		height = 3
	}
	st.table.SetHeight(height)
}

// Focus lets the table take navigation keys.
func (st *ScanTable) Focus() { st.table.Focus() }

// Blur stops the table from taking keys.
func (st *ScanTable) Blur() { st.table.Blur() }

// Update forwards navigation keys.
func (st *ScanTable) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	st.table, cmd = st.table.Update(msg)
	return cmd
}

// Selected returns the highlighted scan.
func (st *ScanTable) Selected() (models.Scan, bool) {
	i := st.table.Cursor()
	if i < 0 || i >= len(st.scans) {
		return models.Scan{}, false
	}
	return st.scans[i], true
}

// View renders the table.
func (st *ScanTable) View() string {
	return st.table.View()
}
