package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scanlog/scanlog/internal/logging"
	"github.com/scanlog/scanlog/pkg/models"
)

type focusArea int

const (
	focusScan focusArea = iota
	focusFilterStart
	focusFilterEnd
	focusFilterBarcode
	focusTable
	focusAreaCount
)

// App is the single-screen scanning UI. All fields are owned by the
// bubbletea event loop; commands only report back through messages.
type App struct {
	api       ScanAPI
	log       logging.Logger
	settings  *models.Settings
	loc       *time.Location
	exportDir string

	// submission pipeline
	scanInput   textinput.Model
	settled     string
	debounceTag int
	inFlight    bool
	submitting  string

	// list view
	filterForm   *FilterForm
	activeFilter models.QueryFilter
	scans        []models.Scan
	loading      bool
	loadErr      error
	fetchSeq     int
	table        *ScanTable

	status  *StatusLine
	confirm *ConfirmationModel
	focus   focusArea
	width   int
	height  int
}

// NewApp builds the UI around api using the resolved settings.
func NewApp(api ScanAPI, settings *models.Settings, log logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = "Scan or type a barcode..."
	ti.Prompt = "▸ "
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return &App{
		api:          api,
		log:          log,
		settings:     settings,
		loc:          time.Local,
		exportDir:    settings.ExportDir,
		scanInput:    ti,
		filterForm:   NewFilterForm(),
		activeFilter: models.QueryFilter{Limit: settings.PageSize},
		table:        NewScanTable(time.Local),
		status:       NewStatusLine(settings.StatusTTL),
		confirm:      NewConfirmation(),
		focus:        focusScan,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.fetchScans())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case settleMsg:
		return a, a.handleSettle(msg)

	case scanCreatedMsg:
		return a, a.handleScanCreated(msg)

	case scansLoadedMsg:
		a.handleScansLoaded(msg)
		return a, nil

	case scansClearedMsg:
		return a, a.handleScansCleared(msg)

	case exportDoneMsg:
		return a, a.handleExportDone(msg)

	case clipboardMsg:
		return a, a.handleClipboard(msg)

	case clearStatusMsg:
		a.status.Expire(msg)
		return a, nil
	}

	// Cursor blink and other component messages.
	var cmd tea.Cmd
	a.scanInput, cmd = a.scanInput.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.confirm.Active() {
		return a.confirm.Update(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		return a.setFocus((a.focus + 1) % focusAreaCount)
	case "shift+tab":
		return a.setFocus((a.focus + focusAreaCount - 1) % focusAreaCount)
	case "esc":
		return a.setFocus(focusScan)
	case "ctrl+r":
		return a.submitSearch()
	case "ctrl+e":
		return a.exportScans()
	case "ctrl+x":
		return a.confirmClearAll()
	case "ctrl+y":
		return a.copySelected()
	}

	switch a.focus {
	case focusScan:
		return a.updateScanInput(msg)
	case focusFilterStart, focusFilterEnd, focusFilterBarcode:
		if msg.Type == tea.KeyEnter {
			return a.submitSearch()
		}
		return a.filterForm.Update(a.focusedFilterField(), msg)
	case focusTable:
		return a.table.Update(msg)
	}
	return nil
}

func (a *App) focusedFilterField() filterField {
	return filterField(a.focus - focusFilterStart)
}

func (a *App) setFocus(f focusArea) tea.Cmd {
	a.focus = f
	a.scanInput.Blur()
	a.filterForm.Blur()
	a.table.Blur()

	switch f {
	case focusScan:
		return a.scanInput.Focus()
	case focusFilterStart, focusFilterEnd, focusFilterBarcode:
		return a.filterForm.Focus(a.focusedFilterField())
	case focusTable:
		a.table.Focus()
	}
	return nil
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.scanInput.Width = width - 10
	a.filterForm.SetWidth(width)
	// title, scan box, status, filters, help and borders take ~14 rows
	a.table.SetSize(width, height-14)
}

// fetchScans requests the list for the active filter. Only the response to
// the latest request is applied.
func (a *App) fetchScans() tea.Cmd {
	a.fetchSeq++
	a.loading = true
	return fetchScansCmd(a.api, a.activeFilter, a.fetchSeq, a.settings.RequestTimeout)
}

// submitSearch rebuilds the filter from the form and refetches.
func (a *App) submitSearch() tea.Cmd {
	filter, err := a.filterForm.Build(a.settings.PageSize, a.loc)
	if err != nil {
		return a.status.Set(StateError, err.Error())
	}
	a.activeFilter = filter
	return a.fetchScans()
}

func (a *App) handleScansLoaded(msg scansLoadedMsg) {
	if msg.seq != a.fetchSeq {
		return
	}
	a.loading = false
	if msg.err != nil {
		a.loadErr = msg.err
		a.log.Warn(context.Background(), "list scans failed", "error", msg.err)
		return
	}
	a.loadErr = nil
	a.scans = msg.scans
	a.table.SetScans(msg.scans)
}

// Scans returns the currently loaded snapshot.
func (a *App) Scans() []models.Scan {
	return a.scans
}

// Status returns the current status line.
func (a *App) Status() Status {
	return a.status.Current()
}
