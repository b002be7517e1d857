package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scanlog/scanlog/pkg/export"
	"github.com/scanlog/scanlog/pkg/models"
)

// ScanAPI is the backend the UI talks to. *client.Client satisfies it.
type ScanAPI interface {
	CreateScan(ctx context.Context, barcode string) (*models.Scan, error)
	ListScans(ctx context.Context, filter models.QueryFilter) ([]models.Scan, error)
	DeleteAllScans(ctx context.Context) (string, error)
}

// Messages produced by the commands below. Each carries enough to be
// matched against the model's current state when it arrives.
type (
	settleMsg struct {
		tag int
	}

	scanCreatedMsg struct {
		barcode string
		scan    *models.Scan
		err     error
	}

	scansLoadedMsg struct {
		seq   int
		scans []models.Scan
		err   error
	}

	scansClearedMsg struct {
		message string
		err     error
	}

	exportDoneMsg struct {
		path  string
		count int
		err   error
	}

	clipboardMsg struct {
		barcode string
		err     error
	}
)

func createScanCmd(api ScanAPI, barcode string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		scan, err := api.CreateScan(ctx, barcode)
		return scanCreatedMsg{barcode: barcode, scan: scan, err: err}
	}
}

func fetchScansCmd(api ScanAPI, filter models.QueryFilter, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		scans, err := api.ListScans(ctx, filter)
		return scansLoadedMsg{seq: seq, scans: scans, err: err}
	}
}

func deleteAllCmd(api ScanAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		message, err := api.DeleteAllScans(ctx)
		return scansClearedMsg{message: message, err: err}
	}
}

func exportCmd(dir string, scans []models.Scan, loc *time.Location) tea.Cmd {
	return func() tea.Msg {
		path, err := export.SaveXLSX(dir, scans, loc)
		return exportDoneMsg{path: path, count: len(scans), err: err}
	}
}

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

func clipboardCmd(barcode string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{barcode: barcode, err: copyToClipboard(barcode)}
	}
}
