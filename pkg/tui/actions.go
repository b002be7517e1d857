package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scanlog/scanlog/pkg/client"
	"github.com/scanlog/scanlog/pkg/export"
	"github.com/scanlog/scanlog/pkg/models"
)

// exportScans writes the loaded list to the export directory. Nothing is
// written when the list is empty.
func (a *App) exportScans() tea.Cmd {
	if len(a.scans) == 0 {
		return a.status.Set(StateInfo, "No data to export")
	}

	snapshot := make([]models.Scan, len(a.scans))
	copy(snapshot, a.scans)

	a.status.Set(StatePending, fmt.Sprintf("Exporting %d scans...", len(snapshot)))
	return exportCmd(a.exportDir, snapshot, a.loc)
}

func (a *App) handleExportDone(msg exportDoneMsg) tea.Cmd {
	if msg.err != nil {
		if errors.Is(msg.err, export.ErrNoScans) {
			return a.status.Set(StateInfo, "No data to export")
		}
		a.log.Error(context.Background(), "export failed", "error", msg.err)
		return a.status.Set(StateError, "Export failed: "+msg.err.Error())
	}
	a.log.Info(context.Background(), "scans exported", "path", msg.path, "count", msg.count)
	return a.status.Set(StateSuccess, fmt.Sprintf("Exported %d scans to %s", msg.count, msg.path))
}

// confirmClearAll asks before deleting. The request is only sent once "y"
// or "yes" has been typed and submitted with enter.
func (a *App) confirmClearAll() tea.Cmd {
	a.confirm.Show(ConfirmationConfig{
		Message:     "Delete ALL scan records? This cannot be undone.",
		Destructive: true,
	}, func() tea.Cmd {
		a.status.Set(StatePending, "Clearing records...")
		return deleteAllCmd(a.api, a.settings.RequestTimeout)
	}, nil)
	return nil
}

// handleScansCleared reports the outcome and refetches either way.
func (a *App) handleScansCleared(msg scansClearedMsg) tea.Cmd {
	var statusCmd tea.Cmd
	if msg.err != nil {
		a.log.Error(context.Background(), "clear scans failed", "error", msg.err)
		statusCmd = a.status.Set(StateError, client.Detail(msg.err, "Failed to clear records"))
	} else {
		a.log.Info(context.Background(), "scans cleared", "message", msg.message)
		message := msg.message
		if message == "" {
			message = "All records cleared"
		}
		statusCmd = a.status.Set(StateSuccess, message)
	}
	return tea.Batch(statusCmd, a.fetchScans())
}

// copySelected puts the highlighted barcode on the clipboard.
func (a *App) copySelected() tea.Cmd {
	scan, ok := a.table.Selected()
	if !ok {
		return a.status.Set(StateInfo, "Nothing selected to copy")
	}
	return clipboardCmd(scan.Barcode)
}

func (a *App) handleClipboard(msg clipboardMsg) tea.Cmd {
	if msg.err != nil {
		a.log.Warn(context.Background(), "clipboard write failed", "error", msg.err)
		return a.status.Set(StateError, "Failed to copy to clipboard: "+msg.err.Error())
	}
	return a.status.Set(StateSuccess, fmt.Sprintf("Copied %s to clipboard", msg.barcode))
}
