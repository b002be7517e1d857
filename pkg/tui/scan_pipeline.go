package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scanlog/scanlog/pkg/client"
)

const genericCreateError = "Failed to record scan"

// updateScanInput feeds a key to the scan field and restarts the debounce
// window whenever the text changed.
func (a *App) updateScanInput(msg tea.KeyMsg) tea.Cmd {
	before := a.scanInput.Value()

	var cmd tea.Cmd
	a.scanInput, cmd = a.scanInput.Update(msg)

	if a.scanInput.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, a.scheduleSettle())
}

// scheduleSettle starts a new debounce window. Earlier windows are
// cancelled implicitly: their tag no longer matches debounceTag.
func (a *App) scheduleSettle() tea.Cmd {
	a.debounceTag++
	tag := a.debounceTag
	return tea.Tick(a.settings.Debounce, func(time.Time) tea.Msg {
		return settleMsg{tag: tag}
	})
}

// handleSettle runs when a debounce window elapses. The value is read from
// the input now, not when the window was scheduled.
func (a *App) handleSettle(msg settleMsg) tea.Cmd {
	if msg.tag != a.debounceTag {
		return nil
	}
	value := a.scanInput.Value()
	if value == a.settled {
		return nil
	}
	a.settled = value
	return a.submitSettled(value)
}

// submitSettled applies the duplicate check, then the in-flight guard, and
// issues at most one create request.
func (a *App) submitSettled(value string) tea.Cmd {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	if a.isDuplicate(value) {
		a.log.Debug(context.Background(), "duplicate scan ignored", "barcode", value)
		a.clearScanInput()
		return a.status.Set(StateInfo, fmt.Sprintf("Duplicate: %s is already in the list", value))
	}

	if a.inFlight || a.submitting == value {
		a.log.Debug(context.Background(), "scan rejected while request in flight", "barcode", value, "in_flight", a.submitting)
		return nil
	}

	a.inFlight = true
	a.submitting = value
	a.status.Set(StatePending, fmt.Sprintf("Recording %s...", value))
	return createScanCmd(a.api, value, a.settings.RequestTimeout)
}

// isDuplicate checks the loaded snapshot. The snapshot may lag behind the
// server; the check is best effort.
func (a *App) isDuplicate(value string) bool {
	for _, s := range a.scans {
		if s.Barcode == value {
			return true
		}
	}
	return false
}

func (a *App) handleScanCreated(msg scanCreatedMsg) tea.Cmd {
	// A completion for an older value must not unlock a newer submission.
	if a.submitting == msg.barcode {
		a.inFlight = false
		a.submitting = ""
	}

	if msg.err != nil {
		a.log.Warn(context.Background(), "create scan failed", "barcode", msg.barcode, "error", msg.err)
		// Keep the text for correction, but let the same value settle again
		// so a rescan retries.
		if a.settled == msg.barcode {
			a.settled = ""
		}
		return a.status.Set(StateError, "Error: "+client.Detail(msg.err, genericCreateError))
	}

	a.log.Info(context.Background(), "scan recorded", "barcode", msg.barcode)
	a.clearScanInput()
	return tea.Batch(
		a.status.Set(StateSuccess, fmt.Sprintf("Recorded %s", msg.barcode)),
		a.fetchScans(),
	)
}

// clearScanInput empties the field, cancels any pending debounce window
// and returns focus to it so the next scan lands there.
func (a *App) clearScanInput() {
	a.scanInput.Reset()
	a.settled = ""
	a.debounceTag++
	if a.focus != focusScan {
		a.setFocus(focusScan)
	}
}
