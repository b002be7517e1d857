package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scanlog/scanlog/internal/logging"
	"github.com/scanlog/scanlog/pkg/models"
	"github.com/scanlog/scanlog/pkg/tui/testhelpers"
)

const (
	testDebounce = 5 * time.Millisecond
	testTTL      = 5 * time.Millisecond
)

func testSettings(t *testing.T) *models.Settings {
	t.Helper()
	s := models.DefaultSettings()
	s.Debounce = testDebounce
	s.StatusTTL = testTTL
	s.RequestTimeout = time.Second
	s.ExportDir = t.TempDir()
	return s
}

// newTestApp builds a sized app with static cursors so key handling does
// not schedule blink ticks.
func newTestApp(t *testing.T, api *testhelpers.FakeAPI) *App {
	t.Helper()
	a := NewApp(api, testSettings(t), logging.Discard())
	a.loc = time.UTC
	a.table.loc = time.UTC
	a.scanInput.Cursor.SetMode(cursor.CursorStatic)
	for i := range a.filterForm.inputs {
		a.filterForm.inputs[i].Cursor.SetMode(cursor.CursorStatic)
	}
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a
}

// loadInitial runs the startup fetch so the app holds the backend's list.
func loadInitial(t *testing.T, a *App) {
	t.Helper()
	feed(a, a.fetchScans())
}

// drain runs cmd and every command batched inside it, returning the
// resulting messages. Ticks block for their duration.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed drains cmd and delivers the messages of type T back to the app,
// ignoring everything else. It does not follow the commands those
// messages return.
func feedOnly[T tea.Msg](a *App, cmd tea.Cmd) []tea.Cmd {
	var next []tea.Cmd
	for _, msg := range drain(cmd) {
		if _, ok := msg.(T); ok {
			_, c := a.Update(msg)
			next = append(next, c)
		}
	}
	return next
}

// feed delivers every message produced by cmd back to the app.
func feed(a *App, cmd tea.Cmd) []tea.Cmd {
	var next []tea.Cmd
	for _, msg := range drain(cmd) {
		_, c := a.Update(msg)
		next = append(next, c)
	}
	return next
}

func msgsOf[T tea.Msg](msgs []tea.Msg) []T {
	var out []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeScan enters s into the scan field one rune at a time and returns the
// debounce command of the last keystroke.
func typeScan(a *App, s string) tea.Cmd {
	var last tea.Cmd
	for _, r := range s {
		_, last = a.Update(keyRunes(string(r)))
	}
	return last
}

// settleNow delivers the current debounce tick without waiting for it.
func settleNow(a *App) tea.Cmd {
	_, cmd := a.Update(settleMsg{tag: a.debounceTag})
	return cmd
}
