package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SubmissionState is the lifecycle of the status line.
type SubmissionState int

const (
	StateIdle SubmissionState = iota
	StatePending
	StateSuccess
	StateError
	StateInfo
)

func (s SubmissionState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	case StateInfo:
		return "info"
	default:
		return "idle"
	}
}

// Icon is the glyph shown in front of the status message.
func (s SubmissionState) Icon() string {
	switch s {
	case StatePending:
		return "…"
	case StateSuccess:
		return "✓"
	case StateError:
		return "×"
	case StateInfo:
		return "ℹ"
	default:
		return ""
	}
}

// Status is the current status line.
type Status struct {
	State   SubmissionState
	Message string
}

// clearStatusMsg expires the status set at generation seq. A newer status
// has a higher seq and survives older clears.
type clearStatusMsg struct {
	seq int
}

// StatusLine owns the status and its expiry timers.
type StatusLine struct {
	current Status
	seq     int
	ttl     time.Duration
}

// NewStatusLine creates an idle status line whose settled messages expire
// after ttl.
func NewStatusLine(ttl time.Duration) *StatusLine {
	return &StatusLine{ttl: ttl}
}

// Set replaces the status. Pending statuses never expire on their own;
// every other state schedules a clear.
func (s *StatusLine) Set(state SubmissionState, message string) tea.Cmd {
	s.seq++
	s.current = Status{State: state, Message: message}
	if state == StatePending || state == StateIdle {
		return nil
	}
	seq := s.seq
	return tea.Tick(s.ttl, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// Expire handles a clearStatusMsg and reports whether the status changed.
func (s *StatusLine) Expire(msg clearStatusMsg) bool {
	if msg.seq != s.seq || s.current.State == StatePending {
		return false
	}
	s.current = Status{}
	return true
}

// Current returns the status being shown.
func (s *StatusLine) Current() Status {
	return s.current
}

// View renders the status line, or "" when idle.
func (s *StatusLine) View() string {
	if s.current.State == StateIdle {
		return ""
	}
	return statusStyle(s.current.State).Render(s.current.State.Icon() + " " + s.current.Message)
}
