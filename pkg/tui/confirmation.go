package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Message     string // Main confirmation message
	Destructive bool   // If true, the prompt is rendered in red
}

// ConfirmationModel handles typed y/n confirmation prompts. The answer is
// a line: it only takes effect on enter, and only "y" or "yes" confirms.
// Every key is consumed while the prompt is shown, so a scanner burst
// (runes then enter) reads as a non-matching answer and cancels.
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	answer    []rune
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.answer = nil
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Answer returns what has been typed so far.
func (m *ConfirmationModel) Answer() string {
	return string(m.answer)
}

// Update handles key events for the confirmation.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return m.finish(false)

	case tea.KeyEnter:
		switch strings.ToLower(strings.TrimSpace(string(m.answer))) {
		case "y", "yes":
			return m.finish(true)
		default:
			return m.finish(false)
		}

	case tea.KeyBackspace:
		if len(m.answer) > 0 {
			m.answer = m.answer[:len(m.answer)-1]
		}

	case tea.KeyRunes, tea.KeySpace:
		m.answer = append(m.answer, msg.Runes...)
	}

	return nil
}

func (m *ConfirmationModel) finish(confirmed bool) tea.Cmd {
	m.active = false
	m.answer = nil
	cb := m.onCancel
	if confirmed {
		cb = m.onConfirm
	}
	if cb != nil {
		return cb()
	}
	return nil
}

// View renders the inline prompt with the typed answer
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	message := fmt.Sprintf("%s Type y and press enter to confirm, esc to cancel: %s", m.config.Message, string(m.answer))
	if m.config.Destructive {
		return ConfirmDangerStyle.Render(message)
	}
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(message)
}
