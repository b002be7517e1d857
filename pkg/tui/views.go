package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/scanlog/scanlog/pkg/client"
)

const helpText = "tab focus • enter search • ctrl+r refresh • ctrl+e export • ctrl+y copy • ctrl+x clear all • ctrl+c quit"

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(renderHeader(a.width, "Barcode Scanner"))
	b.WriteString("\n")

	scanPane := paneStyle(a.focus == focusScan).
		Width(a.width - 4).
		Render(LabelStyle.Render("Scan") + "\n" + a.scanInput.View())
	b.WriteString(scanPane)
	b.WriteString("\n")

	// Reserve the status row so the layout does not jump.
	if status := a.status.View(); status != "" {
		b.WriteString(status)
	} else {
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	filterFocused := a.focus >= focusFilterStart && a.focus <= focusFilterBarcode
	b.WriteString(a.filterForm.View(a.focusedFilterField(), filterFocused))
	b.WriteString("\n")

	b.WriteString(paneStyle(a.focus == focusTable).Render(a.listView()))
	b.WriteString("\n")

	if a.confirm.Active() {
		b.WriteString(a.confirm.View())
	} else {
		b.WriteString(HelpStyle.Render(helpText))
	}

	return b.String()
}

// listView renders the loading, error, empty or populated table.
func (a *App) listView() string {
	switch {
	case a.loading && len(a.scans) == 0:
		return LabelStyle.Render("Loading scans...")
	case a.loadErr != nil:
		msg := "Error loading scans: " + client.Detail(a.loadErr, a.loadErr.Error())
		width := a.width - 8
		if width < 20 {
			width = 20
		}
		return ErrorStyle.Render(wordwrap.String(msg, width))
	case len(a.scans) == 0:
		return EmptyStyle.Render("No scans found.")
	}

	header := LabelStyle.Render(fmt.Sprintf("%d scans", len(a.scans)))
	if a.loading {
		header += LabelStyle.Render(" (refreshing...)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, a.table.View())
}
