package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scanlog/scanlog/pkg/models"
)

type filterField int

const (
	filterStart filterField = iota
	filterEnd
	filterBarcode
	filterFieldCount
)

var filterLabels = [filterFieldCount]string{"From", "To", "Barcode"}

// FilterForm holds the three search inputs. It only builds a QueryFilter
// when asked; typing never triggers a request.
type FilterForm struct {
	inputs [filterFieldCount]textinput.Model
}

// NewFilterForm creates the start, end and barcode inputs.
func NewFilterForm() *FilterForm {
	f := &FilterForm{}
	placeholders := [filterFieldCount]string{"YYYY-MM-DD[THH:MM]", "YYYY-MM-DD[THH:MM]", "contains..."}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.PlaceholderStyle = PlaceholderStyle
		ti.CharLimit = 64
		ti.Width = 20
		f.inputs[i] = ti
	}
	return f
}

// Focus moves the cursor into field and blurs the others.
func (f *FilterForm) Focus(field filterField) tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if filterField(i) == field {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// Blur removes focus from every input.
func (f *FilterForm) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Update forwards msg to the focused input.
func (f *FilterForm) Update(field filterField, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[field], cmd = f.inputs[field].Update(msg)
	return cmd
}

// SetValue sets one input, mainly for tests and presets.
func (f *FilterForm) SetValue(field filterField, value string) {
	f.inputs[field].SetValue(value)
}

// SetWidth sizes each input to share width.
func (f *FilterForm) SetWidth(width int) {
	per := width/int(filterFieldCount) - 14
	if per < 10 {
		per = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = per
	}
}

// Build parses the form into a filter with the given page size. Dates
// without a zone are read in loc.
func (f *FilterForm) Build(limit int, loc *time.Location) (models.QueryFilter, error) {
	filter := models.QueryFilter{Limit: limit}

	start, err := models.ParseFilterTime(f.inputs[filterStart].Value(), loc)
	if err != nil {
		return filter, fmt.Errorf("From: %w", err)
	}
	end, err := models.ParseFilterTime(f.inputs[filterEnd].Value(), loc)
	if err != nil {
		return filter, fmt.Errorf("To: %w", err)
	}
	if start != nil && end != nil && !end.After(*start) {
		return filter, fmt.Errorf("To must be after From")
	}

	filter.Start = start
	filter.End = end
	filter.Barcode = strings.TrimSpace(f.inputs[filterBarcode].Value())
	return filter, nil
}

// View renders the inputs on one line.
func (f *FilterForm) View(active filterField, focused bool) string {
	parts := make([]string, 0, 4*len(f.inputs))
	for i := range f.inputs {
		if i > 0 {
			parts = append(parts, "  ")
		}
		label := LabelStyle.Render(filterLabels[i] + ":")
		box := paneStyle(focused && filterField(i) == active).Render(f.inputs[i].View())
		parts = append(parts, label, " ", box)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
