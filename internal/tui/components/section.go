package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pphgo/internal/output"
	"github.com/rgehrsitz/pphgo/internal/tui/tuistyles"
)

// RenderSection draws a described outcome as a bordered label/value table
func RenderSection(s output.Section, width int) string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render(s.Name))
	content.WriteString("  ")
	content.WriteString(tuistyles.SubtitleStyle.Render(s.Title))
	content.WriteString("\n\n")

	if s.Error != "" {
		content.WriteString(tuistyles.ErrorStyle.Render("Rejected: " + s.Error))
		return tuistyles.BorderStyle.Width(width).Render(content.String())
	}

	labelWidth := 0
	for _, l := range s.Lines {
		labelWidth = max(labelWidth, lipgloss.Width(l.Label))
	}
	for _, l := range s.Lines {
		row := fmt.Sprintf("%-*s  %s", labelWidth, l.Label, l.Display())
		if l.Emphasis {
			row = tuistyles.TableHighlightStyle.Render(row)
		} else {
			row = tuistyles.TableCellStyle.Render(row)
		}
		content.WriteString(row + "\n")
	}
	for _, n := range s.Notes {
		content.WriteString("\n" + tuistyles.InfoStyle.Render("• "+n))
	}

	return tuistyles.BorderStyle.Width(width).Render(strings.TrimRight(content.String(), "\n"))
}

// SelectionList renders items with a marker on the selected one
func SelectionList(items []string, selectedIndex int) string {
	if len(items) == 0 {
		return tuistyles.InfoStyle.Render("Nothing to show")
	}
	rendered := make([]string, len(items))
	for i, item := range items {
		if i == selectedIndex {
			rendered[i] = tuistyles.SelectedItemStyle.Render("▸ " + item)
		} else {
			rendered[i] = tuistyles.UnselectedItemStyle.Render("  " + item)
		}
	}
	return strings.Join(rendered, "\n")
}
