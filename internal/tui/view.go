package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pphgo/internal/calculation"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.renderHome()
	case SceneCalculator:
		content = m.calculatorModel.View()
	case SceneBatch:
		content = m.batchModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4
	if contentHeight < 0 {
		contentHeight = 0
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("PPHGO - Indonesian Income Tax Calculator")
	breadcrumb := m.currentScene.String()
	if m.batchPath != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.batchPath)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("k", "calculator"),
		formatShortcut("b", "batch"),
		formatShortcut("c", "compare"),
		formatShortcut("r", "results"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	if m.currentScene == SceneCalculator {
		shortcuts = []string{formatShortcut("esc", "leave form"), formatShortcut("ctrl+c", "quit")}
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString("Welcome to PPHGO!\n\n")
	b.WriteString(fmt.Sprintf("Rate tables: %s (%s)\n", calculation.Metadata.Period, calculation.Metadata.Description))
	if len(m.calcEngine.Anomalies) > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%d known rate table anomalies are applied as published", len(m.calcEngine.Anomalies))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.batch != nil {
		b.WriteString(fmt.Sprintf("Batch loaded: %d computations. Press b to browse.\n", len(m.batch.Computations)))
	}
	b.WriteString("Press k to open the calculator.")
	return BorderStyle.Render(b.String())
}

func (m Model) renderHelp() string {
	return BorderStyle.Render(`PPHGO - Indonesian Income Tax Calculator

KEYBOARD SHORTCUTS:
  h        Home
  k        Calculator (one computation)
  b        Batch results
  c        Gross vs gross-up comparison
  r        Last result
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

CALCULATOR:
  Tab/↓ and Shift+Tab/↑ move between fields
  PgUp/PgDn switch scheme
  Enter calculates, Ctrl+R clears the form`)
}
