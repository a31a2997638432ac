package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/rgehrsitz/pphgo/internal/output"
	"github.com/rgehrsitz/pphgo/internal/tui/components"
	"github.com/rgehrsitz/pphgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/pphgo/internal/tui/tuistyles"
)

// BatchModel lists the outcomes of a loaded batch file
type BatchModel struct {
	path          string
	results       *domain.BatchResult
	selectedIndex int
	width         int
	height        int
}

// NewBatchModel creates an empty batch scene
func NewBatchModel() *BatchModel {
	return &BatchModel{}
}

// SetResults replaces the listed outcomes
func (m *BatchModel) SetResults(path string, results *domain.BatchResult) {
	m.path = path
	m.results = results
	if results == nil || m.selectedIndex >= len(results.Outcomes) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *BatchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted outcome
func (m *BatchModel) Selected() (domain.Outcome, bool) {
	if m.results == nil || m.selectedIndex >= len(m.results.Outcomes) {
		return domain.Outcome{}, false
	}
	return m.results.Outcomes[m.selectedIndex], true
}

// Update handles messages for the batch scene
func (m *BatchModel) Update(msg tea.Msg) (*BatchModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.results == nil {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.results.Outcomes)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = len(m.results.Outcomes) - 1
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		index := m.selectedIndex
		return m, func() tea.Msg { return tuimsg.ComputationSelectedMsg{Index: index} }
	}
	return m, nil
}

// View renders the outcome list next to the selected outcome
func (m *BatchModel) View() string {
	if m.results == nil {
		return tuistyles.BorderStyle.Render("No batch loaded.\n\nStart pphgo-tui with a batch file to list its computations.")
	}

	items := make([]string, len(m.results.Outcomes))
	for i, o := range m.results.Outcomes {
		status := "✓"
		if o.Failed() {
			status = "✗"
		}
		items[i] = fmt.Sprintf("%s %s (%s)", status, o.Name, o.Scheme)
	}
	header := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s: %d computations, %d rejected",
		m.path, len(m.results.Outcomes), m.results.FailedCount()))
	list := tuistyles.BorderStyle.Render(components.SelectionList(items, m.selectedIndex))

	detail := ""
	if o, ok := m.Selected(); ok {
		detail = components.RenderSection(output.Describe(o), 60)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, list, detail),
		tuistyles.HelpDescStyle.Render("↑/↓ select • enter open • c compare methods • esc home"),
	)
}
