package scenes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/rgehrsitz/pphgo/internal/output"
	"github.com/rgehrsitz/pphgo/internal/tui/components"
	"github.com/rgehrsitz/pphgo/internal/tui/tuistyles"
)

// ResultsModel shows one computed outcome in detail
type ResultsModel struct {
	outcome *domain.Outcome
	width   int
	height  int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetOutcome replaces the displayed outcome
func (m *ResultsModel) SetOutcome(o domain.Outcome) {
	m.outcome = &o
}

// Outcome returns the displayed outcome, if any
func (m *ResultsModel) Outcome() (domain.Outcome, bool) {
	if m.outcome == nil {
		return domain.Outcome{}, false
	}
	return *m.outcome, true
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders headline cards above the full breakdown
func (m *ResultsModel) View() string {
	if m.outcome == nil {
		return tuistyles.BorderStyle.Render("No results to display.\n\nCalculate something from the calculator first.\n\nPress ESC to go back.")
	}

	section := output.Describe(*m.outcome)
	var cards []*components.MetricCard
	for _, l := range section.Lines {
		if l.Emphasis {
			cards = append(cards, components.NewMetricCard(l.Label, l.Display()).WithWidth(28))
		}
	}

	width := 64
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, 3),
		components.RenderSection(section, width),
		tuistyles.HelpDescStyle.Render("esc back • k calculator • b batch • h home"),
	)
}
