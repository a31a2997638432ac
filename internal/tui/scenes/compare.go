package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pphgo/internal/compare"
	"github.com/rgehrsitz/pphgo/internal/tui/components"
	"github.com/rgehrsitz/pphgo/internal/tui/tuistyles"
)

// CompareModel shows gross against gross-up for each monthly and annual computation
type CompareModel struct {
	set           *compare.ComparisonSet
	selectedIndex int
	width         int
	height        int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparison replaces the displayed comparison
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
	m.selectedIndex = 0
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.set == nil {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.set.Results)-1 {
			m.selectedIndex++
		}
	}
	return m, nil
}

// View renders the selected comparison as metric cards
func (m *CompareModel) View() string {
	if m.set == nil || len(m.set.Results) == 0 {
		return tuistyles.BorderStyle.Render("No monthly or annual computations to compare.\n\nPress ESC to go back.")
	}

	items := make([]string, len(m.set.Results))
	for i, r := range m.set.Results {
		items[i] = fmt.Sprintf("%s (%s)", r.Name, r.Classification)
	}
	r := m.set.Results[m.selectedIndex]

	gross := []*components.MetricCard{
		components.NewMoneyCard("Employer cost (gross)", r.Gross.EmployerCost),
		components.NewMoneyCard("Tax (gross)", r.Gross.Tax),
		components.NewMoneyCard("Take-home (gross)", r.Gross.TakeHome),
	}
	grossUp := []*components.MetricCard{
		components.NewMoneyCard("Employer cost (gross-up)", r.GrossUp.EmployerCost).WithDelta(r.EmployerCostDiff),
		components.NewMoneyCard("Tax (gross-up)", r.GrossUp.Tax).WithDelta(r.TaxDiff),
		components.NewMoneyCard("Take-home (gross-up)", r.GrossUp.TakeHome).WithDelta(r.TakeHomeDiff),
	}
	if !r.GrossUp.Converged {
		grossUp[0].WithDescription("did not converge")
	}

	var recs string
	for _, rec := range m.set.Recommendations {
		recs += tuistyles.InfoStyle.Render("• "+rec) + "\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.BorderStyle.Render(components.SelectionList(items, m.selectedIndex)),
		components.MetricGrid(gross, 3),
		components.MetricGrid(grossUp, 3),
		recs,
		tuistyles.HelpDescStyle.Render("↑/↓ select • esc back"),
	)
}
