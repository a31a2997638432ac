package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/rgehrsitz/pphgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/pphgo/internal/tui/tuistyles"
)

var (
	nextFieldKey  = key.NewBinding(key.WithKeys("tab", "down"))
	prevFieldKey  = key.NewBinding(key.WithKeys("shift+tab", "up"))
	nextSchemeKey = key.NewBinding(key.WithKeys("pgdown", "ctrl+n"))
	prevSchemeKey = key.NewBinding(key.WithKeys("pgup", "ctrl+p"))
	submitKey     = key.NewBinding(key.WithKeys("enter"))
	resetKey      = key.NewBinding(key.WithKeys("ctrl+r"))
)

// CalculatorModel is the interactive single-computation form
type CalculatorModel struct {
	schemeIndex int
	inputs      []textinput.Model
	focused     int
	err         error
	width       int
	height      int
}

// NewCalculatorModel creates a form for the monthly scheme
func NewCalculatorModel() *CalculatorModel {
	m := &CalculatorModel{}
	m.resetInputs()
	return m
}

// Scheme returns the scheme the form currently edits
func (m *CalculatorModel) Scheme() domain.Scheme {
	return domain.AllSchemes[m.schemeIndex]
}

// SetSize updates the scene dimensions
func (m *CalculatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetError shows a rejection below the form
func (m *CalculatorModel) SetError(err error) {
	m.err = err
}

// Values returns the current form values by field key
func (m *CalculatorModel) Values() map[string]string {
	values := make(map[string]string, len(m.inputs))
	for i, f := range schemeFields[m.Scheme()] {
		values[f.Key] = m.inputs[i].Value()
	}
	return values
}

// SetValue fills a field by key; unknown keys are ignored
func (m *CalculatorModel) SetValue(fieldKey, value string) {
	for i, f := range schemeFields[m.Scheme()] {
		if f.Key == fieldKey {
			m.inputs[i].SetValue(value)
		}
	}
}

func (m *CalculatorModel) resetInputs() {
	fields := schemeFields[m.Scheme()]
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 24
		ti.Width = 24
		m.inputs[i] = ti
	}
	m.focused = 0
	m.err = nil
	m.inputs[0].Focus()
}

func (m *CalculatorModel) focus(i int) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = (i + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focused].Focus()
}

// Update handles messages for the calculator scene
func (m *CalculatorModel) Update(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, nextFieldKey):
			return m, m.focus(m.focused + 1)
		case key.Matches(msg, prevFieldKey):
			return m, m.focus(m.focused - 1)
		case key.Matches(msg, nextSchemeKey):
			m.schemeIndex = (m.schemeIndex + 1) % len(domain.AllSchemes)
			m.resetInputs()
			return m, textinput.Blink
		case key.Matches(msg, prevSchemeKey):
			m.schemeIndex = (m.schemeIndex - 1 + len(domain.AllSchemes)) % len(domain.AllSchemes)
			m.resetInputs()
			return m, textinput.Blink
		case key.Matches(msg, resetKey):
			m.resetInputs()
			return m, textinput.Blink
		case key.Matches(msg, submitKey):
			c, err := buildComputation(m.Scheme(), m.Values())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg { return tuimsg.CalculateRequestedMsg{Computation: c} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// View renders the form
func (m *CalculatorModel) View() string {
	var tabs []string
	for i, s := range domain.AllSchemes {
		if i == m.schemeIndex {
			tabs = append(tabs, tuistyles.SelectedItemStyle.Render("["+string(s)+"]"))
		} else {
			tabs = append(tabs, tuistyles.UnselectedItemStyle.Render(" "+string(s)+" "))
		}
	}

	var form strings.Builder
	form.WriteString(tuistyles.TitleStyle.Render(m.Scheme().Title()))
	form.WriteString("\n\n")
	for i, f := range schemeFields[m.Scheme()] {
		form.WriteString(tuistyles.ParameterLabelStyle.Render(f.Label))
		form.WriteString(m.inputs[i].View())
		form.WriteString("\n")
	}
	if m.err != nil {
		form.WriteString("\n" + tuistyles.ErrorStyle.Render(m.err.Error()))
	}

	help := tuistyles.HelpDescStyle.Render(
		"tab/↓ next field • shift+tab/↑ previous • pgup/pgdn scheme • enter calculate • ctrl+r clear • esc home")

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(tabs, " "),
		"",
		tuistyles.ActiveBorderStyle.Render(form.String()),
		help,
	)
}
