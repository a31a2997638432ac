package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/pphgo/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculatorModel.SetSize(msg.Width, msg.Height)
		m.batchModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tuimsg.ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case BatchLoadedMsg:
		m.batch = msg.Batch
		m.loadingMessage = "Calculating batch..."
		return m, runBatchCmd(m.calcEngine, msg.Path, msg.Batch)

	case BatchCalculatedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.batchModel.SetResults(m.batchPath, msg.Results)
		m.compareModel.SetComparison(msg.Comparison)
		return m.navigate(SceneBatch)

	case tuimsg.CalculateRequestedMsg:
		return m, calculateCmd(m.calcEngine, msg.Computation)

	case CalculationCompleteMsg:
		if msg.Outcome.Failed() {
			m.calculatorModel.SetError(errors.New(msg.Outcome.Error))
			return m, nil
		}
		m.resultsModel.SetOutcome(msg.Outcome)
		return m.navigate(SceneResults)

	case tuimsg.ComputationSelectedMsg:
		if o, ok := m.batchModel.Selected(); ok {
			m.resultsModel.SetOutcome(o)
			return m.navigate(SceneResults)
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		// any key dismisses the error
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.currentScene == SceneHome {
			return m, nil
		}
		// detail scenes return to where they were opened from; list scenes go home
		switch m.currentScene {
		case SceneResults, SceneCompare, SceneHelp:
			if m.previousScene != m.currentScene {
				return m.navigate(m.previousScene)
			}
		}
		return m.navigate(SceneHome)
	}

	// the calculator form receives every other key as text
	if m.currentScene == SceneCalculator {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m.navigate(SceneHelp)
	case "h":
		return m.navigate(SceneHome)
	case "k", "n":
		if m.currentScene != SceneBatch && m.currentScene != SceneCompare {
			return m.navigate(SceneCalculator)
		}
	case "b":
		return m.navigate(SceneBatch)
	case "c":
		return m.navigate(SceneCompare)
	case "r":
		return m.navigate(SceneResults)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneCalculator:
		m.calculatorModel, cmd = m.calculatorModel.Update(msg)
	case SceneBatch:
		m.batchModel, cmd = m.batchModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
