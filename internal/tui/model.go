package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/pphgo/internal/calculation"
	"github.com/rgehrsitz/pphgo/internal/compare"
	"github.com/rgehrsitz/pphgo/internal/config"
	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/rgehrsitz/pphgo/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Batch input, optional
	batchPath string
	batch     *domain.Batch

	calcEngine *calculation.CalculationEngine

	calculatorModel *scenes.CalculatorModel
	batchModel      *scenes.BatchModel
	resultsModel    *scenes.ResultsModel
	compareModel    *scenes.CompareModel

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates the application model. batchPath may be empty, in which case the
// TUI starts with the interactive calculator only.
func NewModel(batchPath string) Model {
	return Model{
		currentScene:    SceneHome,
		batchPath:       batchPath,
		calcEngine:      calculation.NewCalculationEngine(),
		calculatorModel: scenes.NewCalculatorModel(),
		batchModel:      scenes.NewBatchModel(),
		resultsModel:    scenes.NewResultsModel(),
		compareModel:    scenes.NewCompareModel(),
		width:           80,
		height:          24,
		loading:         batchPath != "",
		loadingMessage:  "Loading batch...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.batchPath == "" {
		return nil
	}
	return loadBatchCmd(m.batchPath)
}

// loadBatchCmd returns a command that parses a batch file
func loadBatchCmd(path string) tea.Cmd {
	return func() tea.Msg {
		batch, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return BatchLoadedMsg{Path: path, Batch: batch}
	}
}

// runBatchCmd calculates every computation and compares methods where possible
func runBatchCmd(engine *calculation.CalculationEngine, path string, batch *domain.Batch) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		results, err := engine.RunBatch(ctx, batch)
		if err != nil {
			return BatchCalculatedMsg{Err: err}
		}
		comparison, err := compare.NewCompareEngine(engine).Compare(ctx, batch, compare.CompareOptions{ConfigPath: path})
		return BatchCalculatedMsg{Results: results, Comparison: comparison, Err: err}
	}
}

// calculateCmd runs one computation from the calculator form
func calculateCmd(engine *calculation.CalculationEngine, c domain.Computation) tea.Cmd {
	return func() tea.Msg {
		return CalculationCompleteMsg{Outcome: engine.Calculate(c)}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneCalculator:
		return "Calculator"
	case SceneBatch:
		return "Batch"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
