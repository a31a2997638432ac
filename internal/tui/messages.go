package tui

import (
	"github.com/rgehrsitz/pphgo/internal/compare"
	"github.com/rgehrsitz/pphgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneCalculator
	SceneBatch
	SceneResults
	SceneCompare
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// BatchLoadedMsg signals a batch file has been parsed
type BatchLoadedMsg struct {
	Path  string
	Batch *domain.Batch
}

// BatchCalculatedMsg carries the outcomes and method comparison of a batch
type BatchCalculatedMsg struct {
	Results    *domain.BatchResult
	Comparison *compare.ComparisonSet
	Err        error
}

// CalculationCompleteMsg carries the outcome of an interactive computation
type CalculationCompleteMsg struct {
	Outcome domain.Outcome
}
