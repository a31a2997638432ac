package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/pphgo/internal/tui"
)

func main() {
	// Optional batch file; without one the TUI opens on the home screen
	batchPath := ""
	if len(os.Args) > 1 {
		batchPath = os.Args[1]
		if _, err := os.Stat(batchPath); os.IsNotExist(err) {
			fmt.Printf("Error: batch file not found: %s\n", batchPath)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(batchPath),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
