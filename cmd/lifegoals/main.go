// cmd/lifegoals/main.go
//
// Entry point for the life goals readiness quiz. Resolves configuration
// and the catalog, opens the session logbook, and runs the TUI.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvikhe/lifegoals/internal/catalog"
	"github.com/nvikhe/lifegoals/internal/config"
	"github.com/nvikhe/lifegoals/internal/lms"
	"github.com/nvikhe/lifegoals/internal/logbook"
	"github.com/nvikhe/lifegoals/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	lb, err := logbook.New(cfg.LogPath)
	if err != nil {
		// The quiz still works without a log file.
		fmt.Fprintf(os.Stderr, "Warning: session log unavailable: %v\n", err)
		lb = nil
	}
	lb.Info("session opened · lms endpoint %s", cfg.File.LMS.Endpoint)

	client := lms.NewClient(cfg.File.LMS.Endpoint, cfg.LMSTimeout())

	p := tea.NewProgram(
		tui.NewApp(cfg, cat, client, lb),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running quiz: %v\n", err)
		os.Exit(1)
	}
}
