package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/franvera/fandb/internal/app"
	"github.com/franvera/fandb/internal/config"
	"github.com/franvera/fandb/internal/database"
	"github.com/franvera/fandb/internal/database/postgres"
	"github.com/franvera/fandb/internal/history"
	"github.com/franvera/fandb/internal/tui"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = &config.Config{}
	}

	hist := history.Open(historyPath())

	// Set up dependencies
	service := app.NewService(func(t database.Target) database.Connector {
		return postgres.New(t)
	}, hist)

	// Create and run TUI
	model := tui.NewModel(service, cfg)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	// Graceful cleanup
	_ = hist.Save()
	service.Disconnect()
}

func historyPath() string {
	dir, err := config.Dir()
	if err != nil {
		return "fandb_history.json"
	}
	return filepath.Join(dir, "history.json")
}
