package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/livefir/html2rsx/internal/config"
	"github.com/livefir/html2rsx/internal/history"
)

// Run starts the interactive converter
func Run(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("tui takes no arguments")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var store recorder
	if cfg.HistoryEnabled {
		path, err := cfg.ResolveHistoryPath()
		if err != nil {
			return err
		}
		s, err := history.Open(context.Background(), path)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer s.Close()
		store = s
	}

	p := tea.NewProgram(newModel(cfg.Minify, cfg.MaxBuffer, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
