package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/livefir/html2rsx/internal/config"
	"github.com/livefir/html2rsx/internal/history"
)

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openHistory opens the history database named by cfg.
func openHistory(ctx context.Context, cfg *config.Config) (*history.Store, error) {
	path, err := cfg.ResolveHistoryPath()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}
