package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/livefir/html2rsx/internal/playground"
)

// Serve handles `html2rsx serve [--addr host:port]`
func Serve(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", cfg.ListenAddr, "listen address")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []playground.Option{playground.WithMaxBuf(cfg.MaxBuffer)}
	if cfg.HistoryEnabled {
		store, err := openHistory(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, playground.WithHistory(store))
	}

	server := playground.New(opts...)

	fmt.Fprintf(stdout, "Playground listening on http://%s\n", *addr)
	if err := server.ListenAndServe(ctx, *addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	m := server.Collector().GetMetrics()
	log.Printf("Shut down after %d conversions (%d failed)", m.Conversions, m.ConversionErrors)
	return nil
}
