package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/livefir/html2rsx"
	"github.com/livefir/html2rsx/internal/config"
	"github.com/livefir/html2rsx/internal/history"
)

type convertInput struct {
	name string
	html string
}

// Convert handles `html2rsx convert [--minify] [-o out] [files...]`
func Convert(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	minify := fs.Bool("minify", cfg.Minify, "collapse insignificant whitespace before converting")
	output := fs.String("o", "", "write output to `file` instead of stdout")
	maxBuf := fs.Int("max-buffer", cfg.MaxBuffer, "maximum bytes buffered for one token (0 = unlimited)")
	noHistory := fs.Bool("no-history", false, "do not record this conversion")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	inputs, err := readInputs(fs.Args())
	if err != nil {
		return err
	}

	opts := []html2rsx.Option{
		html2rsx.WithMinify(*minify),
		html2rsx.WithMaxBuf(*maxBuf),
	}

	var out strings.Builder
	var recorded []history.Entry
	for i, in := range inputs {
		report, err := html2rsx.ConvertReport(in.html, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		for _, w := range report.Warnings {
			fmt.Fprintf(stderr, "Warning: %s: %s\n", in.name, w)
		}

		if len(inputs) > 1 {
			if i > 0 {
				out.WriteString("\n")
			}
			fmt.Fprintf(&out, "// %s\n", in.name)
		}
		out.WriteString(report.Output)

		recorded = append(recorded, history.Entry{
			Source:   "cli",
			Input:    in.html,
			Output:   report.Output,
			Warnings: len(report.Warnings),
			Elements: report.Elements,
		})
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(out.String()), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if _, err := io.WriteString(stdout, out.String()); err != nil {
		return err
	}

	if cfg.HistoryEnabled && !*noHistory {
		recordHistory(cfg, recorded)
	}
	return nil
}

// readInputs reads the named files, or stdin when none (or "-") is given
func readInputs(names []string) ([]convertInput, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}

	inputs := make([]convertInput, 0, len(names))
	for _, name := range names {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(stdin)
			name = "<stdin>"
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		inputs = append(inputs, convertInput{name: name, html: string(data)})
	}
	return inputs, nil
}

// recordHistory stores entries; a broken history database never fails
// the conversion itself
func recordHistory(cfg *config.Config, entries []history.Entry) {
	ctx := context.Background()
	store, err := openHistory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: history disabled: %v\n", err)
		return
	}
	defer store.Close()

	for _, e := range entries {
		if _, err := store.Record(ctx, e); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
			return
		}
	}
}
