package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/livefir/html2rsx/internal/history"
)

// History handles `html2rsx history [list [n] | show <id> | clear]`
func History(args []string) error {
	command := "list"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	switch command {
	case "list":
		limit := cfg.HistoryLimit
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid count: %s", args[0])
			}
			limit = n
		}
		return historyList(ctx, store, limit)
	case "show":
		if len(args) < 1 {
			return fmt.Errorf("id required: html2rsx history show <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id: %s", args[0])
		}
		return historyShow(ctx, store, id)
	case "clear":
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "✅ Removed %d entries\n", n)
		return nil
	default:
		return fmt.Errorf("unknown command: %s (expected: list, show, clear)", command)
	}
}

func historyList(ctx context.Context, store *history.Store, limit int) error {
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(stdout, "No conversions recorded in %s\n", store.Path())
		return nil
	}

	// Calculate column widths
	maxID := len("ID")
	maxSource := len("SOURCE")
	for _, e := range entries {
		if n := len(strconv.FormatInt(e.ID, 10)); n > maxID {
			maxID = n
		}
		if len(e.Source) > maxSource {
			maxSource = len(e.Source)
		}
	}

	const timeLayout = "2006-01-02 15:04:05"
	fmt.Fprintf(stdout, "%-*s  %-*s  %-*s  %8s  %8s  %s\n",
		maxID, "ID",
		len(timeLayout), "CREATED",
		maxSource, "SOURCE",
		"ELEMENTS", "WARNINGS", "INPUT")
	fmt.Fprintln(stdout, strings.Repeat("-", maxID+len(timeLayout)+maxSource+8+8+40+10))

	for _, e := range entries {
		fmt.Fprintf(stdout, "%-*d  %-*s  %-*s  %8d  %8d  %s\n",
			maxID, e.ID,
			len(timeLayout), e.CreatedAt.Local().Format(timeLayout),
			maxSource, e.Source,
			e.Elements, e.Warnings, preview(e.Input, 40))
	}

	fmt.Fprintf(stdout, "\nTotal: %d conversion(s)\n", len(entries))
	fmt.Fprintf(stdout, "History file: %s\n", store.Path())
	return nil
}

func historyShow(ctx context.Context, store *history.Store, id int64) error {
	e, err := store.Get(ctx, id)
	if errors.Is(err, history.ErrNotFound) {
		return fmt.Errorf("no conversion with id %d", id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "ID:       %d\n", e.ID)
	fmt.Fprintf(stdout, "Created:  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(stdout, "Source:   %s\n", e.Source)
	fmt.Fprintf(stdout, "Elements: %d\n", e.Elements)
	fmt.Fprintf(stdout, "Warnings: %d\n", e.Warnings)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Input:")
	fmt.Fprintln(stdout, e.Input)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Output:")
	fmt.Fprint(stdout, e.Output)
	return nil
}

// preview flattens s onto one line and truncates it to n runes
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
