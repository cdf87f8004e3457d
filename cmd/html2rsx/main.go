package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/livefir/html2rsx/cmd/html2rsx/commands"
	"github.com/livefir/html2rsx/cmd/html2rsx/internal/ui"
)

// Version information (can be overridden at build time with -ldflags)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error

	switch command {
	case "convert":
		err = commands.Convert(args)
	case "serve":
		err = commands.Serve(args)
	case "tui":
		err = ui.Run(args)
	case "history":
		err = commands.History(args)
	case "config":
		err = commands.Config(args)
	case "version", "--version", "-v":
		printVersion()
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("html2rsx %s\n", version)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if commit == "unknown" {
		commit = buildSetting(info, "vcs.revision")
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if commit != "" {
		fmt.Printf("commit: %s\n", commit)
	}
	if date != "unknown" {
		fmt.Printf("built: %s\n", date)
	}
	fmt.Printf("go: %s\n", info.GoVersion)
}

func buildSetting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

func printUsage() {
	fmt.Println("html2rsx - convert HTML into rsx block syntax")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  html2rsx convert [--minify] [-o <file>] [<file>...]   Convert files (or stdin)")
	fmt.Println("  html2rsx serve [--addr <host:port>]                   Run the browser playground")
	fmt.Println("  html2rsx tui                                          Interactive converter")
	fmt.Println("  html2rsx history [list [n] | show <id> | clear]       Inspect past conversions")
	fmt.Println("  html2rsx config <get|set|list|path>                   Manage configuration")
	fmt.Println("  html2rsx version                                      Show version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  echo '<div class=\"x\">hi</div>' | html2rsx convert")
	fmt.Println("  html2rsx convert --minify page.html -o page.rsx")
	fmt.Println("  html2rsx config set minify true")
	fmt.Println("  html2rsx history show 3")
}
