// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/jingwhale/blockpy/internal/analyzer"
	"github.com/jingwhale/blockpy/internal/config"
	"github.com/jingwhale/blockpy/internal/issue"
	"github.com/jingwhale/blockpy/internal/reportstore"
)

func main() {
	configPath := flag.String("config", ".blockpy.yml", "path to the analyzer config file")
	noColor := flag.Bool("no-color", false, "disable colored output")
	historyPath := flag.String("history", "", "path to the report history database (overrides config)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: blockpy [flags] <file.py>")
		os.Exit(1)
	}

	startTime := time.Now()
	path := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	switch {
	case *noColor || cfg.Color == "never":
		color.NoColor = true
	case cfg.Color == "always":
		color.NoColor = false
	default:
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			color.NoColor = true
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	report := analyzer.NewAnalyzerWithConfig(cfg).AnalyzeSource(path, string(source))

	reporter := issue.NewReporter(path, string(source))
	for _, kind := range issue.AllKinds() {
		for _, data := range report.Issues[kind] {
			fmt.Print(reporter.FormatIssue(kind, data))
		}
	}

	printVariableSummary(report)
	saveHistory(cfg, *historyPath, path, report)

	duration := formatDuration(time.Since(startTime))
	if !report.Success {
		color.Red("Analysis failed after %s", duration)
		os.Exit(1)
	}
	if report.HasIssues() {
		color.Yellow("Found %d issues in %s (%s)", report.IssueCount(), path, duration)
		return
	}
	color.Green("No issues found in %s (%s)", path, duration)
}

// printVariableSummary dumps the final state of every top-level variable.
func printVariableSummary(report *analyzer.Report) {
	if len(report.TopLevelVariables) == 0 {
		return
	}

	dim := color.New(color.Faint).SprintFunc()
	fmt.Println(dim("Top-level variables:"))
	for name, state := range report.TopLevelVariables {
		fmt.Printf("  %s: %s (set=%s read=%s over=%s)\n",
			name, state.Type.Kind, state.Set, state.Read, state.Over)
	}
	fmt.Println()
}

func saveHistory(cfg *config.Config, override, path string, report *analyzer.Report) {
	dbPath := cfg.History
	if override != "" {
		dbPath = override
	}
	if dbPath == "" {
		return
	}

	store, err := reportstore.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Save(path, report); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
