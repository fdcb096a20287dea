// Package main is the entry point for the planner application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"planner/internal/dates"
	"planner/internal/fsutil"
	"planner/internal/reports"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `planner export - Generate completion reports

USAGE:
    planner export [OPTIONS]

OPTIONS:
    -m, --month YYYY-MM  Monthly report for a month (default: this month)
    -y, --year YYYY      Yearly report instead of a monthly one
    --years N            Years compared by a yearly report (default: 3)
    --trailing N         Months in a monthly report's trend (default: config)
    -f, --format FMT     Output format: markdown (default) or json
    -o, --output FILE    Write to file instead of stdout
    --pretty             Render Markdown for the terminal
    --style NAME         Style for --pretty: auto, dark, light, notty
    -h, --help           Show this help message

DESCRIPTION:
    Generates reports from the per-day completion statistics. A monthly
    report has the month summary, the change against the month before, the
    daily breakdown grid and a trailing trend. A yearly report compares the
    twelve months and the preceding years.

EXAMPLES:
    # This month in Markdown
    planner export

    # February 2024, rendered in the terminal
    planner export --month 2024-02 --pretty

    # Yearly JSON report to file
    planner export --year 2024 --format json --output 2024.json
`

// runExport handles the "planner export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	monthFlag := fs.String("month", "", "monthly report for YYYY-MM")
	fs.StringVar(monthFlag, "m", "", "monthly report (shorthand)")

	yearFlag := fs.String("year", "", "yearly report for YYYY")
	fs.StringVar(yearFlag, "y", "", "yearly report (shorthand)")

	yearsFlag := fs.Int("years", 3, "years compared by a yearly report")
	trailingFlag := fs.Int("trailing", 0, "months in the trailing trend")

	formatFlag := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	prettyFlag := fs.Bool("pretty", false, "render markdown for the terminal")
	styleFlag := fs.String("style", "auto", "glamour style for --pretty")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", fs.Args())
		os.Exit(1)
	}

	// Validate format
	format := *formatFlag
	if format != "markdown" && format != "json" && format != "md" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown' or 'json'.\n", format)
		os.Exit(1)
	}
	if format == "md" {
		format = "markdown"
	}
	if *prettyFlag && format == "json" {
		fmt.Fprintln(os.Stderr, "Error: --pretty only applies to markdown output")
		os.Exit(1)
	}
	if *monthFlag != "" && *yearFlag != "" {
		fmt.Fprintln(os.Stderr, "Error: use either --month or --year")
		os.Exit(1)
	}
	if *yearsFlag < 1 {
		fmt.Fprintln(os.Stderr, "Error: --years must be at least 1")
		os.Exit(1)
	}

	cfg, p := openCLI()
	gen := p.Reports()

	var output string
	if *yearFlag != "" {
		year, err := strconv.Atoi(*yearFlag)
		if err != nil || year < 1 || year > 9999 {
			fail("invalid year %q. Use YYYY format.", *yearFlag)
		}

		report := gen.GenerateYear(year, *yearsFlag)
		if format == "json" {
			data, err := reports.FormatYearJSON(report)
			if err != nil {
				fail("formatting JSON: %v", err)
			}
			output = string(data)
		} else {
			output = reports.FormatYearMarkdown(report)
		}
	} else {
		year, month := dates.YearMonth(p.Now())
		if *monthFlag != "" {
			var err error
			if year, month, err = parseMonth(*monthFlag); err != nil {
				fail("%v", err)
			}
		}

		trailing := *trailingFlag
		if trailing <= 0 {
			trailing = cfg.UX.TrailingMonths
		}

		report, err := gen.GenerateMonth(year, month, trailing)
		if err != nil {
			fail("generating monthly report: %v", err)
		}
		if format == "json" {
			data, err := reports.FormatMonthJSON(report)
			if err != nil {
				fail("formatting JSON: %v", err)
			}
			output = string(data)
		} else {
			output = reports.FormatMonthMarkdown(report)
		}
	}

	if *prettyFlag {
		rendered, err := reports.Render(output, *styleFlag, 80)
		if err != nil {
			fail("rendering report: %v", err)
		}
		output = rendered
	}

	// Write output
	if *outputFlag != "" {
		if dir := filepath.Dir(*outputFlag); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				fail("creating output directory: %v", err)
			}
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, []byte(output), 0600); err != nil {
			fail("writing to file: %v", err)
		}
		fmt.Printf("Report written to %s\n", *outputFlag)
	} else {
		fmt.Print(output)
	}
}
