// Package main is the entry point for the planner application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"planner/internal/importer"
	"planner/internal/storage"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `planner import - Import tasks from other apps

USAGE:
    planner import <format> <file>
    planner import [OPTIONS] <format> <file>

FORMATS:
    todoist      Import from Todoist CSV backup
    taskwarrior  Import from Taskwarrior JSON export
    webapp       Import the task list saved by the planner web page

OPTIONS:
    --dry-run    Preview import without making changes
    -h, --help   Show this help message

DESCRIPTION:
    Import tasks from other productivity tools. Supported formats:

    TODOIST:
      Export your tasks from Todoist via Settings → Backups.
      The backup will be a CSV file that can be imported directly.

    TASKWARRIOR:
      Export your tasks using: task export > tasks.json
      Both JSON array and newline-delimited JSON formats are supported.

    WEBAPP:
      The JSON array stored under the taskPlanner_tasks key of the
      browser's local storage.

FIELD MAPPING:
    Todoist:
      - CONTENT → task text
      - PRIORITY: 1 → 🔴, 2 → 🟠, 3 → 🔵, 4 → no emoji
      - DATE → task day (today when missing)
      - Notes are skipped

    Taskwarrior:
      - description → task text
      - priority: H → 🔴, M → 🟠, L → 🔵
      - end (completed), due, else entry → task day
      - status: completed → marks task as done
      - Deleted tasks are skipped

    Webapp:
      - every field is kept; numeric ids become strings

EXAMPLES:
    # Import from Todoist
    planner import todoist ~/Downloads/Todoist_backup.csv

    # Import from Taskwarrior
    task export > tasks.json
    planner import taskwarrior tasks.json

    # Preview before importing
    planner import --dry-run webapp planner-tasks.json
`

// previewLimit caps the tasks listed by --dry-run.
const previewLimit = 20

// runImport handles the "planner import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	dryRunFlag := fs.Bool("dry-run", false, "preview import without making changes")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: missing arguments\n\n")
		fmt.Fprintf(os.Stderr, "Usage: planner import <format> <file>\n")
		fmt.Fprintf(os.Stderr, "Formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		fmt.Fprintf(os.Stderr, "\nRun 'planner import --help' for more information.\n")
		os.Exit(1)
	}

	format := strings.ToLower(fs.Arg(0))
	filePath := fs.Arg(1)

	imp := importer.GetImporter(format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", format)
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}

	file, err := os.Open(filePath)
	if err != nil {
		fail("%v", err)
	}
	tasks, err := imp.Parse(file)
	file.Close()
	if err != nil {
		fail("parsing %s file: %v", imp.Name(), err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found to import.")
		return
	}

	if *dryRunFlag {
		printPreview(os.Stdout, tasks)
		return
	}

	_, p := openCLI()
	result, err := p.Import(tasks)
	if err != nil {
		fail("saving imported tasks: %v", err)
	}

	fmt.Printf("Import complete!\n")
	fmt.Printf("  Imported: %d tasks", result.Imported)
	if n := len(result.Dates); n > 0 {
		fmt.Printf(" on %d days (%s … %s)", n, result.Dates[0], result.Dates[n-1])
	}
	fmt.Println()
	if result.Skipped > 0 {
		fmt.Printf("  Skipped:  %d items (empty text or invalid date)\n", result.Skipped)
	}
}

// printPreview lists the parsed tasks without importing them.
func printPreview(w io.Writer, tasks []storage.Task) {
	fmt.Fprintf(w, "Preview: %d tasks to import\n", len(tasks))
	fmt.Fprintln(w, "────────────────────────────")

	for i, task := range tasks {
		if i == previewLimit {
			fmt.Fprintf(w, "  ... and %d more\n", len(tasks)-previewLimit)
			break
		}
		fmt.Fprintf(w, "  %s %s", checkbox(task.Completed), taskLabel(task.Emoji, task.Text))
		if task.Date != "" {
			fmt.Fprintf(w, " (%s)", task.Date)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run without --dry-run to import.")
}
