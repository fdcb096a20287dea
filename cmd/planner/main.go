// Package main is the entry point for the planner application.
// It loads configuration, opens the planner over the data directory and
// starts the TUI, or runs one of the one-shot subcommands.
package main

import (
	"flag"
	"fmt"
	"os"

	"planner/internal/logging"
	"planner/internal/notify"
	"planner/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `planner - A daily task planner for your terminal

USAGE:
    planner [OPTIONS]
    planner <command> [ARGS]

COMMANDS:
    add TEXT         Add a task for today
    done REF         Toggle a task's completion
    rm REF           Delete a task
    list [DATE]      List the tasks of a day (default: today)
    calendar         Show the calendar month
    templates        List, add, use or delete templates
    export           Generate a monthly report (Markdown)
    export --year    Generate a yearly report
    export -f json   Output report as JSON
    rebuild          Recompute the day statistics from the task list
    backup           Create a backup of all data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    import           Import tasks from other apps

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    planner keeps a list of tasks per day, a catalog of reusable task
    templates and a calendar colored by how much of each day got done.

PANES:
    • Today      - Add, complete, delete today's tasks
    • Templates  - One-key quick add of recurring tasks
    • Calendar   - Month grid with per-day completion
    • Stats      - Month, year and all-time summaries

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3, 4   Jump to specific pane
        ?            Show help overlay
        q            Quit

    Today / Templates:
        j/k, ↓/↑     Navigate
        a            Add task or template
        d/Space      Toggle done (Templates: add to today)
        x            Delete
        g/G          Go to top/bottom

    Calendar:
        h/j/k/l      Move the selected day
        [ / ]        Previous/next month
        t            Jump to today

TASK REFERENCES:
    REF is either the number shown by 'planner list' or a task id
    (any unique prefix of it).

DATA STORAGE:
    All data is stored in ~/.planner/ as plain JSON files:
        tasks.json      - Your tasks
        templates.json  - The template catalog
        day_stats.json  - Per-day completion statistics
        calendar.json   - The month shown by the calendar

CONFIGURATION:
    Optional config file: ~/.config/planner/config.yaml (or config.toml)

EXAMPLES:
    # Start the app
    planner

    # Add a task with an emoji
    planner add --emoji 🏃 "Morning run"

    # Complete the first task of today
    planner done 1

    # Show last month
    planner calendar --prev

    # This month's report, rendered for the terminal
    planner export --pretty

    # Yearly report as JSON
    planner export --year 2024 --format json
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			runAdd(os.Args[2:])
			return
		case "done":
			runDone(os.Args[2:])
			return
		case "rm":
			runRemove(os.Args[2:])
			return
		case "list":
			runList(os.Args[2:])
			return
		case "calendar":
			runCalendar(os.Args[2:])
			return
		case "templates":
			runTemplates(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "rebuild":
			runRebuild(os.Args[2:])
			return
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("planner version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	runTUI()
}

// runTUI opens the planner with a file logger and runs the terminal UI.
func runTUI() {
	cfg := loadConfig()

	// The alternate screen owns stdout, so the TUI logs to a file.
	logFile, err := logging.OpenFile(cfg.GetDataDir(), cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := logging.New(logFile, logging.Options{
		Level:           cfg.Log.Level,
		Format:          cfg.Log.Format,
		ReportTimestamp: true,
	})
	logger.Info("starting", "version", version, "data_dir", cfg.GetDataDir())

	p := openPlanner(cfg, logger)

	if cfg.Notifications.Enabled {
		watcher := notify.NewCompletionWatcher(notify.New(), cfg.Notifications.Sound, p.Today, logger)
		p.OnTaskListChanged(watcher.Observe)
	}

	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		ShowOnboarding:        cfg.UX.ShowOnboarding,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
		TrailingMonths:        cfg.UX.TrailingMonths,
		OnboardingDone: func() error {
			cfg.UX.ShowOnboarding = false
			return cfg.Save()
		},
	}

	if err := ui.Run(p, ui.NewStyles(cfg), appCfg); err != nil {
		logger.Error("app exited", "err", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	if err := p.LastPersistenceError(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: last save failed: %v\n", err)
	}
	logger.Info("stopped")
}
