// Package main is the entry point for the planner application.
// This file contains the backup subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"planner/internal/backup"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `planner backup - Create and manage backups

USAGE:
    planner backup [OPTIONS]

OPTIONS:
    -l, --list       List available backups
    --prune N        Keep only the N most recent backups
    --delete NAME    Delete one backup
    -h, --help       Show this help message

DESCRIPTION:
    Creates a timestamped backup of all your data files (tasks, templates,
    day statistics, calendar view). Backups are stored in ~/.planner/backups/
    and can be restored later.

EXAMPLES:
    # Create a new backup
    planner backup

    # List all available backups
    planner backup --list

    # Keep the five newest backups
    planner backup --prune 5
`

// runBackup handles the "planner backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	pruneFlag := fs.Int("prune", -1, "keep only the N most recent backups")
	deleteFlag := fs.String("delete", "", "delete one backup")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	cfg := loadConfig()
	manager := backup.NewManager(cfg.GetDataDir(), version)

	switch {
	case *listFlag:
		listBackups(manager)
	case *deleteFlag != "":
		if err := manager.Delete(*deleteFlag); err != nil {
			fail("deleting backup: %v", err)
		}
		fmt.Printf("✓ Backup deleted: %s\n", *deleteFlag)
	case *pruneFlag >= 0:
		deleted, err := manager.Prune(*pruneFlag)
		if err != nil {
			fail("pruning backups: %v", err)
		}
		fmt.Printf("✓ Deleted %d old backup(s)\n", deleted)
	default:
		createBackup(manager)
	}
}

// createBackup creates a new backup and displays the result.
func createBackup(manager *backup.Manager) {
	name, err := manager.Create()
	if err != nil {
		fail("creating backup: %v", err)
	}

	info, err := manager.Get(name)
	if err != nil {
		fail("reading backup info: %v", err)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  Tasks: %d, Templates: %d, Days: %d\n",
		info.Stats["tasks"], info.Stats["templates"], info.Stats["days"])
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available backups.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fail("listing backups: %v", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'planner backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		fmt.Printf("  %s  (%s)   Tasks: %d, Templates: %d\n",
			b.Name, formatAge(b.CreatedAt, time.Now()), b.Stats["tasks"], b.Stats["templates"])
	}
}

// formatAge returns a human-readable age string.
func formatAge(t, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
