// Package main is the entry point for the planner application.
// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"planner/internal/backup"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `planner restore - Restore data from a backup

USAGE:
    planner restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2024-03-15_143022_000)
                   Use 'planner backup --list' to see available backups.

DESCRIPTION:
    Restores all data files from a specific backup. A safety backup is
    automatically created before restoring, and the day statistics are
    recomputed from the restored tasks.

EXAMPLES:
    # Restore from a specific backup
    planner restore 2024-03-15_143022_000

    # Restore from the most recent backup
    planner restore --latest

    # Restore without confirmation prompt
    planner restore --force 2024-03-15_143022_000
`

// runRestore handles the "planner restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	cfg := loadConfig()
	manager := backup.NewManager(cfg.GetDataDir(), version)

	// Determine which backup to restore
	var backupName string
	switch {
	case *latestFlag:
		backups, err := manager.List()
		if err != nil {
			fail("listing backups: %v", err)
		}
		if len(backups) == 0 {
			fmt.Fprintln(os.Stderr, "No backups available.")
			os.Exit(1)
		}
		backupName = backups[0].Name
	case fs.NArg() > 0:
		backupName = fs.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'planner restore BACKUP_NAME' or 'planner restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'planner backup --list' to see available backups.")
		os.Exit(1)
	}

	info, err := manager.Get(backupName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Tasks: %d, Templates: %d, Days: %d\n",
		info.Stats["tasks"], info.Stats["templates"], info.Stats["days"])
	fmt.Println()

	// Confirm unless --force is set
	if !*forceFlag {
		fmt.Println("⚠ This will overwrite your current data.")
		fmt.Print("Continue? [y/N] ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			fail("reading input: %v", err)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	fmt.Println("✓ Creating safety backup first...")
	if err := manager.Restore(backupName); err != nil {
		fail("restoring backup: %v", err)
	}

	// Opening the planner rebuilds the day statistics from the restored
	// tasks and saves them when the backup's copy disagrees.
	p := openPlanner(cfg, cliLogger(cfg))
	checkSaved(p)

	fmt.Printf("✓ Restored successfully from %s\n", backupName)
	fmt.Printf("  %d tasks on %d days\n", len(p.Tasks()), len(p.Keys()))
}
