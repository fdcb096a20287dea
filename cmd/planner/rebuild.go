// Package main is the entry point for the planner application.
// This file contains the rebuild subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
)

const rebuildHelpText = `planner rebuild - Recompute the day statistics

USAGE:
    planner rebuild

DESCRIPTION:
    Recomputes the per-day completion statistics from the task list and
    saves them. The statistics are rebuilt on every start as well, so this
    is only needed after editing tasks.json by hand while the app runs.
`

// runRebuild handles the "planner rebuild" subcommand.
func runRebuild(args []string) {
	fs := flag.NewFlagSet("rebuild", flag.ExitOnError)

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, rebuildHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(rebuildHelpText)
		os.Exit(0)
	}

	_, p := openCLI()
	if err := p.Rebuild(); err != nil {
		fail("saving statistics: %v", err)
	}

	fmt.Printf("✓ Rebuilt statistics for %d days (%d tasks)\n", len(p.Keys()), len(p.Tasks()))
}
