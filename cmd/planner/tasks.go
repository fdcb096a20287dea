// Package main is the entry point for the planner application.
// This file contains the add, done, rm and list subcommand handlers.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"planner/internal/dates"
	"planner/internal/planner"
)

const addHelpText = `planner add - Add a task for today

USAGE:
    planner add [OPTIONS] TEXT...

OPTIONS:
    -e, --emoji EMOJI  Emoji shown before the task
    -h, --help         Show this help message

EXAMPLES:
    planner add Buy milk
    planner add --emoji 💪 "20 push-ups"
`

const doneHelpText = `planner done - Toggle a task's completion

USAGE:
    planner done [OPTIONS] REF

OPTIONS:
    -d, --date DATE    Day the REF number refers to (default: today)
    -h, --help         Show this help message

ARGUMENTS:
    REF                Number from 'planner list' or a task id prefix.
                       Running done on a completed task reopens it.
`

const rmHelpText = `planner rm - Delete a task

USAGE:
    planner rm [OPTIONS] REF

OPTIONS:
    -d, --date DATE    Day the REF number refers to (default: today)
    -h, --help         Show this help message

ARGUMENTS:
    REF                Number from 'planner list' or a task id prefix.
`

const listHelpText = `planner list - List the tasks of a day

USAGE:
    planner list [OPTIONS] [DATE]

OPTIONS:
    -r, --recent N     Show the N most recent tasks of any day instead
    --ids              Show task ids
    -h, --help         Show this help message

ARGUMENTS:
    DATE               Day to list (YYYY-MM-DD). Defaults to today.
`

// runAdd handles the "planner add" subcommand.
func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)

	emojiFlag := fs.String("emoji", "", "emoji shown before the task")
	fs.StringVar(emojiFlag, "e", "", "emoji (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, addHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(addHelpText)
		os.Exit(0)
	}

	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "Error: task text is required")
		fmt.Fprintln(os.Stderr, "Usage: planner add [--emoji EMOJI] TEXT")
		os.Exit(1)
	}

	_, p := openCLI()

	task, err := p.Add(text, *emojiFlag)
	if err != nil {
		fail("adding task: %v", err)
	}
	checkSaved(p)

	fmt.Printf("✓ Added: %s\n", taskLabel(task.Emoji, task.Text))
	printDaySummary(os.Stdout, p, task.Date)
}

// runDone handles the "planner done" subcommand.
func runDone(args []string) {
	runTaskEdit("done", doneHelpText, args, func(p *planner.Planner, id string) {
		task, err := p.Toggle(id)
		if err != nil {
			fail("toggling task: %v", err)
		}
		checkSaved(p)

		if task.Completed {
			fmt.Printf("✓ Done: %s\n", taskLabel(task.Emoji, task.Text))
		} else {
			fmt.Printf("↺ Reopened: %s\n", taskLabel(task.Emoji, task.Text))
		}
		printDaySummary(os.Stdout, p, task.Date)
	})
}

// runRemove handles the "planner rm" subcommand.
func runRemove(args []string) {
	runTaskEdit("rm", rmHelpText, args, func(p *planner.Planner, id string) {
		task, err := p.Remove(id)
		if err != nil {
			fail("deleting task: %v", err)
		}
		checkSaved(p)

		fmt.Printf("✓ Deleted: %s\n", taskLabel(task.Emoji, task.Text))
		printDaySummary(os.Stdout, p, task.Date)
	})
}

// runTaskEdit parses the flags shared by done and rm, resolves REF and
// hands the task id to apply.
func runTaskEdit(name, help string, args []string, apply func(p *planner.Planner, id string)) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)

	dateFlag := fs.String("date", "", "day the REF number refers to")
	fs.StringVar(dateFlag, "d", "", "day (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, help)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(help)
		os.Exit(0)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one task reference is required")
		fmt.Fprintf(os.Stderr, "Usage: planner %s REF\n", name)
		os.Exit(1)
	}

	_, p := openCLI()

	day := p.Today()
	if *dateFlag != "" {
		var err error
		if day, err = parseDay(*dateFlag); err != nil {
			fail("%v", err)
		}
	}

	// Numbers refer to the listed day; id prefixes match any task.
	candidates := p.TasksOn(day)
	if !isPosition(fs.Arg(0)) {
		candidates = p.Tasks()
	}
	task, err := resolveTask(candidates, fs.Arg(0))
	if err != nil {
		fail("%v", err)
	}

	apply(p, task.ID)
}

// runList handles the "planner list" subcommand.
func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)

	recentFlag := fs.Int("recent", 0, "show the N most recent tasks")
	fs.IntVar(recentFlag, "r", 0, "show the N most recent tasks (shorthand)")

	idsFlag := fs.Bool("ids", false, "show task ids")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, listHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(listHelpText)
		os.Exit(0)
	}

	if fs.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", fs.Args()[1:])
		os.Exit(1)
	}

	_, p := openCLI()

	if *recentFlag > 0 {
		printRecent(os.Stdout, p, *recentFlag, *idsFlag)
		return
	}

	day := p.Today()
	if fs.NArg() == 1 {
		var err error
		if day, err = parseDay(fs.Arg(0)); err != nil {
			fail("%v", err)
		}
	}
	printDay(os.Stdout, p, day, *idsFlag)
}

// printDay writes the numbered task list of a day and its summary.
func printDay(w io.Writer, p *planner.Planner, day string, ids bool) {
	detail := p.DayDetail(day)
	t, _ := dates.ParseKey(day)
	fmt.Fprintf(w, "%s (%s)\n", p.Locale().FormatLong(t), p.Locale().FormatRelative(day, p.Now()))

	if len(detail.Tasks) == 0 {
		fmt.Fprintln(w, "  No tasks.")
		return
	}
	for i, task := range detail.Tasks {
		fmt.Fprintf(w, "  %2d. %s %s", i+1, checkbox(task.Completed), taskLabel(task.Emoji, task.Text))
		if ids {
			fmt.Fprintf(w, "  [%s]", task.ID)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %d/%d complete · %d%%\n",
		detail.Stats.Completed, detail.Stats.Total, detail.Stats.CompletionRate)
}

// printRecent writes the newest tasks across all days.
func printRecent(w io.Writer, p *planner.Planner, n int, ids bool) {
	tasks := p.RecentTasks(n)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks yet.")
		return
	}
	fmt.Fprintln(w, "Recent tasks:")
	for _, task := range tasks {
		fmt.Fprintf(w, "  %s %-10s %s", checkbox(task.Completed),
			p.Locale().FormatRelative(task.Date, p.Now()), taskLabel(task.Emoji, task.Text))
		if ids {
			fmt.Fprintf(w, "  [%s]", task.ID)
		}
		fmt.Fprintln(w)
	}
}

// printDaySummary writes the one-line completion summary of a day.
func printDaySummary(w io.Writer, p *planner.Planner, day string) {
	s := p.StatsFor(day)
	if !s.HasTasks {
		fmt.Fprintf(w, "  %s: no tasks left\n", day)
		return
	}
	fmt.Fprintf(w, "  %s: %d/%d complete · %d%%\n", day, s.Completed, s.Total, s.CompletionRate)
}

func checkbox(done bool) string {
	if done {
		return "[✓]"
	}
	return "[ ]"
}

func taskLabel(emoji, text string) string {
	if emoji == "" {
		return text
	}
	return emoji + " " + text
}

// isPosition reports whether ref is read as a list number.
func isPosition(ref string) bool {
	n := 0
	for _, r := range strings.TrimSpace(ref) {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
		if n > maxPosition {
			return false
		}
	}
	return strings.TrimSpace(ref) != ""
}
