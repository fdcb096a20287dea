// Package main is the entry point for the planner application.
// This file contains the calendar subcommand handler.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"planner/internal/calendar"
	"planner/internal/planner"
	"planner/internal/reports"
	"planner/internal/ui"
)

const calendarHelpText = `planner calendar - Show the calendar month

USAGE:
    planner calendar [OPTIONS]

OPTIONS:
    -p, --prev          Move to the previous month
    -n, --next          Move to the next month
    -t, --today         Move to the current month
    -m, --month YYYY-MM Move to a specific month
    -h, --help          Show this help message

DESCRIPTION:
    Prints the month shown by the calendar pane as a Monday-first grid.
    Moving the calendar here also moves it in the TUI.

    Marks:  ✓ every task done   • some tasks done   · nothing done yet
    Colors: green ≥ 80%, yellow ≥ 50%, red below

EXAMPLES:
    planner calendar
    planner calendar --prev
    planner calendar --month 2024-02
`

// runCalendar handles the "planner calendar" subcommand.
func runCalendar(args []string) {
	fs := flag.NewFlagSet("calendar", flag.ExitOnError)

	prevFlag := fs.Bool("prev", false, "move to the previous month")
	fs.BoolVar(prevFlag, "p", false, "previous month (shorthand)")

	nextFlag := fs.Bool("next", false, "move to the next month")
	fs.BoolVar(nextFlag, "n", false, "next month (shorthand)")

	todayFlag := fs.Bool("today", false, "move to the current month")
	fs.BoolVar(todayFlag, "t", false, "current month (shorthand)")

	monthFlag := fs.String("month", "", "move to a specific month (YYYY-MM)")
	fs.StringVar(monthFlag, "m", "", "specific month (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, calendarHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(calendarHelpText)
		os.Exit(0)
	}

	moves := 0
	for _, set := range []bool{*prevFlag, *nextFlag, *todayFlag, *monthFlag != ""} {
		if set {
			moves++
		}
	}
	if moves > 1 {
		fmt.Fprintln(os.Stderr, "Error: use only one of --prev, --next, --today and --month")
		os.Exit(1)
	}

	cfg, p := openCLI()

	switch {
	case *prevFlag:
		p.PreviousMonth()
	case *nextFlag:
		p.NextMonth()
	case *todayFlag:
		p.JumpToToday()
	case *monthFlag != "":
		year, month, err := parseMonth(*monthFlag)
		if err != nil {
			fail("%v", err)
		}
		if _, err := p.ShowMonth(year, month); err != nil {
			fail("%v", err)
		}
	}
	if moves > 0 {
		checkSaved(p)
	}

	printCalendar(os.Stdout, p, ui.NewStyles(cfg))
}

// printCalendar writes the current month grid followed by the month summary.
func printCalendar(w io.Writer, p *planner.Planner, styles *ui.Styles) {
	view := p.CalendarView()
	title, err := p.Locale().MonthTitle(view.Year, view.Month)
	if err != nil {
		fail("%v", err)
	}

	other := lipgloss.NewStyle().Foreground(styles.ColorMuted)
	today := lipgloss.NewStyle().Bold(true).Underline(true)

	fmt.Fprintf(w, "%s\n", lipgloss.NewStyle().Bold(true).Render(title))
	labels := p.Locale().WeekdayLabels()
	for _, l := range labels {
		fmt.Fprintf(w, " %-3s", l)
	}
	fmt.Fprintln(w)

	grid, err := p.Grid()
	if err != nil {
		fail("building calendar: %v", err)
	}
	for _, week := range calendar.Weeks(grid) {
		var b strings.Builder
		for _, cell := range week {
			text := fmt.Sprintf("%3d%s", cell.Day, dayMark(cell))
			style := styles.BucketStyle(reports.BucketFor(cell.Stats))
			switch {
			case !cell.InMonth:
				style = other
			case cell.IsToday:
				style = style.Inherit(today)
			}
			b.WriteString(style.Render(text))
		}
		fmt.Fprintln(w, b.String())
	}

	summary, err := p.Reports().MonthlyStats(view.Year, view.Month)
	if err != nil {
		fail("%v", err)
	}
	fmt.Fprintln(w)
	if !summary.HasData() {
		fmt.Fprintln(w, "No tasks this month.")
		return
	}
	fmt.Fprintf(w, "%d days with tasks · %d/%d done · average %d%%\n",
		summary.DaysWithTasks, summary.TasksCompleted, summary.TasksTotal, summary.AverageCompletion)
}

func dayMark(cell calendar.Cell) string {
	switch {
	case !cell.HasTasks():
		return " "
	case cell.FullyCompleted():
		return "✓"
	case cell.PartiallyCompleted():
		return "•"
	default:
		return "·"
	}
}
