// Package calendar builds the month grid and tracks which month is shown.
package calendar

import (
	"planner/internal/dates"
	"planner/internal/storage"
)

// GridSize is the number of cells in a month grid: six Monday-first weeks.
const GridSize = 42

// Class names attached to cells for renderers.
const (
	ClassCurrentMonth     = "current-month"
	ClassOtherMonth       = "other-month"
	ClassToday            = "today"
	ClassHasTasks         = "has-tasks"
	ClassCompleted        = "completed-100"
	ClassPartialCompleted = "completed-partial"
)

// Lookup resolves the statistics of a date.
type Lookup interface {
	StatsFor(dateKey string) storage.DayStats
}

// Cell is one day of the grid.
type Cell struct {
	Date    string
	Day     int
	Weekday int // ISO, 1 = Monday
	InMonth bool
	IsToday bool
	Stats   storage.DayStats
}

// HasTasks reports whether any task is scheduled on the cell's date.
func (c Cell) HasTasks() bool { return c.Stats.HasTasks }

// FullyCompleted reports whether every task of the date is done.
func (c Cell) FullyCompleted() bool {
	return c.Stats.HasTasks && c.Stats.CompletionRate == 100
}

// PartiallyCompleted reports a rate strictly between 0 and 100.
func (c Cell) PartiallyCompleted() bool {
	return c.Stats.HasTasks && c.Stats.CompletionRate > 0 && c.Stats.CompletionRate < 100
}

// Classes returns the renderer class names that apply to the cell.
func (c Cell) Classes() []string {
	classes := make([]string, 0, 4)
	if c.InMonth {
		classes = append(classes, ClassCurrentMonth)
	} else {
		classes = append(classes, ClassOtherMonth)
	}
	if c.IsToday {
		classes = append(classes, ClassToday)
	}
	if c.HasTasks() {
		classes = append(classes, ClassHasTasks)
		switch {
		case c.FullyCompleted():
			classes = append(classes, ClassCompleted)
		case c.PartiallyCompleted():
			classes = append(classes, ClassPartialCompleted)
		}
	}
	return classes
}

// BuildGrid returns the 42 cells shown for the zero-based month of year. The
// first cell is the Monday on or before the 1st; cells before the 1st and
// after the last day belong to the neighbouring months. stats may be nil.
func BuildGrid(year, month int, todayKey string, stats Lookup) ([]Cell, error) {
	if err := dates.ValidateMonth(month); err != nil {
		return nil, err
	}

	first := dates.LocalDate(year, month, 1)
	start := first.AddDate(0, 0, -(dates.ISOWeekday(first) - 1))

	cells := make([]Cell, GridSize)
	for i := range cells {
		d := start.AddDate(0, 0, i)
		key := dates.Key(d)
		cell := Cell{
			Date:    key,
			Day:     d.Day(),
			Weekday: dates.ISOWeekday(d),
			InMonth: int(d.Month())-1 == month && d.Year() == year,
			IsToday: key == todayKey,
		}
		if stats != nil {
			cell.Stats = stats.StatsFor(key)
		}
		cells[i] = cell
	}
	return cells, nil
}

// Weeks splits a grid into rows of seven.
func Weeks(cells []Cell) [][]Cell {
	weeks := make([][]Cell, 0, len(cells)/7+1)
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		weeks = append(weeks, cells[i:end])
	}
	return weeks
}
