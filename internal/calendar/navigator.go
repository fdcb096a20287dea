package calendar

import (
	"time"

	"planner/internal/dates"
	"planner/internal/storage"
)

// Navigator tracks the month the calendar shows. It holds no persistence of
// its own; callers save View after each move.
type Navigator struct {
	view storage.CalendarView
	now  func() time.Time
}

// NewNavigator starts at view. A view with an invalid month starts at the
// current month instead.
func NewNavigator(view storage.CalendarView, now func() time.Time) *Navigator {
	if now == nil {
		now = time.Now
	}
	n := &Navigator{view: view, now: now}
	if dates.ValidateMonth(view.Month) != nil || view.Year == 0 {
		n.JumpToToday()
	}
	return n
}

// View returns the month currently shown.
func (n *Navigator) View() storage.CalendarView {
	return n.view
}

// Previous moves one month back, rolling into the previous year after January.
func (n *Navigator) Previous() storage.CalendarView {
	n.view.Year, n.view.Month = dates.ShiftMonth(n.view.Year, n.view.Month, -1)
	return n.view
}

// Next moves one month forward, rolling into the next year after December.
func (n *Navigator) Next() storage.CalendarView {
	n.view.Year, n.view.Month = dates.ShiftMonth(n.view.Year, n.view.Month, 1)
	return n.view
}

// JumpToToday shows the month containing today's date.
func (n *Navigator) JumpToToday() storage.CalendarView {
	n.view.Year, n.view.Month = dates.YearMonth(n.now())
	return n.view
}

// Set shows the zero-based month of year.
func (n *Navigator) Set(year, month int) (storage.CalendarView, error) {
	if err := dates.ValidateMonth(month); err != nil {
		return n.view, err
	}
	n.view = storage.CalendarView{Year: year, Month: month}
	return n.view, nil
}

// Grid builds the grid for the current view.
func (n *Navigator) Grid(stats Lookup) ([]Cell, error) {
	return BuildGrid(n.view.Year, n.view.Month, dates.Today(n.now()), stats)
}
