package planner

import (
	"errors"

	"planner/internal/calendar"
	"planner/internal/storage"
)

// CalendarView returns the month the calendar shows.
func (p *Planner) CalendarView() storage.CalendarView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nav.View()
}

// Grid returns the 42 cells of the month the calendar shows.
func (p *Planner) Grid() ([]calendar.Cell, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nav.Grid(p.cache)
}

// PreviousMonth moves the calendar one month back.
func (p *Planner) PreviousMonth() storage.CalendarView {
	return p.navigate(func(n *calendar.Navigator) { n.Previous() })
}

// NextMonth moves the calendar one month forward.
func (p *Planner) NextMonth() storage.CalendarView {
	return p.navigate(func(n *calendar.Navigator) { n.Next() })
}

// JumpToToday moves the calendar to the current month.
func (p *Planner) JumpToToday() storage.CalendarView {
	return p.navigate(func(n *calendar.Navigator) { n.JumpToToday() })
}

// ShowMonth moves the calendar to the zero-based month of year.
func (p *Planner) ShowMonth(year, month int) (storage.CalendarView, error) {
	var err error
	view := p.navigate(func(n *calendar.Navigator) {
		_, err = n.Set(year, month)
	})
	return view, err
}

func (p *Planner) navigate(move func(n *calendar.Navigator)) storage.CalendarView {
	p.mu.Lock()
	before := p.nav.View()
	move(p.nav)
	view := p.nav.View()
	if view == before {
		p.mu.Unlock()
		return view
	}

	err := asPersistence(storage.KeyCalendar, p.store.SaveCalendar(view))
	p.notePersist(err)
	grid, gridErr := p.nav.Grid(p.cache)
	if gridErr != nil {
		p.log.Error("build calendar grid", "view", view, "err", gridErr)
	}
	ev := CalendarChanged{View: view, Grid: grid, Err: errors.Join(err, gridErr)}
	p.mu.Unlock()

	p.emitCalendar(ev)
	return view
}
