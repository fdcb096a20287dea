package planner

import (
	"planner/internal/calendar"
	"planner/internal/storage"
)

// Op names the mutation behind a TaskListChanged event.
type Op string

const (
	OpAdd     Op = "add"
	OpToggle  Op = "toggle"
	OpRemove  Op = "remove"
	OpImport  Op = "import"
	OpRebuild Op = "rebuild"
)

// TaskListChanged is emitted after every task mutation, once the cache has
// been refreshed for the affected dates.
type TaskListChanged struct {
	Op    Op
	Task  *storage.Task // the task added, toggled or removed; nil for bulk ops
	Dates []string
	Stats map[string]storage.DayStats // statistics of Dates after the change
	Err   error                       // persistence failure, if any
}

// CalendarChanged is emitted after every calendar navigation.
type CalendarChanged struct {
	View storage.CalendarView
	Grid []calendar.Cell
	Err  error // persistence or grid failure, if any
}

// OnTaskListChanged registers fn to run after every task mutation.
// Listeners run on the goroutine that made the change, after the planner's
// lock is released, so they may call back into the planner.
func (p *Planner) OnTaskListChanged(fn func(TaskListChanged)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.taskListeners = append(p.taskListeners, fn)
}

// OnCalendarChanged registers fn to run after every calendar navigation.
func (p *Planner) OnCalendarChanged(fn func(CalendarChanged)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calendarListeners = append(p.calendarListeners, fn)
}

func (p *Planner) emitTasks(ev TaskListChanged) {
	p.mu.Lock()
	listeners := append([]func(TaskListChanged){}, p.taskListeners...)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

func (p *Planner) emitCalendar(ev CalendarChanged) {
	p.mu.Lock()
	listeners := append([]func(CalendarChanged){}, p.calendarListeners...)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}
