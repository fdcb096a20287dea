// Package ui provides the terminal user interface of the planner.
// This file defines message types for planner operations run through the
// Bubble Tea command pattern. Every mutation persists to disk, so it runs in
// a tea.Cmd and reports back with one of these messages.
package ui

import (
	"planner/internal/planner"
	"planner/internal/storage"
)

// =============================================================================
// Task Messages
// =============================================================================

// taskAddedMsg is sent when a new task is created.
type taskAddedMsg struct {
	task storage.Task
	err  error
}

// taskToggledMsg is sent when a task's completion flips.
type taskToggledMsg struct {
	task storage.Task
	err  error
}

// taskDeletedMsg is sent when a task is removed.
type taskDeletedMsg struct {
	task storage.Task
	err  error
}

// =============================================================================
// Template Messages
// =============================================================================

// templateAddedMsg is sent when a new template is created.
type templateAddedMsg struct {
	template storage.Template
	err      error
}

// templateDeletedMsg is sent when a template is removed.
type templateDeletedMsg struct {
	id  string
	err error
}

// =============================================================================
// Calendar Messages
// =============================================================================

// calendarMovedMsg is sent when a navigation command returns.
type calendarMovedMsg struct {
	view storage.CalendarView
	err  error
}

// =============================================================================
// Planner Events
// =============================================================================

// tasksChangedMsg carries a planner task event into the event loop.
type tasksChangedMsg planner.TaskListChanged

// calendarChangedMsg carries a planner calendar event into the event loop.
type calendarChangedMsg planner.CalendarChanged
