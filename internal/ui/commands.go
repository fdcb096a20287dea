// Package ui provides the terminal user interface of the planner.
// This file contains tea.Cmd factories that wrap planner mutations. Each
// mutation writes to disk, so it runs asynchronously to keep the Bubble Tea
// event loop responsive. Each command returns a corresponding message type
// defined in messages.go.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/planner"
)

// =============================================================================
// Task Commands
// =============================================================================

// addTaskCmd returns a command that creates a task for today.
func addTaskCmd(p *planner.Planner, text, emoji string) tea.Cmd {
	return func() tea.Msg {
		task, err := p.Add(text, emoji)
		return taskAddedMsg{task: task, err: err}
	}
}

// addFromTemplateCmd returns a command that creates today's task from a template.
func addFromTemplateCmd(p *planner.Planner, templateID string) tea.Cmd {
	return func() tea.Msg {
		task, err := p.AddFromTemplate(templateID)
		return taskAddedMsg{task: task, err: err}
	}
}

// toggleTaskCmd returns a command that flips a task's completion.
func toggleTaskCmd(p *planner.Planner, id string) tea.Cmd {
	return func() tea.Msg {
		task, err := p.Toggle(id)
		return taskToggledMsg{task: task, err: err}
	}
}

// deleteTaskCmd returns a command that removes a task.
func deleteTaskCmd(p *planner.Planner, id string) tea.Cmd {
	return func() tea.Msg {
		task, err := p.Remove(id)
		return taskDeletedMsg{task: task, err: err}
	}
}

// =============================================================================
// Template Commands
// =============================================================================

// addTemplateCmd returns a command that creates a template.
func addTemplateCmd(p *planner.Planner, text, emoji string) tea.Cmd {
	return func() tea.Msg {
		tpl, err := p.AddTemplate(text, emoji)
		return templateAddedMsg{template: tpl, err: err}
	}
}

// deleteTemplateCmd returns a command that removes a template.
func deleteTemplateCmd(p *planner.Planner, id string) tea.Cmd {
	return func() tea.Msg {
		return templateDeletedMsg{id: id, err: p.DeleteTemplate(id)}
	}
}

// =============================================================================
// Calendar Commands
// =============================================================================

func previousMonthCmd(p *planner.Planner) tea.Cmd {
	return func() tea.Msg {
		return calendarMovedMsg{view: p.PreviousMonth()}
	}
}

func nextMonthCmd(p *planner.Planner) tea.Cmd {
	return func() tea.Msg {
		return calendarMovedMsg{view: p.NextMonth()}
	}
}

func jumpToTodayCmd(p *planner.Planner) tea.Cmd {
	return func() tea.Msg {
		return calendarMovedMsg{view: p.JumpToToday()}
	}
}
