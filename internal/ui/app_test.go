// Package ui provides terminal user interface components for the planner.
// This file contains tests for the main App model, including layout behavior.
package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/config"
	"planner/internal/storage"
)

// TestApp_LayoutModeTransitions verifies layout mode changes based on width.
func TestApp_LayoutModeTransitions(t *testing.T) {
	app := createTestApp(t, createTestPlanner(t), 120, 30)

	tests := []struct {
		name         string
		width        int
		expectedMode LayoutMode
	}{
		{"Very narrow (40)", 40, LayoutNarrow},
		{"Narrow (60)", 60, LayoutNarrow},
		{"At threshold (79)", 79, LayoutNarrow},
		{"At threshold (80)", 80, LayoutWide},
		{"Wide (100)", 100, LayoutWide},
		{"Very wide (200)", 200, LayoutWide},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app.Update(tea.WindowSizeMsg{Width: tc.width, Height: 30})

			if app.layoutMode != tc.expectedMode {
				t.Errorf("Width %d: expected layout mode %v, got %v",
					tc.width, tc.expectedMode, app.layoutMode)
			}
		})
	}
}

// TestApp_NarrowLayoutShowsOnlyActivePane verifies only the focused pane is
// shown in narrow mode.
func TestApp_NarrowLayoutShowsOnlyActivePane(t *testing.T) {
	setupTest(t)
	app := createTestApp(t, createTestPlanner(t), 60, 30)

	if app.activePane != PaneToday {
		t.Errorf("Expected default active pane to be Today, got %v", app.activePane)
	}

	view := app.View()

	if !strings.Contains(view, "[Today]") {
		t.Error("Expected to see [Today] tab highlighted in narrow mode")
	}
	for _, tab := range []string{"Templates", "Calendar", "Stats"} {
		if !strings.Contains(view, tab) {
			t.Errorf("Expected to see %s tab in narrow mode", tab)
		}
	}
	if strings.Contains(view, "MARCH 2024") {
		t.Error("Calendar pane should be hidden while Today is focused")
	}
}

// TestApp_WideLayoutShowsAllPanes verifies all panes are shown in wide mode.
func TestApp_WideLayoutShowsAllPanes(t *testing.T) {
	setupTest(t)
	app := createTestApp(t, createTestPlanner(t), 140, 50)

	if app.layoutMode != LayoutWide {
		t.Fatalf("Expected LayoutWide at width 140, got %v", app.layoutMode)
	}

	view := app.View()

	for _, title := range []string{"TODAY", "TEMPLATES", "MARCH 2024", "STATS"} {
		if !strings.Contains(view, title) {
			t.Errorf("Expected to see %s pane in wide mode", title)
		}
	}
}

// TestApp_CustomThreshold verifies custom threshold configuration.
func TestApp_CustomThreshold(t *testing.T) {
	app := NewApp(createTestPlanner(t), createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		NarrowLayoutThreshold: 120,
	})

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if app.layoutMode != LayoutNarrow {
		t.Errorf("Width 100 with threshold 120: expected LayoutNarrow, got %v", app.layoutMode)
	}

	app.Update(tea.WindowSizeMsg{Width: 130, Height: 30})
	if app.layoutMode != LayoutWide {
		t.Errorf("Width 130 with threshold 120: expected LayoutWide, got %v", app.layoutMode)
	}
}

// TestApp_PaneSwitching verifies tab cycling and direct pane keys.
func TestApp_PaneSwitching(t *testing.T) {
	app := createTestApp(t, createTestPlanner(t), 60, 30)

	want := []PaneID{PaneTemplates, PaneCalendar, PaneStats, PaneToday}
	for _, pane := range want {
		press(app, "tab")
		if app.activePane != pane {
			t.Fatalf("after tab: expected %v, got %v", pane, app.activePane)
		}
	}

	press(app, "shift+tab")
	if app.activePane != PaneStats {
		t.Errorf("shift+tab from Today: expected Stats, got %v", app.activePane)
	}

	press(app, "3")
	if app.activePane != PaneCalendar {
		t.Errorf("3: expected Calendar, got %v", app.activePane)
	}
	if !app.calendarPane.focused || app.todayPane.focused {
		t.Error("focus flags should follow the active pane")
	}
}

// TestApp_AddTask walks the add flow from key press to stored task.
func TestApp_AddTask(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	app := createTestApp(t, p, 140, 40)

	press(app, "a")
	if !app.inInputMode() {
		t.Fatal("expected input mode after 'a'")
	}
	typeText(app, "💪 Push-ups")
	press(app, "enter")

	tasks := p.TasksOn(p.Today())
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task today, got %d", len(tasks))
	}
	if tasks[0].Text != "Push-ups" || tasks[0].Emoji != "💪" {
		t.Errorf("task = %q %q, want emoji 💪 and text Push-ups", tasks[0].Emoji, tasks[0].Text)
	}
	if app.status != "Added: Push-ups" || app.statusErr {
		t.Errorf("status = %q (err %v), want success", app.status, app.statusErr)
	}
	if !strings.Contains(app.View(), "0/1 complete") {
		t.Error("today pane should show the new task count")
	}
}

// TestApp_AddTaskRejectsEmptyInput verifies blank input adds nothing.
func TestApp_AddTaskRejectsEmptyInput(t *testing.T) {
	p := createTestPlanner(t)
	app := createTestApp(t, p, 140, 40)

	press(app, "a")
	typeText(app, "   ")
	press(app, "enter")

	if n := len(p.Tasks()); n != 0 {
		t.Errorf("expected no tasks, got %d", n)
	}
	if app.inInputMode() {
		t.Error("enter should leave input mode")
	}
}

// TestApp_ToggleTask verifies toggling updates the task and the status bar.
func TestApp_ToggleTask(t *testing.T) {
	p := createTestPlanner(t)
	addTestTasks(t, p, 0, "Read a chapter")
	app := createTestApp(t, p, 140, 40)

	press(app, "d")

	if !p.Tasks()[0].Completed {
		t.Fatal("task should be completed")
	}
	if app.status != "Done: Read a chapter" {
		t.Errorf("status = %q", app.status)
	}
	if done, total := app.todayPane.Stats(); done != 1 || total != 1 {
		t.Errorf("today stats = %d/%d, want 1/1", done, total)
	}

	press(app, " ")
	if p.Tasks()[0].Completed {
		t.Error("space should reopen the task")
	}
	if app.status != "Reopened: Read a chapter" {
		t.Errorf("status = %q", app.status)
	}
}

// TestApp_DeleteConfirmation verifies the confirm dialog guards deletes.
func TestApp_DeleteConfirmation(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	addTestTasks(t, p, 0, "Call the bank")
	app := NewApp(p, createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmDeletions:      true,
		NarrowLayoutThreshold: 80,
	})
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})

	press(app, "x")
	if app.confirmDel == nil {
		t.Fatal("expected a confirmation dialog")
	}
	view := app.View()
	if !strings.Contains(view, "Delete task?") || !strings.Contains(view, "Call the bank") {
		t.Errorf("dialog should name the task, got:\n%s", view)
	}

	press(app, "n")
	if app.confirmDel != nil || len(p.Tasks()) != 1 {
		t.Fatal("n should cancel without deleting")
	}
	if app.status != "Canceled" {
		t.Errorf("status = %q, want Canceled", app.status)
	}

	press(app, "x", "y")
	if len(p.Tasks()) != 0 {
		t.Error("y should delete the task")
	}
	if app.status != "Deleted: Call the bank" {
		t.Errorf("status = %q", app.status)
	}
}

// TestApp_DeleteTemplateConfirmation verifies templates use the same dialog.
func TestApp_DeleteTemplateConfirmation(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	app := NewApp(p, createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmDeletions:      true,
		NarrowLayoutThreshold: 80,
	})
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	before := len(p.Templates())

	press(app, "2", "x")
	if app.confirmDel == nil || !strings.Contains(app.View(), "Delete template?") {
		t.Fatal("expected the template confirmation dialog")
	}
	press(app, "enter")

	if got := len(p.Templates()); got != before-1 {
		t.Errorf("templates = %d, want %d", got, before-1)
	}
}

// TestApp_AddFromTemplate verifies a template becomes today's task.
func TestApp_AddFromTemplate(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	app := createTestApp(t, p, 140, 40)
	tpl := p.Templates()[0]

	press(app, "2", "enter")

	tasks := p.TasksOn(p.Today())
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].FromTemplate != tpl.ID || tasks[0].Text != tpl.Text {
		t.Errorf("task = %+v, want copy of template %+v", tasks[0], tpl)
	}
	if !app.templatesPane.usedToday[tpl.ID] {
		t.Error("templates pane should mark the template as used today")
	}
	if done, total := app.todayPane.Stats(); done != 0 || total != 1 {
		t.Errorf("today pane should see the new task, got %d/%d", done, total)
	}
}

// TestApp_CalendarNavigation verifies month keys move the persisted view.
func TestApp_CalendarNavigation(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	app := createTestApp(t, p, 140, 40)

	press(app, "3", "]")
	if v := p.CalendarView(); v.Year != 2024 || v.Month != 3 {
		t.Fatalf("view = %+v, want April 2024", v)
	}
	if !strings.Contains(app.View(), "APRIL 2024") {
		t.Error("calendar should show April")
	}
	if got := app.calendarPane.SelectedDate(); got != "2024-04-01" {
		t.Errorf("selection = %s, want the 1st of the new month", got)
	}

	press(app, "[", "[")
	if v := p.CalendarView(); v.Year != 2024 || v.Month != 1 {
		t.Fatalf("view = %+v, want February 2024", v)
	}

	press(app, "t")
	if v := p.CalendarView(); v.Month != 2 {
		t.Errorf("view = %+v, want March 2024", v)
	}
	if got := app.calendarPane.SelectedDate(); got != "2024-03-13" {
		t.Errorf("selection = %s, want today", got)
	}
}

// TestApp_WelcomeScreen verifies onboarding is shown once and saved.
func TestApp_WelcomeScreen(t *testing.T) {
	setupTest(t)
	saved := false
	app := NewApp(createTestPlanner(t), createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		ShowOnboarding:        true,
		NarrowLayoutThreshold: 80,
		OnboardingDone: func() error {
			saved = true
			return nil
		},
	})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if !strings.Contains(app.View(), "Welcome to planner") {
		t.Fatal("expected the welcome screen on first run")
	}

	press(app, "a")
	if app.showWelcome {
		t.Error("any key should dismiss the welcome screen")
	}
	if !saved {
		t.Error("dismissing should record onboarding as done")
	}
	if app.inInputMode() {
		t.Error("the dismissing key should not reach the pane")
	}
}

// TestApp_WelcomeSkippedWithTasks verifies returning users skip onboarding.
func TestApp_WelcomeSkippedWithTasks(t *testing.T) {
	p := createTestPlanner(t)
	addTestTasks(t, p, 0, "Existing")
	app := NewApp(p, createTestStyles(), &AppConfig{
		Keys:           &config.KeysConfig{},
		ShowOnboarding: true,
	})
	if app.showWelcome {
		t.Error("welcome screen should be skipped when tasks exist")
	}
}

// failingStore rejects task writes.
type failingStore struct {
	*storage.Storage
}

func (failingStore) SaveTasks(*storage.TaskStore) error {
	return &storage.PersistenceError{Key: storage.KeyTasks, Op: "write", Err: errors.New("disk full")}
}

// TestApp_PersistenceErrorStatus verifies a failed save is reported while the
// change stays visible.
func TestApp_PersistenceErrorStatus(t *testing.T) {
	p := openTestPlanner(t, failingStore{createTestStorage(t)})
	app := createTestApp(t, p, 140, 40)

	press(app, "a")
	typeText(app, "Unsaved")
	press(app, "enter")

	if len(p.Tasks()) != 1 {
		t.Fatal("the task should be kept in memory")
	}
	if !app.statusErr || !strings.HasPrefix(app.status, "Not saved:") {
		t.Errorf("status = %q (err %v), want a save error", app.status, app.statusErr)
	}
}

// TestApp_TitleBar verifies the title bar shows today's progress.
func TestApp_TitleBar(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	addTestTasks(t, p, 1, "One", "Two")
	app := createTestApp(t, p, 140, 40)

	title := app.renderTitleBar()
	if !strings.Contains(title, "planner") {
		t.Error("title bar should name the app")
	}
	if !strings.Contains(title, "Today: 1/2 · 50%") {
		t.Errorf("title bar should show progress, got %q", title)
	}
	if !strings.Contains(title, "2024") {
		t.Errorf("title bar should show the date, got %q", title)
	}
}

// TestApp_Quit verifies the goodbye screen.
func TestApp_Quit(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	addTestTasks(t, p, 1, "One", "Two")
	app := createTestApp(t, p, 140, 40)

	_, cmd := app.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	view := app.View()
	if !strings.Contains(view, "See you later!") || !strings.Contains(view, "Tasks: 1/2 (50%)") {
		t.Errorf("unexpected goodbye screen:\n%s", view)
	}
}

// TestApp_PlannerEventsRefreshPanes verifies changes made outside the UI
// reach every pane through the forwarded events.
func TestApp_PlannerEventsRefreshPanes(t *testing.T) {
	p := createTestPlanner(t)
	app := createTestApp(t, p, 140, 40)

	var pending []tea.Msg
	app.Subscribe(func(msg tea.Msg) { pending = append(pending, msg) })

	addTestTasks(t, p, 1, "From the CLI")
	if len(pending) == 0 {
		t.Fatal("expected forwarded planner events")
	}
	for _, msg := range pending {
		app.Update(msg)
	}

	if done, total := app.todayPane.Stats(); done != 1 || total != 1 {
		t.Errorf("today pane = %d/%d, want 1/1", done, total)
	}
	if app.statsPane.overall.TotalTasks != 1 {
		t.Errorf("stats pane total = %d, want 1", app.statsPane.overall.TotalTasks)
	}
}
