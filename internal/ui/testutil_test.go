package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"planner/internal/config"
	"planner/internal/planner"
	"planner/internal/storage"
)

// testNow is the fixed clock of every UI test: Wednesday 2024-03-13, 09:30.
var testNow = time.Date(2024, time.March, 13, 9, 30, 0, 0, time.Local)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors so rendered output can be compared as plain text.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage instance with a temporary directory.
func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return store
}

// createTestPlanner opens a planner over fresh storage with the test clock.
func createTestPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	return openTestPlanner(t, createTestStorage(t))
}

func openTestPlanner(t *testing.T, store planner.Store) *planner.Planner {
	t.Helper()
	ids := 0
	p, err := planner.Open(store, planner.Options{
		Now: func() time.Time { return testNow },
		NewID: func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		},
	})
	if err != nil {
		t.Fatalf("failed to open planner: %v", err)
	}
	return p
}

// addTestTasks adds tasks for today and marks the first done of them
// completed.
func addTestTasks(t *testing.T, p *planner.Planner, done int, texts ...string) []storage.Task {
	t.Helper()
	var tasks []storage.Task
	for i, text := range texts {
		task, err := p.Add(text, "")
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", text, err)
		}
		if i < done {
			if task, err = p.Toggle(task.ID); err != nil {
				t.Fatalf("Toggle(%q) failed: %v", text, err)
			}
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// createTestApp builds an app without onboarding or delete confirmations,
// sized to width x height.
func createTestApp(t *testing.T, p *planner.Planner, width, height int) *App {
	t.Helper()
	app := NewApp(p, createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		NarrowLayoutThreshold: 80,
	})
	app.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return app
}

// runCmd executes cmd and feeds planner results back into the app, the way
// the Bubble Tea runtime would. Other messages, such as cursor blinks and
// quit, are dropped, and commands still waiting on a timer are abandoned.
func runCmd(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(300 * time.Millisecond):
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(app, c)
		}
	case taskAddedMsg, taskToggledMsg, taskDeletedMsg,
		templateAddedMsg, templateDeletedMsg, calendarMovedMsg, onboardingSavedMsg:
		_, next := app.Update(msg)
		runCmd(app, next)
	}
}

// press sends a key to the app and runs the resulting command.
func press(app *App, keys ...string) {
	for _, k := range keys {
		_, cmd := app.Update(keyMsg(k))
		runCmd(app, cmd)
	}
}

// keyMsg builds the tea.KeyMsg for a key name as String() reports it.
func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// typeText sends each rune of s as a key press. Typing only edits the input,
// so the returned cursor commands are ignored.
func typeText(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
