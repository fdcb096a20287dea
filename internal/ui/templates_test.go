package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/config"
	"planner/internal/planner"
)

func newTestTemplatesPane(t *testing.T, p *planner.Planner) *TemplatesPane {
	t.Helper()
	pane := NewTemplatesPane(p, createTestStyles(), &config.KeysConfig{})
	pane.SetSize(50, 20)
	pane.SetFocused(true)
	return pane
}

func typeInto(pane interface{ Update(tea.Msg) tea.Cmd }, s string) {
	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestTemplatesPane_ShowsSeededCatalog(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	pane := newTestTemplatesPane(t, p)

	view := pane.View()
	if !strings.Contains(view, "TEMPLATES") {
		t.Error("view should have the pane title")
	}
	for _, tpl := range p.Templates() {
		if !strings.Contains(view, tpl.Text) {
			t.Errorf("view should list template %q", tpl.Text)
		}
	}
	if !strings.Contains(view, "▶ ") {
		t.Error("focused pane should mark the cursor row")
	}
}

func TestTemplatesPane_TwoStepAdd(t *testing.T) {
	p := createTestPlanner(t)
	pane := newTestTemplatesPane(t, p)

	pane.Update(keyMsg("a"))
	typeInto(pane, "Water plants")
	if cmd := pane.Update(keyMsg("enter")); cmd != nil {
		t.Fatal("the first enter should only move to the emoji step")
	}
	if !pane.IsAdding() || pane.addStep != 1 {
		t.Fatalf("expected the emoji step, got adding=%v step=%d", pane.IsAdding(), pane.addStep)
	}

	typeInto(pane, "🪴")
	cmd := pane.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("the second enter should add the template")
	}
	msg, ok := cmd().(templateAddedMsg)
	if !ok || msg.err != nil {
		t.Fatalf("unexpected result %+v", msg)
	}
	if msg.template.Text != "Water plants" || msg.template.Emoji != "🪴" {
		t.Errorf("template = %+v", msg.template)
	}
	if pane.IsAdding() {
		t.Error("add mode should end after saving")
	}

	pane.Update(msg)
	if last := pane.templates[len(pane.templates)-1]; last.ID != msg.template.ID {
		t.Error("pane should list the new template")
	}
}

func TestTemplatesPane_DefaultEmoji(t *testing.T) {
	p := createTestPlanner(t)
	pane := newTestTemplatesPane(t, p)

	pane.Update(keyMsg("a"))
	typeInto(pane, "Journal")
	pane.Update(keyMsg("enter"))
	cmd := pane.Update(keyMsg("enter"))

	msg := cmd().(templateAddedMsg)
	if msg.template.Emoji != planner.DefaultTemplateEmoji {
		t.Errorf("emoji = %q, want default %q", msg.template.Emoji, planner.DefaultTemplateEmoji)
	}
}

func TestTemplatesPane_EmptyTextStaysOnFirstStep(t *testing.T) {
	p := createTestPlanner(t)
	pane := newTestTemplatesPane(t, p)

	pane.Update(keyMsg("a"))
	typeInto(pane, "   ")
	pane.Update(keyMsg("enter"))

	if !pane.IsAdding() || pane.addStep != 0 {
		t.Errorf("blank text should keep the text step, got adding=%v step=%d", pane.IsAdding(), pane.addStep)
	}

	pane.Update(keyMsg("esc"))
	if pane.IsAdding() {
		t.Error("esc should cancel")
	}
}

func TestTemplatesPane_AddToToday(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	pane := newTestTemplatesPane(t, p)
	pane.Update(keyMsg("j"))
	tpl, _ := pane.Selected()

	cmd := pane.Update(keyMsg("enter"))
	msg, ok := cmd().(taskAddedMsg)
	if !ok || msg.err != nil {
		t.Fatalf("unexpected result %+v", msg)
	}
	if msg.task.FromTemplate != tpl.ID || msg.task.Emoji != tpl.Emoji {
		t.Errorf("task = %+v, want a copy of %+v", msg.task, tpl)
	}

	pane.Update(msg)
	if !pane.usedToday[tpl.ID] {
		t.Error("template should be marked as used today")
	}
	if !strings.Contains(pane.View(), "✓") {
		t.Error("view should mark the used template")
	}
}

func TestTemplatesPane_EmptyCatalog(t *testing.T) {
	setupTest(t)
	p := createTestPlanner(t)
	for _, tpl := range p.Templates() {
		if err := p.DeleteTemplate(tpl.ID); err != nil {
			t.Fatalf("DeleteTemplate failed: %v", err)
		}
	}
	pane := newTestTemplatesPane(t, p)

	if _, ok := pane.Selected(); ok {
		t.Error("nothing should be selected in an empty catalog")
	}
	if cmd := pane.Update(keyMsg("enter")); cmd != nil {
		t.Error("enter on an empty catalog should do nothing")
	}
	if !strings.Contains(pane.View(), "No templates yet.") {
		t.Error("empty catalog should say so")
	}
}
