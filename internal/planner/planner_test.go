package planner

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"planner/internal/dates"
	"planner/internal/stats"
	"planner/internal/storage"
)

// memStore is an in-memory Store. Setting failSaves makes every save fail.
type memStore struct {
	tasks     *storage.TaskStore
	templates *storage.TemplateStore
	dayStats  storage.DayStatsMap
	view      *storage.CalendarView

	loadErr   map[storage.Key]error
	failSaves bool
	saves     map[storage.Key]int
}

func newMemStore() *memStore {
	return &memStore{loadErr: map[storage.Key]error{}, saves: map[storage.Key]int{}}
}

var errDiskFull = errors.New("disk full")

func (m *memStore) save(key storage.Key) error {
	if m.failSaves {
		return &storage.PersistenceError{Key: key, Op: "write", Err: errDiskFull}
	}
	m.saves[key]++
	return nil
}

func (m *memStore) LoadTasks() (*storage.TaskStore, error) {
	if err := m.loadErr[storage.KeyTasks]; err != nil {
		return &storage.TaskStore{Tasks: []storage.Task{}}, err
	}
	if m.tasks == nil {
		return &storage.TaskStore{Tasks: []storage.Task{}}, storage.ErrMissing
	}
	return &storage.TaskStore{Tasks: append([]storage.Task{}, m.tasks.Tasks...)}, nil
}

func (m *memStore) SaveTasks(s *storage.TaskStore) error {
	if err := m.save(storage.KeyTasks); err != nil {
		return err
	}
	m.tasks = &storage.TaskStore{Tasks: append([]storage.Task{}, s.Tasks...)}
	return nil
}

func (m *memStore) LoadTemplates() (*storage.TemplateStore, error) {
	if err := m.loadErr[storage.KeyTemplates]; err != nil {
		return &storage.TemplateStore{}, err
	}
	if m.templates == nil {
		return &storage.TemplateStore{}, storage.ErrMissing
	}
	return &storage.TemplateStore{Templates: append([]storage.Template{}, m.templates.Templates...)}, nil
}

func (m *memStore) SaveTemplates(s *storage.TemplateStore) error {
	if err := m.save(storage.KeyTemplates); err != nil {
		return err
	}
	m.templates = &storage.TemplateStore{Templates: append([]storage.Template{}, s.Templates...)}
	return nil
}

func (m *memStore) LoadDayStats() (storage.DayStatsMap, error) {
	if err := m.loadErr[storage.KeyDayStats]; err != nil {
		return storage.DayStatsMap{}, err
	}
	if m.dayStats == nil {
		return storage.DayStatsMap{}, storage.ErrMissing
	}
	out := storage.DayStatsMap{}
	for k, v := range m.dayStats {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) SaveDayStats(s storage.DayStatsMap) error {
	if err := m.save(storage.KeyDayStats); err != nil {
		return err
	}
	m.dayStats = storage.DayStatsMap{}
	for k, v := range s {
		m.dayStats[k] = v
	}
	return nil
}

func (m *memStore) LoadCalendar() (storage.CalendarView, error) {
	if m.view == nil {
		return storage.CalendarView{}, storage.ErrMissing
	}
	return *m.view, nil
}

func (m *memStore) SaveCalendar(v storage.CalendarView) error {
	if err := m.save(storage.KeyCalendar); err != nil {
		return err
	}
	m.view = &v
	return nil
}

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)

// sequentialIDs returns an id generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func openTestPlanner(t *testing.T, store *memStore) *Planner {
	t.Helper()
	p, err := Open(store, Options{
		Now:   func() time.Time { return testNow },
		NewID: sequentialIDs(),
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return p
}

// assertConsistent checks that the cache equals a full rebuild from the task
// list and that the persisted copies match memory.
func assertConsistent(t *testing.T, p *Planner, store *memStore) {
	t.Helper()
	full := stats.NewCache()
	full.RecomputeAll(p.Tasks())

	keys := p.Keys()
	if len(keys) != full.Len() {
		t.Fatalf("cache has %d dates, full rebuild has %d", len(keys), full.Len())
	}
	for _, k := range keys {
		got := p.StatsFor(k)
		if got != full.StatsFor(k) {
			t.Errorf("StatsFor(%s) = %+v, want %+v", k, got, full.StatsFor(k))
		}
		if got.Total == 0 || !got.HasTasks {
			t.Errorf("cache entry %s has no tasks: %+v", k, got)
		}
		if got.Completed > got.Total {
			t.Errorf("cache entry %s completed > total: %+v", k, got)
		}
		if got.CompletionRate < 0 || got.CompletionRate > 100 {
			t.Errorf("cache entry %s rate out of range: %+v", k, got)
		}
	}

	if store.failSaves {
		return
	}
	if len(store.tasks.Tasks) != len(p.Tasks()) {
		t.Errorf("persisted %d tasks, memory has %d", len(store.tasks.Tasks), len(p.Tasks()))
	}
	if len(store.dayStats) != full.Len() {
		t.Errorf("persisted %d day stats, want %d", len(store.dayStats), full.Len())
	}
}

// =============================================================================
// Open
// =============================================================================

func TestOpen_FirstRunSeedsTemplates(t *testing.T) {
	store := newMemStore()
	p := openTestPlanner(t, store)

	tpls := p.Templates()
	if len(tpls) != 6 {
		t.Fatalf("Templates() = %d, want 6 seeded", len(tpls))
	}
	if tpls[0].ID != "tpl_1" || tpls[0].Text != "Morning exercise" {
		t.Errorf("first template = %+v", tpls[0])
	}
	if store.templates == nil || len(store.templates.Templates) != 6 {
		t.Errorf("seeded templates were not persisted")
	}
	if len(p.Tasks()) != 0 {
		t.Errorf("Tasks() = %v, want empty", p.Tasks())
	}

	view := p.CalendarView()
	if view.Year != 2024 || view.Month != 2 {
		t.Errorf("CalendarView() = %+v, want March 2024", view)
	}
}

func TestOpen_SeedsLocalizedTemplates(t *testing.T) {
	p, err := Open(newMemStore(), Options{Locale: dates.NewLocale("ru"), Now: func() time.Time { return testNow }})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := p.Templates()[0].Text; got != "Утренняя зарядка" {
		t.Errorf("first template = %q", got)
	}
}

func TestOpen_KeepsEmptyTemplateCatalog(t *testing.T) {
	store := newMemStore()
	store.templates = &storage.TemplateStore{Templates: []storage.Template{}}

	p := openTestPlanner(t, store)
	if n := len(p.Templates()); n != 0 {
		t.Errorf("Templates() = %d, want 0 (user deleted all)", n)
	}
}

func TestOpen_RebuildsStaleStats(t *testing.T) {
	store := newMemStore()
	store.tasks = &storage.TaskStore{Tasks: []storage.Task{
		{ID: "a", Text: "one", Date: "2024-03-01", Completed: true},
		{ID: "b", Text: "two", Date: "2024-03-01"},
	}}
	store.dayStats = storage.DayStatsMap{
		"2024-03-01": {Total: 5, Completed: 5, CompletionRate: 100, HasTasks: true},
		"2024-02-01": {Total: 1, Completed: 0, CompletionRate: 0, HasTasks: true},
	}

	p := openTestPlanner(t, store)

	want := storage.DayStats{Total: 2, Completed: 1, CompletionRate: 50, HasTasks: true}
	if got := p.StatsFor("2024-03-01"); got != want {
		t.Errorf("StatsFor() = %+v, want %+v", got, want)
	}
	if _, ok := store.dayStats["2024-02-01"]; ok {
		t.Error("stale stats entry was persisted")
	}
	assertConsistent(t, p, store)
}

func TestOpen_SkipsStatsSaveWhenUnchanged(t *testing.T) {
	store := newMemStore()
	store.tasks = &storage.TaskStore{Tasks: []storage.Task{{ID: "a", Text: "one", Date: "2024-03-01"}}}
	store.dayStats = storage.DayStatsMap{"2024-03-01": {Total: 1, HasTasks: true}}

	openTestPlanner(t, store)
	if n := store.saves[storage.KeyDayStats]; n != 0 {
		t.Errorf("day stats saved %d times, want 0", n)
	}
}

func TestOpen_RecoveredParseErrorIsNotFatal(t *testing.T) {
	store := newMemStore()
	store.loadErr[storage.KeyTasks] = &storage.ParseError{
		Key:       storage.KeyTasks,
		Cause:     errors.New("bad json"),
		Recovered: storage.RecoveredDefaults,
	}

	p := openTestPlanner(t, store)
	if len(p.Tasks()) != 0 {
		t.Errorf("Tasks() = %v, want defaults", p.Tasks())
	}
}

func TestOpen_ReadFailureIsFatal(t *testing.T) {
	for _, key := range []storage.Key{storage.KeyTasks, storage.KeyTemplates} {
		t.Run(string(key), func(t *testing.T) {
			store := newMemStore()
			store.loadErr[key] = &storage.PersistenceError{Key: key, Op: "read", Err: errors.New("permission denied")}

			if _, err := Open(store, Options{}); err == nil {
				t.Fatal("Open() error = nil, want read failure")
			}
		})
	}
}

func TestOpen_StatsReadFailureIsNotFatal(t *testing.T) {
	store := newMemStore()
	store.loadErr[storage.KeyDayStats] = &storage.PersistenceError{Key: storage.KeyDayStats, Op: "read", Err: errors.New("io")}

	if _, err := Open(store, Options{}); err != nil {
		t.Fatalf("Open() error = %v, want nil", err)
	}
}

func TestOpen_InvalidCalendarJumpsToToday(t *testing.T) {
	store := newMemStore()
	store.view = &storage.CalendarView{Year: 2020, Month: 14}

	p := openTestPlanner(t, store)
	if got := p.CalendarView(); got != (storage.CalendarView{Year: 2024, Month: 2}) {
		t.Errorf("CalendarView() = %+v, want March 2024", got)
	}
}

// =============================================================================
// Tasks
// =============================================================================

func TestAddToggle(t *testing.T) {
	store := newMemStore()
	p := openTestPlanner(t, store)

	task, err := p.Add("  Write report  ", "📝")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if task.Text != "Write report" || task.Date != "2024-03-10" || task.Completed {
		t.Errorf("Add() = %+v", task)
	}
	if got := p.StatsFor("2024-03-10"); got != (storage.DayStats{Total: 1, HasTasks: true}) {
		t.Errorf("after add StatsFor() = %+v", got)
	}

	toggled, err := p.Toggle(task.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !toggled.Completed {
		t.Error("Toggle() did not complete the task")
	}
	want := storage.DayStats{Total: 1, Completed: 1, CompletionRate: 100, HasTasks: true}
	if got := p.StatsFor("2024-03-10"); got != want {
		t.Errorf("after toggle StatsFor() = %+v, want %+v", got, want)
	}
	if store.dayStats["2024-03-10"] != want {
		t.Errorf("persisted stats = %+v, want %+v", store.dayStats["2024-03-10"], want)
	}
	assertConsistent(t, p, store)
}

func TestAdd_Validation(t *testing.T) {
	p := openTestPlanner(t, newMemStore())

	tests := []struct {
		name  string
		text  string
		emoji string
	}{
		{"empty", "", ""},
		{"whitespace", "   \t ", ""},
		{"too long", strings.Repeat("x", storage.MaxTextLen+1), ""},
		{"emoji too long", "ok", strings.Repeat("🎉", storage.MaxEmojiLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Add(tt.text, tt.emoji)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Add() error = %v, want ErrValidation", err)
			}
		})
	}
	if n := len(p.Tasks()); n != 0 {
		t.Errorf("invalid adds stored %d tasks", n)
	}
}

func TestAdd_NonASCII(t *testing.T) {
	p := openTestPlanner(t, newMemStore())

	// Cyrillic letters take two bytes each; the limit counts characters.
	long := strings.Repeat("ж", 101)
	task, err := p.Add(long, "👍🏽")
	if err != nil {
		t.Fatalf("Add(cyrillic) error = %v", err)
	}
	if task.Text != long || task.Emoji != "👍🏽" {
		t.Errorf("Add(cyrillic) = %+v", task)
	}
	if _, err := p.Add(strings.Repeat("ж", storage.MaxTextLen), ""); err != nil {
		t.Errorf("Add(%d runes) error = %v", storage.MaxTextLen, err)
	}

	family := "👨‍👩‍👧‍👦"
	tpl, err := p.AddTemplate("Family dinner", family)
	if err != nil {
		t.Fatalf("AddTemplate(zwj emoji) error = %v", err)
	}
	if tpl.Emoji != family {
		t.Errorf("template emoji = %q, want %q", tpl.Emoji, family)
	}
}

func TestRemove_NotFoundLeavesStateUnchanged(t *testing.T) {
	store := newMemStore()
	p := openTestPlanner(t, store)
	if _, err := p.Add("keep", ""); err != nil {
		t.Fatal(err)
	}
	saves := store.saves[storage.KeyTasks]

	_, err := p.Remove("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Remove() error = %v, want ErrNotFound", err)
	}
	if len(p.Tasks()) != 1 {
		t.Errorf("Tasks() = %d, want 1", len(p.Tasks()))
	}
	if store.saves[storage.KeyTasks] != saves {
		t.Error("failed Remove() persisted tasks")
	}
	if _, err := p.Toggle("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Toggle() error = %v, want ErrNotFound", err)
	}
}

func TestRemove_LastTaskDropsDay(t *testing.T) {
	store := newMemStore()
	p := openTestPlanner(t, store)
	task, _ := p.Add("only", "")

	if _, err := p.Remove(task.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if got := p.StatsFor(task.Date); got.HasTasks {
		t.Errorf("StatsFor() = %+v, want zero", got)
	}
	if len(p.Keys()) != 0 {
		t.Errorf("Keys() = %v, want empty", p.Keys())
	}
	assertConsistent(t, p, store)
}

func TestAddFromTemplate(t *testing.T) {
	p := openTestPlanner(t, newMemStore())

	task, err := p.AddFromTemplate("tpl_2")
	if err != nil {
		t.Fatalf("AddFromTemplate() error = %v", err)
	}
	if task.Text != "Read for 30 minutes" || task.Emoji != "📚" || task.FromTemplate != "tpl_2" {
		t.Errorf("AddFromTemplate() = %+v", task)
	}
	if _, err := p.AddFromTemplate("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddFromTemplate(nope) error = %v, want ErrNotFound", err)
	}
}

func TestDayDetailAndRecent(t *testing.T) {
	store := newMemStore()
	store.tasks = &storage.TaskStore{Tasks: []storage.Task{
		{ID: "a", Text: "old", Date: "2024-03-01", Completed: true},
		{ID: "b", Text: "new", Date: "2024-03-09"},
		{ID: "c", Text: "old too", Date: "2024-03-01"},
	}}
	p := openTestPlanner(t, store)

	d := p.DayDetail("2024-03-01")
	if len(d.Tasks) != 2 || d.Tasks[0].ID != "a" || d.Tasks[1].ID != "c" {
		t.Errorf("DayDetail().Tasks = %+v", d.Tasks)
	}
	if d.Stats.CompletionRate != 50 {
		t.Errorf("DayDetail().Stats = %+v", d.Stats)
	}

	recent := p.RecentTasks(2)
	if len(recent) != 2 || recent[0].ID != "b" || recent[1].ID != "c" {
		t.Errorf("RecentTasks(2) = %+v", recent)
	}
}

// =============================================================================
// Persistence failures
// =============================================================================

func TestPersistenceFailureKeepsChange(t *testing.T) {
	store := newMemStore()
	p := openTestPlanner(t, store)
	store.failSaves = true

	var events []TaskListChanged
	p.OnTaskListChanged(func(ev TaskListChanged) { events = append(events, ev) })

	task, err := p.Add("survives", "")
	if err != nil {
		t.Fatalf("Add() error = %v, want nil despite failed save", err)
	}
	if len(p.Tasks()) != 1 || p.Tasks()[0].ID != task.ID {
		t.Errorf("task was rolled back")
	}

	var perr *storage.PersistenceError
	if !errors.As(p.LastPersistenceError(), &perr) {
		t.Errorf("LastPersistenceError() = %v, want PersistenceError", p.LastPersistenceError())
	}
	if len(events) != 1 || events[0].Err == nil {
		t.Errorf("events = %+v, want one event carrying the error", events)
	}
	assertConsistent(t, p, store)

	store.failSaves = false
	if _, err := p.Toggle(task.ID); err != nil {
		t.Fatal(err)
	}
	if err := p.LastPersistenceError(); err != nil {
		t.Errorf("LastPersistenceError() = %v after a good save, want nil", err)
	}
}

// =============================================================================
// Templates
// =============================================================================

func TestTemplates_AddDelete(t *testing.T) {
	store := newMemStore()
	p := openTestPlanner(t, store)

	tpl, err := p.AddTemplate("Stretch", "")
	if err != nil {
		t.Fatalf("AddTemplate() error = %v", err)
	}
	if tpl.Emoji != DefaultTemplateEmoji {
		t.Errorf("AddTemplate() emoji = %q, want default", tpl.Emoji)
	}
	if n := len(store.templates.Templates); n != 7 {
		t.Errorf("persisted %d templates, want 7", n)
	}

	if _, err := p.AddTemplate(" ", "🧘"); !errors.Is(err, ErrValidation) {
		t.Errorf("AddTemplate(blank) error = %v, want ErrValidation", err)
	}

	task, _ := p.AddFromTemplate(tpl.ID)
	if err := p.DeleteTemplate(tpl.ID); err != nil {
		t.Fatalf("DeleteTemplate() error = %v", err)
	}
	if err := p.DeleteTemplate(tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteTemplate() error = %v, want ErrNotFound", err)
	}
	got, err := p.Task(task.ID)
	if err != nil || got.FromTemplate != tpl.ID {
		t.Errorf("task lost its template reference: %+v, %v", got, err)
	}
}

// =============================================================================
// Calendar
// =============================================================================

func TestNextMonth_RollsYear(t *testing.T) {
	store := newMemStore()
	store.view = &storage.CalendarView{Year: 2024, Month: 11}
	p := openTestPlanner(t, store)

	var events []CalendarChanged
	p.OnCalendarChanged(func(ev CalendarChanged) { events = append(events, ev) })

	view := p.NextMonth()
	want := storage.CalendarView{Year: 2025, Month: 0}
	if view != want {
		t.Errorf("NextMonth() = %+v, want %+v", view, want)
	}
	if store.view == nil || *store.view != want {
		t.Errorf("persisted view = %+v, want %+v", store.view, want)
	}
	if len(events) != 1 || len(events[0].Grid) != 42 {
		t.Errorf("events = %d, want one with a full grid", len(events))
	}

	if got := p.PreviousMonth(); got != (storage.CalendarView{Year: 2024, Month: 11}) {
		t.Errorf("PreviousMonth() = %+v", got)
	}
	if got := p.JumpToToday(); got != (storage.CalendarView{Year: 2024, Month: 2}) {
		t.Errorf("JumpToToday() = %+v", got)
	}
}

func TestShowMonth(t *testing.T) {
	store := newMemStore()
	p := openTestPlanner(t, store)

	if _, err := p.ShowMonth(2023, 12); !errors.Is(err, dates.ErrOutOfRange) {
		t.Errorf("ShowMonth(2023, 12) error = %v, want ErrOutOfRange", err)
	}
	if got := p.CalendarView(); got != (storage.CalendarView{Year: 2024, Month: 2}) {
		t.Errorf("view changed after invalid ShowMonth: %+v", got)
	}

	view, err := p.ShowMonth(2023, 0)
	if err != nil || view != (storage.CalendarView{Year: 2023, Month: 0}) {
		t.Errorf("ShowMonth(2023, 0) = %+v, %v", view, err)
	}
}

func TestGrid_ReflectsTasks(t *testing.T) {
	p := openTestPlanner(t, newMemStore())
	task, _ := p.Add("today", "")
	p.Toggle(task.ID)

	grid, err := p.Grid()
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	var found bool
	for _, c := range grid {
		if c.Date == "2024-03-10" {
			found = true
			if !c.IsToday || !c.FullyCompleted() {
				t.Errorf("today cell = %+v", c)
			}
		}
	}
	if !found {
		t.Error("grid has no cell for today")
	}
}

// =============================================================================
// Import and rebuild
// =============================================================================

func TestImport(t *testing.T) {
	store := newMemStore()
	p := openTestPlanner(t, store)
	existing, _ := p.Add("existing", "")

	res, err := p.Import([]storage.Task{
		{ID: existing.ID, Text: "clash", Date: "2024-01-05", Completed: true},
		{Text: "no date"},
		{Text: "bad date", Date: "2024-13-40"},
		{Text: "  ", Date: "2024-01-05"},
		{ID: "x", Text: "fine", Date: "2024-01-05"},
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Imported != 3 || res.Skipped != 2 {
		t.Errorf("Import() = %+v, want 3 imported, 2 skipped", res)
	}
	if len(res.Dates) != 2 || res.Dates[0] != "2024-01-05" || res.Dates[1] != "2024-03-10" {
		t.Errorf("Import().Dates = %v", res.Dates)
	}

	seen := map[string]bool{}
	for _, task := range p.Tasks() {
		if seen[task.ID] {
			t.Errorf("duplicate id %s after import", task.ID)
		}
		seen[task.ID] = true
	}
	if got := p.StatsFor("2024-01-05"); got.Total != 2 || got.CompletionRate != 50 {
		t.Errorf("StatsFor(2024-01-05) = %+v", got)
	}
	assertConsistent(t, p, store)
}

func TestRebuild(t *testing.T) {
	store := newMemStore()
	p := openTestPlanner(t, store)
	p.Add("one", "")

	var got TaskListChanged
	p.OnTaskListChanged(func(ev TaskListChanged) { got = ev })
	if err := p.Rebuild(); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if got.Op != OpRebuild || len(got.Dates) != 1 {
		t.Errorf("rebuild event = %+v", got)
	}
}

// =============================================================================
// Invariants under random operations
// =============================================================================

func TestRandomOperationsKeepCacheConsistent(t *testing.T) {
	store := newMemStore()
	day := testNow
	p, err := Open(store, Options{Now: func() time.Time { return day }, NewID: sequentialIDs()})
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		tasks := p.Tasks()
		switch op := r.Intn(10); {
		case op < 4 || len(tasks) == 0:
			day = testNow.AddDate(0, 0, -r.Intn(20))
			if _, err := p.Add(fmt.Sprintf("task %d", i), ""); err != nil {
				t.Fatal(err)
			}
		case op < 8:
			if _, err := p.Toggle(tasks[r.Intn(len(tasks))].ID); err != nil {
				t.Fatal(err)
			}
		default:
			if _, err := p.Remove(tasks[r.Intn(len(tasks))].ID); err != nil {
				t.Fatal(err)
			}
		}
	}
	assertConsistent(t, p, store)
}

func FuzzAdd(f *testing.F) {
	f.Add("Buy milk", "🥛")
	f.Add("", "")
	f.Add("   ", "x")
	f.Add(strings.Repeat("a", 201), "")

	f.Fuzz(func(t *testing.T, text, emoji string) {
		p, err := Open(newMemStore(), Options{Now: func() time.Time { return testNow }})
		if err != nil {
			t.Fatal(err)
		}
		task, err := p.Add(text, emoji)
		if err != nil {
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Add() error = %v, want ErrValidation", err)
			}
			if len(p.Tasks()) != 0 {
				t.Fatal("rejected task was stored")
			}
			return
		}
		if task.Text == "" || task.Text != strings.TrimSpace(task.Text) {
			t.Fatalf("Add() stored untrimmed text %q", task.Text)
		}
		if got := p.StatsFor(task.Date); got.Total != 1 {
			t.Fatalf("StatsFor() = %+v, want one task", got)
		}
	})
}
