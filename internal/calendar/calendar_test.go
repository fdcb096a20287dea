package calendar

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"planner/internal/dates"
	"planner/internal/storage"
)

type fakeStats map[string]storage.DayStats

func (f fakeStats) StatsFor(key string) storage.DayStats { return f[key] }

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 10, 0, 0, 0, time.Local) }
}

func TestBuildGrid_March2024(t *testing.T) {
	// March 1 2024 is a Friday, so the grid starts on Monday Feb 26.
	cells, err := BuildGrid(2024, 2, "2024-03-10", nil)
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}
	if len(cells) != GridSize {
		t.Fatalf("len(cells) = %d, want %d", len(cells), GridSize)
	}

	if cells[0].Date != "2024-02-26" || cells[0].InMonth {
		t.Errorf("first cell = %+v, want 2024-02-26 outside month", cells[0])
	}
	if cells[4].Date != "2024-03-01" || !cells[4].InMonth {
		t.Errorf("cells[4] = %+v, want 2024-03-01 in month", cells[4])
	}
	if cells[34].Date != "2024-03-31" || !cells[34].InMonth {
		t.Errorf("cells[34] = %+v, want 2024-03-31", cells[34])
	}
	if cells[35].Date != "2024-04-01" || cells[35].InMonth {
		t.Errorf("cells[35] = %+v, want 2024-04-01 outside month", cells[35])
	}
	if cells[41].Date != "2024-04-07" {
		t.Errorf("last cell = %s, want 2024-04-07", cells[41].Date)
	}

	today := 0
	for i, c := range cells {
		if c.Weekday != i%7+1 {
			t.Errorf("cells[%d].Weekday = %d, want %d", i, c.Weekday, i%7+1)
		}
		if c.IsToday {
			today++
			if c.Date != "2024-03-10" {
				t.Errorf("today flag on %s", c.Date)
			}
		}
	}
	if today != 1 {
		t.Errorf("today cells = %d, want 1", today)
	}
}

func TestBuildGrid_MonthStartingMonday(t *testing.T) {
	// April 1 2024 is a Monday: no leading cells from March.
	cells, err := BuildGrid(2024, 3, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cells[0].Date != "2024-04-01" || !cells[0].InMonth {
		t.Errorf("first cell = %+v", cells[0])
	}
}

func TestBuildGrid_MonthStartingSunday(t *testing.T) {
	// September 1 2024 is a Sunday: six leading cells from August.
	cells, err := BuildGrid(2024, 8, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cells[6].Date != "2024-09-01" {
		t.Errorf("cells[6] = %s, want 2024-09-01", cells[6].Date)
	}
	for i := 0; i < 6; i++ {
		if cells[i].InMonth {
			t.Errorf("cells[%d] (%s) marked in month", i, cells[i].Date)
		}
	}
}

func TestBuildGrid_AlwaysFortyTwo(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := 0; month < 12; month++ {
			cells, err := BuildGrid(year, month, "", nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(cells) != GridSize {
				t.Fatalf("%d-%d: %d cells", year, month+1, len(cells))
			}
			in := 0
			for _, c := range cells {
				if c.InMonth {
					in++
				}
			}
			if in != dates.DaysInMonth(year, month) {
				t.Errorf("%d-%d: %d in-month cells, want %d", year, month+1, in, dates.DaysInMonth(year, month))
			}
			if dates.ISOWeekday(mustParse(t, cells[0].Date)) != 1 {
				t.Errorf("%d-%d: grid does not start on Monday", year, month+1)
			}
		}
	}
}

func TestBuildGrid_OutOfRange(t *testing.T) {
	for _, m := range []int{-1, 12} {
		if _, err := BuildGrid(2024, m, "", nil); !errors.Is(err, dates.ErrOutOfRange) {
			t.Errorf("BuildGrid(month=%d) error = %v, want ErrOutOfRange", m, err)
		}
	}
}

func TestCellClasses(t *testing.T) {
	stats := fakeStats{
		"2024-03-10": {Total: 2, Completed: 2, CompletionRate: 100, HasTasks: true},
		"2024-03-11": {Total: 3, Completed: 1, CompletionRate: 33, HasTasks: true},
		"2024-03-12": {Total: 1, Completed: 0, CompletionRate: 0, HasTasks: true},
		"2024-02-26": {Total: 1, Completed: 1, CompletionRate: 100, HasTasks: true},
	}
	cells, err := BuildGrid(2024, 2, "2024-03-10", stats)
	if err != nil {
		t.Fatal(err)
	}
	byDate := map[string]Cell{}
	for _, c := range cells {
		byDate[c.Date] = c
	}

	tests := []struct {
		date string
		want []string
	}{
		{"2024-03-10", []string{ClassCurrentMonth, ClassToday, ClassHasTasks, ClassCompleted}},
		{"2024-03-11", []string{ClassCurrentMonth, ClassHasTasks, ClassPartialCompleted}},
		{"2024-03-12", []string{ClassCurrentMonth, ClassHasTasks}},
		{"2024-03-13", []string{ClassCurrentMonth}},
		{"2024-02-26", []string{ClassOtherMonth, ClassHasTasks, ClassCompleted}},
		{"2024-04-01", []string{ClassOtherMonth}},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := byDate[tt.date].Classes(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeks(t *testing.T) {
	cells, _ := BuildGrid(2024, 2, "", nil)
	weeks := Weeks(cells)
	if len(weeks) != 6 {
		t.Fatalf("len(weeks) = %d, want 6", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Errorf("week %d has %d days", i, len(w))
		}
	}
}

func TestNavigator_RollsYear(t *testing.T) {
	n := NewNavigator(storage.CalendarView{Year: 2024, Month: 0}, fixedNow(2024, time.March, 10))

	if got := n.Previous(); got != (storage.CalendarView{Year: 2023, Month: 11}) {
		t.Errorf("Previous() = %+v, want Dec 2023", got)
	}
	if got := n.Next(); got != (storage.CalendarView{Year: 2024, Month: 0}) {
		t.Errorf("Next() = %+v, want Jan 2024", got)
	}

	n = NewNavigator(storage.CalendarView{Year: 2024, Month: 11}, fixedNow(2024, time.March, 10))
	if got := n.Next(); got != (storage.CalendarView{Year: 2025, Month: 0}) {
		t.Errorf("Next() = %+v, want Jan 2025", got)
	}
}

func TestNavigator_JumpToToday(t *testing.T) {
	n := NewNavigator(storage.CalendarView{Year: 2020, Month: 5}, fixedNow(2024, time.March, 10))
	if got := n.JumpToToday(); got != (storage.CalendarView{Year: 2024, Month: 2}) {
		t.Errorf("JumpToToday() = %+v", got)
	}
}

func TestNavigator_InvalidStartFallsBackToToday(t *testing.T) {
	for _, view := range []storage.CalendarView{{}, {Year: 2024, Month: 13}, {Year: 2024, Month: -2}} {
		n := NewNavigator(view, fixedNow(2024, time.March, 10))
		if got := n.View(); got != (storage.CalendarView{Year: 2024, Month: 2}) {
			t.Errorf("NewNavigator(%+v).View() = %+v", view, got)
		}
	}
}

func TestNavigator_Set(t *testing.T) {
	n := NewNavigator(storage.CalendarView{Year: 2024, Month: 2}, fixedNow(2024, time.March, 10))
	if _, err := n.Set(2024, 12); !errors.Is(err, dates.ErrOutOfRange) {
		t.Errorf("Set(12) error = %v", err)
	}
	if n.View() != (storage.CalendarView{Year: 2024, Month: 2}) {
		t.Errorf("view changed after rejected Set: %+v", n.View())
	}
	if got, err := n.Set(2021, 7); err != nil || got != (storage.CalendarView{Year: 2021, Month: 7}) {
		t.Errorf("Set(2021, 7) = %+v, %v", got, err)
	}
}

func TestNavigator_Grid(t *testing.T) {
	stats := fakeStats{"2024-03-10": {Total: 1, Completed: 1, CompletionRate: 100, HasTasks: true}}
	n := NewNavigator(storage.CalendarView{Year: 2024, Month: 2}, fixedNow(2024, time.March, 10))
	cells, err := n.Grid(stats)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	if len(cells) != GridSize {
		t.Fatalf("len(Grid()) = %d", len(cells))
	}
	found := false
	for _, c := range cells {
		if c.Date == "2024-03-10" {
			found = true
			if !c.IsToday || !c.FullyCompleted() {
				t.Errorf("today cell = %+v", c)
			}
		}
	}
	if !found {
		t.Error("today not in grid")
	}
}

func TestNavigator_GridInvalidView(t *testing.T) {
	n := &Navigator{view: storage.CalendarView{Year: 2024, Month: 12}, now: fixedNow(2024, time.March, 10)}
	cells, err := n.Grid(fakeStats{})
	if !errors.Is(err, dates.ErrOutOfRange) {
		t.Errorf("Grid() error = %v, want ErrOutOfRange", err)
	}
	if cells != nil {
		t.Errorf("Grid() = %d cells, want none", len(cells))
	}
}

func mustParse(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := dates.ParseKey(key)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
