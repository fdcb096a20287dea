package storage

// Task is a single to-do item scheduled on a local calendar date.
type Task struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Emoji        string `json:"emoji,omitempty"`
	Completed    bool   `json:"completed"`
	Date         string `json:"date"` // YYYY-MM-DD, local date
	FromTemplate string `json:"from_template,omitempty"`
}

// TaskStore holds all tasks in insertion order.
type TaskStore struct {
	Tasks []Task `json:"tasks"`
}

// Template is a reusable task blueprint. Templates are never edited in
// place; changing one means deleting it and creating a new one.
type Template struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

// TemplateStore holds the template catalog.
type TemplateStore struct {
	Templates []Template `json:"templates"`
}

// DayStats summarises the tasks of a single date.
type DayStats struct {
	Total          int  `json:"total"`
	Completed      int  `json:"completed"`
	CompletionRate int  `json:"completion_rate"` // 0..100
	HasTasks       bool `json:"has_tasks"`
}

// DayStatsMap is the persisted form of the statistics cache, keyed by date.
type DayStatsMap map[string]DayStats

// CalendarView is the month the calendar is showing. Month is zero-based.
type CalendarView struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (v *CalendarView) validate() error {
	if v.Month < 0 || v.Month > 11 {
		return errMonthRange
	}
	return nil
}
