// Package reports provides the read-only aggregate views of the planner:
// monthly and yearly completion summaries, the daily breakdown grid and the
// overall totals. Every report is a projection over the day statistics cache.
package reports

import (
	"time"

	"planner/internal/storage"
)

// MonthSummary aggregates the days of one month. Month is zero-based.
type MonthSummary struct {
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	Name              string `json:"name"`
	ShortName         string `json:"short_name"`
	DaysWithTasks     int    `json:"days_with_tasks"`
	AverageCompletion int    `json:"average_completion"`
	TotalDaysInMonth  int    `json:"total_days_in_month"`
	TasksTotal        int    `json:"tasks_total"`
	TasksCompleted    int    `json:"tasks_completed"`
}

// HasData reports whether any day of the month has tasks.
func (m MonthSummary) HasData() bool { return m.DaysWithTasks > 0 }

// YearSummary aggregates every day of one year.
type YearSummary struct {
	Year              int    `json:"year"`
	DaysWithTasks     int    `json:"days_with_tasks"`
	AverageCompletion int    `json:"average_completion"`
	TasksTotal        int    `json:"tasks_total"`
	TasksCompleted    int    `json:"tasks_completed"`
	BestMonth         string `json:"best_month,omitempty"`
}

// OverallSummary aggregates every date in the cache.
type OverallSummary struct {
	DaysWithTasks     int `json:"days_with_tasks"`
	TotalTasks        int `json:"total_tasks"`
	CompletedTasks    int `json:"completed_tasks"`
	AverageCompletion int `json:"average_completion"` // mean of per-day rates
}

// Bucket is the qualitative grade of a day.
type Bucket string

const (
	BucketNone   Bucket = ""
	BucketGood   Bucket = "good"
	BucketMedium Bucket = "medium"
	BucketPoor   Bucket = "poor"
)

// EntryKind tells renderers how to draw a breakdown entry.
type EntryKind string

const (
	EntryLabel EntryKind = "label"
	EntryBlank EntryKind = "blank"
	EntryDay   EntryKind = "day"
)

// BreakdownEntry is one slot of the daily breakdown grid.
type BreakdownEntry struct {
	Kind   EntryKind         `json:"kind"`
	Label  string            `json:"label,omitempty"`
	Day    int               `json:"day,omitempty"`
	Date   string            `json:"date,omitempty"`
	Stats  *storage.DayStats `json:"stats,omitempty"`
	Bucket Bucket            `json:"bucket,omitempty"`
}

// ChangeKind classifies a month-over-month change.
type ChangeKind string

const (
	ChangePositive ChangeKind = "positive"
	ChangeNegative ChangeKind = "negative"
	ChangeNeutral  ChangeKind = "neutral"
)

// Change is the difference in average completion between two months.
type Change struct {
	Delta int        `json:"delta"`
	Kind  ChangeKind `json:"kind"`
	Label string     `json:"label"`
}

// MonthReport is the exportable report of one month.
type MonthReport struct {
	Title       string           `json:"title"`
	Summary     MonthSummary     `json:"summary"`
	Previous    MonthSummary     `json:"previous"`
	Change      Change           `json:"change"`
	Breakdown   []BreakdownEntry `json:"breakdown"`
	Trailing    []MonthSummary   `json:"trailing"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// YearReport is the exportable report of one year.
type YearReport struct {
	Year        int            `json:"year"`
	Months      []MonthSummary `json:"months"`
	Years       []YearSummary  `json:"years"`
	Overall     OverallSummary `json:"overall"`
	GeneratedAt time.Time      `json:"generated_at"`
}
