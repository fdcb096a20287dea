package reports

import (
	"fmt"
	"sort"
	"time"

	"planner/internal/dates"
	"planner/internal/stats"
	"planner/internal/storage"
)

const (
	// DefaultTrailingMonths is the window of TrailingMonths when count <= 0.
	DefaultTrailingMonths = 6
	// DefaultYears is the window of MultiYearComparison when count <= 0.
	DefaultYears = 3

	// ChangeThreshold is the number of points a month must move to count as
	// a positive or negative change.
	ChangeThreshold = 5

	goodThreshold   = 80
	mediumThreshold = 50
)

// StatsSource is the read side of the day statistics cache.
type StatsSource interface {
	StatsFor(dateKey string) storage.DayStats
	Keys() []string
}

// Generator creates reports from the day statistics cache.
type Generator struct {
	stats  StatsSource
	locale dates.Locale
	now    func() time.Time
}

// NewGenerator creates a new report generator.
func NewGenerator(source StatsSource, locale dates.Locale) *Generator {
	return &Generator{stats: source, locale: locale, now: time.Now}
}

// SetNowFunc overrides the clock used for "today" and report timestamps.
func (g *Generator) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	g.now = now
}

// Locale returns the locale used for month and weekday names.
func (g *Generator) Locale() dates.Locale { return g.locale }

// TodayStats returns the statistics of today's date.
func (g *Generator) TodayStats() storage.DayStats {
	return g.stats.StatsFor(dates.Today(g.now()))
}

// monthTotals carries the unrounded sums behind a MonthSummary so yearly
// figures can be averaged over days instead of over rounded monthly means.
type monthTotals struct {
	days, rateSum, total, completed int
}

func (g *Generator) totals(year, month int) monthTotals {
	var t monthTotals
	n := dates.DaysInMonth(year, month)
	for day := 1; day <= n; day++ {
		s := g.stats.StatsFor(dates.Key(dates.LocalDate(year, month, day)))
		if !s.HasTasks {
			continue
		}
		t.days++
		t.rateSum += s.CompletionRate
		t.total += s.Total
		t.completed += s.Completed
	}
	return t
}

// roundedMean returns round(sum/n) with halves rounded up, or 0 when n is 0.
func roundedMean(sum, n int) int {
	if n == 0 {
		return 0
	}
	return (2*sum + n) / (2 * n)
}

func (g *Generator) summary(year, month int) MonthSummary {
	t := g.totals(year, month)
	name, _ := g.locale.MonthName(month)
	short, _ := g.locale.ShortMonthName(month)
	return MonthSummary{
		Year:              year,
		Month:             month,
		Name:              name,
		ShortName:         short,
		DaysWithTasks:     t.days,
		AverageCompletion: roundedMean(t.rateSum, t.days),
		TotalDaysInMonth:  dates.DaysInMonth(year, month),
		TasksTotal:        t.total,
		TasksCompleted:    t.completed,
	}
}

// MonthlyStats summarises the zero-based month of year. Days without tasks
// are left out of the average.
func (g *Generator) MonthlyStats(year, month int) (MonthSummary, error) {
	if err := dates.ValidateMonth(month); err != nil {
		return MonthSummary{}, err
	}
	return g.summary(year, month), nil
}

// YearComparison returns the twelve month summaries of year in month order.
func (g *Generator) YearComparison(year int) []MonthSummary {
	months := make([]MonthSummary, 12)
	for m := range months {
		months[m] = g.summary(year, m)
	}
	return months
}

// TrailingMonths returns the count months ending with the month of ref,
// oldest first. count <= 0 selects DefaultTrailingMonths.
func (g *Generator) TrailingMonths(ref time.Time, count int) []MonthSummary {
	if count <= 0 {
		count = DefaultTrailingMonths
	}
	refYear, refMonth := dates.YearMonth(ref)
	months := make([]MonthSummary, 0, count)
	for back := count - 1; back >= 0; back-- {
		y, m := dates.ShiftMonth(refYear, refMonth, -back)
		months = append(months, g.summary(y, m))
	}
	return months
}

// BucketFor grades a day: good from 80, medium from 50, poor below that, and
// none when the day has no tasks.
func BucketFor(s storage.DayStats) Bucket {
	switch {
	case !s.HasTasks:
		return BucketNone
	case s.CompletionRate >= goodThreshold:
		return BucketGood
	case s.CompletionRate >= mediumThreshold:
		return BucketMedium
	default:
		return BucketPoor
	}
}

// DailyBreakdown returns the entries of a Monday-first month grid: seven
// weekday labels, blanks up to the weekday of the 1st, then one entry per day.
func (g *Generator) DailyBreakdown(year, month int) ([]BreakdownEntry, error) {
	if err := dates.ValidateMonth(month); err != nil {
		return nil, err
	}

	first := dates.LocalDate(year, month, 1)
	blanks := dates.ISOWeekday(first) - 1
	n := dates.DaysInMonth(year, month)

	entries := make([]BreakdownEntry, 0, 7+blanks+n)
	for _, label := range g.locale.WeekdayLabels() {
		entries = append(entries, BreakdownEntry{Kind: EntryLabel, Label: label})
	}
	for i := 0; i < blanks; i++ {
		entries = append(entries, BreakdownEntry{Kind: EntryBlank})
	}
	for day := 1; day <= n; day++ {
		key := dates.Key(dates.LocalDate(year, month, day))
		s := g.stats.StatsFor(key)
		entries = append(entries, BreakdownEntry{
			Kind:   EntryDay,
			Day:    day,
			Date:   key,
			Stats:  &s,
			Bucket: BucketFor(s),
		})
	}
	return entries, nil
}

// OverallStats aggregates every date in the cache. The average is the mean of
// the per-day rates, not weighted by task count.
func (g *Generator) OverallStats() OverallSummary {
	var o OverallSummary
	rateSum := 0
	for _, key := range g.stats.Keys() {
		s := g.stats.StatsFor(key)
		if !s.HasTasks {
			continue
		}
		o.DaysWithTasks++
		o.TotalTasks += s.Total
		o.CompletedTasks += s.Completed
		rateSum += s.CompletionRate
	}
	o.AverageCompletion = roundedMean(rateSum, o.DaysWithTasks)
	return o
}

// MultiYearComparison summarises count years ending with endYear, oldest
// first. count <= 0 selects DefaultYears.
func (g *Generator) MultiYearComparison(endYear, count int) []YearSummary {
	if count <= 0 {
		count = DefaultYears
	}
	years := make([]YearSummary, 0, count)
	for y := endYear - count + 1; y <= endYear; y++ {
		ys := YearSummary{Year: y}
		rateSum, best := 0, -1
		for m := 0; m < 12; m++ {
			t := g.totals(y, m)
			ys.DaysWithTasks += t.days
			ys.TasksTotal += t.total
			ys.TasksCompleted += t.completed
			rateSum += t.rateSum
			if t.days == 0 {
				continue
			}
			if avg := roundedMean(t.rateSum, t.days); avg > best {
				best = avg
				ys.BestMonth, _ = g.locale.MonthName(m)
			}
		}
		ys.AverageCompletion = roundedMean(rateSum, ys.DaysWithTasks)
		years = append(years, ys)
	}
	return years
}

// CompareMonths classifies the change from prev to cur. Moves of more than
// ChangeThreshold points are positive or negative and labelled with a signed
// percentage; anything else is neutral and labelled with a dash. A previous
// month without data has nothing to compare against and is always neutral.
func CompareMonths(prev, cur MonthSummary) Change {
	if !prev.HasData() {
		return Change{Kind: ChangeNeutral, Label: "—"}
	}
	delta := cur.AverageCompletion - prev.AverageCompletion
	switch {
	case delta > ChangeThreshold:
		return Change{Delta: delta, Kind: ChangePositive, Label: fmt.Sprintf("+%d%%", delta)}
	case delta < -ChangeThreshold:
		return Change{Delta: delta, Kind: ChangeNegative, Label: fmt.Sprintf("%d%%", delta)}
	default:
		return Change{Delta: delta, Kind: ChangeNeutral, Label: "—"}
	}
}

// RecentTasks returns the n tasks with the latest dates, newest first. Tasks
// on the same date keep their relative order, latest added first.
func RecentTasks(tasks []storage.Task, n int) []storage.Task {
	if n <= 0 || len(tasks) == 0 {
		return nil
	}
	out := make([]storage.Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[len(tasks)-1-i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// GenerateMonth builds the exportable report of a month, comparing it with
// the month before and including a trailing window that ends with it.
func (g *Generator) GenerateMonth(year, month, trailing int) (*MonthReport, error) {
	cur, err := g.MonthlyStats(year, month)
	if err != nil {
		return nil, err
	}
	py, pm := dates.ShiftMonth(year, month, -1)
	prev := g.summary(py, pm)

	breakdown, err := g.DailyBreakdown(year, month)
	if err != nil {
		return nil, err
	}

	title, _ := g.locale.MonthTitle(year, month)
	return &MonthReport{
		Title:       title,
		Summary:     cur,
		Previous:    prev,
		Change:      CompareMonths(prev, cur),
		Breakdown:   breakdown,
		Trailing:    g.TrailingMonths(dates.LocalDate(year, month, 1), trailing),
		GeneratedAt: g.now(),
	}, nil
}

// GenerateYear builds the exportable report of a year together with a
// comparison against the years before it.
func (g *Generator) GenerateYear(year, years int) *YearReport {
	return &YearReport{
		Year:        year,
		Months:      g.YearComparison(year),
		Years:       g.MultiYearComparison(year, years),
		Overall:     g.OverallStats(),
		GeneratedAt: g.now(),
	}
}

var _ StatsSource = (*stats.Cache)(nil)
