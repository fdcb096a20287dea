package reports

import (
	"fmt"
	"strings"
)

var bucketMarks = map[Bucket]string{
	BucketGood:   "🟩",
	BucketMedium: "🟨",
	BucketPoor:   "🟥",
	BucketNone:   "·",
}

// FormatMonthMarkdown renders a month report as Markdown.
func FormatMonthMarkdown(r *MonthReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "_Generated %s_\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Summary\n\n")
	s := r.Summary
	if !s.HasData() {
		b.WriteString("No tasks this month.\n\n")
	} else {
		fmt.Fprintf(&b, "- **Days with tasks:** %d of %d\n", s.DaysWithTasks, s.TotalDaysInMonth)
		fmt.Fprintf(&b, "- **Average completion:** %d%%\n", s.AverageCompletion)
		fmt.Fprintf(&b, "- **Tasks completed:** %d of %d\n", s.TasksCompleted, s.TasksTotal)
		fmt.Fprintf(&b, "- **vs %s:** %s\n\n", r.Previous.Name, r.Change.Label)
	}

	b.WriteString("## Daily breakdown\n\n")
	writeBreakdown(&b, r.Breakdown)
	b.WriteString("\n🟩 ≥80%  🟨 50–79%  🟥 <50%  · no tasks\n\n")

	if len(r.Trailing) > 0 {
		b.WriteString("## Recent months\n\n")
		b.WriteString("| Month | Days | Average |\n")
		b.WriteString("|-------|-----:|--------:|\n")
		for _, m := range r.Trailing {
			fmt.Fprintf(&b, "| %s %d | %d | %s |\n", m.ShortName, m.Year, m.DaysWithTasks, percentOrDash(m))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// writeBreakdown lays the entries out as a seven-column Markdown table. The
// first seven entries are the weekday labels.
func writeBreakdown(b *strings.Builder, entries []BreakdownEntry) {
	if len(entries) < 7 {
		return
	}
	row := make([]string, 0, 7)
	flush := func() {
		for len(row) < 7 {
			row = append(row, " ")
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(row, " | "))
		row = row[:0]
	}

	for _, e := range entries[:7] {
		row = append(row, e.Label)
	}
	flush()
	b.WriteString("|" + strings.Repeat(":---:|", 7) + "\n")

	for _, e := range entries[7:] {
		switch e.Kind {
		case EntryBlank:
			row = append(row, " ")
		case EntryDay:
			row = append(row, fmt.Sprintf("%d %s", e.Day, bucketMarks[e.Bucket]))
		}
		if len(row) == 7 {
			flush()
		}
	}
	if len(row) > 0 {
		flush()
	}
}

// FormatYearMarkdown renders a year report as Markdown.
func FormatYearMarkdown(r *YearReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %d\n\n", r.Year)
	fmt.Fprintf(&b, "_Generated %s_\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Months\n\n")
	b.WriteString("| Month | Days | Average | Completed |\n")
	b.WriteString("|-------|-----:|--------:|----------:|\n")
	for _, m := range r.Months {
		fmt.Fprintf(&b, "| %s | %d/%d | %s | %d/%d |\n",
			m.Name, m.DaysWithTasks, m.TotalDaysInMonth, percentOrDash(m), m.TasksCompleted, m.TasksTotal)
	}
	b.WriteString("\n")

	if len(r.Years) > 1 {
		b.WriteString("## Years\n\n")
		b.WriteString("| Year | Days | Average | Best month |\n")
		b.WriteString("|------|-----:|--------:|------------|\n")
		for _, y := range r.Years {
			avg, best := "—", y.BestMonth
			if y.DaysWithTasks > 0 {
				avg = fmt.Sprintf("%d%%", y.AverageCompletion)
			}
			if best == "" {
				best = "—"
			}
			fmt.Fprintf(&b, "| %d | %d | %s | %s |\n", y.Year, y.DaysWithTasks, avg, best)
		}
		b.WriteString("\n")
	}

	b.WriteString("## All time\n\n")
	o := r.Overall
	if o.DaysWithTasks == 0 {
		b.WriteString("No tasks yet.\n")
	} else {
		fmt.Fprintf(&b, "- **Days with tasks:** %d\n", o.DaysWithTasks)
		fmt.Fprintf(&b, "- **Tasks completed:** %d of %d\n", o.CompletedTasks, o.TotalTasks)
		fmt.Fprintf(&b, "- **Average daily completion:** %d%%\n", o.AverageCompletion)
	}

	return b.String()
}

func percentOrDash(m MonthSummary) string {
	if !m.HasData() {
		return "—"
	}
	return fmt.Sprintf("%d%%", m.AverageCompletion)
}
