package planner

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"planner/internal/dates"
	"planner/internal/reports"
	"planner/internal/storage"
)

// DayDetail is the drill-down view of one date.
type DayDetail struct {
	Date  string
	Tasks []storage.Task
	Stats storage.DayStats
}

func cleanText(text, emoji string) (string, string, error) {
	text = strings.TrimSpace(text)
	emoji = strings.TrimSpace(emoji)
	if text == "" {
		return "", "", validationErr("task text is required")
	}
	if utf8.RuneCountInString(text) > storage.MaxTextLen {
		return "", "", validationErr("task text too long (max %d)", storage.MaxTextLen)
	}
	if utf8.RuneCountInString(emoji) > storage.MaxEmojiLen {
		return "", "", validationErr("emoji too long (max %d)", storage.MaxEmojiLen)
	}
	return text, emoji, nil
}

// Add creates an incomplete task for today.
func (p *Planner) Add(text, emoji string) (storage.Task, error) {
	return p.add(text, emoji, "")
}

// AddFromTemplate creates a task for today from a template's text and emoji.
func (p *Planner) AddFromTemplate(templateID string) (storage.Task, error) {
	p.mu.Lock()
	i := p.templateIndex(templateID)
	var tpl storage.Template
	if i >= 0 {
		tpl = p.templates[i]
	}
	p.mu.Unlock()

	if i < 0 {
		return storage.Task{}, notFoundErr("template", templateID)
	}
	return p.add(tpl.Text, tpl.Emoji, tpl.ID)
}

func (p *Planner) add(text, emoji, fromTemplate string) (storage.Task, error) {
	text, emoji, err := cleanText(text, emoji)
	if err != nil {
		return storage.Task{}, err
	}

	p.mu.Lock()
	task := storage.Task{
		ID:           p.newID(),
		Text:         text,
		Emoji:        emoji,
		Date:         dates.Today(p.now()),
		FromTemplate: fromTemplate,
	}
	p.tasks = append(p.tasks, task)
	ev := p.commitTasks(OpAdd, &task, task.Date)
	p.mu.Unlock()

	p.emitTasks(ev)
	return task, nil
}

// Toggle flips the completion of a task and returns the updated task.
func (p *Planner) Toggle(id string) (storage.Task, error) {
	p.mu.Lock()
	i := p.taskIndex(id)
	if i < 0 {
		p.mu.Unlock()
		return storage.Task{}, notFoundErr("task", id)
	}
	p.tasks[i].Completed = !p.tasks[i].Completed
	task := p.tasks[i]
	ev := p.commitTasks(OpToggle, &task, task.Date)
	p.mu.Unlock()

	p.emitTasks(ev)
	return task, nil
}

// Remove deletes a task and returns it.
func (p *Planner) Remove(id string) (storage.Task, error) {
	p.mu.Lock()
	i := p.taskIndex(id)
	if i < 0 {
		p.mu.Unlock()
		return storage.Task{}, notFoundErr("task", id)
	}
	task := p.tasks[i]
	p.tasks = append(p.tasks[:i:i], p.tasks[i+1:]...)
	ev := p.commitTasks(OpRemove, &task, task.Date)
	p.mu.Unlock()

	p.emitTasks(ev)
	return task, nil
}

// commitTasks refreshes the cache for dateKeys and persists. The caller holds
// p.mu and emits the returned event after unlocking.
func (p *Planner) commitTasks(op Op, task *storage.Task, dateKeys ...string) TaskListChanged {
	p.cache.RecomputeDates(p.tasks, dateKeys...)

	err := errors.Join(p.saveTasks(), p.saveDayStats())
	p.notePersist(err)
	p.log.Debug("tasks changed", "op", op, "dates", dateKeys)

	return TaskListChanged{
		Op:    op,
		Task:  task,
		Dates: dateKeys,
		Stats: p.statsOf(dateKeys),
		Err:   err,
	}
}

func (p *Planner) taskIndex(id string) int {
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Task returns the task with id.
func (p *Planner) Task(id string) (storage.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i := p.taskIndex(id); i >= 0 {
		return p.tasks[i], nil
	}
	return storage.Task{}, notFoundErr("task", id)
}

// Tasks returns a copy of every task in insertion order.
func (p *Planner) Tasks() []storage.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]storage.Task(nil), p.tasks...)
}

// TasksOn returns the tasks of a date in insertion order.
func (p *Planner) TasksOn(dateKey string) []storage.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tasksOn(dateKey)
}

func (p *Planner) tasksOn(dateKey string) []storage.Task {
	var out []storage.Task
	for _, t := range p.tasks {
		if t.Date == dateKey {
			out = append(out, t)
		}
	}
	return out
}

// DayDetail returns the tasks and statistics of a date.
func (p *Planner) DayDetail(dateKey string) DayDetail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return DayDetail{
		Date:  dateKey,
		Tasks: p.tasksOn(dateKey),
		Stats: p.cache.StatsFor(dateKey),
	}
}

// RecentTasks returns the n most recently dated tasks, newest first.
func (p *Planner) RecentTasks(n int) []storage.Task {
	return reports.RecentTasks(p.Tasks(), n)
}

// ImportResult reports what Import did.
type ImportResult struct {
	Imported int
	Skipped  int
	Dates    []string
}

// Import appends externally sourced tasks. Text and emoji are validated like
// Add; a missing date means today and an invalid one skips the record.
// Missing or clashing ids are replaced. The cache is rebuilt once for the
// whole batch. A returned error is a persistence failure; the tasks stay
// imported in memory.
func (p *Planner) Import(incoming []storage.Task) (ImportResult, error) {
	var res ImportResult

	p.mu.Lock()
	seen := make(map[string]bool, len(p.tasks)+len(incoming))
	for _, t := range p.tasks {
		seen[t.ID] = true
	}
	touched := map[string]bool{}
	today := dates.Today(p.now())

	for _, t := range incoming {
		text, emoji, err := cleanText(t.Text, t.Emoji)
		if err != nil {
			res.Skipped++
			continue
		}
		date := strings.TrimSpace(t.Date)
		if date == "" {
			date = today
		}
		if !dates.ValidKey(date) {
			res.Skipped++
			continue
		}
		id := strings.TrimSpace(t.ID)
		if id == "" || seen[id] {
			id = p.newID()
		}
		seen[id] = true

		p.tasks = append(p.tasks, storage.Task{
			ID:           id,
			Text:         text,
			Emoji:        emoji,
			Completed:    t.Completed,
			Date:         date,
			FromTemplate: t.FromTemplate,
		})
		touched[date] = true
		res.Imported++
	}

	if res.Imported == 0 {
		p.mu.Unlock()
		return res, nil
	}

	for d := range touched {
		res.Dates = append(res.Dates, d)
	}
	sort.Strings(res.Dates)

	p.cache.RecomputeAll(p.tasks)
	err := errors.Join(p.saveTasks(), p.saveDayStats())
	p.notePersist(err)
	p.log.Info("imported tasks", "imported", res.Imported, "skipped", res.Skipped)
	ev := TaskListChanged{Op: OpImport, Dates: res.Dates, Stats: p.statsOf(res.Dates), Err: err}
	p.mu.Unlock()

	p.emitTasks(ev)
	return res, err
}
