// Package planner owns the application state of the daily planner: the task
// list, the template catalog, the day statistics cache and the calendar view.
//
// Every mutation goes through a Planner method, which refreshes the cache for
// the affected dates, persists the result and then notifies listeners.
// Persistence failures are logged and reported in events but never undo or
// fail the in-memory change.
package planner

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"planner/internal/calendar"
	"planner/internal/dates"
	"planner/internal/reports"
	"planner/internal/stats"
	"planner/internal/storage"
)

// Store is the persistence the planner needs. *storage.Storage implements it.
type Store interface {
	LoadTasks() (*storage.TaskStore, error)
	SaveTasks(store *storage.TaskStore) error
	LoadTemplates() (*storage.TemplateStore, error)
	SaveTemplates(store *storage.TemplateStore) error
	LoadDayStats() (storage.DayStatsMap, error)
	SaveDayStats(m storage.DayStatsMap) error
	LoadCalendar() (storage.CalendarView, error)
	SaveCalendar(view storage.CalendarView) error
}

var _ Store = (*storage.Storage)(nil)

// Options configures Open. The zero value is usable.
type Options struct {
	Locale dates.Locale
	Logger *log.Logger
	Now    func() time.Time
	NewID  func() string
}

// Planner is the application state object.
type Planner struct {
	mu sync.Mutex

	store     Store
	tasks     []storage.Task
	templates []storage.Template
	cache     *stats.Cache
	nav       *calendar.Navigator
	reports   *reports.Generator

	locale dates.Locale
	log    *log.Logger
	now    func() time.Time
	newID  func() string

	lastPersistErr error

	taskListeners     []func(TaskListChanged)
	calendarListeners []func(CalendarChanged)
}

// Open loads every persisted key and returns a ready planner.
//
// Unreadable data is recovered by storage and only logged here. Templates are
// seeded when none were ever stored. The statistics cache is always rebuilt
// from the loaded tasks. Open fails only when the task list or the template
// catalog exists but cannot be read, since continuing would overwrite it.
func Open(store Store, opts Options) (*Planner, error) {
	p := &Planner{
		store:  store,
		locale: opts.Locale,
		log:    opts.Logger,
		now:    opts.Now,
		newID:  opts.NewID,
		cache:  stats.NewCache(),
	}
	if p.log == nil {
		p.log = log.New(io.Discard)
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newID == nil {
		p.newID = uuid.NewString
	}
	if p.locale.Tag() == "und" {
		p.locale = dates.English()
	}

	taskStore, err := store.LoadTasks()
	if err := p.noteLoad(storage.KeyTasks, err); err != nil {
		return nil, err
	}
	if taskStore != nil {
		p.tasks = taskStore.Tasks
	}

	tplStore, err := store.LoadTemplates()
	if err := p.noteLoad(storage.KeyTemplates, err); err != nil {
		return nil, err
	}
	if tplStore != nil {
		p.templates = tplStore.Templates
	}
	if p.templates == nil {
		p.templates = DefaultTemplates(p.locale)
		p.log.Info("seeded default templates", "count", len(p.templates))
		p.notePersist(p.saveTemplates())
	}

	persisted, err := store.LoadDayStats()
	_ = p.noteLoad(storage.KeyDayStats, err)
	p.cache.RecomputeAll(p.tasks)
	if !maps.Equal(persisted, p.cache.Map()) {
		p.log.Debug("rebuilt day statistics", "days", p.cache.Len())
		p.notePersist(p.saveDayStats())
	}

	view, err := store.LoadCalendar()
	_ = p.noteLoad(storage.KeyCalendar, err)
	p.nav = calendar.NewNavigator(view, p.now)

	p.reports = reports.NewGenerator(p, p.locale)
	p.reports.SetNowFunc(p.now)

	return p, nil
}

// noteLoad logs the outcome of a load. It returns an error only for read
// failures of the durable keys.
func (p *Planner) noteLoad(key storage.Key, err error) error {
	if err == nil || errors.Is(err, storage.ErrMissing) {
		return nil
	}
	var perr *storage.ParseError
	if errors.As(err, &perr) {
		p.log.Warn("recovered unreadable data", "file", key.Filename(), "recovered", perr.Recovered, "moved_to", perr.MovedTo, "err", perr.Cause)
		return nil
	}
	if key == storage.KeyTasks || key == storage.KeyTemplates {
		return fmt.Errorf("load %s: %w", key.Filename(), err)
	}
	p.log.Warn("could not read data, using defaults", "file", key.Filename(), "err", err)
	return nil
}

func (p *Planner) notePersist(err error) {
	p.lastPersistErr = err
	if err != nil {
		p.log.Error("could not save changes; they are kept for this session only", "err", err)
	}
}

// LastPersistenceError returns the outcome of the most recent save: nil when
// it succeeded.
func (p *Planner) LastPersistenceError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPersistErr
}

// Locale returns the display locale.
func (p *Planner) Locale() dates.Locale { return p.locale }

// Now returns the planner clock reading.
func (p *Planner) Now() time.Time { return p.now() }

// Today returns today's date key.
func (p *Planner) Today() string { return dates.Today(p.now()) }

// Reports returns the report generator bound to the live statistics.
func (p *Planner) Reports() *reports.Generator { return p.reports }

func (p *Planner) saveTasks() error {
	return asPersistence(storage.KeyTasks, p.store.SaveTasks(&storage.TaskStore{Tasks: p.tasks}))
}

func (p *Planner) saveTemplates() error {
	return asPersistence(storage.KeyTemplates, p.store.SaveTemplates(&storage.TemplateStore{Templates: p.templates}))
}

func (p *Planner) saveDayStats() error {
	return asPersistence(storage.KeyDayStats, p.store.SaveDayStats(p.cache.Map()))
}

// StatsFor returns the statistics of a date; the zero value when it has no tasks.
func (p *Planner) StatsFor(dateKey string) storage.DayStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cache.StatsFor(dateKey)
}

// Keys returns every date that has tasks, ascending.
func (p *Planner) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cache.Keys()
}

// Rebuild recomputes the whole statistics cache from the task list and
// persists it.
func (p *Planner) Rebuild() error {
	p.mu.Lock()
	p.cache.RecomputeAll(p.tasks)
	keys := p.cache.Keys()
	err := p.saveDayStats()
	p.notePersist(err)
	ev := TaskListChanged{Op: OpRebuild, Dates: keys, Stats: p.statsOf(keys), Err: err}
	p.mu.Unlock()

	p.emitTasks(ev)
	return err
}

func (p *Planner) statsOf(keys []string) map[string]storage.DayStats {
	out := make(map[string]storage.DayStats, len(keys))
	for _, k := range keys {
		out[k] = p.cache.StatsFor(k)
	}
	return out
}
