// Package stats maintains the per-date completion statistics derived from the
// task list.
//
// The cache is purely derived data: RecomputeAll rebuilds it from scratch and
// RecomputeDates refreshes selected dates after a mutation. Both paths leave
// the cache in the same state for the same task list.
package stats

import (
	"sort"

	"planner/internal/storage"
)

// Rate returns round(completed/total*100), rounding halves up, or 0 when
// total is 0.
func Rate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}

// Summarize computes the statistics of a set of tasks belonging to one date.
func Summarize(tasks []storage.Task) storage.DayStats {
	var s storage.DayStats
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}
	}
	s.CompletionRate = Rate(s.Completed, s.Total)
	s.HasTasks = s.Total > 0
	return s
}

// Cache maps date keys to their statistics. The zero value is not usable;
// call NewCache or FromMap.
type Cache struct {
	days map[string]storage.DayStats
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{days: make(map[string]storage.DayStats)}
}

// FromMap returns a cache seeded with previously persisted statistics.
func FromMap(m storage.DayStatsMap) *Cache {
	c := NewCache()
	for k, v := range m {
		if v.Total > 0 {
			c.days[k] = v
		}
	}
	return c
}

// RecomputeAll discards every entry and rebuilds the cache from tasks.
// Dates without tasks get no entry.
func (c *Cache) RecomputeAll(tasks []storage.Task) {
	days := make(map[string]storage.DayStats)
	for _, t := range tasks {
		s := days[t.Date]
		s.Total++
		if t.Completed {
			s.Completed++
		}
		days[t.Date] = s
	}
	for k, s := range days {
		s.CompletionRate = Rate(s.Completed, s.Total)
		s.HasTasks = true
		days[k] = s
	}
	c.days = days
}

// RecomputeDates refreshes only the given dates. A date that no longer has
// any task loses its entry.
func (c *Cache) RecomputeDates(tasks []storage.Task, dateKeys ...string) {
	if len(dateKeys) == 0 {
		return
	}
	wanted := make(map[string][]storage.Task, len(dateKeys))
	for _, k := range dateKeys {
		wanted[k] = nil
	}
	for _, t := range tasks {
		if _, ok := wanted[t.Date]; ok {
			wanted[t.Date] = append(wanted[t.Date], t)
		}
	}
	for k, dayTasks := range wanted {
		if len(dayTasks) == 0 {
			delete(c.days, k)
			continue
		}
		c.days[k] = Summarize(dayTasks)
	}
}

// StatsFor returns the statistics of a date, or the zero value when the
// date has no tasks.
func (c *Cache) StatsFor(dateKey string) storage.DayStats {
	return c.days[dateKey]
}

// Keys returns every date with tasks in ascending order.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, len(c.days))
	for k := range c.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of dates with tasks.
func (c *Cache) Len() int {
	return len(c.days)
}

// Map returns a copy of the cache suitable for persisting.
func (c *Cache) Map() storage.DayStatsMap {
	m := make(storage.DayStatsMap, len(c.days))
	for k, v := range c.days {
		m[k] = v
	}
	return m
}
