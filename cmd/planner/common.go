// Package main is the entry point for the planner application.
// This file contains the helpers shared by the subcommands.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"planner/internal/config"
	"planner/internal/dates"
	"planner/internal/logging"
	"planner/internal/planner"
	"planner/internal/storage"
)

// fail prints an error to stderr and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads configuration (from ~/.config/planner or defaults).
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("loading config: %v", err)
	}
	return cfg
}

// cliLogger logs warnings and errors to stderr. A configured debug level is
// kept so problems can be traced from the command line.
func cliLogger(cfg *config.Config) *log.Logger {
	level := "warn"
	if logging.ParseLevel(cfg.Log.Level) == log.DebugLevel {
		level = "debug"
	}
	return logging.New(os.Stderr, logging.Options{
		Level:  level,
		Format: cfg.Log.Format,
		Prefix: "planner",
	})
}

// openPlanner initializes storage in the configured data directory and
// loads the planner state from it.
func openPlanner(cfg *config.Config, logger *log.Logger) *planner.Planner {
	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fail("initializing storage: %v", err)
	}
	store.SetOnSave(func(ctx storage.SaveContext) {
		logger.Debug("saved", "file", ctx.Filename, "items", ctx.Items)
	})

	p, err := planner.Open(store, planner.Options{
		Locale: dates.NewLocale(cfg.Locale),
		Logger: logger,
	})
	if err != nil {
		fail("loading data: %v", err)
	}
	return p
}

// openCLI is openPlanner with the stderr logger used by subcommands.
func openCLI() (*config.Config, *planner.Planner) {
	cfg := loadConfig()
	return cfg, openPlanner(cfg, cliLogger(cfg))
}

// checkSaved exits when the last mutation could not be written. The change
// itself already happened in memory, so the message says what was lost.
func checkSaved(p *planner.Planner) {
	if err := p.LastPersistenceError(); err != nil {
		fail("saving data (change not persisted): %v", err)
	}
}

// maxPosition bounds the references read as list positions; longer numbers
// are taken as id prefixes.
const maxPosition = 99999

// resolveRef finds an item by its 1-based position in items or by a unique
// prefix of its id.
func resolveRef[T any](items []T, id func(T) string, kind, ref string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("no %s specified", kind)
	}

	if n, err := strconv.Atoi(ref); err == nil && n <= maxPosition {
		if n < 1 || n > len(items) {
			return zero, fmt.Errorf("no %s #%d (%d listed)", kind, n, len(items))
		}
		return items[n-1], nil
	}

	var match []T
	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
		if strings.HasPrefix(id(it), ref) {
			match = append(match, it)
		}
	}
	switch len(match) {
	case 0:
		return zero, fmt.Errorf("%s not found: %s", kind, ref)
	case 1:
		return match[0], nil
	default:
		return zero, fmt.Errorf("%s id %q is ambiguous (%d matches)", kind, ref, len(match))
	}
}

func resolveTask(tasks []storage.Task, ref string) (storage.Task, error) {
	return resolveRef(tasks, func(t storage.Task) string { return t.ID }, "task", ref)
}

func resolveTemplate(templates []storage.Template, ref string) (storage.Template, error) {
	return resolveRef(templates, func(t storage.Template) string { return t.ID }, "template", ref)
}

// parseMonth parses "YYYY-MM" into a year and a 0-based month.
func parseMonth(s string) (int, int, error) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(s), time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, use YYYY-MM", s)
	}
	year, month := dates.YearMonth(t)
	return year, month, nil
}

// parseDay validates a "YYYY-MM-DD" argument.
func parseDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !dates.ValidKey(s) {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return s, nil
}
