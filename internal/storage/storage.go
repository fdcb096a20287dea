package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"planner/internal/fsutil"
)

// Key names one persisted record. Each key lives in its own file inside the
// data directory.
type Key string

const (
	KeyTasks     Key = "tasks"
	KeyTemplates Key = "templates"
	KeyDayStats  Key = "day_stats"
	KeyCalendar  Key = "calendar"
)

// Filename returns the file backing the key.
func (k Key) Filename() string {
	return string(k) + ".json"
}

// Keys lists every persisted key.
var Keys = []Key{KeyTasks, KeyTemplates, KeyDayStats, KeyCalendar}

// DataFiles lists the files backing Keys.
func DataFiles() []string {
	files := make([]string, len(Keys))
	for i, k := range Keys {
		files[i] = k.Filename()
	}
	return files
}

// SaveContext describes a completed write.
type SaveContext struct {
	Key      Key
	Filename string
	Items    int // number of records written
}

// Storage reads and writes the planner's JSON files.
type Storage struct {
	dataDir string
	lock    *flock.Flock
	onSave  func(ctx SaveContext)
	now     func() time.Time // injectable clock for deterministic tests
}

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	// LockFile guards writers of the data directory.
	LockFile = ".lock"

	// MaxTextLen bounds task and template text, in runes.
	MaxTextLen = 500
	// MaxEmojiLen bounds the emoji field, in runes. ZWJ sequences and
	// skin-tone modifiers count each code point.
	MaxEmojiLen = 16
)

// New creates a Storage rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Storage{
		dataDir: dataDir,
		lock:    flock.New(filepath.Join(dataDir, LockFile)),
		now:     time.Now,
	}, nil
}

// SetNowFunc overrides the clock used to stamp moved-aside files.
// Passing nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the storage clock.
func (s *Storage) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// SetOnSave registers a callback run after each successful write.
func (s *Storage) SetOnSave(fn func(ctx SaveContext)) {
	s.onSave = fn
}

// GetDataDir returns the path to the data directory.
func (s *Storage) GetDataDir() string {
	return s.dataDir
}

// Path returns the file path backing key.
func (s *Storage) Path(key Key) string {
	return filepath.Join(s.dataDir, key.Filename())
}

// Exists reports whether anything is stored under key.
func (s *Storage) Exists(key Key) bool {
	return fsutil.Exists(s.Path(key))
}

type validator interface {
	validate() error
}

func decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmpty
	}
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	if val, ok := v.(validator); ok {
		return val.validate()
	}
	return nil
}

func (s *Storage) write(key Key, v any, items int) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &PersistenceError{Key: key, Op: "encode", Err: err}
	}

	if err := s.lock.Lock(); err != nil {
		return &PersistenceError{Key: key, Op: "lock", Err: err}
	}
	defer func() { _ = s.lock.Unlock() }()

	path := s.Path(key)
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return &PersistenceError{Key: key, Op: "write", Err: err}
	}

	if s.onSave != nil {
		s.onSave(SaveContext{Key: key, Filename: key.Filename(), Items: items})
	}
	return nil
}

// load decodes key into v. reset restores v to its defaults and is used
// before every decode attempt that follows a failure.
func (s *Storage) load(key Key, v any, reset func()) error {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", key.Filename(), ErrMissing)
		}
		return &PersistenceError{Key: key, Op: "read", Err: err}
	}

	cause := decode(data, v)
	if cause == nil {
		return nil
	}
	return s.recoverCorrupt(key, v, reset, cause)
}

func (s *Storage) recoverCorrupt(key Key, v any, reset func(), cause error) error {
	path := s.Path(key)
	perr := &ParseError{Key: key, Cause: cause}

	reset()
	if bak, err := os.ReadFile(fsutil.BackupPath(path)); err == nil && decode(bak, v) == nil {
		perr.Recovered = RecoveredFromBackup
		perr.MovedTo = fsutil.MoveAside(path, s.Now())
		_ = s.write(key, v, 0)
		return perr
	}

	reset()
	perr.Recovered = RecoveredDefaults
	perr.MovedTo = fsutil.MoveAside(path, s.Now())
	return perr
}

// LoadTasks reads the task list. A missing file yields an empty list and
// ErrMissing; unreadable data yields the recovered list and a *ParseError.
func (s *Storage) LoadTasks() (*TaskStore, error) {
	store := &TaskStore{Tasks: []Task{}}
	err := s.load(KeyTasks, store, func() { *store = TaskStore{Tasks: []Task{}} })
	if store.Tasks == nil {
		store.Tasks = []Task{}
	}
	return store, err
}

// SaveTasks writes the task list.
func (s *Storage) SaveTasks(store *TaskStore) error {
	if store.Tasks == nil {
		store = &TaskStore{Tasks: []Task{}}
	}
	return s.write(KeyTasks, store, len(store.Tasks))
}

// LoadTemplates reads the template catalog. When nothing is stored, or the
// stored data is unreadable and no backup exists, Templates is nil so the
// caller can seed its defaults.
func (s *Storage) LoadTemplates() (*TemplateStore, error) {
	store := &TemplateStore{}
	err := s.load(KeyTemplates, store, func() { *store = TemplateStore{} })
	return store, err
}

// SaveTemplates writes the template catalog.
func (s *Storage) SaveTemplates(store *TemplateStore) error {
	if store.Templates == nil {
		store = &TemplateStore{Templates: []Template{}}
	}
	return s.write(KeyTemplates, store, len(store.Templates))
}

// LoadDayStats reads the persisted statistics cache.
func (s *Storage) LoadDayStats() (DayStatsMap, error) {
	m := DayStatsMap{}
	err := s.load(KeyDayStats, &m, func() { m = DayStatsMap{} })
	if m == nil {
		m = DayStatsMap{}
	}
	return m, err
}

// SaveDayStats writes the statistics cache.
func (s *Storage) SaveDayStats(m DayStatsMap) error {
	if m == nil {
		m = DayStatsMap{}
	}
	return s.write(KeyDayStats, m, len(m))
}

// LoadCalendar reads the calendar view. A stored month outside 0..11 is
// treated as unreadable.
func (s *Storage) LoadCalendar() (CalendarView, error) {
	var view CalendarView
	err := s.load(KeyCalendar, &view, func() { view = CalendarView{} })
	return view, err
}

// SaveCalendar writes the calendar view.
func (s *Storage) SaveCalendar(view CalendarView) error {
	if err := view.validate(); err != nil {
		return &PersistenceError{Key: KeyCalendar, Op: "encode", Err: err}
	}
	return s.write(KeyCalendar, view, 1)
}
