// Package backup manages timestamped snapshots of the planner's data files
// (tasks, templates, day statistics and calendar view) and restores them.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"planner/internal/fsutil"
	"planner/internal/storage"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"

	nameLayout = "2006-01-02_150405"
)

// ErrNoBackups is returned by RestoreLatest when nothing has been backed up.
var ErrNoBackups = errors.New("no backups available")

// Manager handles backup and restore operations.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
	now        func() time.Time
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// Info summarizes one backup.
type Info struct {
	Name      string // directory name, e.g. 2024-03-10_143022_512
	Path      string
	CreatedAt time.Time
	Stats     map[string]int // tasks, templates, days
}

// NewManager creates a manager for the data files in dataDir.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
		now:        time.Now,
	}
}

// SetNowFunc overrides the clock used to name backups.
func (m *Manager) SetNowFunc(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

// Create snapshots every existing data file and returns the backup name.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.now()
	name := fmt.Sprintf("%s_%03d", now.Format(nameLayout), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)
	if fsutil.Exists(backupPath) {
		return "", fmt.Errorf("backup %s already exists", name)
	}
	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Stats:      map[string]int{},
	}
	for _, filename := range storage.DataFiles() {
		src := filepath.Join(m.dataDir, filename)
		data, err := os.ReadFile(src)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err == nil {
			err = fsutil.WriteFileAtomic(filepath.Join(backupPath, filename), data, 0600)
		}
		if err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", filename, err)
		}
		manifest.Files = append(manifest.Files, filename)
		if key, n, ok := countItems(filename, data); ok {
			manifest.Stats[key] = n
		}
	}

	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return name, nil
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.info(entry.Name())
		if err != nil {
			continue
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Get returns information about one backup.
func (m *Manager) Get(name string) (*Info, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !fsutil.Exists(filepath.Join(m.backupDir, name)) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.info(name)
}

func (m *Manager) info(name string) (*Info, error) {
	path := filepath.Join(m.backupDir, name)
	var manifest Manifest
	if err := readJSON(filepath.Join(path, ManifestFile), &manifest); err != nil {
		createdAt, perr := parseName(name)
		if perr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
	}
	if manifest.Stats == nil {
		manifest.Stats = map[string]int{}
	}
	return &Info{Name: name, Path: path, CreatedAt: manifest.CreatedAt, Stats: manifest.Stats}, nil
}

// Restore replaces the data files with those of backup name. A safety
// backup of the current data is taken first and named in any error.
// The day statistics are recomputed the next time the planner opens.
func (m *Manager) Restore(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	backupPath := filepath.Join(m.backupDir, name)
	if !fsutil.Exists(backupPath) {
		return fmt.Errorf("backup not found: %s", name)
	}

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		manifest.Files = storage.DataFiles()
	}

	files := make(map[string][]byte, len(manifest.Files))
	for _, filename := range manifest.Files {
		if !isDataFile(filename) {
			return fmt.Errorf("backup %s lists unknown file %q", name, filename)
		}
		data, err := os.ReadFile(filepath.Join(backupPath, filename))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filename, err)
		}
		if !json.Valid(data) {
			return fmt.Errorf("backup file %s is not valid JSON", filename)
		}
		files[filename] = data
	}

	lock := flock.New(filepath.Join(m.dataDir, storage.LockFile))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock data directory: %w", err)
	}
	defer lock.Unlock()

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}
	for filename, data := range files {
		if err := fsutil.WriteFileAtomic(filepath.Join(m.dataDir, filename), data, 0600); err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", filename, safetyName, err)
		}
	}
	return nil
}

// RestoreLatest restores the most recent backup and returns its name.
func (m *Manager) RestoreLatest() (string, error) {
	backups, err := m.List()
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", ErrNoBackups
	}
	return backups[0].Name, m.Restore(backups[0].Name)
}

// Delete removes a backup.
func (m *Manager) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	path := filepath.Join(m.backupDir, name)
	if !fsutil.Exists(path) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(path)
}

// Prune deletes all but the keep most recent backups and returns how many
// were deleted.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative")
	}
	backups, err := m.List()
	if err != nil || len(backups) <= keep {
		return 0, err
	}
	deleted := 0
	for _, b := range backups[keep:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func isDataFile(name string) bool {
	for _, f := range storage.DataFiles() {
		if f == name {
			return true
		}
	}
	return false
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

// parseName parses a backup directory name, with or without the trailing
// millisecond component.
func parseName(name string) (time.Time, error) {
	stamp, ms, hasMS := name, "", false
	if len(name) > len(nameLayout) {
		stamp = name[:len(nameLayout)]
		ms, hasMS = strings.CutPrefix(name[len(nameLayout):], "_")
		if !hasMS || len(ms) != 3 {
			return time.Time{}, fmt.Errorf("invalid backup name")
		}
	}
	t, err := time.ParseInLocation(nameLayout, stamp, time.Local)
	if err != nil || !hasMS {
		return t, err
	}
	n, err := strconv.Atoi(ms)
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("invalid milliseconds")
	}
	return t.Add(time.Duration(n) * time.Millisecond), nil
}

// countItems returns the manifest stats entry for a data file.
func countItems(filename string, data []byte) (string, int, bool) {
	switch filename {
	case storage.KeyTasks.Filename():
		var s storage.TaskStore
		if json.Unmarshal(data, &s) == nil {
			return "tasks", len(s.Tasks), true
		}
	case storage.KeyTemplates.Filename():
		var s storage.TemplateStore
		if json.Unmarshal(data, &s) == nil {
			return "templates", len(s.Templates), true
		}
	case storage.KeyDayStats.Filename():
		var s storage.DayStatsMap
		if json.Unmarshal(data, &s) == nil {
			return "days", len(s), true
		}
	}
	return "", 0, false
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
