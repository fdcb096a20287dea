// Package fsutil contains the small file primitives the JSON stores build on.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// CorruptStampLayout is the timestamp appended to files moved aside by MoveAside.
const CorruptStampLayout = "20060102-150405"

// WriteFileAtomic writes data to a temp file next to path, fsyncs it and
// renames it over path. Readers never observe a half-written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := replace(tmpPath, path); err != nil {
		return err
	}
	committed = true
	syncDir(dir)
	return nil
}

// replace renames src over dst. Windows refuses to rename onto an existing
// file, so there the destination is removed first.
func replace(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if runtime.GOOS == "windows" {
		if rmErr := os.Remove(dst); rmErr == nil || errors.Is(rmErr, os.ErrNotExist) {
			if err2 := os.Rename(src, dst); err2 == nil {
				return nil
			}
		}
	}
	return fmt.Errorf("rename %s -> %s: %w", src, dst, err)
}

// BackupPath is the location of the rolling backup kept for path.
func BackupPath(path string) string {
	return path + ".bak"
}

// BestEffortBackup copies the current contents of path to its .bak sibling.
// Failures are ignored; a missing backup never blocks a write.
func BestEffortBackup(path string, perm os.FileMode) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return
	}
	_ = WriteFileAtomic(BackupPath(path), data, perm)
}

// MoveAside renames path to path.corrupt.<stamp> and returns the new name.
// An empty string means nothing was moved.
func MoveAside(path string, at time.Time) string {
	dst := fmt.Sprintf("%s.corrupt.%s", path, at.Format(CorruptStampLayout))
	if err := os.Rename(path, dst); err != nil {
		return ""
	}
	return dst
}

// Exists reports whether path exists. Permission errors count as existing so
// callers do not overwrite files they cannot stat.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	_ = f.Sync()
}
