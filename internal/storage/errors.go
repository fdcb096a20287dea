package storage

import (
	"errors"
	"fmt"
)

// ErrMissing is returned by the Load methods when nothing has been stored
// under a key yet. Callers apply their own defaults.
var ErrMissing = errors.New("no stored data")

var (
	errEmpty      = errors.New("file is empty")
	errMonthRange = errors.New("month outside 0..11")
)

// Recovery describes what a load did after finding unreadable data.
type Recovery string

const (
	RecoveredFromBackup Recovery = "backup"
	RecoveredDefaults   Recovery = "defaults"
)

// ParseError reports stored data that could not be decoded. The Load method
// that returns it has already recovered: the value it returns alongside is
// either the backup contents or the defaults.
type ParseError struct {
	Key       Key
	Cause     error
	Recovered Recovery
	MovedTo   string // where the unreadable file was moved, if anywhere
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %s: %v", e.Key.Filename(), e.Cause)
	switch {
	case e.Recovered == RecoveredFromBackup:
		return msg + " (recovered from backup)"
	case e.MovedTo != "":
		return fmt.Sprintf("%s (reset to defaults; original moved to %s)", msg, e.MovedTo)
	default:
		return msg + " (reset to defaults)"
	}
}

func (e *ParseError) Unwrap() error { return e.Cause }

// PersistenceError reports a failed read or write of stored data.
type PersistenceError struct {
	Key Key
	Op  string // "read", "write", "encode", "lock"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key.Filename(), e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
