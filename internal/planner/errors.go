package planner

import (
	"errors"
	"fmt"

	"planner/internal/storage"
)

var (
	// ErrValidation marks input the planner refuses, such as empty task text.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks an id that matches no task or template.
	ErrNotFound = errors.New("not found")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErr(kind, id string) error {
	return fmt.Errorf("%s %w: %s", kind, ErrNotFound, id)
}

// asPersistence wraps err as a *storage.PersistenceError unless it already is one.
func asPersistence(key storage.Key, err error) error {
	if err == nil {
		return nil
	}
	var perr *storage.PersistenceError
	if errors.As(err, &perr) {
		return err
	}
	return &storage.PersistenceError{Key: key, Op: "write", Err: err}
}
