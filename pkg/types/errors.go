package types

import (
	"errors"
	"fmt"
)

// Word store errors.
var (
	ErrNotFound    = errors.New("word not found")
	ErrInvalidWord = errors.New("word must not be empty")

	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage = errors.New("storage error")
)

// Session and submission errors.
var (
	ErrAuthFailure        = errors.New("could not establish an identity")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// StorageError reports an I/O failure reading or writing a WordRecord.
type StorageError struct {
	Op   string // "upsert", "get", "count", "flush"
	Word string // empty for store-wide operations
	Err  error
}

// NewStorageError wraps err for op on word. A nil err yields nil.
func NewStorageError(op, word string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Word: word, Err: err}
}

func (e *StorageError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Word, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) true for any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
