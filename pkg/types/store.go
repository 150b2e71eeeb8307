package types

import (
	"context"
	"errors"
)

// WordStore is the durable collection of WordRecords keyed by word.
// Callers attach to a backend, upsert and read words, and detach when done.
type WordStore interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach flushes pending writes and releases backend resources.
	// Idempotent: multiple calls succeed.
	Detach() error

	// Upsert sets the word's lastUsed to now and, when successor is non-nil,
	// appends *successor to its nextWords. The record is created if absent.
	// The whole operation is atomic for the word.
	Upsert(ctx context.Context, word string, successor *string) error

	// Get returns the current record for word.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, word string) (*WordRecord, error)

	// Count returns the number of distinct words stored.
	Count(ctx context.Context) (int, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("word store is detached")
	ErrAlreadyAttached = errors.New("word store is already attached")
)
