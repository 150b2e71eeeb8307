// Package wordbubble provides the public API for opening a word store.
// This package exposes the backend factory while keeping implementation
// details internal.
package wordbubble

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordbubble/internal/badger"
	"github.com/mesh-intelligence/wordbubble/internal/sqlite"
	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// Version is the release of the wordbubble module.
const Version = "0.3.0"

// NewBackend creates a detached WordStore for the named backend.
// Returns ErrBackendUnknown for names other than sqlite and badger.
func NewBackend(name string, logger *zap.Logger) (types.WordStore, error) {
	switch name {
	case types.BackendSQLite:
		return sqlite.NewBackend(logger), nil
	case types.BackendBadger:
		return badger.NewBackend(logger), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}

// Open creates the backend named by config.Backend and attaches it.
//
// Example:
//
//	store, err := wordbubble.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".wordbubble-db",
//	}, logger)
//	if err != nil { ... }
//	defer store.Detach()
func Open(config types.Config, logger *zap.Logger) (types.WordStore, error) {
	store, err := NewBackend(config.Backend, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", config.Backend, err)
	}
	return store, nil
}
