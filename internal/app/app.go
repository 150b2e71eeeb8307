// Package app threads the word store, session gate and processor through
// one explicit value built at startup.
package app

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// Gate reports whether a caller may submit.
type Gate interface {
	IsLoggedIn() bool
}

// Processor turns phrases into bubbles and answers word queries.
type Processor interface {
	Process(ctx context.Context, phrase string) ([]types.Bubble, error)
	SuccessorCount(ctx context.Context, word string) (int, error)
	Word(ctx context.Context, word string) (*types.WordRecord, error)
}

// App gates and serializes phrase submissions.
type App struct {
	store     types.WordStore
	gate      Gate
	processor Processor
	logger    *zap.Logger

	inflight *semaphore.Weighted
	loading  atomic.Bool
}

// New builds an App. store is detached by Close.
func New(store types.WordStore, gate Gate, processor Processor, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		store:     store,
		gate:      gate,
		processor: processor,
		logger:    logger.Named("app"),
		inflight:  semaphore.NewWeighted(1),
	}
}

// Submit processes phrase for the logged-in identity.
// Returns ErrNotLoggedIn without touching the store when the gate has no
// identity, and ErrSubmissionInFlight when another submission is running.
func (a *App) Submit(ctx context.Context, phrase string) ([]types.Bubble, error) {
	if !a.gate.IsLoggedIn() {
		return nil, types.ErrNotLoggedIn
	}
	if !a.inflight.TryAcquire(1) {
		a.logger.Debug("submission rejected, another is in flight")
		return nil, types.ErrSubmissionInFlight
	}
	a.loading.Store(true)
	defer func() {
		a.loading.Store(false)
		a.inflight.Release(1)
	}()

	return a.processor.Process(ctx, phrase)
}

// Loading reports whether a submission is in flight.
func (a *App) Loading() bool {
	return a.loading.Load()
}

// SuccessorCount returns the successor count of word for the logged-in identity.
func (a *App) SuccessorCount(ctx context.Context, word string) (int, error) {
	if !a.gate.IsLoggedIn() {
		return 0, types.ErrNotLoggedIn
	}
	return a.processor.SuccessorCount(ctx, word)
}

// Word returns the stored record of word for the logged-in identity.
func (a *App) Word(ctx context.Context, word string) (*types.WordRecord, error) {
	if !a.gate.IsLoggedIn() {
		return nil, types.ErrNotLoggedIn
	}
	return a.processor.Word(ctx, word)
}

// Close detaches the store.
func (a *App) Close() error {
	return a.store.Detach()
}
