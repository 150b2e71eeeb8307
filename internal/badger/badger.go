// Package badger implements the BadgerDB word store backend.
//
// Each word is one key ("word/<word>") holding the JSON-encoded WordRecord.
// Upsert is a read-modify-write inside a single badger transaction; badger's
// optimistic concurrency control rejects a commit that raced another writer
// with ErrConflict, and the backend retries the whole transaction. This is
// the compare-and-swap loop that makes Upsert atomic per word.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

const (
	// keyPrefix namespaces word records inside the badger keyspace.
	keyPrefix = "word/"

	// dirName is the badger directory inside DataDir.
	dirName = "badger"

	// defaultMaxRetries bounds the conflict retry loop in Upsert.
	defaultMaxRetries = 16
)

var _ types.WordStore = (*Backend)(nil)

// Backend implements types.WordStore on BadgerDB.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *badger.DB
	logger   *zap.Logger

	now        func() time.Time
	maxRetries int
}

// NewBackend creates a detached badger backend. A nil logger disables logging.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{
		logger:     logger.Named("badger"),
		now:        time.Now,
		maxRetries: defaultMaxRetries,
	}
}

// zapLogger adapts zap to badger's Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l *zapLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l *zapLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l *zapLogger) Infof(format string, args ...interface{})    { l.s.Debugf(format, args...) }
func (l *zapLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }

// Attach opens the badger database under DataDir/badger, or in memory when
// BadgerConfig.InMemory is set.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	bc := config.BadgerConfig
	if bc == nil {
		bc = &types.BadgerConfig{SyncWrites: true}
	}

	var opts badger.Options
	if bc.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dataDir := config.DataDir
		if dataDir == "" {
			dataDir = "."
		}
		path := filepath.Join(dataDir, dirName)
		if err := os.MkdirAll(path, 0o750); err != nil {
			return fmt.Errorf("create database directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts = opts.
		WithSyncWrites(bc.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&zapLogger{s: b.logger.Sugar()})

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open badger database: %w", err)
	}

	b.db = db
	b.attached = true
	b.logger.Debug("attached", zap.Bool("in_memory", bc.InMemory))
	return nil
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.attached = false
	if err != nil {
		return fmt.Errorf("close badger database: %w", err)
	}
	return nil
}

func wordKey(word string) []byte {
	return []byte(keyPrefix + word)
}

// Upsert refreshes lastUsed and appends successor when non-nil, retrying the
// transaction when badger reports a write conflict.
func (b *Backend) Upsert(ctx context.Context, word string, successor *string) error {
	if word == "" {
		return types.ErrInvalidWord
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.NewStorageError("upsert", word, types.ErrStoreDetached)
	}

	for attempt := 0; attempt < b.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return types.NewStorageError("upsert", word, err)
		}
		err := b.db.Update(func(txn *badger.Txn) error {
			rec, err := readRecord(txn, word)
			if errors.Is(err, types.ErrNotFound) {
				rec = &types.WordRecord{Word: word, NextWords: []string{}}
			} else if err != nil {
				return err
			}
			rec.LastUsed = b.now().UTC()
			if successor != nil {
				rec.NextWords = append(rec.NextWords, *successor)
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encoding record: %w", err)
			}
			return txn.Set(wordKey(word), data)
		})
		if errors.Is(err, badger.ErrConflict) {
			b.logger.Debug("upsert conflict, retrying", zap.String("word", word), zap.Int("attempt", attempt+1))
			continue
		}
		return types.NewStorageError("upsert", word, err)
	}
	return types.NewStorageError("upsert", word,
		fmt.Errorf("%w after %d attempts", badger.ErrConflict, b.maxRetries))
}

// Get returns the record for word or ErrNotFound.
func (b *Backend) Get(ctx context.Context, word string) (*types.WordRecord, error) {
	if word == "" {
		return nil, types.ErrInvalidWord
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.NewStorageError("get", word, types.ErrStoreDetached)
	}

	var rec *types.WordRecord
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = readRecord(txn, word)
		return err
	})
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.NewStorageError("get", word, err)
	}
	return rec, nil
}

// Count returns the number of word keys.
func (b *Backend) Count(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.NewStorageError("count", "", types.ErrStoreDetached)
	}

	n := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, types.NewStorageError("count", "", err)
	}
	return n, nil
}

// readRecord decodes the record for word inside txn.
func readRecord(txn *badger.Txn, word string) (*types.WordRecord, error) {
	item, err := txn.Get(wordKey(word))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec types.WordRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	if rec.NextWords == nil {
		rec.NextWords = []string{}
	}
	return &rec, nil
}
