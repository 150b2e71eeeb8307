package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// dbFileName is the SQLite file created inside DataDir. It is a cache of
// words.jsonl and is recreated on every Attach.
const dbFileName = "wordbubble.db"

var _ types.WordStore = (*Backend)(nil)

// Backend implements types.WordStore using SQLite as the query engine
// and a JSONL file as the source of truth.
type Backend struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *zap.Logger

	// now supplies lastUsed timestamps; tests replace it.
	now func() time.Time

	// Sync strategy state.
	syncStrategy string // immediate, on_close, batch
	batchSize    int    // upserts between batch flushes
	pending      int    // upserts not yet written to words.jsonl
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
// A nil logger disables logging.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{
		logger: logger.Named("sqlite"),
		now:    time.Now,
	}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, builds a fresh SQLite schema and
// loads words.jsonl into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The database is derived state; start from scratch every time.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// One connection serializes writers and keeps transactions on one handle.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	if err := ensureWordsJSONL(dataDir); err != nil {
		db.Close()
		return err
	}

	loaded, err := loadWordsJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.config.DataDir = dataDir
	b.syncStrategy = config.SQLiteConfig.GetSyncStrategy()
	b.batchSize = config.SQLiteConfig.GetBatchSize()
	b.pending = 0
	b.attached = true

	b.logger.Debug("attached",
		zap.String("data_dir", dataDir),
		zap.String("sync_strategy", b.syncStrategy),
		zap.Int("words_loaded", loaded))
	return nil
}

// Detach writes any pending changes to words.jsonl and closes the database.
// After Detach, all operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if err := b.flushLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.attached = false

	b.logger.Debug("detached", zap.String("data_dir", b.config.DataDir))
	return nil
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// afterWriteLocked applies the sync strategy after a committed upsert.
// The caller must hold b.mu.
func (b *Backend) afterWriteLocked() error {
	b.pending++
	switch b.syncStrategy {
	case types.SyncOnClose:
		return nil
	case types.SyncBatch:
		if b.pending < b.batchSize {
			return nil
		}
	}
	return b.flushLocked()
}

// flushLocked rewrites words.jsonl when there are unpersisted upserts.
// The caller must hold b.mu.
func (b *Backend) flushLocked() error {
	if b.pending == 0 {
		return nil
	}
	if err := persistWordsJSONL(b.db, b.config.DataDir); err != nil {
		return err
	}
	b.logger.Debug("flushed words.jsonl", zap.Int("upserts", b.pending))
	b.pending = 0
	return nil
}
