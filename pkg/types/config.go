package types

import "errors"

// Config holds backend selection and parameters for WordStore.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SQLiteConfig tunes the sqlite backend. Nil means defaults.
	SQLiteConfig *SQLiteConfig `json:"sqlite,omitempty" yaml:"sqlite,omitempty"`

	// BadgerConfig tunes the badger backend. Nil means defaults.
	BadgerConfig *BadgerConfig `json:"badger,omitempty" yaml:"badger,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Sync strategies control when the sqlite backend rewrites words.jsonl.
const (
	SyncImmediate = "immediate" // after every upsert
	SyncOnClose   = "on_close"  // on Detach only
	SyncBatch     = "batch"     // every BatchSize upserts and on Detach
)

// Defaults applied when SQLiteConfig fields are unset.
const (
	DefaultSyncStrategy = SyncImmediate
	DefaultBatchSize    = 100
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
	ErrBatchSizeInvalid    = errors.New("batch size must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendBadger: true,
}

var knownSyncStrategies = map[string]bool{
	SyncImmediate: true,
	SyncOnClose:   true,
	SyncBatch:     true,
}

// SQLiteConfig holds sqlite-specific settings.
type SQLiteConfig struct {
	SyncStrategy string `json:"sync_strategy,omitempty" yaml:"sync_strategy,omitempty"`
	BatchSize    int    `json:"batch_size,omitempty" yaml:"batch_size,omitempty"`
}

// GetSyncStrategy returns the configured strategy or DefaultSyncStrategy.
func (c *SQLiteConfig) GetSyncStrategy() string {
	if c == nil || c.SyncStrategy == "" {
		return DefaultSyncStrategy
	}
	return c.SyncStrategy
}

// GetBatchSize returns the configured batch size or DefaultBatchSize.
func (c *SQLiteConfig) GetBatchSize() int {
	if c == nil || c.BatchSize == 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

// BadgerConfig holds badger-specific settings.
type BadgerConfig struct {
	// InMemory keeps all data in RAM; DataDir is ignored.
	InMemory bool `json:"in_memory,omitempty" yaml:"in_memory,omitempty"`

	// SyncWrites fsyncs every commit.
	SyncWrites bool `json:"sync_writes,omitempty" yaml:"sync_writes,omitempty"`
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.SQLiteConfig != nil {
		if c.SQLiteConfig.SyncStrategy != "" && !knownSyncStrategies[c.SQLiteConfig.SyncStrategy] {
			return ErrSyncStrategyUnknown
		}
		if c.SQLiteConfig.BatchSize < 0 {
			return ErrBatchSizeInvalid
		}
	}
	return nil
}
