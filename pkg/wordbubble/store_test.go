package wordbubble

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr error
	}{
		{"sqlite", types.BackendSQLite, nil},
		{"badger", types.BackendBadger, nil},
		{"empty", "", types.ErrBackendEmpty},
		{"unknown", "postgres", types.ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewBackend(tt.backend, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, store)
		})
	}
}

func TestOpen_AttachesEachBackend(t *testing.T) {
	configs := map[string]types.Config{
		"sqlite": {Backend: types.BackendSQLite, DataDir: t.TempDir()},
		"badger": {Backend: types.BackendBadger, DataDir: t.TempDir()},
	}
	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			store, err := Open(cfg, nil)
			require.NoError(t, err)
			defer store.Detach()

			ctx := context.Background()
			require.NoError(t, store.Upsert(ctx, "hello", nil))
			n, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      t.TempDir(),
		SQLiteConfig: &types.SQLiteConfig{SyncStrategy: "sometimes"},
	}, nil)
	assert.ErrorIs(t, err, types.ErrSyncStrategyUnknown)
}
