package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// setupBackend attaches a Backend to a fresh temp dir and detaches it on cleanup.
func setupBackend(t *testing.T, sc *types.SQLiteConfig) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      dir,
		SQLiteConfig: sc,
	}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func strPtr(s string) *string { return &s }

func TestBackend_Attach(t *testing.T) {
	dir := t.TempDir()
	b := NewBackend(nil)
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	require.NoError(t, b.Attach(cfg))
	defer b.Detach()

	assert.FileExists(t, filepath.Join(dir, dbFileName))
	assert.FileExists(t, filepath.Join(dir, wordsFileName))

	assert.ErrorIs(t, b.Attach(cfg), types.ErrAlreadyAttached)
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.Config
		want error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "postgres"}, types.ErrBackendUnknown},
		{
			"unknown sync strategy",
			types.Config{Backend: types.BackendSQLite, SQLiteConfig: &types.SQLiteConfig{SyncStrategy: "sometimes"}},
			types.ErrSyncStrategyUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBackend(nil).Attach(tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b, _ := setupBackend(t, nil)
	ctx := context.Background()

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "second Detach should be a no-op")

	err := b.Upsert(ctx, "fox", nil)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, err, types.ErrStorage)

	_, err = b.Get(ctx, "fox")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackend_ReattachReloadsFromJSONL(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend(nil)
	require.NoError(t, b.Attach(cfg))
	require.NoError(t, b.Upsert(ctx, "fox", nil))
	require.NoError(t, b.Upsert(ctx, "quick", strPtr("fox")))
	require.NoError(t, b.Upsert(ctx, "quick", strPtr("fox")))
	require.NoError(t, b.Detach())

	b2 := NewBackend(nil)
	require.NoError(t, b2.Attach(cfg))
	defer b2.Detach()

	rec, err := b2.Get(ctx, "quick")
	require.NoError(t, err)
	assert.Equal(t, []string{"fox", "fox"}, rec.NextWords)

	n, err := b2.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSyncStrategy_ImmediateDefault(t *testing.T) {
	b, dir := setupBackend(t, nil)
	assert.Equal(t, types.SyncImmediate, b.syncStrategy)

	require.NoError(t, b.Upsert(context.Background(), "fox", nil))

	data, err := os.ReadFile(filepath.Join(dir, wordsFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"word":"fox"`)
}

func TestSyncStrategy_OnCloseDefersWrites(t *testing.T) {
	b, dir := setupBackend(t, &types.SQLiteConfig{SyncStrategy: types.SyncOnClose})
	path := filepath.Join(dir, wordsFileName)

	require.NoError(t, b.Upsert(context.Background(), "fox", nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data, "on_close must not write before Detach")

	require.NoError(t, b.Detach())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"word":"fox"`)
}

func TestSyncStrategy_BatchFlushesAtThreshold(t *testing.T) {
	b, dir := setupBackend(t, &types.SQLiteConfig{SyncStrategy: types.SyncBatch, BatchSize: 3})
	path := filepath.Join(dir, wordsFileName)
	ctx := context.Background()

	require.NoError(t, b.Upsert(ctx, "a", nil))
	require.NoError(t, b.Upsert(ctx, "b", nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data, "below threshold")

	require.NoError(t, b.Upsert(ctx, "c", nil))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"word":"c"`)
	assert.Equal(t, 0, b.pending)
}

func TestUpsert_SetsLastUsed(t *testing.T) {
	b, _ := setupBackend(t, nil)
	ctx := context.Background()

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	b.now = func() time.Time { return first }
	require.NoError(t, b.Upsert(ctx, "fox", nil))
	rec, err := b.Get(ctx, "fox")
	require.NoError(t, err)
	assert.True(t, first.Equal(rec.LastUsed))

	b.now = func() time.Time { return second }
	require.NoError(t, b.Upsert(ctx, "fox", nil))
	rec, err = b.Get(ctx, "fox")
	require.NoError(t, err)
	assert.True(t, second.Equal(rec.LastUsed))
	assert.Empty(t, rec.NextWords)
}

func TestUpsert_AppendsInOrderWithDuplicates(t *testing.T) {
	b, _ := setupBackend(t, nil)
	ctx := context.Background()

	for _, next := range []string{"quick", "lazy", "quick"} {
		require.NoError(t, b.Upsert(ctx, "the", strPtr(next)))
	}
	require.NoError(t, b.Upsert(ctx, "the", nil))

	rec, err := b.Get(ctx, "the")
	require.NoError(t, err)
	assert.Equal(t, []string{"quick", "lazy", "quick"}, rec.NextWords)
}

func TestUpsert_CaseSensitiveKeys(t *testing.T) {
	b, _ := setupBackend(t, nil)
	ctx := context.Background()

	require.NoError(t, b.Upsert(ctx, "Fox", nil))
	require.NoError(t, b.Upsert(ctx, "fox", strPtr("Fox")))

	upper, err := b.Get(ctx, "Fox")
	require.NoError(t, err)
	lower, err := b.Get(ctx, "fox")
	require.NoError(t, err)
	assert.Empty(t, upper.NextWords)
	assert.Equal(t, []string{"Fox"}, lower.NextWords)
}

func TestUpsert_EmptyWord(t *testing.T) {
	b, _ := setupBackend(t, nil)
	assert.ErrorIs(t, b.Upsert(context.Background(), "", nil), types.ErrInvalidWord)
}

func TestGet_NotFound(t *testing.T) {
	b, _ := setupBackend(t, nil)
	_, err := b.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NotErrorIs(t, err, types.ErrStorage)
}
