// This file implements the word store operations for the SQLite backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// timeLayout is the on-disk timestamp format for last_used.
const timeLayout = time.RFC3339Nano

// Upsert refreshes last_used for word and appends successor to its
// next_words log when successor is non-nil. Both statements run in one
// transaction, so a failed append leaves last_used untouched as well.
func (b *Backend) Upsert(ctx context.Context, word string, successor *string) error {
	if word == "" {
		return types.ErrInvalidWord
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.NewStorageError("upsert", word, types.ErrStoreDetached)
	}

	now := b.now().UTC().Format(timeLayout)

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return types.NewStorageError("upsert", word, fmt.Errorf("begin: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO words (word, last_used) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET last_used = excluded.last_used`,
		word, now); err != nil {
		return types.NewStorageError("upsert", word, fmt.Errorf("upserting word: %w", err))
	}

	if successor != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO next_words (word, seq, next_word)
			SELECT ?, COALESCE(MAX(seq), 0) + 1, ? FROM next_words WHERE word = ?`,
			word, *successor, word); err != nil {
			return types.NewStorageError("upsert", word, fmt.Errorf("appending successor: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return types.NewStorageError("upsert", word, fmt.Errorf("commit: %w", err))
	}

	if err := b.afterWriteLocked(); err != nil {
		return types.NewStorageError("flush", word, err)
	}
	return nil
}

// Get returns the record for word with next_words in append order.
// Returns ErrNotFound if the word has never been upserted.
func (b *Backend) Get(ctx context.Context, word string) (*types.WordRecord, error) {
	if word == "" {
		return nil, types.ErrInvalidWord
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.NewStorageError("get", word, types.ErrStoreDetached)
	}

	var lastUsed string
	err := b.db.QueryRowContext(ctx,
		"SELECT last_used FROM words WHERE word = ?", word).Scan(&lastUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.NewStorageError("get", word, fmt.Errorf("scanning word: %w", err))
	}

	rec := &types.WordRecord{Word: word, NextWords: []string{}}
	rec.LastUsed, err = time.Parse(timeLayout, lastUsed)
	if err != nil {
		return nil, types.NewStorageError("get", word, fmt.Errorf("parsing last_used: %w", err))
	}

	rows, err := b.db.QueryContext(ctx,
		"SELECT next_word FROM next_words WHERE word = ? ORDER BY seq", word)
	if err != nil {
		return nil, types.NewStorageError("get", word, fmt.Errorf("loading next words: %w", err))
	}
	defer rows.Close()
	for rows.Next() {
		var next string
		if err := rows.Scan(&next); err != nil {
			return nil, types.NewStorageError("get", word, fmt.Errorf("scanning next word: %w", err))
		}
		rec.NextWords = append(rec.NextWords, next)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("get", word, err)
	}
	return rec, nil
}

// Count returns the number of distinct words.
func (b *Backend) Count(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.NewStorageError("count", "", types.ErrStoreDetached)
	}

	var n int
	if err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM words").Scan(&n); err != nil {
		return 0, types.NewStorageError("count", "", err)
	}
	return n, nil
}
