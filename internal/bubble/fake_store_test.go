package bubble

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

var errDiskFull = errors.New("disk full")

// fakeStore is an in-memory WordStore that records calls and can fail on
// a chosen operation.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]*types.WordRecord
	calls   []string
	failOp  string // "upsert" or "get"
	failOn  string // word that triggers the failure
	now     time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]*types.WordRecord),
		now:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (s *fakeStore) Attach(types.Config) error { return nil }
func (s *fakeStore) Detach() error             { return nil }

func (s *fakeStore) Upsert(ctx context.Context, word string, successor *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return types.NewStorageError("upsert", word, err)
	}
	if successor != nil {
		s.calls = append(s.calls, fmt.Sprintf("upsert %s->%s", word, *successor))
	} else {
		s.calls = append(s.calls, "upsert "+word)
	}
	if s.failOp == "upsert" && s.failOn == word {
		return types.NewStorageError("upsert", word, errDiskFull)
	}
	rec, ok := s.records[word]
	if !ok {
		rec = &types.WordRecord{Word: word, NextWords: []string{}}
		s.records[word] = rec
	}
	rec.LastUsed = s.now
	if successor != nil {
		rec.NextWords = append(rec.NextWords, *successor)
	}
	return nil
}

func (s *fakeStore) Get(ctx context.Context, word string) (*types.WordRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, types.NewStorageError("get", word, err)
	}
	s.calls = append(s.calls, "get "+word)
	if s.failOp == "get" && s.failOn == word {
		return nil, types.NewStorageError("get", word, errDiskFull)
	}
	rec, ok := s.records[word]
	if !ok {
		return nil, types.ErrNotFound
	}
	// Hand out a copy like a real backend decoding from storage.
	return rec.Clone(), nil
}

func (s *fakeStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records), nil
}

func (s *fakeStore) nextWords(word string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[word]; ok {
		cp := make([]string, len(rec.NextWords))
		copy(cp, rec.NextWords)
		return cp
	}
	return nil
}
