// Package bubble turns submitted phrases into word graph updates and the
// ordered bubbles that display them.
package bubble

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// Processor walks phrases against a WordStore.
// A Processor holds no per-submission state; callers serialize submissions.
type Processor struct {
	store  types.WordStore
	logger *zap.Logger
}

// NewProcessor creates a Processor over store. A nil logger disables logging.
func NewProcessor(store types.WordStore, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{store: store, logger: logger.Named("bubble")}
}

// Tokenize splits phrase into words on runs of whitespace.
func Tokenize(phrase string) []string {
	return strings.Fields(phrase)
}

// Process records phrase in the store and returns one bubble per word in
// phrase order.
//
// Words are handled right to left. Each word is upserted with the word that
// follows it as successor (the last word gets none), then read back. A word
// repeated in the phrase therefore sees the writes of its rightward
// occurrences.
//
// An empty or whitespace-only phrase returns nil without touching the store.
// A store error stops the walk and is returned with no bubbles; words already
// written stay written. Cancelling ctx after Process starts has no effect.
func (p *Processor) Process(ctx context.Context, phrase string) ([]types.Bubble, error) {
	words := Tokenize(phrase)
	if len(words) == 0 {
		submissionsTotal.WithLabelValues(resultEmpty).Inc()
		return nil, nil
	}

	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	bubbles := make([]types.Bubble, len(words))
	var next *types.WordRecord
	for i := len(words) - 1; i >= 0; i-- {
		word := words[i]

		var successor *string
		if next != nil {
			successor = &next.Word
		}
		if err := p.store.Upsert(ctx, word, successor); err != nil {
			return nil, p.abort(i, word, err)
		}
		rec, err := p.store.Get(ctx, word)
		if err != nil {
			return nil, p.abort(i, word, err)
		}

		bubbles[i] = types.NewBubble(rec, successor != nil)
		next = rec.Clone()
		wordsProcessed.Inc()

		p.logger.Debug("word processed",
			zap.Int("position", i),
			zap.String("word", word),
			zap.Int("next_count", bubbles[i].NextCount))
	}

	elapsed := time.Since(start)
	submissionDuration.Observe(elapsed.Seconds())
	submissionsTotal.WithLabelValues(resultOK).Inc()
	p.logger.Info("phrase processed",
		zap.Int("words", len(words)),
		zap.Duration("elapsed", elapsed))
	return bubbles, nil
}

func (p *Processor) abort(pos int, word string, err error) error {
	submissionsTotal.WithLabelValues(resultStorageError).Inc()
	p.logger.Warn("phrase aborted",
		zap.Int("position", pos),
		zap.String("word", word),
		zap.Error(err))
	return fmt.Errorf("processing word %d %q: %w", pos, word, err)
}

// SuccessorCount returns how many successor entries word has accumulated,
// counting repeats. Returns ErrNotFound for a word never submitted.
func (p *Processor) SuccessorCount(ctx context.Context, word string) (int, error) {
	rec, err := p.store.Get(ctx, word)
	if err != nil {
		return 0, err
	}
	return rec.SuccessorCount(), nil
}

// Word returns the stored record for word.
func (p *Processor) Word(ctx context.Context, word string) (*types.WordRecord, error) {
	return p.store.Get(ctx, word)
}
