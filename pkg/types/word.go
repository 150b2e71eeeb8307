package types

import "time"

// WordRecord is the persisted state of one distinct word.
// The word is the unique, case-sensitive key and never changes once created.
type WordRecord struct {
	Word      string    `json:"word"`
	LastUsed  time.Time `json:"lastUsed"`
	NextWords []string  `json:"nextWords"` // append-only, duplicates kept
}

// SuccessorCount returns the number of successor entries recorded so far,
// counting repeats.
func (r *WordRecord) SuccessorCount() int {
	return len(r.NextWords)
}

// Clone returns a deep copy so callers can hold a snapshot that later
// upserts cannot alter.
func (r *WordRecord) Clone() *WordRecord {
	cp := *r
	cp.NextWords = copyWords(r.NextWords)
	return &cp
}

// copyWords returns a copy of words that is never nil, so an empty
// successor list encodes as [] rather than null.
func copyWords(words []string) []string {
	cp := make([]string, len(words))
	copy(cp, words)
	return cp
}

// Bubble is the transient, per-occurrence view of a word produced by one
// phrase submission. Bubbles are returned in phrase order and never stored.
type Bubble struct {
	Word      string    `json:"word"`
	LastUsed  time.Time `json:"lastUsed"`
	NextWords []string  `json:"nextWords"`
	NextCount int       `json:"nextCount"`
}

// NewBubble builds the bubble for a record read back after its upsert.
//
// When appended is true the submission pushed one successor onto the record,
// so NextCount excludes it: len(NextWords)-1. When appended is false (the
// last word of the phrase) nothing was pushed and NextCount is the existing
// length. The two branches are kept separate on purpose; they differ for
// self-referential phrases such as "fox fox".
func NewBubble(rec *WordRecord, appended bool) Bubble {
	n := len(rec.NextWords)
	if appended {
		n--
	}
	return Bubble{
		Word:      rec.Word,
		LastUsed:  rec.LastUsed,
		NextWords: copyWords(rec.NextWords),
		NextCount: n,
	}
}
