// Package sqlite implements the SQLite word store backend.
// SQLite is the query engine; words.jsonl in the data directory is the
// source of truth and is reloaded into a fresh database on every Attach.
package sqlite

// Schema DDL for the word graph.
const (
	createWords = `CREATE TABLE words (
    word TEXT PRIMARY KEY,
    last_used TEXT NOT NULL
);`

	// next_words holds each word's successor log; seq preserves append order
	// and duplicates are separate rows.
	createNextWords = `CREATE TABLE next_words (
    word TEXT NOT NULL,
    seq INTEGER NOT NULL,
    next_word TEXT NOT NULL,
    PRIMARY KEY (word, seq),
    FOREIGN KEY (word) REFERENCES words(word)
);`
)

// Index DDL.
const (
	idxNextWordsTarget = `CREATE INDEX idx_next_words_target ON next_words(next_word);`
	idxWordsLastUsed   = `CREATE INDEX idx_words_last_used ON words(last_used);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createWords,
	createNextWords,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxNextWordsTarget,
	idxWordsLastUsed,
}
