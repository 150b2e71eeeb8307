// This file implements JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"
)

// loadWordsJSONL reads words.jsonl from dataDir and inserts every record into
// the words and next_words tables. Loading is transactional: all succeed or
// the database remains empty. Malformed lines, records without a word or
// with an unparseable last_used, and unknown fields are skipped. A word that
// appears on more than one line keeps the first occurrence.
// Returns the number of words loaded.
func loadWordsJSONL(db *sql.DB, dataDir string) (int, error) {
	records, err := readJSONL(filepath.Join(dataDir, wordsFileName))
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	insertWord, err := tx.Prepare("INSERT OR IGNORE INTO words (word, last_used) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("preparing word insert: %w", err)
	}
	defer insertWord.Close()

	insertNext, err := tx.Prepare("INSERT INTO next_words (word, seq, next_word) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("preparing next word insert: %w", err)
	}
	defer insertNext.Close()

	loaded := 0
	for _, rec := range records {
		var line wordLine
		if err := json.Unmarshal(rec, &line); err != nil || line.Word == "" {
			continue
		}
		if _, err := time.Parse(timeLayout, line.LastUsed); err != nil {
			continue
		}

		res, err := insertWord.Exec(line.Word, line.LastUsed)
		if err != nil {
			return 0, fmt.Errorf("loading word %q: %w", line.Word, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue
		}
		for i, next := range line.NextWords {
			if _, err := insertNext.Exec(line.Word, i+1, next); err != nil {
				return 0, fmt.Errorf("loading next words of %q: %w", line.Word, err)
			}
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}
