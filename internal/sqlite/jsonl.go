// This file provides JSONL read/write helpers with atomic persistence.
package sqlite

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// wordsFileName is the JSONL source of truth inside DataDir.
const wordsFileName = "words.jsonl"

// wordLine is one line of words.jsonl.
type wordLine struct {
	Word      string   `json:"word"`
	LastUsed  string   `json:"last_used"`
	NextWords []string `json:"next_words"`
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	// A frequent word accumulates a long successor list; allow long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err = w.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ensureWordsJSONL creates an empty words.jsonl if it does not exist.
func ensureWordsJSONL(dataDir string) error {
	path := filepath.Join(dataDir, wordsFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", wordsFileName, err)
	}
	return os.WriteFile(path, nil, 0o644)
}

// persistWordsJSONL dumps every word with its successor log to words.jsonl,
// ordered by word for stable diffs.
func persistWordsJSONL(db *sql.DB, dataDir string) error {
	rows, err := db.Query(`
		SELECT w.word, w.last_used, n.next_word
		FROM words w LEFT JOIN next_words n ON n.word = w.word
		ORDER BY w.word, n.seq`)
	if err != nil {
		return fmt.Errorf("reading words for JSONL: %w", err)
	}
	defer rows.Close()

	var lines []*wordLine
	var cur *wordLine
	for rows.Next() {
		var word, lastUsed string
		var next sql.NullString
		if err := rows.Scan(&word, &lastUsed, &next); err != nil {
			return fmt.Errorf("scanning word for JSONL: %w", err)
		}
		if cur == nil || cur.Word != word {
			cur = &wordLine{Word: word, LastUsed: lastUsed, NextWords: []string{}}
			lines = append(lines, cur)
		}
		if next.Valid {
			cur.NextWords = append(cur.NextWords, next.String)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	records := make([]json.RawMessage, 0, len(lines))
	for _, l := range lines {
		data, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("marshaling %q: %w", l.Word, err)
		}
		records = append(records, data)
	}
	return writeJSONL(filepath.Join(dataDir, wordsFileName), records)
}
