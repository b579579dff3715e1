// Package manifest records conversion runs in a sqlite database so that
// unchanged inputs can be skipped on later runs.
//
// Two tables: runs holds one row per invocation (uuid, timestamps, counts),
// files holds the last recorded source hash per input path. A file whose
// hash matches the recorded one and whose target still exists does not need
// to be converted again.
package manifest

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	converted   INTEGER NOT NULL DEFAULT 0,
	skipped     INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS files (
	path         TEXT PRIMARY KEY,
	source_hash  TEXT NOT NULL,
	run_id       TEXT NOT NULL,
	converted_at TEXT NOT NULL
);`

// Manifest is an open conversion manifest bound to one run.
type Manifest struct {
	db    *sql.DB
	runID string
}

// Open opens or creates the manifest database at path and starts a new run.
func Open(path string) (*Manifest, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init manifest schema: %w", err)
	}
	m := &Manifest{db: db, runID: uuid.NewString()}
	_, err = db.Exec(`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		m.runID, now())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("record run: %w", err)
	}
	return m, nil
}

// RunID returns the uuid of the current run.
func (m *Manifest) RunID() string { return m.runID }

// Unchanged reports whether path was last converted from a source with the
// same hash.
func (m *Manifest) Unchanged(path, hash string) bool {
	var recorded string
	err := m.db.QueryRow(`SELECT source_hash FROM files WHERE path = ?`, path).
		Scan(&recorded)
	return err == nil && recorded == hash
}

// Record stores the source hash for path under the current run.
func (m *Manifest) Record(path, hash string) error {
	_, err := m.db.Exec(`
		INSERT INTO files (path, source_hash, run_id, converted_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			source_hash = excluded.source_hash,
			run_id = excluded.run_id,
			converted_at = excluded.converted_at`,
		path, hash, m.runID, now())
	if err != nil {
		return fmt.Errorf("record %s: %w", path, err)
	}
	return nil
}

// Finish closes out the current run with its result counts.
func (m *Manifest) Finish(converted, skipped, failed int) error {
	_, err := m.db.Exec(`
		UPDATE runs SET finished_at = ?, converted = ?, skipped = ?, failed = ?
		WHERE id = ?`,
		now(), converted, skipped, failed, m.runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

func (m *Manifest) Close() error {
	return m.db.Close()
}

// HashSource returns the hex sha256 of a source file's contents.
func HashSource(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
