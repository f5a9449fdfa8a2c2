// Package sqlite stores the action journal in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/karl5252/beastbazaar/internal/app/ports"
)

type Journal struct {
	mu sync.Mutex
	db *sql.DB
}

func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS journal_entries (
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			action TEXT NOT NULL,
			player_index INTEGER NOT NULL,
			turn INTEGER NOT NULL,
			ok INTEGER NOT NULL,
			reason TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			occurred_at INTEGER NOT NULL,
			PRIMARY KEY (session_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_session_occurred ON journal_entries(session_id, occurred_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Append(ctx context.Context, entry ports.JournalEntry) error {
	payload := []byte("{}")
	if entry.Payload != nil {
		b, err := json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("encode journal payload: %w", err)
		}
		payload = b
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO journal_entries (session_id, seq, action, player_index, turn, ok, reason, payload_json, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID, entry.Seq, entry.Action, entry.PlayerIndex, entry.Turn,
		boolToInt(entry.OK), entry.Reason, string(payload), entry.OccurredAt.UTC().UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (j *Journal) ListBySession(ctx context.Context, sessionID string, limit int) ([]ports.JournalEntry, error) {
	query := `SELECT session_id, seq, action, player_index, turn, ok, reason, payload_json, occurred_at
		FROM journal_entries WHERE session_id = ? ORDER BY seq DESC`
	args := []any{sessionID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []ports.JournalEntry
	for rows.Next() {
		var (
			e       ports.JournalEntry
			ok      int
			payload string
			millis  int64
		)
		if err := rows.Scan(&e.SessionID, &e.Seq, &e.Action, &e.PlayerIndex, &e.Turn, &ok, &e.Reason, &payload, &millis); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.OK = ok != 0
		e.OccurredAt = time.UnixMilli(millis).UTC()
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &e.Payload); err != nil {
				return nil, fmt.Errorf("decode journal payload (seq %d): %w", e.Seq, err)
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
