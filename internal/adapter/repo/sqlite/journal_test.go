package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/karl5252/beastbazaar/internal/app/ports"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal", "beastbazaar.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournalAppendAndList(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	entries := []ports.JournalEntry{
		{SessionID: "s1", Seq: 1, Action: "roll", PlayerIndex: 0, Turn: 0, OK: true, Payload: map[string]any{"roll_type": "breed"}, OccurredAt: at},
		{SessionID: "s1", Seq: 2, Action: "exchange", PlayerIndex: 0, Turn: 0, Reason: "no_rate", OccurredAt: at.Add(time.Second)},
		{SessionID: "s2", Seq: 1, Action: "roll", OK: true, OccurredAt: at},
	}
	for _, e := range entries {
		if err := j.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := j.ListBySession(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got=%d want=2", len(got))
	}
	if got[0].Seq != 2 || got[0].OK || got[0].Reason != "no_rate" {
		t.Fatalf("unexpected newest entry: %+v", got[0])
	}
	if !got[1].OK || got[1].Payload["roll_type"] != "breed" {
		t.Fatalf("unexpected oldest entry: %+v", got[1])
	}
	if !got[1].OccurredAt.Equal(at) {
		t.Fatalf("got occurred_at=%s want=%s", got[1].OccurredAt, at)
	}

	limited, err := j.ListBySession(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Seq != 2 {
		t.Fatalf("unexpected limited result: %+v", limited)
	}
}

func TestJournalDuplicateSeqConflicts(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	e := ports.JournalEntry{SessionID: "s1", Seq: 1, Action: "roll", OccurredAt: time.Now()}
	if err := j.Append(ctx, e); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := j.Append(ctx, e); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("got=%v want=%v", err, ports.ErrConflict)
	}
}

func TestJournalUnknownSessionNotFound(t *testing.T) {
	j := openTemp(t)
	if _, err := j.ListBySession(context.Background(), "missing", 5); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("got=%v want=%v", err, ports.ErrNotFound)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestJournalReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := j.Append(context.Background(), ports.JournalEntry{SessionID: "s1", Seq: 1, Action: "end_turn", OccurredAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = j.Close()

	j, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j.Close()
	got, err := j.ListBySession(context.Background(), "s1", 0)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected persisted entry, got=%v err=%v", got, err)
	}
}

func TestJournalListCorruptPayload(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	if err := j.Append(ctx, ports.JournalEntry{SessionID: "s1", Seq: 1, Action: "roll", OK: true, Payload: map[string]any{"n": 1}, OccurredAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := j.db.ExecContext(ctx, `UPDATE journal_entries SET payload_json = '{not json' WHERE session_id = 's1' AND seq = 1`); err != nil {
		t.Fatalf("corrupt payload: %v", err)
	}

	_, err := j.ListBySession(ctx, "s1", 0)
	if err == nil || !strings.Contains(err.Error(), "decode journal payload") {
		t.Fatalf("got=%v want decode journal payload error", err)
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected wrapped json syntax error, got %T", errors.Unwrap(err))
	}
}
