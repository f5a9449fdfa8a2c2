package eventlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "s1")
	at := time.Date(2026, 5, 2, 10, 15, 0, 0, time.UTC)
	w.now = func() time.Time { return at }

	ctx := context.Background()
	if err := w.Publish(ctx, "game:state", map[string]any{"turn_number": 3}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := w.Publish(ctx, "ui:error", map[string]any{"reason": "no_rate"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := ReadFile(filepath.Join(dir, "events-2026-05-02-10.jsonl.zst"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got=%d want=2", len(got))
	}
	if got[0].Type != "game:state" || got[1].Type != "ui:error" {
		t.Fatalf("unexpected types: %s, %s", got[0].Type, got[1].Type)
	}
	if got[1].SessionID != "s1" || string(got[1].Payload) != `{"reason":"no_rate"}` {
		t.Fatalf("unexpected record: %+v", got[1])
	}
}

func TestWriterRotatesPerHour(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "s1")
	at := time.Date(2026, 5, 2, 10, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return at }

	ctx := context.Background()
	_ = w.Publish(ctx, "game:state", 1)
	at = at.Add(2 * time.Minute)
	_ = w.Publish(ctx, "game:state", 2)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, name := range []string{"events-2026-05-02-10.jsonl.zst", "events-2026-05-02-11.jsonl.zst"} {
		got, err := ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(got) != 1 {
			t.Fatalf("%s: got=%d want=1", name, len(got))
		}
	}
}

func TestPublishRejectsUnencodablePayload(t *testing.T) {
	w := NewWriter(t.TempDir(), "s1")
	defer w.Close()
	if err := w.Publish(context.Background(), "game:state", make(chan int)); err == nil {
		t.Fatalf("expected encode error")
	}
}
