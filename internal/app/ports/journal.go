package ports

import (
	"context"
	"time"
)

// JournalEntry is one dispatched action as recorded in the audit history.
type JournalEntry struct {
	SessionID   string
	Seq         int64
	Action      string
	PlayerIndex int
	Turn        int
	OK          bool
	Reason      string
	Payload     map[string]any
	OccurredAt  time.Time
}

// Journal is append-only. ListBySession returns newest first.
type Journal interface {
	Append(ctx context.Context, entry JournalEntry) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]JournalEntry, error)
}
