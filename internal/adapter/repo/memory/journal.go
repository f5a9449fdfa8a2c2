package memory

import (
	"context"

	"github.com/karl5252/beastbazaar/internal/app/ports"
)

type Journal struct {
	store *Store
}

func NewJournal(store *Store) Journal {
	return Journal{store: store}
}

func (j Journal) Append(_ context.Context, entry ports.JournalEntry) error {
	j.store.data.Lock()
	defer j.store.data.Unlock()
	entries := j.store.journal[entry.SessionID]
	for _, e := range entries {
		if e.Seq == entry.Seq {
			return ports.ErrConflict
		}
	}
	j.store.journal[entry.SessionID] = append(entries, cloneEntry(entry))
	return nil
}

func (j Journal) ListBySession(_ context.Context, sessionID string, limit int) ([]ports.JournalEntry, error) {
	j.store.data.RLock()
	defer j.store.data.RUnlock()
	entries := j.store.journal[sessionID]
	if len(entries) == 0 {
		return nil, ports.ErrNotFound
	}
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ports.JournalEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, cloneEntry(entries[i]))
	}
	return out, nil
}

func cloneEntry(e ports.JournalEntry) ports.JournalEntry {
	if e.Payload != nil {
		payload := make(map[string]any, len(e.Payload))
		for k, v := range e.Payload {
			payload[k] = v
		}
		e.Payload = payload
	}
	return e
}
