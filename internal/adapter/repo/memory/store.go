package memory

import (
	"sync"

	"github.com/karl5252/beastbazaar/internal/app/ports"
)

// Store keeps journal entries per session. tx serializes RunInTx callers;
// data guards the maps themselves.
type Store struct {
	tx      sync.Mutex
	data    sync.RWMutex
	journal map[string][]ports.JournalEntry
}

func NewStore() *Store {
	return &Store{
		journal: make(map[string][]ports.JournalEntry),
	}
}
