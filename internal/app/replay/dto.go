package replay

import "github.com/karl5252/beastbazaar/internal/app/ports"

type Request struct {
	SessionID    string
	Limit        int
	Action       string
	OccurredFrom int64
	OccurredTo   int64
}

type Summary struct {
	Actions  int            `json:"actions"`
	Rejected int            `json:"rejected"`
	LastTurn int            `json:"last_turn"`
	ByAction map[string]int `json:"by_action"`
	ByReason map[string]int `json:"by_reason,omitempty"`
}

type Entry struct {
	Seq         int64          `json:"seq"`
	Action      string         `json:"action"`
	PlayerIndex int            `json:"player_index"`
	Turn        int            `json:"turn"`
	OK          bool           `json:"ok"`
	Reason      string         `json:"reason,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
	OccurredAt  int64          `json:"occurred_at"`
}

type Response struct {
	SessionID string  `json:"session_id"`
	Entries   []Entry `json:"entries"`
	Summary   Summary `json:"summary"`
}

func toEntry(e ports.JournalEntry) Entry {
	return Entry{
		Seq:         e.Seq,
		Action:      e.Action,
		PlayerIndex: e.PlayerIndex,
		Turn:        e.Turn,
		OK:          e.OK,
		Reason:      e.Reason,
		Payload:     e.Payload,
		OccurredAt:  e.OccurredAt.Unix(),
	}
}
