package replay

import (
	"context"
	"errors"
	"strings"

	"github.com/karl5252/beastbazaar/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Journal ports.Journal
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	// filters run in memory, so the limit has to wait until after them
	fetch := req.Limit
	if req.filtered() {
		fetch = 0
	}
	entries, err := u.Journal.ListBySession(ctx, req.SessionID, fetch)
	if err != nil {
		return Response{}, err
	}
	entries = filterByTimeWindow(entries, req.OccurredFrom, req.OccurredTo)
	entries = filterByAction(entries, req.Action)
	if req.Limit > 0 && len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}

	out := Response{SessionID: req.SessionID, Entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, toEntry(e))
	}
	out.Summary = summarize(entries)
	return out, nil
}

func (r Request) filtered() bool {
	return r.OccurredFrom > 0 || r.OccurredTo > 0 || strings.TrimSpace(r.Action) != ""
}

func filterByTimeWindow(entries []ports.JournalEntry, from, to int64) []ports.JournalEntry {
	if from <= 0 && to <= 0 {
		return entries
	}
	out := make([]ports.JournalEntry, 0, len(entries))
	for _, e := range entries {
		ts := e.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, e)
	}
	return out
}

func filterByAction(entries []ports.JournalEntry, action string) []ports.JournalEntry {
	action = strings.TrimSpace(action)
	if action == "" {
		return entries
	}
	out := make([]ports.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

func summarize(entries []ports.JournalEntry) Summary {
	s := Summary{ByAction: map[string]int{}}
	for _, e := range entries {
		s.Actions++
		s.ByAction[e.Action]++
		if !e.OK {
			s.Rejected++
			if s.ByReason == nil {
				s.ByReason = map[string]int{}
			}
			s.ByReason[e.Reason]++
		}
		if e.Turn > s.LastTurn {
			s.LastTurn = e.Turn
		}
	}
	return s
}
