package game

import "github.com/karl5252/beastbazaar/internal/domain/farm"

func (c *Controller) snapshot() Snapshot {
	s := c.session
	rules := s.Rules()
	state := s.TurnState()

	out := Snapshot{
		SessionID:          c.sessionID,
		TurnNumber:         s.Turn(),
		CurrentPlayerIndex: s.CurrentIndex(),
		HasRolled:          state.HasRolled,
		HasExchanged:       state.HasExchanged,
		BankHerd:           s.Bank().Herd,
		Difficulty:         c.difficulty,
		TradeExpiryTurns:   rules.TradeExpiryTurns,
	}
	if current := s.CurrentPlayer(); current != nil {
		out.CurrentPlayerName = current.Name
		out.CurrentPlayerHerd = current.Herd
	}

	players := s.Players()
	out.Players = make([]PlayerView, 0, len(players))
	for _, p := range players {
		out.Players = append(out.Players, PlayerView{Index: p.Index, Name: p.Name, Herd: p.Herd})
	}

	pending := s.PendingTrades()
	out.PendingTrades = make([]TradeView, 0, len(pending))
	for _, o := range pending {
		out.PendingTrades = append(out.PendingTrades, TradeView{
			ID:             o.ID,
			RequestorIndex: o.RequestorIndex,
			RequestorName:  c.displayName(o.RequestorIndex),
			TargetIndex:    o.TargetIndex,
			TargetName:     c.displayName(o.TargetIndex),
			Offer:          o.Offer,
			Want:           o.Want,
			Description:    o.Description(),
			TurnsLeft:      o.TurnsLeft(s.Turn(), rules.TradeExpiryTurns),
		})
	}

	if winner, ok := s.Winner(); ok {
		out.WinnerIndex = &winner
	}
	return out
}

func (c *Controller) displayName(index int) string {
	if index == farm.BankIndex {
		return BankDisplayName
	}
	if p, ok := c.session.Player(index); ok {
		return p.Name
	}
	return ""
}
