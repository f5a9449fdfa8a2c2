package engine

import (
	"go.uber.org/zap"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

// ExchangeWithBank trades the current player's animals with the bank at
// the fixed rate. Only one exchange is allowed per turn.
func (s *Session) ExchangeWithBank(from, to farm.Kind) (farm.ExchangeResult, error) {
	if err := s.guardTurn(s.current); err != nil {
		return farm.ExchangeResult{}, err
	}
	if s.state.HasExchanged {
		return farm.ExchangeResult{}, farm.ReasonAlreadyExchanged
	}
	player := s.players[s.current]
	res, err := farm.ExchangeWithBankAtomic(&player.Herd, &s.bank.Herd, s.rules.Rates, from, to)
	if err != nil {
		return farm.ExchangeResult{}, err
	}
	s.state.HasExchanged = true
	s.logger.Debug("bank exchange",
		zap.Int("player_index", s.current),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Int("gave", res.Gave),
		zap.Int("got", res.Got),
	)
	return res, nil
}
