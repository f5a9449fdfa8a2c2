package engine

import (
	"go.uber.org/zap"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
	"github.com/karl5252/beastbazaar/internal/domain/trade"
)

const (
	RejectedByTarget     = "rejected_by_target"
	WithdrawnByRequestor = "withdrawn_by_requestor"
)

type TradeProposal struct {
	TargetIndex int
	Offer       trade.Leg
	Want        trade.Leg
}

// PostTrade files an offer from the current player to another seat or
// to the bank.
func (s *Session) PostTrade(p TradeProposal) (string, error) {
	if err := s.guardTurn(s.current); err != nil {
		return "", err
	}
	if p.TargetIndex != farm.BankIndex && p.TargetIndex >= len(s.players) {
		return "", farm.ReasonBadTarget
	}
	id, err := s.trades.Post(trade.PostRequest{
		RequestorIndex: s.current,
		TargetIndex:    p.TargetIndex,
		Offer:          p.Offer,
		Want:           p.Want,
		CurrentTurn:    s.turn,
		RequestorHerd:  s.herd(s.current),
	})
	if err != nil {
		return "", err
	}
	s.logger.Debug("trade posted", zap.String("offer_id", id), zap.Int("requestor", s.current), zap.Int("target", p.TargetIndex))
	return id, nil
}

// AcceptTrade settles an offer on behalf of its target. Bank-targeted
// offers are accepted with acceptorIndex farm.BankIndex and must match a
// fixed exchange ratio the bank can cover. Settling with the bank counts
// as the requestor's bank exchange for the turn.
func (s *Session) AcceptTrade(acceptorIndex int, requestID string) (trade.Offer, error) {
	if s.winner != nil {
		return trade.Offer{}, farm.ReasonGameOver
	}
	pending, ok := s.trades.Get(requestID)
	if !ok {
		return trade.Offer{}, farm.ReasonRequestNotFound
	}
	// someone other than the target cannot spoil the offer
	if pending.IsPending() && acceptorIndex != pending.TargetIndex {
		return trade.Offer{}, farm.ReasonBadAcceptor
	}
	if pending.IsPending() && pending.TargetsBank() {
		if err := s.guardTurn(pending.RequestorIndex); err != nil {
			return trade.Offer{}, err
		}
		if s.state.HasExchanged {
			return trade.Offer{}, farm.ReasonAlreadyExchanged
		}
	}
	requestor := s.herd(pending.RequestorIndex)
	acceptor := s.herd(acceptorIndex)

	offer, err := s.trades.Accept(trade.AcceptRequest{
		RequestID:     requestID,
		AcceptorIndex: acceptorIndex,
		CurrentTurn:   s.turn,
		ExpiryTurns:   s.rules.TradeExpiryTurns,
		RequestorHerd: requestor,
		AcceptorHerd:  acceptor,
		BankCheck:     s.checkBankOffer,
	})
	if err != nil {
		return trade.Offer{}, err
	}
	if err := s.trades.Execute(offer, requestor, acceptor); err != nil {
		s.logger.Warn("trade execution failed", zap.String("offer_id", offer.ID), zap.Error(err))
		return offer, err
	}
	if offer.TargetsBank() {
		s.state.HasExchanged = true
	}
	s.logger.Debug("trade settled", zap.String("offer_id", offer.ID), zap.String("trade", offer.Description()))
	return offer, nil
}

func (s *Session) checkBankOffer(o trade.Offer) error {
	rate, ok := s.rules.Rates.Lookup(o.Offer.Animal, o.Want.Animal)
	if !ok || !rate.Matches(o.Offer.Amount, o.Want.Amount) {
		return farm.ReasonNoRate
	}
	if s.bank.Herd.Get(o.Want.Animal) < o.Want.Amount {
		return farm.ReasonBankLacksTo
	}
	return nil
}

// RejectTrade removes a pending offer. The target rejects it; the
// requestor may withdraw it.
func (s *Session) RejectTrade(actorIndex int, requestID, reason string) (trade.Offer, error) {
	if s.winner != nil {
		return trade.Offer{}, farm.ReasonGameOver
	}
	pending, ok := s.trades.Get(requestID)
	if !ok {
		return trade.Offer{}, farm.ReasonRequestNotFound
	}
	switch actorIndex {
	case pending.TargetIndex:
		if reason == "" {
			reason = RejectedByTarget
		}
	case pending.RequestorIndex:
		if reason == "" {
			reason = WithdrawnByRequestor
		}
	default:
		return trade.Offer{}, farm.ReasonBadAcceptor
	}
	return s.trades.Reject(requestID, reason)
}

// PendingTrades expires aged-out offers and lists the live ones.
func (s *Session) PendingTrades() []trade.Offer {
	return s.trades.Pending(s.turn, s.rules.TradeExpiryTurns)
}

func (s *Session) PruneTrades() int {
	return s.trades.Prune(s.turn, s.rules.TradeExpiryTurns, s.herd)
}
