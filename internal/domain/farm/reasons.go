package farm

import "errors"

// Reason is a recoverable rule violation. Its text is the wire code.
type Reason string

func (r Reason) Error() string { return string(r) }

const (
	ReasonNotYourTurn      Reason = "not_your_turn"
	ReasonAlreadyRolled    Reason = "already_rolled"
	ReasonAlreadyExchanged Reason = "already_exchanged"
	ReasonNoRate           Reason = "no_rate"
	ReasonPlayerLacksFrom  Reason = "player_lacks_from"
	ReasonBankLacksTo      Reason = "bank_lacks_to"

	ReasonBadTarget            Reason = "bad_target"
	ReasonSelfTrade            Reason = "self_trade"
	ReasonSameAnimal           Reason = "same_animal"
	ReasonBadAnimal            Reason = "bad_animal"
	ReasonBadOfferAmount       Reason = "bad_offer_amount"
	ReasonBadWantAmount        Reason = "bad_want_amount"
	ReasonMissingRequestorHerd Reason = "missing_requestor_herd"
	ReasonRequestorLacksOffer  Reason = "requestor_lacks_offer"
	ReasonBadAcceptor          Reason = "bad_acceptor"
	ReasonMissingAcceptorHerd  Reason = "missing_acceptor_herd"
	ReasonAcceptorLacksWant    Reason = "acceptor_lacks_want"
	ReasonRequestNotFound      Reason = "request_not_found"
	ReasonNotPending           Reason = "not_pending"
	ReasonExpired              Reason = "expired"
	ReasonTransferFailed       Reason = "transfer_failed"

	ReasonGameOver  Reason = "game_over"
	ReasonNoPlayers Reason = "no_players"
)

// ReasonOf extracts the rule code carried by err.
func ReasonOf(err error) (Reason, bool) {
	var r Reason
	if errors.As(err, &r) {
		return r, true
	}
	return "", false
}
