package trade

import (
	"fmt"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
	StatusInvalid  Status = "invalid"
)

// Leg is one side of an offer.
type Leg struct {
	Animal farm.Kind `json:"animal"`
	Amount int       `json:"amount"`
}

func (l Leg) String() string {
	return fmt.Sprintf("%dx %s", l.Amount, l.Animal)
}

// Offer is a proposed player-to-player or player-to-bank trade. Once it
// leaves pending its status never changes again.
type Offer struct {
	ID             string `json:"id"`
	RequestorIndex int    `json:"requestor_index"`
	TargetIndex    int    `json:"target_index"`
	Offer          Leg    `json:"offer"`
	Want           Leg    `json:"want"`
	CreatedTurn    int    `json:"created_turn"`
	Status         Status `json:"status"`
	Reason         string `json:"reason,omitempty"`
}

func (o *Offer) IsPending() bool {
	return o.Status == StatusPending
}

func (o *Offer) IsTerminal() bool {
	return o.Status != StatusPending
}

// IsExpired reports whether the offer has aged out. A negative
// expiryTurns never expires.
func (o *Offer) IsExpired(currentTurn, expiryTurns int) bool {
	if expiryTurns < 0 {
		return false
	}
	return currentTurn-o.CreatedTurn >= expiryTurns
}

// TurnsLeft is -1 when offers never expire.
func (o *Offer) TurnsLeft(currentTurn, expiryTurns int) int {
	if expiryTurns < 0 {
		return -1
	}
	left := expiryTurns - (currentTurn - o.CreatedTurn)
	if left < 0 {
		return 0
	}
	return left
}

func (o *Offer) TargetsBank() bool {
	return o.TargetIndex == farm.BankIndex
}

func (o *Offer) Description() string {
	return fmt.Sprintf("%s for %s", o.Offer, o.Want)
}

func (o *Offer) MarkAccepted() bool {
	return o.transition(StatusAccepted, "")
}

func (o *Offer) MarkRejected(reason string) bool {
	return o.transition(StatusRejected, reason)
}

func (o *Offer) MarkExpired() bool {
	return o.transition(StatusExpired, string(farm.ReasonExpired))
}

func (o *Offer) MarkInvalid(reason string) bool {
	return o.transition(StatusInvalid, reason)
}

func (o *Offer) transition(to Status, reason string) bool {
	if o.IsTerminal() {
		return false
	}
	o.Status = to
	o.Reason = reason
	return true
}
