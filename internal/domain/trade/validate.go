package trade

import "github.com/karl5252/beastbazaar/internal/domain/farm"

func validateLegs(o Offer) error {
	if !o.Offer.Animal.InHerd() || !o.Want.Animal.InHerd() {
		return farm.ReasonBadAnimal
	}
	if o.Offer.Animal == o.Want.Animal {
		return farm.ReasonSameAnimal
	}
	if o.Offer.Amount <= 0 {
		return farm.ReasonBadOfferAmount
	}
	if o.Want.Amount <= 0 {
		return farm.ReasonBadWantAmount
	}
	return nil
}

func validateForPosting(o Offer, requestor *farm.Herd) error {
	if o.TargetIndex < 0 {
		return farm.ReasonBadTarget
	}
	if o.TargetIndex == o.RequestorIndex {
		return farm.ReasonSelfTrade
	}
	if err := validateLegs(o); err != nil {
		return err
	}
	if requestor == nil {
		return farm.ReasonMissingRequestorHerd
	}
	if requestor.Get(o.Offer.Animal) < o.Offer.Amount {
		return farm.ReasonRequestorLacksOffer
	}
	return nil
}

// validateForAccept re-checks an offer against live herds. Bank targets
// skip the acceptor balance check; the bank side is settled against the
// exchange rates by the caller.
func validateForAccept(o Offer, acceptorIndex int, requestor, acceptor *farm.Herd) error {
	if err := validateLegs(o); err != nil {
		return err
	}
	if requestor == nil {
		return farm.ReasonMissingRequestorHerd
	}
	if requestor.Get(o.Offer.Animal) < o.Offer.Amount {
		return farm.ReasonRequestorLacksOffer
	}
	if acceptorIndex < 0 || acceptorIndex != o.TargetIndex {
		return farm.ReasonBadAcceptor
	}
	if o.TargetsBank() {
		return nil
	}
	if acceptor == nil {
		return farm.ReasonMissingAcceptorHerd
	}
	if acceptor.Get(o.Want.Animal) < o.Want.Amount {
		return farm.ReasonAcceptorLacksWant
	}
	return nil
}
