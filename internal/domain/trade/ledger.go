package trade

import (
	"github.com/google/uuid"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

// HerdLookup resolves a seat index to its live herd, or nil.
type HerdLookup func(index int) *farm.Herd

// Ledger keeps outstanding offers in creation order. It never touches
// herds except in Execute.
type Ledger struct {
	offers []*Offer
	newID  func() string
}

type Option func(*Ledger)

func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{newID: newOfferID}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newOfferID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type PostRequest struct {
	RequestorIndex int
	TargetIndex    int
	Offer          Leg
	Want           Leg
	CurrentTurn    int
	RequestorHerd  *farm.Herd
}

// Post validates and appends a pending offer. On failure nothing changes.
func (l *Ledger) Post(req PostRequest) (string, error) {
	offer := Offer{
		RequestorIndex: req.RequestorIndex,
		TargetIndex:    req.TargetIndex,
		Offer:          req.Offer,
		Want:           req.Want,
		CreatedTurn:    req.CurrentTurn,
		Status:         StatusPending,
	}
	if err := validateForPosting(offer, req.RequestorHerd); err != nil {
		return "", err
	}
	offer.ID = l.newID()
	l.offers = append(l.offers, &offer)
	return offer.ID, nil
}

// Pending marks aged-out offers expired and returns copies of the rest.
func (l *Ledger) Pending(currentTurn, expiryTurns int) []Offer {
	out := make([]Offer, 0, len(l.offers))
	for _, o := range l.offers {
		if !o.IsPending() {
			continue
		}
		if o.IsExpired(currentTurn, expiryTurns) {
			o.MarkExpired()
			continue
		}
		out = append(out, *o)
	}
	return out
}

type AcceptRequest struct {
	RequestID     string
	AcceptorIndex int
	CurrentTurn   int
	ExpiryTurns   int
	RequestorHerd *farm.Herd
	AcceptorHerd  *farm.Herd
	// BankCheck runs after the shared validation for bank-targeted offers.
	BankCheck func(Offer) error
}

// Accept validates the offer against live herds. A failed validation
// leaves the offer in the ledger marked invalid. A successful one is
// marked accepted, removed and returned for Execute.
func (l *Ledger) Accept(req AcceptRequest) (Offer, error) {
	o := l.find(req.RequestID)
	if o == nil {
		return Offer{}, farm.ReasonRequestNotFound
	}
	if !o.IsPending() {
		return Offer{}, farm.ReasonNotPending
	}
	if o.IsExpired(req.CurrentTurn, req.ExpiryTurns) {
		o.MarkExpired()
		return Offer{}, farm.ReasonExpired
	}
	err := validateForAccept(*o, req.AcceptorIndex, req.RequestorHerd, req.AcceptorHerd)
	if err == nil && o.TargetsBank() && req.BankCheck != nil {
		err = req.BankCheck(*o)
	}
	if err != nil {
		o.MarkInvalid(reasonText(err))
		return Offer{}, err
	}
	o.MarkAccepted()
	l.Remove(o.ID)
	return *o, nil
}

// Reject marks a pending offer rejected and removes it.
func (l *Ledger) Reject(id, reason string) (Offer, error) {
	o := l.find(id)
	if o == nil {
		return Offer{}, farm.ReasonRequestNotFound
	}
	if !o.MarkRejected(reason) {
		return Offer{}, farm.ReasonNotPending
	}
	l.Remove(id)
	return *o, nil
}

// Prune expires aged-out offers, invalidates the ones live herds no
// longer support, then drops everything that is not pending. It returns
// how many offers were removed.
func (l *Ledger) Prune(currentTurn, expiryTurns int, herds HerdLookup) int {
	for _, o := range l.offers {
		if !o.IsPending() {
			continue
		}
		if o.IsExpired(currentTurn, expiryTurns) {
			o.MarkExpired()
			continue
		}
		var requestor, acceptor *farm.Herd
		if herds != nil {
			requestor = herds(o.RequestorIndex)
			if !o.TargetsBank() {
				acceptor = herds(o.TargetIndex)
			}
		}
		if err := validateForAccept(*o, o.TargetIndex, requestor, acceptor); err != nil {
			o.MarkInvalid(reasonText(err))
		}
	}
	kept := l.offers[:0]
	removed := 0
	for _, o := range l.offers {
		if o.IsPending() {
			kept = append(kept, o)
			continue
		}
		removed++
	}
	for i := len(kept); i < len(l.offers); i++ {
		l.offers[i] = nil
	}
	l.offers = kept
	return removed
}

// Execute moves the offer leg to the acceptor, then the want leg back.
// It stops at the first failed transfer; a failure on the second leg
// leaves the first one applied.
func (l *Ledger) Execute(o Offer, requestor, acceptor *farm.Herd) error {
	if requestor == nil || acceptor == nil {
		return farm.ReasonTransferFailed
	}
	if !requestor.Transfer(acceptor, o.Offer.Animal, o.Offer.Amount) {
		return farm.ReasonTransferFailed
	}
	if !acceptor.Transfer(requestor, o.Want.Animal, o.Want.Amount) {
		return farm.ReasonTransferFailed
	}
	return nil
}

func (l *Ledger) Get(id string) (Offer, bool) {
	if o := l.find(id); o != nil {
		return *o, true
	}
	return Offer{}, false
}

func (l *Ledger) Remove(id string) bool {
	for i, o := range l.offers {
		if o.ID != id {
			continue
		}
		copy(l.offers[i:], l.offers[i+1:])
		l.offers[len(l.offers)-1] = nil
		l.offers = l.offers[:len(l.offers)-1]
		return true
	}
	return false
}

func (l *Ledger) Len() int {
	return len(l.offers)
}

// All returns copies of every offer, terminal ones included.
func (l *Ledger) All() []Offer {
	out := make([]Offer, 0, len(l.offers))
	for _, o := range l.offers {
		out = append(out, *o)
	}
	return out
}

func (l *Ledger) find(id string) *Offer {
	for _, o := range l.offers {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func reasonText(err error) string {
	if r, ok := farm.ReasonOf(err); ok {
		return string(r)
	}
	return err.Error()
}
