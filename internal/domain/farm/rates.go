package farm

// Rate is the fixed give:get ratio for an ordered pair of kinds.
type Rate struct {
	Give int `json:"give" yaml:"give"`
	Get  int `json:"get" yaml:"get"`
}

// Matches reports whether give:get equals the rate ratio.
func (r Rate) Matches(give, get int) bool {
	if r.Give <= 0 || r.Get <= 0 || give <= 0 || get <= 0 {
		return false
	}
	return give*r.Get == get*r.Give
}

type Pair struct {
	From Kind
	To   Kind
}

type Rates map[Pair]Rate

func (r Rates) Lookup(from, to Kind) (Rate, bool) {
	rate, ok := r[Pair{From: from, To: to}]
	return rate, ok
}

// DefaultRates is the standard exchange table.
func DefaultRates() Rates {
	return Rates{
		{Rabbit, Sheep}:   {Give: 6, Get: 1},
		{Sheep, Pig}:      {Give: 2, Get: 1},
		{Pig, Cow}:        {Give: 3, Get: 1},
		{Cow, Horse}:      {Give: 2, Get: 1},
		{Sheep, Rabbit}:   {Give: 1, Get: 6},
		{Pig, Sheep}:      {Give: 1, Get: 2},
		{Cow, Pig}:        {Give: 1, Get: 3},
		{Horse, Cow}:      {Give: 1, Get: 2},
		{Sheep, Foxhound}: {Give: 1, Get: 1},
		{Foxhound, Sheep}: {Give: 1, Get: 1},
		{Cow, Wolfhound}:  {Give: 1, Get: 1},
		{Wolfhound, Cow}:  {Give: 1, Get: 1},
	}
}

type ExchangeResult struct {
	From Kind `json:"from"`
	To   Kind `json:"to"`
	Gave int  `json:"gave"`
	Got  int  `json:"got"`
}

// ExchangeWithBankAtomic checks both sides before moving anything, then
// applies player->bank followed by bank->player.
func ExchangeWithBankAtomic(player, bank *Herd, rates Rates, from, to Kind) (ExchangeResult, error) {
	if !from.InHerd() || !to.InHerd() {
		return ExchangeResult{}, ReasonBadAnimal
	}
	rate, ok := rates.Lookup(from, to)
	if !ok {
		return ExchangeResult{}, ReasonNoRate
	}
	if player.Get(from) < rate.Give {
		return ExchangeResult{}, ReasonPlayerLacksFrom
	}
	if bank.Get(to) < rate.Get {
		return ExchangeResult{}, ReasonBankLacksTo
	}
	if !player.Transfer(bank, from, rate.Give) {
		return ExchangeResult{}, ReasonTransferFailed
	}
	if !bank.Transfer(player, to, rate.Get) {
		bank.Transfer(player, from, rate.Give)
		return ExchangeResult{}, ReasonTransferFailed
	}
	return ExchangeResult{From: from, To: to, Gave: rate.Give, Got: rate.Get}, nil
}
