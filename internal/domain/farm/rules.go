package farm

import "fmt"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"

	DefaultTradeExpiryTurns = 3
)

// Face is one weighted side group of a die.
type Face struct {
	Kind   Kind `json:"kind" yaml:"kind"`
	Weight int  `json:"weight" yaml:"weight"`
}

// DiceSet is the green/red die pair for a difficulty.
type DiceSet struct {
	Green []Face `json:"green" yaml:"green"`
	Red   []Face `json:"red" yaml:"red"`
}

// Rules holds every tunable number of a session. A kind missing from
// BankMax has no capacity ceiling. A negative TradeExpiryTurns means
// offers never expire.
type Rules struct {
	BankStart        Herd
	BankMax          map[Kind]int
	Rates            Rates
	TradeExpiryTurns int
	Dice             map[string]DiceSet
}

func DefaultRules() Rules {
	start := Herd{Rabbit: 60, Sheep: 24, Pig: 20, Cow: 12, Horse: 4, Foxhound: 4, Wolfhound: 2}
	return Rules{
		BankStart:        start,
		BankMax:          start.Counts(),
		Rates:            DefaultRates(),
		TradeExpiryTurns: DefaultTradeExpiryTurns,
		Dice: map[string]DiceSet{
			DifficultyEasy: {
				Green: []Face{{Rabbit, 6}, {Sheep, 2}, {Pig, 2}, {Horse, 1}, {Fox, 1}},
				Red:   []Face{{Rabbit, 6}, {Sheep, 2}, {Pig, 2}, {Cow, 1}, {Wolf, 1}},
			},
			DifficultyMedium: {
				Green: []Face{{Rabbit, 5}, {Sheep, 2}, {Pig, 2}, {Horse, 1}, {Fox, 2}},
				Red:   []Face{{Rabbit, 5}, {Sheep, 2}, {Pig, 2}, {Cow, 1}, {Wolf, 2}},
			},
		},
	}
}

func (r Rules) Validate() error {
	for k, ceiling := range r.BankMax {
		if !k.InHerd() {
			return fmt.Errorf("bank_max: %s cannot be held", k)
		}
		if ceiling < 0 {
			return fmt.Errorf("bank_max.%s: must be >= 0", k)
		}
		if r.BankStart.Get(k) > ceiling {
			return fmt.Errorf("bank_start.%s: %d exceeds bank_max %d", k, r.BankStart.Get(k), ceiling)
		}
	}
	for pair, rate := range r.Rates {
		if !pair.From.InHerd() || !pair.To.InHerd() || pair.From == pair.To {
			return fmt.Errorf("rates: invalid pair %s->%s", pair.From, pair.To)
		}
		if rate.Give <= 0 || rate.Get <= 0 {
			return fmt.Errorf("rates.%s->%s: give and get must be > 0", pair.From, pair.To)
		}
	}
	for name, set := range r.Dice {
		if err := validateDie(set.Green); err != nil {
			return fmt.Errorf("dice.%s.green: %w", name, err)
		}
		if err := validateDie(set.Red); err != nil {
			return fmt.Errorf("dice.%s.red: %w", name, err)
		}
	}
	return nil
}

func validateDie(faces []Face) error {
	if len(faces) == 0 {
		return fmt.Errorf("no faces")
	}
	for _, f := range faces {
		if !f.Kind.Rollable() {
			return fmt.Errorf("%s is not a die face", f.Kind)
		}
		if f.Weight <= 0 {
			return fmt.Errorf("%s weight must be > 0", f.Kind)
		}
	}
	return nil
}
