package weighted

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/karl5252/beastbazaar/internal/app/ports"
	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

// Roller throws a green and a red die whose faces are picked with
// probability proportional to their weight.
type Roller struct {
	mu    sync.Mutex
	rng   *rand.Rand
	green die
	red   die
}

type die struct {
	faces []farm.Face
	total int
}

func New(set farm.DiceSet, seed uint64) (*Roller, error) {
	green, err := newDie(set.Green)
	if err != nil {
		return nil, fmt.Errorf("green die: %w", err)
	}
	red, err := newDie(set.Red)
	if err != nil {
		return nil, fmt.Errorf("red die: %w", err)
	}
	return &Roller{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		green: green,
		red:   red,
	}, nil
}

// ForDifficulty picks the die pair configured for difficulty.
func ForDifficulty(rules farm.Rules, difficulty string, seed uint64) (*Roller, error) {
	set, ok := rules.Dice[difficulty]
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}
	return New(set, seed)
}

func newDie(faces []farm.Face) (die, error) {
	d := die{faces: append([]farm.Face(nil), faces...)}
	for _, f := range faces {
		if f.Weight <= 0 {
			return die{}, fmt.Errorf("%s weight must be > 0", f.Kind)
		}
		d.total += f.Weight
	}
	if d.total == 0 {
		return die{}, fmt.Errorf("no faces")
	}
	return d, nil
}

func (r *Roller) Roll() ports.DicePair {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ports.DicePair{Green: r.green.pick(r.rng), Red: r.red.pick(r.rng)}
}

func (d die) pick(rng *rand.Rand) farm.Kind {
	n := rng.IntN(d.total)
	for _, f := range d.faces {
		if n < f.Weight {
			return f.Kind
		}
		n -= f.Weight
	}
	return d.faces[len(d.faces)-1].Kind
}
