package engine

import (
	"go.uber.org/zap"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

type RollType string

const (
	RollPredators  RollType = "predators"
	RollPredator   RollType = "predator"
	RollBreeding   RollType = "breeding"
	RollNoBreeding RollType = "no_breeding"
)

const NoAnimals = "no_animals"

type RollResult struct {
	Type      RollType          `json:"type"`
	Faces     [2]farm.Kind      `json:"faces"`
	Predator  farm.Kind         `json:"predator,omitempty"`
	Predators []farm.Kind       `json:"predators,omitempty"`
	Attacks   []AttackOutcome   `json:"attacks,omitempty"`
	Animal    farm.Kind         `json:"animal,omitempty"`
	Gained    map[farm.Kind]int `json:"gained,omitempty"`
	Reason    string            `json:"reason,omitempty"`
}

// ProcessDiceRoll resolves a pre-rolled pair of faces for the current
// player. Predators take precedence over breeding.
//
// A double grants max(pairs, 1). Two different faces grant pairs only,
// per owned kind, with no minimum.
func (s *Session) ProcessDiceRoll(playerIndex int, a, b farm.Kind) (RollResult, error) {
	if err := s.guardTurn(playerIndex); err != nil {
		return RollResult{}, err
	}
	if s.state.HasRolled {
		return RollResult{}, farm.ReasonAlreadyRolled
	}
	if !a.Rollable() || !b.Rollable() {
		return RollResult{}, farm.ReasonBadAnimal
	}

	player := s.players[playerIndex]
	res := s.resolveRoll(player, a, b)
	res.Faces = [2]farm.Kind{a, b}
	s.state.HasRolled = true

	s.logger.Debug("dice resolved",
		zap.Int("player_index", playerIndex),
		zap.Stringer("green", a),
		zap.Stringer("red", b),
		zap.String("type", string(res.Type)),
	)
	return res, nil
}

func (s *Session) resolveRoll(player *farm.Player, a, b farm.Kind) RollResult {
	hasFox := a == farm.Fox || b == farm.Fox
	hasWolf := a == farm.Wolf || b == farm.Wolf

	switch {
	case hasFox && hasWolf:
		fox := s.FoxAttack(player)
		wolf := s.WolfAttack(player)
		return RollResult{
			Type:      RollPredators,
			Predators: []farm.Kind{farm.Fox, farm.Wolf},
			Attacks:   []AttackOutcome{fox, wolf},
		}
	case hasFox:
		return RollResult{Type: RollPredator, Predator: farm.Fox, Attacks: []AttackOutcome{s.FoxAttack(player)}}
	case hasWolf:
		return RollResult{Type: RollPredator, Predator: farm.Wolf, Attacks: []AttackOutcome{s.WolfAttack(player)}}
	}

	if a == b {
		gain := max(player.Herd.Get(a)/2, 1)
		got := s.breed(player, a, gain)
		return RollResult{Type: RollBreeding, Animal: a, Gained: map[farm.Kind]int{a: got}}
	}

	if player.Herd.Empty() {
		return RollResult{Type: RollNoBreeding, Reason: NoAnimals}
	}
	gained := map[farm.Kind]int{}
	for _, k := range []farm.Kind{a, b} {
		pairs := player.Herd.Get(k) / 2
		if pairs <= 0 {
			continue
		}
		if got := s.breed(player, k, pairs); got > 0 {
			gained[k] = got
		}
	}
	return RollResult{Type: RollBreeding, Gained: gained}
}

// breed moves up to n animals from the bank, capped by bank stock.
func (s *Session) breed(player *farm.Player, k farm.Kind, n int) int {
	n = min(n, s.bank.Herd.Get(k))
	if n <= 0 {
		return 0
	}
	if !s.bank.Herd.Transfer(&player.Herd, k, n) {
		return 0
	}
	return n
}
