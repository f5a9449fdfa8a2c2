package engine

import "github.com/karl5252/beastbazaar/internal/domain/farm"

var (
	foxPrey  = []farm.Kind{farm.Rabbit}
	wolfPrey = []farm.Kind{farm.Rabbit, farm.Sheep, farm.Pig, farm.Cow}
)

// AttackOutcome describes one predator strike. A protected strike costs
// exactly one hound; otherwise Lost lists every animal taken and Culled
// the part of it the bank had no room for.
type AttackOutcome struct {
	Predator  farm.Kind         `json:"predator"`
	Protected bool              `json:"protected"`
	Cost      farm.Kind         `json:"cost,omitempty"`
	Lost      map[farm.Kind]int `json:"lost,omitempty"`
	Culled    map[farm.Kind]int `json:"culled,omitempty"`
}

func (s *Session) FoxAttack(player *farm.Player) AttackOutcome {
	return s.attack(player, farm.Fox, farm.Foxhound, foxPrey)
}

// WolfAttack spares Horse and both hound kinds.
func (s *Session) WolfAttack(player *farm.Player) AttackOutcome {
	return s.attack(player, farm.Wolf, farm.Wolfhound, wolfPrey)
}

func (s *Session) attack(player *farm.Player, predator, hound farm.Kind, prey []farm.Kind) AttackOutcome {
	out := AttackOutcome{Predator: predator}
	if n := player.Herd.Get(hound); n > 0 {
		// the hound is lost, not returned to the bank
		player.Herd.Set(hound, n-1)
		out.Protected = true
		out.Cost = hound
		return out
	}
	for _, k := range prey {
		count := player.Herd.Get(k)
		if count <= 0 {
			continue
		}
		banked := s.ReturnToBankWithCull(player, k, count)
		if out.Lost == nil {
			out.Lost = map[farm.Kind]int{}
		}
		out.Lost[k] = count
		if culled := count - banked; culled > 0 {
			if out.Culled == nil {
				out.Culled = map[farm.Kind]int{}
			}
			out.Culled[k] = culled
		}
	}
	return out
}

// ReturnToBankWithCull banks as many of n animals as the bank has room
// for and removes the rest from the sender. It returns the banked amount.
func (s *Session) ReturnToBankWithCull(player *farm.Player, k farm.Kind, n int) int {
	if n <= 0 || player == nil {
		return 0
	}
	n = min(n, player.Herd.Get(k))
	banked := n
	if space, bounded := s.BankCapacity(k); bounded {
		banked = min(n, space)
	}
	if banked > 0 && !player.Herd.Transfer(&s.bank.Herd, k, banked) {
		banked = 0
	}
	if overflow := n - banked; overflow > 0 {
		player.Herd.Set(k, player.Herd.Get(k)-overflow)
	}
	return banked
}

// BankCapacity returns the free room for a kind. bounded is false when
// the rules declare no ceiling for it.
func (s *Session) BankCapacity(k farm.Kind) (space int, bounded bool) {
	ceiling, ok := s.rules.BankMax[k]
	if !ok {
		return 0, false
	}
	return max(0, ceiling-s.bank.Herd.Get(k)), true
}
