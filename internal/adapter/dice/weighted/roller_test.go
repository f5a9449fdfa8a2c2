package weighted

import (
	"math"
	"testing"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

func TestRollerFollowsWeights(t *testing.T) {
	r, err := ForDifficulty(farm.DefaultRules(), farm.DifficultyEasy, 42)
	if err != nil {
		t.Fatalf("new roller: %v", err)
	}
	const n = 24000
	green := map[farm.Kind]int{}
	red := map[farm.Kind]int{}
	for i := 0; i < n; i++ {
		p := r.Roll()
		green[p.Green]++
		red[p.Red]++
	}

	// easy green die: rabbit 6/12, fox 1/12
	if got := float64(green[farm.Rabbit]) / n; math.Abs(got-0.5) > 0.03 {
		t.Fatalf("green rabbit share=%.3f want~0.5", got)
	}
	if got := float64(green[farm.Fox]) / n; math.Abs(got-1.0/12) > 0.02 {
		t.Fatalf("green fox share=%.3f want~0.083", got)
	}
	if green[farm.Cow] != 0 || green[farm.Wolf] != 0 {
		t.Fatalf("green die rolled a red-only face: %v", green)
	}
	if red[farm.Horse] != 0 || red[farm.Fox] != 0 {
		t.Fatalf("red die rolled a green-only face: %v", red)
	}
}

func TestRollerDeterministicForSeed(t *testing.T) {
	set := farm.DefaultRules().Dice[farm.DifficultyMedium]
	a, _ := New(set, 7)
	b, _ := New(set, 7)
	for i := 0; i < 50; i++ {
		if a.Roll() != b.Roll() {
			t.Fatalf("roll %d diverged for equal seeds", i)
		}
	}
}

func TestNewRejectsBadDice(t *testing.T) {
	if _, err := New(farm.DiceSet{Red: []farm.Face{{Kind: farm.Rabbit, Weight: 1}}}, 1); err == nil {
		t.Fatalf("expected error for empty green die")
	}
	bad := farm.DiceSet{
		Green: []farm.Face{{Kind: farm.Rabbit, Weight: 0}},
		Red:   []farm.Face{{Kind: farm.Rabbit, Weight: 1}},
	}
	if _, err := New(bad, 1); err == nil {
		t.Fatalf("expected error for zero weight")
	}
	if _, err := ForDifficulty(farm.DefaultRules(), "nightmare", 1); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
}
