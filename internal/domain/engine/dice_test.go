package engine

import (
	"errors"
	"testing"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

func TestRollDoubleBreeds(t *testing.T) {
	s := newTestSession(t, "Ann")
	s.players[0].Herd.Rabbit = 4
	res, err := s.ProcessDiceRoll(0, farm.Rabbit, farm.Rabbit)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if res.Type != RollBreeding || res.Animal != farm.Rabbit || res.Gained[farm.Rabbit] != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := s.players[0].Herd.Rabbit; got != 6 {
		t.Fatalf("got player rabbits=%d want=6", got)
	}
	if got := s.Bank().Herd.Rabbit; got != 58 {
		t.Fatalf("got bank rabbits=%d want=58", got)
	}
	if !s.TurnState().HasRolled {
		t.Fatalf("expected has_rolled")
	}
}

func TestRollDoubleFromZeroGrantsOne(t *testing.T) {
	s := newTestSession(t, "Ann")
	res, err := s.ProcessDiceRoll(0, farm.Horse, farm.Horse)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if res.Gained[farm.Horse] != 1 || s.players[0].Herd.Horse != 1 {
		t.Fatalf("expected one horse, got %+v herd=%+v", res, s.players[0].Herd)
	}
}

func TestRollDoubleCappedByBank(t *testing.T) {
	s := newTestSession(t, "Ann")
	s.players[0].Herd.Horse = 10
	s.bank.Herd.Horse = 2
	res, _ := s.ProcessDiceRoll(0, farm.Horse, farm.Horse)
	if res.Gained[farm.Horse] != 2 || s.bank.Herd.Horse != 0 {
		t.Fatalf("expected gain capped at bank stock, got %+v bank=%d", res, s.bank.Herd.Horse)
	}

	s.StartTurn()
	res, _ = s.ProcessDiceRoll(0, farm.Horse, farm.Horse)
	if got, ok := res.Gained[farm.Horse]; !ok || got != 0 {
		t.Fatalf("expected explicit zero gain, got %+v", res.Gained)
	}
}

func TestRollDistinctKindsNoMinimum(t *testing.T) {
	s := newTestSession(t, "Ann")
	s.players[0].Herd = farm.Herd{Rabbit: 5, Sheep: 1}
	res, err := s.ProcessDiceRoll(0, farm.Rabbit, farm.Sheep)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if res.Type != RollBreeding {
		t.Fatalf("got type=%s", res.Type)
	}
	if res.Gained[farm.Rabbit] != 2 {
		t.Fatalf("got rabbit gain=%d want=2", res.Gained[farm.Rabbit])
	}
	if _, ok := res.Gained[farm.Sheep]; ok {
		t.Fatalf("single sheep must not breed: %+v", res.Gained)
	}
	if s.players[0].Herd.Rabbit != 7 || s.players[0].Herd.Sheep != 1 {
		t.Fatalf("unexpected herd: %+v", s.players[0].Herd)
	}
}

func TestRollDistinctKindsEmptyHerd(t *testing.T) {
	s := newTestSession(t, "Ann")
	res, err := s.ProcessDiceRoll(0, farm.Rabbit, farm.Pig)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if res.Type != RollNoBreeding || res.Reason != NoAnimals {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !s.TurnState().HasRolled {
		t.Fatalf("expected has_rolled after no_breeding")
	}
}

func TestRollDistinctKindsHoundOnlyHerdBreedsNothing(t *testing.T) {
	s := newTestSession(t, "Ann")
	s.players[0].Herd.Foxhound = 1
	res, _ := s.ProcessDiceRoll(0, farm.Rabbit, farm.Pig)
	if res.Type != RollBreeding || len(res.Gained) != 0 {
		t.Fatalf("expected empty breeding result, got %+v", res)
	}
}

func TestRollFoxWithoutHoundBanksRabbits(t *testing.T) {
	s := newTestSession(t, "Ann")
	s.players[0].Herd.Rabbit = 3
	s.bank.Herd.Rabbit = 50
	res, err := s.ProcessDiceRoll(0, farm.Fox, farm.Sheep)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if res.Type != RollPredator || res.Predator != farm.Fox {
		t.Fatalf("unexpected result: %+v", res)
	}
	if s.players[0].Herd.Rabbit != 0 || s.bank.Herd.Rabbit != 53 {
		t.Fatalf("got player=%d bank=%d want player=0 bank=53", s.players[0].Herd.Rabbit, s.bank.Herd.Rabbit)
	}
	if res.Attacks[0].Protected || res.Attacks[0].Lost[farm.Rabbit] != 3 {
		t.Fatalf("unexpected attack: %+v", res.Attacks[0])
	}
}

func TestRollFoxWithHoundSacrificesHound(t *testing.T) {
	s := newTestSession(t, "Ann")
	s.players[0].Herd = farm.Herd{Rabbit: 5, Foxhound: 1}
	bankHounds := s.bank.Herd.Foxhound
	res, _ := s.ProcessDiceRoll(0, farm.Fox, farm.Cow)
	if s.players[0].Herd.Foxhound != 0 || s.players[0].Herd.Rabbit != 5 {
		t.Fatalf("unexpected herd: %+v", s.players[0].Herd)
	}
	if s.bank.Herd.Foxhound != bankHounds {
		t.Fatalf("sacrificed hound must not return to the bank")
	}
	if !res.Attacks[0].Protected || res.Attacks[0].Cost != farm.Foxhound {
		t.Fatalf("unexpected attack: %+v", res.Attacks[0])
	}
}

func TestRollWolfSparesHorseAndHounds(t *testing.T) {
	s := newTestSession(t, "Ann")
	s.players[0].Herd = farm.Herd{Rabbit: 2, Sheep: 2, Pig: 1, Cow: 1, Horse: 1, Foxhound: 1}
	s.bank.Herd = farm.Herd{}
	s.ProcessDiceRoll(0, farm.Pig, farm.Wolf)
	want := farm.Herd{Horse: 1, Foxhound: 1}
	if s.players[0].Herd != want {
		t.Fatalf("got=%+v want=%+v", s.players[0].Herd, want)
	}
	if s.bank.Herd.Sheep != 2 || s.bank.Herd.Cow != 1 {
		t.Fatalf("unexpected bank: %+v", s.bank.Herd)
	}
}

func TestRollFoxAndWolfResolveInOrder(t *testing.T) {
	s := newTestSession(t, "Ann")
	s.players[0].Herd = farm.Herd{Rabbit: 4, Sheep: 3, Foxhound: 1}
	s.bank.Herd = farm.Herd{}
	res, err := s.ProcessDiceRoll(0, farm.Fox, farm.Wolf)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if res.Type != RollPredators || len(res.Attacks) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !res.Attacks[0].Protected || res.Attacks[1].Protected {
		t.Fatalf("expected fox blocked and wolf unblocked: %+v", res.Attacks)
	}
	if s.players[0].Herd != (farm.Herd{}) {
		t.Fatalf("expected empty herd, got %+v", s.players[0].Herd)
	}
}

func TestRollOverflowIsCulled(t *testing.T) {
	s := newTestSession(t, "Ann")
	s.players[0].Herd.Rabbit = 10
	s.bank.Herd.Rabbit = 56
	res, _ := s.ProcessDiceRoll(0, farm.Fox, farm.Rabbit)
	if s.bank.Herd.Rabbit != 60 {
		t.Fatalf("got bank=%d want=60", s.bank.Herd.Rabbit)
	}
	if s.players[0].Herd.Rabbit != 0 {
		t.Fatalf("got player=%d want=0", s.players[0].Herd.Rabbit)
	}
	if res.Attacks[0].Culled[farm.Rabbit] != 6 {
		t.Fatalf("got culled=%d want=6", res.Attacks[0].Culled[farm.Rabbit])
	}
}

func TestReturnToBankWithoutCeiling(t *testing.T) {
	s := newTestSession(t, "Ann")
	delete(s.rules.BankMax, farm.Sheep)
	s.players[0].Herd.Sheep = 30
	if banked := s.ReturnToBankWithCull(s.players[0], farm.Sheep, 30); banked != 30 {
		t.Fatalf("got banked=%d want=30", banked)
	}
	if _, bounded := s.BankCapacity(farm.Sheep); bounded {
		t.Fatalf("expected unbounded capacity")
	}
}

func TestRollGuards(t *testing.T) {
	s := newTestSession(t, "Ann", "Bob")
	if _, err := s.ProcessDiceRoll(1, farm.Rabbit, farm.Rabbit); !errors.Is(err, farm.ReasonNotYourTurn) {
		t.Fatalf("got=%v want=not_your_turn", err)
	}
	if _, err := s.ProcessDiceRoll(0, farm.Foxhound, farm.Rabbit); !errors.Is(err, farm.ReasonBadAnimal) {
		t.Fatalf("got=%v want=bad_animal", err)
	}
	if _, err := s.ProcessDiceRoll(0, farm.Rabbit, farm.Rabbit); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if _, err := s.ProcessDiceRoll(0, farm.Rabbit, farm.Rabbit); !errors.Is(err, farm.ReasonAlreadyRolled) {
		t.Fatalf("got=%v want=already_rolled", err)
	}
}
