package farm

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Kind is an animal kind. Fox and Wolf only ever appear on dice.
type Kind uint8

const (
	KindUnknown Kind = iota
	Rabbit
	Sheep
	Pig
	Cow
	Horse
	Foxhound
	Wolfhound
	Fox
	Wolf
)

var kindNames = [...]string{
	KindUnknown: "Unknown",
	Rabbit:      "Rabbit",
	Sheep:       "Sheep",
	Pig:         "Pig",
	Cow:         "Cow",
	Horse:       "Horse",
	Foxhound:    "Foxhound",
	Wolfhound:   "Wolfhound",
	Fox:         "Fox",
	Wolf:        "Wolf",
}

// CoreKinds is the victory set.
var CoreKinds = []Kind{Rabbit, Sheep, Pig, Cow, Horse}

// HerdKinds are the kinds a herd can hold.
var HerdKinds = []Kind{Rabbit, Sheep, Pig, Cow, Horse, Foxhound, Wolfhound}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) InHerd() bool {
	return k >= Rabbit && k <= Wolfhound
}

func (k Kind) Predator() bool {
	return k == Fox || k == Wolf
}

// Rollable reports whether k can show on a die face.
func (k Kind) Rollable() bool {
	return (k >= Rabbit && k <= Horse) || k.Predator()
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// UnknownKindError carries the closest known name, if any was near enough.
type UnknownKindError struct {
	Input      string
	Suggestion string
}

func (e *UnknownKindError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("unknown animal %q", e.Input)
	}
	return fmt.Sprintf("unknown animal %q (did you mean %s?)", e.Input, e.Suggestion)
}

func (e *UnknownKindError) Unwrap() error { return ReasonBadAnimal }

// ParseKind matches names case-insensitively.
func ParseKind(s string) (Kind, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	if token == "" {
		return KindUnknown, &UnknownKindError{Input: s}
	}
	for k := Rabbit; k <= Wolf; k++ {
		if strings.ToLower(kindNames[k]) == token {
			return k, nil
		}
	}
	return KindUnknown, &UnknownKindError{Input: s, Suggestion: closestKind(token)}
}

func closestKind(token string) string {
	best, bestDist := "", -1
	for k := Rabbit; k <= Wolf; k++ {
		name := kindNames[k]
		dist := levenshtein.ComputeDistance(token, strings.ToLower(name))
		if dist > suggestLimit(len(name)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}

func suggestLimit(n int) int {
	switch {
	case n <= 3:
		return 1
	case n <= 6:
		return 2
	default:
		return 3
	}
}
