package ports

import "github.com/karl5252/beastbazaar/internal/domain/farm"

type DicePair struct {
	Green farm.Kind `json:"green"`
	Red   farm.Kind `json:"red"`
}

type DiceRoller interface {
	Roll() DicePair
}
