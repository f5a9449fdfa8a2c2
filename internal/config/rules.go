package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

// RulesFile is the YAML shape of a rules override. Anything left out keeps
// its default.
type RulesFile struct {
	TradeExpiryTurns *int                    `yaml:"trade_expiry_turns"`
	Bank             map[string]BankEntry    `yaml:"bank"`
	Rates            []RateEntry             `yaml:"rates"`
	Dice             map[string]DiceSetEntry `yaml:"dice"`
}

type BankEntry struct {
	Start *int `yaml:"start"`
	Max   *int `yaml:"max"`
}

type RateEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Give int    `yaml:"give"`
	Get  int    `yaml:"get"`
}

type DiceSetEntry struct {
	Green []FaceEntry `yaml:"green"`
	Red   []FaceEntry `yaml:"red"`
}

type FaceEntry struct {
	Kind   string `yaml:"kind"`
	Weight int    `yaml:"weight"`
}

// LoadRules returns the default rules when path is empty.
func LoadRules(path string) (farm.Rules, error) {
	rules := farm.DefaultRules()
	if path == "" {
		return rules, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return farm.Rules{}, fmt.Errorf("read rules: %w", err)
	}
	return ParseRules(raw)
}

func ParseRules(raw []byte) (farm.Rules, error) {
	var file RulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return farm.Rules{}, fmt.Errorf("rules.yaml: %w", err)
	}
	rules := farm.DefaultRules()
	if err := file.apply(&rules); err != nil {
		return farm.Rules{}, err
	}
	if err := rules.Validate(); err != nil {
		return farm.Rules{}, fmt.Errorf("rules.yaml: %w", err)
	}
	return rules, nil
}

func (f RulesFile) apply(rules *farm.Rules) error {
	if f.TradeExpiryTurns != nil {
		rules.TradeExpiryTurns = *f.TradeExpiryTurns
	}

	for name, entry := range f.Bank {
		kind, err := farm.ParseKind(name)
		if err != nil {
			return fmt.Errorf("bank.%s: %w", name, err)
		}
		if !kind.InHerd() {
			return fmt.Errorf("bank.%s: %s cannot be held", name, kind)
		}
		if entry.Start != nil {
			if *entry.Start < 0 {
				return fmt.Errorf("bank.%s.start: must be >= 0", name)
			}
			rules.BankStart.Set(kind, *entry.Start)
			if entry.Max == nil && rules.BankMax[kind] < *entry.Start {
				rules.BankMax[kind] = *entry.Start
			}
		}
		if entry.Max != nil {
			rules.BankMax[kind] = *entry.Max
		}
	}

	for i, entry := range f.Rates {
		from, err := farm.ParseKind(entry.From)
		if err != nil {
			return fmt.Errorf("rates[%d].from: %w", i, err)
		}
		to, err := farm.ParseKind(entry.To)
		if err != nil {
			return fmt.Errorf("rates[%d].to: %w", i, err)
		}
		rules.Rates[farm.Pair{From: from, To: to}] = farm.Rate{Give: entry.Give, Get: entry.Get}
	}

	for name, entry := range f.Dice {
		green, err := faces(entry.Green)
		if err != nil {
			return fmt.Errorf("dice.%s.green: %w", name, err)
		}
		red, err := faces(entry.Red)
		if err != nil {
			return fmt.Errorf("dice.%s.red: %w", name, err)
		}
		rules.Dice[name] = farm.DiceSet{Green: green, Red: red}
	}
	return nil
}

func faces(entries []FaceEntry) ([]farm.Face, error) {
	out := make([]farm.Face, 0, len(entries))
	for i, e := range entries {
		kind, err := farm.ParseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, farm.Face{Kind: kind, Weight: e.Weight})
	}
	return out, nil
}
