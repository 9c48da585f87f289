package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"gopkg.in/yaml.v3"
)

// rulesDocument is the YAML layout of a rules override:
//
//	starter_count: 11
//	bench_count: 4
//	min_by_position:
//	  GK: 1
//	  DEF: 3
//	  MID: 2
//	  FWD: 1
//
// Omitted fields keep their default value.
type rulesDocument struct {
	StarterCount  *int           `yaml:"starter_count"`
	BenchCount    *int           `yaml:"bench_count"`
	MinByPosition map[string]int `yaml:"min_by_position"`
}

func LoadRulesFile(path string) (fantasy.Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fantasy.Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(raw)
}

func ParseRules(raw []byte) (fantasy.Rules, error) {
	var doc rulesDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fantasy.Rules{}, fmt.Errorf("decode rules yaml: %w", err)
	}

	rules := fantasy.DefaultRules()
	if doc.StarterCount != nil {
		rules.StarterCount = *doc.StarterCount
	}
	if doc.BenchCount != nil {
		rules.BenchCount = *doc.BenchCount
	}
	if len(doc.MinByPosition) > 0 {
		mins := make(map[player.Position]int, len(rules.MinByPosition))
		for pos, value := range rules.MinByPosition {
			mins[pos] = value
		}
		for key, value := range doc.MinByPosition {
			pos := player.Position(strings.ToUpper(strings.TrimSpace(key)))
			if pos != player.PositionGoalkeeper && !pos.IsOutfield() {
				return fantasy.Rules{}, fmt.Errorf("unknown position %q in min_by_position", key)
			}
			mins[pos] = value
		}
		rules.MinByPosition = mins
	}

	if err := rules.Validate(); err != nil {
		return fantasy.Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}
