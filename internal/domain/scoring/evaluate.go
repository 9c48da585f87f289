package scoring

import (
	"fmt"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
)

// RecordSource is the read-only season data the evaluator needs.
type RecordSource interface {
	ResultSource
	Position(playerID string) (player.Position, bool)
}

// Evaluator scores fixed squads gameweek by gameweek. It holds no mutable
// state and is safe for concurrent use.
type Evaluator struct {
	aggregator Aggregator
	positions  fantasy.PositionLookup
	rules      fantasy.Rules
}

func NewEvaluator(source RecordSource, rules fantasy.Rules) *Evaluator {
	return &Evaluator{
		aggregator: NewAggregator(source),
		positions:  source.Position,
		rules:      rules,
	}
}

func (e *Evaluator) Rules() fantasy.Rules {
	return e.rules
}

// Evaluate rejects malformed squads, then scores the squad: starters who
// played, promoted bench players and the captaincy extra.
func (e *Evaluator) Evaluate(squad fantasy.Squad, gameweek int) (GameweekOutcome, error) {
	if err := fantasy.ValidateSquad(squad, e.positions, e.rules); err != nil {
		return GameweekOutcome{}, fmt.Errorf("evaluate gameweek %d: %w", gameweek, err)
	}

	slots := make([]Slot, 0, len(squad.Picks))
	for _, pick := range squad.Picks {
		pos, _ := e.positions(pick.PlayerID)
		slots = append(slots, Slot{
			Pick:     pick,
			Position: pos,
			Result:   e.aggregator.Combine(pick.PlayerID, gameweek),
		})
	}

	sub := Simulate(slots[:e.rules.StarterCount], slots[e.rules.StarterCount:], e.rules)

	counted := make(map[string]CombinedResult, len(sub.Scoring))
	for _, slot := range sub.Scoring {
		counted[slot.Pick.PlayerID] = slot.Result
	}
	captaincy := ResolveCaptain(squad, func(playerID string) (CombinedResult, bool) {
		result, ok := counted[playerID]
		return result, ok
	})

	out := GameweekOutcome{
		Gameweek:      gameweek,
		AutoSubPoints: sub.AutoSubPoints,
		Captaincy:     captaincy,
		ScoringXI:     sub.Scoring,
		Substitutions: sub.Promoted,
		PlayerPoints:  make(map[string]int, len(sub.Scoring)),
	}
	for _, slot := range sub.Scoring {
		out.PlayerPoints[slot.Pick.PlayerID] = slot.Result.TotalPoints
		if slot.Pick.Slot <= e.rules.StarterCount {
			out.StarterPoints += slot.Result.TotalPoints
		}
	}

	if !captaincy.NoCaptainPoints {
		if captaincy.SteppedInVC {
			out.ViceCaptainPoints = captaincy.ExtraPoints
		} else {
			out.CaptainPoints = captaincy.ExtraPoints
		}
	}

	out.TotalPoints = out.StarterPoints + out.AutoSubPoints + captaincy.ExtraPoints
	return out, nil
}
