package scoring

import (
	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
)

// Simulate resolves automatic substitutions for one gameweek. Starters and
// bench are expected in slot order with the backup goalkeeper first on the
// bench; squads are validated before they get here.
func Simulate(starters, bench []Slot, rules fantasy.Rules) Substitution {
	var out Substitution

	startingKeeperPlayed := false
	for _, slot := range starters {
		if !slot.Played() {
			out.Missed = append(out.Missed, slot)
			continue
		}
		if slot.Position == player.PositionGoalkeeper {
			startingKeeperPlayed = true
		}
		out.Scoring = append(out.Scoring, slot)
	}

	queue := make([]Slot, 0, len(bench))
	for idx, slot := range bench {
		if idx == 0 && slot.Position == player.PositionGoalkeeper {
			if !startingKeeperPlayed && slot.Played() {
				out.promote(slot)
				out.GoalkeeperPromoted = true
			} else {
				out.Unused = append(out.Unused, slot)
			}
			continue
		}
		queue = append(queue, slot)
	}

	out.substituteOutfield(queue, rules)
	return out
}

func (s *Substitution) promote(slot Slot) {
	s.Scoring = append(s.Scoring, slot)
	s.Promoted = append(s.Promoted, slot)
	s.AutoSubPoints += slot.Result.TotalPoints
}

// substituteOutfield consumes the outfield bench queue. The queue is scanned
// from the front again after every promotion or removal.
func (s *Substitution) substituteOutfield(queue []Slot, rules fantasy.Rules) {
	counts := make(map[player.Position]int, len(player.OutfieldPositions))
	pool := 0
	for _, slot := range s.Scoring {
		if slot.Position.IsOutfield() {
			counts[slot.Position]++
			pool++
		}
	}

	capacity := rules.OutfieldSlots()
	for len(queue) > 0 {
		if pool >= capacity {
			s.Unused = append(s.Unused, queue...)
			return
		}

		for idx, candidate := range queue {
			forced := pool+len(queue) <= capacity
			last := idx == len(queue)-1

			if !candidate.Played() {
				s.Unused = append(s.Unused, candidate)
				queue = removeSlot(queue, idx)
				break
			}
			if forced || formationAllows(candidate.Position, counts, rules) {
				s.promote(candidate)
				counts[candidate.Position]++
				pool++
				queue = removeSlot(queue, idx)
				break
			}
			if last {
				s.Unused = append(s.Unused, candidate)
				queue = removeSlot(queue, idx)
				break
			}
		}
	}
}

// formationAllows reports whether a player at pos can join the outfield:
// their position is below its minimum, or both other positions have reached
// theirs.
func formationAllows(pos player.Position, counts map[player.Position]int, rules fantasy.Rules) bool {
	if !pos.IsOutfield() {
		return false
	}
	if counts[pos] < rules.Min(pos) {
		return true
	}
	for _, other := range player.OutfieldPositions {
		if other == pos {
			continue
		}
		if counts[other] < rules.Min(other) {
			return false
		}
	}
	return true
}

func removeSlot(queue []Slot, idx int) []Slot {
	out := make([]Slot, 0, len(queue)-1)
	out = append(out, queue[:idx]...)
	return append(out, queue[idx+1:]...)
}
