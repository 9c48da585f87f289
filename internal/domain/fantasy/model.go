package fantasy

import "sort"

const (
	// ManagerSlot is the squad slot used by the assistant-manager chip.
	ManagerSlot = 16

	MultiplierBenched = 0
	MultiplierPlaying = 1
	MultiplierCaptain = 2
	MultiplierTriple  = 3
)

// Pick is one squad slot for a gameweek.
type Pick struct {
	PlayerID      string
	Slot          int
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
}

// Squad is the 15-pick selection evaluated for a gameweek. Slots 1-11 start,
// slots 12-15 form the bench in substitution order.
type Squad struct {
	Picks []Pick
}

// NewSquad builds a squad from raw gameweek picks, dropping the manager chip
// slot and ordering picks by slot. Invariants are checked by ValidateSquad.
func NewSquad(picks []Pick) Squad {
	out := make([]Pick, 0, len(picks))
	for _, pick := range picks {
		if pick.Slot >= ManagerSlot {
			continue
		}
		out = append(out, pick)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Slot < out[j].Slot
	})

	return Squad{Picks: out}
}

func (s Squad) Bench(rules Rules) []Pick {
	if len(s.Picks) <= rules.StarterCount {
		return nil
	}
	return append([]Pick(nil), s.Picks[rules.StarterCount:]...)
}

func (s Squad) Captain() (Pick, bool) {
	for _, pick := range s.Picks {
		if pick.IsCaptain {
			return pick, true
		}
	}
	return Pick{}, false
}

func (s Squad) ViceCaptain() (Pick, bool) {
	for _, pick := range s.Picks {
		if pick.IsViceCaptain {
			return pick, true
		}
	}
	return Pick{}, false
}

// WithStandardCaptaincy returns a copy where starters play with multiplier 1,
// bench picks with 0 and the captain with 2. Chips only apply to the
// gameweek they were played in, so reused squads drop them.
func (s Squad) WithStandardCaptaincy(rules Rules) Squad {
	out := make([]Pick, len(s.Picks))
	copy(out, s.Picks)
	for idx := range out {
		switch {
		case out[idx].Slot > rules.StarterCount:
			out[idx].Multiplier = MultiplierBenched
		case out[idx].IsCaptain:
			out[idx].Multiplier = MultiplierCaptain
		default:
			out[idx].Multiplier = MultiplierPlaying
		}
	}
	return Squad{Picks: out}
}

func (s Squad) PlayerIDs() []string {
	out := make([]string, 0, len(s.Picks))
	for _, pick := range s.Picks {
		out = append(out, pick.PlayerID)
	}
	return out
}
