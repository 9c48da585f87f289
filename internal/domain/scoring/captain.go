package scoring

import "github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"

// CountedResult reports a player's combined result and whether the player
// counts as having played after substitutions.
type CountedResult func(playerID string) (CombinedResult, bool)

// ResolveCaptain applies the captaincy multiplier to the captain when they
// played, otherwise to the vice-captain when they played. When neither
// played the resolution is flagged with NoCaptainPoints.
func ResolveCaptain(squad fantasy.Squad, counted CountedResult) CaptainResolution {
	captain, hasCaptain := squad.Captain()
	vice, hasVice := squad.ViceCaptain()

	out := CaptainResolution{
		CaptainID:     captain.PlayerID,
		ViceCaptainID: vice.PlayerID,
		Multiplier:    captaincyMultiplier(captain, vice),
	}

	if hasCaptain {
		if result, ok := counted(captain.PlayerID); ok && result.Played() {
			return out.award(captain.PlayerID, result, false)
		}
	}
	if hasVice {
		if result, ok := counted(vice.PlayerID); ok && result.Played() {
			return out.award(vice.PlayerID, result, true)
		}
	}

	out.NoCaptainPoints = true
	return out
}

func (r CaptainResolution) award(playerID string, result CombinedResult, steppedIn bool) CaptainResolution {
	r.ScorerID = playerID
	r.BasePoints = result.TotalPoints
	r.ExtraPoints = (r.Multiplier - 1) * result.TotalPoints
	r.SteppedInVC = steppedIn
	return r
}

// A triple captain carries over to the vice-captain when the captain misses.
func captaincyMultiplier(captain, vice fantasy.Pick) int {
	multiplier := fantasy.MultiplierCaptain
	if captain.Multiplier > multiplier {
		multiplier = captain.Multiplier
	}
	if vice.Multiplier > multiplier {
		multiplier = vice.Multiplier
	}
	return multiplier
}
