package scoring

import (
	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
)

// CombinedResult is the field-wise sum of one player's fixture results in a
// gameweek. The zero value means the player did not play.
type CombinedResult struct {
	Fixtures        int
	Minutes         int
	GoalsScored     int
	Assists         int
	CleanSheets     int
	GoalsConceded   int
	OwnGoals        int
	PenaltiesSaved  int
	PenaltiesMissed int
	YellowCards     int
	RedCards        int
	Saves           int
	Bonus           int
	BPS             int
	TotalPoints     int
}

// Played reports whether any minute was recorded across the gameweek's fixtures.
func (r CombinedResult) Played() bool {
	return r.Minutes > 0
}

// Slot is a pick resolved against its position and gameweek result.
type Slot struct {
	Pick     fantasy.Pick
	Position player.Position
	Result   CombinedResult
}

func (s Slot) Played() bool {
	return s.Result.Played()
}

// Substitution is the outcome of the automatic substitution stages.
type Substitution struct {
	// Scoring holds starters who played followed by promoted bench slots.
	Scoring []Slot
	// Promoted lists bench slots brought into the XI, in promotion order.
	Promoted []Slot
	// Unused lists bench slots that were not promoted.
	Unused []Slot
	// Missed lists starters who did not play.
	Missed             []Slot
	GoalkeeperPromoted bool
	AutoSubPoints      int
}

// CaptainResolution describes which pick received the captaincy multiplier.
type CaptainResolution struct {
	CaptainID       string
	ViceCaptainID   string
	ScorerID        string
	Multiplier      int
	BasePoints      int
	ExtraPoints     int
	SteppedInVC     bool
	NoCaptainPoints bool
}

// GameweekOutcome is the evaluated score of one squad in one gameweek.
type GameweekOutcome struct {
	Gameweek          int
	TotalPoints       int
	StarterPoints     int
	CaptainPoints     int
	ViceCaptainPoints int
	AutoSubPoints     int
	Captaincy         CaptainResolution
	ScoringXI         []Slot
	Substitutions     []Slot
	// PlayerPoints holds the unmultiplied points of every scoring player. The
	// captaincy extra is only carried by Captaincy.ExtraPoints.
	PlayerPoints      map[string]int
}
