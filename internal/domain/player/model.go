package player

import (
	"fmt"
	"time"
)

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
	// PositionManager is the assistant-manager chip placeholder. It never scores
	// through substitution.
	PositionManager Position = "MGR"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
	PositionManager:    {},
}

// OutfieldPositions lists the positions that share the flexible outfield slots.
var OutfieldPositions = []Position{PositionDefender, PositionMidfielder, PositionForward}

// PositionFromElementType maps the upstream element_type code to a Position.
func PositionFromElementType(elementType int) (Position, error) {
	switch elementType {
	case 1:
		return PositionGoalkeeper, nil
	case 2:
		return PositionDefender, nil
	case 3:
		return PositionMidfielder, nil
	case 4:
		return PositionForward, nil
	case 5:
		return PositionManager, nil
	default:
		return "", fmt.Errorf("unknown element type: %d", elementType)
	}
}

func (p Position) IsOutfield() bool {
	return p == PositionDefender || p == PositionMidfielder || p == PositionForward
}

// FixtureResult is one player's statistics for one fixture. A gameweek can hold
// zero, one or several of these per player.
type FixtureResult struct {
	Gameweek        int
	FixtureID       int
	OpponentTeamID  int
	WasHome         bool
	KickoffAt       time.Time
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

type SeasonStats struct {
	TotalPoints     int
	PointsPerGame   float64
	SelectedByPct   float64
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
}

// Player is a selectable footballer together with the per-fixture history of the season.
type Player struct {
	ID         string
	Code       int
	WebName    string
	FirstName  string
	SecondName string
	TeamID     int
	Position   Position
	Status     string
	Stats      SeasonStats
	History    []FixtureResult
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.WebName == "" {
		return fmt.Errorf("player web name is required: %s", p.ID)
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	for _, item := range p.History {
		if item.Gameweek <= 0 {
			return fmt.Errorf("player %s has history row with invalid gameweek %d", p.ID, item.Gameweek)
		}
	}

	return nil
}
