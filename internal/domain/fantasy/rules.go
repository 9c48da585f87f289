package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
)

var (
	ErrInvalidSquadSize       = errors.New("invalid squad size")
	ErrInvalidSlot            = errors.New("invalid squad slot")
	ErrInvalidMultiplier      = errors.New("invalid pick multiplier")
	ErrMissingCaptain         = errors.New("squad has no captain")
	ErrMissingViceCaptain     = errors.New("squad has no vice captain")
	ErrDuplicateCaptaincy     = errors.New("captaincy assigned more than once")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
	ErrUnknownPlayer          = errors.New("unknown player")
	ErrUnknownPlayerPosition  = errors.New("unknown player position")
	ErrInvalidFormation       = errors.New("invalid squad formation")
)

// Rules stores the league's squad and formation parameters.
type Rules struct {
	StarterCount  int
	BenchCount    int
	MinByPosition map[player.Position]int
}

func DefaultRules() Rules {
	return Rules{
		StarterCount: 11,
		BenchCount:   4,
		MinByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionDefender:   3,
			player.PositionMidfielder: 2,
			player.PositionForward:    1,
		},
	}
}

func (r Rules) SquadSize() int {
	return r.StarterCount + r.BenchCount
}

// OutfieldSlots is the number of starting slots shared by defenders,
// midfielders and forwards.
func (r Rules) OutfieldSlots() int {
	return r.StarterCount - r.MinByPosition[player.PositionGoalkeeper]
}

func (r Rules) Min(pos player.Position) int {
	return r.MinByPosition[pos]
}

func (r Rules) Validate() error {
	if r.StarterCount <= 0 {
		return fmt.Errorf("starter count must be greater than zero")
	}
	if r.BenchCount < 1 {
		return fmt.Errorf("bench count must be at least 1 for the backup goalkeeper")
	}
	if r.MinByPosition[player.PositionGoalkeeper] != 1 {
		return fmt.Errorf("exactly one starting goalkeeper is required, got min=%d", r.MinByPosition[player.PositionGoalkeeper])
	}

	outfieldMin := 0
	for _, pos := range player.OutfieldPositions {
		value := r.MinByPosition[pos]
		if value < 0 {
			return fmt.Errorf("minimum for %s must be >= 0", pos)
		}
		outfieldMin += value
	}
	if outfieldMin > r.OutfieldSlots() {
		return fmt.Errorf("outfield minimums (%d) exceed outfield slots (%d)", outfieldMin, r.OutfieldSlots())
	}

	return nil
}

// PositionLookup resolves the position of a player id.
type PositionLookup func(playerID string) (player.Position, bool)

// ValidateSquad checks the invariants the scoring engine relies on. A squad
// failing these checks is a caller error and must not be simulated.
func ValidateSquad(squad Squad, positionOf PositionLookup, rules Rules) error {
	if len(squad.Picks) != rules.SquadSize() {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidSquadSize, rules.SquadSize(), len(squad.Picks))
	}

	playerSet := make(map[string]struct{}, len(squad.Picks))
	slotSet := make(map[int]struct{}, len(squad.Picks))
	captains := 0
	viceCaptains := 0
	var captainID, viceCaptainID string

	for idx, pick := range squad.Picks {
		if pick.PlayerID == "" {
			return fmt.Errorf("player id is required at slot %d", pick.Slot)
		}
		if _, exists := playerSet[pick.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}

		if pick.Slot != idx+1 {
			return fmt.Errorf("%w: expected slot %d, got %d", ErrInvalidSlot, idx+1, pick.Slot)
		}
		if _, exists := slotSet[pick.Slot]; exists {
			return fmt.Errorf("%w: duplicate slot %d", ErrInvalidSlot, pick.Slot)
		}
		slotSet[pick.Slot] = struct{}{}

		if pick.Multiplier < MultiplierBenched || pick.Multiplier > MultiplierTriple {
			return fmt.Errorf("%w: slot=%d multiplier=%d", ErrInvalidMultiplier, pick.Slot, pick.Multiplier)
		}

		if pick.IsCaptain {
			captains++
			captainID = pick.PlayerID
			if pick.Slot > rules.StarterCount {
				return fmt.Errorf("%w: captain %s is on the bench", ErrMissingCaptain, pick.PlayerID)
			}
		}
		if pick.IsViceCaptain {
			viceCaptains++
			viceCaptainID = pick.PlayerID
		}
	}

	if captains == 0 {
		return ErrMissingCaptain
	}
	if viceCaptains == 0 {
		return ErrMissingViceCaptain
	}
	if captains > 1 || viceCaptains > 1 {
		return fmt.Errorf("%w: captains=%d vice_captains=%d", ErrDuplicateCaptaincy, captains, viceCaptains)
	}
	if captainID == viceCaptainID {
		return fmt.Errorf("%w: %s is both captain and vice captain", ErrDuplicateCaptaincy, captainID)
	}

	return validateFormation(squad, positionOf, rules)
}

func validateFormation(squad Squad, positionOf PositionLookup, rules Rules) error {
	if positionOf == nil {
		return fmt.Errorf("%w: no position lookup", ErrUnknownPlayerPosition)
	}

	starterGoalkeepers := 0
	for _, pick := range squad.Picks {
		pos, ok := positionOf(pick.PlayerID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, pick.PlayerID)
		}
		if _, known := player.AllPositions[pos]; !known {
			return fmt.Errorf("%w: %s", ErrUnknownPlayerPosition, pos)
		}
		if pos == player.PositionManager {
			return fmt.Errorf("%w: manager %s cannot take a squad slot", ErrInvalidFormation, pick.PlayerID)
		}

		backupSlot := rules.StarterCount + 1
		switch {
		case pick.Slot <= rules.StarterCount:
			if pos == player.PositionGoalkeeper {
				starterGoalkeepers++
			}
		case pick.Slot == backupSlot:
			if pos != player.PositionGoalkeeper {
				return fmt.Errorf("%w: bench slot %d must hold the backup goalkeeper, got %s", ErrInvalidFormation, backupSlot, pos)
			}
		default:
			if pos == player.PositionGoalkeeper {
				return fmt.Errorf("%w: goalkeeper %s in outfield bench slot %d", ErrInvalidFormation, pick.PlayerID, pick.Slot)
			}
		}
	}

	if starterGoalkeepers != 1 {
		return fmt.Errorf("%w: expected 1 starting goalkeeper, got %d", ErrInvalidFormation, starterGoalkeepers)
	}

	return nil
}
