package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/scoring"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

// EngineConfig carries the scoring rules and fan-out used by analysis services.
type EngineConfig struct {
	Rules      fantasy.Rules
	MaxWorkers int
}

// OpeningSquadStanding is a manager's season total had they kept their
// opening-gameweek squad unchanged.
type OpeningSquadStanding struct {
	ManagerID         string `json:"manager_id"`
	ManagerName       string `json:"manager_name"`
	TeamName          string `json:"team_name"`
	TotalPoints       int    `json:"total_points"`
	CaptainPoints     int    `json:"captain_points"`
	ViceCaptainPoints int    `json:"vice_captain_points"`
	AutoSubPoints     int    `json:"auto_sub_points"`
	Gameweeks         int    `json:"gameweeks"`
	Squad             string `json:"squad"`
}

type SimulationService struct {
	rules      fantasy.Rules
	maxWorkers int
	logger     *logging.Logger
}

func NewSimulationService(cfg EngineConfig, logger *logging.Logger) *SimulationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SimulationService{
		rules:      cfg.Rules,
		maxWorkers: cfg.MaxWorkers,
		logger:     logger,
	}
}

func (s *SimulationService) OpeningSquadStandings(ctx context.Context, view *season.View) ([]OpeningSquadStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.OpeningSquadStandings")
	defer span.End()

	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	evaluator := scoring.NewEvaluator(view.Store(), s.rules)
	rows, err := evaluatePerManager(ctx, view.Managers(), s.maxWorkers,
		func(ctx context.Context, item manager.Manager) (OpeningSquadStanding, error) {
			return s.simulateOpeningSquad(ctx, evaluator, view, item)
		},
	)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})

	s.logger.InfoContext(ctx, "opening squad standings computed",
		"season", view.Season(),
		"league_id", view.League().ID,
		"managers", len(rows),
		"gameweeks", len(view.FinishedGameweeks()),
	)
	return rows, nil
}

func (s *SimulationService) simulateOpeningSquad(
	ctx context.Context,
	evaluator *scoring.Evaluator,
	view *season.View,
	item manager.Manager,
) (OpeningSquadStanding, error) {
	row := OpeningSquadStanding{
		ManagerID:   item.ID,
		ManagerName: item.Name,
		TeamName:    item.TeamName,
	}

	opening := view.FirstGameweek()
	entry, ok := item.Entry(opening)
	if !ok || len(entry.Picks) == 0 {
		s.logger.DebugContext(ctx, "manager has no opening squad", "manager_id", item.ID, "gameweek", opening)
		return row, nil
	}

	squad := fantasy.NewSquad(entry.Picks).WithStandardCaptaincy(s.rules)
	pointsByPlayer := make(map[string]int, len(squad.Picks))
	for _, gameweek := range view.FinishedGameweeks() {
		if err := ctx.Err(); err != nil {
			return OpeningSquadStanding{}, err
		}

		outcome, err := evaluator.Evaluate(squad, gameweek)
		if err != nil {
			return OpeningSquadStanding{}, fmt.Errorf("simulate opening squad for manager %s: %w", item.ID, err)
		}

		row.TotalPoints += outcome.TotalPoints
		row.CaptainPoints += outcome.CaptainPoints
		row.ViceCaptainPoints += outcome.ViceCaptainPoints
		row.AutoSubPoints += outcome.AutoSubPoints
		row.Gameweeks++
		for playerID, points := range outcome.PlayerPoints {
			pointsByPlayer[playerID] += points
		}
		if outcome.Captaincy.ExtraPoints != 0 {
			pointsByPlayer[outcome.Captaincy.ScorerID] += outcome.Captaincy.ExtraPoints
		}
	}

	row.Squad = renderSquad(squad, view.Store(), pointsByPlayer, s.rules)
	return row, nil
}

// renderSquad prints starters one position line at a time, then a "-" line
// and the bench, each player followed by their points.
func renderSquad(squad fantasy.Squad, store *season.RecordStore, points map[string]int, rules fantasy.Rules) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	var previous player.Position
	for idx, pick := range squad.Picks {
		name := pick.PlayerID
		var pos player.Position
		if item, ok := store.Player(pick.PlayerID); ok {
			name = item.WebName
			pos = item.Position
		}

		switch {
		case idx == rules.StarterCount:
			_, _ = buf.WriteString("\n-\n")
		case idx > 0 && idx < rules.StarterCount && pos != previous:
			_ = buf.WriteByte('\n')
		case idx > 0:
			_ = buf.WriteByte(' ')
		}
		previous = pos

		_, _ = buf.WriteString(name)
		switch {
		case pick.IsCaptain:
			_, _ = buf.WriteString("(C)")
		case pick.IsViceCaptain:
			_, _ = buf.WriteString("(VC)")
		}
		_, _ = buf.WriteString(" (" + strconv.Itoa(points[pick.PlayerID]) + ")")
	}

	return buf.String()
}
