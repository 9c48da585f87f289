package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/logging"
)

const (
	StatAll                 = "all"
	StatOpeningSquads       = "opening-squads"
	StatCaptainForesight    = "captain-foresight"
	StatCaptainHindsight    = "captain-hindsight"
	StatAutoSubs            = "auto-subs"
	StatVanilla             = "vanilla"
	StatLeagueLeaders       = "league-leaders"
	StatStreaks             = "streaks"
	StatPlayerTotals        = "player-totals"
	StatBestTransfers       = "best-transfers"
	StatWorstTransfers      = "worst-transfers"
	StatHits                = "hits"
	StatBenchPoints         = "bench-points"
	StatChipPoints          = "chip-points"
	StatMostGameweekPoints  = "most-gameweek-points"
	StatLeastGameweekPoints = "least-gameweek-points"
	StatHighestRank         = "highest-rank"
	StatLowestRank          = "lowest-rank"
	StatDifferentials       = "differentials"
)

// AllStats lists every statistic in report order.
var AllStats = []string{
	StatOpeningSquads,
	StatCaptainForesight,
	StatCaptainHindsight,
	StatAutoSubs,
	StatVanilla,
	StatLeagueLeaders,
	StatStreaks,
	StatPlayerTotals,
	StatBestTransfers,
	StatWorstTransfers,
	StatHits,
	StatBenchPoints,
	StatChipPoints,
	StatMostGameweekPoints,
	StatLeastGameweekPoints,
	StatHighestRank,
	StatLowestRank,
	StatDifferentials,
}

type AnalyzeInput struct {
	Season   string   `validate:"required"`
	LeagueID int64    `validate:"gt=0"`
	Live     bool     `validate:"-"`
	Stats    []string `validate:"omitempty,dive,oneof=all opening-squads captain-foresight captain-hindsight auto-subs vanilla league-leaders streaks player-totals best-transfers worst-transfers hits bench-points chip-points most-gameweek-points least-gameweek-points highest-rank lowest-rank differentials"`
}

// Report is the JSON document written by the analyze command. Statistics
// that were not requested are omitted.
type Report struct {
	Season              string                 `json:"season"`
	LeagueID            int64                  `json:"league_id"`
	LeagueName          string                 `json:"league_name"`
	LatestGameweek      int                    `json:"latest_gameweek"`
	GeneratedAt         time.Time              `json:"generated_at"`
	OpeningSquads       []OpeningSquadStanding `json:"opening_squads,omitempty"`
	CaptainPoints       []CaptainRecord        `json:"captain_foresight,omitempty"`
	Hindsight           []PointsRecord         `json:"captain_hindsight,omitempty"`
	AutoSubs            []PointsRecord         `json:"auto_subs,omitempty"`
	Vanilla             []VanillaRecord        `json:"vanilla,omitempty"`
	LeagueLeaders       *LeagueLeaders         `json:"league_leaders,omitempty"`
	Streaks             *Streaks               `json:"streaks,omitempty"`
	PlayerTotals        []PlayerTotalsRecord   `json:"player_totals,omitempty"`
	BestTransfers       []TransferRecord       `json:"best_transfers,omitempty"`
	WorstTransfers      []TransferRecord       `json:"worst_transfers,omitempty"`
	Hits                []HitsRecord           `json:"hits,omitempty"`
	BenchPoints         []PointsRecord         `json:"bench_points,omitempty"`
	ChipPoints          []ChipPointsRecord     `json:"chip_points,omitempty"`
	MostGameweekPoints  []GameweekPointsRecord `json:"most_gameweek_points,omitempty"`
	LeastGameweekPoints []GameweekPointsRecord `json:"least_gameweek_points,omitempty"`
	HighestRanks        []RankRecord           `json:"highest_rank,omitempty"`
	LowestRanks         []RankRecord           `json:"lowest_rank,omitempty"`
	Differentials       *Differentials         `json:"differentials,omitempty"`
}

// AnalysisService loads a league snapshot and runs the requested statistics.
type AnalysisService struct {
	repo       season.Repository
	simulation *SimulationService
	statistics *StatisticsService
	logger     *logging.Logger
	now        func() time.Time
}

func NewAnalysisService(
	repo season.Repository,
	simulation *SimulationService,
	statistics *StatisticsService,
	logger *logging.Logger,
) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AnalysisService{
		repo:       repo,
		simulation: simulation,
		statistics: statistics,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AnalysisService) Analyze(ctx context.Context, input AnalyzeInput) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Analyze")
	defer span.End()

	if err := validateInput(ctx, input); err != nil {
		return Report{}, err
	}

	snapshot, err := s.repo.Load(ctx, input.Season, input.LeagueID)
	if err != nil {
		if errors.Is(err, season.ErrSnapshotNotFound) {
			return Report{}, fmt.Errorf("%w: no snapshot for league %s, run fetch first", ErrNotFound, season.Key(input.Season, input.LeagueID))
		}
		return Report{}, fmt.Errorf("load snapshot %s: %w", season.Key(input.Season, input.LeagueID), err)
	}

	view, err := season.NewView(snapshot, input.Live)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	report := Report{
		Season:         view.Season(),
		LeagueID:       view.League().ID,
		LeagueName:     view.League().Name,
		LatestGameweek: view.LatestGameweek().ID,
		GeneratedAt:    s.now().UTC(),
	}

	for _, stat := range selectedStats(input.Stats) {
		started := time.Now()
		if err := s.runStat(ctx, stat, view, &report); err != nil {
			return Report{}, fmt.Errorf("compute %s: %w", stat, err)
		}
		s.logger.DebugContext(ctx, "statistic computed",
			"stat", stat,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	}

	s.logger.InfoContext(ctx, "league analysed",
		"season", report.Season,
		"league_id", report.LeagueID,
		"latest_gameweek", report.LatestGameweek,
		"managers", len(view.Managers()),
	)
	return report, nil
}

func (s *AnalysisService) runStat(ctx context.Context, stat string, view *season.View, report *Report) error {
	var err error
	switch stat {
	case StatOpeningSquads:
		report.OpeningSquads, err = s.simulation.OpeningSquadStandings(ctx, view)
	case StatCaptainForesight:
		report.CaptainPoints, err = s.statistics.CaptainForesight(ctx, view)
	case StatCaptainHindsight:
		report.Hindsight, err = s.statistics.CaptainHindsight(ctx, view)
	case StatAutoSubs:
		report.AutoSubs, err = s.statistics.AutoSubPoints(ctx, view)
	case StatVanilla:
		report.Vanilla, err = s.statistics.VanillaStandings(ctx, view)
	case StatLeagueLeaders:
		var leaders LeagueLeaders
		if len(view.Managers()) < 2 {
			return nil
		}
		leaders, err = s.statistics.LeagueLeaders(ctx, view)
		report.LeagueLeaders = &leaders
	case StatStreaks:
		var streaks Streaks
		streaks, err = s.statistics.Streaks(ctx, view)
		report.Streaks = &streaks
	case StatPlayerTotals:
		report.PlayerTotals, err = s.statistics.PlayerTotals(ctx, view)
	case StatBestTransfers:
		report.BestTransfers, err = s.statistics.BestTransfers(ctx, view)
	case StatWorstTransfers:
		report.WorstTransfers, err = s.statistics.WorstTransfers(ctx, view)
	case StatHits:
		report.Hits, err = s.statistics.Hits(ctx, view)
	case StatBenchPoints:
		report.BenchPoints, err = s.statistics.BenchPoints(ctx, view)
	case StatChipPoints:
		report.ChipPoints, err = s.statistics.ChipPoints(ctx, view)
	case StatMostGameweekPoints:
		report.MostGameweekPoints, err = s.statistics.MostGameweekPoints(ctx, view)
	case StatLeastGameweekPoints:
		report.LeastGameweekPoints, err = s.statistics.LeastGameweekPoints(ctx, view)
	case StatHighestRank:
		report.HighestRanks, err = s.statistics.HighestRanks(ctx, view)
	case StatLowestRank:
		report.LowestRanks, err = s.statistics.LowestRanks(ctx, view)
	case StatDifferentials:
		var differentials Differentials
		differentials, err = s.statistics.BestDifferentials(ctx, view)
		report.Differentials = &differentials
	default:
		return fmt.Errorf("%w: unknown statistic %q", ErrInvalidInput, stat)
	}
	return err
}

// selectedStats expands "all" and drops duplicates, keeping report order.
func selectedStats(requested []string) []string {
	if len(requested) == 0 {
		return AllStats
	}

	wanted := make(map[string]struct{}, len(requested))
	for _, stat := range requested {
		if stat == StatAll {
			return AllStats
		}
		wanted[stat] = struct{}{}
	}

	out := make([]string, 0, len(wanted))
	for _, stat := range AllStats {
		if _, ok := wanted[stat]; ok {
			out = append(out, stat)
		}
	}
	return out
}
