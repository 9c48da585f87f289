package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/scoring"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/logging"
)

const (
	streakLength      = 5
	// hitCost is the points deducted for each transfer beyond the free ones.
	hitCost           = 4
	// differentialShare is the largest league ownership of a differential.
	differentialShare = 0.3
	// recordListLimit caps the lists of single records, such as one-off
	// gameweek scores.
	recordListLimit   = 10
)

type CaptainRecord struct {
	ManagerID               string `json:"manager_id"`
	ManagerName             string `json:"manager_name"`
	CaptainPoints           int    `json:"captain_points"`
	ViceCaptainPoints       int    `json:"vice_captain_points"`
	GameweeksWithViceStepIn int    `json:"gameweeks_with_vice_captain"`
	GameweeksWithoutCaptain int    `json:"gameweeks_without_captain"`
}

type PointsRecord struct {
	ManagerID   string `json:"manager_id"`
	ManagerName string `json:"manager_name"`
	Points      int    `json:"points"`
}

type VanillaRecord struct {
	ManagerID            string `json:"manager_id"`
	ManagerName          string `json:"manager_name"`
	VanillaPoints        int    `json:"vanilla_points"`
	TotalPoints          int    `json:"total_points"`
	ExtraCaptainPoints   int    `json:"extra_captain_points"`
	AutoSubPoints        int    `json:"auto_sub_points"`
	BenchBoostBenchPoint int    `json:"bench_boost_bench_points"`
}

type PlaceCountRecord struct {
	ManagerID   string `json:"manager_id"`
	ManagerName string `json:"manager_name"`
	Gameweeks   int    `json:"gameweeks"`
}

type GapRecord struct {
	ManagerID   string `json:"manager_id"`
	ManagerName string `json:"manager_name"`
	Gameweek    int    `json:"gameweek"`
	PointGap    int    `json:"point_gap"`
}

type LeagueLeaders struct {
	FirstPlace      []PlaceCountRecord `json:"first_place"`
	LastPlace       []PlaceCountRecord `json:"last_place"`
	BiggestLeads    []GapRecord        `json:"biggest_leads"`
	BiggestDeficits []GapRecord        `json:"biggest_deficits"`
}

type StreakRecord struct {
	ManagerID    string  `json:"manager_id"`
	ManagerName  string  `json:"manager_name"`
	Points       int     `json:"points"`
	Average      float64 `json:"average"`
	FromGameweek int     `json:"from_gameweek"`
	ToGameweek   int     `json:"to_gameweek"`
}

type Streaks struct {
	Best  []StreakRecord `json:"best"`
	Worst []StreakRecord `json:"worst"`
}

type PlayerTotalsRecord struct {
	ManagerID        string `json:"manager_id"`
	ManagerName      string `json:"manager_name"`
	GoalsScored      int    `json:"goals_scored"`
	Assists          int    `json:"assists"`
	GoalInvolvements int    `json:"goal_involvements"`
}

type TransferRecord struct {
	ManagerID     string  `json:"manager_id"`
	ManagerName   string  `json:"manager_name"`
	Transfers     int     `json:"transfers"`
	Points        int     `json:"points"`
	AveragePoints float64 `json:"average_points"`
}

type HitsRecord struct {
	ManagerID              string  `json:"manager_id"`
	ManagerName            string  `json:"manager_name"`
	Transfers              int     `json:"transfers"`
	TransfersWithHits      int     `json:"transfers_with_hits"`
	TransferCost           int     `json:"transfer_cost"`
	PointsInWithHits       int     `json:"points_in_with_hits"`
	PointsOutWithHits      int     `json:"points_out_with_hits"`
	PointsEarnedOnHits     int     `json:"points_earned_on_hits"`
	AveragePointsPerHit    float64 `json:"average_points_per_hit"`
	AverageCostPerTransfer float64 `json:"average_cost_per_transfer"`
}

type ChipPointsRecord struct {
	ManagerID       string `json:"manager_id"`
	ManagerName     string `json:"manager_name"`
	ChipPoints      int    `json:"chip_points_excluding_wildcard"`
	TotalChipPoints int    `json:"total_chip_points"`
	WildcardPoints  int    `json:"wildcard_points"`
}

type GameweekPointsRecord struct {
	ManagerID   string `json:"manager_id"`
	ManagerName string `json:"manager_name"`
	Gameweek    int    `json:"gameweek"`
	Points      int    `json:"points"`
	Rank        int    `json:"rank"`
}

// RankRecord holds a manager's best or worst ranks. Zero means no rank was
// recorded.
type RankRecord struct {
	ManagerID    string `json:"manager_id"`
	ManagerName  string `json:"manager_name"`
	GameweekRank int    `json:"gameweek_rank"`
	OverallRank  int    `json:"overall_rank"`
}

// DifferentialRecord sums one manager's points from one lowly owned player.
// Differential points split the player's points between their owners.
type DifferentialRecord struct {
	ManagerID             string  `json:"manager_id"`
	ManagerName           string  `json:"manager_name"`
	PlayerID              string  `json:"player_id"`
	PlayerName            string  `json:"player_name"`
	Gameweeks             int     `json:"gameweeks"`
	TotalPoints           int     `json:"total_points"`
	DiffPoints            float64 `json:"diff_points"`
	AverageDiffPoints     float64 `json:"average_diff_points"`
	BestDiffPoints        float64 `json:"best_diff_points"`
	BestGameweek          int     `json:"best_gameweek"`
	BestOwnershipShare    float64 `json:"best_ownership_share"`
	AverageOwnershipShare float64 `json:"average_ownership_share"`
}

type Differentials struct {
	ByTotal        []DifferentialRecord `json:"by_total"`
	ByAverage      []DifferentialRecord `json:"by_average"`
	ByBestGameweek []DifferentialRecord `json:"by_best_gameweek"`
}

// StatisticsService computes league superlatives from a season view.
type StatisticsService struct {
	rules      fantasy.Rules
	maxWorkers int
	logger     *logging.Logger
}

func NewStatisticsService(cfg EngineConfig, logger *logging.Logger) *StatisticsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatisticsService{
		rules:      cfg.Rules,
		maxWorkers: cfg.MaxWorkers,
		logger:     logger,
	}
}

// CaptainForesight totals the extra points each manager earned through
// captaincy, read from the multipliers recorded on their real picks. A vice
// captain with a recorded multiplier stepped in for a missing captain.
func (s *StatisticsService) CaptainForesight(ctx context.Context, view *season.View) ([]CaptainRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.CaptainForesight")
	defer span.End()

	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	aggregator := scoring.NewAggregator(view.Store())
	latest := view.LatestGameweek().ID
	rows, err := evaluatePerManager(ctx, view.Managers(), s.maxWorkers,
		func(ctx context.Context, item manager.Manager) (CaptainRecord, error) {
			row := CaptainRecord{ManagerID: item.ID, ManagerName: item.Name}
			for _, entry := range item.History {
				if entry.Gameweek > latest || len(entry.Picks) == 0 {
					continue
				}
				if err := ctx.Err(); err != nil {
					return CaptainRecord{}, err
				}

				squad := fantasy.NewSquad(entry.Picks)
				captain, hasCaptain := squad.Captain()
				vice, hasVice := squad.ViceCaptain()
				switch {
				case hasCaptain && captain.Multiplier > fantasy.MultiplierBenched:
					row.CaptainPoints += extraPoints(aggregator, captain, entry.Gameweek)
				case hasVice && vice.Multiplier > fantasy.MultiplierBenched:
					extra := extraPoints(aggregator, vice, entry.Gameweek)
					row.CaptainPoints += extra
					row.ViceCaptainPoints += extra
					row.GameweeksWithViceStepIn++
				default:
					row.GameweeksWithoutCaptain++
				}
			}
			return row, nil
		},
	)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CaptainPoints != rows[j].CaptainPoints {
			return rows[i].CaptainPoints > rows[j].CaptainPoints
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
	return rows, nil
}

// extraPoints is what a multiplier adds on top of the player's own points.
func extraPoints(aggregator scoring.Aggregator, pick fantasy.Pick, gameweek int) int {
	return (pick.Multiplier - 1) * aggregator.Combine(pick.PlayerID, gameweek).TotalPoints
}

// CaptainHindsight ranks managers by their total without captaincy extras.
func (s *StatisticsService) CaptainHindsight(ctx context.Context, view *season.View) ([]PointsRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.CaptainHindsight")
	defer span.End()

	captains, err := s.CaptainForesight(ctx, view)
	if err != nil {
		return nil, err
	}

	rows := make([]PointsRecord, 0, len(captains))
	for _, captain := range captains {
		item, ok := view.Manager(captain.ManagerID)
		if !ok {
			continue
		}
		rows = append(rows, PointsRecord{
			ManagerID:   item.ID,
			ManagerName: item.Name,
			Points:      item.TotalAt(view.LatestGameweek().ID) - captain.CaptainPoints,
		})
	}
	sortPointsRecords(rows)
	return rows, nil
}

// AutoSubPoints totals the points of the substitutions recorded upstream.
func (s *StatisticsService) AutoSubPoints(ctx context.Context, view *season.View) ([]PointsRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.AutoSubPoints")
	defer span.End()

	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	aggregator := scoring.NewAggregator(view.Store())
	latest := view.LatestGameweek().ID
	rows := make([]PointsRecord, 0, len(view.Managers()))
	for _, item := range view.Managers() {
		row := PointsRecord{ManagerID: item.ID, ManagerName: item.Name}
		for _, sub := range item.AutoSubs {
			if sub.Gameweek > latest {
				continue
			}
			row.Points += aggregator.Combine(sub.PlayerInID, sub.Gameweek).TotalPoints
		}
		rows = append(rows, row)
	}
	sortPointsRecords(rows)
	return rows, nil
}

// VanillaStandings strips captaincy extras, auto-sub points and bench boost
// bench points from each manager's total.
func (s *StatisticsService) VanillaStandings(ctx context.Context, view *season.View) ([]VanillaRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.VanillaStandings")
	defer span.End()

	captains, err := s.CaptainForesight(ctx, view)
	if err != nil {
		return nil, err
	}
	autoSubs, err := s.AutoSubPoints(ctx, view)
	if err != nil {
		return nil, err
	}

	captainByManager := make(map[string]int, len(captains))
	for _, row := range captains {
		captainByManager[row.ManagerID] = row.CaptainPoints
	}
	autoSubByManager := make(map[string]int, len(autoSubs))
	for _, row := range autoSubs {
		autoSubByManager[row.ManagerID] = row.Points
	}

	aggregator := scoring.NewAggregator(view.Store())
	latest := view.LatestGameweek().ID
	rows := make([]VanillaRecord, 0, len(view.Managers()))
	for _, item := range view.Managers() {
		benchBoost := 0
		for _, chip := range item.Chips {
			if chip.Name != manager.ChipBenchBoost || chip.Gameweek > latest {
				continue
			}
			entry, ok := item.Entry(chip.Gameweek)
			if !ok {
				continue
			}
			for _, pick := range fantasy.NewSquad(entry.Picks).Bench(s.rules) {
				benchBoost += aggregator.Combine(pick.PlayerID, chip.Gameweek).TotalPoints
			}
		}

		total := item.TotalAt(latest)
		row := VanillaRecord{
			ManagerID:            item.ID,
			ManagerName:          item.Name,
			TotalPoints:          total,
			ExtraCaptainPoints:   captainByManager[item.ID],
			AutoSubPoints:        autoSubByManager[item.ID],
			BenchBoostBenchPoint: benchBoost,
		}
		row.VanillaPoints = total - row.ExtraCaptainPoints - row.AutoSubPoints - row.BenchBoostBenchPoint
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].VanillaPoints != rows[j].VanillaPoints {
			return rows[i].VanillaPoints > rows[j].VanillaPoints
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
	return rows, nil
}

// LeagueLeaders counts first and last places across the historic standings
// and lists the widest gaps at either end of the table.
func (s *StatisticsService) LeagueLeaders(ctx context.Context, view *season.View) (LeagueLeaders, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.LeagueLeaders")
	defer span.End()

	if view == nil {
		return LeagueLeaders{}, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	firstCount := make(map[string]int)
	lastCount := make(map[string]int)
	var out LeagueLeaders

	finished := view.FinishedGameweeks()
	for idx, standing := range view.HistoricStandings() {
		if len(standing) == 0 {
			continue
		}
		gameweek := finished[idx]
		first := standing[0]
		last := standing[len(standing)-1]
		firstCount[first.ManagerID]++
		lastCount[last.ManagerID]++

		if len(standing) < 2 {
			continue
		}
		out.BiggestLeads = append(out.BiggestLeads, GapRecord{
			ManagerID:   first.ManagerID,
			ManagerName: first.Name,
			Gameweek:    gameweek,
			PointGap:    first.TotalPoints - standing[1].TotalPoints,
		})
		out.BiggestDeficits = append(out.BiggestDeficits, GapRecord{
			ManagerID:   last.ManagerID,
			ManagerName: last.Name,
			Gameweek:    gameweek,
			PointGap:    last.TotalPoints - standing[len(standing)-2].TotalPoints,
		})
	}

	for _, item := range view.Managers() {
		out.FirstPlace = append(out.FirstPlace, PlaceCountRecord{ManagerID: item.ID, ManagerName: item.Name, Gameweeks: firstCount[item.ID]})
		out.LastPlace = append(out.LastPlace, PlaceCountRecord{ManagerID: item.ID, ManagerName: item.Name, Gameweeks: lastCount[item.ID]})
	}
	sortPlaceCounts(out.FirstPlace)
	sortPlaceCounts(out.LastPlace)
	sort.SliceStable(out.BiggestLeads, func(i, j int) bool {
		return out.BiggestLeads[i].PointGap > out.BiggestLeads[j].PointGap
	})
	sort.SliceStable(out.BiggestDeficits, func(i, j int) bool {
		return out.BiggestDeficits[i].PointGap < out.BiggestDeficits[j].PointGap
	})

	return out, nil
}

// Streaks finds each manager's best and worst five-gameweek stretch.
func (s *StatisticsService) Streaks(ctx context.Context, view *season.View) (Streaks, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.Streaks")
	defer span.End()

	if view == nil {
		return Streaks{}, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	first := view.FirstGameweek()
	latest := view.LatestGameweek().ID
	var out Streaks
	if latest-first+1 < streakLength {
		return out, nil
	}

	for _, item := range view.Managers() {
		pointsByGameweek := make(map[int]int, len(item.History))
		for _, entry := range item.History {
			pointsByGameweek[entry.Gameweek] = entry.Points
		}

		var best, worst StreakRecord
		for from := first; from+streakLength-1 <= latest; from++ {
			window := 0
			for gw := from; gw < from+streakLength; gw++ {
				window += pointsByGameweek[gw]
			}
			candidate := StreakRecord{
				ManagerID:    item.ID,
				ManagerName:  item.Name,
				Points:       window,
				Average:      float64(window) / streakLength,
				FromGameweek: from,
				ToGameweek:   from + streakLength - 1,
			}
			if from == first || window > best.Points {
				best = candidate
			}
			if from == first || window < worst.Points {
				worst = candidate
			}
		}
		out.Best = append(out.Best, best)
		out.Worst = append(out.Worst, worst)
	}

	sort.SliceStable(out.Best, func(i, j int) bool {
		return out.Best[i].Points > out.Best[j].Points
	})
	sort.SliceStable(out.Worst, func(i, j int) bool {
		return out.Worst[i].Points < out.Worst[j].Points
	})
	return out, nil
}

// PlayerTotals sums goals and assists of the players each manager fielded.
func (s *StatisticsService) PlayerTotals(ctx context.Context, view *season.View) ([]PlayerTotalsRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.PlayerTotals")
	defer span.End()

	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	aggregator := scoring.NewAggregator(view.Store())
	latest := view.LatestGameweek().ID
	rows := make([]PlayerTotalsRecord, 0, len(view.Managers()))
	for _, item := range view.Managers() {
		row := PlayerTotalsRecord{ManagerID: item.ID, ManagerName: item.Name}
		for _, entry := range item.History {
			if entry.Gameweek > latest {
				continue
			}
			for _, pick := range entry.Picks {
				if pick.Multiplier < fantasy.MultiplierPlaying {
					continue
				}
				result := aggregator.Combine(pick.PlayerID, entry.Gameweek)
				row.GoalsScored += result.GoalsScored
				row.Assists += result.Assists
			}
		}
		row.GoalInvolvements = row.GoalsScored + row.Assists
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].GoalInvolvements != rows[j].GoalInvolvements {
			return rows[i].GoalInvolvements > rows[j].GoalInvolvements
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
	return rows, nil
}

// BestTransfers totals the points players scored in the gameweek they were
// transferred in. Players sold again before the deadline are skipped.
func (s *StatisticsService) BestTransfers(ctx context.Context, view *season.View) ([]TransferRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.BestTransfers")
	defer span.End()

	return s.transferPoints(view, func(transfer manager.Transfer, picked []string) (string, bool) {
		return transfer.PlayerInID, slices.Contains(picked, transfer.PlayerInID)
	})
}

// WorstTransfers totals the points players scored in the gameweek they were
// transferred out. Players bought back before the deadline are skipped.
func (s *StatisticsService) WorstTransfers(ctx context.Context, view *season.View) ([]TransferRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.WorstTransfers")
	defer span.End()

	return s.transferPoints(view, func(transfer manager.Transfer, picked []string) (string, bool) {
		return transfer.PlayerOutID, !slices.Contains(picked, transfer.PlayerOutID)
	})
}

// transferPoints sums the points of the player chosen by counted for every
// transfer up to the latest gameweek.
func (s *StatisticsService) transferPoints(view *season.View, counted func(manager.Transfer, []string) (string, bool)) ([]TransferRecord, error) {
	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	aggregator := scoring.NewAggregator(view.Store())
	latest := view.LatestGameweek().ID
	rows := make([]TransferRecord, 0, len(view.Managers()))
	for _, item := range view.Managers() {
		row := TransferRecord{ManagerID: item.ID, ManagerName: item.Name}
		for _, transfer := range item.Transfers {
			if transfer.Gameweek > latest {
				continue
			}
			entry, ok := item.Entry(transfer.Gameweek)
			if !ok {
				continue
			}
			playerID, ok := counted(transfer, fantasy.NewSquad(entry.Picks).PlayerIDs())
			if !ok {
				continue
			}
			row.Points += aggregator.Combine(playerID, transfer.Gameweek).TotalPoints
			row.Transfers++
		}
		if row.Transfers > 0 {
			row.AveragePoints = float64(row.Points) / float64(row.Transfers)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
	return rows, nil
}

// Hits weighs the points-hit transfers of each manager. The latest transfers
// of a gameweek are the ones paid for, each costing hitCost points.
func (s *StatisticsService) Hits(ctx context.Context, view *season.View) ([]HitsRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.Hits")
	defer span.End()

	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	aggregator := scoring.NewAggregator(view.Store())
	latest := view.LatestGameweek().ID
	rows := make([]HitsRecord, 0, len(view.Managers()))
	for _, item := range view.Managers() {
		row := HitsRecord{ManagerID: item.ID, ManagerName: item.Name}
		for _, entry := range item.History {
			if entry.Gameweek > latest {
				continue
			}
			row.Transfers += entry.EventTransfers
			row.TransferCost += entry.EventTransfersCost
			if entry.EventTransfersCost <= 0 {
				continue
			}

			made := gameweekTransfers(item, entry.Gameweek)
			hits := min(entry.EventTransfersCost/hitCost, len(made))
			for _, transfer := range made[:hits] {
				in := aggregator.Combine(transfer.PlayerInID, entry.Gameweek).TotalPoints
				out := aggregator.Combine(transfer.PlayerOutID, entry.Gameweek).TotalPoints
				row.TransfersWithHits++
				row.PointsInWithHits += in
				row.PointsOutWithHits += out
				row.PointsEarnedOnHits += in - out - hitCost
			}
		}
		if row.TransfersWithHits > 0 {
			row.AveragePointsPerHit = float64(row.PointsEarnedOnHits) / float64(row.TransfersWithHits)
		}
		if row.Transfers > 0 {
			row.AverageCostPerTransfer = float64(row.TransferCost) / float64(row.Transfers)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PointsEarnedOnHits != rows[j].PointsEarnedOnHits {
			return rows[i].PointsEarnedOnHits > rows[j].PointsEarnedOnHits
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
	return rows, nil
}

// gameweekTransfers lists the manager's transfers for one gameweek, newest first.
func gameweekTransfers(item manager.Manager, gameweek int) []manager.Transfer {
	out := make([]manager.Transfer, 0, len(item.Transfers))
	for _, transfer := range item.Transfers {
		if transfer.Gameweek == gameweek {
			out = append(out, transfer)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MadeAt.After(out[j].MadeAt)
	})
	return out
}

// BenchPoints totals the points left on the bench, as recorded upstream after
// automatic substitutions.
func (s *StatisticsService) BenchPoints(ctx context.Context, view *season.View) ([]PointsRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.BenchPoints")
	defer span.End()

	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	latest := view.LatestGameweek().ID
	rows := make([]PointsRecord, 0, len(view.Managers()))
	for _, item := range view.Managers() {
		row := PointsRecord{ManagerID: item.ID, ManagerName: item.Name}
		for _, entry := range item.History {
			if entry.Gameweek <= latest {
				row.Points += entry.PointsOnBench
			}
		}
		rows = append(rows, row)
	}
	sortPointsRecords(rows)
	return rows, nil
}

// ChipPoints totals gameweek points scored while a chip was active. Wildcard
// gameweeks are reported on their own.
func (s *StatisticsService) ChipPoints(ctx context.Context, view *season.View) ([]ChipPointsRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.ChipPoints")
	defer span.End()

	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	latest := view.LatestGameweek().ID
	rows := make([]ChipPointsRecord, 0, len(view.Managers()))
	for _, item := range view.Managers() {
		row := ChipPointsRecord{ManagerID: item.ID, ManagerName: item.Name}
		for _, entry := range item.History {
			if entry.Gameweek > latest {
				continue
			}
			chip, ok := item.ChipIn(entry.Gameweek)
			if !ok {
				continue
			}
			row.TotalChipPoints += entry.Points
			if chip == manager.ChipWildcard {
				row.WildcardPoints += entry.Points
			} else {
				row.ChipPoints += entry.Points
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ChipPoints != rows[j].ChipPoints {
			return rows[i].ChipPoints > rows[j].ChipPoints
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
	return rows, nil
}

// MostGameweekPoints lists the best single gameweek scores in the league.
func (s *StatisticsService) MostGameweekPoints(ctx context.Context, view *season.View) ([]GameweekPointsRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.MostGameweekPoints")
	defer span.End()

	rows, err := gameweekScores(view, false)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	return rows[:min(len(rows), recordListLimit)], nil
}

// LeastGameweekPoints lists the worst single gameweek scores. Gameweeks
// without a rank are still in progress and skipped.
func (s *StatisticsService) LeastGameweekPoints(ctx context.Context, view *season.View) ([]GameweekPointsRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.LeastGameweekPoints")
	defer span.End()

	rows, err := gameweekScores(view, true)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points < rows[j].Points
	})
	return rows[:min(len(rows), recordListLimit)], nil
}

// gameweekScores flattens every manager's history up to the latest gameweek
// in gameweek then name order.
func gameweekScores(view *season.View, rankedOnly bool) ([]GameweekPointsRecord, error) {
	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	latest := view.LatestGameweek().ID
	var rows []GameweekPointsRecord
	for _, item := range view.Managers() {
		for _, entry := range item.History {
			if entry.Gameweek > latest || (rankedOnly && entry.Rank == 0) {
				continue
			}
			rows = append(rows, GameweekPointsRecord{
				ManagerID:   item.ID,
				ManagerName: item.Name,
				Gameweek:    entry.Gameweek,
				Points:      entry.Points,
				Rank:        entry.Rank,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Gameweek != rows[j].Gameweek {
			return rows[i].Gameweek < rows[j].Gameweek
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
	return rows, nil
}

// HighestRanks reports each manager's best gameweek and overall rank, best
// overall rank first.
func (s *StatisticsService) HighestRanks(ctx context.Context, view *season.View) ([]RankRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.HighestRanks")
	defer span.End()

	return rankExtremes(view, func(candidate, current int) bool {
		return current == 0 || candidate < current
	})
}

// LowestRanks reports each manager's worst gameweek and overall rank, worst
// overall rank first.
func (s *StatisticsService) LowestRanks(ctx context.Context, view *season.View) ([]RankRecord, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.LowestRanks")
	defer span.End()

	rows, err := rankExtremes(view, func(candidate, current int) bool {
		return candidate > current
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].OverallRank > rows[j].OverallRank
	})
	return rows, nil
}

// rankExtremes keeps, per manager, the recorded ranks preferred by better.
// Rows come back best overall rank first with unranked managers last.
func rankExtremes(view *season.View, better func(candidate, current int) bool) ([]RankRecord, error) {
	if view == nil {
		return nil, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	latest := view.LatestGameweek().ID
	rows := make([]RankRecord, 0, len(view.Managers()))
	for _, item := range view.Managers() {
		row := RankRecord{ManagerID: item.ID, ManagerName: item.Name}
		for _, entry := range item.History {
			if entry.Gameweek > latest {
				continue
			}
			if entry.Rank > 0 && better(entry.Rank, row.GameweekRank) {
				row.GameweekRank = entry.Rank
			}
			if entry.OverallRank > 0 && better(entry.OverallRank, row.OverallRank) {
				row.OverallRank = entry.OverallRank
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		left, right := rows[i].OverallRank, rows[j].OverallRank
		if (left == 0) != (right == 0) {
			return right == 0
		}
		if left != right {
			return left < right
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
	return rows, nil
}

// BestDifferentials finds the lowly owned players that earned each manager
// the most. A player counts as a differential in a gameweek when no more than
// differentialShare of the league owned them.
func (s *StatisticsService) BestDifferentials(ctx context.Context, view *season.View) (Differentials, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatisticsService.BestDifferentials")
	defer span.End()

	if view == nil {
		return Differentials{}, fmt.Errorf("%w: season view is required", ErrInvalidInput)
	}

	type ownershipKey struct {
		playerID string
		gameweek int
	}
	shares := make(map[ownershipKey]float64)
	share := func(playerID string, gameweek int) float64 {
		key := ownershipKey{playerID: playerID, gameweek: gameweek}
		value, ok := shares[key]
		if !ok {
			value = s.OwnershipShare(view, playerID, gameweek)
			shares[key] = value
		}
		return value
	}

	aggregator := scoring.NewAggregator(view.Store())
	latest := view.LatestGameweek().ID
	managers := float64(len(view.Managers()))
	var rows []DifferentialRecord
	for _, item := range view.Managers() {
		byPlayer := make(map[string]int)
		for _, entry := range item.History {
			if entry.Gameweek > latest {
				continue
			}
			for _, pick := range fantasy.NewSquad(entry.Picks).Picks {
				if pick.Multiplier < fantasy.MultiplierPlaying {
					continue
				}
				ownership := share(pick.PlayerID, entry.Gameweek)
				if ownership > differentialShare {
					continue
				}

				points := pick.Multiplier * aggregator.Combine(pick.PlayerID, entry.Gameweek).TotalPoints
				diff := float64(points) / (managers * ownership)

				idx, ok := byPlayer[pick.PlayerID]
				if !ok {
					idx = len(rows)
					byPlayer[pick.PlayerID] = idx
					row := DifferentialRecord{
						ManagerID:          item.ID,
						ManagerName:        item.Name,
						PlayerID:           pick.PlayerID,
						BestDiffPoints:     diff,
						BestGameweek:       entry.Gameweek,
						BestOwnershipShare: ownership,
					}
					if known, found := view.Store().Player(pick.PlayerID); found {
						row.PlayerName = known.WebName
					}
					rows = append(rows, row)
				}

				row := &rows[idx]
				row.Gameweeks++
				row.TotalPoints += points
				row.DiffPoints += diff
				row.AverageOwnershipShare += ownership
				if diff > row.BestDiffPoints {
					row.BestDiffPoints = diff
					row.BestGameweek = entry.Gameweek
					row.BestOwnershipShare = ownership
				}
			}
		}
	}
	for idx := range rows {
		rows[idx].AverageDiffPoints = rows[idx].DiffPoints / float64(rows[idx].Gameweeks)
		rows[idx].AverageOwnershipShare /= float64(rows[idx].Gameweeks)
	}

	return Differentials{
		ByTotal:        topDifferentials(rows, func(row DifferentialRecord) float64 { return row.DiffPoints }),
		ByAverage:      topDifferentials(rows, func(row DifferentialRecord) float64 { return row.AverageDiffPoints }),
		ByBestGameweek: topDifferentials(rows, func(row DifferentialRecord) float64 { return row.BestDiffPoints }),
	}, nil
}

func topDifferentials(rows []DifferentialRecord, score func(DifferentialRecord) float64) []DifferentialRecord {
	out := slices.Clone(rows)
	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i]) > score(out[j])
	})
	return out[:min(len(out), recordListLimit)]
}

// OwnershipShare is the fraction of managers holding the player in a gameweek.
func (s *StatisticsService) OwnershipShare(view *season.View, playerID string, gameweek int) float64 {
	if view == nil || len(view.Managers()) == 0 {
		return 0
	}

	owners := 0
	for _, item := range view.Managers() {
		entry, ok := item.Entry(gameweek)
		if !ok {
			continue
		}
		if slices.Contains(fantasy.NewSquad(entry.Picks).PlayerIDs(), playerID) {
			owners++
		}
	}
	return float64(owners) / float64(len(view.Managers()))
}

func sortPointsRecords(rows []PointsRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
}

func sortPlaceCounts(rows []PlaceCountRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Gameweeks != rows[j].Gameweeks {
			return rows[i].Gameweeks > rows[j].Gameweeks
		}
		return rows[i].ManagerName < rows[j].ManagerName
	})
}
