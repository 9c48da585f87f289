package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/logging"
)

func newTestStatisticsService() *StatisticsService {
	return NewStatisticsService(testEngineConfig(), logging.NewNop())
}

func TestStatisticsService_CaptainForesight(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().CaptainForesight(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("CaptainForesight error: %v", err)
	}

	want := []CaptainRecord{
		{ManagerID: "100", ManagerName: "Alice", CaptainPoints: 8, ViceCaptainPoints: 2, GameweeksWithViceStepIn: 1},
		{ManagerID: "200", ManagerName: "Bob", CaptainPoints: 4},
		{ManagerID: "300", ManagerName: "Carol"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected captain records (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_CaptainForesightCountsBlankCaptaincy(t *testing.T) {
	t.Parallel()

	snapshot := fixtureSnapshot()
	// Haaland captains and Watkins, who never leaves the bench, is vice. Neither
	// carries a multiplier once Haaland misses the gameweek.
	snapshot.Managers[0].History[1].Picks = withMultipliers(fixturePicks("10", "15", false), map[string]int{
		"10": fantasy.MultiplierBenched,
		"13": fantasy.MultiplierPlaying,
	})

	view, err := season.NewView(snapshot, false)
	if err != nil {
		t.Fatalf("NewView error: %v", err)
	}

	got, err := newTestStatisticsService().CaptainForesight(context.Background(), view)
	if err != nil {
		t.Fatalf("CaptainForesight error: %v", err)
	}
	for _, row := range got {
		if row.ManagerID != "100" {
			continue
		}
		if row.GameweeksWithoutCaptain != 1 || row.CaptainPoints != 6 {
			t.Fatalf("unexpected record: got=%+v want 1 blank gameweek and 6 points", row)
		}
		return
	}
	t.Fatalf("manager 100 missing from %+v", got)
}

func TestStatisticsService_CaptainForesightPaysBenchBoostViceCaptain(t *testing.T) {
	t.Parallel()

	snapshot := fixtureSnapshot()
	// Bob plays bench boost in gameweek 2 with Haaland as captain and the bench
	// midfielder Palmer as vice. Haaland misses out, so the recorded picks
	// double Palmer from the bench.
	picks := fixturePicks("10", "14", true)
	snapshot.Managers[1].History[1].Picks = withMultipliers(picks, map[string]int{
		"10": fantasy.MultiplierBenched,
		"14": fantasy.MultiplierCaptain,
	})
	snapshot.Managers[1].Chips = append(snapshot.Managers[1].Chips, manager.ChipUsage{Gameweek: 2, Name: manager.ChipBenchBoost})
	snapshot.Players["14"] = player.Player{
		ID:       "14",
		WebName:  "Palmer",
		Position: player.PositionMidfielder,
		History: []player.FixtureResult{
			{Gameweek: 1, FixtureID: 1, Minutes: 90, TotalPoints: 2},
			{Gameweek: 2, FixtureID: 11, Minutes: 90, TotalPoints: 8},
		},
	}

	view, err := season.NewView(snapshot, false)
	if err != nil {
		t.Fatalf("NewView error: %v", err)
	}

	got, err := newTestStatisticsService().CaptainForesight(context.Background(), view)
	if err != nil {
		t.Fatalf("CaptainForesight error: %v", err)
	}

	want := CaptainRecord{
		ManagerID:               "200",
		ManagerName:             "Bob",
		CaptainPoints:           10,
		ViceCaptainPoints:       8,
		GameweeksWithViceStepIn: 1,
	}
	for _, row := range got {
		if row.ManagerID != want.ManagerID {
			continue
		}
		if diff := cmp.Diff(want, row); diff != "" {
			t.Fatalf("unexpected bench boost captaincy (-want +got):\n%s", diff)
		}
		return
	}
	t.Fatalf("manager 200 missing from %+v", got)
}

func TestStatisticsService_CaptainHindsight(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().CaptainHindsight(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("CaptainHindsight error: %v", err)
	}

	want := []PointsRecord{
		{ManagerID: "200", ManagerName: "Bob", Points: 56},
		{ManagerID: "300", ManagerName: "Carol", Points: 50},
		{ManagerID: "100", ManagerName: "Alice", Points: 48},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected hindsight standings (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_AutoSubPoints(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().AutoSubPoints(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("AutoSubPoints error: %v", err)
	}

	want := []PointsRecord{
		{ManagerID: "100", ManagerName: "Alice", Points: 2},
		{ManagerID: "200", ManagerName: "Bob", Points: 2},
		{ManagerID: "300", ManagerName: "Carol", Points: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected auto-sub points (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_VanillaStandings(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().VanillaStandings(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("VanillaStandings error: %v", err)
	}

	want := []VanillaRecord{
		{ManagerID: "300", ManagerName: "Carol", VanillaPoints: 50, TotalPoints: 50},
		{ManagerID: "100", ManagerName: "Alice", VanillaPoints: 46, TotalPoints: 56, ExtraCaptainPoints: 8, AutoSubPoints: 2},
		{ManagerID: "200", ManagerName: "Bob", VanillaPoints: 46, TotalPoints: 60, ExtraCaptainPoints: 4, AutoSubPoints: 2, BenchBoostBenchPoint: 8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected vanilla standings (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_LeagueLeaders(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().LeagueLeaders(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("LeagueLeaders error: %v", err)
	}

	want := LeagueLeaders{
		FirstPlace: []PlaceCountRecord{
			{ManagerID: "200", ManagerName: "Bob", Gameweeks: 1},
			{ManagerID: "300", ManagerName: "Carol", Gameweeks: 1},
			{ManagerID: "100", ManagerName: "Alice", Gameweeks: 0},
		},
		LastPlace: []PlaceCountRecord{
			{ManagerID: "100", ManagerName: "Alice", Gameweeks: 1},
			{ManagerID: "300", ManagerName: "Carol", Gameweeks: 1},
			{ManagerID: "200", ManagerName: "Bob", Gameweeks: 0},
		},
		BiggestLeads: []GapRecord{
			{ManagerID: "300", ManagerName: "Carol", Gameweek: 1, PointGap: 4},
			{ManagerID: "200", ManagerName: "Bob", Gameweek: 2, PointGap: 4},
		},
		BiggestDeficits: []GapRecord{
			{ManagerID: "300", ManagerName: "Carol", Gameweek: 2, PointGap: -6},
			{ManagerID: "100", ManagerName: "Alice", Gameweek: 1, PointGap: -4},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected league leaders (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_Streaks(t *testing.T) {
	t.Parallel()

	points := map[string][]int{
		"1": {50, 60, 70, 80, 90, 10},
		"2": {30, 30, 30, 30, 30, 100},
	}
	snapshot := season.Snapshot{
		Season: testSeason,
		League: season.League{ID: 1, Name: "Streaks"},
	}
	for gw := 1; gw <= 6; gw++ {
		snapshot.Gameweeks = append(snapshot.Gameweeks, season.Gameweek{ID: gw, Finished: true})
	}
	for _, id := range []string{"1", "2"} {
		item := manager.Manager{ID: id, Name: "Manager " + id}
		total := 0
		for idx, value := range points[id] {
			total += value
			item.History = append(item.History, manager.GameweekEntry{Gameweek: idx + 1, Points: value, TotalPoints: total})
		}
		snapshot.Managers = append(snapshot.Managers, item)
	}

	view, err := season.NewView(snapshot, false)
	if err != nil {
		t.Fatalf("NewView error: %v", err)
	}

	got, err := newTestStatisticsService().Streaks(context.Background(), view)
	if err != nil {
		t.Fatalf("Streaks error: %v", err)
	}

	want := Streaks{
		Best: []StreakRecord{
			{ManagerID: "1", ManagerName: "Manager 1", Points: 350, Average: 70, FromGameweek: 1, ToGameweek: 5},
			{ManagerID: "2", ManagerName: "Manager 2", Points: 220, Average: 44, FromGameweek: 2, ToGameweek: 6},
		},
		Worst: []StreakRecord{
			{ManagerID: "2", ManagerName: "Manager 2", Points: 150, Average: 30, FromGameweek: 1, ToGameweek: 5},
			{ManagerID: "1", ManagerName: "Manager 1", Points: 310, Average: 62, FromGameweek: 2, ToGameweek: 6},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected streaks (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_StreaksNeedFiveGameweeks(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().Streaks(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("Streaks error: %v", err)
	}
	if len(got.Best) != 0 || len(got.Worst) != 0 {
		t.Fatalf("expected no streaks for a two gameweek season, got=%+v", got)
	}
}

func TestStatisticsService_PlayerTotals(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().PlayerTotals(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("PlayerTotals error: %v", err)
	}

	want := []PlayerTotalsRecord{
		{ManagerID: "200", ManagerName: "Bob", GoalsScored: 1, Assists: 2, GoalInvolvements: 3},
		{ManagerID: "100", ManagerName: "Alice", GoalsScored: 1, Assists: 1, GoalInvolvements: 2},
		{ManagerID: "300", ManagerName: "Carol"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected player totals (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_OwnershipShare(t *testing.T) {
	t.Parallel()

	service := newTestStatisticsService()
	view := fixtureView(t)

	tests := []struct {
		name     string
		playerID string
		gameweek int
		want     float64
	}{
		{name: "owned by two of three", playerID: "13", gameweek: 1, want: 2.0 / 3.0},
		{name: "unknown player", playerID: "999", gameweek: 1, want: 0},
		{name: "gameweek without entries", playerID: "13", gameweek: 7, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := service.OwnershipShare(view, tc.playerID, tc.gameweek)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("unexpected share: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestStatisticsService_Transfers(t *testing.T) {
	t.Parallel()

	service := newTestStatisticsService()
	view := fixtureView(t)

	best, err := service.BestTransfers(context.Background(), view)
	if err != nil {
		t.Fatalf("BestTransfers error: %v", err)
	}
	wantBest := []TransferRecord{
		{ManagerID: "200", ManagerName: "Bob", Transfers: 2, Points: 4, AveragePoints: 2},
		{ManagerID: "100", ManagerName: "Alice", Transfers: 1, Points: 2, AveragePoints: 2},
		{ManagerID: "300", ManagerName: "Carol"},
	}
	if diff := cmp.Diff(wantBest, best); diff != "" {
		t.Fatalf("unexpected best transfers (-want +got):\n%s", diff)
	}

	worst, err := service.WorstTransfers(context.Background(), view)
	if err != nil {
		t.Fatalf("WorstTransfers error: %v", err)
	}
	wantWorst := []TransferRecord{
		{ManagerID: "200", ManagerName: "Bob", Transfers: 2, Points: 6, AveragePoints: 3},
		{ManagerID: "100", ManagerName: "Alice", Transfers: 1, Points: 1, AveragePoints: 1},
		{ManagerID: "300", ManagerName: "Carol"},
	}
	if diff := cmp.Diff(wantWorst, worst); diff != "" {
		t.Fatalf("unexpected worst transfers (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_TransfersSkipSameGameweekReversals(t *testing.T) {
	t.Parallel()

	snapshot := fixtureSnapshot()
	// Jackson is bought and sold again before the gameweek 2 deadline.
	snapshot.Managers[0].Transfers = []manager.Transfer{{Gameweek: 2, PlayerInID: "16", PlayerOutID: "11"}}

	view, err := season.NewView(snapshot, false)
	if err != nil {
		t.Fatalf("NewView error: %v", err)
	}

	service := newTestStatisticsService()
	for name, compute := range map[string]func(context.Context, *season.View) ([]TransferRecord, error){
		"best":  service.BestTransfers,
		"worst": service.WorstTransfers,
	} {
		rows, err := compute(context.Background(), view)
		if err != nil {
			t.Fatalf("%s transfers error: %v", name, err)
		}
		for _, row := range rows {
			if row.ManagerID == "100" && (row.Transfers != 0 || row.Points != 0) {
				t.Fatalf("%s transfers counted a reversed transfer: %+v", name, row)
			}
		}
	}
}

func TestStatisticsService_Hits(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().Hits(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("Hits error: %v", err)
	}

	// Only Bob's later gameweek 2 transfer, Watkins for Solanke, was paid for.
	want := []HitsRecord{
		{ManagerID: "100", ManagerName: "Alice", Transfers: 1},
		{ManagerID: "300", ManagerName: "Carol"},
		{
			ManagerID:              "200",
			ManagerName:            "Bob",
			Transfers:              2,
			TransfersWithHits:      1,
			TransferCost:           4,
			PointsInWithHits:       2,
			PointsOutWithHits:      5,
			PointsEarnedOnHits:     -7,
			AveragePointsPerHit:    -7,
			AverageCostPerTransfer: 2,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected hits (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_BenchPoints(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().BenchPoints(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("BenchPoints error: %v", err)
	}

	want := []PointsRecord{
		{ManagerID: "100", ManagerName: "Alice", Points: 14},
		{ManagerID: "200", ManagerName: "Bob", Points: 6},
		{ManagerID: "300", ManagerName: "Carol", Points: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected bench points (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_ChipPoints(t *testing.T) {
	t.Parallel()

	got, err := newTestStatisticsService().ChipPoints(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("ChipPoints error: %v", err)
	}

	want := []ChipPointsRecord{
		{ManagerID: "200", ManagerName: "Bob", ChipPoints: 36, TotalChipPoints: 36},
		{ManagerID: "100", ManagerName: "Alice", TotalChipPoints: 24, WildcardPoints: 24},
		{ManagerID: "300", ManagerName: "Carol"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected chip points (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_GameweekPoints(t *testing.T) {
	t.Parallel()

	service := newTestStatisticsService()
	view := fixtureView(t)

	most, err := service.MostGameweekPoints(context.Background(), view)
	if err != nil {
		t.Fatalf("MostGameweekPoints error: %v", err)
	}
	wantMost := []GameweekPointsRecord{
		{ManagerID: "300", ManagerName: "Carol", Gameweek: 1, Points: 40, Rank: 100000},
		{ManagerID: "200", ManagerName: "Bob", Gameweek: 1, Points: 36, Rank: 400000},
		{ManagerID: "100", ManagerName: "Alice", Gameweek: 1, Points: 32, Rank: 900000},
		{ManagerID: "100", ManagerName: "Alice", Gameweek: 2, Points: 24, Rank: 1500000},
		{ManagerID: "200", ManagerName: "Bob", Gameweek: 2, Points: 24, Rank: 1600000},
		{ManagerID: "300", ManagerName: "Carol", Gameweek: 2, Points: 10, Rank: 5000000},
	}
	if diff := cmp.Diff(wantMost, most); diff != "" {
		t.Fatalf("unexpected most gameweek points (-want +got):\n%s", diff)
	}

	least, err := service.LeastGameweekPoints(context.Background(), view)
	if err != nil {
		t.Fatalf("LeastGameweekPoints error: %v", err)
	}
	if least[0].ManagerName != "Carol" || least[0].Points != 10 || least[len(least)-1].Points != 40 {
		t.Fatalf("unexpected least gameweek points: %+v", least)
	}
}

func TestStatisticsService_LeastGameweekPointsSkipsUnrankedGameweeks(t *testing.T) {
	t.Parallel()

	snapshot := fixtureSnapshot()
	snapshot.Managers[2].History[1].Rank = 0

	view, err := season.NewView(snapshot, false)
	if err != nil {
		t.Fatalf("NewView error: %v", err)
	}

	got, err := newTestStatisticsService().LeastGameweekPoints(context.Background(), view)
	if err != nil {
		t.Fatalf("LeastGameweekPoints error: %v", err)
	}
	if len(got) != 5 || got[0].Points != 24 {
		t.Fatalf("unranked gameweek should be skipped: got=%+v", got)
	}
}

func TestStatisticsService_GameweekPointsAreCapped(t *testing.T) {
	t.Parallel()

	snapshot := season.Snapshot{
		Season: testSeason,
		League: season.League{ID: 1, Name: "Long Season"},
	}
	item := manager.Manager{ID: "1", Name: "Manager 1"}
	for gw := 1; gw <= 12; gw++ {
		snapshot.Gameweeks = append(snapshot.Gameweeks, season.Gameweek{ID: gw, Finished: true})
		item.History = append(item.History, manager.GameweekEntry{Gameweek: gw, Points: gw * 10, TotalPoints: gw * 10, Rank: 1})
	}
	snapshot.Managers = []manager.Manager{item}

	view, err := season.NewView(snapshot, false)
	if err != nil {
		t.Fatalf("NewView error: %v", err)
	}

	got, err := newTestStatisticsService().MostGameweekPoints(context.Background(), view)
	if err != nil {
		t.Fatalf("MostGameweekPoints error: %v", err)
	}
	if len(got) != recordListLimit || got[0].Gameweek != 12 {
		t.Fatalf("unexpected capped list: len=%d first=%+v", len(got), got[0])
	}
}

func TestStatisticsService_Ranks(t *testing.T) {
	t.Parallel()

	service := newTestStatisticsService()
	view := fixtureView(t)

	highest, err := service.HighestRanks(context.Background(), view)
	if err != nil {
		t.Fatalf("HighestRanks error: %v", err)
	}
	wantHighest := []RankRecord{
		{ManagerID: "300", ManagerName: "Carol", GameweekRank: 100000, OverallRank: 100000},
		{ManagerID: "200", ManagerName: "Bob", GameweekRank: 400000, OverallRank: 400000},
		{ManagerID: "100", ManagerName: "Alice", GameweekRank: 900000, OverallRank: 900000},
	}
	if diff := cmp.Diff(wantHighest, highest); diff != "" {
		t.Fatalf("unexpected highest ranks (-want +got):\n%s", diff)
	}

	lowest, err := service.LowestRanks(context.Background(), view)
	if err != nil {
		t.Fatalf("LowestRanks error: %v", err)
	}
	wantLowest := []RankRecord{
		{ManagerID: "100", ManagerName: "Alice", GameweekRank: 1500000, OverallRank: 1100000},
		{ManagerID: "200", ManagerName: "Bob", GameweekRank: 1600000, OverallRank: 700000},
		{ManagerID: "300", ManagerName: "Carol", GameweekRank: 5000000, OverallRank: 600000},
	}
	if diff := cmp.Diff(wantLowest, lowest); diff != "" {
		t.Fatalf("unexpected lowest ranks (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_HighestRanksPutUnrankedManagersLast(t *testing.T) {
	t.Parallel()

	snapshot := fixtureSnapshot()
	for idx := range snapshot.Managers[2].History {
		snapshot.Managers[2].History[idx].Rank = 0
		snapshot.Managers[2].History[idx].OverallRank = 0
	}

	view, err := season.NewView(snapshot, false)
	if err != nil {
		t.Fatalf("NewView error: %v", err)
	}

	got, err := newTestStatisticsService().HighestRanks(context.Background(), view)
	if err != nil {
		t.Fatalf("HighestRanks error: %v", err)
	}
	last := got[len(got)-1]
	if last.ManagerName != "Carol" || last.OverallRank != 0 {
		t.Fatalf("unranked manager should come last: got=%+v", got)
	}
}

func TestStatisticsService_BestDifferentials(t *testing.T) {
	t.Parallel()

	snapshot := fixtureSnapshot()
	// Dave copies Alice but fields Jackson instead of Isak, the only player
	// owned by no more than a quarter of the four managers.
	snapshot.Managers = append(snapshot.Managers, manager.Manager{
		ID:       "400",
		Name:     "Dave",
		TeamName: "Blues",
		History: []manager.GameweekEntry{
			{Gameweek: 1, Points: 33, TotalPoints: 33, Picks: withPlayer(snapshot.Managers[0].History[0].Picks, 11, "16")},
			{Gameweek: 2, Points: 23, TotalPoints: 56, Picks: withPlayer(snapshot.Managers[0].History[1].Picks, 11, "16")},
		},
	})

	view, err := season.NewView(snapshot, false)
	if err != nil {
		t.Fatalf("NewView error: %v", err)
	}

	got, err := newTestStatisticsService().BestDifferentials(context.Background(), view)
	if err != nil {
		t.Fatalf("BestDifferentials error: %v", err)
	}

	jackson := DifferentialRecord{
		ManagerID:             "400",
		ManagerName:           "Dave",
		PlayerID:              "16",
		PlayerName:            "Jackson",
		Gameweeks:             2,
		TotalPoints:           8,
		DiffPoints:            8,
		AverageDiffPoints:     4,
		BestDiffPoints:        7,
		BestGameweek:          1,
		BestOwnershipShare:    0.25,
		AverageOwnershipShare: 0.25,
	}
	want := Differentials{
		ByTotal:        []DifferentialRecord{jackson},
		ByAverage:      []DifferentialRecord{jackson},
		ByBestGameweek: []DifferentialRecord{jackson},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected differentials (-want +got):\n%s", diff)
	}
}

func TestStatisticsService_BestDifferentialsNeedLowOwnership(t *testing.T) {
	t.Parallel()

	// In a three manager league every pick is owned by at least a third.
	got, err := newTestStatisticsService().BestDifferentials(context.Background(), fixtureView(t))
	if err != nil {
		t.Fatalf("BestDifferentials error: %v", err)
	}
	if len(got.ByTotal) != 0 || len(got.ByAverage) != 0 || len(got.ByBestGameweek) != 0 {
		t.Fatalf("expected no differentials, got=%+v", got)
	}
}

func TestStatisticsService_NilView(t *testing.T) {
	t.Parallel()

	service := newTestStatisticsService()
	ctx := context.Background()
	errOf := func(_ any, err error) error { return err }
	errs := map[string]error{
		"captain foresight": errOf(service.CaptainForesight(ctx, nil)),
		"best transfers":    errOf(service.BestTransfers(ctx, nil)),
		"hits":              errOf(service.Hits(ctx, nil)),
		"bench points":      errOf(service.BenchPoints(ctx, nil)),
		"chip points":       errOf(service.ChipPoints(ctx, nil)),
		"gameweek points":   errOf(service.MostGameweekPoints(ctx, nil)),
		"ranks":             errOf(service.LowestRanks(ctx, nil)),
		"differentials":     errOf(service.BestDifferentials(ctx, nil)),
	}
	for name, err := range errs {
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}
