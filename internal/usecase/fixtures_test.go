package usecase

import (
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
)

const testSeason = "2024_2025"

var fixturePlayers = []struct {
	name string
	pos  player.Position
}{
	{"Raya", player.PositionGoalkeeper},
	{"Saliba", player.PositionDefender},
	{"Gabriel", player.PositionDefender},
	{"White", player.PositionDefender},
	{"Timber", player.PositionDefender},
	{"Rice", player.PositionMidfielder},
	{"Odegaard", player.PositionMidfielder},
	{"Havertz", player.PositionMidfielder},
	{"Saka", player.PositionMidfielder},
	{"Haaland", player.PositionForward},
	{"Isak", player.PositionForward},
	{"Flekken", player.PositionGoalkeeper},
	{"Gvardiol", player.PositionDefender},
	{"Palmer", player.PositionMidfielder},
	{"Watkins", player.PositionForward},
}

// fixtureSnapshot is a two gameweek league with three managers.
//
// Players "1".."15" form a 4-4-2 squad with bench GK, DEF, MID, FWD. Everyone
// plays 90 minutes for 2 points in both gameweeks, except Haaland ("10") who
// scores a 6 point goal in gameweek 1 and misses gameweek 2. Rice ("6") and
// Watkins ("15") each record an assist in gameweek 1. Jackson ("16") and
// Solanke ("17") only appear in transfers.
//
// Alice captains Haaland with Saka as vice and plays a wildcard in gameweek
// 2. Bob captains Rice with Haaland as vice, plays bench boost in gameweek 1
// and takes a hit in gameweek 2. Gameweek 2 picks carry the multipliers
// recorded after Haaland is auto-subbed for Gvardiol ("13"). Carol has no
// recorded picks.
func fixtureSnapshot() season.Snapshot {
	players := make(map[string]player.Player, len(fixturePlayers)+2)
	for idx, fp := range fixturePlayers {
		id := strconv.Itoa(idx + 1)
		gw1 := player.FixtureResult{Gameweek: 1, FixtureID: 1, Minutes: 90, TotalPoints: 2}
		gw2 := player.FixtureResult{Gameweek: 2, FixtureID: 11, Minutes: 90, TotalPoints: 2}
		switch id {
		case "10":
			gw1.GoalsScored = 1
			gw1.TotalPoints = 6
			gw2.Minutes = 0
			gw2.TotalPoints = 0
		case "6", "15":
			gw1.Assists = 1
		}
		players[id] = player.Player{
			ID:       id,
			WebName:  fp.name,
			Position: fp.pos,
			History:  []player.FixtureResult{gw1, gw2},
		}
	}
	players["16"] = player.Player{
		ID:       "16",
		WebName:  "Jackson",
		Position: player.PositionForward,
		History: []player.FixtureResult{
			{Gameweek: 1, FixtureID: 2, Minutes: 90, GoalsScored: 1, TotalPoints: 7},
			{Gameweek: 2, FixtureID: 12, Minutes: 90, TotalPoints: 1},
		},
	}
	players["17"] = player.Player{
		ID:       "17",
		WebName:  "Solanke",
		Position: player.PositionForward,
		History: []player.FixtureResult{
			{Gameweek: 1, FixtureID: 3, Minutes: 90, TotalPoints: 2},
			{Gameweek: 2, FixtureID: 13, Minutes: 90, TotalPoints: 5},
		},
	}

	alicePicks := fixturePicks("10", "9", false)
	aliceAutoSub := withMultipliers(alicePicks, map[string]int{"10": fantasy.MultiplierBenched, "13": fantasy.MultiplierPlaying, "9": fantasy.MultiplierCaptain})
	bobBoost := fixturePicks("6", "10", true)
	bobAutoSub := withMultipliers(fixturePicks("6", "10", false), map[string]int{"10": fantasy.MultiplierBenched, "13": fantasy.MultiplierPlaying})
	deadline := time.Date(2024, 8, 23, 17, 30, 0, 0, time.UTC)

	return season.Snapshot{
		Season: testSeason,
		League: season.League{ID: 314, Name: "Office League"},
		Gameweeks: []season.Gameweek{
			{ID: 3, Name: "Gameweek 3", IsCurrent: true},
			{ID: 1, Name: "Gameweek 1", Finished: true},
			{ID: 2, Name: "Gameweek 2", Finished: true},
		},
		Players: players,
		Managers: []manager.Manager{
			{
				ID:       "100",
				Name:     "Alice",
				TeamName: "Gunners FC",
				History: []manager.GameweekEntry{
					{Gameweek: 1, Points: 32, TotalPoints: 32, Rank: 900000, OverallRank: 900000, PointsOnBench: 8, Picks: alicePicks},
					{Gameweek: 2, Points: 24, TotalPoints: 56, Rank: 1500000, OverallRank: 1100000, PointsOnBench: 6, EventTransfers: 1, Picks: aliceAutoSub},
				},
				AutoSubs: []manager.AutoSub{{Gameweek: 2, PlayerInID: "13", PlayerOutID: "10"}},
				Chips:    []manager.ChipUsage{{Gameweek: 2, Name: manager.ChipWildcard}},
				Transfers: []manager.Transfer{
					{Gameweek: 2, PlayerInID: "13", PlayerOutID: "16", MadeAt: deadline.Add(-48 * time.Hour)},
				},
			},
			{
				ID:       "200",
				Name:     "Bob",
				TeamName: "Bench Boosters",
				History: []manager.GameweekEntry{
					{Gameweek: 1, Points: 36, TotalPoints: 36, Rank: 400000, OverallRank: 400000, Picks: bobBoost},
					{Gameweek: 2, Points: 24, TotalPoints: 60, Rank: 1600000, OverallRank: 700000, PointsOnBench: 6, EventTransfers: 2, EventTransfersCost: 4, Picks: bobAutoSub},
				},
				AutoSubs: []manager.AutoSub{{Gameweek: 2, PlayerInID: "13", PlayerOutID: "10"}},
				Chips:    []manager.ChipUsage{{Gameweek: 1, Name: manager.ChipBenchBoost}},
				Transfers: []manager.Transfer{
					{Gameweek: 2, PlayerInID: "14", PlayerOutID: "16", MadeAt: deadline.Add(-3 * time.Hour)},
					{Gameweek: 2, PlayerInID: "15", PlayerOutID: "17", MadeAt: deadline.Add(-time.Hour)},
				},
			},
			{
				ID:       "300",
				Name:     "Carol",
				TeamName: "Late Joiners",
				History: []manager.GameweekEntry{
					{Gameweek: 1, Points: 40, TotalPoints: 40, Rank: 100000, OverallRank: 100000},
					{Gameweek: 2, Points: 10, TotalPoints: 50, Rank: 5000000, OverallRank: 600000},
				},
			},
		},
	}
}

// fixturePicks returns picks for players "1".."15" in slot order plus the
// assistant manager slot, which squads drop.
func fixturePicks(captainID, viceID string, benchBoost bool) []fantasy.Pick {
	picks := make([]fantasy.Pick, 0, len(fixturePlayers)+1)
	for idx := range fixturePlayers {
		id := strconv.Itoa(idx + 1)
		pick := fantasy.Pick{
			PlayerID:      id,
			Slot:          idx + 1,
			Multiplier:    fantasy.MultiplierPlaying,
			IsCaptain:     id == captainID,
			IsViceCaptain: id == viceID,
		}
		switch {
		case pick.IsCaptain:
			pick.Multiplier = fantasy.MultiplierCaptain
		case pick.Slot > 11 && !benchBoost:
			pick.Multiplier = fantasy.MultiplierBenched
		}
		picks = append(picks, pick)
	}
	return append(picks, fantasy.Pick{PlayerID: "900", Slot: fantasy.ManagerSlot})
}

// withMultipliers copies picks, overriding the multiplier of the listed players.
func withMultipliers(picks []fantasy.Pick, multipliers map[string]int) []fantasy.Pick {
	out := slices.Clone(picks)
	for idx := range out {
		if value, ok := multipliers[out[idx].PlayerID]; ok {
			out[idx].Multiplier = value
		}
	}
	return out
}

// withPlayer copies picks, putting another player in a slot.
func withPlayer(picks []fantasy.Pick, slot int, playerID string) []fantasy.Pick {
	out := slices.Clone(picks)
	for idx := range out {
		if out[idx].Slot == slot {
			out[idx].PlayerID = playerID
		}
	}
	return out
}

func fixtureView(t *testing.T) *season.View {
	t.Helper()

	view, err := season.NewView(fixtureSnapshot(), false)
	if err != nil {
		t.Fatalf("NewView error: %v", err)
	}
	return view
}

func testEngineConfig() EngineConfig {
	return EngineConfig{Rules: fantasy.DefaultRules(), MaxWorkers: 2}
}
