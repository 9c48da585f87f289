package jsonfile

import (
	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
)

func leagueToRecord(item season.League) leagueRecord {
	out := leagueRecord{ID: item.ID, Name: item.Name}
	for _, standing := range item.Standings {
		out.Standings = append(out.Standings, standingRecord(standing))
	}
	return out
}

func leagueFromRecord(record leagueRecord) season.League {
	out := season.League{ID: record.ID, Name: record.Name}
	for _, standing := range record.Standings {
		out.Standings = append(out.Standings, season.StandingItem(standing))
	}
	return out
}

func managerToRecord(item manager.Manager) managerRecord {
	out := managerRecord{
		ID:       item.ID,
		Name:     item.Name,
		TeamName: item.TeamName,
		History:  make([]entryRecord, 0, len(item.History)),
	}
	for _, entry := range item.History {
		row := entryRecord{
			Event:              entry.Gameweek,
			Points:             entry.Points,
			TotalPoints:        entry.TotalPoints,
			Rank:               entry.Rank,
			OverallRank:        entry.OverallRank,
			Bank:               entry.Bank,
			Value:              entry.Value,
			EventTransfers:     entry.EventTransfers,
			EventTransfersCost: entry.EventTransfersCost,
			PointsOnBench:      entry.PointsOnBench,
		}
		for _, pick := range entry.Picks {
			row.Picks = append(row.Picks, pickRecord{
				Element:       pick.PlayerID,
				Position:      pick.Slot,
				Multiplier:    pick.Multiplier,
				IsCaptain:     pick.IsCaptain,
				IsViceCaptain: pick.IsViceCaptain,
			})
		}
		out.History = append(out.History, row)
	}
	for _, sub := range item.AutoSubs {
		out.AutoSubs = append(out.AutoSubs, autoSubRecord{Event: sub.Gameweek, ElementIn: sub.PlayerInID, ElementOut: sub.PlayerOutID})
	}
	for _, chip := range item.Chips {
		out.Chips = append(out.Chips, chipRecord{Event: chip.Gameweek, Name: string(chip.Name), Time: chip.PlayedAt})
	}
	for _, transfer := range item.Transfers {
		out.Transfers = append(out.Transfers, transferRecord{
			Event:          transfer.Gameweek,
			ElementIn:      transfer.PlayerInID,
			ElementInCost:  transfer.PlayerInCost,
			ElementOut:     transfer.PlayerOutID,
			ElementOutCost: transfer.PlayerOutCost,
			Time:           transfer.MadeAt,
		})
	}
	return out
}

func managerFromRecord(record managerRecord) manager.Manager {
	out := manager.Manager{
		ID:       record.ID,
		Name:     record.Name,
		TeamName: record.TeamName,
		History:  make([]manager.GameweekEntry, 0, len(record.History)),
	}
	for _, row := range record.History {
		entry := manager.GameweekEntry{
			Gameweek:           row.Event,
			Points:             row.Points,
			TotalPoints:        row.TotalPoints,
			Rank:               row.Rank,
			OverallRank:        row.OverallRank,
			Bank:               row.Bank,
			Value:              row.Value,
			EventTransfers:     row.EventTransfers,
			EventTransfersCost: row.EventTransfersCost,
			PointsOnBench:      row.PointsOnBench,
		}
		for _, pick := range row.Picks {
			entry.Picks = append(entry.Picks, fantasy.Pick{
				PlayerID:      pick.Element,
				Slot:          pick.Position,
				Multiplier:    pick.Multiplier,
				IsCaptain:     pick.IsCaptain,
				IsViceCaptain: pick.IsViceCaptain,
			})
		}
		out.History = append(out.History, entry)
	}
	for _, sub := range record.AutoSubs {
		out.AutoSubs = append(out.AutoSubs, manager.AutoSub{Gameweek: sub.Event, PlayerInID: sub.ElementIn, PlayerOutID: sub.ElementOut})
	}
	for _, chip := range record.Chips {
		out.Chips = append(out.Chips, manager.ChipUsage{Gameweek: chip.Event, Name: manager.Chip(chip.Name), PlayedAt: chip.Time})
	}
	for _, transfer := range record.Transfers {
		out.Transfers = append(out.Transfers, manager.Transfer{
			Gameweek:      transfer.Event,
			PlayerInID:    transfer.ElementIn,
			PlayerInCost:  transfer.ElementInCost,
			PlayerOutID:   transfer.ElementOut,
			PlayerOutCost: transfer.ElementOutCost,
			MadeAt:        transfer.Time,
		})
	}
	return out
}

func playerToRecord(item player.Player) playerRecord {
	out := playerRecord{
		ID:         item.ID,
		Code:       item.Code,
		WebName:    item.WebName,
		FirstName:  item.FirstName,
		SecondName: item.SecondName,
		TeamID:     item.TeamID,
		Position:   string(item.Position),
		Status:     item.Status,
		Stats:      seasonStatsRecord(item.Stats),
	}
	for _, row := range item.History {
		out.History = append(out.History, fixtureStatRecord{
			Round:           row.Gameweek,
			Fixture:         row.FixtureID,
			OpponentTeam:    row.OpponentTeamID,
			WasHome:         row.WasHome,
			KickoffTime:     row.KickoffAt,
			Minutes:         row.Minutes,
			GoalsScored:     row.GoalsScored,
			Assists:         row.Assists,
			CleanSheets:     row.CleanSheets,
			GoalsConceded:   row.GoalsConceded,
			OwnGoals:        row.OwnGoals,
			PenaltiesSaved:  row.PenaltiesSaved,
			PenaltiesMissed: row.PenaltiesMissed,
			YellowCards:     row.YellowCards,
			RedCards:        row.RedCards,
			Saves:           row.Saves,
			Bonus:           row.Bonus,
			BPS:             row.BPS,
			TotalPoints:     row.TotalPoints,
		})
	}
	return out
}

func playerFromRecord(record playerRecord) player.Player {
	out := player.Player{
		ID:         record.ID,
		Code:       record.Code,
		WebName:    record.WebName,
		FirstName:  record.FirstName,
		SecondName: record.SecondName,
		TeamID:     record.TeamID,
		Position:   player.Position(record.Position),
		Status:     record.Status,
		Stats:      player.SeasonStats(record.Stats),
	}
	for _, row := range record.History {
		out.History = append(out.History, player.FixtureResult{
			Gameweek:        row.Round,
			FixtureID:       row.Fixture,
			OpponentTeamID:  row.OpponentTeam,
			WasHome:         row.WasHome,
			KickoffAt:       row.KickoffTime,
			Minutes:         row.Minutes,
			GoalsScored:     row.GoalsScored,
			Assists:         row.Assists,
			CleanSheets:     row.CleanSheets,
			GoalsConceded:   row.GoalsConceded,
			OwnGoals:        row.OwnGoals,
			PenaltiesSaved:  row.PenaltiesSaved,
			PenaltiesMissed: row.PenaltiesMissed,
			YellowCards:     row.YellowCards,
			RedCards:        row.RedCards,
			Saves:           row.Saves,
			Bonus:           row.Bonus,
			BPS:             row.BPS,
			TotalPoints:     row.TotalPoints,
		})
	}
	return out
}
