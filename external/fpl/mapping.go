package fpl

import (
	"context"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
	"github.com/riskibarqy/fpl-superlatives/internal/usecase"
)

func (c *Client) mapBootstrap(ctx context.Context, payload bootstrapResponse) usecase.ExternalBootstrap {
	out := usecase.ExternalBootstrap{
		Gameweeks: make([]season.Gameweek, 0, len(payload.Events)),
		Players:   make([]player.Player, 0, len(payload.Elements)),
	}
	for _, event := range payload.Events {
		out.Gameweeks = append(out.Gameweeks, season.Gameweek{
			ID:         event.ID,
			Name:       event.Name,
			Finished:   event.Finished,
			IsCurrent:  event.IsCurrent,
			DeadlineAt: event.DeadlineTime,
		})
	}
	for _, element := range payload.Elements {
		pos, err := player.PositionFromElementType(element.ElementType)
		if err != nil {
			c.logger.WarnContext(ctx, "skip element with unknown type", "element", element.ID, "error", err)
			continue
		}
		out.Players = append(out.Players, mapElement(element, pos))
	}
	return out
}

func mapElement(element elementItem, pos player.Position) player.Player {
	return player.Player{
		ID:         strconv.Itoa(element.ID),
		Code:       element.Code,
		WebName:    firstNonEmpty(element.WebName, element.SecondName, strconv.Itoa(element.ID)),
		FirstName:  element.FirstName,
		SecondName: element.SecondName,
		TeamID:     element.Team,
		Position:   pos,
		Status:     element.Status,
		Stats: player.SeasonStats{
			TotalPoints:     element.TotalPoints,
			PointsPerGame:   parseDecimal(element.PointsPerGame),
			SelectedByPct:   parseDecimal(element.SelectedByPercent),
			Minutes:         element.Minutes,
			GoalsScored:     element.GoalsScored,
			Assists:         element.Assists,
			CleanSheets:     element.CleanSheets,
			GoalsConceded:   element.GoalsConceded,
			OwnGoals:        element.OwnGoals,
			PenaltiesSaved:  element.PenaltiesSaved,
			PenaltiesMissed: element.PenaltiesMissed,
			YellowCards:     element.YellowCards,
			RedCards:        element.RedCards,
			Saves:           element.Saves,
			Bonus:           element.Bonus,
			BPS:             element.BPS,
		},
	}
}

func mapFixtureResult(row elementHistoryItem) player.FixtureResult {
	return player.FixtureResult{
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
	}
}

func mapStanding(row standingItem) season.StandingItem {
	return season.StandingItem{
		ManagerID:  strconv.Itoa(row.Entry),
		TeamName:   row.EntryName,
		PlayerName: row.PlayerName,
		Rank:       row.Rank,
		RankSort:   row.RankSort,
		EventTotal: row.EventTotal,
		Total:      row.Total,
	}
}

func mapPick(pick pickItem) fantasy.Pick {
	return fantasy.Pick{
		PlayerID:      strconv.Itoa(pick.Element),
		Slot:          pick.Position,
		Multiplier:    pick.Multiplier,
		IsCaptain:     pick.IsCaptain,
		IsViceCaptain: pick.IsViceCaptain,
	}
}

func parseDecimal(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}
