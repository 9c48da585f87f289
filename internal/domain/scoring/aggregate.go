package scoring

import "github.com/riskibarqy/fpl-superlatives/internal/domain/player"

// ResultSource looks up every fixture row of a player in a gameweek.
type ResultSource interface {
	FixtureResults(playerID string, gameweek int) []player.FixtureResult
}

// Aggregator merges blank, single and double gameweeks into one result.
type Aggregator struct {
	source ResultSource
}

func NewAggregator(source ResultSource) Aggregator {
	return Aggregator{source: source}
}

// Combine never fails: unknown players and gameweeks yield the zero result.
func (a Aggregator) Combine(playerID string, gameweek int) CombinedResult {
	if a.source == nil {
		return CombinedResult{}
	}
	return CombineResults(a.source.FixtureResults(playerID, gameweek))
}

// CombineResults sums fixture rows. Total points are summed raw; multipliers
// apply to the combined total only.
func CombineResults(rows []player.FixtureResult) CombinedResult {
	var out CombinedResult
	for _, row := range rows {
		out.Fixtures++
		out.Minutes += row.Minutes
		out.GoalsScored += row.GoalsScored
		out.Assists += row.Assists
		out.CleanSheets += row.CleanSheets
		out.GoalsConceded += row.GoalsConceded
		out.OwnGoals += row.OwnGoals
		out.PenaltiesSaved += row.PenaltiesSaved
		out.PenaltiesMissed += row.PenaltiesMissed
		out.YellowCards += row.YellowCards
		out.RedCards += row.RedCards
		out.Saves += row.Saves
		out.Bonus += row.Bonus
		out.BPS += row.BPS
		out.TotalPoints += row.TotalPoints
	}
	return out
}
