package season

import (
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
)

type resultKey struct {
	playerID string
	gameweek int
}

// RecordStore is a read-only index of fixture results by player and gameweek.
// It is safe for concurrent readers once built.
type RecordStore struct {
	players map[string]player.Player
	results map[resultKey][]player.FixtureResult
}

func NewRecordStore(players map[string]player.Player) *RecordStore {
	results := make(map[resultKey][]player.FixtureResult)
	for id, item := range players {
		for _, row := range item.History {
			key := resultKey{playerID: id, gameweek: row.Gameweek}
			results[key] = append(results[key], row)
		}
	}

	return &RecordStore{
		players: players,
		results: results,
	}
}

// FixtureResults returns every fixture row for the player in the gameweek.
// Unknown players and blank gameweeks return nil.
func (s *RecordStore) FixtureResults(playerID string, gameweek int) []player.FixtureResult {
	if s == nil {
		return nil
	}
	return s.results[resultKey{playerID: playerID, gameweek: gameweek}]
}

func (s *RecordStore) Player(playerID string) (player.Player, bool) {
	if s == nil {
		return player.Player{}, false
	}
	item, ok := s.players[playerID]
	return item, ok
}

func (s *RecordStore) Position(playerID string) (player.Position, bool) {
	item, ok := s.Player(playerID)
	if !ok {
		return "", false
	}
	return item.Position, true
}
