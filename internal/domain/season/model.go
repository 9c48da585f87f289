package season

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
)

// Gameweek is one scoring round of the season.
type Gameweek struct {
	ID         int
	Name       string
	Finished   bool
	IsCurrent  bool
	DeadlineAt time.Time
}

type StandingItem struct {
	ManagerID  string
	TeamName   string
	PlayerName string
	Rank       int
	RankSort   int
	EventTotal int
	Total      int
}

// League is a classic mini-league and its latest standings.
type League struct {
	ID        int64
	Name      string
	Standings []StandingItem
}

// Snapshot is everything fetched for one league in one season.
type Snapshot struct {
	Season    string
	League    League
	Gameweeks []Gameweek
	Managers  []manager.Manager
	Players   map[string]player.Player
	FetchedAt time.Time
}

func (s Snapshot) Validate() error {
	if strings.TrimSpace(s.Season) == "" {
		return fmt.Errorf("season is required")
	}
	if s.League.ID <= 0 {
		return fmt.Errorf("league id must be greater than zero")
	}
	if len(s.Gameweeks) == 0 {
		return fmt.Errorf("snapshot has no gameweeks")
	}
	for id, item := range s.Players {
		if item.ID != id {
			return fmt.Errorf("player index key %q does not match player id %q", id, item.ID)
		}
		if err := item.Validate(); err != nil {
			return err
		}
	}
	for _, item := range s.Managers {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Key identifies a snapshot on disk and in logs.
func Key(seasonKey string, leagueID int64) string {
	return fmt.Sprintf("%s/%d", seasonKey, leagueID)
}
