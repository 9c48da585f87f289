package manager

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
)

// Chip is a seasonal rule modifier a manager can play once per window.
type Chip string

const (
	ChipTripleCaptain Chip = "3xc"
	ChipBenchBoost    Chip = "bboost"
	ChipFreeHit       Chip = "freehit"
	ChipWildcard      Chip = "wildcard"
	ChipAssistant     Chip = "manager"
)

type ChipUsage struct {
	Gameweek int
	Name     Chip
	PlayedAt time.Time
}

type AutoSub struct {
	Gameweek    int
	PlayerInID  string
	PlayerOutID string
}

type Transfer struct {
	Gameweek      int
	PlayerInID    string
	PlayerInCost  int
	PlayerOutID   string
	PlayerOutCost int
	MadeAt        time.Time
}

// GameweekEntry is a manager's recorded state after one gameweek.
type GameweekEntry struct {
	Gameweek           int
	Points             int
	TotalPoints        int
	Rank               int
	OverallRank        int
	Bank               int
	Value              int
	EventTransfers     int
	EventTransfersCost int
	PointsOnBench      int
	Picks              []fantasy.Pick
}

// Manager is one member of a mini-league with their season history.
type Manager struct {
	ID        string
	Name      string
	TeamName  string
	History   []GameweekEntry
	AutoSubs  []AutoSub
	Chips     []ChipUsage
	Transfers []Transfer
}

func (m Manager) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("manager id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("manager name is required: %s", m.ID)
	}
	for idx, entry := range m.History {
		if entry.Gameweek <= 0 {
			return fmt.Errorf("manager %s history row %d has invalid gameweek %d", m.ID, idx, entry.Gameweek)
		}
	}

	return nil
}

// Entry returns the history row for a gameweek.
func (m Manager) Entry(gameweek int) (GameweekEntry, bool) {
	for _, entry := range m.History {
		if entry.Gameweek == gameweek {
			return entry, true
		}
	}
	return GameweekEntry{}, false
}

// TotalAt is the cumulative total of the most recent history row at or
// before the gameweek. Rows after it are ignored.
func (m Manager) TotalAt(gameweek int) int {
	seen := 0
	total := 0
	for _, entry := range m.History {
		if entry.Gameweek <= gameweek && entry.Gameweek >= seen {
			seen = entry.Gameweek
			total = entry.TotalPoints
		}
	}
	return total
}

// ChipIn returns the chip played in the given gameweek, if any.
func (m Manager) ChipIn(gameweek int) (Chip, bool) {
	for _, usage := range m.Chips {
		if usage.Gameweek == gameweek {
			return usage.Name, true
		}
	}
	return "", false
}
