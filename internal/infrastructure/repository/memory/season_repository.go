package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
)

// SeasonRepository keeps snapshots in memory, keyed by season and league.
type SeasonRepository struct {
	mu        sync.RWMutex
	snapshots map[string]season.Snapshot
}

func NewSeasonRepository(snapshots ...season.Snapshot) *SeasonRepository {
	byKey := make(map[string]season.Snapshot, len(snapshots))
	for _, item := range snapshots {
		byKey[season.Key(item.Season, item.League.ID)] = item
	}

	return &SeasonRepository{snapshots: byKey}
}

func (r *SeasonRepository) Load(_ context.Context, seasonKey string, leagueID int64) (season.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := season.Key(seasonKey, leagueID)
	item, ok := r.snapshots[key]
	if !ok {
		return season.Snapshot{}, fmt.Errorf("%w: %s", season.ErrSnapshotNotFound, key)
	}
	return item, nil
}

func (r *SeasonRepository) Save(_ context.Context, snapshot season.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[season.Key(snapshot.Season, snapshot.League.ID)] = snapshot
	return nil
}
