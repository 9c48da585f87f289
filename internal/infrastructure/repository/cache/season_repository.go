package cache

import (
	"context"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
	basecache "github.com/riskibarqy/fpl-superlatives/internal/platform/cache"
)

// SeasonRepository keeps loaded snapshots in process memory. Saves write
// through and refresh the cached copy.
type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store[season.Snapshot]
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store[season.Snapshot]) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) Load(ctx context.Context, seasonKey string, leagueID int64) (season.Snapshot, error) {
	return r.cache.GetOrLoad(ctx, season.Key(seasonKey, leagueID), func(ctx context.Context) (season.Snapshot, error) {
		return r.next.Load(ctx, seasonKey, leagueID)
	})
}

func (r *SeasonRepository) Save(ctx context.Context, snapshot season.Snapshot) error {
	key := season.Key(snapshot.Season, snapshot.League.ID)
	if err := r.next.Save(ctx, snapshot); err != nil {
		r.cache.Delete(ctx, key)
		return err
	}
	r.cache.Set(ctx, key, snapshot)
	return nil
}
