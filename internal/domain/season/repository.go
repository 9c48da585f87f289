package season

import (
	"context"
	"errors"
)

var ErrSnapshotNotFound = errors.New("season snapshot not found")

// Repository describes snapshot persistence needs from use cases.
type Repository interface {
	Load(ctx context.Context, seasonKey string, leagueID int64) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}
