package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
)

const snapshotFileName = "snapshot.json"

// SnapshotRepository stores one JSON document per league and season under
// <dir>/<season>/<league>/snapshot.json.
type SnapshotRepository struct {
	dir string
}

func NewSnapshotRepository(dir string) *SnapshotRepository {
	return &SnapshotRepository{dir: dir}
}

func (r *SnapshotRepository) path(seasonKey string, leagueID int64) string {
	return filepath.Join(r.dir, seasonKey, strconv.FormatInt(leagueID, 10), snapshotFileName)
}

func (r *SnapshotRepository) Load(ctx context.Context, seasonKey string, leagueID int64) (season.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return season.Snapshot{}, err
	}

	path := r.path(seasonKey, leagueID)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return season.Snapshot{}, fmt.Errorf("%w: %s", season.ErrSnapshotNotFound, season.Key(seasonKey, leagueID))
		}
		return season.Snapshot{}, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var record snapshotRecord
	if err := sonic.Unmarshal(data, &record); err != nil {
		return season.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if record.Version != snapshotFormatVersion {
		return season.Snapshot{}, fmt.Errorf("snapshot %s has format version %d, expected %d", path, record.Version, snapshotFormatVersion)
	}

	return snapshotFromRecord(record), nil
}

// Save writes the snapshot through a temporary file so readers never see a
// partial document.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot season.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}

	data, err := sonic.Marshal(snapshotToRecord(snapshot))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	path := r.path(snapshot.Season, snapshot.League.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), snapshotFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename snapshot into place: %w", err)
	}

	return nil
}

func snapshotToRecord(snapshot season.Snapshot) snapshotRecord {
	out := snapshotRecord{
		Version:   snapshotFormatVersion,
		Season:    snapshot.Season,
		League:    leagueToRecord(snapshot.League),
		Gameweeks: make([]gameweekRecord, 0, len(snapshot.Gameweeks)),
		Managers:  make([]managerRecord, 0, len(snapshot.Managers)),
		Players:   make([]playerRecord, 0, len(snapshot.Players)),
		FetchedAt: snapshot.FetchedAt,
	}
	for _, item := range snapshot.Gameweeks {
		out.Gameweeks = append(out.Gameweeks, gameweekRecord(item))
	}
	for _, item := range snapshot.Managers {
		out.Managers = append(out.Managers, managerToRecord(item))
	}
	for _, item := range snapshot.Players {
		out.Players = append(out.Players, playerToRecord(item))
	}
	sort.Slice(out.Players, func(i, j int) bool {
		return out.Players[i].ID < out.Players[j].ID
	})

	return out
}

func snapshotFromRecord(record snapshotRecord) season.Snapshot {
	out := season.Snapshot{
		Season:    record.Season,
		League:    leagueFromRecord(record.League),
		Gameweeks: make([]season.Gameweek, 0, len(record.Gameweeks)),
		Managers:  make([]manager.Manager, 0, len(record.Managers)),
		Players:   make(map[string]player.Player, len(record.Players)),
		FetchedAt: record.FetchedAt,
	}
	for _, item := range record.Gameweeks {
		out.Gameweeks = append(out.Gameweeks, season.Gameweek(item))
	}
	for _, item := range record.Managers {
		out.Managers = append(out.Managers, managerFromRecord(item))
	}
	for _, item := range record.Players {
		out.Players[item.ID] = playerFromRecord(item)
	}

	return out
}
