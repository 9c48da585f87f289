package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/logging"
)

// SeasonDataProvider is the upstream fantasy API as seen by ingestion.
type SeasonDataProvider interface {
	FetchBootstrap(ctx context.Context) (ExternalBootstrap, error)
	FetchPlayerHistory(ctx context.Context, playerID string) ([]player.FixtureResult, error)
	FetchLeagueStandings(ctx context.Context, leagueID int64) (ExternalLeague, error)
	FetchEntryHistory(ctx context.Context, entryID string) (ExternalEntryHistory, error)
	FetchEntryPicks(ctx context.Context, entryID string, gameweek int) (ExternalEntryPicks, error)
	FetchEntryTransfers(ctx context.Context, entryID string) ([]manager.Transfer, error)
}

type ExternalBootstrap struct {
	Gameweeks []season.Gameweek
	Players   []player.Player
}

type ExternalLeague struct {
	ID        int64
	Name      string
	Standings []season.StandingItem
}

type ExternalEntryHistory struct {
	History []manager.GameweekEntry
	Chips   []manager.ChipUsage
}

type ExternalEntryPicks struct {
	Picks      []fantasy.Pick
	AutoSubs   []manager.AutoSub
	ActiveChip string
}

type FetchLeagueInput struct {
	Season     string `validate:"required"`
	LeagueID   int64  `validate:"gt=0"`
	Force      bool   `validate:"-"`
	MaxWorkers int    `validate:"gte=0"`
}

type FetchLeagueResult struct {
	Season     string    `json:"season"`
	LeagueID   int64     `json:"league_id"`
	LeagueName string    `json:"league_name"`
	Managers   int       `json:"managers"`
	Players    int       `json:"players"`
	Gameweeks  int       `json:"gameweeks"`
	Skipped    bool      `json:"skipped"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// IngestionService builds league snapshots from the upstream API.
type IngestionService struct {
	provider   SeasonDataProvider
	repo       season.Repository
	maxWorkers int
	logger     *logging.Logger
	now        func() time.Time
}

func NewIngestionService(provider SeasonDataProvider, repo season.Repository, maxWorkers int, logger *logging.Logger) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		provider:   provider,
		repo:       repo,
		maxWorkers: maxWorkers,
		logger:     logger,
		now:        time.Now,
	}
}

// FetchLeague downloads everything the statistics need for one league and
// stores it as a snapshot. An existing snapshot is kept unless Force is set.
func (s *IngestionService) FetchLeague(ctx context.Context, input FetchLeagueInput) (FetchLeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.FetchLeague")
	defer span.End()

	input.Season = strings.TrimSpace(input.Season)
	if err := validateInput(ctx, input); err != nil {
		return FetchLeagueResult{}, err
	}

	key := season.Key(input.Season, input.LeagueID)
	if !input.Force {
		existing, err := s.repo.Load(ctx, input.Season, input.LeagueID)
		switch {
		case err == nil:
			s.logger.InfoContext(ctx, "snapshot already present, skipping fetch", "snapshot", key)
			return summarizeSnapshot(existing, true), nil
		case !errors.Is(err, season.ErrSnapshotNotFound):
			return FetchLeagueResult{}, fmt.Errorf("load snapshot %s: %w", key, err)
		}
	}

	workers := input.MaxWorkers
	if workers <= 0 {
		workers = s.maxWorkers
	}

	bootstrap, err := s.provider.FetchBootstrap(ctx)
	if err != nil {
		return FetchLeagueResult{}, fmt.Errorf("fetch bootstrap: %w", err)
	}
	league, err := s.provider.FetchLeagueStandings(ctx, input.LeagueID)
	if err != nil {
		return FetchLeagueResult{}, fmt.Errorf("fetch league %d standings: %w", input.LeagueID, err)
	}

	managers, err := s.fetchManagers(ctx, league.Standings, workers)
	if err != nil {
		return FetchLeagueResult{}, err
	}

	players := make(map[string]player.Player, len(bootstrap.Players))
	for _, item := range bootstrap.Players {
		players[item.ID] = item
	}
	if err := s.fetchPlayerHistories(ctx, players, pickedPlayerIDs(managers), workers); err != nil {
		return FetchLeagueResult{}, err
	}

	snapshot := season.Snapshot{
		Season: input.Season,
		League: season.League{
			ID:        input.LeagueID,
			Name:      league.Name,
			Standings: league.Standings,
		},
		Gameweeks: bootstrap.Gameweeks,
		Managers:  managers,
		Players:   players,
		FetchedAt: s.now().UTC(),
	}
	if err := snapshot.Validate(); err != nil {
		return FetchLeagueResult{}, fmt.Errorf("%w: upstream data for %s: %v", ErrDependencyUnavailable, key, err)
	}
	if err := s.repo.Save(ctx, snapshot); err != nil {
		return FetchLeagueResult{}, fmt.Errorf("save snapshot %s: %w", key, err)
	}

	s.logger.InfoContext(ctx, "league snapshot fetched",
		"snapshot", key,
		"managers", len(managers),
		"players", len(players),
		"gameweeks", len(bootstrap.Gameweeks),
	)
	return summarizeSnapshot(snapshot, false), nil
}

func (s *IngestionService) fetchManagers(ctx context.Context, standings []season.StandingItem, workers int) ([]manager.Manager, error) {
	managers := make([]manager.Manager, len(standings))
	tasks := make([]func(context.Context) error, 0, len(standings))
	for idx, standing := range standings {
		idx, standing := idx, standing
		tasks = append(tasks, func(ctx context.Context) error {
			item, err := s.fetchManager(ctx, standing)
			if err != nil {
				return err
			}
			managers[idx] = item
			return nil
		})
	}

	if err := runTasks(ctx, workers, tasks); err != nil {
		return nil, err
	}
	return managers, nil
}

func (s *IngestionService) fetchManager(ctx context.Context, standing season.StandingItem) (manager.Manager, error) {
	item := manager.Manager{
		ID:       standing.ManagerID,
		Name:     standing.PlayerName,
		TeamName: standing.TeamName,
	}

	history, err := s.provider.FetchEntryHistory(ctx, item.ID)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("fetch history for entry %s: %w", item.ID, err)
	}
	transfers, err := s.provider.FetchEntryTransfers(ctx, item.ID)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("fetch transfers for entry %s: %w", item.ID, err)
	}

	item.History = history.History
	item.Chips = history.Chips
	item.Transfers = transfers
	for idx := range item.History {
		gameweek := item.History[idx].Gameweek
		picks, err := s.provider.FetchEntryPicks(ctx, item.ID, gameweek)
		if err != nil {
			return manager.Manager{}, fmt.Errorf("fetch picks for entry %s gameweek %d: %w", item.ID, gameweek, err)
		}
		item.History[idx].Picks = picks.Picks
		item.AutoSubs = append(item.AutoSubs, picks.AutoSubs...)
	}

	return item, nil
}

func (s *IngestionService) fetchPlayerHistories(ctx context.Context, players map[string]player.Player, ids []string, workers int) error {
	var mu sync.Mutex
	tasks := make([]func(context.Context) error, 0, len(ids))
	for _, id := range ids {
		id := id
		tasks = append(tasks, func(ctx context.Context) error {
			history, err := s.provider.FetchPlayerHistory(ctx, id)
			if err != nil {
				return fmt.Errorf("fetch history for player %s: %w", id, err)
			}

			mu.Lock()
			defer mu.Unlock()
			item, ok := players[id]
			if !ok {
				s.logger.WarnContext(ctx, "picked player missing from bootstrap", "player_id", id)
				return nil
			}
			item.History = history
			players[id] = item
			return nil
		})
	}

	return runTasks(ctx, workers, tasks)
}

// pickedPlayerIDs lists every player any manager ever selected, in id order.
func pickedPlayerIDs(managers []manager.Manager) []string {
	seen := make(map[string]struct{})
	for _, item := range managers {
		for _, entry := range item.History {
			for _, pick := range entry.Picks {
				if pick.Slot >= fantasy.ManagerSlot {
					continue
				}
				seen[pick.PlayerID] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func summarizeSnapshot(snapshot season.Snapshot, skipped bool) FetchLeagueResult {
	return FetchLeagueResult{
		Season:     snapshot.Season,
		LeagueID:   snapshot.League.ID,
		LeagueName: snapshot.League.Name,
		Managers:   len(snapshot.Managers),
		Players:    len(snapshot.Players),
		Gameweeks:  len(snapshot.Gameweeks),
		Skipped:    skipped,
		FetchedAt:  snapshot.FetchedAt,
	}
}
