package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
	"github.com/riskibarqy/fpl-superlatives/internal/infrastructure/repository/memory"
	seasonmock "github.com/riskibarqy/fpl-superlatives/internal/mocks/domain/season"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

// fakeProvider serves the fixture snapshot as if it came from upstream.
type fakeProvider struct {
	snapshot season.Snapshot

	mu             sync.Mutex
	historyCalls   map[string]int
	picksCalls     int32
	failPlayerID   string
	bootstrapCalls int32
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		snapshot:     fixtureSnapshot(),
		historyCalls: make(map[string]int),
	}
}

func (f *fakeProvider) FetchBootstrap(context.Context) (ExternalBootstrap, error) {
	atomic.AddInt32(&f.bootstrapCalls, 1)

	out := ExternalBootstrap{Gameweeks: f.snapshot.Gameweeks}
	for _, item := range f.snapshot.Players {
		item.History = nil
		out.Players = append(out.Players, item)
	}
	// An unpicked player whose history must not be fetched.
	out.Players = append(out.Players, player.Player{ID: "99", WebName: "Unpicked", Position: player.PositionForward})
	return out, nil
}

func (f *fakeProvider) FetchPlayerHistory(_ context.Context, playerID string) ([]player.FixtureResult, error) {
	f.mu.Lock()
	f.historyCalls[playerID]++
	f.mu.Unlock()

	if playerID == f.failPlayerID {
		return nil, fmt.Errorf("%w: upstream returned 503", ErrDependencyUnavailable)
	}
	return f.snapshot.Players[playerID].History, nil
}

func (f *fakeProvider) FetchLeagueStandings(_ context.Context, leagueID int64) (ExternalLeague, error) {
	out := ExternalLeague{ID: leagueID, Name: f.snapshot.League.Name}
	for idx, item := range f.snapshot.Managers {
		out.Standings = append(out.Standings, season.StandingItem{
			ManagerID:  item.ID,
			TeamName:   item.TeamName,
			PlayerName: item.Name,
			Rank:       idx + 1,
		})
	}
	return out, nil
}

func (f *fakeProvider) FetchEntryHistory(_ context.Context, entryID string) (ExternalEntryHistory, error) {
	item, ok := f.manager(entryID)
	if !ok {
		return ExternalEntryHistory{}, fmt.Errorf("%w: entry %s", ErrNotFound, entryID)
	}

	history := make([]manager.GameweekEntry, 0, len(item.History))
	for _, entry := range item.History {
		entry.Picks = nil
		history = append(history, entry)
	}
	return ExternalEntryHistory{History: history, Chips: item.Chips}, nil
}

func (f *fakeProvider) FetchEntryPicks(_ context.Context, entryID string, gameweek int) (ExternalEntryPicks, error) {
	atomic.AddInt32(&f.picksCalls, 1)

	item, _ := f.manager(entryID)
	entry, _ := item.Entry(gameweek)
	out := ExternalEntryPicks{Picks: entry.Picks}
	for _, sub := range item.AutoSubs {
		if sub.Gameweek == gameweek {
			out.AutoSubs = append(out.AutoSubs, sub)
		}
	}
	if chip, ok := item.ChipIn(gameweek); ok {
		out.ActiveChip = string(chip)
	}
	return out, nil
}

func (f *fakeProvider) FetchEntryTransfers(_ context.Context, entryID string) ([]manager.Transfer, error) {
	item, _ := f.manager(entryID)
	return item.Transfers, nil
}

func (f *fakeProvider) manager(entryID string) (manager.Manager, bool) {
	for _, item := range f.snapshot.Managers {
		if item.ID == entryID {
			return item, true
		}
	}
	return manager.Manager{}, false
}

func newTestIngestionService(provider SeasonDataProvider, repo season.Repository) *IngestionService {
	service := NewIngestionService(provider, repo, 3, logging.NewNop())
	service.now = func() time.Time { return time.Date(2025, 5, 26, 8, 0, 0, 0, time.UTC) }
	return service
}

func TestIngestionService_FetchLeague(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newFakeProvider()
	repo := memory.NewSeasonRepository()

	result, err := newTestIngestionService(provider, repo).FetchLeague(ctx, FetchLeagueInput{Season: testSeason, LeagueID: 314})
	if err != nil {
		t.Fatalf("FetchLeague error: %v", err)
	}
	if result.Skipped || result.Managers != 3 || result.Players != 18 || result.Gameweeks != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}

	snapshot, err := repo.Load(ctx, testSeason, 314)
	if err != nil {
		t.Fatalf("load saved snapshot: %v", err)
	}
	if got := len(snapshot.Players["10"].History); got != 2 {
		t.Fatalf("unexpected history rows for picked player: got=%d want=2", got)
	}
	if got := len(snapshot.Players["99"].History); got != 0 {
		t.Fatalf("unpicked player should have no history: got=%d", got)
	}
	if provider.historyCalls["99"] != 0 || provider.historyCalls["900"] != 0 {
		t.Fatalf("unexpected history calls: %v", provider.historyCalls)
	}
	if got := atomic.LoadInt32(&provider.picksCalls); got != 6 {
		t.Fatalf("unexpected picks calls: got=%d want=6", got)
	}

	alice := snapshot.Managers[0]
	if alice.ID != "100" || len(alice.AutoSubs) != 1 || len(alice.Transfers) != 1 || len(alice.History[1].Picks) != 16 {
		t.Fatalf("unexpected manager data: %+v", alice)
	}

	// The stored snapshot is analysable as is.
	view, err := season.NewView(snapshot, false)
	if err != nil {
		t.Fatalf("NewView on fetched snapshot: %v", err)
	}
	rows, err := NewSimulationService(testEngineConfig(), logging.NewNop()).OpeningSquadStandings(ctx, view)
	if err != nil {
		t.Fatalf("OpeningSquadStandings on fetched snapshot: %v", err)
	}
	if rows[0].ManagerName != "Alice" || rows[0].TotalPoints != 56 {
		t.Fatalf("unexpected leader: got=%s/%d want=Alice/56", rows[0].ManagerName, rows[0].TotalPoints)
	}
}

func TestIngestionService_FetchLeague_SkipsExistingSnapshotUsingMockery(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	repo := seasonmock.NewRepository(t)
	repo.
		On("Load", mock.Anything, testSeason, int64(314)).
		Return(fixtureSnapshot(), nil).
		Once()

	result, err := newTestIngestionService(provider, repo).FetchLeague(context.Background(), FetchLeagueInput{Season: testSeason, LeagueID: 314})
	if err != nil {
		t.Fatalf("FetchLeague error: %v", err)
	}
	if !result.Skipped {
		t.Fatalf("expected fetch to be skipped")
	}
	if got := atomic.LoadInt32(&provider.bootstrapCalls); got != 0 {
		t.Fatalf("upstream called for existing snapshot: got=%d calls", got)
	}
}

func TestIngestionService_FetchLeague_ForceRefetchesUsingMockery(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	repo := seasonmock.NewRepository(t)
	repo.
		On("Save", mock.Anything, mock.MatchedBy(func(v season.Snapshot) bool {
			return v.Season == testSeason && v.League.ID == 314 && len(v.Managers) == 3
		})).
		Return(nil).
		Once()

	result, err := newTestIngestionService(provider, repo).FetchLeague(context.Background(), FetchLeagueInput{
		Season:   testSeason,
		LeagueID: 314,
		Force:    true,
	})
	if err != nil {
		t.Fatalf("FetchLeague error: %v", err)
	}
	if result.Skipped {
		t.Fatalf("forced fetch must not be skipped")
	}
}

func TestIngestionService_FetchLeague_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   FetchLeagueInput
		setup   func(provider *fakeProvider, repo *seasonmock.Repository)
		wantErr error
	}{
		{
			name:    "missing season",
			input:   FetchLeagueInput{Season: "  ", LeagueID: 314},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative workers",
			input:   FetchLeagueInput{Season: testSeason, LeagueID: 314, MaxWorkers: -1},
			wantErr: ErrInvalidInput,
		},
		{
			name:  "player history unavailable",
			input: FetchLeagueInput{Season: testSeason, LeagueID: 314, Force: true},
			setup: func(provider *fakeProvider, _ *seasonmock.Repository) {
				provider.failPlayerID = "7"
			},
			wantErr: ErrDependencyUnavailable,
		},
		{
			name:  "repository failure",
			input: FetchLeagueInput{Season: testSeason, LeagueID: 314},
			setup: func(_ *fakeProvider, repo *seasonmock.Repository) {
				repo.On("Load", mock.Anything, testSeason, int64(314)).
					Return(season.Snapshot{}, errors.New("disk on fire")).
					Once()
			},
			wantErr: nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			provider := newFakeProvider()
			repo := seasonmock.NewRepository(t)
			if tc.setup != nil {
				tc.setup(provider, repo)
			}

			_, err := newTestIngestionService(provider, repo).FetchLeague(context.Background(), tc.input)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.wantErr)
			}
		})
	}
}
