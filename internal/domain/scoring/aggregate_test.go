package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
)

func TestAggregator_Combine(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	source.add("dgw", player.PositionForward,
		player.FixtureResult{Gameweek: 7, FixtureID: 70, Minutes: 90, GoalsScored: 2, Bonus: 3, BPS: 40, TotalPoints: 13},
		player.FixtureResult{Gameweek: 7, FixtureID: 71, Minutes: 12, YellowCards: 1, BPS: 2, TotalPoints: 0},
		player.FixtureResult{Gameweek: 8, FixtureID: 80, Minutes: 90, TotalPoints: 2},
	)
	source.add("cameo", player.PositionMidfielder,
		player.FixtureResult{Gameweek: 7, FixtureID: 70, Minutes: 0, TotalPoints: 0},
		player.FixtureResult{Gameweek: 7, FixtureID: 71, Minutes: 1, TotalPoints: 1},
	)
	aggregator := NewAggregator(source)

	tests := []struct {
		name       string
		playerID   string
		gameweek   int
		want       CombinedResult
		wantPlayed bool
	}{
		{
			name:     "double gameweek sums every field",
			playerID: "dgw",
			gameweek: 7,
			want: CombinedResult{
				Fixtures:    2,
				Minutes:     102,
				GoalsScored: 2,
				YellowCards: 1,
				Bonus:       3,
				BPS:         42,
				TotalPoints: 13,
			},
			wantPlayed: true,
		},
		{
			name:       "single fixture",
			playerID:   "dgw",
			gameweek:   8,
			want:       CombinedResult{Fixtures: 1, Minutes: 90, TotalPoints: 2},
			wantPlayed: true,
		},
		{
			name:       "one minute in either fixture counts as played",
			playerID:   "cameo",
			gameweek:   7,
			want:       CombinedResult{Fixtures: 2, Minutes: 1, TotalPoints: 1},
			wantPlayed: true,
		},
		{
			name:     "blank gameweek",
			playerID: "dgw",
			gameweek: 9,
			want:     CombinedResult{},
		},
		{
			name:     "unknown player",
			playerID: "ghost",
			gameweek: 7,
			want:     CombinedResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregator.Combine(tt.playerID, tt.gameweek)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected combined result (-want +got):\n%s", diff)
			}
			if got.Played() != tt.wantPlayed {
				t.Fatalf("unexpected played flag: got=%v want=%v", got.Played(), tt.wantPlayed)
			}
		})
	}
}

func TestAggregator_NilSource(t *testing.T) {
	t.Parallel()

	got := NewAggregator(nil).Combine("p1", 1)
	if got != (CombinedResult{}) {
		t.Fatalf("expected zero result, got %+v", got)
	}
}
