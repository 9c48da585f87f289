package season

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
)

var ErrNoFinishedGameweek = errors.New("season has no finished gameweek")

// HistoricStanding is one manager's cumulative position after a gameweek.
type HistoricStanding struct {
	ManagerID   string
	Name        string
	TotalPoints int
}

// View is the season context shared by every statistic for one analysis run.
// All derived values are computed by NewView; a View is never mutated after
// construction and may be shared between goroutines.
type View struct {
	snapshot  Snapshot
	store     *RecordStore
	gameweeks []Gameweek
	latest    Gameweek
	finished  []int
	standings [][]HistoricStanding
}

// NewView derives the season context. With live set, the current (unfinished)
// gameweek is reported as latest when one exists.
func NewView(snapshot Snapshot, live bool) (*View, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("validate snapshot %s: %w", Key(snapshot.Season, snapshot.League.ID), err)
	}

	gameweeks := append([]Gameweek(nil), snapshot.Gameweeks...)
	sort.SliceStable(gameweeks, func(i, j int) bool {
		return gameweeks[i].ID < gameweeks[j].ID
	})

	finished := make([]int, 0, len(gameweeks))
	var latest Gameweek
	hasLatest := false
	for _, gw := range gameweeks {
		if gw.Finished {
			finished = append(finished, gw.ID)
			latest = gw
			hasLatest = true
		}
	}
	if live {
		for _, gw := range gameweeks {
			if gw.IsCurrent {
				latest = gw
				hasLatest = true
				break
			}
		}
	}
	if !hasLatest {
		return nil, ErrNoFinishedGameweek
	}

	return &View{
		snapshot:  snapshot,
		store:     NewRecordStore(snapshot.Players),
		gameweeks: gameweeks,
		latest:    latest,
		finished:  finished,
		standings: buildHistoricStandings(snapshot.Managers, finished),
	}, nil
}

func buildHistoricStandings(managers []manager.Manager, finished []int) [][]HistoricStanding {
	out := make([][]HistoricStanding, 0, len(finished))
	lastTotal := make(map[string]int, len(managers))
	for _, gw := range finished {
		rows := make([]HistoricStanding, 0, len(managers))
		for _, item := range managers {
			total := lastTotal[item.ID]
			if entry, ok := item.Entry(gw); ok {
				total = entry.TotalPoints
			}
			lastTotal[item.ID] = total
			rows = append(rows, HistoricStanding{
				ManagerID:   item.ID,
				Name:        item.Name,
				TotalPoints: total,
			})
		}

		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].TotalPoints != rows[j].TotalPoints {
				return rows[i].TotalPoints > rows[j].TotalPoints
			}
			return rows[i].ManagerID < rows[j].ManagerID
		})
		out = append(out, rows)
	}

	return out
}

func (v *View) Season() string {
	return v.snapshot.Season
}

func (v *View) League() League {
	return v.snapshot.League
}

func (v *View) Store() *RecordStore {
	return v.store
}

func (v *View) Managers() []manager.Manager {
	return v.snapshot.Managers
}

func (v *View) Manager(id string) (manager.Manager, bool) {
	for _, item := range v.snapshot.Managers {
		if item.ID == id {
			return item, true
		}
	}
	return manager.Manager{}, false
}

// FirstGameweek is the opening gameweek of the season.
func (v *View) FirstGameweek() int {
	if len(v.gameweeks) == 0 {
		return 0
	}
	return v.gameweeks[0].ID
}

func (v *View) LatestGameweek() Gameweek {
	return v.latest
}

// FinishedGameweeks lists finished gameweek numbers in ascending order.
func (v *View) FinishedGameweeks() []int {
	return v.finished
}

// HistoricStandings holds one ranking per finished gameweek, best first.
func (v *View) HistoricStandings() [][]HistoricStanding {
	return v.standings
}
