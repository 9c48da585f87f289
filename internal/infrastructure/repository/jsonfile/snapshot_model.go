package jsonfile

import "time"

const snapshotFormatVersion = 1

type snapshotRecord struct {
	Version   int              `json:"version"`
	Season    string           `json:"season"`
	League    leagueRecord     `json:"league"`
	Gameweeks []gameweekRecord `json:"gameweeks"`
	Managers  []managerRecord  `json:"managers"`
	Players   []playerRecord   `json:"players"`
	FetchedAt time.Time        `json:"fetched_at"`
}

type leagueRecord struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Standings []standingRecord `json:"standings,omitempty"`
}

type standingRecord struct {
	ManagerID  string `json:"entry"`
	TeamName   string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	RankSort   int    `json:"rank_sort"`
	EventTotal int    `json:"event_total"`
	Total      int    `json:"total"`
}

type gameweekRecord struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Finished   bool      `json:"finished"`
	IsCurrent  bool      `json:"is_current"`
	DeadlineAt time.Time `json:"deadline_time"`
}

type managerRecord struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	TeamName  string           `json:"team_name"`
	History   []entryRecord    `json:"history"`
	AutoSubs  []autoSubRecord  `json:"automatic_subs,omitempty"`
	Chips     []chipRecord     `json:"chips,omitempty"`
	Transfers []transferRecord `json:"transfers,omitempty"`
}

type entryRecord struct {
	Event              int          `json:"event"`
	Points             int          `json:"points"`
	TotalPoints        int          `json:"total_points"`
	Rank               int          `json:"rank"`
	OverallRank        int          `json:"overall_rank"`
	Bank               int          `json:"bank"`
	Value              int          `json:"value"`
	EventTransfers     int          `json:"event_transfers"`
	EventTransfersCost int          `json:"event_transfers_cost"`
	PointsOnBench      int          `json:"points_on_bench"`
	Picks              []pickRecord `json:"picks,omitempty"`
}

type pickRecord struct {
	Element       string `json:"element"`
	Position      int    `json:"position"`
	Multiplier    int    `json:"multiplier"`
	IsCaptain     bool   `json:"is_captain"`
	IsViceCaptain bool   `json:"is_vice_captain"`
}

type autoSubRecord struct {
	Event      int    `json:"event"`
	ElementIn  string `json:"element_in"`
	ElementOut string `json:"element_out"`
}

type chipRecord struct {
	Event int       `json:"event"`
	Name  string    `json:"name"`
	Time  time.Time `json:"time"`
}

type transferRecord struct {
	Event          int       `json:"event"`
	ElementIn      string    `json:"element_in"`
	ElementInCost  int       `json:"element_in_cost"`
	ElementOut     string    `json:"element_out"`
	ElementOutCost int       `json:"element_out_cost"`
	Time           time.Time `json:"time"`
}

type playerRecord struct {
	ID         string              `json:"id"`
	Code       int                 `json:"code"`
	WebName    string              `json:"web_name"`
	FirstName  string              `json:"first_name"`
	SecondName string              `json:"second_name"`
	TeamID     int                 `json:"team"`
	Position   string              `json:"position"`
	Status     string              `json:"status"`
	Stats      seasonStatsRecord   `json:"stats"`
	History    []fixtureStatRecord `json:"history,omitempty"`
}

type seasonStatsRecord struct {
	TotalPoints     int     `json:"total_points"`
	PointsPerGame   float64 `json:"points_per_game"`
	SelectedByPct   float64 `json:"selected_by_percent"`
	Minutes         int     `json:"minutes"`
	GoalsScored     int     `json:"goals_scored"`
	Assists         int     `json:"assists"`
	CleanSheets     int     `json:"clean_sheets"`
	GoalsConceded   int     `json:"goals_conceded"`
	OwnGoals        int     `json:"own_goals"`
	PenaltiesSaved  int     `json:"penalties_saved"`
	PenaltiesMissed int     `json:"penalties_missed"`
	YellowCards     int     `json:"yellow_cards"`
	RedCards        int     `json:"red_cards"`
	Saves           int     `json:"saves"`
	Bonus           int     `json:"bonus"`
	BPS             int     `json:"bps"`
}

type fixtureStatRecord struct {
	Round           int       `json:"round"`
	Fixture         int       `json:"fixture"`
	OpponentTeam    int       `json:"opponent_team"`
	WasHome         bool      `json:"was_home"`
	KickoffTime     time.Time `json:"kickoff_time"`
	Minutes         int       `json:"minutes"`
	GoalsScored     int       `json:"goals_scored"`
	Assists         int       `json:"assists"`
	CleanSheets     int       `json:"clean_sheets"`
	GoalsConceded   int       `json:"goals_conceded"`
	OwnGoals        int       `json:"own_goals"`
	PenaltiesSaved  int       `json:"penalties_saved"`
	PenaltiesMissed int       `json:"penalties_missed"`
	YellowCards     int       `json:"yellow_cards"`
	RedCards        int       `json:"red_cards"`
	Saves           int       `json:"saves"`
	Bonus           int       `json:"bonus"`
	BPS             int       `json:"bps"`
	TotalPoints     int       `json:"total_points"`
}
