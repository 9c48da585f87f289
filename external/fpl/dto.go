package fpl

import "time"

type bootstrapResponse struct {
	Events   []eventItem   `json:"events"`
	Elements []elementItem `json:"elements"`
}

type eventItem struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Finished     bool      `json:"finished"`
	IsCurrent    bool      `json:"is_current"`
	DeadlineTime time.Time `json:"deadline_time"`
}

// elementItem is one player row of bootstrap-static. Rates come as decimal
// strings.
type elementItem struct {
	ID                int    `json:"id"`
	Code              int    `json:"code"`
	WebName           string `json:"web_name"`
	FirstName         string `json:"first_name"`
	SecondName        string `json:"second_name"`
	Team              int    `json:"team"`
	ElementType       int    `json:"element_type"`
	Status            string `json:"status"`
	TotalPoints       int    `json:"total_points"`
	PointsPerGame     string `json:"points_per_game"`
	SelectedByPercent string `json:"selected_by_percent"`
	Minutes           int    `json:"minutes"`
	GoalsScored       int    `json:"goals_scored"`
	Assists           int    `json:"assists"`
	CleanSheets       int    `json:"clean_sheets"`
	GoalsConceded     int    `json:"goals_conceded"`
	OwnGoals          int    `json:"own_goals"`
	PenaltiesSaved    int    `json:"penalties_saved"`
	PenaltiesMissed   int    `json:"penalties_missed"`
	YellowCards       int    `json:"yellow_cards"`
	RedCards          int    `json:"red_cards"`
	Saves             int    `json:"saves"`
	Bonus             int    `json:"bonus"`
	BPS               int    `json:"bps"`
}

type elementSummaryResponse struct {
	History []elementHistoryItem `json:"history"`
}

type elementHistoryItem struct {
	Element         int       `json:"element"`
	Fixture         int       `json:"fixture"`
	OpponentTeam    int       `json:"opponent_team"`
	TotalPoints     int       `json:"total_points"`
	WasHome         bool      `json:"was_home"`
	KickoffTime     time.Time `json:"kickoff_time"`
	Round           int       `json:"round"`
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
}

type leagueStandingsResponse struct {
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Standings struct {
		HasNext bool           `json:"has_next"`
		Page    int            `json:"page"`
		Results []standingItem `json:"results"`
	} `json:"standings"`
}

type standingItem struct {
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	RankSort   int    `json:"rank_sort"`
	EventTotal int    `json:"event_total"`
	Total      int    `json:"total"`
}

type entryHistoryResponse struct {
	Current []entryEventItem `json:"current"`
	Chips   []chipItem       `json:"chips"`
}

type entryEventItem struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Rank               int `json:"rank"`
	OverallRank        int `json:"overall_rank"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

type chipItem struct {
	Name  string    `json:"name"`
	Time  time.Time `json:"time"`
	Event int       `json:"event"`
}

type entryPicksResponse struct {
	ActiveChip    string        `json:"active_chip"`
	AutomaticSubs []autoSubItem `json:"automatic_subs"`
	Picks         []pickItem    `json:"picks"`
}

type autoSubItem struct {
	Entry      int `json:"entry"`
	ElementIn  int `json:"element_in"`
	ElementOut int `json:"element_out"`
	Event      int `json:"event"`
}

type pickItem struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

type transferItem struct {
	ElementIn      int       `json:"element_in"`
	ElementInCost  int       `json:"element_in_cost"`
	ElementOut     int       `json:"element_out"`
	ElementOutCost int       `json:"element_out_cost"`
	Entry          int       `json:"entry"`
	Event          int       `json:"event"`
	Time           time.Time `json:"time"`
}
