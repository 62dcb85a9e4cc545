package models

import "time"

// TeamRanking is a user's pre-season ordering of all teams. Submission is
// terminal: once IsSubmitted is true the ranking can never be changed by the
// user. PointsEarned is written by ranking settlement only.
type TeamRanking struct {
	ID           int        `json:"id"`
	UserID       int        `json:"user_id"`
	IsSubmitted  bool       `json:"is_submitted"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	PointsEarned int        `json:"points_earned"`

	Items []TeamRankingItem `json:"items,omitempty"`
	User  *User             `json:"user,omitempty"`
}

// TeamRankingItem places one team at one position within a ranking. Within a
// ranking, teams and positions are both unique; a valid ranking covers the
// positions 1..N exactly once.
type TeamRankingItem struct {
	ID        int `json:"id"`
	RankingID int `json:"ranking_id"`
	TeamID    int `json:"team_id"`
	Position  int `json:"position"`

	Team *Team `json:"team,omitempty"`
}
