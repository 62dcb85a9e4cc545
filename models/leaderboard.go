package models

// LeaderboardEntry is one row of the contest standings, ordered by
// TotalPoints descending with user ID as the stable tie-breaker.
type LeaderboardEntry struct {
	UserID      int    `json:"user_id"`
	Nickname    string `json:"nickname"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TotalPoints int    `json:"total_points"`
}
