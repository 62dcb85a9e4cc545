package models

import "time"

// lockWindow is how long before kickoff tips close.
const lockWindow = time.Hour

// Match is a fixture of the season. Invariant: IsFinished is true iff both
// scores are non-nil; finishing is one-way in normal operation and may only
// be repeated through a forced, audited re-settlement.
type Match struct {
	ID            int       `json:"id"`
	HomeTeam      string    `json:"home_team"`
	Opponent      string    `json:"opponent"`
	MatchTime     time.Time `json:"match_time"`
	Location      string    `json:"location"`
	BonusQuestion *string   `json:"bonus_question,omitempty"`
	HomeScore     *int      `json:"home_score,omitempty"`
	AwayScore     *int      `json:"away_score,omitempty"`
	IsFinished    bool      `json:"is_finished"`
}

// IsLocked reports whether tips for the match can no longer be created or
// changed. The cutoff is one hour before kickoff; at exactly one hour the
// match counts as locked.
func (m *Match) IsLocked(now time.Time) bool {
	return !now.Before(m.MatchTime.Add(-lockWindow))
}
