package models

import "time"

// Prediction is one user's tip for one match, unique per (user, match).
// PointsEarned is owned by the settlement process; BonusAnswer is the optional
// answer to the match's yes/no bonus question and never affects scoring.
type Prediction struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	MatchID      int       `json:"match_id"`
	HomeScoreTip int       `json:"home_score_tip"`
	AwayScoreTip int       `json:"away_score_tip"`
	BonusAnswer  *bool     `json:"bonus_answer,omitempty"`
	PointsEarned int       `json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Match *Match `json:"match,omitempty"`
	User  *User  `json:"user,omitempty"`
}
