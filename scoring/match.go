// Package scoring holds the pure point engines of the contest. Everything in
// here is deterministic integer arithmetic with no side effects; persistence
// and transactions belong to the settlement service.
package scoring

import "github.com/Vasek03/tip-league/models"

const (
	outcomePoints   = 2
	exactHomePoints = 2
	exactAwayPoints = 2
	perfectBonus    = 2
)

// MatchPoints awards points for one tip against a finished match. The four
// sub-awards are independent and stack: correct outcome (+2), exact home
// score (+2), exact away score (+2), and a perfect-tip bonus (+2), so a
// perfect tip is worth 8. An unfinished match always yields 0; the settlement
// orchestrator never calls it in that state, but the engine stays defensive.
func MatchPoints(prediction *models.Prediction, match *models.Match) int {
	if prediction == nil || match == nil {
		return 0
	}
	if !match.IsFinished || match.HomeScore == nil || match.AwayScore == nil {
		return 0
	}

	homeScore := *match.HomeScore
	awayScore := *match.AwayScore

	points := 0

	if outcome(prediction.HomeScoreTip, prediction.AwayScoreTip) == outcome(homeScore, awayScore) {
		points += outcomePoints
	}
	if prediction.HomeScoreTip == homeScore {
		points += exactHomePoints
	}
	if prediction.AwayScoreTip == awayScore {
		points += exactAwayPoints
	}
	if prediction.HomeScoreTip == homeScore && prediction.AwayScoreTip == awayScore {
		points += perfectBonus
	}

	return points
}

type matchOutcome int

const (
	outcomeHomeWin matchOutcome = iota
	outcomeAwayWin
	outcomeDraw
)

func outcome(home, away int) matchOutcome {
	switch {
	case home > away:
		return outcomeHomeWin
	case home < away:
		return outcomeAwayWin
	default:
		return outcomeDraw
	}
}
