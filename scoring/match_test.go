package scoring

import (
	"testing"
	"time"

	"github.com/Vasek03/tip-league/models"
	"github.com/stretchr/testify/assert"
)

func finishedMatch(home, away int) *models.Match {
	return &models.Match{
		ID:         1,
		HomeTeam:   "Ostrava",
		Opponent:   "Vítkovice",
		MatchTime:  time.Date(2025, 10, 4, 18, 0, 0, 0, time.UTC),
		HomeScore:  &home,
		AwayScore:  &away,
		IsFinished: true,
	}
}

func tip(home, away int) *models.Prediction {
	return &models.Prediction{UserID: 1, MatchID: 1, HomeScoreTip: home, AwayScoreTip: away}
}

func TestMatchPoints(t *testing.T) {
	tests := []struct {
		name       string
		tipHome    int
		tipAway    int
		actualHome int
		actualAway int
		want       int
	}{
		{"perfect tip", 1, 0, 1, 0, 8},
		{"perfect draw", 2, 2, 2, 2, 8},
		{"outcome only", 2, 1, 3, 0, 2},
		{"outcome and exact home", 3, 1, 3, 0, 4},
		{"outcome and exact away", 2, 0, 3, 0, 4},
		{"exact home, wrong outcome", 1, 3, 1, 0, 2},
		{"exact away, wrong outcome", 0, 2, 3, 2, 2},
		{"fully wrong", 0, 3, 2, 1, 0},
		{"draw tipped, home won", 1, 1, 2, 0, 0},
		{"home win tipped, draw played, away score exact", 2, 1, 1, 1, 2},
		{"home win tipped, different draw played", 2, 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchPoints(tip(tt.tipHome, tt.tipAway), finishedMatch(tt.actualHome, tt.actualAway))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchPointsRange(t *testing.T) {
	// Every combination over a small score grid must land on one of the
	// reachable totals and never go negative.
	allowed := map[int]bool{0: true, 2: true, 4: true, 6: true, 8: true}

	for tipHome := 0; tipHome <= 4; tipHome++ {
		for tipAway := 0; tipAway <= 4; tipAway++ {
			for actualHome := 0; actualHome <= 4; actualHome++ {
				for actualAway := 0; actualAway <= 4; actualAway++ {
					got := MatchPoints(tip(tipHome, tipAway), finishedMatch(actualHome, actualAway))
					assert.Truef(t, allowed[got],
						"tip %d:%d vs actual %d:%d scored %d", tipHome, tipAway, actualHome, actualAway, got)
				}
			}
		}
	}
}

func TestMatchPointsUnfinishedMatch(t *testing.T) {
	match := &models.Match{ID: 1, MatchTime: time.Now()}
	assert.Equal(t, 0, MatchPoints(tip(1, 0), match))

	// A finished flag without scores is an inconsistent record; the engine
	// must not award anything for it.
	broken := &models.Match{ID: 1, IsFinished: true}
	assert.Equal(t, 0, MatchPoints(tip(1, 0), broken))
}

func TestMatchPointsNilInputs(t *testing.T) {
	assert.Equal(t, 0, MatchPoints(nil, finishedMatch(1, 0)))
	assert.Equal(t, 0, MatchPoints(tip(1, 0), nil))
}
