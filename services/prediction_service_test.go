package services

import (
	"context"
	"testing"
	"time"

	"github.com/Vasek03/tip-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPredictionServiceForTest(matchRepo *fakeMatchRepo, predictionRepo *fakePredictionRepo, now time.Time) *predictionService {
	return &predictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		now:            func() time.Time { return now },
	}
}

func TestSubmitTipRejectsNegativeScores(t *testing.T) {
	svc := newPredictionServiceForTest(&fakeMatchRepo{}, &fakePredictionRepo{}, time.Now())

	_, err := svc.SubmitTip(context.Background(), SubmitTipInput{
		UserID: 1, MatchID: 1, HomeScoreTip: -1, AwayScoreTip: 0,
	})
	assert.ErrorIs(t, err, ErrScoreNegative)
}

func TestSubmitTipUnknownMatch(t *testing.T) {
	svc := newPredictionServiceForTest(&fakeMatchRepo{}, &fakePredictionRepo{}, time.Now())

	_, err := svc.SubmitTip(context.Background(), SubmitTipInput{
		UserID: 1, MatchID: 42, HomeScoreTip: 1, AwayScoreTip: 0,
	})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSubmitTipLockWindow(t *testing.T) {
	kickoff := time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"61 minutes before kickoff", kickoff.Add(-61 * time.Minute), nil},
		{"exactly 60 minutes before kickoff", kickoff.Add(-60 * time.Minute), ErrPredictionLocked},
		{"30 minutes before kickoff", kickoff.Add(-30 * time.Minute), ErrPredictionLocked},
		{"at kickoff", kickoff, ErrPredictionLocked},
		{"after the match", kickoff.Add(2 * time.Hour), ErrPredictionLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matchRepo := &fakeMatchRepo{matches: map[int]*models.Match{
				7: {ID: 7, HomeTeam: "HC Plzen", Opponent: "HC Sparta", MatchTime: kickoff},
			}}
			predictionRepo := &fakePredictionRepo{}
			svc := newPredictionServiceForTest(matchRepo, predictionRepo, tt.now)

			tip, err := svc.SubmitTip(context.Background(), SubmitTipInput{
				UserID: 1, MatchID: 7, HomeScoreTip: 3, AwayScoreTip: 2,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, predictionRepo.upserted)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, tip)
			assert.Equal(t, 3, tip.HomeScoreTip)
			assert.Equal(t, 2, tip.AwayScoreTip)
			assert.Len(t, predictionRepo.upserted, 1)
		})
	}
}

func TestSubmitTipReplacesExistingTip(t *testing.T) {
	kickoff := time.Now().Add(3 * time.Hour)
	matchRepo := &fakeMatchRepo{matches: map[int]*models.Match{
		1: {ID: 1, HomeTeam: "HC Plzen", Opponent: "HC Trinec", MatchTime: kickoff},
	}}
	predictionRepo := &fakePredictionRepo{}
	svc := newPredictionServiceForTest(matchRepo, predictionRepo, time.Now())

	_, err := svc.SubmitTip(context.Background(), SubmitTipInput{
		UserID: 5, MatchID: 1, HomeScoreTip: 1, AwayScoreTip: 1,
	})
	require.NoError(t, err)

	answer := true
	tip, err := svc.SubmitTip(context.Background(), SubmitTipInput{
		UserID: 5, MatchID: 1, HomeScoreTip: 4, AwayScoreTip: 2, BonusAnswer: &answer,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, tip.HomeScoreTip)
	require.NotNil(t, tip.BonusAnswer)
	assert.True(t, *tip.BonusAnswer)
}

func TestListMatchTipsHiddenUntilLocked(t *testing.T) {
	kickoff := time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC)
	matchRepo := &fakeMatchRepo{matches: map[int]*models.Match{
		3: {ID: 3, HomeTeam: "HC Plzen", Opponent: "HC Kometa", MatchTime: kickoff},
	}}
	predictionRepo := &fakePredictionRepo{byMatch: map[int][]*models.Prediction{
		3: {{ID: 1, UserID: 2, MatchID: 3, HomeScoreTip: 2, AwayScoreTip: 1}},
	}}

	// Before the lock the tips stay hidden.
	svc := newPredictionServiceForTest(matchRepo, predictionRepo, kickoff.Add(-2*time.Hour))
	_, err := svc.ListMatchTips(context.Background(), 3)
	assert.ErrorIs(t, err, ErrMatchNotLocked)

	// At the lock boundary they become visible.
	svc = newPredictionServiceForTest(matchRepo, predictionRepo, kickoff.Add(-time.Hour))
	tips, err := svc.ListMatchTips(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, 2, tips[0].HomeScoreTip)
}
