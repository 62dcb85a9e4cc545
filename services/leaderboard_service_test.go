package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Vasek03/tip-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLeaderboardPreservesRepositoryOrder(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{UserID: 3, Nickname: "pepa", TotalPoints: 27},
		{UserID: 1, Nickname: "vasek", TotalPoints: 27},
		{UserID: 2, Nickname: "honza", TotalPoints: 14},
	}
	svc := NewLeaderboardService(&fakeProfileRepo{entries: entries})

	got, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].TotalPoints, got[i].TotalPoints)
	}
	assert.Equal(t, entries, got)
}

func TestGetLeaderboardWrapsRepositoryError(t *testing.T) {
	repoErr := errors.New("connection refused")
	svc := NewLeaderboardService(&fakeProfileRepo{listErr: repoErr})

	_, err := svc.GetLeaderboard(context.Background())
	assert.ErrorIs(t, err, repoErr)
}
