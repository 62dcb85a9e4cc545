package services

import (
	"context"
	"testing"
	"time"

	"github.com/Vasek03/tip-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourTeams() []models.Team {
	return []models.Team{
		{ID: 1, Name: "HC Plzen"},
		{ID: 2, Name: "HC Sparta"},
		{ID: 3, Name: "HC Trinec"},
		{ID: 4, Name: "HC Kometa"},
	}
}

func TestValidateRankingOrder(t *testing.T) {
	tests := []struct {
		name    string
		teams   []models.Team
		items   []RankingItemInput
		wantErr error
	}{
		{
			name:  "valid complete order",
			teams: fourTeams(),
			items: []RankingItemInput{
				{TeamID: 3, Position: 1},
				{TeamID: 1, Position: 2},
				{TeamID: 4, Position: 3},
				{TeamID: 2, Position: 4},
			},
		},
		{
			name:    "no teams configured",
			teams:   nil,
			items:   []RankingItemInput{{TeamID: 1, Position: 1}},
			wantErr: ErrNoTeamsConfigured,
		},
		{
			name:    "too few items",
			teams:   fourTeams(),
			items:   []RankingItemInput{{TeamID: 1, Position: 1}, {TeamID: 2, Position: 2}},
			wantErr: ErrRankingIncomplete,
		},
		{
			name:  "unknown team",
			teams: fourTeams(),
			items: []RankingItemInput{
				{TeamID: 1, Position: 1},
				{TeamID: 2, Position: 2},
				{TeamID: 3, Position: 3},
				{TeamID: 99, Position: 4},
			},
			wantErr: ErrRankingUnknownTeam,
		},
		{
			name:  "team listed twice",
			teams: fourTeams(),
			items: []RankingItemInput{
				{TeamID: 1, Position: 1},
				{TeamID: 1, Position: 2},
				{TeamID: 3, Position: 3},
				{TeamID: 4, Position: 4},
			},
			wantErr: ErrRankingIncomplete,
		},
		{
			name:  "position out of range",
			teams: fourTeams(),
			items: []RankingItemInput{
				{TeamID: 1, Position: 1},
				{TeamID: 2, Position: 2},
				{TeamID: 3, Position: 3},
				{TeamID: 4, Position: 5},
			},
			wantErr: ErrRankingPositionOutOfRange,
		},
		{
			name:  "position zero",
			teams: fourTeams(),
			items: []RankingItemInput{
				{TeamID: 1, Position: 0},
				{TeamID: 2, Position: 1},
				{TeamID: 3, Position: 2},
				{TeamID: 4, Position: 3},
			},
			wantErr: ErrRankingPositionOutOfRange,
		},
		{
			name:  "duplicate position",
			teams: fourTeams(),
			items: []RankingItemInput{
				{TeamID: 1, Position: 1},
				{TeamID: 2, Position: 1},
				{TeamID: 3, Position: 3},
				{TeamID: 4, Position: 4},
			},
			wantErr: ErrRankingPositionDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRankingOrder(tt.teams, tt.items)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetUserRankingNotFound(t *testing.T) {
	svc := &rankingService{rankingRepo: &fakeRankingRepo{}}

	_, err := svc.GetUserRanking(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSubmittedRankingsRequiresOwnSubmission(t *testing.T) {
	now := time.Now()
	submitted := &models.TeamRanking{ID: 1, UserID: 1, IsSubmitted: true, SubmittedAt: &now}
	other := &models.TeamRanking{ID: 2, UserID: 2, IsSubmitted: true, SubmittedAt: &now}

	t.Run("nothing submitted yet", func(t *testing.T) {
		svc := &rankingService{rankingRepo: &fakeRankingRepo{}}
		_, err := svc.ListSubmittedRankings(context.Background(), 1)
		assert.ErrorIs(t, err, ErrRankingNotSubmitted)
	})

	t.Run("draft only", func(t *testing.T) {
		draft := &models.TeamRanking{ID: 1, UserID: 1, IsSubmitted: false}
		svc := &rankingService{rankingRepo: &fakeRankingRepo{
			byUser: map[int]*models.TeamRanking{1: draft},
		}}
		_, err := svc.ListSubmittedRankings(context.Background(), 1)
		assert.ErrorIs(t, err, ErrRankingNotSubmitted)
	})

	t.Run("submitted sees everyone", func(t *testing.T) {
		svc := &rankingService{rankingRepo: &fakeRankingRepo{
			byUser:    map[int]*models.TeamRanking{1: submitted},
			submitted: []*models.TeamRanking{submitted, other},
		}}
		rankings, err := svc.ListSubmittedRankings(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, rankings, 2)
	})
}
