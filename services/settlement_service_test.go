package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Vasek03/tip-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These cover the validation that runs before any transaction is opened.

func newSettlementServiceForTest(teamRepo *fakeTeamRepo) *settlementService {
	return &settlementService{
		teamRepo: teamRepo,
		logger:   slog.Default(),
	}
}

func TestFinalizeMatchRequiresBothScores(t *testing.T) {
	svc := newSettlementServiceForTest(&fakeTeamRepo{})
	home := 3

	tests := []struct {
		name  string
		input FinalizeMatchInput
	}{
		{"both scores missing", FinalizeMatchInput{MatchID: 1}},
		{"away score missing", FinalizeMatchInput{MatchID: 1, HomeScore: &home}},
		{"home score missing", FinalizeMatchInput{MatchID: 1, AwayScore: &home}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FinalizeMatch(context.Background(), tt.input)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestFinalizeMatchRejectsNegativeScores(t *testing.T) {
	svc := newSettlementServiceForTest(&fakeTeamRepo{})
	home, away := 2, -1

	_, err := svc.FinalizeMatch(context.Background(), FinalizeMatchInput{
		MatchID: 1, HomeScore: &home, AwayScore: &away,
	})
	assert.ErrorIs(t, err, ErrScoreNegative)
}

func TestFinalizeRankingValidatesOrderFirst(t *testing.T) {
	svc := newSettlementServiceForTest(&fakeTeamRepo{teams: fourTeams()})

	t.Run("incomplete order", func(t *testing.T) {
		_, err := svc.FinalizeRanking(context.Background(), FinalizeRankingInput{
			Items: []RankingItemInput{{TeamID: 1, Position: 1}},
		})
		assert.ErrorIs(t, err, ErrRankingIncomplete)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := svc.FinalizeRanking(context.Background(), FinalizeRankingInput{
			Items: []RankingItemInput{
				{TeamID: 1, Position: 1},
				{TeamID: 2, Position: 2},
				{TeamID: 3, Position: 3},
				{TeamID: 77, Position: 4},
			},
		})
		assert.ErrorIs(t, err, ErrRankingUnknownTeam)
	})

	t.Run("no teams configured", func(t *testing.T) {
		empty := newSettlementServiceForTest(&fakeTeamRepo{})
		_, err := empty.FinalizeRanking(context.Background(), FinalizeRankingInput{
			Items: []RankingItemInput{{TeamID: 1, Position: 1}},
		})
		assert.ErrorIs(t, err, ErrNoTeamsConfigured)
	})
}

func TestApplyFinalOrderReplacesOverlappingOrder(t *testing.T) {
	// A stored order already exists; the corrected order permutes it, so
	// every new position collides with one still held by another team unless
	// the old order is cleared first.
	teams := fourTeams()
	for i := range teams {
		p := i + 1
		teams[i].FinalPosition = &p
	}
	teamRepo := &fakeTeamRepo{teams: teams}
	svc := newSettlementServiceForTest(teamRepo)

	positions, err := svc.applyFinalOrder(context.Background(), nil, teamRepo.teams, []RankingItemInput{
		{TeamID: 1, Position: 2},
		{TeamID: 2, Position: 1},
		{TeamID: 3, Position: 4},
		{TeamID: 4, Position: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, teamRepo.cleared)
	assert.Equal(t, map[int]int{1: 2, 2: 1, 3: 4, 4: 3}, positions)

	for _, team := range teamRepo.teams {
		require.NotNil(t, team.FinalPosition)
		assert.Equal(t, positions[team.ID], *team.FinalPosition)
	}
}

func TestApplyFinalOrderRevalidatesAgainstCurrentTeams(t *testing.T) {
	// The team set may have grown between the pre-check and the settlement
	// lock; the order is validated again against the list read inside it.
	grown := append(fourTeams(), models.Team{ID: 5, Name: "HC Litvinov"})
	teamRepo := &fakeTeamRepo{teams: grown}
	svc := newSettlementServiceForTest(teamRepo)

	_, err := svc.applyFinalOrder(context.Background(), nil, teamRepo.teams, []RankingItemInput{
		{TeamID: 1, Position: 1},
		{TeamID: 2, Position: 2},
		{TeamID: 3, Position: 3},
		{TeamID: 4, Position: 4},
	})
	assert.ErrorIs(t, err, ErrRankingIncomplete)
	assert.Zero(t, teamRepo.cleared)
}
