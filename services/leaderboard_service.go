package services

import (
	"context"
	"fmt"

	"github.com/Vasek03/tip-league/models"
	"github.com/Vasek03/tip-league/repositories"
)

type LeaderboardService interface {
	// GetLeaderboard returns all users ordered by total points descending,
	// ties broken by user id. Read-only and safe to call concurrently with
	// settlement; it observes either a fully settled or fully prior state.
	GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	profileRepo repositories.ProfileRepository
}

func NewLeaderboardService(profileRepo repositories.ProfileRepository) LeaderboardService {
	return &leaderboardService{profileRepo: profileRepo}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := s.profileRepo.ListLeaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return entries, nil
}
