package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vasek03/tip-league/models"
	"github.com/Vasek03/tip-league/repositories"
	"golang.org/x/sync/errgroup"
)

// Dashboard bundles everything a logged-in user sees on their home screen.
type Dashboard struct {
	Profile *models.Profile     `json:"profile"`
	Tips    []models.Prediction `json:"tips"`
	Ranking *models.TeamRanking `json:"ranking,omitempty"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID int) (*Dashboard, error)
}

type dashboardService struct {
	profileRepo    repositories.ProfileRepository
	predictionRepo repositories.PredictionRepository
	rankingRepo    repositories.RankingRepository
}

func NewDashboardService(
	profileRepo repositories.ProfileRepository,
	predictionRepo repositories.PredictionRepository,
	rankingRepo repositories.RankingRepository,
) DashboardService {
	return &dashboardService{
		profileRepo:    profileRepo,
		predictionRepo: predictionRepo,
		rankingRepo:    rankingRepo,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID int) (*Dashboard, error) {
	var dashboard Dashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := s.profileRepo.GetByUserID(gctx, nil, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrProfileNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to load profile for user %d: %w", userID, err)
		}
		dashboard.Profile = profile
		return nil
	})

	g.Go(func() error {
		tips, err := s.predictionRepo.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load tips for user %d: %w", userID, err)
		}
		dashboard.Tips = tips
		return nil
	})

	g.Go(func() error {
		ranking, err := s.rankingRepo.GetByUser(gctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrRankingNotFound) {
				return nil // no ranking submitted yet
			}
			return fmt.Errorf("failed to load ranking for user %d: %w", userID, err)
		}
		dashboard.Ranking = ranking
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
