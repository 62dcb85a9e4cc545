package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vasek03/tip-league/metrics"
	"github.com/Vasek03/tip-league/models"
	"github.com/Vasek03/tip-league/repositories"
)

type PredictionService interface {
	// SubmitTip creates or replaces the caller's tip for a match. The lock is
	// evaluated server-side at the instant of the write.
	SubmitTip(ctx context.Context, input SubmitTipInput) (*models.Prediction, error)
	ListUserTips(ctx context.Context, userID int) ([]models.Prediction, error)
	// ListMatchTips returns everyone's tips for a match; tips stay hidden
	// until the match locks.
	ListMatchTips(ctx context.Context, matchID int) ([]models.Prediction, error)
}

type SubmitTipInput struct {
	UserID       int   `json:"-"`
	MatchID      int   `json:"-"`
	HomeScoreTip int   `json:"home_score_tip"`
	AwayScoreTip int   `json:"away_score_tip"`
	BonusAnswer  *bool `json:"bonus_answer,omitempty"`
}

type predictionService struct {
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	now            func() time.Time
}

func NewPredictionService(
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
) PredictionService {
	return &predictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		now:            time.Now,
	}
}

func (s *predictionService) SubmitTip(ctx context.Context, input SubmitTipInput) (*models.Prediction, error) {
	if input.HomeScoreTip < 0 || input.AwayScoreTip < 0 {
		return nil, ErrScoreNegative
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", input.MatchID, err)
	}

	if match.IsLocked(s.now()) {
		return nil, ErrPredictionLocked
	}

	prediction := &models.Prediction{
		UserID:       input.UserID,
		MatchID:      input.MatchID,
		HomeScoreTip: input.HomeScoreTip,
		AwayScoreTip: input.AwayScoreTip,
		BonusAnswer:  input.BonusAnswer,
	}
	if err := s.predictionRepo.Upsert(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to save tip for user %d match %d: %w", input.UserID, input.MatchID, err)
	}

	metrics.PredictionsSubmitted.Inc()
	return prediction, nil
}

func (s *predictionService) ListUserTips(ctx context.Context, userID int) ([]models.Prediction, error) {
	tips, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tips for user %d: %w", userID, err)
	}
	return tips, nil
}

func (s *predictionService) ListMatchTips(ctx context.Context, matchID int) ([]models.Prediction, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	if !match.IsLocked(s.now()) {
		return nil, ErrMatchNotLocked
	}

	tips, err := s.predictionRepo.ListByMatch(ctx, nil, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tips for match %d: %w", matchID, err)
	}

	result := make([]models.Prediction, 0, len(tips))
	for _, tip := range tips {
		if tip != nil {
			result = append(result, *tip)
		}
	}
	return result, nil
}
