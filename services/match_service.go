package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vasek03/tip-league/models"
	"github.com/Vasek03/tip-league/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	// ListMatches returns the season schedule. When userID is non-zero the
	// caller's own tips are attached to each match.
	ListMatches(ctx context.Context, userID int) ([]MatchView, error)
}

type CreateMatchInput struct {
	HomeTeam      string    `json:"home_team"`
	Opponent      string    `json:"opponent"`
	MatchTime     time.Time `json:"match_time"`
	Location      string    `json:"location"`
	BonusQuestion *string   `json:"bonus_question,omitempty"`
}

// MatchView is a match together with lock state and the viewer's own tip.
type MatchView struct {
	models.Match
	IsLocked bool               `json:"is_locked"`
	UserTip  *models.Prediction `json:"user_tip,omitempty"`
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	now            func() time.Time
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		now:            time.Now,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	input.HomeTeam = strings.TrimSpace(input.HomeTeam)
	input.Opponent = strings.TrimSpace(input.Opponent)

	if input.HomeTeam == "" || input.Opponent == "" {
		return nil, fmt.Errorf("%w: home team and opponent are required", ErrValidationFailed)
	}
	if input.MatchTime.IsZero() {
		return nil, fmt.Errorf("%w: match time is required", ErrValidationFailed)
	}

	match := &models.Match{
		HomeTeam:      input.HomeTeam,
		Opponent:      input.Opponent,
		MatchTime:     input.MatchTime,
		Location:      input.Location,
		BonusQuestion: input.BonusQuestion,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, userID int) ([]MatchView, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	tipsByMatch := make(map[int]*models.Prediction)
	if userID != 0 {
		tips, err := s.predictionRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load tips for user %d: %w", userID, err)
		}
		for i := range tips {
			tips[i].Match = nil // the view already carries the match
			tipsByMatch[tips[i].MatchID] = &tips[i]
		}
	}

	now := s.now()
	views := make([]MatchView, 0, len(matches))
	for _, match := range matches {
		views = append(views, MatchView{
			Match:    match,
			IsLocked: match.IsLocked(now),
			UserTip:  tipsByMatch[match.ID],
		})
	}
	return views, nil
}
