package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Vasek03/tip-league/metrics"
	"github.com/Vasek03/tip-league/models"
	"github.com/Vasek03/tip-league/repositories"
)

type RankingService interface {
	// SubmitRanking stores a user's pre-season team order. Submission is
	// terminal: a submitted ranking can never be changed again.
	SubmitRanking(ctx context.Context, userID int, input SubmitRankingInput) (*models.TeamRanking, error)
	GetUserRanking(ctx context.Context, userID int) (*models.TeamRanking, error)
	// ListSubmittedRankings reveals other users' rankings, but only to a user
	// who has already submitted their own.
	ListSubmittedRankings(ctx context.Context, requesterID int) ([]*models.TeamRanking, error)
}

type SubmitRankingInput struct {
	Items []RankingItemInput `json:"items"`
}

type RankingItemInput struct {
	TeamID   int `json:"team_id"`
	Position int `json:"position"`
}

type rankingService struct {
	db          *sql.DB
	rankingRepo repositories.RankingRepository
	teamRepo    repositories.TeamRepository
}

func NewRankingService(
	db *sql.DB,
	rankingRepo repositories.RankingRepository,
	teamRepo repositories.TeamRepository,
) RankingService {
	return &rankingService{
		db:          db,
		rankingRepo: rankingRepo,
		teamRepo:    teamRepo,
	}
}

// validateRankingOrder checks that the supplied items form a bijection of the
// team set onto the positions 1..N.
func validateRankingOrder(teams []models.Team, items []RankingItemInput) error {
	if len(teams) == 0 {
		return ErrNoTeamsConfigured
	}
	if len(items) != len(teams) {
		return fmt.Errorf("%w: got %d items for %d teams", ErrRankingIncomplete, len(items), len(teams))
	}

	teamIDs := make(map[int]bool, len(teams))
	for _, team := range teams {
		teamIDs[team.ID] = true
	}

	seenTeams := make(map[int]bool, len(items))
	seenPositions := make(map[int]bool, len(items))
	for _, item := range items {
		if !teamIDs[item.TeamID] {
			return fmt.Errorf("%w: team %d", ErrRankingUnknownTeam, item.TeamID)
		}
		if seenTeams[item.TeamID] {
			return fmt.Errorf("%w: team %d listed twice", ErrRankingIncomplete, item.TeamID)
		}
		seenTeams[item.TeamID] = true

		if item.Position < 1 || item.Position > len(teams) {
			return fmt.Errorf("%w: position %d", ErrRankingPositionOutOfRange, item.Position)
		}
		if seenPositions[item.Position] {
			return fmt.Errorf("%w: position %d", ErrRankingPositionDuplicate, item.Position)
		}
		seenPositions[item.Position] = true
	}
	return nil
}

func (s *rankingService) SubmitRanking(ctx context.Context, userID int, input SubmitRankingInput) (*models.TeamRanking, error) {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	if err := validateRankingOrder(teams, input.Items); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			_ = tx.Rollback()
		}
	}()

	existing, err := s.rankingRepo.GetByUserForUpdate(ctx, tx, userID)
	if err != nil && !errors.Is(err, repositories.ErrRankingNotFound) {
		txErr = fmt.Errorf("failed to load ranking for user %d: %w", userID, err)
		return nil, txErr
	}
	if existing != nil && existing.IsSubmitted {
		txErr = ErrRankingAlreadySubmitted
		return nil, txErr
	}

	now := time.Now()
	ranking := &models.TeamRanking{
		UserID:      userID,
		IsSubmitted: true,
		SubmittedAt: &now,
	}
	if txErr = s.rankingRepo.Upsert(ctx, tx, ranking); txErr != nil {
		return nil, fmt.Errorf("failed to save ranking for user %d: %w", userID, txErr)
	}

	items := make([]models.TeamRankingItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, models.TeamRankingItem{
			TeamID:   item.TeamID,
			Position: item.Position,
		})
	}
	if txErr = s.rankingRepo.ReplaceItems(ctx, tx, ranking.ID, items); txErr != nil {
		return nil, fmt.Errorf("failed to save ranking items for user %d: %w", userID, txErr)
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit ranking submission: %w", txErr)
	}

	ranking.Items = items
	metrics.RankingsSubmitted.Inc()
	return ranking, nil
}

func (s *rankingService) GetUserRanking(ctx context.Context, userID int) (*models.TeamRanking, error) {
	ranking, err := s.rankingRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRankingNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load ranking for user %d: %w", userID, err)
	}
	return ranking, nil
}

func (s *rankingService) ListSubmittedRankings(ctx context.Context, requesterID int) ([]*models.TeamRanking, error) {
	own, err := s.rankingRepo.GetByUser(ctx, requesterID)
	if err != nil {
		if errors.Is(err, repositories.ErrRankingNotFound) {
			return nil, ErrRankingNotSubmitted
		}
		return nil, fmt.Errorf("failed to load ranking for user %d: %w", requesterID, err)
	}
	if !own.IsSubmitted {
		return nil, ErrRankingNotSubmitted
	}

	rankings, err := s.rankingRepo.ListSubmitted(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted rankings: %w", err)
	}
	return rankings, nil
}
