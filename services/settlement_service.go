package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Vasek03/tip-league/metrics"
	"github.com/Vasek03/tip-league/models"
	"github.com/Vasek03/tip-league/repositories"
	"github.com/Vasek03/tip-league/scoring"
)

// rankingSettlementLockKey is the advisory lock key serializing concurrent
// finalizations of the single ranking contest.
const rankingSettlementLockKey int64 = 874211

type SettlementService interface {
	// FinalizeMatch writes the official result, rescores every tip of the
	// match and recomputes the affected users' totals, all in one
	// transaction. Repeating it with identical scores is a no-op on points.
	FinalizeMatch(ctx context.Context, input FinalizeMatchInput) (*MatchSettlementResult, error)
	// FinalizeRanking writes the authoritative team order, scores every
	// submitted ranking and recomputes the affected users' totals, all in
	// one transaction.
	FinalizeRanking(ctx context.Context, input FinalizeRankingInput) (*RankingSettlementResult, error)
}

type FinalizeMatchInput struct {
	MatchID   int  `json:"-"`
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
	// Force re-runs settlement of an already finished match. The overwrite is
	// audited in the log with the old and new scores.
	Force bool `json:"force,omitempty"`
}

type FinalizeRankingInput struct {
	Items []RankingItemInput `json:"items"`
	Force bool               `json:"force,omitempty"`
}

type MatchSettlementResult struct {
	Match       *models.Match       `json:"match"`
	Predictions []models.Prediction `json:"predictions"`
	Profiles    []models.Profile    `json:"profiles"`
}

type RankingSettlementResult struct {
	Teams    []models.Team        `json:"teams"`
	Rankings []models.TeamRanking `json:"rankings"`
	Profiles []models.Profile     `json:"profiles"`
}

type settlementService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	rankingRepo    repositories.RankingRepository
	teamRepo       repositories.TeamRepository
	profileRepo    repositories.ProfileRepository
	logger         *slog.Logger
}

func NewSettlementService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
	rankingRepo repositories.RankingRepository,
	teamRepo repositories.TeamRepository,
	profileRepo repositories.ProfileRepository,
	logger *slog.Logger,
) SettlementService {
	return &settlementService{
		db:             db,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		rankingRepo:    rankingRepo,
		teamRepo:       teamRepo,
		profileRepo:    profileRepo,
		logger:         logger,
	}
}

func (s *settlementService) FinalizeMatch(ctx context.Context, input FinalizeMatchInput) (*MatchSettlementResult, error) {
	if input.HomeScore == nil || input.AwayScore == nil {
		return nil, fmt.Errorf("%w: both scores are required", ErrValidationFailed)
	}
	if *input.HomeScore < 0 || *input.AwayScore < 0 {
		return nil, ErrScoreNegative
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
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

	// The row lock serializes concurrent settlements of this match.
	match, err := s.matchRepo.GetByIDForUpdate(ctx, tx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			txErr = ErrMatchNotFound
		} else {
			txErr = fmt.Errorf("failed to load match %d: %w", input.MatchID, err)
		}
		return nil, txErr
	}

	if match.IsFinished {
		if !input.Force {
			txErr = ErrMatchAlreadyFinished
			return nil, txErr
		}
		s.logger.WarnContext(ctx, "re-finalizing finished match",
			slog.Int("match_id", match.ID),
			slog.Any("old_home_score", match.HomeScore),
			slog.Any("old_away_score", match.AwayScore),
			slog.Int("new_home_score", *input.HomeScore),
			slog.Int("new_away_score", *input.AwayScore),
		)
	}

	if txErr = s.matchRepo.UpdateResult(ctx, tx, match.ID, *input.HomeScore, *input.AwayScore); txErr != nil {
		return nil, fmt.Errorf("failed to write result for match %d: %w", match.ID, txErr)
	}
	match.HomeScore = input.HomeScore
	match.AwayScore = input.AwayScore
	match.IsFinished = true

	predictions, err := s.predictionRepo.ListByMatch(ctx, tx, match.ID)
	if err != nil {
		txErr = fmt.Errorf("failed to load tips for match %d: %w", match.ID, err)
		return nil, txErr
	}

	settled := make([]models.Prediction, 0, len(predictions))
	affectedUsers := make(map[int]bool, len(predictions))
	for _, prediction := range predictions {
		points := scoring.MatchPoints(prediction, match)
		if txErr = s.predictionRepo.UpdatePoints(ctx, tx, prediction.ID, points); txErr != nil {
			return nil, fmt.Errorf("failed to store points for tip %d: %w", prediction.ID, txErr)
		}
		prediction.PointsEarned = points
		settled = append(settled, *prediction)
		affectedUsers[prediction.UserID] = true
	}

	profiles, err := s.recomputeTotals(ctx, tx, affectedUsers)
	if err != nil {
		txErr = err
		return nil, txErr
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit match settlement: %w", txErr)
	}

	metrics.MatchSettlements.Inc()
	s.logger.InfoContext(ctx, "match settled",
		slog.Int("match_id", match.ID),
		slog.Int("tips_scored", len(settled)),
		slog.Int("users_affected", len(profiles)),
	)

	return &MatchSettlementResult{
		Match:       match,
		Predictions: settled,
		Profiles:    profiles,
	}, nil
}

func (s *settlementService) FinalizeRanking(ctx context.Context, input FinalizeRankingInput) (*RankingSettlementResult, error) {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	if err := validateRankingOrder(teams, input.Items); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
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

	// There is a single ranking contest, so a session-wide advisory lock
	// stands in for a target row lock. It is released on commit/rollback.
	if _, txErr = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, rankingSettlementLockKey); txErr != nil {
		return nil, fmt.Errorf("failed to acquire ranking settlement lock: %w", txErr)
	}

	// Re-read inside the lock so a concurrent settlement or a team created
	// after the pre-check is detected.
	teams, err = s.teamRepo.List(ctx, tx)
	if err != nil {
		txErr = fmt.Errorf("failed to load teams: %w", err)
		return nil, txErr
	}
	alreadyScored := false
	for _, team := range teams {
		if team.FinalPosition != nil {
			alreadyScored = true
			break
		}
	}
	if alreadyScored {
		if !input.Force {
			txErr = ErrRankingAlreadyScored
			return nil, txErr
		}
		s.logger.WarnContext(ctx, "re-finalizing authoritative team order")
	}

	var finalPositions map[int]int
	if finalPositions, txErr = s.applyFinalOrder(ctx, tx, teams, input.Items); txErr != nil {
		return nil, txErr
	}

	rankings, err := s.rankingRepo.ListSubmitted(ctx, tx)
	if err != nil {
		txErr = fmt.Errorf("failed to load submitted rankings: %w", err)
		return nil, txErr
	}

	scored := make([]models.TeamRanking, 0, len(rankings))
	affectedUsers := make(map[int]bool, len(rankings))
	for _, ranking := range rankings {
		points := scoring.RankingPoints(ranking.Items, finalPositions)
		if txErr = s.rankingRepo.UpdatePoints(ctx, tx, ranking.ID, points); txErr != nil {
			return nil, fmt.Errorf("failed to store points for ranking %d: %w", ranking.ID, txErr)
		}
		ranking.PointsEarned = points
		scored = append(scored, *ranking)
		affectedUsers[ranking.UserID] = true
	}

	profiles, err := s.recomputeTotals(ctx, tx, affectedUsers)
	if err != nil {
		txErr = err
		return nil, txErr
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit ranking settlement: %w", txErr)
	}

	settledTeams := make([]models.Team, len(teams))
	copy(settledTeams, teams)
	for i := range settledTeams {
		if pos, ok := finalPositions[settledTeams[i].ID]; ok {
			p := pos
			settledTeams[i].FinalPosition = &p
		}
	}

	metrics.RankingSettlements.Inc()
	s.logger.InfoContext(ctx, "ranking contest settled",
		slog.Int("rankings_scored", len(scored)),
		slog.Int("users_affected", len(profiles)),
	)

	return &RankingSettlementResult{
		Teams:    settledTeams,
		Rankings: scored,
		Profiles: profiles,
	}, nil
}

// applyFinalOrder rewrites the authoritative team order. It validates the
// items against the team set visible inside the settlement lock, then clears
// all stored positions before assigning the new ones: the unique constraint
// on final_position is immediate, so a forced re-finalize whose new order
// overlaps the old one would otherwise conflict mid-write.
func (s *settlementService) applyFinalOrder(ctx context.Context, exec repositories.SQLExecutor, teams []models.Team, items []RankingItemInput) (map[int]int, error) {
	if err := validateRankingOrder(teams, items); err != nil {
		return nil, err
	}

	if err := s.teamRepo.ClearFinalPositions(ctx, exec); err != nil {
		return nil, fmt.Errorf("failed to clear final positions: %w", err)
	}

	finalPositions := make(map[int]int, len(items))
	for _, item := range items {
		if err := s.teamRepo.UpdateFinalPosition(ctx, exec, item.TeamID, item.Position); err != nil {
			return nil, fmt.Errorf("failed to store final position for team %d: %w", item.TeamID, err)
		}
		finalPositions[item.TeamID] = item.Position
	}
	return finalPositions, nil
}

// recomputeTotals rebuilds each affected user's total from scratch: the sum
// of all their per-match points plus their ranking points. Both settlement
// paths go through this, which is what makes re-running either of them
// idempotent.
func (s *settlementService) recomputeTotals(ctx context.Context, tx repositories.SQLExecutor, userIDs map[int]bool) ([]models.Profile, error) {
	ids := make([]int, 0, len(userIDs))
	for id := range userIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	profiles := make([]models.Profile, 0, len(ids))
	for _, userID := range ids {
		tipPoints, err := s.predictionRepo.SumPointsByUser(ctx, tx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum tip points for user %d: %w", userID, err)
		}
		rankingPoints, err := s.rankingRepo.PointsByUser(ctx, tx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ranking points for user %d: %w", userID, err)
		}

		total := tipPoints + rankingPoints
		if err := s.profileRepo.UpdateTotalPoints(ctx, tx, userID, total); err != nil {
			if errors.Is(err, repositories.ErrProfileNotFound) {
				return nil, fmt.Errorf("%w: user %d has points but no profile", ErrConsistencyFault, userID)
			}
			return nil, fmt.Errorf("failed to update total for user %d: %w", userID, err)
		}
		profiles = append(profiles, models.Profile{UserID: userID, TotalPoints: total})
	}
	return profiles, nil
}
