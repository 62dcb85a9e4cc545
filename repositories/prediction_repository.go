package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Vasek03/tip-league/models"
	"github.com/lib/pq"
)

var (
	ErrPredictionNotFound     = errors.New("prediction not found")
	ErrPredictionMatchInvalid = errors.New("prediction match conflict or invalid")
	ErrPredictionUserInvalid  = errors.New("prediction user conflict or invalid")
)

type PredictionRepository interface {
	// Upsert creates or replaces the tip for (user, match), keyed by the
	// predictions_user_match_key constraint.
	Upsert(ctx context.Context, prediction *models.Prediction) error
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Prediction, error)
	ListByUser(ctx context.Context, userID int) ([]models.Prediction, error)
	UpdatePoints(ctx context.Context, exec SQLExecutor, predictionID, points int) error
	SumPointsByUser(ctx context.Context, exec SQLExecutor, userID int) (int, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPredictionRepository) Upsert(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (user_id, match_id, home_score_tip, away_score_tip, bonus_answer)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, match_id) DO UPDATE SET
			home_score_tip = EXCLUDED.home_score_tip,
			away_score_tip = EXCLUDED.away_score_tip,
			bonus_answer = EXCLUDED.bonus_answer,
			updated_at = NOW()
		RETURNING id, points_earned, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID,
		prediction.MatchID,
		prediction.HomeScoreTip,
		prediction.AwayScoreTip,
		prediction.BonusAnswer,
	).Scan(&prediction.ID, &prediction.PointsEarned, &prediction.CreatedAt, &prediction.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "predictions_match_id_fkey":
				return ErrPredictionMatchInvalid
			case "predictions_user_id_fkey":
				return ErrPredictionUserInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresPredictionRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Prediction, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT p.id, p.user_id, p.match_id, p.home_score_tip, p.away_score_tip,
		       p.bonus_answer, p.points_earned, p.created_at, p.updated_at,
		       u.nickname, u.first_name, u.last_name
		FROM predictions p
		JOIN users u ON u.id = p.user_id
		WHERE p.match_id = $1
		ORDER BY u.nickname ASC, p.user_id ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]*models.Prediction, 0)
	for rows.Next() {
		var p models.Prediction
		var user models.User
		err := rows.Scan(
			&p.ID, &p.UserID, &p.MatchID, &p.HomeScoreTip, &p.AwayScoreTip,
			&p.BonusAnswer, &p.PointsEarned, &p.CreatedAt, &p.UpdatedAt,
			&user.Nickname, &user.FirstName, &user.LastName,
		)
		if err != nil {
			return nil, err
		}
		user.ID = p.UserID
		p.User = &user
		predictions = append(predictions, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *postgresPredictionRepository) ListByUser(ctx context.Context, userID int) ([]models.Prediction, error) {
	query := `
		SELECT p.id, p.user_id, p.match_id, p.home_score_tip, p.away_score_tip,
		       p.bonus_answer, p.points_earned, p.created_at, p.updated_at,
		       m.home_team, m.opponent, m.match_time, m.location, m.bonus_question,
		       m.home_score, m.away_score, m.is_finished
		FROM predictions p
		JOIN matches m ON m.id = p.match_id
		WHERE p.user_id = $1
		ORDER BY m.match_time ASC, m.id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]models.Prediction, 0)
	for rows.Next() {
		var p models.Prediction
		var m models.Match
		err := rows.Scan(
			&p.ID, &p.UserID, &p.MatchID, &p.HomeScoreTip, &p.AwayScoreTip,
			&p.BonusAnswer, &p.PointsEarned, &p.CreatedAt, &p.UpdatedAt,
			&m.HomeTeam, &m.Opponent, &m.MatchTime, &m.Location, &m.BonusQuestion,
			&m.HomeScore, &m.AwayScore, &m.IsFinished,
		)
		if err != nil {
			return nil, err
		}
		m.ID = p.MatchID
		p.Match = &m
		predictions = append(predictions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *postgresPredictionRepository) UpdatePoints(ctx context.Context, exec SQLExecutor, predictionID, points int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE predictions SET points_earned = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, points, predictionID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

func (r *postgresPredictionRepository) SumPointsByUser(ctx context.Context, exec SQLExecutor, userID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `SELECT COALESCE(SUM(points_earned), 0) FROM predictions WHERE user_id = $1`

	var sum int
	if err := executor.QueryRowContext(ctx, query, userID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}
