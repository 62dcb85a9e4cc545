package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Vasek03/tip-league/models"
	"github.com/lib/pq"
)

var (
	ErrRankingNotFound    = errors.New("team ranking not found")
	ErrRankingTeamInvalid = errors.New("ranking item team conflict or invalid")
)

type RankingRepository interface {
	// GetByUserForUpdate loads a user's ranking with a row lock so concurrent
	// submissions of the same ranking serialize. Must run inside a transaction.
	GetByUserForUpdate(ctx context.Context, exec SQLExecutor, userID int) (*models.TeamRanking, error)
	GetByUser(ctx context.Context, userID int) (*models.TeamRanking, error)
	Upsert(ctx context.Context, exec SQLExecutor, ranking *models.TeamRanking) error
	// ReplaceItems deletes all items of the ranking and inserts the given
	// batch, so a ranking is always written as a whole, never patched.
	ReplaceItems(ctx context.Context, exec SQLExecutor, rankingID int, items []models.TeamRankingItem) error
	ListSubmitted(ctx context.Context, exec SQLExecutor) ([]*models.TeamRanking, error)
	UpdatePoints(ctx context.Context, exec SQLExecutor, rankingID, points int) error
	PointsByUser(ctx context.Context, exec SQLExecutor, userID int) (int, error)
}

type postgresRankingRepository struct {
	db *sql.DB
}

func NewPostgresRankingRepository(db *sql.DB) RankingRepository {
	return &postgresRankingRepository{db: db}
}

func (r *postgresRankingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRankingRepository) scanRanking(rowScanner interface{ Scan(...interface{}) error }) (*models.TeamRanking, error) {
	var ranking models.TeamRanking
	err := rowScanner.Scan(
		&ranking.ID,
		&ranking.UserID,
		&ranking.IsSubmitted,
		&ranking.SubmittedAt,
		&ranking.PointsEarned,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRankingNotFound
		}
		return nil, err
	}
	return &ranking, nil
}

func (r *postgresRankingRepository) GetByUserForUpdate(ctx context.Context, exec SQLExecutor, userID int) (*models.TeamRanking, error) {
	query := `
		SELECT id, user_id, is_submitted, submitted_at, points_earned
		FROM team_rankings
		WHERE user_id = $1
		FOR UPDATE`
	return r.scanRanking(exec.QueryRowContext(ctx, query, userID))
}

func (r *postgresRankingRepository) GetByUser(ctx context.Context, userID int) (*models.TeamRanking, error) {
	query := `
		SELECT id, user_id, is_submitted, submitted_at, points_earned
		FROM team_rankings
		WHERE user_id = $1`

	ranking, err := r.scanRanking(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, err
	}
	ranking.Items, err = r.listItems(ctx, r.db, ranking.ID)
	if err != nil {
		return nil, err
	}
	return ranking, nil
}

func (r *postgresRankingRepository) Upsert(ctx context.Context, exec SQLExecutor, ranking *models.TeamRanking) error {
	executor := r.getExecutor(exec)
	if ranking.SubmittedAt == nil {
		now := time.Now()
		ranking.SubmittedAt = &now
	}
	query := `
		INSERT INTO team_rankings (user_id, is_submitted, submitted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			is_submitted = EXCLUDED.is_submitted,
			submitted_at = EXCLUDED.submitted_at
		RETURNING id`

	return executor.QueryRowContext(ctx, query,
		ranking.UserID,
		ranking.IsSubmitted,
		ranking.SubmittedAt,
	).Scan(&ranking.ID)
}

func (r *postgresRankingRepository) ReplaceItems(ctx context.Context, exec SQLExecutor, rankingID int, items []models.TeamRankingItem) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `DELETE FROM team_ranking_items WHERE ranking_id = $1`, rankingID); err != nil {
		return fmt.Errorf("failed to delete previous ranking items: %w", err)
	}

	query := `
		INSERT INTO team_ranking_items (ranking_id, team_id, position)
		VALUES ($1, $2, $3)
		RETURNING id`
	for i := range items {
		items[i].RankingID = rankingID
		err := executor.QueryRowContext(ctx, query, rankingID, items[i].TeamID, items[i].Position).Scan(&items[i].ID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23503" {
				return ErrRankingTeamInvalid
			}
			return fmt.Errorf("failed to insert ranking item for team %d: %w", items[i].TeamID, err)
		}
	}
	return nil
}

func (r *postgresRankingRepository) listItems(ctx context.Context, exec SQLExecutor, rankingID int) ([]models.TeamRankingItem, error) {
	query := `
		SELECT i.id, i.ranking_id, i.team_id, i.position, t.name, t.final_position
		FROM team_ranking_items i
		JOIN teams t ON t.id = i.team_id
		WHERE i.ranking_id = $1
		ORDER BY i.position ASC`

	rows, err := exec.QueryContext(ctx, query, rankingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.TeamRankingItem, 0)
	for rows.Next() {
		var item models.TeamRankingItem
		var team models.Team
		if err := rows.Scan(&item.ID, &item.RankingID, &item.TeamID, &item.Position, &team.Name, &team.FinalPosition); err != nil {
			return nil, err
		}
		team.ID = item.TeamID
		item.Team = &team
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRankingRepository) ListSubmitted(ctx context.Context, exec SQLExecutor) ([]*models.TeamRanking, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT r.id, r.user_id, r.is_submitted, r.submitted_at, r.points_earned, u.nickname, u.first_name, u.last_name
		FROM team_rankings r
		JOIN users u ON u.id = r.user_id
		WHERE r.is_submitted = TRUE
		ORDER BY r.user_id ASC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rankings := make([]*models.TeamRanking, 0)
	for rows.Next() {
		var ranking models.TeamRanking
		var user models.User
		err := rows.Scan(
			&ranking.ID, &ranking.UserID, &ranking.IsSubmitted, &ranking.SubmittedAt,
			&ranking.PointsEarned, &user.Nickname, &user.FirstName, &user.LastName,
		)
		if err != nil {
			return nil, err
		}
		user.ID = ranking.UserID
		ranking.User = &user
		rankings = append(rankings, &ranking)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, ranking := range rankings {
		ranking.Items, err = r.listItems(ctx, executor, ranking.ID)
		if err != nil {
			return nil, err
		}
	}
	return rankings, nil
}

func (r *postgresRankingRepository) UpdatePoints(ctx context.Context, exec SQLExecutor, rankingID, points int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE team_rankings SET points_earned = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, points, rankingID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRankingNotFound)
}

func (r *postgresRankingRepository) PointsByUser(ctx context.Context, exec SQLExecutor, userID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `SELECT COALESCE(SUM(points_earned), 0) FROM team_rankings WHERE user_id = $1`

	var sum int
	if err := executor.QueryRowContext(ctx, query, userID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}
