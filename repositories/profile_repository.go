package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Vasek03/tip-league/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	Create(ctx context.Context, exec SQLExecutor, userID int) error
	GetByUserID(ctx context.Context, exec SQLExecutor, userID int) (*models.Profile, error)
	UpdateTotalPoints(ctx context.Context, exec SQLExecutor, userID, totalPoints int) error
	ListLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresProfileRepository) Create(ctx context.Context, exec SQLExecutor, userID int) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO profiles (user_id, total_points) VALUES ($1, 0) ON CONFLICT (user_id) DO NOTHING`
	_, err := executor.ExecContext(ctx, query, userID)
	return err
}

func (r *postgresProfileRepository) GetByUserID(ctx context.Context, exec SQLExecutor, userID int) (*models.Profile, error) {
	executor := r.getExecutor(exec)
	query := `SELECT user_id, total_points FROM profiles WHERE user_id = $1`

	var p models.Profile
	err := executor.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.TotalPoints)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresProfileRepository) UpdateTotalPoints(ctx context.Context, exec SQLExecutor, userID, totalPoints int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE profiles SET total_points = $1 WHERE user_id = $2`
	result, err := executor.ExecContext(ctx, query, totalPoints, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

// ListLeaderboard returns all profiles joined with their users, ordered by
// total points descending with user id as the stable tie-breaker.
func (r *postgresProfileRepository) ListLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT u.id, u.nickname, u.first_name, u.last_name, p.total_points
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.total_points DESC, u.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0)
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Nickname, &e.FirstName, &e.LastName, &e.TotalPoints); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
