package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Vasek03/tip-league/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// GetByIDForUpdate loads a match while taking a row lock, serializing
	// concurrent settlements of the same match. Must run inside a transaction.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id, homeScore, awayScore int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (home_team, opponent, match_time, location, bonus_question)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		match.HomeTeam,
		match.Opponent,
		match.MatchTime,
		match.Location,
		match.BonusQuestion,
	).Scan(&match.ID)
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID,
		&m.HomeTeam,
		&m.Opponent,
		&m.MatchTime,
		&m.Location,
		&m.BonusQuestion,
		&m.HomeScore,
		&m.AwayScore,
		&m.IsFinished,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, home_team, opponent, match_time, location, bonus_question, home_score, away_score, is_finished
		FROM matches
		WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `
		SELECT id, home_team, opponent, match_time, location, bonus_question, home_score, away_score, is_finished
		FROM matches
		WHERE id = $1
		FOR UPDATE`
	return r.scanMatch(exec.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := `
		SELECT id, home_team, opponent, match_time, location, bonus_question, home_score, away_score, is_finished
		FROM matches
		ORDER BY match_time ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id, homeScore, awayScore int) error {
	query := `UPDATE matches SET home_score = $1, away_score = $2, is_finished = TRUE WHERE id = $3`
	result, err := exec.ExecContext(ctx, query, homeScore, awayScore, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
