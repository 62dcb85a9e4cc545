package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Vasek03/tip-league/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound         = errors.New("team not found")
	ErrTeamNameConflict     = errors.New("team name conflict")
	ErrTeamPositionConflict = errors.New("team final position conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Team, error)
	// ClearFinalPositions wipes the stored final order. The unique constraint
	// on final_position is immediate, so a rewritten order must be cleared
	// before the new positions are assigned one by one.
	ClearFinalPositions(ctx context.Context, exec SQLExecutor) error
	UpdateFinalPosition(ctx context.Context, exec SQLExecutor, teamID int, position int) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `INSERT INTO teams (name) VALUES ($1) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, team.Name).Scan(&team.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "teams_name_key" {
			return ErrTeamNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, final_position, logo_key FROM teams WHERE id = $1`

	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.FinalPosition, &team.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Team, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, final_position, logo_key FROM teams ORDER BY name ASC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.FinalPosition, &team.LogoKey); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) ClearFinalPositions(ctx context.Context, exec SQLExecutor) error {
	executor := r.getExecutor(exec)
	query := `UPDATE teams SET final_position = NULL WHERE final_position IS NOT NULL`

	_, err := executor.ExecContext(ctx, query)
	return err
}

func (r *postgresTeamRepository) UpdateFinalPosition(ctx context.Context, exec SQLExecutor, teamID int, position int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE teams SET final_position = $1 WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, position, teamID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "teams_final_position_key" {
			return ErrTeamPositionConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
