package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/formulaone/internal/models"
)

// PostgresTeamRepository implements team CRUD against a PostgreSQL database.
type PostgresTeamRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTeamRepository creates a new PostgresTeamRepository using the provided *sql.DB.
func NewPostgresTeamRepository(db *sql.DB) *PostgresTeamRepository {
	return &PostgresTeamRepository{DB: db}
}

// ListTeams fetches all teams ordered by id.
func (r *PostgresTeamRepository) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, country, year FROM teams ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("ListTeams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Country, &t.Year); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTeams rows: %w", err)
	}
	return teams, nil
}

// GetTeam fetches a single team by id.
// Returns models.ErrTeamNotFound if no row matches.
func (r *PostgresTeamRepository) GetTeam(ctx context.Context, id int64) (*models.Team, error) {
	var t models.Team
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, country, year FROM teams WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Country, &t.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTeamNotFound
		}
		return nil, fmt.Errorf("GetTeam: %w", err)
	}
	return &t, nil
}

// CreateTeam inserts team and returns it with the generated id.
func (r *PostgresTeamRepository) CreateTeam(ctx context.Context, team models.Team) (*models.Team, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO teams (name, country, year) VALUES ($1, $2, $3) RETURNING id
	`, team.Name, team.Country, team.Year).Scan(&team.ID)
	if err != nil {
		return nil, fmt.Errorf("CreateTeam: %w", err)
	}
	return &team, nil
}

// UpdateTeamCountry changes the country of team id.
func (r *PostgresTeamRepository) UpdateTeamCountry(ctx context.Context, id int64, country string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE teams SET country = $2 WHERE id = $1
	`, id, country)
	if err != nil {
		return fmt.Errorf("UpdateTeamCountry: %w", err)
	}
	return requireAffected(res)
}

// DeleteTeam removes team id.
func (r *PostgresTeamRepository) DeleteTeam(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteTeam: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrTeamNotFound
	}
	return nil
}
