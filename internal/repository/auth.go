// Package repository provides persistence implementations for users and teams.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atinyakov/formulaone/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// NormalizeEmail returns the canonical form under which emails are stored
// and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PostgresAuthRepository implements the identity store using a PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given database connection.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// FindByEmail returns the user registered under email.
// It returns models.ErrUserNotFound if there is none.
func (r *PostgresAuthRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash FROM users WHERE email = $1`,
		NormalizeEmail(email),
	).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: FindByEmail: %w", models.ErrStorage, err)
	}
	return u, nil
}

// CreateUser inserts a new user in a single conditional statement.
// If the email is already taken, the ON CONFLICT clause yields no row and
// models.ErrDuplicateEmail is returned.
func (r *PostgresAuthRepository) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
	}

	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id`,
		u.ID, u.Email, u.PasswordHash,
	).Scan(&u.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrDuplicateEmail
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: CreateUser: %w", models.ErrStorage, err)
	}
	return u, nil
}
