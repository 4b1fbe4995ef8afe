package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/formulaone/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTeamMock(t *testing.T) (*PostgresTeamRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresTeamRepository(db), mock
}

func TestListTeams(t *testing.T) {
	repo, mock := setupTeamMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, country, year FROM teams ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country", "year"}).
			AddRow(1, "Ferrari", "Italy", 1950).
			AddRow(2, "McLaren", "United Kingdom", 1966))

	teams, err := repo.ListTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Team{
		{ID: 1, Name: "Ferrari", Country: "Italy", Year: 1950},
		{ID: 2, Name: "McLaren", Country: "United Kingdom", Year: 1966},
	}, teams)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTeams_EmptyIsNotNil(t *testing.T) {
	repo, mock := setupTeamMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, country, year FROM teams`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country", "year"}))

	teams, err := repo.ListTeams(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, teams)
	assert.Empty(t, teams)
}

func TestListTeams_Error(t *testing.T) {
	repo, mock := setupTeamMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, country, year FROM teams`)).
		WillReturnError(errors.New("query fail"))

	_, err := repo.ListTeams(context.Background())
	assert.ErrorContains(t, err, "ListTeams")
}

func TestGetTeam(t *testing.T) {
	repo, mock := setupTeamMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, country, year FROM teams WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country", "year"}).
			AddRow(7, "Williams", "United Kingdom", 1977))

	team, err := repo.GetTeam(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Williams", team.Name)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, country, year FROM teams WHERE id = $1`)).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country", "year"}))

	_, err = repo.GetTeam(context.Background(), 8)
	assert.ErrorIs(t, err, models.ErrTeamNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTeam(t *testing.T) {
	repo, mock := setupTeamMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO teams (name, country, year) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("Alpine", "France", 2021).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	team, err := repo.CreateTeam(context.Background(), models.Team{Name: "Alpine", Country: "France", Year: 2021})
	require.NoError(t, err)
	assert.Equal(t, int64(11), team.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTeamCountry(t *testing.T) {
	repo, mock := setupTeamMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE teams SET country = $2 WHERE id = $1`)).
		WithArgs(int64(3), "Austria").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateTeamCountry(context.Background(), 3, "Austria"))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE teams SET country = $2 WHERE id = $1`)).
		WithArgs(int64(4), "Austria").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateTeamCountry(context.Background(), 4, "Austria"), models.ErrTeamNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTeam(t *testing.T) {
	repo, mock := setupTeamMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM teams WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteTeam(context.Background(), 5))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM teams WHERE id = $1`)).
		WithArgs(int64(6)).
		WillReturnError(errors.New("exec fail"))
	assert.ErrorContains(t, repo.DeleteTeam(context.Background(), 6), "DeleteTeam")

	assert.NoError(t, mock.ExpectationsWereMet())
}
