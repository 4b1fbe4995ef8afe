package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/atinyakov/formulaone/internal/models"
)

// TeamRepository defines the persistence operations needed by the TeamService.
type TeamRepository interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, id int64) (*models.Team, error)
	CreateTeam(ctx context.Context, team models.Team) (*models.Team, error)
	UpdateTeamCountry(ctx context.Context, id int64, country string) error
	DeleteTeam(ctx context.Context, id int64) error
}

// TeamService implements team CRUD.
type TeamService struct {
	// repo is the underlying persistence repository.
	repo TeamRepository
}

// NewTeamService constructs a TeamService with the provided TeamRepository.
func NewTeamService(repo TeamRepository) *TeamService {
	return &TeamService{repo: repo}
}

// List returns all teams.
func (s *TeamService) List(ctx context.Context) ([]models.Team, error) {
	return s.repo.ListTeams(ctx)
}

// Get returns a single team or models.ErrTeamNotFound.
func (s *TeamService) Get(ctx context.Context, id int64) (*models.Team, error) {
	return s.repo.GetTeam(ctx, id)
}

// Create stores a new team. The name is required; any client-supplied id is ignored.
func (s *TeamService) Create(ctx context.Context, team models.Team) (*models.Team, error) {
	team.Name = strings.TrimSpace(team.Name)
	if team.Name == "" {
		return nil, fmt.Errorf("%w: team name is required", models.ErrValidation)
	}
	team.ID = 0
	return s.repo.CreateTeam(ctx, team)
}

// UpdateCountry changes the country of an existing team.
func (s *TeamService) UpdateCountry(ctx context.Context, id int64, country string) error {
	return s.repo.UpdateTeamCountry(ctx, id, strings.TrimSpace(country))
}

// Delete removes a team.
func (s *TeamService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTeam(ctx, id)
}
