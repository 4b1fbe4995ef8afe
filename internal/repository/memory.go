package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/atinyakov/formulaone/internal/models"
	"github.com/google/uuid"
)

// MemoryAuthRepository is an in-process identity store used when no database
// is configured. Reads run concurrently; inserts are serialized.
type MemoryAuthRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewMemoryAuthRepository returns an empty MemoryAuthRepository.
func NewMemoryAuthRepository() *MemoryAuthRepository {
	return &MemoryAuthRepository{users: make(map[string]models.User)}
}

// FindByEmail returns the user registered under email or models.ErrUserNotFound.
func (r *MemoryAuthRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[NormalizeEmail(email)]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

// CreateUser checks and inserts under one write lock, so concurrent
// registrations of the same email cannot both succeed.
func (r *MemoryAuthRepository) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := NormalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[key]; exists {
		return nil, models.ErrDuplicateEmail
	}
	u := models.User{ID: uuid.NewString(), Email: key, PasswordHash: passwordHash}
	r.users[key] = u
	return &u, nil
}

// MemoryTeamRepository keeps teams in process memory.
type MemoryTeamRepository struct {
	mu     sync.RWMutex
	nextID int64
	teams  map[int64]models.Team
}

// NewMemoryTeamRepository returns an empty MemoryTeamRepository.
func NewMemoryTeamRepository() *MemoryTeamRepository {
	return &MemoryTeamRepository{teams: make(map[int64]models.Team)}
}

// ListTeams returns all teams ordered by id.
func (r *MemoryTeamRepository) ListTeams(_ context.Context) ([]models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

// GetTeam returns the team with id or models.ErrTeamNotFound.
func (r *MemoryTeamRepository) GetTeam(_ context.Context, id int64) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[id]
	if !ok {
		return nil, models.ErrTeamNotFound
	}
	return &t, nil
}

// CreateTeam stores team under a new id and returns the stored copy.
func (r *MemoryTeamRepository) CreateTeam(_ context.Context, team models.Team) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	team.ID = r.nextID
	r.teams[team.ID] = team
	return &team, nil
}

// UpdateTeamCountry sets the country of team id.
func (r *MemoryTeamRepository) UpdateTeamCountry(_ context.Context, id int64, country string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teams[id]
	if !ok {
		return models.ErrTeamNotFound
	}
	t.Country = country
	r.teams[id] = t
	return nil
}

// DeleteTeam removes team id.
func (r *MemoryTeamRepository) DeleteTeam(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[id]; !ok {
		return models.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}
