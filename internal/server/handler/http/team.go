package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/atinyakov/formulaone/internal/models"
	"github.com/go-chi/chi/v5"
)

const invalidID = "Invalid Id"

// TeamService defines the team operations required by the TeamHandler.
type TeamService interface {
	List(ctx context.Context) ([]models.Team, error)
	Get(ctx context.Context, id int64) (*models.Team, error)
	Create(ctx context.Context, team models.Team) (*models.Team, error)
	UpdateCountry(ctx context.Context, id int64, country string) error
	Delete(ctx context.Context, id int64) error
}

// TeamHandler handles the protected team endpoints.
type TeamHandler struct {
	TeamService TeamService
}

// List handles GET /api/teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.TeamService.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// Get handles GET /api/teams/{id}. Unknown or malformed ids answer 400 "Invalid Id".
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := teamID(r)
	if !ok {
		http.Error(w, invalidID, http.StatusBadRequest)
		return
	}

	team, err := h.TeamService.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Create handles POST /api/teams and answers 201 with the stored team.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var team models.Team
	if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	created, err := h.TeamService.Create(r.Context(), team)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/teams/%d", created.ID))
	writeJSON(w, http.StatusCreated, created)
}

// Patch handles PATCH /api/teams/{id}. The new country comes from the JSON
// body {"country": "..."} or, failing that, from the "country" query parameter.
func (h *TeamHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := teamID(r)
	if !ok {
		http.Error(w, invalidID, http.StatusBadRequest)
		return
	}

	country := r.URL.Query().Get("country")
	var req struct {
		Country string `json:"country"`
	}
	// an empty body, chunked or not, falls back to the query parameter
	switch err := json.NewDecoder(r.Body).Decode(&req); {
	case errors.Is(err, io.EOF):
	case err != nil:
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	case req.Country != "":
		country = req.Country
	}

	if err := h.TeamService.UpdateCountry(r.Context(), id, country); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/teams/{id}.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := teamID(r)
	if !ok {
		http.Error(w, invalidID, http.StatusBadRequest)
		return
	}

	if err := h.TeamService.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrTeamNotFound) {
		http.Error(w, invalidID, http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func teamID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
