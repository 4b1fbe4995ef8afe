// Package http provides the HTTP handlers and router of the FormulaOne API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/formulaone/internal/middleware"
	"github.com/atinyakov/formulaone/internal/models"
)

// AuthService defines the authentication operations required by the HTTP handlers.
type AuthService interface {
	// Register creates an account and returns the result envelope.
	Register(ctx context.Context, creds models.Credentials) models.AuthResult
	// Login checks credentials and returns the result envelope.
	Login(ctx context.Context, creds models.Credentials) models.AuthResult
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// Register handles POST /auth/register.
// It expects a JSON body {"email", "password"} and answers 200 with a token
// or 400 with the error list.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.AuthService.Register)
}

// Login handles POST /auth/login with the same body and responses as Register.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.AuthService.Login)
}

// Me handles GET /api/me and returns the identity attached by the bearer gate.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id.UserID, "email": id.Email})
}

func (h *AuthHandler) serve(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, models.Credentials) models.AuthResult,
) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, models.AuthResult{Errors: []string{models.MsgInvalidPayload}})
		return
	}

	result := op(r.Context(), creds)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
