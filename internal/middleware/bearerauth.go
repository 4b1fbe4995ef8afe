// Package middleware provides HTTP middlewares for authentication, logging
// and HTTPS redirection.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/formulaone/internal/models"
	"go.uber.org/zap"
)

type ctxKey string

const identityKey ctxKey = "identity"

// TokenValidator verifies a bearer token and returns the identity it carries.
type TokenValidator interface {
	Validate(token string) (models.Identity, error)
}

// BearerAuth is a middleware that admits only requests carrying a valid
// "Authorization: Bearer <token>" header.
//
// Requests without a token or with a token the validator rejects get a bare
// 401. On success the identity is stored in the request context and can be
// read with IdentityFromContext.
func BearerAuth(v TokenValidator, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			id, err := v.Validate(token)
			if err != nil {
				log.Debug("rejected bearer token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer`)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

// IdentityFromContext returns the identity attached by BearerAuth.
// ok is false when the request was not authenticated.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok
}
