// Package service provides the authentication and team business logic,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/atinyakov/formulaone/internal/models"
	"go.uber.org/zap"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// AuthRepository defines the identity store operations
// required by the authentication service.
type AuthRepository interface {
	// FindByEmail returns the user with the given email or models.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUser atomically inserts a user, returning models.ErrDuplicateEmail
	// if the email is taken.
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
}

// CredentialVerifier hashes and checks passwords.
type CredentialVerifier interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs bearer tokens for users.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// AuthService implements the register and login use cases. Every outcome,
// including failures, is reported as a models.AuthResult.
type AuthService struct {
	repo   AuthRepository
	hasher CredentialVerifier
	issuer TokenIssuer
	log    *zap.Logger

	// UniformLoginErrors reports an unknown email as "Invalid Credentials"
	// instead of "Invalid Payload", hiding whether the account exists.
	UniformLoginErrors bool
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(repo AuthRepository, hasher CredentialVerifier, issuer TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, log: log}
}

// Register creates an account for creds and returns a token for it.
func (s *AuthService) Register(ctx context.Context, creds models.Credentials) models.AuthResult {
	if err := validateCredentials(creds); err != nil {
		return failure(models.MsgInvalidPayload)
	}

	_, err := s.repo.FindByEmail(ctx, creds.Email)
	switch {
	case err == nil:
		return failure(models.MsgEmailExists)
	case !errors.Is(err, models.ErrUserNotFound):
		s.log.Error("register: lookup user", zap.Error(err))
		return failure(models.MsgServerError)
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		s.log.Error("register: hash password", zap.Error(err))
		return failure(models.MsgServerError)
	}

	// The store's conditional insert is authoritative: a concurrent
	// registration that passed the lookup above is rejected here.
	user, err := s.repo.CreateUser(ctx, creds.Email, hash)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return failure(models.MsgEmailExists)
		}
		s.log.Error("register: create user", zap.Error(err))
		return failure(models.MsgServerError)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return s.issue(user)
}

// Login verifies creds and returns a token for the matching account.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) models.AuthResult {
	if err := validateCredentials(creds); err != nil {
		return failure(models.MsgInvalidPayload)
	}

	user, err := s.repo.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			if s.UniformLoginErrors {
				return failure(models.MsgInvalidCredentials)
			}
			return failure(models.MsgInvalidPayload)
		}
		s.log.Error("login: lookup user", zap.Error(err))
		return failure(models.MsgServerError)
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		s.log.Debug("login: password mismatch", zap.String("user_id", user.ID))
		return failure(models.MsgInvalidCredentials)
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) models.AuthResult {
	token, err := s.issuer.Issue(user)
	if err != nil {
		s.log.Error("issue token", zap.String("user_id", user.ID), zap.Error(err))
		return failure(models.MsgServerError)
	}
	return models.AuthResult{Success: true, Token: token}
}

func failure(msg string) models.AuthResult {
	return models.AuthResult{Success: false, Errors: []string{msg}}
}

// validateCredentials checks the request shape: both fields present, a bare
// email address and a password bcrypt can hash.
func validateCredentials(c models.Credentials) error {
	email := strings.TrimSpace(c.Email)
	if email == "" || c.Password == "" {
		return fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: malformed email", models.ErrValidation)
	}
	if len(c.Password) > maxPasswordBytes {
		return fmt.Errorf("%w: password too long", models.ErrValidation)
	}
	return nil
}
