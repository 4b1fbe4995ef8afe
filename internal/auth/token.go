package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/formulaone/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the validity window of issued tokens.
const DefaultTokenTTL = time.Hour

// Claims is the fixed payload carried by every token.
//
// RegisteredClaims provides sub (user id), jti, iat and exp.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

var signingMethod = jwt.SigningMethodHS256

// Issuer signs tokens for authenticated users.
// It is immutable after construction and safe for concurrent use.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an Issuer. An empty secret or a non-positive ttl yields
// models.ErrConfiguration.
func NewIssuer(secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty signing secret", models.ErrConfiguration)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: token ttl must be positive", models.ErrConfiguration)
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for user that expires after the issuer's ttl.
func (i *Issuer) Issue(user *models.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("issue token: user without id")
	}

	now := i.now()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validator verifies tokens produced by an Issuer sharing the same secret.
type Validator struct {
	secret []byte
	now    func() time.Time
}

// NewValidator builds a Validator. An empty secret yields models.ErrConfiguration.
func NewValidator(secret []byte) (*Validator, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty signing secret", models.ErrConfiguration)
	}
	return &Validator{secret: secret, now: time.Now}, nil
}

// Validate checks the token's structure, algorithm, signature and expiry and
// returns the identity it carries. Every failure wraps models.ErrInvalidToken.
func (v *Validator) Validate(tokenString string) (models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.Identity{}, models.ErrInvalidToken
	}
	if claims.Subject == "" || claims.Email == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject claims", models.ErrInvalidToken)
	}

	return models.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
