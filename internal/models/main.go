// Package models defines the core data structures for users, teams and
// authentication results.
package models

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Email is the normalized login of the user.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string
}

// Credentials is the email/password pair received by register and login.
// It is never persisted or logged.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is the authenticated subject extracted from a verified token.
type Identity struct {
	// UserID is the subject identifier.
	UserID string
	// Email is the subject email.
	Email string
}

// AuthResult is the response envelope shared by register and login.
type AuthResult struct {
	// Success reports whether the operation issued a token.
	Success bool `json:"success"`
	// Token is the signed bearer token on success.
	Token string `json:"token,omitempty"`
	// Errors holds human-readable failure messages in order.
	Errors []string `json:"errors,omitempty"`
}

// Team is a Formula One team record.
type Team struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Year    int    `json:"year"`
}
