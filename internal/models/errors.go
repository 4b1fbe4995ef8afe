package models

import "errors"

var (
	// Request validation errors.
	ErrValidation = errors.New("validation error")

	// Identity store errors.
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrStorage        = errors.New("storage error")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// ErrConfiguration is returned at startup when the signing setup is unusable.
	ErrConfiguration = errors.New("configuration error")

	// Team errors.
	ErrTeamNotFound = errors.New("team not found")
)

// Messages returned to clients inside AuthResult.Errors.
const (
	MsgEmailExists        = "Email already exists!"
	MsgServerError        = "Server Error"
	MsgInvalidPayload     = "Invalid Payload"
	MsgInvalidCredentials = "Invalid Credentials"
)
