package client

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoToken is returned by TokenStore.Load when no token has been saved.
var ErrNoToken = errors.New("not logged in")

// TokenStore keeps the access token between client invocations.
type TokenStore struct {
	Path string
}

// Load returns the saved token or ErrNoToken.
func (s TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Save writes the token readable by the owner only.
func (s TokenStore) Save(token string) error {
	if err := os.WriteFile(s.Path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}
