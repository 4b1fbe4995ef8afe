package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/atinyakov/formulaone/internal/models"
)

const (
	apiRegister = "/auth/register"
	apiLogin    = "/auth/login"
	apiTeams    = "/api/teams"
)

// Client calls the FormulaOne API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Token is sent as a bearer credential on /api requests.
	Token string
}

// New returns a Client for baseURL using httpClient.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

// AuthError carries the error list of a failed register or login.
type AuthError struct {
	Errors []string
}

func (e *AuthError) Error() string {
	return "auth failed: " + strings.Join(e.Errors, "; ")
}

// Register creates an account and returns the issued token.
func (c *Client) Register(ctx context.Context, creds models.Credentials) (string, error) {
	return c.authenticate(ctx, apiRegister, creds)
}

// Login returns a token for existing credentials.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	return c.authenticate(ctx, apiLogin, creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds models.Credentials) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, path, creds, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result models.AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return "", &AuthError{Errors: result.Errors}
	}
	return result.Token, nil
}

// ListTeams returns all teams.
func (c *Client) ListTeams(ctx context.Context) ([]models.Team, error) {
	resp, err := c.do(ctx, http.MethodGet, apiTeams, nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	var teams []models.Team
	if err := json.NewDecoder(resp.Body).Decode(&teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

// CreateTeam stores team and returns it with the assigned id.
func (c *Client) CreateTeam(ctx context.Context, team models.Team) (*models.Team, error) {
	resp, err := c.do(ctx, http.MethodPost, apiTeams, team, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return nil, err
	}
	var created models.Team
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode team: %w", err)
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, authorized bool) (*http.Response, error) {
	if authorized && c.Token == "" {
		return nil, ErrNoToken
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	return resp, nil
}

// ErrUnauthorized is returned when the server rejects the bearer token.
var ErrUnauthorized = errors.New("unauthorized: login again")

func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	data, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
}
