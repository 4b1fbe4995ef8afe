package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/formulaone/internal/models"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	result   models.AuthResult
	received []models.Credentials
}

func (f *fakeAuthService) Register(_ context.Context, c models.Credentials) models.AuthResult {
	f.received = append(f.received, c)
	return f.result
}

func (f *fakeAuthService) Login(_ context.Context, c models.Credentials) models.AuthResult {
	f.received = append(f.received, c)
	return f.result
}

func TestAuthHandler_Endpoints(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		result       models.AuthResult
		expectedCode int
		expected     models.AuthResult
		wantCalls    int
	}{
		{
			name:         "invalid JSON",
			body:         `not a json`,
			expectedCode: http.StatusBadRequest,
			expected:     models.AuthResult{Errors: []string{"Invalid Payload"}},
		},
		{
			name:         "success",
			body:         `{"email":"a@x.com","password":"Secret1!"}`,
			result:       models.AuthResult{Success: true, Token: "tok"},
			expectedCode: http.StatusOK,
			expected:     models.AuthResult{Success: true, Token: "tok"},
			wantCalls:    1,
		},
		{
			name:         "failure envelope",
			body:         `{"email":"a@x.com","password":"Secret1!"}`,
			result:       models.AuthResult{Errors: []string{"Email already exists!"}},
			expectedCode: http.StatusBadRequest,
			expected:     models.AuthResult{Errors: []string{"Email already exists!"}},
			wantCalls:    1,
		},
	}

	for _, tt := range tests {
		for _, endpoint := range []string{"register", "login"} {
			t.Run(endpoint+"/"+tt.name, func(t *testing.T) {
				svc := &fakeAuthService{result: tt.result}
				h := &AuthHandler{AuthService: svc}

				rec := httptest.NewRecorder()
				req := httptest.NewRequest("POST", "/auth/"+endpoint, bytes.NewBufferString(tt.body))
				if endpoint == "register" {
					h.Register(rec, req)
				} else {
					h.Login(rec, req)
				}
				res := rec.Result()
				defer res.Body.Close()

				if res.StatusCode != tt.expectedCode {
					t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
				}
				if ct := res.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("expected JSON content type, got %q", ct)
				}

				var got models.AuthResult
				if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
					t.Fatalf("failed to decode JSON: %v", err)
				}
				if got.Success != tt.expected.Success || got.Token != tt.expected.Token ||
					len(got.Errors) != len(tt.expected.Errors) {
					t.Fatalf("got %+v; want %+v", got, tt.expected)
				}
				for i := range got.Errors {
					if got.Errors[i] != tt.expected.Errors[i] {
						t.Errorf("Errors[%d] = %q; want %q", i, got.Errors[i], tt.expected.Errors[i])
					}
				}
				if len(svc.received) != tt.wantCalls {
					t.Errorf("service calls = %d; want %d", len(svc.received), tt.wantCalls)
				}
			})
		}
	}
}

func TestAuthHandler_Me_WithoutIdentity(t *testing.T) {
	h := &AuthHandler{AuthService: &fakeAuthService{}}
	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest("GET", "/api/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
