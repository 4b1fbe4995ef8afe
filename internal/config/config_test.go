package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atinyakov/formulaone/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	opts, err := Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8443", opts.Addr)
	assert.Equal(t, time.Hour, opts.TokenTTL)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Empty(t, opts.DatabaseDSN)
	assert.False(t, opts.TLSEnabled())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `{
		"addr": "file:1",
		"database_dsn": "postgres://file",
		"jwt_secret": "file-secret",
		"log_level": "debug"
	}`)

	opts, err := Load([]string{"-config", path, "-a", "flag:2"})
	require.NoError(t, err)
	assert.Equal(t, "flag:2", opts.Addr, "flag overrides file")
	assert.Equal(t, "postgres://file", opts.DatabaseDSN)
	assert.Equal(t, "file-secret", opts.JWTSecret)
	assert.Equal(t, "debug", opts.LogLevel)

	t.Setenv("SERVER_ADDRESS", "env:3")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("UNIFORM_LOGIN_ERRORS", "true")

	opts, err = Load([]string{"-config", path, "-a", "flag:2"})
	require.NoError(t, err)
	assert.Equal(t, "env:3", opts.Addr, "env overrides flag")
	assert.Equal(t, "env-secret", opts.JWTSecret)
	assert.Equal(t, 15*time.Minute, opts.TokenTTL)
	assert.True(t, opts.UniformLoginErrors)
}

func TestLoad_TokenTTLInConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration string", body: `{"token_ttl": "90m"}`, want: 90 * time.Minute},
		{name: "nanoseconds", body: `{"token_ttl": 60000000000}`, want: time.Minute},
		{name: "absent keeps default", body: `{"addr": ":1"}`, want: time.Hour},
		{name: "null keeps default", body: `{"token_ttl": null}`, want: time.Hour},
		{name: "bad duration", body: `{"token_ttl": "soon"}`, wantErr: true},
		{name: "wrong type", body: `{"token_ttl": true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Load([]string{"-c", writeConfig(t, tt.body)})
			if tt.wantErr {
				assert.ErrorContains(t, err, "error while parsing config file")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.TokenTTL)
		})
	}

	opts, err := Load([]string{"-c", writeConfig(t, `{"token_ttl": "2h"}`), "-t", "5m"})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, opts.TokenTTL, "flag overrides file")
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, `{"redirect_addr": ":8080"}`)
	t.Setenv("CONFIG", path)

	opts, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", opts.RedirectAddr)
	assert.Equal(t, path, opts.Config)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]string{"-c", writeConfig(t, `{not json`)})
	assert.ErrorContains(t, err, "error while parsing config file")

	_, err = Load([]string{"-unknown"})
	assert.Error(t, err)

	t.Setenv("TOKEN_TTL", "soon")
	_, err = Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.ErrorContains(t, err, "error while parsing environment")
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Options)
		wantErr bool
	}{
		{name: "valid", mutate: func(o *Options) {}},
		{name: "missing secret", mutate: func(o *Options) { o.JWTSecret = "" }, wantErr: true},
		{name: "zero ttl", mutate: func(o *Options) { o.TokenTTL = 0 }, wantErr: true},
		{name: "cert without key", mutate: func(o *Options) { o.TLSCert = "server.crt" }, wantErr: true},
		{name: "cert and key", mutate: func(o *Options) { o.TLSCert, o.TLSKey = "server.crt", "server.key" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaults()
			o.JWTSecret = "secret"
			tt.mutate(o)

			err := o.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
