// Package config provides functionality for managing configuration options
// for the application using a JSON file, command-line flags and environment
// variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atinyakov/formulaone/internal/models"
	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"addr" env:"SERVER_ADDRESS"`

	// RedirectAddr is an optional plain-HTTP listener that redirects to Addr.
	RedirectAddr string `json:"redirect_addr" env:"REDIRECT_ADDRESS"`

	// DatabaseDSN holds the database connection string. Empty selects the
	// in-memory stores.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// JWTSecret is the HMAC key used to sign and verify access tokens.
	JWTSecret string `json:"jwt_secret" env:"JWT_SECRET"`

	// TokenTTL is the lifetime of issued tokens. The config file accepts a
	// duration string ("1h") or an integer number of nanoseconds.
	TokenTTL time.Duration `json:"token_ttl" env:"TOKEN_TTL"`

	TLSCert string `json:"tls_cert" env:"TLS_CERT"`
	TLSKey  string `json:"tls_key" env:"TLS_KEY"`

	BcryptCost int    `json:"bcrypt_cost" env:"BCRYPT_COST"`
	LogLevel   string `json:"log_level" env:"LOG_LEVEL"`

	// UniformLoginErrors makes login answer "Invalid Credentials" for unknown emails too.
	UniformLoginErrors bool `json:"uniform_login_errors" env:"UNIFORM_LOGIN_ERRORS"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG"`
}

// UnmarshalJSON decodes the config file, reading token_ttl as a duration string
// or integer nanoseconds. Absent fields keep their current values.
func (o *Options) UnmarshalJSON(data []byte) error {
	type plain Options
	aux := struct {
		*plain
		TokenTTL json.RawMessage `json:"token_ttl"`
	}{plain: (*plain)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.TokenTTL) == 0 || string(aux.TokenTTL) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(aux.TokenTTL, &text); err == nil {
		d, err := time.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("token_ttl: %w", err)
		}
		o.TokenTTL = d
		return nil
	}

	var nanos int64
	if err := json.Unmarshal(aux.TokenTTL, &nanos); err != nil {
		return fmt.Errorf("token_ttl: %w", err)
	}
	o.TokenTTL = time.Duration(nanos)
	return nil
}

// TLSEnabled reports whether both the certificate and key are configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

// Validate checks the options required to start the server.
func (o *Options) Validate() error {
	switch {
	case o.JWTSecret == "":
		return fmt.Errorf("%w: jwt secret is not set", models.ErrConfiguration)
	case o.TokenTTL <= 0:
		return fmt.Errorf("%w: token ttl must be positive", models.ErrConfiguration)
	case (o.TLSCert == "") != (o.TLSKey == ""):
		return fmt.Errorf("%w: tls cert and key must be set together", models.ErrConfiguration)
	}
	return nil
}

func defaults() *Options {
	return &Options{
		Addr:       "localhost:8443",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.DefaultCost,
		LogLevel:   "info",
		Config:     "config.json",
	}
}

func newFlagSet(o *Options) *flag.FlagSet {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&o.Addr, "a", o.Addr, "run on ip:port server")
	fs.StringVar(&o.RedirectAddr, "r", o.RedirectAddr, "plain HTTP redirect listener ip:port")
	fs.StringVar(&o.DatabaseDSN, "d", o.DatabaseDSN, "db address")
	fs.StringVar(&o.JWTSecret, "s", o.JWTSecret, "jwt signing secret")
	fs.DurationVar(&o.TokenTTL, "t", o.TokenTTL, "token lifetime")
	fs.StringVar(&o.Config, "config", o.Config, "path to config file")
	fs.StringVar(&o.Config, "c", o.Config, "path to config file (shorthand)")
	return fs
}

// Load builds Options from args and the environment. Later sources win:
// defaults, then the JSON config file, then flags, then environment variables.
// A missing config file is ignored.
func Load(args []string) (*Options, error) {
	opts := defaults()
	fs := newFlagSet(opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}

	if opts.Config != "" {
		data, err := os.ReadFile(opts.Config)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("error while reading config file: %w", err)
		default:
			if err := json.Unmarshal(data, opts); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
			// flags take precedence over the file
			if err := fs.Parse(args); err != nil {
				return nil, err
			}
		}
	}

	if err := env.Parse(opts); err != nil {
		return nil, fmt.Errorf("error while parsing environment: %w", err)
	}
	return opts, nil
}

// Parse loads Options from the process arguments and environment and exits
// on error.
func Parse() *Options {
	opts, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return opts
}
