// Package main initializes and starts the FormulaOne API server,
// setting up configuration, logging, storage, authentication components,
// services, handlers, and TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/formulaone/internal/auth"
	"github.com/atinyakov/formulaone/internal/config"
	"github.com/atinyakov/formulaone/internal/db"
	"github.com/atinyakov/formulaone/internal/logger"
	"github.com/atinyakov/formulaone/internal/middleware"
	"github.com/atinyakov/formulaone/internal/repository"
	"github.com/atinyakov/formulaone/internal/server/handler/http"
	"github.com/atinyakov/formulaone/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	if err := run(options, zapLogger); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func run(options *config.Options, zapLogger *zap.Logger) error {
	if err := options.Validate(); err != nil {
		return err
	}

	// Token issuer and validator share the configured secret.
	secret := []byte(options.JWTSecret)
	issuer, err := auth.NewIssuer(secret, options.TokenTTL)
	if err != nil {
		return err
	}
	validator, err := auth.NewValidator(secret)
	if err != nil {
		return err
	}

	authRepo, teamRepo, closeStore, err := openStore(options.DatabaseDSN, zapLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo, auth.NewPasswordHasher(options.BcryptCost), issuer, zapLogger)
	authService.UniformLoginErrors = options.UniformLoginErrors
	teamService := service.NewTeamService(teamRepo)

	// Create HTTP handlers and build the router with middleware and routes.
	authHandler := &http.AuthHandler{AuthService: authService}
	teamHandler := &http.TeamHandler{TeamService: teamService}
	router := http.NewRouter(authHandler, teamHandler, validator, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	servers := []*nethttp.Server{server}
	serverErrs := make(chan error, 2)

	go func() {
		var err error
		if options.TLSEnabled() {
			server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Addr))
			err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
		} else {
			zapLogger.Warn("TLS is not configured, starting plain HTTP server", zap.String("addr", options.Addr))
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serverErrs <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	if options.RedirectAddr != "" && options.TLSEnabled() {
		redirect := &nethttp.Server{
			Addr:              options.RedirectAddr,
			Handler:           middleware.RedirectHTTPS(options.Addr),
			ReadHeaderTimeout: 10 * time.Second,
		}
		servers = append(servers, redirect)

		go func() {
			zapLogger.Info("starting HTTPS redirect listener", zap.String("addr", options.RedirectAddr))
			if err := redirect.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				serverErrs <- fmt.Errorf("redirect listener: %w", err)
			}
		}()
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrs:
		return err
	case sig := <-shutdown:
		zapLogger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		for _, s := range servers {
			if err := s.Shutdown(ctx); err != nil {
				_ = s.Close()
				return fmt.Errorf("shutdown %s: %w", s.Addr, err)
			}
		}
		zapLogger.Info("shutdown completed")
	}
	return nil
}

// openStore selects PostgreSQL when dsn is set and the in-memory stores otherwise.
func openStore(dsn string, zapLogger *zap.Logger) (service.AuthRepository, service.TeamRepository, func(), error) {
	if dsn == "" {
		zapLogger.Warn("DATABASE_DSN is empty, using in-memory storage")
		return repository.NewMemoryAuthRepository(), repository.NewMemoryTeamRepository(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	postgresDB, err := db.InitPostgres(ctx, dsn, zapLogger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cannot init database: %w", err)
	}
	closeDB := func() { _ = postgresDB.Close() }
	return repository.NewPostgresAuthRepository(postgresDB), repository.NewPostgresTeamRepository(postgresDB), closeDB, nil
}
