package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/platinummonkey/taskd/pkg/api"
	"github.com/platinummonkey/taskd/pkg/auth"
	"github.com/platinummonkey/taskd/pkg/config"
	"github.com/platinummonkey/taskd/pkg/observability"
	"github.com/platinummonkey/taskd/pkg/storage"
)

// version is stamped at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		observability.NewLogger(observability.ErrorLevel, os.Stderr).WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.WithFields(map[string]interface{}{
		"version":     version,
		"environment": cfg.Server.Environment,
	}).Info("Starting taskd")

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("TASKD_JWT_SECRET is not set; falling back to the well-known development secret")
	}

	store := storage.NewMemory()
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if err := seedAdmin(store, hasher, cfg, logger); err != nil {
		logger.WithError(err).Error("Failed to seed admin account")
		os.Exit(1)
	}

	var metrics *observability.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
	}

	server := api.NewServer(store, api.Options{
		Hasher:       hasher,
		Tokens:       tokens,
		Logger:       logger,
		Metrics:      metrics,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Debug:        !cfg.IsProduction(),
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	opsServer := newOpsServer(cfg, store, registry)

	go func() {
		logger.Infof("Ops server listening on %s", cfg.Server.OpsAddr())
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Ops server failed")
		}
	}()

	go func() {
		logger.Infof("API server listening on %s", cfg.Server.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("API server failed")
			os.Exit(1)
		}
	}()

	manager := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	manager.RegisterShutdownFunc(func(ctx context.Context) error {
		return opsServer.Shutdown(ctx)
	})
	if err := manager.WaitForShutdown(); err != nil {
		os.Exit(1)
	}
}

// newOpsServer serves the probe and metrics endpoints on a separate
// port, kept off the public API listener.
func newOpsServer(cfg *config.Config, store *storage.Memory, registry *prometheus.Registry) *http.Server {
	health := observability.NewHealthChecker(version)
	health.AddCheck("storage", func(ctx context.Context) error {
		store.Counts()
		return nil
	})

	opsMux := http.NewServeMux()
	opsMux.HandleFunc("/healthz", health.Liveness)
	opsMux.HandleFunc("/readyz", health.Readiness)
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(opsMux, registry)
	}

	return &http.Server{
		Addr:         cfg.Server.OpsAddr(),
		Handler:      opsMux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// seedAdmin optionally creates one account at startup. The in-memory
// store boots empty, so demo deployments use this to avoid a manual
// registration step after every restart.
func seedAdmin(store *storage.Memory, hasher *auth.PasswordHasher, cfg *config.Config, logger *observability.Logger) error {
	if cfg.Seed.AdminEmail == "" {
		return nil
	}

	digest, err := hasher.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	user := &api.User{
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: digest,
		Name:         cfg.Seed.AdminName,
	}
	if err := store.CreateUser(user); err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"email": cfg.Seed.AdminEmail,
		"id":    user.ID,
	}).Info("Seeded admin account")
	return nil
}
