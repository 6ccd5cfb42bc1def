// Socle - Patrimonial calculation engine.
// Copyright (c) 2025 OpenPatrimoine
// Licensed under the Apache License 2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/openpatrimoine/socle/internal/advisory"
	"github.com/openpatrimoine/socle/internal/api"
	"github.com/openpatrimoine/socle/internal/bus"
	"github.com/openpatrimoine/socle/internal/cache"
	"github.com/openpatrimoine/socle/internal/catalog"
	"github.com/openpatrimoine/socle/internal/check"
	"github.com/openpatrimoine/socle/internal/domain"
	"github.com/openpatrimoine/socle/internal/profile"
	"github.com/openpatrimoine/socle/internal/repository"
	"github.com/openpatrimoine/socle/internal/rules"
	"github.com/openpatrimoine/socle/internal/settings"
	"github.com/openpatrimoine/socle/internal/worker"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// Initialize structured logger
	logLevel := slog.LevelInfo
	if os.Getenv("SOCLE_DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Log startup
	slog.Info("starting socle",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)

	// Load configuration
	cfg := domain.DefaultConfig()

	// Check for Pro tier via environment
	if os.Getenv("SOCLE_TIER") == "pro" {
		cfg = domain.ProConfig()
		slog.Info("running in Pro tier mode")
	}

	slog.Info("configuration loaded",
		"tier", cfg.Tier,
		"repository", cfg.Repository.Driver,
		"cache", cfg.Cache.Type,
		"eventbus", cfg.EventBus.Type,
		"fiscal_year", cfg.FiscalYear,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Initialize Repository
	repo, err := repository.New(cfg.Repository)
	if err != nil {
		slog.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}
	defer repo.Close()
	slog.Info("repository initialized", "driver", cfg.Repository.Driver)

	// Initialize Cache
	cacheImpl, err := cache.New(cfg.Cache)
	if err != nil {
		slog.Error("failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer cacheImpl.Close()
	slog.Info("cache initialized", "type", cfg.Cache.Type)

	// Initialize EventBus
	busImpl, err := bus.New(cfg.EventBus)
	if err != nil {
		slog.Error("failed to initialize event bus", "error", err)
		os.Exit(1)
	}
	defer busImpl.Close()
	slog.Info("event bus initialized", "type", cfg.EventBus.Type)

	// Initialize Fiscal Settings Service
	settingsSvc := settings.NewService(repo, cacheImpl)
	slog.Info("fiscal settings service initialized")

	// Initialize Check Engine with the settings getter
	engine, err := check.NewEngine(settingsSvc.GetSettingsGetter(), 100)
	if err != nil {
		slog.Error("failed to initialize check engine", "error", err)
		os.Exit(1)
	}

	// Load checks from database; seed the builtins on an empty install
	if err := loadChecksFromDatabase(ctx, repo, engine); err != nil {
		slog.Error("failed to load checks", "error", err)
		os.Exit(1)
	}
	slog.Info("check engine initialized", "checks_count", engine.ChecksCount())

	// Initialize Advisory Processor
	processor := advisory.NewProcessor()
	slog.Info("advisory processor initialized", "threshold", processor.AttentionThreshold)

	// Initialize rule resolution and profile composition
	resolver := rules.NewResolver()
	profiles := profile.NewService(catalog.NewStatic(), resolver)
	slog.Info("profile service initialized")

	// Initialize async Worker (Pro tier)
	var asyncWorker *worker.Worker
	if cfg.Tier == domain.TierPro || os.Getenv("SOCLE_ASYNC_WORKER") == "true" {
		asyncWorker = worker.NewWorker(busImpl, repo, engine, processor, cfg.FiscalYear)

		var tenantIDs []string
		if envTenants := os.Getenv("SOCLE_TENANTS"); envTenants != "" {
			for _, t := range strings.Split(envTenants, ",") {
				if t = strings.TrimSpace(t); t != "" {
					tenantIDs = append(tenantIDs, t)
				}
			}
		}

		workerCfg := worker.Config{
			TenantIDs:   tenantIDs,
			WorkerCount: 5,
		}

		if err := asyncWorker.Start(workerCfg); err != nil {
			slog.Error("failed to start async worker", "error", err)
		} else {
			slog.Info("async worker started", "tenant_count", len(tenantIDs))
		}
	}

	// Initialize Server
	srv := api.NewServer(cfg.Server, api.Deps{
		Repo:       repo,
		Cache:      cacheImpl,
		Bus:        busImpl,
		Engine:     engine,
		Processor:  processor,
		Profiles:   profiles,
		Resolver:   resolver,
		Settings:   settingsSvc,
		FiscalYear: cfg.FiscalYear,
	}, Version)

	// Start Server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("socle is ready",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	printBanner(cfg, Version)

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	// Stop async worker first
	if asyncWorker != nil {
		if err := asyncWorker.Stop(); err != nil {
			slog.Error("failed to stop async worker", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("socle shutdown complete")
}

// GlobalTenantID is used for checks that apply to all tenants.
const GlobalTenantID = "*"

// loadChecksFromDatabase loads check configs from the database into the
// engine. A fresh install with no stored checks gets the builtin set, which
// is also persisted so it shows up in the management API.
func loadChecksFromDatabase(ctx context.Context, repo domain.Repository, engine *check.Engine) error {
	dbChecks, err := repo.ListCheckConfigs(ctx, GlobalTenantID)
	if err != nil {
		slog.Warn("failed to list checks from database", "error", err)
		dbChecks = nil
	}

	if len(dbChecks) > 0 {
		slog.Info("loading checks from database", "count", len(dbChecks))
		return engine.LoadChecks(dbChecks)
	}

	builtins := check.BuiltinChecks(GlobalTenantID)
	slog.Info("no checks in database - seeding builtin checks", "count", len(builtins))

	for _, cfg := range builtins {
		if err := repo.SaveCheckConfig(ctx, GlobalTenantID, cfg); err != nil {
			slog.Warn("failed to persist builtin check", "id", cfg.ID, "error", err)
		}
	}
	return engine.LoadChecks(builtins)
}

func printBanner(cfg *domain.Config, version string) {
	fmt.Println()
	fmt.Println("  SOCLE - Patrimonial Calculation Engine")
	fmt.Println()
	fmt.Printf("  Version:  %s\n", version)
	fmt.Printf("  Tier:     %s\n", cfg.Tier)
	fmt.Printf("  Server:   http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()
	fmt.Println("  Endpoints:")
	fmt.Println("    GET  /profiles/{envelope}    - Resolve a fiscal profile")
	fmt.Println("    GET  /products/{id}/rules    - Resolve product fiscal rules")
	fmt.Println("    POST /simulations            - Run a credit simulation")
	fmt.Println("    GET  /simulations/{id}       - Get simulation by ID")
	fmt.Println("    POST /impot/adjustments      - Income-tax adjustments")
	fmt.Println("    GET  /checks                 - List all checks")
	fmt.Println("    POST /checks                 - Create a new check")
	fmt.Println("    POST /checks/reload          - Hot-reload checks from database")
	fmt.Println("    GET  /settings/{year}        - Get fiscal settings")
	fmt.Println("    PUT  /settings/{year}        - Update fiscal settings")
	fmt.Println("    GET  /health                 - Health check")
	fmt.Println()
}
