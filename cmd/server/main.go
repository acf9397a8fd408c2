package main

import (
	// Standard library
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	// External dependencies
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/showfolio/contrib-service/cmd/server/internal/api"
	"github.com/showfolio/contrib-service/cmd/server/internal/config"
	"github.com/showfolio/contrib-service/cmd/server/internal/contributions"
	"github.com/showfolio/contrib-service/cmd/server/internal/middleware"
	"github.com/showfolio/contrib-service/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to config.yaml (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logInstance, err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		WithSource:  !strings.EqualFold(cfg.Server.Env, "production"),
		File:        cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	appLogger := logInstance.With("component", "contrib-server")

	appLogger.Info("configuration loaded", "env", cfg.Server.Env, "port", cfg.Server.Port)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the contribution service. A missing token is a valid
	// configuration: every query is then served from the mock generator.
	var client *contributions.Client
	if cfg.GitHub.Token != "" {
		client = contributions.NewClient(
			cfg.GitHub.Token,
			cfg.GitHub.GraphQLURL,
			time.Duration(cfg.GitHub.TimeoutSeconds)*time.Second,
		)
		appLogger.Info("github client ready", "url", cfg.GitHub.GraphQLURL, "timeout_s", cfg.GitHub.TimeoutSeconds)
	} else {
		appLogger.Warn("GITHUB_TOKEN not set, serving mock contribution data")
	}

	generator := contributions.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	contribService := contributions.NewService(
		client,
		generator,
		time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
		logInstance.With("component", "contributions"),
	)
	appLogger.Info("contribution service ready", "cache_ttl_m", cfg.Cache.TTLMinutes)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Probes and metrics (no versioned prefix)
	startTime := time.Now()
	r.GET("/health", api.HandleHealthCheck(cfg, startTime))
	r.GET("/api/v1/health", api.HandleHealthCheck(cfg, startTime)) // Alternative API path
	r.GET("/readiness", api.HandleReadinessCheck(cfg))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ========== Contributions API ==========
	r.GET("/api/v1/users/:username/contributions", api.HandleGetContributions(contribService))
	r.POST("/api/v1/admin/cache/purge", api.HandleCachePurge(contribService))

	// Create HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:    cfg.GetServerAddr(),
		Handler: r,
	}

	go func() {
		appLogger.Info("server starting", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit
	appLogger.Info("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	appLogger.Info("server shutdown complete")
}
