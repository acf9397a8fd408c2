package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/showfolio/contrib-service/cmd/server/internal/config"
)

// HealthCheckResponse is the liveness probe payload.
type HealthCheckResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
	Env       string    `json:"env"`
}

// ReadinessResponse is the readiness probe payload.
type ReadinessResponse struct {
	Ready     bool             `json:"ready"`
	Checks    []ReadinessCheck `json:"checks"`
	Timestamp time.Time        `json:"timestamp"`
}

// ReadinessCheck represents a single readiness check.
type ReadinessCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "ok" or "fail"
	Detail string `json:"detail,omitempty"`
}

// HandleHealthCheck returns the liveness probe handler.
func HandleHealthCheck(cfg *config.Config, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthCheckResponse{
			Status:    "healthy",
			Service:   "contrib-service",
			Version:   "1.0.0",
			Uptime:    time.Since(startTime).String(),
			Timestamp: time.Now(),
			Env:       cfg.Server.Env,
		})
	}
}

// HandleReadinessCheck returns the readiness probe handler. A missing
// GitHub token does not fail readiness: the service then runs in mock
// mode, which is a supported configuration.
func HandleReadinessCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := []ReadinessCheck{
			{Name: "graphql_url", Status: "ok"},
			{Name: "github_token", Status: "ok"},
		}
		ready := true

		if cfg.GitHub.GraphQLURL == "" {
			checks[0].Status = "fail"
			checks[0].Detail = "github graphql url not configured"
			ready = false
		}
		if cfg.GitHub.Token == "" {
			checks[1].Detail = "not configured, serving mock data"
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, ReadinessResponse{
			Ready:     ready,
			Checks:    checks,
			Timestamp: time.Now(),
		})
	}
}
