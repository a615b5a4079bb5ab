package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/colly23421/seo-ai-audit/internal/analyzer"
	"github.com/colly23421/seo-ai-audit/internal/config"
	"github.com/colly23421/seo-ai-audit/internal/handlers"
	"github.com/colly23421/seo-ai-audit/internal/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(middleware.RequestContext())
	router.Use(middleware.SecurityHeaders())

	rateLimiter := middleware.NewInMemoryRateLimiter()
	slog.Info("Rate limiter initialized", "backend", "in-memory", "max_requests", middleware.RateLimitMaxRequests, "window_seconds", middleware.RateLimitWindow)

	seoAnalyzer := analyzer.New(analyzer.WithMaxConcurrent(cfg.MaxConcurrent))
	slog.Info("SEO analyzer initialized with telemetry", "max_concurrent", cfg.MaxConcurrent)

	auditHandler := handlers.NewAuditHandler(seoAnalyzer, cfg, rateLimiter)
	healthHandler := handlers.NewHealthHandler(seoAnalyzer, cfg.AppVersion, cfg.MaintenanceNote)

	router.POST("/api/audit", auditHandler.Audit)
	router.GET("/api/health", healthHandler.HealthCheck)

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	slog.Info("Starting SEO audit server", "address", addr, "version", cfg.AppVersion)

	if err := router.Run(addr); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
