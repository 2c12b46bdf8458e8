package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ChudiNnorukam/seoauditlite/internal/auditor"
	"github.com/ChudiNnorukam/seoauditlite/internal/config"
	"github.com/ChudiNnorukam/seoauditlite/internal/db"
	"github.com/ChudiNnorukam/seoauditlite/internal/entitlements"
	"github.com/ChudiNnorukam/seoauditlite/internal/handlers"
	"github.com/ChudiNnorukam/seoauditlite/internal/middleware"
	"github.com/ChudiNnorukam/seoauditlite/internal/store"
	"github.com/ChudiNnorukam/seoauditlite/internal/webclient"
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
	webclient.SetUserAgentVersion(cfg.AppVersion)

	var database *db.Database
	var entStore entitlements.Store
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()
		entStore = store.NewEntitlementStore(database.Pool)
	} else {
		slog.Warn("DATABASE_URL not set, entitlement lookups disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(middleware.RequestContext())
	router.Use(middleware.SecurityHeaders())

	rateLimiter := middleware.NewInMemoryRateLimiter()
	slog.Info("Rate limiter initialized", "backend", "in-memory")

	engine := auditor.New(auditor.WithTimeout(cfg.AuditTimeout))
	audits := store.NewMemoryAuditStore(cfg.AuditTTL)
	resolver := webclient.NewResolver()

	auditHandler := handlers.NewAuditHandler(engine, audits, entStore, resolver)
	if database != nil {
		auditHandler.Archive = store.NewAuditArchive(database.Pool)
	}
	healthHandler := handlers.NewHealthHandler(database, audits, cfg.AppVersion)

	router.POST("/api/audit", middleware.RateLimit(rateLimiter, middleware.ClassAudit), auditHandler.Create)
	router.GET("/api/audit/:auditId", middleware.RateLimit(rateLimiter, middleware.ClassRead), auditHandler.Get)
	router.GET("/api/audit/:auditId/share", middleware.RateLimit(rateLimiter, middleware.ClassRead), auditHandler.Share)
	router.GET("/api/seo-snapshot", middleware.RateLimit(rateLimiter, middleware.ClassAudit), auditHandler.SEOSnapshot)
	router.GET("/api/health", healthHandler.HealthCheck)

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	slog.Info("Starting AEO audit server", "address", addr, "version", cfg.AppVersion)

	if err := router.Run(addr); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
