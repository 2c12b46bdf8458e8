package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ChudiNnorukam/seoauditlite/internal/db"
	"github.com/ChudiNnorukam/seoauditlite/internal/store"
)

type HealthHandler struct {
	DB        *db.Database
	Audits    store.AuditStore
	StartTime time.Time
	Version   string
}

func NewHealthHandler(database *db.Database, audits store.AuditStore, version string) *HealthHandler {
	return &HealthHandler{
		DB:        database,
		Audits:    audits,
		StartTime: time.Now(),
		Version:   version,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "not configured"
	if h.DB != nil {
		dbStatus = "healthy"
		if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
			dbStatus = "unhealthy: " + err.Error()
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"runtime": "go",
		"version": h.Version,
		"uptime":  time.Since(h.StartTime).String(),
		"database": gin.H{
			"status": dbStatus,
		},
		"audits": gin.H{
			"stored": h.Audits.Len(),
		},
		"memory": gin.H{
			"alloc_mb":       memStats.Alloc / 1024 / 1024,
			"sys_mb":         memStats.Sys / 1024 / 1024,
			"num_goroutines": runtime.NumGoroutine(),
		},
	})
}
