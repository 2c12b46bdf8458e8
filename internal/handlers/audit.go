// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.

// Package handlers exposes the audit engine over a JSON API.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ChudiNnorukam/seoauditlite/internal/auditor"
	"github.com/ChudiNnorukam/seoauditlite/internal/entitlements"
	"github.com/ChudiNnorukam/seoauditlite/internal/models"
	"github.com/ChudiNnorukam/seoauditlite/internal/store"
	"github.com/ChudiNnorukam/seoauditlite/internal/webclient"
)

const (
	headerOwnerToken     = "X-Owner-Token"
	headerEntitlementKey = "X-Entitlement-Key"
)

// Archiver persists finished audits beyond the in-memory store's TTL.
type Archiver interface {
	Archive(ctx context.Context, row models.AuditRow) error
}

type AuditHandler struct {
	Auditor      *auditor.Auditor
	Audits       store.AuditStore
	Entitlements entitlements.Store
	Resolver     *webclient.Resolver

	// Archive is optional; without it audits only live in memory.
	Archive Archiver
}

func NewAuditHandler(a *auditor.Auditor, audits store.AuditStore, ents entitlements.Store, resolver *webclient.Resolver) *AuditHandler {
	return &AuditHandler{
		Auditor:      a,
		Audits:       audits,
		Entitlements: ents,
		Resolver:     resolver,
	}
}

// Create runs a fresh audit. The response envelope carries the full
// owner view plus grade, message, improvements and the one-time owner
// token.
func (h *AuditHandler) Create(c *gin.Context) {
	var req auditor.AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "request body must be JSON with a domain field",
			"code":      auditor.CodeValidation,
			"retryable": false,
		})
		return
	}

	// Undelegated domains fail fast with a clear message instead of
	// burning the full fetch budget on connection errors.
	if h.Resolver != nil {
		_, domain, err := webclient.NormalizeAuditURL(req.Domain)
		if err == nil && webclient.ValidDomainFormat(domain) {
			if !h.Resolver.IsDelegated(c.Request.Context(), domain) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     fmt.Sprintf("Domain %s has no DNS delegation", domain),
					"code":      auditor.CodeValidation,
					"retryable": false,
				})
				return
			}
		}
	}

	report, err := h.Auditor.AuditDomain(c.Request.Context(), req)
	if err != nil {
		writeAuditError(c, err)
		return
	}

	ownerToken := h.Audits.Save(report)
	h.archiveAudit(c.Request.Context(), report)

	traceID, _ := c.Get("trace_id")
	slog.Info("Audit completed",
		"trace_id", traceID,
		"audit_id", report.Result.AuditID,
		"audited_url", report.Result.AuditedURL,
		"score", report.Result.OverallScore,
	)

	summary := auditor.Summarize(report.Result)
	c.JSON(http.StatusOK, gin.H{
		"audit":        report.Result,
		"grade":        summary.Grade,
		"message":      summary.Message,
		"improvements": auditor.GenerateImprovements(report),
		"owner_token":  ownerToken,
		"share_url":    fmt.Sprintf("/api/audit/%s/share", report.Result.AuditID),
	})
}

// Get returns a stored audit redacted for the requesting viewer.
func (h *AuditHandler) Get(c *gin.Context) {
	auditID := c.Param("auditId")
	report, ok := h.Audits.Get(auditID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "audit not found",
			"code":      auditor.CodeValidation,
			"retryable": false,
		})
		return
	}

	isOwner := h.Audits.IsOwner(auditID, c.GetHeader(headerOwnerToken))
	viewer, err := entitlements.ResolveForRequest(c.Request.Context(), h.Entitlements, entitlements.RequestInputs{
		EntitlementKey: strings.TrimSpace(c.GetHeader(headerEntitlementKey)),
		Audit:          report.Result,
		IsShareLink:    false,
		IsOwner:        isOwner,
	})
	if err != nil {
		traceID, _ := c.Get("trace_id")
		slog.Error("Entitlement resolution failed", "trace_id", traceID, "error", err)
		viewer = entitlements.Resolve(entitlements.Inputs{Audit: report.Result, IsOwner: isOwner})
	}

	c.JSON(http.StatusOK, gin.H{"audit": entitlements.Redact(report.Result, viewer)})
}

// Share returns the share-mode view: non-share-safe checks dropped,
// details replaced.
func (h *AuditHandler) Share(c *gin.Context) {
	auditID := c.Param("auditId")
	report, ok := h.Audits.Get(auditID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "audit not found",
			"code":      auditor.CodeValidation,
			"retryable": false,
		})
		return
	}

	viewer := entitlements.Resolve(entitlements.Inputs{
		Audit:       report.Result,
		IsShareLink: true,
	})
	c.JSON(http.StatusOK, gin.H{"audit": entitlements.Redact(report.Result, viewer)})
}

// SEOSnapshot runs the best-effort classic SEO bundle.
func (h *AuditHandler) SEOSnapshot(c *gin.Context) {
	domain := strings.TrimSpace(c.Query("domain"))
	if domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "domain query parameter is required",
			"code":      auditor.CodeValidation,
			"retryable": false,
		})
		return
	}

	snapshot, err := h.Auditor.SEOSnapshot(c.Request.Context(), domain)
	if err != nil {
		writeAuditError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// archiveAudit is best effort; a failed insert never fails the request.
func (h *AuditHandler) archiveAudit(ctx context.Context, report *auditor.Report) {
	if h.Archive == nil {
		return
	}
	raw, err := json.Marshal(report.Result)
	if err != nil {
		slog.Error("Failed to serialize audit for archive", "audit_id", report.Result.AuditID, "error", err)
		return
	}
	row := models.AuditRow{
		AuditID:    report.Result.AuditID,
		AuditedURL: report.Result.AuditedURL,
		Score:      report.Result.OverallScore,
		Result:     raw,
	}
	if err := h.Archive.Archive(ctx, row); err != nil {
		slog.Warn("Audit archive failed", "audit_id", row.AuditID, "error", err)
	}
}

// writeAuditError maps the engine's error taxonomy onto HTTP.
func writeAuditError(c *gin.Context, err error) {
	if ae, ok := auditor.AsError(err); ok {
		c.JSON(ae.Status, gin.H{
			"error":     ae.Message,
			"code":      ae.Code,
			"retryable": auditor.Retryable(ae),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     "internal server error",
		"code":      "INTERNAL_ERROR",
		"retryable": false,
	})
}
