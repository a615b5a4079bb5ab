// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colly23421/seo-ai-audit/internal/analyzer"
	"github.com/colly23421/seo-ai-audit/internal/config"
	"github.com/colly23421/seo-ai-audit/internal/middleware"
	"github.com/colly23421/seo-ai-audit/internal/models"
)

type AuditHandler struct {
	Analyzer *analyzer.Analyzer
	Config   *config.Config
	Limiter  middleware.RateLimiter
}

func NewAuditHandler(a *analyzer.Analyzer, cfg *config.Config, limiter middleware.RateLimiter) *AuditHandler {
	return &AuditHandler{
		Analyzer: a,
		Config:   cfg,
		Limiter:  limiter,
	}
}

// auditRequest covers all three entry modes. Mode selects the pipeline
// stage: "" fetches the URL, "html" parses inline markup, "results"
// rescores a previously extracted signal bag.
type auditRequest struct {
	URL     string               `json:"url"`
	Mode    string               `json:"mode"`
	Input   string               `json:"input"`
	Results *models.AuditSignals `json:"results"`
}

// Audit is the POST /api/audit entry point.
func (h *AuditHandler) Audit(c *gin.Context) {
	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	switch req.Mode {
	case "results":
		h.auditFromResults(c, &req)
	case "html":
		h.auditFromMarkup(c, &req)
	default:
		h.auditFromURL(c, &req)
	}
}

// auditFromURL fetches the live page and runs the full pipeline including
// the robots/sitemap probes.
func (h *AuditHandler) auditFromURL(c *gin.Context, req *auditRequest) {
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	target, err := NormalizeTargetURL(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL format"})
		return
	}

	if result := h.Limiter.CheckAndRecord(c.ClientIP(), target); !result.Allowed {
		slog.Warn("Audit rejected by rate limiter",
			"ip", c.ClientIP(),
			"reason", result.Reason,
			"wait_seconds", result.WaitSeconds,
		)
		middleware.RejectRateLimited(c, result)
		return
	}

	result, err := h.Analyzer.AuditURL(c.Request.Context(), target, h.Config.PromoURL)
	if err != nil {
		if errors.Is(err, analyzer.ErrAtCapacity) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Service is busy. Please try again in a moment.",
			})
			return
		}
		slog.Error("Audit failed", "url", target, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to analyze the page. Check that the URL is correct and reachable.",
			"details": err.Error(),
		})
		return
	}

	result.RegistrableHost = RegistrableHost(target)
	c.JSON(http.StatusOK, result)
}

// auditFromMarkup audits caller-supplied HTML. No origin exists, so the
// technical probes are skipped and Technical stays null in the response.
func (h *AuditHandler) auditFromMarkup(c *gin.Context, req *auditRequest) {
	if req.Input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "HTML input is required"})
		return
	}

	result, err := h.Analyzer.AuditMarkup(c.Request.Context(), "", req.Input, false, h.Config.PromoURL)
	if err != nil {
		if errors.Is(err, analyzer.ErrAtCapacity) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Service is busy. Please try again in a moment.",
			})
			return
		}
		slog.Error("Markup audit failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to analyze the provided HTML.",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// auditFromResults rescores an already extracted signal bag without any
// network or parsing work.
func (h *AuditHandler) auditFromResults(c *gin.Context, req *auditRequest) {
	if req.Results == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Results payload is required"})
		return
	}

	result := h.Analyzer.Assemble(req.URL, req.Results, h.Config.PromoURL)
	c.JSON(http.StatusOK, result)
}
