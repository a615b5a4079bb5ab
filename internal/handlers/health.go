// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/colly23421/seo-ai-audit/internal/analyzer"
	"github.com/colly23421/seo-ai-audit/internal/telemetry"
)

type HealthHandler struct {
	StartTime       time.Time
	Analyzer        *analyzer.Analyzer
	Version         string
	MaintenanceNote string
}

func NewHealthHandler(a *analyzer.Analyzer, version, maintenanceNote string) *HealthHandler {
	return &HealthHandler{
		StartTime:       time.Now(),
		Analyzer:        a,
		Version:         version,
		MaintenanceNote: maintenanceNote,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response := gin.H{
		"status":  "ok",
		"runtime": "go",
		"version": h.Version,
		"uptime":  time.Since(h.StartTime).String(),
		"memory": gin.H{
			"alloc_mb":       memStats.Alloc / 1024 / 1024,
			"sys_mb":         memStats.Sys / 1024 / 1024,
			"num_goroutines": runtime.NumGoroutine(),
		},
	}
	if h.MaintenanceNote != "" {
		response["maintenance"] = h.MaintenanceNote
	}

	if h.Analyzer != nil {
		probeStats := h.Analyzer.Telemetry.AllStats()

		probes := make([]gin.H, 0, len(probeStats))
		for _, ps := range probeStats {
			p := gin.H{
				"name":                 ps.Name,
				"state":                string(ps.State),
				"total_requests":       ps.TotalRequests,
				"success_count":        ps.SuccessCount,
				"failure_count":        ps.FailureCount,
				"consecutive_failures": ps.ConsecFailures,
				"avg_latency_ms":       ps.AvgLatencyMs,
				"p95_latency_ms":       ps.P95LatencyMs,
				"in_cooldown":          ps.InCooldown,
			}
			if ps.LastError != "" {
				p["last_error"] = ps.LastError
			}
			if ps.LastErrorTime != nil {
				p["last_error_time"] = ps.LastErrorTime.Format(time.RFC3339)
			}
			if ps.LastSuccessTime != nil {
				p["last_success_time"] = ps.LastSuccessTime.Format(time.RFC3339)
			}
			probes = append(probes, p)
		}

		caches := []gin.H{}
		if h.Analyzer.RobotsCache != nil {
			cs := h.Analyzer.RobotsCache.Stats()
			caches = append(caches, gin.H{
				"name":     cs.Name,
				"size":     cs.Size,
				"max_size": cs.MaxSize,
				"hits":     cs.Hits,
				"misses":   cs.Misses,
				"hit_rate": cs.HitRate,
			})
		}

		response["probes"] = probes
		response["caches"] = caches

		overallState := telemetry.Healthy
		for _, ps := range probeStats {
			if ps.State == telemetry.Unhealthy {
				overallState = telemetry.Unhealthy
				break
			}
			if ps.State == telemetry.Degraded {
				overallState = telemetry.Degraded
			}
		}
		response["overall_probe_health"] = string(overallState)
	}

	c.JSON(http.StatusOK, response)
}
