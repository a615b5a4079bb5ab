// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"time"

	"github.com/colly23421/seo-ai-audit/internal/telemetry"
	"github.com/colly23421/seo-ai-audit/internal/webclient"
)

const (
	pageFetchTimeout  = 15 * time.Second
	auxFetchTimeout   = 5 * time.Second
	maxPageBodyBytes  = 5 << 20
	maxAuxBodyBytes   = 1 << 20
	robotsCacheTTL    = 1 * time.Hour
	robotsCacheSize   = 500
	defaultConcurrent = 6
)

type Analyzer struct {
	// Page fetches carry the long timeout; Quick serves robots.txt and
	// sitemap.xml probes and must never hold up an audit.
	Page  *webclient.SafeHTTPClient
	Quick *webclient.SafeHTTPClient

	Telemetry   *telemetry.Registry
	RobotsCache *telemetry.TTLCache[string]

	maxConcurrent int
	semaphore     chan struct{}
}

type Option func(*Analyzer)

func WithMaxConcurrent(n int) Option {
	return func(a *Analyzer) {
		a.maxConcurrent = n
		a.semaphore = make(chan struct{}, n)
	}
}

// WithHTTPClients replaces both outbound clients. Tests use it to point
// the analyzer at loopback servers.
func WithHTTPClients(page, quick *webclient.SafeHTTPClient) Option {
	return func(a *Analyzer) {
		a.Page = page
		a.Quick = quick
	}
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		Page:          webclient.NewSafeHTTPClientWithTimeout(pageFetchTimeout),
		Quick:         webclient.NewSafeHTTPClientWithTimeout(auxFetchTimeout),
		Telemetry:     telemetry.NewRegistry(),
		RobotsCache:   telemetry.NewTTLCache[string]("robots_txt", robotsCacheSize, robotsCacheTTL),
		maxConcurrent: defaultConcurrent,
		semaphore:     make(chan struct{}, defaultConcurrent),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}
