// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

// ErrAtCapacity is returned when the audit semaphore cannot be acquired.
var ErrAtCapacity = errors.New("system is currently at capacity, please try again in a moment")

const semaphoreWait = 10 * time.Second

type namedResult struct {
	key    string
	result any
}

// AuditURL runs the full pipeline: fetch, extract, technical probes,
// score, recommend. The page fetch is the only fatal failure.
func (a *Analyzer) AuditURL(ctx context.Context, pageURL, promoURL string) (*models.AuditResult, error) {
	markup, err := a.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return a.AuditMarkup(ctx, pageURL, markup, true, promoURL)
}

// AuditMarkup extracts all signals from already-acquired markup.
// withTechnical controls the outbound robots/sitemap probes; inline-markup
// audits have no origin to probe.
func (a *Analyzer) AuditMarkup(ctx context.Context, pageURL, markup string, withTechnical bool, promoURL string) (*models.AuditResult, error) {
	select {
	case a.semaphore <- struct{}{}:
		defer func() { <-a.semaphore }()
	case <-time.After(semaphoreWait):
		slog.Warn("Backpressure: rejected audit", "url", pageURL)
		return nil, ErrAtCapacity
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	doc, err := ParseDocument(markup)
	if err != nil {
		return nil, fmt.Errorf("audit %s: %w", pageURL, err)
	}

	start := time.Now()
	signals := a.extractSignals(ctx, pageURL, doc, withTechnical)
	slog.Info("Signal extraction completed",
		"url", pageURL,
		"elapsed_s", fmt.Sprintf("%.2f", time.Since(start).Seconds()),
		"schemas", signals.JSONLD.Count,
	)

	return a.Assemble(pageURL, signals, promoURL), nil
}

// Assemble runs the scorer and recommender over a finished signal bag.
// Precomputed-signals requests enter the pipeline here.
func (a *Analyzer) Assemble(pageURL string, signals *models.AuditSignals, promoURL string) *models.AuditResult {
	return &models.AuditResult{
		URL:             pageURL,
		OverallScore:    CalculateOverallScore(signals),
		AuditSignals:    *signals,
		Recommendations: GenerateRecommendations(signals, promoURL),
		AIVisibility:    StaticAIVisibilityNote(),
	}
}

// extractSignals fans the independent extractors out in parallel. FAQ is
// the one ordering dependency: it consumes the structured-data report.
func (a *Analyzer) extractSignals(ctx context.Context, pageURL string, doc *goquery.Document, withTechnical bool) *models.AuditSignals {
	resultsCh := make(chan namedResult, 8)
	var wg sync.WaitGroup

	tasks := map[string]func(){
		"meta":       func() { resultsCh <- namedResult{"meta", AnalyzeMetaTags(doc)} },
		"headings":   func() { resultsCh <- namedResult{"headings", AnalyzeHeadings(doc)} },
		"structured": func() { resultsCh <- namedResult{"structured", AnalyzeStructuredData(ExtractJSONLDPayloads(doc))} },
		"social":     func() { resultsCh <- namedResult{"social", AnalyzeSocialTags(doc)} },
	}
	if withTechnical {
		tasks["technical"] = func() { resultsCh <- namedResult{"technical", a.CheckTechnical(ctx, pageURL)} }
	}

	for _, fn := range tasks {
		wg.Add(1)
		go func(f func()) {
			defer wg.Done()
			f()
		}(fn)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	signals := &models.AuditSignals{}
	for nr := range resultsCh {
		switch nr.key {
		case "meta":
			signals.MetaTags = nr.result.(models.MetaTags)
		case "headings":
			signals.Headings = nr.result.(models.Headings)
		case "structured":
			signals.JSONLD = nr.result.(models.StructuredData)
		case "social":
			signals.SocialTags = nr.result.(models.SocialTags)
		case "technical":
			signals.Technical = nr.result.(*models.Technical)
		}
	}

	signals.FAQ = AnalyzeFAQ(doc, signals.JSONLD)
	return signals
}
