// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const providerPageFetch = "page_fetch"

var browserHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// FetchPage retrieves the primary document. This is the only network call
// whose failure aborts an audit.
func (a *Analyzer) FetchPage(ctx context.Context, pageURL string) (string, error) {
	start := time.Now()

	resp, err := a.Page.GetWithHeaders(ctx, pageURL, browserHeaders)
	if err != nil {
		a.Telemetry.RecordFailure(providerPageFetch, err.Error())
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		err := fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
		a.Telemetry.RecordFailure(providerPageFetch, err.Error())
		return "", err
	}

	body, err := a.Page.ReadBody(resp, maxPageBodyBytes)
	if err != nil {
		a.Telemetry.RecordFailure(providerPageFetch, err.Error())
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}

	a.Telemetry.RecordSuccess(providerPageFetch, time.Since(start))
	return string(body), nil
}

// ParseDocument parses markup text into a queryable document.
func ParseDocument(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}
