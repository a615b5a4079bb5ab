// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

const (
	providerRobots  = "robots_txt"
	providerSitemap = "sitemap_xml"

	issueRobotsMissing  = "robots.txt file not found"
	issueSitemapMissing = "sitemap.xml file not found"
	issueBlanketBlock   = "Blocks indexing of the entire site (Disallow: /)"
)

var sitemapDirective = regexp.MustCompile(`(?i)^\s*Sitemap:\s*(\S+)`)

// CheckTechnical probes robots.txt and sitemap.xml at the page origin.
// Both probes run concurrently under the quick client; every network
// failure degrades to "not found" and never fails the audit.
func (a *Analyzer) CheckTechnical(ctx context.Context, pageURL string) *models.Technical {
	technical := &models.Technical{
		RobotsTxt: models.RobotsTxt{Allows: true, Issues: []string{}},
		Sitemap:   models.Sitemap{Issues: []string{}},
	}

	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Hostname() == "" {
		technical.RobotsTxt.Issues = append(technical.RobotsTxt.Issues, issueRobotsMissing)
		technical.Sitemap.Issues = append(technical.Sitemap.Issues, issueSitemapMissing)
		return technical
	}
	technical.SSL = parsed.Scheme == "https"
	base := parsed.Scheme + "://" + parsed.Host

	var (
		wg            sync.WaitGroup
		robotsBody    string
		robotsFound   bool
		sitemapDirect bool
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		robotsBody, robotsFound = a.fetchRobots(ctx, base)
	}()
	go func() {
		defer wg.Done()
		sitemapDirect = a.probeAux(ctx, providerSitemap, base+"/sitemap.xml")
	}()
	wg.Wait()

	if robotsFound {
		technical.RobotsTxt.Found = true
		technical.RobotsTxt.URL = base + "/robots.txt"
		if hasBlanketDisallow(robotsBody) {
			technical.RobotsTxt.Allows = false
			technical.RobotsTxt.Issues = append(technical.RobotsTxt.Issues, issueBlanketBlock)
		}
		if declared := declaredSitemap(robotsBody); declared != "" {
			technical.Sitemap.Found = true
			technical.Sitemap.URL = declared
		}
	} else {
		technical.RobotsTxt.Issues = append(technical.RobotsTxt.Issues, issueRobotsMissing)
	}

	if !technical.Sitemap.Found {
		if sitemapDirect {
			technical.Sitemap.Found = true
			technical.Sitemap.URL = base + "/sitemap.xml"
		} else {
			technical.Sitemap.Issues = append(technical.Sitemap.Issues, issueSitemapMissing)
		}
	}

	return technical
}

func (a *Analyzer) fetchRobots(ctx context.Context, base string) (body string, found bool) {
	if cached, ok := a.RobotsCache.Get(base); ok {
		return cached, true
	}

	start := time.Now()
	resp, err := a.Quick.Get(ctx, base+"/robots.txt")
	if err != nil {
		a.Telemetry.RecordFailure(providerRobots, err.Error())
		return "", false
	}
	data, err := a.Quick.ReadBody(resp, maxAuxBodyBytes)
	if err != nil || resp.StatusCode != 200 {
		a.Telemetry.RecordFailure(providerRobots, "robots.txt unavailable")
		return "", false
	}

	a.Telemetry.RecordSuccess(providerRobots, time.Since(start))
	a.RobotsCache.Set(base, string(data))
	return string(data), true
}

func (a *Analyzer) probeAux(ctx context.Context, provider, rawURL string) bool {
	start := time.Now()
	resp, err := a.Quick.Get(ctx, rawURL)
	if err != nil {
		a.Telemetry.RecordFailure(provider, err.Error())
		return false
	}
	_, readErr := a.Quick.ReadBody(resp, maxAuxBodyBytes)
	if readErr != nil || resp.StatusCode != 200 {
		a.Telemetry.RecordFailure(provider, "probe unavailable")
		return false
	}
	a.Telemetry.RecordSuccess(provider, time.Since(start))
	return true
}

// hasBlanketDisallow reports whether any rule disallows the whole site.
// Only an exact "Disallow: /" counts; path-scoped rules do not.
func hasBlanketDisallow(robots string) bool {
	for _, line := range strings.Split(robots, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		if !strings.HasPrefix(lower, "disallow:") {
			continue
		}
		value := strings.TrimSpace(line[len("disallow:"):])
		if value == "/" {
			return true
		}
	}
	return false
}

func declaredSitemap(robots string) string {
	for _, line := range strings.Split(robots, "\n") {
		if m := sitemapDirective.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
