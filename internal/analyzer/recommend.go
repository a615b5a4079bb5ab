// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
// Recommendation engine — turns the audit signal bag into an ordered list
// of actionable findings, critical issues first.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

const (
	rankCritical = iota
	rankWarning
	rankInfo

	maxNamedMissingFields = 3

	msgAllGood = "✅ Great job! Your page has solid SEO foundations."
)

type recommendation struct {
	rank    int
	message string
}

// GenerateRecommendations produces the ordered finding list. promoURL, when
// non-empty, appends a trailing promotional message; deployments that do
// not want it leave PROMO_URL unset.
func GenerateRecommendations(signals *models.AuditSignals, promoURL string) []string {
	var recs []recommendation
	critical := func(msg string) { recs = append(recs, recommendation{rankCritical, msg}) }
	warning := func(msg string) { recs = append(recs, recommendation{rankWarning, msg}) }
	info := func(msg string) { recs = append(recs, recommendation{rankInfo, msg}) }

	title := signals.MetaTags.Title
	if title.Length == 0 {
		critical("🚨 CRITICAL: Add a page title (<title> tag)")
	} else if title.Status != statusGood {
		warning("⚠️ " + title.Recommendation)
	}

	description := signals.MetaTags.Description
	if description.Length == 0 {
		critical("🚨 CRITICAL: Add a meta description")
	} else if description.Status != statusGood {
		warning("⚠️ " + description.Recommendation)
	}

	h1Count := signals.Headings["h1"].Count
	if h1Count == 0 {
		critical("🚨 Add an H1 heading - the backbone of on-page SEO!")
	} else if h1Count > 1 {
		warning(fmt.Sprintf("⚠️ Use only one H1 per page (currently: %d)", h1Count))
	}
	if signals.Headings["h2"].Count == 0 {
		info("💡 Add H2 headings for better content structure")
	}

	if !signals.JSONLD.Found {
		critical("🚨 No JSON-LD structured data! Add Schema.org markup for better visibility in Google and AI answers (ChatGPT, Claude, Gemini)")
	} else {
		if signals.JSONLD.HasCriticalIssues {
			critical("🚨 Critical errors in JSON-LD - review the block details and fix the markup")
		}
		for _, block := range signals.JSONLD.Schemas {
			if len(block.Errors) > 0 {
				critical(fmt.Sprintf("🚨 %s: %s", block.Type, block.Errors[0]))
			}
			if len(block.MissingFields) > 0 {
				warning(fmt.Sprintf("⚠️ %s: Fill in missing fields - %s", block.Type, namedFields(block.MissingFields)))
			}
		}
	}

	if !signals.FAQ.Found {
		info("💡 Add an FAQ section with FAQPage schema markup - it boosts visibility in Google and AI chats")
	}

	if !signals.SocialTags.OpenGraph.Found {
		info("💡 Add Open Graph tags - your links will look better on Facebook and LinkedIn")
	}
	if !signals.SocialTags.Twitter.Found {
		info("💡 Add Twitter Card meta tags for better rendering on X (Twitter)")
	}

	if signals.MetaTags.Canonical == "" {
		warning("⚠️ Add a canonical URL to avoid duplicate-content issues")
	}

	if technical := signals.Technical; technical != nil {
		if !technical.SSL {
			critical("🚨 CRITICAL: The site is not served over HTTPS - enable SSL/TLS immediately!")
		}
		if !technical.RobotsTxt.Found {
			warning("⚠️ Create a robots.txt file to control how crawlers index the site")
		} else if len(technical.RobotsTxt.Issues) > 0 {
			warning("⚠️ robots.txt: " + technical.RobotsTxt.Issues[0])
		}
		if !technical.Sitemap.Found {
			warning("⚠️ Create a sitemap.xml to help crawlers discover your pages")
		}
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].rank < recs[j].rank })

	messages := make([]string, 0, len(recs)+1)
	for _, r := range recs {
		messages = append(messages, r.message)
	}

	if len(messages) == 0 {
		messages = append(messages, msgAllGood)
	} else if promoURL != "" {
		messages = append(messages, "🎯 Want these fixed? Order a full AI visibility audit at "+promoURL)
	}

	return messages
}

// namedFields lists at most the first three missing fields by label.
func namedFields(fields []string) string {
	named := fields
	suffix := ""
	if len(named) > maxNamedMissingFields {
		named = named[:maxNamedMissingFields]
		suffix = " and more"
	}
	return strings.Join(named, ", ") + suffix
}

// StaticAIVisibilityNote is informational only; the service does not
// measure AI-overview presence.
func StaticAIVisibilityNote() models.AIVisibility {
	return models.AIVisibility{
		Note:           "Checking visibility in Google AI Overviews requires a dedicated API",
		Recommendation: "Run a full AI visibility audit to verify presence in ChatGPT, Claude and Gemini",
	}
}
