// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

const (
	statusGood    = "good"
	statusWarning = "warning"

	titleMinLen = 30
	titleMaxLen = 60
	descMinLen  = 120
	descMaxLen  = 160
)

// AnalyzeMetaTags extracts title, meta description and canonical URL and
// grades the first two against their optimal length ranges.
func AnalyzeMetaTags(doc *goquery.Document) models.MetaTags {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	description := strings.TrimSpace(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))
	canonical := doc.Find(`link[rel="canonical"]`).First().AttrOr("href", "")

	return models.MetaTags{
		Title:       gradeTag(title, titleMinLen, titleMaxLen, titleRecommendation),
		Description: gradeTag(description, descMinLen, descMaxLen, descriptionRecommendation),
		Canonical:   canonical,
	}
}

func gradeTag(value string, minLen, maxLen int, recommend func(int) string) models.TagCheck {
	length := len([]rune(value))
	status := statusWarning
	if length >= minLen && length <= maxLen {
		status = statusGood
	}
	return models.TagCheck{
		Value:          value,
		Length:         length,
		Status:         status,
		Recommendation: recommend(length),
	}
}

func titleRecommendation(length int) string {
	switch {
	case length == 0:
		return "CRITICAL: Page title is missing!"
	case length < titleMinLen:
		return "Title is too short (min 30 characters)"
	case length > titleMaxLen:
		return "Title is too long (max 60 characters)"
	default:
		return "Title length is optimal"
	}
}

func descriptionRecommendation(length int) string {
	switch {
	case length == 0:
		return "CRITICAL: Meta description is missing!"
	case length < descMinLen:
		return "Description is too short (min 120 characters)"
	case length > descMaxLen:
		return "Description is too long (max 160 characters)"
	default:
		return "Description length is optimal"
	}
}
