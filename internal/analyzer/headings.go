// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

const headingSampleLimit = 5

var headingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// AnalyzeHeadings counts non-empty headings per level and keeps the first
// few trimmed values as samples.
func AnalyzeHeadings(doc *goquery.Document) models.Headings {
	headings := make(models.Headings, len(headingLevels))

	for _, tag := range headingLevels {
		level := models.HeadingLevel{Values: []string{}}
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text == "" {
				return
			}
			level.Count++
			if len(level.Values) < headingSampleLimit {
				level.Values = append(level.Values, text)
			}
		})
		headings[tag] = level
	}

	return headings
}
