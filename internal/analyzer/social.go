// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

// AnalyzeSocialTags checks for Open Graph and Twitter Card meta properties.
func AnalyzeSocialTags(doc *goquery.Document) models.SocialTags {
	metaProperty := func(name string) string {
		return doc.Find(`meta[property="` + name + `"]`).First().AttrOr("content", "")
	}
	metaName := func(name string) string {
		return doc.Find(`meta[name="` + name + `"]`).First().AttrOr("content", "")
	}

	return models.SocialTags{
		OpenGraph: models.OpenGraph{
			Found:       doc.Find(`meta[property^="og:"]`).Length() > 0,
			Title:       metaProperty("og:title"),
			Description: metaProperty("og:description"),
			Image:       metaProperty("og:image"),
			URL:         metaProperty("og:url"),
		},
		Twitter: models.TwitterCard{
			Found:       doc.Find(`meta[name^="twitter:"]`).Length() > 0,
			Card:        metaName("twitter:card"),
			Title:       metaName("twitter:title"),
			Description: metaName("twitter:description"),
			Image:       metaName("twitter:image"),
		},
	}
}
