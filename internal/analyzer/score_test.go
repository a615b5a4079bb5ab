// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"strings"
	"testing"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

func optimalTag(length int) models.TagCheck {
	return models.TagCheck{
		Value:  strings.Repeat("a", length),
		Length: length,
		Status: statusGood,
	}
}

func presentTag(length int) models.TagCheck {
	return models.TagCheck{
		Value:  strings.Repeat("a", length),
		Length: length,
		Status: statusWarning,
	}
}

func goodBlock(schemaType string) models.StructuredDataBlock {
	return models.StructuredDataBlock{
		Type:        schemaType,
		WellFormed:  true,
		HasEnvelope: true,
		Severity:    models.SeverityGood,
	}
}

func TestCalculateOverallScoreEmpty(t *testing.T) {
	score := CalculateOverallScore(&models.AuditSignals{Headings: models.Headings{}})
	if score != 0 {
		t.Errorf("expected 0 for an empty page, got %d", score)
	}
}

func TestCalculateOverallScorePerfect(t *testing.T) {
	signals := &models.AuditSignals{
		MetaTags: models.MetaTags{
			Title:       optimalTag(45),
			Description: optimalTag(140),
		},
		Headings: models.Headings{
			"h1": {Count: 1},
			"h2": {Count: 3},
		},
		JSONLD: models.StructuredData{
			Found:   true,
			Count:   2,
			Schemas: []models.StructuredDataBlock{goodBlock("Organization"), goodBlock("WebSite")},
		},
		FAQ: models.FAQ{Found: true, Count: 3},
		SocialTags: models.SocialTags{
			OpenGraph: models.OpenGraph{Found: true},
			Twitter:   models.TwitterCard{Found: true},
		},
	}

	if score := CalculateOverallScore(signals); score != 100 {
		t.Errorf("expected 100, got %d", score)
	}
}

func TestCalculateOverallScoreMidrange(t *testing.T) {
	// Optimal title and description, single H1, nothing else:
	// 15 + 15 + 10 = 40 out of 100.
	signals := &models.AuditSignals{
		MetaTags: models.MetaTags{
			Title:       optimalTag(45),
			Description: optimalTag(140),
		},
		Headings: models.Headings{"h1": {Count: 1}},
	}

	if score := CalculateOverallScore(signals); score != 40 {
		t.Errorf("expected 40, got %d", score)
	}
}

func TestCalculateOverallScorePartialCredit(t *testing.T) {
	t.Run("present but suboptimal tags", func(t *testing.T) {
		signals := &models.AuditSignals{
			MetaTags: models.MetaTags{
				Title:       presentTag(10),
				Description: presentTag(20),
			},
			Headings: models.Headings{},
		}
		// 8 + 8 = 16.
		if score := CalculateOverallScore(signals); score != 16 {
			t.Errorf("expected 16, got %d", score)
		}
	})

	t.Run("multiple h1s earn less than one", func(t *testing.T) {
		single := &models.AuditSignals{Headings: models.Headings{"h1": {Count: 1}}}
		multiple := &models.AuditSignals{Headings: models.Headings{"h1": {Count: 4}}}
		if CalculateOverallScore(single) <= CalculateOverallScore(multiple) {
			t.Error("a single H1 must outscore multiple H1s")
		}
	})
}

func TestCalculateOverallScoreSchemaQualityCap(t *testing.T) {
	// One good schema: 10 + 8 = 18 structured points.
	one := &models.AuditSignals{
		Headings: models.Headings{},
		JSONLD: models.StructuredData{
			Found:   true,
			Schemas: []models.StructuredDataBlock{goodBlock("Organization")},
		},
	}
	// Three good schemas: bonus capped at 15, so 10 + 15 = 25.
	three := &models.AuditSignals{
		Headings: models.Headings{},
		JSONLD: models.StructuredData{
			Found: true,
			Schemas: []models.StructuredDataBlock{
				goodBlock("Organization"), goodBlock("WebSite"), goodBlock("Article"),
			},
		},
	}

	if score := CalculateOverallScore(one); score != 18 {
		t.Errorf("one good schema: expected 18, got %d", score)
	}
	if score := CalculateOverallScore(three); score != 25 {
		t.Errorf("three good schemas: expected capped 25, got %d", score)
	}
}

func TestCalculateOverallScoreBrokenSchemasEarnNoBonus(t *testing.T) {
	broken := models.StructuredDataBlock{
		Type:       "Invalid",
		WellFormed: false,
		Errors:     []string{"malformed structured data payload"},
		Severity:   models.SeverityCritical,
	}
	gappy := goodBlock("Organization")
	gappy.MissingFields = []string{"a", "b", "c"}

	signals := &models.AuditSignals{
		Headings: models.Headings{},
		JSONLD: models.StructuredData{
			Found:   true,
			Schemas: []models.StructuredDataBlock{broken, gappy},
		},
	}

	// Found earns the base 10; neither block qualifies for the bonus.
	if score := CalculateOverallScore(signals); score != 10 {
		t.Errorf("expected 10, got %d", score)
	}
}

func TestCalculateOverallScoreBounds(t *testing.T) {
	// A grab bag of odd inputs; the score must stay within 0-100.
	inputs := []*models.AuditSignals{
		{Headings: models.Headings{}},
		{Headings: models.Headings{"h1": {Count: 100}, "h2": {Count: 100}}},
		{
			MetaTags: models.MetaTags{Title: optimalTag(45), Description: optimalTag(140)},
			Headings: models.Headings{"h1": {Count: 1}, "h2": {Count: 1}},
			JSONLD: models.StructuredData{
				Found: true,
				Schemas: []models.StructuredDataBlock{
					goodBlock("A"), goodBlock("B"), goodBlock("C"), goodBlock("D"), goodBlock("E"),
				},
			},
			FAQ: models.FAQ{Found: true},
			SocialTags: models.SocialTags{
				OpenGraph: models.OpenGraph{Found: true},
				Twitter:   models.TwitterCard{Found: true},
			},
		},
	}

	for i, signals := range inputs {
		score := CalculateOverallScore(signals)
		if score < 0 || score > 100 {
			t.Errorf("input %d: score %d out of range", i, score)
		}
	}
}
