// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"math"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

// Weighted-points budgets per category. The final score is the earned
// share of the total budget, as a 0-100 percentage.
const (
	pointsTitleOptimal  = 15
	pointsTitlePresent  = 8
	pointsDescOptimal   = 15
	pointsDescPresent   = 8
	pointsSingleH1      = 10
	pointsAnyH1         = 5
	pointsAnyH2         = 10
	pointsSchemaFound   = 10
	pointsPerGoodSchema = 8
	pointsSchemaCap     = 15
	pointsFAQ           = 10
	pointsOpenGraph     = 8
	pointsTwitter       = 7

	budgetMetaTags   = 30
	budgetHeadings   = 20
	budgetStructured = 25
	budgetFAQ        = 10
	budgetSocial     = 15
)

// CalculateOverallScore folds all signals into one 0-100 score.
// Deterministic and pure; no signal combination can leave the range.
func CalculateOverallScore(signals *models.AuditSignals) int {
	score := 0
	maxScore := 0

	maxScore += budgetMetaTags
	switch {
	case signals.MetaTags.Title.Status == statusGood:
		score += pointsTitleOptimal
	case signals.MetaTags.Title.Value != "":
		score += pointsTitlePresent
	}
	switch {
	case signals.MetaTags.Description.Status == statusGood:
		score += pointsDescOptimal
	case signals.MetaTags.Description.Value != "":
		score += pointsDescPresent
	}

	maxScore += budgetHeadings
	h1 := signals.Headings["h1"].Count
	switch {
	case h1 == 1:
		score += pointsSingleH1
	case h1 > 0:
		score += pointsAnyH1
	}
	if signals.Headings["h2"].Count > 0 {
		score += pointsAnyH2
	}

	maxScore += budgetStructured
	if signals.JSONLD.Found {
		score += pointsSchemaFound

		goodSchemas := 0
		for _, block := range signals.JSONLD.Schemas {
			if block.Valid() && len(block.MissingFields) <= 2 {
				goodSchemas++
			}
		}
		score += min(pointsSchemaCap, goodSchemas*pointsPerGoodSchema)
	}

	maxScore += budgetFAQ
	if signals.FAQ.Found {
		score += pointsFAQ
	}

	maxScore += budgetSocial
	if signals.SocialTags.OpenGraph.Found {
		score += pointsOpenGraph
	}
	if signals.SocialTags.Twitter.Found {
		score += pointsTwitter
	}

	return int(math.Round(float64(score) / float64(maxScore) * 100))
}
