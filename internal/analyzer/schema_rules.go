// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"fmt"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

// The rule table deliberately encodes known high-value fields per common
// Schema.org type instead of implementing a general schema validator.
// Adding a type is a data change, not a control-flow change.

type fieldRule struct {
	field string
	label string
}

type warnRule struct {
	field   string
	message string
}

type listRule struct {
	field   string
	message string
}

type schemaRule struct {
	mandatoryLists []listRule
	recommended    []fieldRule
	optional       []warnRule
	validate       func(obj map[string]any, b *models.StructuredDataBlock)
}

var organizationRule = schemaRule{
	recommended: []fieldRule{
		{"name", "name (organization name)"},
		{"url", "url (site address)"},
		{"address", "address (physical address)"},
	},
	optional: []warnRule{
		{"logo", "Missing logo - recommended for richer results"},
		{"telephone", "Missing telephone number"},
		{"email", "Missing email address"},
		{"sameAs", "Missing social profile links (sameAs)"},
	},
}

var schemaRules = map[string]schemaRule{
	"Organization": organizationRule,

	"LocalBusiness": {
		mandatoryLists: organizationRule.mandatoryLists,
		recommended:    organizationRule.recommended,
		optional: append(organizationRule.optional[:len(organizationRule.optional):len(organizationRule.optional)],
			warnRule{"geo", "Missing GPS coordinates (geo) - important for local SEO"},
			warnRule{"openingHours", "Missing opening hours (openingHours)"},
		),
	},

	"WebSite": {
		recommended: []fieldRule{
			{"name", "name"},
			{"url", "url"},
		},
		optional: []warnRule{
			{"potentialAction", "Missing SearchAction - the site will not get a search box in Google"},
		},
	},

	"Product": {
		recommended: []fieldRule{
			{"name", "name (product name)"},
			{"image", "image (product photo)"},
			{"description", "description"},
		},
		optional: []warnRule{
			{"brand", "Missing brand - recommended"},
			{"sku", "Missing product SKU"},
			{"aggregateRating", "Missing customer ratings (aggregateRating)"},
		},
		validate: validateProductOffers,
	},

	"FAQPage": {
		mandatoryLists: []listRule{
			{"mainEntity", "FAQPage has no questions (mainEntity)"},
		},
		validate: noteFAQQuestionCount,
	},

	"Article":     articleRule,
	"BlogPosting": articleRule,

	"BreadcrumbList": {
		mandatoryLists: []listRule{
			{"itemListElement", "BreadcrumbList has no items (itemListElement)"},
		},
	},
}

var articleRule = schemaRule{
	recommended: []fieldRule{
		{"headline", "headline (title)"},
		{"author", "author"},
		{"datePublished", "datePublished (publication date)"},
	},
	optional: []warnRule{
		{"image", "Missing lead image"},
		{"publisher", "Missing publisher information"},
	},
}

// Offers is the one hard requirement for Product rich results; price and
// currency inside it are downgraded to missing fields when the block exists.
func validateProductOffers(obj map[string]any, b *models.StructuredDataBlock) {
	if !fieldPresent(obj, "offers") {
		b.Errors = append(b.Errors, "Missing offers - required for e-commerce products")
		return
	}
	offers, _ := obj["offers"].(map[string]any)
	if !fieldPresent(offers, "price") {
		b.MissingFields = append(b.MissingFields, "offers.price (price)")
	}
	if !fieldPresent(offers, "priceCurrency") {
		b.MissingFields = append(b.MissingFields, "offers.priceCurrency (currency)")
	}
	if !fieldPresent(offers, "availability") {
		b.Warnings = append(b.Warnings, "Missing availability (offers.availability)")
	}
}

func noteFAQQuestionCount(obj map[string]any, b *models.StructuredDataBlock) {
	if n := listLen(obj["mainEntity"]); n > 0 {
		b.Warnings = append(b.Warnings, fmt.Sprintf("Found %d questions in the FAQ", n))
	}
}
