// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
// JSON-LD structured-data analyzer — parses embedded payloads, validates
// the envelope and per-type fields, and derives block severities.
package analyzer

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

const (
	typeUnknown = "Unknown"
	typeInvalid = "Invalid"

	errMalformedPayload = "malformed structured data payload"
	errMissingContext   = "Missing required @context field"
	errMissingType      = "Missing required @type field"

	// Malformed payloads keep only a prefix of the raw text so a single
	// broken script tag cannot blow up the report.
	rawPayloadPreviewLen = 200
)

// ExtractJSONLDPayloads collects the text of every embedded JSON-LD script.
func ExtractJSONLDPayloads(doc *goquery.Document) []string {
	var payloads []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); strings.TrimSpace(text) != "" {
			payloads = append(payloads, text)
		}
	})
	return payloads
}

// AnalyzeStructuredData validates every payload and folds the blocks into
// one report. Pure function of its input: same payloads, same report.
func AnalyzeStructuredData(payloads []string) models.StructuredData {
	var blocks []models.StructuredDataBlock

	for _, payload := range payloads {
		var data any
		if err := json.Unmarshal([]byte(payload), &data); err != nil {
			blocks = append(blocks, malformedBlock(payload))
			continue
		}

		// Envelope splitting: a top-level array becomes one block per
		// element, each validated independently.
		entities := []any{data}
		if arr, ok := data.([]any); ok {
			entities = arr
		}
		for _, entity := range entities {
			blocks = append(blocks, validateEntity(entity))
		}
	}

	report := models.StructuredData{
		Found:   len(blocks) > 0,
		Count:   len(blocks),
		Schemas: blocks,
	}
	for _, b := range blocks {
		if len(b.Errors) > 0 {
			report.HasErrors = true
		}
		if b.Severity == models.SeverityCritical {
			report.HasCriticalIssues = true
		}
	}
	return report
}

func malformedBlock(payload string) models.StructuredDataBlock {
	preview := payload
	if len(preview) > rawPayloadPreviewLen {
		// Back off to a rune boundary so the cut never leaves a partial
		// UTF-8 sequence in the diagnostic text.
		cut := rawPayloadPreviewLen
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut] + "..."
	}
	return models.StructuredDataBlock{
		Type:       typeInvalid,
		WellFormed: false,
		Errors:     []string{errMalformedPayload},
		Severity:   models.SeverityCritical,
		Data:       preview,
	}
}

func validateEntity(entity any) models.StructuredDataBlock {
	obj, _ := entity.(map[string]any)

	b := models.StructuredDataBlock{
		Type:       declaredType(obj),
		WellFormed: true,
		Data:       entity,
	}

	hasContext := fieldPresent(obj, "@context")
	hasType := fieldPresent(obj, "@type")
	b.HasEnvelope = hasContext && hasType
	if !hasContext {
		b.Errors = append(b.Errors, errMissingContext)
	}
	if !hasType {
		b.Errors = append(b.Errors, errMissingType)
	}

	// Case-sensitive exact match against the rule table. Unlisted types
	// pass with no type-specific checks.
	if rule, ok := schemaRules[b.Type]; ok {
		applyRule(rule, obj, &b)
	}

	b.Severity = deriveSeverity(b)
	return b
}

func applyRule(rule schemaRule, obj map[string]any, b *models.StructuredDataBlock) {
	for _, m := range rule.mandatoryLists {
		if listLen(obj[m.field]) == 0 {
			b.Errors = append(b.Errors, m.message)
		}
	}
	for _, f := range rule.recommended {
		if !fieldPresent(obj, f.field) {
			b.MissingFields = append(b.MissingFields, f.label)
		}
	}
	for _, w := range rule.optional {
		if !fieldPresent(obj, w.field) {
			b.Warnings = append(b.Warnings, w.message)
		}
	}
	if rule.validate != nil {
		rule.validate(obj, b)
	}
}

// deriveSeverity resolves block severity in fixed precedence order:
// errors beat everything, then too many missing fields, then soft gaps.
func deriveSeverity(b models.StructuredDataBlock) models.Severity {
	switch {
	case len(b.Errors) > 0:
		return models.SeverityCritical
	case len(b.MissingFields) > 2:
		return models.SeverityWarning
	case len(b.Warnings) > 0:
		return models.SeverityInfo
	default:
		return models.SeverityGood
	}
}

func declaredType(obj map[string]any) string {
	if obj == nil {
		return typeUnknown
	}
	if s, ok := obj["@type"].(string); ok && s != "" {
		return s
	}
	return typeUnknown
}

// fieldPresent treats a missing key, nil, and the empty string as absent.
func fieldPresent(obj map[string]any, key string) bool {
	if obj == nil {
		return false
	}
	v, ok := obj[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}
	return true
}

func listLen(v any) int {
	arr, _ := v.([]any)
	return len(arr)
}
