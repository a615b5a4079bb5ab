// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

func TestAnalyzeStructuredDataEmpty(t *testing.T) {
	report := AnalyzeStructuredData(nil)
	if report.Found {
		t.Error("expected found=false for no payloads")
	}
	if report.Count != 0 {
		t.Errorf("expected count 0, got %d", report.Count)
	}
	if report.HasErrors || report.HasCriticalIssues {
		t.Error("empty report must not carry error flags")
	}
}

func TestAnalyzeStructuredDataMalformedPayload(t *testing.T) {
	report := AnalyzeStructuredData([]string{`{"@context": "https://schema.org", "@type":`})

	if report.Count != 1 {
		t.Fatalf("expected exactly one block, got %d", report.Count)
	}
	block := report.Schemas[0]
	if block.WellFormed {
		t.Error("malformed payload must not be well-formed")
	}
	if block.Type != "Invalid" {
		t.Errorf("expected type Invalid, got %q", block.Type)
	}
	if len(block.Errors) != 1 || block.Errors[0] != "malformed structured data payload" {
		t.Errorf("unexpected errors: %v", block.Errors)
	}
	if block.Severity != models.SeverityCritical {
		t.Errorf("expected critical severity, got %s", block.Severity)
	}
	if !report.HasErrors || !report.HasCriticalIssues {
		t.Error("report flags must reflect the malformed block")
	}
}

func TestMalformedPayloadPreviewTruncated(t *testing.T) {
	long := `{"broken": "` + strings.Repeat("x", 500)
	report := AnalyzeStructuredData([]string{long})

	preview, ok := report.Schemas[0].Data.(string)
	if !ok {
		t.Fatalf("expected string preview, got %T", report.Schemas[0].Data)
	}
	if len(preview) != 203 {
		t.Errorf("expected 200-char preview plus ellipsis, got %d chars", len(preview))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Error("expected ellipsis suffix on truncated preview")
	}
}

func TestMalformedPayloadPreviewKeepsRunesWhole(t *testing.T) {
	// Every "ż" is two bytes at an odd offset, so a fixed 200-byte cut
	// would land mid-rune.
	long := "{" + strings.Repeat("ż", 150)
	report := AnalyzeStructuredData([]string{long})

	preview, ok := report.Schemas[0].Data.(string)
	if !ok {
		t.Fatalf("expected string preview, got %T", report.Schemas[0].Data)
	}
	if !utf8.ValidString(preview) {
		t.Error("preview must be valid UTF-8")
	}
	if !strings.HasSuffix(preview, "...") {
		t.Error("expected ellipsis suffix on truncated preview")
	}
	if len(preview) > rawPayloadPreviewLen+3 {
		t.Errorf("preview too long: %d bytes", len(preview))
	}
}

func TestTopLevelArraySplitsIntoBlocks(t *testing.T) {
	payload := `[
		{"@context": "https://schema.org", "@type": "WebSite", "name": "A", "url": "https://a.example", "potentialAction": {}},
		{"@context": "https://schema.org", "@type": "Organization", "name": "B", "url": "https://b.example", "address": "1 Main St", "logo": "l", "telephone": "t", "email": "e", "sameAs": ["x"]}
	]`
	report := AnalyzeStructuredData([]string{payload})

	if report.Count != 2 {
		t.Fatalf("expected 2 blocks from a 2-element array, got %d", report.Count)
	}
	if report.Schemas[0].Type != "WebSite" || report.Schemas[1].Type != "Organization" {
		t.Errorf("blocks out of order: %s, %s", report.Schemas[0].Type, report.Schemas[1].Type)
	}
	for i, b := range report.Schemas {
		if !b.HasEnvelope {
			t.Errorf("block %d: expected complete envelope", i)
		}
		if b.Severity != models.SeverityGood {
			t.Errorf("block %d: expected good severity, got %s (errors=%v warnings=%v missing=%v)",
				i, b.Severity, b.Errors, b.Warnings, b.MissingFields)
		}
	}
}

func TestMissingEnvelopeFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		errors  []string
	}{
		{
			name:    "missing context",
			payload: `{"@type": "Thing"}`,
			errors:  []string{"Missing required @context field"},
		},
		{
			name:    "missing type",
			payload: `{"@context": "https://schema.org"}`,
			errors:  []string{"Missing required @type field"},
		},
		{
			name:    "missing both",
			payload: `{"name": "bare object"}`,
			errors:  []string{"Missing required @context field", "Missing required @type field"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AnalyzeStructuredData([]string{tt.payload})
			block := report.Schemas[0]
			if block.HasEnvelope {
				t.Error("expected incomplete envelope")
			}
			if !reflect.DeepEqual(block.Errors, tt.errors) {
				t.Errorf("expected errors %v, got %v", tt.errors, block.Errors)
			}
			if block.Severity != models.SeverityCritical {
				t.Errorf("envelope violations must be critical, got %s", block.Severity)
			}
		})
	}
}

func TestSeverityPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		severity models.Severity
	}{
		{
			// Organization with a bare envelope: 3 missing recommended
			// fields and 4 warnings, but errors would win if present.
			name:     "missing fields beat warnings",
			payload:  `{"@context": "https://schema.org", "@type": "Organization"}`,
			severity: models.SeverityWarning,
		},
		{
			// Errors outrank both accumulated warnings and missing fields.
			name:     "errors beat missing fields",
			payload:  `{"@type": "Organization"}`,
			severity: models.SeverityCritical,
		},
		{
			// Two missing fields is within tolerance; warnings remain.
			name:     "warnings alone are info",
			payload:  `{"@context": "https://schema.org", "@type": "Organization", "name": "Acme", "url": "https://acme.example", "address": "HQ"}`,
			severity: models.SeverityInfo,
		},
		{
			name:     "unlisted type with envelope is good",
			payload:  `{"@context": "https://schema.org", "@type": "Event", "name": "Launch"}`,
			severity: models.SeverityGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AnalyzeStructuredData([]string{tt.payload})
			if got := report.Schemas[0].Severity; got != tt.severity {
				t.Errorf("expected %s, got %s (block=%+v)", tt.severity, got, report.Schemas[0])
			}
		})
	}
}

func TestProductOffersValidation(t *testing.T) {
	t.Run("missing offers is an error", func(t *testing.T) {
		payload := `{"@context": "https://schema.org", "@type": "Product", "name": "Widget", "image": "w.jpg", "description": "A widget", "brand": "Acme", "sku": "W1", "aggregateRating": {}}`
		report := AnalyzeStructuredData([]string{payload})
		block := report.Schemas[0]
		if block.Severity != models.SeverityCritical {
			t.Errorf("expected critical, got %s", block.Severity)
		}
		found := false
		for _, e := range block.Errors {
			if strings.Contains(e, "offers") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected an offers error, got %v", block.Errors)
		}
	})

	t.Run("offers without price or currency", func(t *testing.T) {
		payload := `{"@context": "https://schema.org", "@type": "Product", "name": "Widget", "image": "w.jpg", "description": "A widget", "offers": {"availability": "InStock"}}`
		report := AnalyzeStructuredData([]string{payload})
		block := report.Schemas[0]
		want := []string{"offers.price (price)", "offers.priceCurrency (currency)"}
		if !reflect.DeepEqual(block.MissingFields, want) {
			t.Errorf("expected missing fields %v, got %v", want, block.MissingFields)
		}
	})

	t.Run("complete offers", func(t *testing.T) {
		payload := `{"@context": "https://schema.org", "@type": "Product", "name": "Widget", "image": "w.jpg", "description": "A widget", "brand": "Acme", "sku": "W1", "aggregateRating": {}, "offers": {"price": "9.99", "priceCurrency": "USD", "availability": "InStock"}}`
		report := AnalyzeStructuredData([]string{payload})
		block := report.Schemas[0]
		if block.Severity != models.SeverityGood {
			t.Errorf("expected good, got %s (errors=%v warnings=%v missing=%v)",
				block.Severity, block.Errors, block.Warnings, block.MissingFields)
		}
	})
}

func TestFAQPageValidation(t *testing.T) {
	t.Run("empty mainEntity is an error", func(t *testing.T) {
		payload := `{"@context": "https://schema.org", "@type": "FAQPage", "mainEntity": []}`
		report := AnalyzeStructuredData([]string{payload})
		block := report.Schemas[0]
		if block.Severity != models.SeverityCritical {
			t.Errorf("expected critical, got %s", block.Severity)
		}
	})

	t.Run("question count noted", func(t *testing.T) {
		payload := `{"@context": "https://schema.org", "@type": "FAQPage", "mainEntity": [{"@type": "Question"}, {"@type": "Question"}]}`
		report := AnalyzeStructuredData([]string{payload})
		block := report.Schemas[0]
		if len(block.Warnings) != 1 || !strings.Contains(block.Warnings[0], "2 questions") {
			t.Errorf("expected question-count note, got %v", block.Warnings)
		}
	})
}

func TestTypeMatchingIsCaseSensitive(t *testing.T) {
	// "organization" is not "Organization": no type rules apply, so the
	// block passes with only the envelope checked.
	payload := `{"@context": "https://schema.org", "@type": "organization"}`
	report := AnalyzeStructuredData([]string{payload})
	block := report.Schemas[0]
	if block.Type != "organization" {
		t.Errorf("declared type must be preserved verbatim, got %q", block.Type)
	}
	if block.Severity != models.SeverityGood {
		t.Errorf("expected good severity for unlisted type, got %s", block.Severity)
	}
}

func TestNonStringTypeIsUnknown(t *testing.T) {
	payload := `{"@context": "https://schema.org", "@type": ["Organization", "LocalBusiness"]}`
	report := AnalyzeStructuredData([]string{payload})
	block := report.Schemas[0]
	if block.Type != "Unknown" {
		t.Errorf("expected Unknown for array-valued @type, got %q", block.Type)
	}
	if !block.HasEnvelope {
		t.Error("array-valued @type still counts as present for the envelope")
	}
}

func TestAnalyzeStructuredDataIdempotent(t *testing.T) {
	payloads := []string{
		`{"@context": "https://schema.org", "@type": "Organization"}`,
		`not json at all`,
		`[{"@type": "WebSite"}]`,
	}
	first := AnalyzeStructuredData(payloads)
	second := AnalyzeStructuredData(payloads)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated analysis of identical payloads must produce identical reports")
	}
}
