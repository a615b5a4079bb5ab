// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package models

// Severity classifies the health of one structured-data block.
// Ordering: critical > warning > info > good.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeverityGood     Severity = "good"
)

// TagCheck holds one meta-tag measurement (title or description).
type TagCheck struct {
	Value          string `json:"value"`
	Length         int    `json:"length"`
	Status         string `json:"status"`
	Recommendation string `json:"recommendation"`
}

type MetaTags struct {
	Title       TagCheck `json:"title"`
	Description TagCheck `json:"description"`
	Canonical   string   `json:"canonical"`
}

type HeadingLevel struct {
	Count  int      `json:"count"`
	Values []string `json:"values"`
}

// Headings maps "h1".."h6" to per-level counts and sample values.
type Headings map[string]HeadingLevel

// StructuredDataBlock is one parsed JSON-LD entity occurrence. Blocks are
// immutable after creation; Severity is derived once, never recomputed.
type StructuredDataBlock struct {
	Type          string   `json:"type"`
	WellFormed    bool     `json:"wellFormed"`
	HasEnvelope   bool     `json:"hasEnvelope"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	MissingFields []string `json:"missingFields"`
	Severity      Severity `json:"severity"`
	Data          any      `json:"data,omitempty"`
}

// Valid reports whether the block parsed and carries no hard violations.
func (b StructuredDataBlock) Valid() bool {
	return b.WellFormed && len(b.Errors) == 0
}

// StructuredData aggregates all JSON-LD blocks found in one document.
// HasCriticalIssues is a pure projection over per-block severities.
type StructuredData struct {
	Found             bool                  `json:"found"`
	Count             int                   `json:"count"`
	Schemas           []StructuredDataBlock `json:"schemas"`
	HasErrors         bool                  `json:"hasErrors"`
	HasCriticalIssues bool                  `json:"hasCriticalIssues"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQ struct {
	Found bool      `json:"found"`
	Count int       `json:"count"`
	Items []FAQItem `json:"items"`
}

type OpenGraph struct {
	Found       bool   `json:"found"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
}

type TwitterCard struct {
	Found       bool   `json:"found"`
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type SocialTags struct {
	OpenGraph OpenGraph   `json:"openGraph"`
	Twitter   TwitterCard `json:"twitter"`
}

type RobotsTxt struct {
	Found  bool     `json:"found"`
	URL    string   `json:"url"`
	Allows bool     `json:"allows"`
	Issues []string `json:"issues"`
}

type Sitemap struct {
	Found  bool     `json:"found"`
	URL    string   `json:"url"`
	Issues []string `json:"issues"`
}

type Technical struct {
	RobotsTxt RobotsTxt `json:"robotsTxt"`
	Sitemap   Sitemap   `json:"sitemap"`
	SSL       bool      `json:"ssl"`
}

// AuditSignals is the full signal bag handed to the scorer and recommender.
// Technical is nil when no network fetch took place (inline-markup and
// precomputed-signals modes).
type AuditSignals struct {
	MetaTags   MetaTags       `json:"metaTags"`
	Headings   Headings       `json:"headings"`
	JSONLD     StructuredData `json:"jsonLd"`
	FAQ        FAQ            `json:"faq"`
	SocialTags SocialTags     `json:"socialTags"`
	Technical  *Technical     `json:"technical,omitempty"`
}

// AIVisibility is a static informational note; nothing is measured.
type AIVisibility struct {
	Note           string `json:"note"`
	Recommendation string `json:"recommendation"`
}

type AuditResult struct {
	URL             string       `json:"url"`
	RegistrableHost string       `json:"registrableHost,omitempty"`
	OverallScore    int          `json:"overallScore"`
	AuditSignals
	Recommendations []string     `json:"recommendations"`
	AIVisibility    AIVisibility `json:"aiVisibility"`
}
