// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"fmt"
	"strings"
	"testing"
)

func TestAnalyzeFAQFromStructuredData(t *testing.T) {
	payload := `{
		"@context": "https://schema.org",
		"@type": "FAQPage",
		"mainEntity": [
			{"@type": "Question", "name": "What is it?", "acceptedAnswer": {"@type": "Answer", "text": "A thing."}},
			{"@type": "Question", "name": "How much?", "acceptedAnswer": {"@type": "Answer", "text": "Ten."}},
			{"@type": "Question", "name": "Where?", "acceptedAnswer": {"@type": "Answer", "text": "Here."}}
		]
	}`
	structured := AnalyzeStructuredData([]string{payload})

	// The markup carries FAQ-looking elements too; the structured block
	// must win and the fallback must not run.
	markup := `<html><body><div class="faq"><dt>Markup question</dt><dd>Markup answer</dd></div></body></html>`
	doc := docFromMarkup(t, markup)

	faq := AnalyzeFAQ(doc, structured)

	if !faq.Found {
		t.Fatal("expected FAQ to be found")
	}
	if faq.Count != 3 {
		t.Errorf("expected 3 questions, got %d", faq.Count)
	}
	if faq.Items[0].Question != "What is it?" || faq.Items[0].Answer != "A thing." {
		t.Errorf("unexpected first item: %+v", faq.Items[0])
	}
	for _, item := range faq.Items {
		if item.Question == "Markup question" {
			t.Error("markup fallback ran despite FAQPage structured data")
		}
	}
}

func TestAnalyzeFAQSkipsNonQuestionEntities(t *testing.T) {
	payload := `{
		"@context": "https://schema.org",
		"@type": "FAQPage",
		"mainEntity": [
			{"@type": "Question", "name": "Q1", "acceptedAnswer": {"text": "A1"}},
			{"@type": "Thing", "name": "not a question"}
		]
	}`
	structured := AnalyzeStructuredData([]string{payload})
	doc := docFromMarkup(t, "<html><body></body></html>")

	faq := AnalyzeFAQ(doc, structured)
	if faq.Count != 1 {
		t.Errorf("expected 1 question, got %d", faq.Count)
	}
}

func TestAnalyzeFAQMarkupFallback(t *testing.T) {
	markup := `<html><body>
		<section id="faq">
			<dl>
				<dt>First question?</dt><dd>First answer.</dd>
				<dt>Second question?</dt><dd>Second answer.</dd>
				<dt>Orphan question?</dt>
			</dl>
		</section>
	</body></html>`
	doc := docFromMarkup(t, markup)

	faq := AnalyzeFAQ(doc, AnalyzeStructuredData(nil))

	if !faq.Found {
		t.Fatal("expected fallback to find FAQ content")
	}
	if faq.Count != 2 {
		t.Errorf("expected 2 paired items, got %d", faq.Count)
	}
	if faq.Items[1].Question != "Second question?" || faq.Items[1].Answer != "Second answer." {
		t.Errorf("unexpected second item: %+v", faq.Items[1])
	}
}

func TestAnalyzeFAQMarkupFallbackCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<html><body><div class="faq"><dl>`)
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&sb, "<dt>Question %d?</dt><dd>Answer %d.</dd>", i, i)
	}
	sb.WriteString("</dl></div></body></html>")
	doc := docFromMarkup(t, sb.String())

	faq := AnalyzeFAQ(doc, AnalyzeStructuredData(nil))
	if faq.Count != faqFallbackLimit {
		t.Errorf("expected fallback capped at %d, got %d", faqFallbackLimit, faq.Count)
	}
}

func TestAnalyzeFAQNotFound(t *testing.T) {
	doc := docFromMarkup(t, "<html><body><p>No questions here.</p></body></html>")
	faq := AnalyzeFAQ(doc, AnalyzeStructuredData(nil))
	if faq.Found {
		t.Error("expected no FAQ")
	}
	if faq.Items == nil {
		t.Error("items must be an empty slice, not nil")
	}
}
