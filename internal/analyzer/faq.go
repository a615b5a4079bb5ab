// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/colly23421/seo-ai-audit/internal/models"
)

const faqFallbackLimit = 10

// AnalyzeFAQ prefers question/answer pairs declared in FAQPage structured
// data. Only when no such block exists does it fall back to scanning the
// markup for FAQ-looking elements.
func AnalyzeFAQ(doc *goquery.Document, structured models.StructuredData) models.FAQ {
	faq := models.FAQ{Items: []models.FAQItem{}}

	for _, block := range structured.Schemas {
		if block.Type != "FAQPage" {
			continue
		}
		obj, _ := block.Data.(map[string]any)
		if obj == nil {
			continue
		}
		entities, _ := obj["mainEntity"].([]any)
		if len(entities) == 0 {
			continue
		}
		faq.Found = true
		for _, e := range entities {
			q, _ := e.(map[string]any)
			if q == nil || q["@type"] != "Question" {
				continue
			}
			faq.Count++
			faq.Items = append(faq.Items, models.FAQItem{
				Question: getStr(q, "name"),
				Answer:   acceptedAnswerText(q),
			})
		}
	}

	if !faq.Found {
		scanMarkupForFAQ(doc, &faq)
	}

	return faq
}

func acceptedAnswerText(question map[string]any) string {
	answer, _ := question["acceptedAnswer"].(map[string]any)
	return getStr(answer, "text")
}

// scanMarkupForFAQ pairs each question-looking element with its immediate
// next sibling. Both sides must be non-empty to count.
func scanMarkupForFAQ(doc *goquery.Document, faq *models.FAQ) {
	doc.Find(`.faq, #faq, [class*="faq"], [id*="faq"]`).
		Find(`dt, .question, [class*="question"]`).
		EachWithBreak(func(_ int, s *goquery.Selection) bool {
			question := strings.TrimSpace(s.Text())
			answer := strings.TrimSpace(s.Next().Text())
			if question != "" && answer != "" {
				faq.Found = true
				faq.Count++
				faq.Items = append(faq.Items, models.FAQItem{Question: question, Answer: answer})
			}
			return len(faq.Items) < faqFallbackLimit
		})
}
