// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"context"
	"fmt"
	"regexp"
)

var (
	faqTypeRe   = regexp.MustCompile(`"@type"\s*:\s*"FAQPage"`)
	howToTypeRe = regexp.MustCompile(`"@type"\s*:\s*"HowTo"`)
	listRe      = regexp.MustCompile(`(?i)<(ul|ol)[^>]*>`)
	tableRe     = regexp.MustCompile(`(?i)<table[^>]*>`)
	dlRe        = regexp.MustCompile(`(?i)<dl[^>]*>`)
)

// checkAnswerFormat looks for the page structures answer engines quote
// directly: FAQ and HowTo schema, lists, tables and Q&A phrasing.
func (a *Auditor) checkAnswerFormat(ctx context.Context, auditedURL string) (*AnswerFormatCheck, error) {
	res, err := a.fetchHTML(ctx, auditedURL)
	if err != nil {
		return nil, err
	}
	html := res.body

	check := &AnswerFormatCheck{
		CheckResult: CheckResult{
			Name:     "answer-format",
			MaxScore: 10,
		},
		HasFAQSchema:      faqTypeRe.MatchString(html),
		HasHowToSchema:    howToTypeRe.MatchString(html),
		HasLists:          listRe.MatchString(html),
		HasTables:         tableRe.MatchString(html),
		HasDefinitionList: dlRe.MatchString(html),
		HeaderCount:       len(headingOpenRe.FindAllString(html, -1)),
		QuestionsDetected: len(questionRe.FindAllString(html, -1)),
	}

	score := 0
	if check.HasFAQSchema {
		score += 3
	}
	if check.HasHowToSchema {
		score += 2
	}
	if check.HasLists {
		score += 2
	}
	if check.HasTables {
		score += 2
	}
	if check.HasDefinitionList {
		score++
	}

	switch {
	case score >= 7:
		check.Status = StatusPass
	case score >= 4:
		check.Status = StatusWarning
	default:
		check.Status = StatusFail
	}
	if score > check.MaxScore {
		score = check.MaxScore
	}
	check.Score = score

	degree := "moderately"
	if score >= 7 {
		degree = "well"
	}
	check.Message = fmt.Sprintf("Content is %s formatted for AI extraction", degree)

	check.Details = filterEmpty([]string{
		pick(check.HasFAQSchema, "✓ FAQ schema present", "✗ No FAQ schema"),
		pick(check.HasHowToSchema, "✓ HowTo schema present", "✗ No HowTo schema"),
		pick(check.HasLists, "✓ Lists present", "✗ No lists"),
		pick(check.HasTables, "✓ Tables present", "✗ No tables"),
		pick(check.HasDefinitionList, "✓ Definition lists present", ""),
		fmt.Sprintf("Headers: %d (aim for 10+)", check.HeaderCount),
		fmt.Sprintf("Questions detected: %d", check.QuestionsDetected),
	})

	var recs []string
	if !check.HasFAQSchema && check.QuestionsDetected > 0 {
		recs = append(recs, "Add FAQPage schema for Q&A content")
	}
	if !check.HasHowToSchema {
		recs = append(recs, "Add HowTo schema for step-by-step content")
	}
	if !check.HasLists {
		recs = append(recs, "Use lists for dense information")
	}
	if !check.HasTables && check.HeaderCount < 8 {
		recs = append(recs, "Use tables for structured data comparison")
	}
	if check.HeaderCount < 8 {
		recs = append(recs, fmt.Sprintf("Increase headers (currently %d, aim for 10-15)", check.HeaderCount))
	}
	check.Recommendations = recs

	return check, nil
}
