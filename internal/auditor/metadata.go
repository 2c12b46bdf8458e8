// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// checkMetadata inspects the homepage head for the metadata AI engines
// use to attribute and date content: canonical URL, OpenGraph title,
// meta description and publication time.
func (a *Auditor) checkMetadata(ctx context.Context, auditedURL string) (*MetadataCheck, error) {
	res, err := a.fetchHTML(ctx, auditedURL)
	if err != nil {
		return nil, err
	}
	html := res.body

	canonical := firstSubmatch(canonicalRe, html)
	description := firstSubmatch(descriptionRe, html)
	ogTitle := firstSubmatch(ogTitleRe, html)
	datePublished := firstSubmatch(publishedRe, html)

	check := &MetadataCheck{
		CheckResult: CheckResult{
			Name:     "ai-metadata",
			MaxScore: 10,
		},
		HasCanonical:          canonical != "",
		HasOGTags:             ogTitle != "",
		HasMetaDescription:    description != "",
		HasDatePublished:      datePublished != "",
		MetaDescriptionLength: utf8.RuneCountInString(description),
	}
	check.CanonicalValid = check.HasCanonical && strings.HasPrefix(canonical, "http")

	score := 0
	if check.CanonicalValid {
		score += 3
	}
	if check.HasOGTags {
		score += 3
	}
	switch {
	case check.HasMetaDescription && check.MetaDescriptionLength <= 160:
		score += 2
	case check.HasMetaDescription:
		score += 1
	}
	if check.HasDatePublished {
		score += 2
	}
	check.Score = score

	switch {
	case score >= 8:
		check.Status = StatusPass
	case score >= 5:
		check.Status = StatusWarning
	default:
		check.Status = StatusFail
	}
	check.Message = fmt.Sprintf("%d/10 metadata checks passed", score)

	canonicalDetail := "✗ No canonical"
	if check.CanonicalValid {
		canonicalDetail = "✓ Valid canonical URL"
	} else if check.HasCanonical {
		canonicalDetail = "⚠ Canonical found but not absolute"
	}
	descDetail := "✗ No meta description"
	if check.HasMetaDescription {
		if check.MetaDescriptionLength <= 160 {
			descDetail = fmt.Sprintf("✓ Meta description (%d chars)", check.MetaDescriptionLength)
		} else {
			descDetail = fmt.Sprintf("⚠ Meta description too long (%d chars)", check.MetaDescriptionLength)
		}
	}
	check.Details = []string{
		canonicalDetail,
		pick(check.HasOGTags, "✓ OpenGraph tags present", "✗ No OpenGraph tags"),
		descDetail,
		pick(check.HasDatePublished, "✓ Publication date present", "✗ No publication date"),
	}

	var recs []string
	if !check.HasCanonical {
		recs = append(recs, "Add canonical URL meta tag")
	}
	if !check.HasOGTags {
		recs = append(recs, "Add OpenGraph tags for social sharing")
	}
	if !check.HasMetaDescription {
		recs = append(recs, "Add meta description (under 160 chars)")
	}
	if !check.HasDatePublished {
		recs = append(recs, "Add article:published_time meta tag")
	}
	check.Recommendations = recs

	return check, nil
}
