// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"context"
	"fmt"
	"math"
)

// checkExtractability measures how cleanly an answer engine could lift
// text out of the homepage: semantic containers, heading order, text
// density and image alt coverage.
func (a *Auditor) checkExtractability(ctx context.Context, auditedURL string) (*ExtractabilityCheck, error) {
	res, err := a.fetchHTML(ctx, auditedURL)
	if err != nil {
		return nil, err
	}
	html := res.body

	hasSemanticTags := articleTagRe.MatchString(html) || sectionTagRe.MatchString(html)
	headings := extractHeadings(html)
	hierarchyValid := validateHeadingHierarchy(headings)
	ratio := textToHTMLRatio(html)

	images := imgRe.FindAllString(html, -1)
	imagesTotal := len(images)
	imagesWithAlt := 0
	for _, img := range images {
		if imgAltRe.MatchString(img) {
			imagesWithAlt++
		}
	}

	score := 0
	if hasSemanticTags {
		score += 5
	}
	if hierarchyValid {
		score += 5
	}
	if ratio > 0.3 {
		score += 5
	}
	switch {
	case imagesWithAlt == imagesTotal && imagesTotal > 0:
		score += 5
	case imagesWithAlt > 0:
		score += 2
	}

	check := &ExtractabilityCheck{
		CheckResult: CheckResult{
			Name:     "content-extractability",
			Score:    score,
			MaxScore: 20,
		},
		HTMLValid:             true,
		HasSemanticTags:       hasSemanticTags,
		HeadingHierarchyValid: hierarchyValid,
		TextToHTMLRatio:       math.Round(ratio*100) / 100,
		ImagesWithAlt:         imagesWithAlt,
		ImagesTotal:           imagesTotal,
	}

	switch {
	case score >= 15:
		check.Status = StatusPass
	case score >= 10:
		check.Status = StatusWarning
	default:
		check.Status = StatusFail
	}

	degree := "moderately"
	if check.Status == StatusPass {
		degree = "highly"
	}
	check.Message = fmt.Sprintf("Content is %s extractable for AI", degree)

	ratioDetail := "✗ Low text ratio"
	if ratio > 0.3 {
		ratioDetail = fmt.Sprintf("✓ Text-to-HTML ratio good (%.1f%%)", ratio*100)
	}
	altDetail := fmt.Sprintf("%d/%d images have alt text", imagesWithAlt, imagesTotal)
	if imagesWithAlt == imagesTotal {
		altDetail = fmt.Sprintf("✓ All %d images have alt text", imagesTotal)
	}
	check.Details = []string{
		pick(hasSemanticTags, "✓ Semantic HTML tags present", "✗ Missing semantic tags"),
		pick(hierarchyValid, "✓ Heading hierarchy valid", "✗ Heading hierarchy issues"),
		ratioDetail,
		altDetail,
	}

	var recs []string
	if !hasSemanticTags {
		recs = append(recs, "Use <article>, <section>, <nav> semantic HTML tags")
	}
	if !hierarchyValid {
		recs = append(recs, "Fix heading hierarchy (should be h1 → h2 → h3)")
	}
	if ratio < 0.3 {
		recs = append(recs, "Increase text content ratio (reduce HTML overhead)")
	}
	if imagesWithAlt < imagesTotal {
		recs = append(recs, fmt.Sprintf("Add alt text to %d images", imagesTotal-imagesWithAlt))
	}
	check.Recommendations = recs

	return check, nil
}
