// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package entitlements

import (
	"fmt"
	"strings"

	"github.com/ChudiNnorukam/seoauditlite/internal/auditor"
)

const (
	shareExplanation      = "Details are hidden in the share view."
	shareRecommendation   = "Upgrade to unlock detailed recommendations."
	freeRecommendFallback = "Upgrade to unlock recommendations."
	freeRecommendSuffix   = "Upgrade to unlock the full recommendation."
	recommendPreviewWords = 10
)

// teaseRecommendation shows free viewers the first few words of a
// pro-only recommendation with an upgrade suffix.
func teaseRecommendation(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return freeRecommendFallback
	}

	words := strings.Fields(cleaned)
	preview := strings.Join(words, " ")
	ellipsis := ""
	if len(words) > recommendPreviewWords {
		preview = strings.Join(words[:recommendPreviewWords], " ")
		ellipsis = "..."
	}
	return fmt.Sprintf("Preview: %s%s %s", preview, ellipsis, freeRecommendSuffix)
}

// Redact returns a viewer-appropriate copy of the audit. The input is
// never mutated and check order is preserved.
//
// Share views drop non-share-safe checks entirely and blank out details on
// the rest, adding a note with the hidden count. Free views keep
// explanations but clear evidence and tease pro-only recommendations.
// Pro owners see everything.
func Redact(audit *auditor.AuditResult, viewer Context) *auditor.AuditResult {
	shareMode := viewer.IsShareLink
	showPro := viewer.Plan == auditor.PlanPro && !shareMode

	hiddenShareChecks := 0
	checks := make([]auditor.AuditCheck, 0, len(audit.Checks))

	for _, check := range audit.Checks {
		if shareMode && !check.Metadata.IsShareSafe {
			hiddenShareChecks++
			continue
		}

		redacted := check
		switch {
		case shareMode:
			redacted.Details = auditor.CheckDetails{
				Explanation:    shareExplanation,
				Evidence:       []string{},
				Recommendation: shareRecommendation,
			}
		case !showPro:
			redacted.Details.Evidence = []string{}
			if check.Metadata.IsProOnly {
				redacted.Details.Recommendation = teaseRecommendation(check.Details.Recommendation)
			}
		}
		checks = append(checks, redacted)
	}

	notes := audit.Notes
	if shareMode {
		notes = []auditor.AuditNote{}
		if hiddenShareChecks > 0 {
			notes = []auditor.AuditNote{{
				Type:    auditor.NoteInfo,
				Message: fmt.Sprintf("%d checks are hidden in the share view.", hiddenShareChecks),
			}}
		}
	}

	out := *audit
	out.Checks = checks
	out.Notes = notes
	return &out
}
