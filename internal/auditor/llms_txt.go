// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"context"
	"strings"
)

// checkLLMsTxt looks for an llms.txt manifest at the site root. A file
// that references a sitemap earns full marks; a bare file partial credit.
func (a *Auditor) checkLLMsTxt(ctx context.Context, auditedURL string) (*LLMsCheck, error) {
	llmsURL := auditedURL + "/llms.txt"

	res, err := a.fetchText(ctx, llmsURL)
	if err != nil {
		return nil, err
	}

	check := &LLMsCheck{
		CheckResult: CheckResult{
			Name:     "llms-txt-validation",
			MaxScore: 15,
		},
		LLMsURL:    llmsURL,
		LLMsExists: res.found,
	}

	if res.found {
		check.LLMsContent = res.body
		check.HasSitemap = strings.Contains(res.body, "sitemap")
		check.HasRSS = strings.Contains(res.body, "rss")
	}
	check.IsValid = check.LLMsExists && check.HasSitemap

	switch {
	case check.LLMsExists && check.IsValid:
		check.Score = 15
	case check.LLMsExists:
		check.Score = 10
	}

	if check.LLMsExists {
		check.Status = StatusPass
		check.Message = "llms.txt found and valid"
	} else {
		check.Status = StatusFail
		check.Message = "llms.txt not found"
	}

	check.Details = []string{
		pick(check.LLMsExists, "✓ llms.txt exists", "✗ llms.txt missing"),
		pick(check.HasSitemap, "✓ Sitemap referenced", "✗ No sitemap reference"),
		pick(check.HasRSS, "✓ RSS feed referenced", "✗ No RSS reference"),
	}

	if check.LLMsExists {
		check.Recommendations = []string{"Your content policy is declared"}
	} else {
		check.Recommendations = []string{"Create /llms.txt with content policy, sitemap, and RSS references"}
	}

	return check, nil
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
