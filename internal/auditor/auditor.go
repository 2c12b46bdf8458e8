// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.

// Package auditor implements the AEO (answer engine optimization) audit
// engine: six concurrent heuristic checks over a domain's public surface,
// aggregated into a weighted 0-100 readiness score.
package auditor

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChudiNnorukam/seoauditlite/internal/webclient"
)

// DefaultTimeout bounds the whole audit. All six checks must land inside
// it or the audit fails as a unit.
const DefaultTimeout = 30 * time.Second

// checkWeights maps each check to its contribution to the overall score.
// The weights sum to 100.
var checkWeights = map[string]float64{
	"ai-crawler-accessibility": 20,
	"llms-txt-validation":      15,
	"structured-data-quality":  25,
	"content-extractability":   20,
	"ai-metadata":              10,
	"answer-format":            10,
}

type checkConfig struct {
	ID        string
	Label     string
	Category  string
	ProOnly   bool
	ShareSafe bool
}

var checkConfigs = map[string]checkConfig{
	"ai-crawler-accessibility": {ID: "ai_crawler_access", Label: "AI Crawler Access", Category: "access", ProOnly: false, ShareSafe: true},
	"llms-txt-validation":      {ID: "llms_txt", Label: "llms.txt", Category: "access", ProOnly: false, ShareSafe: true},
	"structured-data-quality":  {ID: "structured_data", Label: "Structured Data", Category: "metadata", ProOnly: true, ShareSafe: true},
	"content-extractability":   {ID: "extractability", Label: "Extractability", Category: "structure", ProOnly: true, ShareSafe: true},
	"ai-metadata":              {ID: "ai_metadata", Label: "AI Metadata", Category: "metadata", ProOnly: false, ShareSafe: true},
	"answer-format":            {ID: "answer_format", Label: "Answer Format", Category: "content", ProOnly: true, ShareSafe: true},
}

// Auditor runs audits. Safe for concurrent use.
type Auditor struct {
	http    *webclient.Client
	timeout time.Duration
}

type Option func(*Auditor)

func WithTimeout(d time.Duration) Option {
	return func(a *Auditor) { a.timeout = d }
}

func WithHTTPClient(c *webclient.Client) Option {
	return func(a *Auditor) { a.http = c }
}

func New(opts ...Option) *Auditor {
	a := &Auditor{
		http:    webclient.New(),
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Report pairs the public AuditResult with the raw check results the
// envelope extras (grade, improvements) are derived from.
type Report struct {
	Result    *AuditResult
	RawChecks []aeoCheck
}

// AuditDomain validates and normalizes the requested domain, runs all six
// checks concurrently and aggregates them. The audit is all-or-nothing: a
// single transport failure or a blown deadline fails the whole run.
func (a *Auditor) AuditDomain(ctx context.Context, req AuditRequest) (*Report, error) {
	if strings.TrimSpace(req.Domain) == "" {
		return nil, NewValidationError("Domain is required")
	}

	auditedURL, domain, err := webclient.NormalizeAuditURL(req.Domain)
	if err != nil {
		return nil, err
	}
	if !webclient.ValidDomainFormat(domain) {
		return nil, NewValidationError("Invalid domain format: %s", domain)
	}

	// Checks always probe the HTTPS origin; audited_url keeps the scheme
	// the caller submitted.
	checks, err := a.runChecks(ctx, domain, "https://"+domain)
	if err != nil {
		return nil, err
	}

	var weighted float64
	for _, check := range checks {
		base := check.base()
		weighted += float64(base.Score) / float64(base.MaxScore) * checkWeights[base.Name]
	}
	score := int(math.Round(weighted))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	mapped := make([]AuditCheck, 0, len(checks))
	for _, check := range checks {
		mapped = append(mapped, mapCheck(check.base()))
	}

	result := &AuditResult{
		SchemaVersion: SchemaVersion,
		AuditID:       uuid.NewString(),
		AuditedURL:    auditedURL,
		AuditedAt:     time.Now().UTC().Format(time.RFC3339),
		OverallScore:  score,
		VisibilitySummary: VisibilitySummary{
			AIVisiblePercentage:   score,
			AIInvisiblePercentage: 100 - score,
		},
		Checks: mapped,
		Notes:  []AuditNote{},
		Limits: AuditLimits{
			Plan:            PlanFree,
			AuditsRemaining: 3,
			ExportAvailable: false,
			HistoryDays:     0,
		},
	}

	return &Report{Result: result, RawChecks: checks}, nil
}

// runChecks fans the six checks out and races their completion against the
// audit deadline. Results land at fixed indexes so the output order is
// stable regardless of completion order.
func (a *Auditor) runChecks(ctx context.Context, domain, origin string) ([]aeoCheck, error) {
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type runner struct {
		run func(context.Context, string) (aeoCheck, error)
	}
	runners := []runner{
		{func(ctx context.Context, u string) (aeoCheck, error) { return a.checkRobots(ctx, u) }},
		{func(ctx context.Context, u string) (aeoCheck, error) { return a.checkLLMsTxt(ctx, u) }},
		{func(ctx context.Context, u string) (aeoCheck, error) { return a.checkStructuredData(ctx, u) }},
		{func(ctx context.Context, u string) (aeoCheck, error) { return a.checkExtractability(ctx, u) }},
		{func(ctx context.Context, u string) (aeoCheck, error) { return a.checkMetadata(ctx, u) }},
		{func(ctx context.Context, u string) (aeoCheck, error) { return a.checkAnswerFormat(ctx, u) }},
	}

	checks := make([]aeoCheck, len(runners))
	errs := make([]error, len(runners))

	var wg sync.WaitGroup
	for i, r := range runners {
		wg.Add(1)
		go func(i int, r runner) {
			defer wg.Done()
			checks[i], errs[i] = r.run(cctx, origin)
		}(i, r)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(a.timeout):
		cancel()
		return nil, NewTimeoutError(domain)
	case <-ctx.Done():
		cancel()
		return nil, NewTimeoutError(domain)
	}

	for _, err := range errs {
		if err == nil {
			continue
		}
		if ae, ok := AsError(err); ok {
			return nil, ae
		}
		return nil, NewNetworkError(domain, err)
	}

	return checks, nil
}

// mapCheck normalizes an internal check result to the public AuditCheck
// shape: percentage score, joined explanation, first useful recommendation.
func mapCheck(base *CheckResult) AuditCheck {
	config, known := checkConfigs[base.Name]
	if !known {
		config = checkConfig{ID: base.Name, Label: base.Name, Category: "content", ShareSafe: true}
	}

	recommendation := "No changes needed."
	for _, rec := range base.Recommendations {
		if strings.TrimSpace(rec) != "" {
			recommendation = rec
			break
		}
	}

	return AuditCheck{
		ID:      config.ID,
		Label:   config.Label,
		Status:  base.Status,
		Score:   int(math.Round(float64(base.Score) / float64(base.MaxScore) * 100)),
		Summary: base.Message,
		Details: CheckDetails{
			Explanation:    strings.Join(base.Details, " "),
			Evidence:       []string{},
			Recommendation: recommendation,
		},
		Metadata: CheckMetadata{
			IsShareSafe: config.ShareSafe,
			IsProOnly:   config.ProOnly,
			Category:    config.Category,
		},
	}
}
