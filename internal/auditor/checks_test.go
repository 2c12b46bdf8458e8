// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/ChudiNnorukam/seoauditlite/internal/webclient"
)

// fakeSite serves canned responses by path, 404 for everything else.
type fakeSite map[string]string

func (s fakeSite) RoundTrip(req *http.Request) (*http.Response, error) {
	path := req.URL.Path
	if path == "" {
		path = "/"
	}
	body, ok := s[path]
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
		body = "not found"
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func newTestAuditor(rt http.RoundTripper) *Auditor {
	client := webclient.New(
		webclient.WithTransport(rt),
		webclient.WithoutTargetValidation(),
	)
	return New(WithHTTPClient(client))
}

const testOrigin = "https://example.com"

func TestCheckRobotsAllBotsAllowed(t *testing.T) {
	a := newTestAuditor(fakeSite{
		"/robots.txt": "User-agent: *\nDisallow: /admin\n",
	})

	check, err := a.checkRobots(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !check.RobotsAccessible {
		t.Error("robots.txt should be accessible")
	}
	if check.Score != 20 || check.Status != StatusPass {
		t.Errorf("score = %d status = %s, want 20/pass", check.Score, check.Status)
	}
	if len(check.AIBotsAllowed) != 5 {
		t.Fatalf("expected 5 bots, got %d", len(check.AIBotsAllowed))
	}
	if check.Message != "5/5 AI crawlers allowed" {
		t.Errorf("message = %q", check.Message)
	}
}

func TestCheckRobotsMissingFileAllowsAll(t *testing.T) {
	a := newTestAuditor(fakeSite{})

	check, err := a.checkRobots(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.RobotsAccessible {
		t.Error("robots.txt should not be accessible")
	}
	if check.Score != 20 || check.Status != StatusPass {
		t.Errorf("missing robots.txt should default to allow all, got %d/%s", check.Score, check.Status)
	}
	if check.Details[0] != "robots.txt not found (default: allow all)" {
		t.Errorf("detail = %q", check.Details[0])
	}
}

func TestCheckRobotsSomeBotsBlocked(t *testing.T) {
	a := newTestAuditor(fakeSite{
		"/robots.txt": "User-agent: GPTBot\nDisallow: /\n\nUser-agent: ClaudeBot\nDisallow: /\n",
	})

	check, err := a.checkRobots(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 of 5 allowed: round(3/5*20) = 12.
	if check.Score != 12 {
		t.Errorf("score = %d, want 12", check.Score)
	}
	if check.Status != StatusWarning {
		t.Errorf("status = %s, want warning", check.Status)
	}
	if check.Recommendations[0] != "Add explicit Allow rules for GPTBot, ClaudeBot, PerplexityBot" {
		t.Errorf("recommendation = %q", check.Recommendations[0])
	}
}

func TestCheckLLMsTxt(t *testing.T) {
	tests := []struct {
		name   string
		site   fakeSite
		score  int
		status CheckStatus
	}{
		{
			"with sitemap reference",
			fakeSite{"/llms.txt": "# Site\nsitemap: https://example.com/sitemap.xml\n"},
			15, StatusPass,
		},
		{
			"without sitemap reference",
			fakeSite{"/llms.txt": "# Site\nSome description\n"},
			10, StatusPass,
		},
		{
			"missing",
			fakeSite{},
			0, StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuditor(tt.site)
			check, err := a.checkLLMsTxt(context.Background(), testOrigin)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if check.Score != tt.score {
				t.Errorf("score = %d, want %d", check.Score, tt.score)
			}
			if check.Status != tt.status {
				t.Errorf("status = %s, want %s", check.Status, tt.status)
			}
		})
	}
}

func TestCheckStructuredData(t *testing.T) {
	home := `<html><head>
<script type="application/ld+json">{"@type":"BlogPosting","headline":"h","author":"a","datePublished":"d"}</script>
<script type="application/ld+json">{"@type":"WebSite","name":"n","url":"u"}</script>
<script type="application/ld+json">{"@type":"Person"}</script>
</head></html>`
	a := newTestAuditor(fakeSite{"/": home})

	check, err := a.checkStructuredData(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// BlogPosting valid (5) + WebSite valid (5) + Person present but
	// missing name (2) = 12.
	if check.Score != 12 {
		t.Errorf("score = %d, want 12", check.Score)
	}
	if check.Status != StatusWarning {
		t.Errorf("status = %s, want warning", check.Status)
	}
	if check.TotalSchemas != 3 {
		t.Errorf("totalSchemas = %d, want 3", check.TotalSchemas)
	}
	for _, sp := range check.Schemas {
		if sp.Type == "Person" && (sp.Valid || !sp.Present) {
			t.Errorf("Person should be present but invalid, got %+v", sp)
		}
	}
}

func TestCheckStructuredDataEmptyPage(t *testing.T) {
	a := newTestAuditor(fakeSite{"/": "<html></html>"})

	check, err := a.checkStructuredData(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Score != 0 || check.Status != StatusFail {
		t.Errorf("empty page should score 0/fail, got %d/%s", check.Score, check.Status)
	}
	if len(check.Recommendations) != 3 {
		t.Errorf("expected 3 recommendations, got %d", len(check.Recommendations))
	}
}

func TestCheckExtractability(t *testing.T) {
	home := `<html><body><article>
<h1>Main</h1><h2>Sub</h2>
` + strings.Repeat("Plenty of readable text here. ", 40) + `
<img src="a.png" alt="a"><img src="b.png" alt="b">
</article></body></html>`
	a := newTestAuditor(fakeSite{"/": home})

	check, err := a.checkExtractability(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !check.HasSemanticTags {
		t.Error("article tag should count as semantic")
	}
	if !check.HeadingHierarchyValid {
		t.Error("h1 then h2 is a valid hierarchy")
	}
	if check.ImagesWithAlt != 2 || check.ImagesTotal != 2 {
		t.Errorf("images = %d/%d, want 2/2", check.ImagesWithAlt, check.ImagesTotal)
	}
	if check.Score != 20 || check.Status != StatusPass {
		t.Errorf("score = %d status = %s, want 20/pass", check.Score, check.Status)
	}
}

func TestCheckExtractabilityPartialAlt(t *testing.T) {
	home := `<html><body><section><h1>T</h1>
<img src="a.png" alt="a"><img src="b.png">
</section></body></html>`
	a := newTestAuditor(fakeSite{"/": home})

	check, err := a.checkExtractability(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.ImagesWithAlt != 1 || check.ImagesTotal != 2 {
		t.Errorf("images = %d/%d, want 1/2", check.ImagesWithAlt, check.ImagesTotal)
	}
	// Partial alt coverage earns 2, not 5.
	if check.Score >= 20 {
		t.Errorf("score = %d, should lose points for missing alt", check.Score)
	}
}

func TestCheckMetadata(t *testing.T) {
	home := `<html><head>
<link rel="canonical" href="https://example.com/">
<meta property="og:title" content="Example">
<meta name="description" content="A short description.">
<meta property="article:published_time" content="2026-01-15T00:00:00Z">
</head></html>`
	a := newTestAuditor(fakeSite{"/": home})

	check, err := a.checkMetadata(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Score != 10 || check.Status != StatusPass {
		t.Errorf("score = %d status = %s, want 10/pass", check.Score, check.Status)
	}
	if !check.CanonicalValid {
		t.Error("absolute canonical should be valid")
	}
}

func TestCheckMetadataRelativeCanonical(t *testing.T) {
	home := `<html><head><link rel="canonical" href="/page"></head></html>`
	a := newTestAuditor(fakeSite{"/": home})

	check, err := a.checkMetadata(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !check.HasCanonical || check.CanonicalValid {
		t.Errorf("relative canonical: hasCanonical=%v canonicalValid=%v, want true/false",
			check.HasCanonical, check.CanonicalValid)
	}
	if check.Details[0] != "⚠ Canonical found but not absolute" {
		t.Errorf("detail = %q", check.Details[0])
	}
}

func TestCheckMetadataDescriptionLengthInRunes(t *testing.T) {
	desc := strings.Repeat("é", 150)
	home := `<html><head><meta name="description" content="` + desc + `"></head></html>`
	a := newTestAuditor(fakeSite{"/": home})

	check, err := a.checkMetadata(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.MetaDescriptionLength != 150 {
		t.Errorf("description length = %d, want 150 characters", check.MetaDescriptionLength)
	}
	// 150 characters is within the 160 limit, worth the full 2 points.
	if check.Score != 2 {
		t.Errorf("score = %d, want 2", check.Score)
	}
	if check.Details[2] != "✓ Meta description (150 chars)" {
		t.Errorf("detail = %q", check.Details[2])
	}
}

func TestCheckAnswerFormat(t *testing.T) {
	home := `<html><body>
<script type="application/ld+json">{"@type": "FAQPage","mainEntity":[]}</script>
<h2>What is AEO?</h2>
<ul><li>item</li></ul>
<table><tr><td>x</td></tr></table>
</body></html>`
	a := newTestAuditor(fakeSite{"/": home})

	check, err := a.checkAnswerFormat(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// FAQ 3 + lists 2 + tables 2 = 7.
	if check.Score != 7 || check.Status != StatusPass {
		t.Errorf("score = %d status = %s, want 7/pass", check.Score, check.Status)
	}
	if check.QuestionsDetected == 0 {
		t.Error("question mark before tag should be detected")
	}
	if check.HeaderCount != 1 {
		t.Errorf("headerCount = %d, want 1", check.HeaderCount)
	}
}

func TestChecksPropagateTransportErrors(t *testing.T) {
	a := newTestAuditor(failingTransport{})

	if _, err := a.checkRobots(context.Background(), testOrigin); err == nil {
		t.Error("checkRobots should surface transport failure")
	}
	if _, err := a.checkStructuredData(context.Background(), testOrigin); err == nil {
		t.Error("checkStructuredData should surface transport failure")
	}
}

func TestSEOSnapshotDegradesOnFetchFailure(t *testing.T) {
	a := newTestAuditor(failingTransport{})

	snapshot, err := a.SEOSnapshot(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("snapshot must not abort on fetch failure: %v", err)
	}
	if len(snapshot.Checks) != 5 {
		t.Fatalf("expected 5 checks, got %d", len(snapshot.Checks))
	}
	if snapshot.Score != 0 {
		t.Errorf("all-failed snapshot score = %d, want 0", snapshot.Score)
	}
	for _, check := range snapshot.Checks {
		if check.Score != 0 {
			t.Errorf("check %s score = %d, want 0", check.Name, check.Score)
		}
	}
}

func TestSEOSnapshotHealthySite(t *testing.T) {
	a := newTestAuditor(fakeSite{
		"/sitemap.xml": `<urlset><url><loc>https://example.com/</loc><lastmod>2026-08-01</lastmod></url></urlset>`,
		"/robots.txt":  "User-agent: *\nDisallow: /admin\n",
		"/": `<html><head>
<title>A title tag long enough to land in the valid range</title>
<meta name="description" content="` + strings.Repeat("d", 130) + `">
<link rel="canonical" href="https://example.com/">
<meta property="og:image" content="https://example.com/og.png">
<meta name="viewport" content="width=device-width">
<script type="application/ld+json">{"@type":"Organization","name":"Example"}</script>
</head><body><h1>One</h1><h2>Two</h2><h2>Three</h2></body></html>`,
	})

	snapshot, err := a.SEOSnapshot(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Score < 80 {
		t.Errorf("healthy site snapshot score = %d, want >= 80", snapshot.Score)
	}
	for _, check := range snapshot.Checks {
		if check.Name == "schema-validation" && check.Status != StatusPass {
			t.Errorf("Organization schema should pass validation, got %s", check.Status)
		}
	}
}

func TestSEOSnapshotRejectsBadDomain(t *testing.T) {
	a := newTestAuditor(fakeSite{})

	_, err := a.SEOSnapshot(context.Background(), "not a domain")
	ae, ok := AsError(err)
	if !ok || ae.Code != CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
