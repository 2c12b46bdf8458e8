// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ChudiNnorukam/seoauditlite/internal/webclient"
)

// The SEO snapshot is a secondary bundle of classic search checks. Unlike
// the AEO checks it is best-effort: a fetch failure degrades the affected
// check to a zero-score fail instead of aborting the bundle.

var seoWeights = map[string]float64{
	"sitemap-validation":   10,
	"robots-txt-analysis":  8,
	"meta-tags-validation": 15,
	"heading-structure":    15,
	"schema-validation":    10,
}

var (
	urlEntryRe   = regexp.MustCompile(`<url>`)
	lastmodRe    = regexp.MustCompile(`<lastmod>([^<]+)</lastmod>`)
	titleRe      = regexp.MustCompile(`<title>([^<]+)</title>`)
	metaDescRe   = regexp.MustCompile(`<meta\s+name="description"\s+content="([^"]+)"`)
	canonLinkRe  = regexp.MustCompile(`<link\s+rel="canonical"`)
	ogImageRe    = regexp.MustCompile(`<meta\s+property="og:image"`)
	viewportRe   = regexp.MustCompile(`<meta\s+name="viewport"`)
	h1Re         = regexp.MustCompile(`(?i)<h1[^>]*>`)
	h2Re         = regexp.MustCompile(`(?i)<h2[^>]*>`)
	h3Re         = regexp.MustCompile(`(?i)<h3[^>]*>`)
	headingTxtRe = regexp.MustCompile(`(?i)<h[1-6][^>]*>([^<]+)</h[1-6]>`)
	ldScriptRe   = regexp.MustCompile(`<script\s+type="application/ld\+json"[^>]*>([^<]+)</script>`)
)

// SEOCheck carries the base result plus check-specific observations.
type SEOCheck struct {
	CheckResult
	Extras map[string]any `json:"extras,omitempty"`
}

// SEOSnapshot is the bundle returned by the snapshot endpoint.
type SEOSnapshot struct {
	Domain      string     `json:"domain"`
	GeneratedAt string     `json:"generated_at"`
	Score       int        `json:"score"`
	Checks      []SEOCheck `json:"checks"`
}

// SEOSnapshot runs the five snapshot checks concurrently and aggregates
// them into a normalized 0-100 score.
func (a *Auditor) SEOSnapshot(ctx context.Context, domain string) (*SEOSnapshot, error) {
	if !webclient.ValidDomainFormat(domain) {
		return nil, NewValidationError("Invalid domain format: %s", domain)
	}
	origin := "https://" + domain

	runners := []func(context.Context, string) SEOCheck{
		a.seoSitemap,
		a.seoRobots,
		a.seoMetaTags,
		a.seoHeadings,
		a.seoSchema,
	}

	checks := make([]SEOCheck, len(runners))
	var wg sync.WaitGroup
	for i, run := range runners {
		wg.Add(1)
		go func(i int, run func(context.Context, string) SEOCheck) {
			defer wg.Done()
			checks[i] = run(ctx, origin)
		}(i, run)
	}
	wg.Wait()

	var weighted, total float64
	for _, check := range checks {
		weight := seoWeights[check.Name]
		weighted += float64(check.Score) / float64(check.MaxScore) * weight
		total += weight
	}
	score := int(math.Round(weighted / total * 100))

	return &SEOSnapshot{
		Domain:      domain,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Score:       score,
		Checks:      checks,
	}, nil
}

func (a *Auditor) seoSitemap(ctx context.Context, origin string) SEOCheck {
	sitemapURL := origin + "/sitemap.xml"

	res, err := a.fetchText(ctx, sitemapURL)
	if err != nil {
		return SEOCheck{CheckResult: CheckResult{
			Name:            "sitemap-validation",
			Status:          StatusFail,
			MaxScore:        20,
			Message:         "Could not validate sitemap",
			Details:         []string{"Error fetching sitemap"},
			Recommendations: []string{"Ensure sitemap.xml is accessible at domain root"},
		}}
	}

	urlCount := 0
	lastModRecent := false
	if res.found {
		urlCount = len(urlEntryRe.FindAllString(res.body, -1))
		if m := lastmodRe.FindStringSubmatch(res.body); m != nil {
			if lastMod, perr := time.Parse(time.RFC3339, m[1]); perr == nil {
				lastModRecent = lastMod.After(time.Now().Add(-30 * 24 * time.Hour))
			} else if lastMod, perr := time.Parse("2006-01-02", m[1]); perr == nil {
				lastModRecent = lastMod.After(time.Now().Add(-30 * 24 * time.Hour))
			}
		}
	}
	valid := res.found && urlCount > 0

	check := SEOCheck{
		CheckResult: CheckResult{
			Name:     "sitemap-validation",
			MaxScore: 20,
		},
		Extras: map[string]any{
			"sitemapUrl":    sitemapURL,
			"sitemapExists": res.found,
			"sitemapValid":  valid,
			"urlCount":      urlCount,
			"lastModRecent": lastModRecent,
		},
	}
	if valid {
		check.Status = StatusPass
		check.Score = 20
		check.Message = fmt.Sprintf("Sitemap found with %d URLs", urlCount)
	} else {
		check.Status = StatusFail
		check.Message = "Sitemap not found"
	}
	check.Details = []string{
		fmt.Sprintf("Sitemap exists: %s", yesNo(res.found)),
		fmt.Sprintf("URLs in sitemap: %d", urlCount),
		fmt.Sprintf("Recently updated: %s", yesNo(lastModRecent)),
	}
	check.Recommendations = filterEmpty([]string{
		pick(res.found, "Sitemap is accessible", "Create and submit sitemap.xml to improve discoverability"),
		pick(lastModRecent, "", "Update sitemap regularly to signal fresh content"),
	})
	return check
}

func (a *Auditor) seoRobots(ctx context.Context, origin string) SEOCheck {
	res, err := a.fetchText(ctx, origin+"/robots.txt")
	if err != nil {
		return SEOCheck{CheckResult: CheckResult{
			Name:            "robots-txt-analysis",
			Status:          StatusFail,
			MaxScore:        15,
			Message:         "Could not validate robots.txt",
			Details:         []string{"Error fetching robots.txt"},
			Recommendations: []string{"Create robots.txt to guide crawlers"},
		}}
	}

	blocksAll := false
	hasDisallow := false
	if res.found {
		lower := strings.ToLower(res.body)
		blocksAll = strings.Contains(lower, "user-agent: *\ndisallow: /")
		hasDisallow = strings.Contains(lower, "disallow:")
	}

	check := SEOCheck{
		CheckResult: CheckResult{
			Name:     "robots-txt-analysis",
			MaxScore: 15,
		},
		Extras: map[string]any{
			"robotsValid":      res.found,
			"blocksUserAgent":  blocksAll,
			"hasDisallowRules": hasDisallow,
		},
	}
	switch {
	case res.found && !blocksAll:
		check.Status, check.Score = StatusPass, 15
	case res.found:
		check.Status, check.Score = StatusWarning, 8
	default:
		check.Status = StatusFail
	}
	check.Message = pick(res.found, "robots.txt is configured", "robots.txt not found")
	check.Details = []string{
		fmt.Sprintf("robots.txt exists: %s", yesNo(res.found)),
		fmt.Sprintf("Blocks all crawlers: %s", pick(blocksAll, "Yes (blocking!)", "No")),
		fmt.Sprintf("Has disallow rules: %s", yesNo(hasDisallow)),
	}
	switch {
	case !res.found:
		check.Recommendations = []string{"Create robots.txt to control crawler access"}
	case blocksAll:
		check.Recommendations = []string{"Remove blanket disallow rule - it blocks search engines"}
	default:
		check.Recommendations = []string{"robots.txt is properly configured"}
	}
	return check
}

func (a *Auditor) seoMetaTags(ctx context.Context, origin string) SEOCheck {
	res, err := a.fetchHTML(ctx, origin+"/")
	if err != nil {
		return SEOCheck{CheckResult: CheckResult{
			Name:            "meta-tags-validation",
			Status:          StatusFail,
			MaxScore:        25,
			Message:         "Could not validate meta tags",
			Details:         []string{"Error fetching page"},
			Recommendations: []string{"Ensure homepage is accessible and contains proper meta tags"},
		}}
	}
	html := ""
	if res.found {
		html = res.body
	}

	title := firstSubmatch(titleRe, html)
	description := firstSubmatch(metaDescRe, html)
	hasCanonical := canonLinkRe.MatchString(html)
	hasOGImage := ogImageRe.MatchString(html)
	hasViewport := viewportRe.MatchString(html)

	titleLen := utf8.RuneCountInString(title)
	descLen := utf8.RuneCountInString(description)
	titleValid := titleLen > 30 && titleLen < 60
	descValid := descLen > 120 && descLen < 160

	score := 0
	switch {
	case title != "" && titleValid:
		score += 8
	case title != "":
		score += 4
	}
	switch {
	case description != "" && descValid:
		score += 8
	case description != "":
		score += 4
	}
	if hasCanonical {
		score += 5
	}
	if hasOGImage {
		score += 2
	}
	if hasViewport {
		score += 2
	}

	check := SEOCheck{
		CheckResult: CheckResult{
			Name:     "meta-tags-validation",
			Score:    score,
			MaxScore: 25,
			Message:  fmt.Sprintf("Meta tags configured: %d/25 points", score),
		},
		Extras: map[string]any{
			"titlePresent":       title != "",
			"titleLength":        titleLen,
			"descriptionPresent": description != "",
			"descriptionLength":  descLen,
			"hasCanonical":       hasCanonical,
			"hasOGImage":         hasOGImage,
			"viewportConfigured": hasViewport,
		},
	}
	switch {
	case score > 18:
		check.Status = StatusPass
	case score > 12:
		check.Status = StatusWarning
	default:
		check.Status = StatusFail
	}

	titleDetail := "Missing"
	if title != "" {
		titleDetail = fmt.Sprintf("Present (%d chars)", titleLen)
	}
	descDetail := "Missing"
	if description != "" {
		descDetail = fmt.Sprintf("Present (%d chars)", descLen)
	}
	check.Details = []string{
		strings.TrimSpace(fmt.Sprintf("Title: %s %s", titleDetail, pick(titleValid, "✓", ""))),
		strings.TrimSpace(fmt.Sprintf("Description: %s %s", descDetail, pick(descValid, "✓", ""))),
		fmt.Sprintf("Canonical: %s", pick(hasCanonical, "Yes ✓", "No")),
		fmt.Sprintf("OG Image: %s", pick(hasOGImage, "Yes ✓", "No")),
		fmt.Sprintf("Viewport: %s", pick(hasViewport, "Yes ✓", "No")),
	}
	check.Recommendations = []string{
		pick(title != "" && titleValid, "Title tag is optimized", "Add title (30-60 chars, with keywords)"),
		pick(description != "" && descValid, "Description is optimized", "Add meta description (120-160 chars)"),
		pick(hasCanonical, "Canonical tag present", "Add canonical tag to avoid duplicate content"),
	}
	return check
}

func (a *Auditor) seoHeadings(ctx context.Context, origin string) SEOCheck {
	res, err := a.fetchHTML(ctx, origin+"/")
	if err != nil {
		return SEOCheck{CheckResult: CheckResult{
			Name:            "heading-structure",
			Status:          StatusFail,
			MaxScore:        15,
			Message:         "Could not analyze heading structure",
			Details:         []string{"Error fetching page"},
			Recommendations: []string{"Ensure page is accessible and properly structured"},
		}}
	}
	html := ""
	if res.found {
		html = res.body
	}

	h1s := len(h1Re.FindAllString(html, -1))
	h2s := len(h2Re.FindAllString(html, -1))
	h3s := len(h3Re.FindAllString(html, -1))
	headings := len(headingTxtRe.FindAllString(html, -1))

	h1Valid := h1s == 1
	hasHierarchy := h2s > 0

	raw := 0.0
	if h1Valid {
		raw += 8
	}
	if hasHierarchy {
		raw += 7
	}
	raw += math.Min(float64(headings)/2, 5)

	check := SEOCheck{
		CheckResult: CheckResult{
			Name:     "heading-structure",
			Score:    int(math.Round(math.Min(raw, 15))),
			MaxScore: 15,
			Message:  fmt.Sprintf("Headings: %d H1, %d H2, %d H3 (%d total)", h1s, h2s, h3s, headings),
		},
	}
	switch {
	case raw > 15:
		check.Status = StatusPass
	case raw > 10:
		check.Status = StatusWarning
	default:
		check.Status = StatusFail
	}
	check.Details = []string{
		fmt.Sprintf("H1 count: %d %s", h1s, pick(h1Valid, "✓ (should be 1)", "✗ (should be exactly 1)")),
		fmt.Sprintf("H2-H3 hierarchy: %s", pick(hasHierarchy, "Present ✓", "Missing ✗")),
		fmt.Sprintf("Total headings: %d", headings),
	}
	check.Recommendations = []string{
		pick(h1Valid, "H1 is properly structured", "Add exactly one H1 tag with your primary keyword"),
		pick(hasHierarchy, "Good heading hierarchy detected", "Use H2 and H3 tags to create content hierarchy"),
	}
	return check
}

func (a *Auditor) seoSchema(ctx context.Context, origin string) SEOCheck {
	res, err := a.fetchHTML(ctx, origin+"/")
	if err != nil {
		return SEOCheck{
			CheckResult: CheckResult{
				Name:            "schema-validation",
				Status:          StatusFail,
				MaxScore:        20,
				Message:         "Could not validate schema",
				Details:         []string{"Error analyzing page"},
				Recommendations: []string{"Add structured data markup to improve search visibility"},
			},
			Extras: map[string]any{"hasSchema": false, "schemaTypes": []string{}, "schemaValid": false},
		}
	}
	html := ""
	if res.found {
		html = res.body
	}

	var schemaTypes []string
	for _, m := range ldScriptRe.FindAllStringSubmatch(html, -1) {
		var schema map[string]any
		if err := json.Unmarshal([]byte(m[1]), &schema); err != nil {
			continue
		}
		if t, ok := schema["@type"].(string); ok {
			schemaTypes = append(schemaTypes, t)
		}
	}
	hasSchema := ldScriptRe.MatchString(html)
	schemaValid := false
	for _, t := range schemaTypes {
		if t == "Organization" || t == "BlogPosting" || t == "Article" {
			schemaValid = true
			break
		}
	}
	schemaValid = hasSchema && schemaValid

	score := 0
	switch {
	case schemaValid:
		score = 20
	case hasSchema:
		score = 10
	}

	check := SEOCheck{
		CheckResult: CheckResult{
			Name:     "schema-validation",
			Score:    score,
			MaxScore: 20,
		},
		Extras: map[string]any{
			"hasSchema":   hasSchema,
			"schemaTypes": schemaTypes,
			"schemaValid": schemaValid,
		},
	}
	switch {
	case schemaValid:
		check.Status = StatusPass
		check.Message = fmt.Sprintf("Valid schema found: %s", strings.Join(schemaTypes, ", "))
	case hasSchema:
		check.Status = StatusWarning
		check.Message = "Schema found but may not be optimal"
	default:
		check.Status = StatusFail
		check.Message = "No structured data found"
	}
	typesDetail := "None"
	if len(schemaTypes) > 0 {
		typesDetail = strings.Join(schemaTypes, ", ")
	}
	check.Details = []string{
		fmt.Sprintf("Schemas present: %d", len(ldScriptRe.FindAllString(html, -1))),
		fmt.Sprintf("Schema types: %s", typesDetail),
		pick(schemaValid, "Using recommended schemas", "Consider adding Organization, BlogPosting, or Article schema"),
	}
	switch {
	case !hasSchema:
		check.Recommendations = []string{"Add JSON-LD structured data (Organization, BlogPosting, or Article schema)"}
	case schemaValid:
		check.Recommendations = []string{"Schema is properly configured"}
	default:
		check.Recommendations = []string{"Consider adding more specific schema types"}
	}
	return check
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
