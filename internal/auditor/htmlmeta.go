// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.

// Shared text heuristics over fetched HTML. These are deliberately
// regex-based, not a DOM parse: the scoring thresholds were tuned against
// this exact extraction behavior.
package auditor

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	ldJSONRe       = regexp.MustCompile(`(?s)<script type="application/ld\+json">(.*?)</script>`)
	headingPairRe  = regexp.MustCompile(`(?i)<h[1-6][^>]*>[^<]*</h[1-6]>`)
	headingLevelRe = regexp.MustCompile(`(?i)h([1-6])`)
	headingOpenRe  = regexp.MustCompile(`(?i)<h[1-6][^>]*>`)
	tagRe          = regexp.MustCompile(`<[^>]*>`)
	imgRe          = regexp.MustCompile(`(?i)<img[^>]*>`)
	imgAltRe       = regexp.MustCompile(`(?i)alt="`)
	articleTagRe   = regexp.MustCompile(`(?i)<article[\s>]`)
	sectionTagRe   = regexp.MustCompile(`(?i)<section[\s>]`)
	questionRe     = regexp.MustCompile(`\?[\s<]`)

	canonicalRe   = regexp.MustCompile(`(?i)<link[^>]*rel=["']?canonical["']?[^>]*href=["']?([^"'\s>]+)["']?`)
	descriptionRe = regexp.MustCompile(`(?i)<meta[^>]*name=["']?description["']?[^>]*content=["']?([^"']+)["']?`)
	ogTitleRe     = regexp.MustCompile(`(?i)<meta[^>]*property=["']?og:title["']?[^>]*content=["']?([^"']+)["']?`)
	publishedRe   = regexp.MustCompile(`(?i)<meta[^>]*property=["']?article:published_time["']?[^>]*content=["']?([^"']+)["']?`)
)

// Required fields per JSON-LD @type. A schema only "validates" when every
// listed field is present.
var schemaRequiredFields = map[string][]string{
	"BlogPosting": {"headline", "author", "datePublished"},
	"FAQPage":     {"mainEntity"},
	"HowTo":       {"step", "name"},
	"WebSite":     {"name", "url"},
	"Person":      {"name"},
}

// parseSchemas extracts every JSON-LD block from the page. Malformed JSON
// is skipped, not an error.
func parseSchemas(html string) []map[string]any {
	var schemas []map[string]any
	for _, m := range ldJSONRe.FindAllStringSubmatch(html, -1) {
		var schema map[string]any
		if err := json.Unmarshal([]byte(m[1]), &schema); err != nil {
			continue
		}
		schemas = append(schemas, schema)
	}
	return schemas
}

// schemaTypeMatches reports whether a schema declares the given @type,
// either as a bare string (substring match, mirroring the tuned heuristic)
// or as one element of a type array.
func schemaTypeMatches(schema map[string]any, schemaType string) bool {
	switch v := schema["@type"].(type) {
	case string:
		return strings.Contains(v, schemaType)
	case []any:
		for _, t := range v {
			if s, ok := t.(string); ok && s == schemaType {
				return true
			}
		}
	}
	return false
}

func validateSchema(schema map[string]any) bool {
	schemaType, ok := schema["@type"].(string)
	if !ok {
		return false
	}

	for _, field := range schemaRequiredFields[schemaType] {
		if _, present := schema[field]; !present {
			return false
		}
	}
	return true
}

func extractHeadings(html string) []string {
	return headingPairRe.FindAllString(html, -1)
}

func headingLevel(heading string) int {
	m := headingLevelRe.FindStringSubmatch(heading)
	if m == nil {
		return 1
	}
	level, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	return level
}

// validateHeadingHierarchy checks document-order heading levels: a level
// may repeat or decrease freely but may not skip more than one level
// upward. No headings at all is invalid.
func validateHeadingHierarchy(headings []string) bool {
	if len(headings) == 0 {
		return false
	}

	lastLevel := 1
	for _, heading := range headings {
		level := headingLevel(heading)
		if level > lastLevel+1 {
			return false
		}
		lastLevel = level
	}
	return true
}

// textToHTMLRatio strips tags and compares visible text length against the
// raw document length.
func textToHTMLRatio(html string) float64 {
	if len(html) == 0 {
		return 0
	}
	text := strings.TrimSpace(tagRe.ReplaceAllString(html, " "))
	return float64(len(text)) / float64(len(html))
}

func firstSubmatch(re *regexp.Regexp, html string) string {
	m := re.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return m[1]
}

// filterEmpty drops blank recommendation slots, preserving order.
func filterEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
