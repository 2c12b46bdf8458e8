// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"testing"
)

func TestValidateHeadingHierarchy(t *testing.T) {
	tests := []struct {
		name     string
		headings []string
		valid    bool
	}{
		{"empty", nil, false},
		{"single h1", []string{"<h1>Title</h1>"}, true},
		{"ordered descent", []string{"<h1>a</h1>", "<h2>b</h2>", "<h3>c</h3>"}, true},
		{"repeat level", []string{"<h1>a</h1>", "<h2>b</h2>", "<h2>c</h2>"}, true},
		{"skip from h1 to h3", []string{"<h1>a</h1>", "<h3>b</h3>"}, false},
		{"skip from h2 to h4", []string{"<h1>a</h1>", "<h2>b</h2>", "<h4>c</h4>"}, false},
		{"back up then down", []string{"<h1>a</h1>", "<h2>b</h2>", "<h1>c</h1>", "<h2>d</h2>"}, true},
		{"starts at h2", []string{"<h2>a</h2>"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateHeadingHierarchy(tt.headings); got != tt.valid {
				t.Errorf("validateHeadingHierarchy(%v) = %v, want %v", tt.headings, got, tt.valid)
			}
		})
	}
}

func TestParseSchemas(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{"@type":"BlogPosting","headline":"x","author":"y","datePublished":"2026-01-01"}</script>
<script type="application/ld+json">not json at all</script>
<script type="application/ld+json">{"@type":"WebSite","name":"n","url":"u"}</script>
</head></html>`

	schemas := parseSchemas(html)
	if len(schemas) != 2 {
		t.Fatalf("expected 2 parsed schemas, got %d", len(schemas))
	}
	if schemas[0]["@type"] != "BlogPosting" {
		t.Errorf("first schema type = %v", schemas[0]["@type"])
	}
	if schemas[1]["@type"] != "WebSite" {
		t.Errorf("second schema type = %v", schemas[1]["@type"])
	}
}

func TestSchemaTypeMatches(t *testing.T) {
	stringType := map[string]any{"@type": "BlogPosting"}
	arrayType := map[string]any{"@type": []any{"WebSite", "Organization"}}
	noType := map[string]any{"name": "x"}

	if !schemaTypeMatches(stringType, "BlogPosting") {
		t.Error("string @type should match")
	}
	if !schemaTypeMatches(arrayType, "Organization") {
		t.Error("array @type should match exact element")
	}
	if schemaTypeMatches(arrayType, "Org") {
		t.Error("array @type must not substring-match")
	}
	if schemaTypeMatches(noType, "WebSite") {
		t.Error("missing @type should not match")
	}
}

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema map[string]any
		valid  bool
	}{
		{
			"complete blog posting",
			map[string]any{"@type": "BlogPosting", "headline": "h", "author": "a", "datePublished": "d"},
			true,
		},
		{
			"blog posting missing author",
			map[string]any{"@type": "BlogPosting", "headline": "h", "datePublished": "d"},
			false,
		},
		{
			"faq page with mainEntity",
			map[string]any{"@type": "FAQPage", "mainEntity": []any{}},
			true,
		},
		{
			"untracked type passes",
			map[string]any{"@type": "Recipe"},
			true,
		},
		{
			"array type fails validation",
			map[string]any{"@type": []any{"WebSite"}, "name": "n", "url": "u"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateSchema(tt.schema); got != tt.valid {
				t.Errorf("validateSchema = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestTextToHTMLRatio(t *testing.T) {
	if got := textToHTMLRatio(""); got != 0 {
		t.Errorf("empty html ratio = %v, want 0", got)
	}

	html := "<p>hello</p>"
	got := textToHTMLRatio(html)
	if got <= 0 || got >= 1 {
		t.Errorf("ratio = %v, want within (0,1)", got)
	}
}
