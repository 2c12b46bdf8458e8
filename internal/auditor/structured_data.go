// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"context"
	"fmt"
)

// trackedSchemaTypes is the JSON-LD vocabulary the quality score rewards.
// Present but incomplete schemas earn partial credit.
var trackedSchemaTypes = []string{
	"BlogPosting",
	"WebSite",
	"Person",
	"FAQPage",
	"HowTo",
}

// checkStructuredData parses every JSON-LD block on the homepage and
// grades coverage of the tracked schema types. Valid schemas score 5
// points each, present-but-incomplete ones 2, capped at 25.
func (a *Auditor) checkStructuredData(ctx context.Context, auditedURL string) (*StructuredDataCheck, error) {
	res, err := a.fetchHTML(ctx, auditedURL)
	if err != nil {
		return nil, err
	}

	schemas := parseSchemas(res.body)

	check := &StructuredDataCheck{
		CheckResult: CheckResult{
			Name:     "structured-data-quality",
			MaxScore: 25,
		},
		TotalSchemas: len(schemas),
	}

	score := 0
	present := 0
	for _, schemaType := range trackedSchemaTypes {
		sp := SchemaPresence{Type: schemaType}
		for _, schema := range schemas {
			if !schemaTypeMatches(schema, schemaType) {
				continue
			}
			sp.Present = true
			if validateSchema(schema) {
				sp.Valid = true
				break
			}
		}
		check.Schemas = append(check.Schemas, sp)

		if sp.Present {
			present++
			if sp.Valid {
				score += 5
			} else {
				score += 2
			}
		}
	}

	switch {
	case score >= 20:
		check.Status = StatusPass
	case score >= 10:
		check.Status = StatusWarning
	default:
		check.Status = StatusFail
	}
	if score > check.MaxScore {
		score = check.MaxScore
	}
	check.Score = score
	check.Message = fmt.Sprintf("%d/%d schema types found", present, len(trackedSchemaTypes))

	for _, sp := range check.Schemas {
		mark := "✗"
		if sp.Present {
			mark = "⚠"
			if sp.Valid {
				mark = "✓"
			}
		}
		check.Details = append(check.Details, fmt.Sprintf("%s %s", mark, sp.Type))
	}

	check.Recommendations = filterEmpty([]string{
		recommendIfMissing(check.Schemas, "BlogPosting", "Add BlogPosting schema to articles"),
		recommendIfMissing(check.Schemas, "FAQPage", "Add FAQPage schema for FAQ content"),
		recommendIfMissing(check.Schemas, "HowTo", "Add HowTo schema for tutorial content"),
	})

	return check, nil
}

func recommendIfMissing(schemas []SchemaPresence, schemaType, recommendation string) string {
	for _, sp := range schemas {
		if sp.Type == schemaType && sp.Present {
			return ""
		}
	}
	return recommendation
}
