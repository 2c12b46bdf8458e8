// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"sort"
)

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeForScore buckets a 0-100 score into the A-F readiness scale.
func GradeForScore(score int) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

var gradeMessages = map[Grade]string{
	GradeA: "Excellent AI Search Readiness - Your content is optimized for Perplexity, Claude, ChatGPT",
	GradeB: "Good AI Search Readiness - Minor improvements recommended",
	GradeC: "Moderate AI Search Readiness - Several areas need optimization",
	GradeD: "Poor AI Search Readiness - Significant improvements needed",
	GradeF: "Critical Issues - Your site is largely invisible to AI search engines",
}

func ScoreMessage(grade Grade) string {
	return gradeMessages[grade]
}

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

var priorityOrder = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

type Effort string

const (
	EffortQuick   Effort = "quick"
	EffortMedium  Effort = "medium"
	EffortComplex Effort = "complex"
)

// Improvement is one actionable remediation derived from a check that
// left points on the table.
type Improvement struct {
	Priority   Priority `json:"priority"`
	Check      string   `json:"check"`
	Issue      string   `json:"issue"`
	Fix        string   `json:"fix"`
	PointsGain int      `json:"pointsGain"`
	Effort     Effort   `json:"effort"`
}

// GenerateImprovements turns underperforming checks into a remediation
// list sorted by priority, then by points gained.
func GenerateImprovements(report *Report) []Improvement {
	var improvements []Improvement

	for _, check := range report.RawChecks {
		base := check.base()
		if base.Score >= base.MaxScore {
			continue
		}

		pointsGain := base.MaxScore - base.Score
		priority := PriorityMedium
		switch base.Status {
		case StatusFail:
			priority = PriorityCritical
		case StatusWarning:
			priority = PriorityHigh
		}

		effort := EffortQuick
		switch {
		case pointsGain > 5:
			effort = EffortComplex
		case pointsGain > 2:
			effort = EffortMedium
		}

		for _, rec := range base.Recommendations {
			if rec == "" {
				continue
			}
			improvements = append(improvements, Improvement{
				Priority:   priority,
				Check:      base.Name,
				Issue:      base.Message,
				Fix:        rec,
				PointsGain: pointsGain,
				Effort:     effort,
			})
		}
	}

	sort.SliceStable(improvements, func(i, j int) bool {
		pi, pj := priorityOrder[improvements[i].Priority], priorityOrder[improvements[j].Priority]
		if pi != pj {
			return pi < pj
		}
		return improvements[i].PointsGain > improvements[j].PointsGain
	})

	return improvements
}

// Summary is the human-readable wrapper the audit endpoint returns next
// to the raw result.
type Summary struct {
	Grade   Grade  `json:"grade"`
	Message string `json:"message"`
}

func Summarize(result *AuditResult) Summary {
	grade := GradeForScore(result.OverallScore)
	return Summary{
		Grade:   grade,
		Message: ScoreMessage(grade),
	}
}
