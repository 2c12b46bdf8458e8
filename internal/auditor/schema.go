// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

// SchemaVersion is the wire-format version of AuditResult. Bump on any
// breaking field change.
const SchemaVersion = "1.0.0"

type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusWarning CheckStatus = "warning"
	StatusFail    CheckStatus = "fail"
)

type NoteType string

const (
	NoteInfo    NoteType = "info"
	NoteWarning NoteType = "warning"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// AuditRequest is the input to AuditDomain. FullURL is accepted for
// compatibility with older clients; the engine always audits the origin.
type AuditRequest struct {
	Domain  string `json:"domain"`
	FullURL bool   `json:"fullUrl,omitempty"`
}

type CheckDetails struct {
	Explanation    string   `json:"explanation"`
	Evidence       []string `json:"evidence"`
	Recommendation string   `json:"recommendation"`
}

type CheckMetadata struct {
	IsShareSafe bool   `json:"is_share_safe"`
	IsProOnly   bool   `json:"is_pro_only"`
	Category    string `json:"category"`
}

// AuditCheck is the public, normalized shape of one check inside an
// AuditResult. Score here is 0-100 regardless of the check's internal
// point scale.
type AuditCheck struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Status   CheckStatus   `json:"status"`
	Score    int           `json:"score"`
	Summary  string        `json:"summary"`
	Details  CheckDetails  `json:"details"`
	Metadata CheckMetadata `json:"metadata"`
}

type AuditNote struct {
	Type    NoteType `json:"type"`
	Message string   `json:"message"`
}

type AuditLimits struct {
	Plan            string `json:"plan"`
	AuditsRemaining int    `json:"audits_remaining"`
	ExportAvailable bool   `json:"export_available"`
	HistoryDays     int    `json:"history_days"`
}

type VisibilitySummary struct {
	AIVisiblePercentage   int `json:"ai_visible_percentage"`
	AIInvisiblePercentage int `json:"ai_invisible_percentage"`
}

// AuditResult is the canonical JSON-serializable audit report. It is
// produced once per audit and never mutated; redaction returns a new copy.
type AuditResult struct {
	SchemaVersion     string            `json:"schema_version"`
	AuditID           string            `json:"audit_id"`
	AuditedURL        string            `json:"audited_url"`
	AuditedAt         string            `json:"audited_at"`
	OverallScore      int               `json:"overall_score"`
	VisibilitySummary VisibilitySummary `json:"visibility_summary"`
	Checks            []AuditCheck      `json:"checks"`
	Notes             []AuditNote       `json:"notes"`
	Limits            AuditLimits       `json:"limits"`
}

// CheckResult is the common base of the six internal check results. The
// concrete types around it carry the raw signals each heuristic observed.
type CheckResult struct {
	Name            string      `json:"name"`
	Status          CheckStatus `json:"status"`
	Score           int         `json:"score"`
	MaxScore        int         `json:"maxScore"`
	Message         string      `json:"message"`
	Details         []string    `json:"details"`
	Recommendations []string    `json:"recommendations"`
}

func (r *CheckResult) base() *CheckResult { return r }

// aeoCheck is satisfied by every internal check result variant.
type aeoCheck interface {
	base() *CheckResult
}

type BotAccess struct {
	BotName   string `json:"botName"`
	UserAgent string `json:"userAgent"`
	Allowed   bool   `json:"allowed"`
}

type RobotsCheck struct {
	CheckResult
	RobotsURL        string      `json:"robotsUrl"`
	RobotsAccessible bool        `json:"robotsAccessible"`
	RobotsContent    string      `json:"robotsContent,omitempty"`
	AIBotsAllowed    []BotAccess `json:"aiBotsAllowed"`
}

type LLMsCheck struct {
	CheckResult
	LLMsURL     string `json:"llmsUrl"`
	LLMsExists  bool   `json:"llmsExists"`
	LLMsContent string `json:"llmsContent,omitempty"`
	HasSitemap  bool   `json:"hasSitemap"`
	HasRSS      bool   `json:"hasRSS"`
	IsValid     bool   `json:"isValid"`
}

type SchemaPresence struct {
	Type    string `json:"type"`
	Present bool   `json:"present"`
	Valid   bool   `json:"valid"`
}

type StructuredDataCheck struct {
	CheckResult
	Schemas      []SchemaPresence `json:"schemas"`
	TotalSchemas int              `json:"totalSchemas"`
}

type ExtractabilityCheck struct {
	CheckResult
	HTMLValid             bool    `json:"htmlValid"`
	HasSemanticTags       bool    `json:"hasSemanticTags"`
	HeadingHierarchyValid bool    `json:"headingHierarchyValid"`
	TextToHTMLRatio       float64 `json:"textToHTMLRatio"`
	ImagesWithAlt         int     `json:"imagesWithAlt"`
	ImagesTotal           int     `json:"imagesTotal"`
}

type MetadataCheck struct {
	CheckResult
	HasCanonical          bool `json:"hasCanonical"`
	CanonicalValid        bool `json:"canonicalValid"`
	HasOGTags             bool `json:"hasOGTags"`
	HasMetaDescription    bool `json:"hasMetaDescription"`
	HasDatePublished      bool `json:"hasDatePublished"`
	MetaDescriptionLength int  `json:"metaDescriptionLength"`
}

type AnswerFormatCheck struct {
	CheckResult
	HasFAQSchema      bool `json:"hasFAQSchema"`
	HasHowToSchema    bool `json:"hasHowToSchema"`
	HasLists          bool `json:"hasLists"`
	HasTables         bool `json:"hasTables"`
	HasDefinitionList bool `json:"hasDefinitionList"`
	HeaderCount       int  `json:"headerCount"`
	QuestionsDetected int  `json:"questionsDetected"`
}
