// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package models

import (
	"encoding/json"
	"time"
)

// EntitlementRow mirrors the entitlements table.
type EntitlementRow struct {
	EntitlementKey string     `json:"entitlement_key" db:"entitlement_key"`
	Plan           string     `json:"plan" db:"plan"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at" db:"updated_at"`
}

// AuditRow is the optional archived form of a finished audit.
type AuditRow struct {
	AuditID    string          `json:"audit_id" db:"audit_id"`
	AuditedURL string          `json:"audited_url" db:"audited_url"`
	Score      int             `json:"score" db:"score"`
	Result     json.RawMessage `json:"result" db:"result"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
