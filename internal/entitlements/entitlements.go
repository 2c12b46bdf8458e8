// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.

// Package entitlements decides what a viewer may see of an audit report
// and applies the matching redaction.
package entitlements

import (
	"context"

	"github.com/ChudiNnorukam/seoauditlite/internal/auditor"
)

// Context describes one viewer of one audit. IsShareLink and IsOwner are
// mutually exclusive: the owner always gets the full view, so a share
// link opened by the owner is not treated as a share view.
type Context struct {
	Plan        string `json:"plan"`
	IsShareLink bool   `json:"isShareLink"`
	IsOwner     bool   `json:"isOwner"`
}

// NewContext builds a viewer context, enforcing the owner/share exclusion.
func NewContext(plan string, isShareLink, isOwner bool) Context {
	if plan == "" {
		plan = auditor.PlanFree
	}
	return Context{
		Plan:        plan,
		IsShareLink: isShareLink && !isOwner,
		IsOwner:     isOwner,
	}
}

// Inputs feed the pure resolver. PlanOverride wins over the plan recorded
// on the audit itself.
type Inputs struct {
	Audit        *auditor.AuditResult
	IsShareLink  bool
	IsOwner      bool
	PlanOverride string
}

// Resolve derives a viewer context from its inputs. Pure; no I/O.
func Resolve(in Inputs) Context {
	plan := in.PlanOverride
	if plan == "" && in.Audit != nil {
		plan = in.Audit.Limits.Plan
	}
	return NewContext(plan, in.IsShareLink, in.IsOwner)
}

// Record is a stored entitlement row.
type Record struct {
	Key    string
	Plan   string
	Status string
}

// Store is the persistence surface the impure resolver needs.
type Store interface {
	Ensure(ctx context.Context, key string) error
	GetByKey(ctx context.Context, key string) (*Record, error)
}

// RequestInputs are the raw signals extracted from an HTTP request.
type RequestInputs struct {
	EntitlementKey string
	Audit          *auditor.AuditResult
	IsShareLink    bool
	IsOwner        bool
}

// ResolveForRequest looks up the entitlement key, if any, then delegates
// to the pure resolver. A missing or unknown key resolves as free.
func ResolveForRequest(ctx context.Context, store Store, in RequestInputs) (Context, error) {
	var planOverride string

	if in.EntitlementKey != "" && store != nil {
		if err := store.Ensure(ctx, in.EntitlementKey); err != nil {
			return Context{}, err
		}
		record, err := store.GetByKey(ctx, in.EntitlementKey)
		if err != nil {
			return Context{}, err
		}
		if record != nil {
			planOverride = record.Plan
		}
	}

	return Resolve(Inputs{
		Audit:        in.Audit,
		IsShareLink:  in.IsShareLink,
		IsOwner:      in.IsOwner,
		PlanOverride: planOverride,
	}), nil
}
