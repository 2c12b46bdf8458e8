// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ChudiNnorukam/seoauditlite/internal/entitlements"
	"github.com/ChudiNnorukam/seoauditlite/internal/models"
)

// EntitlementStore persists entitlement keys and their plans in Postgres.
// It satisfies entitlements.Store.
type EntitlementStore struct {
	pool *pgxpool.Pool
}

func NewEntitlementStore(pool *pgxpool.Pool) *EntitlementStore {
	return &EntitlementStore{pool: pool}
}

// Ensure creates a free-plan row for an unseen key. Existing rows are
// left untouched.
func (s *EntitlementStore) Ensure(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO entitlements (entitlement_key, plan, status)
		VALUES ($1, 'free', 'active')
		ON CONFLICT (entitlement_key) DO NOTHING`,
		key,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure entitlement: %w", err)
	}
	return nil
}

func (s *EntitlementStore) GetByKey(ctx context.Context, key string) (*entitlements.Record, error) {
	var row models.EntitlementRow
	err := s.pool.QueryRow(ctx, `
		SELECT entitlement_key, plan, status
		FROM entitlements
		WHERE entitlement_key = $1`,
		key,
	).Scan(&row.EntitlementKey, &row.Plan, &row.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entitlement: %w", err)
	}

	return &entitlements.Record{
		Key:    row.EntitlementKey,
		Plan:   row.Plan,
		Status: row.Status,
	}, nil
}

// AuditArchive keeps finished audits in Postgres beyond the in-memory TTL.
type AuditArchive struct {
	pool *pgxpool.Pool
}

func NewAuditArchive(pool *pgxpool.Pool) *AuditArchive {
	return &AuditArchive{pool: pool}
}

func (a *AuditArchive) Archive(ctx context.Context, row models.AuditRow) error {
	_, err := a.pool.Exec(ctx, `
		INSERT INTO audits (audit_id, audited_url, score, result)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (audit_id) DO NOTHING`,
		row.AuditID, row.AuditedURL, row.Score, row.Result,
	)
	if err != nil {
		return fmt.Errorf("failed to archive audit: %w", err)
	}
	return nil
}

// Upsert sets plan and status for a key, used by billing callbacks.
func (s *EntitlementStore) Upsert(ctx context.Context, key, plan, status string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO entitlements (entitlement_key, plan, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (entitlement_key)
		DO UPDATE SET plan = EXCLUDED.plan, status = EXCLUDED.status, updated_at = now()`,
		key, plan, status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entitlement: %w", err)
	}
	return nil
}
