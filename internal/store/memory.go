// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.

// Package store holds audit reports and entitlement records.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChudiNnorukam/seoauditlite/internal/auditor"
)

// DefaultAuditTTL is how long a stored audit stays fetchable.
const DefaultAuditTTL = 7 * 24 * time.Hour

// AuditStore is the handler-facing persistence surface for audit reports.
type AuditStore interface {
	Save(report *auditor.Report) (ownerToken string)
	Get(auditID string) (*auditor.Report, bool)
	IsOwner(auditID, ownerToken string) bool
	Len() int
}

type auditEntry struct {
	report     *auditor.Report
	ownerToken string
	expiresAt  time.Time
}

// MemoryAuditStore keeps audits in memory with a TTL. Suitable for a
// single-instance deployment; entries disappear on restart.
type MemoryAuditStore struct {
	mu      sync.RWMutex
	entries map[string]auditEntry
	ttl     time.Duration
}

func NewMemoryAuditStore(ttl time.Duration) *MemoryAuditStore {
	if ttl <= 0 {
		ttl = DefaultAuditTTL
	}
	s := &MemoryAuditStore{
		entries: make(map[string]auditEntry),
		ttl:     ttl,
	}

	go s.cleanupLoop()

	return s
}

// Save stores the report under its audit ID and mints the owner token
// returned once to the creator.
func (s *MemoryAuditStore) Save(report *auditor.Report) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[report.Result.AuditID] = auditEntry{
		report:     report,
		ownerToken: token,
		expiresAt:  time.Now().Add(s.ttl),
	}
	return token
}

func (s *MemoryAuditStore) Get(auditID string) (*auditor.Report, bool) {
	s.mu.RLock()
	entry, ok := s.entries[auditID]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, auditID)
		s.mu.Unlock()
		return nil, false
	}
	return entry.report, true
}

// IsOwner checks the creation-time token. Constant-time comparison is not
// needed; tokens are high-entropy UUIDs.
func (s *MemoryAuditStore) IsOwner(auditID, ownerToken string) bool {
	if ownerToken == "" {
		return false
	}
	s.mu.RLock()
	entry, ok := s.entries[auditID]
	s.mu.RUnlock()
	return ok && entry.ownerToken == ownerToken
}

func (s *MemoryAuditStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Prune drops expired entries and reports how many were removed.
func (s *MemoryAuditStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryAuditStore) cleanupLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		s.Prune()
	}
}
