// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL  string
	Port         string
	AppVersion   string
	AuditTimeout time.Duration
	AuditTTL     time.Duration
}

// Load reads configuration from the environment. DATABASE_URL is
// optional; without it the entitlement lookup degrades to free-plan.
func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	auditTimeout := 30 * time.Second
	if raw := os.Getenv("AUDIT_TIMEOUT_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid AUDIT_TIMEOUT_MS: %q", raw)
		}
		auditTimeout = time.Duration(ms) * time.Millisecond
	}

	auditTTL := 7 * 24 * time.Hour
	if raw := os.Getenv("AUDIT_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid AUDIT_TTL_HOURS: %q", raw)
		}
		auditTTL = time.Duration(hours) * time.Hour
	}

	return &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Port:         port,
		AppVersion:   "1.4.2",
		AuditTimeout: auditTimeout,
		AuditTTL:     auditTTL,
	}, nil
}
