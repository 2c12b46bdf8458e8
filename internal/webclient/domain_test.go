// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package webclient_test

import (
	"testing"

	"github.com/ChudiNnorukam/seoauditlite/internal/webclient"
)

func TestNormalizeAuditURL(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		auditedURL string
		domain     string
	}{
		{"bare domain", "example.com", "https://example.com", "example.com"},
		{"https prefix", "https://example.com", "https://example.com", "example.com"},
		{"http preserved", "http://example.com", "http://example.com", "example.com"},
		{"trailing slash", "example.com/", "https://example.com", "example.com"},
		{"path stripped", "example.com/blog/post", "https://example.com", "example.com"},
		{"uppercase scheme", "HTTPS://example.com", "https://example.com", "example.com"},
		{"whitespace trimmed", "  example.com  ", "https://example.com", "example.com"},
		{"subdomain", "www.example.co.uk", "https://www.example.co.uk", "www.example.co.uk"},
		{"port kept in origin", "example.com:8443", "https://example.com:8443", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auditedURL, domain, err := webclient.NormalizeAuditURL(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if auditedURL != tt.auditedURL {
				t.Errorf("auditedURL = %q, want %q", auditedURL, tt.auditedURL)
			}
			if domain != tt.domain {
				t.Errorf("domain = %q, want %q", domain, tt.domain)
			}
		})
	}
}

func TestValidDomainFormat(t *testing.T) {
	tests := []struct {
		domain string
		valid  bool
	}{
		{"example.com", true},
		{"sub.example.com", true},
		{"example.co.uk", true},
		{"ex-ample.com", true},
		{"xn--mnchen-3ya.de", true},
		{"münchen.de", true},
		{"localhost", false},
		{"", false},
		{"example", false},
		{"ex ample.com", false},
		{"example.c", false},
		{"-bad.com", false},
		{"exa_mple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := webclient.ValidDomainFormat(tt.domain); got != tt.valid {
				t.Errorf("ValidDomainFormat(%q) = %v, want %v", tt.domain, got, tt.valid)
			}
		})
	}
}

func TestValidDomainFormatLength(t *testing.T) {
	long := ""
	for len(long) < 260 {
		long += "abcdefghij."
	}
	long += "com"
	if webclient.ValidDomainFormat(long) {
		t.Error("domain over 253 chars should be invalid")
	}
}

func TestDomainToASCII(t *testing.T) {
	got, err := webclient.DomainToASCII("München.DE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "xn--mnchen-3ya.de" {
		t.Errorf("DomainToASCII = %q, want %q", got, "xn--mnchen-3ya.de")
	}

	got, err = webclient.DomainToASCII("example.com.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "example.com" {
		t.Errorf("trailing dot not stripped: %q", got)
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"10.0.0.1", true},
		{"192.168.1.1", true},
		{"172.16.0.1", true},
		{"127.0.0.1", true},
		{"169.254.1.1", true},
		{"100.64.0.1", true},
		{"0.0.0.0", true},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"not-an-ip", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := webclient.IsPrivateIP(tt.ip); got != tt.private {
				t.Errorf("IsPrivateIP(%q) = %v, want %v", tt.ip, got, tt.private)
			}
		})
	}
}
