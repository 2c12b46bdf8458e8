// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package webclient

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var (
	schemeRe = regexp.MustCompile(`(?i)^https?://`)
	// One or more labels, then a TLD of at least two letters.
	domainFormatRe = regexp.MustCompile(`(?i)^[a-z0-9]([a-z0-9-]*\.)+[a-z]{2,}$`)
	asciiDomainRe  = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)
)

const maxDomainLength = 253

// NormalizeAuditURL turns raw user input into the canonical audited origin
// and its hostname. A URL parse failure is returned as-is.
func NormalizeAuditURL(input string) (auditedURL, domain string, err error) {
	trimmed := strings.TrimSpace(input)
	normalized := trimmed
	if !schemeRe.MatchString(trimmed) {
		normalized = "https://" + trimmed
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return "", "", err
	}

	return parsed.Scheme + "://" + parsed.Host, parsed.Hostname(), nil
}

// DomainToASCII converts a (possibly internationalized) hostname to its
// ASCII form for validation and lookups.
func DomainToASCII(domain string) (string, error) {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimRight(domain, ".")

	p := idna.New(idna.MapForLookup(), idna.Transitional(false))
	ascii, err := p.ToASCII(domain)
	if err != nil {
		if asciiDomainRe.MatchString(domain) {
			for _, label := range strings.Split(domain, ".") {
				if label == "" || len(label) > 63 || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
					return "", err
				}
			}
			return domain, nil
		}
		return "", err
	}
	return ascii, nil
}

// ValidDomainFormat reports whether a hostname looks like a registrable
// public domain: dotted labels ending in a two-plus letter TLD. Bare hosts
// such as "localhost" fail.
func ValidDomainFormat(domain string) bool {
	if domain == "" || len(domain) > maxDomainLength {
		return false
	}

	ascii, err := DomainToASCII(domain)
	if err != nil {
		return false
	}

	return domainFormatRe.MatchString(ascii)
}
