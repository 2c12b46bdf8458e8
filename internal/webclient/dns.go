// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package webclient

import (
	"context"
	"net"
	"time"

	"codeberg.org/miekg/dns"
	"codeberg.org/miekg/dns/dnsutil"
)

var defaultResolvers = []string{"1.1.1.1", "8.8.8.8"}

// Resolver answers the single question the audit surface needs before
// spending fetch budget: is this domain delegated at all?
type Resolver struct {
	resolvers []string
	timeout   time.Duration
}

func NewResolver() *Resolver {
	return &Resolver{
		resolvers: defaultResolvers,
		timeout:   2 * time.Second,
	}
}

// IsDelegated probes A, AAAA and NS records. Any answer from any resolver
// counts; total resolver silence means undelegated or unregistered.
func (r *Resolver) IsDelegated(ctx context.Context, domain string) bool {
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA, dns.TypeNS} {
		if r.hasAnswer(ctx, domain, qtype) {
			return true
		}
	}
	return false
}

func (r *Resolver) hasAnswer(ctx context.Context, domain string, qtype uint16) bool {
	msg := dns.NewMsg(dnsutil.Fqdn(domain), qtype)
	msg.RecursionDesired = true

	client := &dns.Client{
		Transport: &dns.Transport{
			Dialer: &net.Dialer{
				Timeout: r.timeout,
			},
			ReadTimeout:  r.timeout,
			WriteTimeout: r.timeout,
		},
	}

	for _, resolver := range r.resolvers {
		reply, _, err := client.Exchange(ctx, msg, "udp", net.JoinHostPort(resolver, "53"))
		if err != nil {
			continue
		}
		if reply.Rcode == dns.RcodeNameError {
			continue
		}
		if len(reply.Answer) > 0 {
			return true
		}
	}
	return false
}
