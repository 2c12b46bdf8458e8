// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package webclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

var UserAgent = "SEOAuditLite-AEOAudit/1.0 (+https://seoauditlite.com)"

func SetUserAgentVersion(version string) {
	UserAgent = fmt.Sprintf("SEOAuditLite-AEOAudit/%s (+https://seoauditlite.com)", version)
}

// Client is an outbound HTTP fetcher with SSRF guards and bounded body
// reads. Every audit fetch goes through it.
type Client struct {
	client          *http.Client
	userAgent       string
	validateTargets bool
}

type Option func(*Client)

// WithTransport swaps the underlying transport. Tests use this to route
// fetches at a local server.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.client.Transport = rt }
}

// WithoutTargetValidation disables the private-IP target check.
func WithoutTargetValidation() Option {
	return func(c *Client) { c.validateTargets = false }
}

func New(opts ...Option) *Client {
	return NewWithTimeout(15*time.Second, opts...)
}

func NewWithTimeout(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				IdleConnTimeout:     30 * time.Second,
				DisableKeepAlives:   false,
				MaxIdleConnsPerHost: 5,
			},
		},
		userAgent:       UserAgent,
		validateTargets: true,
	}
	c.client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 5 {
			return fmt.Errorf("too many redirects")
		}
		if c.validateTargets && !ValidateURLTarget(req.URL.String()) {
			return fmt.Errorf("SSRF protection: redirect target resolves to private IP")
		}
		return nil
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if c.validateTargets && !ValidateURLTarget(rawURL) {
		return nil, fmt.Errorf("SSRF protection: URL target resolves to private/reserved IP range")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	return c.client.Do(req)
}

func (c *Client) ReadBody(resp *http.Response, maxBytes int64) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, maxBytes))
}

func IsPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}

	if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
		return true
	}

	if ip4 := ip.To4(); ip4 != nil {
		if ip4[0] == 100 && ip4[1] >= 64 && ip4[1] <= 127 {
			return true
		}
		if ip4[0] == 192 && ip4[1] == 0 && ip4[2] == 0 {
			return true
		}
		if ip4[0] == 198 && (ip4[1] == 18 || ip4[1] == 19) {
			return true
		}
	}

	return false
}

func ValidateURLTarget(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	hostname := parsed.Hostname()
	if hostname == "" {
		return false
	}

	addrs, err := net.LookupHost(hostname)
	if err != nil {
		return false
	}
	if len(addrs) == 0 {
		return false
	}

	for _, addr := range addrs {
		if IsPrivateIP(addr) {
			return false
		}
	}
	return true
}
