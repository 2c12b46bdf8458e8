// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"context"
	"time"
)

const (
	textFetchTimeout = 5 * time.Second
	htmlFetchTimeout = 10 * time.Second

	maxTextBody = 512 * 1024
	maxHTMLBody = 2 * 1024 * 1024
)

// fetchResult distinguishes "resource absent" (non-2xx) from "resource
// present" so checks can score a 404 instead of failing on it. Transport
// failures surface as an error and abort the whole audit.
type fetchResult struct {
	found  bool
	status int
	body   string
}

func (a *Auditor) fetchResource(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) (fetchResult, error) {
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := a.http.Get(fctx, rawURL)
	if err != nil {
		return fetchResult{}, err
	}

	body, err := a.http.ReadBody(resp, maxBytes)
	if err != nil {
		return fetchResult{}, err
	}

	return fetchResult{
		found:  resp.StatusCode >= 200 && resp.StatusCode < 300,
		status: resp.StatusCode,
		body:   string(body),
	}, nil
}

func (a *Auditor) fetchText(ctx context.Context, rawURL string) (fetchResult, error) {
	return a.fetchResource(ctx, rawURL, textFetchTimeout, maxTextBody)
}

func (a *Auditor) fetchHTML(ctx context.Context, rawURL string) (fetchResult, error) {
	return a.fetchResource(ctx, rawURL, htmlFetchTimeout, maxHTMLBody)
}
