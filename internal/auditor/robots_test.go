// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import "testing"

func TestRobotsContentAllows(t *testing.T) {
	tests := []struct {
		name    string
		content string
		bot     string
		allowed bool
	}{
		{
			"empty file allows",
			"",
			"GPTBot",
			true,
		},
		{
			"wildcard disallow root blocks",
			"User-agent: *\nDisallow: /",
			"GPTBot",
			false,
		},
		{
			"wildcard bare disallow blocks",
			"User-agent: *\nDisallow:",
			"GPTBot",
			false,
		},
		{
			"specific bot blocked",
			"User-agent: GPTBot\nDisallow: /",
			"GPTBot",
			false,
		},
		{
			"other bot blocked leaves this one alone",
			"User-agent: ClaudeBot\nDisallow: /",
			"GPTBot",
			true,
		},
		{
			"path disallow does not block root",
			"User-agent: *\nDisallow: /admin",
			"GPTBot",
			true,
		},
		{
			"case insensitive directives",
			"USER-AGENT: *\nDISALLOW: /",
			"GPTBot",
			false,
		},
		{
			"group after unrelated group",
			"User-agent: ClaudeBot\nDisallow: /private\n\nUser-agent: GPTBot\nDisallow: /",
			"GPTBot",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := robotsContentAllows(tt.content, tt.bot); got != tt.allowed {
				t.Errorf("robotsContentAllows(%q, %q) = %v, want %v", tt.content, tt.bot, got, tt.allowed)
			}
		})
	}
}
