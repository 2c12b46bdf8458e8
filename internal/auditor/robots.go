// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// aiCrawlers is the roster of AI user agents whose robots.txt access
// drives the crawler accessibility score. Order is stable; it shows up
// verbatim in check details.
var aiCrawlers = []struct {
	UserAgent string
	Name      string
}{
	{"GPTBot", "OpenAI GPT"},
	{"ClaudeBot", "Anthropic Claude"},
	{"PerplexityBot", "Perplexity"},
	{"Googlebot-Extended", "Google AI"},
	{"CCBot", "CommonCrawl"},
}

// checkRobots fetches robots.txt and scores how many of the tracked AI
// crawlers are allowed to fetch the site root. A missing robots.txt means
// allow-all.
func (a *Auditor) checkRobots(ctx context.Context, auditedURL string) (*RobotsCheck, error) {
	robotsURL := auditedURL + "/robots.txt"

	res, err := a.fetchText(ctx, robotsURL)
	if err != nil {
		return nil, err
	}

	check := &RobotsCheck{
		CheckResult: CheckResult{
			Name:     "ai-crawler-accessibility",
			MaxScore: 20,
		},
		RobotsURL:        robotsURL,
		RobotsAccessible: res.found,
	}
	if res.found {
		check.RobotsContent = res.body
	}

	allowed := 0
	for _, bot := range aiCrawlers {
		botAllowed := !res.found || robotsContentAllows(res.body, bot.UserAgent)
		check.AIBotsAllowed = append(check.AIBotsAllowed, BotAccess{
			BotName:   bot.Name,
			UserAgent: bot.UserAgent,
			Allowed:   botAllowed,
		})
		if botAllowed {
			allowed++
		}
	}

	total := len(aiCrawlers)
	check.Score = int(math.Round(float64(allowed) / float64(total) * float64(check.MaxScore)))
	switch {
	case allowed == total:
		check.Status = StatusPass
	case allowed >= 3:
		check.Status = StatusWarning
	default:
		check.Status = StatusFail
	}
	check.Message = fmt.Sprintf("%d/%d AI crawlers allowed", allowed, total)

	robotsDetail := "robots.txt not found (default: allow all)"
	if res.found {
		robotsDetail = "robots.txt is accessible"
	}
	var botLines []string
	for _, bot := range check.AIBotsAllowed {
		mark := "✗"
		if bot.Allowed {
			mark = "✓"
		}
		botLines = append(botLines, fmt.Sprintf("  %s %s", mark, bot.BotName))
	}
	check.Details = []string{
		robotsDetail,
		fmt.Sprintf("AI crawlers allowed: %d/%d", allowed, total),
		strings.Join(botLines, "\n"),
	}

	if allowed < total {
		check.Recommendations = []string{"Add explicit Allow rules for GPTBot, ClaudeBot, PerplexityBot"}
	} else {
		check.Recommendations = []string{"No changes needed - all AI crawlers allowed"}
	}

	return check, nil
}

// robotsContentAllows walks robots.txt line by line, tracking the current
// user-agent group, and reports whether the given bot may fetch "/". A
// Disallow applies when the active group names the bot or is the "*"
// wildcard; only a bare or root-path Disallow blocks.
func robotsContentAllows(content, botUserAgent string) bool {
	currentUserAgent := "*"
	allowed := true

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		if strings.HasPrefix(lower, "user-agent:") {
			currentUserAgent = strings.TrimSpace(trimmed[len("user-agent:"):])
			continue
		}

		if strings.HasPrefix(lower, "disallow:") {
			if currentUserAgent != botUserAgent && currentUserAgent != "*" {
				continue
			}
			value := strings.TrimSpace(trimmed[len("disallow:"):])
			if value == "/" || value == "" {
				allowed = false
			}
		}
	}

	return allowed
}
