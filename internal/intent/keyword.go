// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package intent

import (
	"context"
	"regexp"
	"strings"
)

// KeywordClassifier is a deterministic fallback classifier built on phrase
// matching. It never fails and never performs I/O.
type KeywordClassifier struct{}

// NewKeywordClassifier creates the fallback classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var (
	userPattern   = regexp.MustCompile(`(?i)(?:user:\s*|@)([a-z0-9_.-]+)`)
	bottlePattern = regexp.MustCompile(`(?i)(?:about|similar to|like|called)\s+(.+?)(?:\?|$)`)
)

// Classify maps a message to an Intent by phrase matching. Checks run in
// priority order so "bottles similar to X" is SIMILAR even though it also
// mentions bottles.
func (c *KeywordClassifier) Classify(_ context.Context, message string) (Intent, error) {
	lower := strings.ToLower(message)

	out := Intent{
		Type:     TypeGeneral,
		Username: extractUsername(message),
	}

	switch {
	case containsAny(lower, "similar to", "similar bottles", "like this bottle", "more like", "comparable to"):
		out.Type = TypeSimilar
		out.BottleName = extractBottleName(message)
	case containsAny(lower, "tell me about", "what is", "info on", "info about", "know about"):
		out.Type = TypeInfo
		out.BottleName = extractBottleName(message)
	case containsAny(lower, "analyze", "analysis", "breakdown", "what does my collection"):
		out.Type = TypeAnalyze
	case containsAny(lower, "recommend", "suggestion", "suggest", "what should i", "what would you pick"):
		out.Type = TypeRecommend
	}

	return out, nil
}

func containsAny(s string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func extractUsername(message string) string {
	if m := userPattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return DefaultUsername
}

func extractBottleName(message string) string {
	if m := bottlePattern.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
