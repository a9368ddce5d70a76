// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package intent classifies free-text chat messages into the request types
// the agent understands and extracts the entities they reference.
//
// The primary classifier asks an OpenAI-compatible model; when no API key is
// configured, or the model call fails, a deterministic keyword classifier
// takes over so the agent degrades instead of erroring.
package intent

import (
	"context"
)

// RequestType is the classified kind of a user message.
type RequestType string

const (
	// TypeAnalyze asks for an analysis of a user's collection.
	TypeAnalyze RequestType = "ANALYZE"
	// TypeRecommend asks for bottle recommendations.
	TypeRecommend RequestType = "RECOMMEND"
	// TypeInfo asks about a specific bottle.
	TypeInfo RequestType = "INFO"
	// TypeSimilar asks for bottles similar to a named one.
	TypeSimilar RequestType = "SIMILAR"
	// TypeGeneral is everything else: general whiskey talk.
	TypeGeneral RequestType = "GENERAL"
)

// DefaultUsername is used when a message does not name a user.
const DefaultUsername = "carriebaxus"

// Intent is a classified message with its extracted entities.
type Intent struct {
	Type       RequestType `json:"type"`
	Username   string      `json:"username"`
	BottleName string      `json:"bottle_name,omitempty"`
}

// Classifier maps a free-text message to an Intent.
type Classifier interface {
	Classify(ctx context.Context, message string) (Intent, error)
}

func validType(t RequestType) bool {
	switch t {
	case TypeAnalyze, TypeRecommend, TypeInfo, TypeSimilar, TypeGeneral:
		return true
	}
	return false
}
