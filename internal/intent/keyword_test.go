// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package intent

import (
	"context"
	"testing"
)

func TestKeywordClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := NewKeywordClassifier()

	tests := []struct {
		name       string
		message    string
		wantType   RequestType
		wantUser   string
		wantBottle string
	}{
		{
			name:     "analyze collection",
			message:  "Can you analyze my collection?",
			wantType: TypeAnalyze,
			wantUser: DefaultUsername,
		},
		{
			name:     "collection breakdown",
			message:  "Give me a breakdown of my bar",
			wantType: TypeAnalyze,
			wantUser: DefaultUsername,
		},
		{
			name:     "recommendation request",
			message:  "What should I buy next?",
			wantType: TypeRecommend,
			wantUser: DefaultUsername,
		},
		{
			name:     "recommend with username",
			message:  "recommend something for @whiskeyfan42",
			wantType: TypeRecommend,
			wantUser: "whiskeyfan42",
		},
		{
			name:     "recommend with user prefix",
			message:  "recommend bottles, user: jane_doe",
			wantType: TypeRecommend,
			wantUser: "jane_doe",
		},
		{
			name:       "bottle info",
			message:    "Tell me about Buffalo Trace",
			wantType:   TypeInfo,
			wantUser:   DefaultUsername,
			wantBottle: "Buffalo Trace",
		},
		{
			name:       "bottle info question mark stripped",
			message:    "What do you know about Eagle Rare 10 Year?",
			wantType:   TypeInfo,
			wantUser:   DefaultUsername,
			wantBottle: "Eagle Rare 10 Year",
		},
		{
			name:       "similar bottles",
			message:    "Show me bottles similar to Blanton's",
			wantType:   TypeSimilar,
			wantUser:   DefaultUsername,
			wantBottle: "Blanton's",
		},
		{
			name:     "similar beats info priority",
			message:  "tell me about bottles similar to Weller",
			wantType: TypeSimilar,
			wantUser: DefaultUsername,
			// "about" matches first in the extraction pattern.
			wantBottle: "bottles similar to Weller",
		},
		{
			name:     "general chat",
			message:  "How's the weather down in Kentucky?",
			wantType: TypeGeneral,
			wantUser: DefaultUsername,
		},
		{
			name:     "empty message",
			message:  "",
			wantType: TypeGeneral,
			wantUser: DefaultUsername,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.Classify(context.Background(), tt.message)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", got.Type, tt.wantType)
			}
			if got.Username != tt.wantUser {
				t.Errorf("Username = %q, want %q", got.Username, tt.wantUser)
			}
			if got.BottleName != tt.wantBottle {
				t.Errorf("BottleName = %q, want %q", got.BottleName, tt.wantBottle)
			}
		})
	}
}

func TestValidType(t *testing.T) {
	t.Parallel()

	for _, rt := range []RequestType{TypeAnalyze, TypeRecommend, TypeInfo, TypeSimilar, TypeGeneral} {
		if !validType(rt) {
			t.Errorf("validType(%s) = false", rt)
		}
	}
	if validType("SHOPPING") {
		t.Error(`validType("SHOPPING") = true`)
	}
}
