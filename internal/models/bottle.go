// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package models defines the shared data types for the Bob recommendation
// service: catalog bottles, user collection records, derived taste profiles,
// and ranked results.
package models

// BottleRecord is one candidate bottle from the catalog dataset.
// Records are built once at load time and never mutated afterwards.
//
// Proof and AvgMSRP are nil when the dataset row has no valid numeric value;
// scoring treats nil as "unknown" and excludes the field from numeric checks.
// Community signals (Popularity, WishlistCount, VoteCount, BarCount) default
// to zero, which the log-damped normalizations map to a zero score.
type BottleRecord struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	SpiritType string `json:"spirit_type"`

	Proof   *float64 `json:"proof,omitempty"`
	AvgMSRP *float64 `json:"avg_msrp,omitempty"`

	TastingNotes []string `json:"tasting_notes,omitempty"`
	Region       string   `json:"region,omitempty"`

	Popularity    float64 `json:"popularity,omitempty"`
	WishlistCount float64 `json:"wishlist_count,omitempty"`
	VoteCount     float64 `json:"vote_count,omitempty"`
	BarCount      float64 `json:"bar_count,omitempty"`
}

// Valid reports whether the record carries the fields required for scoring.
// Rows missing any of them are rejected at catalog load time.
func (b BottleRecord) Valid() bool {
	return b.ID != 0 && b.Name != "" && b.SpiritType != ""
}

// OwnedBottle is one entry of a user's bar collection as returned by the
// BAXUS bar API. Records without a product description are discarded before
// profile aggregation.
type OwnedBottle struct {
	ID      int      `json:"id"`
	Product *Product `json:"product"`
}

// Product is the nested product description of an owned bottle.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Spirit      string   `json:"spirit"`
	Proof       *float64 `json:"proof,omitempty"`
	AverageMSRP *float64 `json:"average_msrp,omitempty"`
}

// Range describes the min/max/average of a numeric collection attribute.
// When no bottle contributes a value all three fields are zero.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// UserProfile is the aggregate taste profile derived from a user's
// collection. It is rebuilt from scratch on every request and never
// persisted.
type UserProfile struct {
	SpiritTypeCounts map[string]int `json:"spirit_type_counts"`
	BrandCounts      map[string]int `json:"brand_counts"`
	PriceRange       Range          `json:"price_range"`
	ProofRange       Range          `json:"proof_range"`

	// BottleCount is the number of owned bottles that contributed to the
	// profile (malformed records excluded).
	BottleCount int `json:"bottle_count"`
}

// RankedResult is a catalog bottle with its recommendation or similarity
// score and the matched-reason tags explaining the pick.
type RankedResult struct {
	Bottle BottleRecord `json:"bottle"`

	// Score is the combined score; a convex combination of per-factor
	// scores, each in [0, 1].
	Score float64 `json:"score"`

	// Scores is the per-factor breakdown used to compute Score.
	Scores map[string]float64 `json:"scores,omitempty"`

	// Reasons are the matched-reason tags in evaluation order.
	Reasons []string `json:"reasons,omitempty"`

	// Reasoning is the joined human-readable explanation.
	Reasoning string `json:"reasoning"`
}

// CollectionAnalysis summarizes a user's collection for the ANALYZE flow.
type CollectionAnalysis struct {
	BottleCount  int            `json:"bottle_count"`
	SpiritCounts map[string]int `json:"spirit_counts"`
	BrandCounts  map[string]int `json:"brand_counts"`
	AvgPrice     float64        `json:"avg_price"`
	AvgProof     float64        `json:"avg_proof"`
}
