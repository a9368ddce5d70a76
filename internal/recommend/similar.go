// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/BAXUSNFT/bob/internal/catalog"
	"github.com/BAXUSNFT/bob/internal/models"
)

// SimilarWeights configures the bottle-to-bottle similarity blend.
type SimilarWeights struct {
	Spirit float64 `koanf:"spirit"`
	Proof  float64 `koanf:"proof"`
	Price  float64 `koanf:"price"`
	Brand  float64 `koanf:"brand"`
}

// DefaultSimilarWeights returns the standard similarity blend.
func DefaultSimilarWeights() SimilarWeights {
	return SimilarWeights{
		Spirit: 0.35,
		Proof:  0.25,
		Price:  0.25,
		Brand:  0.15,
	}
}

// Proximity thresholds for the similarity reason tags.
const (
	proofReasonWindow = 10
	priceReasonWindow = 20
)

// FindSimilar resolves name against the catalog and ranks every other bottle
// by weighted similarity to it, returning up to topN results. An unresolved
// name yields an empty result, which the caller interprets as "unknown
// bottle" rather than an error. The target never appears in the result set.
func FindSimilar(name string, store *catalog.Store, weights SimilarWeights, topN int) []models.RankedResult {
	target, ok := store.FindByName(name)
	if !ok || topN <= 0 {
		return nil
	}

	results := make([]models.RankedResult, 0, store.Len())
	for _, b := range store.Bottles() {
		if b.ID == target.ID {
			continue
		}

		scores := map[string]float64{
			"spirit": matchScore(b.SpiritType, target.SpiritType),
			"proof":  closenessScore(b.Proof, target.Proof),
			"price":  closenessScore(b.AvgMSRP, target.AvgMSRP),
			"brand":  matchScore(b.Brand, target.Brand),
		}

		score := weights.Spirit*scores["spirit"] +
			weights.Proof*scores["proof"] +
			weights.Price*scores["price"] +
			weights.Brand*scores["brand"]

		results = append(results, models.RankedResult{
			Bottle: b,
			Score:  score,
			Scores: scores,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topN {
		results = results[:topN]
	}

	for i := range results {
		results[i].Reasons = similarReasons(results[i].Bottle, target)
		results[i].Reasoning = joinWithAnd(results[i].Reasons)
	}

	return results
}

// similarReasons lists which similarity factors applied, with the flavor
// profile included as the catch-all final clause.
func similarReasons(b, target models.BottleRecord) []string {
	var reasons []string

	if b.SpiritType == target.SpiritType {
		reasons = append(reasons, "the same spirit type")
	}
	if within(b.Proof, target.Proof, proofReasonWindow) {
		reasons = append(reasons, "a similar proof")
	}
	if within(b.AvgMSRP, target.AvgMSRP, priceReasonWindow) {
		reasons = append(reasons, "a comparable price point")
	}
	if b.Brand == target.Brand {
		reasons = append(reasons, "the same brand")
	}
	reasons = append(reasons, "a complementary flavor profile")

	return reasons
}

// joinWithAnd joins clauses with commas and "and" before the last item.
func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// matchScore is 1 for an exact attribute match, 0 otherwise.
func matchScore(a, b string) float64 {
	if a == b {
		return 1
	}
	return 0
}

// closenessScore is a linear falloff over a 100-point distance between two
// known values; 0 when either side is unknown.
func closenessScore(a, b *float64) float64 {
	if a == nil || b == nil || math.IsNaN(*a) || math.IsNaN(*b) {
		return 0
	}
	return math.Max(0, 1-math.Abs(*a-*b)/100)
}

func within(a, b *float64, window float64) bool {
	if a == nil || b == nil || math.IsNaN(*a) || math.IsNaN(*b) {
		return false
	}
	return math.Abs(*a-*b) <= window
}
