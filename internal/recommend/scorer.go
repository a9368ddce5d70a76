// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/BAXUSNFT/bob/internal/catalog"
	"github.com/BAXUSNFT/bob/internal/models"
)

// fallbackReason is emitted when no specific reason tag matched.
const fallbackReason = "a well-balanced choice based on your collection"

// popularReasonThreshold is the popularity count above which a bottle earns
// the community-favorite reason tag.
const popularReasonThreshold = 10000

// Weights configures the recommendation score blend. The components are each
// in [0, 1], so as long as the weights sum to 1 the final score is a convex
// combination and stays in [0, 1].
type Weights struct {
	Spirit     float64 `koanf:"spirit"`
	Brand      float64 `koanf:"brand"`
	Price      float64 `koanf:"price"`
	Proof      float64 `koanf:"proof"`
	Popularity float64 `koanf:"popularity"`
	Community  float64 `koanf:"community"`
}

// DefaultWeights returns the standard recommendation blend.
func DefaultWeights() Weights {
	return Weights{
		Spirit:     0.20,
		Brand:      0.15,
		Price:      0.15,
		Proof:      0.15,
		Popularity: 0.15,
		Community:  0.20,
	}
}

// Validate checks that the weights form a convex combination.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Spirit, w.Brand, w.Price, w.Proof, w.Popularity, w.Community} {
		if v < 0 {
			return fmt.Errorf("recommendation weights must be non-negative")
		}
	}
	sum := w.Spirit + w.Brand + w.Price + w.Proof + w.Popularity + w.Community
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("recommendation weights must sum to 1.0, got %g", sum)
	}
	return nil
}

// Recommend ranks the full catalog against a user profile and returns up to
// topN results, sorted by non-increasing score with catalog-order tie-breaks.
// An empty catalog yields an empty result; an all-zero profile degrades to a
// popularity-driven ranking rather than failing.
func Recommend(profile models.UserProfile, store *catalog.Store, weights Weights, topN int) []models.RankedResult {
	bottles := store.Bottles()
	if len(bottles) == 0 || topN <= 0 {
		return nil
	}

	maxSpirit := maxCount(profile.SpiritTypeCounts)
	maxBrand := maxCount(profile.BrandCounts)

	results := make([]models.RankedResult, 0, len(bottles))
	for _, b := range bottles {
		scores := map[string]float64{
			"spirit":     ratioScore(profile.SpiritTypeCounts[b.SpiritType], maxSpirit),
			"brand":      ratioScore(profile.BrandCounts[b.Brand], maxBrand),
			"price":      rangeScore(b.AvgMSRP, profile.PriceRange),
			"proof":      rangeScore(b.Proof, profile.ProofRange),
			"popularity": logDamped(b.Popularity, 5),
			"community": (logDamped(b.WishlistCount, 4) +
				logDamped(b.VoteCount, 4) +
				logDamped(b.BarCount, 4)) / 3,
		}

		score := weights.Spirit*scores["spirit"] +
			weights.Brand*scores["brand"] +
			weights.Price*scores["price"] +
			weights.Proof*scores["proof"] +
			weights.Popularity*scores["popularity"] +
			weights.Community*scores["community"]

		results = append(results, models.RankedResult{
			Bottle: b,
			Score:  score,
			Scores: scores,
		})
	}

	// Stable sort keeps catalog order on ties for deterministic output.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topN {
		results = results[:topN]
	}

	for i := range results {
		results[i].Reasons = recommendReasons(results[i].Bottle, profile)
		results[i].Reasoning = strings.Join(results[i].Reasons, ", ")
	}

	return results
}

// recommendReasons re-checks the scoring factors in fixed order and emits a
// tag per match. Purely derivative of already-computed booleans; does not
// affect ranking.
func recommendReasons(b models.BottleRecord, profile models.UserProfile) []string {
	var reasons []string

	if profile.SpiritTypeCounts[b.SpiritType] > 0 {
		reasons = append(reasons, fmt.Sprintf("matches your preference for %s", b.SpiritType))
	}
	if profile.BrandCounts[b.Brand] > 0 {
		reasons = append(reasons, fmt.Sprintf("from your favorite brand %s", b.Brand))
	}
	if b.AvgMSRP != nil && profile.PriceRange.Contains(*b.AvgMSRP) {
		reasons = append(reasons, "fits your price range")
	}
	if b.Proof != nil && profile.ProofRange.Contains(*b.Proof) {
		reasons = append(reasons, "matches your preferred proof range")
	}
	if b.Popularity > popularReasonThreshold {
		reasons = append(reasons, "a community favorite")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, fallbackReason)
	}
	return reasons
}

// ratioScore is count over the histogram maximum, with the denominator
// floored to 1 so an empty profile scores 0 instead of dividing by zero.
func ratioScore(count, maxCount int) float64 {
	if maxCount < 1 {
		maxCount = 1
	}
	return float64(count) / float64(maxCount)
}

// rangeScore is 1.0 for a value inside the range, a linear falloff around
// the range average outside it, and 0 when the value is unknown. The average
// is floored to 1 to avoid division by zero on empty ranges.
func rangeScore(v *float64, r models.Range) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	if r.Contains(*v) {
		return 1
	}
	avg := r.Avg
	if avg < 1 {
		avg = 1
	}
	return math.Max(0, 1-math.Abs(*v-avg)/avg)
}

// logDamped maps a non-negative count to [0, 1] on a log10 scale. The
// divisor sets how many orders of magnitude saturate the score.
func logDamped(count float64, divisor float64) float64 {
	if math.IsNaN(count) || count < 0 {
		return 0
	}
	return math.Min(1, math.Log10(math.Max(1, count))/divisor)
}

func maxCount(m map[string]int) int {
	max := 0
	for _, c := range m {
		if c > max {
			max = c
		}
	}
	return max
}
