// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package recommend

import (
	"math"

	"github.com/BAXUSNFT/bob/internal/models"
)

// BuildProfile aggregates a user's owned bottles into a taste profile. Pure
// aggregation, no I/O: bottles without a product description are skipped,
// absent spirit or brand values are skipped individually, and only valid
// numeric prices and proofs contribute to the ranges. Always returns a
// usable (possibly all-zero) profile, never an error.
//
// Denominator asymmetry is deliberate and preserved from the upstream
// behavior: the price average divides by the number of price-bearing
// bottles, while the proof average divides by the total number of owned
// bottles that carried a product description.
func BuildProfile(owned []models.OwnedBottle) models.UserProfile {
	profile := models.UserProfile{
		SpiritTypeCounts: make(map[string]int),
		BrandCounts:      make(map[string]int),
	}

	var (
		priceSum, proofSum     float64
		priceCount, proofCount int
	)
	priceMin, priceMax := math.MaxFloat64, 0.0
	proofMin, proofMax := math.MaxFloat64, 0.0

	for _, bottle := range owned {
		p := bottle.Product
		if p == nil {
			continue
		}
		profile.BottleCount++

		if p.Spirit != "" {
			profile.SpiritTypeCounts[p.Spirit]++
		}
		if p.Brand != "" {
			profile.BrandCounts[p.Brand]++
		}

		if v := numericValue(p.AverageMSRP); v != nil {
			priceMin = math.Min(priceMin, *v)
			priceMax = math.Max(priceMax, *v)
			priceSum += *v
			priceCount++
		}
		if v := numericValue(p.Proof); v != nil {
			proofMin = math.Min(proofMin, *v)
			proofMax = math.Max(proofMax, *v)
			proofSum += *v
			proofCount++
		}
	}

	if priceCount > 0 {
		profile.PriceRange = models.Range{
			Min: priceMin,
			Max: priceMax,
			Avg: priceSum / float64(priceCount),
		}
	}
	if proofCount > 0 {
		profile.ProofRange = models.Range{
			Min: proofMin,
			Max: proofMax,
			// Total bottle count as denominator, not proofCount.
			Avg: proofSum / float64(profile.BottleCount),
		}
	}

	return profile
}

// numericValue returns the pointed-to value if it is a usable number,
// nil otherwise.
func numericValue(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}
