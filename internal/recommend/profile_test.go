// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package recommend

import (
	"math"
	"testing"

	"github.com/BAXUSNFT/bob/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestBuildProfile_Empty(t *testing.T) {
	t.Parallel()

	profile := BuildProfile(nil)

	if profile.BottleCount != 0 {
		t.Errorf("BottleCount = %d, want 0", profile.BottleCount)
	}
	if len(profile.SpiritTypeCounts) != 0 || len(profile.BrandCounts) != 0 {
		t.Errorf("counts not empty: %v / %v", profile.SpiritTypeCounts, profile.BrandCounts)
	}
	if profile.PriceRange != (models.Range{}) || profile.ProofRange != (models.Range{}) {
		t.Errorf("ranges not zero: %+v / %+v", profile.PriceRange, profile.ProofRange)
	}
}

func TestBuildProfile_SkipsMissingProduct(t *testing.T) {
	t.Parallel()

	owned := []models.OwnedBottle{
		{ID: 1, Product: nil},
		{ID: 2, Product: &models.Product{Name: "Buffalo Trace", Brand: "Buffalo Trace", Spirit: "Bourbon", Proof: fp(90), AverageMSRP: fp(30)}},
	}

	profile := BuildProfile(owned)

	if profile.BottleCount != 1 {
		t.Errorf("BottleCount = %d, want 1", profile.BottleCount)
	}
	if profile.SpiritTypeCounts["Bourbon"] != 1 {
		t.Errorf("SpiritTypeCounts = %v", profile.SpiritTypeCounts)
	}
}

func TestBuildProfile_Counts(t *testing.T) {
	t.Parallel()

	owned := []models.OwnedBottle{
		{ID: 1, Product: &models.Product{Spirit: "Bourbon", Brand: "Buffalo Trace"}},
		{ID: 2, Product: &models.Product{Spirit: "Bourbon", Brand: "Four Roses"}},
		{ID: 3, Product: &models.Product{Spirit: "Scotch", Brand: "Highland Park"}},
		{ID: 4, Product: &models.Product{Spirit: "", Brand: ""}}, // counted, contributes nothing
	}

	profile := BuildProfile(owned)

	if profile.BottleCount != 4 {
		t.Errorf("BottleCount = %d, want 4", profile.BottleCount)
	}
	if profile.SpiritTypeCounts["Bourbon"] != 2 || profile.SpiritTypeCounts["Scotch"] != 1 {
		t.Errorf("SpiritTypeCounts = %v", profile.SpiritTypeCounts)
	}
	if len(profile.BrandCounts) != 3 {
		t.Errorf("BrandCounts = %v", profile.BrandCounts)
	}
}

// The price average divides by the number of price-bearing bottles, while the
// proof average divides by the total bottle count.
func TestBuildProfile_AverageDenominators(t *testing.T) {
	t.Parallel()

	owned := []models.OwnedBottle{
		{ID: 1, Product: &models.Product{Spirit: "Bourbon", Proof: fp(90), AverageMSRP: fp(30)}},
		{ID: 2, Product: &models.Product{Spirit: "Bourbon", Proof: fp(110)}}, // no price
		{ID: 3, Product: &models.Product{Spirit: "Bourbon"}},                 // no price, no proof
	}

	profile := BuildProfile(owned)

	// One price-bearing bottle: avg = 30/1.
	if got := profile.PriceRange.Avg; got != 30 {
		t.Errorf("PriceRange.Avg = %v, want 30", got)
	}
	// Proof sum 200 over all 3 counted bottles.
	if got := profile.ProofRange.Avg; math.Abs(got-200.0/3.0) > 1e-9 {
		t.Errorf("ProofRange.Avg = %v, want %v", got, 200.0/3.0)
	}
	if profile.ProofRange.Min != 90 || profile.ProofRange.Max != 110 {
		t.Errorf("ProofRange = %+v", profile.ProofRange)
	}
}

func TestBuildProfile_RejectsNonFiniteValues(t *testing.T) {
	t.Parallel()

	owned := []models.OwnedBottle{
		{ID: 1, Product: &models.Product{Spirit: "Bourbon", Proof: fp(math.NaN()), AverageMSRP: fp(math.Inf(1))}},
		{ID: 2, Product: &models.Product{Spirit: "Bourbon", Proof: fp(100), AverageMSRP: fp(50)}},
	}

	profile := BuildProfile(owned)

	if profile.PriceRange.Min != 50 || profile.PriceRange.Max != 50 {
		t.Errorf("PriceRange = %+v, want [50, 50]", profile.PriceRange)
	}
	if profile.ProofRange.Min != 100 || profile.ProofRange.Max != 100 {
		t.Errorf("ProofRange = %+v, want [100, 100]", profile.ProofRange)
	}
}
