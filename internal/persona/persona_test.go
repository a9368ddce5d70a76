// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package persona

import (
	"strings"
	"testing"

	"github.com/BAXUSNFT/bob/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestAnalysis_EmptyCollection(t *testing.T) {
	t.Parallel()

	got := Analysis(models.CollectionAnalysis{})
	if got != EmptyCollectionAnalyze() {
		t.Errorf("Analysis(empty) = %q, want the empty-collection reply", got)
	}
}

func TestAnalysis_Content(t *testing.T) {
	t.Parallel()

	got := Analysis(models.CollectionAnalysis{
		BottleCount:  4,
		SpiritCounts: map[string]int{"Bourbon": 3, "Scotch": 1},
		BrandCounts:  map[string]int{"Eagle Rare": 2, "Buffalo Trace": 1, "Macallan": 1},
		AvgPrice:     42.5,
		AvgProof:     97.25,
	})

	for _, want := range []string{
		"Your collection has 4 bottles.",
		"Bourbon: 3 bottles (75.0%)",
		"Scotch: 1 bottles (25.0%)",
		"Eagle Rare: 2 bottles",
		"**Average price:** $42.50",
		"**Average proof:** 97.2",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Analysis() missing %q\nfull reply:\n%s", want, got)
		}
	}

	// Deterministic ordering: counts descending.
	if strings.Index(got, "Bourbon") > strings.Index(got, "Scotch") {
		t.Error("spirit breakdown not ordered by count")
	}
}

func TestAnalysis_TopBrandsCapped(t *testing.T) {
	t.Parallel()

	got := Analysis(models.CollectionAnalysis{
		BottleCount:  5,
		SpiritCounts: map[string]int{"Bourbon": 5},
		BrandCounts:  map[string]int{"A": 5, "B": 4, "C": 3, "D": 2},
	})

	if strings.Contains(got, "- D:") {
		t.Error("brand list not capped at three entries")
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	results := []models.RankedResult{
		{
			Bottle:    models.BottleRecord{ID: 2, Name: "Four Roses Single Barrel", SpiritType: "Bourbon", Proof: fp(100), AvgMSRP: fp(45)},
			Reasoning: "matches your preference for Bourbon, fits your price range",
		},
	}

	got := Recommendations(results)

	for _, want := range []string{
		"1. **Four Roses Single Barrel** - $45",
		"Proof: 100, Type: Bourbon",
		"Why: matches your preference for Bourbon, fits your price range",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Recommendations() missing %q\nfull reply:\n%s", want, got)
		}
	}
}

func TestRecommendations_Empty(t *testing.T) {
	t.Parallel()

	if got := Recommendations(nil); got != EmptyCollectionRecommend() {
		t.Errorf("Recommendations(nil) = %q, want the empty-collection reply", got)
	}
}

func TestRecommendations_MissingNumerics(t *testing.T) {
	t.Parallel()

	got := Recommendations([]models.RankedResult{
		{Bottle: models.BottleRecord{ID: 9, Name: "Mystery Dram", SpiritType: "Rye"}, Reasoning: "a well-balanced choice based on your collection"},
	})

	if strings.Contains(got, "$") {
		t.Error("price tag rendered for a bottle without a price")
	}
	if strings.Contains(got, "Proof:") {
		t.Error("proof tag rendered for a bottle without a proof")
	}
}

func TestSimilar(t *testing.T) {
	t.Parallel()

	target := models.BottleRecord{ID: 1, Name: "Buffalo Trace"}
	results := []models.RankedResult{
		{Bottle: models.BottleRecord{ID: 2, Name: "Four Roses Single Barrel", AvgMSRP: fp(45)}, Reasoning: "the same spirit type and a complementary flavor profile"},
	}

	got := Similar(target, results)

	if !strings.Contains(got, "fan of Buffalo Trace") {
		t.Errorf("Similar() does not name the target:\n%s", got)
	}
	if !strings.Contains(got, "Shares the same spirit type and a complementary flavor profile") {
		t.Errorf("Similar() missing the shared-traits line:\n%s", got)
	}
}

func TestSimilar_NoResults(t *testing.T) {
	t.Parallel()

	got := Similar(models.BottleRecord{Name: "Oddball"}, nil)
	if !strings.Contains(got, "Oddball stands alone") {
		t.Errorf("Similar(no results) = %q", got)
	}
}

func TestUnknownBottle(t *testing.T) {
	t.Parallel()

	got := UnknownBottle("Pappy 23")
	if !strings.Contains(got, `"Pappy 23"`) {
		t.Errorf("UnknownBottle() does not quote the name: %q", got)
	}
}

func TestBottleInfo(t *testing.T) {
	t.Parallel()

	bottle := models.BottleRecord{
		ID: 1, Name: "Buffalo Trace", SpiritType: "Bourbon", Region: "Kentucky",
		Proof: fp(90), AvgMSRP: fp(30), TastingNotes: []string{"caramel", "vanilla"},
	}
	neighbors := []models.RankedResult{
		{Bottle: models.BottleRecord{Name: "Eagle Rare 10 Year"}},
	}

	got := BottleInfo(bottle, neighbors)

	for _, want := range []string{
		"Ah, Buffalo Trace.",
		"A Bourbon out of Kentucky.",
		"Bottled at 90 proof, usually around $30.",
		"Expect caramel, vanilla.",
		"you might also look at Eagle Rare 10 Year.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BottleInfo() missing %q\nfull reply:\n%s", want, got)
		}
	}
}

func TestBottleInfo_SparseRecord(t *testing.T) {
	t.Parallel()

	got := BottleInfo(models.BottleRecord{ID: 5, Name: "Bare Bones", SpiritType: "Rum"}, nil)

	if !strings.Contains(got, "Ah, Bare Bones.") {
		t.Errorf("BottleInfo() missing the name line:\n%s", got)
	}
	if strings.Contains(got, "Bottled at") || strings.Contains(got, "might also look at") {
		t.Errorf("BottleInfo() rendered sections with no data:\n%s", got)
	}
}
