// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package recommend

import (
	"math"
	"testing"

	"github.com/BAXUSNFT/bob/internal/catalog"
	"github.com/BAXUSNFT/bob/internal/models"
)

func TestDefaultSimilarWeights_SumToOne(t *testing.T) {
	t.Parallel()

	w := DefaultSimilarWeights()
	sum := w.Spirit + w.Proof + w.Price + w.Brand
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("similar weights sum = %v, want 1.0", sum)
	}
}

func TestFindSimilar_ExcludesTarget(t *testing.T) {
	t.Parallel()

	results := FindSimilar("buffalo trace", testStore(), DefaultSimilarWeights(), 25)

	if len(results) != 2 {
		t.Fatalf("FindSimilar() returned %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Bottle.ID == 1 {
			t.Error("target bottle appeared in its own similarity results")
		}
	}
}

func TestFindSimilar_UnknownName(t *testing.T) {
	t.Parallel()

	if results := FindSimilar("Pappy Van Winkle 23", testStore(), DefaultSimilarWeights(), 5); results != nil {
		t.Errorf("FindSimilar(unknown) = %v, want nil", results)
	}
}

func TestFindSimilar_RanksSameSpiritFirst(t *testing.T) {
	t.Parallel()

	// Target is the Bourbon at $30/90 proof; the other Bourbon at $45/100
	// must outrank the Scotch at $60/86.
	results := FindSimilar("buffalo trace", testStore(), DefaultSimilarWeights(), 2)

	if len(results) != 2 {
		t.Fatalf("FindSimilar() returned %d results, want 2", len(results))
	}
	if results[0].Bottle.ID != 2 {
		t.Errorf("first similar bottle = %d, want 2", results[0].Bottle.ID)
	}
}

func TestFindSimilar_IdenticalAttributesScoreOne(t *testing.T) {
	t.Parallel()

	store := catalog.NewStore([]models.BottleRecord{
		{ID: 1, Name: "Original", Brand: "Same Brand", SpiritType: "Bourbon", Proof: fp(90), AvgMSRP: fp(40)},
		{ID: 2, Name: "Twin", Brand: "Same Brand", SpiritType: "Bourbon", Proof: fp(90), AvgMSRP: fp(40)},
	})

	results := FindSimilar("Original", store, DefaultSimilarWeights(), 1)
	if len(results) != 1 {
		t.Fatalf("FindSimilar() returned %d results", len(results))
	}
	if math.Abs(results[0].Score-1.0) > 1e-9 {
		t.Errorf("twin bottle score = %v, want 1.0", results[0].Score)
	}
	for factor, s := range results[0].Scores {
		if math.Abs(s-1.0) > 1e-9 {
			t.Errorf("factor %s = %v, want 1.0", factor, s)
		}
	}
}

func TestSimilarReasons(t *testing.T) {
	t.Parallel()

	results := FindSimilar("buffalo trace", testStore(), DefaultSimilarWeights(), 2)

	for _, r := range results {
		if len(r.Reasons) == 0 {
			t.Fatalf("bottle %d has no reasons", r.Bottle.ID)
		}
		// The flavor profile clause is always the final reason.
		if last := r.Reasons[len(r.Reasons)-1]; last != "a complementary flavor profile" {
			t.Errorf("bottle %d final reason = %q", r.Bottle.ID, last)
		}
	}

	// Four Roses: same spirit, proof within 10, price within 20 of the target.
	var fourRoses models.RankedResult
	for _, r := range results {
		if r.Bottle.ID == 2 {
			fourRoses = r
		}
	}
	want := "the same spirit type, a similar proof, a comparable price point and a complementary flavor profile"
	if got := fourRoses.Reasoning; got != want {
		t.Errorf("Four Roses reasoning = %q, want %q", got, want)
	}
}

func TestClosenessScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *float64
		want float64
	}{
		{"identical", fp(90), fp(90), 1},
		{"25 apart", fp(90), fp(115), 0.75},
		{"100 apart", fp(0), fp(100), 0},
		{"beyond 100 clamps to zero", fp(10), fp(200), 0},
		{"left unknown", nil, fp(90), 0},
		{"right unknown", fp(90), nil, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := closenessScore(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("closenessScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJoinWithAnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"one"}, "one"},
		{[]string{"one", "two"}, "one and two"},
		{[]string{"one", "two", "three"}, "one, two and three"},
	}

	for _, tt := range tests {
		if got := joinWithAnd(tt.in); got != tt.want {
			t.Errorf("joinWithAnd(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
