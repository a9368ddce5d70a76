// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package catalog

import (
	"testing"

	"github.com/BAXUSNFT/bob/internal/models"
)

func testRecords() []models.BottleRecord {
	proof := func(v float64) *float64 { return &v }
	return []models.BottleRecord{
		{ID: 1, Name: "Buffalo Trace Bourbon", Brand: "Buffalo Trace", SpiritType: "Bourbon", Proof: proof(90), AvgMSRP: proof(30)},
		{ID: 2, Name: "Four Roses Single Barrel", Brand: "Four Roses", SpiritType: "Bourbon", Proof: proof(100), AvgMSRP: proof(45)},
		{ID: 3, Name: "Highland Park 12 Year", Brand: "Highland Park", SpiritType: "Scotch", Proof: proof(86), AvgMSRP: proof(60)},
		{ID: 4, Name: `Blanton's "Original" Single Barrel`, Brand: "Blanton's", SpiritType: "Bourbon"},
	}
}

func TestNewStore_RejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	records := append(testRecords(),
		models.BottleRecord{ID: 0, Name: "No ID", SpiritType: "Bourbon"},
		models.BottleRecord{ID: 5, Name: "", SpiritType: "Bourbon"},
		models.BottleRecord{ID: 6, Name: "No Spirit", SpiritType: ""},
	)

	store := NewStore(records)

	if got, want := store.Len(), 4; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if _, ok := store.FindByID(5); ok {
		t.Error("FindByID(5) found a record that should have been rejected")
	}
}

func TestStore_FindByID(t *testing.T) {
	t.Parallel()

	store := NewStore(testRecords())

	b, ok := store.FindByID(2)
	if !ok {
		t.Fatal("FindByID(2) not found")
	}
	if b.Name != "Four Roses Single Barrel" {
		t.Errorf("FindByID(2).Name = %q", b.Name)
	}

	if _, ok := store.FindByID(99); ok {
		t.Error("FindByID(99) should not be found")
	}
}

func TestStore_FindByName(t *testing.T) {
	t.Parallel()

	store := NewStore(testRecords())

	tests := []struct {
		name   string
		query  string
		wantID int
		wantOK bool
	}{
		{"exact match", "Buffalo Trace Bourbon", 1, true},
		{"case insensitive", "buffalo trace bourbon", 1, true},
		{"substring of catalog name", "four roses", 2, true},
		{"query contains catalog name", "that Buffalo Trace Bourbon everyone talks about", 1, true},
		{"brand equality", "highland park", 3, true},
		{"quoted punctuation normalized", "blantons original single barrel", 4, true},
		{"whitespace collapsed", "  Four   Roses  Single Barrel ", 2, true},
		{"unknown bottle", "Pappy Van Winkle 23", 0, false},
		{"empty query", "", 0, false},
		{"whitespace only", "   ", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, ok := store.FindByName(tt.query)
			if ok != tt.wantOK {
				t.Fatalf("FindByName(%q) ok = %v, want %v", tt.query, ok, tt.wantOK)
			}
			if ok && b.ID != tt.wantID {
				t.Errorf("FindByName(%q).ID = %d, want %d", tt.query, b.ID, tt.wantID)
			}
		})
	}
}

func TestStore_FindByName_ExactBeatsSubstring(t *testing.T) {
	t.Parallel()

	// "Eagle Rare 10" is a substring of "Eagle Rare 10 Double Oak" but the
	// exact normalized match must win regardless of catalog order.
	store := NewStore([]models.BottleRecord{
		{ID: 1, Name: "Eagle Rare 10 Double Oak", Brand: "Eagle Rare", SpiritType: "Bourbon"},
		{ID: 2, Name: "Eagle Rare 10", Brand: "Eagle Rare", SpiritType: "Bourbon"},
	})

	b, ok := store.FindByName("eagle rare 10")
	if !ok {
		t.Fatal("FindByName not found")
	}
	if b.ID != 2 {
		t.Errorf("FindByName resolved ID %d, want exact match 2", b.ID)
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Buffalo Trace", "buffalo trace"},
		{"  Maker's   Mark  ", "makers mark"},
		{`"Blanton's Original"`, "blantons original"},
		{"W.L. Weller, Special Reserve", "wl weller special reserve"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
