// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package catalog holds the immutable candidate bottle set for the process
// lifetime and resolves bottles by id and fuzzy name queries.
//
// A Store is built once from the loader's output and never mutated. Reloads
// construct a fresh Store and atomically swap the reference held by the
// engine, so concurrent readers never observe a half-built catalog.
package catalog

import (
	"strings"

	"github.com/BAXUSNFT/bob/internal/logging"
	"github.com/BAXUSNFT/bob/internal/models"
)

// Store is the immutable candidate set. Safe for concurrent readers.
type Store struct {
	bottles []models.BottleRecord
	byID    map[int]int // id -> index in bottles
}

// NewStore builds a Store from raw loaded records, rejecting any record
// missing id, name, or spirit type. An empty catalog is a valid, if useless,
// state; load problems are logged rather than raised.
func NewStore(records []models.BottleRecord) *Store {
	s := &Store{
		bottles: make([]models.BottleRecord, 0, len(records)),
		byID:    make(map[int]int, len(records)),
	}

	dropped := 0
	for _, rec := range records {
		if !rec.Valid() {
			dropped++
			continue
		}
		s.byID[rec.ID] = len(s.bottles)
		s.bottles = append(s.bottles, rec)
	}

	if dropped > 0 {
		logging.Warn().
			Int("dropped", dropped).
			Int("loaded", len(s.bottles)).
			Msg("catalog records rejected at load time")
	}

	return s
}

// Len returns the number of bottles in the catalog.
func (s *Store) Len() int {
	return len(s.bottles)
}

// Bottles returns the candidate set in catalog order. The returned slice is
// shared and must not be modified.
func (s *Store) Bottles() []models.BottleRecord {
	return s.bottles
}

// FindByID returns the bottle with the given id.
func (s *Store) FindByID(id int) (models.BottleRecord, bool) {
	if i, ok := s.byID[id]; ok {
		return s.bottles[i], true
	}
	return models.BottleRecord{}, false
}

// IndexOf returns the catalog position of the bottle with the given id.
func (s *Store) IndexOf(id int) (int, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// FindByName resolves a free-text bottle query against the catalog. Matching
// is case-insensitive and punctuation-normalized, attempted in order:
// exact normalized name equality, then substring/brand/prefix matches.
// The first match in catalog order wins.
func (s *Store) FindByName(query string) (models.BottleRecord, bool) {
	q := NormalizeName(query)
	if q == "" {
		return models.BottleRecord{}, false
	}

	for _, b := range s.bottles {
		if NormalizeName(b.Name) == q {
			return b, true
		}
	}

	for _, b := range s.bottles {
		name := NormalizeName(b.Name)
		brand := NormalizeName(b.Brand)
		switch {
		case strings.Contains(name, q) || strings.Contains(q, name):
			return b, true
		case brand != "" && brand == q:
			return b, true
		case strings.HasPrefix(name, q) || (brand != "" && strings.HasPrefix(brand, q)):
			return b, true
		}
	}

	return models.BottleRecord{}, false
}

// NormalizeName lowercases a bottle name or query, strips periods, commas,
// quotes, and apostrophes, and collapses runs of whitespace. Stripping
// apostrophes everywhere lets "blantons" resolve "Blanton's".
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer(".", "", ",", "", `"`, "", "'", "").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
