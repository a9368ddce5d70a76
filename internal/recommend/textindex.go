// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package recommend

import (
	"math"
	"strings"

	"github.com/BAXUSNFT/bob/internal/catalog"
	"github.com/BAXUSNFT/bob/internal/models"
)

// TextIndex is a TF-IDF model over bottle descriptive text, indexed by
// catalog position. Built once at catalog load time; read-only thereafter.
type TextIndex struct {
	store *catalog.Store

	// termFreq[i] maps term -> raw count within document i.
	termFreq []map[string]int
	// docFreq maps term -> number of documents containing it.
	docFreq map[string]int
	// docLen[i] is the token count of document i.
	docLen []int
}

// NewTextIndex builds the index over every bottle in the store.
func NewTextIndex(store *catalog.Store) *TextIndex {
	bottles := store.Bottles()
	idx := &TextIndex{
		store:    store,
		termFreq: make([]map[string]int, len(bottles)),
		docFreq:  make(map[string]int),
		docLen:   make([]int, len(bottles)),
	}

	for i, b := range bottles {
		tokens := tokenize(Document(b))
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		for term := range tf {
			idx.docFreq[term]++
		}
		idx.termFreq[i] = tf
		idx.docLen[i] = len(tokens)
	}

	return idx
}

// Document concatenates a bottle's descriptive fields into one text document.
func Document(b models.BottleRecord) string {
	parts := []string{b.Name, b.Brand, b.SpiritType, strings.Join(b.TastingNotes, " "), b.Region}
	return strings.Join(parts, " ")
}

// Similarity scores how much bottle b's text reads like bottle a's catalog
// document: the mean TF-IDF weight of b's tokens with respect to a's
// document. Returns 0 if either bottle is absent from the catalog.
// Asymmetric by construction; used only as one minor signal in aggregate.
func (idx *TextIndex) Similarity(a, b models.BottleRecord) float64 {
	ai, ok := idx.store.IndexOf(a.ID)
	if !ok {
		return 0
	}
	if _, ok := idx.store.IndexOf(b.ID); !ok {
		return 0
	}

	tokens := tokenize(Document(b))
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	for _, tok := range tokens {
		sum += idx.weight(tok, ai)
	}
	return sum / float64(len(tokens))
}

// weight is the TF-IDF weight of term within document docIdx.
func (idx *TextIndex) weight(term string, docIdx int) float64 {
	count := idx.termFreq[docIdx][term]
	if count == 0 {
		return 0
	}

	tf := float64(count)
	n := float64(len(idx.termFreq))
	df := float64(idx.docFreq[term])
	idf := math.Log(n/(1+df)) + 1

	return tf * idf
}

// tokenize splits text on whitespace, lowercased, dropping empty tokens.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
