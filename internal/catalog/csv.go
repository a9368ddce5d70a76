// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BAXUSNFT/bob/internal/logging"
	"github.com/BAXUSNFT/bob/internal/models"
)

// LoadCSV reads the bottle dataset from path and returns the parsed records.
// An unreadable file logs an error and returns an empty slice; validation of
// individual records happens in NewStore.
func LoadCSV(path string) []models.BottleRecord {
	f, err := os.Open(path)
	if err != nil {
		logging.Error().Err(err).Str("path", path).Msg("bottle dataset not readable")
		return nil
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		logging.Error().Err(err).Str("path", path).Msg("bottle dataset parse failed")
		return nil
	}

	logging.Info().Int("bottles", len(records)).Str("path", path).Msg("bottle dataset loaded")
	return records
}

// ParseCSV parses bottle records from CSV data with a header row. Malformed
// numeric cells leave the field absent rather than failing the row; rows
// shorter than the header are padded with empty cells.
func ParseCSV(r io.Reader) ([]models.BottleRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []models.BottleRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip unparseable lines; the dataset has free-text cells.
			continue
		}

		rec := recordFromRow(header, row)
		records = append(records, rec)
	}

	return records, nil
}

func recordFromRow(header, row []string) models.BottleRecord {
	var rec models.BottleRecord

	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for i, col := range header {
		v := cell(i)
		if v == "" {
			continue
		}
		switch col {
		case "id":
			rec.ID, _ = strconv.Atoi(v)
		case "name":
			rec.Name = v
		case "brand":
			rec.Brand = v
		case "spirit_type", "spirit":
			rec.SpiritType = v
		case "region":
			rec.Region = v
		case "tasting_notes":
			rec.TastingNotes = splitNotes(v)
		case "proof":
			rec.Proof = parseOptionalFloat(v)
		case "avg_msrp":
			rec.AvgMSRP = parseOptionalFloat(v)
		case "popularity":
			rec.Popularity = parseFloat(v)
		case "wishlist_count":
			rec.WishlistCount = parseFloat(v)
		case "vote_count":
			rec.VoteCount = parseFloat(v)
		case "bar_count":
			rec.BarCount = parseFloat(v)
		}
	}

	return rec
}

func splitNotes(v string) []string {
	parts := strings.Split(v, ";")
	notes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			notes = append(notes, p)
		}
	}
	return notes
}

// parseOptionalFloat returns nil for cells that are empty, non-numeric, or
// negative, so scoring can distinguish "unknown" from a real value.
func parseOptionalFloat(v string) *float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil
	}
	return &f
}

func parseFloat(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
