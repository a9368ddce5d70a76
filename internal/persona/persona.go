// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package persona renders structured recommendation results as Bob-voice
// chat text. Formatting is purely derivative of the ranked results and
// analyses it receives; nothing here affects scoring or ordering.
package persona

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BAXUSNFT/bob/internal/models"
)

// Stock replies for flows that carry no structured data.
const (
	emptyCollectionAnalyze = "*adjusts glasses* Well, it seems your virtual bar is as empty as my ex-wife left our liquor cabinet. Add some bottles to your collection in BoozApp, and I'll give you a proper reading of your taste profile."

	emptyCollectionRecommend = "*adjusts glasses* I'd love to recommend something that complements your collection, gorgeous, but it seems you haven't added any bottles yet. Add some to your BoozApp collection, and I'll work my magic."

	errorReply = "*adjusts tie nervously* Seems I'm having trouble accessing that information right now. Let's chat about something else while I sort this out, gorgeous."

	generalReply = "*leans on the bar* Happy to talk whiskey any time. Ask me to analyze your collection, recommend a bottle, or tell you about one you've been eyeing."
)

// EmptyCollectionAnalyze is the reply for an ANALYZE request with no bottles.
func EmptyCollectionAnalyze() string { return emptyCollectionAnalyze }

// EmptyCollectionRecommend is the reply for a RECOMMEND request with no bottles.
func EmptyCollectionRecommend() string { return emptyCollectionRecommend }

// ErrorReply is the in-character reply when a flow fails unexpectedly.
func ErrorReply() string { return errorReply }

// GeneralReply is the reply for general whiskey talk.
func GeneralReply() string { return generalReply }

// Analysis formats a collection analysis: spirit breakdown sorted by count,
// top three brands, and the price/proof averages.
func Analysis(analysis models.CollectionAnalysis) string {
	if analysis.BottleCount == 0 {
		return emptyCollectionAnalyze
	}

	var b strings.Builder
	b.WriteString("*studies your collection thoughtfully, swirling whiskey in glass*\n\n")
	b.WriteString("Well now, let's take a look at what you've got here...\n\n")
	fmt.Fprintf(&b, "Your collection has %d bottles.\n\n", analysis.BottleCount)

	b.WriteString("**Spirit breakdown:**\n")
	for _, entry := range sortedCounts(analysis.SpiritCounts) {
		pct := float64(entry.count) / float64(analysis.BottleCount) * 100
		fmt.Fprintf(&b, "- %s: %d bottles (%.1f%%)\n", entry.name, entry.count, pct)
	}

	b.WriteString("\n**Your top brands:**\n")
	brands := sortedCounts(analysis.BrandCounts)
	if len(brands) > 3 {
		brands = brands[:3]
	}
	for _, entry := range brands {
		fmt.Fprintf(&b, "- %s: %d bottles\n", entry.name, entry.count)
	}

	fmt.Fprintf(&b, "\n**Average price:** $%.2f", analysis.AvgPrice)
	fmt.Fprintf(&b, "\n**Average proof:** %.1f", analysis.AvgProof)

	b.WriteString("\n\n*takes a sip* Based on what I'm seeing, you've got a certain style developing. Would you like me to recommend some bottles that would complement what you've already got?")

	return b.String()
}

// Recommendations formats a ranked recommendation list as a numbered
// rundown with price, proof, type, and the matched reasons.
func Recommendations(results []models.RankedResult) string {
	if len(results) == 0 {
		return emptyCollectionRecommend
	}

	var b strings.Builder
	b.WriteString("*studies your collection intently for a moment, then smiles with confidence*\n\n")
	b.WriteString("Based on your collection, here are my recommendations:\n\n")

	for i, rec := range results {
		fmt.Fprintf(&b, "%d. **%s**%s\n", i+1, rec.Bottle.Name, priceTag(rec.Bottle))
		fmt.Fprintf(&b, "   %sType: %s\n", proofTag(rec.Bottle), rec.Bottle.SpiritType)
		fmt.Fprintf(&b, "   Why: %s\n\n", rec.Reasoning)
	}

	b.WriteString("*takes a slow sip from flask* Any of these catch your eye, gorgeous? I'm happy to tell you more about any of them or suggest alternatives if these aren't quite what you're looking for.")

	return b.String()
}

// Similar formats a similar-bottle list for a resolved target. The caller
// handles the unresolved case.
func Similar(target models.BottleRecord, results []models.RankedResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("*scratches head* %s stands alone in my book. Nothing in the catalog comes close enough to call a sibling.", target.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*eyes light up* If you're a fan of %s, here's what I'd reach for next:\n\n", target.Name)

	for i, rec := range results {
		fmt.Fprintf(&b, "%d. **%s**%s\n", i+1, rec.Bottle.Name, priceTag(rec.Bottle))
		fmt.Fprintf(&b, "   Shares %s\n\n", rec.Reasoning)
	}

	b.WriteString("*slides the glass over* Want the full story on any of these?")

	return b.String()
}

// UnknownBottle is the reply when a bottle name resolves to nothing.
func UnknownBottle(name string) string {
	return fmt.Sprintf("*squints at the label* Can't say I've come across %q in my travels. Give me the full name on the bottle and I'll see what I can dig up.", name)
}

// BottleInfo formats a single bottle's details, with textually similar
// bottles mentioned when available.
func BottleInfo(bottle models.BottleRecord, neighbors []models.RankedResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*eyes light up* Ah, %s.", bottle.Name)
	if bottle.SpiritType != "" {
		fmt.Fprintf(&b, " A %s", bottle.SpiritType)
		if bottle.Region != "" {
			fmt.Fprintf(&b, " out of %s", bottle.Region)
		}
		b.WriteString(".")
	}
	if bottle.Proof != nil {
		fmt.Fprintf(&b, " Bottled at %.0f proof", *bottle.Proof)
		if bottle.AvgMSRP != nil {
			fmt.Fprintf(&b, ", usually around $%.0f", *bottle.AvgMSRP)
		}
		b.WriteString(".")
	}
	if len(bottle.TastingNotes) > 0 {
		fmt.Fprintf(&b, " Expect %s.", strings.Join(bottle.TastingNotes, ", "))
	}

	if len(neighbors) > 0 {
		names := make([]string, 0, len(neighbors))
		for _, n := range neighbors {
			names = append(names, n.Bottle.Name)
		}
		fmt.Fprintf(&b, "\n\nIf that profile speaks to you, you might also look at %s.", strings.Join(names, ", "))
	}

	b.WriteString("\n\n*adjusts tie* Anything else you'd like to know about? I've got stories and recommendations for days.")

	return b.String()
}

type countEntry struct {
	name  string
	count int
}

// sortedCounts orders histogram entries by count descending, name ascending
// on ties, so output is deterministic regardless of map iteration order.
func sortedCounts(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for name, count := range m {
		entries = append(entries, countEntry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

func priceTag(b models.BottleRecord) string {
	if b.AvgMSRP == nil {
		return ""
	}
	return fmt.Sprintf(" - $%.0f", *b.AvgMSRP)
}

func proofTag(b models.BottleRecord) string {
	if b.Proof == nil {
		return ""
	}
	return fmt.Sprintf("Proof: %.0f, ", *b.Proof)
}
