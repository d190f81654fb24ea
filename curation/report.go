// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package curation

import (
	"fmt"
	"io"
	"sort"

	"github.com/platemap/platemap/record"
)

type labelCount struct {
	label string
	count int
}

func sortedCounts(counts map[string]int) []labelCount {
	out := make([]labelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, labelCount{label, count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}

		return out[i].label < out[j].label
	})

	return out
}

// WriteReport prints a human-readable summary of a cleaned dataset:
// retention, rating stats, coverage, and the distribution of the derived
// labels. Intended for the end of a clean run.
func WriteReport(w io.Writer, rows []record.Restaurant, metrics *Metrics) {
	fmt.Fprintf(w, "\n=== Dataset summary ===\n")
	fmt.Fprintf(w, "Rows: %d (from %d collected, %.1f%% retained)\n",
		metrics.FinalRows, metrics.InitialRows, retention(metrics))

	var ratingSum float64

	rated := 0
	priced := 0
	zips := make(map[string]int)
	hoods := make(map[string]int)
	prices := make(map[string]int)
	opportunities := make(map[string]int)

	for i := range rows {
		r := &rows[i]

		if r.Rating != nil {
			ratingSum += *r.Rating
			rated++
		}

		if r.PriceLevel != nil {
			priced++
		}

		zips[r.ZIPCode]++

		if r.Neighborhood != "" {
			hoods[r.Neighborhood]++
		}

		prices[r.PriceLabel]++
		opportunities[r.MarketOpportunity]++
	}

	if rated > 0 {
		fmt.Fprintf(w, "Average rating: %.2f (%d rated rows)\n", ratingSum/float64(rated), rated)
	}

	fmt.Fprintf(w, "Coverage: %d ZIP codes, %d neighborhoods\n", len(zips), len(hoods))

	if n := len(rows); n > 0 {
		fmt.Fprintf(w, "Missing data: %.1f%% unrated, %.1f%% unpriced\n",
			100*float64(n-rated)/float64(n),
			100*float64(n-priced)/float64(n))
	}

	fmt.Fprintf(w, "\nPrice levels:\n")

	for _, lc := range sortedCounts(prices) {
		fmt.Fprintf(w, "  %-24s %5d\n", lc.label, lc.count)
	}

	fmt.Fprintf(w, "\nMarket opportunity:\n")

	for _, lc := range sortedCounts(opportunities) {
		fmt.Fprintf(w, "  %-24s %5d\n", lc.label, lc.count)
	}

	fmt.Fprintf(w, "\nDensest ZIP codes:\n")

	top := sortedCounts(zips)
	if len(top) > 10 {
		top = top[:10]
	}

	for _, lc := range top {
		fmt.Fprintf(w, "  %-24s %5d\n", lc.label, lc.count)
	}
}

func retention(m *Metrics) float64 {
	if m.InitialRows == 0 {
		return 0
	}

	return 100 * float64(m.FinalRows) / float64(m.InitialRows)
}
