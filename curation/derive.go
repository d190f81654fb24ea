// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package curation

import (
	"fmt"
	"math"
	"regexp"

	"github.com/platemap/platemap/record"
	"github.com/uber/h3-go/v4"
)

var zip5Pattern = regexp.MustCompile(`\b(\d{5})\b`)

// extractZIP5 pulls the first 5-digit group out of a ZIP-ish string.
func extractZIP5(s string) string {
	m := zip5Pattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}

	return m[1]
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)

	return math.Round(v*scale) / scale
}

var priceLabels = map[int]string{
	0: "Free",
	1: "$",
	2: "$$",
	3: "$$$",
	4: "$$$$",
}

// PriceLabel maps a cleaned price level to its display label.
func PriceLabel(level *int) string {
	if level == nil {
		return "Unknown"
	}

	if label, ok := priceLabels[*level]; ok {
		return label
	}

	return "Unknown"
}

// RatingCategory buckets a rating into three bands, lower bound
// inclusive: [0,3) Below Average, [3,4) Good, [4,5] Excellent. A rating
// of exactly 3.0 is "Good".
func RatingCategory(rating *float64) string {
	switch {
	case rating == nil:
		return "Unknown"
	case *rating < 3.0:
		return "Below Average"
	case *rating < 4.0:
		return "Good"
	default:
		return "Excellent"
	}
}

// MarketSaturation blends local density and average rating into a [0,1]
// score: 0.6 × min(count/20, 1) + 0.4 × (avg/5), rounded to 3 decimals.
func MarketSaturation(restaurantsInZip int, zipAvgRating float64) float64 {
	density := math.Min(float64(restaurantsInZip)/20, 1)

	return round(0.6*density+0.4*(zipAvgRating/5), 3)
}

// MarketOpportunity labels a ZIP's business attractiveness. Rules are
// evaluated in order, first match wins: a ZIP can satisfy both the high
// and moderate rule and must come out "High Value Target".
func MarketOpportunity(restaurantsInZip *int, zipAvgRating *float64) string {
	if restaurantsInZip == nil || zipAvgRating == nil {
		return "Unknown"
	}

	n, avg := *restaurantsInZip, *zipAvgRating

	switch {
	case avg >= 4.0 && n <= 10:
		return "High Value Target"
	case avg >= 3.5 && n <= 15:
		return "Moderate Value Target"
	case n >= 30:
		return "Saturated Market"
	default:
		return "Standard Market"
	}
}

type groupStats struct {
	count     int
	ratingSum float64
	rated     int
}

func (g *groupStats) avgRating() *float64 {
	if g.rated == 0 {
		return nil
	}

	return record.Float(round(g.ratingSum/float64(g.rated), 2))
}

func groupBy(rows []record.Restaurant, key func(*record.Restaurant) string) map[string]*groupStats {
	groups := make(map[string]*groupStats)

	for i := range rows {
		k := key(&rows[i])
		if k == "" {
			continue
		}

		g := groups[k]
		if g == nil {
			g = &groupStats{}
			groups[k] = g
		}

		g.count++

		if rows[i].Rating != nil {
			g.ratingSum += *rows[i].Rating
			g.rated++
		}
	}

	return groups
}

// derive appends the analytic columns in place. It only runs on rows
// that already passed the cleaning stages.
func (c *Cleaner) derive(rows []record.Restaurant) error {
	zips := groupBy(rows, func(r *record.Restaurant) string { return r.ZIPCode })
	hoods := groupBy(rows, func(r *record.Restaurant) string { return r.Neighborhood })

	for i := range rows {
		r := &rows[i]

		r.PriceLabel = PriceLabel(r.PriceLevel)
		r.RatingCategory = RatingCategory(r.Rating)
		r.ReviewVolume = c.options.Volume.Label(r.ReviewCount)

		if g := zips[r.ZIPCode]; g != nil {
			r.RestaurantsInZip = record.Int(g.count)
			r.ZipAvgRating = g.avgRating()
		}

		if g := hoods[r.Neighborhood]; g != nil {
			r.RestaurantsInNeighborhood = record.Int(g.count)
			r.NeighborhoodAvgRating = g.avgRating()
		}

		if r.RestaurantsInZip != nil && r.ZipAvgRating != nil {
			r.MarketSaturationIndex = record.Float(MarketSaturation(*r.RestaurantsInZip, *r.ZipAvgRating))
		}

		r.MarketOpportunity = MarketOpportunity(r.RestaurantsInZip, r.ZipAvgRating)

		if p, ok := r.Point(); ok {
			latLng := h3.NewLatLng(p.Lat, p.Lng)

			for _, res := range []int{7, 8} {
				cell, err := h3.LatLngToCell(latLng, res)
				if err != nil {
					return fmt.Errorf("computing h3 cell at res %d for %q: %w", res, r.Name, err)
				}

				if res == 7 {
					r.H3Res7 = uint64(cell)
				} else {
					r.H3Res8 = uint64(cell)
				}
			}
		}
	}

	return nil
}
