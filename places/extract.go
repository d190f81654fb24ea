// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/platemap/platemap/record"
	"github.com/platemap/platemap/utils/textutils"
)

var errEmptyPlace = errors.New("place has neither name nor address")

// priceLevels maps the API's enum to the 0..4 scale. Unknown or absent
// values stay absent, never zero: zero means "free", not "unpriced".
var priceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

// Matches 5-digit ZIPs, optionally with a +4 extension.
var zipPattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

// ExtractZIP returns the first 5-digit ZIP found in an address, or the
// empty string.
func ExtractZIP(address string) string {
	m := zipPattern.FindString(address)
	if m == "" {
		return ""
	}

	return m[:5]
}

// The API reports types like "mexican_restaurant"; the first entry more
// specific than a plain "restaurant" makes the better cuisine label.
func deriveCategory(p *Place) string {
	category := "Restaurant"
	if p.PrimaryTypeDisplayName != nil && p.PrimaryTypeDisplayName.Text != "" {
		category = p.PrimaryTypeDisplayName.Text
	}

	for _, t := range p.Types {
		lower := strings.ToLower(t)
		if lower == "restaurant" || lower == "food" || lower == "point_of_interest" || lower == "establishment" {
			continue
		}

		return textutils.TitleCase(strings.ReplaceAll(strings.TrimSuffix(lower, "_restaurant"), "_", " "))
	}

	return category
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)

	return math.Round(v*scale) / scale
}

// mapPlace flattens one raw hit into a restaurant record filed under the
// given area. The area's ZIP hint fills in when the address carries no
// usable ZIP. Failures skip the record, never the area.
func mapPlace(p *Place, area *Area) (record.Restaurant, error) {
	name := record.PlaceholderName
	if p.DisplayName != nil && strings.TrimSpace(p.DisplayName.Text) != "" {
		name = strings.TrimSpace(p.DisplayName.Text)
	}

	if name == record.PlaceholderName && p.FormattedAddress == "" {
		return record.Restaurant{}, errEmptyPlace
	}

	rec := record.Restaurant{
		Name:         name,
		Category:     deriveCategory(p),
		Neighborhood: area.Name,
		Address:      p.FormattedAddress,
	}

	if p.Rating != nil {
		rec.Rating = record.Float(round(*p.Rating, 1))
	}

	if p.UserRatingCount != nil && *p.UserRatingCount > 0 {
		rec.ReviewCount = *p.UserRatingCount
	}

	if level, ok := priceLevels[p.PriceLevel]; ok {
		rec.PriceLevel = record.Int(level)
	}

	if p.Location != nil {
		rec.Latitude = record.Float(round(p.Location.Latitude, 6))
		rec.Longitude = record.Float(round(p.Location.Longitude, 6))
	}

	rec.ZIPCode = ExtractZIP(p.FormattedAddress)
	if rec.ZIPCode == "" {
		rec.ZIPCode = area.ZIPHint
	}

	return rec, nil
}

// Dedupe collapses rows sharing (name, address), keeping the first
// occurrence in input order. Returns the surviving rows and the number
// dropped.
func Dedupe(rows []record.Restaurant) ([]record.Restaurant, int) {
	type key struct{ name, address string }

	seen := make(map[key]bool, len(rows))
	out := rows[:0:0]

	for _, r := range rows {
		k := key{r.Name, r.Address}
		if seen[k] {
			continue
		}

		seen[k] = true

		out = append(out, r)
	}

	return out, len(rows) - len(out)
}

// FilterInvalid drops rows with a placeholder name or missing
// coordinates. Returns the survivors and the number dropped.
func FilterInvalid(rows []record.Restaurant) ([]record.Restaurant, int) {
	out := rows[:0:0]

	for _, r := range rows {
		if r.Name == record.PlaceholderName || !r.HasCoordinates() {
			continue
		}

		out = append(out, r)
	}

	return out, len(rows) - len(out)
}
