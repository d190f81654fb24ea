// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package record defines the flat restaurant row that flows from the
// collector into the cleaning pipeline, and the CSV table codec both
// stages share.
package record

import (
	"github.com/platemap/platemap/spatial"
)

// PlaceholderName is the name substituted by the collector when the
// search API returns no display name. Rows carrying it never survive
// cleaning.
const PlaceholderName = "Unknown"

// Restaurant is one row of the consolidated table. Pointer fields are
// absent when the search API did not report the attribute; they are
// serialized as empty CSV cells.
type Restaurant struct {
	ZIPCode      string   `json:"zip_code"`               // 5-digit ZIP, or empty when unresolved
	Name         string   `json:"name"`                   // display name, PlaceholderName when missing
	Rating       *float64 `json:"rating,omitempty"`       // 0..5
	ReviewCount  int      `json:"review_count"`           // non-negative, 0 when unreported
	PriceLevel   *int     `json:"price_level,omitempty"`  // 0..4
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Category     string   `json:"category,omitempty"`     // best-effort cuisine label
	Neighborhood string   `json:"neighborhood,omitempty"` // search-area label, not derived from the row
	Address      string   `json:"address,omitempty"`      // raw formatted address

	// Derived analytic columns, populated by the cleaning pipeline.
	PriceLabel                string   `json:"price_label,omitempty"`
	RatingCategory            string   `json:"rating_category,omitempty"`
	ReviewVolume              string   `json:"review_volume,omitempty"`
	RestaurantsInZip          *int     `json:"restaurants_in_zip,omitempty"`
	ZipAvgRating              *float64 `json:"zip_avg_rating,omitempty"`
	RestaurantsInNeighborhood *int     `json:"restaurants_in_neighborhood,omitempty"`
	NeighborhoodAvgRating     *float64 `json:"neighborhood_avg_rating,omitempty"`
	MarketSaturationIndex     *float64 `json:"market_saturation_index,omitempty"`
	MarketOpportunity         string   `json:"market_opportunity,omitempty"`
	H3Res7                    uint64   `json:"h3_res7,omitempty"`
	H3Res8                    uint64   `json:"h3_res8,omitempty"`
}

// Point returns the row's coordinates, or false when either is absent.
func (r *Restaurant) Point() (spatial.Point, bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return spatial.Point{}, false
	}

	return spatial.Point{Lat: *r.Latitude, Lng: *r.Longitude}, true
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r *Restaurant) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Float returns a pointer to v. Convenience for building rows.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v. Convenience for building rows.
func Int(v int) *int { return &v }
