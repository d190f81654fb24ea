// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/platemap/platemap/record"
)

func TestExtractZIP(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"plain zip", "123 Main St, Los Angeles, CA 90001, USA", "90001"},
		{"zip plus four", "456 Sunset Blvd, Los Angeles, CA 90028-1234, USA", "90028"},
		{"no zip", "somewhere in Los Angeles", ""},
		{"empty", "", ""},
		{"first of two", "90001 to 90002", "90001"},
		{"too short", "CA 9001, USA", ""},
		{"embedded digits", "Suite 123456", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractZIP(tc.address); got != tc.want {
				t.Fatalf("ExtractZIP(%q) = %q, want %q", tc.address, got, tc.want)
			}
		})
	}
}

func TestMapPlace(t *testing.T) {
	area := &Area{Name: "Beverly Hills", Query: "restaurants in Beverly Hills, CA", ZIPHint: "90210"}

	rating := 4.25
	reviews := 1200
	loc := &LatLng{Latitude: 34.0736204, Longitude: -118.4003563}

	p := &Place{
		DisplayName:            &LocalizedText{Text: "  Spago  "},
		Rating:                 &rating,
		UserRatingCount:        &reviews,
		PriceLevel:             "PRICE_LEVEL_EXPENSIVE",
		Location:               loc,
		PrimaryTypeDisplayName: &LocalizedText{Text: "Fine Dining"},
		FormattedAddress:       "176 N Canon Dr, Beverly Hills, CA 90210, USA",
		Types:                  []string{"restaurant", "californian_restaurant", "point_of_interest"},
	}

	got, err := mapPlace(p, area)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := record.Restaurant{
		ZIPCode:      "90210",
		Name:         "Spago",
		Rating:       record.Float(4.3),
		ReviewCount:  1200,
		PriceLevel:   record.Int(3),
		Latitude:     record.Float(34.07362),
		Longitude:    record.Float(-118.400356),
		Category:     "Californian",
		Neighborhood: "Beverly Hills",
		Address:      "176 N Canon Dr, Beverly Hills, CA 90210, USA",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapPlace mismatch (-want +got):\n%s", diff)
	}
}

func TestMapPlace_ZIPHintFallback(t *testing.T) {
	area := &Area{Name: "Venice", Query: "restaurants in Venice, CA", ZIPHint: "90291"}

	p := &Place{
		DisplayName:      &LocalizedText{Text: "Gjelina"},
		FormattedAddress: "Abbot Kinney Blvd, Venice",
	}

	got, err := mapPlace(p, area)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if got.ZIPCode != "90291" {
		t.Fatalf("ZIPCode = %q, want the area hint 90291", got.ZIPCode)
	}
}

func TestMapPlace_MissingName(t *testing.T) {
	area := &Area{Name: "Venice", ZIPHint: "90291"}

	// A nameless hit with an address still makes a row under the
	// placeholder; FilterInvalid removes it later.
	got, err := mapPlace(&Place{FormattedAddress: "123 Somewhere, CA 90291"}, area)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if got.Name != record.PlaceholderName {
		t.Fatalf("Name = %q, want %q", got.Name, record.PlaceholderName)
	}

	// Neither name nor address is unusable.
	if _, err := mapPlace(&Place{}, area); !errors.Is(err, errEmptyPlace) {
		t.Fatalf("expected errEmptyPlace, got %v", err)
	}
}

func TestMapPlace_UnknownPriceLevel(t *testing.T) {
	area := &Area{Name: "Venice", ZIPHint: "90291"}

	p := &Place{
		DisplayName:      &LocalizedText{Text: "Cafe"},
		PriceLevel:       "PRICE_LEVEL_UNSPECIFIED",
		FormattedAddress: "123 Somewhere, CA 90291",
	}

	got, err := mapPlace(p, area)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if got.PriceLevel != nil {
		t.Fatalf("PriceLevel = %d, want absent", *got.PriceLevel)
	}
}

func TestMapPlace_ZeroReviewCount(t *testing.T) {
	area := &Area{Name: "Venice", ZIPHint: "90291"}
	zero := 0

	p := &Place{
		DisplayName:      &LocalizedText{Text: "Cafe"},
		UserRatingCount:  &zero,
		FormattedAddress: "123 Somewhere, CA 90291",
	}

	got, err := mapPlace(p, area)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if got.ReviewCount != 0 {
		t.Fatalf("ReviewCount = %d, want 0", got.ReviewCount)
	}
}

func TestDeriveCategory(t *testing.T) {
	tests := []struct {
		name string
		p    Place
		want string
	}{
		{
			name: "specific type wins",
			p: Place{
				PrimaryTypeDisplayName: &LocalizedText{Text: "Restaurant"},
				Types:                  []string{"restaurant", "mexican_restaurant"},
			},
			want: "Mexican",
		},
		{
			name: "primary display name fallback",
			p: Place{
				PrimaryTypeDisplayName: &LocalizedText{Text: "Seafood Restaurant"},
				Types:                  []string{"restaurant", "food", "establishment"},
			},
			want: "Seafood Restaurant",
		},
		{
			name: "nothing specific",
			p:    Place{Types: []string{"restaurant", "food"}},
			want: "Restaurant",
		},
		{
			name: "multi word type",
			p:    Place{Types: []string{"fast_food_restaurant"}},
			want: "Fast Food",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveCategory(&tc.p); got != tc.want {
				t.Fatalf("deriveCategory = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	first := record.Restaurant{Name: "Joe's Pizza", Address: "123 Main St", Rating: record.Float(4.0)}
	shadow := record.Restaurant{Name: "Joe's Pizza", Address: "123 Main St", Rating: record.Float(3.0)}
	other := record.Restaurant{Name: "Joe's Pizza", Address: "456 Elm St"}

	got, dropped := Dedupe([]record.Restaurant{first, shadow, other})
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}

	want := []record.Restaurant{first, other}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Dedupe mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterInvalid(t *testing.T) {
	valid := record.Restaurant{
		Name:      "Joe's Pizza",
		Latitude:  record.Float(34.05),
		Longitude: record.Float(-118.25),
	}
	unnamed := record.Restaurant{
		Name:      record.PlaceholderName,
		Latitude:  record.Float(34.05),
		Longitude: record.Float(-118.25),
	}
	unlocated := record.Restaurant{Name: "Ghost Kitchen"}

	got, dropped := FilterInvalid([]record.Restaurant{valid, unnamed, unlocated})
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}

	if diff := cmp.Diff([]record.Restaurant{valid}, got); diff != "" {
		t.Fatalf("FilterInvalid mismatch (-want +got):\n%s", diff)
	}
}
