// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package curation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platemap/platemap/record"
)

func TestPriceLabel(t *testing.T) {
	tests := []struct {
		level *int
		want  string
	}{
		{nil, "Unknown"},
		{record.Int(0), "Free"},
		{record.Int(1), "$"},
		{record.Int(2), "$$"},
		{record.Int(3), "$$$"},
		{record.Int(4), "$$$$"},
		{record.Int(9), "Unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, PriceLabel(tc.level))
	}
}

func TestRatingCategory(t *testing.T) {
	tests := []struct {
		rating *float64
		want   string
	}{
		{nil, "Unknown"},
		{record.Float(0), "Below Average"},
		{record.Float(2.9), "Below Average"},
		{record.Float(3.0), "Good"},
		{record.Float(3.9), "Good"},
		{record.Float(4.0), "Excellent"},
		{record.Float(5.0), "Excellent"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, RatingCategory(tc.rating))
	}
}

func TestReviewVolumeLabels(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "Few Reviews"},
		{10, "Few Reviews"},
		{11, "Some Reviews"},
		{50, "Some Reviews"},
		{51, "Many Reviews"},
		{200, "Many Reviews"},
		{201, "Very Popular"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, VolumeDefault.Label(tc.count), "count %d", tc.count)
	}

	assert.Equal(t, "Few Reviews", VolumeHighTraffic.Label(100))
	assert.Equal(t, "Very Popular", VolumeHighTraffic.Label(1001))
}

func TestMarketSaturation(t *testing.T) {
	// 20 or more restaurants saturate the density term.
	assert.InDelta(t, 0.6+0.4*4.0/5, MarketSaturation(20, 4.0), 1e-9)
	assert.InDelta(t, 0.6+0.4*4.0/5, MarketSaturation(50, 4.0), 1e-9)

	assert.InDelta(t, 0.6*0.5+0.4*0.5, MarketSaturation(10, 2.5), 1e-9)

	assert.GreaterOrEqual(t, MarketSaturation(0, 0), 0.0)
	assert.LessOrEqual(t, MarketSaturation(1000, 5), 1.0)
}

func TestMarketOpportunity(t *testing.T) {
	tests := []struct {
		n    int
		avg  float64
		want string
	}{
		{8, 4.2, "High Value Target"},
		{10, 4.0, "High Value Target"},
		{12, 3.8, "Moderate Value Target"},
		{15, 3.5, "Moderate Value Target"},
		{30, 3.0, "Saturated Market"},
		{100, 4.5, "Saturated Market"},
		{20, 3.0, "Standard Market"},
	}

	for _, tc := range tests {
		got := MarketOpportunity(record.Int(tc.n), record.Float(tc.avg))
		assert.Equal(t, tc.want, got, "n=%d avg=%.1f", tc.n, tc.avg)
	}

	// A sparse, well-rated ZIP satisfies both value rules and must take
	// the high one.
	assert.Equal(t, "High Value Target", MarketOpportunity(record.Int(9), record.Float(4.1)))

	assert.Equal(t, "Unknown", MarketOpportunity(nil, record.Float(4.0)))
	assert.Equal(t, "Unknown", MarketOpportunity(record.Int(5), nil))
}

func TestDeriveAggregates(t *testing.T) {
	mk := func(name, zip, hood string, rating float64) record.Restaurant {
		r := validRow(name)
		r.ZIPCode = zip
		r.Neighborhood = hood
		r.Rating = record.Float(rating)
		r.Address = fmt.Sprintf("%s HQ, CA %s", name, zip)

		return r
	}

	rows := []record.Restaurant{
		mk("A", "90012", "Downtown LA", 4.0),
		mk("B", "90012", "Downtown LA", 5.0),
		mk("C", "90210", "Beverly Hills", 3.0),
	}

	// C has no rating after this, the ZIP average must skip it.
	rows[2].Rating = nil

	_, out := runCleaner(t, rows)
	require.Len(t, out, 3)

	a := out[0]

	require.NotNil(t, a.RestaurantsInZip)
	assert.Equal(t, 2, *a.RestaurantsInZip)

	require.NotNil(t, a.ZipAvgRating)
	assert.InDelta(t, 4.5, *a.ZipAvgRating, 1e-9)

	require.NotNil(t, a.RestaurantsInNeighborhood)
	assert.Equal(t, 2, *a.RestaurantsInNeighborhood)

	require.NotNil(t, a.NeighborhoodAvgRating)
	assert.InDelta(t, 4.5, *a.NeighborhoodAvgRating, 1e-9)

	require.NotNil(t, a.MarketSaturationIndex)
	assert.InDelta(t, MarketSaturation(2, 4.5), *a.MarketSaturationIndex, 1e-9)
	assert.Equal(t, "High Value Target", a.MarketOpportunity)

	c := out[2]

	require.NotNil(t, c.RestaurantsInZip)
	assert.Equal(t, 1, *c.RestaurantsInZip)
	assert.Nil(t, c.ZipAvgRating, "a ZIP with no rated rows has no average")
	assert.Nil(t, c.MarketSaturationIndex)
	assert.Equal(t, "Unknown", c.MarketOpportunity)
}

func TestDeriveLabelsAndCells(t *testing.T) {
	_, out := runCleaner(t, []record.Restaurant{validRow("Guisados")})
	require.Len(t, out, 1)

	r := out[0]

	assert.Equal(t, "$$", r.PriceLabel)
	assert.Equal(t, "Excellent", r.RatingCategory)
	assert.Equal(t, "Many Reviews", r.ReviewVolume)

	assert.NotZero(t, r.H3Res7)
	assert.NotZero(t, r.H3Res8)
	assert.NotEqual(t, r.H3Res7, r.H3Res8)
}

func TestBoundsPreset(t *testing.T) {
	city, err := BoundsPreset("la-city")
	require.NoError(t, err)
	assert.Equal(t, BoundsLACity, city)

	county, err := BoundsPreset("la-county")
	require.NoError(t, err)
	assert.Equal(t, BoundsLACounty, county)

	_, err = BoundsPreset("narnia")
	require.Error(t, err)
}

func TestVolumePreset(t *testing.T) {
	scheme, err := VolumePreset("high-traffic")
	require.NoError(t, err)
	assert.Equal(t, VolumeHighTraffic, scheme)

	_, err = VolumePreset("narnia")
	require.Error(t, err)
}

func TestExtractZIP5(t *testing.T) {
	assert.Equal(t, "90012", extractZIP5("90012"))
	assert.Equal(t, "90012", extractZIP5("CA 90012-1234"))
	assert.Equal(t, "", extractZIP5("9001"))
	assert.Equal(t, "", extractZIP5(""))
}
