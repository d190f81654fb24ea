// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package curation turns the collector's consolidated table into a
// validated, deduplicated dataset with market-analysis columns.
package curation

import (
	"fmt"

	"github.com/platemap/platemap/spatial"
)

// BoundsLACity is the tight box around the LA city core.
var BoundsLACity = spatial.BoundingBox{
	MinLat: 33.7, MaxLat: 34.3,
	MinLng: -118.7, MaxLng: -118.1,
}

// BoundsLACounty covers the whole county, Antelope Valley included.
var BoundsLACounty = spatial.BoundingBox{
	MinLat: 33.3, MaxLat: 34.9,
	MinLng: -118.95, MaxLng: -117.55,
}

// ReviewVolumeScheme buckets review counts into four labels. A count at
// or below Thresholds[i] falls into the i-th bucket, upper bound
// inclusive.
type ReviewVolumeScheme struct {
	Name       string
	Thresholds [3]int
}

// VolumeDefault suits neighborhood-level samples of tens of reviews.
var VolumeDefault = ReviewVolumeScheme{Name: "default", Thresholds: [3]int{10, 50, 200}}

// VolumeHighTraffic suits datasets dominated by heavily reviewed venues.
var VolumeHighTraffic = ReviewVolumeScheme{Name: "high-traffic", Thresholds: [3]int{100, 500, 1000}}

var reviewVolumeLabels = [4]string{"Few Reviews", "Some Reviews", "Many Reviews", "Very Popular"}

// Label returns the bucket label for a review count.
func (s *ReviewVolumeScheme) Label(count int) string {
	for i, t := range s.Thresholds {
		if count <= t {
			return reviewVolumeLabels[i]
		}
	}

	return reviewVolumeLabels[3]
}

// BoundsPreset resolves a named bounding box.
func BoundsPreset(name string) (spatial.BoundingBox, error) {
	switch name {
	case "la-city":
		return BoundsLACity, nil
	case "la-county":
		return BoundsLACounty, nil
	default:
		return spatial.BoundingBox{}, fmt.Errorf("unknown bounds preset %q (want la-city or la-county)", name)
	}
}

// VolumePreset resolves a named review-volume scheme.
func VolumePreset(name string) (ReviewVolumeScheme, error) {
	switch name {
	case "default":
		return VolumeDefault, nil
	case "high-traffic":
		return VolumeHighTraffic, nil
	default:
		return ReviewVolumeScheme{}, fmt.Errorf("unknown review volume preset %q (want default or high-traffic)", name)
	}
}

// Options steer the cleaning passes. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// Bounds drops rows whose coordinates fall outside.
	Bounds spatial.BoundingBox

	// Volume buckets review counts.
	Volume ReviewVolumeScheme

	// TitleCaseNames standardizes restaurant and neighborhood casing.
	TitleCaseNames bool
}

// DefaultOptions returns the canonical configuration: tight city box,
// default review-volume thresholds, names title-cased.
func DefaultOptions() Options {
	return Options{
		Bounds:         BoundsLACity,
		Volume:         VolumeDefault,
		TitleCaseNames: true,
	}
}
