// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package places

// Wire types for the Places API (New) places:searchText endpoint.
// Only the attributes named in the request field mask are populated.

// LocalizedText is the API's {text, languageCode} pair.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// LatLng is a geographic point as the API reports it.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a single search hit. Pointer fields are omitted by the API
// when the place has no such attribute (an unrated restaurant carries no
// rating at all, not a zero).
type Place struct {
	DisplayName            *LocalizedText `json:"displayName,omitempty"`
	Rating                 *float64       `json:"rating,omitempty"`
	UserRatingCount        *int           `json:"userRatingCount,omitempty"`
	PriceLevel             string         `json:"priceLevel,omitempty"`
	Location               *LatLng        `json:"location,omitempty"`
	FormattedAddress       string         `json:"formattedAddress,omitempty"`
	PrimaryTypeDisplayName *LocalizedText `json:"primaryTypeDisplayName,omitempty"`
	Types                  []string       `json:"types,omitempty"`
}

// searchTextRequest is the POST body for places:searchText.
type searchTextRequest struct {
	TextQuery      string `json:"textQuery"`
	MaxResultCount int    `json:"maxResultCount,omitempty"`
	IncludedType   string `json:"includedType,omitempty"`
}

// searchTextResponse is the endpoint's reply. An empty result set is a
// body with no places key at all.
type searchTextResponse struct {
	Places []Place `json:"places"`
}
