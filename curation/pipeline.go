// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package curation

import (
	"fmt"
	"log"
	"strings"

	"github.com/platemap/platemap/record"
	"github.com/platemap/platemap/utils/textutils"
)

// Names that mean "the API didn't really know". Rows carrying one are dropped.
var invalidNames = map[string]bool{
	"":                     true,
	record.PlaceholderName: true,
	"Restaurant":           true,
}

// Metrics tracks what each cleaning pass removed.
type Metrics struct {
	InitialRows       int
	DroppedNames      int
	DroppedRatings    int
	DroppedCoords     int
	DroppedZips       int
	DroppedDuplicates int
	FinalRows         int
}

// Merge combines two Metrics.
func (m *Metrics) Merge(o *Metrics) *Metrics {
	m.InitialRows += o.InitialRows
	m.DroppedNames += o.DroppedNames
	m.DroppedRatings += o.DroppedRatings
	m.DroppedCoords += o.DroppedCoords
	m.DroppedZips += o.DroppedZips
	m.DroppedDuplicates += o.DroppedDuplicates
	m.FinalRows += o.FinalRows

	return m
}

// Cleaner applies the ordered sequence of validation and normalization
// passes, then the derived analytic columns. Each pass only corrects
// values or removes rows; rows are never split, merged, or invented.
type Cleaner struct {
	options Options
	Metrics Metrics
}

// NewCleaner creates a cleaner with the given options.
func NewCleaner(options Options) (*Cleaner, error) {
	if err := options.Bounds.Validate(); err != nil {
		return nil, fmt.Errorf("cleaning bounds: %w", err)
	}

	return &Cleaner{options: options}, nil
}

// Run executes every pass in order and returns the surviving rows with
// derived columns filled in. Per-row problems correct or drop the row;
// only setup problems are errors.
func (c *Cleaner) Run(rows []record.Restaurant) ([]record.Restaurant, error) {
	c.Metrics.InitialRows = len(rows)

	rows = c.cleanNames(rows)
	rows = c.cleanRatings(rows)
	rows = c.cleanPriceLevels(rows)
	rows = c.cleanCoordinates(rows)
	rows = c.cleanZIPs(rows)
	rows = c.deduplicate(rows)

	if err := c.derive(rows); err != nil {
		return nil, err
	}

	c.Metrics.FinalRows = len(rows)

	log.Printf(
		"Cleaning complete - %d/%d rows retained (%d bad names, %d bad ratings, %d out of bounds, %d unresolvable ZIPs, %d duplicates)",
		c.Metrics.FinalRows,
		c.Metrics.InitialRows,
		c.Metrics.DroppedNames,
		c.Metrics.DroppedRatings,
		c.Metrics.DroppedCoords,
		c.Metrics.DroppedZips,
		c.Metrics.DroppedDuplicates,
	)

	return rows, nil
}

// Pass 1: trim and optionally title-case names, drop placeholder rows.
// Neighborhood text is standardized alongside so group-by keys match.
func (c *Cleaner) cleanNames(rows []record.Restaurant) []record.Restaurant {
	out := rows[:0]

	for _, r := range rows {
		r.Name = strings.TrimSpace(r.Name)

		if c.options.TitleCaseNames {
			r.Name = textutils.TitleCase(r.Name)
			r.Neighborhood = textutils.TitleCase(r.Neighborhood)
		}

		if invalidNames[r.Name] {
			c.Metrics.DroppedNames++

			continue
		}

		out = append(out, r)
	}

	return out
}

// Pass 2: ratings outside [0,5] drop the row, absent ratings survive.
// Negative review counts clamp to zero.
func (c *Cleaner) cleanRatings(rows []record.Restaurant) []record.Restaurant {
	out := rows[:0]

	for _, r := range rows {
		if r.Rating != nil {
			if *r.Rating < 0 || *r.Rating > 5 {
				c.Metrics.DroppedRatings++

				continue
			}

			r.Rating = record.Float(round(*r.Rating, 1))
		}

		if r.ReviewCount < 0 {
			r.ReviewCount = 0
		}

		out = append(out, r)
	}

	return out
}

// Pass 3: price levels outside the 0..4 scale become absent. The row
// survives, there is no way to guess the venue's real bucket.
func (c *Cleaner) cleanPriceLevels(rows []record.Restaurant) []record.Restaurant {
	for i := range rows {
		if p := rows[i].PriceLevel; p != nil && (*p < 0 || *p > 4) {
			rows[i].PriceLevel = nil
		}
	}

	return rows
}

// Pass 4: rows without coordinates, or outside the configured bounding
// box, are dropped.
func (c *Cleaner) cleanCoordinates(rows []record.Restaurant) []record.Restaurant {
	out := rows[:0]

	for _, r := range rows {
		p, ok := r.Point()
		if !ok || !c.options.Bounds.Contains(p) {
			c.Metrics.DroppedCoords++

			continue
		}

		out = append(out, r)
	}

	return out
}

// Pass 5: re-extract a 5-digit ZIP from whatever the column holds; rows
// with no resolvable ZIP are dropped.
func (c *Cleaner) cleanZIPs(rows []record.Restaurant) []record.Restaurant {
	out := rows[:0]

	for _, r := range rows {
		r.ZIPCode = extractZIP5(r.ZIPCode)
		if r.ZIPCode == "" {
			c.Metrics.DroppedZips++

			continue
		}

		out = append(out, r)
	}

	return out
}

// Pass 6: exact full-row duplicates first, then duplicates under the
// identity key: (name, address) when the row has an address, otherwise
// (name, zip). First occurrence in input order wins. Running the pass on
// its own output is a no-op.
func (c *Cleaner) deduplicate(rows []record.Restaurant) []record.Restaurant {
	exact := make(map[string]bool, len(rows))
	keyed := make(map[string]bool, len(rows))
	out := rows[:0]

	for _, r := range rows {
		full := strings.Join(r.BaseFields(), "\x1f")
		if exact[full] {
			c.Metrics.DroppedDuplicates++

			continue
		}

		exact[full] = true

		key := r.Name + "\x1f" + r.Address
		if r.Address == "" {
			key = r.Name + "\x1f" + r.ZIPCode
		}

		if keyed[key] {
			c.Metrics.DroppedDuplicates++

			continue
		}

		keyed[key] = true

		out = append(out, r)
	}

	return out
}
