// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/platemap/platemap/record"
	"github.com/schollz/progressbar/v3"
)

// CollectMetrics tracks statistics about a collection run.
type CollectMetrics struct {
	AreasSearched     int // areas that yielded a response
	AreasFailed       int // areas that errored and yielded zero results
	AreasSkipped      int // areas never attempted because the budget ran out
	PlacesFound       int // raw hits across all areas
	RecordsMapped     int // hits flattened into records
	RecordsSkipped    int // hits that could not be mapped
	DuplicatesDropped int
	InvalidDropped    int // placeholder names or missing coordinates
}

// Merge combines two CollectMetrics.
func (m *CollectMetrics) Merge(o *CollectMetrics) *CollectMetrics {
	m.AreasSearched += o.AreasSearched
	m.AreasFailed += o.AreasFailed
	m.AreasSkipped += o.AreasSkipped
	m.PlacesFound += o.PlacesFound
	m.RecordsMapped += o.RecordsMapped
	m.RecordsSkipped += o.RecordsSkipped
	m.DuplicatesDropped += o.DuplicatesDropped
	m.InvalidDropped += o.InvalidDropped

	return m
}

// collectArea searches one area and flattens its hits. A failed API call
// yields zero records for the area; only budget exhaustion is propagated.
func (c *Client) collectArea(ctx context.Context, area *Area) ([]record.Restaurant, error) {
	hits, err := c.SearchText(ctx, area.Query)
	if err != nil {
		if errors.Is(err, ErrBudgetExhausted) {
			return nil, err
		}

		c.Metrics.AreasFailed++
		log.Printf("Collect - %s failed, keeping zero results: %s", area.Name, err)

		return nil, nil
	}

	c.Metrics.AreasSearched++
	c.Metrics.PlacesFound += len(hits)

	// Raw backup goes first, independent of mapping success.
	if !c.options.DryRun {
		if err := c.store.SaveRawPlaces(area.Slug(), hits); err != nil {
			log.Printf("Collect - %s raw backup failed: %s", area.Name, err)
		}
	}

	records := make([]record.Restaurant, 0, len(hits))

	for i := range hits {
		rec, err := mapPlace(&hits[i], area)
		if err != nil {
			c.Metrics.RecordsSkipped++
			log.Printf("Collect - %s skipping hit %d: %s", area.Name, i, err)

			continue
		}

		c.Metrics.RecordsMapped++

		records = append(records, rec)
	}

	return records, nil
}

// Collect runs the extraction over every configured area in order and
// returns the deduplicated, filtered record set. Reaching the daily call
// budget keeps what was collected so far; it is not an error.
func (c *Client) Collect(ctx context.Context) ([]record.Restaurant, error) {
	n := len(c.areas)

	log.Printf("Collect - searching %d areas", n)

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetDescription("Collecting areas"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	start := time.Now()
	all := make([]record.Restaurant, 0, n*c.options.MaxResults)

	for i := range c.areas {
		area := &c.areas[i]

		records, err := c.collectArea(ctx, area)
		if err != nil {
			// Budget exhausted: remaining areas are skipped, collected data kept.
			c.Metrics.AreasSkipped = n - i

			log.Printf("Collect - %s", err)

			break
		}

		all = append(all, records...)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				log.Printf("Collect - updating progress bar: %s", err)
			}
		} else {
			log.Printf("Collect - [%d/%d] %s: %d records", i+1, n, area.Name, len(records))
		}

		if i < len(c.areas)-1 {
			// Flat pause between calls to respect the API's throughput limits.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.options.CallDelay):
			}
		}
	}

	all, dupes := Dedupe(all)
	c.Metrics.DuplicatesDropped = dupes

	all, invalid := FilterInvalid(all)
	c.Metrics.InvalidDropped = invalid

	log.Printf(
		"Collect phase complete in %v - %d records from %d hits (%d areas ok, %d failed, %d skipped, %d dupes, %d invalid, %d API calls)",
		time.Since(start).Round(time.Second),
		len(all),
		c.Metrics.PlacesFound,
		c.Metrics.AreasSearched,
		c.Metrics.AreasFailed,
		c.Metrics.AreasSkipped,
		dupes,
		invalid,
		c.callCount,
	)

	return all, nil
}
