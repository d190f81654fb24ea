// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column names follow the original dashboard export so downstream BI
// reports keep working.
var baseHeader = []string{
	"ZIP_Code",
	"Restaurant_Name",
	"Rating",
	"Review_Count",
	"Price_Level",
	"Latitude",
	"Longitude",
	"Category",
	"Neighborhood",
	"Address",
}

var derivedHeader = []string{
	"Price_Label",
	"Rating_Category",
	"Review_Volume",
	"Restaurants_In_Zip",
	"Zip_Avg_Rating",
	"Restaurants_In_Neighborhood",
	"Neighborhood_Avg_Rating",
	"Market_Saturation_Index",
	"Market_Opportunity",
	"H3_Res7",
	"H3_Res8",
}

// ErrEmptyTable is returned when the input file has no header row.
var ErrEmptyTable = errors.New("table has no header row")

// BaseHeader returns the column names of the consolidated table.
func BaseHeader() []string {
	return append([]string(nil), baseHeader...)
}

// CleanedHeader returns the column names of the cleaned table, base
// columns followed by the derived ones.
func CleanedHeader() []string {
	return append(BaseHeader(), derivedHeader...)
}

func formatFloat(v *float64, decimals int) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', decimals, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(*v)
}

func (r *Restaurant) baseRow() []string {
	return []string{
		r.ZIPCode,
		r.Name,
		formatFloat(r.Rating, 1),
		strconv.Itoa(r.ReviewCount),
		formatInt(r.PriceLevel),
		formatFloat(r.Latitude, 6),
		formatFloat(r.Longitude, 6),
		r.Category,
		r.Neighborhood,
		r.Address,
	}
}

func (r *Restaurant) derivedRow() []string {
	return []string{
		r.PriceLabel,
		r.RatingCategory,
		r.ReviewVolume,
		formatInt(r.RestaurantsInZip),
		formatFloat(r.ZipAvgRating, 2),
		formatInt(r.RestaurantsInNeighborhood),
		formatFloat(r.NeighborhoodAvgRating, 2),
		formatFloat(r.MarketSaturationIndex, 3),
		r.MarketOpportunity,
		strconv.FormatUint(r.H3Res7, 10),
		strconv.FormatUint(r.H3Res8, 10),
	}
}

// BaseFields returns the base columns formatted as CSV cells. The
// cleaning pipeline uses it as an exact-duplicate fingerprint.
func (r *Restaurant) BaseFields() []string {
	return r.baseRow()
}

// WriteTable writes rows as a UTF-8 CSV with a header. When derived is
// true the analytic columns are included.
func WriteTable(path string, rows []Restaurant, derived bool) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating table directory: %w", err)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("creating table file: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing table file: %w", cerr))
		}
	}()

	w := csv.NewWriter(f)

	header := baseHeader
	if derived {
		header = CleanedHeader()
	}

	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range rows {
		row := rows[i].baseRow()
		if derived {
			row = append(row, rows[i].derivedRow()...)
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	return err
}

func parseFloatCell(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// coerced to absent, the cleaning passes decide the row's fate
		return nil
	}

	return &v
}

func parseIntCell(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// review counts occasionally surface as "12.0" after spreadsheet roundtrips
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		v := int(f)

		return &v
	}

	return nil
}

// ReadTable loads a consolidated table. A missing or unparseable file is
// an error, the caller treats it as fatal for the run. Per-cell issues
// are coerced to absent values instead.
func ReadTable(path string) ([]Restaurant, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // validated against the header below

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing table: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	// Map wanted columns by header name so extra or reordered columns
	// (e.g. a cleaned table fed back in) are tolerated.
	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}

	for _, required := range baseHeader {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("table is missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}

		return row[i]
	}

	rows := make([]Restaurant, 0, len(records)-1)

	for _, raw := range records[1:] {
		rec := Restaurant{
			ZIPCode:      strings.TrimSpace(cell(raw, "ZIP_Code")),
			Name:         cell(raw, "Restaurant_Name"),
			Rating:       parseFloatCell(cell(raw, "Rating")),
			Latitude:     parseFloatCell(cell(raw, "Latitude")),
			Longitude:    parseFloatCell(cell(raw, "Longitude")),
			PriceLevel:   parseIntCell(cell(raw, "Price_Level")),
			Category:     cell(raw, "Category"),
			Neighborhood: cell(raw, "Neighborhood"),
			Address:      cell(raw, "Address"),
		}

		if n := parseIntCell(cell(raw, "Review_Count")); n != nil {
			rec.ReviewCount = *n
		}

		rows = append(rows, rec)
	}

	return rows, nil
}
