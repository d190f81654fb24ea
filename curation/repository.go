// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package curation

import (
	"database/sql"
	"fmt"

	"github.com/platemap/platemap/record"
	"github.com/platemap/platemap/spatial"
)

// ZipSummary aggregates the cleaned dataset per ZIP code.
type ZipSummary struct {
	ZIPCode     string   `json:"zip_code"`
	Restaurants int      `json:"restaurants"`
	AvgRating   *float64 `json:"avg_rating,omitempty"`
	Opportunity string   `json:"opportunity"`
}

// OpportunitySlice is one band of the market-opportunity breakdown.
type OpportunitySlice struct {
	Opportunity string `json:"opportunity"`
	Restaurants int    `json:"restaurants"`
	Zips        int    `json:"zips"`
}

// RestaurantRepository persists the cleaned dataset for ad-hoc analysis
// and the serve command.
type RestaurantRepository interface {
	// CreateSchema creates the restaurants table.
	CreateSchema() error

	// ReplaceAll swaps the stored dataset for the given rows.
	ReplaceAll(rows []record.Restaurant) error

	// Count returns the number of stored restaurants.
	Count() (int, error)

	// ZipSummaries returns per-ZIP aggregates, densest ZIPs first.
	ZipSummaries() ([]*ZipSummary, error)

	// OpportunityBreakdown returns restaurant and ZIP counts per
	// market-opportunity band.
	OpportunityBreakdown() ([]*OpportunitySlice, error)

	// ByZip returns the restaurants of one ZIP, best rated first.
	ByZip(zip string) ([]record.Restaurant, error)

	// DB returns the underlying database connection.
	DB() *sql.DB
}

type sqlRestaurantRepository struct {
	db *sql.DB
}

// NewRestaurantRepository creates a repository on an open DuckDB handle.
func NewRestaurantRepository(db *sql.DB) RestaurantRepository {
	return &sqlRestaurantRepository{db: db}
}

func (r *sqlRestaurantRepository) DB() *sql.DB {
	return r.db
}

func (r *sqlRestaurantRepository) CreateSchema() error {
	// DuckDB needs to load the spatial extension
	if _, err := r.db.Exec(`INSTALL spatial; LOAD spatial;`); err != nil {
		return err
	}

	_, err := r.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS restaurants_seq START 1;

		CREATE TABLE IF NOT EXISTS restaurants (
			id INTEGER PRIMARY KEY DEFAULT nextval('restaurants_seq'),
			zip_code VARCHAR NOT NULL,
			name VARCHAR NOT NULL,
			rating DOUBLE,
			review_count INTEGER NOT NULL,
			price_level INTEGER,
			point POINT_2D NOT NULL,
			category VARCHAR,
			neighborhood VARCHAR,
			address VARCHAR,
			price_label VARCHAR NOT NULL,
			rating_category VARCHAR NOT NULL,
			review_volume VARCHAR NOT NULL,
			restaurants_in_zip INTEGER,
			zip_avg_rating DOUBLE,
			restaurants_in_neighborhood INTEGER,
			neighborhood_avg_rating DOUBLE,
			market_saturation_index DOUBLE,
			market_opportunity VARCHAR NOT NULL,
			h3_res7 UBIGINT,
			h3_res8 UBIGINT
		);
	`)

	return err
}

// ReplaceAll deletes and re-inserts inside one transaction, a reload
// never leaves the table half-written. Rows without coordinates are not
// expected here; the cleaning passes drop them before storage.
func (r *sqlRestaurantRepository) ReplaceAll(rows []record.Restaurant) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				err = rErr
			}
		}
	}()

	if _, err = tx.Exec(`DELETE FROM restaurants`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO restaurants(
			zip_code,
			name,
			rating,
			review_count,
			price_level,
			point,
			category,
			neighborhood,
			address,
			price_label,
			rating_category,
			review_volume,
			restaurants_in_zip,
			zip_avg_rating,
			restaurants_in_neighborhood,
			neighborhood_avg_rating,
			market_saturation_index,
			market_opportunity,
			h3_res7,
			h3_res8
		)
		VALUES (?, ?, ?, ?, ?, ST_Point(?, ?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range rows {
		row := &rows[i]

		p, ok := row.Point()
		if !ok {
			return fmt.Errorf("restaurant %q has no coordinates", row.Name)
		}

		_, err = stmt.Exec(
			row.ZIPCode,
			row.Name,
			row.Rating,
			row.ReviewCount,
			row.PriceLevel,
			p.Lng,
			p.Lat,
			row.Category,
			row.Neighborhood,
			row.Address,
			row.PriceLabel,
			row.RatingCategory,
			row.ReviewVolume,
			row.RestaurantsInZip,
			row.ZipAvgRating,
			row.RestaurantsInNeighborhood,
			row.NeighborhoodAvgRating,
			row.MarketSaturationIndex,
			row.MarketOpportunity,
			row.H3Res7,
			row.H3Res8,
		)
		if err != nil {
			return fmt.Errorf("inserting %q: %w", row.Name, err)
		}
	}

	return tx.Commit()
}

func (r *sqlRestaurantRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM restaurants`).Scan(&count)

	return count, err
}

func (r *sqlRestaurantRepository) ZipSummaries() ([]*ZipSummary, error) {
	rows, err := r.db.Query(`
		SELECT zip_code, COUNT(*), AVG(rating), ANY_VALUE(market_opportunity)
		FROM restaurants
		GROUP BY zip_code
		ORDER BY COUNT(*) DESC, zip_code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*ZipSummary

	for rows.Next() {
		s := &ZipSummary{}

		var avg sql.NullFloat64

		if err := rows.Scan(&s.ZIPCode, &s.Restaurants, &avg, &s.Opportunity); err != nil {
			return nil, err
		}

		if avg.Valid {
			s.AvgRating = record.Float(round(avg.Float64, 2))
		}

		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (r *sqlRestaurantRepository) OpportunityBreakdown() ([]*OpportunitySlice, error) {
	rows, err := r.db.Query(`
		SELECT market_opportunity, COUNT(*), COUNT(DISTINCT zip_code)
		FROM restaurants
		GROUP BY market_opportunity
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slices []*OpportunitySlice

	for rows.Next() {
		s := &OpportunitySlice{}
		if err := rows.Scan(&s.Opportunity, &s.Restaurants, &s.Zips); err != nil {
			return nil, err
		}

		slices = append(slices, s)
	}

	return slices, rows.Err()
}

func (r *sqlRestaurantRepository) ByZip(zip string) ([]record.Restaurant, error) {
	rows, err := r.db.Query(`
		SELECT zip_code, name, rating, review_count, price_level, point,
		       category, neighborhood, address,
		       price_label, rating_category, review_volume,
		       restaurants_in_zip, zip_avg_rating,
		       restaurants_in_neighborhood, neighborhood_avg_rating,
		       market_saturation_index, market_opportunity,
		       h3_res7, h3_res8
		FROM restaurants
		WHERE zip_code = ?
		ORDER BY rating DESC NULLS LAST, review_count DESC, name
	`, zip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []record.Restaurant

	for rows.Next() {
		var (
			rec   record.Restaurant
			point spatial.Point

			rating, zipAvg, hoodAvg, saturation sql.NullFloat64
			priceLevel, inZip, inHood           sql.NullInt64
		)

		err := rows.Scan(
			&rec.ZIPCode,
			&rec.Name,
			&rating,
			&rec.ReviewCount,
			&priceLevel,
			&point,
			&rec.Category,
			&rec.Neighborhood,
			&rec.Address,
			&rec.PriceLabel,
			&rec.RatingCategory,
			&rec.ReviewVolume,
			&inZip,
			&zipAvg,
			&inHood,
			&hoodAvg,
			&saturation,
			&rec.MarketOpportunity,
			&rec.H3Res7,
			&rec.H3Res8,
		)
		if err != nil {
			return nil, err
		}

		rec.Latitude = record.Float(point.Lat)
		rec.Longitude = record.Float(point.Lng)

		if rating.Valid {
			rec.Rating = record.Float(rating.Float64)
		}

		if priceLevel.Valid {
			rec.PriceLevel = record.Int(int(priceLevel.Int64))
		}

		if inZip.Valid {
			rec.RestaurantsInZip = record.Int(int(inZip.Int64))
		}

		if zipAvg.Valid {
			rec.ZipAvgRating = record.Float(zipAvg.Float64)
		}

		if inHood.Valid {
			rec.RestaurantsInNeighborhood = record.Int(int(inHood.Int64))
		}

		if hoodAvg.Valid {
			rec.NeighborhoodAvgRating = record.Float(hoodAvg.Float64)
		}

		if saturation.Valid {
			rec.MarketSaturationIndex = record.Float(saturation.Float64)
		}

		out = append(out, rec)
	}

	return out, rows.Err()
}
