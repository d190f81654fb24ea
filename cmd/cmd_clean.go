// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"

	"github.com/platemap/platemap/curation"
	"github.com/platemap/platemap/record"
)

const cleanedFile = "restaurants_cleaned.csv"

var (
	cleanInPath       string
	cleanOutPath      string
	cleanBoundsFlag   string
	cleanVolumeFlag   string
	cleanNoTitleCase  bool
	cleanDuckDBTarget string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Validate, deduplicate and enrich the consolidated table",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		in := cleanInPath
		if in == "" {
			in = filepath.Join(collectOptions.DataPath, consolidatedFile)
		}

		// A missing input table is fatal: there is nothing to clean.
		rows, err := record.ReadTable(in)
		if err != nil {
			return fmt.Errorf("loading consolidated table: %w", err)
		}

		return cleanDataset(rows)
	},
}

// cleanDataset runs the cleaning pipeline over rows and persists the
// result. Shared by clean and run.
func cleanDataset(rows []record.Restaurant) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	options, err := cfg.CleaningOptions(curation.DefaultOptions())
	if err != nil {
		return err
	}

	// Flags beat the config file.
	if cleanBoundsFlag != "" {
		if options.Bounds, err = curation.BoundsPreset(cleanBoundsFlag); err != nil {
			return err
		}
	}

	if cleanVolumeFlag != "" {
		if options.Volume, err = curation.VolumePreset(cleanVolumeFlag); err != nil {
			return err
		}
	}

	if cleanNoTitleCase {
		options.TitleCaseNames = false
	}

	cleaner, err := curation.NewCleaner(options)
	if err != nil {
		return err
	}

	cleaned, err := cleaner.Run(rows)
	if err != nil {
		return err
	}

	out := cleanOutPath
	if out == "" {
		out = filepath.Join(collectOptions.DataPath, cleanedFile)
	}

	if err := record.WriteTable(out, cleaned, true); err != nil {
		return fmt.Errorf("writing cleaned table: %w", err)
	}

	log.Printf("Clean - wrote %d records to %s", len(cleaned), out)

	curation.WriteReport(os.Stdout, cleaned, &cleaner.Metrics)

	if cleanDuckDBTarget != "" {
		return storeDataset(cleanDuckDBTarget, cleaned)
	}

	return nil
}

func storeDataset(path string, rows []record.Restaurant) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	repo := curation.NewRestaurantRepository(db)
	if err := repo.CreateSchema(); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	if err := repo.ReplaceAll(rows); err != nil {
		return fmt.Errorf("storing dataset: %w", err)
	}

	log.Printf("Clean - stored %d records in %s", len(rows), path)

	return nil
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVar(
		&cleanInPath,
		"in",
		"",
		"Consolidated table to clean (default <data-path>/"+consolidatedFile+")",
	)

	registerCleanFlags(cleanCmd)
}

// registerCleanFlags is shared with the run command, which cleans right
// after collecting.
func registerCleanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&cleanOutPath,
		"out",
		"",
		"Destination for the cleaned table (default <data-path>/"+cleanedFile+")",
	)

	cmd.Flags().StringVar(
		&cleanBoundsFlag,
		"bounds",
		"",
		"Bounding box preset: la-city or la-county",
	)

	cmd.Flags().StringVar(
		&cleanVolumeFlag,
		"volume",
		"",
		"Review volume preset: default or high-traffic",
	)

	cmd.Flags().BoolVar(
		&cleanNoTitleCase,
		"no-title-case",
		false,
		"Keep restaurant and neighborhood names as reported",
	)

	cmd.Flags().StringVar(
		&cleanDuckDBTarget,
		"duckdb",
		"",
		"Also store the cleaned dataset in a DuckDB database at this path",
	)
}
