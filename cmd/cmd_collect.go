// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/platemap/platemap/places"
	"github.com/platemap/platemap/record"
)

var collectOptions = &places.ClientOptions{}

var collectDelayMs int

const consolidatedFile = "restaurants.csv"

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Search every configured area and build the consolidated table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows, options, err := collectDataset(cmd.Context())
		if err != nil {
			return err
		}

		if options.DryRun {
			log.Printf("Collect - dry run, not writing %d records", len(rows))

			return nil
		}

		out := filepath.Join(options.DataPath, consolidatedFile)
		if err := record.WriteTable(out, rows, false); err != nil {
			return fmt.Errorf("writing consolidated table: %w", err)
		}

		log.Printf("Collect - wrote %d records to %s", len(rows), out)

		return nil
	},
}

// collectDataset wires the configured areas and options into a client
// and runs the collection. Shared by collect and run.
func collectDataset(ctx context.Context) ([]record.Restaurant, *places.ClientOptions, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	options := cfg.ClientOptions(*collectOptions)

	if collectDelayMs > 0 {
		options.CallDelay = time.Duration(collectDelayMs) * time.Millisecond
	}

	key, err := places.ResolveAPIKey(ctx, options.APIKey)
	if err != nil {
		return nil, nil, err
	}

	options.APIKey = key

	if options.UserAgent == "" {
		options.UserAgent = fmt.Sprintf("platemap/%s (+https://github.com/platemap/platemap)", Version)
	}

	client, err := places.NewClient(&options, cfg.SearchAreas())
	if err != nil {
		return nil, nil, fmt.Errorf("initializing collector: %w", err)
	}

	rows, err := client.Collect(ctx)
	if err != nil {
		return nil, nil, err
	}

	return rows, &options, nil
}

func init() {
	rootCmd.AddCommand(collectCmd)

	registerCollectFlags(collectCmd)
}

// registerCollectFlags is shared with the run command, which collects
// before cleaning.
func registerCollectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&collectOptions.APIKey,
		"api-key",
		"",
		fmt.Sprintf("Places API key (falls back to $%s, then ADC)", places.APIKeyEnvVar),
	)

	cmd.Flags().StringVar(
		&collectOptions.DataPath,
		"data-path",
		"data",
		"Directory for raw backups and tables",
	)

	cmd.Flags().IntVar(
		&collectOptions.MaxResults,
		"max-results",
		0,
		"Results requested per area, capped at 20 by the API (0 = default)",
	)

	cmd.Flags().IntVar(
		&collectOptions.DailyCallLimit,
		"daily-limit",
		0,
		"Client-side API call ceiling for the run (0 = default)",
	)

	cmd.Flags().IntVar(
		&collectDelayMs,
		"delay-ms",
		0,
		"Pause between API calls in milliseconds (0 = default)",
	)

	cmd.Flags().BoolVar(
		&collectOptions.DryRun,
		"dry-run",
		false,
		"Search and report, but write nothing to disk",
	)

	cmd.Flags().BoolVar(
		&collectOptions.EnableHTTPTrace,
		"http-trace",
		false,
		"Log HTTP requests and responses",
	)

	cmd.Flags().BoolVar(
		&collectOptions.EnableHTTPBodyTrace,
		"http-body-trace",
		false,
		"Log full HTTP bodies (implies noisy output)",
	)
}
