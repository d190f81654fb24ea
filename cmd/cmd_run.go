// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/platemap/platemap/record"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect and clean in one pass",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows, options, err := collectDataset(cmd.Context())
		if err != nil {
			return err
		}

		if options.DryRun {
			log.Printf("Run - dry run, not writing %d records", len(rows))

			return nil
		}

		out := filepath.Join(options.DataPath, consolidatedFile)
		if err := record.WriteTable(out, rows, false); err != nil {
			return fmt.Errorf("writing consolidated table: %w", err)
		}

		log.Printf("Run - wrote %d records to %s", len(rows), out)

		return cleanDataset(rows)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	registerCollectFlags(runCmd)
	registerCleanFlags(runCmd)
}
