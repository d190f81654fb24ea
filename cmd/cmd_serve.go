// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"

	"github.com/platemap/platemap/curation"
)

var (
	serveDBPath string
	serveAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stored dataset as a read-only JSON API (local only)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if _, err := os.Stat(serveDBPath); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database not found at %s - run 'clean --duckdb %s' first", serveDBPath, serveDBPath)
		}

		db, err := sql.Open("duckdb", serveDBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		repo := curation.NewRestaurantRepository(db)
		if err := repo.CreateSchema(); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}

		count, err := repo.Count()
		if err != nil {
			return fmt.Errorf("counting restaurants: %w", err)
		}

		log.Printf("Serve - %d restaurants in %s, listening on %s", count, serveDBPath, serveAddr)

		return curation.NewServer(repo).Run(serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(
		&serveDBPath,
		"db",
		"data/platemap.duckdb",
		"DuckDB database holding the cleaned dataset",
	)

	serveCmd.Flags().StringVar(
		&serveAddr,
		"addr",
		"localhost:8080",
		"Listen address",
	)
}
