// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/platemap/platemap/config"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})

	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"",
		"Path to an optional YAML configuration file",
	)
}

var rootCmd = &cobra.Command{
	Use:   "platemap",
	Short: "Los Angeles restaurant market dataset builder",
	Long: `
platemap collects restaurant listings for Los Angeles neighborhoods from
the Places text-search API, cleans them into an analysis-ready table,
and derives market-opportunity metrics per ZIP code.
`,
}

var Version = "dev"

var configPath string

// loadConfig reads the --config file when given; without the flag an
// empty configuration (all defaults) is returned.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return &config.Config{}, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s does not exist", configPath)
		}

		return nil, err
	}

	return cfg, nil
}

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
