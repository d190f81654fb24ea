// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platemap/platemap/places"
)

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "List the search areas the collector covers",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		areas := cfg.SearchAreas()

		a, b, c := strings.Repeat("─", 28), strings.Repeat("─", 8), strings.Repeat("─", 44)
		fmt.Printf("Search areas (%d):\n", len(areas))
		fmt.Printf("╭─%-28s─┬─%-8s─┬─%-44s╮\n", a, b, c)
		fmt.Printf("│ %-28s │ %-8s │ %-44s│\n", "Area", "ZIP hint", "Query")
		fmt.Printf("├─%-28s─┼─%-8s─┼─%-44s┤\n", a, b, c)

		err = places.Each(areas, func(area places.Area) error {
			fmt.Printf("│ %-28s │ %-8s │ %-44s│\n", area.Name, area.ZIPHint, area.Query)

			return nil
		})

		fmt.Printf("╰─%-28s─┴─%-8s─┴─%-44s╯\n", a, b, c)

		return err
	},
}

func init() {
	rootCmd.AddCommand(areasCmd)
}
