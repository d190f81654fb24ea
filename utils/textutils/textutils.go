// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils provides text normalization helpers shared by the
// collector and the cleaning pipeline.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var titleCaser = cases.Title(language.AmericanEnglish, cases.NoLower)

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// TitleCase capitalizes the first letter of each word. Already-capitalized
// runs are left alone so names like "BBQ" or "McDonald's" survive.
func TitleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// Slug converts a human label into a filesystem-safe token: accents folded,
// lowercased, runs of non-alphanumerics collapsed into single underscores.
func Slug(s string) string {
	folded := LowerASCIIFolding(s)

	var sb strings.Builder

	lastUnderscore := true // swallow leading separators

	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)

			lastUnderscore = false
		default:
			if !lastUnderscore {
				sb.WriteByte('_')

				lastUnderscore = true
			}
		}
	}

	return strings.TrimRight(sb.String(), "_")
}
