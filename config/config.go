// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the optional YAML configuration file that
// overrides the built-in search areas and cleaning presets.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/platemap/platemap/curation"
	"github.com/platemap/platemap/places"
	"github.com/platemap/platemap/spatial"
)

// Configuration validation errors.
var (
	ErrInvalidCallLimit  = errors.New("collection.daily_call_limit must be at least 1")
	ErrInvalidMaxResults = errors.New("collection.max_results must be between 1 and 20")
	ErrInvalidCallDelay  = errors.New("collection.call_delay_ms must be non-negative")
	ErrConflictingBounds = errors.New("cleaning.bounds_preset and cleaning.bounds are mutually exclusive")
	ErrConflictingVolume = errors.New("cleaning.volume_preset and cleaning.volume_thresholds are mutually exclusive")
	ErrInvalidThresholds = errors.New("cleaning.volume_thresholds must be three strictly increasing positive values")
)

// Config is the full configuration file. Every section is optional; an
// absent value falls back to the built-in default.
type Config struct {
	Collection CollectionConfig `yaml:"collection"`
	Cleaning   CleaningConfig   `yaml:"cleaning"`
	Areas      []places.Area    `yaml:"areas"`
}

// CollectionConfig tunes the search API collector.
type CollectionConfig struct {
	DataPath       string `yaml:"data_path"`
	UserAgent      string `yaml:"user_agent"`
	DailyCallLimit int    `yaml:"daily_call_limit"`
	MaxResults     int    `yaml:"max_results"`
	CallDelayMs    int    `yaml:"call_delay_ms"`
}

// CleaningConfig tunes the cleaning passes. A preset name and an
// explicit value for the same knob cannot both be set.
type CleaningConfig struct {
	BoundsPreset     string               `yaml:"bounds_preset"`
	Bounds           *spatial.BoundingBox `yaml:"bounds"`
	VolumePreset     string               `yaml:"volume_preset"`
	VolumeThresholds []int                `yaml:"volume_thresholds"`
	TitleCaseNames   *bool                `yaml:"title_case_names"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for contradictions. Zero values are
// fine, they mean "use the default".
func (c *Config) Validate() error {
	if c.Collection.DailyCallLimit < 0 {
		return ErrInvalidCallLimit
	}

	if c.Collection.MaxResults < 0 || c.Collection.MaxResults > 20 {
		return ErrInvalidMaxResults
	}

	if c.Collection.CallDelayMs < 0 {
		return ErrInvalidCallDelay
	}

	if c.Cleaning.BoundsPreset != "" && c.Cleaning.Bounds != nil {
		return ErrConflictingBounds
	}

	if c.Cleaning.BoundsPreset != "" {
		if _, err := curation.BoundsPreset(c.Cleaning.BoundsPreset); err != nil {
			return err
		}
	}

	if c.Cleaning.Bounds != nil {
		if err := c.Cleaning.Bounds.Validate(); err != nil {
			return fmt.Errorf("cleaning.bounds: %w", err)
		}
	}

	if c.Cleaning.VolumePreset != "" && len(c.Cleaning.VolumeThresholds) > 0 {
		return ErrConflictingVolume
	}

	if c.Cleaning.VolumePreset != "" {
		if _, err := curation.VolumePreset(c.Cleaning.VolumePreset); err != nil {
			return err
		}
	}

	if n := len(c.Cleaning.VolumeThresholds); n > 0 {
		if n != 3 {
			return ErrInvalidThresholds
		}

		t := c.Cleaning.VolumeThresholds
		if t[0] < 1 || t[1] <= t[0] || t[2] <= t[1] {
			return ErrInvalidThresholds
		}
	}

	for i := range c.Areas {
		if err := c.Areas[i].Validate(); err != nil {
			return fmt.Errorf("areas[%d]: %w", i, err)
		}
	}

	return nil
}

// ClientOptions folds the collection section over the given defaults.
func (c *Config) ClientOptions(base places.ClientOptions) places.ClientOptions {
	if c.Collection.DataPath != "" {
		base.DataPath = c.Collection.DataPath
	}

	if c.Collection.UserAgent != "" {
		base.UserAgent = c.Collection.UserAgent
	}

	if c.Collection.DailyCallLimit > 0 {
		base.DailyCallLimit = c.Collection.DailyCallLimit
	}

	if c.Collection.MaxResults > 0 {
		base.MaxResults = c.Collection.MaxResults
	}

	if c.Collection.CallDelayMs > 0 {
		base.CallDelay = time.Duration(c.Collection.CallDelayMs) * time.Millisecond
	}

	return base
}

// CleaningOptions folds the cleaning section over the given defaults.
func (c *Config) CleaningOptions(base curation.Options) (curation.Options, error) {
	if c.Cleaning.BoundsPreset != "" {
		bounds, err := curation.BoundsPreset(c.Cleaning.BoundsPreset)
		if err != nil {
			return base, err
		}

		base.Bounds = bounds
	}

	if c.Cleaning.Bounds != nil {
		base.Bounds = *c.Cleaning.Bounds
	}

	if c.Cleaning.VolumePreset != "" {
		volume, err := curation.VolumePreset(c.Cleaning.VolumePreset)
		if err != nil {
			return base, err
		}

		base.Volume = volume
	}

	if t := c.Cleaning.VolumeThresholds; len(t) == 3 {
		base.Volume = curation.ReviewVolumeScheme{
			Name:       "custom",
			Thresholds: [3]int{t[0], t[1], t[2]},
		}
	}

	if c.Cleaning.TitleCaseNames != nil {
		base.TitleCaseNames = *c.Cleaning.TitleCaseNames
	}

	return base, nil
}

// SearchAreas returns the configured areas, or the built-in list when
// the file names none.
func (c *Config) SearchAreas() []places.Area {
	if len(c.Areas) > 0 {
		return c.Areas
	}

	return places.DefaultAreas()
}
