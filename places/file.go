// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const rawDirName = "raw"

// FileStore persists one raw backup per area, the unmodified API payload
// compressed with gzip. Backups are written before mapping so records
// can be re-derived when the mapping logic changes.
type FileStore struct {
	root string
}

// NewFileStore creates a file store rooted at the given data path.
func NewFileStore(root string) *FileStore {
	return &FileStore{
		root: filepath.Join(root, rawDirName),
	}
}

func (s *FileStore) pathFor(slug string) string {
	return filepath.Join(s.root, slug+".json.gz")
}

// SaveRawPlaces stores the raw hits for an area, keyed by its slug.
func (s *FileStore) SaveRawPlaces(slug string, hits []Place) (err error) {
	if err := os.MkdirAll(s.root, 0o700); err != nil {
		return fmt.Errorf("setting up raw backup directory: %w", err)
	}

	f, err := os.Create(filepath.Clean(s.pathFor(slug)))
	if err != nil {
		return fmt.Errorf("creating raw backup: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing raw backup: %w", cerr))
		}
	}()

	gw, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("creating gzip writer: %w", err)
	}

	defer func() {
		if cerr := gw.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing gzip writer: %w", cerr))
		}
	}()

	enc := json.NewEncoder(gw)
	enc.SetIndent("", "  ")

	if err := enc.Encode(hits); err != nil {
		return fmt.Errorf("writing raw backup: %w", err)
	}

	return err
}

// LoadRawPlaces reads back an area's raw backup.
func (s *FileStore) LoadRawPlaces(slug string) (hits []Place, err error) {
	f, err := os.Open(filepath.Clean(s.pathFor(slug)))
	if err != nil {
		return nil, fmt.Errorf("opening raw backup: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing raw backup: %w", cerr))
		}
	}()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}

	defer func() {
		if cerr := gr.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing gzip reader: %w", cerr))
		}
	}()

	if err := json.NewDecoder(gr).Decode(&hits); err != nil {
		return nil, fmt.Errorf("parsing raw backup: %w", err)
	}

	return hits, err
}
