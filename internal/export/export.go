// Package export reads and writes portable incident dataset files, so
// incident histories can be moved between nightwatch instances.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nightwatch-ai/nightwatch/internal/embedding"
	"github.com/nightwatch-ai/nightwatch/internal/models"
	"github.com/nightwatch-ai/nightwatch/internal/normalize"
	"github.com/nightwatch-ai/nightwatch/internal/store"
)

// FormatVersion is the current dataset file format version.
const FormatVersion = 1

// fileType marks nightwatch dataset files in the header.
const fileType = "nightwatch-incidents"

// Header describes a dataset file without its payload.
type Header struct {
	Version   int               `json:"version"`
	Type      string            `json:"type"`
	CreatedAt string            `json:"created_at"`
	Count     int               `json:"count"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// File is the on-disk dataset format. Vectors are not exported; imports
// re-embed each record with the importing instance's embedder, so files
// stay portable across embedding backends.
type File struct {
	Header    Header            `json:"header"`
	Incidents []models.Incident `json:"incidents"`
}

// WriteOptions customizes the exported header.
type WriteOptions struct {
	// Metadata is attached to the file header verbatim.
	Metadata map[string]string
}

// ExportResult reports what an Export wrote.
type ExportResult struct {
	Exported int    `json:"exported"`
	Path     string `json:"path"`
}

// Export writes up to limit incidents from the store to path. A
// non-positive limit exports everything the store will return.
func Export(ctx context.Context, src store.IncidentStore, path string, limit int, opts *WriteOptions) (*ExportResult, error) {
	if limit <= 0 {
		count, err := src.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting incidents: %w", err)
		}
		limit = count
	}

	incidents, err := src.Query(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("reading incidents: %w", err)
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}

	file := File{
		Header: Header{
			Version:   FormatVersion,
			Type:      fileType,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Count:     len(incidents),
		},
		Incidents: incidents,
	}
	if opts != nil && len(opts.Metadata) > 0 {
		file.Header.Metadata = opts.Metadata
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing dataset: %w", err)
	}
	return &ExportResult{Exported: len(incidents), Path: path}, nil
}

// ReadHeader reads only the header of a dataset file.
func ReadHeader(path string) (*Header, error) {
	file, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return &file.Header, nil
}

// ImportOptions controls conflict handling during Import.
type ImportOptions struct {
	// Replace overwrites records whose IDs already exist in the store.
	// When false, existing IDs are skipped.
	Replace bool
}

// ImportResult reports what an Import did.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import loads a dataset file into the store. Each record's vector is
// recomputed from its normalized text with the importing instance's
// embedder.
func Import(ctx context.Context, dst store.IncidentStore, emb embedding.Embedder, path string, opts ImportOptions) (*ImportResult, error) {
	file, err := readFile(path)
	if err != nil {
		return nil, err
	}

	existing := map[string]bool{}
	if !opts.Replace {
		count, err := dst.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting incidents: %w", err)
		}
		if count > 0 {
			current, err := dst.Query(ctx, nil, count)
			if err != nil {
				return nil, fmt.Errorf("reading existing incidents: %w", err)
			}
			for _, inc := range current {
				existing[inc.ID] = true
			}
		}
	}

	result := &ImportResult{}
	for _, inc := range file.Incidents {
		if existing[inc.ID] {
			result.Skipped++
			continue
		}
		vec, err := emb.Embed(ctx, normalize.Text(inc.Text))
		if err != nil {
			return nil, fmt.Errorf("embedding %s: %w", inc.ID, err)
		}
		inc.Vector = vec
		if err := dst.Upsert(ctx, inc); err != nil {
			return nil, fmt.Errorf("storing %s: %w", inc.ID, err)
		}
		result.Imported++
	}
	return result, nil
}

func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing dataset file: %w", err)
	}
	if file.Header.Type != fileType {
		return nil, fmt.Errorf("file is not an incident dataset (type=%q)", file.Header.Type)
	}
	if file.Header.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported dataset version %d (newest supported: %d)", file.Header.Version, FormatVersion)
	}
	return &file, nil
}
