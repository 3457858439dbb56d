// Package embedding defines the embedding boundary for incident text.
// Embedders must be deterministic for identical input within a process
// lifetime, and callers must always embed normalized text so the query
// space stays consistent with stored vectors.
package embedding

import "context"

// DefaultDims is the embedding width used by the built-in hash embedder.
// It matches the width of common sentence-embedding models so stores can
// switch embedders without a schema change.
const DefaultDims = 384

// Embedder converts text into a fixed-length numeric vector.
type Embedder interface {
	// Embed returns a dense vector for the given text. Deterministic:
	// identical text yields an identical vector for the process lifetime.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dims returns the length of vectors produced by Embed.
	Dims() int
}
