package embedding

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/nightwatch-ai/nightwatch/internal/vecmath"
)

// HashEmbedder is a deterministic, dependency-free embedder using feature
// hashing: word unigrams and bigrams are hashed into a fixed number of
// buckets with a signed FNV-1a hash, then L2-normalized. It captures
// lexical overlap only, not meaning, but it is stable, fast, and good
// enough for the demo corpus; swap in LocalEmbedder for real semantics.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder creates a HashEmbedder producing vectors of the given
// width. Non-positive dims fall back to DefaultDims.
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultDims
	}
	return &HashEmbedder{dims: dims}
}

// Dims returns the embedding width.
func (e *HashEmbedder) Dims() int { return e.dims }

// Embed hashes word unigrams and bigrams of text into the vector.
// Empty text yields a zero vector and no error.
func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dims)

	words := strings.Fields(text)
	for i, w := range words {
		e.bump(vec, w)
		if i+1 < len(words) {
			e.bump(vec, w+" "+words[i+1])
		}
	}

	return vecmath.Normalize(vec), nil
}

// bump adds a signed unit contribution for one token. The low bit of the
// hash picks the sign so buckets cancel rather than drift positive.
func (e *HashEmbedder) bump(vec []float32, token string) {
	h := fnv.New64a()
	h.Write([]byte(token))
	sum := h.Sum64()

	idx := int(sum % uint64(e.dims))
	if sum&(1<<63) != 0 {
		vec[idx] -= 1
	} else {
		vec[idx] += 1
	}
}
