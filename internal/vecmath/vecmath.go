// Package vecmath provides small vector operations shared by the embedding
// and similarity-search code paths.
package vecmath

import "math"

// CosineSimilarity returns the cosine similarity between a and b in
// [-1, 1]. Mismatched lengths, empty vectors, and zero vectors all yield 0
// rather than NaN.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize returns a copy of v scaled to unit length. Zero vectors are
// returned as an unchanged copy.
func Normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return out
	}

	inv := 1.0 / math.Sqrt(norm)
	for i := range out {
		out[i] = float32(float64(out[i]) * inv)
	}
	return out
}
