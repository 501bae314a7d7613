package embed

import "math"

// Dimension is the embedding dimension used throughout the pipeline.
const Dimension = 384

// FallbackVector generates the deterministic pseudo-random embedding for a
// text. The seed is the sum of the text's character codes; each dimension
// is the fractional part of a scaled sinusoid over seed+index, centered on
// zero. The result is L2-normalized. Identical text always yields an
// identical vector.
func FallbackVector(text string, dim int) []float32 {
	var seed float64
	for _, r := range text {
		seed += float64(r)
	}

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		x := math.Sin(seed+float64(i)) * 10000
		vector[i] = float32(x - math.Floor(x) - 0.5)
	}
	return Normalize(vector)
}

// Normalize scales a vector to unit length in place and returns it.
// The zero vector is returned unchanged.
func Normalize(vector []float32) []float32 {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vector
	}
	norm := float32(1 / math.Sqrt(sumSquares))
	for i := range vector {
		vector[i] *= norm
	}
	return vector
}

// Cosine computes the cosine similarity of two vectors. Mismatched lengths
// or zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
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
