package embed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackVector(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		first := FallbackVector("kubernetes", Dimension)
		second := FallbackVector("kubernetes", Dimension)
		assert.Equal(t, first, second)
	})

	t.Run("unit norm", func(t *testing.T) {
		for _, text := range []string{"react", "machine learning", "x", ""} {
			vector := FallbackVector(text, Dimension)
			require.Len(t, vector, Dimension)

			var sumSquares float64
			for _, v := range vector {
				sumSquares += float64(v) * float64(v)
			}
			assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-4, "text %q", text)
		}
	})

	t.Run("different texts differ", func(t *testing.T) {
		a := FallbackVector("react", Dimension)
		b := FallbackVector("angular", Dimension)
		assert.NotEqual(t, a, b)
	})

	t.Run("seed is character sum", func(t *testing.T) {
		// Same character multiset, same seed, same vector.
		a := FallbackVector("ab", Dimension)
		b := FallbackVector("ba", Dimension)
		assert.Equal(t, a, b)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("scales to unit length", func(t *testing.T) {
		vector := Normalize([]float32{3, 4})
		assert.InDelta(t, 0.6, float64(vector[0]), 1e-6)
		assert.InDelta(t, 0.8, float64(vector[1]), 1e-6)
	})

	t.Run("zero vector unchanged", func(t *testing.T) {
		vector := Normalize([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, vector)
	})
}

func TestCosine(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.5, 0.5, 0.1}
		assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{1}))
	})

	t.Run("empty vectors", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine(nil, nil))
	})

	t.Run("zero vector", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 1}))
	})
}
