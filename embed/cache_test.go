package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Run("miss then hit", func(t *testing.T) {
		c := NewCache()

		_, ok := c.Get("react")
		assert.False(t, ok)

		c.Put("react", []float32{1, 2, 3})
		vector, ok := c.Get("react")
		require.True(t, ok)
		assert.Equal(t, []float32{1, 2, 3}, vector)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("get returns a copy", func(t *testing.T) {
		c := NewCache()
		c.Put("react", []float32{1, 2, 3})

		vector, _ := c.Get("react")
		vector[0] = 99

		fresh, _ := c.Get("react")
		assert.Equal(t, float32(1), fresh[0])
	})

	t.Run("put stores a copy", func(t *testing.T) {
		c := NewCache()
		original := []float32{1, 2, 3}
		c.Put("react", original)

		original[0] = 99
		vector, _ := c.Get("react")
		assert.Equal(t, float32(1), vector[0])
	})

	t.Run("first put wins", func(t *testing.T) {
		c := NewCache()
		c.Put("react", []float32{1})
		c.Put("react", []float32{2})

		vector, _ := c.Get("react")
		assert.Equal(t, []float32{1}, vector)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("keys are exact text", func(t *testing.T) {
		c := NewCache()
		c.Put("React", []float32{1})

		_, ok := c.Get("react")
		assert.False(t, ok)
	})
}
