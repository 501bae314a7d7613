package openai

import (
	"context"
	"testing"

	"github.com/poiesic/querygen/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offlineJobText = `We are hiring a Senior Software Engineer to build our data platform.
Experience with Kubernetes, Terraform and machine learning pipelines required.
A degree in Computer Science is preferred. Kubernetes experience is essential.`

func TestExtractOffline(t *testing.T) {
	t.Run("deterministic across calls", func(t *testing.T) {
		first := extractOffline(offlineJobText, 10)
		second := extractOffline(offlineJobText, 10)
		assert.Equal(t, first, second)
	})

	t.Run("lifts curated phrases with categories", func(t *testing.T) {
		keywords := extractOffline(offlineJobText, 20)

		byTerm := make(map[string]ai.ExtractedKeyword)
		for _, k := range keywords {
			byTerm[k.Term] = k
		}

		require.Contains(t, byTerm, "software engineer")
		assert.Equal(t, "role", byTerm["software engineer"].Category)
		require.Contains(t, byTerm, "machine learning")
		assert.Equal(t, "skill", byTerm["machine learning"].Category)
		require.Contains(t, byTerm, "computer science")
		assert.Equal(t, "qualification", byTerm["computer science"].Category)
	})

	t.Run("phrase words are not repeated as single words", func(t *testing.T) {
		keywords := extractOffline(offlineJobText, 20)
		for _, k := range keywords {
			assert.NotEqual(t, "software", k.Term)
			assert.NotEqual(t, "engineer", k.Term)
		}
	})

	t.Run("sorted by descending weight", func(t *testing.T) {
		keywords := extractOffline(offlineJobText, 20)
		for i := 1; i < len(keywords); i++ {
			assert.GreaterOrEqual(t, keywords[i-1].Weight, keywords[i].Weight)
		}
	})

	t.Run("respects max keywords", func(t *testing.T) {
		keywords := extractOffline(offlineJobText, 3)
		assert.Len(t, keywords, 3)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, extractOffline("", 10))
		assert.Empty(t, extractOffline("   \n ", 10))
	})
}

func TestKeywordExtractor_OfflineMode(t *testing.T) {
	cfg := ai.NewConfig() // no API key: offline
	extractor, err := NewKeywordExtractor(cfg)
	require.NoError(t, err)

	keywords, err := extractor.ExtractKeywords(context.Background(), offlineJobText)
	require.NoError(t, err)
	assert.NotEmpty(t, keywords)
	assert.LessOrEqual(t, len(keywords), cfg.MaxKeywords)
}

func TestKeywordExtractor_PlaceholderKeyIsOffline(t *testing.T) {
	cfg := ai.NewConfig(ai.WithAPIKey(ai.PlaceholderAPIKey))
	extractor, err := NewKeywordExtractor(cfg)
	require.NoError(t, err)

	first, err := extractor.ExtractKeywords(context.Background(), offlineJobText)
	require.NoError(t, err)
	second, err := extractor.ExtractKeywords(context.Background(), offlineJobText)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"role", "role"},
		{"Skill", "skill"},
		{"qualification", "qualification"},
		{"other", "other"},
		{"job title", "role"},
		{"technology", "skill"},
		{"certification", "qualification"},
		{"banana", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeCategory(tt.in), "category %q", tt.in)
	}
}
