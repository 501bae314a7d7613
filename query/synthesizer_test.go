package query

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/querygen/ai/mock"
	"github.com/poiesic/querygen/core"
	"github.com/poiesic/querygen/relate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedEngine builds a relationship engine whose embedder returns fixed
// vectors per term, so tests control every pairwise similarity exactly.
func scriptedEngine(t *testing.T, vectors map[string][]float32) *relate.Engine {
	t.Helper()
	m := mock.NewMockEmbedder()
	m.EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
		if v, ok := vectors[text]; ok {
			return v, nil
		}
		t.Fatalf("unscripted term %q", text)
		return nil, nil
	}
	engine, err := relate.NewEngine(m)
	require.NoError(t, err)
	return engine
}

func ranked(terms ...string) []core.KeywordItem {
	items := make([]core.KeywordItem, len(terms))
	for i, term := range terms {
		items[i] = core.KeywordItem{Keyword: term, Frequency: float64(len(terms) - i)}
	}
	return items
}

func TestNewSynthesizer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := NewSynthesizer()
		require.NoError(t, err)
		assert.Nil(t, s.engine)
		assert.Equal(t, defaultExpansionLimit, s.expansionLimit)
	})

	t.Run("rejects nil engine", func(t *testing.T) {
		_, err := NewSynthesizer(WithEngine(nil))
		assert.Error(t, err)
	})

	t.Run("rejects negative expansion limit", func(t *testing.T) {
		_, err := NewSynthesizer(WithExpansionLimit(-1))
		assert.Error(t, err)
	})
}

func TestSynthesizer_Degenerate(t *testing.T) {
	s, err := NewSynthesizer()
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, "", s.Synthesize(ctx, nil))
	assert.Equal(t, "", s.Synthesize(ctx, []core.KeywordItem{}))
	assert.Equal(t, `"golang"`, s.Synthesize(ctx, ranked("golang")))
}

func TestSynthesizer_UncategorizedFlat(t *testing.T) {
	s, err := NewSynthesizer()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("few keywords are all required", func(t *testing.T) {
		got := s.Synthesize(ctx, ranked("python", "aws", "docker"))
		assert.Equal(t, `"python" AND "aws" AND "docker"`, got)
	})

	t.Run("overflow keywords become one OR group", func(t *testing.T) {
		got := s.Synthesize(ctx, ranked("a", "b", "c", "d", "e", "f", "g"))
		assert.Equal(t, `"a" AND "b" AND "c" AND "d" AND "e" AND ("f" OR "g")`, got)
	})

	t.Run("sorts by descending frequency first", func(t *testing.T) {
		keywords := []core.KeywordItem{
			{Keyword: "aws", Frequency: 1},
			{Keyword: "python", Frequency: 5},
		}
		got := s.Synthesize(ctx, keywords)
		assert.Equal(t, `"python" AND "aws"`, got)
	})
}

func TestSynthesizer_CategorizedFlat(t *testing.T) {
	s, err := NewSynthesizer()
	require.NoError(t, err)

	keywords := []core.KeywordItem{
		{Keyword: "software engineer", Frequency: 10, Category: core.CategoryRole},
		{Keyword: "python", Frequency: 9, Category: core.CategorySkill},
		{Keyword: "aws", Frequency: 8, Category: core.CategorySkill},
		{Keyword: "docker", Frequency: 7, Category: core.CategorySkill},
		{Keyword: "kubernetes", Frequency: 6, Category: core.CategorySkill},
		{Keyword: "terraform", Frequency: 5, Category: core.CategorySkill},
		{Keyword: "bachelor's degree", Frequency: 4, Category: core.CategoryQualification},
	}
	got := s.Synthesize(context.Background(), keywords)
	want := `"software engineer" AND "python" AND "aws" AND "docker" AND ("kubernetes" OR "terraform") AND "bachelor's degree"`
	assert.Equal(t, want, got)
}

func TestSynthesizer_UncategorizedExpansion(t *testing.T) {
	engine := scriptedEngine(t, map[string][]float32{
		"t1": {1, 0, 0, 0},
		"t2": {0, 1, 0, 0},
		"t3": {0, 0, 1, 0},
		"t4": {0, 0, 0, 1},
		"t5": {0.5, 0.5, 0.5, 0.5},
		"t6": {0.9, 0.436, 0, 0}, // ~0.9 vs t1
	})
	s, err := NewSynthesizer(WithEngine(engine))
	require.NoError(t, err)

	got := s.Synthesize(context.Background(), ranked("t1", "t2", "t3", "t4", "t5", "t6"))
	// t6 is absorbed as an alternative of t1 and leaves the optional tail.
	assert.Equal(t, `("t1" OR "t6") AND "t2" AND "t3" AND "t4" AND "t5"`, got)
}

func TestSynthesizer_CategorizedClusterGrouping(t *testing.T) {
	engine := scriptedEngine(t, map[string][]float32{
		"r":    {1, 0, 0, 0, 0, 0},
		"s1":   {0, 1, 0, 0, 0, 0},
		"s2":   {0, 0, 1, 0, 0, 0},
		"s3":   {0, 0, 0, 1, 0, 0},
		"qual": {0, 0, 0, 0, 1, 0},
		"s4":   {0, 0, 0, 0, 0, 1},
		"s5":   {0, 0, 0, 0, 0.3, 0.954}, // ~0.954 vs s4
	})
	s, err := NewSynthesizer(WithEngine(engine))
	require.NoError(t, err)

	keywords := []core.KeywordItem{
		{Keyword: "r", Frequency: 10, Category: core.CategoryRole},
		{Keyword: "s1", Frequency: 9, Category: core.CategorySkill},
		{Keyword: "s2", Frequency: 8, Category: core.CategorySkill},
		{Keyword: "s3", Frequency: 7, Category: core.CategorySkill},
		{Keyword: "s4", Frequency: 6, Category: core.CategorySkill},
		{Keyword: "s5", Frequency: 5, Category: core.CategorySkill},
		{Keyword: "qual", Frequency: 4, Category: core.CategoryQualification},
	}
	got := s.Synthesize(context.Background(), keywords)
	// s4 and s5 share a cluster, so the optional tail keeps them together.
	want := `"r" AND "s1" AND "s2" AND "s3" AND ("s4" OR "s5") AND "qual"`
	assert.Equal(t, want, got)
}

func TestSynthesizer_EngineFailureFallsBack(t *testing.T) {
	m := mock.NewMockEmbedder()
	m.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
		return nil, errors.New("embedder offline")
	}
	engine, err := relate.NewEngine(m)
	require.NoError(t, err)

	s, err := NewSynthesizer(WithEngine(engine))
	require.NoError(t, err)

	got := s.Synthesize(context.Background(), ranked("a", "b", "c", "d", "e", "f", "g"))
	assert.Equal(t, `"a" AND "b" AND "c" AND "d" AND "e" AND ("f" OR "g")`, got)
}

func TestSynthesizer_Deterministic(t *testing.T) {
	engine, err := relate.NewEngine(mock.NewMockEmbedder())
	require.NoError(t, err)
	s, err := NewSynthesizer(WithEngine(engine))
	require.NoError(t, err)

	keywords := ranked(
		"software engineer", "python", "machine learning", "aws", "docker",
		"kubernetes", "postgresql", "rest apis", "ci/cd", "terraform",
	)

	ctx := context.Background()
	first := s.Synthesize(ctx, keywords)
	require.NotEmpty(t, first)
	for range 5 {
		assert.Equal(t, first, s.Synthesize(ctx, keywords))
	}

	// A fresh synthesizer over a fresh engine produces the same query.
	engine2, err := relate.NewEngine(mock.NewMockEmbedder())
	require.NoError(t, err)
	s2, err := NewSynthesizer(WithEngine(engine2))
	require.NoError(t, err)
	assert.Equal(t, first, s2.Synthesize(ctx, keywords))
}
