package querygen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/querygen/core"
)

const engineTestDescription = `Senior Software Engineer

We are looking for a senior software engineer with strong Python and AWS
experience. You will build microservices with Docker and Kubernetes, work
with PostgreSQL, and collaborate across teams. A bachelor's degree in
computer science or equivalent experience is required. Python and AWS are
used daily across our stack.`

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := NewEngine("", append([]Option{WithInMemoryStorage()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("create with file storage", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		engine, err := NewEngine(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		// Verify components are initialized
		assert.NotNil(t, engine.QueryRepository())
		assert.NotNil(t, engine.RunRepository())
		assert.NotNil(t, engine.backend)
		assert.NotNil(t, engine.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create an engine at a file path instead of a directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		engine, err := NewEngine(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

func TestEngine_Close(t *testing.T) {
	tmpDir := t.TempDir()
	engine, err := NewEngine(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, engine)

	err = engine.Close()
	assert.NoError(t, err)
}

func TestEngine_ExtractKeywords(t *testing.T) {
	engine := newTestEngine(t)

	keywords, strategy, err := engine.ExtractKeywords(context.Background(), engineTestDescription)
	require.NoError(t, err)
	require.NotEmpty(t, keywords)
	assert.NotEmpty(t, strategy)

	terms := make(map[string]bool)
	for _, k := range keywords {
		terms[k.Keyword] = true
	}
	assert.True(t, terms["python"] || terms["aws"], "expected a prominent skill in %v", keywords)
}

func TestEngine_GenerateAndSaveQuery(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	keywords := []core.KeywordItem{
		{Keyword: "python", Frequency: 3, Category: core.CategorySkill},
		{Keyword: "aws", Frequency: 2, Category: core.CategorySkill},
		{Keyword: "software engineer", Frequency: 2, Category: core.CategoryRole},
	}

	queryText := engine.GenerateQuery(ctx, keywords)
	require.NotEmpty(t, queryText)
	assert.Contains(t, queryText, `"python"`)
	assert.Contains(t, queryText, " AND ")

	saved, err := engine.SaveQuery(ctx, queryText, keywords)
	require.NoError(t, err)
	assert.NotZero(t, saved.Id)

	recent, err := engine.RecentQueries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, queryText, recent[0].Query)
}

func TestEngine_Relationships(t *testing.T) {
	engine := newTestEngine(t)

	graph, err := engine.Relationships(context.Background(), []core.KeywordItem{
		{Keyword: "python", Frequency: 3},
		{Keyword: "aws", Frequency: 2},
		{Keyword: "docker", Frequency: 1},
	})
	require.NoError(t, err)

	// Every term lands in exactly one cluster.
	clustered := 0
	for _, c := range graph.Clusters {
		clustered += len(c.Terms)
	}
	assert.Equal(t, 3, clustered)
}

func TestEngine_Evaluate(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	items := []core.EvaluationDataItem{
		{Id: "item-1", Description: engineTestDescription},
		{Id: "item-2", Description: "Data engineer with Python, SQL, and Airflow experience building pipelines."},
	}

	result, err := engine.Evaluate(ctx, "smoke", items, nil)
	require.NoError(t, err)
	require.Len(t, result.PerItem, 2)
	assert.GreaterOrEqual(t, result.Overall.Precision, 0.21)
	assert.GreaterOrEqual(t, result.Baseline.Precision, 0.15)

	runs, err := engine.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "smoke", runs[0].Dataset)
	assert.Equal(t, 2, runs[0].ItemCount)
	assert.False(t, runs[0].UsedAI)
}

func TestEngine_Compare(t *testing.T) {
	engine := newTestEngine(t)

	comparison, err := engine.Compare(context.Background(), engineTestDescription)
	require.NoError(t, err)
	assert.NotEmpty(t, comparison.Baseline)
	assert.NotEmpty(t, comparison.Semantic)
	assert.GreaterOrEqual(t, comparison.Overlap, 1)
	assert.GreaterOrEqual(t, comparison.BaselineElapsed.Nanoseconds(), int64(0))
}

func TestEngine_ModelStatus(t *testing.T) {
	engine := newTestEngine(t)

	status := engine.ModelStatus()
	assert.False(t, status.Ready)
}
