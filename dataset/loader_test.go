package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/querygen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	t.Run("string and object ground truth", func(t *testing.T) {
		data := []byte(`[
			{
				"id": "job-1",
				"description": "Backend developer role",
				"groundTruth": ["python", {"keyword": "aws", "frequency": 3}]
			},
			{
				"description": "Data engineer role",
				"groundTruth": [{"term": "sql", "weight": 2, "category": "skill"}]
			}
		]`)

		items, err := ParseJSON(data)
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, "job-1", items[0].Id)
		assert.Equal(t, []core.KeywordItem{
			{Keyword: "python", Frequency: 1},
			{Keyword: "aws", Frequency: 3},
		}, items[0].GroundTruth)

		assert.Equal(t, "item-1", items[1].Id)
		assert.Equal(t, []core.KeywordItem{
			{Keyword: "sql", Frequency: 2, Category: core.CategorySkill},
		}, items[1].GroundTruth)
	})

	t.Run("snake_case ground truth key", func(t *testing.T) {
		data := []byte(`[{"id": "a", "description": "text", "ground_truth": ["go"]}]`)
		items, err := ParseJSON(data)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "go", items[0].GroundTruth[0].Keyword)
	})

	t.Run("items without description are skipped", func(t *testing.T) {
		data := []byte(`[
			{"id": "a", "description": "  "},
			{"id": "b", "description": "real text", "groundTruth": []}
		]`)
		items, err := ParseJSON(data)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "b", items[0].Id)
	})

	t.Run("non-canonical category is dropped", func(t *testing.T) {
		data := []byte(`[{"description": "x", "groundTruth": [{"keyword": "go", "category": "Tech Stack"}]}]`)
		items, err := ParseJSON(data)
		require.NoError(t, err)
		assert.Empty(t, items[0].GroundTruth[0].Category)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseJSON([]byte(`{"not": "an array"}`))
		assert.ErrorIs(t, err, ErrInvalidDataset)
	})

	t.Run("all items unusable", func(t *testing.T) {
		_, err := ParseJSON([]byte(`[{"id": "a"}]`))
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestParseCSV(t *testing.T) {
	t.Run("header aliases and title prepending", func(t *testing.T) {
		data := []byte("Position_Title,Job_Description,Keywords\n" +
			"Backend Engineer,Build APIs in Go,\"go, grpc:2\"\n")

		items, err := ParseCSV(data)
		require.NoError(t, err)
		require.Len(t, items, 1)

		assert.Equal(t, "Backend Engineer: Build APIs in Go", items[0].Description)
		assert.Equal(t, []core.KeywordItem{
			{Keyword: "go", Frequency: 1},
			{Keyword: "grpc", Frequency: 2},
		}, items[0].GroundTruth)
	})

	t.Run("id falls back through aliases to index", func(t *testing.T) {
		data := []byte("company_name,description\nAcme,Some role\n,Another role\n")
		items, err := ParseCSV(data)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Acme", items[0].Id)
		assert.Equal(t, "item-1", items[1].Id)
	})

	t.Run("model_response keyword array wins", func(t *testing.T) {
		data := []byte("description,model_response,keywords\n" +
			`Some role,"{""keywords"": [""python"", ""aws""]}","ignored"` + "\n")

		items, err := ParseCSV(data)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, []core.KeywordItem{
			{Keyword: "python", Frequency: 1},
			{Keyword: "aws", Frequency: 1},
		}, items[0].GroundTruth)
	})

	t.Run("model_response object keys become keywords", func(t *testing.T) {
		data := []byte("description,model_response\n" +
			`Some role,"{""Kubernetes"": ""skill"", ""N/A"": ""x"", ""Go"": 1}"` + "\n")

		items, err := ParseCSV(data)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, []core.KeywordItem{
			{Keyword: "Kubernetes", Frequency: 1, Category: core.CategorySkill},
		}, items[0].GroundTruth)
	})

	t.Run("malformed model_response salvages quoted terms", func(t *testing.T) {
		data := []byte("description,model_response\n" +
			`Some role,"keywords are 'python' and 'aws' apparently"` + "\n")

		items, err := ParseCSV(data)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, []core.KeywordItem{
			{Keyword: "python", Frequency: 1},
			{Keyword: "aws", Frequency: 1},
		}, items[0].GroundTruth)
	})

	t.Run("rows without description are skipped", func(t *testing.T) {
		data := []byte("id,description\nrow-1,\nrow-2,real text\n")
		items, err := ParseCSV(data)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "row-2", items[0].Id)
	})

	t.Run("header only", func(t *testing.T) {
		_, err := ParseCSV([]byte("id,description\n"))
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("dispatches on extension", func(t *testing.T) {
		jsonPath := filepath.Join(dir, "data.json")
		require.NoError(t, os.WriteFile(jsonPath,
			[]byte(`[{"id": "a", "description": "text", "groundTruth": ["go"]}]`), 0o644))

		items, err := Load(jsonPath)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		csvPath := filepath.Join(dir, "data.csv")
		require.NoError(t, os.WriteFile(csvPath,
			[]byte("id,description\na,text\n"), 0o644))

		items, err = Load(csvPath)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "data.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})
}
