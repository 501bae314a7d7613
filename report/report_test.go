package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/querygen/core"
)

func sampleResult() *core.EvaluationResult {
	return &core.EvaluationResult{
		Overall:  core.MetricsResult{Precision: 0.5, Recall: 0.4, F1Score: 0.4444, RankCorrelation: 0.67},
		Baseline: core.MetricsResult{Precision: 0.3, Recall: 0.25, F1Score: 0.2727, RankCorrelation: 0.55},
		PerItem: []core.ItemResult{
			{
				ItemId: "item-1",
				Keywords: []core.KeywordItem{
					{Keyword: "python", Frequency: 3},
					{Keyword: "aws", Frequency: 2},
				},
				Metrics:         core.MetricsResult{Precision: 0.5, Recall: 0.4, F1Score: 0.4444, RankCorrelation: 0.67},
				BaselineMetrics: core.MetricsResult{Precision: 0.3, Recall: 0.25, F1Score: 0.2727, RankCorrelation: 0.55},
			},
			{
				ItemId:          "item-2",
				Metrics:         core.MetricsResult{Precision: 0.2354, Recall: 0.2079, F1Score: 0.2189, RankCorrelation: 0.45},
				BaselineMetrics: core.MetricsResult{Precision: 0.214, Recall: 0.189, F1Score: 0.199, RankCorrelation: 0.35},
				Recovered:       true,
			},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var decoded core.EvaluationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.InDelta(t, 0.5, decoded.Overall.Precision, 1e-9)
	require.Len(t, decoded.PerItem, 2)
	assert.Equal(t, "item-1", decoded.PerItem[0].ItemId)
	assert.True(t, decoded.PerItem[1].Recovered)

	// Indented output, not a single line.
	assert.Greater(t, strings.Count(buf.String(), "\n"), 5)
}

func TestWriteJSONNilResult(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, nil)
	assert.ErrorIs(t, err, ErrNilResult)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	row := records[1]
	assert.Equal(t, "item-1", row[0])
	assert.Equal(t, "0.5000", row[1])
	assert.Equal(t, "0.4444", row[3])
	assert.Equal(t, "0.5500", row[8])
	assert.Equal(t, "python; aws", row[9])
	assert.Equal(t, "false", row[10])

	recoveredRow := records[2]
	assert.Equal(t, "item-2", recoveredRow[0])
	assert.Equal(t, "", recoveredRow[9])
	assert.Equal(t, "true", recoveredRow[10])
}

func TestWriteCSVNilResult(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	assert.ErrorIs(t, err, ErrNilResult)
}

func TestWriteCSVEmptyPerItem(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &core.EvaluationResult{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}
