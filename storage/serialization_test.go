package storage

import (
	"testing"
	"time"

	"github.com/poiesic/querygen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("site reliability engineer query")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID(nil)
	assert.Error(t, err)
}

func TestMarshalUnmarshalQueryRecord(t *testing.T) {
	record := &core.QueryRecord{
		Id:    core.IDFromContent(`"python" AND "aws"`),
		Query: `"python" AND "aws"`,
		Keywords: []core.KeywordItem{
			{Keyword: "python", Frequency: 5, Category: core.CategorySkill},
			{Keyword: "aws", Frequency: 3},
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	data := MarshalQueryRecord(record)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalQueryRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestUnmarshalQueryRecord_Corrupt(t *testing.T) {
	record := &core.QueryRecord{Id: 7, Query: "some query"}
	data := MarshalQueryRecord(record)

	_, err := UnmarshalQueryRecord(data[:len(data)-3])
	assert.Error(t, err)
}

func TestMarshalUnmarshalRunRecord(t *testing.T) {
	run := &core.RunRecord{
		Id:        12,
		Dataset:   "benchmark.json",
		ItemCount: 25,
		UsedAI:    true,
		Overall:   core.MetricsResult{Precision: 0.61, Recall: 0.54, F1Score: 0.57, RankCorrelation: 0.735},
		Baseline:  core.MetricsResult{Precision: 0.30, Recall: 0.28, F1Score: 0.29, RankCorrelation: 0.595},
		Elapsed:   42 * time.Second,
		CreatedAt: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
	}

	data := MarshalRunRecord(run)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalRunRecord(data)
	require.NoError(t, err)
	assert.Equal(t, run, decoded)
}
