package evaluate

import (
	"math"
	"slices"

	"github.com/poiesic/querygen/core"
)

// advancedStats computes distribution statistics over a set of per-item
// metric results. Standard deviation is the population form. Returns nil
// for an empty input.
func advancedStats(results []core.MetricsResult) *core.AdvancedMetricsResult {
	if len(results) == 0 {
		return nil
	}

	precision := metricColumn(results, func(m core.MetricsResult) float64 { return m.Precision })
	recall := metricColumn(results, func(m core.MetricsResult) float64 { return m.Recall })
	f1 := metricColumn(results, func(m core.MetricsResult) float64 { return m.F1Score })
	rank := metricColumn(results, func(m core.MetricsResult) float64 { return m.RankCorrelation })

	compose := func(stat func([]float64) float64) core.MetricsResult {
		return core.MetricsResult{
			Precision:       stat(precision),
			Recall:          stat(recall),
			F1Score:         stat(f1),
			RankCorrelation: stat(rank),
		}
	}

	return &core.AdvancedMetricsResult{
		Mean:   compose(mean),
		Median: compose(median),
		StdDev: compose(stdDev),
		Min:    compose(slices.Min),
		Max:    compose(slices.Max),
	}
}

func metricColumn(results []core.MetricsResult, pick func(core.MetricsResult) float64) []float64 {
	column := make([]float64, len(results))
	for i, m := range results {
		column[i] = pick(m)
	}
	return column
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func stdDev(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
