package trends

import (
	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

type TrendPoint struct {
	DateKey datekey.DateKey `json:"dateKey"`
	Value   float64         `json:"value"`
}

type SeriesParams struct {
	StartDateKey datekey.DateKey
	EndDateKey   datekey.DateKey
	Totals       DailyTotals
	Metric       entries.Mode
	WindowDays   int
	FirstTracked datekey.DateKey
}

// RollingAverageSeries returns one point per day from start to end, each
// being the adjusted average of the window ending on that day.
func RollingAverageSeries(params SeriesParams) []TrendPoint {
	days := datekey.Range(params.StartDateKey, params.EndDateKey)
	series := make([]TrendPoint, 0, len(days))
	for _, day := range days {
		series = append(series, TrendPoint{
			DateKey: day,
			Value: AdjustedAverage(AverageParams{
				EndDateKey:   day,
				Totals:       params.Totals,
				Metric:       params.Metric,
				WindowDays:   params.WindowDays,
				FirstTracked: params.FirstTracked,
			}),
		})
	}
	return series
}

// Comparison holds the latest series value next to an earlier baseline.
type Comparison struct {
	Latest   TrendPoint `json:"latest"`
	Baseline TrendPoint `json:"baseline"`
	Delta    float64    `json:"delta"`
}

// CompareSeries compares the last point of series with the point daysBack
// positions earlier. It reports false when the series is too short.
func CompareSeries(series []TrendPoint, daysBack int) (Comparison, bool) {
	if daysBack <= 0 || len(series) <= daysBack {
		return Comparison{}, false
	}

	latest := series[len(series)-1]
	baseline := series[len(series)-1-daysBack]
	return Comparison{
		Latest:   latest,
		Baseline: baseline,
		Delta:    latest.Value - baseline.Value,
	}, true
}
