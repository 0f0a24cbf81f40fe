package trends

import (
	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

type AverageParams struct {
	EndDateKey datekey.DateKey
	Totals     DailyTotals
	Metric     entries.Mode
	WindowDays int
	// FirstTracked clamps the window start when it is later than the
	// nominal start. Empty means no clamping.
	FirstTracked datekey.DateKey
}

type weekBucket struct {
	activeDays int
	restDays   int
}

// AdjustedAverage returns the per-day average of the metric over the window
// ending on EndDateKey, forgiving one rest day in every Sunday-Saturday week
// the window touches. A partial week at either end of the window gets its
// own forgiven day. Zero when the window is empty or nothing is counted.
func AdjustedAverage(params AverageParams) float64 {
	if params.EndDateKey == "" || params.WindowDays <= 0 {
		return 0
	}

	start := params.EndDateKey.Shift(-(params.WindowDays - 1))
	if params.FirstTracked != "" && start < params.FirstTracked {
		start = params.FirstTracked
	}
	if start > params.EndDateKey {
		return 0
	}

	total := 0
	buckets := make(map[datekey.DateKey]*weekBucket)
	for _, day := range datekey.Range(start, params.EndDateKey) {
		value := params.Totals.Value(day, params.Metric)
		total += value

		week := day.WeekStart()
		bucket, ok := buckets[week]
		if !ok {
			bucket = &weekBucket{}
			buckets[week] = bucket
		}
		if value > 0 {
			bucket.activeDays++
		} else {
			bucket.restDays++
		}
	}

	counted := 0
	for _, bucket := range buckets {
		counted += bucket.activeDays + max(0, bucket.restDays-1)
	}
	if counted == 0 {
		return 0
	}

	return float64(total) / float64(counted)
}
