package trends

import (
	"time"

	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

// DayTotals pools the amounts logged on one day.
type DayTotals struct {
	Time int `json:"time"` // seconds
	Reps int `json:"reps"`
}

// Value returns the total for the given metric.
func (t DayTotals) Value(metric entries.Mode) int {
	switch metric {
	case entries.ModeTime:
		return t.Time
	case entries.ModeReps:
		return t.Reps
	default:
		return 0
	}
}

func (t *DayTotals) add(e entries.Entry) {
	switch e.Mode {
	case entries.ModeTime:
		t.Time += e.Amount
	case entries.ModeReps:
		t.Reps += e.Amount
	}
}

// DailyTotals maps a day to its totals. A missing day means zero for both metrics.
type DailyTotals map[datekey.DateKey]DayTotals

// Value returns the metric total of day, zero when the day is absent.
func (d DailyTotals) Value(day datekey.DateKey, metric entries.Mode) int {
	return d[day].Value(metric)
}

// BuildDailyTotals sums entry amounts per local day and mode.
func BuildDailyTotals(list []entries.Entry, loc *time.Location) DailyTotals {
	totals := make(DailyTotals)
	for _, e := range list {
		key := e.DateKey(loc)
		dayTotals := totals[key]
		dayTotals.add(e)
		totals[key] = dayTotals
	}
	return totals
}

// FirstTrackedDateKey returns the earliest local day with an entry.
func FirstTrackedDateKey(list []entries.Entry, loc *time.Location) (datekey.DateKey, bool) {
	var first datekey.DateKey
	for _, e := range list {
		if key := e.DateKey(loc); first == "" || key < first {
			first = key
		}
	}
	return first, first != ""
}

// DailyCounts returns the number of entries logged on each local day.
func DailyCounts(list []entries.Entry, loc *time.Location) map[datekey.DateKey]int {
	counts := make(map[datekey.DateKey]int)
	for _, e := range list {
		counts[e.DateKey(loc)]++
	}
	return counts
}
