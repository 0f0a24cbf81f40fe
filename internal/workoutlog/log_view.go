package workoutlog

import (
	"cmp"
	"slices"
	"time"

	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
	"github.com/2beens/workoutlog/internal/workoutlog/trends"
)

// DayGroup is one day of the log with its entries, newest first.
type DayGroup struct {
	DateKey datekey.DateKey  `json:"dateKey"`
	Totals  trends.DayTotals `json:"totals"`
	Entries []entries.Entry  `json:"entries"`
}

// GroupByDay groups entries by local calendar day, newest day first.
func GroupByDay(list []entries.Entry, loc *time.Location) []DayGroup {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b entries.Entry) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})

	totals := trends.BuildDailyTotals(list, loc)
	groups := []DayGroup{}
	for _, e := range sorted {
		key := e.DateKey(loc)
		if n := len(groups); n > 0 && groups[n-1].DateKey == key {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, DayGroup{
			DateKey: key,
			Totals:  totals[key],
			Entries: []entries.Entry{e},
		})
	}
	return groups
}
