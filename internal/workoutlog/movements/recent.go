package movements

import (
	"slices"
	"strings"
	"time"

	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

type MovementTotals struct {
	// Name is the movement as first seen in the window.
	Name string `json:"name"`
	Key  string `json:"key"`
	Time int    `json:"time"`
	Reps int    `json:"reps"`
	Logs int    `json:"logs"`
}

// RecentTotals sums the entries of the last days days, today included, per
// movement. Rows are ordered by log count, then by time, both descending.
func RecentTotals(list []entries.Entry, today datekey.DateKey, days int, loc *time.Location) []MovementTotals {
	if days <= 0 {
		return []MovementTotals{}
	}
	from := today.Shift(-(days - 1))

	byKey := make(map[string]*MovementTotals)
	var rows []*MovementTotals
	for _, e := range list {
		day := e.DateKey(loc)
		if day < from || day > today {
			continue
		}
		key := entries.MovementKey(e.Movement)
		totals, ok := byKey[key]
		if !ok {
			totals = &MovementTotals{
				Name: entries.NormalizeMovementName(e.Movement),
				Key:  key,
			}
			byKey[key] = totals
			rows = append(rows, totals)
		}

		totals.Logs++
		switch e.Mode {
		case entries.ModeTime:
			totals.Time += e.Amount
		case entries.ModeReps:
			totals.Reps += e.Amount
		}
	}

	slices.SortStableFunc(rows, func(a, b *MovementTotals) int {
		if a.Logs != b.Logs {
			return b.Logs - a.Logs
		}
		if a.Time != b.Time {
			return b.Time - a.Time
		}
		return strings.Compare(a.Name, b.Name)
	})

	result := make([]MovementTotals, 0, len(rows))
	for _, r := range rows {
		result = append(result, *r)
	}
	return result
}
