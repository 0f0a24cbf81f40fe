package trends

import (
	"time"

	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

// HeatmapDays is the number of cells shown in the activity heatmap.
const HeatmapDays = 56

// WindowTotals sums the totals of the last days days, today included.
func WindowTotals(totals DailyTotals, today datekey.DateKey, days int) DayTotals {
	var sum DayTotals
	if days <= 0 {
		return sum
	}
	for _, day := range datekey.Range(today.Shift(-(days - 1)), today) {
		sum.Time += totals[day].Time
		sum.Reps += totals[day].Reps
	}
	return sum
}

type TodayStats struct {
	Time     int `json:"time"`
	Reps     int `json:"reps"`
	Sessions int `json:"sessions"`
}

// TodaySummary totals the entries logged on today.
func TodaySummary(list []entries.Entry, today datekey.DateKey, loc *time.Location) TodayStats {
	var stats TodayStats
	for _, e := range list {
		if e.DateKey(loc) != today {
			continue
		}
		stats.Sessions++
		switch e.Mode {
		case entries.ModeTime:
			stats.Time += e.Amount
		case entries.ModeReps:
			stats.Reps += e.Amount
		}
	}
	return stats
}

type ChartDay struct {
	DateKey datekey.DateKey `json:"dateKey"`
	DayTotals
}

// ChartTotals returns the totals of the last days days, oldest first,
// with zeroes for days without entries.
func ChartTotals(totals DailyTotals, today datekey.DateKey, days int) []ChartDay {
	if days <= 0 {
		return []ChartDay{}
	}
	keys := datekey.Range(today.Shift(-(days - 1)), today)
	chart := make([]ChartDay, 0, len(keys))
	for _, day := range keys {
		chart = append(chart, ChartDay{
			DateKey:   day,
			DayTotals: totals[day],
		})
	}
	return chart
}

type HeatCell struct {
	DateKey datekey.DateKey `json:"dateKey"`
	Count   int             `json:"count"`
	Level   int             `json:"level"`
}

// Heatmap returns days cells ending on today, oldest first. The level of a
// cell grades its entry count against the busiest day ever logged:
//   - 0: no entries
//   - 1: up to a quarter of the max
//   - 2: up to half
//   - 3: up to three quarters
//   - 4: above that
func Heatmap(counts map[datekey.DateKey]int, today datekey.DateKey, days int) []HeatCell {
	if days <= 0 {
		return []HeatCell{}
	}

	maxCount := 0
	for _, count := range counts {
		maxCount = max(maxCount, count)
	}

	keys := datekey.Range(today.Shift(-(days - 1)), today)
	cells := make([]HeatCell, 0, len(keys))
	for _, day := range keys {
		count := counts[day]
		cells = append(cells, HeatCell{
			DateKey: day,
			Count:   count,
			Level:   heatLevel(count, maxCount),
		})
	}
	return cells
}

func heatLevel(count, maxCount int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	ratio := float64(count) / float64(maxCount)
	switch {
	case ratio <= 0.25:
		return 1
	case ratio <= 0.5:
		return 2
	case ratio <= 0.75:
		return 3
	default:
		return 4
	}
}
