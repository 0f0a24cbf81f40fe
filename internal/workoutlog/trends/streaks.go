package trends

import (
	"slices"

	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
)

type StreakStats struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
	ActiveDays    int `json:"activeDays"`
}

// CalculateStreaks derives streak stats from per-day entry counts.
// The current streak counts consecutive active days ending on today; a day
// without entries today means no current streak.
func CalculateStreaks(counts map[datekey.DateKey]int, today datekey.DateKey) StreakStats {
	active := make([]datekey.DateKey, 0, len(counts))
	for key, count := range counts {
		if count > 0 {
			active = append(active, key)
		}
	}
	if len(active) == 0 {
		return StreakStats{}
	}
	slices.Sort(active)

	current := 0
	for day := today; counts[day] > 0; day = day.Shift(-1) {
		current++
	}

	longest, running := 0, 0
	for i, key := range active {
		if i > 0 && active[i-1].Shift(1) == key {
			running++
		} else {
			running = 1
		}
		longest = max(longest, running)
	}

	return StreakStats{
		CurrentStreak: current,
		LongestStreak: longest,
		ActiveDays:    len(active),
	}
}
