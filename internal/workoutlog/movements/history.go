package movements

import (
	"slices"
	"strings"
	"time"

	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

const (
	DefaultMinLogs        = 3
	DefaultStaleAfterDays = 5
	DefaultMaxHighlights  = 3
)

// Record tracks how often a movement was logged and on which day last.
type Record struct {
	Count      int             `json:"count"`
	LastLogged datekey.DateKey `json:"lastLoggedDateKey"`
}

// History maps a movement key to its record.
type History map[string]Record

// BuildHistory groups entries by movement type and movement key.
// Entries with an unknown type or an empty movement name are skipped.
func BuildHistory(list []entries.Entry, loc *time.Location) map[entries.MovementType]History {
	history := map[entries.MovementType]History{
		entries.MovementStretch:  {},
		entries.MovementExercise: {},
	}

	for _, e := range list {
		if !e.MovementType.IsValid() {
			continue
		}
		key := entries.MovementKey(e.Movement)
		if key == "" {
			continue
		}

		day := e.DateKey(loc)
		record := history[e.MovementType][key]
		record.Count++
		if record.LastLogged == "" || day > record.LastLogged {
			record.LastLogged = day
		}
		history[e.MovementType][key] = record
	}

	return history
}

type StaleParams struct {
	History History
	// VisibleNames restricts the selection to these movements; empty means all.
	VisibleNames []string
	Today        datekey.DateKey
	// Zero values fall back to the Default* constants.
	MinLogs        int
	StaleAfterDays int
	MaxHighlights  int
}

type staleCandidate struct {
	key       string
	daysSince int
	last      datekey.DateKey
}

// SelectStale returns the keys of movements that were logged at least
// MinLogs times but not in the last StaleAfterDays full days, stalest first.
func SelectStale(params StaleParams) []string {
	minLogs := cmpOr(params.MinLogs, DefaultMinLogs)
	staleAfter := cmpOr(params.StaleAfterDays, DefaultStaleAfterDays)
	maxHighlights := cmpOr(params.MaxHighlights, DefaultMaxHighlights)

	visible := make(map[string]struct{}, len(params.VisibleNames))
	for _, name := range params.VisibleNames {
		if key := entries.MovementKey(name); key != "" {
			visible[key] = struct{}{}
		}
	}

	var candidates []staleCandidate
	for key, record := range params.History {
		if len(visible) > 0 {
			if _, ok := visible[key]; !ok {
				continue
			}
		}
		if record.LastLogged == "" || record.Count < minLogs {
			continue
		}
		daysSince := datekey.DaysBetween(record.LastLogged, params.Today)
		if daysSince <= staleAfter {
			continue
		}
		candidates = append(candidates, staleCandidate{
			key:       key,
			daysSince: daysSince,
			last:      record.LastLogged,
		})
	}

	slices.SortFunc(candidates, func(a, b staleCandidate) int {
		if a.daysSince != b.daysSince {
			return b.daysSince - a.daysSince
		}
		if c := strings.Compare(string(a.last), string(b.last)); c != 0 {
			return c
		}
		return strings.Compare(a.key, b.key)
	})

	if len(candidates) > maxHighlights {
		candidates = candidates[:maxHighlights]
	}
	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		keys = append(keys, c.key)
	}
	return keys
}

func cmpOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
