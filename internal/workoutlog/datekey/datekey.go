package datekey

import (
	"fmt"
	"strconv"
	"time"
)

// Layout is the canonical, zero-padded calendar day format.
const Layout = "2006-01-02"

// Years accepted by Parse. Within them keys are exactly ten characters long.
const (
	MinYear = 1
	MaxYear = 9999
)

const secondsPerDay = 24 * 60 * 60

// DateKey identifies one local calendar day as "YYYY-MM-DD".
// Lexicographic ordering of keys equals chronological ordering for years
// MinYear..MaxYear. Shift may step past them; such keys still round trip.
type DateKey string

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) DateKey {
	return DateKey(t.Format(Layout))
}

// FromUnixMilli returns the calendar day of the epoch milliseconds ms in loc.
func FromUnixMilli(ms int64, loc *time.Location) DateKey {
	return FromTime(time.UnixMilli(ms).In(loc))
}

// Parse validates s and returns it as a DateKey.
func Parse(s string) (DateKey, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("parse date key [%s]: %w", s, err)
	}
	if t.Year() < MinYear || t.Year() > MaxYear {
		return "", fmt.Errorf("parse date key [%s]: year outside %04d..%04d", s, MinYear, MaxYear)
	}
	return FromTime(t), nil
}

func (k DateKey) String() string {
	return string(k)
}

// civil returns the day as UTC midnight; day arithmetic on it never
// crosses a DST transition. Years of any width and sign are read back, so
// keys produced by Shift beyond the four digit range stay usable.
// Malformed keys yield the zero date.
func (k DateKey) civil() time.Time {
	s := string(k)
	n := len(s)
	if n < 7 || s[n-6] != '-' || s[n-3] != '-' {
		return time.Time{}
	}

	year, errY := strconv.Atoi(s[:n-6])
	month, errM := strconv.Atoi(s[n-5 : n-3])
	day, errD := strconv.Atoi(s[n-2:])
	if errY != nil || errM != nil || errD != nil || month < 1 || month > 12 || day < 1 {
		return time.Time{}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// e.g. 2026-02-30
		return time.Time{}
	}
	return t
}

// Midnight returns the instant the day starts in loc.
func (k DateKey) Midnight(loc *time.Location) time.Time {
	y, m, d := k.civil().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Shift moves the key by days whole calendar days (negative moves back).
func (k DateKey) Shift(days int) DateKey {
	return FromTime(k.civil().AddDate(0, 0, days))
}

// Weekday returns the day of the week of k.
func (k DateKey) Weekday() time.Weekday {
	return k.civil().Weekday()
}

// WeekStart returns the Sunday of the Sunday-Saturday week containing k.
func (k DateKey) WeekStart() DateKey {
	return k.Shift(-int(k.Weekday()))
}

// Range returns every key from start to end inclusive, oldest first.
// It is empty when either bound is empty or malformed, or start is after end.
func Range(start, end DateKey) []DateKey {
	if start == "" || end == "" {
		return nil
	}
	from, to := start.civil(), end.civil()
	if FromTime(from) != start || FromTime(to) != end || from.After(to) {
		return nil
	}

	n := DaysBetween(start, end) + 1
	keys := make([]DateKey, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, FromTime(from.AddDate(0, 0, i)))
	}
	return keys
}

// DaysBetween returns the number of full calendar days from start to end,
// or 0 when end is not after start.
func DaysBetween(start, end DateKey) int {
	if start == "" || end == "" {
		return 0
	}
	seconds := end.civil().Unix() - start.civil().Unix()
	if seconds <= 0 {
		return 0
	}
	return int(seconds / secondsPerDay)
}
