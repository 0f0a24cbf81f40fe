package entries

import (
	"strings"
	"time"
)

// NormalizeMovementName trims the name and collapses inner whitespace runs
// to a single space.
func NormalizeMovementName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// MovementKey is the comparison form of a movement name. The stored
// Movement field keeps its original casing and spacing.
func MovementKey(name string) string {
	return strings.ToLower(NormalizeMovementName(name))
}

// IndexOfMatchingDayEntry returns the index of the first entry in list that
// should absorb ref, or -1. An entry matches when it was logged on the same
// local day with the same mode, movement type and movement key. The entry
// with excludeID (if not empty) is never matched.
func IndexOfMatchingDayEntry(list []Entry, ref Entry, excludeID string, loc *time.Location) int {
	targetDay := ref.DateKey(loc)
	targetMovement := MovementKey(ref.Movement)

	for i, e := range list {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if e.Mode == ref.Mode &&
			e.MovementType == ref.MovementType &&
			e.DateKey(loc) == targetDay &&
			MovementKey(e.Movement) == targetMovement {
			return i
		}
	}

	return -1
}

// FindMatchingDayEntry returns a copy of the entry that should absorb ref.
// When more than one entry matches, the first one in list order wins.
func FindMatchingDayEntry(list []Entry, ref Entry, excludeID string, loc *time.Location) (Entry, bool) {
	i := IndexOfMatchingDayEntry(list, ref, excludeID, loc)
	if i < 0 {
		return Entry{}, false
	}
	return list[i], true
}

// MergeEntryAmounts adds the source amount to target and keeps the newer
// timestamp. It is additive: merging the same source twice counts it twice.
func MergeEntryAmounts(target *Entry, source Entry) {
	target.Amount += source.Amount
	target.Timestamp = max(target.Timestamp, source.Timestamp)
}

// NewestEntry returns the entry with the greatest timestamp; ties keep the
// earlier one in list order.
func NewestEntry(list []Entry) (Entry, bool) {
	if len(list) == 0 {
		return Entry{}, false
	}
	newest := list[0]
	for _, e := range list[1:] {
		if e.Timestamp > newest.Timestamp {
			newest = e
		}
	}
	return newest, true
}

// IndexByID returns the position of the entry with id, or -1.
func IndexByID(list []Entry, id string) int {
	for i, e := range list {
		if e.ID == id {
			return i
		}
	}
	return -1
}
