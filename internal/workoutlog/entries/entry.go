package entries

import (
	"time"

	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
)

// Mode is the unit an entry amount is measured in.
//   - time: seconds
//   - reps: repetition count
type Mode string

const (
	ModeTime Mode = "time"
	ModeReps Mode = "reps"
)

func (m Mode) String() string {
	return string(m)
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeTime, ModeReps:
		return true
	default:
		return false
	}
}

// MovementType can be one of:
//   - stretches
//   - exercises
type MovementType string

const (
	MovementStretch  MovementType = "stretches"
	MovementExercise MovementType = "exercises"
)

func (mt MovementType) String() string {
	return string(mt)
}

func (mt MovementType) IsValid() bool {
	switch mt {
	case MovementStretch, MovementExercise:
		return true
	default:
		return false
	}
}

// Entry is one logged workout record.
type Entry struct {
	ID           string       `json:"id"`
	Timestamp    int64        `json:"timestamp"` // epoch milliseconds
	Movement     string       `json:"movement"`
	MovementType MovementType `json:"movementType"`
	Mode         Mode         `json:"mode"`
	Amount       int          `json:"amount"`
}

// DateKey returns the local calendar day the entry was logged on.
func (e Entry) DateKey(loc *time.Location) datekey.DateKey {
	return datekey.FromUnixMilli(e.Timestamp, loc)
}

func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
