package entries

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidRecord = errors.New("invalid entry record")

// Timestamps stay a day inside years 1..9999 so that the calendar day is a
// four digit year in every time zone.
var (
	minTimestamp = time.Date(1, time.January, 2, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxTimestamp = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC).UnixMilli()
)

// record is the loose shape of a stored entry, before validation.
type record struct {
	ID           *string  `json:"id"`
	Timestamp    *float64 `json:"timestamp"`
	Movement     *string  `json:"movement"`
	MovementType *string  `json:"movementType"`
	Mode         *string  `json:"mode"`
	Amount       *float64 `json:"amount"`
}

// ValidateRecord checks the shape of one stored record and converts it to an Entry.
func ValidateRecord(raw json.RawMessage) (Entry, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	switch {
	case r.ID == nil || *r.ID == "":
		return Entry{}, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	case r.Movement == nil:
		return Entry{}, fmt.Errorf("%w: missing movement", ErrInvalidRecord)
	case r.Mode == nil || !Mode(*r.Mode).IsValid():
		return Entry{}, fmt.Errorf("%w: bad mode", ErrInvalidRecord)
	case r.MovementType == nil || !MovementType(*r.MovementType).IsValid():
		return Entry{}, fmt.Errorf("%w: bad movement type", ErrInvalidRecord)
	case !isWholeNumber(r.Timestamp):
		return Entry{}, fmt.Errorf("%w: bad timestamp", ErrInvalidRecord)
	case *r.Timestamp < float64(minTimestamp) || *r.Timestamp > float64(maxTimestamp):
		return Entry{}, fmt.Errorf("%w: timestamp out of range", ErrInvalidRecord)
	case !isWholeNumber(r.Amount) || *r.Amount <= 0:
		return Entry{}, fmt.Errorf("%w: bad amount", ErrInvalidRecord)
	}

	return Entry{
		ID:           *r.ID,
		Timestamp:    int64(*r.Timestamp),
		Movement:     *r.Movement,
		MovementType: MovementType(*r.MovementType),
		Mode:         Mode(*r.Mode),
		Amount:       int(*r.Amount),
	}, nil
}

func isWholeNumber(v *float64) bool {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return false
	}
	return math.Trunc(*v) == *v
}

// DecodeSnapshot decodes a stored entry collection. Anything that is not a
// JSON array yields an empty collection; malformed records are dropped and
// reported through skipped.
func DecodeSnapshot(data []byte) (list []Entry, skipped int) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return []Entry{}, 0
	}

	list = make([]Entry, 0, len(raws))
	for _, raw := range raws {
		e, err := ValidateRecord(raw)
		if err != nil {
			skipped++
			continue
		}
		list = append(list, e)
	}
	return list, skipped
}

// EncodeSnapshot is the inverse of DecodeSnapshot.
func EncodeSnapshot(list []Entry) ([]byte, error) {
	if list == nil {
		list = []Entry{}
	}
	return json.Marshal(list)
}
