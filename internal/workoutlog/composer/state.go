package composer

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

var (
	ErrInvalidDraft   = errors.New("invalid draft")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrNoEntries      = errors.New("no entries")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrMissingEntryID = errors.New("missing new entry id")
)

// Purpose keys a delayed task; scheduling a purpose again replaces the pending one.
type Purpose string

const (
	PurposeAddedHighlight Purpose = "added-highlight"
	PurposeUndoDelete     Purpose = "undo-delete"
)

const (
	AddedHighlightDuration = 900 * time.Millisecond
	UndoWindow             = 10 * time.Second
)

// Deleted remembers the last removed entry and where it was.
type Deleted struct {
	Entry entries.Entry `json:"entry"`
	Index int           `json:"index"`
}

// State is the whole composer state. Reducers never modify the State they
// receive; they return a new one.
type State struct {
	Entries     []entries.Entry `json:"entries"`
	LastDeleted *Deleted        `json:"lastDeleted,omitempty"`
	HighlightID string          `json:"highlightId,omitempty"`
}

func NewState(list []entries.Entry) State {
	return State{Entries: slices.Clone(list)}
}

func (s State) clone() State {
	c := State{
		Entries:     slices.Clone(s.Entries),
		HighlightID: s.HighlightID,
	}
	if s.LastDeleted != nil {
		d := *s.LastDeleted
		c.LastDeleted = &d
	}
	return c
}

// Draft is the user input for a new or edited entry.
type Draft struct {
	Movement     string               `json:"movement"`
	MovementType entries.MovementType `json:"movementType"`
	Mode         entries.Mode         `json:"mode"`
	Amount       int                  `json:"amount"`
}

func (d Draft) Validate() error {
	switch {
	case entries.NormalizeMovementName(d.Movement) == "":
		return fmt.Errorf("%w: movement is empty", ErrInvalidDraft)
	case !d.MovementType.IsValid():
		return fmt.Errorf("%w: unknown movement type [%s]", ErrInvalidDraft, d.MovementType)
	case !d.Mode.IsValid():
		return fmt.Errorf("%w: unknown mode [%s]", ErrInvalidDraft, d.Mode)
	case d.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", ErrInvalidDraft)
	}
	return nil
}

// Env carries everything a reducer would otherwise read from its surroundings.
type Env struct {
	Now time.Time
	// NewID is used when a reducer creates an entry.
	NewID    string
	Location *time.Location
}

func (e Env) location() *time.Location {
	if e.Location == nil {
		return time.UTC
	}
	return e.Location
}

type EffectKind string

const (
	EffectPersist  EffectKind = "persist"
	EffectSchedule EffectKind = "schedule"
	EffectCancel   EffectKind = "cancel"
)

// Effect is a side effect requested by a reducer. Persist carries the
// complete entry collection to store; Schedule and Cancel refer to a Purpose.
// A Schedule also names the entry whose transient state it will expire.
type Effect struct {
	Kind     EffectKind
	Purpose  Purpose
	Delay    time.Duration
	EntryID  string
	Snapshot []entries.Entry
}

func persist(list []entries.Entry) Effect {
	return Effect{Kind: EffectPersist, Snapshot: slices.Clone(list)}
}

func schedule(purpose Purpose, delay time.Duration, entryID string) Effect {
	return Effect{Kind: EffectSchedule, Purpose: purpose, Delay: delay, EntryID: entryID}
}

func cancel(purpose Purpose) Effect {
	return Effect{Kind: EffectCancel, Purpose: purpose}
}

// Outcome describes the entry a reducer ended up touching.
type Outcome struct {
	Entry  entries.Entry `json:"entry"`
	Merged bool          `json:"merged"`
}
