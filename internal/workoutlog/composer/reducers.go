package composer

import (
	"slices"

	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

// Log records a validated draft at env.Now. A same-day entry with the same
// movement, type and mode absorbs the amount instead of a new entry being
// appended.
func Log(state State, draft Draft, env Env) (State, Outcome, []Effect, error) {
	if err := draft.Validate(); err != nil {
		return state, Outcome{}, nil, err
	}

	return logEntry(state, entries.Entry{
		ID:           env.NewID,
		Timestamp:    env.Now.UnixMilli(),
		Movement:     entries.NormalizeMovementName(draft.Movement),
		MovementType: draft.MovementType,
		Mode:         draft.Mode,
		Amount:       draft.Amount,
	}, env)
}

// DuplicateLast logs a copy of the newest entry at env.Now.
func DuplicateLast(state State, env Env) (State, Outcome, []Effect, error) {
	newest, ok := entries.NewestEntry(state.Entries)
	if !ok {
		return state, Outcome{}, nil, ErrNoEntries
	}
	return logEntry(state, cloneAt(newest, env), env)
}

// QuickAddSet logs another set of the entry with id at env.Now.
func QuickAddSet(state State, id string, env Env) (State, Outcome, []Effect, error) {
	i := entries.IndexByID(state.Entries, id)
	if i < 0 {
		return state, Outcome{}, nil, ErrEntryNotFound
	}
	return logEntry(state, cloneAt(state.Entries[i], env), env)
}

func cloneAt(e entries.Entry, env Env) entries.Entry {
	e.ID = env.NewID
	e.Timestamp = env.Now.UnixMilli()
	return e
}

func logEntry(state State, e entries.Entry, env Env) (State, Outcome, []Effect, error) {
	next := state.clone()

	var outcome Outcome
	if i := entries.IndexOfMatchingDayEntry(next.Entries, e, "", env.location()); i >= 0 {
		next.Entries[i].Amount += e.Amount
		next.Entries[i].Timestamp = e.Timestamp
		outcome = Outcome{Entry: next.Entries[i], Merged: true}
	} else {
		if e.ID == "" {
			return state, Outcome{}, nil, ErrMissingEntryID
		}
		next.Entries = append(next.Entries, e)
		outcome = Outcome{Entry: e}
	}
	next.HighlightID = outcome.Entry.ID

	return next, outcome, []Effect{
		persist(next.Entries),
		schedule(PurposeAddedHighlight, AddedHighlightDuration, outcome.Entry.ID),
	}, nil
}

// Update replaces the movement, type, mode and amount of the entry with id,
// keeping its timestamp. When the edited entry now matches another entry of
// the same day, it is merged into that entry and removed.
func Update(state State, id string, draft Draft, env Env) (State, Outcome, []Effect, error) {
	if err := draft.Validate(); err != nil {
		return state, Outcome{}, nil, err
	}
	i := entries.IndexByID(state.Entries, id)
	if i < 0 {
		return state, Outcome{}, nil, ErrEntryNotFound
	}

	next := state.clone()
	edited := next.Entries[i]
	edited.Movement = entries.NormalizeMovementName(draft.Movement)
	edited.MovementType = draft.MovementType
	edited.Mode = draft.Mode
	edited.Amount = draft.Amount
	next.Entries[i] = edited

	outcome := Outcome{Entry: edited}
	if target := entries.IndexOfMatchingDayEntry(next.Entries, edited, edited.ID, env.location()); target >= 0 {
		entries.MergeEntryAmounts(&next.Entries[target], edited)
		outcome = Outcome{Entry: next.Entries[target], Merged: true}
		next.Entries = slices.Delete(next.Entries, i, i+1)
		if next.HighlightID == edited.ID {
			next.HighlightID = ""
		}
	}

	return next, outcome, []Effect{persist(next.Entries)}, nil
}

// Delete removes the entry with id and keeps it as the undo candidate.
func Delete(state State, id string) (State, Outcome, []Effect, error) {
	i := entries.IndexByID(state.Entries, id)
	if i < 0 {
		return state, Outcome{}, nil, ErrEntryNotFound
	}

	next := state.clone()
	removed := next.Entries[i]
	next.Entries = slices.Delete(next.Entries, i, i+1)
	next.LastDeleted = &Deleted{Entry: removed, Index: i}

	return next, Outcome{Entry: removed}, []Effect{
		persist(next.Entries),
		schedule(PurposeUndoDelete, UndoWindow, removed.ID),
	}, nil
}

// Undo restores the last deleted entry. If a same-day match was logged in the
// meantime the deleted amount is merged into it, otherwise the entry goes
// back to its old position, clamped to the current collection.
func Undo(state State, env Env) (State, Outcome, []Effect, error) {
	if state.LastDeleted == nil {
		return state, Outcome{}, nil, ErrNothingToUndo
	}

	next := state.clone()
	deleted := next.LastDeleted.Entry
	next.LastDeleted = nil

	var outcome Outcome
	if i := entries.IndexOfMatchingDayEntry(next.Entries, deleted, "", env.location()); i >= 0 {
		entries.MergeEntryAmounts(&next.Entries[i], deleted)
		outcome = Outcome{Entry: next.Entries[i], Merged: true}
	} else {
		index := min(max(0, state.LastDeleted.Index), len(next.Entries))
		next.Entries = slices.Insert(next.Entries, index, deleted)
		outcome = Outcome{Entry: deleted}
	}

	return next, outcome, []Effect{
		persist(next.Entries),
		cancel(PurposeUndoDelete),
	}, nil
}

// Expire clears the transient state a scheduled purpose was guarding, as long
// as that state still refers to entryID. A later highlight or deletion of
// another entry survives the expiry of an older one.
func Expire(state State, purpose Purpose, entryID string) State {
	next := state.clone()
	switch purpose {
	case PurposeAddedHighlight:
		if next.HighlightID == entryID {
			next.HighlightID = ""
		}
	case PurposeUndoDelete:
		if next.LastDeleted != nil && next.LastDeleted.Entry.ID == entryID {
			next.LastDeleted = nil
		}
	}
	return next
}
