// Package state implements the journaled world state, transient storage,
// access-list manager, and the transaction/call-frame boundary that scopes
// commits and rollbacks over all three.
package state

import "errors"

// ErrInvalidSnapshot is returned when a snapshot ID does not correspond to
// any reachable point in a Journal's history (already reverted past, or
// never issued by this journal).
var ErrInvalidSnapshot = errors.New("state: invalid snapshot")

// SnapshotID is an opaque token identifying a point in a Journal's history.
// Concretely it is an index into the journal's flat entry arena, giving
// O(1) Snapshot and O(k) RevertTo where k is the number of entries reverted.
type SnapshotID int

// journalEntry is one revertible change recorded against a target of type T.
type journalEntry[T any] interface {
	revert(*T)
}

// Journal is a per-scope ordered change log. It does not itself distinguish
// change kinds (cache/update/create/delete); each concrete entry type
// captures enough information in its revert method to restore exactly that
// behavior (see worldstate.go, transient_storage.go,
// access_list_manager.go).
type Journal[T any] struct {
	entries []journalEntry[T]
}

// Append records a new revertible entry at the current journal position.
func (j *Journal[T]) Append(e journalEntry[T]) {
	j.entries = append(j.entries, e)
}

// Snapshot returns a token for the current journal position.
func (j *Journal[T]) Snapshot() SnapshotID { return SnapshotID(len(j.entries)) }

// Length returns the number of entries recorded since the journal began.
func (j *Journal[T]) Length() int { return len(j.entries) }

// RevertTo reverts every entry recorded since id, in reverse order, against
// target, then truncates the journal back to id. Reverting to the current
// position (id == Snapshot()) is a no-op, matching commit semantics: the
// flat arena means "commit" never needs to merge anything, the entries
// already belong to whichever scope is above them.
func (j *Journal[T]) RevertTo(id SnapshotID, target *T) error {
	if id < 0 || int(id) > len(j.entries) {
		return ErrInvalidSnapshot
	}
	for i := len(j.entries) - 1; i >= int(id); i-- {
		j.entries[i].revert(target)
	}
	j.entries = j.entries[:id]
	return nil
}

// Reset discards all entries, for reuse across blocks.
func (j *Journal[T]) Reset() { j.entries = j.entries[:0] }
