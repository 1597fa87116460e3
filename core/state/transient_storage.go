package state

import "github.com/ethexec/txcore/core/types"

// TransientStorage is the EIP-1153 per-transaction key-value store: same
// shape as WorldState storage but with no backing account and no notion of
// "missing account" — every (address, slot) defaults to zero.
type TransientStorage struct {
	values  map[types.Address]map[types.Hash]types.Hash
	journal Journal[TransientStorage]
}

// NewTransientStorage returns an empty transient store.
func NewTransientStorage() *TransientStorage {
	return &TransientStorage{values: make(map[types.Address]map[types.Hash]types.Hash)}
}

// Snapshot returns the current journal position, for TransactionBoundary.
func (t *TransientStorage) Snapshot() SnapshotID { return t.journal.Snapshot() }

// RevertTo restores every transient write recorded since id.
func (t *TransientStorage) RevertTo(id SnapshotID) error { return t.journal.RevertTo(id, t) }

// Get returns the value at (a, slot), or zero if never written.
func (t *TransientStorage) Get(a types.Address, slot types.Hash) types.Hash {
	if m, ok := t.values[a]; ok {
		return m[slot]
	}
	return types.Hash{}
}

type transientChange struct {
	addr    types.Address
	slot    types.Hash
	existed bool
	prev    types.Hash
}

func (c transientChange) revert(t *TransientStorage) {
	m := t.values[c.addr]
	if m == nil {
		return
	}
	if c.existed {
		m[c.slot] = c.prev
	} else {
		delete(m, c.slot)
	}
}

// Set writes slot of a, journaling its prior value.
func (t *TransientStorage) Set(a types.Address, slot, v types.Hash) {
	m, ok := t.values[a]
	if !ok {
		m = make(map[types.Hash]types.Hash)
		t.values[a] = m
	}
	prev, existed := m[slot]
	t.journal.Append(transientChange{addr: a, slot: slot, existed: existed, prev: prev})
	m[slot] = v
}

// Clear empties the store's values. Called by TransactionEnvironmentBuilder
// at the start of every transaction, per EIP-1153: transient storage never
// persists across transactions.
//
// It deliberately leaves the shared journal's history untouched: by the
// time it runs, TransactionBoundary.Begin has already snapshotted a
// position in that journal for the transaction in progress, and truncating
// the journal out from under that snapshot would make any later RevertTo
// against it fail with ErrInvalidSnapshot. Entries recorded before this
// point belong to already-committed transactions and are never replayed,
// since RevertTo only ever reverts back to the current transaction's own
// snapshot or later.
func (t *TransientStorage) Clear() {
	t.values = make(map[types.Address]map[types.Hash]types.Hash)
}
