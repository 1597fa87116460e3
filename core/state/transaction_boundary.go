package state

import "errors"

// ErrNoActiveTransaction is returned by RunInCallFrameBoundary when called
// at depth 0.
var ErrNoActiveTransaction = errors.New("state: no active transaction")

// scope is the three snapshot tokens captured when a boundary begins.
type scope struct {
	world      SnapshotID
	transient  SnapshotID
	accessList SnapshotID
}

// TransactionBoundary is the begin/commit/rollback stack shared by
// WorldState, TransientStorage, and AccessListManager. A
// transaction boundary is the outermost scope; call-frame boundaries nest
// above it. Depth 0 means no active transaction.
type TransactionBoundary struct {
	world      *WorldState
	transient  *TransientStorage
	accessList *AccessListManager

	stack []scope
}

// NewTransactionBoundary binds a boundary stack to one block's trio of
// stores. The trio is exclusively owned by this boundary for the block's
// duration.
func NewTransactionBoundary(world *WorldState, transient *TransientStorage, accessList *AccessListManager) *TransactionBoundary {
	return &TransactionBoundary{world: world, transient: transient, accessList: accessList}
}

// Depth returns the current stack depth.
func (b *TransactionBoundary) Depth() int { return len(b.stack) }

// Begin pushes a new scope onto all three journals.
func (b *TransactionBoundary) Begin() {
	b.stack = append(b.stack, scope{
		world:      b.world.Snapshot(),
		transient:  b.transient.Snapshot(),
		accessList: b.accessList.Snapshot(),
	})
}

// Commit merges the top scope into its parent. Because every store's
// journal is a single flat arena, merging is simply discarding
// the scope marker: the entries already belong to whatever scope is above,
// and if depth becomes 0 they are durable in the block-level view.
func (b *TransactionBoundary) Commit() {
	if len(b.stack) == 0 {
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// Rollback pops the top scope, restoring every value it recorded across all
// three stores.
func (b *TransactionBoundary) Rollback() error {
	if len(b.stack) == 0 {
		return nil
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	if err := b.world.RevertTo(top.world); err != nil {
		return err
	}
	if err := b.transient.RevertTo(top.transient); err != nil {
		return err
	}
	return b.accessList.RevertTo(top.accessList)
}

// RunInTransactionBoundary executes fn inside a fresh scope at any depth:
// commits on success, rolls back and re-raises on failure.
func (b *TransactionBoundary) RunInTransactionBoundary(fn func() error) error {
	b.Begin()
	if err := fn(); err != nil {
		if rerr := b.Rollback(); rerr != nil {
			return rerr
		}
		return err
	}
	b.Commit()
	return nil
}

// RunInCallFrameBoundary is RunInTransactionBoundary, but fails with
// ErrNoActiveTransaction if depth is 0 — a call-frame boundary must nest
// inside an outer transaction boundary.
func (b *TransactionBoundary) RunInCallFrameBoundary(fn func() error) error {
	if b.Depth() == 0 {
		return ErrNoActiveTransaction
	}
	return b.RunInTransactionBoundary(fn)
}
