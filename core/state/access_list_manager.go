package state

import "github.com/ethexec/txcore/core/types"

// AccessListManager tracks the runtime warm/cold set the interpreter
// consults to charge EIP-2929 access costs. Its initial
// contents at transaction start are the output of AccessListBuilder;
// mutations during execution are journaled and scoped identically to
// WorldState and TransientStorage.
type AccessListManager struct {
	addresses map[types.Address]struct{}
	slots     map[types.Address]map[types.Hash]struct{}
	journal   Journal[AccessListManager]
}

// NewAccessListManager returns an empty warm set.
func NewAccessListManager() *AccessListManager {
	return &AccessListManager{
		addresses: make(map[types.Address]struct{}),
		slots:     make(map[types.Address]map[types.Hash]struct{}),
	}
}

// Snapshot returns the current journal position, for TransactionBoundary.
func (m *AccessListManager) Snapshot() SnapshotID { return m.journal.Snapshot() }

// RevertTo restores every warm/cold transition recorded since id.
func (m *AccessListManager) RevertTo(id SnapshotID) error { return m.journal.RevertTo(id, m) }

// IsAddressWarm reports whether a has been accessed this transaction.
func (m *AccessListManager) IsAddressWarm(a types.Address) bool {
	_, ok := m.addresses[a]
	return ok
}

// IsSlotWarm reports whether (a, slot) has been accessed this transaction.
func (m *AccessListManager) IsSlotWarm(a types.Address, slot types.Hash) bool {
	s, ok := m.slots[a]
	if !ok {
		return false
	}
	_, ok = s[slot]
	return ok
}

type warmAddressChange struct{ addr types.Address }

func (c warmAddressChange) revert(m *AccessListManager) { delete(m.addresses, c.addr) }

// WarmAddress marks a warm, journaling the transition if it was cold.
func (m *AccessListManager) WarmAddress(a types.Address) {
	if _, ok := m.addresses[a]; ok {
		return
	}
	m.addresses[a] = struct{}{}
	m.journal.Append(warmAddressChange{addr: a})
}

type warmSlotChange struct {
	addr types.Address
	slot types.Hash
}

func (c warmSlotChange) revert(m *AccessListManager) {
	if s, ok := m.slots[c.addr]; ok {
		delete(s, c.slot)
	}
}

// WarmSlot marks (a, slot) warm, also warming a itself.
func (m *AccessListManager) WarmSlot(a types.Address, slot types.Hash) {
	m.WarmAddress(a)
	s, ok := m.slots[a]
	if !ok {
		s = make(map[types.Hash]struct{})
		m.slots[a] = s
	}
	if _, ok := s[slot]; ok {
		return
	}
	s[slot] = struct{}{}
	m.journal.Append(warmSlotChange{addr: a, slot: slot})
}

// WarmPair is an (address, slot) pair to seed as warm; used only by Seed.
type WarmPair struct {
	Address types.Address
	Slot    types.Hash
}

// Seed warms every address and (address, slot) pair from an
// AccessListBuilder result, without going through the journal: this is the
// pre-transaction initialization, not a mutation that should ever revert.
func (m *AccessListManager) Seed(addresses []types.Address, pairs []WarmPair) {
	for _, a := range addresses {
		m.addresses[a] = struct{}{}
	}
	for _, p := range pairs {
		m.addresses[p.Address] = struct{}{}
		s, ok := m.slots[p.Address]
		if !ok {
			s = make(map[types.Hash]struct{})
			m.slots[p.Address] = s
		}
		s[p.Slot] = struct{}{}
	}
}

// Reset empties the manager's warm set. Called at the start of every
// transaction: EIP-2929 warm/cold status does not persist across
// transactions within a block.
//
// Like TransientStorage.Clear, it leaves the shared journal's history
// untouched. TransactionBoundary.Begin has already snapshotted a position
// in that journal for the transaction in progress by the time Reset runs;
// truncating the journal would invalidate that snapshot and make a later
// RevertTo against it fail with ErrInvalidSnapshot. Entries from
// already-committed transactions are never replayed, since RevertTo only
// ever reverts back to the current transaction's own snapshot or later.
func (m *AccessListManager) Reset() {
	m.addresses = make(map[types.Address]struct{})
	m.slots = make(map[types.Address]map[types.Hash]struct{})
}
