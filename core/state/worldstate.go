package state

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/ethexec/txcore/core/types"
)

// ErrMissingAccount is returned by SetStorage when the target account does
// not exist.
var ErrMissingAccount = errors.New("state: missing account")

// WorldState is the in-memory account/storage/code store.
// It lives for the whole block; TransactionBoundary scopes its journal to
// per-transaction and per-call-frame lifetimes.
type WorldState struct {
	accounts map[types.Address]types.AccountState
	storage  map[types.Address]map[types.Hash]types.Hash
	code     map[types.Address][]byte

	created        map[types.Address]struct{}
	selfDestructed map[types.Address]struct{}
	touched        map[types.Address]struct{}

	journal Journal[WorldState]
}

// NewWorldState returns an empty world state.
func NewWorldState() *WorldState {
	return &WorldState{
		accounts:       make(map[types.Address]types.AccountState),
		storage:        make(map[types.Address]map[types.Hash]types.Hash),
		code:           make(map[types.Address][]byte),
		created:        make(map[types.Address]struct{}),
		selfDestructed: make(map[types.Address]struct{}),
		touched:        make(map[types.Address]struct{}),
	}
}

// Snapshot returns the current journal position, for TransactionBoundary.
func (w *WorldState) Snapshot() SnapshotID { return w.journal.Snapshot() }

// RevertTo restores every account/storage/code change recorded since id.
func (w *WorldState) RevertTo(id SnapshotID) error { return w.journal.RevertTo(id, w) }

func (w *WorldState) touch(a types.Address) { w.touched[a] = struct{}{} }

// GetAccount returns the account record for a, or the empty account if a
// has never been created.
func (w *WorldState) GetAccount(a types.Address) types.AccountState {
	if acc, ok := w.accounts[a]; ok {
		return acc
	}
	return types.EmptyAccount()
}

// GetAccountOptional returns the account and true if a exists, or the zero
// value and false otherwise.
func (w *WorldState) GetAccountOptional(a types.Address) (types.AccountState, bool) {
	acc, ok := w.accounts[a]
	return acc, ok
}

type accountChange struct {
	addr    types.Address
	existed bool
	prev    types.AccountState
}

func (c accountChange) revert(w *WorldState) {
	if c.existed {
		w.accounts[c.addr] = c.prev
	} else {
		delete(w.accounts, c.addr)
		delete(w.created, c.addr)
	}
}

// SetAccount writes the account record for a, journaling its prior value.
func (w *WorldState) SetAccount(a types.Address, s types.AccountState) {
	prev, existed := w.accounts[a]
	w.journal.Append(accountChange{addr: a, existed: existed, prev: prev})
	if !existed {
		w.created[a] = struct{}{}
	}
	w.accounts[a] = s
	w.touch(a)
}

type destroyChange struct {
	addr        types.Address
	existed     bool
	prevAccount types.AccountState
	prevCode    []byte
	codeExisted bool
	prevStorage map[types.Hash]types.Hash
}

func (c destroyChange) revert(w *WorldState) {
	if c.existed {
		w.accounts[c.addr] = c.prevAccount
	} else {
		delete(w.accounts, c.addr)
	}
	if c.codeExisted {
		w.code[c.addr] = c.prevCode
	} else {
		delete(w.code, c.addr)
	}
	if c.prevStorage != nil {
		w.storage[c.addr] = c.prevStorage
	} else {
		delete(w.storage, c.addr)
	}
}

// DestroyAccount removes a and all of its storage and code (EIP-6780
// effective selfdestructs are decided by the EvmExecutor; this call performs
// the removal once the caller has decided it applies).
func (w *WorldState) DestroyAccount(a types.Address) {
	prevAccount, existed := w.accounts[a]
	prevCode, codeExisted := w.code[a]
	var prevStorage map[types.Hash]types.Hash
	if s, ok := w.storage[a]; ok {
		prevStorage = make(map[types.Hash]types.Hash, len(s))
		for k, v := range s {
			prevStorage[k] = v
		}
	}
	w.journal.Append(destroyChange{
		addr: a, existed: existed, prevAccount: prevAccount,
		prevCode: prevCode, codeExisted: codeExisted, prevStorage: prevStorage,
	})

	w.selfDestructed[a] = struct{}{}
	delete(w.accounts, a)
	delete(w.code, a)
	delete(w.storage, a)
}

// GetCode returns the code stored at a, or nil if a has none.
func (w *WorldState) GetCode(a types.Address) []byte { return w.code[a] }

type codeChange struct {
	addr        types.Address
	prevCode    []byte
	codeExisted bool
	prevAccount types.AccountState
	accExisted  bool
}

func (c codeChange) revert(w *WorldState) {
	if c.codeExisted {
		w.code[c.addr] = c.prevCode
	} else {
		delete(w.code, c.addr)
	}
	if c.accExisted {
		w.accounts[c.addr] = c.prevAccount
	} else {
		delete(w.accounts, c.addr)
	}
}

// SetCode sets the code for a, atomically updating its account's CodeHash.
// Setting empty code clears it and resets CodeHash to the canonical empty
// code hash.
func (w *WorldState) SetCode(a types.Address, code []byte) {
	prevCode, codeExisted := w.code[a]
	prevAccount, accExisted := w.accounts[a]
	w.journal.Append(codeChange{
		addr: a, prevCode: prevCode, codeExisted: codeExisted,
		prevAccount: prevAccount, accExisted: accExisted,
	})

	acc := w.GetAccount(a)
	if len(code) == 0 {
		delete(w.code, a)
		acc.CodeHash = types.EmptyCodeHash
	} else {
		w.code[a] = code
		acc.CodeHash = types.BytesToHash(keccak256(code))
	}
	w.accounts[a] = acc
	w.touch(a)
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// GetStorage returns the value at (a, slot), or zero if a does not exist or
// the slot was never written.
func (w *WorldState) GetStorage(a types.Address, slot types.Hash) types.Hash {
	if m, ok := w.storage[a]; ok {
		return m[slot]
	}
	return types.Hash{}
}

type storageChange struct {
	addr    types.Address
	slot    types.Hash
	existed bool
	prev    types.Hash
}

func (c storageChange) revert(w *WorldState) {
	m := w.storage[c.addr]
	if m == nil {
		return
	}
	if c.existed {
		m[c.slot] = c.prev
	} else {
		delete(m, c.slot)
	}
}

// SetStorage writes slot of a. Fails ErrMissingAccount if a does not exist.
func (w *WorldState) SetStorage(a types.Address, slot, v types.Hash) error {
	if _, ok := w.accounts[a]; !ok {
		return fmt.Errorf("set_storage on %s: %w", a.Hex(), ErrMissingAccount)
	}
	m, ok := w.storage[a]
	if !ok {
		m = make(map[types.Hash]types.Hash)
		w.storage[a] = m
	}
	prev, existed := m[slot]
	w.journal.Append(storageChange{addr: a, slot: slot, existed: existed, prev: prev})
	m[slot] = v
	w.touch(a)
	return nil
}

// AddBalance credits amount to a's balance, creating the account first if
// it does not yet exist.
func (w *WorldState) AddBalance(a types.Address, amount *uint256.Int) {
	acc := w.GetAccount(a)
	acc.Balance.Add(&acc.Balance, amount)
	w.SetAccount(a, acc)
}

// SubBalance debits amount from a's balance. The caller is responsible for
// having checked sufficiency beforehand (TransactionProcessor does this via
// checkMaxGasFeeAndBalance).
func (w *WorldState) SubBalance(a types.Address, amount *uint256.Int) {
	acc := w.GetAccount(a)
	acc.Balance.Sub(&acc.Balance, amount)
	w.SetAccount(a, acc)
}

// CreatedAccounts, SelfDestructed, and Touched expose the bookkeeping sets
// WorldState maintains alongside its core account/storage/code maps.
func (w *WorldState) CreatedAccounts() map[types.Address]struct{}  { return w.created }
func (w *WorldState) SelfDestructedSet() map[types.Address]struct{} { return w.selfDestructed }
func (w *WorldState) TouchedSet() map[types.Address]struct{}        { return w.touched }
