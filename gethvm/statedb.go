package gethvm

import (
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/state"
	"github.com/ethexec/txcore/core/types"
)

// snapshotTriple is the three-store position captured at a single
// go-ethereum StateDB.Snapshot() call.
type snapshotTriple struct {
	world      state.SnapshotID
	transient  state.SnapshotID
	accessList state.SnapshotID
}

// stateDB adapts the pipeline's WorldState/TransientStorage/AccessListManager
// trio to go-ethereum's vm.StateDB interface, so the real interpreter can run
// directly against this pipeline's journaled stores. It is scoped to a
// single call frame: the caller (Executor.Execute) constructs one per
// Execute call and discards it afterward, collecting logsAsTypes(),
// GetRefund() and the WorldState's SelfDestructedSet() into a vm.EvmOutput.
type stateDB struct {
	world      *state.WorldState
	transient  *state.TransientStorage
	accessList *state.AccessListManager

	refund    uint64
	logs      []*gethtypes.Log
	snapshots []snapshotTriple
}

func newStateDB(world *state.WorldState, transient *state.TransientStorage, accessList *state.AccessListManager) *stateDB {
	return &stateDB{world: world, transient: transient, accessList: accessList}
}

func (s *stateDB) CreateAccount(addr common.Address) {
	s.world.SetAccount(fromGethAddress(addr), types.EmptyAccount())
}

// CreateContract is a no-op here: WorldState has no separate "is a contract"
// bit, only code presence, which SetCode already establishes.
func (s *stateDB) CreateContract(common.Address) {}

func (s *stateDB) SubBalance(addr common.Address, amount *uint256.Int, _ tracing.BalanceChangeReason) uint256.Int {
	a := fromGethAddress(addr)
	prev := s.world.GetAccount(a).Balance
	s.world.SubBalance(a, amount)
	return prev
}

func (s *stateDB) AddBalance(addr common.Address, amount *uint256.Int, _ tracing.BalanceChangeReason) uint256.Int {
	a := fromGethAddress(addr)
	prev := s.world.GetAccount(a).Balance
	s.world.AddBalance(a, amount)
	return prev
}

func (s *stateDB) GetBalance(addr common.Address) *uint256.Int {
	b := s.world.GetAccount(fromGethAddress(addr)).Balance
	return &b
}

func (s *stateDB) GetNonce(addr common.Address) uint64 {
	return s.world.GetAccount(fromGethAddress(addr)).Nonce
}

func (s *stateDB) SetNonce(addr common.Address, nonce uint64, _ tracing.NonceChangeReason) {
	a := fromGethAddress(addr)
	acc := s.world.GetAccount(a)
	acc.Nonce = nonce
	s.world.SetAccount(a, acc)
}

func (s *stateDB) GetCodeHash(addr common.Address) common.Hash {
	return toGethHash(s.world.GetAccount(fromGethAddress(addr)).CodeHash)
}

func (s *stateDB) GetCode(addr common.Address) []byte {
	return s.world.GetCode(fromGethAddress(addr))
}

func (s *stateDB) SetCode(addr common.Address, code []byte) {
	s.world.SetCode(fromGethAddress(addr), code)
}

func (s *stateDB) GetCodeSize(addr common.Address) int {
	return len(s.world.GetCode(fromGethAddress(addr)))
}

func (s *stateDB) AddRefund(gas uint64)  { s.refund += gas }
func (s *stateDB) SubRefund(gas uint64) {
	if gas > s.refund {
		panic("gethvm: negative refund")
	}
	s.refund -= gas
}
func (s *stateDB) GetRefund() uint64 { return s.refund }

func (s *stateDB) GetCommittedState(addr common.Address, key common.Hash) common.Hash {
	// WorldState keeps no separate pre-transaction snapshot view distinct
	// from its journal; callers needing "value before this transaction"
	// read GetState before the transaction boundary opens.
	return toGethHash(s.world.GetStorage(fromGethAddress(addr), fromGethHash(key)))
}

func (s *stateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	return toGethHash(s.world.GetStorage(fromGethAddress(addr), fromGethHash(key)))
}

func (s *stateDB) SetState(addr common.Address, key, value common.Hash) common.Hash {
	a := fromGethAddress(addr)
	k := fromGethHash(key)
	prev := s.world.GetStorage(a, k)
	if err := s.world.SetStorage(a, k, fromGethHash(value)); err != nil {
		panic(err)
	}
	return toGethHash(prev)
}

func (s *stateDB) GetStorageRoot(addr common.Address) common.Hash {
	return toGethHash(s.world.GetAccount(fromGethAddress(addr)).StorageRoot)
}

func (s *stateDB) GetTransientState(addr common.Address, key common.Hash) common.Hash {
	return toGethHash(s.transient.Get(fromGethAddress(addr), fromGethHash(key)))
}

func (s *stateDB) SetTransientState(addr common.Address, key, value common.Hash) {
	s.transient.Set(fromGethAddress(addr), fromGethHash(key), fromGethHash(value))
}

func (s *stateDB) SelfDestruct(addr common.Address) uint256.Int {
	a := fromGethAddress(addr)
	bal := s.world.GetAccount(a).Balance
	s.world.DestroyAccount(a)
	return bal
}

func (s *stateDB) HasSelfDestructed(addr common.Address) bool {
	_, ok := s.world.SelfDestructedSet()[fromGethAddress(addr)]
	return ok
}

// SelfDestruct6780 implements EIP-6780: a self-destruct only takes effect
// immediately if the account was created earlier in this same transaction;
// otherwise nothing is changed here and false is returned.
func (s *stateDB) SelfDestruct6780(addr common.Address) (uint256.Int, bool) {
	a := fromGethAddress(addr)
	bal := s.world.GetAccount(a).Balance
	if _, created := s.world.CreatedAccounts()[a]; created {
		s.world.DestroyAccount(a)
		return bal, true
	}
	return bal, false
}

func (s *stateDB) Exist(addr common.Address) bool {
	_, ok := s.world.GetAccountOptional(fromGethAddress(addr))
	return ok
}

func (s *stateDB) Empty(addr common.Address) bool {
	return s.world.GetAccount(fromGethAddress(addr)).IsEmpty()
}

func (s *stateDB) AddressInAccessList(addr common.Address) bool {
	return s.accessList.IsAddressWarm(fromGethAddress(addr))
}

func (s *stateDB) SlotInAccessList(addr common.Address, slot common.Hash) (bool, bool) {
	a := fromGethAddress(addr)
	return s.accessList.IsAddressWarm(a), s.accessList.IsSlotWarm(a, fromGethHash(slot))
}

func (s *stateDB) AddAddressToAccessList(addr common.Address) {
	s.accessList.WarmAddress(fromGethAddress(addr))
}

func (s *stateDB) AddSlotToAccessList(addr common.Address, slot common.Hash) {
	s.accessList.WarmSlot(fromGethAddress(addr), fromGethHash(slot))
}

// Prepare is the vm.StateDB hook for seeding the EIP-2929/3651 warm set. It
// warms sender, coinbase, the destination (if any), every precompile, and
// each tx access-list address and slot. The rules argument is ignored, so
// coinbase is warmed on every fork. Executor.Execute does not call it: this
// pipeline's AccessListManager is already seeded by TransactionProcessor
// before Execute runs.
func (s *stateDB) Prepare(_ params.Rules, sender, coinbase common.Address, dst *common.Address, precompiles []common.Address, txAccesses gethtypes.AccessList) {
	s.accessList.WarmAddress(fromGethAddress(sender))
	s.accessList.WarmAddress(fromGethAddress(coinbase))
	if dst != nil {
		s.accessList.WarmAddress(fromGethAddress(*dst))
	}
	for _, p := range precompiles {
		s.accessList.WarmAddress(fromGethAddress(p))
	}
	for _, tuple := range txAccesses {
		a := fromGethAddress(tuple.Address)
		s.accessList.WarmAddress(a)
		for _, k := range tuple.StorageKeys {
			s.accessList.WarmSlot(a, fromGethHash(k))
		}
	}
}

func (s *stateDB) RevertToSnapshot(id int) {
	if id < 0 || id >= len(s.snapshots) {
		panic("gethvm: invalid snapshot id")
	}
	top := s.snapshots[id]
	if err := s.world.RevertTo(top.world); err != nil {
		panic(err)
	}
	if err := s.transient.RevertTo(top.transient); err != nil {
		panic(err)
	}
	if err := s.accessList.RevertTo(top.accessList); err != nil {
		panic(err)
	}
	s.snapshots = s.snapshots[:id]
}

func (s *stateDB) Snapshot() int {
	s.snapshots = append(s.snapshots, snapshotTriple{
		world:      s.world.Snapshot(),
		transient:  s.transient.Snapshot(),
		accessList: s.accessList.Snapshot(),
	})
	return len(s.snapshots) - 1
}

func (s *stateDB) AddLog(l *gethtypes.Log) { s.logs = append(s.logs, l) }

func (s *stateDB) AddPreimage(common.Hash, []byte) {
	// Preimage recording feeds debug/trace tooling this pipeline doesn't
	// expose; discarding is safe since nothing here ever resolves a
	// preimage back from a hash.
}

func (s *stateDB) logsAsTypes() []types.Log {
	out := make([]types.Log, len(s.logs))
	for i, l := range s.logs {
		out[i] = fromGethLog(l)
	}
	return out
}
