package vm

import (
	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/types"
)

// HostAdapter is the narrow vtable the interpreter uses to reach external
// state. It is deliberately minimal: nested calls are the
// interpreter's own concern against its own journal; the host only bridges
// to WorldState, so every mutation through it participates in the active
// WorldState journal and therefore in TransactionBoundary's commit/rollback.
type HostAdapter interface {
	GetBalance(addr types.Address) uint256.Int
	SetBalance(addr types.Address, balance uint256.Int)
	GetNonce(addr types.Address) uint64
	SetNonce(addr types.Address, nonce uint64)
	GetCode(addr types.Address) []byte
	SetCode(addr types.Address, code []byte)
	GetStorage(addr types.Address, slot types.Hash) types.Hash
	SetStorage(addr types.Address, slot, value types.Hash) error
}

// WorldStateAccessor is the subset of *state.WorldState the host needs.
// Accepting an interface here, rather than the concrete type, lets tests
// drive HostAdapter against a minimal fake without the full journal.
type WorldStateAccessor interface {
	GetAccount(types.Address) types.AccountState
	SetAccount(types.Address, types.AccountState)
	GetCode(types.Address) []byte
	SetCode(types.Address, []byte)
	GetStorage(types.Address, types.Hash) types.Hash
	SetStorage(types.Address, types.Hash, types.Hash) error
}

// worldStateHost is the production HostAdapter, backed directly by a
// WorldState.
type worldStateHost struct {
	world WorldStateAccessor
}

// NewHostAdapter wraps a WorldState-shaped store as a HostAdapter.
func NewHostAdapter(world WorldStateAccessor) HostAdapter {
	return &worldStateHost{world: world}
}

func (h *worldStateHost) GetBalance(addr types.Address) uint256.Int {
	return h.world.GetAccount(addr).Balance
}

func (h *worldStateHost) SetBalance(addr types.Address, balance uint256.Int) {
	acc := h.world.GetAccount(addr)
	acc.Balance = balance
	h.world.SetAccount(addr, acc)
}

func (h *worldStateHost) GetNonce(addr types.Address) uint64 {
	return h.world.GetAccount(addr).Nonce
}

func (h *worldStateHost) SetNonce(addr types.Address, nonce uint64) {
	acc := h.world.GetAccount(addr)
	acc.Nonce = nonce
	h.world.SetAccount(addr, acc)
}

func (h *worldStateHost) GetCode(addr types.Address) []byte { return h.world.GetCode(addr) }

func (h *worldStateHost) SetCode(addr types.Address, code []byte) { h.world.SetCode(addr, code) }

func (h *worldStateHost) GetStorage(addr types.Address, slot types.Hash) types.Hash {
	return h.world.GetStorage(addr, slot)
}

func (h *worldStateHost) SetStorage(addr types.Address, slot, value types.Hash) error {
	return h.world.SetStorage(addr, slot, value)
}
