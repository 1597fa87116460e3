// Package vm defines the narrow boundary between the transaction pipeline
// and the EVM interpreter: the host vtable the interpreter calls back into
// (HostAdapter), and the call-frame contract the pipeline calls out on
// (EvmExecutor). The interpreter itself is out of scope: it is
// a black box behind EvmExecutor.
package vm

import (
	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/state"
	"github.com/ethexec/txcore/core/types"
)

// AddressSlot pairs an address with one of its storage slots, duplicated
// here (rather than imported from core) to keep this package free of a
// dependency on the orchestration layer that consumes it.
type AddressSlot struct {
	Address types.Address
	Slot    types.Hash
}

// Environment is the immutable, per-transaction execution context
// TransactionEnvironmentBuilder assembles and EvmExecutor runs against.
type Environment struct {
	Origin                types.Address
	GasPrice              uint256.Int
	Gas                   uint64
	AccessListAddresses   []types.Address
	AccessListStorageKeys []AddressSlot
	Transient             *state.TransientStorage
	BlobVersionedHashes   []types.Hash
	IndexInBlock          *uint64
	TxHash                *types.Hash
}
