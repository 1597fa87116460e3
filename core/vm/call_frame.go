package vm

import (
	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/types"
)

// CallFrame is the outer call frame an EvmExecutor runs.
type CallFrame struct {
	To       *types.Address // nil for contract creation
	Input    []byte
	Value    uint256.Int
	IsStatic bool
}

// EvmOutput is what the interpreter produces for one call frame. GasLeft
// and RefundCounter are expressed as uint64: the interpreter never lets
// either exceed the transaction's gas limit, which this pipeline already
// treats as a uint64 quantity throughout.
type EvmOutput struct {
	GasLeft         uint64
	RefundCounter   uint64
	Logs            []types.Log
	AccountsToDelete []types.Address

	// ContractAddress is set when CallFrame.To == nil and creation
	// succeeded.
	ContractAddress *types.Address

	// Err is the opaque, verbatim VM failure (ErrEvmExecution in the core
	// package's taxonomy), nil on success. A REVERT also sets Err, together
	// with Reverted; its GasLeft/RefundCounter are still usable.
	Err error

	// Reverted marks an EVM REVERT (as opposed to a hard error): settlement
	// still proceeds normally using GasLeft/RefundCounter. A VM revert does
	// not roll back the outer transaction.
	Reverted bool
}

// EvmExecutor is the black-box boundary to the bytecode interpreter. Its
// state mutations land in the journaled WorldState, TransientStorage and
// AccessListManager that TransactionBoundary scopes, and Logs/AccountsToDelete
// are to reflect only committed effects. The go-ethereum-backed
// gethvm.Executor does not go through HostAdapter: it writes through its own
// StateDB adapter, and it scopes nested calls with journal snapshots rather
// than RunInCallFrameBoundary.
type EvmExecutor interface {
	Execute(env Environment, frame CallFrame) (EvmOutput, error)
}
