package core

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/state"
	"github.com/ethexec/txcore/core/types"
	"github.com/ethexec/txcore/core/vm"
)

// TransactionEnvironmentInput bundles the inputs TransactionEnvironmentBuilder
// needs.
type TransactionEnvironmentInput struct {
	Tx           *types.Transaction
	Origin       types.Address
	Coinbase     types.Address
	GasPrice     uint256.Int
	IndexInBlock *uint64
	TxHash       *types.Hash
}

// BuildTransactionEnvironment runs the six-step build: compute
// intrinsic/floor gas, compute the access list, verify the gas limit covers
// both, clear transient storage, and return the assembled environment.
func BuildTransactionEnvironment(in TransactionEnvironmentInput, transient *state.TransientStorage, spec ReleaseSpec) (vm.Environment, IntrinsicGasResult, error) {
	gasResult := IntrinsicGas(in.Tx, spec)

	accessList, err := BuildAccessList(in.Tx, in.Coinbase, spec)
	if err != nil {
		return vm.Environment{}, IntrinsicGasResult{}, err
	}

	floor := uint64(0)
	if spec.IsEIP7623Enabled() {
		floor = gasResult.CalldataFloorGas
	}
	required := gasResult.IntrinsicGas
	if floor > required {
		required = floor
	}
	if in.Tx.GasLimit < required {
		return vm.Environment{}, IntrinsicGasResult{}, fmt.Errorf("%w: gasLimit %d < required %d", ErrInsufficientTransactionGas, in.Tx.GasLimit, required)
	}

	gas := in.Tx.GasLimit - gasResult.IntrinsicGas

	transient.Clear()

	var blobHashes []types.Hash
	if in.Tx.Type == types.BlobTxType {
		blobHashes = in.Tx.BlobHashes
	}

	env := vm.Environment{
		Origin:                in.Origin,
		GasPrice:              in.GasPrice,
		Gas:                   gas,
		AccessListAddresses:   accessList.Addresses,
		AccessListStorageKeys: toVMAddressSlots(accessList.StorageKeys),
		Transient:             transient,
		BlobVersionedHashes:   blobHashes,
		IndexInBlock:          in.IndexInBlock,
		TxHash:                in.TxHash,
	}
	return env, gasResult, nil
}

func toVMAddressSlots(pairs []AddressSlot) []vm.AddressSlot {
	out := make([]vm.AddressSlot, len(pairs))
	for i, p := range pairs {
		out[i] = vm.AddressSlot{Address: p.Address, Slot: p.Slot}
	}
	return out
}
