package core

import "github.com/ethexec/txcore/core/types"

// Intrinsic gas constants.
const (
	TxGas                   = 21000
	TxGasContractCreation   = 32000
	CalldataTokenWeight     = 4
	InitCodeWordGas         = 2
	AccessListAddressGas    = 2400
	AccessListStorageKeyGas = 1900
	PerAuthorizationGas     = 25000
	CalldataFloorPerToken   = 10
)

// IntrinsicGasResult is the deterministic per-transaction gas floor: the gas
// charged before any bytecode runs, and the EIP-7623 calldata floor that
// execution must not undercut.
type IntrinsicGasResult struct {
	IntrinsicGas     uint64
	CalldataFloorGas uint64
}

// calldataTokens counts EIP-7623 tokens: 1 per zero byte, 4 per non-zero
// byte. The intrinsic data cost and the calldata floor are both a fixed
// multiple of this same token count.
func calldataTokens(data []byte) uint64 {
	var zero, nonZero uint64
	for _, b := range data {
		if b == 0 {
			zero++
		} else {
			nonZero++
		}
	}
	return zero + CalldataTokenWeight*nonZero
}

// IntrinsicGas computes (intrinsic_gas, calldata_floor_gas) for a
// transaction under the given release. The floor is always computed, even
// on specs that predate EIP-7623; callers decide whether to apply it.
func IntrinsicGas(tx *types.Transaction, spec ReleaseSpec) IntrinsicGasResult {
	tokens := calldataTokens(tx.Data)
	dataCost := CalldataTokenWeight * tokens

	var createCost uint64
	if tx.IsContractCreation() {
		createCost = TxGasContractCreation
		if spec.IsEIP3860Enabled() {
			words := (uint64(len(tx.Data)) + 31) / 32
			createCost += words * InitCodeWordGas
		}
	}

	var accessListCost uint64
	if len(tx.AccessList) > 0 {
		var slots uint64
		for _, tuple := range tx.AccessList {
			slots += uint64(len(tuple.StorageKeys))
		}
		accessListCost = AccessListAddressGas*uint64(len(tx.AccessList)) + AccessListStorageKeyGas*slots
	}

	var authCost uint64
	if len(tx.AuthorizationList) > 0 {
		authCost = PerAuthorizationGas * uint64(len(tx.AuthorizationList))
	}

	intrinsic := TxGas + dataCost + createCost + accessListCost + authCost
	floor := TxGas + CalldataFloorPerToken*tokens

	return IntrinsicGasResult{IntrinsicGas: intrinsic, CalldataFloorGas: floor}
}
