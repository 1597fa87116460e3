// Package gethvm implements core/vm.EvmExecutor against go-ethereum's real
// EVM interpreter. It is the only package that imports go-ethereum
// directly; everything upstream of it only sees
// core/vm.EvmExecutor.
package gethvm

import (
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/types"
)

// toGethAddress and fromGethAddress convert between the pipeline's Address
// and go-ethereum's common.Address. Both are [20]byte, so this is a plain
// reinterpretation, not a copy with transformation.
func toGethAddress(a types.Address) gethcommon.Address { return gethcommon.Address(a) }

func fromGethAddress(a gethcommon.Address) types.Address { return types.Address(a) }

func toGethHash(h types.Hash) gethcommon.Hash { return gethcommon.Hash(h) }

func fromGethHash(h gethcommon.Hash) types.Hash { return types.Hash(h) }

func toGethHashes(hs []types.Hash) []gethcommon.Hash {
	if hs == nil {
		return nil
	}
	out := make([]gethcommon.Hash, len(hs))
	for i, h := range hs {
		out[i] = toGethHash(h)
	}
	return out
}

func toGethAccessList(al types.AccessList) gethtypes.AccessList {
	if al == nil {
		return nil
	}
	out := make(gethtypes.AccessList, len(al))
	for i, tuple := range al {
		keys := make([]gethcommon.Hash, len(tuple.StorageKeys))
		for j, k := range tuple.StorageKeys {
			keys[j] = toGethHash(k)
		}
		out[i] = gethtypes.AccessTuple{Address: toGethAddress(tuple.Address), StorageKeys: keys}
	}
	return out
}

func toBig(u *uint256.Int) *big.Int {
	if u == nil {
		return new(big.Int)
	}
	return u.ToBig()
}

func fromGethLog(l *gethtypes.Log) types.Log {
	if l == nil {
		return types.Log{}
	}
	topics := make([]types.Hash, len(l.Topics))
	for i, t := range l.Topics {
		topics[i] = fromGethHash(t)
	}
	return types.Log{Address: fromGethAddress(l.Address), Topics: topics, Data: l.Data}
}
