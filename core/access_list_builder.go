package core

import (
	"fmt"

	"github.com/ethexec/txcore/core/types"
)

// AccessListResult is the deduplicated prewarm set an AccessListBuilder
// produces: the addresses and (address, slot) pairs that enter the
// transaction warm from the start, per EIP-2929/2930/3651.
type AccessListResult struct {
	Addresses   []types.Address
	StorageKeys []AddressSlot
}

// AddressSlot pairs an address with one of its storage slots.
type AddressSlot struct {
	Address types.Address
	Slot    types.Hash
}

// BuildAccessList computes the prewarm set for a transaction.
// Dedup is by byte-equality; insertion order is not meaningful and callers
// must not rely on it.
func BuildAccessList(tx *types.Transaction, coinbase types.Address, spec ReleaseSpec) (AccessListResult, error) {
	if len(tx.AccessList) > 0 && !spec.IsEIP2930Enabled() {
		return AccessListResult{}, fmt.Errorf("%w: access list present but EIP-2930 not active", ErrUnsupportedAccessListFeature)
	}

	seenAddr := make(map[types.Address]struct{})
	seenSlot := make(map[AddressSlot]struct{})
	var result AccessListResult

	addAddress := func(a types.Address) {
		if _, ok := seenAddr[a]; ok {
			return
		}
		seenAddr[a] = struct{}{}
		result.Addresses = append(result.Addresses, a)
	}
	addSlot := func(a types.Address, slot types.Hash) {
		addAddress(a)
		key := AddressSlot{Address: a, Slot: slot}
		if _, ok := seenSlot[key]; ok {
			return
		}
		seenSlot[key] = struct{}{}
		result.StorageKeys = append(result.StorageKeys, key)
	}

	for _, tuple := range tx.AccessList {
		addAddress(tuple.Address)
		for _, slot := range tuple.StorageKeys {
			addSlot(tuple.Address, slot)
		}
	}

	// Coinbase enters the prewarm set iff EIP-3651 is active on the release
	// bound to this builder call.
	if spec.IsEIP3651Enabled() {
		addAddress(coinbase)
	}

	return result, nil
}
