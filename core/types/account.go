package types

import "github.com/holiman/uint256"

// AccountState is the protocol-visible state of one account. The zero value
// is the empty account record used for accounts that do not yet exist.
type AccountState struct {
	Nonce       uint64
	Balance     uint256.Int
	CodeHash    Hash
	StorageRoot Hash
}

// EmptyAccount returns the zero-valued account record, used for accounts
// that do not exist.
func EmptyAccount() AccountState {
	return AccountState{CodeHash: EmptyCodeHash, StorageRoot: EmptyRootHash}
}

// IsEmpty reports whether the account has never been touched: zero nonce,
// zero balance, and no code.
func (a AccountState) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && (a.CodeHash == Hash{} || a.CodeHash == EmptyCodeHash)
}
