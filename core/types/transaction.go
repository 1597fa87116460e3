package types

import "github.com/holiman/uint256"

// TxType is the EIP-2718 typed-transaction envelope discriminant.
type TxType uint8

const (
	LegacyTxType     TxType = 0
	AccessListTxType TxType = 1 // EIP-2930
	DynamicFeeTxType TxType = 2 // EIP-1559
	BlobTxType       TxType = 3 // EIP-4844
	SetCodeTxType    TxType = 4 // EIP-7702
)

// AccessTuple is one entry of an EIP-2930 access list: an address together
// with the storage slots within it that are pre-declared warm.
type AccessTuple struct {
	Address     Address
	StorageKeys []Hash
}

// AccessList is the tx-declared portion of the warm set (EIP-2930).
type AccessList []AccessTuple

// Authorization is one signed EIP-7702 authorization tuple. A SetCode
// transaction carries a non-empty list of these; each, once recovered,
// installs a delegation designator on the signer's account.
type Authorization struct {
	ChainID uint64
	Address Address
	Nonce   uint64
	V       uint8
	R, S    uint256.Int
}

// Transaction is the union of the five typed-transaction variants the
// pipeline accepts. Fields not meaningful for a given Type are left zero;
// accessors on the processor side only read the fields valid for the type
// they were handed (core.ComputeFee and the processor's
// checkMaxGasFeeAndBalance switch on Type before reading them).
type Transaction struct {
	Type TxType

	ChainID  uint64 // absent (0) for Legacy
	Nonce    uint64
	GasLimit uint64

	// Legacy / EIP-2930 fee field.
	GasPrice uint256.Int

	// EIP-1559 and later fee fields.
	GasTipCap uint256.Int
	GasFeeCap uint256.Int

	To    *Address // nil marks contract creation
	Value uint256.Int
	Data  []byte

	AccessList AccessList

	// EIP-4844 blob fields.
	BlobFeeCap uint256.Int
	BlobHashes []Hash

	// EIP-7702 authorization list.
	AuthorizationList []Authorization

	V uint8
	R, S uint256.Int

	hash *Hash
}

// IsContractCreation reports whether the transaction has no recipient.
func (tx *Transaction) IsContractCreation() bool { return tx.To == nil }

// EffectiveFeeCap returns the price the sender is willing to pay per unit
// of gas, independent of transaction type: GasPrice for Legacy/EIP-2930,
// GasFeeCap for the fee-market types.
func (tx *Transaction) EffectiveFeeCap() *uint256.Int {
	if tx.Type == LegacyTxType || tx.Type == AccessListTxType {
		return &tx.GasPrice
	}
	return &tx.GasFeeCap
}

// SetHash caches a precomputed transaction hash. Hash derivation (RLP
// encode + keccak256) is a wire-format concern owned by a primitives layer
// upstream of this core; the pipeline only needs a stable identity to
// thread through TransactionEnvironment and FinalizedTransactionExecution.
func (tx *Transaction) SetHash(h Hash) { tx.hash = &h }

// Hash returns the cached transaction hash, or the zero hash if none was set.
func (tx *Transaction) Hash() Hash {
	if tx.hash == nil {
		return Hash{}
	}
	return *tx.hash
}
