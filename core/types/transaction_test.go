package types

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestTransaction_IsContractCreation(t *testing.T) {
	tx := &Transaction{}
	if !tx.IsContractCreation() {
		t.Fatal("a transaction with a nil To should be a contract creation")
	}
	addr := Address{19: 0x01}
	tx.To = &addr
	if tx.IsContractCreation() {
		t.Fatal("a transaction with a non-nil To is not a contract creation")
	}
}

func TestTransaction_EffectiveFeeCap_Legacy(t *testing.T) {
	tx := &Transaction{Type: LegacyTxType, GasPrice: *uint256.NewInt(42)}
	if got := tx.EffectiveFeeCap(); got.Uint64() != 42 {
		t.Fatalf("EffectiveFeeCap = %d, want 42", got.Uint64())
	}
}

func TestTransaction_EffectiveFeeCap_AccessList(t *testing.T) {
	tx := &Transaction{Type: AccessListTxType, GasPrice: *uint256.NewInt(7)}
	if got := tx.EffectiveFeeCap(); got.Uint64() != 7 {
		t.Fatalf("EffectiveFeeCap = %d, want 7", got.Uint64())
	}
}

func TestTransaction_EffectiveFeeCap_DynamicFee(t *testing.T) {
	tx := &Transaction{Type: DynamicFeeTxType, GasFeeCap: *uint256.NewInt(99), GasPrice: *uint256.NewInt(1)}
	if got := tx.EffectiveFeeCap(); got.Uint64() != 99 {
		t.Fatalf("EffectiveFeeCap = %d, want 99 (GasFeeCap, not GasPrice)", got.Uint64())
	}
}

func TestTransaction_HashDefaultsToZero(t *testing.T) {
	tx := &Transaction{}
	if !tx.Hash().IsZero() {
		t.Fatal("a transaction with no cached hash should return the zero hash")
	}
}

func TestTransaction_SetHashCaches(t *testing.T) {
	tx := &Transaction{}
	h := HexToHash("deadbeef")
	tx.SetHash(h)
	if tx.Hash() != h {
		t.Fatalf("Hash() = %v, want %v", tx.Hash(), h)
	}
}
