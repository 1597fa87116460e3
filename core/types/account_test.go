package types

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestEmptyAccount_IsEmpty(t *testing.T) {
	a := EmptyAccount()
	if !a.IsEmpty() {
		t.Fatal("a freshly-constructed empty account should report IsEmpty")
	}
	if a.CodeHash != EmptyCodeHash {
		t.Fatalf("EmptyAccount should carry EmptyCodeHash, got %v", a.CodeHash)
	}
	if a.StorageRoot != EmptyRootHash {
		t.Fatalf("EmptyAccount should carry EmptyRootHash, got %v", a.StorageRoot)
	}
}

func TestAccountState_IsEmpty_NonzeroNonceNotEmpty(t *testing.T) {
	a := EmptyAccount()
	a.Nonce = 1
	if a.IsEmpty() {
		t.Fatal("an account with a nonzero nonce is not empty")
	}
}

func TestAccountState_IsEmpty_NonzeroBalanceNotEmpty(t *testing.T) {
	a := EmptyAccount()
	a.Balance = *uint256.NewInt(1)
	if a.IsEmpty() {
		t.Fatal("an account with a nonzero balance is not empty")
	}
}

func TestAccountState_IsEmpty_CodePresentNotEmpty(t *testing.T) {
	a := EmptyAccount()
	a.CodeHash = HexToHash("deadbeef")
	if a.IsEmpty() {
		t.Fatal("an account with a non-empty code hash is not empty")
	}
}

func TestAccountState_IsEmpty_ZeroValueStruct(t *testing.T) {
	var a AccountState
	if !a.IsEmpty() {
		t.Fatal("the zero-value AccountState (zero CodeHash, not EmptyCodeHash) should still report IsEmpty")
	}
}
