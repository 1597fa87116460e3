package gethvm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/state"
)

func newTestStateDB() *stateDB {
	return newStateDB(state.NewWorldState(), state.NewTransientStorage(), state.NewAccessListManager())
}

func TestStateDB_BalanceAndNonce(t *testing.T) {
	s := newTestStateDB()
	addr := common.Address{19: 0x01}

	s.AddBalance(addr, uint256.NewInt(100), tracing.BalanceChangeTransfer)
	if got := s.GetBalance(addr); got.Uint64() != 100 {
		t.Errorf("GetBalance = %d, want 100", got.Uint64())
	}
	s.SubBalance(addr, uint256.NewInt(40), tracing.BalanceChangeTransfer)
	if got := s.GetBalance(addr); got.Uint64() != 60 {
		t.Errorf("GetBalance after SubBalance = %d, want 60", got.Uint64())
	}

	s.SetNonce(addr, 5, tracing.NonceChangeEoACall)
	if got := s.GetNonce(addr); got != 5 {
		t.Errorf("GetNonce = %d, want 5", got)
	}
}

func TestStateDB_CodeAndCodeHash(t *testing.T) {
	s := newTestStateDB()
	addr := common.Address{19: 0x01}

	if s.GetCodeSize(addr) != 0 {
		t.Fatal("a fresh account should have zero code size")
	}
	s.SetCode(addr, []byte{0x60, 0x00, 0x60, 0x00})
	if s.GetCodeSize(addr) != 4 {
		t.Errorf("GetCodeSize = %d, want 4", s.GetCodeSize(addr))
	}
	if (s.GetCodeHash(addr) == common.Hash{}) {
		t.Error("GetCodeHash should not be the zero hash once code is set")
	}
}

func TestStateDB_StorageRoundTrip(t *testing.T) {
	s := newTestStateDB()
	addr := common.Address{19: 0x01}
	key := common.Hash{0: 0x01}
	val := common.Hash{0: 0x02}

	s.CreateAccount(addr)
	prev := s.SetState(addr, key, val)
	if prev != (common.Hash{}) {
		t.Errorf("SetState should return the zero prior value, got %v", prev)
	}
	if got := s.GetState(addr, key); got != val {
		t.Errorf("GetState = %v, want %v", got, val)
	}
	if got := s.GetCommittedState(addr, key); got != val {
		t.Errorf("GetCommittedState = %v, want %v", got, val)
	}
}

func TestStateDB_TransientStorage(t *testing.T) {
	s := newTestStateDB()
	addr := common.Address{19: 0x01}
	key := common.Hash{0: 0x01}
	val := common.Hash{0: 0x02}

	s.SetTransientState(addr, key, val)
	if got := s.GetTransientState(addr, key); got != val {
		t.Errorf("GetTransientState = %v, want %v", got, val)
	}
}

func TestStateDB_Refund(t *testing.T) {
	s := newTestStateDB()
	s.AddRefund(100)
	s.SubRefund(40)
	if s.GetRefund() != 60 {
		t.Errorf("GetRefund = %d, want 60", s.GetRefund())
	}
}

func TestStateDB_SubRefundUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic subtracting more refund than accumulated")
		}
	}()
	s := newTestStateDB()
	s.AddRefund(10)
	s.SubRefund(20)
}

func TestStateDB_SelfDestructAndHasSelfDestructed(t *testing.T) {
	s := newTestStateDB()
	addr := common.Address{19: 0x01}
	s.CreateAccount(addr)
	s.AddBalance(addr, uint256.NewInt(50), tracing.BalanceChangeTransfer)

	if s.HasSelfDestructed(addr) {
		t.Fatal("account should not be self-destructed yet")
	}
	bal := s.SelfDestruct(addr)
	if bal.Uint64() != 50 {
		t.Errorf("SelfDestruct returned balance %d, want 50", bal.Uint64())
	}
	if !s.HasSelfDestructed(addr) {
		t.Error("account should be marked self-destructed")
	}
	if s.Exist(addr) {
		t.Error("a destroyed account should no longer exist")
	}
}

func TestStateDB_SelfDestruct6780_OnlyImmediateForAccountsCreatedThisTransaction(t *testing.T) {
	s := newTestStateDB()
	createdThisTx := common.Address{19: 0x01}
	preexisting := common.Address{19: 0x02}

	// Simulate preexisting by setting the account directly on WorldState,
	// bypassing CreateAccount so it is absent from CreatedAccounts().
	s.world.SetAccount(fromGethAddress(preexisting), s.world.GetAccount(fromGethAddress(preexisting)))
	s.CreateAccount(createdThisTx)

	if _, destroyed := s.SelfDestruct6780(createdThisTx); !destroyed {
		t.Error("an account created this transaction should be destroyed immediately")
	}
	if _, destroyed := s.SelfDestruct6780(preexisting); destroyed {
		t.Error("a preexisting account must not be destroyed immediately under EIP-6780")
	}
}

func TestStateDB_AccessListWarming(t *testing.T) {
	s := newTestStateDB()
	addr := common.Address{19: 0x01}
	slot := common.Hash{0: 0x01}

	if s.AddressInAccessList(addr) {
		t.Fatal("address should start cold")
	}
	s.AddAddressToAccessList(addr)
	if !s.AddressInAccessList(addr) {
		t.Error("address should be warm after AddAddressToAccessList")
	}

	s.AddSlotToAccessList(addr, slot)
	addrWarm, slotWarm := s.SlotInAccessList(addr, slot)
	if !addrWarm || !slotWarm {
		t.Errorf("expected both address and slot warm, got addr=%v slot=%v", addrWarm, slotWarm)
	}
}

func TestStateDB_PrepareWarmsSenderCoinbaseAndDestination(t *testing.T) {
	s := newTestStateDB()
	sender := common.Address{19: 0x01}
	coinbase := common.Address{19: 0x02}
	dst := common.Address{19: 0x03}
	precompile := common.Address{19: 0x04}

	s.Prepare(params.Rules{}, sender, coinbase, &dst, []common.Address{precompile}, gethtypes.AccessList{})

	for _, a := range []common.Address{sender, coinbase, dst, precompile} {
		if !s.AddressInAccessList(a) {
			t.Errorf("address %v should be warmed by Prepare", a)
		}
	}
}

func TestStateDB_SnapshotAndRevert(t *testing.T) {
	s := newTestStateDB()
	addr := common.Address{19: 0x01}
	s.CreateAccount(addr)

	id := s.Snapshot()
	s.AddBalance(addr, uint256.NewInt(100), tracing.BalanceChangeTransfer)
	if got := s.GetBalance(addr); got.Uint64() != 100 {
		t.Fatal("balance should reflect the add before revert")
	}

	s.RevertToSnapshot(id)
	if got := s.GetBalance(addr); got.Uint64() != 0 {
		t.Errorf("GetBalance after RevertToSnapshot = %d, want 0", got.Uint64())
	}
}

func TestStateDB_AddLogAccumulates(t *testing.T) {
	s := newTestStateDB()
	s.AddLog(&gethtypes.Log{Address: common.Address{19: 0x01}})
	s.AddLog(&gethtypes.Log{Address: common.Address{19: 0x02}})

	logs := s.logsAsTypes()
	if len(logs) != 2 {
		t.Fatalf("logsAsTypes length = %d, want 2", len(logs))
	}
}
