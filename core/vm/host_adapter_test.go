package vm

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/state"
	"github.com/ethexec/txcore/core/types"
)

func testAddr(b byte) types.Address {
	var a types.Address
	a[19] = b
	return a
}

func testSlot(b byte) types.Hash {
	var h types.Hash
	h[31] = b
	return h
}

// A *state.WorldState satisfies WorldStateAccessor directly, so the
// production HostAdapter can be driven against the real journaled store
// without a fake.
func TestHostAdapter_BalanceRoundTrip(t *testing.T) {
	world := state.NewWorldState()
	host := NewHostAdapter(world)
	addr := testAddr(1)

	host.SetBalance(addr, *uint256.NewInt(500))
	if got := host.GetBalance(addr); got.Uint64() != 500 {
		t.Errorf("GetBalance = %d, want 500", got.Uint64())
	}
	// The write must be visible through WorldState directly too: HostAdapter
	// is a pass-through, not a separate store.
	if got := world.GetAccount(addr).Balance.Uint64(); got != 500 {
		t.Errorf("WorldState balance = %d, want 500", got)
	}
}

func TestHostAdapter_NonceRoundTrip(t *testing.T) {
	world := state.NewWorldState()
	host := NewHostAdapter(world)
	addr := testAddr(1)

	host.SetNonce(addr, 7)
	if got := host.GetNonce(addr); got != 7 {
		t.Errorf("GetNonce = %d, want 7", got)
	}
}

func TestHostAdapter_CodeRoundTrip(t *testing.T) {
	world := state.NewWorldState()
	host := NewHostAdapter(world)
	addr := testAddr(1)

	host.SetCode(addr, []byte{0x60, 0x01})
	if got := host.GetCode(addr); len(got) != 2 {
		t.Errorf("GetCode length = %d, want 2", len(got))
	}
}

func TestHostAdapter_StorageRequiresExistingAccount(t *testing.T) {
	world := state.NewWorldState()
	host := NewHostAdapter(world)
	addr := testAddr(1)
	slot, val := testSlot(1), testSlot(2)

	if err := host.SetStorage(addr, slot, val); err == nil {
		t.Fatal("expected an error setting storage on an account that does not exist yet")
	}

	world.SetAccount(addr, types.EmptyAccount())
	if err := host.SetStorage(addr, slot, val); err != nil {
		t.Fatalf("unexpected error once the account exists: %v", err)
	}
	if got := host.GetStorage(addr, slot); got != val {
		t.Errorf("GetStorage = %v, want %v", got, val)
	}
}
