package state

import (
	"testing"

	"github.com/ethexec/txcore/core/types"
)

func TestTransientStorage_SetAndGet(t *testing.T) {
	ts := NewTransientStorage()
	addr, slot, val := testAddr(1), testSlot(1), testSlot(2)

	if got := ts.Get(addr, slot); got != (types.Hash{}) {
		t.Fatal("unwritten slot should read as zero")
	}
	ts.Set(addr, slot, val)
	if got := ts.Get(addr, slot); got != val {
		t.Errorf("Get = %v, want %v", got, val)
	}
}

func TestTransientStorage_RevertTo(t *testing.T) {
	ts := NewTransientStorage()
	addr, slot, val := testAddr(1), testSlot(1), testSlot(2)
	snap := ts.Snapshot()

	ts.Set(addr, slot, val)
	if err := ts.RevertTo(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ts.Get(addr, slot); got != (types.Hash{}) {
		t.Error("reverted write should read back as zero")
	}
}

func TestTransientStorage_ClearDropsEverything(t *testing.T) {
	ts := NewTransientStorage()
	addr, slot, val := testAddr(1), testSlot(1), testSlot(2)
	ts.Set(addr, slot, val)

	ts.Clear()
	if got := ts.Get(addr, slot); got != (types.Hash{}) {
		t.Fatal("Clear should wipe all values")
	}
}
