package state

import (
	"errors"
	"testing"
)

type counter struct{ n int }

type incrChange struct{ by int }

func (c incrChange) revert(target *counter) { target.n -= c.by }

func TestJournal_RevertToReplaysInReverseOrder(t *testing.T) {
	var j Journal[counter]
	target := &counter{}

	snap := j.Snapshot()
	j.Append(incrChange{by: 5})
	target.n += 5
	j.Append(incrChange{by: 3})
	target.n += 3

	if target.n != 8 {
		t.Fatalf("target.n = %d, want 8", target.n)
	}
	if err := j.RevertTo(snap, target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.n != 0 {
		t.Errorf("target.n after revert = %d, want 0", target.n)
	}
	if j.Length() != 0 {
		t.Errorf("Length() after revert = %d, want 0", j.Length())
	}
}

func TestJournal_RevertToCurrentPositionIsNoOp(t *testing.T) {
	var j Journal[counter]
	target := &counter{}
	j.Append(incrChange{by: 1})
	target.n += 1

	snap := j.Snapshot()
	if err := j.RevertTo(snap, target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.n != 1 {
		t.Errorf("target.n = %d, want unchanged 1", target.n)
	}
}

func TestJournal_RevertToInvalidSnapshotFails(t *testing.T) {
	var j Journal[counter]
	target := &counter{}
	j.Append(incrChange{by: 1})

	if err := j.RevertTo(SnapshotID(99), target); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	if err := j.RevertTo(SnapshotID(-1), target); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot for negative id, got %v", err)
	}
}

func TestJournal_Reset(t *testing.T) {
	var j Journal[counter]
	j.Append(incrChange{by: 1})
	j.Reset()
	if j.Length() != 0 {
		t.Errorf("Length() after Reset = %d, want 0", j.Length())
	}
}
