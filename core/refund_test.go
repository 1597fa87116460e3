package core

import "testing"

func TestClaimableRefund_CappedByDivisor(t *testing.T) {
	post := NewReleaseSpec(London) // divisor 5
	if got := ClaimableRefund(1000, 1000, post); got != 200 {
		t.Errorf("claimable = %d, want 200 (1000/5 ceiling)", got)
	}

	pre := NewReleaseSpec(Berlin) // divisor 2
	if got := ClaimableRefund(1000, 1000, pre); got != 500 {
		t.Errorf("claimable = %d, want 500 (1000/2 ceiling)", got)
	}
}

func TestClaimableRefund_RefundCounterBelowCeiling(t *testing.T) {
	s := NewReleaseSpec(London)
	if got := ClaimableRefund(1000, 50, s); got != 50 {
		t.Errorf("claimable = %d, want 50 (refund counter itself, under the ceiling)", got)
	}
}

func TestClaimableRefund_Idempotent(t *testing.T) {
	s := DefaultReleaseSpec()
	a := ClaimableRefund(50_000, 12_000, s)
	b := ClaimableRefund(50_000, 12_000, s)
	if a != b {
		t.Errorf("ClaimableRefund not idempotent: %d != %d", a, b)
	}
}
