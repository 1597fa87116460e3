package core

// ClaimableRefund computes the portion of the accumulated refund counter a
// transaction may actually claim:
//
//	claimable = min(refundCounter, spentGas / divisor)
//
// where divisor is 5 post-London (EIP-3529) and 2 before. Idempotent: calling
// this twice with the same inputs yields the same result.
func ClaimableRefund(spentGas, refundCounter uint64, spec ReleaseSpec) uint64 {
	ceiling := spentGas / spec.RefundDivisor()
	if refundCounter < ceiling {
		return refundCounter
	}
	return ceiling
}
