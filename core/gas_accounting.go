package core

import (
	"fmt"

	"github.com/holiman/uint256"
)

// GasAccountingInput bundles the values GasAccounting needs.
type GasAccountingInput struct {
	GasLimit         uint64
	GasLeft          uint64
	RefundCounter    uint64
	EffectiveGasPrice uint256.Int
	CalldataFloorGas uint64
}

// GasAccountingResult is the post-execution settlement GasAccounting derives.
type GasAccountingResult struct {
	GasUsedBeforeRefund uint64
	Claimable           uint64
	GasUsedAfterRefund  uint64
	GasLeftAfterRefund  uint64
	SenderRefundAmount  uint256.Int
}

// Settle runs the six-step post-execution settlement computation, including
// the EIP-7623 calldata-floor clamp (a no-op when the caller passes
// CalldataFloorGas = 0).
func Settle(in GasAccountingInput, spec ReleaseSpec) (GasAccountingResult, error) {
	if in.GasLeft > in.GasLimit {
		return GasAccountingResult{}, fmt.Errorf("%w: gasLeft %d exceeds gasLimit %d", ErrGasLeftExceedsGasLimit, in.GasLeft, in.GasLimit)
	}

	gasUsedBeforeRefund := in.GasLimit - in.GasLeft
	claimable := ClaimableRefund(gasUsedBeforeRefund, in.RefundCounter, spec)

	gasUsedAfterRefund := gasUsedBeforeRefund - claimable
	if gasUsedAfterRefund < in.CalldataFloorGas {
		gasUsedAfterRefund = in.CalldataFloorGas
	}

	gasLeftAfterRefund := in.GasLimit - gasUsedAfterRefund

	senderRefund, overflow := new(uint256.Int).MulOverflow(
		uint256.NewInt(gasLeftAfterRefund), &in.EffectiveGasPrice)
	if overflow {
		return GasAccountingResult{}, fmt.Errorf("%w: gasLeftAfterRefund * effectiveGasPrice overflows U256", ErrInvalidRefundAmount)
	}

	return GasAccountingResult{
		GasUsedBeforeRefund: gasUsedBeforeRefund,
		Claimable:           claimable,
		GasUsedAfterRefund:  gasUsedAfterRefund,
		GasLeftAfterRefund:  gasLeftAfterRefund,
		SenderRefundAmount:  *senderRefund,
	}, nil
}
