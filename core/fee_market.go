package core

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/types"
)

// FeeResult is the effective-gas-price / priority-fee pair TransactionProcessor
// needs before it can check the sender's balance.
type FeeResult struct {
	EffectiveGasPrice uint256.Int
	PriorityFeePerGas uint256.Int
}

// ComputeFee implements the fee calculation step of TransactionProcessor.
// Legacy and EIP-2930 transactions pay their declared gas price outright;
// fee-market transactions (EIP-1559/4844/7702) pay the base fee plus a
// capped priority fee.
func ComputeFee(tx *types.Transaction, baseFee uint256.Int) (FeeResult, error) {
	switch tx.Type {
	case types.LegacyTxType, types.AccessListTxType:
		if tx.GasPrice.Cmp(&baseFee) < 0 {
			return FeeResult{}, fmt.Errorf("%w: gasPrice %s < baseFee %s", ErrGasPriceBelowBaseFee, tx.GasPrice.String(), baseFee.String())
		}
		priority := new(uint256.Int).Sub(&tx.GasPrice, &baseFee)
		return FeeResult{EffectiveGasPrice: tx.GasPrice, PriorityFeePerGas: *priority}, nil

	case types.DynamicFeeTxType, types.BlobTxType, types.SetCodeTxType:
		if tx.GasFeeCap.Cmp(&tx.GasTipCap) < 0 {
			return FeeResult{}, fmt.Errorf("%w: maxFeePerGas %s < maxPriorityFeePerGas %s", ErrPriorityFeeGreaterThanMaxFee, tx.GasFeeCap.String(), tx.GasTipCap.String())
		}
		if tx.GasFeeCap.Cmp(&baseFee) < 0 {
			return FeeResult{}, fmt.Errorf("%w: maxFeePerGas %s < baseFee %s", ErrInsufficientMaxFeePerGas, tx.GasFeeCap.String(), baseFee.String())
		}
		feeCapMinusBase := new(uint256.Int).Sub(&tx.GasFeeCap, &baseFee)
		priority := tx.GasTipCap
		if feeCapMinusBase.Cmp(&priority) < 0 {
			priority = *feeCapMinusBase
		}
		effective := new(uint256.Int).Add(&baseFee, &priority)
		return FeeResult{EffectiveGasPrice: *effective, PriorityFeePerGas: priority}, nil

	default:
		return FeeResult{}, fmt.Errorf("%w: type %d", ErrUnsupportedTransactionType, tx.Type)
	}
}

// fakeExponential approximates factor * e^(numerator/denominator) via the
// Taylor series the protocol specifies for exponential fee markets (EIP-4844
// blob base fee, and by extension any future exponential gas market). A
// single shared implementation, since every caller needs the same series.
func fakeExponential(factor, numerator, denominator *big.Int) *big.Int {
	output := new(big.Int)
	numAccum := new(big.Int).Mul(factor, denominator)
	term := new(big.Int)

	for i := int64(1); numAccum.Sign() > 0; i++ {
		output.Add(output, numAccum)

		term.Mul(numAccum, numerator)
		divisor := new(big.Int).Mul(denominator, big.NewInt(i))
		numAccum.Div(term, divisor)
	}
	return output.Div(output, denominator)
}

// BlobGasPrice computes the current per-unit blob gas price from the excess
// blob gas accumulated in the parent block, using the EIP-4844 exponential
// fee-market formula with the protocol's MIN_BLOB_GASPRICE and
// BLOB_GASPRICE_UPDATE_FRACTION constants.
func BlobGasPrice(excessBlobGas uint64) *big.Int {
	const (
		minBlobGasPrice           = 1
		blobGasPriceUpdateFraction = 3338477
	)
	return fakeExponential(big.NewInt(minBlobGasPrice), new(big.Int).SetUint64(excessBlobGas), big.NewInt(blobGasPriceUpdateFraction))
}
