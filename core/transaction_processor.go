package core

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core/state"
	"github.com/ethexec/txcore/core/types"
	"github.com/ethexec/txcore/core/vm"
	"github.com/ethexec/txcore/log"
)

// BlockContext bundles the block-level parameters TransactionProcessor
// consumes from its caller.
type BlockContext struct {
	Coinbase           types.Address
	BaseFeePerGas      uint256.Int
	BlobGasPrice       uint256.Int
	BlockGasLimit      uint64
	BlockGasUsed       uint64
	MaxBlobGasPerBlock uint64
	BlockBlobGasUsed   uint64
}

// FinalizedTransactionExecution is the result of a fully settled
// transaction, the delta the block processor accumulates.
type FinalizedTransactionExecution struct {
	GasUsedBeforeRefund   uint64
	ClaimableRefund       uint64
	GasUsedAfterRefund    uint64
	SenderNetGasCost      uint256.Int // debited from sender: gas cost + blob gas cost
	CoinbaseBalanceDelta  uint256.Int
	PriorityFeePerGas     uint256.Int
	Logs                  []types.Log
	AccountsToDelete      []types.Address
	BlockGasUsedDelta     uint64
	BlockBlobGasUsedDelta uint64
}

// TransactionProcessor orchestrates one transaction end to end under a
// single TransactionBoundary, in a fixed stage order: fee calculation,
// max-fee/balance check, inclusion/sender-code check, buy-gas/nonce-bump,
// execute, settle, finalize.
type TransactionProcessor struct {
	spec       ReleaseSpec
	world      *state.WorldState
	transient  *state.TransientStorage
	accessList *state.AccessListManager
	boundary   *state.TransactionBoundary
	executor   vm.EvmExecutor
	logger     *log.Logger
}

// NewTransactionProcessor binds a processor to one block's state trio and
// EvmExecutor. The trio is exclusively owned by the returned processor for
// the block's duration.
func NewTransactionProcessor(spec ReleaseSpec, world *state.WorldState, transient *state.TransientStorage, accessList *state.AccessListManager, executor vm.EvmExecutor) *TransactionProcessor {
	return &TransactionProcessor{
		spec:       spec,
		world:      world,
		transient:  transient,
		accessList: accessList,
		boundary:   state.NewTransactionBoundary(world, transient, accessList),
		executor:   executor,
		logger:     log.Default().Module("txprocessor"),
	}
}

// ProcessTransaction runs the full pipeline for one transaction and returns
// its settlement, or an error if the transaction is rejected. A rejected
// transaction never mutates state.
func (p *TransactionProcessor) ProcessTransaction(tx *types.Transaction, sender types.Address, blk BlockContext) (FinalizedTransactionExecution, error) {
	var result FinalizedTransactionExecution

	err := p.boundary.RunInTransactionBoundary(func() error {
		fee, err := ComputeFee(tx, blk.BaseFeePerGas)
		if err != nil {
			return err
		}
		p.logger.Debug("fee computed", "effectiveGasPrice", fee.EffectiveGasPrice.String())

		blobGasUsed, err := p.checkMaxGasFeeAndBalance(tx, sender, fee, blk)
		if err != nil {
			return err
		}

		if err := p.checkInclusionAvailabilityAndSenderCode(tx, sender, blk, blobGasUsed); err != nil {
			p.logger.Warn("inclusion check failed", "err", err)
			return err
		}

		if err := p.buyGasAndIncrementNonce(tx, sender, fee.EffectiveGasPrice, blk.BlobGasPrice, blobGasUsed); err != nil {
			p.logger.Warn("buy-gas failed", "err", err)
			return err
		}

		env, gasResult, err := BuildTransactionEnvironment(TransactionEnvironmentInput{
			Tx:       tx,
			Origin:   sender,
			Coinbase: blk.Coinbase,
			GasPrice: fee.EffectiveGasPrice,
		}, p.transient, p.spec)
		if err != nil {
			return err
		}
		p.accessList.Reset()
		p.accessList.Seed(env.AccessListAddresses, toWarmPairs(env.AccessListStorageKeys))

		out, err := p.execute(tx, env)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEvmExecution, err)
		}

		settled, err := p.settlePostExecutionBalances(tx, sender, blk.Coinbase, fee, out, gasResult)
		if err != nil {
			return err
		}

		result = p.finalizeTransactionExecution(out, blobGasUsed, settled)
		blobCost := new(uint256.Int).Mul(uint256.NewInt(blobGasUsed), &blk.BlobGasPrice)
		result.SenderNetGasCost.Add(&result.SenderNetGasCost, blobCost)
		return nil
	})
	if err != nil {
		return FinalizedTransactionExecution{}, err
	}
	return result, nil
}

// checkMaxGasFeeAndBalance validates fee-cap and blob/set-code preconditions
// and checks the sender can cover the worst-case gas cost plus value.
func (p *TransactionProcessor) checkMaxGasFeeAndBalance(tx *types.Transaction, sender types.Address, fee FeeResult, blk BlockContext) (blobGasUsed uint64, err error) {
	effectiveMax := tx.EffectiveFeeCap()
	maxGasFee := new(uint256.Int).Mul(uint256.NewInt(tx.GasLimit), effectiveMax)

	switch tx.Type {
	case types.BlobTxType:
		if tx.To == nil {
			return 0, fmt.Errorf("%w", ErrTransactionTypeContractCreation)
		}
		if len(tx.BlobHashes) == 0 {
			return 0, fmt.Errorf("%w", ErrNoBlobData)
		}
		for i, h := range tx.BlobHashes {
			if h.VersionByte() != 0x01 {
				return 0, fmt.Errorf("%w: index %d", ErrInvalidBlobVersionedHash, i)
			}
		}
		if tx.BlobFeeCap.Cmp(&blk.BlobGasPrice) < 0 {
			return 0, fmt.Errorf("%w", ErrInsufficientMaxFeePerBlobGas)
		}
		blobGasUsed = uint64(len(tx.BlobHashes)) * p.spec.BlobGasPerBlob()
		blobGasFee := new(uint256.Int).Mul(uint256.NewInt(blobGasUsed), &tx.BlobFeeCap)
		maxGasFee.Add(maxGasFee, blobGasFee)

	case types.SetCodeTxType:
		if tx.To == nil {
			return 0, fmt.Errorf("%w", ErrTransactionTypeContractCreation)
		}
		if len(tx.AuthorizationList) == 0 {
			return 0, fmt.Errorf("%w", ErrEmptyAuthorizationList)
		}
	}

	required := new(uint256.Int).Add(maxGasFee, &tx.Value)
	senderBalance := p.world.GetAccount(sender).Balance
	if senderBalance.Cmp(required) < 0 {
		return 0, fmt.Errorf("%w: have %s, need %s", ErrInsufficientSenderBalance, senderBalance.String(), required.String())
	}
	return blobGasUsed, nil
}

// checkInclusionAvailabilityAndSenderCode checks block gas/blob-gas
// availability and sender code validity. It runs strictly before any state
// mutation.
func (p *TransactionProcessor) checkInclusionAvailabilityAndSenderCode(tx *types.Transaction, sender types.Address, blk BlockContext, blobGasUsed uint64) error {
	gasPool := GasPool(blk.BlockGasLimit)
	_ = gasPool.SubGas(blk.BlockGasUsed)
	if err := gasPool.SubGas(tx.GasLimit); err != nil {
		return fmt.Errorf("%w", ErrBlockGasLimitExceeded)
	}

	blobGasPool := GasPool(blk.MaxBlobGasPerBlock)
	_ = blobGasPool.SubGas(blk.BlockBlobGasUsed)
	if err := blobGasPool.SubGas(blobGasUsed); err != nil {
		return fmt.Errorf("%w", ErrBlockBlobGasLimitExceeded)
	}
	senderCode := p.world.GetCode(sender)
	if !IsValidSenderCode(senderCode) {
		return fmt.Errorf("%w", ErrInvalidSenderAccountCode)
	}
	return nil
}

// buyGasAndIncrementNonce debits the sender's max gas cost and bumps its
// nonce in a single journaled write, after validating the nonce.
func (p *TransactionProcessor) buyGasAndIncrementNonce(tx *types.Transaction, sender types.Address, effectiveGasPrice, currentBlobGasPrice uint256.Int, blobGasUsed uint64) error {
	acc := p.world.GetAccount(sender)
	if tx.Nonce < acc.Nonce {
		return fmt.Errorf("%w: tx nonce %d < account nonce %d", ErrTransactionNonceTooLow, tx.Nonce, acc.Nonce)
	}
	if tx.Nonce > acc.Nonce {
		return fmt.Errorf("%w: tx nonce %d > account nonce %d", ErrTransactionNonceTooHigh, tx.Nonce, acc.Nonce)
	}

	gasCost := new(uint256.Int).Mul(uint256.NewInt(tx.GasLimit), &effectiveGasPrice)
	blobCost := new(uint256.Int).Mul(uint256.NewInt(blobGasUsed), &currentBlobGasPrice)
	precharge := new(uint256.Int).Add(gasCost, blobCost)

	acc.Balance.Sub(&acc.Balance, precharge)
	acc.Nonce++
	p.world.SetAccount(sender, acc)
	return nil
}

// execute builds the outer call frame and runs it through EvmExecutor
// inside a call-frame boundary nested under the already-active transaction
// boundary.
func (p *TransactionProcessor) execute(tx *types.Transaction, env vm.Environment) (vm.EvmOutput, error) {
	frame := vm.CallFrame{To: tx.To, Input: tx.Data, Value: tx.Value}

	var out vm.EvmOutput
	err := p.boundary.RunInCallFrameBoundary(func() error {
		var execErr error
		out, execErr = p.executor.Execute(env, frame)
		if execErr != nil {
			return execErr
		}
		if out.Err != nil && !out.Reverted {
			return out.Err
		}
		return nil
	})
	return out, err
}

// settlePostExecutionBalances computes the gas refund owed to the sender
// and the fee owed to the coinbase after execution finishes.
func (p *TransactionProcessor) settlePostExecutionBalances(tx *types.Transaction, sender, coinbase types.Address, fee FeeResult, out vm.EvmOutput, gasResult IntrinsicGasResult) (FinalizedTransactionExecution, error) {
	floor := uint64(0)
	if p.spec.IsEIP7623Enabled() {
		floor = gasResult.CalldataFloorGas
	}
	if floor > tx.GasLimit {
		return FinalizedTransactionExecution{}, fmt.Errorf("%w", ErrCalldataFloorGasExceedsGasLimit)
	}

	settled, err := Settle(GasAccountingInput{
		GasLimit:          tx.GasLimit,
		GasLeft:           out.GasLeft,
		RefundCounter:     out.RefundCounter,
		EffectiveGasPrice: fee.EffectiveGasPrice,
		CalldataFloorGas:  floor,
	}, p.spec)
	if err != nil {
		return FinalizedTransactionExecution{}, err
	}

	p.world.AddBalance(sender, &settled.SenderRefundAmount)

	transactionFee := new(uint256.Int).Mul(uint256.NewInt(settled.GasUsedAfterRefund), &fee.PriorityFeePerGas)
	p.world.AddBalance(coinbase, transactionFee)

	netGasCost := new(uint256.Int).Mul(uint256.NewInt(settled.GasUsedAfterRefund), &fee.EffectiveGasPrice)

	return FinalizedTransactionExecution{
		GasUsedBeforeRefund:  settled.GasUsedBeforeRefund,
		ClaimableRefund:      settled.Claimable,
		GasUsedAfterRefund:   settled.GasUsedAfterRefund,
		SenderNetGasCost:     *netGasCost,
		CoinbaseBalanceDelta: *transactionFee,
		PriorityFeePerGas:    fee.PriorityFeePerGas,
		Logs:                 out.Logs,
		AccountsToDelete:     out.AccountsToDelete,
	}, nil
}

// finalizeTransactionExecution destroys self-destructed accounts and rolls
// the transaction's gas/blob-gas usage into the block totals.
func (p *TransactionProcessor) finalizeTransactionExecution(out vm.EvmOutput, blobGasUsed uint64, result FinalizedTransactionExecution) FinalizedTransactionExecution {
	for _, addr := range out.AccountsToDelete {
		p.world.DestroyAccount(addr)
	}
	result.BlockGasUsedDelta = result.GasUsedAfterRefund
	result.BlockBlobGasUsedDelta = blobGasUsed
	return result
}

func toWarmPairs(pairs []vm.AddressSlot) []state.WarmPair {
	out := make([]state.WarmPair, len(pairs))
	for i, p := range pairs {
		out[i] = state.WarmPair{Address: p.Address, Slot: p.Slot}
	}
	return out
}
