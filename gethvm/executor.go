package gethvm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethvm "github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core"
	"github.com/ethexec/txcore/core/state"
	"github.com/ethexec/txcore/core/types"
	"github.com/ethexec/txcore/core/vm"
)

// BlockInfo is the subset of block header fields go-ethereum's BlockContext
// needs that Environment doesn't already carry (base fee travels in as
// Environment.GasPrice since TransactionProcessor already resolved the
// effective gas price before building the environment).
type BlockInfo struct {
	Coinbase    types.Address
	BlockNumber uint64
	Time        uint64
	Difficulty  uint64 // left at 0 post-merge; Random carries post-merge randomness
	Random      *types.Hash
}

// Executor implements core/vm.EvmExecutor against go-ethereum's real
// interpreter. One Executor is bound to one block's state trio, exactly like
// TransactionProcessor, plus the block-level fields BlockContext needs.
type Executor struct {
	spec       core.ReleaseSpec
	world      *state.WorldState
	accessList *state.AccessListManager
	blockInfo  BlockInfo
}

// NewExecutor binds an Executor to one block's WorldState/AccessListManager
// and header fields. TransientStorage is not bound here: it arrives fresh on
// every call via Environment.Transient, since TransactionEnvironmentBuilder
// clears it per transaction.
func NewExecutor(spec core.ReleaseSpec, world *state.WorldState, accessList *state.AccessListManager, blockInfo BlockInfo) *Executor {
	return &Executor{spec: spec, world: world, accessList: accessList, blockInfo: blockInfo}
}

// Execute runs one call frame through go-ethereum's EVM. No interpreter
// failure becomes a Go error here: every one is reported in out.Err, and
// out.Reverted is set only for a revert, whose gasLeft and refund counter
// are still valid settlement inputs. The returned err is always nil.
func (e *Executor) Execute(env vm.Environment, frame vm.CallFrame) (vm.EvmOutput, error) {
	db := newStateDB(e.world, env.Transient, e.accessList)

	blockCtx := gethvm.BlockContext{
		CanTransfer: canTransfer,
		Transfer:    transfer,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
		Coinbase:    toGethAddress(e.blockInfo.Coinbase),
		GasLimit:    env.Gas,
		BlockNumber: new(big.Int).SetUint64(e.blockInfo.BlockNumber),
		Time:        e.blockInfo.Time,
		Difficulty:  new(big.Int).SetUint64(e.blockInfo.Difficulty),
		BaseFee:     toBig(&env.GasPrice),
	}
	if e.blockInfo.Random != nil {
		rnd := toGethHash(*e.blockInfo.Random)
		blockCtx.Random = &rnd
	}

	evm := gethvm.NewEVM(blockCtx, db, chainConfig(e.spec), gethvm.Config{})
	evm.TxContext = gethvm.TxContext{
		Origin:     toGethAddress(env.Origin),
		GasPrice:   toBig(&env.GasPrice),
		BlobHashes: toGethHashes(env.BlobVersionedHashes),
	}

	sender := toGethAddress(env.Origin)
	value := &frame.Value

	var (
		leftOverGas  uint64
		contractAddr *types.Address
		execErr      error
	)
	if frame.To == nil {
		var created common.Address
		_, created, leftOverGas, execErr = evm.Create(sender, frame.Input, env.Gas, value)
		if execErr == nil {
			a := fromGethAddress(created)
			contractAddr = &a
		}
	} else {
		to := toGethAddress(*frame.To)
		_, leftOverGas, execErr = evm.Call(sender, to, frame.Input, env.Gas, value)
	}

	out := vm.EvmOutput{
		GasLeft:          leftOverGas,
		RefundCounter:    db.GetRefund(),
		Logs:             db.logsAsTypes(),
		AccountsToDelete: selfDestructedList(db),
		ContractAddress:  contractAddr,
	}
	if execErr != nil {
		out.Reverted = execErr == gethvm.ErrExecutionReverted
		out.Err = execErr
	}
	return out, nil
}

func canTransfer(db gethvm.StateDB, addr common.Address, amount *uint256.Int) bool {
	return db.GetBalance(addr).Cmp(amount) >= 0
}

func transfer(db gethvm.StateDB, sender, recipient common.Address, amount *uint256.Int) {
	db.SubBalance(sender, amount, tracing.BalanceChangeTransfer)
	db.AddBalance(recipient, amount, tracing.BalanceChangeTransfer)
}

func selfDestructedList(db *stateDB) []types.Address {
	set := db.world.SelfDestructedSet()
	out := make([]types.Address, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	return out
}
