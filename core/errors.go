package core

import "errors"

// Error taxonomy for the transaction execution pipeline. Every
// failure surfaced by this package is one of these sentinels, wrapped with
// fmt.Errorf("...: %w", ...) for caller context; callers classify failures
// with errors.Is against this list.
var (
	// Decode / validation.
	ErrInvalidTransaction          = errors.New("core: invalid transaction")
	ErrInvalidBaseFee              = errors.New("core: invalid base fee")
	ErrInvalidGasPrice             = errors.New("core: invalid gas price")
	ErrInvalidBalance              = errors.New("core: invalid balance")
	ErrInvalidGas                  = errors.New("core: invalid gas")
	ErrInvalidRefundAmount         = errors.New("core: invalid refund amount")
	ErrInvalidBlobVersionedHash    = errors.New("core: invalid blob versioned hash")
	ErrInvalidSenderAccountCode    = errors.New("core: invalid sender account code")
	ErrUnsupportedTransactionType  = errors.New("core: unsupported transaction type")
	ErrUnsupportedAccessListFeature = errors.New("core: access list feature not enabled")

	// Economic.
	ErrGasPriceBelowBaseFee        = errors.New("core: gas price below base fee")
	ErrPriorityFeeGreaterThanMaxFee = errors.New("core: priority fee greater than max fee")
	ErrInsufficientMaxFeePerGas    = errors.New("core: insufficient max fee per gas")
	ErrInsufficientMaxFeePerBlobGas = errors.New("core: insufficient max fee per blob gas")
	ErrInsufficientSenderBalance   = errors.New("core: insufficient sender balance")
	ErrInsufficientTransactionGas  = errors.New("core: insufficient transaction gas")
	ErrCalldataFloorGasExceedsGasLimit = errors.New("core: calldata floor gas exceeds gas limit")
	ErrGasLeftExceedsGasLimit      = errors.New("core: gas left exceeds gas limit")

	// Structural.
	ErrTransactionNonceTooLow      = errors.New("core: transaction nonce too low")
	ErrTransactionNonceTooHigh     = errors.New("core: transaction nonce too high")
	ErrBlockGasLimitExceeded       = errors.New("core: block gas limit exceeded")
	ErrBlockBlobGasLimitExceeded   = errors.New("core: block blob gas limit exceeded")
	ErrNoBlobData                  = errors.New("core: no blob data")
	ErrEmptyAuthorizationList      = errors.New("core: empty authorization list")
	ErrTransactionTypeContractCreation = errors.New("core: transaction type forbids contract creation")

	// Scope control.
	ErrNoActiveTransaction = errors.New("core: no active transaction")
	ErrInvalidSnapshot     = errors.New("core: invalid snapshot")

	// State.
	ErrMissingAccount = errors.New("core: missing account")

	// VM: opaque, forwarded verbatim from the EvmExecutor boundary.
	ErrEvmExecution = errors.New("core: evm execution error")
)
