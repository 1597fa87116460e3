package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/holiman/uint256"

	"github.com/ethexec/txcore/core"
	"github.com/ethexec/txcore/core/state"
	"github.com/ethexec/txcore/core/types"
	"github.com/ethexec/txcore/gethvm"
)

// scenario is the JSON input format accepted by the run command: a release,
// a block context, a prefunded account set, and the transactions to apply
// against it in order.
type scenario struct {
	Hardfork string `json:"hardfork"`

	Block struct {
		Coinbase           string `json:"coinbase"`
		BaseFeePerGas      string `json:"baseFeePerGas"`
		BlobGasPrice       string `json:"blobGasPrice"`
		BlockGasLimit      uint64 `json:"blockGasLimit"`
		MaxBlobGasPerBlock uint64 `json:"maxBlobGasPerBlock"`
		Number             uint64 `json:"number"`
		Time               uint64 `json:"time"`
	} `json:"block"`

	Accounts []struct {
		Address string `json:"address"`
		Balance string `json:"balance"`
		Nonce   uint64 `json:"nonce"`
		Code    string `json:"code"`
	} `json:"accounts"`

	Transactions []txInput `json:"transactions"`
}

// txInput is the JSON shape of one scenario transaction, converted to
// types.Transaction by buildTransaction.
type txInput struct {
	From       string   `json:"from"`
	Type       uint8    `json:"type"`
	Nonce      uint64   `json:"nonce"`
	GasLimit   uint64   `json:"gasLimit"`
	GasPrice   string   `json:"gasPrice"`
	GasTipCap  string   `json:"gasTipCap"`
	GasFeeCap  string   `json:"gasFeeCap"`
	To         string   `json:"to"`
	Value      string   `json:"value"`
	Data       string   `json:"data"`
	BlobHashes []string `json:"blobHashes"`
	BlobFeeCap string   `json:"blobFeeCap"`
}

func loadScenario(path string) (*scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s scenario
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &s, nil
}

var hardforkByName = map[string]core.Hardfork{
	"Frontier": core.Frontier, "Homestead": core.Homestead,
	"TangerineWhistle": core.TangerineWhistle, "SpuriousDragon": core.SpuriousDragon,
	"Byzantium": core.Byzantium, "Constantinople": core.Constantinople,
	"Petersburg": core.Petersburg, "Istanbul": core.Istanbul,
	"Berlin": core.Berlin, "London": core.London, "Paris": core.Paris,
	"Shanghai": core.Shanghai, "Cancun": core.Cancun, "Prague": core.Prague,
	"Osaka": core.Osaka,
}

func parseU256(s string) (uint256.Int, error) {
	var out uint256.Int
	if s == "" {
		return out, nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := uint256.FromHex(s)
		if err != nil {
			return out, err
		}
		return *v, nil
	}
	if err := out.SetFromDecimal(s); err != nil {
		return out, err
	}
	return out, nil
}

func parseData(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

// run applies every transaction in the scenario in order against a freshly
// built WorldState/TransientStorage/AccessListManager trio, accumulating
// block gas/blob-gas usage exactly like a single-block block processor
// would, and prints one result line per transaction.
func run(s *scenario) error {
	hf, ok := hardforkByName[s.Hardfork]
	if !ok {
		return fmt.Errorf("unknown hardfork %q", s.Hardfork)
	}
	spec := core.NewReleaseSpec(hf)

	world := state.NewWorldState()
	transient := state.NewTransientStorage()
	accessList := state.NewAccessListManager()

	for _, a := range s.Accounts {
		addr := types.HexToAddress(a.Address)
		balance, err := parseU256(a.Balance)
		if err != nil {
			return fmt.Errorf("account %s: balance: %w", a.Address, err)
		}
		code, err := parseData(a.Code)
		if err != nil {
			return fmt.Errorf("account %s: code: %w", a.Address, err)
		}
		acc := types.EmptyAccount()
		acc.Nonce = a.Nonce
		acc.Balance = balance
		world.SetAccount(addr, acc)
		if len(code) > 0 {
			world.SetCode(addr, code)
		}
	}

	baseFee, err := parseU256(s.Block.BaseFeePerGas)
	if err != nil {
		return fmt.Errorf("block: baseFeePerGas: %w", err)
	}
	blobGasPrice, err := parseU256(s.Block.BlobGasPrice)
	if err != nil {
		return fmt.Errorf("block: blobGasPrice: %w", err)
	}
	coinbase := types.HexToAddress(s.Block.Coinbase)

	blk := core.BlockContext{
		Coinbase:           coinbase,
		BaseFeePerGas:      baseFee,
		BlobGasPrice:       blobGasPrice,
		BlockGasLimit:      s.Block.BlockGasLimit,
		MaxBlobGasPerBlock: s.Block.MaxBlobGasPerBlock,
	}

	executor := gethvm.NewExecutor(spec, world, accessList, gethvm.BlockInfo{
		Coinbase:    coinbase,
		BlockNumber: s.Block.Number,
		Time:        s.Block.Time,
	})
	processor := core.NewTransactionProcessor(spec, world, transient, accessList, executor)

	for i, txIn := range s.Transactions {
		tx, sender, err := buildTransaction(txIn)
		if err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		result, err := processor.ProcessTransaction(tx, sender, blk)
		if err != nil {
			fmt.Printf("tx %d: failed: %v\n", i, err)
			continue
		}
		blk.BlockGasUsed += result.BlockGasUsedDelta
		blk.BlockBlobGasUsed += result.BlockBlobGasUsedDelta
		fmt.Printf("tx %d: gasUsed=%d refund=%d logs=%d\n", i, result.GasUsedAfterRefund, result.ClaimableRefund, len(result.Logs))
	}
	return nil
}

func buildTransaction(in txInput) (*types.Transaction, types.Address, error) {
	tx := &types.Transaction{Type: types.TxType(in.Type), Nonce: in.Nonce, GasLimit: in.GasLimit}

	var err error
	if tx.GasPrice, err = parseU256(in.GasPrice); err != nil {
		return nil, types.Address{}, fmt.Errorf("gasPrice: %w", err)
	}
	if tx.GasTipCap, err = parseU256(in.GasTipCap); err != nil {
		return nil, types.Address{}, fmt.Errorf("gasTipCap: %w", err)
	}
	if tx.GasFeeCap, err = parseU256(in.GasFeeCap); err != nil {
		return nil, types.Address{}, fmt.Errorf("gasFeeCap: %w", err)
	}
	if tx.Value, err = parseU256(in.Value); err != nil {
		return nil, types.Address{}, fmt.Errorf("value: %w", err)
	}
	if tx.BlobFeeCap, err = parseU256(in.BlobFeeCap); err != nil {
		return nil, types.Address{}, fmt.Errorf("blobFeeCap: %w", err)
	}
	if tx.Data, err = parseData(in.Data); err != nil {
		return nil, types.Address{}, fmt.Errorf("data: %w", err)
	}
	if in.To != "" {
		to := types.HexToAddress(in.To)
		tx.To = &to
	}
	for _, h := range in.BlobHashes {
		tx.BlobHashes = append(tx.BlobHashes, types.HexToHash(h))
	}

	sender := types.HexToAddress(in.From)
	return tx, sender, nil
}
