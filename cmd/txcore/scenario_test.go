package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseU256_HexAndDecimal(t *testing.T) {
	hex, err := parseU256("0x10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hex.Uint64() != 16 {
		t.Errorf("parseU256(0x10) = %d, want 16", hex.Uint64())
	}

	dec, err := parseU256("1000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Uint64() != 1000 {
		t.Errorf("parseU256(1000) = %d, want 1000", dec.Uint64())
	}

	empty, err := parseU256("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !empty.IsZero() {
		t.Errorf("parseU256(\"\") should be zero")
	}
}

func TestParseU256_InvalidDecimalFails(t *testing.T) {
	if _, err := parseU256("not-a-number"); err == nil {
		t.Fatal("expected an error for a malformed decimal string")
	}
}

func TestParseData_HexWithAndWithoutPrefix(t *testing.T) {
	a, err := parseData("0xdeadbeef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 4 {
		t.Errorf("parseData(0xdeadbeef) length = %d, want 4", len(a))
	}

	b, err := parseData("deadbeef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != 4 {
		t.Errorf("parseData(deadbeef) length = %d, want 4", len(b))
	}

	empty, err := parseData("")
	if err != nil || empty != nil {
		t.Errorf("parseData(\"\") should be (nil, nil), got (%v, %v)", empty, err)
	}
}

func TestParseData_InvalidHexFails(t *testing.T) {
	if _, err := parseData("not-hex"); err == nil {
		t.Fatal("expected an error for malformed hex calldata")
	}
}

func TestLoadScenario_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.json")
	body := `{
		"hardfork": "Prague",
		"block": {"coinbase": "0x0000000000000000000000000000000000000003", "baseFeePerGas": "10", "blockGasLimit": 30000000},
		"accounts": [{"address": "0x0000000000000000000000000000000000000001", "balance": "1000000000000"}],
		"transactions": [{"from": "0x0000000000000000000000000000000000000001", "type": 2, "gasLimit": 21000, "gasFeeCap": "100", "gasTipCap": "10", "to": "0x0000000000000000000000000000000000000002"}]
	}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := loadScenario(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Hardfork != "Prague" {
		t.Errorf("Hardfork = %q, want Prague", s.Hardfork)
	}
	if len(s.Accounts) != 1 || len(s.Transactions) != 1 {
		t.Fatalf("expected 1 account and 1 transaction, got %d/%d", len(s.Accounts), len(s.Transactions))
	}
}

func TestLoadScenario_MissingFileFails(t *testing.T) {
	if _, err := loadScenario(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a nonexistent scenario file")
	}
}

func TestLoadScenario_MalformedJSONFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadScenario(path); err == nil {
		t.Fatal("expected an error for malformed scenario JSON")
	}
}

func TestBuildTransaction_ParsesFieldsAndSender(t *testing.T) {
	in := txInput{
		From: "0x0000000000000000000000000000000000000001",
		Type: 2, Nonce: 3, GasLimit: 21000,
		GasFeeCap: "100", GasTipCap: "10",
		To: "0x0000000000000000000000000000000000000002",
		Value: "0x5",
	}
	tx, sender, err := buildTransaction(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Nonce != 3 || tx.GasLimit != 21000 {
		t.Errorf("tx fields mismatch: nonce=%d gasLimit=%d", tx.Nonce, tx.GasLimit)
	}
	if tx.To == nil {
		t.Fatal("expected a non-nil recipient")
	}
	if tx.Value.Uint64() != 5 {
		t.Errorf("Value = %d, want 5", tx.Value.Uint64())
	}
	if sender.Hex() != "0x0000000000000000000000000000000000000001" {
		t.Errorf("sender = %s, want 0x...0001", sender.Hex())
	}
}

func TestBuildTransaction_ContractCreationHasNilTo(t *testing.T) {
	in := txInput{From: "0x0000000000000000000000000000000000000001", GasLimit: 100000}
	tx, _, err := buildTransaction(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.To != nil {
		t.Error("expected nil To for a contract-creation transaction with no recipient")
	}
}

func TestBuildTransaction_InvalidGasPriceFails(t *testing.T) {
	in := txInput{From: "0x0000000000000000000000000000000000000001", GasPrice: "not-a-number"}
	if _, _, err := buildTransaction(in); err == nil {
		t.Fatal("expected an error for a malformed gasPrice field")
	}
}
