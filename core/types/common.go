// Package types defines the wire-level data structures of the transaction
// execution pipeline: addresses, hashes, the typed transaction envelope, and
// account state.
package types

import (
	"encoding/hex"
	"fmt"
)

const (
	HashLength    = 32
	AddressLength = 20
)

// Hash is a 32-byte identifier (tx hash, storage slot, block hash, ...).
type Hash [HashLength]byte

// Address is the 20-byte identifier of an account.
type Address [AddressLength]byte

// BytesToHash converts bytes to Hash, left-padding if shorter than 32 bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash converts a hex string to Hash.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the hex string representation of the hash.
func (h Hash) Hex() string { return fmt.Sprintf("0x%x", h[:]) }

// SetBytes sets the hash from a byte slice, left-padding if necessary.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// IsZero returns whether the hash is all zeros.
func (h Hash) IsZero() bool { return h == Hash{} }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// VersionByte returns the first byte of the hash, used by EIP-4844 to tag
// the commitment scheme a blob versioned hash was derived under.
func (h Hash) VersionByte() byte { return h[0] }

// BytesToAddress converts bytes to Address, left-padding if shorter than 20 bytes.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress converts a hex string to Address.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the hex string representation of the address.
func (a Address) Hex() string { return fmt.Sprintf("0x%x", a[:]) }

// SetBytes sets the address from a byte slice.
func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// IsZero returns whether the address is all zeros.
func (a Address) IsZero() bool { return a == Address{} }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// StorageSlot and StorageValue are both 32-byte words; the distinct names
// document intent at call sites without adding a distinct representation.
type StorageSlot = Hash
type StorageValue = Hash

var (
	// EmptyCodeHash is keccak256 of the empty byte string, the code hash
	// every account with no code (or explicitly cleared code) carries.
	EmptyCodeHash = HexToHash("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")

	// EmptyRootHash is the root hash of an empty storage trie. The in-memory
	// WorldState never computes a real trie root; it reports this constant
	// for accounts with no storage, matching the protocol's convention.
	EmptyRootHash = HexToHash("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")
)

// Log is a single EVM LOG event, produced by the interpreter and surfaced
// append-only on EvmOutput.
type Log struct {
	Address Address
	Topics  []Hash
	Data    []byte
}

func fromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
