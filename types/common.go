// Package types defines the fixed-size value types shared by the EVM core:
// addresses, hashes, and log records.
package types

import (
	"encoding/hex"
	"fmt"
)

const (
	HashLength    = 32
	AddressLength = 20
)

// Hash is a 32-byte Keccak256 digest, a storage slot key, or a log topic.
type Hash [HashLength]byte

// Address is a 20-byte Ethereum account address.
type Address [AddressLength]byte

// BytesToHash converts b to a Hash, left-padding with zeros if b is shorter
// than 32 bytes and truncating the leading bytes if it is longer.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash parses a 0x-prefixed (or bare) hex string into a Hash.
func HexToHash(s string) Hash { return BytesToHash(fromHex(s)) }

// SetBytes sets the hash from b, left-padding if b is shorter than 32 bytes.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

func (h Hash) Bytes() []byte  { return h[:] }
func (h Hash) Hex() string    { return fmt.Sprintf("0x%x", h[:]) }
func (h Hash) String() string { return h.Hex() }
func (h Hash) IsZero() bool   { return h == Hash{} }

// BytesToAddress converts b to an Address, left-padding with zeros if
// shorter than 20 bytes and truncating leading bytes if longer.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress parses a 0x-prefixed (or bare) hex string into an Address.
func HexToAddress(s string) Address { return BytesToAddress(fromHex(s)) }

func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

func (a Address) Bytes() []byte  { return a[:] }
func (a Address) Hex() string    { return fmt.Sprintf("0x%x", a[:]) }
func (a Address) String() string { return a.Hex() }
func (a Address) IsZero() bool   { return a == Address{} }

func fromHex(s string) []byte {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

// EmptyCodeHash is Keccak256(nil), the code hash of an account with no code.
var EmptyCodeHash = HexToHash("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")

// VersionedHashVersionKZG is the EIP-4844 version byte for KZG versioned hashes.
const VersionedHashVersionKZG = 0x01

// Log is one EVM log record: an address, up to four topics, and opaque data.
type Log struct {
	Address Address
	Topics  []Hash
	Data    []byte
}
