package vm

import (
	"github.com/holiman/uint256"
)

// Memory is the EVM's byte-addressable, word-expanding linear memory. It
// grows only in 32-byte words and never shrinks within a single Computation.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Len returns the current size of memory in bytes.
func (m *Memory) Len() int { return len(m.store) }

// Resize grows memory to at least size bytes, zero-filling the new region.
// size must already be rounded up to a 32-byte boundary by the caller (the
// interpreter rounds it via MemoryWords); Resize itself does not round.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	grown := make([]byte, size)
	copy(grown, m.store)
	m.store = grown
}

// Set writes value into memory starting at offset. The caller must have
// already resized memory to accommodate offset+len(value).
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("memory: write out of bounds, caller must resize first")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val as a 32-byte big-endian word at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("memory: write out of bounds, caller must resize first")
	}
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// GetCopy returns a freshly-allocated copy of the size bytes at offset.
// Reading beyond the current memory size returns zero bytes (memory reads
// never fault, they only trigger growth which the interpreter's gas
// accounting already accounted for).
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	if offset < uint64(len(m.store)) {
		copy(out, m.store[offset:])
	}
	return out
}

// GetPtr returns a slice view (not a copy) of size bytes at offset. The
// caller must not retain it across further memory growth, which may
// reallocate the backing array.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Data exposes the raw backing store, used by tracers and RETURNDATACOPY-
// style introspection.
func (m *Memory) Data() []byte { return m.store }

// Copy implements memmove semantics within memory, handling overlap
// correctly regardless of copy direction. Used by MCOPY (EIP-5656).
func (m *Memory) Copy(dst, src, size uint64) {
	if size == 0 {
		return
	}
	copy(m.store[dst:dst+size], m.store[src:src+size])
}

// MemoryWords returns the number of 32-byte words needed to cover size bytes.
func MemoryWords(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	return (size + 31) / 32
}
