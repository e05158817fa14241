package vm

import (
	"encoding/binary"

	"github.com/evmcore/evmcore/crypto"
)

// blake2FPrecompile (0x09, Istanbul+) exposes the raw BLAKE2b compression
// function per EIP-152. Input is exactly 213 bytes:
//   rounds(4) || h(64) || m(128) || t0(8) || t1(8) || final(1)
type blake2FPrecompile struct{}

const blake2FInputLength = 213

func (blake2FPrecompile) RequiredGas(input []byte) uint64 {
	if len(input) != blake2FInputLength {
		return 0
	}
	return uint64(binary.BigEndian.Uint32(input[0:4]))
}

func (blake2FPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != blake2FInputLength {
		return nil, ErrInvalidParam
	}
	final := input[212]
	if final != 0 && final != 1 {
		return nil, ErrInvalidParam
	}

	rounds := binary.BigEndian.Uint32(input[0:4])

	var h [8]uint64
	for i := 0; i < 8; i++ {
		h[i] = binary.LittleEndian.Uint64(input[4+i*8:])
	}
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = binary.LittleEndian.Uint64(input[68+i*8:])
	}
	t := [2]uint64{
		binary.LittleEndian.Uint64(input[196:204]),
		binary.LittleEndian.Uint64(input[204:212]),
	}

	crypto.Blake2bF(&h, m, t, final == 1, rounds)

	out := make([]byte, 64)
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], h[i])
	}
	return out, nil
}
