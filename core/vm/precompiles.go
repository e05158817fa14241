package vm

import (
	"math/big"

	"github.com/evmcore/evmcore/crypto"
	"github.com/evmcore/evmcore/types"
)

// PrecompiledContract is a fixed-address pseudo-contract: a pure function
// of input bytes plus a gas computation.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// PrecompileAddress returns the 20-byte address a precompile lives at
// (0x00..00 followed by the single address byte).
func PrecompileAddress(n byte) types.Address {
	var a types.Address
	a[19] = n
	return a
}

// PrecompiledContracts returns the address->contract table active at
// fork, per §4.8's "Enabled from" column.
func PrecompiledContracts(rules Rules) map[types.Address]PrecompiledContract {
	m := map[types.Address]PrecompiledContract{
		PrecompileAddress(1): ecrecoverPrecompile{},
		PrecompileAddress(2): sha256Precompile{},
		PrecompileAddress(3): ripemd160Precompile{},
		PrecompileAddress(4): identityPrecompile{},
	}
	if rules.IsByzantium {
		m[PrecompileAddress(5)] = modexpPrecompile{rules: rules}
		m[PrecompileAddress(6)] = bn256AddPrecompile{rules: rules}
		m[PrecompileAddress(7)] = bn256MulPrecompile{rules: rules}
		m[PrecompileAddress(8)] = bn256PairingPrecompile{rules: rules}
	}
	if rules.IsIstanbul {
		m[PrecompileAddress(9)] = blake2FPrecompile{}
	}
	if rules.IsCancun {
		m[PrecompileAddress(10)] = pointEvaluationPrecompile{}
	}
	if rules.IsPrague {
		for addr, pc := range bls12381Precompiles() {
			m[addr] = pc
		}
	}
	return m
}

// RunPrecompile charges gas and executes a precompile. A failure returns
// with zero gas remaining: the caller (a CALL-family handler) treats this
// the same as any other failed child frame, pushing 0 and continuing.
func RunPrecompile(pc PrecompiledContract, input []byte, gas uint64) ([]byte, uint64, error) {
	cost := pc.RequiredGas(input)
	if cost > gas {
		return nil, 0, ErrOutOfGas
	}
	out, err := pc.Run(input)
	if err != nil {
		return nil, 0, err
	}
	return out, gas - cost, nil
}

// ---- ECRECOVER (0x01) ----

type ecrecoverPrecompile struct{}

func (ecrecoverPrecompile) RequiredGas(input []byte) uint64 { return 3000 }

func (ecrecoverPrecompile) Run(input []byte) ([]byte, error) {
	const inputLen = 128
	in := rightPad(input, inputLen)

	hash := in[0:32]
	v := in[63]
	r := new(big.Int).SetBytes(in[64:96])
	s := new(big.Int).SetBytes(in[96:128])

	if v != 27 && v != 28 {
		return nil, nil
	}
	if !crypto.ValidateSignatureValues(v-27, r, s, false) {
		return nil, nil
	}

	sig := make([]byte, 65)
	copy(sig[0:32], in[64:96])
	copy(sig[32:64], in[96:128])
	sig[64] = v - 27

	pub, err := crypto.Ecrecover(hash, sig)
	if err != nil {
		return nil, nil
	}
	addrHash := crypto.Keccak256(pub[1:])
	out := make([]byte, 32)
	copy(out[12:], addrHash[12:])
	return out, nil
}

// ---- SHA256 (0x02) ----

type sha256Precompile struct{}

func (sha256Precompile) RequiredGas(input []byte) uint64 {
	return 60 + 12*ceilDiv(uint64(len(input)), 32)
}

func (sha256Precompile) Run(input []byte) ([]byte, error) {
	return crypto.SHA256(input), nil
}

// ---- RIPEMD160 (0x03) ----

type ripemd160Precompile struct{}

func (ripemd160Precompile) RequiredGas(input []byte) uint64 {
	return 600 + 120*ceilDiv(uint64(len(input)), 32)
}

func (ripemd160Precompile) Run(input []byte) ([]byte, error) {
	digest := crypto.RIPEMD160(input)
	out := make([]byte, 32)
	copy(out[12:], digest)
	return out, nil
}

// ---- IDENTITY (0x04) ----

type identityPrecompile struct{}

func (identityPrecompile) RequiredGas(input []byte) uint64 {
	return 15 + 3*ceilDiv(uint64(len(input)), 32)
}

func (identityPrecompile) Run(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

func rightPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}
