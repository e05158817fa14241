package vm

import (
	"github.com/evmcore/evmcore/crypto"
)

// ---- BN_ADD (0x06) ----

type bn256AddPrecompile struct {
	rules Rules
}

func (p bn256AddPrecompile) RequiredGas(input []byte) uint64 {
	if p.rules.IsIstanbul {
		return 150
	}
	return 500
}

func (p bn256AddPrecompile) Run(input []byte) ([]byte, error) {
	out, err := crypto.BN254Add(input)
	if err != nil {
		return nil, ErrPrecompileFailure
	}
	return out, nil
}

// ---- BN_MUL (0x07) ----

type bn256MulPrecompile struct {
	rules Rules
}

func (p bn256MulPrecompile) RequiredGas(input []byte) uint64 {
	if p.rules.IsIstanbul {
		return 6000
	}
	return 40000
}

func (p bn256MulPrecompile) Run(input []byte) ([]byte, error) {
	out, err := crypto.BN254ScalarMul(input)
	if err != nil {
		return nil, ErrPrecompileFailure
	}
	return out, nil
}

// ---- BN_PAIRING (0x08) ----

type bn256PairingPrecompile struct {
	rules Rules
}

func (p bn256PairingPrecompile) RequiredGas(input []byte) uint64 {
	k := uint64(len(input) / 192)
	if p.rules.IsIstanbul {
		return 45000 + 34000*k
	}
	return 100000 + 80000*k
}

func (p bn256PairingPrecompile) Run(input []byte) ([]byte, error) {
	if len(input)%192 != 0 {
		return nil, ErrPrecompileFailure
	}
	out, err := crypto.BN254Pairing(input)
	if err != nil {
		return nil, ErrPrecompileFailure
	}
	return out, nil
}
