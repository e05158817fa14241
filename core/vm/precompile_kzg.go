package vm

import (
	"bytes"
	"math/big"

	"github.com/evmcore/evmcore/crypto"
	"github.com/evmcore/evmcore/types"
)

// pointEvaluationPrecompile (0x0A, Cancun+) implements EIP-4844's
// POINT_EVALUATION_PRECOMPILE: verifies that a KZG commitment opens to a
// claimed value at a point, and that the commitment hashes (with the
// versioned-hash scheme) to the value the caller supplied.
type pointEvaluationPrecompile struct{}

const pointEvaluationGas = 50000

const fieldElementsPerBlob = 4096

// blsModulus is BLS12-381's scalar field order, returned alongside
// FIELD_ELEMENTS_PER_BLOB as the fixed success output per EIP-4844.
var blsModulus, _ = new(big.Int).SetString("52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

func pointEvaluationSuccessOutput() []byte {
	out := make([]byte, 64)
	new(big.Int).SetUint64(fieldElementsPerBlob).FillBytes(out[0:32])
	blsModulus.FillBytes(out[32:64])
	return out
}

func (pointEvaluationPrecompile) RequiredGas(input []byte) uint64 { return pointEvaluationGas }

func (pointEvaluationPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != 192 {
		return nil, ErrInvalidParam
	}
	var versionedHash types.Hash
	copy(versionedHash[:], input[0:32])

	var commitment [48]byte
	copy(commitment[:], input[96:144])

	if !kzgValidVersionedHash(versionedHash, commitment) {
		return nil, ErrInvalidParam
	}

	var z, y [32]byte
	copy(z[:], input[32:64])
	copy(y[:], input[64:96])
	var proof [48]byte
	copy(proof[:], input[144:192])

	if err := crypto.KZGVerifyProof(commitment, z, y, proof); err != nil {
		return nil, ErrInvalidParam
	}

	return pointEvaluationSuccessOutput(), nil
}

func kzgValidVersionedHash(versionedHash types.Hash, commitment [48]byte) bool {
	if versionedHash[0] != types.VersionedHashVersionKZG {
		return false
	}
	h := crypto.SHA256(commitment[:])
	h[0] = types.VersionedHashVersionKZG
	return bytes.Equal(h, versionedHash[:])
}
