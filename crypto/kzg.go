package crypto

import (
	gokzg4844 "github.com/crate-crypto/go-eth-kzg"
)

// kzgCtx holds the trusted-setup parameters needed to verify KZG proofs
// against the canonical 4096-point Ethereum ceremony.
var kzgCtx *gokzg4844.Context

func init() {
	ctx, err := gokzg4844.NewContext4096Secure()
	if err != nil {
		panic("crypto: failed to initialize KZG trusted setup: " + err.Error())
	}
	kzgCtx = ctx
}

// KZGVerifyProof verifies that commitment opens to y at z, per EIP-4844's
// POINT_EVALUATION precompile.
func KZGVerifyProof(commitment [48]byte, z, y [32]byte, proof [48]byte) error {
	return kzgCtx.VerifyKZGProof(
		gokzg4844.KZGCommitment(commitment),
		z,
		y,
		gokzg4844.KZGProof(proof),
	)
}

// KZGBlobToCommitment computes the commitment for a full blob, used by
// callers constructing versioned blob hashes outside the precompile path.
func KZGBlobToCommitment(blob *gokzg4844.Blob) ([48]byte, error) {
	c, err := kzgCtx.BlobToKZGCommitment(blob, 0)
	if err != nil {
		return [48]byte{}, err
	}
	return [48]byte(c), nil
}
