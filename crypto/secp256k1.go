// secp256k1.go implements ECDSA signature recovery over the secp256k1 curve
// using the real curve implementation from decred's dcrec library. This
// replaces the common placeholder of reaching for Go's stdlib elliptic
// curves (which does not include secp256k1 at all): dcrec is already part
// of this module's dependency graph and is the curve library the rest of
// the go-ethereum family leans on for the same job.
package crypto

import (
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/evmcore/evmcore/types"
)

// secp256k1N is the order of the secp256k1 curve's base point.
var secp256k1N = secp256k1.S256().N

// secp256k1halfN is half the curve order, used for the Homestead low-S check.
var secp256k1halfN = new(big.Int).Rsh(secp256k1N, 1)

// ErrInvalidSignature is returned when a signature fails basic shape or
// range validation before recovery is even attempted.
var ErrInvalidSignature = errors.New("crypto: invalid signature")

// Ecrecover recovers the 65-byte uncompressed public key from hash and a
// 65-byte [R || S || V] signature, where V is the recovery id (0 or 1, not
// Ethereum's 27/28 convention -- the caller is responsible for normalizing
// the v byte to 0/1 before calling, matching the ECRECOVER precompile's
// input encoding).
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := SigToPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return FromECDSAPub(pub), nil
}

// SigToPub recovers the public key from hash and a 65-byte signature.
func SigToPub(hash, sig []byte) (*secp256k1.PublicKey, error) {
	if len(sig) != 65 {
		return nil, ErrInvalidSignature
	}
	if len(hash) != 32 {
		return nil, ErrInvalidSignature
	}
	v := sig[64]
	if v > 1 {
		return nil, ErrInvalidSignature
	}

	// decred's RecoverCompact expects [recovery_code(27+id) || R || S].
	compact := make([]byte, 65)
	compact[0] = 27 + v
	copy(compact[1:33], sig[0:32])
	copy(compact[33:65], sig[32:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// FromECDSAPub marshals a public key to the 65-byte uncompressed
// 0x04 || X || Y form used throughout Ethereum.
func FromECDSAPub(pub *secp256k1.PublicKey) []byte {
	if pub == nil {
		return nil
	}
	return pub.SerializeUncompressed()
}

// ValidateSignatureValues checks r, s, v for validity per the Homestead
// low-S rule. v must be 0 or 1 (already normalized from 27/28).
func ValidateSignatureValues(v byte, r, s *big.Int, homestead bool) bool {
	if r == nil || s == nil {
		return false
	}
	if v > 1 {
		return false
	}
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	if r.Cmp(secp256k1N) >= 0 || s.Cmp(secp256k1N) >= 0 {
		return false
	}
	if homestead && s.Cmp(secp256k1halfN) > 0 {
		return false
	}
	return true
}

// PubkeyToAddress derives the Ethereum address from an uncompressed public key.
func PubkeyToAddress(pub *secp256k1.PublicKey) types.Address {
	b := FromECDSAPub(pub)
	if b == nil {
		return types.Address{}
	}
	hash := Keccak256(b[1:])
	return types.BytesToAddress(hash[12:])
}
