package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //lint:ignore SA1019 required for the RIPEMD160 precompile
)

// SHA256 returns the SHA-256 digest of data, used by the SHA256 precompile.
func SHA256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// RIPEMD160 returns the 20-byte RIPEMD-160 digest of data, used by the
// RIPEMD160 precompile. The algorithm itself is obsolete for new designs,
// but the precompile's output must match it exactly, so this wraps the
// x/crypto implementation rather than hand-rolling one.
func RIPEMD160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}
