// bn254.go wraps gnark-crypto's bn254 curve implementation for the
// BN_ADD/BN_MUL/BN_PAIRING precompiles. Ethereum's alt_bn128 encoding is
// flagless, fixed-width big-endian field elements (32 bytes per coordinate,
// 64 for an Fp2 element), unlike gnark-crypto's own compressed Marshal
// format which steals the top bits of the X coordinate for compression
// flags. Points are therefore built directly from fp.Element.SetBytes
// (which does plain big-endian decoding with no flag semantics) instead of
// going through G1Affine.Unmarshal/SetBytes.
package crypto

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

var (
	// ErrBN254InvalidPoint is returned when a coordinate pair does not lie
	// on the bn254 curve.
	ErrBN254InvalidPoint = errors.New("crypto: invalid bn254 point")
	// ErrBN254InvalidInputLength is returned when input is not a multiple
	// of the expected per-element/per-pair size.
	ErrBN254InvalidInputLength = errors.New("crypto: invalid bn254 input length")
)

func fpFromBytes(b []byte) (fp.Element, error) {
	var e fp.Element
	// SetBytes reduces mod p; reject values that were not already in
	// canonical range so a byte string that silently wraps doesn't pass as
	// a different, cheaper point than the one the caller encoded.
	var tmp big.Int
	tmp.SetBytes(b)
	if tmp.Cmp(fp.Modulus()) >= 0 {
		return e, ErrBN254InvalidPoint
	}
	e.SetBytes(b)
	return e, nil
}

func g1FromBytes(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	x, err := fpFromBytes(b[0:32])
	if err != nil {
		return p, err
	}
	y, err := fpFromBytes(b[32:64])
	if err != nil {
		return p, err
	}
	p.X, p.Y = x, y
	if p.X.IsZero() && p.Y.IsZero() {
		return p, nil // point at infinity, represented as (0,0)
	}
	if !p.IsOnCurve() {
		return p, ErrBN254InvalidPoint
	}
	return p, nil
}

func g1ToBytes(p *bn254.G1Affine) []byte {
	out := make([]byte, 64)
	xBytes := p.X.Bytes()
	yBytes := p.Y.Bytes()
	copy(out[0:32], xBytes[:])
	copy(out[32:64], yBytes[:])
	return out
}

func g2FromBytes(b []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	// Ethereum encodes Fp2 as (x_imaginary, x_real, y_imaginary, y_real),
	// 32 bytes each -- the reverse component order from gnark-crypto's A0
	// (real) / A1 (imaginary) convention.
	xIm, err := fpFromBytes(b[0:32])
	if err != nil {
		return p, err
	}
	xRe, err := fpFromBytes(b[32:64])
	if err != nil {
		return p, err
	}
	yIm, err := fpFromBytes(b[64:96])
	if err != nil {
		return p, err
	}
	yRe, err := fpFromBytes(b[96:128])
	if err != nil {
		return p, err
	}
	p.X.A0, p.X.A1 = xRe, xIm
	p.Y.A0, p.Y.A1 = yRe, yIm
	if p.X.IsZero() && p.Y.IsZero() {
		return p, nil
	}
	if !p.IsOnCurve() {
		return p, ErrBN254InvalidPoint
	}
	return p, nil
}

// BN254Add implements the BN_ADD precompile (0x06): input is two 64-byte G1
// points, output is their 64-byte sum.
func BN254Add(input []byte) ([]byte, error) {
	buf := rightPad(input, 128)
	p1, err := g1FromBytes(buf[0:64])
	if err != nil {
		return nil, err
	}
	p2, err := g1FromBytes(buf[64:128])
	if err != nil {
		return nil, err
	}
	var sum bn254.G1Affine
	sum.Add(&p1, &p2)
	return g1ToBytes(&sum), nil
}

// BN254ScalarMul implements the BN_MUL precompile (0x07): input is a
// 64-byte G1 point followed by a 32-byte scalar.
func BN254ScalarMul(input []byte) ([]byte, error) {
	buf := rightPad(input, 96)
	p, err := g1FromBytes(buf[0:64])
	if err != nil {
		return nil, err
	}
	scalar := new(big.Int).SetBytes(buf[64:96])
	var res bn254.G1Affine
	res.ScalarMultiplication(&p, scalar)
	return g1ToBytes(&res), nil
}

// BN254Pairing implements the BN_PAIRING precompile (0x08): input is a
// sequence of 192-byte (G1, G2) pairs; output is 32 bytes, 1 if the product
// of the pairings equals the identity in GT, else 0.
func BN254Pairing(input []byte) ([]byte, error) {
	const pairSize = 192
	if len(input)%pairSize != 0 {
		return nil, ErrBN254InvalidInputLength
	}
	n := len(input) / pairSize
	g1s := make([]bn254.G1Affine, 0, n)
	g2s := make([]bn254.G2Affine, 0, n)
	for i := 0; i < n; i++ {
		chunk := input[i*pairSize : (i+1)*pairSize]
		p1, err := g1FromBytes(chunk[0:64])
		if err != nil {
			return nil, err
		}
		p2, err := g2FromBytes(chunk[64:192])
		if err != nil {
			return nil, err
		}
		g1s = append(g1s, p1)
		g2s = append(g2s, p2)
	}

	out := make([]byte, 32)
	if n == 0 {
		out[31] = 1
		return out, nil
	}

	ok, err := bn254.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, err
	}
	if ok {
		out[31] = 1
	}
	return out, nil
}

func rightPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}
