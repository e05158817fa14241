// bls12381.go wraps gnark-crypto's bls12-381 curve implementation for the
// EIP-2537 precompile suite (0x0B-0x11). As with bn254, Ethereum encodes
// field elements in a flagless fixed-width form (64 bytes per Fp element,
// zero-padded from the 48-byte field, no compression flag bits), so points
// are built from fp.Element.SetBytes directly rather than gnark-crypto's
// own compressed Marshal/Unmarshal.
package crypto

import (
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

var (
	ErrBLSInvalidPoint        = errors.New("crypto: invalid bls12-381 point")
	ErrBLSInvalidFieldElement = errors.New("crypto: invalid bls12-381 field element")
	ErrBLSInvalidInputLength  = errors.New("crypto: invalid bls12-381 input length")
)

// blsFpFromPadded reads a 64-byte Ethereum-encoded Fp element (16 zero
// padding bytes followed by a 48-byte big-endian value).
func blsFpFromPadded(b []byte) (fp.Element, error) {
	var e fp.Element
	for _, z := range b[0:16] {
		if z != 0 {
			return e, ErrBLSInvalidFieldElement
		}
	}
	var tmp big.Int
	tmp.SetBytes(b[16:64])
	if tmp.Cmp(fp.Modulus()) >= 0 {
		return e, ErrBLSInvalidFieldElement
	}
	e.SetBytes(b[16:64])
	return e, nil
}

func blsFpToPadded(e *fp.Element) []byte {
	out := make([]byte, 64)
	raw := e.Bytes()
	copy(out[16:64], raw[:])
	return out
}

// BLSG1FromBytes decodes a 128-byte Ethereum-encoded G1 point (two 64-byte
// padded coordinates).
func BLSG1FromBytes(b []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	x, err := blsFpFromPadded(b[0:64])
	if err != nil {
		return p, err
	}
	y, err := blsFpFromPadded(b[64:128])
	if err != nil {
		return p, err
	}
	p.X, p.Y = x, y
	if p.X.IsZero() && p.Y.IsZero() {
		return p, nil
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return p, ErrBLSInvalidPoint
	}
	return p, nil
}

func BLSG1ToBytes(p *bls12381.G1Affine) []byte {
	out := make([]byte, 128)
	copy(out[0:64], blsFpToPadded(&p.X))
	copy(out[64:128], blsFpToPadded(&p.Y))
	return out
}

// BLSG2FromBytes decodes a 256-byte Ethereum-encoded G2 point (four 64-byte
// padded coordinates: x_c1, x_c0, y_c1, y_c0).
func BLSG2FromBytes(b []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	xc1, err := blsFpFromPadded(b[0:64])
	if err != nil {
		return p, err
	}
	xc0, err := blsFpFromPadded(b[64:128])
	if err != nil {
		return p, err
	}
	yc1, err := blsFpFromPadded(b[128:192])
	if err != nil {
		return p, err
	}
	yc0, err := blsFpFromPadded(b[192:256])
	if err != nil {
		return p, err
	}
	p.X.A0, p.X.A1 = xc0, xc1
	p.Y.A0, p.Y.A1 = yc0, yc1
	if p.X.IsZero() && p.Y.IsZero() {
		return p, nil
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return p, ErrBLSInvalidPoint
	}
	return p, nil
}

func BLSG2ToBytes(p *bls12381.G2Affine) []byte {
	out := make([]byte, 256)
	copy(out[0:64], blsFpToPadded(&p.X.A1))
	copy(out[64:128], blsFpToPadded(&p.X.A0))
	copy(out[128:192], blsFpToPadded(&p.Y.A1))
	copy(out[192:256], blsFpToPadded(&p.Y.A0))
	return out
}

// BLSG1Add adds two G1 points.
func BLSG1Add(a, b *bls12381.G1Affine) bls12381.G1Affine {
	var sum bls12381.G1Affine
	sum.Add(a, b)
	return sum
}

// BLSG1Mul multiplies a G1 point by a scalar.
func BLSG1Mul(a *bls12381.G1Affine, scalar *big.Int) bls12381.G1Affine {
	var res bls12381.G1Affine
	res.ScalarMultiplication(a, scalar)
	return res
}

// BLSG1MultiExp computes the sum of scalar_i * point_i.
func BLSG1MultiExp(points []bls12381.G1Affine, scalars []*big.Int) (bls12381.G1Affine, error) {
	var acc bls12381.G1Affine
	acc.X.SetZero()
	acc.Y.SetZero()
	for i := range points {
		var term bls12381.G1Affine
		term.ScalarMultiplication(&points[i], scalars[i])
		acc.Add(&acc, &term)
	}
	return acc, nil
}

// BLSG2Add adds two G2 points.
func BLSG2Add(a, b *bls12381.G2Affine) bls12381.G2Affine {
	var sum bls12381.G2Affine
	sum.Add(a, b)
	return sum
}

// BLSG2Mul multiplies a G2 point by a scalar.
func BLSG2Mul(a *bls12381.G2Affine, scalar *big.Int) bls12381.G2Affine {
	var res bls12381.G2Affine
	res.ScalarMultiplication(a, scalar)
	return res
}

// BLSG2MultiExp computes the sum of scalar_i * point_i.
func BLSG2MultiExp(points []bls12381.G2Affine, scalars []*big.Int) (bls12381.G2Affine, error) {
	var acc bls12381.G2Affine
	acc.X.SetZero()
	acc.Y.SetZero()
	for i := range points {
		var term bls12381.G2Affine
		term.ScalarMultiplication(&points[i], scalars[i])
		acc.Add(&acc, &term)
	}
	return acc, nil
}

// BLSPairingCheck reports whether the product of e(g1_i, g2_i) over all
// pairs equals the identity in GT.
func BLSPairingCheck(g1s []bls12381.G1Affine, g2s []bls12381.G2Affine) (bool, error) {
	return bls12381.PairingCheck(g1s, g2s)
}

// BLSMapFpToG1 implements the MAP_FP_TO_G1 precompile's underlying curve
// map: an element of Fp to a point on G1.
func BLSMapFpToG1(u fp.Element) bls12381.G1Affine {
	return bls12381.MapToG1(u)
}

// BLSMapFp2ToG2 implements MAP_FP2_TO_G2's underlying curve map: an element
// of Fp2 to a point on G2.
func BLSMapFp2ToG2(u bls12381.E2) bls12381.G2Affine {
	return bls12381.MapToG2(u)
}

// BLSFpFromPadded exposes the 64-byte padded Fp decoder for the map-to-curve
// precompiles, which take a bare field element rather than a point.
func BLSFpFromPadded(b []byte) (fp.Element, error) {
	return blsFpFromPadded(b)
}

// BLSFpToPadded exposes the 64-byte padded Fp encoder.
func BLSFpToPadded(e *fp.Element) []byte {
	return blsFpToPadded(e)
}
