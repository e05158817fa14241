package crypto

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

func TestKeccak256KnownVector(t *testing.T) {
	// Keccak256("") is the well-known empty-input digest (pre-NIST padding,
	// distinct from SHA3-256("")).
	got := Keccak256(nil)
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if hex := toHex(got); hex != want {
		t.Fatalf("Keccak256(\"\") = %s, want %s", hex, want)
	}
}

func TestKeccak256ConcatenatesInputs(t *testing.T) {
	a := Keccak256([]byte("hello"), []byte("world"))
	b := Keccak256([]byte("helloworld"))
	if !bytes.Equal(a, b) {
		t.Fatalf("Keccak256(a,b) must equal Keccak256(concat(a,b))")
	}
}

func TestSHA256AndRIPEMD160Lengths(t *testing.T) {
	if got := SHA256([]byte("test")); len(got) != 32 {
		t.Fatalf("SHA256 output len = %d, want 32", len(got))
	}
	if got := RIPEMD160([]byte("test")); len(got) != 20 {
		t.Fatalf("RIPEMD160 output len = %d, want 20", len(got))
	}
}

func TestEcrecoverRoundTrip(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	var hash [32]byte
	copy(hash[:], Keccak256([]byte("round trip message")))

	compact := ecdsa.SignCompact(priv, hash[:], false)
	recoveryID := compact[0] - 27

	sig := make([]byte, 65)
	copy(sig[0:32], compact[1:33])
	copy(sig[32:64], compact[33:65])
	sig[64] = recoveryID

	pub, err := SigToPub(hash[:], sig)
	if err != nil {
		t.Fatalf("SigToPub: %v", err)
	}
	wantAddr := PubkeyToAddress(priv.PubKey())
	gotAddr := PubkeyToAddress(pub)
	if gotAddr != wantAddr {
		t.Fatalf("recovered address = %s, want %s", gotAddr.Hex(), wantAddr.Hex())
	}
}

func TestValidateSignatureValuesRejectsHighS(t *testing.T) {
	r := big.NewInt(1)
	highS := new(big.Int).Sub(secp256k1N, big.NewInt(1))
	if ValidateSignatureValues(0, r, highS, true) {
		t.Fatalf("a high-S signature must be rejected once the Homestead low-S rule is active")
	}
	if !ValidateSignatureValues(0, r, highS, false) {
		t.Fatalf("pre-Homestead, a high-S signature is still valid")
	}
}

func TestValidateSignatureValuesRejectsOutOfRange(t *testing.T) {
	if ValidateSignatureValues(0, big.NewInt(0), big.NewInt(1), false) {
		t.Fatalf("r == 0 must be rejected")
	}
	if ValidateSignatureValues(2, big.NewInt(1), big.NewInt(1), false) {
		t.Fatalf("v > 1 must be rejected")
	}
}

func toHex(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0xf]
	}
	return string(out)
}
