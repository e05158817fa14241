package vm_test

import (
	"math/big"
	"testing"

	"github.com/evmcore/evmcore/core/vm"
	"github.com/evmcore/evmcore/statedb"
	"github.com/evmcore/evmcore/types"
)

// push32 emits a PUSH32 instruction for a left-padded 32-byte value.
func push32(v [32]byte) []byte {
	out := make([]byte, 0, 33)
	out = append(out, 0x7f)
	return append(out, v[:]...)
}

func wordFromHex(t *testing.T, hex string) [32]byte {
	t.Helper()
	h := types.HexToHash(hex)
	return [32]byte(h)
}

// runBinaryOp executes `a OP b` for a 2-operand opcode (stack order: push a,
// push b, op leaves the result, MSTORE/RETURN it as 32 bytes) and returns
// the 32-byte result.
func runBinaryOp(t *testing.T, op byte, a, b [32]byte) [32]byte {
	t.Helper()
	code := push32(a)
	code = append(code, push32(b)...)
	code = append(code, op)
	code = append(code,
		0x60, 0x00, // PUSH1 0
		0x52,       // MSTORE
		0x60, 0x20, // PUSH1 32
		0x60, 0x00, // PUSH1 0
		0xf3, // RETURN
	)
	return execAndReturn(t, code)
}

func runTernaryOp(t *testing.T, op byte, a, b, c [32]byte) [32]byte {
	t.Helper()
	code := push32(a)
	code = append(code, push32(b)...)
	code = append(code, push32(c)...)
	code = append(code, op)
	code = append(code,
		0x60, 0x00,
		0x52,
		0x60, 0x20,
		0x60, 0x00,
		0xf3,
	)
	return execAndReturn(t, code)
}

func execAndReturn(t *testing.T, code []byte) [32]byte {
	t.Helper()
	ledger := statedb.New()
	from := types.HexToAddress("0xAA")
	to := types.HexToAddress("0xBB")
	ledger.CreateAccount(from)
	ledger.CreateAccount(to)
	ledger.SetCode(to, code)

	evm := newTestEVM(vm.Cancun, ledger)
	ret, _, err := evm.Call(from, to, nil, 1_000_000, big.NewInt(0))
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if len(ret) != 32 {
		t.Fatalf("output length = %d, want 32", len(ret))
	}
	var out [32]byte
	copy(out[:], ret)
	return out
}

func TestAddWraparound(t *testing.T) {
	maxU256 := wordFromHex(t, "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	one := wordFromHex(t, "0x01")
	got := runBinaryOp(t, 0x01, maxU256, one) // ADD
	want := [32]byte{}
	if got != want {
		t.Fatalf("ADD(2^256-1, 1) = %x, want 0", got)
	}
}

func TestSdivMinInt256ByNegativeOne(t *testing.T) {
	minI256 := [32]byte{0x80} // MIN_I256 = 2^255, i.e. 0x8000...0000.
	negOne := wordFromHex(t, "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	// opSdiv does x, y := Pop(), Peek() then y.SDiv(x, y), i.e. result = x/y
	// with x on top of stack: push the divisor (y) first, dividend (x) last.
	got := runBinaryOp(t, 0x05, negOne, minI256) // SDIV
	if got != minI256 {
		t.Fatalf("SDIV(MIN_I256, -1) = %x, want %x (two's-complement overflow, no trap)", got, minI256)
	}
}

func TestModAndDivByZero(t *testing.T) {
	five := wordFromHex(t, "0x05")
	zero := [32]byte{}

	// opMod/opDiv: x, y := Pop(), Peek() then result = x/y (or x mod y), x on
	// top. To test "divide 5 by 0" push the divisor (0) first, dividend (5)
	// last.
	if got := runBinaryOp(t, 0x06, zero, five); got != zero { // MOD(5, 0)
		t.Fatalf("MOD(5, 0) = %x, want 0", got)
	}
	if got := runBinaryOp(t, 0x04, zero, five); got != zero { // DIV(5, 0)
		t.Fatalf("DIV(5, 0) = %x, want 0", got)
	}
}

func TestExpZeroToZero(t *testing.T) {
	zero := [32]byte{}
	got := runBinaryOp(t, 0x0a, zero, zero) // EXP
	want := [32]byte{}
	want[31] = 1
	if got != want {
		t.Fatalf("EXP(0, 0) = %x, want 1", got)
	}
}

func TestSignExtend(t *testing.T) {
	// SIGNEXTEND(0, 0xff) sign-extends a single negative byte to -1.
	byteIdx := [32]byte{}
	val := [32]byte{}
	val[31] = 0xff
	// SIGNEXTEND pops the byte index first (top of stack), so push the
	// value then the index.
	got := runBinaryOp(t, 0x0b, val, byteIdx)
	want := wordFromHex(t, "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	if got != want {
		t.Fatalf("SIGNEXTEND(0, 0xff) = %x, want all-ones", got)
	}

	// SIGNEXTEND(32, x) with b >= 32 returns x unchanged.
	bTooLarge := [32]byte{}
	bTooLarge[31] = 32
	x := wordFromHex(t, "0x0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd")
	got2 := runBinaryOp(t, 0x0b, x, bTooLarge)
	if got2 != x {
		t.Fatalf("SIGNEXTEND(32, x) = %x, want x unchanged (%x)", got2, x)
	}
}

func TestByteOutOfRange(t *testing.T) {
	idx := [32]byte{}
	idx[31] = 32 // i >= 32
	val := wordFromHex(t, "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	// BYTE pops the index first (top of stack), so push value then index.
	got := runBinaryOp(t, 0x1a, val, idx) // BYTE
	want := [32]byte{}
	if got != want {
		t.Fatalf("BYTE(32, x) = %x, want 0", got)
	}
}

func TestAddmodMulmod(t *testing.T) {
	x := [32]byte{}
	x[31] = 10
	y := [32]byte{}
	y[31] = 10
	m := [32]byte{}
	m[31] = 8
	// opAddmod does x, y, z := Pop(), Pop(), Peek() then z.AddMod(x, y, z), so
	// the modulus must be pushed first (bottom) and x last (top): push m, y, x.
	got := runTernaryOp(t, 0x08, m, y, x) // ADDMOD(10, 10, 8) = 20 mod 8 = 4
	want := [32]byte{}
	want[31] = 4
	if got != want {
		t.Fatalf("ADDMOD(10, 10, 8) = %x, want 4", got)
	}
}
