package vm

import (
	"bytes"
	"testing"
)

func TestCodeStreamNextPastEndIsImplicitStop(t *testing.T) {
	c := NewCodeStream([]byte{0x60, 0x01}) // PUSH1 0x01
	if op := c.Next(); op != PUSH1 {
		t.Fatalf("first op = %v, want PUSH1", op)
	}
	c.SetPC(c.PC() + 1) // skip the immediate
	if op := c.Next(); op != STOP {
		t.Fatalf("op past end = %v, want STOP", op)
	}
}

func TestCodeStreamGetImmediatePadsAtEnd(t *testing.T) {
	c := NewCodeStream([]byte{0x7f, 0x01, 0x02}) // PUSH32 with only 2 bytes of data present
	got := c.GetImmediate(1, 32)
	want := make([]byte, 32)
	want[0] = 0x01
	want[1] = 0x02
	if !bytes.Equal(got, want) {
		t.Fatalf("GetImmediate = %x, want %x (zero-padded past end of code)", got, want)
	}
}

func TestValidJumpdestRejectsPushImmediate(t *testing.T) {
	// PUSH1 0x5b (the JUMPDEST opcode value, as pure immediate data) JUMPDEST
	code := []byte{0x60, 0x5b, 0x5b}
	c := NewCodeStream(code)

	if c.ValidJumpdest(1) {
		t.Fatalf("offset 1 is PUSH1's immediate byte (0x5b as data), must not validate as a jump destination")
	}
	if !c.ValidJumpdest(2) {
		t.Fatalf("offset 2 is a genuine JUMPDEST opcode, must validate")
	}
}

func TestValidJumpdestOutOfRange(t *testing.T) {
	c := NewCodeStream([]byte{0x5b})
	if c.ValidJumpdest(5) {
		t.Fatalf("destination past end of code must not validate")
	}
}

func TestCodeBitmapSkipsFullPushWidth(t *testing.T) {
	// PUSH2 0xAA 0xBB JUMPDEST: the JUMPDEST's opcode byte sits at offset 3.
	code := []byte{0x61, 0xaa, 0xbb, 0x5b}
	c := NewCodeStream(code)
	if !c.ValidJumpdest(3) {
		t.Fatalf("JUMPDEST after a 2-byte PUSH immediate must validate")
	}
}
