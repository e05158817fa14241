package vm

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestMemoryResizeZeroFills(t *testing.T) {
	m := NewMemory()
	m.Resize(64)
	if m.Len() != 64 {
		t.Fatalf("len = %d, want 64", m.Len())
	}
	if !bytes.Equal(m.Data(), make([]byte, 64)) {
		t.Fatalf("newly grown memory must be zero-filled")
	}
}

func TestMemoryResizeNeverShrinks(t *testing.T) {
	m := NewMemory()
	m.Resize(64)
	m.Resize(32)
	if m.Len() != 64 {
		t.Fatalf("len = %d, want 64 (Resize must not shrink)", m.Len())
	}
}

func TestMemorySetAndGetCopy(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set(0, 4, []byte{0xde, 0xad, 0xbe, 0xef})

	got := m.GetCopy(0, 4)
	if !bytes.Equal(got, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("GetCopy = %x, want deadbeef", got)
	}
}

func TestMemoryGetCopyPastEndReturnsZero(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	got := m.GetCopy(16, 32)
	if len(got) != 32 {
		t.Fatalf("len = %d, want 32", len(got))
	}
	for i, b := range got {
		if b != 0 {
			t.Fatalf("byte %d = %x, want 0 (bytes 16.. lie past the end of memory)", i, b)
		}
	}
}

func TestMemorySet32(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set32(0, uint256.NewInt(0x42))

	got := m.GetCopy(0, 32)
	want := make([]byte, 32)
	want[31] = 0x42
	if !bytes.Equal(got, want) {
		t.Fatalf("Set32 = %x, want %x", got, want)
	}
}

func TestMemoryCopyHandlesOverlap(t *testing.T) {
	m := NewMemory()
	m.Resize(64)
	m.Set(0, 8, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	// Overlapping forward copy: dst starts inside the source range.
	m.Copy(2, 0, 8)

	got := m.GetCopy(2, 8)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(got, want) {
		t.Fatalf("overlapping Copy = %v, want %v", got, want)
	}
}

func TestMemoryWords(t *testing.T) {
	cases := []struct{ size, want uint64 }{
		{0, 0},
		{1, 1},
		{32, 1},
		{33, 2},
		{64, 2},
	}
	for _, c := range cases {
		if got := MemoryWords(c.size); got != c.want {
			t.Fatalf("MemoryWords(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}
