package vm

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	s.Push(uint256.NewInt(1))
	s.Push(uint256.NewInt(2))
	s.Push(uint256.NewInt(3))

	if got := s.Pop().Uint64(); got != 3 {
		t.Fatalf("first pop = %d, want 3 (LIFO)", got)
	}
	if got := s.Pop().Uint64(); got != 2 {
		t.Fatalf("second pop = %d, want 2", got)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestStackPeekDoesNotRemove(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	s.Push(uint256.NewInt(42))
	if got := s.Peek().Uint64(); got != 42 {
		t.Fatalf("peek = %d, want 42", got)
	}
	if s.Len() != 1 {
		t.Fatalf("len after peek = %d, want 1 (peek must not remove)", s.Len())
	}
}

func TestStackBack(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	s.Push(uint256.NewInt(10))
	s.Push(uint256.NewInt(20))
	s.Push(uint256.NewInt(30))

	if got := s.Back(0).Uint64(); got != 30 {
		t.Fatalf("Back(0) = %d, want 30 (top)", got)
	}
	if got := s.Back(2).Uint64(); got != 10 {
		t.Fatalf("Back(2) = %d, want 10 (bottom)", got)
	}
}

func TestStackSwap(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	s.Push(uint256.NewInt(1))
	s.Push(uint256.NewInt(2))
	s.Swap(1)
	if got := s.Pop().Uint64(); got != 1 {
		t.Fatalf("after Swap(1), top = %d, want 1", got)
	}
	if got := s.Pop().Uint64(); got != 2 {
		t.Fatalf("after Swap(1), bottom = %d, want 2", got)
	}
}

func TestStackDupCopiesNotAlias(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	orig := uint256.NewInt(7)
	s.Push(orig)
	s.Dup(1)

	dup := s.Pop()
	dup.Add(dup, uint256.NewInt(1))
	if s.Peek().Uint64() != 7 {
		t.Fatalf("mutating the dup must not change the original pushed value")
	}
}

func TestReturnStackResetsLength(t *testing.T) {
	s := NewStack()
	s.Push(uint256.NewInt(1))
	s.Push(uint256.NewInt(2))
	ReturnStack(s)

	s2 := NewStack()
	defer ReturnStack(s2)
	if s2.Len() != 0 {
		t.Fatalf("pooled stack reused with len %d, want 0", s2.Len())
	}
}
