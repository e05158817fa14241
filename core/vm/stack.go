package vm

import (
	"sync"

	"github.com/holiman/uint256"
)

// maxStackDepth is the maximum number of 256-bit words the stack may hold.
const maxStackDepth = 1024

// Stack is the EVM's 256-bit word stack. Words are held as *uint256.Int
// pulled from a pool to keep the hot push/pop path allocation-free.
type Stack struct {
	data []*uint256.Int
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]*uint256.Int, 0, 16)}
	},
}

// NewStack returns a Stack borrowed from the shared pool. Callers must call
// ReturnStack when the stack is no longer needed.
func NewStack() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnStack resets s and returns it to the shared pool.
func ReturnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

// Len returns the number of items currently on the stack.
func (s *Stack) Len() int { return len(s.data) }

// Push pushes v onto the stack. Callers must check capacity via Len before
// calling; Push itself does not enforce maxStackDepth.
func (s *Stack) Push(v *uint256.Int) {
	s.data = append(s.data, v)
}

// Pop removes and returns the top of the stack. Callers must ensure the
// stack is non-empty.
func (s *Stack) Pop() *uint256.Int {
	n := len(s.data) - 1
	v := s.data[n]
	s.data[n] = nil
	s.data = s.data[:n]
	return v
}

// Peek returns the top of the stack without removing it.
func (s *Stack) Peek() *uint256.Int {
	return s.data[len(s.data)-1]
}

// Back returns the n-th item from the top, 0-indexed (Back(0) == Peek()).
func (s *Stack) Back(n int) *uint256.Int {
	return s.data[len(s.data)-1-n]
}

// Swap exchanges the top item with the item n below it (n >= 1).
func (s *Stack) Swap(n int) {
	top := len(s.data) - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
}

// Dup pushes a copy of the n-th item from the top, 1-indexed (n >= 1,
// Dup(1) duplicates the current top).
func (s *Stack) Dup(n int) {
	v := s.data[len(s.data)-n]
	s.Push(new(uint256.Int).Set(v))
}

// Data exposes the underlying slice, top-of-stack last. Used by tracers for
// read-only inspection; callers must not mutate the returned slice.
func (s *Stack) Data() []*uint256.Int { return s.data }
