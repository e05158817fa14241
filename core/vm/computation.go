package vm

import (
	"github.com/evmcore/evmcore/types"
)

// Computation is the mutable state of one frame of execution: the Message
// that spawned it, its private stack/memory/gas meter, and the
// accumulated outputs the frame produces (or discards on rollback).
type Computation struct {
	Msg *Message

	Stack  *Stack
	Memory *Memory
	Gas    *GasMeter
	Code   *CodeStream

	Output     []byte
	ReturnData []byte // data returned by the most recently terminated child frame

	Err error

	Selfdestructs map[types.Address]types.Address // account -> beneficiary
	TouchedAccounts map[types.Address]struct{}

	SavePoint int // not set; the frame-spawning functions keep the ledger snapshot id locally

	terminated bool
	reverted   bool

	evm *EVM
}

// NewComputation builds a Computation ready to enter PreExec. code is the
// already-loaded bytecode for msg.CodeAddress.
func NewComputation(evm *EVM, msg *Message, code []byte) *Computation {
	c := &Computation{
		Msg:             msg,
		Stack:           NewStack(),
		Memory:          NewMemory(),
		Gas:             NewGasMeter(msg.Gas),
		Code:            NewCodeStream(code),
		Selfdestructs:   make(map[types.Address]types.Address),
		TouchedAccounts: make(map[types.Address]struct{}),
		evm:             evm,
	}
	c.touch(msg.Sender)
	c.touch(msg.Recipient)
	return c
}

func (c *Computation) touch(addr types.Address) {
	c.TouchedAccounts[addr] = struct{}{}
}

// Release returns c's Stack to the shared pool. Callers must only call this
// once execute has returned and nothing will read c.Stack again -- Output,
// ReturnData and the tracer hooks never reference it past that point.
func (c *Computation) Release() {
	ReturnStack(c.Stack)
	c.Stack = nil
}

// Static reports whether this frame (or any ancestor) forbids state
// mutation.
func (c *Computation) Static() bool { return c.Msg.StaticFlag }

// Depth returns the frame's call-stack depth (0 = top-level).
func (c *Computation) Depth() int { return c.Msg.Depth }

// Done reports whether the frame has terminated (success, revert, or
// failure).
func (c *Computation) Done() bool { return c.terminated }

// Reverted reports whether the frame terminated via REVERT.
func (c *Computation) Reverted() bool { return c.reverted }
