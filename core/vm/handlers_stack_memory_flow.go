package vm

import (
	"github.com/holiman/uint256"

	"github.com/evmcore/evmcore/types"
)

func opPop(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Pop()
	return nil, nil
}

func opMload(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	v := c.Stack.Peek()
	offset := v.Uint64()
	v.SetBytes(c.Memory.GetPtr(offset, 32))
	return nil, nil
}

func opMstore(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	mStart, val := c.Stack.Pop(), c.Stack.Pop()
	c.Memory.Set32(mStart.Uint64(), val)
	return nil, nil
}

func opMstore8(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	off, val := c.Stack.Pop(), c.Stack.Pop()
	c.Memory.store[off.Uint64()] = byte(val.Uint64())
	return nil, nil
}

func opMcopy(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	dst, src, size := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	if size.IsZero() {
		return nil, nil
	}
	c.Memory.Copy(dst.Uint64(), src.Uint64(), size.Uint64())
	return nil, nil
}

func opSload(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	loc := c.Stack.Peek()
	key := uint256ToHash(loc)
	val := evm.Ledger.GetState(c.Msg.Recipient, key)
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opSstore(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	if c.Static() {
		return nil, ErrWriteProtection
	}
	// The EIP-1706/EIP-2200 sentry-gas check runs in gasSstore, before the
	// SSTORE cost is deducted; checking it again here would test gas left
	// after that charge already happened.
	loc, val := c.Stack.Pop(), c.Stack.Pop()
	key := uint256ToHash(loc)
	evm.Ledger.SetState(c.Msg.Recipient, key, uint256ToHash(val))
	return nil, nil
}

func opTload(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	loc := c.Stack.Peek()
	key := uint256ToHash(loc)
	val := evm.Ledger.GetTransientState(c.Msg.Recipient, key)
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opTstore(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	if c.Static() {
		return nil, ErrWriteProtection
	}
	loc, val := c.Stack.Pop(), c.Stack.Pop()
	key := uint256ToHash(loc)
	evm.Ledger.SetTransientState(c.Msg.Recipient, key, uint256ToHash(val))
	return nil, nil
}

func opJump(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	dest := c.Stack.Pop()
	if !dest.IsUint64() || !c.Code.ValidJumpdest(dest.Uint64()) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64()
	return nil, nil
}

func opJumpi(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	dest, cond := c.Stack.Pop(), c.Stack.Pop()
	if cond.IsZero() {
		return nil, nil
	}
	if !dest.IsUint64() || !c.Code.ValidJumpdest(dest.Uint64()) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64()
	return nil, nil
}

func opJumpdest(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	return nil, nil
}

func opPc(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetUint64(*pc))
	return nil, nil
}

func opMsize(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetUint64(uint64(c.Memory.Len())))
	return nil, nil
}

func opGas(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetUint64(c.Gas.Remaining()))
	return nil, nil
}

func opPush0(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int))
	return nil, nil
}

// makePush returns a handler for PUSH1..PUSH32, reading `size` immediate
// bytes from code. The dispatch loop has already advanced *pc past the
// opcode byte, so the immediate starts at *pc.
func makePush(size int) executionFunc {
	return func(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
		codeLen := uint64(c.Code.Len())
		start := *pc
		imm := c.Code.GetImmediate(start, size)
		c.Stack.Push(new(uint256.Int).SetBytes(imm))
		*pc += uint64(size)
		if start >= codeLen {
			// already past end; nothing further to do.
		}
		return nil, nil
	}
}

func makeDup(n int) executionFunc {
	return func(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
		c.Stack.Dup(n)
		return nil, nil
	}
}

func makeSwap(n int) executionFunc {
	return func(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
		c.Stack.Swap(n)
		return nil, nil
	}
}

// uint256ToHash converts a stack word to a 32-byte big-endian types.Hash.
func uint256ToHash(v *uint256.Int) types.Hash {
	return types.Hash(v.Bytes32())
}
