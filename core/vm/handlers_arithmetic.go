package vm

import "github.com/holiman/uint256"

// executionFunc is the signature every opcode handler implements: it reads
// and mutates c.Stack/c.Memory directly, optionally returns the frame's
// final output (RETURN/REVERT), and returns an error that terminates the
// frame.
type executionFunc func(pc *uint64, evm *EVM, c *Computation) ([]byte, error)

func opAdd(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.Add(x, y)
	return nil, nil
}

func opSub(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.Sub(x, y)
	return nil, nil
}

func opMul(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.Mul(x, y)
	return nil, nil
}

func opDiv(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.Div(x, y)
	return nil, nil
}

func opSdiv(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.SDiv(x, y)
	return nil, nil
}

func opMod(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.Mod(x, y)
	return nil, nil
}

func opSmod(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.SMod(x, y)
	return nil, nil
}

func opAddmod(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y, z := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Peek()
	z.AddMod(x, y, z)
	return nil, nil
}

func opMulmod(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y, z := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Peek()
	z.MulMod(x, y, z)
	return nil, nil
}

func opExp(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	base, exponent := c.Stack.Pop(), c.Stack.Peek()
	exponent.Exp(base, exponent)
	return nil, nil
}

func opSignExtend(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	back, num := c.Stack.Pop(), c.Stack.Peek()
	num.ExtendSign(num, back)
	return nil, nil
}

func opLt(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x := c.Stack.Peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.And(x, y)
	return nil, nil
}

func opOr(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.Or(x, y)
	return nil, nil
}

func opXor(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x, y := c.Stack.Pop(), c.Stack.Peek()
	y.Xor(x, y)
	return nil, nil
}

func opNot(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x := c.Stack.Peek()
	x.Not(x)
	return nil, nil
}

func opByte(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	th, val := c.Stack.Pop(), c.Stack.Peek()
	val.Byte(th)
	return nil, nil
}

func opShl(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	shift, value := c.Stack.Pop(), c.Stack.Peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opShr(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	shift, value := c.Stack.Pop(), c.Stack.Peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSar(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	shift, value := c.Stack.Pop(), c.Stack.Peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	n := uint(shift.Uint64())
	value.SRsh(value, n)
	return nil, nil
}

// uint256One is a shared constant 1; no handler in this package
// references it.
var uint256One = uint256.NewInt(1)
