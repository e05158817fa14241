package vm

import (
	"github.com/holiman/uint256"

	"github.com/evmcore/evmcore/types"
)

// opCall implements CALL: gas, addr, value, argsOffset, argsLength,
// retOffset, retLength -> success (1/0).
func opCall(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	_ = c.Stack.Pop() // gas request already consumed into evm.callGasTemp by the jump table's dynamicGas pass
	addrSlot := c.Stack.Pop()
	value := c.Stack.Pop()
	inOff, inSize := c.Stack.Pop(), c.Stack.Pop()
	outOff, outSize := c.Stack.Pop(), c.Stack.Pop()

	if c.Static() && !value.IsZero() {
		return nil, ErrWriteProtection
	}

	addr := types.BytesToAddress(addrSlot.Bytes())
	args := c.Memory.GetCopy(inOff.Uint64(), inSize.Uint64())

	ret, gasLeft, err := evm.call(c, CallKindCall, addr, addr, args, evm.callGasTemp, value, c.Static())
	writeCallResult(c, ret, gasLeft, err, outOff.Uint64(), outSize.Uint64())
	return nil, nil
}

// opCallCode implements CALLCODE: same stack layout as CALL, but executes
// the target's code in the *caller's* storage context.
func opCallCode(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	_ = c.Stack.Pop()
	addrSlot := c.Stack.Pop()
	value := c.Stack.Pop()
	inOff, inSize := c.Stack.Pop(), c.Stack.Pop()
	outOff, outSize := c.Stack.Pop(), c.Stack.Pop()

	addr := types.BytesToAddress(addrSlot.Bytes())
	args := c.Memory.GetCopy(inOff.Uint64(), inSize.Uint64())

	ret, gasLeft, err := evm.call(c, CallKindCallCode, c.Msg.Recipient, addr, args, evm.callGasTemp, value, c.Static())
	writeCallResult(c, ret, gasLeft, err, outOff.Uint64(), outSize.Uint64())
	return nil, nil
}

// opDelegateCall implements DELEGATECALL: no value argument; child inherits
// caller's sender and value.
func opDelegateCall(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	_ = c.Stack.Pop()
	addrSlot := c.Stack.Pop()
	inOff, inSize := c.Stack.Pop(), c.Stack.Pop()
	outOff, outSize := c.Stack.Pop(), c.Stack.Pop()

	addr := types.BytesToAddress(addrSlot.Bytes())
	args := c.Memory.GetCopy(inOff.Uint64(), inSize.Uint64())

	ret, gasLeft, err := evm.delegateCall(c, addr, args, evm.callGasTemp)
	writeCallResult(c, ret, gasLeft, err, outOff.Uint64(), outSize.Uint64())
	return nil, nil
}

// opStaticCall implements STATICCALL: no value, child and all its
// descendants run with the static flag forced on.
func opStaticCall(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	_ = c.Stack.Pop()
	addrSlot := c.Stack.Pop()
	inOff, inSize := c.Stack.Pop(), c.Stack.Pop()
	outOff, outSize := c.Stack.Pop(), c.Stack.Pop()

	addr := types.BytesToAddress(addrSlot.Bytes())
	args := c.Memory.GetCopy(inOff.Uint64(), inSize.Uint64())

	ret, gasLeft, err := evm.call(c, CallKindStaticCall, addr, addr, args, evm.callGasTemp, new(uint256.Int), true)
	writeCallResult(c, ret, gasLeft, err, outOff.Uint64(), outSize.Uint64())
	return nil, nil
}

func writeCallResult(c *Computation, ret []byte, gasLeft uint64, err error, outOff, outSize uint64) {
	c.ReturnData = ret
	c.Gas.ReturnGas(gasLeft)
	if err != nil {
		c.Stack.Push(new(uint256.Int))
	} else {
		c.Stack.Push(new(uint256.Int).SetOne())
	}
	if outSize > 0 {
		n := uint64(len(ret))
		if n > outSize {
			n = outSize
		}
		c.Memory.Set(outOff, n, ret[:n])
	}
}

// call spawns a CALL/CALLCODE/STATICCALL-kind child frame. recipient is the
// account whose storage/balance the child affects; codeAddr is the account
// whose code runs (equal to recipient for CALL/STATICCALL, the target for
// CALLCODE where recipient stays the caller's own address).
func (evm *EVM) call(parent *Computation, kind CallKind, recipient, codeAddr types.Address, input []byte, gasReq uint64, value *uint256.Int, static bool) (ret []byte, gasLeft uint64, err error) {
	if parent.Depth()+1 > MaxCallDepth {
		return nil, gasReq, ErrDepth
	}
	if !value.IsZero() {
		bal := evm.Ledger.GetBalance(parent.Msg.Recipient)
		if bal.Cmp(value.ToBig()) < 0 {
			return nil, gasReq, ErrInsufficientBalance
		}
	}

	snapshot := evm.Ledger.Snapshot()

	code := evm.Ledger.GetCode(codeAddr)

	msg := &Message{
		Kind:        kind,
		Depth:       parent.Depth() + 1,
		Gas:         gasReq,
		Sender:      parent.Msg.Recipient,
		Recipient:   recipient,
		CodeAddress: codeAddr,
		Value:       value,
		Input:       input,
		StaticFlag:  static,
	}

	if !value.IsZero() && kind != CallKindStaticCall {
		if !evm.Ledger.Exist(recipient) {
			evm.Ledger.CreateAccount(recipient)
		}
		evm.Ledger.SubBalance(parent.Msg.Recipient, value.ToBig())
		evm.Ledger.AddBalance(recipient, value.ToBig())
		msg.Gas += CallStipend
	}

	child := NewComputation(evm, msg, code)
	evm.Tracer.OnFrameEnter(kind, msg.Sender, msg.Recipient, input, msg.Gas, value)
	evm.depth = msg.Depth
	out, cerr := evm.execute(child)
	evm.depth = parent.Depth()
	evm.Tracer.OnFrameExit(out, msg.Gas-child.Gas.Remaining(), cerr)
	child.Release()

	if cerr != nil {
		evm.Ledger.RevertToSnapshot(snapshot)
		if cerr != ErrExecutionReverted {
			return nil, 0, cerr
		}
		return out, child.Gas.Remaining(), cerr
	}
	parent.mergeChildRefund(child)
	for addr := range child.TouchedAccounts {
		parent.touch(addr)
	}
	for addr, ben := range child.Selfdestructs {
		parent.Selfdestructs[addr] = ben
	}
	return out, child.Gas.Remaining(), nil
}

// delegateCall spawns a DELEGATECALL-kind child: the child keeps the
// parent's sender, value, and recipient (storage context), but executes
// codeAddr's code.
func (evm *EVM) delegateCall(parent *Computation, codeAddr types.Address, input []byte, gasReq uint64) (ret []byte, gasLeft uint64, err error) {
	if parent.Depth()+1 > MaxCallDepth {
		return nil, gasReq, ErrDepth
	}
	snapshot := evm.Ledger.Snapshot()
	code := evm.Ledger.GetCode(codeAddr)

	msg := &Message{
		Kind:        CallKindDelegateCall,
		Depth:       parent.Depth() + 1,
		Gas:         gasReq,
		Sender:      parent.Msg.Sender,
		Recipient:   parent.Msg.Recipient,
		CodeAddress: codeAddr,
		Value:       parent.Msg.Value,
		Input:       input,
		StaticFlag:  parent.Static(),
	}
	child := NewComputation(evm, msg, code)
	evm.Tracer.OnFrameEnter(msg.Kind, msg.Sender, msg.Recipient, input, msg.Gas, msg.Value)
	evm.depth = msg.Depth
	out, cerr := evm.execute(child)
	evm.depth = parent.Depth()
	evm.Tracer.OnFrameExit(out, msg.Gas-child.Gas.Remaining(), cerr)
	child.Release()

	if cerr != nil {
		evm.Ledger.RevertToSnapshot(snapshot)
		if cerr != ErrExecutionReverted {
			return nil, 0, cerr
		}
		return out, child.Gas.Remaining(), cerr
	}
	parent.mergeChildRefund(child)
	for addr := range child.TouchedAccounts {
		parent.touch(addr)
	}
	for addr, ben := range child.Selfdestructs {
		parent.Selfdestructs[addr] = ben
	}
	return out, child.Gas.Remaining(), nil
}

func (c *Computation) mergeChildRefund(child *Computation) {
	c.Gas.Refund(child.Gas.RefundAmount())
}
