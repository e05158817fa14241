package vm

// preWarmAccessList marks the sender, the recipient, every precompile
// address, and every address/slot named in msg.AccessList as warm (EIP-2929
// "warm on entry" plus EIP-2930 access lists). Only ever called once per
// transaction, at the top-level frame, before the dispatch loop starts --
// nested calls warm addresses/slots organically as opcodes touch them.
func (evm *EVM) preWarmAccessList(msg *Message) {
	evm.Ledger.AddAddressToAccessList(msg.Sender)
	evm.Ledger.AddAddressToAccessList(msg.Recipient)
	for addr := range PrecompiledContracts(evm.Rules) {
		evm.Ledger.AddAddressToAccessList(addr)
	}
	for _, tuple := range msg.AccessList {
		evm.Ledger.AddAddressToAccessList(tuple.Address)
		for _, key := range tuple.StorageKeys {
			evm.Ledger.AddSlotToAccessList(tuple.Address, key)
		}
	}
}

// execute runs c's bytecode (or dispatches to a precompile) to completion,
// returning the frame's output and any error that terminated it. Every
// entry point that spawns a frame -- evm.run, evm.runCreate, evm.call,
// evm.delegateCall, runCreate -- funnels through here.
func (evm *EVM) execute(c *Computation) ([]byte, error) {
	if precompile, ok := PrecompiledContracts(evm.Rules)[c.Msg.CodeAddress]; ok {
		out, gasLeft, err := RunPrecompile(precompile, c.Msg.Input, c.Gas.Remaining())
		c.Gas.Consume(c.Gas.Remaining() - gasLeft)
		c.terminated = true
		if err == nil {
			c.Output = out
		}
		return out, err
	}

	jt := evm.jumpTable
	var pc uint64

	for {
		opPC := pc
		op := c.Code.opAt(pc)
		pc++

		opr := jt[op]
		if opr == nil {
			return evm.fault(c, opPC, op, ErrInvalidOpcode)
		}

		if c.Stack.Len() < opr.minStack {
			return evm.fault(c, opPC, op, ErrStackUnderflow)
		}
		if c.Stack.Len() > opr.maxStack {
			return evm.fault(c, opPC, op, ErrStackFull)
		}

		opaqueIdx := evm.Tracer.OnOpStart(opPC, op, c.Gas.Remaining(), c.Depth())

		var memSize uint64
		if opr.memorySize != nil {
			size, overflow := opr.memorySize(c.Stack)
			if overflow {
				return evm.fault(c, opPC, op, ErrGasUintOverflow)
			}
			words := MemoryWords(size)
			wordBytes, werr := SafeMul(words, 32)
			if werr != nil {
				return evm.fault(c, opPC, op, ErrGasUintOverflow)
			}
			memSize = wordBytes
		}

		if err := c.Gas.Consume(opr.constantGas); err != nil {
			return evm.fault(c, opPC, op, err)
		}
		if opr.dynamicGas != nil {
			dgas, err := opr.dynamicGas(evm, c, c.Stack, memSize)
			if err != nil {
				return evm.fault(c, opPC, op, err)
			}
			if err := c.Gas.Consume(dgas); err != nil {
				return evm.fault(c, opPC, op, err)
			}
		}

		if memSize > uint64(c.Memory.Len()) {
			c.Memory.Resize(memSize)
		}

		ret, err := opr.execute(&pc, evm, c)

		evm.Tracer.OnOpEnd(pc, op, c.Gas.Remaining(), c.Gas.RefundAmount(), c.ReturnData, c.Depth(), opaqueIdx)

		if err != nil {
			c.terminated = true
			if burnsGas(err) {
				c.Gas.Consume(c.Gas.Remaining())
			} else {
				c.reverted = true
			}
			c.Output = ret
			return ret, err
		}

		if opr.halts {
			c.terminated = true
			c.Output = ret
			return ret, nil
		}
	}
}

func (evm *EVM) fault(c *Computation, opPC uint64, op OpCode, err error) ([]byte, error) {
	c.terminated = true
	if burnsGas(err) {
		c.Gas.Consume(c.Gas.Remaining())
	}
	evm.Tracer.OnFault(opPC, op, c.Gas.Remaining(), err, c.Depth())
	return nil, err
}

// run executes msg as a freshly constructed root Computation: it is the
// backing implementation for EVM.Call.
func (evm *EVM) run(msg *Message) (*Computation, error) {
	code := evm.Ledger.GetCode(msg.CodeAddress)
	c := NewComputation(evm, msg, code)

	if msg.Depth == 0 {
		evm.preWarmAccessList(msg)
	}

	snapshot := evm.Ledger.Snapshot()
	evm.depth = msg.Depth

	if !msg.Value.IsZero() {
		bal := evm.Ledger.GetBalance(msg.Sender)
		if bal.Cmp(msg.Value.ToBig()) < 0 {
			c.terminated = true
			return c, ErrInsufficientBalance
		}
		if !evm.Ledger.Exist(msg.Recipient) {
			evm.Ledger.CreateAccount(msg.Recipient)
		}
		evm.Ledger.SubBalance(msg.Sender, msg.Value.ToBig())
		evm.Ledger.AddBalance(msg.Recipient, msg.Value.ToBig())
	}

	out, err := evm.execute(c)
	c.Output = out
	c.Release()

	if err != nil {
		evm.Ledger.RevertToSnapshot(snapshot)
		if burnsGas(err) {
			c.Gas.Consume(c.Gas.Remaining())
		}
	}
	return c, err
}

// runCreate executes msg (a root CREATE/CREATE2 message) against initCode,
// handling nonce/collision/balance checks, EIP-3860's init-code cap, and
// EIP-170/EIP-3541 deployed-code validation the same way the internal
// runCreate helper in create.go does for a nested CREATE, but for the
// top-level frame where there is no parent Computation to push a result
// onto.
func (evm *EVM) runCreate(msg *Message, initCode []byte) (*Computation, error) {
	c := NewComputation(evm, msg, initCode)

	if msg.Depth == 0 {
		evm.preWarmAccessList(msg)
	}

	if evm.Rules.IsShanghai && len(initCode) > MaxInitCodeSize {
		c.terminated = true
		return c, ErrMaxCodeSizeExceeded
	}

	sender := msg.Sender
	newAddr := msg.Recipient

	nonce := evm.Ledger.GetNonce(sender)
	if nonce+1 < nonce {
		c.terminated = true
		return c, ErrNonceOverflow
	}
	if evm.Ledger.GetNonce(newAddr) != 0 || len(evm.Ledger.GetCode(newAddr)) != 0 {
		c.terminated = true
		return c, ErrAddressCollision
	}
	bal := evm.Ledger.GetBalance(sender)
	if bal.Cmp(msg.Value.ToBig()) < 0 {
		c.terminated = true
		return c, ErrInsufficientBalance
	}

	snapshot := evm.Ledger.Snapshot()
	evm.Ledger.SetNonce(sender, nonce+1)
	evm.Ledger.CreateAccount(newAddr)
	evm.Ledger.SetNonce(newAddr, 1)
	evm.Ledger.SubBalance(sender, msg.Value.ToBig())
	evm.Ledger.AddBalance(newAddr, msg.Value.ToBig())

	evm.depth = msg.Depth
	deployedCode, err := evm.execute(c)
	c.Output = deployedCode

	if err == nil {
		if cerr := checkDeployedCode(deployedCode, evm.Rules); cerr != nil {
			err = cerr
		} else {
			depositCost := CreateDataGas * uint64(len(deployedCode))
			if cerr := c.Gas.Consume(depositCost); cerr != nil {
				err = cerr
			} else {
				evm.Ledger.SetCode(newAddr, deployedCode)
			}
		}
	}

	c.Release()

	if err != nil {
		evm.Ledger.RevertToSnapshot(snapshot)
		if burnsGas(err) {
			c.Gas.Consume(c.Gas.Remaining())
		}
		return c, err
	}
	return c, nil
}
