package vm

import (
	"github.com/evmcore/evmcore/types"
)

func opStop(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	return nil, nil
}

func opReturn(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	offset, size := c.Stack.Pop(), c.Stack.Pop()
	ret := c.Memory.GetCopy(offset.Uint64(), size.Uint64())
	return ret, nil
}

func opRevert(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	offset, size := c.Stack.Pop(), c.Stack.Pop()
	ret := c.Memory.GetCopy(offset.Uint64(), size.Uint64())
	return ret, ErrExecutionReverted
}

func opInvalid(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	return nil, ErrInvalidOpcode
}

func opUndefined(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	return nil, ErrInvalidOpcode
}

func opSelfdestruct(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	if c.Static() {
		return nil, ErrWriteProtection
	}
	beneficiarySlot := c.Stack.Pop()
	beneficiary := types.BytesToAddress(beneficiarySlot.Bytes())

	balance := evm.Ledger.GetBalance(c.Msg.Recipient)
	evm.Ledger.AddBalance(beneficiary, balance)
	evm.Ledger.SubBalance(c.Msg.Recipient, balance)

	alreadyDestructed := evm.Ledger.HasSelfDestructed(c.Msg.Recipient)
	c.Selfdestructs[c.Msg.Recipient] = beneficiary
	evm.Ledger.SelfDestruct(c.Msg.Recipient)

	if !evm.Rules.IsLondon && !alreadyDestructed {
		c.Gas.Refund(GasSelfdestructRefund)
	}
	return nil, nil
}
