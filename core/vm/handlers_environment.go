package vm

import (
	"github.com/holiman/uint256"

	"github.com/evmcore/evmcore/crypto"
	"github.com/evmcore/evmcore/types"
)

func opAddress(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetBytes(c.Msg.Recipient.Bytes()))
	return nil, nil
}

func opBalance(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	slot := c.Stack.Peek()
	addr := types.BytesToAddress(slot.Bytes())
	balance := evm.Ledger.GetBalance(addr)
	slot.SetFromBig(balance)
	return nil, nil
}

func opSelfBalance(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	balance := evm.Ledger.GetBalance(c.Msg.Recipient)
	c.Stack.Push(new(uint256.Int).SetFromBig(balance))
	return nil, nil
}

func opOrigin(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetBytes(evm.TxCtx.Origin.Bytes()))
	return nil, nil
}

func opCaller(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetBytes(c.Msg.Sender.Bytes()))
	return nil, nil
}

func opCallValue(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).Set(c.Msg.Value))
	return nil, nil
}

func opCallDataLoad(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	x := c.Stack.Peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		data := getData(c.Msg.Input, offset, 32)
		x.SetBytes(data)
	} else {
		x.Clear()
	}
	return nil, nil
}

func opCallDataSize(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetUint64(uint64(len(c.Msg.Input))))
	return nil, nil
}

func opCallDataCopy(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	memOff, dataOff, length := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	dataOffset, overflow := dataOff.Uint64WithOverflow()
	if overflow {
		dataOffset = ^uint64(0)
	}
	data := getData(c.Msg.Input, dataOffset, length.Uint64())
	c.Memory.Set(memOff.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opCodeSize(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetUint64(uint64(c.Code.Len())))
	return nil, nil
}

func opCodeCopy(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	memOff, codeOff, length := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	codeOffset, overflow := codeOff.Uint64WithOverflow()
	if overflow {
		codeOffset = ^uint64(0)
	}
	data := getData(c.Code.Bytes(), codeOffset, length.Uint64())
	c.Memory.Set(memOff.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opGasPrice(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetFromBig(evm.TxCtx.GasPrice))
	return nil, nil
}

func opExtCodeSize(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	slot := c.Stack.Peek()
	addr := types.BytesToAddress(slot.Bytes())
	slot.SetUint64(uint64(evm.Ledger.GetCodeSize(addr)))
	return nil, nil
}

func opExtCodeCopy(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	a, memOff, codeOff, length := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	addr := types.BytesToAddress(a.Bytes())
	codeOffset, overflow := codeOff.Uint64WithOverflow()
	if overflow {
		codeOffset = ^uint64(0)
	}
	code := evm.Ledger.GetCode(addr)
	data := getData(code, codeOffset, length.Uint64())
	c.Memory.Set(memOff.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opExtCodeHash(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	slot := c.Stack.Peek()
	addr := types.BytesToAddress(slot.Bytes())
	if !evm.Ledger.Exist(addr) || evm.Ledger.Empty(addr) {
		slot.Clear()
		return nil, nil
	}
	slot.SetBytes(evm.Ledger.GetCodeHash(addr).Bytes())
	return nil, nil
}

func opReturnDataSize(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetUint64(uint64(len(c.ReturnData))))
	return nil, nil
}

func opReturnDataCopy(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	memOff, dataOff, length := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	offset64, overflow := dataOff.Uint64WithOverflow()
	if overflow {
		return nil, ErrInvalidParam
	}
	end, overflow := new(uint256.Int).AddUint64(dataOff, length.Uint64()).Uint64WithOverflow()
	if overflow || uint64(len(c.ReturnData)) < end {
		return nil, ErrInvalidParam
	}
	c.Memory.Set(memOff.Uint64(), length.Uint64(), c.ReturnData[offset64:end])
	return nil, nil
}

func opChainId(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetFromBig(evm.BlockCtx.ChainID))
	return nil, nil
}

func opKeccak256(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	offset, size := c.Stack.Pop(), c.Stack.Peek()
	data := c.Memory.GetPtr(offset.Uint64(), size.Uint64())
	size.SetBytes(crypto.Keccak256(data))
	return nil, nil
}

// getData returns size bytes from data starting at offset, zero-padding
// past the end, matching CALLDATACOPY/CODECOPY/EXTCODECOPY semantics.
func getData(data []byte, offset, size uint64) []byte {
	out := make([]byte, size)
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}
