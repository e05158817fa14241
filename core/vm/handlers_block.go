package vm

import (
	"github.com/holiman/uint256"
)

func opBlockhash(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	num := c.Stack.Peek()
	if !num.IsUint64() {
		num.Clear()
		return nil, nil
	}
	n := num.Uint64()
	var h [32]byte
	if evm.BlockCtx.GetHash != nil {
		upper := evm.BlockCtx.Number
		if n < upper && upper-n <= 256 {
			h = evm.BlockCtx.GetHash(n)
		}
	}
	num.SetBytes(h[:])
	return nil, nil
}

func opCoinbase(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetBytes(evm.BlockCtx.Coinbase.Bytes()))
	return nil, nil
}

func opTimestamp(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetUint64(evm.BlockCtx.Timestamp))
	return nil, nil
}

func opNumber(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetUint64(evm.BlockCtx.Number))
	return nil, nil
}

func opPrevRandao(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	if evm.Rules.IsMerge {
		c.Stack.Push(new(uint256.Int).SetBytes(evm.BlockCtx.PrevRandao.Bytes()))
		return nil, nil
	}
	c.Stack.Push(new(uint256.Int).SetFromBig(evm.BlockCtx.Difficulty))
	return nil, nil
}

func opGasLimit(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetUint64(evm.BlockCtx.GasLimit))
	return nil, nil
}

func opBaseFee(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetFromBig(evm.BlockCtx.BaseFee))
	return nil, nil
}

func opBlobBaseFee(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	c.Stack.Push(new(uint256.Int).SetFromBig(evm.BlockCtx.BlobBaseFee))
	return nil, nil
}

func opBlobHash(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	idx := c.Stack.Peek()
	if idx.IsUint64() && idx.Uint64() < uint64(len(evm.TxCtx.BlobHashes)) {
		idx.SetBytes(evm.TxCtx.BlobHashes[idx.Uint64()].Bytes())
	} else {
		idx.Clear()
	}
	return nil, nil
}
