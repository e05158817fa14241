package vm

import (
	"github.com/evmcore/evmcore/types"
)

// makeLog returns a handler for LOG0..LOG4, where n is the number of
// topics.
func makeLog(n int) executionFunc {
	return func(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
		if c.Static() {
			return nil, ErrWriteProtection
		}
		offset, size := c.Stack.Pop(), c.Stack.Pop()
		topics := make([]types.Hash, n)
		for i := 0; i < n; i++ {
			topics[i] = uint256ToHash(c.Stack.Pop())
		}
		data := c.Memory.GetCopy(offset.Uint64(), size.Uint64())
		evm.Ledger.AddLog(types.Log{
			Address: c.Msg.Recipient,
			Topics:  topics,
			Data:    data,
		})
		return nil, nil
	}
}
