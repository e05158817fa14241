package vm

import (
	"github.com/holiman/uint256"

	"github.com/evmcore/evmcore/types"
)

// Tracer observes the dispatch loop at frame and opcode boundaries. Every
// method defaults to a no-op via NoopTracer, so an instrumented build can
// embed it and override only what it needs. Implementations must not
// mutate the Computation or Ledger passed to them.
type Tracer interface {
	OnTxStart(gasLimit uint64)
	OnTxEnd(gasLeft uint64)
	OnFrameEnter(kind CallKind, sender, to types.Address, input []byte, gas uint64, value *uint256.Int)
	OnFrameExit(output []byte, gasUsed uint64, err error)
	OnOpStart(pc uint64, op OpCode, gas uint64, depth int) int
	OnOpEnd(pc uint64, op OpCode, gasAfter, refundAfter uint64, returnData []byte, depth int, opaqueIndex int)
	OnFault(pc uint64, op OpCode, gas uint64, err error, depth int)
}

// NoopTracer implements Tracer with empty bodies. Embed it in a partial
// tracer to get default no-op behavior for hooks you don't care about.
type NoopTracer struct{}

func (NoopTracer) OnTxStart(gasLimit uint64) {}
func (NoopTracer) OnTxEnd(gasLeft uint64)    {}
func (NoopTracer) OnFrameEnter(kind CallKind, sender, to types.Address, input []byte, gas uint64, value *uint256.Int) {
}
func (NoopTracer) OnFrameExit(output []byte, gasUsed uint64, err error) {}
func (NoopTracer) OnOpStart(pc uint64, op OpCode, gas uint64, depth int) int {
	return 0
}
func (NoopTracer) OnOpEnd(pc uint64, op OpCode, gasAfter, refundAfter uint64, returnData []byte, depth int, opaqueIndex int) {
}
func (NoopTracer) OnFault(pc uint64, op OpCode, gas uint64, err error, depth int) {}
