package vm

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/evmcore/evmcore/types"
)

// EVM ties together the Ledger, the active fork's Rules, the transaction
// and block context, and the jump table, and is the object every frame's
// Computation is executed against. One EVM is constructed per transaction;
// it is not safe for concurrent use by multiple goroutines.
type EVM struct {
	Ledger Ledger
	Rules  Rules
	TxCtx  TxContext
	BlockCtx BlockContext

	jumpTable *JumpTable
	Tracer    Tracer

	depth int

	// callGasTemp carries the EIP-150-capped gas amount a CALL-family
	// dynamicGas computation decided to forward, from the jump table's gas
	// pass to the handler that actually spawns the child frame. The value
	// popped off the stack is only a request; this is the grant.
	callGasTemp uint64
}

// NewEVM constructs an EVM for the given fork, ledger, and context.
func NewEVM(fork Fork, ledger Ledger, txCtx TxContext, blockCtx BlockContext, tracer Tracer) *EVM {
	if tracer == nil {
		tracer = NoopTracer{}
	}
	return &EVM{
		Ledger:    ledger,
		Rules:     RulesForFork(fork),
		TxCtx:     txCtx,
		BlockCtx:  blockCtx,
		jumpTable: JumpTableForFork(fork),
		Tracer:    tracer,
	}
}

// Call is the external entry point for a top-level CALL-kind message: it
// builds the root Computation, takes the root snapshot, and runs it to
// completion. gas accounting for the intrinsic transaction cost is the
// caller's responsibility (see spec §6's message-construction contract).
func (evm *EVM) Call(sender, to types.Address, input []byte, gas uint64, value *big.Int) (ret []byte, gasLeft uint64, err error) {
	return evm.CallWithAccessList(sender, to, input, gas, value, nil)
}

// CallWithAccessList is Call, additionally pre-warming the addresses and
// storage slots named in accessList (EIP-2930) before execution starts.
func (evm *EVM) CallWithAccessList(sender, to types.Address, input []byte, gas uint64, value *big.Int, accessList []AccessTuple) (ret []byte, gasLeft uint64, err error) {
	msg := &Message{
		Kind:        CallKindCall,
		Depth:       0,
		Gas:         gas,
		Sender:      sender,
		Recipient:   to,
		CodeAddress: to,
		Value:       mustUint256(value),
		Input:       input,
		AccessList:  accessList,
	}
	evm.Tracer.OnTxStart(gas)
	comp, err := evm.run(msg)
	if comp != nil {
		gasLeft = comp.Gas.Remaining()
	}
	evm.Tracer.OnTxEnd(gasLeft)
	if comp != nil {
		return comp.Output, gasLeft, err
	}
	return nil, gasLeft, err
}

// Create is the external entry point for a top-level CREATE message.
func (evm *EVM) Create(sender types.Address, initCode []byte, gas uint64, value *big.Int) (ret []byte, contractAddr types.Address, gasLeft uint64, err error) {
	return evm.CreateWithAccessList(sender, initCode, gas, value, nil)
}

// CreateWithAccessList is Create, additionally pre-warming the addresses and
// storage slots named in accessList (EIP-2930) before execution starts.
func (evm *EVM) CreateWithAccessList(sender types.Address, initCode []byte, gas uint64, value *big.Int, accessList []AccessTuple) (ret []byte, contractAddr types.Address, gasLeft uint64, err error) {
	nonce := evm.Ledger.GetNonce(sender)
	contractAddr = CreateAddress(sender, nonce)
	msg := &Message{
		Kind:        CallKindCreate,
		Depth:       0,
		Gas:         gas,
		Sender:      sender,
		Recipient:   contractAddr,
		CodeAddress: contractAddr,
		Value:       mustUint256(value),
		Input:       initCode,
		AccessList:  accessList,
	}
	evm.Tracer.OnTxStart(gas)
	comp, err := evm.runCreate(msg, initCode)
	if comp != nil {
		gasLeft = comp.Gas.Remaining()
	}
	evm.Tracer.OnTxEnd(gasLeft)
	if comp != nil {
		return comp.Output, contractAddr, gasLeft, err
	}
	return nil, contractAddr, gasLeft, err
}

func mustUint256(v *big.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return new(uint256.Int).SetAllOne()
	}
	return u
}
