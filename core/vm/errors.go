package vm

import "errors"

// Error taxonomy per the frame failure modes. All but ErrExecutionReverted
// burn the frame's entire remaining gas.
var (
	ErrStackUnderflow          = errors.New("vm: stack underflow")
	ErrStackFull               = errors.New("vm: stack full (max 1024)")
	ErrInvalidOpcode           = errors.New("vm: invalid opcode")
	ErrInvalidJump             = errors.New("vm: invalid jump destination")
	ErrWriteProtection         = errors.New("vm: write protection in static call")
	ErrExecutionReverted       = errors.New("vm: execution reverted")
	ErrAddressCollision        = errors.New("vm: contract address collision")
	ErrNonceOverflow           = errors.New("vm: nonce overflow")
	ErrMaxCodeSizeExceeded     = errors.New("vm: max code size exceeded")
	ErrInvalidContractPrefix   = errors.New("vm: invalid contract prefix (0xEF)")
	ErrPrecompileFailure       = errors.New("vm: precompile execution failed")
	ErrInsufficientBalance     = errors.New("vm: insufficient balance for transfer")
	ErrDepth                   = errors.New("vm: max call depth exceeded")
	ErrInvalidParam            = errors.New("vm: invalid precompile parameter")
	ErrContractAddressCollision = ErrAddressCollision
)

// burnsGas reports whether err, when it terminates a frame, consumes the
// frame's entire remaining gas. REVERT is the only failure that preserves
// unspent gas.
func burnsGas(err error) bool {
	return err != nil && err != ErrExecutionReverted
}
