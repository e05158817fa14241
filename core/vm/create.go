package vm

import (
	"github.com/holiman/uint256"

	"github.com/evmcore/evmcore/crypto"
	"github.com/evmcore/evmcore/types"
)

// CreateAddress derives the CREATE target address from the sender and its
// current nonce: keccak(rlp([sender, nonce]))[12:].
func CreateAddress(sender types.Address, nonce uint64) types.Address {
	data := rlpEncodeCreate(sender, nonce)
	hash := crypto.Keccak256(data)
	return types.BytesToAddress(hash[12:])
}

// CreateAddress2 derives the CREATE2 target address:
// keccak(0xff || sender || salt || keccak(init_code))[12:].
func CreateAddress2(sender types.Address, salt [32]byte, initCodeHash []byte) types.Address {
	data := make([]byte, 0, 1+20+32+32)
	data = append(data, 0xff)
	data = append(data, sender.Bytes()...)
	data = append(data, salt[:]...)
	data = append(data, initCodeHash...)
	hash := crypto.Keccak256(data)
	return types.BytesToAddress(hash[12:])
}

// rlpEncodeCreate produces the minimal RLP list [sender, nonce] needed for
// CreateAddress, without depending on a general RLP library (this module's
// scope deliberately excludes RLP of full block/tx envelopes; this is the
// single narrow byte-level encoding the CREATE address formula requires).
func rlpEncodeCreate(sender types.Address, nonce uint64) []byte {
	addrBytes := sender.Bytes()
	nonceBytes := rlpUint64(nonce)

	addrField := append([]byte{0x80 + byte(len(addrBytes))}, addrBytes...)
	var nonceField []byte
	switch {
	case nonce == 0:
		nonceField = []byte{0x80}
	case len(nonceBytes) == 1 && nonceBytes[0] < 0x80:
		nonceField = nonceBytes
	default:
		nonceField = append([]byte{0x80 + byte(len(nonceBytes))}, nonceBytes...)
	}

	payload := append(addrField, nonceField...)
	return append([]byte{0xc0 + byte(len(payload))}, payload...)
}

func rlpUint64(n uint64) []byte {
	if n == 0 {
		return nil
	}
	var b [8]byte
	i := 8
	for n > 0 {
		i--
		b[i] = byte(n)
		n >>= 8
	}
	return b[i:]
}

// opCreate implements CREATE: value, offset, size -> new address (0 on
// failure).
func opCreate(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	return doCreateWithSalt(evm, c, CallKindCreate, nil)
}

// opCreate2 implements CREATE2: value, offset, size, salt -> new address.
func opCreate2(pc *uint64, evm *EVM, c *Computation) ([]byte, error) {
	if c.Static() {
		return nil, ErrWriteProtection
	}
	value, offset, size := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	saltWord := c.Stack.Pop()
	salt := saltWord.Bytes32()
	initCode := c.Memory.GetCopy(offset.Uint64(), size.Uint64())
	return runCreate(evm, c, CallKindCreate2, value, initCode, &salt)
}

func doCreateWithSalt(evm *EVM, c *Computation, kind CallKind, salt *[32]byte) ([]byte, error) {
	if c.Static() {
		return nil, ErrWriteProtection
	}
	value, offset, size := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	initCode := c.Memory.GetCopy(offset.Uint64(), size.Uint64())
	return runCreate(evm, c, kind, value, initCode, salt)
}

func runCreate(evm *EVM, c *Computation, kind CallKind, value *uint256.Int, initCode []byte, salt *[32]byte) ([]byte, error) {

	if evm.Rules.IsShanghai && len(initCode) > MaxInitCodeSize {
		c.Stack.Push(new(uint256.Int))
		return nil, nil
	}

	if c.Depth()+1 > MaxCallDepth {
		c.Stack.Push(new(uint256.Int))
		return nil, nil
	}

	sender := c.Msg.Recipient
	nonce := evm.Ledger.GetNonce(sender)
	if nonce+1 < nonce {
		return nil, ErrNonceOverflow
	}

	var newAddr types.Address
	if kind == CallKindCreate2 {
		initHash := crypto.Keccak256(initCode)
		newAddr = CreateAddress2(sender, *salt, initHash)
	} else {
		newAddr = CreateAddress(sender, nonce)
	}

	bal := evm.Ledger.GetBalance(sender)
	if bal.Cmp(value.ToBig()) < 0 {
		c.Stack.Push(new(uint256.Int))
		return nil, nil
	}

	if evm.Ledger.GetNonce(newAddr) != 0 || len(evm.Ledger.GetCode(newAddr)) != 0 {
		c.Stack.Push(new(uint256.Int))
		return nil, nil
	}

	snapshot := evm.Ledger.Snapshot()
	evm.Ledger.SetNonce(sender, nonce+1)
	evm.Ledger.CreateAccount(newAddr)
	evm.Ledger.SetNonce(newAddr, 1)
	evm.Ledger.SubBalance(sender, value.ToBig())
	evm.Ledger.AddBalance(newAddr, value.ToBig())

	forwarded := CallGas(evm.Rules, c.Gas.Remaining(), 0, c.Gas.Remaining())
	if err := c.Gas.Consume(forwarded); err != nil {
		evm.Ledger.RevertToSnapshot(snapshot)
		return nil, err
	}

	msg := &Message{
		Kind:        kind,
		Depth:       c.Depth() + 1,
		Gas:         forwarded,
		Sender:      sender,
		Recipient:   newAddr,
		CodeAddress: newAddr,
		Value:       value,
		Input:       initCode,
		StaticFlag:  false,
	}
	child := NewComputation(evm, msg, initCode)
	evm.Tracer.OnFrameEnter(kind, sender, newAddr, initCode, msg.Gas, value)
	evm.depth = msg.Depth
	deployedCode, cerr := evm.execute(child)
	evm.depth = c.Depth()
	evm.Tracer.OnFrameExit(deployedCode, forwarded-child.Gas.Remaining(), cerr)
	child.Release()

	if cerr == nil {
		if err := checkDeployedCode(deployedCode, evm.Rules); err != nil {
			cerr = err
		} else {
			depositCost := CreateDataGas * uint64(len(deployedCode))
			if err := child.Gas.Consume(depositCost); err != nil {
				cerr = ErrOutOfGas
			} else {
				evm.Ledger.SetCode(newAddr, deployedCode)
			}
		}
	}

	if cerr != nil {
		evm.Ledger.RevertToSnapshot(snapshot)
		if cerr == ErrExecutionReverted {
			c.Gas.ReturnGas(child.Gas.Remaining())
			c.ReturnData = deployedCode
		}
		c.Stack.Push(new(uint256.Int))
		return nil, nil
	}

	c.Gas.ReturnGas(child.Gas.Remaining())
	c.mergeChildRefund(child)
	for addr := range child.TouchedAccounts {
		c.touch(addr)
	}
	for addr, ben := range child.Selfdestructs {
		c.Selfdestructs[addr] = ben
	}
	c.Stack.Push(new(uint256.Int).SetBytes(newAddr.Bytes()))
	return nil, nil
}

// checkDeployedCode enforces EIP-170 (max code size) and EIP-3541 (0xEF
// contract prefix ban) on freshly deployed contract code.
func checkDeployedCode(code []byte, rules Rules) error {
	if rules.IsSpuriousDragon && len(code) > MaxCodeSize {
		return ErrMaxCodeSizeExceeded
	}
	if rules.IsLondon && len(code) > 0 && code[0] == 0xEF {
		return ErrInvalidContractPrefix
	}
	return nil
}
