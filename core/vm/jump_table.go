package vm

import (
	"github.com/holiman/uint256"

	"github.com/evmcore/evmcore/types"
)

// dynamicGasFunc computes the gas an operation costs beyond its constant
// tier: memory expansion, per-word copy costs, warm/cold access-list
// surcharges, and (for CALL/CREATE) the amount forwarded to a child frame.
type dynamicGasFunc func(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error)

// memorySizeFunc returns the number of bytes of memory an operation touches,
// read from the stack without popping it, and whether computing that size
// overflowed a uint64 (in which case the operation is unaffordable and
// fails before any gas is charged).
type memorySizeFunc func(stack *Stack) (size uint64, overflow bool)

// operation is a single opcode's complete execution and pricing metadata.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  dynamicGasFunc
	minStack    int
	maxStack    int
	memorySize  memorySizeFunc
	halts       bool // STOP, RETURN, REVERT, SELFDESTRUCT (INVALID ends the frame through its error instead)
	jumps       bool // JUMP, JUMPI
	writes      bool // classification only; handlers enforce static-mode checks themselves
}

// JumpTable maps every opcode byte to its operation, nil for undefined
// slots at the active fork.
type JumpTable [256]*operation

// ---- memory-size helpers ----

func memRange(offset, length *uint256.Int) (uint64, bool) {
	if length.IsZero() {
		return 0, false
	}
	o, overflow := offset.Uint64WithOverflow()
	if overflow {
		return 0, true
	}
	l, overflow := length.Uint64WithOverflow()
	if overflow {
		return 0, true
	}
	sum := o + l
	if sum < o {
		return 0, true
	}
	return sum, false
}

func memWord(stack *Stack, extra uint64) (uint64, bool) {
	o, overflow := stack.Back(0).Uint64WithOverflow()
	if overflow {
		return 0, true
	}
	sum := o + extra
	if sum < o {
		return 0, true
	}
	return sum, false
}

func memMax(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func memoryMload(stack *Stack) (uint64, bool)   { return memWord(stack, 32) }
func memoryMstore(stack *Stack) (uint64, bool)  { return memWord(stack, 32) }
func memoryMstore8(stack *Stack) (uint64, bool) { return memWord(stack, 1) }

func memoryReturn(stack *Stack) (uint64, bool)     { return memRange(stack.Back(0), stack.Back(1)) }
func memoryKeccak256(stack *Stack) (uint64, bool)  { return memRange(stack.Back(0), stack.Back(1)) }
func memoryLog(stack *Stack) (uint64, bool)        { return memRange(stack.Back(0), stack.Back(1)) }
func memoryCopyDest(stack *Stack) (uint64, bool)   { return memRange(stack.Back(0), stack.Back(2)) }
func memoryExtCodeCopy(stack *Stack) (uint64, bool) { return memRange(stack.Back(1), stack.Back(3)) }

func memoryCallLike(argsOff, argsLen, retOff, retLen int) memorySizeFunc {
	return func(stack *Stack) (uint64, bool) {
		args, overflow := memRange(stack.Back(argsOff), stack.Back(argsLen))
		if overflow {
			return 0, true
		}
		ret, overflow := memRange(stack.Back(retOff), stack.Back(retLen))
		if overflow {
			return 0, true
		}
		return memMax(args, ret), false
	}
}

func memoryCreate(stack *Stack) (uint64, bool) { return memRange(stack.Back(1), stack.Back(2)) }

func memoryMcopy(stack *Stack) (uint64, bool) {
	dst, src, size := stack.Back(0), stack.Back(1), stack.Back(2)
	a, overflow := memRange(dst, size)
	if overflow {
		return 0, true
	}
	b, overflow := memRange(src, size)
	if overflow {
		return 0, true
	}
	return memMax(a, b), false
}

// ---- shared dynamic-gas building blocks ----

func legacyAccountAccessGas(rules Rules) uint64 {
	switch {
	case rules.IsIstanbul:
		return 700
	case rules.IsTangerineWhistle:
		return 400
	default:
		return 20
	}
}

func chargeAddressAccess(evm *EVM, addr types.Address) uint64 {
	if evm.Ledger.AddressInAccessList(addr) {
		return WarmStorageReadCost
	}
	evm.Ledger.AddAddressToAccessList(addr)
	return ColdAccountAccessCost
}

func dynamicAccountAccessGas(evm *EVM, addr types.Address) uint64 {
	if evm.Rules.IsBerlin {
		return chargeAddressAccess(evm, addr)
	}
	return legacyAccountAccessGas(evm.Rules)
}

func gasMemoryOnly(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
	return MemoryExpansionGas(uint64(c.Memory.Len()), memSize), nil
}

func gasKeccak256(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
	words := MemoryWords(stack.Back(1).Uint64())
	wordGas, err := SafeMul(GasSha3Word, words)
	if err != nil {
		return 0, err
	}
	total, err := SafeAdd(wordGas, MemoryExpansionGas(uint64(c.Memory.Len()), memSize))
	return total, err
}

func gasCopyWords(sizeIdx int) dynamicGasFunc {
	return func(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
		words := MemoryWords(stack.Back(sizeIdx).Uint64())
		wordGas, err := SafeMul(GasCopyWord, words)
		if err != nil {
			return 0, err
		}
		total, err := SafeAdd(wordGas, MemoryExpansionGas(uint64(c.Memory.Len()), memSize))
		return total, err
	}
}

func gasExtCodeCopy(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
	addr := types.BytesToAddress(stack.Back(0).Bytes())
	words := MemoryWords(stack.Back(3).Uint64())
	wordGas, err := SafeMul(GasCopyWord, words)
	if err != nil {
		return 0, err
	}
	total, err := SafeAdd(wordGas, MemoryExpansionGas(uint64(c.Memory.Len()), memSize))
	if err != nil {
		return 0, err
	}
	return SafeAdd(total, dynamicAccountAccessGas(evm, addr))
}

func gasExtAccountAccess(stackAddrIdx int) dynamicGasFunc {
	return func(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
		addr := types.BytesToAddress(stack.Back(stackAddrIdx).Bytes())
		return dynamicAccountAccessGas(evm, addr), nil
	}
}

func gasLog(n int) dynamicGasFunc {
	return func(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
		size := stack.Back(1).Uint64()
		dataGas, err := SafeMul(GasLogData, size)
		if err != nil {
			return 0, err
		}
		topicGas := GasLogTopic * uint64(n)
		total, err := SafeAdd(dataGas, topicGas)
		if err != nil {
			return 0, err
		}
		return SafeAdd(total, MemoryExpansionGas(uint64(c.Memory.Len()), memSize))
	}
}

func gasExp(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
	exponent := stack.Back(1)
	if exponent.IsZero() {
		return 0, nil
	}
	byteLen := uint64((exponent.BitLen() + 7) / 8)
	return SafeMul(ExpByteCost(evm.Rules), byteLen)
}

func gasSload(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
	if !evm.Rules.IsBerlin {
		if evm.Rules.IsIstanbul {
			return 800, nil
		}
		if evm.Rules.IsTangerineWhistle {
			return 200, nil
		}
		return 50, nil
	}
	key := uint256ToHash(stack.Back(0))
	_, warm := evm.Ledger.SlotInAccessList(c.Msg.Recipient, key)
	if warm {
		return WarmStorageReadCost, nil
	}
	evm.Ledger.AddSlotToAccessList(c.Msg.Recipient, key)
	return ColdSloadCost, nil
}

func gasSstore(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
	if c.Static() {
		return 0, ErrWriteProtection
	}
	key := uint256ToHash(stack.Back(0))
	value := uint256ToHash(stack.Back(1))
	addr := c.Msg.Recipient
	current := evm.Ledger.GetState(addr, key)

	if !evm.Rules.IsIstanbul {
		if current.IsZero() && !value.IsZero() {
			return SstoreSetGas, nil
		}
		if !current.IsZero() && value.IsZero() {
			c.Gas.Refund(SstoreClearRefund)
			return SstoreResetGas, nil
		}
		return SstoreResetGas, nil
	}

	if c.Gas.Remaining() <= SstoreSentryGas && current != value {
		return 0, ErrOutOfGas
	}

	original := evm.Ledger.GetCommittedState(addr, key)
	warm := true
	if evm.Rules.IsBerlin {
		_, slotWarm := evm.Ledger.SlotInAccessList(addr, key)
		warm = slotWarm
		if !warm {
			evm.Ledger.AddSlotToAccessList(addr, key)
		}
	}
	cost, refundDelta := SstoreGasEIP2929([32]byte(current), [32]byte(original), [32]byte(value), warm, evm.Rules)
	if refundDelta > 0 {
		c.Gas.Refund(uint64(refundDelta))
	} else if refundDelta < 0 {
		c.Gas.RefundSub(uint64(-refundDelta))
	}
	return cost, nil
}

func gasSelfdestruct(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
	var gas uint64
	beneficiary := types.BytesToAddress(stack.Back(0).Bytes())
	if evm.Rules.IsTangerineWhistle {
		if !evm.Ledger.Exist(beneficiary) && evm.Ledger.GetBalance(c.Msg.Recipient).Sign() != 0 {
			gas += CreateBySelfdestructGas
		}
	}
	if evm.Rules.IsBerlin && !evm.Ledger.AddressInAccessList(beneficiary) {
		evm.Ledger.AddAddressToAccessList(beneficiary)
		gas += ColdAccountAccessCost
	}
	return gas, nil
}

// gasCallFamily prices CALL/CALLCODE/DELEGATECALL/STATICCALL: account
// access, value-transfer and new-account surcharges, memory expansion, and
// the EIP-150 63/64 forwarding cap. The capped amount to forward is stashed
// in evm.callGasTemp for the handler to read after this function returns,
// since the raw stack value is only a request, not the final grant.
func gasCallFamily(kind CallKind) dynamicGasFunc {
	return func(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
		var addr types.Address
		var transfersValue bool
		switch kind {
		case CallKindCall, CallKindCallCode:
			addr = types.BytesToAddress(stack.Back(1).Bytes())
			transfersValue = !stack.Back(2).IsZero()
		default:
			addr = types.BytesToAddress(stack.Back(1).Bytes())
		}

		gas := dynamicAccountAccessGas(evm, addr)

		if transfersValue {
			g, err := SafeAdd(gas, CallValueTransferGas)
			if err != nil {
				return 0, err
			}
			gas = g
		}
		if kind == CallKindCall && transfersValue && !evm.Ledger.Exist(addr) {
			g, err := SafeAdd(gas, CallNewAccountGas)
			if err != nil {
				return 0, err
			}
			gas = g
		}

		gas, err := SafeAdd(gas, MemoryExpansionGas(uint64(c.Memory.Len()), memSize))
		if err != nil {
			return 0, err
		}

		if gas > c.Gas.Remaining() {
			return 0, ErrOutOfGas
		}
		available := c.Gas.Remaining() - gas

		requested, overflow := stack.Back(0).Uint64WithOverflow()
		if overflow {
			requested = available
		}
		forwarded := CallGas(evm.Rules, available, 0, requested)
		evm.callGasTemp = forwarded

		return SafeAdd(gas, forwarded)
	}
}

func gasCreateFamily(hasSalt bool) dynamicGasFunc {
	return func(evm *EVM, c *Computation, stack *Stack, memSize uint64) (uint64, error) {
		mem := MemoryExpansionGas(uint64(c.Memory.Len()), memSize)
		size := stack.Back(2).Uint64()
		var extra uint64
		if hasSalt {
			extra = GasSha3Word * MemoryWords(size)
		}
		if evm.Rules.IsShanghai {
			extra += InitCodeWordGas * MemoryWords(size)
		}
		total, err := SafeAdd(mem, extra)
		return total, err
	}
}

// ---- fork-chained table construction ----

func newFrontierJumpTable() *JumpTable {
	var t JumpTable

	t[STOP] = &operation{execute: opStop, minStack: 0, maxStack: 1024, halts: true}
	t[ADD] = &operation{execute: opAdd, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[MUL] = &operation{execute: opMul, constantGas: GasFastStep, minStack: 2, maxStack: 1024}
	t[SUB] = &operation{execute: opSub, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[DIV] = &operation{execute: opDiv, constantGas: GasFastStep, minStack: 2, maxStack: 1024}
	t[SDIV] = &operation{execute: opSdiv, constantGas: GasFastStep, minStack: 2, maxStack: 1024}
	t[MOD] = &operation{execute: opMod, constantGas: GasFastStep, minStack: 2, maxStack: 1024}
	t[SMOD] = &operation{execute: opSmod, constantGas: GasFastStep, minStack: 2, maxStack: 1024}
	t[ADDMOD] = &operation{execute: opAddmod, constantGas: GasMidStep, minStack: 3, maxStack: 1024}
	t[MULMOD] = &operation{execute: opMulmod, constantGas: GasMidStep, minStack: 3, maxStack: 1024}
	t[EXP] = &operation{execute: opExp, constantGas: GasSlowStep, dynamicGas: gasExp, minStack: 2, maxStack: 1024}
	t[SIGNEXTEND] = &operation{execute: opSignExtend, constantGas: GasFastStep, minStack: 2, maxStack: 1024}

	t[LT] = &operation{execute: opLt, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[GT] = &operation{execute: opGt, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[SLT] = &operation{execute: opSlt, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[SGT] = &operation{execute: opSgt, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[EQ] = &operation{execute: opEq, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[ISZERO] = &operation{execute: opIszero, constantGas: GasFastestStep, minStack: 1, maxStack: 1024}
	t[AND] = &operation{execute: opAnd, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[OR] = &operation{execute: opOr, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[XOR] = &operation{execute: opXor, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[NOT] = &operation{execute: opNot, constantGas: GasFastestStep, minStack: 1, maxStack: 1024}
	t[BYTE] = &operation{execute: opByte, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}

	t[KECCAK256] = &operation{execute: opKeccak256, constantGas: GasSha3, dynamicGas: gasKeccak256, memorySize: memoryKeccak256, minStack: 2, maxStack: 1024}

	t[ADDRESS] = &operation{execute: opAddress, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[BALANCE] = &operation{execute: opBalance, dynamicGas: gasExtAccountAccess(0), minStack: 1, maxStack: 1024}
	t[ORIGIN] = &operation{execute: opOrigin, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[CALLER] = &operation{execute: opCaller, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[CALLVALUE] = &operation{execute: opCallValue, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[CALLDATALOAD] = &operation{execute: opCallDataLoad, constantGas: GasFastestStep, minStack: 1, maxStack: 1024}
	t[CALLDATASIZE] = &operation{execute: opCallDataSize, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[CALLDATACOPY] = &operation{execute: opCallDataCopy, constantGas: GasFastestStep, dynamicGas: gasCopyWords(2), memorySize: memoryCopyDest, minStack: 3, maxStack: 1024, writes: true}
	t[CODESIZE] = &operation{execute: opCodeSize, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[CODECOPY] = &operation{execute: opCodeCopy, constantGas: GasFastestStep, dynamicGas: gasCopyWords(2), memorySize: memoryCopyDest, minStack: 3, maxStack: 1024, writes: true}
	t[GASPRICE] = &operation{execute: opGasPrice, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[EXTCODESIZE] = &operation{execute: opExtCodeSize, dynamicGas: gasExtAccountAccess(0), minStack: 1, maxStack: 1024}
	t[EXTCODECOPY] = &operation{execute: opExtCodeCopy, dynamicGas: gasExtCodeCopy, memorySize: memoryExtCodeCopy, minStack: 4, maxStack: 1024, writes: true}

	t[BLOCKHASH] = &operation{execute: opBlockhash, constantGas: GasExtStep, minStack: 1, maxStack: 1024}
	t[COINBASE] = &operation{execute: opCoinbase, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[TIMESTAMP] = &operation{execute: opTimestamp, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[NUMBER] = &operation{execute: opNumber, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[PREVRANDAO] = &operation{execute: opPrevRandao, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[GASLIMIT] = &operation{execute: opGasLimit, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}

	t[POP] = &operation{execute: opPop, constantGas: GasQuickStep, minStack: 1, maxStack: 1024}
	t[MLOAD] = &operation{execute: opMload, constantGas: GasFastestStep, dynamicGas: gasMemoryOnly, memorySize: memoryMload, minStack: 1, maxStack: 1024}
	t[MSTORE] = &operation{execute: opMstore, constantGas: GasFastestStep, dynamicGas: gasMemoryOnly, memorySize: memoryMstore, minStack: 2, maxStack: 1024, writes: true}
	t[MSTORE8] = &operation{execute: opMstore8, constantGas: GasFastestStep, dynamicGas: gasMemoryOnly, memorySize: memoryMstore8, minStack: 2, maxStack: 1024, writes: true}
	t[SLOAD] = &operation{execute: opSload, dynamicGas: gasSload, minStack: 1, maxStack: 1024}
	t[SSTORE] = &operation{execute: opSstore, dynamicGas: gasSstore, minStack: 2, maxStack: 1024, writes: true}
	t[JUMP] = &operation{execute: opJump, constantGas: GasMidStep, minStack: 1, maxStack: 1024, jumps: true}
	t[JUMPI] = &operation{execute: opJumpi, constantGas: GasSlowStep, minStack: 2, maxStack: 1024, jumps: true}
	t[PC] = &operation{execute: opPc, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[MSIZE] = &operation{execute: opMsize, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[GAS] = &operation{execute: opGas, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[JUMPDEST] = &operation{execute: opJumpdest, constantGas: GasJumpdest, minStack: 0, maxStack: 1024}

	for i := 1; i <= 32; i++ {
		op := PUSH1 + OpCode(i-1)
		size := i
		t[op] = &operation{execute: makePush(size), constantGas: GasFastestStep, minStack: 0, maxStack: 1023}
	}
	t[PUSH0] = nil // added Shanghai

	for i := 1; i <= 16; i++ {
		t[DUP1+OpCode(i-1)] = &operation{execute: makeDup(i), constantGas: GasFastestStep, minStack: i, maxStack: 1023}
	}
	for i := 1; i <= 16; i++ {
		t[SWAP1+OpCode(i-1)] = &operation{execute: makeSwap(i), constantGas: GasFastestStep, minStack: i + 1, maxStack: 1024}
	}

	for i := 0; i <= 4; i++ {
		n := i
		t[LOG0+OpCode(i)] = &operation{execute: makeLog(n), constantGas: GasLogBase, dynamicGas: gasLog(n), memorySize: memoryLog, minStack: 2 + n, maxStack: 1024, writes: true}
	}

	t[CREATE] = &operation{execute: opCreate, constantGas: GasCreateBase, dynamicGas: gasCreateFamily(false), memorySize: memoryCreate, minStack: 3, maxStack: 1024, writes: true}
	t[CALL] = &operation{execute: opCall, constantGas: GasCallBase, dynamicGas: gasCallFamily(CallKindCall), memorySize: memoryCallLike(3, 4, 5, 6), minStack: 7, maxStack: 1024, writes: true}
	t[CALLCODE] = &operation{execute: opCallCode, constantGas: GasCallBase, dynamicGas: gasCallFamily(CallKindCallCode), memorySize: memoryCallLike(3, 4, 5, 6), minStack: 7, maxStack: 1024}
	t[RETURN] = &operation{execute: opReturn, dynamicGas: gasMemoryOnly, memorySize: memoryReturn, minStack: 2, maxStack: 1024, halts: true}
	t[INVALID] = &operation{execute: opInvalid, minStack: 0, maxStack: 1024}
	t[SELFDESTRUCT] = &operation{execute: opSelfdestruct, constantGas: SelfdestructGas, dynamicGas: gasSelfdestruct, minStack: 1, maxStack: 1024, halts: true, writes: true}

	return &t
}

func newHomesteadJumpTable() *JumpTable {
	t := newFrontierJumpTable()
	t[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: GasCallBase, dynamicGas: gasCallFamily(CallKindDelegateCall), memorySize: memoryCallLike(2, 3, 4, 5), minStack: 6, maxStack: 1024}
	return t
}

func newTangerineWhistleJumpTable() *JumpTable {
	t := newHomesteadJumpTable()
	// EIP-150 repriced BALANCE/EXT*/CALL-family account access and SLOAD;
	// the dynamicGas functions above already consult Rules.IsTangerineWhistle.
	return t
}

func newSpuriousDragonJumpTable() *JumpTable {
	return newTangerineWhistleJumpTable()
}

func newByzantiumJumpTable() *JumpTable {
	t := newSpuriousDragonJumpTable()
	t[REVERT] = &operation{execute: opRevert, dynamicGas: gasMemoryOnly, memorySize: memoryReturn, minStack: 2, maxStack: 1024, halts: true}
	t[RETURNDATASIZE] = &operation{execute: opReturnDataSize, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[RETURNDATACOPY] = &operation{execute: opReturnDataCopy, constantGas: GasFastestStep, dynamicGas: gasCopyWords(2), memorySize: memoryCopyDest, minStack: 3, maxStack: 1024, writes: true}
	t[STATICCALL] = &operation{execute: opStaticCall, constantGas: GasCallBase, dynamicGas: gasCallFamily(CallKindStaticCall), memorySize: memoryCallLike(2, 3, 4, 5), minStack: 6, maxStack: 1024}
	return t
}

func newConstantinopleJumpTable() *JumpTable {
	t := newByzantiumJumpTable()
	t[SHL] = &operation{execute: opShl, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[SHR] = &operation{execute: opShr, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[SAR] = &operation{execute: opSar, constantGas: GasFastestStep, minStack: 2, maxStack: 1024}
	t[EXTCODEHASH] = &operation{execute: opExtCodeHash, dynamicGas: gasExtAccountAccess(0), minStack: 1, maxStack: 1024}
	t[CREATE2] = &operation{execute: opCreate2, constantGas: GasCreateBase, dynamicGas: gasCreateFamily(true), memorySize: memoryCreate, minStack: 4, maxStack: 1024, writes: true}
	return t
}

func newPetersburgJumpTable() *JumpTable {
	return newConstantinopleJumpTable()
}

func newIstanbulJumpTable() *JumpTable {
	t := newPetersburgJumpTable()
	t[CHAINID] = &operation{execute: opChainId, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	t[SELFBALANCE] = &operation{execute: opSelfBalance, constantGas: GasFastStep, minStack: 0, maxStack: 1023}
	return t
}

func newBerlinJumpTable() *JumpTable {
	return newIstanbulJumpTable()
}

func newLondonJumpTable() *JumpTable {
	t := newBerlinJumpTable()
	t[BASEFEE] = &operation{execute: opBaseFee, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	return t
}

func newMergeJumpTable() *JumpTable {
	return newLondonJumpTable()
}

func newShanghaiJumpTable() *JumpTable {
	t := newMergeJumpTable()
	t[PUSH0] = &operation{execute: opPush0, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	return t
}

func newCancunJumpTable() *JumpTable {
	t := newShanghaiJumpTable()
	t[TLOAD] = &operation{execute: opTload, constantGas: WarmStorageReadCost, minStack: 1, maxStack: 1024}
	t[TSTORE] = &operation{execute: opTstore, constantGas: WarmStorageReadCost, minStack: 2, maxStack: 1024, writes: true}
	t[MCOPY] = &operation{execute: opMcopy, constantGas: GasFastestStep, dynamicGas: gasCopyWords(2), memorySize: memoryMcopy, minStack: 3, maxStack: 1024, writes: true}
	t[BLOBHASH] = &operation{execute: opBlobHash, constantGas: GasFastestStep, minStack: 1, maxStack: 1024}
	t[BLOBBASEFEE] = &operation{execute: opBlobBaseFee, constantGas: GasQuickStep, minStack: 0, maxStack: 1023}
	return t
}

func newPragueJumpTable() *JumpTable {
	return newCancunJumpTable()
}

// JumpTableForFork builds the operation table active at fork.
func JumpTableForFork(fork Fork) *JumpTable {
	switch fork {
	case Frontier:
		return newFrontierJumpTable()
	case Homestead:
		return newHomesteadJumpTable()
	case TangerineWhistle:
		return newTangerineWhistleJumpTable()
	case SpuriousDragon:
		return newSpuriousDragonJumpTable()
	case Byzantium:
		return newByzantiumJumpTable()
	case Constantinople:
		return newConstantinopleJumpTable()
	case Petersburg:
		return newPetersburgJumpTable()
	case Istanbul:
		return newIstanbulJumpTable()
	case Berlin:
		return newBerlinJumpTable()
	case London:
		return newLondonJumpTable()
	case Merge:
		return newMergeJumpTable()
	case Shanghai:
		return newShanghaiJumpTable()
	case Cancun:
		return newCancunJumpTable()
	default:
		return newPragueJumpTable()
	}
}
