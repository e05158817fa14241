package vm

import "math"

// Fixed per-opcode gas tiers, named the way the yellow paper and go-ethereum
// name them.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	GasSha3        uint64 = 30
	GasSha3Word    uint64 = 6
	GasLogBase     uint64 = 375
	GasLogTopic    uint64 = 375
	GasLogData     uint64 = 8
	GasCreateBase  uint64 = 32000
	GasCallBase    uint64 = 40
	GasExpByte     uint64 = 50 // post-Spurious-Dragon; 10 before
	GasExpByteOld  uint64 = 10
	GasCopyWord    uint64 = 3
	GasMemoryWord  uint64 = MemoryGasCostPerWord
	GasJumpdest    uint64 = 1
	GasSelfdestructRefund uint64 = 24000 // pre-London only

	MemoryGasCostPerWord  uint64 = 3
	ColdAccountAccessCost uint64 = 2600
	ColdSloadCost         uint64 = 2100
	WarmStorageReadCost   uint64 = 100
	AccessListAddressCost uint64 = 2400
	AccessListStorageCost uint64 = 1900
	CallStipend           uint64 = 2300

	// SstoreSentryGas is the minimum gas that must remain before an SSTORE
	// with a genuine value change is allowed to proceed (EIP-1706/EIP-2200):
	// it guarantees a CALL-stipend-funded SSTORE can never itself trigger
	// the storage write it's guarding against reentrancy, only a no-op
	// re-store of the current value.
	SstoreSentryGas uint64 = 2300

	SstoreSetGas           uint64 = 20000
	SstoreResetGas         uint64 = 5000
	SstoreClearRefund      uint64 = 15000 // pre-EIP-3529
	SstoreClearsScheduleRefund uint64 = 4800 // EIP-3529: SSTORE_RESET_GAS - COLD_SLOAD_COST + ACCESS_LIST_STORAGE_KEY_COST

	MaxRefundQuotient uint64 = 5

	SelfdestructGas         uint64 = 5000
	CreateBySelfdestructGas uint64 = 25000
	CreateDataGas           uint64 = 200
	MaxCodeSize             int    = 24576
	MaxInitCodeSize         int    = 49152
	InitCodeWordGas         uint64 = 2

	CallGasFraction      uint64 = 64
	CallValueTransferGas uint64 = 9000
	CallNewAccountGas    uint64 = 25000

	MaxCallDepth int = 1024
)

// toWordSize rounds size up to the next 32-byte word count.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// MemoryGasCost returns the total quadratic memory-expansion cost of memory
// sized memSize bytes: 3*words + words^2/512, saturating to MaxUint64
// instead of overflowing.
func MemoryGasCost(memSize uint64) uint64 {
	if memSize == 0 {
		return 0
	}
	words := toWordSize(memSize)
	if words > 181_000 {
		return math.MaxUint64
	}
	linear := words * GasMemoryWord
	quadratic := words * words / 512
	return linear + quadratic
}

// MemoryExpansionGas returns the incremental cost of growing memory from
// oldSize to newSize bytes (0 if newSize does not exceed oldSize).
func MemoryExpansionGas(oldSize, newSize uint64) uint64 {
	if newSize <= oldSize {
		return 0
	}
	newCost := MemoryGasCost(newSize)
	oldCost := MemoryGasCost(oldSize)
	if newCost == math.MaxUint64 {
		return math.MaxUint64
	}
	return newCost - oldCost
}

// ExpByteCost returns the per-byte cost of the EXP exponent, 50 from
// Spurious Dragon onward (EIP-160) and 10 before.
func ExpByteCost(rules Rules) uint64 {
	if rules.IsSpuriousDragon {
		return GasExpByte
	}
	return GasExpByteOld
}

// CallGas implements EIP-150's 63/64 rule: a CALL-family instruction may
// forward at most availableGas - availableGas/64 of the gas left after its
// own fixed/dynamic cost has been deducted, or requestedGas if that is
// smaller. Pre-Tangerine-Whistle, the full requested gas (capped by what's
// left) is forwarded.
func CallGas(rules Rules, availableGas, base uint64, requestedGas uint64) uint64 {
	if rules.IsTangerineWhistle {
		available := availableGas - base
		capped := available - available/CallGasFraction
		if requestedGas > capped {
			return capped
		}
		return requestedGas
	}
	if requestedGas > availableGas-base {
		return availableGas - base
	}
	return requestedGas
}

// SstoreGasEIP2929 implements the post-Berlin net-metered SSTORE cost
// (EIP-2929 + EIP-2200 semantics), given the slot's current, original, and
// new values and whether the slot was already warm.
//
// Returns the gas cost to charge; refund adjustments are applied separately
// via the returned refund delta (positive credits the refund counter,
// negative debits it).
func SstoreGasEIP2929(current, original, value [32]byte, warm bool, rules Rules) (cost uint64, refundDelta int64) {
	clearRefund := int64(SstoreClearsScheduleRefund)
	if !rules.IsLondon {
		clearRefund = int64(SstoreClearRefund)
	}

	var accessCost uint64
	if !warm {
		accessCost = ColdSloadCost
	}

	// Post-Berlin, the flat EIP-2200 reset cost folds the cold-slot surcharge
	// in: the warm base is SstoreResetGas minus that surcharge, so a cold
	// access (accessCost == ColdSloadCost) nets back to the full
	// SstoreResetGas and a warm one nets to SstoreResetGas-ColdSloadCost.
	// Pre-Berlin there is no warm/cold distinction (accessCost is always 0
	// here), so the reset base stays the flat EIP-2200 SstoreResetGas.
	resetBase := SstoreResetGas
	if rules.IsBerlin {
		resetBase -= ColdSloadCost
	}

	if current == value {
		return accessCost + WarmStorageReadCost, 0
	}

	if original == current {
		if original == ([32]byte{}) {
			return accessCost + SstoreSetGas, 0
		}
		if value == ([32]byte{}) {
			return accessCost + resetBase, clearRefund
		}
		return accessCost + resetBase, 0
	}

	// Dirty slot (current != original): no further gas beyond the warm
	// read, but the refund counter must track clears/unclears relative to
	// the original value.
	var delta int64
	if original != ([32]byte{}) {
		if current == ([32]byte{}) {
			delta -= clearRefund
		}
		if value == ([32]byte{}) {
			delta += clearRefund
		}
	}
	if original == value {
		if original == ([32]byte{}) {
			delta += int64(SstoreSetGas) - int64(WarmStorageReadCost)
		} else {
			delta += int64(SstoreResetGas) - int64(WarmStorageReadCost)
		}
	}
	return accessCost + WarmStorageReadCost, delta
}
