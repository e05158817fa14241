package vm

import "errors"

// ErrOutOfGas is returned whenever a gas deduction would take the meter
// below zero.
var ErrOutOfGas = errors.New("vm: out of gas")

// ErrGasUintOverflow is returned when a gas computation overflows uint64.
var ErrGasUintOverflow = errors.New("vm: gas uint64 overflow")

// GasMeter tracks the gas remaining to a single Computation frame and the
// refund counter accumulated by SSTORE clears within it.
type GasMeter struct {
	remaining uint64
	refund    uint64
}

// NewGasMeter returns a GasMeter initialized with the given gas allotment.
func NewGasMeter(gas uint64) *GasMeter {
	return &GasMeter{remaining: gas}
}

// Remaining returns the gas left in this meter.
func (g *GasMeter) Remaining() uint64 { return g.remaining }

// Consume deducts cost from the remaining gas, returning ErrOutOfGas
// without mutating state if cost exceeds what remains.
func (g *GasMeter) Consume(cost uint64) error {
	if cost > g.remaining {
		return ErrOutOfGas
	}
	g.remaining -= cost
	return nil
}

// Refund credits amount to the refund counter (SSTORE clearing a slot,
// SELFDESTRUCT pre-London).
func (g *GasMeter) Refund(amount uint64) {
	g.refund += amount
}

// RefundSub debits amount from the refund counter (EIP-3529 SSTORE
// un-clearing a slot that was previously marked for refund).
func (g *GasMeter) RefundSub(amount uint64) {
	if amount > g.refund {
		g.refund = 0
		return
	}
	g.refund -= amount
}

// RefundAmount returns the accumulated refund counter, not yet capped.
func (g *GasMeter) RefundAmount() uint64 { return g.refund }

// ReturnGas adds unused gas back to the meter, used when a child call/create
// frame returns its leftover gas to the parent.
func (g *GasMeter) ReturnGas(amount uint64) {
	g.remaining += amount
}

// CappedRefund returns the refund counter capped at gasUsed/quotient, per
// the fork's MaxRefundQuotient (5 post-London via EIP-3529, 2 before).
func CappedRefund(gasUsed, refund, quotient uint64) uint64 {
	cap := gasUsed / quotient
	if refund > cap {
		return cap
	}
	return refund
}

// SafeAdd adds a and b, returning ErrGasUintOverflow if the sum overflows.
func SafeAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrGasUintOverflow
	}
	return sum, nil
}

// SafeMul multiplies a and b, returning ErrGasUintOverflow on overflow.
func SafeMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/a != b {
		return 0, ErrGasUintOverflow
	}
	return product, nil
}
