package vm

import "testing"

func TestGasMeterConsume(t *testing.T) {
	g := NewGasMeter(100)
	if err := g.Consume(40); err != nil {
		t.Fatalf("Consume(40): %v", err)
	}
	if g.Remaining() != 60 {
		t.Fatalf("remaining = %d, want 60", g.Remaining())
	}
}

func TestGasMeterConsumeInsufficientLeavesStateUnchanged(t *testing.T) {
	g := NewGasMeter(10)
	if err := g.Consume(11); err != ErrOutOfGas {
		t.Fatalf("err = %v, want ErrOutOfGas", err)
	}
	if g.Remaining() != 10 {
		t.Fatalf("remaining = %d, want 10 (failed Consume must not mutate)", g.Remaining())
	}
}

func TestGasMeterRefundAndSub(t *testing.T) {
	g := NewGasMeter(0)
	g.Refund(100)
	g.RefundSub(40)
	if g.RefundAmount() != 60 {
		t.Fatalf("refund = %d, want 60", g.RefundAmount())
	}
	g.RefundSub(1000)
	if g.RefundAmount() != 0 {
		t.Fatalf("refund after over-subtracting = %d, want 0 (must clamp, not underflow)", g.RefundAmount())
	}
}

func TestGasMeterReturnGas(t *testing.T) {
	g := NewGasMeter(5)
	g.ReturnGas(95)
	if g.Remaining() != 100 {
		t.Fatalf("remaining = %d, want 100", g.Remaining())
	}
}

func TestCappedRefund(t *testing.T) {
	if got := CappedRefund(100, 30, 5); got != 20 {
		t.Fatalf("CappedRefund(100, 30, 5) = %d, want 20 (cap 100/5=20)", got)
	}
	if got := CappedRefund(100, 10, 5); got != 10 {
		t.Fatalf("CappedRefund(100, 10, 5) = %d, want 10 (below cap, unchanged)", got)
	}
}

func TestSafeAddOverflow(t *testing.T) {
	_, err := SafeAdd(^uint64(0), 1)
	if err != ErrGasUintOverflow {
		t.Fatalf("err = %v, want ErrGasUintOverflow", err)
	}
	got, err := SafeAdd(2, 3)
	if err != nil || got != 5 {
		t.Fatalf("SafeAdd(2,3) = %d, %v, want 5, nil", got, err)
	}
}

func TestSafeMulOverflow(t *testing.T) {
	_, err := SafeMul(^uint64(0), 2)
	if err != ErrGasUintOverflow {
		t.Fatalf("err = %v, want ErrGasUintOverflow", err)
	}
	got, err := SafeMul(6, 7)
	if err != nil || got != 42 {
		t.Fatalf("SafeMul(6,7) = %d, %v, want 42, nil", got, err)
	}
	if got, err := SafeMul(0, ^uint64(0)); err != nil || got != 0 {
		t.Fatalf("SafeMul(0, max) = %d, %v, want 0, nil", got, err)
	}
}
