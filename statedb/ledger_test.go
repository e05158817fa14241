package statedb

import (
	"math/big"
	"testing"

	"github.com/evmcore/evmcore/types"
)

func TestBalanceSnapshotRevert(t *testing.T) {
	s := New()
	addr := types.HexToAddress("0xabc")
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(1000))

	snap := s.Snapshot()
	s.AddBalance(addr, big.NewInt(500))
	s.SetNonce(addr, 7)

	if got := s.GetBalance(addr); got.Cmp(big.NewInt(1500)) != 0 {
		t.Fatalf("balance before revert = %v, want 1500", got)
	}

	s.RevertToSnapshot(snap)

	if got := s.GetBalance(addr); got.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("balance after revert = %v, want 1000", got)
	}
	if got := s.GetNonce(addr); got != 0 {
		t.Fatalf("nonce after revert = %d, want 0", got)
	}
}

func TestNestedSnapshotsRevertIndependently(t *testing.T) {
	s := New()
	addr := types.HexToAddress("0x1")
	s.CreateAccount(addr)

	snap1 := s.Snapshot()
	s.SetNonce(addr, 1)
	snap2 := s.Snapshot()
	s.SetNonce(addr, 2)

	s.RevertToSnapshot(snap2)
	if got := s.GetNonce(addr); got != 1 {
		t.Fatalf("nonce after inner revert = %d, want 1", got)
	}

	s.RevertToSnapshot(snap1)
	if got := s.GetNonce(addr); got != 0 {
		t.Fatalf("nonce after outer revert = %d, want 0", got)
	}
}

func TestStorageDirtyVsCommitted(t *testing.T) {
	s := New()
	addr := types.HexToAddress("0x2")
	key := types.HexToHash("0x01")
	val := types.HexToHash("0x2a")

	s.SetState(addr, key, val)
	if got := s.GetState(addr, key); got != val {
		t.Fatalf("dirty read = %x, want %x", got, val)
	}
	if got := s.GetCommittedState(addr, key); !got.IsZero() {
		t.Fatalf("committed read before finalize = %x, want zero", got)
	}

	s.Finalize()

	if got := s.GetCommittedState(addr, key); got != val {
		t.Fatalf("committed read after finalize = %x, want %x", got, val)
	}
}

func TestSelfDestructZeroesBalanceAndFlags(t *testing.T) {
	s := New()
	addr := types.HexToAddress("0x3")
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(42))

	snap := s.Snapshot()
	s.SelfDestruct(addr)

	if !s.HasSelfDestructed(addr) {
		t.Fatalf("expected self-destructed flag set")
	}
	if got := s.GetBalance(addr); got.Sign() != 0 {
		t.Fatalf("balance after self-destruct = %v, want 0", got)
	}

	s.RevertToSnapshot(snap)

	if s.HasSelfDestructed(addr) {
		t.Fatalf("expected self-destructed flag cleared after revert")
	}
	if got := s.GetBalance(addr); got.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("balance after revert = %v, want 42", got)
	}
}

func TestAccessListWarmthAndRevert(t *testing.T) {
	s := New()
	addr := types.HexToAddress("0x4")
	slot := types.HexToHash("0x01")

	if s.AddressInAccessList(addr) {
		t.Fatalf("address should start cold")
	}

	snap := s.Snapshot()
	s.AddAddressToAccessList(addr)
	s.AddSlotToAccessList(addr, slot)

	if !s.AddressInAccessList(addr) {
		t.Fatalf("address should be warm")
	}
	if _, slotOk := s.SlotInAccessList(addr, slot); !slotOk {
		t.Fatalf("slot should be warm")
	}

	s.RevertToSnapshot(snap)

	if s.AddressInAccessList(addr) {
		t.Fatalf("address should be cold again after revert")
	}
}

func TestTransientStorageClearedByFinalizeAndRevert(t *testing.T) {
	s := New()
	addr := types.HexToAddress("0x5")
	key := types.HexToHash("0x01")
	val := types.HexToHash("0x2a")

	snap := s.Snapshot()
	s.SetTransientState(addr, key, val)
	if got := s.GetTransientState(addr, key); got != val {
		t.Fatalf("transient read = %x, want %x", got, val)
	}

	s.RevertToSnapshot(snap)
	if got := s.GetTransientState(addr, key); !got.IsZero() {
		t.Fatalf("transient read after revert = %x, want zero", got)
	}

	s.SetTransientState(addr, key, val)
	s.Finalize()
	if got := s.GetTransientState(addr, key); !got.IsZero() {
		t.Fatalf("transient read after finalize = %x, want zero", got)
	}
}

func TestEmptyAccount(t *testing.T) {
	s := New()
	addr := types.HexToAddress("0x6")

	if !s.Empty(addr) {
		t.Fatalf("nonexistent account should be empty")
	}

	s.CreateAccount(addr)
	if !s.Empty(addr) {
		t.Fatalf("freshly created account should be empty")
	}

	s.SetCode(addr, []byte{0x60, 0x00})
	if s.Empty(addr) {
		t.Fatalf("account with code should not be empty")
	}
}

func TestCodeHashTracksKeccak(t *testing.T) {
	s := New()
	addr := types.HexToAddress("0x7")
	s.CreateAccount(addr)

	if got := s.GetCodeHash(addr); got != types.EmptyCodeHash {
		t.Fatalf("code hash of empty account = %x, want empty-code hash", got)
	}

	s.SetCode(addr, []byte{0x00})
	if got := s.GetCodeHash(addr); got == types.EmptyCodeHash {
		t.Fatalf("code hash did not change after SetCode")
	}
}
