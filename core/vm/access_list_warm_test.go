package vm_test

import (
	"math/big"
	"testing"

	"github.com/evmcore/evmcore/core/vm"
	"github.com/evmcore/evmcore/statedb"
	"github.com/evmcore/evmcore/types"
)

// A top-level Call must pre-warm sender, recipient, and every precompile
// address before the first opcode runs (EIP-2929 "warm on entry").
func TestCallPreWarmsSenderRecipientAndPrecompiles(t *testing.T) {
	ledger := statedb.New()
	from := types.HexToAddress("0xAA")
	to := types.HexToAddress("0xBB")
	ledger.CreateAccount(from)
	ledger.CreateAccount(to)
	ledger.SetCode(to, []byte{0x00}) // STOP

	evm := newTestEVM(vm.Cancun, ledger)
	if _, _, err := evm.Call(from, to, nil, 100000, big.NewInt(0)); err != nil {
		t.Fatalf("call failed: %v", err)
	}

	if !ledger.AddressInAccessList(from) {
		t.Fatalf("sender must be warm after a top-level call")
	}
	if !ledger.AddressInAccessList(to) {
		t.Fatalf("recipient must be warm after a top-level call")
	}
	ecrecover := vm.PrecompileAddress(1)
	if !ledger.AddressInAccessList(ecrecover) {
		t.Fatalf("precompile address 0x01 must be warm from the start of every call")
	}
}

// CallWithAccessList must pre-warm every address/slot pair named in the
// supplied EIP-2930 access list.
func TestCallWithAccessListWarmsDeclaredSlots(t *testing.T) {
	ledger := statedb.New()
	from := types.HexToAddress("0xAA")
	to := types.HexToAddress("0xBB")
	declared := types.HexToAddress("0xCC")
	slot := types.HexToHash("0x01")
	ledger.CreateAccount(from)
	ledger.CreateAccount(to)
	ledger.CreateAccount(declared)
	ledger.SetCode(to, []byte{0x00})

	evm := newTestEVM(vm.Cancun, ledger)
	accessList := []vm.AccessTuple{{Address: declared, StorageKeys: []types.Hash{slot}}}
	if _, _, err := evm.CallWithAccessList(from, to, nil, 100000, big.NewInt(0), accessList); err != nil {
		t.Fatalf("call failed: %v", err)
	}

	if !ledger.AddressInAccessList(declared) {
		t.Fatalf("declared access-list address must be warm")
	}
	addrOk, slotOk := ledger.SlotInAccessList(declared, slot)
	if !addrOk || !slotOk {
		t.Fatalf("declared access-list slot must be warm")
	}
}
