// Package statedb provides an in-memory Ledger implementation suitable for
// running the interpreter against a standalone account/storage set, without
// a trie-backed world-state database behind it.
package statedb

import "github.com/evmcore/evmcore/types"

// accessList tracks warm addresses and storage slots per EIP-2929.
type accessList struct {
	addresses map[types.Address]int // address -> index into slots, -1 if address-only
	slots     []map[types.Hash]struct{}
}

func newAccessList() *accessList {
	return &accessList{addresses: make(map[types.Address]int)}
}

// addAddress returns whether addr was already present.
func (al *accessList) addAddress(addr types.Address) (alreadyPresent bool) {
	if _, ok := al.addresses[addr]; ok {
		return true
	}
	al.addresses[addr] = -1
	return false
}

// addSlot returns whether addr and slot were already present, independently.
func (al *accessList) addSlot(addr types.Address, slot types.Hash) (addrPresent, slotPresent bool) {
	idx, addrPresent := al.addresses[addr]
	if addrPresent && idx >= 0 {
		if _, ok := al.slots[idx][slot]; ok {
			return true, true
		}
		al.slots[idx][slot] = struct{}{}
		return true, false
	}
	al.addresses[addr] = len(al.slots)
	al.slots = append(al.slots, map[types.Hash]struct{}{slot: {}})
	return addrPresent, false
}

func (al *accessList) containsAddress(addr types.Address) bool {
	_, ok := al.addresses[addr]
	return ok
}

func (al *accessList) containsSlot(addr types.Address, slot types.Hash) (addrOk, slotOk bool) {
	idx, ok := al.addresses[addr]
	if !ok {
		return false, false
	}
	if idx < 0 {
		return true, false
	}
	_, slotOk = al.slots[idx][slot]
	return true, slotOk
}

// deleteAddress removes an address entirely, used only on journal revert of
// an entry that first added the address (via AddAddressToAccessList or
// AddSlotToAccessList).
func (al *accessList) deleteAddress(addr types.Address) {
	delete(al.addresses, addr)
}

// deleteSlot removes a single slot, used only on journal revert of a fresh
// AddSlotToAccessList.
func (al *accessList) deleteSlot(addr types.Address, slot types.Hash) {
	idx, ok := al.addresses[addr]
	if !ok || idx < 0 {
		return
	}
	delete(al.slots[idx], slot)
}
