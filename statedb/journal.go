package statedb

import (
	"math/big"

	"github.com/evmcore/evmcore/types"
)

// journalEntry is a revertible state change.
type journalEntry interface {
	revert(s *Ledger)
}

// journal tracks state modifications since the last snapshot so they can be
// undone in reverse order on revert, mirroring a real client's state
// journal. Snapshot ids are monotonically increasing and index into entries.
type journal struct {
	entries   []journalEntry
	snapshots map[int]int
	nextID    int
}

func newJournal() *journal {
	return &journal{snapshots: make(map[int]int)}
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

func (j *journal) snapshot() int {
	id := j.nextID
	j.nextID++
	j.snapshots[id] = len(j.entries)
	return id
}

func (j *journal) revertToSnapshot(id int, s *Ledger) {
	idx, ok := j.snapshots[id]
	if !ok {
		return
	}
	for i := len(j.entries) - 1; i >= idx; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:idx]
	for sid := range j.snapshots {
		if sid >= id {
			delete(j.snapshots, sid)
		}
	}
}

type createAccountChange struct {
	addr types.Address
	prev *account // nil if the account did not exist before
}

func (ch createAccountChange) revert(s *Ledger) {
	if ch.prev == nil {
		delete(s.accounts, ch.addr)
	} else {
		s.accounts[ch.addr] = ch.prev
	}
}

type balanceChange struct {
	addr types.Address
	prev *big.Int
}

func (ch balanceChange) revert(s *Ledger) {
	if a := s.accounts[ch.addr]; a != nil {
		a.balance = ch.prev
	}
}

type nonceChange struct {
	addr types.Address
	prev uint64
}

func (ch nonceChange) revert(s *Ledger) {
	if a := s.accounts[ch.addr]; a != nil {
		a.nonce = ch.prev
	}
}

type codeChange struct {
	addr     types.Address
	prevCode []byte
	prevHash types.Hash
}

func (ch codeChange) revert(s *Ledger) {
	if a := s.accounts[ch.addr]; a != nil {
		a.code = ch.prevCode
		a.codeHash = ch.prevHash
	}
}

type storageChange struct {
	addr       types.Address
	key        types.Hash
	prev       types.Hash
	prevExists bool
}

func (ch storageChange) revert(s *Ledger) {
	a := s.accounts[ch.addr]
	if a == nil {
		return
	}
	if ch.prevExists {
		a.dirtyStorage[ch.key] = ch.prev
	} else {
		delete(a.dirtyStorage, ch.key)
	}
}

type selfDestructChange struct {
	addr        types.Address
	prevFlag    bool
	prevBalance *big.Int
}

func (ch selfDestructChange) revert(s *Ledger) {
	if a := s.accounts[ch.addr]; a != nil {
		a.selfDestructed = ch.prevFlag
		a.balance = ch.prevBalance
	}
}

type accessListAddAccountChange struct {
	addr types.Address
}

func (ch accessListAddAccountChange) revert(s *Ledger) {
	s.accessList.deleteAddress(ch.addr)
}

type accessListAddSlotChange struct {
	addr types.Address
	slot types.Hash
}

func (ch accessListAddSlotChange) revert(s *Ledger) {
	s.accessList.deleteSlot(ch.addr, ch.slot)
}

type transientStorageChange struct {
	addr types.Address
	key  types.Hash
	prev types.Hash
}

func (ch transientStorageChange) revert(s *Ledger) {
	if ch.prev.IsZero() {
		delete(s.transientStorage[ch.addr], ch.key)
		if len(s.transientStorage[ch.addr]) == 0 {
			delete(s.transientStorage, ch.addr)
		}
	} else {
		s.transientStorage[ch.addr][ch.key] = ch.prev
	}
}

type logChange struct {
	prevLen int
}

func (ch logChange) revert(s *Ledger) {
	s.logs = s.logs[:ch.prevLen]
}
