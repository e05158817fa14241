package statedb

import (
	"math/big"

	"github.com/evmcore/evmcore/crypto"
	"github.com/evmcore/evmcore/types"
)

// account is one address's balance, nonce, code and storage. Storage is
// split into committed (as of the last Finalize) and dirty (written during
// the current transaction) layers so GetCommittedState can answer the
// original-value question SSTORE's EIP-2200/3529 gas refund logic depends
// on without needing a separate read-only snapshot copy.
type account struct {
	balance          *big.Int
	nonce            uint64
	code             []byte
	codeHash         types.Hash
	dirtyStorage     map[types.Hash]types.Hash
	committedStorage map[types.Hash]types.Hash
	selfDestructed   bool
}

func newAccount() *account {
	return &account{
		balance:          new(big.Int),
		codeHash:         types.EmptyCodeHash,
		dirtyStorage:     make(map[types.Hash]types.Hash),
		committedStorage: make(map[types.Hash]types.Hash),
	}
}

// Ledger is an in-memory implementation of vm.Ledger: no trie, no Merkle
// root, no persistence. It exists so the interpreter can be driven directly
// from a flat account dump (as cmd/evmrun does) or from unit tests, without
// dragging in a full state-database stack that is out of this module's
// scope.
type Ledger struct {
	accounts   map[types.Address]*account
	journal    *journal
	accessList *accessList

	transientStorage map[types.Address]map[types.Hash]types.Hash

	logs   []types.Log
	refund uint64

	blockHashes map[uint64]types.Hash
}

// New returns an empty Ledger.
func New() *Ledger {
	return &Ledger{
		accounts:         make(map[types.Address]*account),
		journal:          newJournal(),
		accessList:       newAccessList(),
		transientStorage: make(map[types.Address]map[types.Hash]types.Hash),
		blockHashes:      make(map[uint64]types.Hash),
	}
}

// SetBlockHash seeds the table GetBlockHash(BLOCKHASH) consults. Real clients
// answer this from the canonical chain; this Ledger has no chain, so callers
// (cmd/evmrun, tests) populate whatever ancestry the scenario needs.
func (s *Ledger) SetBlockHash(number uint64, hash types.Hash) {
	s.blockHashes[number] = hash
}

func (s *Ledger) GetBlockHash(number uint64) types.Hash {
	return s.blockHashes[number]
}

func (s *Ledger) get(addr types.Address) *account {
	return s.accounts[addr]
}

func (s *Ledger) getOrCreate(addr types.Address) *account {
	if a := s.accounts[addr]; a != nil {
		return a
	}
	a := newAccount()
	s.accounts[addr] = a
	return a
}

// --- Account state ---

func (s *Ledger) CreateAccount(addr types.Address) {
	prev := s.accounts[addr]
	s.journal.append(createAccountChange{addr: addr, prev: prev})
	s.accounts[addr] = newAccount()
}

func (s *Ledger) Exist(addr types.Address) bool {
	return s.accounts[addr] != nil
}

func (s *Ledger) Empty(addr types.Address) bool {
	a := s.get(addr)
	if a == nil {
		return true
	}
	return a.nonce == 0 && a.balance.Sign() == 0 && a.codeHash == types.EmptyCodeHash
}

func (s *Ledger) GetBalance(addr types.Address) *big.Int {
	if a := s.get(addr); a != nil {
		return new(big.Int).Set(a.balance)
	}
	return new(big.Int)
}

func (s *Ledger) AddBalance(addr types.Address, amount *big.Int) {
	a := s.getOrCreate(addr)
	s.journal.append(balanceChange{addr: addr, prev: new(big.Int).Set(a.balance)})
	a.balance = new(big.Int).Add(a.balance, amount)
}

func (s *Ledger) SubBalance(addr types.Address, amount *big.Int) {
	a := s.getOrCreate(addr)
	s.journal.append(balanceChange{addr: addr, prev: new(big.Int).Set(a.balance)})
	a.balance = new(big.Int).Sub(a.balance, amount)
}

func (s *Ledger) GetNonce(addr types.Address) uint64 {
	if a := s.get(addr); a != nil {
		return a.nonce
	}
	return 0
}

func (s *Ledger) SetNonce(addr types.Address, nonce uint64) {
	a := s.getOrCreate(addr)
	s.journal.append(nonceChange{addr: addr, prev: a.nonce})
	a.nonce = nonce
}

func (s *Ledger) GetCode(addr types.Address) []byte {
	if a := s.get(addr); a != nil {
		return a.code
	}
	return nil
}

func (s *Ledger) SetCode(addr types.Address, code []byte) {
	a := s.getOrCreate(addr)
	s.journal.append(codeChange{addr: addr, prevCode: a.code, prevHash: a.codeHash})
	a.code = code
	if len(code) == 0 {
		a.codeHash = types.EmptyCodeHash
	} else {
		a.codeHash = types.BytesToHash(crypto.Keccak256(code))
	}
}

func (s *Ledger) GetCodeHash(addr types.Address) types.Hash {
	if a := s.get(addr); a != nil {
		return a.codeHash
	}
	return types.Hash{}
}

func (s *Ledger) GetCodeSize(addr types.Address) int {
	if a := s.get(addr); a != nil {
		return len(a.code)
	}
	return 0
}

// --- Persistent storage ---

func (s *Ledger) GetState(addr types.Address, key types.Hash) types.Hash {
	a := s.get(addr)
	if a == nil {
		return types.Hash{}
	}
	if v, ok := a.dirtyStorage[key]; ok {
		return v
	}
	return a.committedStorage[key]
}

func (s *Ledger) SetState(addr types.Address, key, value types.Hash) {
	a := s.getOrCreate(addr)
	prev, exists := a.dirtyStorage[key]
	if !exists {
		prev = a.committedStorage[key]
	}
	s.journal.append(storageChange{addr: addr, key: key, prev: prev, prevExists: exists})
	a.dirtyStorage[key] = value
}

func (s *Ledger) GetCommittedState(addr types.Address, key types.Hash) types.Hash {
	if a := s.get(addr); a != nil {
		return a.committedStorage[key]
	}
	return types.Hash{}
}

// Finalize moves this transaction's dirty storage writes into the
// committed layer, the way a real state database does at the end of each
// transaction. Call it between top-level EVM.Call/Create invocations run
// against the same Ledger so GetCommittedState reflects prior transactions
// rather than the whole session's genesis state.
func (s *Ledger) Finalize() {
	for _, a := range s.accounts {
		for k, v := range a.dirtyStorage {
			a.committedStorage[k] = v
		}
		a.dirtyStorage = make(map[types.Hash]types.Hash)
	}
	s.journal = newJournal()
	s.accessList = newAccessList()
	s.transientStorage = make(map[types.Address]map[types.Hash]types.Hash)
}

// --- Transient storage (EIP-1153) ---

func (s *Ledger) GetTransientState(addr types.Address, key types.Hash) types.Hash {
	return s.transientStorage[addr][key]
}

func (s *Ledger) SetTransientState(addr types.Address, key, value types.Hash) {
	prev := s.transientStorage[addr][key]
	s.journal.append(transientStorageChange{addr: addr, key: key, prev: prev})
	if s.transientStorage[addr] == nil {
		s.transientStorage[addr] = make(map[types.Hash]types.Hash)
	}
	s.transientStorage[addr][key] = value
}

// --- Self-destruct ---

func (s *Ledger) SelfDestruct(addr types.Address) {
	a := s.get(addr)
	if a == nil {
		return
	}
	s.journal.append(selfDestructChange{addr: addr, prevFlag: a.selfDestructed, prevBalance: new(big.Int).Set(a.balance)})
	a.selfDestructed = true
	a.balance = new(big.Int)
}

func (s *Ledger) HasSelfDestructed(addr types.Address) bool {
	if a := s.get(addr); a != nil {
		return a.selfDestructed
	}
	return false
}

// --- Access lists (EIP-2929) ---

func (s *Ledger) AddressInAccessList(addr types.Address) bool {
	return s.accessList.containsAddress(addr)
}

func (s *Ledger) SlotInAccessList(addr types.Address, slot types.Hash) (addressOk, slotOk bool) {
	return s.accessList.containsSlot(addr, slot)
}

func (s *Ledger) AddAddressToAccessList(addr types.Address) {
	if s.accessList.addAddress(addr) {
		return
	}
	s.journal.append(accessListAddAccountChange{addr: addr})
}

func (s *Ledger) AddSlotToAccessList(addr types.Address, slot types.Hash) {
	addrPresent, slotPresent := s.accessList.addSlot(addr, slot)
	if !addrPresent {
		s.journal.append(accessListAddAccountChange{addr: addr})
	}
	if !slotPresent {
		s.journal.append(accessListAddSlotChange{addr: addr, slot: slot})
	}
}

// --- Logs ---

func (s *Ledger) AddLog(log types.Log) {
	s.journal.append(logChange{prevLen: len(s.logs)})
	s.logs = append(s.logs, log)
}

// Logs returns every log recorded since the last Finalize.
func (s *Ledger) Logs() []types.Log {
	return s.logs
}

// --- Refund counter ---
//
// The interpreter's GasMeter (core/vm/gasmeter.go) owns the authoritative
// refund counter for a single Computation tree; Ledger does not duplicate
// it. Ledger has no refund accessors, and its refund field is not used.

// --- Snapshot journal ---

func (s *Ledger) Snapshot() int {
	return s.journal.snapshot()
}

func (s *Ledger) RevertToSnapshot(id int) {
	s.journal.revertToSnapshot(id, s)
}
