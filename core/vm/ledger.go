package vm

import (
	"math/big"

	"github.com/evmcore/evmcore/types"
)

// Ledger is the world-state capability the interpreter calls out to. It is
// deliberately an interface: the interpreter never knows whether it is
// backed by an in-memory map, a trie-backed database, or a fork-mode RPC
// proxy. Implementations must support nested Snapshot/RevertToSnapshot in
// LIFO order, mirroring a real state database's journal.
type Ledger interface {
	// Account state.
	CreateAccount(addr types.Address)
	Exist(addr types.Address) bool
	Empty(addr types.Address) bool

	GetBalance(addr types.Address) *big.Int
	AddBalance(addr types.Address, amount *big.Int)
	SubBalance(addr types.Address, amount *big.Int)

	GetNonce(addr types.Address) uint64
	SetNonce(addr types.Address, nonce uint64)

	GetCode(addr types.Address) []byte
	SetCode(addr types.Address, code []byte)
	GetCodeHash(addr types.Address) types.Hash
	GetCodeSize(addr types.Address) int

	// Persistent storage.
	GetState(addr types.Address, key types.Hash) types.Hash
	SetState(addr types.Address, key, value types.Hash)
	GetCommittedState(addr types.Address, key types.Hash) types.Hash

	// Transient storage (EIP-1153), cleared at transaction boundaries and,
	// like persistent storage, undone by RevertToSnapshot.
	GetTransientState(addr types.Address, key types.Hash) types.Hash
	SetTransientState(addr types.Address, key, value types.Hash)

	// Self-destruct bookkeeping.
	SelfDestruct(addr types.Address)
	HasSelfDestructed(addr types.Address) bool

	// Access lists (EIP-2929).
	AddressInAccessList(addr types.Address) bool
	SlotInAccessList(addr types.Address, slot types.Hash) (addressOk, slotOk bool)
	AddAddressToAccessList(addr types.Address)
	AddSlotToAccessList(addr types.Address, slot types.Hash)

	// Logs.
	AddLog(log types.Log)

	// Block-hash lookup for the BLOCKHASH opcode, limited to the last 256
	// blocks per protocol rule; implementations return the zero hash for
	// anything outside that window.
	GetBlockHash(number uint64) types.Hash

	// Snapshot journal.
	Snapshot() int
	RevertToSnapshot(id int)
}
