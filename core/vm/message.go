package vm

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/evmcore/evmcore/types"
)

// CallKind identifies how a Computation frame was invoked.
type CallKind int

const (
	CallKindCall CallKind = iota
	CallKindDelegateCall
	CallKindCallCode
	CallKindStaticCall
	CallKindCreate
	CallKindCreate2
)

func (k CallKind) String() string {
	switch k {
	case CallKindCall:
		return "CALL"
	case CallKindDelegateCall:
		return "DELEGATECALL"
	case CallKindCallCode:
		return "CALLCODE"
	case CallKindStaticCall:
		return "STATICCALL"
	case CallKindCreate:
		return "CREATE"
	case CallKindCreate2:
		return "CREATE2"
	default:
		return "UNKNOWN"
	}
}

// IsCreate reports whether k is CREATE or CREATE2.
func (k CallKind) IsCreate() bool { return k == CallKindCreate || k == CallKindCreate2 }

// Message is the immutable description of a single frame invocation: who is
// calling whom, with what value and input, under what gas budget and
// static-ness. It never changes once a Computation is built around it.
type Message struct {
	Kind  CallKind
	Depth int

	Gas uint64

	Sender      types.Address
	Recipient   types.Address // the account whose storage/balance this frame affects
	CodeAddress types.Address // the account whose code is executing (differs from Recipient for DELEGATECALL/CALLCODE)

	Value *uint256.Int
	Input []byte

	StaticFlag bool

	Salt *uint256.Int // CREATE2 only

	// AccessList holds the transaction's EIP-2930 pre-declared addresses and
	// storage slots, warmed once at the start of the top-level frame
	// (Depth == 0) before the dispatch loop starts. Nested calls never read
	// this field; their own accessed addresses/slots warm up organically as
	// they're touched.
	AccessList []AccessTuple
}

// AccessTuple is one entry of an EIP-2930 access list: an address plus the
// storage slots within it to pre-warm.
type AccessTuple struct {
	Address     types.Address
	StorageKeys []types.Hash
}

// GasPrice, Origin, and block context live in TxContext and BlockContext
// rather than Message, since they are constant across an entire transaction
// rather than per-frame.

// TxContext holds the transaction-wide values every frame can read but that
// do not change across nested calls.
type TxContext struct {
	Origin   types.Address
	GasPrice *big.Int

	// BlobHashes are the versioned hashes of the enclosing transaction's
	// blob commitments (EIP-4844), read by the BLOBHASH opcode.
	BlobHashes []types.Hash
}

// BlockContext holds the block-level values read by block-context opcodes.
type BlockContext struct {
	Coinbase    types.Address
	GasLimit    uint64
	Number      uint64
	Timestamp   uint64
	Difficulty  *big.Int // pre-Merge
	PrevRandao  types.Hash // post-Merge, replaces Difficulty
	BaseFee     *big.Int   // London+
	BlobBaseFee *big.Int   // Cancun+
	ChainID     *big.Int

	// GetHash resolves BLOCKHASH for the given block number, returning the
	// zero hash when the number is out of the retained 256-block window.
	GetHash func(number uint64) types.Hash
}
