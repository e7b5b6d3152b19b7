package sdk

import "github.com/pkg/errors"

// Host-level failures surfaced by the capability implementations. The
// contract core maps or wraps these; the harness rolls back on any of them.
var (
	ErrSlotSizeMismatch     = errors.New("record size does not match stored slot")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrUnknownTokenAccount  = errors.New("unknown token account")
	ErrTokenAccountExists   = errors.New("token account already exists")
	ErrMintMismatch         = errors.New("token account mint mismatch")
	ErrInsufficientTokens   = errors.New("insufficient token balance")
)

// State is the persisted record store keyed by derived address.
type State interface {
	// Get returns the raw record bytes, or nil when the slot is empty.
	Get(addr Address) []byte
	// Put stores a record. Records are fixed-width; rewriting a slot with
	// a different size fails with ErrSlotSizeMismatch.
	Put(addr Address, data []byte) error
}

// Bank moves the base value unit between accounts. Treasury balances live
// here under the project's derived address.
type Bank interface {
	Balance(addr Address) uint64
	Transfer(from, to Address, amount uint64) error
}

// TokenAccount is the host's view of one holder's position in one mint.
type TokenAccount struct {
	Mint   Address
	Owner  Address
	Amount uint64
}

// TokenRegistry exposes the fungible-credit primitives. Mint and Burn
// validate that the target account belongs to the given mint, mirroring
// what a real token program enforces.
type TokenRegistry interface {
	Account(addr Address) (*TokenAccount, error)
	Create(addr, mint, owner Address) error
	Mint(mint, dest Address, amount uint64) error
	Burn(mint, src Address, amount uint64) error
}

// Clock supplies the host's monotonic time in unix seconds. Voting windows
// are pure comparisons against it, never sleeps.
type Clock interface {
	Now() int64
}

// Logger receives the terse event lines the contract emits.
type Logger interface {
	Log(msg string)
}

// Host bundles the injected collaborators the contract core runs against.
type Host struct {
	State  State
	Bank   Bank
	Tokens TokenRegistry
	Clock  Clock
	Log    Logger
}

// AccountMeta describes one entry of an instruction's ordered account list.
type AccountMeta struct {
	Key        Address
	IsSigner   bool
	IsWritable bool
}

// Instruction is the unit of execution: a tagged payload plus the ordered
// accounts it touches. The host serializes instructions over overlapping
// state, so processing needs no internal locking.
type Instruction struct {
	ProgramID Address
	Accounts  []AccountMeta
	Data      []byte
}

// InstructionHandler is what the harness drives; the contract's processor
// implements it.
type InstructionHandler interface {
	Process(ins Instruction) error
}
