package sdk

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
)

// AddressLen is the fixed byte width of every ledger address.
const AddressLen = 32

// Address identifies an account on the host ledger: a wallet, a program,
// a derived sub-account or a token mint.
type Address [AddressLen]byte

// ZeroAddress is the empty slot marker.
var ZeroAddress Address

// String returns the hex form used in logs and state files.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Short keeps log lines readable.
func (a Address) Short() string {
	return hex.EncodeToString(a[:4])
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// AddressFromString parses the hex form produced by String.
func AddressFromString(s string) (Address, error) {
	var a Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, errors.Wrap(err, "decode address")
	}
	if len(b) != AddressLen {
		return a, errors.Errorf("address must be %d bytes, got %d", AddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromSeed gives tests and the demo runner a stable wallet address
// for a human-readable name.
func AddressFromSeed(name string) Address {
	return Derive([]byte("wallet"), []byte(name))
}

// Derive computes a deterministic sub-account address from an ordered seed
// tuple. Each seed is length-prefixed before hashing so ("ab","c") and
// ("a","bc") never collide.
func Derive(seeds ...[]byte) Address {
	h := sha256.New()
	var lenBuf [4]byte
	for _, seed := range seeds {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(seed)))
		h.Write(lenBuf[:])
		h.Write(seed)
	}
	var a Address
	copy(a[:], h.Sum(nil))
	return a
}

// VerifyDerived is the predicate the contract core depends on: it checks a
// claimed address against its documented seed tuple without exposing the
// derivation internals.
func VerifyDerived(addr Address, seeds ...[]byte) bool {
	return Derive(seeds...) == addr
}

// Well-known program identities the processor validates against.
var (
	SystemProgramID = Derive([]byte("program"), []byte("system"))
	TokenProgramID  = Derive([]byte("program"), []byte("token"))
)
