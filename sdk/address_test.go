package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDeterministic(t *testing.T) {
	a := Derive([]byte("project"), []byte("alice"))
	b := Derive([]byte("project"), []byte("alice"))
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
}

func TestDeriveSeedBoundaries(t *testing.T) {
	// length prefixing keeps shifted seed splits apart
	a := Derive([]byte("ab"), []byte("c"))
	b := Derive([]byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)

	assert.NotEqual(t, Derive([]byte("x")), Derive([]byte("x"), []byte{}))
}

func TestVerifyDerived(t *testing.T) {
	owner := AddressFromSeed("owner")
	addr := Derive([]byte("project"), owner[:])
	assert.True(t, VerifyDerived(addr, []byte("project"), owner[:]))
	assert.False(t, VerifyDerived(addr, []byte("project"), []byte("someone else")))
	assert.False(t, VerifyDerived(addr, []byte("milestone"), owner[:]))
}

func TestAddressStringRoundTrip(t *testing.T) {
	a := AddressFromSeed("round-trip")
	parsed, err := AddressFromString(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestAddressFromStringRejectsBadInput(t *testing.T) {
	_, err := AddressFromString("not hex")
	assert.Error(t, err)
	_, err = AddressFromString("abcd")
	assert.Error(t, err)
}

func TestShort(t *testing.T) {
	a := AddressFromSeed("short")
	assert.Len(t, a.Short(), 8)
	assert.Equal(t, a.String()[:8], a.Short())
}
