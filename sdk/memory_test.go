package sdk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateGetPut(t *testing.T) {
	m := NewMemoryHost()
	addr := AddressFromSeed("slot")

	assert.Nil(t, m.Get(addr))

	require.NoError(t, m.Put(addr, []byte{1, 2, 3}))
	got := m.Get(addr)
	assert.Equal(t, []byte{1, 2, 3}, got)

	// Get hands out copies, callers cannot mutate stored records
	got[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, m.Get(addr))

	// records are fixed width once written
	assert.ErrorIs(t, m.Put(addr, []byte{1, 2}), ErrSlotSizeMismatch)
	require.NoError(t, m.Put(addr, []byte{4, 5, 6}))
}

func TestBankTransfer(t *testing.T) {
	m := NewMemoryHost()
	alice := AddressFromSeed("alice")
	bob := AddressFromSeed("bob")
	m.Deposit(alice, 100)

	require.NoError(t, m.Transfer(alice, bob, 60))
	assert.Equal(t, uint64(40), m.Balance(alice))
	assert.Equal(t, uint64(60), m.Balance(bob))

	assert.ErrorIs(t, m.Transfer(alice, bob, 41), ErrInsufficientBalance)
	assert.Equal(t, uint64(40), m.Balance(alice))
}

func TestTokenRegistry(t *testing.T) {
	m := NewMemoryHost()
	mint := AddressFromSeed("mint")
	owner := AddressFromSeed("owner")
	acct := Derive([]byte("token-account"), mint[:], owner[:])

	_, err := m.Account(acct)
	assert.ErrorIs(t, err, ErrUnknownTokenAccount)

	require.NoError(t, m.Create(acct, mint, owner))
	assert.ErrorIs(t, m.Create(acct, mint, owner), ErrTokenAccountExists)

	require.NoError(t, m.Mint(mint, acct, 50))
	holding, err := m.Account(acct)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), holding.Amount)
	assert.Equal(t, mint, holding.Mint)
	assert.Equal(t, owner, holding.Owner)

	otherMint := AddressFromSeed("other-mint")
	assert.ErrorIs(t, m.Mint(otherMint, acct, 1), ErrMintMismatch)
	assert.ErrorIs(t, m.Burn(otherMint, acct, 1), ErrMintMismatch)

	require.NoError(t, m.Burn(mint, acct, 20))
	holding, err = m.Account(acct)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), holding.Amount)

	assert.ErrorIs(t, m.Burn(mint, acct, 31), ErrInsufficientTokens)
}

type flakyHandler struct {
	mutate func()
	err    error
}

func (h *flakyHandler) Process(Instruction) error {
	h.mutate()
	return h.err
}

func TestApplyRollsBackOnFailure(t *testing.T) {
	m := NewMemoryHost()
	slot := AddressFromSeed("slot")
	wallet := AddressFromSeed("wallet")
	mint := AddressFromSeed("mint")
	acct := AddressFromSeed("acct")
	require.NoError(t, m.Put(slot, []byte{1}))
	m.Deposit(wallet, 100)
	require.NoError(t, m.Create(acct, mint, wallet))

	h := &flakyHandler{
		mutate: func() {
			_ = m.Put(slot, []byte{9})
			m.Deposit(wallet, 900)
			_ = m.Mint(mint, acct, 5)
		},
		err: assert.AnError,
	}
	err := m.Apply(h, Instruction{})
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, []byte{1}, m.Get(slot))
	assert.Equal(t, uint64(100), m.Balance(wallet))
	holding, err := m.Account(acct)
	require.NoError(t, err)
	assert.Zero(t, holding.Amount)
}

func TestApplyCommitsOnSuccess(t *testing.T) {
	m := NewMemoryHost()
	slot := AddressFromSeed("slot")
	h := &flakyHandler{mutate: func() { _ = m.Put(slot, []byte{7}) }}

	require.NoError(t, m.Apply(h, Instruction{}))
	assert.Equal(t, []byte{7}, m.Get(slot))
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	m := NewMemoryHost()
	slot := AddressFromSeed("slot")
	wallet := AddressFromSeed("wallet")
	mint := AddressFromSeed("mint")
	acct := AddressFromSeed("acct")
	require.NoError(t, m.Put(slot, []byte{1, 2, 3}))
	m.Deposit(wallet, 77)
	require.NoError(t, m.Create(acct, mint, wallet))
	require.NoError(t, m.Mint(mint, acct, 5))

	require.NoError(t, m.SaveFile(path))

	loaded := NewMemoryHost()
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, []byte{1, 2, 3}, loaded.Get(slot))
	assert.Equal(t, uint64(77), loaded.Balance(wallet))
	holding, err := loaded.Account(acct)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), holding.Amount)
	assert.Equal(t, mint, holding.Mint)
	assert.Equal(t, wallet, holding.Owner)
}

func TestLoadFileMissingIsEmpty(t *testing.T) {
	m := NewMemoryHost()
	require.NoError(t, m.LoadFile(filepath.Join(t.TempDir(), "absent.json")))
	assert.Nil(t, m.Get(AddressFromSeed("anything")))
}

func TestFixedClock(t *testing.T) {
	c := &FixedClock{Unix: 100}
	assert.Equal(t, int64(100), c.Now())
	c.Advance(50)
	assert.Equal(t, int64(150), c.Now())
}
