package sdk

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// MemoryHost is the in-process stand-in for the real ledger runtime. It
// backs tests and the local runner, and reproduces the host's
// all-or-nothing contract through Apply's snapshot/restore.
type MemoryHost struct {
	state    map[Address][]byte
	balances map[Address]uint64
	tokens   map[Address]TokenAccount
}

// NewMemoryHost returns an empty host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		state:    map[Address][]byte{},
		balances: map[Address]uint64{},
		tokens:   map[Address]TokenAccount{},
	}
}

// --- State ---

func (m *MemoryHost) Get(addr Address) []byte {
	data, ok := m.state[addr]
	if !ok {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

func (m *MemoryHost) Put(addr Address, data []byte) error {
	if existing, ok := m.state[addr]; ok && len(existing) != len(data) {
		return ErrSlotSizeMismatch
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.state[addr] = stored
	return nil
}

// --- Bank ---

func (m *MemoryHost) Balance(addr Address) uint64 {
	return m.balances[addr]
}

func (m *MemoryHost) Transfer(from, to Address, amount uint64) error {
	if m.balances[from] < amount {
		return ErrInsufficientBalance
	}
	m.balances[from] -= amount
	m.balances[to] += amount
	return nil
}

// Deposit credits an account out of thin air, for test and demo setup only.
func (m *MemoryHost) Deposit(addr Address, amount uint64) {
	m.balances[addr] += amount
}

// --- TokenRegistry ---

func (m *MemoryHost) Account(addr Address) (*TokenAccount, error) {
	acct, ok := m.tokens[addr]
	if !ok {
		return nil, ErrUnknownTokenAccount
	}
	return &acct, nil
}

func (m *MemoryHost) Create(addr, mint, owner Address) error {
	if _, ok := m.tokens[addr]; ok {
		return ErrTokenAccountExists
	}
	m.tokens[addr] = TokenAccount{Mint: mint, Owner: owner}
	return nil
}

func (m *MemoryHost) Mint(mint, dest Address, amount uint64) error {
	acct, ok := m.tokens[dest]
	if !ok {
		return ErrUnknownTokenAccount
	}
	if acct.Mint != mint {
		return ErrMintMismatch
	}
	acct.Amount += amount
	m.tokens[dest] = acct
	return nil
}

func (m *MemoryHost) Burn(mint, src Address, amount uint64) error {
	acct, ok := m.tokens[src]
	if !ok {
		return ErrUnknownTokenAccount
	}
	if acct.Mint != mint {
		return ErrMintMismatch
	}
	if acct.Amount < amount {
		return ErrInsufficientTokens
	}
	acct.Amount -= amount
	m.tokens[src] = acct
	return nil
}

// --- atomicity harness ---

type hostSnapshot struct {
	state    map[Address][]byte
	balances map[Address]uint64
	tokens   map[Address]TokenAccount
}

func (m *MemoryHost) snapshot() hostSnapshot {
	snap := hostSnapshot{
		state:    make(map[Address][]byte, len(m.state)),
		balances: make(map[Address]uint64, len(m.balances)),
		tokens:   make(map[Address]TokenAccount, len(m.tokens)),
	}
	for k, v := range m.state {
		data := make([]byte, len(v))
		copy(data, v)
		snap.state[k] = data
	}
	for k, v := range m.balances {
		snap.balances[k] = v
	}
	for k, v := range m.tokens {
		snap.tokens[k] = v
	}
	return snap
}

func (m *MemoryHost) restore(snap hostSnapshot) {
	m.state = snap.state
	m.balances = snap.balances
	m.tokens = snap.tokens
}

// Apply runs one instruction as an all-or-nothing unit: on any failure every
// state mutation and external effect issued during the invocation is
// discarded, exactly as the real host commits or drops a whole invocation.
func (m *MemoryHost) Apply(h InstructionHandler, ins Instruction) error {
	snap := m.snapshot()
	if err := h.Process(ins); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

// --- file persistence (runner only) ---

type hostFile struct {
	State    map[string]string `json:"state"`
	Balances map[string]uint64 `json:"balances"`
	Tokens   map[string]struct {
		Mint   string `json:"mint"`
		Owner  string `json:"owner"`
		Amount uint64 `json:"amount"`
	} `json:"tokens"`
}

// SaveFile writes the full host state as JSON, hex-keyed, so the state
// command can inspect it later.
func (m *MemoryHost) SaveFile(path string) error {
	out := hostFile{
		State:    map[string]string{},
		Balances: map[string]uint64{},
		Tokens: map[string]struct {
			Mint   string `json:"mint"`
			Owner  string `json:"owner"`
			Amount uint64 `json:"amount"`
		}{},
	}
	for k, v := range m.state {
		out.State[k.String()] = hex.EncodeToString(v)
	}
	for k, v := range m.balances {
		out.Balances[k.String()] = v
	}
	for k, v := range m.tokens {
		out.Tokens[k.String()] = struct {
			Mint   string `json:"mint"`
			Owner  string `json:"owner"`
			Amount uint64 `json:"amount"`
		}{Mint: v.Mint.String(), Owner: v.Owner.String(), Amount: v.Amount}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal host state")
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadFile restores a host from a SaveFile dump. A missing file yields an
// empty host.
func (m *MemoryHost) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "read host state")
	}
	var in hostFile
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.Wrap(err, "unmarshal host state")
	}
	for k, v := range in.State {
		addr, err := AddressFromString(k)
		if err != nil {
			return err
		}
		raw, err := hex.DecodeString(v)
		if err != nil {
			return errors.Wrap(err, "decode record")
		}
		m.state[addr] = raw
	}
	for k, v := range in.Balances {
		addr, err := AddressFromString(k)
		if err != nil {
			return err
		}
		m.balances[addr] = v
	}
	for k, v := range in.Tokens {
		addr, err := AddressFromString(k)
		if err != nil {
			return err
		}
		mint, err := AddressFromString(v.Mint)
		if err != nil {
			return err
		}
		owner, err := AddressFromString(v.Owner)
		if err != nil {
			return err
		}
		m.tokens[addr] = TokenAccount{Mint: mint, Owner: owner, Amount: v.Amount}
	}
	return nil
}

// FixedClock is the test clock: set it, advance it, read it.
type FixedClock struct {
	Unix int64
}

func (c *FixedClock) Now() int64 { return c.Unix }

// Advance moves the clock forward by the given seconds.
func (c *FixedClock) Advance(secs int64) { c.Unix += secs }
