package contract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"unicornfactory/sdk"
)

// testEnv wires a processor to the in-memory host. Every instruction goes
// through mem.Apply so a failing call leaves state exactly as before, the
// same all-or-nothing contract the real host provides.
type testEnv struct {
	mem   *sdk.MemoryHost
	clock *sdk.FixedClock
	proc  *Processor
	logs  *sdk.CaptureLogger

	authority sdk.Address
	alice     sdk.Address
	bob       sdk.Address
	carol     sdk.Address
	mint      sdk.Address
	project   sdk.Address

	aliceCredits sdk.Address
	bobCredits   sdk.Address
}

const testStart int64 = 1_700_000_000

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := sdk.NewMemoryHost()
	clock := &sdk.FixedClock{Unix: testStart}
	logs := &sdk.CaptureLogger{}
	host := &sdk.Host{State: mem, Bank: mem, Tokens: mem, Clock: clock, Log: logs}

	env := &testEnv{
		mem:       mem,
		clock:     clock,
		proc:      NewProcessor(host),
		logs:      logs,
		authority: sdk.AddressFromSeed("authority"),
		alice:     sdk.AddressFromSeed("alice"),
		bob:       sdk.AddressFromSeed("bob"),
		carol:     sdk.AddressFromSeed("carol"),
		mint:      sdk.Derive([]byte("mint"), []byte("test")),
	}
	env.project = ProjectAddress(env.authority)
	env.aliceCredits = sdk.Derive([]byte("token-account"), env.mint[:], env.alice[:])
	env.bobCredits = sdk.Derive([]byte("token-account"), env.mint[:], env.bob[:])

	mem.Deposit(env.alice, 1_000_000)
	mem.Deposit(env.bob, 1_000_000)
	require.NoError(t, mem.Create(env.aliceCredits, env.mint, env.alice))
	require.NoError(t, mem.Create(env.bobCredits, env.mint, env.bob))
	return env
}

func (e *testEnv) apply(ins sdk.Instruction) error {
	return e.mem.Apply(e.proc, ins)
}

func (e *testEnv) mustApply(t *testing.T, ins sdk.Instruction) {
	t.Helper()
	require.NoError(t, e.apply(ins))
}

// initProject creates the standard test campaign.
func (e *testEnv) initProject(t *testing.T, goal uint64) {
	t.Helper()
	e.mustApply(t, NewInitializeProject(e.authority, e.mint, "Unicorn Factory", "UNI", goal))
}

func (e *testEnv) loadProject(t *testing.T) *Project {
	t.Helper()
	prj, err := UnpackProject(e.mem.Get(e.project))
	require.NoError(t, err)
	return prj
}

func (e *testEnv) loadMilestone(t *testing.T, id uint8) *Milestone {
	t.Helper()
	m, err := UnpackMilestone(e.mem.Get(MilestoneAddress(e.project, id)))
	require.NoError(t, err)
	return m
}

func (e *testEnv) loadProposal(t *testing.T, id uint8) *Proposal {
	t.Helper()
	p, err := UnpackProposal(e.mem.Get(ProposalAddress(e.project, id)))
	require.NoError(t, err)
	return p
}

func (e *testEnv) credits(t *testing.T, addr sdk.Address) uint64 {
	t.Helper()
	acct, err := e.mem.Account(addr)
	require.NoError(t, err)
	return acct.Amount
}
