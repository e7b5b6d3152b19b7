package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unicornfactory/sdk"
)

func TestProcessRejectsForeignProgram(t *testing.T) {
	env := newTestEnv(t)
	ins := NewContribute(env.project, env.alice, env.aliceCredits, env.mint, 100)
	ins.ProgramID = sdk.Derive([]byte("program"), []byte("someone-else"))
	assert.ErrorIs(t, env.apply(ins), ErrIncorrectProgramID)
}

func TestProcessRejectsEmptyData(t *testing.T) {
	env := newTestEnv(t)
	err := env.apply(sdk.Instruction{ProgramID: ProgramID})
	assert.ErrorIs(t, err, ErrInvalidInstructionData)
}

func TestProcessRejectsUnknownTag(t *testing.T) {
	env := newTestEnv(t)
	err := env.apply(sdk.Instruction{ProgramID: ProgramID, Data: []byte{99}})
	assert.ErrorIs(t, err, ErrInvalidInstructionData)
}

func TestProcessRejectsTruncatedPayload(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)

	ins := NewContribute(env.project, env.alice, env.aliceCredits, env.mint, 100)
	ins.Data = ins.Data[:5] // tag plus a partial u64
	assert.ErrorIs(t, env.apply(ins), ErrInvalidInstructionData)

	init := NewInitializeProject(env.bob, env.mint, "Another", "ANO", 1_000)
	init.Data = init.Data[:len(init.Data)-3] // cuts into the funding goal
	assert.ErrorIs(t, env.apply(init), ErrInvalidInstructionData)
}

func TestProcessRejectsBadVoteFlag(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)
	env.mustApply(t, NewAddMilestone(env.project, env.authority, 0, "Prototype", "working prototype", 500))
	env.mustApply(t, NewCreateProposal(env.project, env.authority, 0, 0, "Release", "release funds"))

	ins := NewVote(env.project, env.alice, 0, true)
	ins.Data[len(ins.Data)-1] = 2
	assert.ErrorIs(t, env.apply(ins), ErrInvalidInstructionData)
}

func TestProcessRejectsMissingAccounts(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)

	ins := NewContribute(env.project, env.alice, env.aliceCredits, env.mint, 100)
	ins.Accounts = ins.Accounts[:3]
	assert.ErrorIs(t, env.apply(ins), ErrNotEnoughAccounts)
}

func TestProcessRejectsWrongProgramAccounts(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)

	ins := NewContribute(env.project, env.alice, env.aliceCredits, env.mint, 100)
	ins.Accounts[5].Key = env.bob // system program slot
	assert.ErrorIs(t, env.apply(ins), ErrIncorrectProgramID)
}
