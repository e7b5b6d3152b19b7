package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMilestone(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)

	env.mustApply(t, NewAddMilestone(env.project, env.authority, 0, "Prototype", "working prototype", 500))
	env.mustApply(t, NewAddMilestone(env.project, env.authority, 1, "Launch", "public launch", 1_500))

	assert.Equal(t, uint8(2), env.loadProject(t).MilestoneCount)

	m := env.loadMilestone(t, 0)
	assert.Equal(t, "Prototype", m.Title)
	assert.Equal(t, "working prototype", m.Description)
	assert.Equal(t, uint64(500), m.Amount)
	assert.False(t, m.IsCompleted)
	assert.False(t, m.HasProposal)
	assert.Zero(t, m.CompletedAt)
}

func TestAddMilestoneNotAuthority(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)

	err := env.apply(NewAddMilestone(env.project, env.bob, 0, "Sneaky", "not yours", 500))
	assert.ErrorIs(t, err, ErrInvalidAuthority)
}

func TestAddMilestoneSkippedIndex(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)

	// milestone count is 0, so index 1 derives the wrong address
	err := env.apply(NewAddMilestone(env.project, env.authority, 1, "Launch", "public launch", 1_500))
	assert.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestCompleteMilestone(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)
	env.mustApply(t, NewAddMilestone(env.project, env.authority, 0, "Prototype", "working prototype", 500))

	env.clock.Advance(3_600)
	env.mustApply(t, NewCompleteMilestone(env.project, env.authority, 0))

	m := env.loadMilestone(t, 0)
	assert.True(t, m.IsCompleted)
	assert.Equal(t, testStart+3_600, m.CompletedAt)
}

func TestCompleteMilestoneTwice(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)
	env.mustApply(t, NewAddMilestone(env.project, env.authority, 0, "Prototype", "working prototype", 500))
	env.mustApply(t, NewCompleteMilestone(env.project, env.authority, 0))

	err := env.apply(NewCompleteMilestone(env.project, env.authority, 0))
	assert.ErrorIs(t, err, ErrMilestoneAlreadyCompleted)
}

func TestCompleteMilestoneNotAuthority(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)
	env.mustApply(t, NewAddMilestone(env.project, env.authority, 0, "Prototype", "working prototype", 500))

	err := env.apply(NewCompleteMilestone(env.project, env.alice, 0))
	assert.ErrorIs(t, err, ErrInvalidAuthority)
}

func TestCompleteUnknownMilestone(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, 10_000)

	err := env.apply(NewCompleteMilestone(env.project, env.authority, 0))
	assert.ErrorIs(t, err, ErrUninitializedAccount)
}
