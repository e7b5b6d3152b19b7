package contract

import (
	"fmt"
	"strconv"

	"unicornfactory/sdk"
)

// Terse pipe-delimited event lines, one per successful mutation, so watchers
// and indexers can follow a project without diffing storage.

// emitProjectInitialized pings a "pi" line when a campaign opens.
func (p *Processor) emitProjectInitialized(project, authority sdk.Address, goal uint64) {
	p.host.Log.Log(fmt.Sprintf(
		"pi|prj:%s|auth:%s|goal:%d",
		project.Short(),
		authority.Short(),
		goal,
	))
}

// emitPurchase covers both contribute ("cn") and buy ("bt"); the line keeps
// the post-transition price so the curve can be replayed from logs alone.
func (p *Processor) emitPurchase(project, actor sdk.Address, amount, qty, price uint64, contribution bool) {
	tag := "bt"
	if contribution {
		tag = "cn"
	}
	p.host.Log.Log(fmt.Sprintf(
		"%s|prj:%s|by:%s|am:%d|q:%d|px:%d",
		tag,
		project.Short(),
		actor.Short(),
		amount,
		qty,
		price,
	))
}

// emitSell mirrors the purchase line for redemptions.
func (p *Processor) emitSell(project, seller sdk.Address, amount, refund, price uint64) {
	p.host.Log.Log(fmt.Sprintf(
		"sl|prj:%s|by:%s|am:%d|rf:%d|px:%d",
		project.Short(),
		seller.Short(),
		amount,
		refund,
		price,
	))
}

// emitMilestoneAdded logs the new checkpoint and its fixed payout.
func (p *Processor) emitMilestoneAdded(project sdk.Address, index uint8, amount uint64) {
	p.host.Log.Log(fmt.Sprintf(
		"ma|prj:%s|id:%d|am:%d",
		project.Short(),
		index,
		amount,
	))
}

// emitMilestoneCompleted marks the authority's direct completion path.
func (p *Processor) emitMilestoneCompleted(project sdk.Address, index uint8, completedAt int64) {
	p.host.Log.Log(fmt.Sprintf(
		"mc|prj:%s|id:%d|at:%s",
		project.Short(),
		index,
		strconv.FormatInt(completedAt, 10),
	))
}

// emitProposalCreated includes the voting deadline so runners can queue the
// release without polling.
func (p *Processor) emitProposalCreated(project sdk.Address, index, milestoneID uint8, votingEnd int64) {
	p.host.Log.Log(fmt.Sprintf(
		"pc|prj:%s|id:%d|ms:%d|end:%s",
		project.Short(),
		index,
		milestoneID,
		strconv.FormatInt(votingEnd, 10),
	))
}

// emitVoteCast logs each accepted vote with its direction.
func (p *Processor) emitVoteCast(project sdk.Address, proposalID uint64, voter sdk.Address, approve bool) {
	p.host.Log.Log(fmt.Sprintf(
		"vt|prj:%s|id:%d|by:%s|yes:%s",
		project.Short(),
		proposalID,
		voter.Short(),
		strconv.FormatBool(approve),
	))
}

// emitFundsReleased records the payout after a passed vote.
func (p *Processor) emitFundsReleased(project sdk.Address, proposalID uint64, milestoneID uint8, amount uint64) {
	p.host.Log.Log(fmt.Sprintf(
		"rl|prj:%s|id:%d|ms:%d|am:%d",
		project.Short(),
		proposalID,
		milestoneID,
		amount,
	))
}
