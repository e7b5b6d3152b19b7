package contract

import (
	"github.com/pkg/errors"

	"unicornfactory/sdk"
)

// Governance engine. Proposal lifecycle: open while now <= voting_end, then
// either released (majority yes) or permanently stuck. A milestone whose
// proposal failed can never be re-proposed, because has_proposal is set
// irrevocably at creation.

func (p *Processor) createProposal(accs []sdk.AccountMeta, args *createProposalArgs) error {
	if err := requireAccounts(accs, 5); err != nil {
		return err
	}
	projectAcc, proposalAcc, milestoneAcc := accs[0], accs[1], accs[2]
	authorityAcc, systemAcc := accs[3], accs[4]

	if err := requireSigner(authorityAcc); err != nil {
		return err
	}
	if err := requireProgram(systemAcc, sdk.SystemProgramID); err != nil {
		return err
	}

	prj, err := p.loadProject(projectAcc.Key)
	if err != nil {
		return err
	}
	if authorityAcc.Key != prj.Authority {
		return errors.Wrap(ErrInvalidAuthority, "only the project authority may create proposals")
	}
	if milestoneAcc.Key != MilestoneAddress(projectAcc.Key, args.MilestoneID) {
		return errors.Wrapf(ErrInvalidAccountData, "milestone address for id %d", args.MilestoneID)
	}

	m, err := p.loadMilestone(milestoneAcc.Key)
	if err != nil {
		return err
	}
	if m.HasProposal {
		return ErrMilestoneAlreadyHasProposal
	}

	index := prj.ProposalCount
	want := ProposalAddress(projectAcc.Key, index)
	if proposalAcc.Key != want {
		return errors.Wrapf(ErrInvalidAccountData, "proposal address for index %d", index)
	}
	if !p.slotEmpty(proposalAcc.Key) {
		return errors.Wrap(ErrAccountAlreadyInitialized, "proposal")
	}

	prj.ProposalCount, err = checkedIncU8(prj.ProposalCount)
	if err != nil {
		return errors.Wrap(err, "proposal_count")
	}

	now := p.host.Clock.Now()
	proposal := &Proposal{
		Creator:     authorityAcc.Key,
		Title:       args.Title,
		Description: args.Description,
		MilestoneID: args.MilestoneID,
		CreatedAt:   now,
		VotingEnd:   now + VotingWindow,
	}
	// has_proposal flips here and never resets, whatever the vote outcome.
	m.HasProposal = true

	if err := p.storeProposal(proposalAcc.Key, proposal); err != nil {
		return err
	}
	if err := p.storeMilestone(milestoneAcc.Key, m); err != nil {
		return err
	}
	if err := p.storeProject(projectAcc.Key, prj); err != nil {
		return err
	}
	p.emitProposalCreated(projectAcc.Key, index, args.MilestoneID, proposal.VotingEnd)
	return nil
}

func (p *Processor) vote(accs []sdk.AccountMeta, args *voteArgs) error {
	if err := requireAccounts(accs, 3); err != nil {
		return err
	}
	projectAcc, proposalAcc, voterAcc := accs[0], accs[1], accs[2]

	if err := requireSigner(voterAcc); err != nil {
		return err
	}
	if args.ProposalID > 255 {
		return errors.Wrapf(ErrInvalidAccountData, "proposal id %d out of range", args.ProposalID)
	}
	if proposalAcc.Key != ProposalAddress(projectAcc.Key, uint8(args.ProposalID)) {
		return errors.Wrapf(ErrInvalidAccountData, "proposal address for id %d", args.ProposalID)
	}

	proposal, err := p.loadProposal(proposalAcc.Key)
	if err != nil {
		return err
	}
	if proposal.IsExecuted {
		return ErrProposalAlreadyExecuted
	}
	now := p.host.Clock.Now()
	if now > proposal.VotingEnd {
		return ErrVotingPeriodEnded
	}

	// Every accepted call counts as one vote; there is no voter dedup.
	if args.Approve {
		proposal.YesVotes, err = checkedAdd(proposal.YesVotes, 1)
	} else {
		proposal.NoVotes, err = checkedAdd(proposal.NoVotes, 1)
	}
	if err != nil {
		return errors.Wrap(err, "vote tally")
	}
	if err := p.storeProposal(proposalAcc.Key, proposal); err != nil {
		return err
	}
	p.emitVoteCast(projectAcc.Key, args.ProposalID, voterAcc.Key, args.Approve)
	return nil
}

func (p *Processor) releaseFunds(accs []sdk.AccountMeta, proposalID uint64) error {
	if err := requireAccounts(accs, 5); err != nil {
		return err
	}
	projectAcc, proposalAcc, milestoneAcc := accs[0], accs[1], accs[2]
	authorityAcc, systemAcc := accs[3], accs[4]

	if err := requireSigner(authorityAcc); err != nil {
		return err
	}
	if err := requireProgram(systemAcc, sdk.SystemProgramID); err != nil {
		return err
	}

	prj, err := p.loadProject(projectAcc.Key)
	if err != nil {
		return err
	}
	if authorityAcc.Key != prj.Authority {
		return errors.Wrap(ErrInvalidAuthority, "only the project authority may release funds")
	}
	if proposalID > 255 {
		return errors.Wrapf(ErrInvalidAccountData, "proposal id %d out of range", proposalID)
	}
	if proposalAcc.Key != ProposalAddress(projectAcc.Key, uint8(proposalID)) {
		return errors.Wrapf(ErrInvalidAccountData, "proposal address for id %d", proposalID)
	}

	proposal, err := p.loadProposal(proposalAcc.Key)
	if err != nil {
		return err
	}
	if proposal.IsExecuted {
		return ErrProposalAlreadyExecuted
	}
	now := p.host.Clock.Now()
	if now <= proposal.VotingEnd {
		return ErrVotingPeriodNotEnded
	}
	if proposal.YesVotes <= proposal.NoVotes {
		return ErrProposalDidNotPass
	}

	if milestoneAcc.Key != MilestoneAddress(projectAcc.Key, proposal.MilestoneID) {
		return errors.Wrapf(ErrInvalidAccountData, "milestone address for id %d", proposal.MilestoneID)
	}
	m, err := p.loadMilestone(milestoneAcc.Key)
	if err != nil {
		return err
	}
	// The payout is the amount fixed at milestone creation, not a share of
	// the current treasury.
	if p.host.Bank.Balance(projectAcc.Key) < m.Amount {
		return errors.Wrap(ErrInvalidAmount, "treasury cannot cover milestone")
	}
	if err := p.host.Bank.Transfer(projectAcc.Key, authorityAcc.Key, m.Amount); err != nil {
		return errors.Wrap(err, "release payout")
	}

	proposal.IsExecuted = true
	// CompletedAt stays zero on this path, unlike the direct completion.
	m.IsCompleted = true

	if err := p.storeProposal(proposalAcc.Key, proposal); err != nil {
		return err
	}
	if err := p.storeMilestone(milestoneAcc.Key, m); err != nil {
		return err
	}
	p.emitFundsReleased(projectAcc.Key, proposalID, proposal.MilestoneID, m.Amount)
	return nil
}
