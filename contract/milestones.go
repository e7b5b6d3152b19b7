package contract

import (
	"github.com/pkg/errors"

	"unicornfactory/sdk"
)

// Milestone registry: Add and the authority's direct Complete path. The
// governance-triggered completion lives in governance.go and deliberately
// does not set CompletedAt.

func (p *Processor) addMilestone(accs []sdk.AccountMeta, args *addMilestoneArgs) error {
	if err := requireAccounts(accs, 4); err != nil {
		return err
	}
	projectAcc, milestoneAcc, authorityAcc, systemAcc := accs[0], accs[1], accs[2], accs[3]

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
		return errors.Wrap(ErrInvalidAuthority, "only the project authority may add milestones")
	}

	index := prj.MilestoneCount
	want := MilestoneAddress(projectAcc.Key, index)
	if milestoneAcc.Key != want {
		return errors.Wrapf(ErrInvalidAccountData, "milestone address for index %d", index)
	}
	if !p.slotEmpty(milestoneAcc.Key) {
		return errors.Wrap(ErrAccountAlreadyInitialized, "milestone")
	}

	prj.MilestoneCount, err = checkedIncU8(prj.MilestoneCount)
	if err != nil {
		return errors.Wrap(err, "milestone_count")
	}

	m := &Milestone{
		Title:       args.Title,
		Description: args.Description,
		Amount:      args.Amount,
	}
	if err := p.storeMilestone(milestoneAcc.Key, m); err != nil {
		return err
	}
	if err := p.storeProject(projectAcc.Key, prj); err != nil {
		return err
	}
	p.emitMilestoneAdded(projectAcc.Key, index, args.Amount)
	return nil
}

func (p *Processor) completeMilestone(accs []sdk.AccountMeta, milestoneID uint8) error {
	if err := requireAccounts(accs, 3); err != nil {
		return err
	}
	projectAcc, milestoneAcc, authorityAcc := accs[0], accs[1], accs[2]

	if err := requireSigner(authorityAcc); err != nil {
		return err
	}

	prj, err := p.loadProject(projectAcc.Key)
	if err != nil {
		return err
	}
	if authorityAcc.Key != prj.Authority {
		return errors.Wrap(ErrInvalidAuthority, "only the project authority may complete milestones")
	}
	if milestoneAcc.Key != MilestoneAddress(projectAcc.Key, milestoneID) {
		return errors.Wrapf(ErrInvalidAccountData, "milestone address for id %d", milestoneID)
	}

	m, err := p.loadMilestone(milestoneAcc.Key)
	if err != nil {
		return err
	}
	if m.IsCompleted {
		return ErrMilestoneAlreadyCompleted
	}
	m.IsCompleted = true
	m.CompletedAt = p.host.Clock.Now()
	if err := p.storeMilestone(milestoneAcc.Key, m); err != nil {
		return err
	}
	p.emitMilestoneCompleted(projectAcc.Key, milestoneID, m.CompletedAt)
	return nil
}
