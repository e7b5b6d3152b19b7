package contract

import (
	"github.com/pkg/errors"

	"unicornfactory/sdk"
)

// Project ledger: Initialize, Contribute, Buy, Sell. Contribute and Buy are
// the same transition apart from Contribute's eager goal check; Sell walks
// the curve back down. None of them ever reactivates a deactivated project.

func (p *Processor) initializeProject(accs []sdk.AccountMeta, args *initializeProjectArgs) error {
	if err := requireAccounts(accs, 5); err != nil {
		return err
	}
	projectAcc, authorityAcc := accs[0], accs[1]
	systemAcc, tokenProgAcc, mintAcc := accs[2], accs[3], accs[4]

	if err := requireSigner(authorityAcc); err != nil {
		return err
	}
	if err := requireProgram(systemAcc, sdk.SystemProgramID); err != nil {
		return err
	}
	if err := requireProgram(tokenProgAcc, sdk.TokenProgramID); err != nil {
		return err
	}
	if !sdk.VerifyDerived(projectAcc.Key, []byte(seedProject), authorityAcc.Key[:]) {
		return errors.Wrap(ErrInvalidProjectAccount, "address does not derive from authority")
	}
	if !p.slotEmpty(projectAcc.Key) {
		return errors.Wrap(ErrInvalidProjectAccount, "already initialized")
	}

	prj := &Project{
		Authority:   authorityAcc.Key,
		Name:        args.Name,
		Symbol:      args.Symbol,
		FundingGoal: args.FundingGoal,
		TotalRaised: 0,
		TokenPrice:  1,
		IsActive:    true,
		TokenMint:   mintAcc.Key,
	}
	if err := p.storeProject(projectAcc.Key, prj); err != nil {
		return err
	}
	p.emitProjectInitialized(projectAcc.Key, authorityAcc.Key, args.FundingGoal)
	return nil
}

func (p *Processor) contribute(accs []sdk.AccountMeta, amount uint64) error {
	return p.applyPurchase(accs, amount, true)
}

func (p *Processor) buyTokens(accs []sdk.AccountMeta, amount uint64) error {
	return p.applyPurchase(accs, amount, false)
}

// applyPurchase moves amount into the treasury, mints credits at the current
// price and walks the curve forward. eagerGoalCheck distinguishes Contribute
// (refuses outright once at goal) from Buy (relies on the is_active guard).
func (p *Processor) applyPurchase(accs []sdk.AccountMeta, amount uint64, eagerGoalCheck bool) error {
	if err := requireAccounts(accs, 6); err != nil {
		return err
	}
	projectAcc, actorAcc, tokenAcc, mintAcc := accs[0], accs[1], accs[2], accs[3]
	tokenProgAcc, systemAcc := accs[4], accs[5]

	if err := requireSigner(actorAcc); err != nil {
		return err
	}
	if err := requireProgram(tokenProgAcc, sdk.TokenProgramID); err != nil {
		return err
	}
	if err := requireProgram(systemAcc, sdk.SystemProgramID); err != nil {
		return err
	}

	prj, err := p.loadProject(projectAcc.Key)
	if err != nil {
		return err
	}
	if !prj.IsActive {
		return errors.Wrap(ErrProjectNotActive, "funding closed")
	}
	if eagerGoalCheck && prj.TotalRaised >= prj.FundingGoal {
		return ErrFundingGoalReached
	}
	if mintAcc.Key != prj.TokenMint {
		return errors.Wrap(ErrInvalidAccountData, "mint does not match project")
	}

	qty := tokensFor(amount, prj.TokenPrice)

	// External effects first, state math after: the host rolls back the
	// whole invocation if anything below fails.
	if err := p.host.Bank.Transfer(actorAcc.Key, projectAcc.Key, amount); err != nil {
		return errors.Wrap(err, "fund treasury")
	}
	if err := p.host.Tokens.Mint(prj.TokenMint, tokenAcc.Key, qty); err != nil {
		return errors.Wrap(err, "mint credits")
	}

	prj.TotalRaised, err = checkedAdd(prj.TotalRaised, amount)
	if err != nil {
		return errors.Wrap(err, "total_raised")
	}
	prj.TokenPrice, err = nextPrice(prj.TotalRaised, prj.FundingGoal)
	if err != nil {
		return errors.Wrap(err, "token_price")
	}
	if prj.TotalRaised >= prj.FundingGoal {
		prj.IsActive = false
	}
	if err := p.storeProject(projectAcc.Key, prj); err != nil {
		return err
	}
	p.emitPurchase(projectAcc.Key, actorAcc.Key, amount, qty, prj.TokenPrice, eagerGoalCheck)
	return nil
}

func (p *Processor) sellTokens(accs []sdk.AccountMeta, amount uint64) error {
	if err := requireAccounts(accs, 6); err != nil {
		return err
	}
	projectAcc, sellerAcc, tokenAcc, mintAcc := accs[0], accs[1], accs[2], accs[3]
	tokenProgAcc, systemAcc := accs[4], accs[5]

	if err := requireSigner(sellerAcc); err != nil {
		return err
	}
	if err := requireProgram(tokenProgAcc, sdk.TokenProgramID); err != nil {
		return err
	}
	if err := requireProgram(systemAcc, sdk.SystemProgramID); err != nil {
		return err
	}

	prj, err := p.loadProject(projectAcc.Key)
	if err != nil {
		return err
	}
	// Sell requires an active project, so redemption is impossible once
	// the goal is reached and the project deactivates.
	if !prj.IsActive {
		return errors.Wrap(ErrProjectNotActive, "funding closed")
	}

	holding, err := p.host.Tokens.Account(tokenAcc.Key)
	if err != nil {
		return errors.Wrap(ErrInvalidAmount, "credit account missing")
	}
	if mintAcc.Key != prj.TokenMint || holding.Mint != prj.TokenMint {
		return errors.Wrap(ErrInvalidAmount, "credit mint mismatch")
	}
	if holding.Owner != sellerAcc.Key {
		return errors.Wrap(ErrInvalidAmount, "credit account not owned by seller")
	}
	if holding.Amount < amount {
		return errors.Wrapf(ErrInvalidAmount, "balance %d < %d", holding.Amount, amount)
	}

	refund, err := checkedMul(amount, prj.TokenPrice)
	if err != nil {
		return errors.Wrap(err, "refund")
	}
	if p.host.Bank.Balance(projectAcc.Key) < refund {
		return errors.Wrap(ErrInvalidAmount, "treasury cannot cover refund")
	}

	if err := p.host.Tokens.Burn(prj.TokenMint, tokenAcc.Key, amount); err != nil {
		return errors.Wrap(err, "burn credits")
	}
	if err := p.host.Bank.Transfer(projectAcc.Key, sellerAcc.Key, refund); err != nil {
		return errors.Wrap(err, "refund seller")
	}

	prj.TotalRaised, err = checkedSub(prj.TotalRaised, refund)
	if err != nil {
		return errors.Wrap(err, "total_raised")
	}
	prj.TokenPrice, err = nextPrice(prj.TotalRaised, prj.FundingGoal)
	if err != nil {
		return errors.Wrap(err, "token_price")
	}
	if prj.TotalRaised >= prj.FundingGoal {
		prj.IsActive = false
	}
	if err := p.storeProject(projectAcc.Key, prj); err != nil {
		return err
	}
	p.emitSell(projectAcc.Key, sellerAcc.Key, amount, refund, prj.TokenPrice)
	return nil
}
