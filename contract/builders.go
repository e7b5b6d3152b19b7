package contract

import (
	"encoding/binary"

	"unicornfactory/sdk"
)

// Client-side instruction builders. Each one encodes the payload for its tag
// and lays out the exact ordered account list the processor resolves, so
// tests and the demo runner build instructions the same way a wallet would.

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

// NewInitializeProject creates a project slot derived from the authority.
// Accounts: project, authority (signer), system program, token program, mint.
func NewInitializeProject(authority, tokenMint sdk.Address, name, symbol string, fundingGoal uint64) sdk.Instruction {
	data := []byte{TagInitializeProject}
	data = appendU32(data, uint32(len(name)))
	data = appendU32(data, uint32(len(symbol)))
	data = append(data, name...)
	data = append(data, symbol...)
	data = appendU64(data, fundingGoal)
	return sdk.Instruction{
		ProgramID: ProgramID,
		Accounts: []sdk.AccountMeta{
			{Key: ProjectAddress(authority), IsWritable: true},
			{Key: authority, IsSigner: true, IsWritable: true},
			{Key: sdk.SystemProgramID},
			{Key: sdk.TokenProgramID},
			{Key: tokenMint},
		},
		Data: data,
	}
}

// fundingAccounts is shared by Contribute, BuyTokens and SellTokens.
// Accounts: project, actor (signer), actor token account, mint,
// token program, system program.
func fundingAccounts(project, actor, actorTokenAccount, tokenMint sdk.Address) []sdk.AccountMeta {
	return []sdk.AccountMeta{
		{Key: project, IsWritable: true},
		{Key: actor, IsSigner: true, IsWritable: true},
		{Key: actorTokenAccount, IsWritable: true},
		{Key: tokenMint, IsWritable: true},
		{Key: sdk.TokenProgramID},
		{Key: sdk.SystemProgramID},
	}
}

// NewContribute pays amount into the project treasury at the current price.
func NewContribute(project, contributor, contributorTokenAccount, tokenMint sdk.Address, amount uint64) sdk.Instruction {
	return sdk.Instruction{
		ProgramID: ProgramID,
		Accounts:  fundingAccounts(project, contributor, contributorTokenAccount, tokenMint),
		Data:      appendU64([]byte{TagContribute}, amount),
	}
}

// NewBuyTokens is the open-market twin of NewContribute.
func NewBuyTokens(project, buyer, buyerTokenAccount, tokenMint sdk.Address, amount uint64) sdk.Instruction {
	return sdk.Instruction{
		ProgramID: ProgramID,
		Accounts:  fundingAccounts(project, buyer, buyerTokenAccount, tokenMint),
		Data:      appendU64([]byte{TagBuyTokens}, amount),
	}
}

// NewSellTokens redeems amount credits for base value at the current price.
func NewSellTokens(project, seller, sellerTokenAccount, tokenMint sdk.Address, amount uint64) sdk.Instruction {
	return sdk.Instruction{
		ProgramID: ProgramID,
		Accounts:  fundingAccounts(project, seller, sellerTokenAccount, tokenMint),
		Data:      appendU64([]byte{TagSellTokens}, amount),
	}
}

// NewAddMilestone declares the next funding checkpoint.
// Accounts: project, milestone, authority (signer), system program.
func NewAddMilestone(project, authority sdk.Address, index uint8, title, description string, amount uint64) sdk.Instruction {
	data := []byte{TagAddMilestone}
	data = appendU32(data, uint32(len(title)))
	data = appendU32(data, uint32(len(description)))
	data = append(data, title...)
	data = append(data, description...)
	data = appendU64(data, amount)
	return sdk.Instruction{
		ProgramID: ProgramID,
		Accounts: []sdk.AccountMeta{
			{Key: project, IsWritable: true},
			{Key: MilestoneAddress(project, index), IsWritable: true},
			{Key: authority, IsSigner: true},
			{Key: sdk.SystemProgramID},
		},
		Data: data,
	}
}

// NewCompleteMilestone marks a milestone done outside governance.
// Accounts: project, milestone, authority (signer).
func NewCompleteMilestone(project, authority sdk.Address, milestoneID uint8) sdk.Instruction {
	return sdk.Instruction{
		ProgramID: ProgramID,
		Accounts: []sdk.AccountMeta{
			{Key: project},
			{Key: MilestoneAddress(project, milestoneID), IsWritable: true},
			{Key: authority, IsSigner: true},
		},
		Data: []byte{TagCompleteMilestone, milestoneID},
	}
}

// NewCreateProposal opens a vote on a milestone.
// Accounts: project, proposal, milestone, authority (signer), system program.
func NewCreateProposal(project, authority sdk.Address, proposalIndex, milestoneID uint8, title, description string) sdk.Instruction {
	data := []byte{TagCreateProposal}
	data = appendU32(data, uint32(len(title)))
	data = appendU32(data, uint32(len(description)))
	data = append(data, title...)
	data = append(data, description...)
	data = append(data, milestoneID)
	return sdk.Instruction{
		ProgramID: ProgramID,
		Accounts: []sdk.AccountMeta{
			{Key: project, IsWritable: true},
			{Key: ProposalAddress(project, proposalIndex), IsWritable: true},
			{Key: MilestoneAddress(project, milestoneID), IsWritable: true},
			{Key: authority, IsSigner: true},
			{Key: sdk.SystemProgramID},
		},
		Data: data,
	}
}

// NewVote casts one unweighted vote. Accounts: project, proposal, voter (signer).
func NewVote(project, voter sdk.Address, proposalID uint64, approve bool) sdk.Instruction {
	flag := byte(0)
	if approve {
		flag = 1
	}
	data := appendU64([]byte{TagVote}, proposalID)
	data = append(data, flag)
	return sdk.Instruction{
		ProgramID: ProgramID,
		Accounts: []sdk.AccountMeta{
			{Key: project},
			{Key: ProposalAddress(project, uint8(proposalID)), IsWritable: true},
			{Key: voter, IsSigner: true},
		},
		Data: data,
	}
}

// NewReleaseFunds pays a passed proposal's milestone amount to the authority.
// Accounts: project, proposal, milestone, authority (signer), system program.
func NewReleaseFunds(project, authority sdk.Address, proposalID uint64, milestoneID uint8) sdk.Instruction {
	return sdk.Instruction{
		ProgramID: ProgramID,
		Accounts: []sdk.AccountMeta{
			{Key: project, IsWritable: true},
			{Key: ProposalAddress(project, uint8(proposalID)), IsWritable: true},
			{Key: MilestoneAddress(project, milestoneID), IsWritable: true},
			{Key: authority, IsSigner: true, IsWritable: true},
			{Key: sdk.SystemProgramID},
		},
		Data: appendU64([]byte{TagReleaseFunds}, proposalID),
	}
}
