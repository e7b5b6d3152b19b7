package contract

import "unicornfactory/sdk"

// Project is the per-campaign funding record. One exists per authority,
// created once and mutated by the funding and governance paths; it is never
// deleted and never reactivates after the goal is reached.
type Project struct {
	Authority      sdk.Address
	Name           string
	Symbol         string
	FundingGoal    uint64
	TotalRaised    uint64
	TokenPrice     uint64
	IsActive       bool
	TokenMint      sdk.Address
	MilestoneCount uint8
	ProposalCount  uint8
}

// Milestone is a declared funding checkpoint, indexed 0..MilestoneCount-1.
// HasProposal is set irrevocably the first time a proposal targets it.
type Milestone struct {
	Title       string
	Description string
	Amount      uint64
	IsCompleted bool
	CompletedAt int64
	HasProposal bool
}

// Proposal is one governance vote bound to exactly one milestone, indexed
// 0..ProposalCount-1. Votes are unweighted counters; VotingEnd is fixed at
// creation.
type Proposal struct {
	Creator     sdk.Address
	Title       string
	Description string
	MilestoneID uint8
	YesVotes    uint64
	NoVotes     uint64
	IsExecuted  bool
	CreatedAt   int64
	VotingEnd   int64
}
