package contract

import "unicornfactory/sdk"

// Derived sub-account addressing. Every entity's storage address is
// recomputable from its documented seed tuple, so callers can verify an
// address without a lookup table:
//
//	project   = ("project", authority)
//	milestone = ("milestone", projectAddr, index)
//	proposal  = ("proposal", projectAddr, index)

// ProjectAddress derives the project slot for an authority.
func ProjectAddress(authority sdk.Address) sdk.Address {
	return sdk.Derive([]byte(seedProject), authority[:])
}

// MilestoneAddress derives the slot for a milestone sequence index.
func MilestoneAddress(project sdk.Address, index uint8) sdk.Address {
	return sdk.Derive([]byte(seedMilestone), project[:], []byte{index})
}

// ProposalAddress derives the slot for a proposal sequence index.
func ProposalAddress(project sdk.Address, index uint8) sdk.Address {
	return sdk.Derive([]byte(seedProposal), project[:], []byte{index})
}
