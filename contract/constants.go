package contract

import "unicornfactory/sdk"

// ProgramID is the well-known identity of the factory program itself.
var ProgramID = sdk.Derive([]byte("program"), []byte("unicorn-factory"))

// -----------------------------------------------------------------------------
// Instruction tags
// -----------------------------------------------------------------------------

const (
	TagInitializeProject byte = 0
	TagContribute        byte = 1
	TagBuyTokens         byte = 2
	TagSellTokens        byte = 3
	TagCreateProposal    byte = 4
	TagVote              byte = 5
	TagReleaseFunds      byte = 6
	TagAddMilestone      byte = 7
	TagCompleteMilestone byte = 8
)

// -----------------------------------------------------------------------------
// Record field widths (bytes)
// -----------------------------------------------------------------------------

const (
	// ProjectNameLen caps the display name, null-padded in the record.
	ProjectNameLen = 32
	// ProjectSymbolLen caps the credit ticker.
	ProjectSymbolLen = 8
	// TitleLen caps milestone and proposal titles.
	TitleLen = 64
	// DescriptionLen caps milestone and proposal descriptions.
	DescriptionLen = 256
)

// Fixed record sizes, packed in field-declaration order.
const (
	ProjectLen   = sdk.AddressLen + ProjectNameLen + ProjectSymbolLen + 8 + 8 + 8 + 1 + sdk.AddressLen + 1 + 1
	MilestoneLen = TitleLen + DescriptionLen + 8 + 1 + 8 + 1
	ProposalLen  = sdk.AddressLen + TitleLen + DescriptionLen + 1 + 8 + 8 + 1 + 8 + 8
)

// -----------------------------------------------------------------------------
// Governance
// -----------------------------------------------------------------------------

// VotingWindow is the fixed interval after proposal creation during which
// votes are accepted, in seconds.
const VotingWindow int64 = 7 * 24 * 60 * 60

// -----------------------------------------------------------------------------
// Derivation seed tags
// -----------------------------------------------------------------------------

const (
	seedProject   = "project"
	seedMilestone = "milestone"
	seedProposal  = "proposal"
)
