package contract

// Code is the program's error enum: the funding family first, then the
// governance codes. Callers classify failures with errors.Is against these
// sentinels; wrapping context is added via github.com/pkg/errors so the
// code survives the chain.
type Code uint32

const (
	ErrProjectNotActive Code = iota
	ErrFundingGoalReached
	ErrOverflow
	ErrInvalidAmount
	ErrInvalidProjectAccount
	ErrInvalidAuthority
	ErrMilestoneAlreadyCompleted
	ErrMilestoneAlreadyHasProposal
	ErrProposalAlreadyExecuted
	ErrVotingPeriodEnded
	ErrVotingPeriodNotEnded
	ErrProposalDidNotPass
	// ErrAlreadyVoted is reserved but never returned: Vote accepts every
	// call as one vote. Kept so the code space stays stable if voter dedup
	// ever lands.
	ErrAlreadyVoted
)

// Runtime-level failures raised before any handler runs.
const (
	ErrInvalidInstructionData Code = 100 + iota
	ErrMissingRequiredSignature
	ErrIncorrectProgramID
	ErrInvalidAccountData
	ErrAccountAlreadyInitialized
	ErrUninitializedAccount
	ErrNotEnoughAccounts
)

func (c Code) Error() string {
	switch c {
	case ErrProjectNotActive:
		return "project not active"
	case ErrFundingGoalReached:
		return "funding goal reached"
	case ErrOverflow:
		return "arithmetic overflow"
	case ErrInvalidAmount:
		return "invalid amount"
	case ErrInvalidProjectAccount:
		return "invalid project account"
	case ErrInvalidAuthority:
		return "invalid authority"
	case ErrMilestoneAlreadyCompleted:
		return "milestone already completed"
	case ErrMilestoneAlreadyHasProposal:
		return "milestone already has a proposal"
	case ErrProposalAlreadyExecuted:
		return "proposal already executed"
	case ErrVotingPeriodEnded:
		return "voting period ended"
	case ErrVotingPeriodNotEnded:
		return "voting period not ended"
	case ErrProposalDidNotPass:
		return "proposal did not pass"
	case ErrAlreadyVoted:
		return "already voted"
	case ErrInvalidInstructionData:
		return "invalid instruction data"
	case ErrMissingRequiredSignature:
		return "missing required signature"
	case ErrIncorrectProgramID:
		return "incorrect program id"
	case ErrInvalidAccountData:
		return "invalid account data"
	case ErrAccountAlreadyInitialized:
		return "account already initialized"
	case ErrUninitializedAccount:
		return "uninitialized account"
	case ErrNotEnoughAccounts:
		return "not enough accounts"
	default:
		return "unknown error"
	}
}
