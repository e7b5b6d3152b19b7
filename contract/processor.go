package contract

import (
	"github.com/pkg/errors"

	"unicornfactory/sdk"
)

// Processor decodes instructions, enforces the authorization role of every
// account (signer, derived address, program identity) and routes to the
// funding and governance handlers. It holds no state of its own; everything
// lives behind the injected host capabilities.
type Processor struct {
	host *sdk.Host
}

func NewProcessor(host *sdk.Host) *Processor {
	return &Processor{host: host}
}

// Process runs one instruction. Execution is synchronous and the host
// serializes overlapping instructions, so there is no locking here; any
// returned error means the host must discard the whole invocation.
func (p *Processor) Process(ins sdk.Instruction) error {
	if ins.ProgramID != ProgramID {
		return errors.Wrap(ErrIncorrectProgramID, "instruction not addressed to this program")
	}
	if len(ins.Data) == 0 {
		return errors.Wrap(ErrInvalidInstructionData, "empty instruction")
	}
	tag, payload := ins.Data[0], ins.Data[1:]

	switch tag {
	case TagInitializeProject:
		args, err := decodeInitializeProject(payload)
		if err != nil {
			return err
		}
		return p.initializeProject(ins.Accounts, args)
	case TagContribute:
		amount, err := decodeAmount(payload)
		if err != nil {
			return err
		}
		return p.contribute(ins.Accounts, amount)
	case TagBuyTokens:
		amount, err := decodeAmount(payload)
		if err != nil {
			return err
		}
		return p.buyTokens(ins.Accounts, amount)
	case TagSellTokens:
		amount, err := decodeAmount(payload)
		if err != nil {
			return err
		}
		return p.sellTokens(ins.Accounts, amount)
	case TagCreateProposal:
		args, err := decodeCreateProposal(payload)
		if err != nil {
			return err
		}
		return p.createProposal(ins.Accounts, args)
	case TagVote:
		args, err := decodeVote(payload)
		if err != nil {
			return err
		}
		return p.vote(ins.Accounts, args)
	case TagReleaseFunds:
		proposalID, err := decodeReleaseFunds(payload)
		if err != nil {
			return err
		}
		return p.releaseFunds(ins.Accounts, proposalID)
	case TagAddMilestone:
		args, err := decodeAddMilestone(payload)
		if err != nil {
			return err
		}
		return p.addMilestone(ins.Accounts, args)
	case TagCompleteMilestone:
		milestoneID, err := decodeCompleteMilestone(payload)
		if err != nil {
			return err
		}
		return p.completeMilestone(ins.Accounts, milestoneID)
	default:
		return errors.Wrapf(ErrInvalidInstructionData, "unknown tag %d", tag)
	}
}

// -----------------------------------------------------------------------------
// Account resolution helpers
// -----------------------------------------------------------------------------

func requireAccounts(accs []sdk.AccountMeta, n int) error {
	if len(accs) < n {
		return errors.Wrapf(ErrNotEnoughAccounts, "need %d accounts, got %d", n, len(accs))
	}
	return nil
}

func requireSigner(acc sdk.AccountMeta) error {
	if !acc.IsSigner {
		return errors.Wrapf(ErrMissingRequiredSignature, "account %s", acc.Key.Short())
	}
	return nil
}

func requireProgram(acc sdk.AccountMeta, want sdk.Address) error {
	if acc.Key != want {
		return errors.Wrapf(ErrIncorrectProgramID, "got %s", acc.Key.Short())
	}
	return nil
}

// -----------------------------------------------------------------------------
// Record load/store
// -----------------------------------------------------------------------------

func (p *Processor) loadProject(addr sdk.Address) (*Project, error) {
	raw := p.host.State.Get(addr)
	if raw == nil {
		return nil, errors.Wrap(ErrUninitializedAccount, "project")
	}
	return UnpackProject(raw)
}

func (p *Processor) storeProject(addr sdk.Address, prj *Project) error {
	return errors.Wrap(p.host.State.Put(addr, PackProject(prj)), "store project")
}

func (p *Processor) loadMilestone(addr sdk.Address) (*Milestone, error) {
	raw := p.host.State.Get(addr)
	if raw == nil {
		return nil, errors.Wrap(ErrUninitializedAccount, "milestone")
	}
	return UnpackMilestone(raw)
}

func (p *Processor) storeMilestone(addr sdk.Address, m *Milestone) error {
	return errors.Wrap(p.host.State.Put(addr, PackMilestone(m)), "store milestone")
}

func (p *Processor) loadProposal(addr sdk.Address) (*Proposal, error) {
	raw := p.host.State.Get(addr)
	if raw == nil {
		return nil, errors.Wrap(ErrUninitializedAccount, "proposal")
	}
	return UnpackProposal(raw)
}

func (p *Processor) storeProposal(addr sdk.Address, pr *Proposal) error {
	return errors.Wrap(p.host.State.Put(addr, PackProposal(pr)), "store proposal")
}

// slotEmpty treats both a missing slot and an all-zero buffer as free; the
// all-zero case guards against double-init of a pre-allocated account.
func (p *Processor) slotEmpty(addr sdk.Address) bool {
	raw := p.host.State.Get(addr)
	if raw == nil {
		return true
	}
	for _, b := range raw {
		if b != 0 {
			return false
		}
	}
	return true
}
