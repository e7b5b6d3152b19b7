package contract

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Instruction payload decoding. Layout per tag: little-endian integers,
// UTF-8 strings length-prefixed with u32. Malformed or truncated input
// fails with ErrInvalidInstructionData before any state is touched.

type payloadReader struct {
	data []byte
	off  int
}

func (r *payloadReader) remaining() int {
	return len(r.data) - r.off
}

func (r *payloadReader) u8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, errors.Wrap(ErrInvalidInstructionData, "truncated payload")
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *payloadReader) u32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, errors.Wrap(ErrInvalidInstructionData, "truncated payload")
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *payloadReader) u64() (uint64, error) {
	if r.remaining() < 8 {
		return 0, errors.Wrap(ErrInvalidInstructionData, "truncated payload")
	}
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

func (r *payloadReader) str(n uint32) (string, error) {
	if uint64(r.remaining()) < uint64(n) {
		return "", errors.Wrap(ErrInvalidInstructionData, "truncated payload")
	}
	raw := r.data[r.off : r.off+int(n)]
	r.off += int(n)
	if !utf8.Valid(raw) {
		return "", errors.Wrap(ErrInvalidInstructionData, "malformed utf-8")
	}
	return string(raw), nil
}

type initializeProjectArgs struct {
	Name        string
	Symbol      string
	FundingGoal uint64
}

func decodeInitializeProject(data []byte) (*initializeProjectArgs, error) {
	r := &payloadReader{data: data}
	nameLen, err := r.u32()
	if err != nil {
		return nil, err
	}
	symbolLen, err := r.u32()
	if err != nil {
		return nil, err
	}
	name, err := r.str(nameLen)
	if err != nil {
		return nil, err
	}
	symbol, err := r.str(symbolLen)
	if err != nil {
		return nil, err
	}
	goal, err := r.u64()
	if err != nil {
		return nil, err
	}
	return &initializeProjectArgs{Name: name, Symbol: symbol, FundingGoal: goal}, nil
}

// decodeAmount covers Contribute, BuyTokens and SellTokens, all a bare u64.
func decodeAmount(data []byte) (uint64, error) {
	r := &payloadReader{data: data}
	return r.u64()
}

type createProposalArgs struct {
	Title       string
	Description string
	MilestoneID uint8
}

func decodeCreateProposal(data []byte) (*createProposalArgs, error) {
	r := &payloadReader{data: data}
	titleLen, err := r.u32()
	if err != nil {
		return nil, err
	}
	descLen, err := r.u32()
	if err != nil {
		return nil, err
	}
	title, err := r.str(titleLen)
	if err != nil {
		return nil, err
	}
	desc, err := r.str(descLen)
	if err != nil {
		return nil, err
	}
	milestoneID, err := r.u8()
	if err != nil {
		return nil, err
	}
	return &createProposalArgs{Title: title, Description: desc, MilestoneID: milestoneID}, nil
}

type voteArgs struct {
	ProposalID uint64
	Approve    bool
}

func decodeVote(data []byte) (*voteArgs, error) {
	r := &payloadReader{data: data}
	proposalID, err := r.u64()
	if err != nil {
		return nil, err
	}
	flag, err := r.u8()
	if err != nil {
		return nil, err
	}
	switch flag {
	case 0:
		return &voteArgs{ProposalID: proposalID, Approve: false}, nil
	case 1:
		return &voteArgs{ProposalID: proposalID, Approve: true}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidInstructionData, "vote flag %d", flag)
	}
}

func decodeReleaseFunds(data []byte) (uint64, error) {
	r := &payloadReader{data: data}
	return r.u64()
}

type addMilestoneArgs struct {
	Title       string
	Description string
	Amount      uint64
}

func decodeAddMilestone(data []byte) (*addMilestoneArgs, error) {
	r := &payloadReader{data: data}
	titleLen, err := r.u32()
	if err != nil {
		return nil, err
	}
	descLen, err := r.u32()
	if err != nil {
		return nil, err
	}
	title, err := r.str(titleLen)
	if err != nil {
		return nil, err
	}
	desc, err := r.str(descLen)
	if err != nil {
		return nil, err
	}
	amount, err := r.u64()
	if err != nil {
		return nil, err
	}
	return &addMilestoneArgs{Title: title, Description: desc, Amount: amount}, nil
}

func decodeCompleteMilestone(data []byte) (uint8, error) {
	r := &payloadReader{data: data}
	return r.u8()
}
