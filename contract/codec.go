package contract

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/pkg/errors"

	"unicornfactory/sdk"
)

// Fixed-width record codec. Every entity packs into a constant-size buffer
// in field-declaration order, strings null-padded to their field width.
// Unpack rejects wrong-size buffers and malformed UTF-8.

// packPadded writes s into a fixed-width field, truncating to width.
func packPadded(dst []byte, s string, width int) {
	b := []byte(s)
	if len(b) > width {
		b = b[:width]
	}
	copy(dst[:width], b)
	for i := len(b); i < width; i++ {
		dst[i] = 0
	}
}

// unpackPadded trims trailing NULs and validates the remaining bytes.
func unpackPadded(src []byte) (string, error) {
	end := len(src)
	for end > 0 && src[end-1] == 0 {
		end--
	}
	if !utf8.Valid(src[:end]) {
		return "", errors.Wrap(ErrInvalidAccountData, "malformed utf-8 in record")
	}
	return string(src[:end]), nil
}

func packBool(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// PackProject serializes a project into its fixed-width record.
func PackProject(p *Project) []byte {
	buf := make([]byte, ProjectLen)
	off := 0
	copy(buf[off:], p.Authority[:])
	off += sdk.AddressLen
	packPadded(buf[off:], p.Name, ProjectNameLen)
	off += ProjectNameLen
	packPadded(buf[off:], p.Symbol, ProjectSymbolLen)
	off += ProjectSymbolLen
	binary.LittleEndian.PutUint64(buf[off:], p.FundingGoal)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], p.TotalRaised)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], p.TokenPrice)
	off += 8
	buf[off] = packBool(p.IsActive)
	off++
	copy(buf[off:], p.TokenMint[:])
	off += sdk.AddressLen
	buf[off] = p.MilestoneCount
	off++
	buf[off] = p.ProposalCount
	return buf
}

// UnpackProject parses a project record; fails on truncated buffers or
// malformed UTF-8 in the padded string fields.
func UnpackProject(src []byte) (*Project, error) {
	if len(src) != ProjectLen {
		return nil, errors.Wrapf(ErrInvalidAccountData, "project record must be %d bytes, got %d", ProjectLen, len(src))
	}
	var p Project
	off := 0
	copy(p.Authority[:], src[off:])
	off += sdk.AddressLen
	name, err := unpackPadded(src[off : off+ProjectNameLen])
	if err != nil {
		return nil, err
	}
	p.Name = name
	off += ProjectNameLen
	symbol, err := unpackPadded(src[off : off+ProjectSymbolLen])
	if err != nil {
		return nil, err
	}
	p.Symbol = symbol
	off += ProjectSymbolLen
	p.FundingGoal = binary.LittleEndian.Uint64(src[off:])
	off += 8
	p.TotalRaised = binary.LittleEndian.Uint64(src[off:])
	off += 8
	p.TokenPrice = binary.LittleEndian.Uint64(src[off:])
	off += 8
	p.IsActive = src[off] != 0
	off++
	copy(p.TokenMint[:], src[off:])
	off += sdk.AddressLen
	p.MilestoneCount = src[off]
	off++
	p.ProposalCount = src[off]
	return &p, nil
}

// PackMilestone serializes a milestone into its fixed-width record.
func PackMilestone(m *Milestone) []byte {
	buf := make([]byte, MilestoneLen)
	off := 0
	packPadded(buf[off:], m.Title, TitleLen)
	off += TitleLen
	packPadded(buf[off:], m.Description, DescriptionLen)
	off += DescriptionLen
	binary.LittleEndian.PutUint64(buf[off:], m.Amount)
	off += 8
	buf[off] = packBool(m.IsCompleted)
	off++
	binary.LittleEndian.PutUint64(buf[off:], uint64(m.CompletedAt))
	off += 8
	buf[off] = packBool(m.HasProposal)
	return buf
}

// UnpackMilestone parses a milestone record.
func UnpackMilestone(src []byte) (*Milestone, error) {
	if len(src) != MilestoneLen {
		return nil, errors.Wrapf(ErrInvalidAccountData, "milestone record must be %d bytes, got %d", MilestoneLen, len(src))
	}
	var m Milestone
	off := 0
	title, err := unpackPadded(src[off : off+TitleLen])
	if err != nil {
		return nil, err
	}
	m.Title = title
	off += TitleLen
	desc, err := unpackPadded(src[off : off+DescriptionLen])
	if err != nil {
		return nil, err
	}
	m.Description = desc
	off += DescriptionLen
	m.Amount = binary.LittleEndian.Uint64(src[off:])
	off += 8
	m.IsCompleted = src[off] != 0
	off++
	m.CompletedAt = int64(binary.LittleEndian.Uint64(src[off:]))
	off += 8
	m.HasProposal = src[off] != 0
	return &m, nil
}

// PackProposal serializes a proposal into its fixed-width record.
func PackProposal(p *Proposal) []byte {
	buf := make([]byte, ProposalLen)
	off := 0
	copy(buf[off:], p.Creator[:])
	off += sdk.AddressLen
	packPadded(buf[off:], p.Title, TitleLen)
	off += TitleLen
	packPadded(buf[off:], p.Description, DescriptionLen)
	off += DescriptionLen
	buf[off] = p.MilestoneID
	off++
	binary.LittleEndian.PutUint64(buf[off:], p.YesVotes)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], p.NoVotes)
	off += 8
	buf[off] = packBool(p.IsExecuted)
	off++
	binary.LittleEndian.PutUint64(buf[off:], uint64(p.CreatedAt))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], uint64(p.VotingEnd))
	return buf
}

// UnpackProposal parses a proposal record.
func UnpackProposal(src []byte) (*Proposal, error) {
	if len(src) != ProposalLen {
		return nil, errors.Wrapf(ErrInvalidAccountData, "proposal record must be %d bytes, got %d", ProposalLen, len(src))
	}
	var p Proposal
	off := 0
	copy(p.Creator[:], src[off:])
	off += sdk.AddressLen
	title, err := unpackPadded(src[off : off+TitleLen])
	if err != nil {
		return nil, err
	}
	p.Title = title
	off += TitleLen
	desc, err := unpackPadded(src[off : off+DescriptionLen])
	if err != nil {
		return nil, err
	}
	p.Description = desc
	off += DescriptionLen
	p.MilestoneID = src[off]
	off++
	p.YesVotes = binary.LittleEndian.Uint64(src[off:])
	off += 8
	p.NoVotes = binary.LittleEndian.Uint64(src[off:])
	off += 8
	p.IsExecuted = src[off] != 0
	off++
	p.CreatedAt = int64(binary.LittleEndian.Uint64(src[off:]))
	off += 8
	p.VotingEnd = int64(binary.LittleEndian.Uint64(src[off:]))
	return &p, nil
}
