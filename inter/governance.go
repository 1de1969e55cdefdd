package inter

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/utils/safe"
)

// ProposalKind selects which consensus parameter an executed proposal changes.
type ProposalKind uint8

const (
	// BlockRewardProposal replaces the current block reward.
	BlockRewardProposal ProposalKind = iota
	// HalvingPeriodProposal replaces the halving period, in blocks.
	HalvingPeriodProposal
	// DifficultyProposal replaces the current difficulty.
	DifficultyProposal
	// ProtocolUpgradeProposal announces a protocol version.
	ProtocolUpgradeProposal
)

func (k ProposalKind) String() string {
	switch k {
	case BlockRewardProposal:
		return "BlockReward"
	case HalvingPeriodProposal:
		return "HalvingPeriod"
	case DifficultyProposal:
		return "DifficultyAdjustment"
	case ProtocolUpgradeProposal:
		return "ProtocolUpgrade"
	}
	return "Unknown"
}

// Valid reports whether k is a known kind.
func (k ProposalKind) Valid() bool {
	return k <= ProtocolUpgradeProposal
}

// ProposalStatus is the lifecycle state of a proposal.
//
//	Active -> Approved -> Executed
//	Active -> Rejected
type ProposalStatus uint8

const (
	StatusActive ProposalStatus = iota
	StatusApproved
	StatusRejected
	StatusExecuted
)

func (s ProposalStatus) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusExecuted:
		return "Executed"
	}
	return "Unknown"
}

// CanTransition reports whether moving from s to next is allowed.
func (s ProposalStatus) CanTransition(next ProposalStatus) bool {
	switch s {
	case StatusActive:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusExecuted
	}
	return false
}

// Proposal is a stake-backed request to change a consensus parameter.
type Proposal struct {
	ID            uint32
	Proposer      common.Address
	Kind          ProposalKind
	Description   []byte
	ProposedValue safe.Int
	VotingEndsAt  idx.Block
	VotesFor      safe.Int
	VotesAgainst  safe.Int
	Status        ProposalStatus
}

// Vote is a single account's recorded vote on a proposal.
type Vote struct {
	Voter       common.Address
	ProposalID  uint32
	InFavor     bool
	Stake       safe.Int
	DelegatedTo *common.Address `rlp:"nil"`
	// Weight scales Stake into the tally. It is 100% for direct votes and the
	// expert's accuracy for delegated ones.
	Weight Perbill
}

// Weighted returns the amount this vote contributes to the tally.
func (v *Vote) Weighted() safe.Int {
	return v.Weight.MulFloor(v.Stake)
}

// VerifiedExpert is an account that may receive vote delegations.
type VerifiedExpert struct {
	Account      common.Address
	Expertise    []byte
	Accuracy     Perbill
	TotalVotes   uint32
	CorrectVotes uint32
}

// LockedStake is an amount reserved for governance until ReleaseBlock.
type LockedStake struct {
	Amount       safe.Int
	ReleaseBlock idx.Block
}
