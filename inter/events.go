package inter

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/utils/safe"
)

// Event is an observable notice emitted by the consensus core. Events are
// only published after the entry point that produced them has committed.
type Event interface {
	EventName() string
}

// Envelope wraps an Event together with the chain height it was produced at.
// It is the single element type carried on the notice feed.
type Envelope struct {
	Block idx.Block
	Event Event
}

type (
	RewardPaid struct {
		Miner  common.Address
		Amount safe.Int
		Block  idx.Block
	}
	HalvingOccurred struct {
		Block     idx.Block
		NewReward safe.Int
	}
	MaxSupplyReached struct {
		Block       idx.Block
		TotalSupply safe.Int
	}
	ProposalCreated struct {
		ID       uint32
		Proposer common.Address
		Kind     ProposalKind
	}
	VoteRegistered struct {
		ProposalID uint32
		Voter      common.Address
		InFavor    bool
		Stake      safe.Int
	}
	ProposalApproved struct {
		ID           uint32
		VotesFor     safe.Int
		VotesAgainst safe.Int
	}
	ProposalRejected struct {
		ID           uint32
		VotesFor     safe.Int
		VotesAgainst safe.Int
	}
	ProposalExecuted struct {
		ID    uint32
		Kind  ProposalKind
		Value safe.Int
	}
	ProtocolUpgradeScheduled struct {
		ProposalID uint32
		Version    safe.Int
	}
	ExpertVerified struct {
		Account   common.Address
		Expertise []byte
	}
	OrphanBlockRewardPaid struct {
		Validator common.Address
		Amount    safe.Int
		BlockHash common.Hash
	}
	PenaltyApplied struct {
		Account common.Address
		Amount  safe.Int
		Reason  []byte
	}
	BlockAddedToGhost struct {
		BlockHash       common.Hash
		TotalDifficulty safe.Int
	}
	BestBlockChanged struct {
		BlockHash       common.Hash
		TotalDifficulty safe.Int
	}
	DifficultyAdjusted struct {
		Block idx.Block
		Old   safe.Int
		New   safe.Int
	}
	MerkleRootUpdated struct {
		Block idx.Block
		Root  common.Hash
	}
	StakeLocked struct {
		Account      common.Address
		Amount       safe.Int
		ReleaseBlock idx.Block
	}
	StakeUnlocked struct {
		Account common.Address
		Amount  safe.Int
	}
)

func (RewardPaid) EventName() string               { return "RewardPaid" }
func (HalvingOccurred) EventName() string          { return "HalvingOccurred" }
func (MaxSupplyReached) EventName() string         { return "MaxSupplyReached" }
func (ProposalCreated) EventName() string          { return "ProposalCreated" }
func (VoteRegistered) EventName() string           { return "VoteRegistered" }
func (ProposalApproved) EventName() string         { return "ProposalApproved" }
func (ProposalRejected) EventName() string         { return "ProposalRejected" }
func (ProposalExecuted) EventName() string         { return "ProposalExecuted" }
func (ProtocolUpgradeScheduled) EventName() string { return "ProtocolUpgradeScheduled" }
func (ExpertVerified) EventName() string           { return "ExpertVerified" }
func (OrphanBlockRewardPaid) EventName() string    { return "OrphanBlockRewardPaid" }
func (PenaltyApplied) EventName() string           { return "PenaltyApplied" }
func (BlockAddedToGhost) EventName() string        { return "BlockAddedToGhost" }
func (BestBlockChanged) EventName() string         { return "BestBlockChanged" }
func (DifficultyAdjusted) EventName() string       { return "DifficultyAdjusted" }
func (MerkleRootUpdated) EventName() string        { return "MerkleRootUpdated" }
func (StakeLocked) EventName() string              { return "StakeLocked" }
func (StakeUnlocked) EventName() string            { return "StakeUnlocked" }
