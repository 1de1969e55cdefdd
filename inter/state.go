package inter

import (
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/utils/safe"
)

// ChainState holds every consensus singleton. It is loaded at the start of an
// entry point, mutated in memory and written back only when the entry point
// succeeds.
type ChainState struct {
	// monetary policy
	TotalSupply        safe.Int
	CurrentBlockReward safe.Int
	LastHalvingBlock   idx.Block
	BlocksPerHalving   uint64
	MaxSupplyReached   bool

	// difficulty
	CurrentDifficulty safe.Int
	// WindowStartTime is the chain timestamp of the first block of the
	// current retarget window.
	WindowStartTime uint64

	// proof of history
	LastPohHash hash.Hash
	PohCounter  uint64

	// fork choice
	BestBlock common.Hash

	// governance
	NextProposalID uint32

	// LastInitialized is the most recent block the per-block hook ran for.
	LastInitialized idx.Block

	// light-client commitment
	MerkleRoot      common.Hash
	MerkleRootBlock idx.Block
	// MerkleRootHead is the newest block the current root commits to.
	MerkleRootHead common.Hash
}

// Copy returns a value copy. All fields are values, so a shallow copy is deep.
func (s ChainState) Copy() ChainState {
	return s
}
