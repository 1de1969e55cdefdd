package engine

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// Chain is the block source the engine runs on. Values are those of the block
// currently being built.
type Chain interface {
	BlockNumber() idx.Block
	// Timestamp is in unix seconds and never decreases.
	Timestamp() uint64
	ParentHash() common.Hash
}
