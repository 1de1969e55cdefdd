package integration

import (
	"sync"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/engine"
)

// Head is the block the devnet is currently producing. It implements
// engine.Chain.
type Head struct {
	mu     sync.RWMutex
	number idx.Block
	time   uint64
	parent common.Hash
}

// NewHead starts before block 1 at the genesis time.
func NewHead(genesisTime uint64) *Head {
	return &Head{time: genesisTime}
}

func (h *Head) BlockNumber() idx.Block {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.number
}

func (h *Head) Timestamp() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.time
}

func (h *Head) ParentHash() common.Hash {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.parent
}

// Advance moves to the next block on top of parent. Time never goes back.
func (h *Head) Advance(parent common.Hash, now uint64) idx.Block {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.number++
	h.parent = parent
	if now > h.time {
		h.time = now
	}
	return h.number
}

// Resume positions the head at the last block the engine initialized.
func (h *Head) Resume(eng *engine.Engine) error {
	st, err := eng.State()
	if err != nil {
		return err
	}
	best, err := eng.BestBlock()
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.number = st.LastInitialized
	if best != nil {
		h.parent = best.Hash
		if best.Timestamp > h.time {
			h.time = best.Timestamp
		}
	}
	return nil
}
