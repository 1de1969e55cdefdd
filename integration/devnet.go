package integration

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-civic/engine"
	"github.com/rony4d/go-civic/miner"
)

// Devnet sequences blocks in-process: per-block hook, mining, submission.
type Devnet struct {
	eng      *engine.Engine
	head     *Head
	miner    *miner.Miner
	coinbase common.Address
	clock    func() uint64

	log logrus.FieldLogger
}

// NewDevnet returns a sequencer paying rewards to coinbase.
func NewDevnet(eng *engine.Engine, head *Head, m *miner.Miner, coinbase common.Address, log logrus.FieldLogger) *Devnet {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Devnet{
		eng:      eng,
		head:     head,
		miner:    m,
		coinbase: coinbase,
		clock:    func() uint64 { return uint64(time.Now().Unix()) },
		log:      log.WithField("module", "devnet"),
	}
}

// SetClock replaces the wall clock used for block timestamps.
func (d *Devnet) SetClock(clock func() uint64) {
	d.clock = clock
}

// Coinbase returns the reward address.
func (d *Devnet) Coinbase() common.Address { return d.coinbase }

// Step produces one block and returns the hash it was accepted under.
func (d *Devnet) Step(ctx context.Context) (common.Hash, error) {
	var parent common.Hash
	best, err := d.eng.BestBlock()
	if err != nil {
		return common.Hash{}, err
	}
	if best != nil {
		parent = best.Hash
	}
	n := d.head.Advance(parent, d.clock())
	if err := d.eng.OnInitialize(); err != nil {
		return common.Hash{}, err
	}

	st, err := d.eng.State()
	if err != nil {
		return common.Hash{}, err
	}
	start := time.Now()
	sol, err := d.miner.Solve(ctx, miner.Template{
		Parent:     parent,
		Poh:        st.LastPohHash,
		Difficulty: st.CurrentDifficulty,
	})
	if err != nil {
		return common.Hash{}, err
	}
	h, err := d.eng.SubmitPowSolution(d.coinbase, sol.Nonce, sol.Digest, st.CurrentDifficulty, st.LastPohHash)
	if err != nil {
		return common.Hash{}, err
	}
	d.log.WithFields(logrus.Fields{
		"block":      n,
		"hash":       h.TerminalString(),
		"difficulty": st.CurrentDifficulty,
		"elapsed":    time.Since(start),
	}).Info("New block")
	return h, nil
}

// Run produces blocks until ctx is cancelled, or until count blocks were
// produced when count is positive.
func (d *Devnet) Run(ctx context.Context, count uint64) error {
	for i := uint64(0); count == 0 || i < count; i++ {
		if _, err := d.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}
