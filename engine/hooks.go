package engine

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-civic/consensus/ghost"
	"github.com/rony4d/go-civic/consensus/poh"
	"github.com/rony4d/go-civic/consensus/pow"
	"github.com/rony4d/go-civic/consensus/reward"
	"github.com/rony4d/go-civic/flyclient"
	"github.com/rony4d/go-civic/inter"
)

// OnInitialize runs the per-block hook for the chain's current block, before
// any solution for it is submitted. In order it advances PoH, finalizes
// proposals whose voting ended, halves the reward when due, retargets the
// difficulty at window boundaries and refreshes the FlyClient commitment at
// interval boundaries.
func (e *Engine) OnInitialize() error {
	return e.apply("on_initialize", func(t *txn) error {
		n := t.block
		if n <= t.st.LastInitialized {
			return ErrBlockInitialized
		}
		t.st.LastInitialized = n

		poh.Advance(t.st, e.chain.ParentHash())

		if err := e.gov.Finalize(t.db, t.st, n, t.emit); err != nil {
			return err
		}

		halvingVoted, err := e.gov.HasActive(t.db, inter.HalvingPeriodProposal)
		if err != nil {
			return err
		}
		if !halvingVoted && reward.HalvingDue(t.st, n) {
			r := reward.Halve(t.st, n)
			t.emit(inter.HalvingOccurred{Block: n, NewReward: r})
			e.log.WithFields(logrus.Fields{"block": n, "reward": r}).Info("Block reward halved")
		}

		window := e.rules.Difficulty.RetargetWindow
		if n%window == 0 {
			e.retarget(t)
		}

		if n%e.rules.FlyClient.Interval == 0 {
			headers, err := ghost.Ancestors(t.db, t.st.BestBlock, e.rules.FlyClient.Window)
			if err != nil {
				return err
			}
			t.st.MerkleRoot = flyclient.Root(headers)
			t.st.MerkleRootBlock = n
			t.st.MerkleRootHead = t.st.BestBlock
			t.emit(inter.MerkleRootUpdated{Block: n, Root: t.st.MerkleRoot})
		}
		return nil
	})
}

func (e *Engine) retarget(t *txn) {
	now := e.chain.Timestamp()
	var actual uint64
	if now > t.st.WindowStartTime {
		actual = now - t.st.WindowStartTime
	}
	d := e.rules.Difficulty
	expected, overflow := math.SafeMul(uint64(d.RetargetWindow), d.TargetBlockTime)
	if overflow {
		expected = math.MaxUint64
	}

	old := t.st.CurrentDifficulty
	t.st.CurrentDifficulty = pow.Retarget(old, expected, actual, d.MaxRetargetFactor, d.Min)
	t.st.WindowStartTime = now

	t.emit(inter.DifficultyAdjusted{Block: t.block, Old: old, New: t.st.CurrentDifficulty})
	e.log.WithFields(logrus.Fields{
		"block":    t.block,
		"old":      old,
		"new":      t.st.CurrentDifficulty,
		"expected": expected,
		"actual":   actual,
	}).Info("Difficulty retargeted")
}
