package engine

import (
	"errors"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-civic/consensus/ghost"
	"github.com/rony4d/go-civic/consensus/poh"
	"github.com/rony4d/go-civic/consensus/pow"
	"github.com/rony4d/go-civic/consensus/reward"
	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/utils/safe"
)

// SubmitPowSolution verifies a mined solution for the current block, pays the
// block reward to miner and inserts the block into the fork-choice tree. It
// returns the hash the block was recorded under.
func (e *Engine) SubmitPowSolution(miner common.Address, nonce []byte, digest common.Hash, claimed safe.Int, pohHash hash.Hash) (common.Hash, error) {
	var blockHash common.Hash
	err := e.apply("submit_pow_solution", func(t *txn) error {
		if claimed.Lt(t.st.CurrentDifficulty) {
			return ErrDifficultyTooLow
		}
		if !poh.Verify(t.st, pohHash) {
			return ErrPohVerificationFailed
		}
		parent := e.chain.ParentHash()
		if !pow.Verify(e.hasher, parent, nonce, digest, claimed, pohHash) {
			return ErrPowVerificationFailed
		}

		info := inter.BlockInfo{
			Hash:       inter.SealHash(parent, t.block, miner, nonce, digest, pohHash, claimed),
			ParentHash: parent,
			Number:     t.block,
			Timestamp:  e.chain.Timestamp(),
			Author:     miner,
			Difficulty: claimed,
			PohHash:    pohHash,
			Nonce:      common.CopyBytes(nonce),
			Digest:     digest,
		}
		res, err := ghost.Insert(t.db, t.st, info)
		if errors.Is(err, ghost.ErrKnownBlock) {
			return ErrGhostVerificationFailed
		}
		if err != nil {
			return err
		}
		blockHash = res.Block.Hash

		// all checks passed, ledger effects follow
		amount := e.issue(t, miner)
		if !amount.IsZero() {
			t.emit(inter.RewardPaid{Miner: miner, Amount: amount, Block: t.block})
		}
		t.emit(inter.BlockAddedToGhost{BlockHash: res.Block.Hash, TotalDifficulty: res.Block.TotalDifficulty})
		if res.BecameBest {
			t.emit(inter.BestBlockChanged{BlockHash: res.Block.Hash, TotalDifficulty: res.Block.TotalDifficulty})
		}

		e.log.WithFields(logrus.Fields{
			"block":  t.block,
			"hash":   res.Block.Hash.TerminalString(),
			"miner":  miner,
			"td":     res.Block.TotalDifficulty,
			"best":   res.BecameBest,
			"reward": amount,
		}).Debug("Accepted PoW solution")
		return nil
	})
	if err != nil {
		return common.Hash{}, err
	}
	return blockHash, nil
}

// issue pays the current block reward to who, truncated to the supply cap.
func (e *Engine) issue(t *txn, who common.Address) safe.Int {
	return e.pay(t, who, reward.Calculate(t.st, e.rules.Economy.MaxSupply))
}

// pay mints amount, truncated to the supply cap, and credits it to who.
func (e *Engine) pay(t *txn, who common.Address, amount safe.Int) safe.Int {
	amount = reward.Truncate(t.st, amount, e.rules.Economy.MaxSupply)
	if amount.IsZero() {
		return amount
	}
	e.ledger.Issue(amount)
	e.ledger.Deposit(who, amount)
	if reward.Record(t.st, amount, e.rules.Economy.MaxSupply) {
		t.emit(inter.MaxSupplyReached{Block: t.block, TotalSupply: t.st.TotalSupply})
		e.log.WithField("supply", t.st.TotalSupply).Warn("Max supply reached")
	}
	return amount
}
