package engine

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-civic/consensus/ghost"
	"github.com/rony4d/go-civic/consensus/reward"
	"github.com/rony4d/go-civic/governance"
	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/utils/safe"
)

// CreateProposal opens a proposal to change a consensus parameter at the end
// of votingPeriod blocks. It returns the proposal ID.
func (e *Engine) CreateProposal(proposer common.Address, kind inter.ProposalKind, description []byte, value safe.Int, votingPeriod idx.Block) (uint32, error) {
	var id uint32
	err := e.apply("create_proposal", func(t *txn) error {
		p, err := e.gov.Propose(t.db, t.st, t.block, proposer, kind, description, value, votingPeriod, t.emit)
		if err != nil {
			return err
		}
		id = p.ID
		return nil
	})
	return id, err
}

// Vote registers a stake-backed vote. When delegatedTo names a verified
// expert, the stake is weighted by the expert's accuracy.
func (e *Engine) Vote(voter common.Address, proposalID uint32, inFavor bool, stake safe.Int, delegatedTo *common.Address) error {
	return e.apply("vote", func(t *txn) error {
		_, err := e.gov.CastVote(t.db, t.block, voter, proposalID, inFavor, stake, delegatedTo, t.emit)
		return err
	})
}

// VerifyExpert registers or updates a delegation target. A nil calibration
// sets the accuracy to 100%.
func (e *Engine) VerifyExpert(origin Origin, expert common.Address, expertise []byte, calib *governance.Calibration) error {
	if !origin.IsRoot() {
		return ErrBadOrigin
	}
	return e.apply("verify_expert", func(t *txn) error {
		_, err := e.gov.VerifyExpert(t.db, expert, expertise, calib, t.emit)
		return err
	})
}

// LockStake reserves amount for governance until release.
func (e *Engine) LockStake(account common.Address, amount safe.Int, release idx.Block) error {
	return e.apply("lock_stake", func(t *txn) error {
		return e.gov.LockStake(t.db, account, amount, release, t.emit)
	})
}

// UnlockStake releases the account's governance lock once it expired and
// returns the amount returned to free balance.
func (e *Engine) UnlockStake(account common.Address) (safe.Int, error) {
	var released safe.Int
	err := e.apply("unlock_stake", func(t *txn) error {
		var err error
		released, err = e.gov.UnlockStake(t.db, t.block, account, t.emit)
		return err
	})
	return released, err
}

// ValidateOrphanBlock records validator's attestation of an orphan block.
// The attestation that reaches the threshold pays every recorded validator
// an equal share of OrphanRewardPercent of the current block reward.
func (e *Engine) ValidateOrphanBlock(validator common.Address, blockHash common.Hash) error {
	return e.apply("validate_orphan_block", func(t *txn) error {
		eco := e.rules.Economy
		o, payNow, err := ghost.Attest(t.db, validator, blockHash, eco.OrphanValidatorThreshold)
		if err != nil {
			return err
		}
		if !payNow {
			return nil
		}
		share := reward.OrphanShare(t.st.CurrentBlockReward, eco.OrphanRewardPercent, len(o.Validators))
		for _, v := range o.Validators {
			paid := e.pay(t, v, share)
			if paid.IsZero() {
				continue
			}
			t.emit(inter.OrphanBlockRewardPaid{Validator: v, Amount: paid, BlockHash: blockHash})
		}
		e.log.WithFields(logrus.Fields{
			"hash":       blockHash.TerminalString(),
			"validators": len(o.Validators),
			"share":      share,
		}).Info("Orphan block rewarded")
		return nil
	})
}

// ApplyPenalty slashes up to amount from account. The notice records the
// requested amount whatever the ledger could actually remove.
func (e *Engine) ApplyPenalty(origin Origin, account common.Address, amount safe.Int, reason []byte) error {
	if !origin.IsRoot() {
		return ErrBadOrigin
	}
	return e.apply("apply_penalty", func(t *txn) error {
		slashed := e.ledger.Slash(account, amount)
		t.emit(inter.PenaltyApplied{Account: account, Amount: amount, Reason: reason})
		e.log.WithFields(logrus.Fields{
			"account":   account,
			"requested": amount,
			"slashed":   slashed,
			"reason":    string(reason),
		}).Warn("Penalty applied")
		return nil
	})
}
