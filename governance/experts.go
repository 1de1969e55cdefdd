package governance

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/utils/safe"
)

// Calibration carries an expert's voting track record.
type Calibration struct {
	TotalVotes   uint32
	CorrectVotes uint32
}

// Accuracy returns CorrectVotes/TotalVotes, or 100% without history.
func (c *Calibration) Accuracy() inter.Perbill {
	if c == nil || c.TotalVotes == 0 {
		return inter.PerbillOne
	}
	return inter.PerbillFromRational(uint64(c.CorrectVotes), uint64(c.TotalVotes))
}

// VerifyExpert registers or updates a delegation target.
func (g *Governor) VerifyExpert(db Backend, account common.Address, expertise []byte, calib *Calibration, emit Emit) (*inter.VerifiedExpert, error) {
	e := &inter.VerifiedExpert{
		Account:   account,
		Expertise: expertise,
		Accuracy:  calib.Accuracy(),
	}
	if calib != nil {
		e.TotalVotes = calib.TotalVotes
		e.CorrectVotes = calib.CorrectVotes
	}
	if err := db.SetExpert(e); err != nil {
		return nil, err
	}
	emit(inter.ExpertVerified{Account: account, Expertise: expertise})
	return e, nil
}

// LockStake reserves amount until release for an account without a lock.
func (g *Governor) LockStake(db Backend, account common.Address, amount safe.Int, release idx.Block, emit Emit) error {
	existing, err := db.GetLock(account)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrStakeAlreadyLocked
	}
	if g.ledger.FreeBalance(account).Lt(amount) {
		return ErrInsufficientStake
	}
	lock := &inter.LockedStake{Amount: amount, ReleaseBlock: release}
	if err := db.SetLock(account, lock); err != nil {
		return err
	}
	if err := g.ledger.Reserve(account, amount); err != nil {
		return ErrInsufficientStake
	}
	emit(inter.StakeLocked{Account: account, Amount: amount, ReleaseBlock: release})
	return nil
}

// UnlockStake releases an account's lock once its release block is reached.
func (g *Governor) UnlockStake(db Backend, current idx.Block, account common.Address, emit Emit) (safe.Int, error) {
	lock, err := db.GetLock(account)
	if err != nil {
		return safe.Zero(), err
	}
	if lock == nil {
		return safe.Zero(), ErrNoLock
	}
	if current < lock.ReleaseBlock {
		return safe.Zero(), ErrLockPeriodNotFinished
	}
	if err := db.DeleteLock(account); err != nil {
		return safe.Zero(), err
	}
	rest := g.ledger.Unreserve(account, lock.Amount)
	released := lock.Amount.Sub(rest)
	emit(inter.StakeUnlocked{Account: account, Amount: released})
	return released, nil
}
