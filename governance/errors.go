package governance

import "errors"

var (
	ErrProposalNotFound      = errors.New("proposal not found")
	ErrProposalFinalized     = errors.New("proposal already finalized")
	ErrVotingPeriodEnded     = errors.New("voting period ended")
	ErrInsufficientStake     = errors.New("insufficient stake for voting")
	ErrAlreadyVoted          = errors.New("already voted")
	ErrNotVerifiedExpert     = errors.New("delegate is not a verified expert")
	ErrStakeAlreadyLocked    = errors.New("stake already locked")
	ErrLockPeriodNotFinished = errors.New("lock period not finished")
	ErrNoLock                = errors.New("no locked stake")
	ErrUnknownKind           = errors.New("unknown proposal kind")
	ErrVotingPeriod          = errors.New("voting period out of bounds")
	ErrTooManyProposals      = errors.New("proposal ids exhausted")
	ErrInvalidTransition     = errors.New("invalid proposal status transition")
)
