package engine

import (
	"errors"

	"github.com/rony4d/go-civic/consensus/ghost"
	"github.com/rony4d/go-civic/flyclient"
	"github.com/rony4d/go-civic/governance"
)

// Rejections returned by entry points. A call that returns one of these had
// no effect on consensus state or balances.
var (
	ErrDifficultyTooLow        = errors.New("claimed difficulty below current difficulty")
	ErrPowVerificationFailed   = errors.New("pow verification failed")
	ErrPohVerificationFailed   = errors.New("poh verification failed")
	ErrMaxSupplyExceeded       = errors.New("max supply exceeded")
	ErrGhostVerificationFailed = errors.New("ghost verification failed")

	ErrProposalNotFound         = governance.ErrProposalNotFound
	ErrProposalAlreadyFinalized = governance.ErrProposalFinalized
	ErrVotingPeriodEnded        = governance.ErrVotingPeriodEnded
	ErrInsufficientStake        = governance.ErrInsufficientStake
	ErrAlreadyVoted             = governance.ErrAlreadyVoted
	ErrNotVerifiedExpert        = governance.ErrNotVerifiedExpert
	ErrStakeAlreadyLocked       = governance.ErrStakeAlreadyLocked
	ErrLockPeriodNotFinished    = governance.ErrLockPeriodNotFinished
	ErrNoLock                   = governance.ErrNoLock
	ErrUnknownProposalKind      = governance.ErrUnknownKind
	ErrInvalidVotingPeriod      = governance.ErrVotingPeriod
	ErrTooManyProposals         = governance.ErrTooManyProposals

	ErrOrphanBlockNotFound         = ghost.ErrOrphanNotFound
	ErrOrphanBlockAlreadyRewarded  = ghost.ErrOrphanRewarded
	ErrFlyClientVerificationFailed = flyclient.ErrVerificationFailed

	ErrBadOrigin          = errors.New("bad origin")
	ErrNotInitialized     = errors.New("genesis not applied")
	ErrAlreadyInitialized = errors.New("genesis already applied")
	ErrBlockInitialized   = errors.New("block already initialized")
	ErrInvalidRules       = errors.New("invalid consensus rules")
	ErrRulesMismatch      = errors.New("genesis rules differ from engine rules")
)
