// Package governance implements stake-weighted proposals over consensus
// parameters, vote delegation to verified experts and governance stake locks.
package governance

import (
	"fmt"
	"math"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/civic"
	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/ledger"
	"github.com/rony4d/go-civic/utils/safe"
)

// Backend is the governance record storage.
type Backend interface {
	GetProposal(id uint32) (*inter.Proposal, error)
	SetProposal(p *inter.Proposal) error
	ActiveProposals() ([]uint32, error)
	HasVote(id uint32, voter common.Address) (bool, error)
	SetVote(v *inter.Vote) error
	GetExpert(a common.Address) (*inter.VerifiedExpert, error)
	SetExpert(e *inter.VerifiedExpert) error
	GetLock(a common.Address) (*inter.LockedStake, error)
	SetLock(a common.Address, l *inter.LockedStake) error
	DeleteLock(a common.Address) error
}

// Emit receives notices produced by governance calls.
type Emit func(inter.Event)

// Governor applies governance operations. Ledger calls are always the last
// fallible step of an operation, so a rejected call never touches balances.
type Governor struct {
	rules         civic.GovernanceRules
	minDifficulty safe.Int
	ledger        ledger.Currency
}

// New returns a Governor.
func New(rules civic.Rules, cur ledger.Currency) *Governor {
	return &Governor{
		rules:         rules.Governance,
		minDifficulty: rules.Difficulty.Min,
		ledger:        cur,
	}
}

// Propose creates a proposal, records the proposer's own in-favor vote backed
// by the minimum proposal stake and reserves that stake.
func (g *Governor) Propose(db Backend, st *inter.ChainState, current idx.Block, proposer common.Address, kind inter.ProposalKind, description []byte, value safe.Int, period idx.Block, emit Emit) (*inter.Proposal, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	if period < g.rules.MinVotingPeriod || period > g.rules.MaxVotingPeriod {
		return nil, ErrVotingPeriod
	}
	stake := g.rules.MinProposalStake
	if g.ledger.FreeBalance(proposer).Lt(stake) {
		return nil, ErrInsufficientStake
	}
	// IDs saturate at MaxUint32; the last one is used at most once.
	taken, err := db.GetProposal(st.NextProposalID)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, ErrTooManyProposals
	}
	end := current + period
	if end < current {
		end = math.MaxUint32
	}

	p := &inter.Proposal{
		ID:            st.NextProposalID,
		Proposer:      proposer,
		Kind:          kind,
		Description:   description,
		ProposedValue: value,
		VotingEndsAt:  end,
		VotesFor:      stake,
		VotesAgainst:  safe.Zero(),
		Status:        inter.StatusActive,
	}
	if st.NextProposalID < math.MaxUint32 {
		st.NextProposalID++
	}

	vote := &inter.Vote{
		Voter:      proposer,
		ProposalID: p.ID,
		InFavor:    true,
		Stake:      stake,
		Weight:     inter.PerbillOne,
	}
	if err := db.SetProposal(p); err != nil {
		return nil, err
	}
	if err := db.SetVote(vote); err != nil {
		return nil, err
	}
	lock, err := g.extendLock(db, proposer, stake, p.VotingEndsAt)
	if err != nil {
		return nil, err
	}
	if err := g.ledger.Reserve(proposer, stake); err != nil {
		return nil, ErrInsufficientStake
	}

	emit(inter.ProposalCreated{ID: p.ID, Proposer: proposer, Kind: kind})
	emit(inter.VoteRegistered{ProposalID: p.ID, Voter: proposer, InFavor: true, Stake: stake})
	emit(inter.StakeLocked{Account: proposer, Amount: lock.Amount, ReleaseBlock: lock.ReleaseBlock})
	return p, nil
}

// CastVote records a vote. A delegated vote is weighted by the expert's
// accuracy; a direct vote counts in full.
func (g *Governor) CastVote(db Backend, current idx.Block, voter common.Address, id uint32, inFavor bool, stake safe.Int, delegatedTo *common.Address, emit Emit) (*inter.Vote, error) {
	p, err := db.GetProposal(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProposalNotFound
	}
	if p.Status != inter.StatusActive {
		return nil, ErrProposalFinalized
	}
	if current > p.VotingEndsAt {
		return nil, ErrVotingPeriodEnded
	}
	if g.ledger.FreeBalance(voter).Lt(stake) {
		return nil, ErrInsufficientStake
	}
	voted, err := db.HasVote(id, voter)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	weight := inter.PerbillOne
	if delegatedTo != nil {
		expert, err := db.GetExpert(*delegatedTo)
		if err != nil {
			return nil, err
		}
		if expert == nil {
			return nil, ErrNotVerifiedExpert
		}
		weight = expert.Accuracy
	}

	v := &inter.Vote{
		Voter:       voter,
		ProposalID:  id,
		InFavor:     inFavor,
		Stake:       stake,
		DelegatedTo: delegatedTo,
		Weight:      weight,
	}
	if inFavor {
		p.VotesFor = p.VotesFor.Add(v.Weighted())
	} else {
		p.VotesAgainst = p.VotesAgainst.Add(v.Weighted())
	}
	if err := db.SetVote(v); err != nil {
		return nil, err
	}
	if err := db.SetProposal(p); err != nil {
		return nil, err
	}
	lock, err := g.extendLock(db, voter, stake, p.VotingEndsAt)
	if err != nil {
		return nil, err
	}
	if err := g.ledger.Reserve(voter, stake); err != nil {
		return nil, ErrInsufficientStake
	}

	emit(inter.VoteRegistered{ProposalID: id, Voter: voter, InFavor: inFavor, Stake: stake})
	emit(inter.StakeLocked{Account: voter, Amount: lock.Amount, ReleaseBlock: lock.ReleaseBlock})
	return v, nil
}

// extendLock adds amount to the account's lock and pushes its release block
// out to at least release.
func (g *Governor) extendLock(db Backend, who common.Address, amount safe.Int, release idx.Block) (*inter.LockedStake, error) {
	lock, err := db.GetLock(who)
	if err != nil {
		return nil, err
	}
	if lock == nil {
		lock = &inter.LockedStake{}
	}
	lock.Amount = lock.Amount.Add(amount)
	if release > lock.ReleaseBlock {
		lock.ReleaseBlock = release
	}
	return lock, db.SetLock(who, lock)
}

// HasActive reports whether an Active proposal of the given kind exists.
func (g *Governor) HasActive(db Backend, kind inter.ProposalKind) (bool, error) {
	ids, err := db.ActiveProposals()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		p, err := db.GetProposal(id)
		if err != nil {
			return false, err
		}
		if p != nil && p.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

// Finalize closes every Active proposal whose voting period ended before
// current. Approved proposals are executed immediately.
func (g *Governor) Finalize(db Backend, st *inter.ChainState, current idx.Block, emit Emit) error {
	ids, err := db.ActiveProposals()
	if err != nil {
		return err
	}
	for _, id := range ids {
		p, err := db.GetProposal(id)
		if err != nil {
			return err
		}
		if p == nil || current <= p.VotingEndsAt {
			continue
		}
		if p.VotesFor.Gt(p.VotesAgainst) {
			if err := transition(p, inter.StatusApproved); err != nil {
				return err
			}
			emit(inter.ProposalApproved{ID: p.ID, VotesFor: p.VotesFor, VotesAgainst: p.VotesAgainst})
			g.execute(st, current, p, emit)
			if err := transition(p, inter.StatusExecuted); err != nil {
				return err
			}
			emit(inter.ProposalExecuted{ID: p.ID, Kind: p.Kind, Value: p.ProposedValue})
		} else {
			if err := transition(p, inter.StatusRejected); err != nil {
				return err
			}
			emit(inter.ProposalRejected{ID: p.ID, VotesFor: p.VotesFor, VotesAgainst: p.VotesAgainst})
		}
		if err := db.SetProposal(p); err != nil {
			return err
		}
	}
	return nil
}

func (g *Governor) execute(st *inter.ChainState, current idx.Block, p *inter.Proposal, emit Emit) {
	switch p.Kind {
	case inter.BlockRewardProposal:
		st.CurrentBlockReward = p.ProposedValue
	case inter.HalvingPeriodProposal:
		st.BlocksPerHalving = p.ProposedValue.Uint64()
	case inter.DifficultyProposal:
		old := st.CurrentDifficulty
		st.CurrentDifficulty = safe.MaxOf(p.ProposedValue, g.minDifficulty)
		emit(inter.DifficultyAdjusted{Block: current, Old: old, New: st.CurrentDifficulty})
	case inter.ProtocolUpgradeProposal:
		emit(inter.ProtocolUpgradeScheduled{ProposalID: p.ID, Version: p.ProposedValue})
	}
}

func transition(p *inter.Proposal, next inter.ProposalStatus) error {
	if !p.Status.CanTransition(next) {
		return fmt.Errorf("%w: proposal %d %s -> %s", ErrInvalidTransition, p.ID, p.Status, next)
	}
	p.Status = next
	return nil
}
