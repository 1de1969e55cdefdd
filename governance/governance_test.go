package governance

import (
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-civic/civic"
	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/ledger"
	"github.com/rony4d/go-civic/store"
	"github.com/rony4d/go-civic/utils/safe"
)

var (
	alice = common.Address{0xa1}
	bob   = common.Address{0xb0}
	carol = common.Address{0xc0}
	guru  = common.Address{0x99}
)

type fixture struct {
	gov    *Governor
	db     *store.Tx
	st     *inter.ChainState
	ledger *ledger.Memory
	events []inter.Event
}

func newFixture() *fixture {
	rules := civic.FakeNetRules()
	cur := ledger.NewMemory()
	cur.Endow(alice, safe.U64(5000))
	cur.Endow(bob, safe.U64(3000))
	cur.Endow(carol, safe.U64(500))
	return &fixture{
		gov:    New(rules, cur),
		db:     store.NewMemStore().Begin(),
		st:     &inter.ChainState{CurrentBlockReward: safe.U64(60), CurrentDifficulty: safe.U64(100), BlocksPerHalving: 10},
		ledger: cur,
	}
}

func (f *fixture) emit(e inter.Event) { f.events = append(f.events, e) }

func (f *fixture) names() []string {
	var out []string
	for _, e := range f.events {
		out = append(out, e.EventName())
	}
	return out
}

func TestPropose(t *testing.T) {
	t.Run("insufficient stake", func(t *testing.T) {
		f := newFixture()
		_, err := f.gov.Propose(f.db, f.st, 1, carol, inter.BlockRewardProposal, nil, safe.U64(1), 10, f.emit)
		require.ErrorIs(t, err, ErrInsufficientStake)
		require.True(t, f.ledger.ReservedBalance(carol).IsZero())
		require.Empty(t, f.events)
	})
	t.Run("bad kind and period", func(t *testing.T) {
		f := newFixture()
		_, err := f.gov.Propose(f.db, f.st, 1, alice, inter.ProposalKind(9), nil, safe.U64(1), 10, f.emit)
		require.ErrorIs(t, err, ErrUnknownKind)
		_, err = f.gov.Propose(f.db, f.st, 1, alice, inter.BlockRewardProposal, nil, safe.U64(1), 0, f.emit)
		require.ErrorIs(t, err, ErrVotingPeriod)
	})
	t.Run("created", func(t *testing.T) {
		require := require.New(t)
		f := newFixture()

		p, err := f.gov.Propose(f.db, f.st, 5, alice, inter.BlockRewardProposal, []byte("raise"), safe.U64(90), 10, f.emit)
		require.NoError(err)
		require.Equal(uint32(0), p.ID)
		require.Equal(uint32(1), f.st.NextProposalID)
		require.Equal(uint64(15), uint64(p.VotingEndsAt))
		require.Equal("1000", p.VotesFor.String())
		require.Equal("1000", f.ledger.ReservedBalance(alice).String())
		require.Equal([]string{"ProposalCreated", "VoteRegistered", "StakeLocked"}, f.names())

		voted, err := f.db.HasVote(p.ID, alice)
		require.NoError(err)
		require.True(voted)

		lock, err := f.db.GetLock(alice)
		require.NoError(err)
		require.Equal("1000", lock.Amount.String())
		require.Equal(uint64(15), uint64(lock.ReleaseBlock))
	})
	t.Run("voting end saturates", func(t *testing.T) {
		f := newFixture()
		p, err := f.gov.Propose(f.db, f.st, math.MaxUint32-5, alice, inter.BlockRewardProposal, nil, safe.U64(1), 10, f.emit)
		require.NoError(t, err)
		require.Equal(t, uint64(math.MaxUint32), uint64(p.VotingEndsAt))
	})
	t.Run("ids never wrap", func(t *testing.T) {
		require := require.New(t)
		f := newFixture()
		_, err := f.gov.Propose(f.db, f.st, 1, alice, inter.BlockRewardProposal, nil, safe.U64(1), 10, f.emit)
		require.NoError(err)

		f.st.NextProposalID = math.MaxUint32
		p, err := f.gov.Propose(f.db, f.st, 1, alice, inter.BlockRewardProposal, nil, safe.U64(2), 10, f.emit)
		require.NoError(err)
		require.Equal(uint32(math.MaxUint32), p.ID)
		require.Equal(uint32(math.MaxUint32), f.st.NextProposalID)

		_, err = f.gov.Propose(f.db, f.st, 1, alice, inter.BlockRewardProposal, nil, safe.U64(3), 10, f.emit)
		require.ErrorIs(err, ErrTooManyProposals)

		first, err := f.db.GetProposal(0)
		require.NoError(err)
		require.Equal("1", first.ProposedValue.String(), "proposal 0 is untouched")
	})
}

func TestCastVote(t *testing.T) {
	require := require.New(t)
	f := newFixture()
	p, err := f.gov.Propose(f.db, f.st, 1, alice, inter.BlockRewardProposal, nil, safe.U64(90), 10, f.emit)
	require.NoError(err)

	_, err = f.gov.CastVote(f.db, 2, bob, 42, true, safe.U64(1), nil, f.emit)
	require.ErrorIs(err, ErrProposalNotFound)

	_, err = f.gov.CastVote(f.db, 12, bob, p.ID, true, safe.U64(1), nil, f.emit)
	require.ErrorIs(err, ErrVotingPeriodEnded)

	_, err = f.gov.CastVote(f.db, 2, carol, p.ID, true, safe.U64(501), nil, f.emit)
	require.ErrorIs(err, ErrInsufficientStake)

	_, err = f.gov.CastVote(f.db, 2, alice, p.ID, false, safe.U64(1), nil, f.emit)
	require.ErrorIs(err, ErrAlreadyVoted)

	_, err = f.gov.CastVote(f.db, 2, bob, p.ID, false, safe.U64(1000), &guru, f.emit)
	require.ErrorIs(err, ErrNotVerifiedExpert)
	require.True(f.ledger.ReservedBalance(bob).IsZero(), "rejected votes reserve nothing")

	_, err = f.gov.VerifyExpert(f.db, guru, []byte("economics"), &Calibration{TotalVotes: 10, CorrectVotes: 8}, f.emit)
	require.NoError(err)

	v, err := f.gov.CastVote(f.db, 11, bob, p.ID, false, safe.U64(1000), &guru, f.emit)
	require.NoError(err)
	require.Equal(inter.PerbillFromPercent(80), v.Weight)

	v, err = f.gov.CastVote(f.db, 11, carol, p.ID, false, safe.U64(500), nil, f.emit)
	require.NoError(err)
	require.Equal(inter.PerbillOne, v.Weight)

	got, err := f.db.GetProposal(p.ID)
	require.NoError(err)
	require.Equal("1000", got.VotesFor.String())
	require.Equal("1300", got.VotesAgainst.String(), "800 delegated plus 500 direct")

	_, err = f.gov.CastVote(f.db, 11, bob, p.ID, true, safe.U64(1), nil, f.emit)
	require.ErrorIs(err, ErrAlreadyVoted)
}

func TestFinalize(t *testing.T) {
	t.Run("approved and executed after the period", func(t *testing.T) {
		require := require.New(t)
		f := newFixture()
		p, err := f.gov.Propose(f.db, f.st, 1, alice, inter.BlockRewardProposal, nil, safe.U64(90), 10, f.emit)
		require.NoError(err)

		require.NoError(f.gov.Finalize(f.db, f.st, p.VotingEndsAt, f.emit))
		got, _ := f.db.GetProposal(p.ID)
		require.Equal(inter.StatusActive, got.Status, "still open at the last voting block")

		f.events = nil
		require.NoError(f.gov.Finalize(f.db, f.st, p.VotingEndsAt+1, f.emit))
		got, _ = f.db.GetProposal(p.ID)
		require.Equal(inter.StatusExecuted, got.Status)
		require.Equal("90", f.st.CurrentBlockReward.String())
		require.Equal([]string{"ProposalApproved", "ProposalExecuted"}, f.names())

		ids, err := f.db.ActiveProposals()
		require.NoError(err)
		require.Empty(ids)

		_, err = f.gov.CastVote(f.db, p.VotingEndsAt, bob, p.ID, true, safe.U64(1), nil, f.emit)
		require.ErrorIs(err, ErrProposalFinalized)
	})
	t.Run("rejected", func(t *testing.T) {
		require := require.New(t)
		f := newFixture()
		p, err := f.gov.Propose(f.db, f.st, 1, alice, inter.DifficultyProposal, nil, safe.U64(5), 10, f.emit)
		require.NoError(err)
		_, err = f.gov.CastVote(f.db, 2, bob, p.ID, false, safe.U64(1000), nil, f.emit)
		require.NoError(err)

		f.events = nil
		require.NoError(f.gov.Finalize(f.db, f.st, 20, f.emit))
		got, _ := f.db.GetProposal(p.ID)
		require.Equal(inter.StatusRejected, got.Status, "a tie is not a majority")
		require.Equal("100", f.st.CurrentDifficulty.String())
		require.Equal([]string{"ProposalRejected"}, f.names())
	})
	t.Run("parameter kinds", func(t *testing.T) {
		tests := []struct {
			kind  inter.ProposalKind
			value uint64
			check func(t *testing.T, st *inter.ChainState, names []string)
		}{
			{inter.HalvingPeriodProposal, 77, func(t *testing.T, st *inter.ChainState, _ []string) {
				require.Equal(t, uint64(77), st.BlocksPerHalving)
			}},
			{inter.DifficultyProposal, 0, func(t *testing.T, st *inter.ChainState, names []string) {
				require.Equal(t, "1", st.CurrentDifficulty.String(), "floored at the minimum")
				require.Contains(t, names, "DifficultyAdjusted")
			}},
			{inter.ProtocolUpgradeProposal, 2, func(t *testing.T, _ *inter.ChainState, names []string) {
				require.Contains(t, names, "ProtocolUpgradeScheduled")
			}},
		}
		for _, tt := range tests {
			t.Run(tt.kind.String(), func(t *testing.T) {
				f := newFixture()
				_, err := f.gov.Propose(f.db, f.st, 1, alice, tt.kind, nil, safe.U64(tt.value), 1, f.emit)
				require.NoError(t, err)

				active, err := f.gov.HasActive(f.db, tt.kind)
				require.NoError(t, err)
				require.True(t, active)

				require.NoError(t, f.gov.Finalize(f.db, f.st, 3, f.emit))
				tt.check(t, f.st, f.names())

				active, err = f.gov.HasActive(f.db, tt.kind)
				require.NoError(t, err)
				require.False(t, active)
			})
		}
	})
}

// staleIndex reports proposals as active regardless of their stored status.
type staleIndex struct {
	*store.Tx
	ids []uint32
}

func (s staleIndex) ActiveProposals() ([]uint32, error) { return s.ids, nil }

func TestFinalize_IllegalTransition(t *testing.T) {
	require := require.New(t)
	f := newFixture()
	require.NoError(f.db.SetProposal(&inter.Proposal{
		ID:           7,
		VotesFor:     safe.U64(10),
		VotesAgainst: safe.Zero(),
		Status:       inter.StatusExecuted,
	}))

	err := f.gov.Finalize(staleIndex{Tx: f.db, ids: []uint32{7}}, f.st, 100, f.emit)
	require.ErrorIs(err, ErrInvalidTransition)
	require.Empty(f.events)
	require.Equal("60", f.st.CurrentBlockReward.String())

	got, err := f.db.GetProposal(7)
	require.NoError(err)
	require.Equal(inter.StatusExecuted, got.Status)
}

func TestLocks(t *testing.T) {
	require := require.New(t)
	f := newFixture()

	require.ErrorIs(f.gov.LockStake(f.db, carol, safe.U64(501), 10, f.emit), ErrInsufficientStake)
	require.NoError(f.gov.LockStake(f.db, carol, safe.U64(200), 10, f.emit))
	require.Equal("300", f.ledger.FreeBalance(carol).String())
	require.ErrorIs(f.gov.LockStake(f.db, carol, safe.U64(1), 20, f.emit), ErrStakeAlreadyLocked)

	_, err := f.gov.UnlockStake(f.db, 9, carol, f.emit)
	require.ErrorIs(err, ErrLockPeriodNotFinished)
	_, err = f.gov.UnlockStake(f.db, 9, bob, f.emit)
	require.ErrorIs(err, ErrNoLock)

	released, err := f.gov.UnlockStake(f.db, 10, carol, f.emit)
	require.NoError(err)
	require.Equal("200", released.String())
	require.Equal("500", f.ledger.FreeBalance(carol).String())

	lock, err := f.db.GetLock(carol)
	require.NoError(err)
	require.Nil(lock)
}

func TestLocks_Accumulate(t *testing.T) {
	require := require.New(t)
	f := newFixture()

	p1, err := f.gov.Propose(f.db, f.st, 1, alice, inter.BlockRewardProposal, nil, safe.U64(1), 30, f.emit)
	require.NoError(err)
	_, err = f.gov.Propose(f.db, f.st, 2, alice, inter.BlockRewardProposal, nil, safe.U64(1), 5, f.emit)
	require.NoError(err)

	lock, err := f.db.GetLock(alice)
	require.NoError(err)
	require.Equal("2000", lock.Amount.String())
	require.Equal(p1.VotingEndsAt, lock.ReleaseBlock, "release is the latest voting end")
}

func TestCalibration_Accuracy(t *testing.T) {
	var none *Calibration
	require.Equal(t, inter.PerbillOne, none.Accuracy())
	require.Equal(t, inter.PerbillOne, (&Calibration{}).Accuracy())
	require.Equal(t, inter.PerbillFromPercent(25), (&Calibration{TotalVotes: 4, CorrectVotes: 1}).Accuracy())
}
