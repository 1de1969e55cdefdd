package store

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/utils/fast"
)

func voteKey(id uint32, voter common.Address) []byte {
	w := fast.NewWriter(make([]byte, 0, 4+common.AddressLength))
	w.WriteUint32(id)
	w.Write(voter.Bytes())
	return w.Bytes()
}

// GetProposal returns a proposal, or nil if unknown.
func (tx *Tx) GetProposal(id uint32) (*inter.Proposal, error) {
	var p inter.Proposal
	ok, err := tx.getRLP(tx.table.Proposals, bigendian.Uint32ToBytes(id), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// SetProposal stages a proposal and keeps the active index in sync with its
// status.
func (tx *Tx) SetProposal(p *inter.Proposal) error {
	key := bigendian.Uint32ToBytes(p.ID)
	if err := tx.setRLP(tx.table.Proposals, key, p); err != nil {
		return err
	}
	if p.Status == inter.StatusActive {
		return tx.table.Active.Put(key, []byte{1})
	}
	return tx.table.Active.Delete(key)
}

// ActiveProposals returns the IDs of Active proposals in ascending order.
func (tx *Tx) ActiveProposals() ([]uint32, error) {
	it := tx.table.Active.NewIterator(nil, nil)
	defer it.Release()

	var ids []uint32
	for it.Next() {
		ids = append(ids, bigendian.BytesToUint32(it.Key()))
	}
	return ids, it.Error()
}

// GetVote returns the vote of voter on a proposal, or nil.
func (tx *Tx) GetVote(id uint32, voter common.Address) (*inter.Vote, error) {
	var v inter.Vote
	ok, err := tx.getRLP(tx.table.Votes, voteKey(id, voter), &v)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// HasVote reports whether voter already voted on a proposal.
func (tx *Tx) HasVote(id uint32, voter common.Address) (bool, error) {
	return tx.table.Votes.Has(voteKey(id, voter))
}

// SetVote stages a vote.
func (tx *Tx) SetVote(v *inter.Vote) error {
	return tx.setRLP(tx.table.Votes, voteKey(v.ProposalID, v.Voter), v)
}

// ForEachVote calls fn for every vote on a proposal, ordered by voter.
func (tx *Tx) ForEachVote(id uint32, fn func(v *inter.Vote) bool) error {
	it := tx.table.Votes.NewIterator(bigendian.Uint32ToBytes(id), nil)
	defer it.Release()

	for it.Next() {
		r := fast.NewReader(it.Key())
		if r.ReadUint32() != id {
			continue
		}
		var v inter.Vote
		if err := rlp.DecodeBytes(it.Value(), &v); err != nil {
			return err
		}
		if !fn(&v) {
			break
		}
	}
	return it.Error()
}

// GetExpert returns a verified expert, or nil.
func (tx *Tx) GetExpert(a common.Address) (*inter.VerifiedExpert, error) {
	var e inter.VerifiedExpert
	ok, err := tx.getRLP(tx.table.Experts, a.Bytes(), &e)
	if err != nil || !ok {
		return nil, err
	}
	return &e, nil
}

// SetExpert stages a verified expert.
func (tx *Tx) SetExpert(e *inter.VerifiedExpert) error {
	return tx.setRLP(tx.table.Experts, e.Account.Bytes(), e)
}

// GetLock returns the governance lock of an account, or nil.
func (tx *Tx) GetLock(a common.Address) (*inter.LockedStake, error) {
	var l inter.LockedStake
	ok, err := tx.getRLP(tx.table.Locks, a.Bytes(), &l)
	if err != nil || !ok {
		return nil, err
	}
	return &l, nil
}

// SetLock stages a lock.
func (tx *Tx) SetLock(a common.Address, l *inter.LockedStake) error {
	return tx.setRLP(tx.table.Locks, a.Bytes(), l)
}

// DeleteLock removes a lock.
func (tx *Tx) DeleteLock(a common.Address) error {
	return tx.table.Locks.Delete(a.Bytes())
}
