package engine

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/consensus/ghost"
	"github.com/rony4d/go-civic/flyclient"
	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/store"
)

// State returns a copy of the consensus singletons.
func (e *Engine) State() (inter.ChainState, error) {
	var st inter.ChainState
	err := e.view(func(tx *store.Tx, s *inter.ChainState) error {
		st = s.Copy()
		return nil
	})
	return st, err
}

// BestBlock returns the head of the heaviest chain, or nil before the first
// accepted solution.
func (e *Engine) BestBlock() (*inter.BlockInfo, error) {
	var b *inter.BlockInfo
	err := e.view(func(tx *store.Tx, st *inter.ChainState) error {
		if st.BestBlock == (common.Hash{}) {
			return nil
		}
		var err error
		b, err = tx.GetBlock(st.BestBlock)
		return err
	})
	return b, err
}

// Block returns a block of the fork-choice tree.
func (e *Engine) Block(h common.Hash) (b *inter.BlockInfo, err error) {
	err = e.read(func(tx *store.Tx) error {
		b, err = tx.GetBlock(h)
		return err
	})
	return
}

// Orphan returns an orphan record.
func (e *Engine) Orphan(h common.Hash) (o *inter.OrphanBlock, err error) {
	err = e.read(func(tx *store.Tx) error {
		o, err = tx.GetOrphan(h)
		return err
	})
	return
}

// Proposal returns a proposal by ID.
func (e *Engine) Proposal(id uint32) (p *inter.Proposal, err error) {
	err = e.read(func(tx *store.Tx) error {
		p, err = tx.GetProposal(id)
		return err
	})
	return
}

// ActiveProposals returns the IDs of proposals still open for voting.
func (e *Engine) ActiveProposals() (ids []uint32, err error) {
	err = e.read(func(tx *store.Tx) error {
		ids, err = tx.ActiveProposals()
		return err
	})
	return
}

// VoteOf returns the vote of voter on a proposal.
func (e *Engine) VoteOf(id uint32, voter common.Address) (v *inter.Vote, err error) {
	err = e.read(func(tx *store.Tx) error {
		v, err = tx.GetVote(id, voter)
		return err
	})
	return
}

// Votes returns every vote recorded on a proposal, ordered by voter.
func (e *Engine) Votes(id uint32) (vv []*inter.Vote, err error) {
	err = e.read(func(tx *store.Tx) error {
		return tx.ForEachVote(id, func(v *inter.Vote) bool {
			vv = append(vv, v)
			return true
		})
	})
	return
}

// Expert returns a verified expert.
func (e *Engine) Expert(a common.Address) (x *inter.VerifiedExpert, err error) {
	err = e.read(func(tx *store.Tx) error {
		x, err = tx.GetExpert(a)
		return err
	})
	return
}

// Lock returns the governance lock of an account.
func (e *Engine) Lock(a common.Address) (l *inter.LockedStake, err error) {
	err = e.read(func(tx *store.Tx) error {
		l, err = tx.GetLock(a)
		return err
	})
	return
}

// CommittedHeaders returns the headers the current Merkle root commits to,
// oldest first. Blocks accepted after the commitment are not included.
func (e *Engine) CommittedHeaders() (flyclient.Headers, error) {
	var hh flyclient.Headers
	err := e.view(func(tx *store.Tx, st *inter.ChainState) error {
		var err error
		hh, err = ghost.Ancestors(tx, st.MerkleRootHead, e.rules.FlyClient.Window)
		return err
	})
	return hh, err
}

func (e *Engine) read(fn func(tx *store.Tx) error) error {
	if e.rulesErr != nil {
		return e.rulesErr
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.View(fn)
}

func (e *Engine) view(fn func(tx *store.Tx, st *inter.ChainState) error) error {
	if e.rulesErr != nil {
		return e.rulesErr
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.View(func(tx *store.Tx) error {
		st, err := tx.GetChainState()
		if err != nil {
			return err
		}
		if st == nil {
			return ErrNotInitialized
		}
		return fn(tx, st)
	})
}
