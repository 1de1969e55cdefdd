// Package ghost implements heaviest-subtree fork choice over accepted PoW
// solutions and the orphan registry for blocks that lose it.
//
// Every block carries the cumulative difficulty of its ancestry. The block
// with the greatest total difficulty is the best block; ties keep the block
// seen first. Blocks that do not become best are registered as orphans, and
// so is a best block abandoned by a reorg.
package ghost

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/inter"
)

var (
	// ErrKnownBlock is returned when a block hash is already in the tree.
	ErrKnownBlock = errors.New("block already in tree")
	// ErrOrphanNotFound is returned when attesting an unknown orphan.
	ErrOrphanNotFound = errors.New("orphan block not found")
	// ErrOrphanRewarded is returned when attesting an orphan already paid.
	ErrOrphanRewarded = errors.New("orphan block already rewarded")
)

// Backend is the block and orphan storage the tree works on.
type Backend interface {
	GetBlock(h common.Hash) (*inter.BlockInfo, error)
	HasBlock(h common.Hash) (bool, error)
	SetBlock(b *inter.BlockInfo) error
	GetOrphan(h common.Hash) (*inter.OrphanBlock, error)
	SetOrphan(o *inter.OrphanBlock) error
}

// Result describes the effect of an insertion.
type Result struct {
	Block      *inter.BlockInfo
	BecameBest bool
	// Orphaned lists blocks registered as orphans by this insertion: the
	// inserted block itself, or the previous best on a reorg.
	Orphaned []*inter.BlockInfo
}

// Insert adds b to the tree, computing its total difficulty from its parent,
// and updates the best block in st.
func Insert(db Backend, st *inter.ChainState, b inter.BlockInfo) (*Result, error) {
	known, err := db.HasBlock(b.Hash)
	if err != nil {
		return nil, err
	}
	if known {
		return nil, ErrKnownBlock
	}

	parent, err := db.GetBlock(b.ParentHash)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		b.TotalDifficulty = parent.TotalDifficulty.Add(b.Difficulty)
	} else {
		b.TotalDifficulty = b.Difficulty
	}
	if err := db.SetBlock(&b); err != nil {
		return nil, err
	}
	res := &Result{Block: &b}

	var best *inter.BlockInfo
	if st.BestBlock != (common.Hash{}) {
		if best, err = db.GetBlock(st.BestBlock); err != nil {
			return nil, err
		}
	}

	switch {
	case best == nil:
		res.BecameBest = true
	case b.TotalDifficulty.Gt(best.TotalDifficulty):
		res.BecameBest = true
		extends, err := Descends(db, &b, best)
		if err != nil {
			return nil, err
		}
		if !extends {
			res.Orphaned = append(res.Orphaned, best)
		}
	default:
		res.Orphaned = append(res.Orphaned, &b)
	}

	if res.BecameBest {
		st.BestBlock = b.Hash
	}
	for _, o := range res.Orphaned {
		if err := register(db, o); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func register(db Backend, b *inter.BlockInfo) error {
	existing, err := db.GetOrphan(b.Hash)
	if err != nil || existing != nil {
		return err
	}
	return db.SetOrphan(&inter.OrphanBlock{BlockInfo: *b})
}

// Descends reports whether b has anc among its ancestors (or is anc).
func Descends(db Backend, b, anc *inter.BlockInfo) (bool, error) {
	cur := b
	for cur.Hash != anc.Hash {
		if cur.Number <= anc.Number || cur.IsRoot() {
			return false, nil
		}
		p, err := db.GetBlock(cur.ParentHash)
		if err != nil || p == nil {
			return false, err
		}
		cur = p
	}
	return true, nil
}

// Ancestors returns up to limit blocks ending at head, oldest first.
func Ancestors(db Backend, head common.Hash, limit uint64) ([]*inter.BlockInfo, error) {
	var out []*inter.BlockInfo
	next := head
	for uint64(len(out)) < limit {
		b, err := db.GetBlock(next)
		if err != nil {
			return nil, err
		}
		if b == nil {
			break
		}
		out = append(out, b)
		if b.IsRoot() {
			break
		}
		next = b.ParentHash
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Attest records validator's attestation of an orphan. Once threshold
// distinct validators attested, the orphan is marked rewarded and payNow is
// true; the caller pays every validator in the returned record.
func Attest(db Backend, validator common.Address, h common.Hash, threshold uint32) (o *inter.OrphanBlock, payNow bool, err error) {
	o, err = db.GetOrphan(h)
	if err != nil {
		return nil, false, err
	}
	if o == nil {
		return nil, false, ErrOrphanNotFound
	}
	if o.IsRewarded {
		return nil, false, ErrOrphanRewarded
	}
	o.AddValidator(validator)
	if uint32(len(o.Validators)) >= threshold {
		o.IsRewarded = true
		payNow = true
	}
	if err := db.SetOrphan(o); err != nil {
		return nil, false, err
	}
	return o, payNow, nil
}
