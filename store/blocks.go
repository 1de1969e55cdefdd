package store

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/inter"
)

// GetBlock returns a block of the GHOST tree, or nil if unknown.
func (tx *Tx) GetBlock(h common.Hash) (*inter.BlockInfo, error) {
	if c, ok := tx.store.cache.Blocks.Get(h); ok {
		b := c.(inter.BlockInfo)
		return &b, nil
	}
	var b inter.BlockInfo
	ok, err := tx.getRLP(tx.table.Blocks, h.Bytes(), &b)
	if err != nil || !ok {
		return nil, err
	}
	tx.store.cache.Blocks.Add(h, b)
	return &b, nil
}

// HasBlock reports whether h is in the tree.
func (tx *Tx) HasBlock(h common.Hash) (bool, error) {
	if tx.store.cache.Blocks.Contains(h) {
		return true, nil
	}
	return tx.table.Blocks.Has(h.Bytes())
}

// SetBlock stages a block.
func (tx *Tx) SetBlock(b *inter.BlockInfo) error {
	if err := tx.setRLP(tx.table.Blocks, b.Hash.Bytes(), b); err != nil {
		return err
	}
	tx.dirtyBlocks = true
	tx.store.cache.Blocks.Add(b.Hash, *b)
	return nil
}

// GetOrphan returns an orphan record, or nil if h is not an orphan.
func (tx *Tx) GetOrphan(h common.Hash) (*inter.OrphanBlock, error) {
	var o inter.OrphanBlock
	ok, err := tx.getRLP(tx.table.Orphans, h.Bytes(), &o)
	if err != nil || !ok {
		return nil, err
	}
	return &o, nil
}

// SetOrphan stages an orphan record.
func (tx *Tx) SetOrphan(o *inter.OrphanBlock) error {
	return tx.setRLP(tx.table.Orphans, o.BlockInfo.Hash.Bytes(), o)
}
