package store

import (
	"github.com/Fantom-foundation/lachesis-base/kvdb"
	"github.com/Fantom-foundation/lachesis-base/kvdb/flushable"
	"github.com/Fantom-foundation/lachesis-base/kvdb/table"
	"github.com/ethereum/go-ethereum/rlp"
)

// Tx stages writes in a flushable layer over the database. Reads see staged
// writes first. Commit flushes every staged write in one step; Discard drops
// them all, which makes each consensus entry point atomic.
type Tx struct {
	store *Store
	flush *flushable.Flushable

	table struct {
		Meta      kvdb.Store `table:"m"`
		Blocks    kvdb.Store `table:"b"`
		Orphans   kvdb.Store `table:"o"`
		Proposals kvdb.Store `table:"p"`
		Active    kvdb.Store `table:"a"`
		Votes     kvdb.Store `table:"v"`
		Experts   kvdb.Store `table:"e"`
		Locks     kvdb.Store `table:"l"`
	}

	dirtyBlocks bool
	done        bool
}

func (tx *Tx) init() {
	table.MigrateTables(&tx.table, tx.flush)
}

// Commit writes every staged change to the database.
func (tx *Tx) Commit() error {
	if tx.done {
		return nil
	}
	tx.done = true
	return tx.flush.Flush()
}

// Discard drops every staged change. It is a no-op after Commit.
func (tx *Tx) Discard() {
	if tx.done {
		return
	}
	tx.done = true
	tx.flush.DropNotFlushed()
	if tx.dirtyBlocks {
		tx.store.cache.Blocks.Purge()
	}
}

// Pending returns the number of staged key writes.
func (tx *Tx) Pending() int {
	return tx.flush.NotFlushedPairs()
}

func (tx *Tx) getRLP(t kvdb.Store, key []byte, to interface{}) (bool, error) {
	buf, err := t.Get(key)
	if err != nil {
		return false, err
	}
	if buf == nil {
		return false, nil
	}
	if err := rlp.DecodeBytes(buf, to); err != nil {
		tx.store.log.WithError(err).WithField("key", key).Error("failed to decode record")
		return false, err
	}
	return true, nil
}

func (tx *Tx) setRLP(t kvdb.Store, key []byte, val interface{}) error {
	buf, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return t.Put(key, buf)
}
