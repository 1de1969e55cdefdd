package store

import (
	"github.com/rony4d/go-civic/inter"
)

var keyChainState = []byte("s")

// GetChainState returns the consensus singletons, or nil before genesis.
func (tx *Tx) GetChainState() (*inter.ChainState, error) {
	var st inter.ChainState
	ok, err := tx.getRLP(tx.table.Meta, keyChainState, &st)
	if err != nil || !ok {
		return nil, err
	}
	return &st, nil
}

// SetChainState stages the consensus singletons.
func (tx *Tx) SetChainState(st *inter.ChainState) error {
	return tx.setRLP(tx.table.Meta, keyChainState, st)
}
