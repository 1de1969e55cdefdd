// Package poh maintains the Proof-of-History chain: a hash chain advanced
// once per block that PoW solutions must bind to.
package poh

import (
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/utils/fast"
)

// Next returns H(last || counter || entropy).
func Next(last hash.Hash, counter uint64, entropy common.Hash) hash.Hash {
	w := fast.NewWriter(make([]byte, 0, 2*32+8))
	w.Write(last.Bytes())
	w.WriteUint64(counter)
	w.Write(entropy.Bytes())
	return hash.Of(w.Bytes())
}

// Advance moves the chain one step and returns the new head.
func Advance(st *inter.ChainState, entropy common.Hash) hash.Hash {
	st.LastPohHash = Next(st.LastPohHash, st.PohCounter, entropy)
	st.PohCounter++
	return st.LastPohHash
}

// Verify reports whether candidate is the current head.
func Verify(st *inter.ChainState, candidate hash.Hash) bool {
	return st.LastPohHash == candidate
}
