// Package reward implements the monetary policy: per-block reward under a
// halving schedule, the hard supply cap and the orphan reward split.
package reward

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/utils/safe"
)

// Headroom returns how much may still be issued before the cap.
func Headroom(st *inter.ChainState, maxSupply safe.Int) safe.Int {
	return maxSupply.Sub(st.TotalSupply)
}

// Truncate returns min(amount, headroom).
func Truncate(st *inter.ChainState, amount, maxSupply safe.Int) safe.Int {
	return safe.Min(amount, Headroom(st, maxSupply))
}

// Calculate returns the reward for the next accepted solution. It is zero
// once the supply cap is exhausted.
func Calculate(st *inter.ChainState, maxSupply safe.Int) safe.Int {
	return Truncate(st, st.CurrentBlockReward, maxSupply)
}

// Record adds an issued amount to the supply. It reports true exactly once,
// on the issuance that brings the supply to the cap.
func Record(st *inter.ChainState, amount, maxSupply safe.Int) (capReached bool) {
	st.TotalSupply = st.TotalSupply.Add(amount)
	if !st.MaxSupplyReached && !st.TotalSupply.Lt(maxSupply) {
		st.MaxSupplyReached = true
		return true
	}
	return false
}

// HalvingDue reports whether the reward should halve at block n.
func HalvingDue(st *inter.ChainState, n idx.Block) bool {
	if st.CurrentBlockReward.IsZero() || st.BlocksPerHalving == 0 || n < st.LastHalvingBlock {
		return false
	}
	return uint64(n-st.LastHalvingBlock) >= st.BlocksPerHalving
}

// Halve halves the current reward (floor) and restarts the halving period at n.
func Halve(st *inter.ChainState, n idx.Block) safe.Int {
	st.CurrentBlockReward = st.CurrentBlockReward.Div(safe.U64(2))
	st.LastHalvingBlock = n
	return st.CurrentBlockReward
}

// OrphanShare returns each validator's part of an orphan reward:
// floor(blockReward * percent / 100 / validators). The remainder is not paid.
func OrphanShare(blockReward safe.Int, percent uint32, validators int) safe.Int {
	if validators <= 0 {
		return safe.Zero()
	}
	pool := blockReward.MulDiv(safe.U64(uint64(percent)), safe.U64(100))
	return pool.Div(safe.U64(uint64(validators)))
}
