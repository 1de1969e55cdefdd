package pow

import (
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/utils/fast"
	"github.com/rony4d/go-civic/utils/safe"
)

// Preimage returns parent || nonce || poh.
func Preimage(parent common.Hash, nonce []byte, poh hash.Hash) []byte {
	w := fast.NewWriter(make([]byte, 0, 2*common.HashLength+len(nonce)))
	w.Write(parent.Bytes())
	w.Write(nonce)
	w.Write(poh.Bytes())
	return w.Bytes()
}

// Target returns (2^256-1)/difficulty. A zero difficulty is treated as 1.
func Target(difficulty safe.Int) safe.Int {
	if difficulty.IsZero() {
		return safe.Max()
	}
	return safe.Max().Div(difficulty)
}

// MeetsTarget reports whether digest, read as a big-endian integer, is at
// most the target of difficulty.
func MeetsTarget(digest common.Hash, difficulty safe.Int) bool {
	return !safe.FromBytes32(digest).Gt(Target(difficulty))
}

// Verify recomputes the oracle output for the solution and checks it against
// the claimed digest and the difficulty target.
func Verify(h Hasher, parent common.Hash, nonce []byte, digest common.Hash, difficulty safe.Int, poh hash.Hash) bool {
	if h.Hash(Preimage(parent, nonce, poh)) != digest {
		return false
	}
	return MeetsTarget(digest, difficulty)
}
