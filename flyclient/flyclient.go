// Package flyclient builds the light-client commitment: a Merkle Patricia
// root over the most recent canonical block headers, plus inclusion proofs
// against it.
//
// The leaf at index i is the RLP encoding of the i-th header (oldest first),
// keyed by RLP(i), which is the same layout go-ethereum uses for transaction
// and receipt roots.
package flyclient

import (
	"bytes"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/rony4d/go-civic/inter"
)

// ErrVerificationFailed is returned when headers or a proof do not match a root.
var ErrVerificationFailed = errors.New("flyclient verification failed")

// Headers is a list of block headers committed in order.
type Headers []*inter.BlockInfo

// Len implements types.DerivableList.
func (hh Headers) Len() int { return len(hh) }

// EncodeIndex implements types.DerivableList.
func (hh Headers) EncodeIndex(i int, w *bytes.Buffer) {
	if err := rlp.Encode(w, hh[i]); err != nil {
		// BlockInfo has only static encoders
		panic(err)
	}
}

// Root returns the commitment to hh. An empty list commits to the empty trie.
func Root(hh Headers) common.Hash {
	return types.DeriveSha(hh, trie.NewStackTrie(nil))
}

// Verify checks that hh is exactly the list committed by root.
func Verify(root common.Hash, hh Headers) error {
	if Root(hh) != root {
		return ErrVerificationFailed
	}
	return nil
}

// Proof is a set of trie nodes proving one header.
type Proof struct {
	Index uint64
	Nodes [][]byte
}

func leafKey(i uint64) []byte {
	return rlp.AppendUint64(nil, i)
}

// Prove builds an inclusion proof for hh[index] against Root(hh).
func Prove(hh Headers, index uint64) (*Proof, error) {
	if index >= uint64(len(hh)) {
		return nil, ErrVerificationFailed
	}
	t, err := trie.New(common.Hash{}, trie.NewDatabase(memorydb.New()))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for i := range hh {
		buf.Reset()
		hh.EncodeIndex(i, &buf)
		if err := t.TryUpdate(leafKey(uint64(i)), common.CopyBytes(buf.Bytes())); err != nil {
			return nil, err
		}
	}

	nodes := memorydb.New()
	if err := t.Prove(leafKey(index), 0, nodes); err != nil {
		return nil, err
	}
	proof := &Proof{Index: index}
	it := nodes.NewIterator(nil, nil)
	defer it.Release()
	for it.Next() {
		proof.Nodes = append(proof.Nodes, common.CopyBytes(it.Value()))
	}
	return proof, it.Error()
}

// VerifyProof checks p against root and returns the proven header.
func VerifyProof(root common.Hash, p *Proof) (*inter.BlockInfo, error) {
	nodes := memorydb.New()
	for _, n := range p.Nodes {
		if err := nodes.Put(crypto.Keccak256(n), n); err != nil {
			return nil, err
		}
	}
	leaf, err := trie.VerifyProof(root, leafKey(p.Index), nodes)
	if err != nil || leaf == nil {
		return nil, ErrVerificationFailed
	}
	var b inter.BlockInfo
	if err := rlp.DecodeBytes(leaf, &b); err != nil {
		return nil, ErrVerificationFailed
	}
	return &b, nil
}
