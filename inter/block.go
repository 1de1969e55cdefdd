// Package inter defines the consensus data structures shared by the PoW core:
// block records kept for fork choice, orphan records, governance records and
// the single chain-state aggregate that every component reads and writes.
//
// Key concepts:
//   - BlockInfo: an accepted PoW solution placed in the GHOST block tree
//   - OrphanBlock: a validly mined block off the canonical chain, eligible for
//     a partial reward once enough validators attest to it
//   - ChainState: supply, reward, difficulty, PoH and fork-choice singletons
//
// All records are RLP-encoded when persisted.

package inter

import (
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rony4d/go-civic/utils/safe"
)

// BlockInfo is a node of the GHOST block tree. It is created when a PoW
// solution is accepted and never modified afterwards.
type BlockInfo struct {
	// Hash identifies the block. See SealHash.
	Hash common.Hash

	// ParentHash links the block to its parent. A parent that is not in the
	// tree makes this block a root.
	ParentHash common.Hash

	// Number is the height reported by the chain source when the block was
	// accepted.
	Number idx.Block

	// Timestamp is the chain-source time (unix seconds) of acceptance.
	Timestamp uint64

	// Author is the miner that submitted the solution.
	Author common.Address

	// Difficulty is the difficulty the solution was verified against.
	Difficulty safe.Int

	// TotalDifficulty is the parent's total difficulty plus Difficulty, or
	// just Difficulty for a root.
	TotalDifficulty safe.Int

	// PohHash is the PoH value the solution was bound to.
	PohHash hash.Hash

	// Nonce and Digest are the raw solution.
	Nonce  []byte
	Digest common.Hash
}

// sealFields is the RLP layout hashed into a block identity.
type sealFields struct {
	ParentHash common.Hash
	Number     idx.Block
	Author     common.Address
	Nonce      []byte
	Digest     common.Hash
	PohHash    hash.Hash
	Difficulty safe.Int
}

// SealHash derives the identity of an accepted solution. Two different
// solutions mined on the same parent at the same height get distinct hashes
// and become siblings in the tree.
func SealHash(parent common.Hash, number idx.Block, author common.Address, nonce []byte, digest common.Hash, poh hash.Hash, difficulty safe.Int) common.Hash {
	enc, err := rlp.EncodeToBytes(sealFields{
		ParentHash: parent,
		Number:     number,
		Author:     author,
		Nonce:      nonce,
		Digest:     digest,
		PohHash:    poh,
		Difficulty: difficulty,
	})
	if err != nil {
		// all fields have static encoders
		panic(err)
	}
	return crypto.Keccak256Hash(enc)
}

// IsRoot reports whether the block was inserted without a known parent.
func (b *BlockInfo) IsRoot() bool {
	return b.TotalDifficulty.Eq(b.Difficulty)
}

// OrphanBlock tracks validator attestations for a block that lost fork choice.
type OrphanBlock struct {
	BlockInfo BlockInfo

	// Validators lists distinct attesting accounts in attestation order.
	Validators []common.Address

	// IsRewarded flips to true once, when the attestation threshold is reached
	// and the orphan reward is paid.
	IsRewarded bool
}

// HasValidator reports whether v already attested.
func (o *OrphanBlock) HasValidator(v common.Address) bool {
	for _, x := range o.Validators {
		if x == v {
			return true
		}
	}
	return false
}

// AddValidator appends v unless it already attested. It returns whether the
// set changed.
func (o *OrphanBlock) AddValidator(v common.Address) bool {
	if o.HasValidator(v) {
		return false
	}
	o.Validators = append(o.Validators, v)
	return true
}
