// Package pow implements the proof-of-work oracle, solution verification and
// difficulty retargeting.
package pow

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/argon2"
)

// Hasher is the PoW oracle. Implementations must be deterministic and safe
// for concurrent use.
type Hasher interface {
	Hash(preimage []byte) common.Hash
	Name() string
}

// Keccak is a cheap oracle for development networks and tests.
type Keccak struct{}

func (Keccak) Hash(preimage []byte) common.Hash { return crypto.Keccak256Hash(preimage) }
func (Keccak) Name() string                     { return "keccak" }

// Argon2Params configures the memory-hard oracle.
type Argon2Params struct {
	Time    uint32 // passes
	Memory  uint32 // KiB
	Threads uint8
	Salt    []byte
}

// DefaultArgon2Params uses 64 MiB and a single pass.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 1,
		Salt:    []byte("civic-pow-argon2id"),
	}
}

// LiteArgon2Params keeps memory small for local networks.
func LiteArgon2Params() Argon2Params {
	p := DefaultArgon2Params()
	p.Memory = 1024
	return p
}

// Argon2id is the production oracle.
type Argon2id struct {
	params Argon2Params
}

// NewArgon2id returns an Argon2id oracle.
func NewArgon2id(p Argon2Params) *Argon2id {
	return &Argon2id{params: p}
}

func (a *Argon2id) Hash(preimage []byte) common.Hash {
	return common.BytesToHash(argon2.IDKey(preimage, a.params.Salt, a.params.Time, a.params.Memory, a.params.Threads, common.HashLength))
}

func (a *Argon2id) Name() string { return "argon2id" }

// HasherByName returns the oracle for a config name.
func HasherByName(name string, p Argon2Params) (Hasher, error) {
	switch name {
	case "keccak":
		return Keccak{}, nil
	case "argon2id", "argon2":
		return NewArgon2id(p), nil
	}
	return nil, fmt.Errorf("unknown pow hasher: %q (valid: keccak, argon2id)", name)
}
