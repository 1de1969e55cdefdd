// Package genesis defines the initial state of a Civic network and its TOML
// file format.
//
// A genesis combines:
//   - Rules: the consensus parameters (see package civic)
//   - Timestamp: the chain time of block zero, which anchors the first
//     difficulty retarget window
//   - Accounts: initial free balances, counted into the total supply
//   - Experts: accounts verified as delegation targets from the start
//
// Usage:
//
//	g, err := genesis.LoadFile("genesis.toml")
//	g := genesis.FakeGenesis(accounts...)

package genesis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pelletier/go-toml/v2"

	"github.com/rony4d/go-civic/civic"
	"github.com/rony4d/go-civic/utils/safe"
)

// Account is an initial balance.
type Account struct {
	Address common.Address
	Balance safe.Int
}

// Expert is an account verified for delegation at genesis.
type Expert struct {
	Address   common.Address
	Expertise string
}

// Genesis is the complete initial state.
type Genesis struct {
	Rules     civic.Rules
	Timestamp uint64
	Accounts  []Account
	Experts   []Expert
}

// TotalAllocated returns the sum of initial balances.
func (g *Genesis) TotalAllocated() safe.Int {
	total := safe.Zero()
	for _, a := range g.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// Validate checks the rules and that the allocation fits under the cap.
func (g *Genesis) Validate() error {
	if err := g.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	if g.TotalAllocated().Gt(g.Rules.Economy.MaxSupply) {
		return errors.New("genesis allocation exceeds max supply")
	}
	seen := make(map[common.Address]bool, len(g.Accounts))
	for _, a := range g.Accounts {
		if seen[a.Address] {
			return fmt.Errorf("duplicate genesis account %s", a.Address)
		}
		seen[a.Address] = true
	}
	return nil
}

// MainGenesis returns the mainnet genesis with an empty allocation.
func MainGenesis() *Genesis {
	return &Genesis{Rules: civic.MainNetRules()}
}

// FakeGenesis returns a fakenet genesis where every given account starts with
// 1000 coins.
func FakeGenesis(accounts ...common.Address) *Genesis {
	g := &Genesis{Rules: civic.FakeNetRules()}
	for _, a := range accounts {
		g.Accounts = append(g.Accounts, Account{
			Address: a,
			Balance: g.Rules.Economy.Coins(1000),
		})
	}
	return g
}

// ByNetwork returns the built-in genesis of a network name.
func ByNetwork(name string) (*Genesis, error) {
	rules, err := civic.RulesByName(name)
	if err != nil {
		return nil, err
	}
	return &Genesis{Rules: rules}, nil
}

// Decode reads a TOML genesis.
func Decode(r io.Reader) (*Genesis, error) {
	var g Genesis
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&g); err != nil {
		return nil, fmt.Errorf("decode genesis: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// LoadFile reads and validates a TOML genesis file.
func LoadFile(path string) (*Genesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes g as TOML.
func (g *Genesis) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(g)
}

// Bytes returns the TOML form of g.
func (g *Genesis) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := g.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
