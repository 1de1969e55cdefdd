// Package civic defines the network rules for a Civic PoW network.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - Economy rules: block reward, supply cap, halving schedule, orphan rewards
//   - Difficulty rules: initial value, floor and retarget window
//   - Governance rules: proposal stake and voting period bounds
//   - FlyClient rules: commitment interval and window
//
// The Rules type is the central configuration structure. Every amount is
// expressed in base units, i.e. whole coins multiplied by 10^Decimals.

package civic

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rony4d/go-civic/utils/safe"
)

// Network identification constants
const (
	MainNetworkID uint64 = 0xc1
	TestNetworkID uint64 = 0xc2
	FakeNetworkID uint64 = 0xc3
)

// Rules describes the complete consensus configuration of a network.
type Rules struct {
	Name      string // network name, e.g. "main", "test", "fake"
	NetworkID uint64

	Economy    EconomyRules
	Difficulty DifficultyRules
	Governance GovernanceRules
	FlyClient  FlyClientRules
}

// EconomyRules contains the monetary policy.
type EconomyRules struct {
	// Decimals is the number of fractional digits of one coin.
	Decimals uint8

	// BlockReward is the reward per accepted solution at genesis.
	BlockReward safe.Int

	// MaxSupply caps the total issuance. Rewards are truncated so that the
	// total supply never exceeds it.
	MaxSupply safe.Int

	// BlocksPerYear and HalvingYears define the default halving period of
	// BlocksPerYear * HalvingYears blocks. Governance may change the period.
	BlocksPerYear uint64
	HalvingYears  uint64

	// OrphanValidatorThreshold is the number of distinct validator
	// attestations after which an orphan block is rewarded.
	OrphanValidatorThreshold uint32

	// OrphanRewardPercent is the share of the current block reward split
	// among the attesting validators of a rewarded orphan.
	OrphanRewardPercent uint32
}

// DifficultyRules contains PoW difficulty parameters.
type DifficultyRules struct {
	// Initial is the difficulty at genesis.
	Initial safe.Int

	// Min is the lowest difficulty retargeting or governance may set. It is
	// always at least 1.
	Min safe.Int

	// RetargetWindow is the number of blocks between retargets.
	RetargetWindow idx.Block

	// TargetBlockTime is the expected seconds between blocks.
	TargetBlockTime uint64

	// MaxRetargetFactor bounds a single retarget to [old/F, old*F].
	MaxRetargetFactor uint64
}

// GovernanceRules contains proposal and voting parameters.
type GovernanceRules struct {
	// MinProposalStake is the stake reserved from a proposer.
	MinProposalStake safe.Int

	// MinVotingPeriod and MaxVotingPeriod bound the period a proposer may ask for.
	MinVotingPeriod idx.Block
	MaxVotingPeriod idx.Block
}

// FlyClientRules configures the light-client header commitment.
type FlyClientRules struct {
	// Interval is the number of blocks between commitment updates.
	Interval idx.Block

	// Window is the number of most recent canonical headers committed.
	Window uint64
}

// Coins converts whole coins to base units.
func (e EconomyRules) Coins(n uint64) safe.Int {
	return safe.U64(n).Mul(safe.Pow10(e.Decimals))
}

// HalvingPeriod returns the default number of blocks between halvings,
// saturating at MaxUint64.
func (e EconomyRules) HalvingPeriod() uint64 {
	p, overflow := math.SafeMul(e.BlocksPerYear, e.HalvingYears)
	if overflow {
		return math.MaxUint64
	}
	return p
}

// MainNetRules returns the production network rules.
func MainNetRules() Rules {
	return Rules{
		Name:       "main",
		NetworkID:  MainNetworkID,
		Economy:    DefaultEconomyRules(18),
		Difficulty: DefaultDifficultyRules(),
		Governance: DefaultGovernanceRules(18),
		FlyClient:  DefaultFlyClientRules(),
	}
}

// TestNetRules returns the public test network rules. They match mainnet.
func TestNetRules() Rules {
	r := MainNetRules()
	r.Name = "test"
	r.NetworkID = TestNetworkID
	return r
}

// FakeNetRules returns rules for local development:
//   - zero decimals, so amounts read as whole coins
//   - low initial difficulty so the in-process devnet mines quickly
//   - a short voting period floor
func FakeNetRules() Rules {
	r := Rules{
		Name:       "fake",
		NetworkID:  FakeNetworkID,
		Economy:    DefaultEconomyRules(0),
		Difficulty: DefaultDifficultyRules(),
		Governance: DefaultGovernanceRules(0),
		FlyClient:  DefaultFlyClientRules(),
	}
	r.Difficulty.Initial = safe.U64(10_000)
	r.Governance.MinVotingPeriod = 1
	return r
}

// DefaultEconomyRules returns the monetary policy for the given decimals:
// 60 coins per block, 29M coin cap, halving every 5 years of 12s blocks.
func DefaultEconomyRules(decimals uint8) EconomyRules {
	e := EconomyRules{
		Decimals:                 decimals,
		BlocksPerYear:            2_628_000,
		HalvingYears:             5,
		OrphanValidatorThreshold: 3,
		OrphanRewardPercent:      20,
	}
	e.BlockReward = e.Coins(60)
	e.MaxSupply = e.Coins(29_000_000)
	return e
}

// DefaultDifficultyRules returns the retarget parameters.
func DefaultDifficultyRules() DifficultyRules {
	return DifficultyRules{
		Initial:           safe.U64(1_000_000),
		Min:               safe.U64(1),
		RetargetWindow:    2016,
		TargetBlockTime:   12,
		MaxRetargetFactor: 4,
	}
}

// DefaultGovernanceRules returns the proposal parameters.
func DefaultGovernanceRules(decimals uint8) GovernanceRules {
	return GovernanceRules{
		MinProposalStake: EconomyRules{Decimals: decimals}.Coins(1000),
		MinVotingPeriod:  10,
		MaxVotingPeriod:  1_000_000,
	}
}

// DefaultFlyClientRules commits the last 1000 headers every 1000 blocks.
func DefaultFlyClientRules() FlyClientRules {
	return FlyClientRules{
		Interval: 1000,
		Window:   1000,
	}
}

// RulesByName returns the built-in rules of a network.
func RulesByName(name string) (Rules, error) {
	switch name {
	case "main":
		return MainNetRules(), nil
	case "test":
		return TestNetRules(), nil
	case "fake":
		return FakeNetRules(), nil
	default:
		return Rules{}, fmt.Errorf("unknown network: %q (valid: main, test, fake)", name)
	}
}

// Validate checks the invariants the consensus core relies on.
func (r Rules) Validate() error {
	switch {
	case r.Difficulty.Min.IsZero():
		return errors.New("minimum difficulty must be at least 1")
	case r.Difficulty.Initial.Lt(r.Difficulty.Min):
		return errors.New("initial difficulty is below the minimum")
	case r.Difficulty.RetargetWindow == 0:
		return errors.New("retarget window must be positive")
	case r.Difficulty.MaxRetargetFactor == 0:
		return errors.New("retarget factor must be positive")
	case r.Economy.HalvingPeriod() == 0:
		return errors.New("halving period must be positive")
	case r.Economy.OrphanRewardPercent > 100:
		return errors.New("orphan reward percent exceeds 100")
	case r.Economy.OrphanValidatorThreshold == 0:
		return errors.New("orphan validator threshold must be positive")
	case r.FlyClient.Interval == 0:
		return errors.New("flyclient interval must be positive")
	case r.FlyClient.Window == 0:
		return errors.New("flyclient window must be positive")
	case r.Governance.MinVotingPeriod > r.Governance.MaxVotingPeriod:
		return errors.New("voting period bounds are inverted")
	}
	return nil
}

// Copy returns a deep copy. safe.Int is an immutable value, so a plain copy
// is sufficient.
func (r Rules) Copy() Rules {
	return r
}

// String returns the JSON form of the rules, for logs.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
