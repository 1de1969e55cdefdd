package civic

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rony4d/go-civic/utils/safe"
)

// TestNetworkConstants verifies the network identifiers.
func TestNetworkConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant uint64
		want     uint64
	}{
		{"MainNetworkID", MainNetworkID, 0xc1},
		{"TestNetworkID", TestNetworkID, 0xc2},
		{"FakeNetworkID", FakeNetworkID, 0xc3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.constant, tt.want)
			}
		})
	}
}

// TestMainNetRules verifies the production monetary policy in base units.
func TestMainNetRules(t *testing.T) {
	rules := MainNetRules()

	if rules.Name != "main" {
		t.Errorf("Name = %q, want %q", rules.Name, "main")
	}
	if got, want := rules.Economy.BlockReward.String(), "60000000000000000000"; got != want {
		t.Errorf("BlockReward = %s, want %s", got, want)
	}
	if got, want := rules.Economy.MaxSupply.String(), "29000000000000000000000000"; got != want {
		t.Errorf("MaxSupply = %s, want %s", got, want)
	}
	if got, want := rules.Governance.MinProposalStake.String(), "1000000000000000000000"; got != want {
		t.Errorf("MinProposalStake = %s, want %s", got, want)
	}
	if got, want := rules.Economy.HalvingPeriod(), uint64(13_140_000); got != want {
		t.Errorf("HalvingPeriod = %d, want %d", got, want)
	}
	if err := rules.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

// TestFakeNetRules verifies the development overrides.
func TestFakeNetRules(t *testing.T) {
	rules := FakeNetRules()

	if rules.Economy.Decimals != 0 {
		t.Errorf("Decimals = %d, want 0", rules.Economy.Decimals)
	}
	if !rules.Economy.BlockReward.Eq(safe.U64(60)) {
		t.Errorf("BlockReward = %s, want 60", rules.Economy.BlockReward)
	}
	if !rules.Difficulty.Initial.Eq(safe.U64(10_000)) {
		t.Errorf("Initial difficulty = %s, want 10000", rules.Difficulty.Initial)
	}
	if err := rules.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

// TestRulesByName verifies lookup of built-in networks.
func TestRulesByName(t *testing.T) {
	for _, name := range []string{"main", "test", "fake"} {
		t.Run(name, func(t *testing.T) {
			r, err := RulesByName(name)
			if err != nil {
				t.Fatalf("RulesByName(%q) error: %v", name, err)
			}
			if r.Name != name {
				t.Errorf("Name = %q, want %q", r.Name, name)
			}
		})
	}
	if _, err := RulesByName("nope"); err == nil {
		t.Error("expected error for unknown network")
	}
}

// TestRulesValidate verifies that broken invariants are rejected.
func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{"zero min difficulty", func(r *Rules) { r.Difficulty.Min = safe.Zero() }},
		{"initial below min", func(r *Rules) { r.Difficulty.Min = safe.U64(10); r.Difficulty.Initial = safe.U64(5) }},
		{"zero window", func(r *Rules) { r.Difficulty.RetargetWindow = 0 }},
		{"zero factor", func(r *Rules) { r.Difficulty.MaxRetargetFactor = 0 }},
		{"zero halving", func(r *Rules) { r.Economy.HalvingYears = 0 }},
		{"orphan percent", func(r *Rules) { r.Economy.OrphanRewardPercent = 101 }},
		{"orphan threshold", func(r *Rules) { r.Economy.OrphanValidatorThreshold = 0 }},
		{"flyclient interval", func(r *Rules) { r.FlyClient.Interval = 0 }},
		{"flyclient window", func(r *Rules) { r.FlyClient.Window = 0 }},
		{"voting bounds", func(r *Rules) { r.Governance.MinVotingPeriod = 10; r.Governance.MaxVotingPeriod = 5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FakeNetRules()
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// TestHalvingPeriodSaturates verifies that a product wider than 64 bits does
// not wrap around to a small or zero period.
func TestHalvingPeriodSaturates(t *testing.T) {
	e := EconomyRules{BlocksPerYear: 1 << 32, HalvingYears: 1 << 32}
	if got := e.HalvingPeriod(); got != math.MaxUint64 {
		t.Errorf("HalvingPeriod() = %d, want MaxUint64", got)
	}
	r := FakeNetRules()
	r.Economy = e
	r.Economy.OrphanValidatorThreshold = 3
	if err := r.Validate(); err != nil {
		t.Errorf("saturated period rejected: %v", err)
	}
}

// TestRulesString verifies the JSON rendering used in logs.
func TestRulesString(t *testing.T) {
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(FakeNetRules().String()), &decoded); err != nil {
		t.Fatalf("String() is not JSON: %v", err)
	}
	economy, ok := decoded["Economy"].(map[string]interface{})
	if !ok {
		t.Fatal("missing Economy section")
	}
	if economy["BlockReward"] != "60" {
		t.Errorf("BlockReward = %v, want \"60\"", economy["BlockReward"])
	}
}
