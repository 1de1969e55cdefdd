package reward

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/utils/safe"
)

func TestCalculate_SupplyCap(t *testing.T) {
	require := require.New(t)
	max := safe.U64(150)
	st := &inter.ChainState{CurrentBlockReward: safe.U64(60)}

	var paid []uint64
	var reached []bool
	for i := 0; i < 4; i++ {
		r := Calculate(st, max)
		paid = append(paid, r.Uint64())
		reached = append(reached, Record(st, r, max))
		require.False(st.TotalSupply.Gt(max), "supply must never exceed the cap")
	}
	require.Equal([]uint64{60, 60, 30, 0}, paid)
	require.Equal([]bool{false, false, true, false}, reached, "cap notice fires once")
	require.Equal(uint64(150), st.TotalSupply.Uint64())
}

func TestHalving_Schedule(t *testing.T) {
	require := require.New(t)
	st := &inter.ChainState{CurrentBlockReward: safe.U64(60), BlocksPerHalving: 100}

	require.False(HalvingDue(st, 99))
	require.True(HalvingDue(st, 100))
	require.Equal(uint64(30), Halve(st, 100).Uint64())
	require.Equal(uint64(100), uint64(st.LastHalvingBlock))

	require.False(HalvingDue(st, 199))
	require.True(HalvingDue(st, 200))
	require.Equal(uint64(15), Halve(st, 200).Uint64())
	require.Equal(uint64(7), Halve(st, 300).Uint64(), "floor division")

	st.CurrentBlockReward = safe.Zero()
	require.False(HalvingDue(st, 10_000), "a zero reward never halves")
}

func TestOrphanShare(t *testing.T) {
	tests := []struct {
		name       string
		reward     uint64
		percent    uint32
		validators int
		want       uint64
	}{
		{"three validators", 60, 20, 3, 4},
		{"remainder dropped", 60, 20, 5, 2},
		{"no validators", 60, 20, 0, 0},
		{"more validators than coins", 60, 20, 13, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, OrphanShare(safe.U64(tt.reward), tt.percent, tt.validators).Uint64())
		})
	}
}

func TestTruncate(t *testing.T) {
	st := &inter.ChainState{TotalSupply: safe.U64(95)}
	require.Equal(t, uint64(5), Truncate(st, safe.U64(12), safe.U64(100)).Uint64())
	require.Equal(t, uint64(3), Truncate(st, safe.U64(3), safe.U64(100)).Uint64())
	require.True(t, Headroom(&inter.ChainState{TotalSupply: safe.U64(200)}, safe.U64(100)).IsZero())
}
