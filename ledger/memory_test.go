package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-civic/utils/safe"
)

func TestMemory_ReserveAndUnreserve(t *testing.T) {
	require := require.New(t)
	m := NewMemory()
	a := common.Address{1}

	m.Endow(a, safe.U64(100))
	require.ErrorIs(m.Reserve(a, safe.U64(101)), ErrInsufficientBalance)
	require.NoError(m.Reserve(a, safe.U64(40)))
	require.Equal("60", m.FreeBalance(a).String())
	require.Equal("40", m.ReservedBalance(a).String())

	rest := m.Unreserve(a, safe.U64(50))
	require.Equal("10", rest.String(), "only reserved funds move back")
	require.Equal("100", m.FreeBalance(a).String())
	require.True(m.ReservedBalance(a).IsZero())
}

func TestMemory_Slash(t *testing.T) {
	tests := []struct {
		name          string
		free, reserve uint64
		slash         uint64
		wantSlashed   uint64
		wantFree      uint64
		wantReserved  uint64
	}{
		{"from free", 100, 0, 30, 30, 70, 0},
		{"spills into reserved", 20, 50, 30, 30, 0, 40},
		{"capped by holdings", 10, 5, 100, 15, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			m := NewMemory()
			a := common.Address{2}
			m.Endow(a, safe.U64(tt.free+tt.reserve))
			require.NoError(m.Reserve(a, safe.U64(tt.reserve)))

			got := m.Slash(a, safe.U64(tt.slash))
			require.Equal(tt.wantSlashed, got.Uint64())
			require.Equal(tt.wantFree, m.FreeBalance(a).Uint64())
			require.Equal(tt.wantReserved, m.ReservedBalance(a).Uint64())
			require.Equal(tt.free+tt.reserve-tt.wantSlashed, m.TotalIssuance().Uint64())
		})
	}
}

func TestMemory_IssueAndDeposit(t *testing.T) {
	require := require.New(t)
	m := NewMemory()
	a := common.Address{3}

	m.Issue(safe.U64(60))
	m.Deposit(a, safe.U64(60))
	require.Equal("60", m.FreeBalance(a).String())
	require.Equal("60", m.TotalIssuance().String())
	require.True(m.FreeBalance(common.Address{4}).IsZero())
}
