package safe

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestInt_Saturation(t *testing.T) {
	tests := []struct {
		name string
		got  Int
		want Int
	}{
		{"add", U64(2).Add(U64(3)), U64(5)},
		{"add saturates", Max().Add(U64(1)), Max()},
		{"sub", U64(7).Sub(U64(3)), U64(4)},
		{"sub saturates at zero", U64(3).Sub(U64(7)), Zero()},
		{"mul", U64(6).Mul(U64(7)), U64(42)},
		{"mul by zero", Max().Mul(Zero()), Zero()},
		{"mul saturates", Max().Mul(U64(2)), Max()},
		{"div", U64(60).Div(U64(2)), U64(30)},
		{"div floors", U64(7).Div(U64(2)), U64(3)},
		{"div by zero", U64(7).Div(Zero()), Zero()},
		{"muldiv wide intermediate", Max().MulDiv(U64(1), U64(4)), Max().Div(U64(4))},
		{"muldiv saturates", Max().MulDiv(U64(4), U64(2)), Max()},
		{"muldiv zero den", U64(5).MulDiv(U64(1), Zero()), Zero()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.want.Eq(tt.got), "want %s, got %s", tt.want, tt.got)
		})
	}
}

func TestInt_Conversions(t *testing.T) {
	require := require.New(t)

	require.Equal("1000000000000000000", Pow10(18).String())
	require.Equal(^uint64(0), Max().Uint64())
	require.Equal(uint64(42), U64(42).Uint64())

	_, ok := FromBig(big.NewInt(-1))
	require.False(ok)
	_, ok = FromBig(new(big.Int).Lsh(big.NewInt(1), 256))
	require.False(ok)

	x, err := ParseDecimal("29000000")
	require.NoError(err)
	require.True(U64(29000000).Eq(x))
	_, err = ParseDecimal("nope")
	require.Error(err)

	require.True(Min(U64(1), U64(2)).Eq(U64(1)))
	require.True(MaxOf(U64(1), U64(2)).Eq(U64(2)))
	require.True(FromBytes32(U64(99).Bytes32()).Eq(U64(99)))
}

func TestInt_TextAndRLP(t *testing.T) {
	require := require.New(t)

	orig := MustFromDecimal("1000000000000000000000")

	text, err := orig.MarshalText()
	require.NoError(err)
	var fromText Int
	require.NoError(fromText.UnmarshalText(text))
	require.True(orig.Eq(fromText))

	type holder struct {
		A Int
		B Int
	}
	buf := new(bytes.Buffer)
	require.NoError(rlp.Encode(buf, holder{A: orig, B: Zero()}))
	var h holder
	require.NoError(rlp.DecodeBytes(buf.Bytes(), &h))
	require.True(orig.Eq(h.A))
	require.True(h.B.IsZero())
}
