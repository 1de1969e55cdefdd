// Package safe implements the fixed-width unsigned arithmetic used for
// balances, supply and difficulty. Every operation saturates: results clamp at
// zero on underflow and at 2^256-1 on overflow instead of wrapping.
package safe

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// Int is an immutable 256-bit unsigned integer. The zero value is 0.
type Int struct {
	v uint256.Int
}

var (
	maxInt = func() Int {
		v, _ := uint256.FromBig(math.MaxBig256)
		return Int{v: *v}
	}()
)

// Zero returns 0.
func Zero() Int { return Int{} }

// Max returns 2^256-1.
func Max() Int { return maxInt }

// U64 converts an unsigned machine integer.
func U64(x uint64) Int {
	var z Int
	z.v.SetUint64(x)
	return z
}

// FromBig converts b, reporting false when b is negative or wider than 256 bits.
func FromBig(b *big.Int) (Int, bool) {
	if b == nil {
		return Int{}, true
	}
	if b.Sign() < 0 {
		return Int{}, false
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return Int{}, false
	}
	return Int{v: *v}, true
}

// MustFromDecimal parses a base-10 string and panics on malformed input.
// It is meant for constants.
func MustFromDecimal(s string) Int {
	x, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return x
}

// ParseDecimal parses a non-negative base-10 (or 0x-prefixed) integer.
func ParseDecimal(s string) (Int, error) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Int{}, fmt.Errorf("invalid integer %q", s)
	}
	x, ok := FromBig(b)
	if !ok {
		return Int{}, fmt.Errorf("integer %q out of 256-bit range", s)
	}
	return x, nil
}

// Pow10 returns 10^n saturated to 256 bits.
func Pow10(n uint8) Int {
	x, ok := FromBig(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil))
	if !ok {
		return maxInt
	}
	return x
}

// Add returns x+y, saturating at Max.
func (x Int) Add(y Int) Int {
	var z Int
	z.v.Add(&x.v, &y.v)
	if z.v.Lt(&x.v) {
		return maxInt
	}
	return z
}

// Sub returns x-y, saturating at zero.
func (x Int) Sub(y Int) Int {
	if x.v.Lt(&y.v) {
		return Int{}
	}
	var z Int
	z.v.Sub(&x.v, &y.v)
	return z
}

// Mul returns x*y, saturating at Max.
func (x Int) Mul(y Int) Int {
	if x.IsZero() || y.IsZero() {
		return Int{}
	}
	var z, back Int
	z.v.Mul(&x.v, &y.v)
	back.v.Div(&z.v, &x.v)
	if !back.v.Eq(&y.v) {
		return maxInt
	}
	return z
}

// Div returns floor(x/y). Division by zero yields zero.
func (x Int) Div(y Int) Int {
	if y.IsZero() {
		return Int{}
	}
	var z Int
	z.v.Div(&x.v, &y.v)
	return z
}

// MulDiv returns floor(x*num/den) computed without intermediate overflow,
// saturating the final result. A zero denominator yields zero.
func (x Int) MulDiv(num, den Int) Int {
	if den.IsZero() {
		return Int{}
	}
	r := new(big.Int).Mul(x.v.ToBig(), num.v.ToBig())
	r.Quo(r, den.v.ToBig())
	z, ok := FromBig(r)
	if !ok {
		return maxInt
	}
	return z
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int { return x.v.Cmp(&y.v) }

// Lt reports x < y.
func (x Int) Lt(y Int) bool { return x.v.Lt(&y.v) }

// Gt reports x > y.
func (x Int) Gt(y Int) bool { return x.v.Gt(&y.v) }

// Eq reports x == y.
func (x Int) Eq(y Int) bool { return x.v.Eq(&y.v) }

// IsZero reports x == 0.
func (x Int) IsZero() bool { return x.v.IsZero() }

// Min returns the smaller of x and y.
func Min(x, y Int) Int {
	if x.Lt(y) {
		return x
	}
	return y
}

// MaxOf returns the larger of x and y.
func MaxOf(x, y Int) Int {
	if x.Gt(y) {
		return x
	}
	return y
}

// Uint64 returns x clamped to the uint64 range.
func (x Int) Uint64() uint64 {
	if !x.v.IsUint64() {
		return ^uint64(0)
	}
	return x.v.Uint64()
}

// Big returns a fresh big.Int copy of x.
func (x Int) Big() *big.Int { return x.v.ToBig() }

// Float64 is a lossy conversion used by metrics.
func (x Int) Float64() float64 {
	f, _ := new(big.Float).SetInt(x.v.ToBig()).Float64()
	return f
}

// Bytes32 returns the big-endian 32-byte encoding of x.
func (x Int) Bytes32() [32]byte { return x.v.Bytes32() }

// FromBytes32 decodes a big-endian 32-byte value.
func FromBytes32(b [32]byte) Int {
	var z Int
	z.v.SetBytes(b[:])
	return z
}

func (x Int) String() string { return x.v.ToBig().String() }

// MarshalText implements encoding.TextMarshaler as a base-10 string.
func (x Int) MarshalText() ([]byte, error) { return []byte(x.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := ParseDecimal(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// EncodeRLP encodes x as an RLP big integer.
func (x Int) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, x.v.ToBig())
}

// DecodeRLP decodes an RLP big integer, rejecting values wider than 256 bits.
func (x *Int) DecodeRLP(s *rlp.Stream) error {
	b := new(big.Int)
	if err := s.Decode(b); err != nil {
		return err
	}
	v, ok := FromBig(b)
	if !ok {
		return fmt.Errorf("rlp: integer %s exceeds 256 bits", b)
	}
	*x = v
	return nil
}
