package inter

import (
	"fmt"

	"github.com/rony4d/go-civic/utils/safe"
)

// Perbill is a ratio in parts per billion. PerbillOne is 100%.
type Perbill uint32

const PerbillOne Perbill = 1_000_000_000

// PerbillFromPercent converts a whole percentage, clamping at 100%.
func PerbillFromPercent(p uint32) Perbill {
	if p >= 100 {
		return PerbillOne
	}
	return Perbill(p) * 10_000_000
}

// PerbillFromRational returns floor(num/den) as Perbill, clamped to [0, 100%].
// A zero denominator yields 100%.
func PerbillFromRational(num, den uint64) Perbill {
	if den == 0 || num >= den {
		return PerbillOne
	}
	return Perbill(uint64(PerbillOne) * num / den)
}

// MulFloor returns floor(x * p / 1e9).
func (p Perbill) MulFloor(x safe.Int) safe.Int {
	if p >= PerbillOne {
		return x
	}
	return x.MulDiv(safe.U64(uint64(p)), safe.U64(uint64(PerbillOne)))
}

func (p Perbill) String() string {
	return fmt.Sprintf("%d.%07d%%", p/10_000_000, p%10_000_000)
}
