package pow

import (
	"github.com/rony4d/go-civic/utils/safe"
)

// Retarget scales old by expected/actual seconds. The result is clamped to
// [old/maxFactor, old*maxFactor] and never drops below min. An actual span of
// zero is treated as the fastest possible window.
func Retarget(old safe.Int, expected, actual uint64, maxFactor uint64, min safe.Int) safe.Int {
	if maxFactor == 0 {
		maxFactor = 1
	}
	factor := safe.U64(maxFactor)
	upper := old.Mul(factor)
	lower := old.Div(factor)

	var next safe.Int
	if actual == 0 {
		next = upper
	} else {
		next = old.MulDiv(safe.U64(expected), safe.U64(actual))
	}

	if next.Gt(upper) {
		next = upper
	}
	if next.Lt(lower) {
		next = lower
	}
	return safe.MaxOf(next, min)
}
