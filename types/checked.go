// Package types provides common types used across Pyebwa.
package types

import "math/bits"

// Checked unsigned arithmetic for credit accounting. All balances, supplies,
// and payments are unsigned integers in the smallest unit — no floating point.
// Every operation reports overflow instead of wrapping; callers translate a
// false ok into ErrMathOverflow at the operation boundary.

// AddU64 returns a + b and whether the sum fits in 64 bits.
func AddU64(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// SubU64 returns a - b and whether the difference is non-negative.
// Unsigned balances never wrap: an underflow is a hard failure.
func SubU64(a, b uint64) (uint64, bool) {
	diff, borrow := bits.Sub64(a, b, 0)
	return diff, borrow == 0
}

// MulU64 returns a * b and whether the product fits in 64 bits.
func MulU64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// AddU32 returns a + b and whether the sum fits in 32 bits.
func AddU32(a, b uint32) (uint32, bool) {
	sum := uint64(a) + uint64(b)
	return uint32(sum), sum <= maxU32
}

// SatAddU16 returns a + b saturating at limit rather than failing.
// Used for bounded scores where overshoot clamps instead of erroring.
func SatAddU16(a, b, limit uint16) uint16 {
	sum := uint32(a) + uint32(b)
	if sum > uint32(limit) {
		return limit
	}
	return uint16(sum)
}

const maxU32 = 1<<32 - 1

// BasisPoints expresses a rate where 10000 = 100%.
type BasisPoints uint16

// MaxBasisPoints is the full rate (100%).
const MaxBasisPoints BasisPoints = 10000

// Valid reports whether the rate is within [0, 10000].
func (bp BasisPoints) Valid() bool { return bp <= MaxBasisPoints }

// ApplyTo returns amount * bp / 10000 using integer truncation.
// The multiply is checked; the divide by the constant 10000 cannot
// overflow and cannot divide by zero.
func (bp BasisPoints) ApplyTo(amount uint64) (uint64, bool) {
	product, ok := MulU64(amount, uint64(bp))
	if !ok {
		return 0, false
	}
	return product / uint64(MaxBasisPoints), true
}
