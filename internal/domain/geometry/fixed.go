// Package geometry provides the deterministic fixed-point primitives used by the
// collision core: vectors, boxes, right triangles, line segments and the
// parallelograms swept by diagonal moves.
//
// Every scalar is a fixed.Int52_12. Sub-pixel motion is quantized to StepSize
// (1/256 px) so that repeated incremental moves never accumulate residue.
package geometry

import "golang.org/x/image/math/fixed"

const (
	// FracBits is the number of fractional bits of fixed.Int52_12.
	FracBits = 12

	// StepBits is the sub-pixel resolution used by every stepped sweep (1/256 px).
	StepBits = 8
)

const (
	One      fixed.Int52_12 = 1 << FracBits
	Half     fixed.Int52_12 = One / 2
	StepSize fixed.Int52_12 = One >> StepBits
)

// I converts an integer pixel count to fixed point.
func I(i int) fixed.Int52_12 {
	return fixed.Int52_12(int64(i) << FracBits)
}

// Frac returns num/den in fixed point, truncated toward zero.
func Frac(num, den int) fixed.Int52_12 {
	return fixed.Int52_12((int64(num) << FracBits) / int64(den))
}

// Raw builds a value from its raw 52.12 representation.
func Raw(raw int64) fixed.Int52_12 {
	return fixed.Int52_12(raw)
}

// Div returns a/b truncated toward zero. b must not be zero.
func Div(a, b fixed.Int52_12) fixed.Int52_12 {
	return fixed.Int52_12((int64(a) << FracBits) / int64(b))
}

// MulDiv returns a*b/c without the intermediate rounding of Mul.
func MulDiv(a, b, c fixed.Int52_12) fixed.Int52_12 {
	return fixed.Int52_12(mulDiv(int64(a), int64(b), int64(c)))
}

// TruncFracPart drops every bit below StepSize, rounding toward negative infinity.
func TruncFracPart(x fixed.Int52_12) fixed.Int52_12 {
	return x &^ (StepSize - 1)
}

// Abs returns |x|.
func Abs(x fixed.Int52_12) fixed.Int52_12 {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(x fixed.Int52_12) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func Min(a, b fixed.Int52_12) fixed.Int52_12 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b fixed.Int52_12) fixed.Int52_12 {
	if a > b {
		return a
	}
	return b
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi fixed.Int52_12) fixed.Int52_12 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ToFloat converts to float64 for rendering only. Never feed the result back into the simulation.
func ToFloat(x fixed.Int52_12) float64 {
	return float64(x) / float64(One)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorDiv returns floor(a/b) as an integer cell index.
func FloorDiv(a, b fixed.Int52_12) int {
	return int(floorDiv(int64(a), int64(b)))
}

// CeilDiv returns ceil(a/b) as an integer cell index.
func CeilDiv(a, b fixed.Int52_12) int {
	return -int(floorDiv(-int64(a), int64(b)))
}
