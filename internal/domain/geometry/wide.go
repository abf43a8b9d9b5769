package geometry

import "math/bits"

// Exact 128-bit helpers for products of raw coordinates, which overflow int64
// once two cross products are multiplied together.

func absU(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

// cmpProducts compares a*b with c*d exactly and returns -1, 0 or 1.
func cmpProducts(a, b, c, d int64) int {
	n1 := (a < 0) != (b < 0) && a != 0 && b != 0
	n2 := (c < 0) != (d < 0) && c != 0 && d != 0
	h1, l1 := bits.Mul64(absU(a), absU(b))
	h2, l2 := bits.Mul64(absU(c), absU(d))

	switch {
	case n1 && !n2:
		if h1|l1 == 0 && h2|l2 == 0 {
			return 0
		}
		return -1
	case !n1 && n2:
		if h1|l1 == 0 && h2|l2 == 0 {
			return 0
		}
		return 1
	}

	r := cmpU128(h1, l1, h2, l2)
	if n1 {
		return -r
	}
	return r
}

func cmpU128(h1, l1, h2, l2 uint64) int {
	switch {
	case h1 < h2:
		return -1
	case h1 > h2:
		return 1
	case l1 < l2:
		return -1
	case l1 > l2:
		return 1
	}
	return 0
}

// mulDiv returns a*b/c truncated toward zero. The quotient must fit in int64.
func mulDiv(a, b, c int64) int64 {
	if c == 0 || a == 0 || b == 0 {
		return 0
	}
	neg := ((a < 0) != (b < 0)) != (c < 0)
	hi, lo := bits.Mul64(absU(a), absU(b))
	q, _ := bits.Div64(hi, lo, absU(c))
	if neg {
		return -int64(q)
	}
	return int64(q)
}
