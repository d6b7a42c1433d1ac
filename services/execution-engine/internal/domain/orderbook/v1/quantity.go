package orderbookv1

import "math"

// Epsilon is the tolerance under which a quantity counts as zero.
const Epsilon = 1e-9

// IsZero reports whether q is zero within Epsilon.
func IsZero(q float64) bool {
	return math.Abs(q) < Epsilon
}
