package chain

import "math"

// DeltaInRange reports whether |delta| lies within |tolerance| of |target|.
// Signs are ignored so put and call deltas compare the same way.
func DeltaInRange(target, tolerance, delta float64) bool {
	absTarget := math.Abs(target)
	absTolerance := math.Abs(tolerance)
	absDelta := math.Abs(delta)
	return absTarget-absTolerance <= absDelta && absDelta <= absTarget+absTolerance
}

// FilterByDelta returns the contracts whose delta is in range, preserving order.
func FilterByDelta(contracts []Contract, target, tolerance float64) []Contract {
	var matches []Contract
	for _, c := range contracts {
		if c.InDeltaRange(target, tolerance) {
			matches = append(matches, c)
		}
	}
	return matches
}
