package ledger

import "math"

// Rate is the fixed toll fee per unit distance between toll points.
const Rate = 1.0

// Fee charges for the distance between the entry and exit toll points.
func Fee(entryPoint, exitPoint int) float64 {
	return math.Abs(float64(exitPoint-entryPoint)) * Rate
}
