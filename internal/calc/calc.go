// Package calc contains the pure numeric functions shared by live display
// and CSV export. Both call sites must produce byte-identical output, so
// everything here is deterministic and side-effect-free.
package calc

import "math"

// CostPerKwh returns the cost of one kWh for a charging session, rounded to
// two decimals. Zero energy returns 0 rather than an error — an intentional
// product decision, not a division-by-zero guard gone wrong.
func CostPerKwh(totalCost, energyCharged float64) float64 {
	if energyCharged == 0 {
		return 0
	}
	return Round2(totalCost / energyCharged)
}

// Round2 rounds to two decimal places: scale by 100, round half away from
// zero, scale back. Round2(10.456) == 10.46, Round2(0.001) == 0.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
