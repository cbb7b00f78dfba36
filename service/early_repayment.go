package service

import "math"

// EstimateEarlyRepaymentFee approximates the penalty for repaying a loan
// before term. It is indicative only: the fee is a share of the principal
// proportional to how far the loan rate sits above the market average.
func EstimateEarlyRepaymentFee(
	principal float64,
	currentRatePercent float64,
	yearsLeft float64,
	marketAverageRatePercent float64,
) float64 {
	delta := math.Max(0, currentRatePercent-marketAverageRatePercent)
	if delta == 0 {
		return 0
	}
	return principal * (delta / 100) * earlyRepaymentFactor(yearsLeft)
}

func earlyRepaymentFactor(yearsLeft float64) float64 {
	if yearsLeft <= 0 {
		return 0
	}
	steps := math.Ceil(yearsLeft / EarlyRepaymentStepYears)
	return math.Min(EarlyRepaymentMaxFactor, EarlyRepaymentStepFactor*steps)
}
