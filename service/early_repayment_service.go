package service

import (
	"sort"

	"refi-advisor/domain"
)

// EarlyRepaymentService estimates full-repayment fees against the
// configured market-average rates.
type EarlyRepaymentService struct {
	policy domain.Policy
}

func NewEarlyRepaymentService(policy domain.Policy) *EarlyRepaymentService {
	return &EarlyRepaymentService{policy: policy}
}

func (s *EarlyRepaymentService) Estimate(req domain.EarlyRepaymentRequest) (domain.EarlyRepaymentResult, error) {
	principal, rate, yearsLeft, track, err := ValidateEarlyRepayment(req, s.policy)
	if err != nil {
		return domain.EarlyRepaymentResult{}, err
	}

	market := s.policy.EarlyRepayment.MarketRates[track]
	fee := EstimateEarlyRepaymentFee(principal, rate, yearsLeft, market)

	result := domain.EarlyRepaymentResult{
		Track:                    track,
		Fee:                      fee,
		UncappedFee:              fee,
		MarketAverageRatePercent: market,
		RateDelta:                max(0, rate-market),
		Factor:                   earlyRepaymentFactor(yearsLeft),
	}
	if feeCap := s.policy.EarlyRepayment.FeeCap; feeCap > 0 && fee > feeCap {
		result.Fee = feeCap
		result.Capped = true
	}
	result.FormattedFee = FormatILS(result.Fee)
	return result, nil
}

// MarketRate pairs a loan track with its configured average rate.
type MarketRate struct {
	Track       string  `json:"track"`
	RatePercent float64 `json:"rate_percent"`
}

// MarketRates lists the configured tracks in name order.
func (s *EarlyRepaymentService) MarketRates() []MarketRate {
	rates := make([]MarketRate, 0, len(s.policy.EarlyRepayment.MarketRates))
	for track, rate := range s.policy.EarlyRepayment.MarketRates {
		rates = append(rates, MarketRate{Track: track, RatePercent: rate})
	}
	sort.Slice(rates, func(i, j int) bool {
		return rates[i].Track < rates[j].Track
	})
	return rates
}
