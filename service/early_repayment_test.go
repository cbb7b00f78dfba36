package service

import (
	"testing"

	"refi-advisor/domain"
)

func TestEstimateEarlyRepaymentFee(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		current   float64
		yearsLeft float64
		market    float64
		expected  float64
	}{
		{"five years, one step", 1000000, 6.0, 5, 4.9, 1000000 * 0.011 * 0.08},
		{"just over five years, two steps", 1000000, 6.0, 5.01, 4.9, 1000000 * 0.011 * 0.16},
		{"twelve years, three steps", 1000000, 6.0, 12, 4.9, 1000000 * 0.011 * 0.24},
		{"long term capped at 25%", 1000000, 6.0, 25, 4.9, 1000000 * 0.011 * 0.25},
		{"rate equals market", 1000000, 4.9, 20, 4.9, 0},
		{"rate below market", 1000000, 3.0, 20, 4.9, 0},
		{"no years left", 1000000, 6.0, 0, 4.9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateEarlyRepaymentFee(tt.principal, tt.current, tt.yearsLeft, tt.market)
			assertClose(t, tt.expected, got, 1e-6, "fee")
		})
	}
}

func testPolicy(t *testing.T) domain.Policy {
	t.Helper()
	return domain.Policy{
		Refinance: domain.RefinancePolicy{MinMonthlySavings: 500, MaxBreakEvenMonths: 24},
		EarlyRepayment: domain.EarlyRepaymentPolicy{
			DefaultTrack: TrackFixedUnlinked,
			FeeCap:       50000,
			MarketRates: map[string]float64{
				TrackPrime:         6.0,
				TrackFixedUnlinked: 4.9,
				TrackFixedLinked:   3.2,
			},
		},
		Bounds: domain.ValidationBounds{
			MaxBalance:     50000000,
			MaxRatePercent: 30,
			MinYears:       1,
			MaxYears:       35,
			MaxCosts:       500000,
		},
	}
}

func TestEarlyRepaymentService_DefaultTrack(t *testing.T) {
	svc := NewEarlyRepaymentService(testPolicy(t))

	result, err := svc.Estimate(domain.EarlyRepaymentRequest{
		Principal:   ptr(1000000),
		CurrentRate: ptr(6.0),
		YearsLeft:   ptr(12),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Track != TrackFixedUnlinked || result.MarketAverageRatePercent != 4.9 {
		t.Errorf("expected default track, got %+v", result)
	}
	assertClose(t, 2640, result.Fee, 1e-6, "fee")
	assertClose(t, 0.24, result.Factor, 1e-12, "factor")
	if result.Capped || result.FormattedFee != "₪2,640" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestEarlyRepaymentService_FeeCap(t *testing.T) {
	svc := NewEarlyRepaymentService(testPolicy(t))

	result, err := svc.Estimate(domain.EarlyRepaymentRequest{
		Principal:   ptr(50000000),
		CurrentRate: ptr(30),
		YearsLeft:   ptr(30),
		Track:       TrackPrime,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Capped || result.Fee != 50000 {
		t.Errorf("expected capped fee, got %+v", result)
	}
	if result.UncappedFee <= result.Fee {
		t.Errorf("uncapped fee %v should exceed cap", result.UncappedFee)
	}
}

func TestEarlyRepaymentService_UnknownTrack(t *testing.T) {
	svc := NewEarlyRepaymentService(testPolicy(t))

	_, err := svc.Estimate(domain.EarlyRepaymentRequest{
		Principal:   ptr(100000),
		CurrentRate: ptr(5),
		YearsLeft:   ptr(10),
		Track:       "balloon",
	})
	verrs, ok := err.(ValidationErrors)
	if !ok || !verrs.Has(FieldTrack, KindOutOfRange) {
		t.Errorf("expected track error, got %v", err)
	}
}

func TestEarlyRepaymentService_MarketRatesSorted(t *testing.T) {
	rates := NewEarlyRepaymentService(testPolicy(t)).MarketRates()
	if len(rates) != 3 {
		t.Fatalf("expected 3 rates, got %d", len(rates))
	}
	if rates[0].Track != TrackFixedLinked || rates[2].Track != TrackPrime {
		t.Errorf("unexpected order %+v", rates)
	}
}
