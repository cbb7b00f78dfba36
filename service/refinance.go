package service

import (
	"errors"
	"fmt"

	"refi-advisor/domain"
)

// ErrTermMismatch rejects scenarios that change principal or term along
// with the rate; only like-for-like comparisons are modelled.
var ErrTermMismatch = errors.New("current and proposed terms must share principal and remaining years")

// EvaluateRefinance compares the current and proposed regimes and decides
// whether refinancing pays off under policy. It never clamps negative
// savings; a proposed rate at or above the current one is accepted here and
// simply yields a non-worthwhile result.
func EvaluateRefinance(
	scenario domain.RefinanceScenario,
	policy domain.RefinancePolicy,
) (domain.AdvisoryResult, error) {

	if scenario.Current.Principal != scenario.Proposed.Principal ||
		scenario.Current.RemainingYears != scenario.Proposed.RemainingYears {
		return domain.AdvisoryResult{}, ErrTermMismatch
	}

	current, err := MonthlyPayment(
		scenario.Current.Principal,
		scenario.Current.AnnualRatePercent,
		scenario.Current.RemainingYears,
	)
	if err != nil {
		return domain.AdvisoryResult{}, fmt.Errorf("current terms: %w", err)
	}
	proposed, err := MonthlyPayment(
		scenario.Proposed.Principal,
		scenario.Proposed.AnnualRatePercent,
		scenario.Proposed.RemainingYears,
	)
	if err != nil {
		return domain.AdvisoryResult{}, fmt.Errorf("proposed terms: %w", err)
	}

	// Savings accrue over the n payments the loan actually has.
	monthlySavings := current - proposed
	payments := float64(termMonths(scenario.Current.RemainingYears))
	totalSavings := monthlySavings*payments - scenario.Costs

	result := domain.AdvisoryResult{
		CurrentMonthlyPayment: current,
		NewMonthlyPayment:     proposed,
		MonthlySavings:        monthlySavings,
		TotalSavings:          totalSavings,
		SavingsPercentage:     monthlySavings / current * 100,
	}

	if scenario.Costs > 0 {
		if monthlySavings > 0 {
			result.BreakEvenMonths = scenario.Costs / monthlySavings
		} else {
			result.NeverBreaksEven = true
		}
	}

	result.Reason = decide(result, scenario.Costs, policy)
	result.IsWorthwhile = result.Reason == domain.ReasonWorthwhile
	return result, nil
}

func decide(r domain.AdvisoryResult, costs float64, policy domain.RefinancePolicy) domain.ReasonCode {
	switch {
	case r.MonthlySavings <= policy.MinMonthlySavings:
		return domain.ReasonSavingsTooSmall
	case r.TotalSavings <= 0:
		return domain.ReasonNegativeTotalSavings
	case costs > 0 && (r.NeverBreaksEven || r.BreakEvenMonths >= policy.MaxBreakEvenMonths):
		return domain.ReasonBreakEvenTooLong
	}
	return domain.ReasonWorthwhile
}
