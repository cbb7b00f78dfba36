package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"refi-advisor/domain"
)

//go:embed default-policy.yaml
var defaultPolicyYAML []byte

// DefaultPolicy returns the embedded policy.
func DefaultPolicy() (domain.Policy, error) {
	var p domain.Policy
	if err := yaml.Unmarshal(defaultPolicyYAML, &p); err != nil {
		return domain.Policy{}, fmt.Errorf("parse default policy: %w", err)
	}
	return p, validatePolicy(p)
}

// LoadPolicy reads a policy file layered over the embedded defaults, so a
// file only needs the values it changes. An empty path yields the defaults.
func LoadPolicy(path string) (domain.Policy, error) {
	p, err := DefaultPolicy()
	if err != nil || path == "" {
		return p, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Policy{}, err
	}
	return ParsePolicy(data, p)
}

// ParsePolicy decodes data over base and validates the result.
func ParsePolicy(data []byte, base domain.Policy) (domain.Policy, error) {
	p := base
	rates := make(map[string]float64, len(base.EarlyRepayment.MarketRates))
	for k, v := range base.EarlyRepayment.MarketRates {
		rates[k] = v
	}
	p.EarlyRepayment.MarketRates = rates

	if err := yaml.Unmarshal(data, &p); err != nil {
		return domain.Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	if err := validatePolicy(p); err != nil {
		return domain.Policy{}, err
	}
	return p, nil
}

func validatePolicy(p domain.Policy) error {
	var errs []error
	if p.Refinance.MinMonthlySavings < 0 {
		errs = append(errs, errors.New("refinance.min_monthly_savings must not be negative"))
	}
	if p.Refinance.MaxBreakEvenMonths <= 0 {
		errs = append(errs, errors.New("refinance.max_break_even_months must be positive"))
	}
	if p.EarlyRepayment.FeeCap < 0 {
		errs = append(errs, errors.New("early_repayment.fee_cap must not be negative"))
	}
	if len(p.EarlyRepayment.MarketRates) == 0 {
		errs = append(errs, errors.New("early_repayment.market_rates must list at least one track"))
	}
	for track, rate := range p.EarlyRepayment.MarketRates {
		if rate < 0 {
			errs = append(errs, fmt.Errorf("early_repayment.market_rates.%s must not be negative", track))
		}
	}
	if _, ok := p.EarlyRepayment.MarketRates[p.EarlyRepayment.DefaultTrack]; !ok {
		errs = append(errs, fmt.Errorf("early_repayment.default_track %q has no market rate", p.EarlyRepayment.DefaultTrack))
	}
	b := p.Bounds
	if b.MaxBalance <= 0 || b.MaxRatePercent <= 0 || b.MaxCosts < 0 {
		errs = append(errs, errors.New("bounds: max_balance and max_rate_percent must be positive, max_costs non-negative"))
	}
	if b.MinYears <= 0 || b.MaxYears < b.MinYears {
		errs = append(errs, errors.New("bounds: need 0 < min_years <= max_years"))
	}
	return errors.Join(errs...)
}
