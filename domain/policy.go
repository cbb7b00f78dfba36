package domain

// Policy gathers every yearly-tunable number the calculators depend on.
type Policy struct {
	Refinance      RefinancePolicy      `yaml:"refinance" json:"refinance"`
	EarlyRepayment EarlyRepaymentPolicy `yaml:"early_repayment" json:"early_repayment"`
	Bounds         ValidationBounds     `yaml:"bounds" json:"bounds"`
}

type RefinancePolicy struct {
	// MinMonthlySavings is the floor the monthly savings must exceed.
	MinMonthlySavings float64 `yaml:"min_monthly_savings" json:"min_monthly_savings"`
	// MaxBreakEvenMonths is the exclusive ceiling on the break-even period
	// when refinance costs are present.
	MaxBreakEvenMonths float64 `yaml:"max_break_even_months" json:"max_break_even_months"`
}

type EarlyRepaymentPolicy struct {
	DefaultTrack string `yaml:"default_track" json:"default_track"`
	// FeeCap limits the estimated fee. Zero disables the cap.
	FeeCap      float64            `yaml:"fee_cap" json:"fee_cap"`
	MarketRates map[string]float64 `yaml:"market_rates" json:"market_rates"`
}

// ValidationBounds are the accepted input ranges of the calculator forms.
type ValidationBounds struct {
	MaxBalance     float64 `yaml:"max_balance" json:"max_balance"`
	MaxRatePercent float64 `yaml:"max_rate_percent" json:"max_rate_percent"`
	MinYears       float64 `yaml:"min_years" json:"min_years"`
	MaxYears       float64 `yaml:"max_years" json:"max_years"`
	MaxCosts       float64 `yaml:"max_costs" json:"max_costs"`
}
