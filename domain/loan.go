package domain

// LoanTerms describes one fixed-rate amortizing regime.
type LoanTerms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	RemainingYears    float64 `json:"remaining_years"`
}

// LoanRequest is the raw payment request. Nil fields were left blank.
type LoanRequest struct {
	Principal  *float64 `json:"principal"`
	AnnualRate *float64 `json:"annual_rate"`
	Years      *float64 `json:"years"`
}

type PaymentResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TermMonths     int     `json:"term_months"`
}

// AmortizationRow aggregates one year of the payment schedule.
type AmortizationRow struct {
	Year          int     `json:"year"`
	PrincipalPaid float64 `json:"principal_paid"`
	InterestPaid  float64 `json:"interest_paid"`
	EndingBalance float64 `json:"ending_balance"`
}
