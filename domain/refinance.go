package domain

import "time"

type ReasonCode string

const (
	ReasonWorthwhile           ReasonCode = "worthwhile"
	ReasonSavingsTooSmall      ReasonCode = "savings_too_small"
	ReasonNegativeTotalSavings ReasonCode = "negative_total_savings"
	ReasonBreakEvenTooLong     ReasonCode = "break_even_too_long"
)

// RefinanceRequest carries the refinance form as submitted. Nil fields were
// left blank; Costs is optional.
type RefinanceRequest struct {
	Balance     *float64 `json:"balance"`
	CurrentRate *float64 `json:"current_rate"`
	NewRate     *float64 `json:"new_rate"`
	Years       *float64 `json:"years"`
	Costs       *float64 `json:"costs,omitempty"`
}

// RefinanceForm is the same form before number parsing, as typed by a user.
type RefinanceForm struct {
	Balance     string
	CurrentRate string
	NewRate     string
	Years       string
	Costs       string
}

type RefinanceScenario struct {
	Current  LoanTerms `json:"current"`
	Proposed LoanTerms `json:"proposed"`
	Costs    float64   `json:"costs"`
}

// AdvisoryResult is never clamped: savings and percentage may be negative.
// NeverBreaksEven is set when costs can not be recouped because the
// monthly savings are not positive.
type AdvisoryResult struct {
	CurrentMonthlyPayment float64    `json:"current_monthly_payment"`
	NewMonthlyPayment     float64    `json:"new_monthly_payment"`
	MonthlySavings        float64    `json:"monthly_savings"`
	TotalSavings          float64    `json:"total_savings"`
	BreakEvenMonths       float64    `json:"break_even_months"`
	NeverBreaksEven       bool       `json:"never_breaks_even"`
	SavingsPercentage     float64    `json:"savings_percentage"`
	IsWorthwhile          bool       `json:"is_worthwhile"`
	Reason                ReasonCode `json:"reason"`
}

// RefinanceEvaluation is what presentation layers receive for one request.
type RefinanceEvaluation struct {
	ID          string            `json:"id"`
	Scenario    RefinanceScenario `json:"scenario"`
	Result      AdvisoryResult    `json:"result"`
	Explanation string            `json:"explanation"`
	Formatted   FormattedAdvisory `json:"formatted"`
}

// FormattedAdvisory holds the he-IL renderings of the result figures.
type FormattedAdvisory struct {
	CurrentMonthlyPayment string `json:"current_monthly_payment"`
	NewMonthlyPayment     string `json:"new_monthly_payment"`
	MonthlySavings        string `json:"monthly_savings"`
	TotalSavings          string `json:"total_savings"`
	SavingsPercentage     string `json:"savings_percentage"`
	Headline              string `json:"headline"`
}

// AdvisoryRecord is one logged evaluation.
type AdvisoryRecord struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Scenario  RefinanceScenario `json:"scenario"`
	Result    AdvisoryResult    `json:"result"`
}
