package service

import (
	"refi-advisor/domain"
)

// LoanService answers single-loan questions: payment and schedule.
type LoanService struct {
	bounds domain.ValidationBounds
}

// NewLoanService creates a new LoanService validating against bounds.
func NewLoanService(bounds domain.ValidationBounds) *LoanService {
	return &LoanService{bounds: bounds}
}

// CalculatePayment calculates the loan details based on the input parameters.
func (s *LoanService) CalculatePayment(req domain.LoanRequest) (domain.PaymentResult, error) {
	terms, err := ValidateLoanTerms(req, s.bounds)
	if err != nil {
		return domain.PaymentResult{}, err
	}

	result, err := CalculatePayment(terms)
	if err != nil {
		return domain.PaymentResult{}, err
	}

	return domain.PaymentResult{
		MonthlyPayment: roundTo2Decimals(result.MonthlyPayment),
		TotalPayment:   roundTo2Decimals(result.TotalPayment),
		TotalInterest:  roundTo2Decimals(result.TotalInterest),
		TermMonths:     result.TermMonths,
	}, nil
}

// Schedule returns the yearly amortization table of the loan.
func (s *LoanService) Schedule(req domain.LoanRequest) ([]domain.AmortizationRow, error) {
	terms, err := ValidateLoanTerms(req, s.bounds)
	if err != nil {
		return nil, err
	}
	return AmortizationSchedule(terms)
}
