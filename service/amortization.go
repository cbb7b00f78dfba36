package service

import (
	"errors"
	"math"

	"refi-advisor/domain"
)

var (
	ErrInvalidTerm      = errors.New("loan term must cover at least one monthly payment")
	ErrInvalidRate      = errors.New("annual rate must be a finite non-negative number")
	ErrInvalidPrincipal = errors.New("principal must be a finite positive number")
)

// roundTo2Decimals rounds a float64 to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func termMonths(years float64) int {
	return int(math.Round(years * MonthsPerYear))
}

// MonthlyPayment returns the fixed monthly payment that retires principal
// over years at annualRatePercent. A zero rate amortizes straight-line.
func MonthlyPayment(principal, annualRatePercent, years float64) (float64, error) {
	if math.IsNaN(principal) || math.IsInf(principal, 0) || principal <= 0 {
		return 0, ErrInvalidPrincipal
	}
	if math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) || annualRatePercent < 0 {
		return 0, ErrInvalidRate
	}
	if math.IsNaN(years) || math.IsInf(years, 0) {
		return 0, ErrInvalidTerm
	}
	n := termMonths(years)
	if n < 1 {
		return 0, ErrInvalidTerm
	}

	i := annualRatePercent / 100 / MonthsPerYear
	if i == 0 {
		return principal / float64(n), nil
	}

	growth := math.Pow(1+i, float64(n))
	return principal * i * growth / (growth - 1), nil
}

// CalculatePayment expands MonthlyPayment with the totals over the term.
func CalculatePayment(terms domain.LoanTerms) (domain.PaymentResult, error) {
	payment, err := MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.RemainingYears)
	if err != nil {
		return domain.PaymentResult{}, err
	}
	n := termMonths(terms.RemainingYears)
	total := payment * float64(n)

	return domain.PaymentResult{
		MonthlyPayment: payment,
		TotalPayment:   total,
		TotalInterest:  total - terms.Principal,
		TermMonths:     n,
	}, nil
}

// AmortizationSchedule simulates the loan month by month and reports one
// row per year. The last row ends on a zero balance.
func AmortizationSchedule(terms domain.LoanTerms) ([]domain.AmortizationRow, error) {
	payment, err := MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.RemainingYears)
	if err != nil {
		return nil, err
	}

	n := termMonths(terms.RemainingYears)
	i := terms.AnnualRatePercent / 100 / MonthsPerYear
	balance := terms.Principal

	rows := make([]domain.AmortizationRow, 0, (n+MonthsPerYear-1)/MonthsPerYear)
	var row domain.AmortizationRow
	for month := 1; month <= n; month++ {
		interest := balance * i
		principalPaid := payment - interest
		if month == n || principalPaid > balance {
			principalPaid = balance
		}
		balance -= principalPaid
		if balance < BalanceTolerance {
			balance = 0
		}

		row.InterestPaid += interest
		row.PrincipalPaid += principalPaid

		if month%MonthsPerYear == 0 || month == n {
			row.Year = (month + MonthsPerYear - 1) / MonthsPerYear
			row.EndingBalance = roundTo2Decimals(balance)
			row.InterestPaid = roundTo2Decimals(row.InterestPaid)
			row.PrincipalPaid = roundTo2Decimals(row.PrincipalPaid)
			rows = append(rows, row)
			row = domain.AmortizationRow{}
		}
	}
	return rows, nil
}
