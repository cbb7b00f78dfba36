package repository

import (
	"context"
	"database/sql"

	"refi-advisor/domain"
)

// AdvisoryRepositorySQLite persists the calculation log in sqlite.
type AdvisoryRepositorySQLite struct {
	db *sql.DB
}

func NewAdvisoryRepositorySQLite(db *sql.DB) *AdvisoryRepositorySQLite {
	return &AdvisoryRepositorySQLite{db: db}
}

func (r *AdvisoryRepositorySQLite) Save(ctx context.Context, rec domain.AdvisoryRecord) error {
	s, res := rec.Scenario, rec.Result
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO advisories(
	 id, created_at, principal, current_rate, new_rate, remaining_years, costs,
	 current_payment, new_payment, monthly_savings, total_savings,
	 break_even_months, never_breaks_even, savings_percentage, is_worthwhile, reason)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		rec.ID, rec.CreatedAt.UTC(),
		s.Current.Principal, s.Current.AnnualRatePercent, s.Proposed.AnnualRatePercent, s.Current.RemainingYears, s.Costs,
		res.CurrentMonthlyPayment, res.NewMonthlyPayment, res.MonthlySavings, res.TotalSavings,
		res.BreakEvenMonths, res.NeverBreaksEven, res.SavingsPercentage, res.IsWorthwhile, string(res.Reason),
	)
	return err
}

func (r *AdvisoryRepositorySQLite) Recent(ctx context.Context, limit int) ([]domain.AdvisoryRecord, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, created_at, principal, current_rate, new_rate, remaining_years, costs,
	 current_payment, new_payment, monthly_savings, total_savings,
	 break_even_months, never_breaks_even, savings_percentage, is_worthwhile, reason
	FROM advisories ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AdvisoryRecord
	for rows.Next() {
		var rec domain.AdvisoryRecord
		var newRate float64
		var reason string
		s, res := &rec.Scenario, &rec.Result
		if err := rows.Scan(
			&rec.ID, &rec.CreatedAt,
			&s.Current.Principal, &s.Current.AnnualRatePercent, &newRate, &s.Current.RemainingYears, &s.Costs,
			&res.CurrentMonthlyPayment, &res.NewMonthlyPayment, &res.MonthlySavings, &res.TotalSavings,
			&res.BreakEvenMonths, &res.NeverBreaksEven, &res.SavingsPercentage, &res.IsWorthwhile, &reason,
		); err != nil {
			return nil, err
		}
		s.Proposed = domain.LoanTerms{
			Principal:         s.Current.Principal,
			AnnualRatePercent: newRate,
			RemainingYears:    s.Current.RemainingYears,
		}
		res.Reason = domain.ReasonCode(reason)
		out = append(out, rec)
	}
	return out, rows.Err()
}
