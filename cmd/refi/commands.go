package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"refi-advisor/domain"
	"refi-advisor/service"
)

func (a *app) newEvaluateCmd() *cobra.Command {
	var form domain.RefinanceForm

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Decide whether refinancing at a lower rate pays off",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenario, err := service.ValidateRefinanceForm(form, a.policy.Bounds)
			if err != nil {
				return a.reportValidation(cmd, err)
			}

			result, err := service.EvaluateRefinance(scenario, a.policy.Refinance)
			if err != nil {
				return err
			}
			explanation, err := service.NewTemplateExplainer(a.policy.Refinance).
				ExplainRefinance(context.Background(), scenario, result)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), a.out.advisory(scenario, result, explanation))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Balance, "balance", "", "outstanding mortgage balance (₪)")
	f.StringVar(&form.CurrentRate, "current-rate", "", "current annual rate (%)")
	f.StringVar(&form.NewRate, "new-rate", "", "offered annual rate (%)")
	f.StringVar(&form.Years, "years", "", "remaining years")
	f.StringVar(&form.Costs, "costs", "", "one-time refinance costs (₪), optional")
	return cmd
}

func (a *app) newPaymentCmd() *cobra.Command {
	var principal, rate, years string
	var schedule bool

	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Monthly payment of a fixed-rate loan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := parseLoanFlags(principal, rate, years)
			if err != nil {
				return a.reportValidation(cmd, err)
			}

			loans := service.NewLoanService(a.policy.Bounds)
			result, err := loans.CalculatePayment(req)
			if err != nil {
				return a.reportValidation(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), a.out.payment(result))

			if schedule {
				rows, err := loans.Schedule(req)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), a.out.schedule(rows))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&principal, "principal", "", "loan principal (₪)")
	f.StringVar(&rate, "rate", "", "annual rate (%)")
	f.StringVar(&years, "years", "", "term in years")
	f.BoolVar(&schedule, "schedule", false, "print the yearly amortization table")
	return cmd
}

func (a *app) newEarlyFeeCmd() *cobra.Command {
	var principal, rate, yearsLeft, track string

	cmd := &cobra.Command{
		Use:   "early-fee",
		Short: "Indicative fee for repaying the loan before term",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req domain.EarlyRepaymentRequest
			var errs service.ValidationErrors
			service.ParseInto(service.FieldPrincipal, principal, &req.Principal, &errs)
			service.ParseInto(service.FieldCurrentRate, rate, &req.CurrentRate, &errs)
			service.ParseInto(service.FieldYearsLeft, yearsLeft, &req.YearsLeft, &errs)
			if len(errs) > 0 {
				return a.reportValidation(cmd, errs)
			}
			req.Track = track

			result, err := service.NewEarlyRepaymentService(a.policy).Estimate(req)
			if err != nil {
				return a.reportValidation(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), a.out.earlyFee(result))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&principal, "principal", "", "outstanding balance (₪)")
	f.StringVar(&rate, "rate", "", "loan annual rate (%)")
	f.StringVar(&yearsLeft, "years-left", "", "remaining years")
	f.StringVar(&track, "track", "", "loan track (prime, fixed_unlinked, fixed_linked, variable_unlinked, variable_linked)")
	return cmd
}

func (a *app) newRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the configured market-average rates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rates := service.NewEarlyRepaymentService(a.policy).MarketRates()
			fmt.Fprint(cmd.OutOrStdout(), a.out.rates(rates))
			return nil
		},
	}
}

func parseLoanFlags(principal, rate, years string) (domain.LoanRequest, error) {
	var req domain.LoanRequest
	var errs service.ValidationErrors
	service.ParseInto(service.FieldPrincipal, principal, &req.Principal, &errs)
	service.ParseInto(service.FieldAnnualRate, rate, &req.AnnualRate, &errs)
	service.ParseInto(service.FieldYears, years, &req.Years, &errs)
	if len(errs) > 0 {
		return req, errs
	}
	return req, nil
}
