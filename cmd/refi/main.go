// Command refi is the terminal front end of the refinance advisor.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"refi-advisor/config"
	"refi-advisor/domain"
	"refi-advisor/service"
)

type app struct {
	policyFile string
	plain      bool
	policy     domain.Policy
	out        renderer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "refi",
		Short:         "Mortgage refinance and early-repayment calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			policy, err := config.LoadPolicy(a.policyFile)
			if err != nil {
				return err
			}
			a.policy = policy
			styled := !a.plain && isTerminal(cmd)
			a.out = newRenderer(styled)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.policyFile, "policy", "", "policy YAML overriding the built-in 2024/2025 values")
	root.PersistentFlags().BoolVar(&a.plain, "plain", false, "disable colours and borders")

	root.AddCommand(
		a.newEvaluateCmd(),
		a.newPaymentCmd(),
		a.newEarlyFeeCmd(),
		a.newRatesCmd(),
	)
	return root
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// reportValidation prints every field error and returns err unchanged so
// the exit code reflects it.
func (a *app) reportValidation(cmd *cobra.Command, err error) error {
	var verrs service.ValidationErrors
	if !errors.As(err, &verrs) {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	fmt.Fprint(cmd.ErrOrStderr(), a.out.validation(verrs))
	return err
}
