package service

const (
	MonthsPerYear = 12

	// Early-repayment fee step function: 8% of the rate delta per started
	// five-year block of remaining term, capped at 25%.
	EarlyRepaymentStepYears  = 5.0
	EarlyRepaymentStepFactor = 0.08
	EarlyRepaymentMaxFactor  = 0.25

	// BalanceTolerance is the residue below which a schedule counts as repaid (one agora).
	BalanceTolerance = 0.01

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

// Loan tracks of the Israeli mortgage market.
const (
	TrackPrime            = "prime"
	TrackFixedUnlinked    = "fixed_unlinked"
	TrackFixedLinked      = "fixed_linked"
	TrackVariableUnlinked = "variable_unlinked"
	TrackVariableLinked   = "variable_linked"
)
