package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"refi-advisor/domain"
)

type ErrorKind string

const (
	KindMissingRequiredField ErrorKind = "missing_required_field"
	KindInvalidNumber        ErrorKind = "invalid_number"
	KindOutOfRange           ErrorKind = "out_of_range"
	KindInvalidRelationship  ErrorKind = "invalid_relationship"
)

// Field names as they appear on the forms and in API payloads.
const (
	FieldBalance     = "balance"
	FieldCurrentRate = "current_rate"
	FieldNewRate     = "new_rate"
	FieldYears       = "years"
	FieldCosts       = "costs"
	FieldPrincipal   = "principal"
	FieldAnnualRate  = "annual_rate"
	FieldYearsLeft   = "years_left"
	FieldTrack       = "track"
)

var fieldLabels = map[string]string{
	FieldBalance:     "יתרת המשכנתא",
	FieldCurrentRate: "הריבית הנוכחית",
	FieldNewRate:     "הריבית החדשה",
	FieldYears:       "מספר השנים שנותרו",
	FieldCosts:       "עלויות המחזור",
	FieldPrincipal:   "יתרת ההלוואה",
	FieldAnnualRate:  "הריבית השנתית",
	FieldYearsLeft:   "מספר השנים שנותרו",
	FieldTrack:       "מסלול ההלוואה",
}

type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationErrors lists every failing field of one submission.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether field failed with kind.
func (e ValidationErrors) Has(field string, kind ErrorKind) bool {
	for _, fe := range e {
		if fe.Field == field && fe.Kind == kind {
			return true
		}
	}
	return false
}

func missing(field string) FieldError {
	return FieldError{
		Field:   field,
		Kind:    KindMissingRequiredField,
		Message: "שדה חובה: " + fieldLabels[field],
	}
}

// ParseField reads a number typed into a form. Blank input yields nil.
// Thousands separators, the shekel sign and a percent sign are tolerated.
func ParseField(raw string) (*float64, error) {
	cleaned := strings.NewReplacer(",", "", shekelSign, "", "%", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	return &v, nil
}

type rangeRule struct {
	min, max     float64
	minExclusive bool
	currency     bool
	unit         string
}

func (r rangeRule) contains(v float64) bool {
	if r.minExclusive && v <= r.min {
		return false
	}
	if !r.minExclusive && v < r.min {
		return false
	}
	return v <= r.max
}

func (r rangeRule) message(field string) string {
	format := func(v float64) string {
		if r.currency {
			return FormatILS(v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64) + r.unit
	}
	label := fieldLabels[field]
	if r.minExclusive {
		return fmt.Sprintf("%s: יש להזין ערך גדול מ-%s ועד %s", label, format(r.min), format(r.max))
	}
	return fmt.Sprintf("%s: יש להזין ערך בין %s ל-%s", label, format(r.min), format(r.max))
}

type fieldCheck struct {
	field    string
	value    *float64
	required bool
	rule     rangeRule
}

// check applies the required and range rules, returning the value only
// when it passes.
func (c fieldCheck) check(errs *ValidationErrors) (float64, bool) {
	if c.value == nil {
		if c.required {
			*errs = append(*errs, missing(c.field))
		}
		return 0, false
	}
	if !c.rule.contains(*c.value) {
		*errs = append(*errs, FieldError{Field: c.field, Kind: KindOutOfRange, Message: c.rule.message(c.field)})
		return 0, false
	}
	return *c.value, true
}

func balanceRule(b domain.ValidationBounds) rangeRule {
	return rangeRule{min: 0, max: b.MaxBalance, minExclusive: true, currency: true}
}

func rateRule(b domain.ValidationBounds) rangeRule {
	return rangeRule{min: 0, max: b.MaxRatePercent, minExclusive: true, unit: "%"}
}

func yearsRule(b domain.ValidationBounds) rangeRule {
	return rangeRule{min: b.MinYears, max: b.MaxYears}
}

// ValidateRefinance checks a refinance submission and builds the scenario
// the engine runs on. All failing fields are reported together.
func ValidateRefinance(
	req domain.RefinanceRequest,
	bounds domain.ValidationBounds,
) (domain.RefinanceScenario, error) {

	var errs ValidationErrors

	balance, _ := fieldCheck{FieldBalance, req.Balance, true, balanceRule(bounds)}.check(&errs)
	current, currentOK := fieldCheck{FieldCurrentRate, req.CurrentRate, true, rateRule(bounds)}.check(&errs)
	proposed, proposedOK := fieldCheck{FieldNewRate, req.NewRate, true, rateRule(bounds)}.check(&errs)
	years, _ := fieldCheck{FieldYears, req.Years, true, yearsRule(bounds)}.check(&errs)
	costs, _ := fieldCheck{FieldCosts, req.Costs, false, rangeRule{min: 0, max: bounds.MaxCosts, currency: true}}.check(&errs)

	if currentOK && proposedOK && proposed >= current {
		errs = append(errs, FieldError{
			Field:   FieldNewRate,
			Kind:    KindInvalidRelationship,
			Message: "הריבית החדשה חייבת להיות נמוכה מהריבית הנוכחית",
		})
	}

	if len(errs) > 0 {
		return domain.RefinanceScenario{}, errs
	}

	return domain.RefinanceScenario{
		Current:  domain.LoanTerms{Principal: balance, AnnualRatePercent: current, RemainingYears: years},
		Proposed: domain.LoanTerms{Principal: balance, AnnualRatePercent: proposed, RemainingYears: years},
		Costs:    costs,
	}, nil
}

// ParseInto parses raw into *dst, recording a KindInvalidNumber error for
// field when raw is not a number. Blank input leaves *dst nil.
func ParseInto(field, raw string, dst **float64, errs *ValidationErrors) {
	v, err := ParseField(raw)
	if err != nil {
		*errs = append(*errs, FieldError{
			Field:   field,
			Kind:    KindInvalidNumber,
			Message: fieldLabels[field] + ": יש להזין מספר",
		})
		return
	}
	*dst = v
}

// ParseRefinanceForm turns typed form values into a request. Unparseable
// fields are reported as KindInvalidNumber.
func ParseRefinanceForm(form domain.RefinanceForm) (domain.RefinanceRequest, ValidationErrors) {
	var (
		req  domain.RefinanceRequest
		errs ValidationErrors
	)
	ParseInto(FieldBalance, form.Balance, &req.Balance, &errs)
	ParseInto(FieldCurrentRate, form.CurrentRate, &req.CurrentRate, &errs)
	ParseInto(FieldNewRate, form.NewRate, &req.NewRate, &errs)
	ParseInto(FieldYears, form.Years, &req.Years, &errs)
	ParseInto(FieldCosts, form.Costs, &req.Costs, &errs)
	return req, errs
}

// ValidateRefinanceForm parses and validates a typed form in one pass.
// A field that failed to parse is not reported a second time as missing.
func ValidateRefinanceForm(
	form domain.RefinanceForm,
	bounds domain.ValidationBounds,
) (domain.RefinanceScenario, error) {
	req, parseErrs := ParseRefinanceForm(form)
	scenario, err := ValidateRefinance(req, bounds)
	if len(parseErrs) == 0 {
		return scenario, err
	}

	errs := append(ValidationErrors{}, parseErrs...)
	if verrs, ok := err.(ValidationErrors); ok {
		for _, fe := range verrs {
			if fe.Kind == KindMissingRequiredField && parseErrs.Has(fe.Field, KindInvalidNumber) {
				continue
			}
			errs = append(errs, fe)
		}
	}
	return domain.RefinanceScenario{}, errs
}

// ValidateLoanTerms checks a payment request. A zero rate is allowed here:
// interest-free loans amortize straight-line.
func ValidateLoanTerms(req domain.LoanRequest, bounds domain.ValidationBounds) (domain.LoanTerms, error) {
	var errs ValidationErrors

	principal, _ := fieldCheck{FieldPrincipal, req.Principal, true, balanceRule(bounds)}.check(&errs)
	rate, _ := fieldCheck{FieldAnnualRate, req.AnnualRate, true, rangeRule{min: 0, max: bounds.MaxRatePercent, unit: "%"}}.check(&errs)
	years, _ := fieldCheck{FieldYears, req.Years, true, yearsRule(bounds)}.check(&errs)

	if len(errs) > 0 {
		return domain.LoanTerms{}, errs
	}
	return domain.LoanTerms{Principal: principal, AnnualRatePercent: rate, RemainingYears: years}, nil
}

// ValidateEarlyRepayment checks an early-repayment request against the
// configured tracks. An empty track falls back to the policy default.
func ValidateEarlyRepayment(
	req domain.EarlyRepaymentRequest,
	policy domain.Policy,
) (principal, rate, yearsLeft float64, track string, err error) {

	var errs ValidationErrors
	bounds := policy.Bounds

	principal, _ = fieldCheck{FieldPrincipal, req.Principal, true, balanceRule(bounds)}.check(&errs)
	rate, _ = fieldCheck{FieldCurrentRate, req.CurrentRate, true, rateRule(bounds)}.check(&errs)
	yearsLeft, _ = fieldCheck{FieldYearsLeft, req.YearsLeft, true, rangeRule{min: 0, max: bounds.MaxYears, minExclusive: true}}.check(&errs)

	track = strings.TrimSpace(req.Track)
	if track == "" {
		track = policy.EarlyRepayment.DefaultTrack
	}
	if _, ok := policy.EarlyRepayment.MarketRates[track]; !ok {
		errs = append(errs, FieldError{
			Field:   FieldTrack,
			Kind:    KindOutOfRange,
			Message: "מסלול הלוואה לא מוכר: " + track,
		})
	}

	if len(errs) > 0 {
		return 0, 0, 0, "", errs
	}
	return principal, rate, yearsLeft, track, nil
}
