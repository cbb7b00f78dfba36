package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"refi-advisor/domain"
	"refi-advisor/service"
)

// renderer formats results for the terminal. An unstyled renderer emits
// plain text suitable for pipes and tests.
type renderer struct {
	styled bool
	box    lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	muted  lipgloss.Style
}

func newRenderer(styled bool) renderer {
	if !styled {
		plain := lipgloss.NewStyle()
		return renderer{box: plain, label: plain, value: plain, good: plain, bad: plain, muted: plain}
	}
	return renderer{
		styled: true,
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		value: lipgloss.NewStyle().Bold(true),
		good:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		bad:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		muted: lipgloss.NewStyle().Faint(true),
	}
}

func (r renderer) rows(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		pad := strings.Repeat(" ", width-lipgloss.Width(p[0]))
		lines[i] = r.label.Render(p[0]+pad) + "  " + r.value.Render(p[1])
	}
	return strings.Join(lines, "\n")
}

func (r renderer) frame(body string) string {
	return r.box.Render(body) + "\n"
}

func (r renderer) advisory(scenario domain.RefinanceScenario, result domain.AdvisoryResult, explanation string) string {
	f := service.FormatAdvisory(result)
	pairs := [][2]string{
		{"החזר חודשי נוכחי", f.CurrentMonthlyPayment},
		{"החזר חודשי חדש", f.NewMonthlyPayment},
		{"חיסכון חודשי", f.MonthlySavings + " (" + f.SavingsPercentage + ")"},
		{"חיסכון כולל", f.TotalSavings},
	}
	if scenario.Costs > 0 {
		breakEven := "לעולם לא"
		if !result.NeverBreaksEven {
			breakEven = fmt.Sprintf("%.1f חודשים", result.BreakEvenMonths)
		}
		pairs = append(pairs, [2]string{"נקודת איזון", breakEven})
	}

	headline := r.bad.Render(f.Headline)
	if result.IsWorthwhile {
		headline = r.good.Render(f.Headline)
	}

	body := headline + "\n\n" + r.rows(pairs) + "\n\n" + r.muted.Render(explanation)
	return r.frame(body)
}

func (r renderer) payment(result domain.PaymentResult) string {
	return r.frame(r.rows([][2]string{
		{"החזר חודשי", service.FormatILS(result.MonthlyPayment)},
		{"סך תשלומים", service.FormatILS(result.TotalPayment)},
		{"סך ריבית", service.FormatILS(result.TotalInterest)},
		{"מספר תשלומים", fmt.Sprintf("%d", result.TermMonths)},
	}))
}

func (r renderer) schedule(rows []domain.AmortizationRow) string {
	var b strings.Builder
	b.WriteString(r.label.Render(fmt.Sprintf("%-5s %14s %14s %14s", "שנה", "קרן", "ריבית", "יתרה")))
	b.WriteByte('\n')
	for _, row := range rows {
		fmt.Fprintf(&b, "%-5d %14s %14s %14s\n", row.Year,
			service.FormatILS(row.PrincipalPaid),
			service.FormatILS(row.InterestPaid),
			service.FormatILS(row.EndingBalance))
	}
	return b.String()
}

func (r renderer) earlyFee(result domain.EarlyRepaymentResult) string {
	fee := result.FormattedFee
	if result.Capped {
		fee += " (" + service.FormatILS(result.UncappedFee) + " לפני תקרה)"
	}
	return r.frame(r.rows([][2]string{
		{"מסלול", result.Track},
		{"ריבית ממוצעת בשוק", service.FormatPercent(result.MarketAverageRatePercent)},
		{"פער ריבית", service.FormatPercent(result.RateDelta)},
		{"מקדם", fmt.Sprintf("%.2f", result.Factor)},
		{"עמלת פירעון מוקדם משוערת", fee},
	}) + "\n\n" + r.muted.Render("הערכה בלבד, העמלה בפועל נקבעת על ידי הבנק."))
}

func (r renderer) rates(rates []service.MarketRate) string {
	pairs := make([][2]string, len(rates))
	for i, rate := range rates {
		pairs[i] = [2]string{rate.Track, service.FormatPercent(rate.RatePercent)}
	}
	return r.frame(r.rows(pairs))
}

func (r renderer) validation(errs service.ValidationErrors) string {
	var b strings.Builder
	for _, fe := range errs {
		b.WriteString(r.bad.Render("• "+fe.Message) + "\n")
	}
	return b.String()
}
