package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const shekelSign = "₪"

var hePrinter = message.NewPrinter(language.Hebrew)

// FormatILS renders amount in whole shekels the way the he-IL calculators
// show it: "₪500,000", "-₪1,234". Halves round away from zero.
func FormatILS(amount float64) string {
	if math.IsNaN(amount) {
		return "—"
	}
	if math.IsInf(amount, 0) {
		return "∞"
	}
	shekels := decimal.NewFromFloat(amount).Round(0).IntPart()
	if shekels < 0 {
		return "-" + shekelSign + hePrinter.Sprintf("%d", -shekels)
	}
	return shekelSign + hePrinter.Sprintf("%d", shekels)
}

func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}
