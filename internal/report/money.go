// Package report renders saved assessments for external consumers: Excel
// workbooks for sharing and Notion pages for a deal-tracker database.
package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Naira renders an amount with thousands separators, e.g. ₦45,000,000.
// Fractions of a naira are rounded away; nobody quotes kobo on land.
func Naira(amount float64) string {
	if amount < 0 {
		return "-" + Naira(-amount)
	}
	return printer.Sprintf("₦%.0f", amount)
}

// NairaPerSqm renders a per-square-metre rate, e.g. ₦350,000/m².
func NairaPerSqm(amount float64) string {
	return Naira(amount) + "/m²"
}
