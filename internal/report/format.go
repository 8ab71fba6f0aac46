// Package report renders calculation results for people: currency strings,
// terminal tables, Markdown and HTML reports, and XLSX workbooks.
package report

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency formats a dollar amount rounded to whole dollars with digit
// grouping, e.g. "$12,345".
func Currency(v float64) string {
	n := int64(math.Floor(math.Abs(v) + 0.5))
	s := printer.Sprintf("$%d", n)
	if v < 0 && n != 0 {
		return "-" + s
	}
	return s
}

var compactUnits = []struct {
	size   float64
	suffix string
}{
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// Compact formats a dollar amount with one decimal and a unit suffix,
// e.g. "$12.3K" or "$1.2M". Amounts under $1,000 are shown in full.
func Compact(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	for _, u := range compactUnits {
		// Values that would round up to 1000.0 move to the next unit.
		if v < u.size*0.99995 {
			continue
		}
		return fmt.Sprintf("%s$%.1f%s", sign, math.Round(v/u.size*10)/10, u.suffix)
	}
	return fmt.Sprintf("%s$%.0f", sign, math.Floor(v+0.5))
}

// Range formats a low/high pair in compact form.
func Range(r [2]float64) string {
	return Compact(r[0]) + " - " + Compact(r[1])
}

// Percent formats a 0-1 share as a whole percentage.
func Percent(share float64) string {
	return fmt.Sprintf("%.0f%%", share*100)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
