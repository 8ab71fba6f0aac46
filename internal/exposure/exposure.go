// Package exposure converts inquiry volume and missed-call ratio into the
// dollar value lost to unanswered calls.
package exposure

import (
	"math"

	"github.com/sells-group/leak-calc/internal/model"
	"github.com/sells-group/leak-calc/internal/normalize"
)

const (
	// WeeksPerMonth is the fixed four-week month used for call counts.
	WeeksPerMonth = 4
	// DaysPerMonth is the fixed thirty-day month used for daily exposure.
	DaysPerMonth = 30
	// MonthsPerYear annualises monthly figures.
	MonthsPerYear = 12
	// FullCloseRate is the close rate used for the full-exposure variant.
	FullCloseRate = 1.0
)

// Round rounds half-up to the nearest whole number. Inputs are non-negative.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Round1 rounds half-up to one decimal place.
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// Compute returns the missed-call exposure for a weekly inquiry volume.
// Inputs are clamped: inquiries and ticket to non-negative, missedPer10 to
// [0, 10] and closeRate to [0, 1].
func Compute(inquiriesWeekly, missedPer10, avgTicket, closeRate float64) model.ExposureResult {
	inquiries := normalize.Count(inquiriesWeekly)
	ticket := normalize.Currency(avgTicket)
	rate := normalize.Rate(closeRate)

	missedRate := normalize.Per10(missedPer10)
	missedWeekly := Round1(inquiries * missedRate)
	missedMonthly := Round1(missedWeekly * WeeksPerMonth)
	monthly := Round(missedMonthly * ticket * rate)

	return model.ExposureResult{
		MissedRate:    missedRate,
		MissedWeekly:  missedWeekly,
		MissedMonthly: missedMonthly,
		Daily:         Round(monthly / DaysPerMonth),
		Monthly:       monthly,
		Yearly:        Round(monthly * MonthsPerYear),
	}
}

// Full returns the exposure with every missed call assumed to close.
func Full(inquiriesWeekly, missedPer10, avgTicket float64) model.ExposureResult {
	return Compute(inquiriesWeekly, missedPer10, avgTicket, FullCloseRate)
}
