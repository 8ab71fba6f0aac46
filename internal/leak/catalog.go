// Package leak computes the operational revenue leaks of a service business,
// ranks and classifies them, and assembles the full calculation result.
package leak

import (
	"math"

	"github.com/sells-group/leak-calc/internal/assumptions"
	"github.com/sells-group/leak-calc/internal/exposure"
	"github.com/sells-group/leak-calc/internal/model"
	"github.com/sells-group/leak-calc/internal/normalize"
)

// Complexity is the estimated implementation effort to fix a leak.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// computeFunc returns the raw monthly loss and the figures behind it.
type computeFunc func(in normalize.Input, a assumptions.Set) (float64, map[string]any)

// entry is one row of the static leak catalog. A zero band means the
// assumption set's default confidence band applies.
type entry struct {
	Type            model.LeakType
	Label           string
	ConstraintLabel string
	Complexity      Complexity
	Band            float64
	compute         computeFunc
}

// catalog lists every operational leak in display order.
var catalog = []entry{
	{model.LeakMissedCalls, "Missed Calls", "Phone coverage", ComplexityLow, 0, missedCalls},
	{model.LeakSlowResponse, "Slow Lead Response", "Speed to lead", ComplexityLow, 0, slowResponse},
	{model.LeakNoFollowUp, "No Follow-Up", "Follow-up process", ComplexityMedium, 0, noFollowUp},
	{model.LeakNoShow, "Appointment No-Shows", "Appointment reminders", ComplexityLow, 0, noShow},
	{model.LeakUnqualifiedLeads, "Unqualified Leads", "Lead qualification", ComplexityMedium, 0.25, unqualifiedLeads},
	{model.LeakAfterHours, "After-Hours Inquiries", "After-hours coverage", ComplexityLow, 0, afterHours},
	{model.LeakHoldTime, "Hold-Time Abandonment", "Call handling capacity", ComplexityMedium, 0.30, holdTime},
}

// ComplexityOf returns the implementation complexity of a leak type.
// Reactivation campaigns are low effort; unknown types are high.
func ComplexityOf(t model.LeakType) Complexity {
	if t == model.LeakReactivation {
		return ComplexityLow
	}
	for _, e := range catalog {
		if e.Type == t {
			return e.Complexity
		}
	}
	return ComplexityHigh
}

// IsQuickWin reports whether a leak type is cheap to fix, independent of
// its dollar magnitude.
func IsQuickWin(t model.LeakType) bool {
	return ComplexityOf(t) == ComplexityLow
}

// computeCatalog runs every catalog entry against the normalized input.
func computeCatalog(in normalize.Input, a assumptions.Set) []model.Leak {
	leaks := make([]model.Leak, 0, len(catalog))
	for _, e := range catalog {
		raw, details := e.compute(in, a)
		band := e.Band
		if band == 0 {
			band = a.ConfidenceBand
		}
		leaks = append(leaks, newLeak(e.Type, e.Label, e.ConstraintLabel, raw, band, details))
	}
	return leaks
}

// newLeak rounds the loss to whole dollars and derives the annual figure and
// the confidence band around it.
func newLeak(t model.LeakType, label, constraint string, raw, band float64, details map[string]any) model.Leak {
	monthly := exposure.Round(math.Max(0, raw))
	band = normalize.Rate(band)
	low := exposure.Round(monthly * (1 - band))
	high := exposure.Round(monthly * (1 + band))
	return model.Leak{
		Type:             t,
		Label:            label,
		MonthlyLoss:      monthly,
		AnnualLoss:       monthly * exposure.MonthsPerYear,
		MonthlyLossRange: [2]float64{low, high},
		AnnualLossRange:  [2]float64{low * exposure.MonthsPerYear, high * exposure.MonthsPerYear},
		QuickWin:         IsQuickWin(t),
		ConstraintLabel:  constraint,
		Details:          details,
	}
}

func missedCalls(in normalize.Input, a assumptions.Set) (float64, map[string]any) {
	missedRate := normalize.Rate(a.MissedCallRates[string(in.MissedCallRate)])
	weeklyCalls := in.Inquiries * in.CallShare / exposure.WeeksPerMonth
	exp := exposure.Compute(weeklyCalls, missedRate*10, in.Ticket, in.CloseRate)

	return exp.Monthly, map[string]any{
		"weekly_calls":   exposure.Round1(weeklyCalls),
		"missed_rate":    missedRate,
		"missed_weekly":  exp.MissedWeekly,
		"missed_monthly": exp.MissedMonthly,
		"daily_loss":     exp.Daily,
		"close_rate":     in.CloseRate,
		"avg_ticket":     in.Ticket,
	}
}

func slowResponse(in normalize.Input, a assumptions.Set) (float64, map[string]any) {
	retention, ok := a.ResponseRetention[string(in.ResponseTime)]
	if !ok || in.ResponseTime == model.ResponseUnder5Min {
		retention = 1
	}
	retention = normalize.Rate(retention)
	missedRate := normalize.Rate(a.MissedCallRates[string(in.MissedCallRate)])

	reachable := in.Inquiries * (1 - in.CallShare*missedRate)
	lostDeals := reachable * in.CloseRate * (1 - retention)

	return lostDeals * in.Ticket, map[string]any{
		"response_time":   string(in.ResponseTime),
		"ideal":           string(model.ResponseUnder5Min),
		"retention":       retention,
		"reachable_leads": exposure.Round1(reachable),
		"lost_deals":      exposure.Round1(lostDeals),
	}
}

func noFollowUp(in normalize.Input, a assumptions.Set) (float64, map[string]any) {
	recommended := a.RecommendedFollowUps
	if recommended <= 0 {
		return 0, nil
	}
	actual := math.Min(in.FollowUpAttempts, recommended)
	gap := (recommended - actual) / recommended
	unconverted := in.Inquiries * (1 - in.CloseRate)
	recovered := unconverted * gap * normalize.Rate(a.FollowUpRecoveryRate)

	return recovered * in.Ticket, map[string]any{
		"actual_attempts":      in.FollowUpAttempts,
		"recommended_attempts": recommended,
		"attempt_gap":          gap,
		"unconverted_leads":    exposure.Round1(unconverted),
		"recoverable_deals":    exposure.Round1(recovered),
	}
}

func noShow(in normalize.Input, a assumptions.Set) (float64, map[string]any) {
	if !in.RequiresAppointments || in.Booked == 0 {
		return 0, nil
	}
	noShows := in.Booked - in.Shown
	apptClose := in.CloseRate
	if in.Shown > 0 && in.ClosedDeals > 0 {
		apptClose = normalize.Rate(in.ClosedDeals / in.Shown)
	}
	recoverable := normalize.Rate(a.ReminderRecoverable[string(in.ReminderPolicy)])
	apptValue := in.Ticket * apptClose

	return noShows * apptValue * recoverable, map[string]any{
		"booked":            in.Booked,
		"shown":             in.Shown,
		"no_shows":          noShows,
		"no_show_rate":      noShows / in.Booked,
		"appointment_value": exposure.Round(apptValue),
		"reminder_policy":   string(in.ReminderPolicy),
		"recoverable_share": recoverable,
	}
}

func unqualifiedLeads(in normalize.Input, a assumptions.Set) (float64, map[string]any) {
	if in.UnqualifiedShare == 0 || in.HourlyCost == 0 {
		return 0, nil
	}
	hours := in.Inquiries * in.UnqualifiedShare * in.ConsultationMinutes / 60
	if in.Staff > 0 && a.MonthlyHoursPerStaff > 0 {
		hours = math.Min(hours, in.Staff*a.MonthlyHoursPerStaff)
	}
	waste := normalize.Rate(a.QualificationWaste[string(in.Practice)])

	return hours * in.HourlyCost * waste, map[string]any{
		"unqualified_share":    in.UnqualifiedShare,
		"unqualified_leads":    exposure.Round1(in.Inquiries * in.UnqualifiedShare),
		"consultation_minutes": in.ConsultationMinutes,
		"wasted_hours":         exposure.Round1(hours),
		"hourly_cost":          in.HourlyCost,
		"qualification":        string(in.Practice),
	}
}

func afterHours(in normalize.Input, a assumptions.Set) (float64, map[string]any) {
	if in.AnswersAfterHours || in.BusinessHours == model.Hours247 {
		return 0, nil
	}
	share := normalize.Rate(a.AfterHoursShare[string(in.BusinessHours)])
	afterHoursInquiries := in.Inquiries * share

	return afterHoursInquiries * in.CloseRate * in.Ticket, map[string]any{
		"business_hours":        string(in.BusinessHours),
		"after_hours_share":     share,
		"after_hours_inquiries": exposure.Round1(afterHoursInquiries),
	}
}

func holdTime(in normalize.Input, a assumptions.Set) (float64, map[string]any) {
	if in.HoldMinutes == 0 {
		return 0, nil
	}
	missedRate := normalize.Rate(a.MissedCallRates[string(in.MissedCallRate)])
	answered := in.Inquiries * in.CallShare * (1 - missedRate)
	abandonRate := math.Min(normalize.Rate(a.MaxHoldAbandon), in.HoldMinutes*a.HoldAbandonPerMinute)
	abandoned := answered * abandonRate

	return abandoned * in.CloseRate * in.Ticket, map[string]any{
		"hold_minutes":    in.HoldMinutes,
		"answered_calls":  exposure.Round1(answered),
		"abandon_rate":    abandonRate,
		"abandoned_calls": exposure.Round1(abandoned),
	}
}
