// Package reactivation estimates the revenue recoverable from contacts a
// business already has: dormant leads and lapsed customers.
package reactivation

import (
	"math"

	"github.com/sells-group/leak-calc/internal/assumptions"
	"github.com/sells-group/leak-calc/internal/exposure"
	"github.com/sells-group/leak-calc/internal/model"
	"github.com/sells-group/leak-calc/internal/normalize"
)

// ImplementationTime is the typical setup time for a reactivation campaign.
const ImplementationTime = "1-2 weeks"

// Quick-win scoring weights.
const (
	quickWinBase          = 50
	quickWinNeverWorked   = 25
	quickWinUnderEngaged  = 15
	quickWinFreshDatabase = 10
	freshViabilityRate    = 0.55
	underEngagedScore     = 50
)

// Payback period labels.
const (
	PaybackUnderWeek   = "under 1 week"
	PaybackUnderMonth  = "under 1 month"
	Payback1To3Months  = "1-3 months"
	Payback3PlusMonths = "3+ months"
)

// Calculate combines both sub-models. A business that answered "no" to either
// question contributes zero for that sub-model.
func Calculate(in normalize.Input, a assumptions.Set) model.ReactivationLeak {
	out := model.ReactivationLeak{
		DormantLeads:  Dormant(in, a),
		PastCustomers: PastCustomers(in, a),
	}

	if out.DormantLeads != nil {
		out.MonthlyLoss += out.DormantLeads.MonthlyLoss
		out.Upside += out.DormantLeads.Upside
	}
	if out.PastCustomers != nil {
		out.MonthlyLoss += out.PastCustomers.MonthlyLoss
		out.Upside += out.PastCustomers.Upside
	}
	out.AnnualLoss = out.MonthlyLoss * exposure.MonthsPerYear

	if out.MonthlyLoss == 0 {
		return out
	}

	out.QuickWinScore = quickWinScore(out.DormantLeads, out.PastCustomers)
	cost := a.CampaignMonthlyCost
	if cost > 0 {
		ratio := out.Upside / cost
		out.ExpectedROI = exposure.Round1(ratio)
		out.PaybackPeriod = paybackPeriod(ratio)
	}
	out.ImplementationTime = ImplementationTime
	return out
}

// Dormant estimates revenue from the unconverted lead database. Returns nil
// when the business has no dormant leads.
func Dormant(in normalize.Input, a assumptions.Set) *model.DormantLeadsResult {
	if !in.HasDormantLeads || in.DormantLeads == 0 {
		return nil
	}

	viability := normalize.Rate(a.DormantViability[string(in.DatabaseAge)])
	viable := exposure.Round(in.DormantLeads * viability)
	closeRate := normalize.Rate(a.ReactivationCloseRate)
	expected := exposure.Round1(viable * a.ExpectedResponseRate * closeRate)
	bestCase := exposure.Round1(viable * a.BestCaseResponseRate * closeRate)

	monthly := exposure.Round(expected * lifetimeValue(in))

	return &model.DormantLeadsResult{
		ViableLeads:          viable,
		ViabilityRate:        viability,
		DatabaseAge:          in.DatabaseAge,
		RecontactStatus:      in.RecontactStatus,
		ExpectedResponseRate: a.ExpectedResponseRate,
		BestCaseResponseRate: a.BestCaseResponseRate,
		ExpectedCustomers:    expected,
		BestCaseCustomers:    bestCase,
		MonthlyLoss:          monthly,
		AnnualLoss:           monthly * exposure.MonthsPerYear,
		Upside:               exposure.Round(monthly * (1 - in.RecontactedShare)),
	}
}

// Past-customer engagement status labels.
const (
	StatusNotRunning       = "not_running"
	StatusBelowRecommended = "below_recommended"
	StatusAboveRecommended = "above_recommended"
	StatusOnCadence        = "on_cadence"
)

// PastCustomers estimates win-back revenue from lapsed customers. Returns nil
// when the business has no past customers.
func PastCustomers(in normalize.Input, a assumptions.Set) *model.PastCustomersResult {
	if !in.HasPastCustomers || in.PastCustomers == 0 {
		return nil
	}

	winnable := exposure.Round(in.PastCustomers * normalize.Rate(a.WinnableShare[string(in.Recency)]))
	winBack := normalize.Rate(a.WinBackRate)
	recommended := RecommendedFrequency(in.Recency)
	score := FrequencyScore(in.CampaignFrequency, recommended)

	monthly := exposure.Round(winnable * winBack * in.Ticket * a.ReturnPurchaseBonus)

	return &model.PastCustomersResult{
		WinnableCustomers:    winnable,
		CurrentlyRecovered:   exposure.Round1(winnable * winBack * score / 100),
		WinBackRate:          winBack,
		ReturnPurchaseBonus:  a.ReturnPurchaseBonus,
		CurrentStatus:        engagementStatus(in.CampaignFrequency, recommended),
		RecommendedFrequency: recommended,
		FrequencyScore:       score,
		MonthlyLoss:          monthly,
		AnnualLoss:           monthly * exposure.MonthsPerYear,
		Upside:               exposure.Round(monthly * (1 - score/100)),
	}
}

// RecommendedFrequency is monthly for customers who bought within a year and
// quarterly for older ones.
func RecommendedFrequency(r model.PurchaseRecency) model.Frequency {
	switch r {
	case model.Recency0To6Months, model.Recency6To12Months:
		return model.FrequencyMonthly
	default:
		return model.FrequencyQuarterly
	}
}

// FrequencyScore rates how close the actual cadence is to the recommended one:
// 100 on cadence, proportionally lower when sending too rarely or too often,
// and 0 when no campaigns run.
func FrequencyScore(actual, recommended model.Frequency) float64 {
	got, want := actual.PerYear(), recommended.PerYear()
	if got == 0 || want == 0 {
		return 0
	}
	return exposure.Round(100 * math.Min(got, want) / math.Max(got, want))
}

func engagementStatus(actual, recommended model.Frequency) string {
	got, want := actual.PerYear(), recommended.PerYear()
	switch {
	case got == 0:
		return StatusNotRunning
	case got < want:
		return StatusBelowRecommended
	case got > want:
		return StatusAboveRecommended
	default:
		return StatusOnCadence
	}
}

// lifetimeValue is the average ticket times yearly purchase count, with at
// least one purchase.
func lifetimeValue(in normalize.Input) float64 {
	return in.Ticket * math.Max(1, in.RepeatPurchases)
}

func quickWinScore(d *model.DormantLeadsResult, p *model.PastCustomersResult) float64 {
	score := float64(quickWinBase)
	if d != nil && d.RecontactStatus == model.RecontactNever {
		score += quickWinNeverWorked
	}
	if d != nil && d.ViabilityRate >= freshViabilityRate {
		score += quickWinFreshDatabase
	}
	if p != nil && p.FrequencyScore < underEngagedScore {
		score += quickWinUnderEngaged
	}
	return math.Min(score, 100)
}

// paybackPeriod buckets the months needed for the recovered upside to cover
// one month of campaign cost.
func paybackPeriod(roi float64) string {
	switch {
	case roi >= 4:
		return PaybackUnderWeek
	case roi >= 1:
		return PaybackUnderMonth
	case roi >= 1.0/3:
		return Payback1To3Months
	default:
		return Payback3PlusMonths
	}
}
