// Package normalize clamps and defaults raw business inputs so that every
// downstream computation works on finite, non-negative, in-range values.
package normalize

import (
	"math"
	"strings"

	"github.com/sells-group/leak-calc/internal/assumptions"
	"github.com/sells-group/leak-calc/internal/model"
)

// Field bounds.
const (
	MaxCount    = 10_000_000
	MaxCurrency = 100_000_000
	MaxMinutes  = 24 * 60
	MaxAttempts = 50
)

// Default channel mix used when no breakdown is supplied.
const (
	DefaultCallShare   = 0.5
	DefaultFormShare   = 0.3
	DefaultSocialShare = 0.2
)

// Clamp bounds x to [lo, hi]. NaN and negative infinity map to lo, positive
// infinity maps to hi.
func Clamp(x, lo, hi float64) float64 {
	switch {
	case math.IsNaN(x), x < lo:
		return lo
	case x > hi:
		return hi
	default:
		return x
	}
}

// Per10 converts a 0-10 "out of ten" answer to a 0.0-1.0 rate.
func Per10(x float64) float64 { return Clamp(x, 0, 10) / 10 }

// Percent converts a 0-100 percentage to a 0.0-1.0 rate.
func Percent(x float64) float64 { return Clamp(x, 0, 100) / 100 }

// Rate bounds a fractional rate to [0, 1].
func Rate(x float64) float64 { return Clamp(x, 0, 1) }

// Count bounds a count field.
func Count(x float64) float64 { return Clamp(x, 0, MaxCount) }

// Currency bounds a dollar amount.
func Currency(x float64) float64 { return Clamp(x, 0, MaxCurrency) }

// Minutes bounds a duration in minutes to one day.
func Minutes(x float64) float64 { return Clamp(x, 0, MaxMinutes) }

// Input is a BusinessInput after clamping, defaulting and bucket resolution.
type Input struct {
	Inquiries   float64
	CallShare   float64
	FormShare   float64
	SocialShare float64
	ClosedDeals float64
	CloseRate   float64
	Ticket      float64

	ResponseTime     model.ResponseTime
	FollowUpAttempts float64

	BusinessHours     model.BusinessHours
	AnswersAfterHours bool
	MissedCallRate    model.MissedCallRate
	HoldMinutes       float64

	RequiresAppointments bool
	Booked               float64
	Shown                float64
	ReminderPolicy       model.ReminderPolicy

	Staff               float64
	HourlyCost          float64
	Practice            model.QualificationPractice
	UnqualifiedShare    float64
	ConsultationMinutes float64

	HasDormantLeads  bool
	DormantLeads     float64
	DatabaseAge      model.DatabaseAge
	RecontactStatus  model.RecontactStatus
	RecontactedShare float64

	HasPastCustomers  bool
	PastCustomers     float64
	Recency           model.PurchaseRecency
	SendsCampaigns    bool
	CampaignFrequency model.Frequency

	RepeatPurchases float64
}

// Normalize maps a raw BusinessInput onto a safe Input. It never fails.
func Normalize(in model.BusinessInput, a assumptions.Set) Input {
	out := Input{
		Inquiries:   Count(in.MonthlyInquiries),
		ClosedDeals: Count(in.ClosedDealsPerMonth),
		Ticket:      Currency(in.AvgTransactionValue),

		ResponseTime:     responseTime(in.ResponseTime),
		FollowUpAttempts: Clamp(in.FollowUpAttempts, 0, MaxAttempts),

		BusinessHours:     businessHours(in.BusinessHours),
		AnswersAfterHours: in.AnswersAfterHours,
		MissedCallRate:    missedCallRate(in.MissedCallRate),
		HoldMinutes:       Minutes(in.HoldTimeMinutes),

		RequiresAppointments: in.RequiresAppointments,
		Booked:               Count(in.AppointmentsBooked),
		ReminderPolicy:       reminderPolicy(in.ReminderPolicy),

		Staff:            Count(in.StaffCount),
		HourlyCost:       Currency(in.StaffHourlyCost),
		Practice:         practice(in.QualificationPractice),
		UnqualifiedShare: Percent(in.UnqualifiedPercent),

		HasDormantLeads: in.HasDormantLeads,
		DormantLeads:    Count(in.DormantLeadCount),
		DatabaseAge:     databaseAge(in.DormantDatabaseAge),
		RecontactStatus: recontactStatus(in.DormantRecontactStatus),

		HasPastCustomers: in.HasPastCustomers,
		PastCustomers:    Count(in.PastCustomerCount),
		Recency:          recency(in.TimeSinceLastPurchase),
		SendsCampaigns:   in.SendsReengagementCampaigns,

		RepeatPurchases: Clamp(in.RepeatPurchasesPerYear, 0, 365),
	}

	out.CallShare, out.FormShare, out.SocialShare = channelShares(in.CallPercent, in.FormPercent, in.SocialPercent)

	switch {
	case out.Inquiries == 0:
		out.CloseRate = 0
	case out.ClosedDeals == 0:
		out.CloseRate = Rate(a.DefaultCloseRate)
	default:
		out.CloseRate = Rate(out.ClosedDeals / out.Inquiries)
	}

	out.Shown = math.Min(Count(in.AppointmentsShown), out.Booked)

	out.ConsultationMinutes = Minutes(in.ConsultationMinutes)
	if out.ConsultationMinutes == 0 {
		out.ConsultationMinutes = Minutes(a.DefaultConsultationMinutes)
	}

	switch out.RecontactStatus {
	case model.RecontactNever:
		out.RecontactedShare = 0
	case model.RecontactRegular:
		out.RecontactedShare = math.Max(Percent(in.PercentRecontacted), Rate(a.RegularRecontactShare))
	default:
		out.RecontactedShare = Percent(in.PercentRecontacted)
	}

	out.CampaignFrequency = model.FrequencyNever
	if out.SendsCampaigns {
		out.CampaignFrequency = frequency(in.ReengagementFrequency)
		if out.CampaignFrequency == model.FrequencyNever {
			out.CampaignFrequency = model.FrequencyYearly
		}
	}

	return out
}

// channelShares converts the three channel percentages into shares that sum
// to 1. When none are supplied the default mix applies.
func channelShares(calls, forms, social float64) (float64, float64, float64) {
	c, f, s := Clamp(calls, 0, 100), Clamp(forms, 0, 100), Clamp(social, 0, 100)
	total := c + f + s
	if total == 0 {
		return DefaultCallShare, DefaultFormShare, DefaultSocialShare
	}
	return c / total, f / total, s / total
}

func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func responseTime(v model.ResponseTime) model.ResponseTime {
	switch r := model.ResponseTime(canon(string(v))); r {
	case model.ResponseUnder5Min, model.Response5To30Min, model.Response30To60Min,
		model.Response1To4Hours, model.ResponseSameDay, model.ResponseNextDay, model.ResponseOver24Hours:
		return r
	default:
		return model.ResponseSameDay
	}
}

func missedCallRate(v model.MissedCallRate) model.MissedCallRate {
	switch r := model.MissedCallRate(canon(string(v))); r {
	case model.MissedNone, model.MissedUnder10, model.Missed10To20,
		model.Missed20To30, model.Missed30To50, model.MissedOver50:
		return r
	default:
		return model.MissedNone
	}
}

func businessHours(v model.BusinessHours) model.BusinessHours {
	switch h := model.BusinessHours(canon(string(v))); h {
	case model.HoursStandard, model.HoursExtended, model.Hours247:
		return h
	default:
		return model.HoursStandard
	}
}

func reminderPolicy(v model.ReminderPolicy) model.ReminderPolicy {
	switch p := model.ReminderPolicy(canon(string(v))); p {
	case model.RemindersNone, model.RemindersManual, model.RemindersAutomated:
		return p
	default:
		return model.RemindersNone
	}
}

func practice(v model.QualificationPractice) model.QualificationPractice {
	switch p := model.QualificationPractice(canon(string(v))); p {
	case model.QualifyNone, model.QualifyInformal, model.QualifyStructured:
		return p
	default:
		return model.QualifyNone
	}
}

func databaseAge(v model.DatabaseAge) model.DatabaseAge {
	switch a := model.DatabaseAge(canon(string(v))); a {
	case model.Age0To3Months, model.Age3To6Months, model.Age6To12Months,
		model.Age1To2Years, model.Age2PlusYears:
		return a
	default:
		return model.Age2PlusYears
	}
}

func recontactStatus(v model.RecontactStatus) model.RecontactStatus {
	switch s := model.RecontactStatus(canon(string(v))); s {
	case model.RecontactNever, model.RecontactPartial, model.RecontactRegular:
		return s
	default:
		return model.RecontactNever
	}
}

func recency(v model.PurchaseRecency) model.PurchaseRecency {
	switch r := model.PurchaseRecency(canon(string(v))); r {
	case model.Recency0To6Months, model.Recency6To12Months,
		model.Recency1To2Years, model.Recency2PlusYears:
		return r
	default:
		return model.Recency2PlusYears
	}
}

func frequency(v model.Frequency) model.Frequency {
	switch f := model.Frequency(canon(string(v))); f {
	case model.FrequencyNever, model.FrequencyYearly, model.FrequencyQuarterly,
		model.FrequencyMonthly, model.FrequencyWeekly:
		return f
	default:
		return model.FrequencyNever
	}
}
