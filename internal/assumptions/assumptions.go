// Package assumptions holds the tunable business constants behind every leak
// and reactivation estimate.
package assumptions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leak-calc/internal/model"
)

// Set is the full collection of business assumptions used by the engine.
// Bucket tables are keyed by the bucket's wire value.
type Set struct {
	// Sales baseline.
	DefaultCloseRate           float64 `yaml:"default_close_rate" mapstructure:"default_close_rate"`
	DefaultConsultationMinutes float64 `yaml:"default_consultation_minutes" mapstructure:"default_consultation_minutes"`

	// Leak catalog.
	MissedCallRates      map[string]float64 `yaml:"missed_call_rates" mapstructure:"missed_call_rates"`
	ResponseRetention    map[string]float64 `yaml:"response_retention" mapstructure:"response_retention"`
	RecommendedFollowUps float64            `yaml:"recommended_follow_ups" mapstructure:"recommended_follow_ups"`
	FollowUpRecoveryRate float64            `yaml:"follow_up_recovery_rate" mapstructure:"follow_up_recovery_rate"`
	ReminderRecoverable  map[string]float64 `yaml:"reminder_recoverable" mapstructure:"reminder_recoverable"`
	QualificationWaste   map[string]float64 `yaml:"qualification_waste" mapstructure:"qualification_waste"`
	MonthlyHoursPerStaff float64            `yaml:"monthly_hours_per_staff" mapstructure:"monthly_hours_per_staff"`
	AfterHoursShare      map[string]float64 `yaml:"after_hours_share" mapstructure:"after_hours_share"`
	HoldAbandonPerMinute float64            `yaml:"hold_abandon_per_minute" mapstructure:"hold_abandon_per_minute"`
	MaxHoldAbandon       float64            `yaml:"max_hold_abandon" mapstructure:"max_hold_abandon"`
	ConfidenceBand       float64            `yaml:"confidence_band" mapstructure:"confidence_band"`

	// Severity cut-offs as a share of total operational loss.
	CriticalShare float64 `yaml:"critical_share" mapstructure:"critical_share"`
	HighShare     float64 `yaml:"high_share" mapstructure:"high_share"`
	MediumShare   float64 `yaml:"medium_share" mapstructure:"medium_share"`

	// Dormant leads.
	DormantViability      map[string]float64 `yaml:"dormant_viability" mapstructure:"dormant_viability"`
	ExpectedResponseRate  float64            `yaml:"expected_response_rate" mapstructure:"expected_response_rate"`
	BestCaseResponseRate  float64            `yaml:"best_case_response_rate" mapstructure:"best_case_response_rate"`
	ReactivationCloseRate float64            `yaml:"reactivation_close_rate" mapstructure:"reactivation_close_rate"`
	RegularRecontactShare float64            `yaml:"regular_recontact_share" mapstructure:"regular_recontact_share"`

	// Past customers.
	WinnableShare       map[string]float64 `yaml:"winnable_share" mapstructure:"winnable_share"`
	WinBackRate         float64            `yaml:"win_back_rate" mapstructure:"win_back_rate"`
	ReturnPurchaseBonus float64            `yaml:"return_purchase_bonus" mapstructure:"return_purchase_bonus"`

	// Reactivation campaign economics.
	CampaignMonthlyCost float64 `yaml:"campaign_monthly_cost" mapstructure:"campaign_monthly_cost"`
}

// Default returns the canonical assumption set.
func Default() Set {
	return Set{
		DefaultCloseRate:           0.25,
		DefaultConsultationMinutes: 30,

		MissedCallRates: map[string]float64{
			"none":     0,
			"under_10": 0.05,
			"10_to_20": 0.15,
			"20_to_30": 0.25,
			"30_to_50": 0.40,
			"over_50":  0.60,
		},
		// Share of a lead's conversion odds kept at each response delay.
		ResponseRetention: map[string]float64{
			"under_5_min":   1.00,
			"5_to_30_min":   0.80,
			"30_to_60_min":  0.60,
			"1_to_4_hours":  0.45,
			"same_day":      0.30,
			"next_day":      0.20,
			"over_24_hours": 0.10,
		},
		RecommendedFollowUps: 5,
		FollowUpRecoveryRate: 0.10,
		ReminderRecoverable: map[string]float64{
			"none":      0.50,
			"manual":    0.35,
			"automated": 0.20,
		},
		QualificationWaste: map[string]float64{
			"none":       1.0,
			"informal":   0.5,
			"structured": 0,
		},
		MonthlyHoursPerStaff: 160,
		AfterHoursShare: map[string]float64{
			"standard": 0.35,
			"extended": 0.20,
			"24_7":     0,
		},
		HoldAbandonPerMinute: 0.08,
		MaxHoldAbandon:       0.60,
		ConfidenceBand:       0.20,

		CriticalShare: 0.40,
		HighShare:     0.20,
		MediumShare:   0.10,

		DormantViability: map[string]float64{
			"0_3_months":   0.85,
			"3_6_months":   0.70,
			"6_12_months":  0.55,
			"1_2_years":    0.40,
			"2_plus_years": 0.25,
		},
		ExpectedResponseRate:  0.22,
		BestCaseResponseRate:  0.35,
		ReactivationCloseRate: 0.25,
		RegularRecontactShare: 0.80,

		WinnableShare: map[string]float64{
			"0_6_months":   0.60,
			"6_12_months":  0.45,
			"1_2_years":    0.30,
			"2_plus_years": 0.15,
		},
		WinBackRate:         0.15,
		ReturnPurchaseBonus: 1.2,

		CampaignMonthlyCost: 1500,
	}
}

// Validate checks that a Set is internally consistent.
func Validate(s Set) error {
	var errs []string

	rates := map[string]float64{
		"default_close_rate":      s.DefaultCloseRate,
		"follow_up_recovery_rate": s.FollowUpRecoveryRate,
		"max_hold_abandon":        s.MaxHoldAbandon,
		"confidence_band":         s.ConfidenceBand,
		"expected_response_rate":  s.ExpectedResponseRate,
		"best_case_response_rate": s.BestCaseResponseRate,
		"reactivation_close_rate": s.ReactivationCloseRate,
		"regular_recontact_share": s.RegularRecontactShare,
		"win_back_rate":           s.WinBackRate,
	}
	for name, r := range rates {
		if r < 0 || r > 1 {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 1", name))
		}
	}

	tables := map[string]map[string]float64{
		"missed_call_rates":    s.MissedCallRates,
		"response_retention":   s.ResponseRetention,
		"reminder_recoverable": s.ReminderRecoverable,
		"qualification_waste":  s.QualificationWaste,
		"after_hours_share":    s.AfterHoursShare,
		"dormant_viability":    s.DormantViability,
		"winnable_share":       s.WinnableShare,
	}
	for name, t := range tables {
		for k, v := range t {
			if v < 0 || v > 1 {
				errs = append(errs, fmt.Sprintf("%s.%s must be between 0 and 1", name, k))
			}
		}
	}

	errs = append(errs, nonIncreasing("dormant_viability", s.DormantViability, databaseAges)...)
	errs = append(errs, nonIncreasing("winnable_share", s.WinnableShare, purchaseRecencies)...)

	if s.RecommendedFollowUps <= 0 {
		errs = append(errs, "recommended_follow_ups must be > 0")
	}
	if s.HoldAbandonPerMinute < 0 {
		errs = append(errs, "hold_abandon_per_minute must be >= 0")
	}
	if s.MonthlyHoursPerStaff < 0 {
		errs = append(errs, "monthly_hours_per_staff must be >= 0")
	}
	if s.DefaultConsultationMinutes < 0 {
		errs = append(errs, "default_consultation_minutes must be >= 0")
	}
	if s.ReturnPurchaseBonus < 0 {
		errs = append(errs, "return_purchase_bonus must be >= 0")
	}
	if s.CampaignMonthlyCost <= 0 {
		errs = append(errs, "campaign_monthly_cost must be > 0")
	}
	if s.BestCaseResponseRate < s.ExpectedResponseRate {
		errs = append(errs, "best_case_response_rate must be >= expected_response_rate")
	}
	if !(s.CriticalShare > s.HighShare && s.HighShare > s.MediumShare && s.MediumShare >= 0) {
		errs = append(errs, "severity shares must descend: critical > high > medium >= 0")
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return eris.Errorf("assumptions: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Age-ordered buckets, youngest first.
var (
	databaseAges = []string{
		string(model.Age0To3Months),
		string(model.Age3To6Months),
		string(model.Age6To12Months),
		string(model.Age1To2Years),
		string(model.Age2PlusYears),
	}
	purchaseRecencies = []string{
		string(model.Recency0To6Months),
		string(model.Recency6To12Months),
		string(model.Recency1To2Years),
		string(model.Recency2PlusYears),
	}
)

// nonIncreasing reports every bucket in order whose value exceeds the value
// of an earlier bucket. Missing buckets are skipped.
func nonIncreasing(name string, table map[string]float64, order []string) []string {
	var errs []string
	prevKey := ""
	for _, k := range order {
		v, ok := table[k]
		if !ok {
			continue
		}
		if prevKey != "" && v > table[prevKey] {
			errs = append(errs, fmt.Sprintf("%s.%s must not exceed %s.%s", name, k, name, prevKey))
		}
		prevKey = k
	}
	return errs
}
