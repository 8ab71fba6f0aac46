package assumptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestDefault_ReturnsIndependentMaps(t *testing.T) {
	a := Default()
	a.MissedCallRates["none"] = 0.9

	assert.Zero(t, Default().MissedCallRates["none"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(*Set)
		wantErr string
	}{
		{"close rate above one", func(s *Set) { s.DefaultCloseRate = 1.5 }, "default_close_rate must be between 0 and 1"},
		{"negative band", func(s *Set) { s.ConfidenceBand = -0.1 }, "confidence_band must be between 0 and 1"},
		{"table value", func(s *Set) { s.DormantViability["0_3_months"] = 2 }, "dormant_viability.0_3_months must be between 0 and 1"},
		{"no follow ups", func(s *Set) { s.RecommendedFollowUps = 0 }, "recommended_follow_ups must be > 0"},
		{"free campaign", func(s *Set) { s.CampaignMonthlyCost = 0 }, "campaign_monthly_cost must be > 0"},
		{"best below expected", func(s *Set) { s.BestCaseResponseRate = 0.1 }, "best_case_response_rate must be >= expected_response_rate"},
		{"severity order", func(s *Set) { s.HighShare = 0.5 }, "severity shares must descend"},
		{"negative hours", func(s *Set) { s.MonthlyHoursPerStaff = -1 }, "monthly_hours_per_staff must be >= 0"},
		{"older database more viable", func(s *Set) { s.DormantViability["1_2_years"] = 0.9 }, "dormant_viability.1_2_years must not exceed dormant_viability.6_12_months"},
		{"oldest database more viable", func(s *Set) { s.DormantViability["2_plus_years"] = 0.5 }, "dormant_viability.2_plus_years must not exceed dormant_viability.1_2_years"},
		{"lapsed customers more winnable", func(s *Set) { s.WinnableShare["2_plus_years"] = 0.5 }, "winnable_share.2_plus_years must not exceed winnable_share.1_2_years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mod(&s)
			err := Validate(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "assumptions: validation failed")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	s := Default()
	s.DefaultCloseRate = 2
	s.WinBackRate = -1
	s.CampaignMonthlyCost = -5

	err := Validate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_close_rate")
	assert.Contains(t, err.Error(), "win_back_rate")
	assert.Contains(t, err.Error(), "campaign_monthly_cost")
}

func TestValidate_AgeOrderedTables(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Set)
	}{
		{"equal neighbours", func(s *Set) { s.DormantViability["3_6_months"] = 0.85 }},
		{"missing bucket", func(s *Set) { delete(s.WinnableShare, "6_12_months") }},
		{"all zero", func(s *Set) {
			for k := range s.DormantViability {
				s.DormantViability[k] = 0
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mod(&s)
			assert.NoError(t, Validate(s))
		})
	}
}
