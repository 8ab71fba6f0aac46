package model

// LeakType identifies a category of revenue loss.
type LeakType string

const (
	LeakMissedCalls      LeakType = "missed_calls"
	LeakSlowResponse     LeakType = "slow_response"
	LeakNoFollowUp       LeakType = "no_follow_up"
	LeakNoShow           LeakType = "no_show"
	LeakUnqualifiedLeads LeakType = "unqualified_leads"
	LeakAfterHours       LeakType = "after_hours"
	LeakHoldTime         LeakType = "hold_time"
	LeakReactivation     LeakType = "reactivation"
)

// Severity is the four-tier classification of a leak's share of total loss.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// ExposureResult is the base missed-call loss figure in daily, monthly and
// yearly terms.
type ExposureResult struct {
	MissedRate    float64 `json:"missed_rate"`
	MissedWeekly  float64 `json:"missed_weekly"`
	MissedMonthly float64 `json:"missed_monthly"`
	Daily         float64 `json:"daily"`
	Monthly       float64 `json:"monthly"`
	Yearly        float64 `json:"yearly"`
}

// Leak is a single ranked revenue-loss estimate. MonthlyLoss always lies
// inside MonthlyLossRange.
type Leak struct {
	Type             LeakType       `json:"type"`
	Label            string         `json:"label"`
	MonthlyLoss      float64        `json:"monthly_loss"`
	AnnualLoss       float64        `json:"annual_loss"`
	MonthlyLossRange [2]float64     `json:"monthly_loss_range"`
	AnnualLossRange  [2]float64     `json:"annual_loss_range"`
	Severity         Severity       `json:"severity,omitempty"`
	Rank             int            `json:"rank"`
	QuickWin         bool           `json:"quick_win"`
	ConstraintLabel  string         `json:"constraint_label"`
	Details          map[string]any `json:"details,omitempty"`
}

// DormantLeadsResult estimates the revenue sitting in an unworked lead database.
type DormantLeadsResult struct {
	ViableLeads          float64         `json:"viable_leads"`
	ViabilityRate        float64         `json:"viability_rate"`
	DatabaseAge          DatabaseAge     `json:"database_age"`
	RecontactStatus      RecontactStatus `json:"recontact_status"`
	ExpectedResponseRate float64         `json:"expected_response_rate"`
	BestCaseResponseRate float64         `json:"best_case_response_rate"`
	ExpectedCustomers    float64         `json:"expected_customers"`
	BestCaseCustomers    float64         `json:"best_case_customers"`
	MonthlyLoss          float64         `json:"monthly_loss"`
	AnnualLoss           float64         `json:"annual_loss"`
	Upside               float64         `json:"upside"`
}

// PastCustomersResult estimates win-back revenue from lapsed customers.
type PastCustomersResult struct {
	WinnableCustomers    float64   `json:"winnable_customers"`
	CurrentlyRecovered   float64   `json:"currently_recovered"`
	WinBackRate          float64   `json:"win_back_rate"`
	ReturnPurchaseBonus  float64   `json:"return_purchase_bonus"`
	CurrentStatus        string    `json:"current_status"`
	RecommendedFrequency Frequency `json:"recommended_frequency"`
	FrequencyScore       float64   `json:"frequency_score"`
	MonthlyLoss          float64   `json:"monthly_loss"`
	AnnualLoss           float64   `json:"annual_loss"`
	Upside               float64   `json:"upside"`
}

// ReactivationLeak aggregates both reactivation sub-models. A nil sub-model
// contributes zero to MonthlyLoss.
type ReactivationLeak struct {
	DormantLeads       *DormantLeadsResult  `json:"dormant_leads"`
	PastCustomers      *PastCustomersResult `json:"past_customers"`
	MonthlyLoss        float64              `json:"monthly_loss"`
	AnnualLoss         float64              `json:"annual_loss"`
	Upside             float64              `json:"upside"`
	QuickWinScore      float64              `json:"quick_win_score"`
	ExpectedROI        float64              `json:"expected_roi"`
	PaybackPeriod      string               `json:"payback_period"`
	ImplementationTime string               `json:"implementation_time"`
}

// CalculationResult is the full wizard output.
type CalculationResult struct {
	// Leaks holds operational leaks with positive loss, ranked 1..N.
	Leaks []Leak `json:"leaks"`
	// AllLeaks is Leaks plus the reactivation opportunity, sorted by loss.
	AllLeaks []Leak `json:"all_leaks"`
	// OperationalLeaks holds every catalog entry, including zero-loss ones.
	OperationalLeaks        []Leak           `json:"operational_leaks"`
	PrimaryConstraint       *Leak            `json:"primary_constraint"`
	ReactivationOpportunity ReactivationLeak `json:"reactivation_opportunity"`
	TotalMonthlyLoss        float64          `json:"total_monthly_loss"`
	TotalAnnualLoss         float64          `json:"total_annual_loss"`
}
