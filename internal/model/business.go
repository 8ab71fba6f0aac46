package model

// ResponseTime is the bucketed delay between an inquiry and the first reply.
type ResponseTime string

const (
	ResponseUnder5Min   ResponseTime = "under_5_min"
	Response5To30Min    ResponseTime = "5_to_30_min"
	Response30To60Min   ResponseTime = "30_to_60_min"
	Response1To4Hours   ResponseTime = "1_to_4_hours"
	ResponseSameDay     ResponseTime = "same_day"
	ResponseNextDay     ResponseTime = "next_day"
	ResponseOver24Hours ResponseTime = "over_24_hours"
)

// MissedCallRate is the bucketed share of inbound calls that go unanswered.
type MissedCallRate string

const (
	MissedNone    MissedCallRate = "none"
	MissedUnder10 MissedCallRate = "under_10"
	Missed10To20  MissedCallRate = "10_to_20"
	Missed20To30  MissedCallRate = "20_to_30"
	Missed30To50  MissedCallRate = "30_to_50"
	MissedOver50  MissedCallRate = "over_50"
)

// BusinessHours describes when the phones are staffed.
type BusinessHours string

const (
	HoursStandard BusinessHours = "standard"
	HoursExtended BusinessHours = "extended"
	Hours247      BusinessHours = "24_7"
)

// ReminderPolicy describes how appointment reminders are sent.
type ReminderPolicy string

const (
	RemindersNone      ReminderPolicy = "none"
	RemindersManual    ReminderPolicy = "manual"
	RemindersAutomated ReminderPolicy = "automated"
)

// QualificationPractice describes how leads are screened before a consultation.
type QualificationPractice string

const (
	QualifyNone       QualificationPractice = "none"
	QualifyInformal   QualificationPractice = "informal"
	QualifyStructured QualificationPractice = "structured"
)

// DatabaseAge is the bucketed age of a dormant-lead database.
type DatabaseAge string

const (
	Age0To3Months  DatabaseAge = "0_3_months"
	Age3To6Months  DatabaseAge = "3_6_months"
	Age6To12Months DatabaseAge = "6_12_months"
	Age1To2Years   DatabaseAge = "1_2_years"
	Age2PlusYears  DatabaseAge = "2_plus_years"
)

// RecontactStatus describes whether dormant leads have been worked again.
type RecontactStatus string

const (
	RecontactNever   RecontactStatus = "never"
	RecontactPartial RecontactStatus = "partial"
	RecontactRegular RecontactStatus = "regular"
)

// PurchaseRecency is the bucketed average time since a past customer last bought.
type PurchaseRecency string

const (
	Recency0To6Months  PurchaseRecency = "0_6_months"
	Recency6To12Months PurchaseRecency = "6_12_months"
	Recency1To2Years   PurchaseRecency = "1_2_years"
	Recency2PlusYears  PurchaseRecency = "2_plus_years"
)

// Frequency is a campaign cadence.
type Frequency string

const (
	FrequencyNever     Frequency = "never"
	FrequencyYearly    Frequency = "yearly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyWeekly    Frequency = "weekly"
)

// PerYear returns how many touches per year a cadence represents.
func (f Frequency) PerYear() float64 {
	switch f {
	case FrequencyYearly:
		return 1
	case FrequencyQuarterly:
		return 4
	case FrequencyMonthly:
		return 12
	case FrequencyWeekly:
		return 52
	default:
		return 0
	}
}

// BusinessInput is the flat record collected by the multi-step wizard.
// Absent numeric fields decode as zero; the normalizer applies defaults.
type BusinessInput struct {
	// Identity.
	BusinessName string `json:"business_name,omitempty" yaml:"business_name"`
	Industry     string `json:"industry,omitempty" yaml:"industry"`

	// Volume.
	MonthlyInquiries float64 `json:"monthly_inquiries" yaml:"monthly_inquiries"`
	CallPercent      float64 `json:"call_percent" yaml:"call_percent"`
	FormPercent      float64 `json:"form_percent" yaml:"form_percent"`
	SocialPercent    float64 `json:"social_percent" yaml:"social_percent"`

	// Sales process.
	ClosedDealsPerMonth float64      `json:"closed_deals_per_month" yaml:"closed_deals_per_month"`
	ResponseTime        ResponseTime `json:"response_time,omitempty" yaml:"response_time"`
	FollowUpAttempts    float64      `json:"follow_up_attempts" yaml:"follow_up_attempts"`

	// Operations.
	BusinessHours     BusinessHours  `json:"business_hours,omitempty" yaml:"business_hours"`
	AnswersAfterHours bool           `json:"answers_after_hours" yaml:"answers_after_hours"`
	MissedCallRate    MissedCallRate `json:"missed_call_rate,omitempty" yaml:"missed_call_rate"`
	HoldTimeMinutes   float64        `json:"hold_time_minutes" yaml:"hold_time_minutes"`

	// Appointments.
	RequiresAppointments bool           `json:"requires_appointments" yaml:"requires_appointments"`
	AppointmentsBooked   float64        `json:"appointments_booked" yaml:"appointments_booked"`
	AppointmentsShown    float64        `json:"appointments_shown" yaml:"appointments_shown"`
	ReminderPolicy       ReminderPolicy `json:"reminder_policy,omitempty" yaml:"reminder_policy"`

	// Team.
	StaffCount            float64               `json:"staff_count" yaml:"staff_count"`
	StaffHourlyCost       float64               `json:"staff_hourly_cost" yaml:"staff_hourly_cost"`
	QualificationPractice QualificationPractice `json:"qualification_practice,omitempty" yaml:"qualification_practice"`
	UnqualifiedPercent    float64               `json:"unqualified_percent" yaml:"unqualified_percent"`
	ConsultationMinutes   float64               `json:"consultation_minutes" yaml:"consultation_minutes"`

	// Reactivation.
	HasDormantLeads            bool            `json:"has_dormant_leads" yaml:"has_dormant_leads"`
	DormantLeadCount           float64         `json:"dormant_lead_count" yaml:"dormant_lead_count"`
	DormantDatabaseAge         DatabaseAge     `json:"dormant_database_age,omitempty" yaml:"dormant_database_age"`
	DormantRecontactStatus     RecontactStatus `json:"dormant_recontact_status,omitempty" yaml:"dormant_recontact_status"`
	PercentRecontacted         float64         `json:"percent_recontacted" yaml:"percent_recontacted"`
	HasPastCustomers           bool            `json:"has_past_customers" yaml:"has_past_customers"`
	PastCustomerCount          float64         `json:"past_customer_count" yaml:"past_customer_count"`
	TimeSinceLastPurchase      PurchaseRecency `json:"time_since_last_purchase,omitempty" yaml:"time_since_last_purchase"`
	SendsReengagementCampaigns bool            `json:"sends_reengagement_campaigns" yaml:"sends_reengagement_campaigns"`
	ReengagementFrequency      Frequency       `json:"reengagement_frequency,omitempty" yaml:"reengagement_frequency"`

	// Customer value.
	RepeatPurchasesPerYear float64 `json:"repeat_purchases_per_year" yaml:"repeat_purchases_per_year"`
	AvgTransactionValue    float64 `json:"avg_transaction_value" yaml:"avg_transaction_value"`
}
