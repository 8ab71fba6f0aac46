package model

// CockpitStatus is the qualification state of a live-call evaluation.
type CockpitStatus string

const (
	StatusIncomplete   CockpitStatus = "INCOMPLETE"
	StatusDisqualified CockpitStatus = "DISQUALIFIED"
	StatusQualified    CockpitStatus = "QUALIFIED"
	StatusBooked       CockpitStatus = "BOOKED"
)

// ExposureMode selects which exposure figure the cockpit surfaces.
type ExposureMode string

const (
	ModeFloor ExposureMode = "floor" // user-set close rate
	ModeFull  ExposureMode = "full"  // close rate of 1.0
)

// CockpitInput is the single-screen input set used during a live sales call.
type CockpitInput struct {
	InquiriesWeekly float64      `json:"inquiries_weekly" yaml:"inquiries_weekly"`
	MissedPer10     float64      `json:"missed_per_10" yaml:"missed_per_10"`
	AvgTicket       float64      `json:"avg_ticket" yaml:"avg_ticket"`
	CloseRate       float64      `json:"close_rate" yaml:"close_rate"`
	ExposureMode    ExposureMode `json:"exposure_mode,omitempty" yaml:"exposure_mode"`
	Booked          bool         `json:"booked" yaml:"booked"`
}

// CockpitResult is the real-time cockpit output.
type CockpitResult struct {
	Status               CockpitStatus  `json:"status"`
	ExposureMode         ExposureMode   `json:"exposure_mode"`
	DailyExposure        float64        `json:"daily_exposure"`
	MonthlyExposure      float64        `json:"monthly_exposure"`
	YearlyExposure       float64        `json:"yearly_exposure"`
	MissedCalls          float64        `json:"missed_calls"`
	FullExposure         ExposureResult `json:"full_exposure"`
	ConservativeExposure ExposureResult `json:"conservative_exposure"`
	NextStep             string         `json:"next_step"`
	DisqualifyReasons    []string       `json:"disqualify_reasons,omitempty"`
}
