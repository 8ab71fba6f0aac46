// Package cockpit classifies a live-call input set and surfaces the exposure
// figure a setter quotes on the call.
package cockpit

import (
	"github.com/sells-group/leak-calc/internal/exposure"
	"github.com/sells-group/leak-calc/internal/model"
	"github.com/sells-group/leak-calc/internal/normalize"
)

// Disqualification thresholds, evaluated against the conservative exposure.
const (
	MinWeeklyInquiries = 10
	MinMissedPer10     = 2
	MinAvgTicket       = 300
	MinMonthlyExposure = 3000
)

// Disqualification reason codes.
const (
	ReasonLowVolume     = "low_volume"
	ReasonLowMissedRate = "low_missed_rate"
	ReasonLowTicket     = "low_ticket"
	ReasonLowExposure   = "low_exposure"
)

var nextSteps = map[model.CockpitStatus]string{
	model.StatusIncomplete:   "Capture weekly inquiries, missed calls out of 10, and average ticket.",
	model.StatusDisqualified: "Not a fit today. Offer the self-serve audit and end the call.",
	model.StatusQualified:    "Quote the exposure and book the strategy session.",
	model.StatusBooked:       "Send the calendar confirmation and prep the full leak audit.",
}

// NextStep returns the setter prompt for a status.
func NextStep(s model.CockpitStatus) string {
	return nextSteps[s]
}

// Calculate evaluates a cockpit input. Status is derived from the input alone;
// nothing is remembered between calls.
func Calculate(in model.CockpitInput) model.CockpitResult {
	inquiries := normalize.Count(in.InquiriesWeekly)
	missed := normalize.Clamp(in.MissedPer10, 0, 10)
	ticket := normalize.Currency(in.AvgTicket)

	conservative := exposure.Compute(inquiries, missed, ticket, in.CloseRate)
	full := exposure.Full(inquiries, missed, ticket)

	mode := in.ExposureMode
	if mode != model.ModeFull {
		mode = model.ModeFloor
	}
	selected := conservative
	if mode == model.ModeFull {
		selected = full
	}

	status, reasons := classify(inquiries, missed, ticket, conservative)
	if in.Booked {
		status = model.StatusBooked
	}

	return model.CockpitResult{
		Status:               status,
		ExposureMode:         mode,
		DailyExposure:        selected.Daily,
		MonthlyExposure:      selected.Monthly,
		YearlyExposure:       selected.Yearly,
		MissedCalls:          selected.MissedMonthly,
		FullExposure:         full,
		ConservativeExposure: conservative,
		NextStep:             NextStep(status),
		DisqualifyReasons:    reasons,
	}
}

// classify applies the completeness check and the disqualification predicates.
func classify(inquiries, missedPer10, ticket float64, conservative model.ExposureResult) (model.CockpitStatus, []string) {
	if inquiries == 0 || missedPer10 == 0 || ticket == 0 {
		return model.StatusIncomplete, nil
	}

	var reasons []string
	if inquiries < MinWeeklyInquiries {
		reasons = append(reasons, ReasonLowVolume)
	}
	if missedPer10 < MinMissedPer10 {
		reasons = append(reasons, ReasonLowMissedRate)
	}
	if ticket < MinAvgTicket {
		reasons = append(reasons, ReasonLowTicket)
	}
	if conservative.Monthly < MinMonthlyExposure {
		reasons = append(reasons, ReasonLowExposure)
	}

	if len(reasons) > 0 {
		return model.StatusDisqualified, reasons
	}
	return model.StatusQualified, nil
}
