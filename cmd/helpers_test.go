package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceJSON is a fully specified business whose operational leaks total
// $71,508 a month under the default assumptions.
const referenceJSON = `{
  "business_name": "Acme HVAC",
  "industry": "home_services",
  "monthly_inquiries": 200,
  "call_percent": 60,
  "form_percent": 30,
  "social_percent": 10,
  "closed_deals_per_month": 50,
  "response_time": "1_to_4_hours",
  "follow_up_attempts": 2,
  "business_hours": "standard",
  "missed_call_rate": "20_to_30",
  "hold_time_minutes": 3,
  "requires_appointments": true,
  "appointments_booked": 80,
  "appointments_shown": 60,
  "reminder_policy": "none",
  "staff_count": 4,
  "staff_hourly_cost": 40,
  "qualification_practice": "informal",
  "unqualified_percent": 20,
  "consultation_minutes": 30,
  "avg_transaction_value": 1000
}`

const referenceYAML = `
business_name: Acme HVAC
monthly_inquiries: 200
call_percent: 60
form_percent: 30
social_percent: 10
closed_deals_per_month: 50
response_time: 1_to_4_hours
missed_call_rate: 20_to_30
avg_transaction_value: 1000
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
