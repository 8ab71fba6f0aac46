package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leak-calc/internal/leak"
	"github.com/sells-group/leak-calc/internal/model"
)

func sample(t *testing.T) Report {
	t.Helper()
	in := model.BusinessInput{
		BusinessName:        "Acme HVAC",
		MonthlyInquiries:    200,
		CallPercent:         60,
		FormPercent:         30,
		SocialPercent:       10,
		ClosedDealsPerMonth: 50,
		ResponseTime:        model.Response1To4Hours,
		FollowUpAttempts:    2,
		MissedCallRate:      model.Missed20To30,
		AvgTransactionValue: 1000,
		HasDormantLeads:     true,
		DormantLeadCount:    2000,
		DormantDatabaseAge:  model.Age1To2Years,
	}
	return Report{EvaluationID: "eval-1", Business: in.BusinessName, Result: leak.Calculate(in)}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{12345, "$12,345"},
		{1814400, "$1,814,400"},
		{12345.6, "$12,346"},
		{-2500, "-$2,500"},
		{-0.2, "$0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in), "Currency(%v)", tt.in)
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1000, "$1.0K"},
		{12345, "$12.3K"},
		{151200, "$151.2K"},
		{999960, "$1.0M"},
		{1200000, "$1.2M"},
		{2500000000, "$2.5B"},
		{-12345, "-$12.3K"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compact(tt.in), "Compact(%v)", tt.in)
	}
}

func TestRangeAndPercent(t *testing.T) {
	assert.Equal(t, "$6.0K - $9.0K", Range([2]float64{6000, 9000}))
	assert.Equal(t, "25%", Percent(0.25))
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, got)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestRender_NilResult(t *testing.T) {
	err := Render(&bytes.Buffer{}, Report{}, FormatTable)
	assert.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	rep := sample(t)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Revenue Leak Report: Acme HVAC")
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Slow Lead Response")
	assert.Contains(t, out, "Reactivation opportunity")
	assert.Contains(t, out, "Primary constraint")
	assert.Contains(t, out, Currency(rep.Result.TotalMonthlyLoss))
}

func TestWriteTable_NoLeaks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Report{Result: leak.Calculate(model.BusinessInput{})}))
	assert.Contains(t, buf.String(), "no operational leaks")
	assert.NotContains(t, buf.String(), "Primary constraint")
}

func TestWriteJSON(t *testing.T) {
	rep := sample(t)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep, FormatJSON))

	var decoded struct {
		EvaluationID string                  `json:"evaluation_id"`
		Result       model.CalculationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "eval-1", decoded.EvaluationID)
	assert.Equal(t, rep.Result.TotalMonthlyLoss, decoded.Result.TotalMonthlyLoss)
	assert.Len(t, decoded.Result.Leaks, len(rep.Result.Leaks))
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sample(t))

	assert.True(t, strings.HasPrefix(out, "# Revenue Leak Report: Acme HVAC"))
	assert.Contains(t, out, "| Rank | Leak |")
	assert.Contains(t, out, "## Reactivation opportunity")
	assert.Contains(t, out, "Dormant leads: 800 viable (40%)")
	assert.Contains(t, out, "Evaluation `eval-1`")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(t), FormatHTML))

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Revenue Leak Report: Acme HVAC</title>")
	assert.Contains(t, out, "<h1>Revenue Leak Report: Acme HVAC</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Slow Lead Response</td>")
}

func TestHTML_EscapesTitle(t *testing.T) {
	rep := sample(t)
	rep.Business = "<script>"
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, rep))
	assert.NotContains(t, buf.String(), "<title>Revenue Leak Report: <script></title>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func sheetRows(t *testing.T, f *xlsx.File, name string) [][]string {
	t.Helper()
	sheet, ok := f.Sheet[name]
	require.True(t, ok, "sheet %q", name)
	rows := make([][]string, len(sheet.Rows))
	for i, row := range sheet.Rows {
		for _, cell := range row.Cells {
			rows[i] = append(rows[i], cell.String())
		}
	}
	return rows
}

func TestWriteXLSX(t *testing.T) {
	rep := sample(t)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep, FormatXLSX))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)

	summary := sheetRows(t, f, SheetSummary)
	assert.Equal(t, []string{"Report", "Revenue Leak Report: Acme HVAC"}, summary[0])
	assert.Equal(t, []string{"Evaluation ID", "eval-1"}, summary[1])

	leaks := f.Sheet[SheetLeaks]
	require.Len(t, leaks.Rows, len(rep.Result.Leaks)+1)
	assert.Equal(t, "Rank", leaks.Rows[0].Cells[0].String())
	assert.Equal(t, string(model.LeakSlowResponse), leaks.Rows[1].Cells[1].String())
	monthly, err := leaks.Rows[1].Cells[3].Float()
	require.NoError(t, err)
	assert.Equal(t, rep.Result.Leaks[0].MonthlyLoss, monthly)

	reactivation := sheetRows(t, f, SheetReactivation)
	assert.Equal(t, "Monthly value", reactivation[0][0])
}
