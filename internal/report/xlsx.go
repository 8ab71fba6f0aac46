package report

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Workbook sheet names.
const (
	SheetSummary      = "Summary"
	SheetLeaks        = "Leaks"
	SheetReactivation = "Reactivation"
)

// Workbook builds an XLSX workbook with a summary sheet, the ranked leak
// breakdown and the reactivation detail.
func Workbook(rep Report) (*xlsx.File, error) {
	r := rep.Result
	f := xlsx.NewFile()

	summary, err := f.AddSheet(SheetSummary)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add summary sheet")
	}
	addStrings(summary, "Report", title(rep))
	if rep.EvaluationID != "" {
		addStrings(summary, "Evaluation ID", rep.EvaluationID)
	}
	addFloat(summary, "Total monthly loss", r.TotalMonthlyLoss)
	addFloat(summary, "Total annual loss", r.TotalAnnualLoss)
	if p := r.PrimaryConstraint; p != nil {
		addStrings(summary, "Primary constraint", p.ConstraintLabel)
	}

	leaks, err := f.AddSheet(SheetLeaks)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add leaks sheet")
	}
	addStrings(leaks, "Rank", "Type", "Leak", "Monthly", "Annual", "Monthly low", "Monthly high", "Severity", "Quick win", "Constraint")
	for _, l := range r.Leaks {
		row := leaks.AddRow()
		row.AddCell().SetInt(l.Rank)
		row.AddCell().SetString(string(l.Type))
		row.AddCell().SetString(l.Label)
		row.AddCell().SetFloat(l.MonthlyLoss)
		row.AddCell().SetFloat(l.AnnualLoss)
		row.AddCell().SetFloat(l.MonthlyLossRange[0])
		row.AddCell().SetFloat(l.MonthlyLossRange[1])
		row.AddCell().SetString(string(l.Severity))
		row.AddCell().SetBool(l.QuickWin)
		row.AddCell().SetString(l.ConstraintLabel)
	}

	reactivation, err := f.AddSheet(SheetReactivation)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add reactivation sheet")
	}
	o := r.ReactivationOpportunity
	addFloat(reactivation, "Monthly value", o.MonthlyLoss)
	addFloat(reactivation, "Annual value", o.AnnualLoss)
	addFloat(reactivation, "Upside", o.Upside)
	addFloat(reactivation, "Quick-win score", o.QuickWinScore)
	addFloat(reactivation, "Expected ROI", o.ExpectedROI)
	addStrings(reactivation, "Payback period", o.PaybackPeriod)
	if d := o.DormantLeads; d != nil {
		addFloat(reactivation, "Dormant viable leads", d.ViableLeads)
		addFloat(reactivation, "Dormant expected customers", d.ExpectedCustomers)
		addFloat(reactivation, "Dormant monthly value", d.MonthlyLoss)
	}
	if p := o.PastCustomers; p != nil {
		addFloat(reactivation, "Winnable past customers", p.WinnableCustomers)
		addFloat(reactivation, "Past customer frequency score", p.FrequencyScore)
		addFloat(reactivation, "Past customer monthly value", p.MonthlyLoss)
	}

	return f, nil
}

// WriteXLSX writes the workbook to w.
func WriteXLSX(w io.Writer, rep Report) error {
	f, err := Workbook(rep)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}

func addStrings(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func addFloat(sheet *xlsx.Sheet, label string, v float64) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetFloat(v)
}
