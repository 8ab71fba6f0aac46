package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leak-calc/internal/model"
)

// WriteTable prints the ranked leaks and totals as an aligned text table.
func WriteTable(out io.Writer, rep Report) error {
	r := rep.Result
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, title(rep))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "RANK\tLEAK\tMONTHLY\tANNUAL\tRANGE\tSEVERITY\tQUICK WIN")
	_, _ = fmt.Fprintln(w, "----\t----\t-------\t------\t-----\t--------\t---------")
	for _, l := range r.Leaks {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.Rank, l.Label, Currency(l.MonthlyLoss), Currency(l.AnnualLoss),
			Range(l.MonthlyLossRange), l.Severity, yesNo(l.QuickWin))
	}
	if len(r.Leaks) == 0 {
		_, _ = fmt.Fprintln(w, "-\tno operational leaks\t\t\t\t\t")
	}
	_, _ = fmt.Fprintln(w)

	if o := r.ReactivationOpportunity; o.MonthlyLoss > 0 {
		_, _ = fmt.Fprintf(w, "Reactivation opportunity\t%s/mo\tupside %s\tROI %.1fx\tpayback %s\n",
			Currency(o.MonthlyLoss), Currency(o.Upside), o.ExpectedROI, o.PaybackPeriod)
	}
	if r.PrimaryConstraint != nil {
		_, _ = fmt.Fprintf(w, "Primary constraint\t%s\t(%s)\n", r.PrimaryConstraint.ConstraintLabel, r.PrimaryConstraint.Label)
	}
	_, _ = fmt.Fprintf(w, "Total monthly loss\t%s\n", Currency(r.TotalMonthlyLoss))
	_, _ = fmt.Fprintf(w, "Total annual loss\t%s\n", Currency(r.TotalAnnualLoss))

	return eris.Wrap(w.Flush(), "report: flush table")
}

// WriteCockpit prints a cockpit evaluation as key/value lines.
func WriteCockpit(out io.Writer, res model.CockpitResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "Status\t%s\n", res.Status)
	_, _ = fmt.Fprintf(w, "Mode\t%s\n", res.ExposureMode)
	_, _ = fmt.Fprintf(w, "Missed calls / month\t%.1f\n", res.MissedCalls)
	_, _ = fmt.Fprintf(w, "Daily exposure\t%s\n", Currency(res.DailyExposure))
	_, _ = fmt.Fprintf(w, "Monthly exposure\t%s\n", Currency(res.MonthlyExposure))
	_, _ = fmt.Fprintf(w, "Yearly exposure\t%s\n", Currency(res.YearlyExposure))
	_, _ = fmt.Fprintf(w, "Full exposure (100%% close)\t%s/mo\n", Currency(res.FullExposure.Monthly))
	for _, reason := range res.DisqualifyReasons {
		_, _ = fmt.Fprintf(w, "Disqualified\t%s\n", reason)
	}
	_, _ = fmt.Fprintf(w, "Next step\t%s\n", res.NextStep)

	return eris.Wrap(w.Flush(), "report: flush cockpit")
}
