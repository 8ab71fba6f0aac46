package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown renders the report as a Markdown document.
func Markdown(rep Report) string {
	r := rep.Result
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title(rep))
	if rep.EvaluationID != "" {
		fmt.Fprintf(&b, "Evaluation `%s`\n\n", rep.EvaluationID)
	}
	fmt.Fprintf(&b, "**Total monthly loss:** %s  \n", Currency(r.TotalMonthlyLoss))
	fmt.Fprintf(&b, "**Total annual loss:** %s\n\n", Currency(r.TotalAnnualLoss))
	if p := r.PrimaryConstraint; p != nil {
		fmt.Fprintf(&b, "**Primary constraint:** %s (%s, %s/mo)\n\n", p.ConstraintLabel, p.Label, Currency(p.MonthlyLoss))
	}

	b.WriteString("## Operational leaks\n\n")
	if len(r.Leaks) == 0 {
		b.WriteString("No operational leaks found.\n\n")
	} else {
		b.WriteString("| Rank | Leak | Monthly | Annual | Range | Severity | Quick win |\n")
		b.WriteString("|---:|---|---:|---:|---|---|---|\n")
		for _, l := range r.Leaks {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
				l.Rank, l.Label, Currency(l.MonthlyLoss), Currency(l.AnnualLoss),
				Range(l.MonthlyLossRange), l.Severity, yesNo(l.QuickWin))
		}
		b.WriteString("\n")
	}

	o := r.ReactivationOpportunity
	if o.MonthlyLoss > 0 {
		b.WriteString("## Reactivation opportunity\n\n")
		fmt.Fprintf(&b, "- Monthly value: %s\n", Currency(o.MonthlyLoss))
		fmt.Fprintf(&b, "- Untapped upside: %s\n", Currency(o.Upside))
		if d := o.DormantLeads; d != nil {
			fmt.Fprintf(&b, "- Dormant leads: %.0f viable (%s), %.1f expected customers\n",
				d.ViableLeads, Percent(d.ViabilityRate), d.ExpectedCustomers)
		}
		if p := o.PastCustomers; p != nil {
			fmt.Fprintf(&b, "- Past customers: %.0f winnable, cadence %s (recommended %s)\n",
				p.WinnableCustomers, strings.ReplaceAll(p.CurrentStatus, "_", " "), p.RecommendedFrequency)
		}
		fmt.Fprintf(&b, "- Quick-win score: %.0f/100\n", o.QuickWinScore)
		fmt.Fprintf(&b, "- Expected ROI: %.1fx, payback %s, setup %s\n", o.ExpectedROI, o.PaybackPeriod, o.ImplementationTime)
	}

	return b.String()
}

// HTML renders the Markdown report to an HTML fragment.
func HTML(rep Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(rep)), &buf); err != nil {
		return nil, eris.Wrap(err, "report: convert markdown")
	}
	return buf.Bytes(), nil
}

// WriteHTML writes a standalone HTML page for the report.
func WriteHTML(w io.Writer, rep Report) error {
	body, err := HTML(rep)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title(rep)), body)
	return eris.Wrap(err, "report: write html")
}
