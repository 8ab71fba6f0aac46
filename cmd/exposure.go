package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/leak-calc/internal/exposure"
	"github.com/sells-group/leak-calc/internal/intake"
	"github.com/sells-group/leak-calc/internal/report"
)

var exposureIn intake.ExposureRequest

var exposureCmd = &cobra.Command{
	Use:   "exposure",
	Short: "Compute raw missed-call exposure as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := exposure.Compute(exposureIn.InquiriesWeekly, exposureIn.MissedPer10, exposureIn.AvgTicket, exposureIn.CloseRate)
		return report.WriteJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	f := exposureCmd.Flags()
	f.Float64Var(&exposureIn.InquiriesWeekly, "inquiries", 0, "inbound inquiries per week")
	f.Float64Var(&exposureIn.MissedPer10, "missed", 0, "calls missed out of every 10 (0-10)")
	f.Float64Var(&exposureIn.AvgTicket, "ticket", 0, "average job value in dollars")
	f.Float64Var(&exposureIn.CloseRate, "close-rate", exposure.FullCloseRate, "close rate as a fraction (0-1)")
	rootCmd.AddCommand(exposureCmd)
}
