package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leak-calc/internal/cockpit"
	"github.com/sells-group/leak-calc/internal/intake"
	"github.com/sells-group/leak-calc/internal/model"
	"github.com/sells-group/leak-calc/internal/report"
)

var (
	cockpitInputFile string
	cockpitFormat    string
	cockpitIn        model.CockpitInput
	cockpitMode      string
)

var cockpitCmd = &cobra.Command{
	Use:   "cockpit",
	Short: "Score a prospect live from four numbers",
	Example: `  leak-calc cockpit --inquiries 80 --missed 3 --ticket 4500 --close-rate 0.35
  leak-calc cockpit --input call.yaml --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cockpitIn
		in.ExposureMode = model.ExposureMode(cockpitMode)
		if cockpitInputFile != "" {
			loaded, err := intake.LoadCockpit(cockpitInputFile)
			if err != nil {
				return err
			}
			in = *loaded
		}
		return runCockpit(cmd.OutOrStdout(), in, cockpitFormat)
	},
}

func init() {
	f := cockpitCmd.Flags()
	f.StringVar(&cockpitInputFile, "input", "", "cockpit input file (.yaml, .yml or .json); overrides the value flags")
	f.Float64Var(&cockpitIn.InquiriesWeekly, "inquiries", 0, "inbound inquiries per week")
	f.Float64Var(&cockpitIn.MissedPer10, "missed", 0, "calls missed out of every 10 (0-10)")
	f.Float64Var(&cockpitIn.AvgTicket, "ticket", 0, "average job value in dollars")
	f.Float64Var(&cockpitIn.CloseRate, "close-rate", 0, "close rate as a fraction (0-1)")
	f.StringVar(&cockpitMode, "mode", string(model.ModeFloor), "exposure mode: floor or full")
	f.BoolVar(&cockpitIn.Booked, "booked", false, "mark the prospect as booked")
	f.StringVar(&cockpitFormat, "format", string(report.FormatTable), "output format: table or json")
	rootCmd.AddCommand(cockpitCmd)
}

func runCockpit(w io.Writer, in model.CockpitInput, format string) error {
	res := cockpit.Calculate(in)

	zap.L().Info("cockpit evaluated",
		zap.String("status", string(res.Status)),
		zap.Float64("monthly_exposure", res.MonthlyExposure),
		zap.Strings("disqualify_reasons", res.DisqualifyReasons),
	)

	if format == string(report.FormatJSON) {
		return report.WriteJSON(w, res)
	}
	return report.WriteCockpit(w, res)
}
