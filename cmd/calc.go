package main

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leak-calc/internal/intake"
	"github.com/sells-group/leak-calc/internal/leak"
	"github.com/sells-group/leak-calc/internal/report"
)

var (
	calcInput  string
	calcFormat string
	calcOutput string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate the full leak breakdown for one business",
	Example: `  leak-calc calc --input acme.yaml
  leak-calc calc --input acme.json --format xlsx --output acme.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd.OutOrStdout(), newEngine(), calcInput, calcFormat, calcOutput)
	},
}

func init() {
	calcCmd.Flags().StringVar(&calcInput, "input", "", "business input file (.yaml, .yml or .json)")
	calcCmd.Flags().StringVar(&calcFormat, "format", string(report.FormatTable), "output format: table, json, markdown, html or xlsx")
	calcCmd.Flags().StringVar(&calcOutput, "output", "", "write to this file instead of stdout")
	_ = calcCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(calcCmd)
}

// runCalc evaluates one input file and renders the report to stdout or a file.
func runCalc(stdout io.Writer, engine *leak.Engine, input, format, output string) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	if f == report.FormatXLSX && output == "" {
		return eris.New("calc: xlsx output requires --output")
	}

	in, err := intake.LoadBusiness(input)
	if err != nil {
		return err
	}

	rep := report.Report{
		EvaluationID: uuid.NewString(),
		Business:     in.BusinessName,
		Result:       engine.Calculate(*in),
	}

	zap.L().Info("calculated leaks",
		zap.String("evaluation_id", rep.EvaluationID),
		zap.String("input", input),
		zap.Int("leaks", len(rep.Result.Leaks)),
		zap.Float64("total_monthly_loss", rep.Result.TotalMonthlyLoss),
	)

	if output == "" {
		return report.Render(stdout, rep, f)
	}

	file, err := os.Create(output)
	if err != nil {
		return eris.Wrapf(err, "calc: create %s", output)
	}
	if err := report.Render(file, rep, f); err != nil {
		_ = file.Close()
		return err
	}
	return eris.Wrapf(file.Close(), "calc: close %s", output)
}
