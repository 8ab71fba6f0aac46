package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leak-calc/internal/intake"
	"github.com/sells-group/leak-calc/internal/leak"
	"github.com/sells-group/leak-calc/internal/monitoring"
	"github.com/sells-group/leak-calc/internal/report"
)

var (
	batchDir         string
	batchOut         string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Calculate leak breakdowns for every input file in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		concurrency := batchConcurrency
		if concurrency == 0 {
			concurrency = cfg.Batch.MaxConcurrent
		}

		files, err := listInputs(batchDir)
		if err != nil {
			return err
		}

		// Batch runs expose no metrics endpoint.
		summary, err := processBatch(ctx, files, batchOut, concurrency, newEngine(), nil)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return eris.Errorf("batch: %d of %d inputs failed", summary.Failed, summary.Failed+summary.Succeeded)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", ".", "directory of business input files")
	batchCmd.Flags().StringVar(&batchOut, "out", "results", "directory for JSON results")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "parallel evaluations (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// batchSummary counts batch outcomes.
type batchSummary struct {
	Succeeded int64
	Failed    int64
}

// listInputs returns the supported input files in dir, sorted by name.
func listInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read dir %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !intake.IsInputFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// processBatch evaluates files concurrently and writes one JSON report per
// input into outDir. A failing input is logged and counted; it never aborts
// the batch. metrics may be nil.
func processBatch(ctx context.Context, files []string, outDir string, concurrency int, engine *leak.Engine, metrics *monitoring.Collector) (batchSummary, error) {
	if len(files) == 0 {
		zap.L().Info("no input files found")
		return batchSummary{}, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return batchSummary{}, eris.Wrapf(err, "batch: create output dir %s", outDir)
	}

	zap.L().Info("processing batch",
		zap.Int("files", len(files)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, path := range files {
		g.Go(func() error {
			log := zap.L().With(zap.String("input", path))

			out, err := evaluateFile(gctx, engine, path, outDir)
			metrics.ObserveBatchFile(err)
			if err != nil {
				failed.Add(1)
				log.Error("evaluation failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("evaluation complete", zap.String("output", out))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return batchSummary{}, eris.Wrap(err, "batch processing")
	}

	summary := batchSummary{Succeeded: succeeded.Load(), Failed: failed.Load()}
	zap.L().Info("batch complete",
		zap.Int64("succeeded", summary.Succeeded),
		zap.Int64("failed", summary.Failed),
	)
	return summary, nil
}

// resultName maps an input path to its result file name. The input extension
// is kept so acme.yaml and acme.json do not collide.
func resultName(path string) string {
	return strings.ReplaceAll(filepath.Base(path), ".", "_") + ".result.json"
}

// evaluateFile runs one input and writes its report into outDir.
func evaluateFile(ctx context.Context, engine *leak.Engine, path, outDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", eris.Wrap(err, "batch: cancelled")
	}

	in, err := intake.LoadBusiness(path)
	if err != nil {
		return "", err
	}

	rep := report.Report{
		EvaluationID: uuid.NewString(),
		Business:     in.BusinessName,
		Result:       engine.Calculate(*in),
	}

	out := filepath.Join(outDir, resultName(path))
	f, err := os.Create(out)
	if err != nil {
		return "", eris.Wrapf(err, "batch: create %s", out)
	}
	if err := report.WriteJSON(f, rep); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", eris.Wrapf(err, "batch: close %s", out)
	}
	return out, nil
}
