package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leak-calc/internal/assumptions"
	"github.com/sells-group/leak-calc/internal/config"
	"github.com/sells-group/leak-calc/internal/leak"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leak-calc",
	Short: "Revenue leak calculator for service businesses",
	Long:  "Estimates the revenue a service business loses to missed calls, slow response, weak follow-up and other operational gaps, plus the value sitting in its dormant lead and past-customer database.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

// newEngine returns an engine configured with the loaded assumptions.
func newEngine() *leak.Engine {
	if cfg == nil {
		return leak.NewEngine(assumptions.Default())
	}
	return leak.NewEngine(cfg.Assumptions)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
