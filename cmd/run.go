package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"autoskip/internal/config"
	"autoskip/internal/engine"
	"autoskip/internal/logging"
	"autoskip/internal/output"
	"autoskip/internal/platform"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the worklist poller",
	Long:  "Polls the worklist window on a fixed interval, clicks the skip toggle on rows matching the configured rules, and restores focus afterwards. Runs until interrupted.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("once", false, "Run a single poll cycle and exit")
	runCmd.Flags().Int("interval", 0, "Override the poll interval in seconds")
	runCmd.Flags().Int("max-rows", 0, "Override the per-poll row limit")
	runCmd.Flags().String("config", "", "Config file path (default: the user config dir)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfigFlag(cfgPath)
	if err != nil {
		return err
	}
	interval, _ := cmd.Flags().GetInt("interval")
	maxRows, _ := cmd.Flags().GetInt("max-rows")
	once, _ := cmd.Flags().GetBool("once")

	logPath, err := config.LogPath()
	if err != nil {
		return err
	}
	logger, err := logging.New(logPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	poller := engine.New(provider, engineOptions(cfg, interval, maxRows), logger)

	if once {
		poller.Tick()
		return output.Print(map[string]int64{"skipped": poller.Skipped()})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
