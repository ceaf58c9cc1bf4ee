package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yarrowhq/ui-verify/artifact"
	"github.com/yarrowhq/ui-verify/browser"
	"github.com/yarrowhq/ui-verify/logger"
	"github.com/yarrowhq/ui-verify/runlog"
	"github.com/yarrowhq/ui-verify/scenario"
)

func newRunCmd() *cobra.Command {
	var (
		flagBaseURL  string
		flagArtifact string
		flagHeadless bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the login-to-dashboard verification",
		Long:  "Logs into the portal with the configured credentials, waits for the dashboard to render its gallery cards, and writes a full-page screenshot. Exits non-zero if any step fails.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagBaseURL != "" {
				cfg.Set("target.base_url", flagBaseURL)
			}
			if flagArtifact != "" {
				cfg.Set("artifact.path", flagArtifact)
			}
			if cmd.Flags().Changed("headless") {
				cfg.Set("browser.headless", flagHeadless)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-quit
				cancel()
			}()

			log := newLogger()

			store, err := artifact.New(artifactConfig())
			if err != nil {
				return fmt.Errorf("failed to initialise artifact storage: %w", err)
			}

			driver := browser.NewDriver(browserConfig(), log)
			runner := scenario.NewRunner(scenarioConfig(), driver, store, log)

			result, runErr := runner.Run(ctx)

			recordRun(log, result)

			if flagJSON {
				printJSON(result)
			} else {
				printResult(result)
			}

			return runErr
		},
	}

	cmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Portal base URL (overrides config)")
	cmd.Flags().StringVar(&flagArtifact, "artifact", "", "Screenshot output path (overrides config)")
	cmd.Flags().BoolVar(&flagHeadless, "headless", true, "Run the browser headless")

	return cmd
}

// recordRun persists the outcome to the run history. History failures
// are logged and swallowed so they never change the verification
// outcome, and recording uses a fresh context so an interrupted run is
// still written.
func recordRun(log logger.Logger, result *scenario.Result) {
	if !historyEnabled() {
		return
	}

	ctx := context.Background()

	db, err := runlog.Open(historyDBConfig())
	if err != nil {
		log.Warn(ctx, "failed to open run history", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	store := runlog.NewGormStore(db, log)
	if err := store.Create(ctx, runlog.FromResult(result)); err != nil {
		log.Warn(ctx, "failed to record run history", map[string]interface{}{
			"error":  err.Error(),
			"run_id": result.RunID,
		})
	}
}
