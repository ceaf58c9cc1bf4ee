package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yarrowhq/ui-verify/runlog"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded verification runs",
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())

	return cmd
}

func openHistoryStore() (runlog.Store, error) {
	if !historyEnabled() {
		return nil, fmt.Errorf("run history is disabled (set history.enabled to true)")
	}

	db, err := runlog.Open(historyDBConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}

	return runlog.NewGormStore(db, newLogger()), nil
}

func newHistoryListCmd() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore()
			if err != nil {
				return err
			}

			runs, err := store.List(cmd.Context(), limit, offset)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if flagJSON {
				printJSON(runs)
				return nil
			}

			headers := []string{"ID", "STATUS", "TARGET", "FAILED STEP", "DURATION", "STARTED AT"}
			rows := make([][]string, 0, len(runs))

			for _, run := range runs {
				failedStep := "-"
				if run.FailedStep != "" {
					failedStep = run.FailedStep
				}

				duration := "-"
				if run.CompletedAt != nil {
					duration = run.Duration().Round(time.Millisecond).String()
				}

				rows = append(rows, []string{
					run.ID.String(),
					string(run.Status),
					run.TargetURL,
					failedStep,
					duration,
					run.StartedAt.Format("2006-01-02 15:04:05"),
				})
			}

			printTable(headers, rows)
			printMessage(fmt.Sprintf("\nShowing %d runs", len(runs)))

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset for pagination")

	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run ID: must be a valid UUID")
			}

			store, err := openHistoryStore()
			if err != nil {
				return err
			}

			run, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get run: %w", err)
			}

			if flagJSON {
				printJSON(run)
				return nil
			}

			printMessage(fmt.Sprintf("ID:          %s", run.ID))
			printMessage(fmt.Sprintf("Status:      %s", run.Status))
			printMessage(fmt.Sprintf("Target:      %s", run.TargetURL))
			printMessage(fmt.Sprintf("Started at:  %s", run.StartedAt.Format("2006-01-02 15:04:05")))

			if run.CompletedAt != nil {
				printMessage(fmt.Sprintf("Completed:   %s", run.CompletedAt.Format("2006-01-02 15:04:05")))
				printMessage(fmt.Sprintf("Duration:    %s", run.Duration().Round(time.Millisecond)))
			}

			if run.Status == runlog.StatusFailed {
				printMessage(fmt.Sprintf("Failed step: %s", run.FailedStep))
				printMessage(fmt.Sprintf("Cause:       %s", run.Cause))
			}

			if run.ArtifactPath != "" {
				printMessage(fmt.Sprintf("Artifact:    %s (%d bytes)", run.ArtifactPath, run.ArtifactSize))
			}

			return nil
		},
	}
}
