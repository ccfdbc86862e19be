package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
	"github.com/jonesrussell/north-cloud/link-checker/internal/tasks"
)

const defaultHistoryLimit = 20

func scanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Manage link scans",
		Long:  `Start, stop and inspect link scans directly against the database.`,
	}

	cmd.AddCommand(
		scanStartCommand(),
		scanStopCommand(),
		scanForceStopCommand(),
		scanProgressCommand(),
		scanCleanupCommand(),
		scanRecheckCommand(),
		scanHistoryCommand(),
	)

	return cmd
}

// withApp runs fn with a wired app and releases it afterwards.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func scanStartCommand() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Discover links and start a full scan",
		Long: `Start runs discovery and schedules the first batch. A running serve process
picks the batches up. With --wait the batches are processed here until the
scan finishes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				s, err := a.orch.Start(ctx, domain.ScanTypeFull)
				if err != nil {
					return fmt.Errorf("start scan: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scan %d started: %d links to check\n", s.ID, s.TotalLinks)

				if !wait {
					return nil
				}
				return processUntilDone(ctx, cmd.OutOrStdout(), a)
			})
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "process batches in this process until the scan finishes")
	return cmd
}

// processUntilDone drives the task runner in the foreground and prints
// progress after every poll.
func processUntilDone(ctx context.Context, w io.Writer, a *app) error {
	runner := tasks.NewRunner(a.taskRepo,
		tasks.WithClaimTTL(a.cfg.Tasks.ClaimTTL),
		tasks.WithRecorder(a.metrics),
		tasks.WithLogger(a.logger.With(infralogger.Component("tasks"))),
	)
	a.orch.RegisterTasks(runner)

	ticker := time.NewTicker(a.cfg.Tasks.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := runner.RunOnce(ctx); err != nil {
			return fmt.Errorf("process batch: %w", err)
		}

		p, err := a.orch.GetProgress(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %d/%d checked (%d%%), %d broken, %d warnings\n",
			p.Status, p.Checked, p.Total, p.Percent, p.Broken, p.Warnings)

		if !domain.ScanStatus(p.Status).IsActive() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func scanStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Cancel the active scan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				stopped, err := a.orch.StopScan(ctx)
				if err != nil {
					return fmt.Errorf("stop scan: %w", err)
				}
				if !stopped {
					fmt.Fprintln(cmd.OutOrStdout(), "No active scan")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Scan cancelled")
				return nil
			})
		},
	}
}

func scanForceStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "force-stop",
		Short: "Cancel every pending or running scan and drop queued batches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				n, err := a.orch.ForceStopScan(ctx)
				if err != nil {
					return fmt.Errorf("force-stop scans: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d scan(s) cancelled\n", n)
				return nil
			})
		},
	}
}

func scanProgressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show the current scan's progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				p, err := a.orch.GetProgress(ctx)
				if err != nil {
					return err
				}
				renderProgress(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
}

func scanCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Fail scans stuck past the stale threshold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				var n int
				ran, err := a.guard.RunExclusive(ctx, tasks.JobCleanup, func(ctx context.Context) error {
					var cleanupErr error
					n, cleanupErr = a.orch.CleanupStaleScans(ctx)
					return cleanupErr
				})
				if err != nil {
					return fmt.Errorf("cleanup: %w", err)
				}
				if !ran {
					fmt.Fprintln(cmd.OutOrStdout(), "Cleanup already running elsewhere")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d stale scan(s) failed\n", n)
				return nil
			})
		},
	}
}

func scanRecheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recheck",
		Short: "Re-probe broken and warning links",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				var n int
				ran, err := a.guard.RunExclusive(ctx, tasks.JobRecheck, func(ctx context.Context) error {
					var recheckErr error
					n, recheckErr = a.orch.RecheckBrokenLinks(ctx)
					return recheckErr
				})
				if err != nil {
					return fmt.Errorf("recheck: %w", err)
				}
				if !ran {
					fmt.Fprintln(cmd.OutOrStdout(), "Recheck already running elsewhere")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d link(s) rechecked\n", n)
				return nil
			})
		},
	}
}

func scanHistoryCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past scans, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				scans, err := a.orch.History(ctx, limit, offset)
				if err != nil {
					return fmt.Errorf("list scans: %w", err)
				}
				renderScans(cmd.OutOrStdout(), scans)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "maximum number of scans")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of scans to skip")
	return cmd
}

func renderProgress(w io.Writer, p domain.Progress) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Scan", "Status", "Checked", "Total", "Percent", "Broken", "Warnings"})

	scanID := "-"
	if p.ScanID != 0 {
		scanID = fmt.Sprint(p.ScanID)
	}
	t.AppendRow(table.Row{scanID, p.Status, p.Checked, p.Total, fmt.Sprintf("%d%%", p.Percent), p.Broken, p.Warnings})
	t.Render()
}

func renderScans(w io.Writer, scans []*domain.Scan) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Type", "Status", "Checked", "Total", "Broken", "Warnings", "Started", "Completed", "Error"})

	for _, s := range scans {
		errMsg := ""
		if s.ErrorMessage != nil {
			errMsg = *s.ErrorMessage
		}
		t.AppendRow(table.Row{
			s.ID, s.Type, s.Status, s.CheckedLinks, s.TotalLinks, s.BrokenLinks, s.WarningLinks,
			s.StartedAt.Format(time.DateTime), formatOptionalTime(s.CompletedAt), errMsg,
		})
	}

	t.Render()
}
