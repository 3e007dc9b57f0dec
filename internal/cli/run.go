package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sohamshetty07/oraculum-core/internal/config"
	"github.com/sohamshetty07/oraculum-core/internal/controller"
	"github.com/sohamshetty07/oraculum-core/internal/export"
	"github.com/sohamshetty07/oraculum-core/internal/service"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Server   string
	OutDir   string
	Interval time.Duration
	Report   bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}
	defaults := config.Load()

	cmd := &cobra.Command{
		Use:   "run <job-config.yaml>",
		Short: "Submit a simulation job and export its results",
		Long: `Submit a simulation job, poll it to completion, and write the result
artifacts (CSV table, plus the narrative report with --report) into the
output directory.

Example:
  oraculum run ./launch.yaml --server http://localhost:8080 --report`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd.Context(), opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Server, "server", defaults.ServerURL, "simulation API base URL")
	cmd.Flags().StringVar(&opts.OutDir, "out", defaults.OutputDir, "directory for export artifacts")
	cmd.Flags().DurationVar(&opts.Interval, "interval", defaults.PollInterval, "poll interval")
	cmd.Flags().BoolVar(&opts.Report, "report", false, "request and save the narrative report")

	return cmd
}

func runJob(parent context.Context, opts *RunOptions, configPath string) error {
	jobCfg, err := LoadJobConfig(configPath)
	if err != nil {
		return err
	}

	req, err := BuildSubmitRequest(jobCfg)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appCfg := config.Load()
	client := service.NewClient(opts.Server, appCfg.APITimeout)

	ctrl := controller.New(client, opts.Interval)
	defer ctrl.Stop()

	if err := ctrl.Submit(ctx, req); err != nil {
		return err
	}

	logProgress(ctx, ctrl)

	if err := ctrl.Wait(ctx); err != nil {
		return fmt.Errorf("job interrupted: %w", err)
	}
	if !ctrl.Completed() {
		return fmt.Errorf("job did not complete")
	}

	records := ctrl.Records()
	csvPath, err := export.WriteTabularFile(opts.OutDir, jobCfg.Scenario, jobCfg.ProductName, records)
	if err != nil {
		return err
	}
	fmt.Printf("Results exported: %s (%d records)\n", csvPath, len(records))

	if opts.Report {
		analyst := service.NewAnalyst(client)
		reportCtx, cancel := context.WithTimeout(ctx, appCfg.AnalyzeTimeout)
		defer cancel()

		report, err := analyst.RequestReport(reportCtx, ctrl.Handle(), ctrl.Completed())
		if err != nil {
			return err
		}
		reportPath, err := export.WriteReportFile(opts.OutDir, jobCfg.Scenario, jobCfg.ProductName, report)
		if err != nil {
			return err
		}
		fmt.Printf("Report saved: %s\n", reportPath)
	}

	return nil
}

// logProgress emits a progress line whenever the percentage moves.
func logProgress(ctx context.Context, ctrl *controller.Controller) {
	go func() {
		last := -1
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !ctrl.Completed() {
					if p := ctrl.Progress(); p != last {
						last = p
						slog.Info("Job progress", "percent", p, "records", len(ctrl.Records()))
					}
					continue
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}
