package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/workoutlog"
	"github.com/2beens/workoutlog/internal/workoutlog/datekey"
	"github.com/2beens/workoutlog/internal/workoutlog/entries"
)

type reportOptions struct {
	file        string
	today       string
	timezone    string
	metric      string
	windowDays  int
	seriesDays  int
	compareDays int
	indent      bool
}

var reportOpts reportOptions

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard for a JSON export of entries",
	Long: `Reads a JSON array of entries (as exported by the service), skips malformed
records and prints the dashboard as of --today.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runReport(cmd.Context(), cmd, reportOpts)
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportOpts.file, "file", "f", "", "path of the JSON export (required)")
	f.StringVar(&reportOpts.today, "today", "", "report day as YYYY-MM-DD, defaults to the current day")
	f.StringVar(&reportOpts.timezone, "timezone", "UTC", "IANA timezone calendar days are computed in")
	f.StringVar(&reportOpts.metric, "metric", string(entries.ModeTime), "metric for the rolling series [time | reps]")
	f.IntVar(&reportOpts.windowDays, "window", workoutlog.DefaultWindowDays, "rolling window in days")
	f.IntVar(&reportOpts.seriesDays, "days", workoutlog.DefaultSeriesDays, "series length in days")
	f.IntVar(&reportOpts.compareDays, "compare", workoutlog.DefaultCompareDays, "baseline comparison length in days")
	f.BoolVar(&reportOpts.indent, "indent", true, "indent the JSON output")
	_ = reportCmd.MarkFlagRequired("file")
}

func runReport(ctx context.Context, cmd *cobra.Command, opts reportOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("load timezone [%s]: %w", opts.timezone, err)
	}

	today := datekey.FromTime(time.Now().In(loc))
	if opts.today != "" {
		if today, err = datekey.Parse(opts.today); err != nil {
			return fmt.Errorf("parse today: %w", err)
		}
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}
	list, skipped := entries.DecodeSnapshot(data)
	if skipped > 0 {
		log.Warnf("skipped %d malformed records from [%s]", skipped, opts.file)
	}

	analyzer := workoutlog.NewAnalyzer(1, metrics.NewManager("workoutlog", "report", prometheus.NewRegistry()))
	dashboard, err := analyzer.Dashboard(ctx, workoutlog.Snapshot{Entries: list}, loc, workoutlog.DashboardParams{
		Today:       today,
		Metric:      entries.Mode(opts.metric),
		WindowDays:  opts.windowDays,
		SeriesDays:  opts.seriesDays,
		CompareDays: opts.compareDays,
	})
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	if opts.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(dashboard)
}
