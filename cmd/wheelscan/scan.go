package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/wheelscan/internal/api"
	"github.com/dgnsrekt/wheelscan/internal/chain"
	"github.com/dgnsrekt/wheelscan/internal/market"
	"github.com/dgnsrekt/wheelscan/internal/notify"
	"github.com/dgnsrekt/wheelscan/internal/report"
	"github.com/dgnsrekt/wheelscan/internal/scan"
)

func scanCmd() *cobra.Command {
	var (
		flags      scanFlags
		sendNotify bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "scan [SYMBOL...]",
		Short: "Fetch option chains and list contracts near the target delta",
		Long: `Fetch the option chain for each symbol, parse it, and print the
contracts whose delta is within range of the target.

Examples:
  # Puts on INTC around 0.30 delta (defaults)
  wheelscan scan INTC

  # Tighter range, several symbols, table output
  wheelscan scan -s INTC -s AMD -d .3 -r .03 -f table

  # Calls within 10 trading days
  wheelscan scan --side call --max-dte 10 INTC

  # Show the requests that would be made
  wheelscan scan --dry-run INTC`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Validate configuration before fetching
			sc, err := flags.resolve(cmd, cfg.Scan, args)
			if err != nil {
				return err
			}
			if len(sc.Symbols) == 0 {
				_ = cmd.Usage()
				return errors.New("at least one symbol is required (argument, --stock or scan.symbols)")
			}

			format, err := flags.outputFormat(cmd)
			if err != nil {
				return err
			}

			tasks, err := generateTasks(sc)
			if err != nil {
				return err
			}

			logger.Info("running scan",
				zap.Strings("symbols", sc.Symbols),
				zap.String("side", sc.Side),
				zap.Float64("delta", sc.Delta),
				zap.Float64("range", sc.DeltaRange),
				zap.Int("strike_width", sc.StrikeWidth),
			)

			if dryRun {
				for _, t := range tasks {
					fmt.Printf("Would fetch: %s\n", t)
				}
				return nil
			}

			client := api.NewClient(
				cfg.Source.BaseURL,
				cfg.Source.UserAgent,
				cfg.Source.RatePerSecond,
				time.Duration(cfg.Source.TimeoutSec)*time.Second,
				logger,
			)
			calendar := market.NewCalendar(sc.Timezone)
			parser := chain.NewParser(chain.DefaultLayout(), logger)
			mgr := scan.NewManager(client, parser, calendar, logger)

			notifyCfg := cfg.Notify.NotifierConfig()
			if sendNotify {
				notifyCfg.Enabled = true
				if err := notifyCfg.Validate(); err != nil {
					return err
				}
			}
			notifier := notify.New(notifyCfg, logger)

			filter := scan.Filter{
				TargetDelta: sc.Delta,
				Tolerance:   sc.DeltaRange,
				MaxDTE:      sc.MaxDTE,
				Today:       calendar.Today(),
				All:         flags.all,
			}

			start := time.Now()
			result, err := mgr.Execute(ctx, tasks, filter)
			duration := time.Since(start)

			if err != nil {
				if nerr := notifier.SendFailure(ctx, result, duration, err); nerr != nil {
					logger.Warn("failed to send notification", zap.Error(nerr))
				}
				return err
			}

			out := &report.Writer{Calendar: calendar, Today: filter.Today}
			if err := out.Write(os.Stdout, format, result.Matches()); err != nil {
				return err
			}

			// Print summary
			logger.Info("scan complete",
				zap.String("run_id", result.RunID),
				zap.Int("total", result.Total),
				zap.Int("success", result.Success),
				zap.Int("not_found", result.NotFound),
				zap.Int("failed", result.Failed),
				zap.Int("matched", result.Matched),
				zap.Int("off_calendar", result.OffCalendar),
				zap.Duration("duration", duration),
			)

			if result.Failed > 0 {
				for _, e := range result.Errors {
					logger.Error("scan error", zap.String("error", e))
				}
				failErr := fmt.Errorf("%d symbols failed", result.Failed)
				if nerr := notifier.SendFailure(ctx, result, duration, failErr); nerr != nil {
					logger.Warn("failed to send notification", zap.Error(nerr))
				}
				return failErr
			}

			if nerr := notifier.SendSuccess(ctx, result, duration); nerr != nil {
				logger.Warn("failed to send notification", zap.Error(nerr))
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVarP(&flags.symbols, "stock", "s", nil, "stock symbol (repeatable)")
	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, fmt.Sprintf("strikes either side of center, %d-%d (default from config)", chain.MinWidth, chain.MaxWidth))
	cmd.Flags().BoolVar(&sendNotify, "notify", false, "send an ntfy notification even if notify.enabled is false")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be fetched")

	return cmd
}
