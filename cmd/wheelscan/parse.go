package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/wheelscan/internal/chain"
	"github.com/dgnsrekt/wheelscan/internal/market"
	"github.com/dgnsrekt/wheelscan/internal/report"
	"github.com/dgnsrekt/wheelscan/internal/scan"
)

func parseCmd() *cobra.Command {
	var (
		flags  scanFlags
		symbol string
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a saved option chain page",
		Long: `Parse an option chain page saved from the quote site and print its
contracts. Use this to check whether the page layout still matches what
the scanner expects.

Examples:
  # All contracts in a saved page
  wheelscan parse --symbol INTC --all intc.html

  # Contracts near 0.25 delta
  wheelscan parse --symbol INTC -d .25 intc.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(symbol) == "" {
				return fmt.Errorf("--symbol is required")
			}

			format, err := flags.outputFormat(cmd)
			if err != nil {
				return err
			}

			page, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading page: %w", err)
			}

			sc, err := flags.resolve(cmd, cfg.Scan, []string{symbol})
			if err != nil {
				return err
			}
			calendar := market.NewCalendar(sc.Timezone)
			parser := chain.NewParser(chain.DefaultLayout(), logger)
			mgr := scan.NewManager(nil, parser, calendar, logger)

			contracts, err := mgr.Parse(page, sc.Symbols[0])
			if err != nil {
				return err
			}

			filter := scan.Filter{
				TargetDelta: sc.Delta,
				Tolerance:   sc.DeltaRange,
				MaxDTE:      sc.MaxDTE,
				Today:       calendar.Today(),
				All:         flags.all,
			}
			matches := mgr.Apply(contracts, filter)

			logger.Info("parsed page",
				zap.String("file", args[0]),
				zap.Int("contracts", len(contracts)),
				zap.Int("matches", len(matches)),
				zap.Int("off_calendar", mgr.OffCalendar(matches)),
			)

			out := &report.Writer{Calendar: calendar, Today: filter.Today}
			return out.Write(os.Stdout, format, matches)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&symbol, "symbol", "", "underlying symbol the page belongs to")

	return cmd
}
