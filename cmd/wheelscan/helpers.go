package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/wheelscan/internal/chain"
	"github.com/dgnsrekt/wheelscan/internal/config"
	"github.com/dgnsrekt/wheelscan/internal/report"
	"github.com/dgnsrekt/wheelscan/internal/scan"
)

// scanFlags are the command-line overrides shared by scan and parse.
type scanFlags struct {
	symbols []string
	side    string
	delta   float64
	rng     float64
	width   int
	maxDTE  int
	format  string
	all     bool
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.side, "side", "", "option side: call or put (default from config)")
	cmd.Flags().Float64VarP(&f.delta, "delta", "d", 0, "target delta (default from config)")
	cmd.Flags().Float64VarP(&f.rng, "range", "r", 0, "range around the target delta (default from config)")
	cmd.Flags().IntVar(&f.maxDTE, "max-dte", 0, "only expirations within this many trading days (0 = no limit)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: text, table, csv, json")
	cmd.Flags().BoolVar(&f.all, "all", false, "print every parsed contract, not only delta matches")
}

// merge applies flags the user set on top of the loaded scan config.
func (f *scanFlags) merge(cmd *cobra.Command, base config.ScanConfig, args []string) config.ScanConfig {
	merged := base

	symbols := append(append([]string(nil), args...), f.symbols...)
	if len(symbols) > 0 {
		merged.Symbols = symbols
	}
	merged.Symbols = normalizeSymbols(merged.Symbols)

	if cmd.Flags().Changed("side") {
		merged.Side = f.side
	}
	if cmd.Flags().Changed("delta") {
		merged.Delta = f.delta
	}
	if cmd.Flags().Changed("range") {
		merged.DeltaRange = f.rng
	}
	if cmd.Flags().Changed("width") {
		merged.StrikeWidth = f.width
	}
	if cmd.Flags().Changed("max-dte") {
		merged.MaxDTE = f.maxDTE
	}

	return merged
}

// resolve merges the flags and validates the result the same way for every
// subcommand.
func (f *scanFlags) resolve(cmd *cobra.Command, base config.ScanConfig, args []string) (config.ScanConfig, error) {
	sc := f.merge(cmd, base, args)
	if err := config.ValidateScan(sc); err != nil {
		return config.ScanConfig{}, err
	}
	return sc, nil
}

func (f *scanFlags) outputFormat(cmd *cobra.Command) (report.Format, error) {
	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format = f.format
	}
	return report.ParseFormat(format)
}

func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// generateTasks creates one scan task per symbol.
func generateTasks(sc config.ScanConfig) ([]scan.Task, error) {
	side, err := chain.ParseSide(sc.Side)
	if err != nil {
		return nil, err
	}

	window, err := chain.NewWindow(sc.StrikeWidth)
	if err != nil {
		return nil, err
	}

	tasks := make([]scan.Task, 0, len(sc.Symbols))
	for _, symbol := range sc.Symbols {
		tasks = append(tasks, scan.Task{Symbol: symbol, Side: side, Window: window})
	}
	return tasks, nil
}
