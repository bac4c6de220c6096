package config

import (
	"fmt"
	"strings"

	"github.com/dgnsrekt/wheelscan/internal/chain"
)

// ValidationErrors collects all validation errors
type ValidationErrors struct {
	InvalidSymbols []string
	Problems       []string
}

// HasErrors returns true if any validation errors exist
func (e *ValidationErrors) HasErrors() bool {
	return len(e.InvalidSymbols) > 0 || len(e.Problems) > 0
}

// Error formats all validation errors into a clear message
func (e *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")

	if len(e.InvalidSymbols) > 0 {
		sb.WriteString("\nInvalid symbols:\n")
		for _, s := range e.InvalidSymbols {
			sb.WriteString(fmt.Sprintf("  - %s\n", s))
		}
	}

	if len(e.Problems) > 0 {
		sb.WriteString("\nProblems:\n")
		for _, p := range e.Problems {
			sb.WriteString(fmt.Sprintf("  - %s\n", p))
		}
	}

	return sb.String()
}

// ValidateScan validates symbols and scan parameters, typically after
// command-line overrides have been applied.
func ValidateScan(scan ScanConfig) error {
	errs := &ValidationErrors{}
	validateScan(errs, scan)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateScan(errs *ValidationErrors, scan ScanConfig) {
	for _, symbol := range scan.Symbols {
		if !ValidSymbol(symbol) {
			errs.InvalidSymbols = append(errs.InvalidSymbols, symbol)
		}
	}

	if _, err := chain.ParseSide(scan.Side); err != nil {
		errs.Problems = append(errs.Problems, err.Error())
	}

	if _, err := chain.NewWindow(scan.StrikeWidth); err != nil {
		errs.Problems = append(errs.Problems, err.Error())
	}

	if scan.MaxDTE < 0 {
		errs.Problems = append(errs.Problems, "scan.max_dte must be >= 0")
	}
}
