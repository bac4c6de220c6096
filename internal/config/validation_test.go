package config

import (
	"strings"
	"testing"
)

func validScan() ScanConfig {
	return ScanConfig{
		Symbols:     []string{"INTC", "BRK.B"},
		Side:        "put",
		Delta:       0.3,
		DeltaRange:  0.05,
		StrikeWidth: 15,
	}
}

func TestValidateScan_ValidConfig(t *testing.T) {
	if err := ValidateScan(validScan()); err != nil {
		t.Errorf("expected no error for valid config, got: %v", err)
	}
}

func TestValidateScan_InvalidSymbol(t *testing.T) {
	scan := validScan()
	scan.Symbols = []string{"INTC", "NOT A TICKER"}

	err := ValidateScan(scan)
	if err == nil {
		t.Fatal("expected error for invalid symbol")
	}

	if !strings.Contains(err.Error(), "NOT A TICKER") {
		t.Errorf("error should mention invalid symbol, got: %v", err)
	}
}

func TestValidateScan_InvalidSide(t *testing.T) {
	scan := validScan()
	scan.Side = "straddle"

	err := ValidateScan(scan)
	if err == nil || !strings.Contains(err.Error(), "straddle") {
		t.Errorf("expected side error, got: %v", err)
	}
}

func TestValidateScan_WidthBounds(t *testing.T) {
	for _, width := range []int{4, 24} {
		scan := validScan()
		scan.StrikeWidth = width

		err := ValidateScan(scan)
		if err == nil || !strings.Contains(err.Error(), "out of bounds") {
			t.Errorf("width %d: expected bounds error, got: %v", width, err)
		}
	}
}

func TestValidateScan_MultipleErrors(t *testing.T) {
	scan := validScan()
	scan.Symbols = []string{"INVALID1", "12345"}
	scan.Side = ""
	scan.StrikeWidth = 0

	err := ValidateScan(scan)
	if err == nil {
		t.Fatal("expected error for multiple issues")
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "INVALID1") || !strings.Contains(errStr, "12345") {
		t.Errorf("error should list all invalid symbols, got: %v", err)
	}
	if !strings.Contains(errStr, "invalid option side") || !strings.Contains(errStr, "strike width") {
		t.Errorf("error should list all problems, got: %v", err)
	}
}

func TestConfigValidate_Format(t *testing.T) {
	cfg := &Config{
		Source: SourceConfig{RatePerSecond: 1, TimeoutSec: 30},
		Scan:   validScan(),
		Output: OutputConfig{Format: "xml"},
	}

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "output.format") {
		t.Errorf("expected format error, got: %v", err)
	}
}
