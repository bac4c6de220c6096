package config

import "regexp"

const (
	DefaultBaseURL     = "https://www.optionistics.com/quotes/stock-option-chains"
	DefaultDelta       = 0.3
	DefaultDeltaRange  = 0.05
	DefaultStrikeWidth = 15
)

// symbolPattern accepts plain and class-share tickers (BRK.B, BF-B).
var symbolPattern = regexp.MustCompile(`^[A-Za-z]{1,5}([.\-][A-Za-z]{1,2})?$`)

// ValidSymbol reports whether s looks like a stock ticker.
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(s)
}
