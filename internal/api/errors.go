package api

import "errors"

var (
	ErrNotFound    = errors.New("option chain not found for this symbol")
	ErrRateLimited = errors.New("rate limited by quote site")
	ErrEmptySymbol = errors.New("symbol is required")
)
