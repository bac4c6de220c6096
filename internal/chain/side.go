package chain

import (
	"fmt"
	"strings"
)

// Side selects which half of the option chain is requested.
type Side string

const (
	SideCall Side = "call"
	SidePut  Side = "put"
)

// Code returns the chain type code the quote site expects (1=calls, 2=puts).
func (s Side) Code() string {
	if s == SideCall {
		return "1"
	}
	return "2"
}

func (s Side) String() string {
	return string(s)
}

// ParseSide accepts call|calls|c and put|puts|p, case-insensitively.
func ParseSide(value string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "call", "calls", "c":
		return SideCall, nil
	case "put", "puts", "p":
		return SidePut, nil
	default:
		return "", fmt.Errorf("invalid option side %q (must be call or put)", value)
	}
}
