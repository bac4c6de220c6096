package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgnsrekt/wheelscan/internal/scan"
)

// maxListedMatches bounds how many contracts a success message lists.
const maxListedMatches = 10

// FormatSuccessMessage creates a success notification body.
func FormatSuccessMessage(result *scan.BatchResult, duration time.Duration) string {
	var sb strings.Builder

	matches := result.Matches()
	limit := len(matches)
	if limit > maxListedMatches {
		limit = maxListedMatches
	}
	for _, c := range matches[:limit] {
		sb.WriteString(c.String())
		sb.WriteString("\n")
	}
	if len(matches) > maxListedMatches {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(matches)-maxListedMatches))
	}
	if len(matches) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Symbols: %d\n", result.Total))
	sb.WriteString(fmt.Sprintf("Matches: %d\n", result.Matched))
	sb.WriteString(fmt.Sprintf("Not Found: %d\n", result.NotFound))
	if result.OffCalendar > 0 {
		sb.WriteString(fmt.Sprintf("Off-calendar expirations: %d\n", result.OffCalendar))
	}
	sb.WriteString(fmt.Sprintf("Duration: %s", duration.Round(time.Second)))

	return sb.String()
}

// FormatFailureMessage creates a failure notification body.
func FormatFailureMessage(result *scan.BatchResult, duration time.Duration, err error) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Symbols: %d\n", result.Total))
	sb.WriteString(fmt.Sprintf("Success: %d\n", result.Success))
	sb.WriteString(fmt.Sprintf("Failed: %d\n", result.Failed))
	sb.WriteString(fmt.Sprintf("Duration: %s", duration.Round(time.Second)))

	if err != nil {
		sb.WriteString(fmt.Sprintf("\n\nError: %v", err))
	}

	// Include first 3 error messages if available
	if len(result.Errors) > 0 {
		sb.WriteString("\n\nErrors:\n")
		limit := 3
		if len(result.Errors) < limit {
			limit = len(result.Errors)
		}
		for i := 0; i < limit; i++ {
			sb.WriteString(fmt.Sprintf("- %s\n", result.Errors[i]))
		}
		if len(result.Errors) > 3 {
			sb.WriteString(fmt.Sprintf("... and %d more errors", len(result.Errors)-3))
		}
	}

	return sb.String()
}
