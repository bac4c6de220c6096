// Package market answers trading-calendar questions about expirations.
package market

import (
	"time"

	"github.com/scmhub/calendar"
)

const dateLayout = "2006-01-02"

// Calendar wraps the NYSE calendar in its home timezone.
type Calendar struct {
	location *time.Location
	nyse     *calendar.Calendar
}

// NewCalendar returns an NYSE calendar. An unknown timezone falls back to UTC.
func NewCalendar(timezone string) *Calendar {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &Calendar{
		location: loc,
		nyse:     calendar.XNYS(),
	}
}

// IsMarketDay reports whether the calendar date of t is a trading day.
func (c *Calendar) IsMarketDay(t time.Time) bool {
	return c.nyse.IsBusinessDay(c.noon(t))
}

// TradingDaysUntil counts trading days after from up to and including to.
// An expiration on the same day or earlier returns 0.
func (c *Calendar) TradingDaysUntil(from, to time.Time) int {
	start := c.noon(from)
	end := c.noon(to)

	days := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.nyse.IsBusinessDay(d) {
			days++
		}
	}
	return days
}

// Today returns the current date in the calendar's timezone.
func (c *Calendar) Today() time.Time {
	return c.noon(time.Now().In(c.location))
}

// noon places t's calendar date at midday in the calendar's timezone so
// date matching does not drift across midnight.
func (c *Calendar) noon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, c.location)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
