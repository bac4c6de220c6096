package scan

import (
	"fmt"
	"time"

	"github.com/dgnsrekt/wheelscan/internal/api"
	"github.com/dgnsrekt/wheelscan/internal/chain"
)

type Task struct {
	Symbol string
	Side   chain.Side
	Window chain.Window
}

func (t Task) Request() api.ChainRequest {
	return api.ChainRequest{Symbol: t.Symbol, Side: t.Side, Window: t.Window}
}

func (t Task) String() string {
	return fmt.Sprintf("%s/%s/%d-%d", t.Symbol, t.Side, t.Window.Min, t.Window.Max)
}

// Filter selects contracts worth reporting.
type Filter struct {
	TargetDelta float64
	Tolerance   float64

	// MaxDTE limits trading days to expiration; 0 disables the limit.
	MaxDTE int
	Today  time.Time

	// All keeps every parsed contract regardless of delta.
	All bool
}

type TaskResult struct {
	Task        Task
	Success     bool
	NotFound    bool
	Contracts   []chain.Contract
	Matches     []chain.Contract
	OffCalendar int
	Error       error
}
