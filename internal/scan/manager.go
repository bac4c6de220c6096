package scan

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dgnsrekt/wheelscan/internal/api"
	"github.com/dgnsrekt/wheelscan/internal/chain"
	"github.com/dgnsrekt/wheelscan/internal/htmldoc"
	"github.com/dgnsrekt/wheelscan/internal/market"
)

type Manager struct {
	client   api.Client
	parser   *chain.Parser
	calendar *market.Calendar
	logger   *zap.Logger
}

type BatchResult struct {
	RunID    string
	Total    int
	Success  int
	NotFound int
	Failed   int
	Matched  int

	// OffCalendar counts matches expiring on a day the exchange is closed.
	OffCalendar int

	Results []TaskResult
	Errors  []string
}

// Matches returns every matching contract in task order.
func (r *BatchResult) Matches() []chain.Contract {
	var out []chain.Contract
	for _, tr := range r.Results {
		out = append(out, tr.Matches...)
	}
	return out
}

func NewManager(client api.Client, parser *chain.Parser, calendar *market.Calendar, logger *zap.Logger) *Manager {
	return &Manager{
		client:   client,
		parser:   parser,
		calendar: calendar,
		logger:   logger,
	}
}

// Execute runs tasks one after another. Fetch failures are recorded and the
// batch continues; a *chain.ParseError stops the batch and is returned with
// the partial result.
func (m *Manager) Execute(ctx context.Context, tasks []Task, filter Filter) (*BatchResult, error) {
	result := &BatchResult{
		RunID: uuid.NewString(),
		Total: len(tasks),
	}
	logger := m.logger.With(zap.String("run_id", result.RunID))

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r := m.processTask(ctx, logger, task, filter)
		result.Results = append(result.Results, r)

		switch {
		case r.NotFound:
			result.NotFound++
		case r.Success:
			result.Success++
			result.Matched += len(r.Matches)
			result.OffCalendar += r.OffCalendar
		default:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", task, r.Error))

			var parseErr *chain.ParseError
			if errors.As(r.Error, &parseErr) {
				logger.Error("chain layout changed", zap.String("task", task.String()), zap.Error(r.Error))
				return result, fmt.Errorf("%s: %w", task.Symbol, r.Error)
			}
		}
	}

	return result, nil
}

func (m *Manager) processTask(ctx context.Context, logger *zap.Logger, task Task, filter Filter) TaskResult {
	result := TaskResult{Task: task}

	logger.Info("fetching chain", zap.String("task", task.String()))

	page, err := m.client.FetchChain(ctx, task.Request())
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			logger.Warn("chain not found", zap.String("task", task.String()))
			result.NotFound = true
			return result
		}
		result.Error = err
		return result
	}

	contracts, err := m.Parse(page, task.Symbol)
	if err != nil {
		result.Error = err
		return result
	}

	result.Success = true
	result.Contracts = contracts
	result.Matches = m.Apply(contracts, filter)
	result.OffCalendar = m.OffCalendar(result.Matches)

	logger.Info("scanned chain",
		zap.String("task", task.String()),
		zap.Int("contracts", len(contracts)),
		zap.Int("matches", len(result.Matches)),
		zap.Int("off_calendar", result.OffCalendar),
	)

	return result
}

// Parse runs the chain parser over a raw page.
func (m *Manager) Parse(page []byte, symbol string) ([]chain.Contract, error) {
	root, err := htmldoc.ParseBytes(page)
	if err != nil {
		return nil, err
	}
	return m.parser.Parse(root, symbol)
}

// Apply keeps the contracts that pass filter, preserving order.
func (m *Manager) Apply(contracts []chain.Contract, filter Filter) []chain.Contract {
	if !filter.All {
		contracts = chain.FilterByDelta(contracts, filter.TargetDelta, filter.Tolerance)
	}
	if filter.MaxDTE <= 0 {
		return contracts
	}

	var out []chain.Contract
	for _, c := range contracts {
		if m.calendar.TradingDaysUntil(filter.Today, c.Expiration()) <= filter.MaxDTE {
			out = append(out, c)
		}
	}
	return out
}

// OffCalendar counts contracts whose expiration is not an NYSE market day.
// Holiday-shifted expirations usually mean the page dates are stale.
func (m *Manager) OffCalendar(contracts []chain.Contract) int {
	n := 0
	for _, c := range contracts {
		if !m.calendar.IsMarketDay(c.Expiration()) {
			m.logger.Warn("expiration is not a market day",
				zap.String("symbol", c.Symbol()),
				zap.String("expiration", market.FormatDate(c.Expiration())),
			)
			n++
		}
	}
	return n
}
