package chain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DateLayout is the ISO-8601 date format used by expiry anchors.
const DateLayout = "2006-01-02"

// Layout describes the chain table markup the parser accepts.
type Layout struct {
	// ExpiryMarker is the substring of an anchor's onclick script that marks
	// it as an expiry setter.
	ExpiryMarker string
	ScriptAttr   string

	// TableDepth is how many levels above the first expiry anchor the
	// chain table (or its body) sits.
	TableDepth int

	// BlankCell is the first-cell text of the row that ends an expiry section.
	BlankCell string

	Headers      []string
	StrikeColumn int
	BidColumn    int
	IVColumn     int
	DeltaColumn  int
}

// DefaultLayout returns the layout of the quote site's current markup.
func DefaultLayout() Layout {
	return Layout{
		ExpiryMarker: "expiry",
		ScriptAttr:   "onclick",
		TableDepth:   3,
		BlankCell:    "\u00a0",
		Headers: []string{
			"Strike", "Symbol", "Bid", "Ask", "Price",
			"TPrice", "Volume", "OI", "NS", "\u00a0",
			"IVol", "Delta", "Theta", "Gamma", "Vega",
			"Rho", "Strike",
		},
		// Column indices must line up with Headers.
		StrikeColumn: 0,
		BidColumn:    2,
		IVColumn:     10,
		DeltaColumn:  11,
	}
}

type parseState int

const (
	stateExpiryPending parseState = iota
	stateHeaderPending
	stateData
)

func (s parseState) String() string {
	switch s {
	case stateExpiryPending:
		return "expiry_pending"
	case stateHeaderPending:
		return "header_pending"
	case stateData:
		return "data"
	default:
		return fmt.Sprintf("parseState(%d)", int(s))
	}
}

// Parser turns a chain page into contracts.
type Parser struct {
	layout Layout
	logger *zap.Logger
}

func NewParser(layout Layout, logger *zap.Logger) *Parser {
	return &Parser{
		layout: layout,
		logger: logger,
	}
}

// walk is the per-call parse state.
type walk struct {
	state      parseState
	expiration time.Time
	symbol     string
	row        int
	contracts  []Contract
}

// Parse walks the chain table in root and returns its contracts in row order.
// It fails with a *ParseError if the table cannot be found, a header row
// differs from the layout, or a data cell is not a number.
func (p *Parser) Parse(root Node, symbol string) ([]Contract, error) {
	expiration, table, err := p.locateTable(root)
	if err != nil {
		return nil, err
	}

	w := &walk{
		state:      stateExpiryPending,
		expiration: expiration,
		symbol:     symbol,
	}

	rows := table.Find("tr")
	p.logger.Debug("located chain table",
		zap.String("symbol", symbol),
		zap.String("first_expiration", expiration.Format(DateLayout)),
		zap.Int("rows", len(rows)),
	)

	for i, tr := range rows {
		w.row = i
		if err := p.step(w, tr); err != nil {
			return nil, err
		}
	}

	return w.contracts, nil
}

// locateTable finds the first expiry anchor in document order and returns
// its date together with the table ancestor containing every section.
func (p *Parser) locateTable(root Node) (time.Time, Node, error) {
	for _, a := range root.Find("a") {
		if !p.isExpiryAnchor(a) {
			continue
		}

		expiration, err := p.parseExpiry(a, 0)
		if err != nil {
			return time.Time{}, nil, err
		}

		table := a
		for i := 0; i < p.layout.TableDepth && table != nil; i++ {
			table = table.Parent()
		}
		if table == nil {
			break
		}
		return expiration, table, nil
	}

	return time.Time{}, nil, &ParseError{Kind: KindNoTableFound}
}

func (p *Parser) step(w *walk, tr Node) error {
	switch w.state {
	case stateExpiryPending:
		return p.findExpiry(w, tr)
	case stateHeaderPending:
		return p.checkHeader(w, tr)
	default:
		return p.readContract(w, tr)
	}
}

func (p *Parser) findExpiry(w *walk, tr Node) error {
	td := firstCell(tr)
	if td == nil {
		return nil
	}

	links := td.Find("a")
	if len(links) == 0 || !p.isExpiryAnchor(links[0]) {
		return nil
	}

	expiration, err := p.parseExpiry(links[0], w.row)
	if err != nil {
		return err
	}

	w.expiration = expiration
	p.transition(w, stateHeaderPending)
	return nil
}

func (p *Parser) checkHeader(w *walk, tr Node) error {
	actual := cellTexts(tr)
	if !slices.Equal(p.layout.Headers, actual) {
		return &ParseError{
			Kind:     KindHeaderMismatch,
			Expected: p.layout.Headers,
			Actual:   actual,
			Row:      w.row,
		}
	}

	p.transition(w, stateData)
	return nil
}

func (p *Parser) readContract(w *walk, tr Node) error {
	td := firstCell(tr)
	if td == nil {
		return nil
	}
	if td.Text() == p.layout.BlankCell {
		p.transition(w, stateExpiryPending)
		return nil
	}

	values := cellTexts(tr)
	strike, err := p.cellFloat(w, values, p.layout.StrikeColumn)
	if err != nil {
		return err
	}
	delta, err := p.cellFloat(w, values, p.layout.DeltaColumn)
	if err != nil {
		return err
	}
	iv, err := p.cellFloat(w, values, p.layout.IVColumn)
	if err != nil {
		return err
	}
	bid, err := p.cellFloat(w, values, p.layout.BidColumn)
	if err != nil {
		return err
	}

	w.contracts = append(w.contracts, NewContract(w.symbol, w.expiration, strike, delta, iv, bid))
	return nil
}

func (p *Parser) transition(w *walk, next parseState) {
	p.logger.Debug("chain parser transition",
		zap.Int("row", w.row),
		zap.Stringer("from", w.state),
		zap.Stringer("to", next),
		zap.String("expiration", w.expiration.Format(DateLayout)),
	)
	w.state = next
}

func (p *Parser) isExpiryAnchor(a Node) bool {
	script, ok := a.Attr(p.layout.ScriptAttr)
	return ok && strings.Contains(script, p.layout.ExpiryMarker)
}

func (p *Parser) parseExpiry(a Node, row int) (time.Time, error) {
	text := a.Text()
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return time.Time{}, &ParseError{Kind: KindMalformedCell, Row: row, Value: text, Err: err}
	}
	return t, nil
}

func (p *Parser) cellFloat(w *walk, values []string, column int) (float64, error) {
	if column >= len(values) {
		return 0, &ParseError{
			Kind:   KindMalformedCell,
			Row:    w.row,
			Column: column,
			Err:    fmt.Errorf("row has %d cells", len(values)),
		}
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(values[column]), 64)
	if err != nil {
		return 0, &ParseError{
			Kind:   KindMalformedCell,
			Row:    w.row,
			Column: column,
			Value:  values[column],
			Err:    err,
		}
	}
	return f, nil
}

func firstCell(tr Node) Node {
	cells := tr.Find("td")
	if len(cells) == 0 {
		return nil
	}
	return cells[0]
}

func cellTexts(tr Node) []string {
	cells := tr.Children("td")
	texts := make([]string, 0, len(cells))
	for _, td := range cells {
		texts = append(texts, td.Text())
	}
	return texts
}
