// Package report renders contracts for the terminal or for export.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"

	"github.com/dgnsrekt/wheelscan/internal/chain"
	"github.com/dgnsrekt/wheelscan/internal/market"
)

type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []Format{FormatText, FormatTable, FormatCSV, FormatJSON}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidFormats {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q (valid: text, table, csv, json)", s)
}

// Row is the flattened export form of a contract.
type Row struct {
	Symbol         string  `csv:"symbol" json:"symbol"`
	Expiration     string  `csv:"expiration" json:"expiration"`
	DTE            int     `csv:"dte" json:"dte"`
	Strike         float64 `csv:"strike" json:"strike"`
	Bid            float64 `csv:"bid" json:"bid"`
	Premium        float64 `csv:"premium" json:"premium"`
	PremiumPercent float64 `csv:"premium_percent" json:"premium_percent"`
	Cost           float64 `csv:"cost" json:"cost"`
	ImpliedVol     float64 `csv:"iv" json:"iv"`
	Delta          float64 `csv:"delta" json:"delta"`
}

// Writer renders contracts. Days to expiration are counted in NYSE trading
// days from Today.
type Writer struct {
	Calendar *market.Calendar
	Today    time.Time
}

func (w *Writer) Rows(contracts []chain.Contract) []*Row {
	rows := make([]*Row, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, &Row{
			Symbol:         c.Symbol(),
			Expiration:     market.FormatDate(c.Expiration()),
			DTE:            w.Calendar.TradingDaysUntil(w.Today, c.Expiration()),
			Strike:         c.Strike(),
			Bid:            c.Bid(),
			Premium:        c.Premium(),
			PremiumPercent: c.PremiumPercent(),
			Cost:           c.NotionalCost(),
			ImpliedVol:     c.ImpliedVol(),
			Delta:          c.Delta(),
		})
	}
	return rows
}

func (w *Writer) Write(out io.Writer, format Format, contracts []chain.Contract) error {
	switch format {
	case FormatText:
		for _, c := range contracts {
			if _, err := fmt.Fprintln(out, c.String()); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		return w.writeTable(out, contracts)
	case FormatCSV:
		if err := gocsv.Marshal(w.Rows(contracts), out); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(w.Rows(contracts)); err != nil {
			return fmt.Errorf("writing json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (w *Writer) writeTable(out io.Writer, contracts []chain.Contract) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Symbol", "Expiration", "DTE", "Strike", "Bid", "Premium", "Premium %", "Cost", "IV", "Delta"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetBorder(false)

	for _, r := range w.Rows(contracts) {
		table.Append([]string{
			r.Symbol,
			r.Expiration,
			fmt.Sprintf("%d", r.DTE),
			fmt.Sprintf("%.2f", r.Strike),
			fmt.Sprintf("%.2f", r.Bid),
			fmt.Sprintf("$%.0f", r.Premium),
			fmt.Sprintf("%.2f%%", r.PremiumPercent),
			fmt.Sprintf("$%.0f", r.Cost),
			fmt.Sprintf("%.2f", r.ImpliedVol),
			fmt.Sprintf("%.2f", r.Delta),
		})
	}

	table.Render()
	return nil
}
