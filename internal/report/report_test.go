package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dgnsrekt/wheelscan/internal/chain"
	"github.com/dgnsrekt/wheelscan/internal/market"
)

func testWriter() *Writer {
	return &Writer{
		Calendar: market.NewCalendar("America/New_York"),
		Today:    time.Date(2022, 5, 16, 0, 0, 0, 0, time.UTC),
	}
}

func testContracts() []chain.Contract {
	exp := time.Date(2022, 5, 20, 0, 0, 0, 0, time.UTC)
	return []chain.Contract{
		chain.NewContract("INTL", exp, 45, -0.3186, 0.3713, 0.75),
		chain.NewContract("INTL", exp, 44, -0.2874, 0.3402, 0.62),
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" Table ")
	if err != nil || f != FormatTable {
		t.Errorf("expected table, got %q (%v)", f, err)
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := testWriter().Write(&buf, FormatText, testContracts()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	want := "INTL : 2022-05-20 Strike=  45.00 Premium=  75  1.67% Cost= 4500 IV=0.37 Delta=-0.32"
	if lines[0] != want {
		t.Errorf("unexpected line:\nwant %q\ngot  %q", want, lines[0])
	}
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := testWriter().Write(&buf, FormatTable, testContracts()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"SYMBOL", "PREMIUM %", "2022-05-20", "45.00", "$4500", "1.67%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := testWriter().Write(&buf, FormatCSV, testContracts()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "symbol,expiration,dte,strike,bid,premium,premium_percent,cost,iv,delta" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "INTL,2022-05-20,4,45,0.75,75,") {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := testWriter().Write(&buf, FormatJSON, testContracts()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var rows []Row
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rows) != 2 || rows[0].Strike != 45 || rows[0].DTE != 4 {
		t.Errorf("unexpected rows: %+v", rows)
	}
}
