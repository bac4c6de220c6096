package chain

import (
	"math"
	"testing"
	"time"
)

const tolerance = 1e-6

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func testContract() Contract {
	return NewContract("INTL", time.Date(2022, 5, 20, 0, 0, 0, 0, time.UTC), 45, -0.3186, 0.3713, 0.75)
}

func TestNewContract(t *testing.T) {
	c := testContract()

	if c.Symbol() != "INTL" {
		t.Errorf("expected symbol INTL, got %s", c.Symbol())
	}
	if !c.Expiration().Equal(time.Date(2022, 5, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected expiration: %s", c.Expiration())
	}
	if !approxEqual(c.Strike(), 45.0) {
		t.Errorf("expected strike 45, got %f", c.Strike())
	}
	if !approxEqual(c.Delta(), -0.3186) {
		t.Errorf("expected delta -0.3186, got %f", c.Delta())
	}
	if !approxEqual(c.ImpliedVol(), 0.3713) {
		t.Errorf("expected IV 0.3713, got %f", c.ImpliedVol())
	}
	if !approxEqual(c.Bid(), 0.75) {
		t.Errorf("expected bid 0.75, got %f", c.Bid())
	}
}

func TestNewContract_TruncatesToDate(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	c := NewContract("INTC", time.Date(2022, 5, 20, 23, 30, 0, 0, loc), 45, -0.3, 0.3, 0.75)

	want := time.Date(2022, 5, 20, 0, 0, 0, 0, time.UTC)
	if !c.Expiration().Equal(want) {
		t.Errorf("expected %s, got %s", want, c.Expiration())
	}
}

func TestContract_DerivedValues(t *testing.T) {
	c := testContract()

	if !approxEqual(c.Premium(), 75.0) {
		t.Errorf("expected premium 75, got %f", c.Premium())
	}
	if !approxEqual(c.PremiumPercent(), 1.6666666666666667) {
		t.Errorf("expected premium percent 1.6667, got %f", c.PremiumPercent())
	}
	if !approxEqual(c.NotionalCost(), 4500.0) {
		t.Errorf("expected cost 4500, got %f", c.NotionalCost())
	}
}

func TestContract_String(t *testing.T) {
	want := "INTL : 2022-05-20 Strike=  45.00 Premium=  75  1.67% Cost= 4500 IV=0.37 Delta=-0.32"
	if got := testContract().String(); got != want {
		t.Errorf("unexpected string:\nwant %q\ngot  %q", want, got)
	}
}

func TestContract_InDeltaRange(t *testing.T) {
	c := testContract()

	if !c.InDeltaRange(0.3, 0.03) {
		t.Error("expected -0.3186 to be within 0.3±0.03")
	}
	if !c.InDeltaRange(-0.3, -0.03) {
		t.Error("expected sign of target and tolerance to be ignored")
	}
	if c.InDeltaRange(0.4, 0.03) {
		t.Error("expected -0.3186 outside 0.4±0.03")
	}
	if c.InDeltaRange(0.4, 0.00003) {
		t.Error("expected -0.3186 outside 0.4±0.00003")
	}
}
