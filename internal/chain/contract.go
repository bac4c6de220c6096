package chain

import (
	"fmt"
	"time"
)

// ContractMultiplier is the number of shares one contract controls.
const ContractMultiplier = 100

// Contract is one option contract's market and greek data as quoted on the
// chain page. It is immutable once constructed.
type Contract struct {
	symbol     string
	expiration time.Time
	strike     float64
	delta      float64
	impliedVol float64
	bid        float64
}

// NewContract builds a Contract. The expiration is truncated to a UTC date.
func NewContract(symbol string, expiration time.Time, strike, delta, impliedVol, bid float64) Contract {
	y, m, d := expiration.Date()
	return Contract{
		symbol:     symbol,
		expiration: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		strike:     strike,
		delta:      delta,
		impliedVol: impliedVol,
		bid:        bid,
	}
}

func (c Contract) Symbol() string        { return c.symbol }
func (c Contract) Expiration() time.Time { return c.expiration }
func (c Contract) Strike() float64       { return c.strike }
func (c Contract) Delta() float64        { return c.delta }
func (c Contract) ImpliedVol() float64   { return c.impliedVol }
func (c Contract) Bid() float64          { return c.bid }

// Premium is the dollars collected for selling one contract at the bid.
func (c Contract) Premium() float64 {
	return c.bid * ContractMultiplier
}

// PremiumPercent is the bid as a percentage of the strike.
func (c Contract) PremiumPercent() float64 {
	return c.bid / c.strike * 100
}

// NotionalCost is the cash needed to take assignment.
func (c Contract) NotionalCost() float64 {
	return c.strike * ContractMultiplier
}

// InDeltaRange reports whether the contract's delta magnitude is within
// tolerance of target.
func (c Contract) InDeltaRange(target, tolerance float64) bool {
	return DeltaInRange(target, tolerance, c.delta)
}

func (c Contract) String() string {
	return fmt.Sprintf("%-5s: %s Strike=%7.2f Premium=%4.0f %5.2f%% Cost=%5.0f IV=%4.2f Delta=%.2f",
		c.symbol,
		c.expiration.Format(DateLayout),
		c.strike,
		c.Premium(),
		c.PremiumPercent(),
		c.NotionalCost(),
		c.impliedVol,
		c.delta,
	)
}
