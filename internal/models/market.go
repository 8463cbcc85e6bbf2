// Package models provides domain models for the pricing library.
package models

import (
	"math"

	"derivative-pricer/internal/errors"
)

// MarketParameters represents the Black-Scholes market state for a single
// underlying: spot price, flat continuously compounded rate and dividend
// yield, volatility, and the valuation time in years.
type MarketParameters struct {
	Spot     float64
	Rate     float64
	Dividend float64
	Vol      float64
	Time     float64
}

// Validate checks the market parameters for use by any pricing engine.
// Zero volatility is accepted; the engines collapse it to the deterministic
// limit. Negative volatility, non-positive spot, and non-finite values are
// rejected.
func (m MarketParameters) Validate() error {
	if !finite(m.Spot) || m.Spot <= 0 {
		return errors.NewValidationError("spot", m.Spot, "must be positive and finite")
	}
	if !finite(m.Rate) {
		return errors.NewValidationError("rate", m.Rate, "must be finite")
	}
	if !finite(m.Dividend) || m.Dividend < 0 {
		return errors.NewValidationError("dividend", m.Dividend, "must be non-negative and finite")
	}
	if !finite(m.Vol) || m.Vol < 0 {
		return errors.NewValidationError("vol", m.Vol, "must be non-negative and finite")
	}
	if !finite(m.Time) || m.Time < 0 {
		return errors.NewValidationError("time", m.Time, "must be non-negative and finite")
	}
	return nil
}

// TimeToExpiry returns the year fraction between the valuation time and the
// contract expiry. Contracts already past expiry are rejected; zero time to
// expiry is valid and handled by the engines.
func TimeToExpiry(m MarketParameters, c Contract) (float64, error) {
	tau := c.Expiry - m.Time
	if tau < 0 {
		return 0, errors.NewValidationError("expiry", c.Expiry, "before valuation time")
	}
	return tau, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
