package analytic

import (
	"math"

	"derivative-pricer/internal/errors"
	"derivative-pricer/internal/models"
)

const (
	ivMaxIterations = 100
	ivTolerance     = 1e-10
	ivMinVol        = 1e-9
	ivMaxVol        = 10
)

// ImpliedVol inverts the Black-Scholes price for volatility by Newton-Raphson
// on the analytic vega. Only European calls and puts are supported; the Vol
// field of the market parameters is ignored. Prices at or outside the
// no-arbitrage bounds are rejected as invalid.
func ImpliedVol(m models.MarketParameters, c models.Contract, target float64) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}
	call := c.Type == models.ContractEuropeanCall
	if !call && c.Type != models.ContractEuropeanPut {
		return 0, errors.NewValidationError("type", string(c.Type), "implied volatility requires a european call or put")
	}
	tau, err := models.TimeToExpiry(m, c)
	if err != nil {
		return 0, err
	}
	if tau == 0 {
		return 0, errors.NewValidationError("expiry", c.Expiry, "implied volatility requires time to expiry")
	}
	if !finite(target) || target <= 0 {
		return 0, errors.NewValidationError("price", target, "must be positive and finite")
	}

	spotTerm := m.Spot * math.Exp(-m.Dividend*tau)
	strikeTerm := c.Strike * math.Exp(-m.Rate*tau)
	lower, upper := math.Max(spotTerm-strikeTerm, 0), spotTerm
	if !call {
		lower, upper = math.Max(strikeTerm-spotTerm, 0), strikeTerm
	}
	if target <= lower || target >= upper {
		return 0, errors.NewValidationError("price", target, "outside no-arbitrage bounds")
	}

	// Brenner-Subrahmanyam starting point, clamped to a sane band.
	vol := math.Sqrt(2*math.Pi/tau) * target / m.Spot
	vol = math.Min(math.Max(vol, 0.05), 2)

	trial := m
	diff := math.Inf(1)
	for i := 0; i < ivMaxIterations; i++ {
		trial.Vol = vol
		diff = vanilla(trial, c.Strike, tau, call) - target
		if math.Abs(diff) < ivTolerance {
			return vol, nil
		}
		vega := bsVega(trial, c.Strike, tau)
		if vega < 1e-12 {
			return 0, errors.NewNumericalError("implied-vol", "vanishing vega, price carries no volatility information")
		}
		vol -= diff / vega
		vol = math.Min(math.Max(vol, ivMinVol), ivMaxVol)
	}
	return 0, errors.NewConvergenceError("implied-vol", ivMaxIterations, math.Abs(diff))
}

func bsVega(m models.MarketParameters, strike, tau float64) float64 {
	return m.Spot * math.Exp(-m.Dividend*tau) * stdNormal.Prob(d1(m, strike, tau)) * math.Sqrt(tau)
}
