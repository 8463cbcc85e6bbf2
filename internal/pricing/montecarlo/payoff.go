package montecarlo

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"derivative-pricer/internal/errors"
	"derivative-pricer/internal/models"
)

// Payoff returns the undiscounted payoff at expiry for a terminal price.
// Forwards and bonds carry no optionality to simulate and are rejected with
// ErrNotSimulatable; path-dependent contracts must go through PathPayoff.
func Payoff(c models.Contract, terminal float64) (float64, error) {
	switch c.Type {
	case models.ContractEuropeanCall:
		return math.Max(terminal-c.Strike, 0), nil
	case models.ContractEuropeanPut:
		return math.Max(c.Strike-terminal, 0), nil
	case models.ContractDigitalCall:
		if terminal >= c.Strike {
			return 1, nil
		}
		return 0, nil
	case models.ContractDigitalPut:
		if terminal < c.Strike {
			return 1, nil
		}
		return 0, nil
	case models.ContractAsianCall, models.ContractAsianPut:
		return 0, errors.NewValidationError("type", string(c.Type), "path-dependent payoff needs the full price path")
	case models.ContractForward, models.ContractZeroCouponBond:
		return 0, errors.Wrapf(errors.ErrNotSimulatable, "%s", c.Type)
	}
	return 0, errors.NewValidationError("type", string(c.Type), "unrecognized contract type")
}

// PathPayoff returns the undiscounted payoff for a complete path S_0..S_M.
// Asian averages run over the M observation points, excluding the initial
// spot; terminal contracts use only the last price.
func PathPayoff(c models.Contract, prices []float64) (float64, error) {
	switch c.Type {
	case models.ContractAsianCall, models.ContractAsianPut:
		if len(prices) < 2 {
			return 0, errors.NewValidationError("path", len(prices), "needs at least one observation beyond the spot")
		}
		average := stat.Mean(prices[1:], nil)
		if c.Type == models.ContractAsianCall {
			return math.Max(average-c.Strike, 0), nil
		}
		return math.Max(c.Strike-average, 0), nil
	}
	if len(prices) == 0 {
		return 0, errors.NewValidationError("path", 0, "empty price path")
	}
	return Payoff(c, prices[len(prices)-1])
}
