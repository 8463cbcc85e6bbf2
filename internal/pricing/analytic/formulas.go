// Package analytic implements closed-form Black-Scholes pricing for
// European-exercise contracts on a single underlying with continuous
// dividend yield.
package analytic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"derivative-pricer/internal/errors"
	"derivative-pricer/internal/models"
)

var stdNormal = distuv.UnitNormal

// Price returns the closed-form value of the contract. Inputs are validated
// here; zero volatility and zero time to expiry collapse to the deterministic
// limits. Asian contracts have no closed form and are rejected with
// ErrNoClosedForm.
func Price(m models.MarketParameters, c models.Contract) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}
	tau, err := models.TimeToExpiry(m, c)
	if err != nil {
		return 0, err
	}

	price, err := priceAt(m, c, tau)
	if err != nil {
		return 0, err
	}
	if !finite(price) {
		return 0, errors.NewNumericalError("price", fmt.Sprintf("non-finite value for %s", c.Type))
	}
	return price, nil
}

func priceAt(m models.MarketParameters, c models.Contract, tau float64) (float64, error) {
	switch c.Type {
	case models.ContractEuropeanCall:
		return vanilla(m, c.Strike, tau, true), nil
	case models.ContractEuropeanPut:
		return vanilla(m, c.Strike, tau, false), nil
	case models.ContractDigitalCall:
		return digital(m, c.Strike, tau, true), nil
	case models.ContractDigitalPut:
		return digital(m, c.Strike, tau, false), nil
	case models.ContractForward:
		return forwardPrice(m, tau), nil
	case models.ContractZeroCouponBond:
		return c.Face * math.Exp(-m.Rate*tau), nil
	case models.ContractAsianCall, models.ContractAsianPut:
		return 0, errors.Wrapf(errors.ErrNoClosedForm, "%s requires simulation", c.Type)
	}
	return 0, errors.NewValidationError("type", string(c.Type), "unrecognized contract type")
}

// d1 is the standard Black-Scholes argument. Callers guarantee vol > 0 and
// tau > 0.
func d1(m models.MarketParameters, strike, tau float64) float64 {
	return (math.Log(m.Spot/strike) + (m.Rate-m.Dividend+0.5*m.Vol*m.Vol)*tau) / (m.Vol * math.Sqrt(tau))
}

func vanilla(m models.MarketParameters, strike, tau float64, call bool) float64 {
	if tau == 0 {
		if call {
			return math.Max(m.Spot-strike, 0)
		}
		return math.Max(strike-m.Spot, 0)
	}
	discount := math.Exp(-m.Rate * tau)
	if m.Vol == 0 {
		forward := forwardPrice(m, tau)
		if call {
			return discount * math.Max(forward-strike, 0)
		}
		return discount * math.Max(strike-forward, 0)
	}
	d1v := d1(m, strike, tau)
	d2v := d1v - m.Vol*math.Sqrt(tau)
	spotTerm := m.Spot * math.Exp(-m.Dividend*tau)
	strikeTerm := strike * discount
	if call {
		return spotTerm*stdNormal.CDF(d1v) - strikeTerm*stdNormal.CDF(d2v)
	}
	return strikeTerm*stdNormal.CDF(-d2v) - spotTerm*stdNormal.CDF(-d1v)
}

// digital prices a cash-or-nothing option paying one unit. The call pays on
// S >= K, the put on S < K, so the two always sum to the discount factor.
func digital(m models.MarketParameters, strike, tau float64, call bool) float64 {
	if tau == 0 {
		if call {
			return indicator(m.Spot >= strike)
		}
		return indicator(m.Spot < strike)
	}
	discount := math.Exp(-m.Rate * tau)
	if m.Vol == 0 {
		forward := forwardPrice(m, tau)
		if call {
			return discount * indicator(forward >= strike)
		}
		return discount * indicator(forward < strike)
	}
	d2v := d1(m, strike, tau) - m.Vol*math.Sqrt(tau)
	if call {
		return discount * stdNormal.CDF(d2v)
	}
	return discount * stdNormal.CDF(-d2v)
}

func indicator(cond bool) float64 {
	if cond {
		return 1
	}
	return 0
}

// forwardPrice returns the fair delivery price S*exp((r-q)*tau).
func forwardPrice(m models.MarketParameters, tau float64) float64 {
	return m.Spot * math.Exp((m.Rate-m.Dividend)*tau)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
