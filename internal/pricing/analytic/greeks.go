package analytic

import (
	"math"

	"derivative-pricer/internal/errors"
	"derivative-pricer/internal/models"
)

// Greeks returns the closed-form sensitivity set for European calls and
// puts, forwards, and zero-coupon bonds. Theta follows the time-decay
// convention (the negated derivative with respect to time to expiry), so a
// plain long call carries negative theta. Digital and asian contracts are
// not covered here; the greeks package prices those by finite differences.
func Greeks(m models.MarketParameters, c models.Contract) (models.GreekSet, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	tau, err := models.TimeToExpiry(m, c)
	if err != nil {
		return nil, err
	}

	switch c.Type {
	case models.ContractEuropeanCall, models.ContractEuropeanPut:
		if tau == 0 {
			return nil, errors.NewValidationError("expiry", c.Expiry, "greeks require time to expiry")
		}
		if m.Vol == 0 {
			return nil, errors.NewValidationError("vol", m.Vol, "greeks require positive volatility")
		}
		return vanillaGreeks(m, c.Strike, tau, c.Type == models.ContractEuropeanCall), nil
	case models.ContractForward:
		return forwardGreeks(m, tau), nil
	case models.ContractZeroCouponBond:
		return bondGreeks(m, c.Face, tau), nil
	}
	return nil, errors.Wrapf(errors.ErrNoClosedForm, "no closed-form greeks for %s", c.Type)
}

func vanillaGreeks(m models.MarketParameters, strike, tau float64, call bool) models.GreekSet {
	sqrtTau := math.Sqrt(tau)
	d1v := d1(m, strike, tau)
	d2v := d1v - m.Vol*sqrtTau
	discQ := math.Exp(-m.Dividend * tau)
	discR := math.Exp(-m.Rate * tau)
	density := stdNormal.Prob(d1v)

	gamma := discQ * density / (m.Spot * m.Vol * sqrtTau)
	vega := m.Spot * discQ * density * sqrtTau
	decay := m.Spot * density * m.Vol * discQ / (2 * sqrtTau)

	if call {
		return models.GreekSet{
			models.GreekDelta: discQ * stdNormal.CDF(d1v),
			models.GreekGamma: gamma,
			models.GreekVega:  vega,
			models.GreekTheta: m.Dividend*m.Spot*discQ*stdNormal.CDF(d1v) - decay - m.Rate*strike*discR*stdNormal.CDF(d2v),
			models.GreekRho:   strike * tau * discR * stdNormal.CDF(d2v),
		}
	}
	return models.GreekSet{
		models.GreekDelta: discQ * (stdNormal.CDF(d1v) - 1),
		models.GreekGamma: gamma,
		models.GreekVega:  vega,
		models.GreekTheta: m.Rate*strike*discR*stdNormal.CDF(-d2v) - m.Dividend*m.Spot*discQ*stdNormal.CDF(-d1v) - decay,
		models.GreekRho:   -strike * tau * discR * stdNormal.CDF(-d2v),
	}
}

// forwardGreeks differentiates the fair delivery price F = S*exp((r-q)*tau).
func forwardGreeks(m models.MarketParameters, tau float64) models.GreekSet {
	forward := forwardPrice(m, tau)
	return models.GreekSet{
		models.GreekDelta: math.Exp((m.Rate - m.Dividend) * tau),
		models.GreekGamma: 0,
		models.GreekVega:  0,
		models.GreekTheta: -(m.Rate - m.Dividend) * forward,
		models.GreekRho:   tau * forward,
	}
}

// bondGreeks differentiates Face*exp(-r*tau). The bond pulls to par, so
// theta is positive for positive rates.
func bondGreeks(m models.MarketParameters, face, tau float64) models.GreekSet {
	discounted := face * math.Exp(-m.Rate*tau)
	return models.GreekSet{
		models.GreekDelta: 0,
		models.GreekGamma: 0,
		models.GreekVega:  0,
		models.GreekTheta: m.Rate * discounted,
		models.GreekRho:   -tau * discounted,
	}
}
