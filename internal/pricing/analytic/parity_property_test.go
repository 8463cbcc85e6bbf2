package analytic

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"derivative-pricer/internal/models"
)

// marketGen generates valid market parameters at valuation time zero.
func marketGen() gopter.Gen {
	return gen.Struct(reflect.TypeOf(models.MarketParameters{}), map[string]gopter.Gen{
		"Spot":     gen.Float64Range(20, 200),
		"Rate":     gen.Float64Range(-0.05, 0.15),
		"Dividend": gen.Float64Range(0, 0.1),
		"Vol":      gen.Float64Range(0.01, 0.9),
	})
}

func TestProperty_PutCallParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("call minus put equals discounted forward minus strike", prop.ForAll(
		func(m models.MarketParameters, strike, expiry float64) bool {
			call, err := Price(m, models.NewEuropeanCall(strike, expiry))
			if err != nil {
				return false
			}
			put, err := Price(m, models.NewEuropeanPut(strike, expiry))
			if err != nil {
				return false
			}
			parity := m.Spot*math.Exp(-m.Dividend*expiry) - strike*math.Exp(-m.Rate*expiry)
			if math.Abs(call-put-parity) > 1e-9 {
				t.Logf("parity violated: call=%v put=%v parity=%v (%+v K=%v T=%v)", call, put, parity, m, strike, expiry)
				return false
			}
			return true
		},
		marketGen(),
		gen.Float64Range(20, 200),
		gen.Float64Range(0.01, 5),
	))

	properties.TestingRun(t)
}

func TestProperty_DigitalComplement(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("digital call and put sum to the discount factor", prop.ForAll(
		func(m models.MarketParameters, strike, expiry float64) bool {
			digCall, err := Price(m, models.NewDigitalCall(strike, expiry))
			if err != nil {
				return false
			}
			digPut, err := Price(m, models.NewDigitalPut(strike, expiry))
			if err != nil {
				return false
			}
			discount := math.Exp(-m.Rate * expiry)
			return math.Abs(digCall+digPut-discount) < 1e-12
		},
		marketGen(),
		gen.Float64Range(20, 200),
		gen.Float64Range(0.01, 5),
	))

	properties.TestingRun(t)
}

func TestProperty_CallWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("call price stays between intrinsic and spot bounds", prop.ForAll(
		func(m models.MarketParameters, strike, expiry float64) bool {
			call, err := Price(m, models.NewEuropeanCall(strike, expiry))
			if err != nil {
				return false
			}
			spotTerm := m.Spot * math.Exp(-m.Dividend*expiry)
			lower := math.Max(spotTerm-strike*math.Exp(-m.Rate*expiry), 0)
			return call >= lower-1e-9 && call <= spotTerm+1e-9
		},
		marketGen(),
		gen.Float64Range(20, 200),
		gen.Float64Range(0.01, 5),
	))

	properties.TestingRun(t)
}

func TestProperty_CallMonotoneInStrike(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("raising the strike never raises the call price", prop.ForAll(
		func(m models.MarketParameters, k1, k2, expiry float64) bool {
			low, high := math.Min(k1, k2), math.Max(k1, k2)
			priceLow, err := Price(m, models.NewEuropeanCall(low, expiry))
			if err != nil {
				return false
			}
			priceHigh, err := Price(m, models.NewEuropeanCall(high, expiry))
			if err != nil {
				return false
			}
			return priceLow+1e-10 >= priceHigh
		},
		marketGen(),
		gen.Float64Range(20, 200),
		gen.Float64Range(20, 200),
		gen.Float64Range(0.01, 5),
	))

	properties.TestingRun(t)
}

func TestProperty_ImpliedVolRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("implied vol recovers the pricing vol", prop.ForAll(
		func(spot, strike, rate, dividend, vol, expiry float64) bool {
			m := models.MarketParameters{Spot: spot, Rate: rate, Dividend: dividend, Vol: vol}
			contract := models.NewEuropeanCall(strike, expiry)
			price, err := Price(m, contract)
			if err != nil {
				return false
			}

			// Skip quotes hugging the no-arbitrage bounds, where the price
			// carries no volatility information.
			lower := math.Max(spot*math.Exp(-dividend*expiry)-strike*math.Exp(-rate*expiry), 0)
			upper := spot * math.Exp(-dividend*expiry)
			if price-lower < 1e-4 || upper-price < 1e-4 {
				return true
			}

			recovered, err := ImpliedVol(m, contract, price)
			if err != nil {
				t.Logf("ImpliedVol failed for %+v K=%v T=%v price=%v: %v", m, strike, expiry, price, err)
				return false
			}
			if math.Abs(recovered-vol) > 1e-6 {
				t.Logf("recovered %v, want %v", recovered, vol)
				return false
			}
			return true
		},
		gen.Float64Range(80, 120),
		gen.Float64Range(85, 115),
		gen.Float64Range(0, 0.1),
		gen.Float64Range(0, 0.05),
		gen.Float64Range(0.1, 0.5),
		gen.Float64Range(0.25, 2),
	))

	properties.TestingRun(t)
}
