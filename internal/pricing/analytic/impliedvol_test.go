package analytic

import (
	"math"
	"testing"

	"derivative-pricer/internal/errors"
	"derivative-pricer/internal/models"
)

func TestImpliedVolRecoversInput(t *testing.T) {
	testCases := []struct {
		name     string
		market   models.MarketParameters
		contract models.Contract
	}{
		{"atm call", atTheMoney, models.NewEuropeanCall(100, 1)},
		{"atm put", atTheMoney, models.NewEuropeanPut(100, 1)},
		{"dividend call", fixture, models.NewEuropeanCall(123, fixtureExpiry)},
		{"dividend put", fixture, models.NewEuropeanPut(123, fixtureExpiry)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := Price(tc.market, tc.contract)
			if err != nil {
				t.Fatalf("Price returned %v", err)
			}
			vol, err := ImpliedVol(tc.market, tc.contract, price)
			if err != nil {
				t.Fatalf("ImpliedVol returned %v", err)
			}
			if math.Abs(vol-tc.market.Vol) > 1e-8 {
				t.Errorf("ImpliedVol = %.10f, want %.10f", vol, tc.market.Vol)
			}
		})
	}
}

func TestImpliedVolRejectsArbitrage(t *testing.T) {
	call := models.NewEuropeanCall(100, 1)

	// Above the spot bound.
	if _, err := ImpliedVol(atTheMoney, call, 120); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("price above bound: error = %v, want ErrInvalidParameter", err)
	}

	// Below intrinsic: a deep in-the-money call is worth at least the
	// discounted forward intrinsic.
	deep := atTheMoney
	deep.Spot = 150
	if _, err := ImpliedVol(deep, call, 10); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("price below intrinsic: error = %v, want ErrInvalidParameter", err)
	}

	if _, err := ImpliedVol(atTheMoney, call, -1); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("negative price: error = %v, want ErrInvalidParameter", err)
	}
}

func TestImpliedVolRejectsUnsupported(t *testing.T) {
	if _, err := ImpliedVol(atTheMoney, models.NewDigitalCall(100, 1), 0.5); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("digital: error = %v, want ErrInvalidParameter", err)
	}

	expired := atTheMoney
	expired.Time = 1
	if _, err := ImpliedVol(expired, models.NewEuropeanCall(100, 1), 5); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("expired: error = %v, want ErrInvalidParameter", err)
	}
}
