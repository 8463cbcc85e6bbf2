package models

// Greek identifies a single sensitivity measure.
type Greek string

const (
	GreekDelta Greek = "delta"
	GreekGamma Greek = "gamma"
	GreekVega  Greek = "vega"
	GreekTheta Greek = "theta"
	GreekRho   Greek = "rho"
)

// GreekSet maps each computed greek to its value. A missing key means the
// greek was not computed for the contract and engine in question.
type GreekSet map[Greek]float64

// AllGreeks returns the supported greeks in display order.
func AllGreeks() []Greek {
	return []Greek{GreekDelta, GreekGamma, GreekVega, GreekTheta, GreekRho}
}
