package models

// ConfidenceInterval represents the bracket around a Monte-Carlo estimate.
type ConfidenceInterval struct {
	Lower float64
	Upper float64
}

// Contains reports whether x lies inside the interval.
func (ci ConfidenceInterval) Contains(x float64) bool {
	return x >= ci.Lower && x <= ci.Upper
}

// Width returns the interval width.
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// PricingResult represents a Monte-Carlo price estimate together with its
// sampling error. Paths is the number of samples actually accumulated,
// which can exceed the requested count when antithetic pairing rounds an
// odd request up.
type PricingResult struct {
	Price      float64
	StdError   float64
	Confidence float64
	Interval   ConfidenceInterval
	Paths      int64
}
