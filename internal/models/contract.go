package models

import (
	"strings"

	"derivative-pricer/internal/errors"
)

// ContractType represents a supported contract variant.
type ContractType string

const (
	ContractEuropeanCall   ContractType = "european-call"
	ContractEuropeanPut    ContractType = "european-put"
	ContractDigitalCall    ContractType = "digital-call" // cash-or-nothing
	ContractDigitalPut     ContractType = "digital-put"
	ContractForward        ContractType = "forward"
	ContractZeroCouponBond ContractType = "zero-coupon-bond"
	ContractAsianCall      ContractType = "asian-call" // arithmetic average
	ContractAsianPut       ContractType = "asian-put"
)

// Valid reports whether the contract type is one of the supported variants.
func (t ContractType) Valid() bool {
	switch t {
	case ContractEuropeanCall, ContractEuropeanPut,
		ContractDigitalCall, ContractDigitalPut,
		ContractForward, ContractZeroCouponBond,
		ContractAsianCall, ContractAsianPut:
		return true
	}
	return false
}

// NeedsStrike reports whether the variant is defined by a strike price.
func (t ContractType) NeedsStrike() bool {
	switch t {
	case ContractForward, ContractZeroCouponBond:
		return false
	}
	return true
}

// PathDependent reports whether the payoff depends on the whole price path
// rather than the terminal price alone.
func (t ContractType) PathDependent() bool {
	return t == ContractAsianCall || t == ContractAsianPut
}

// HasClosedForm reports whether the analytic engine prices the variant.
func (t ContractType) HasClosedForm() bool {
	return !t.PathDependent()
}

func (t ContractType) String() string {
	return string(t)
}

// ParseContractType converts a user-supplied name into a ContractType.
// Short aliases are accepted: "call", "put", "bond", "zcb".
func ParseContractType(s string) (ContractType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "european-call":
		return ContractEuropeanCall, nil
	case "put", "european-put":
		return ContractEuropeanPut, nil
	case "digital-call", "binary-call":
		return ContractDigitalCall, nil
	case "digital-put", "binary-put":
		return ContractDigitalPut, nil
	case "forward":
		return ContractForward, nil
	case "bond", "zcb", "zero-coupon-bond":
		return ContractZeroCouponBond, nil
	case "asian-call":
		return ContractAsianCall, nil
	case "asian-put":
		return ContractAsianPut, nil
	}
	return "", errors.NewValidationError("type", s, "unrecognized contract type")
}

// Contract represents a single European-exercise contract. Expiry is an
// absolute time in years on the same clock as MarketParameters.Time.
type Contract struct {
	Type   ContractType
	Strike float64
	Expiry float64
	Face   float64
}

// NewEuropeanCall creates a European call contract.
func NewEuropeanCall(strike, expiry float64) Contract {
	return Contract{Type: ContractEuropeanCall, Strike: strike, Expiry: expiry}
}

// NewEuropeanPut creates a European put contract.
func NewEuropeanPut(strike, expiry float64) Contract {
	return Contract{Type: ContractEuropeanPut, Strike: strike, Expiry: expiry}
}

// NewDigitalCall creates a cash-or-nothing call paying one unit at expiry.
func NewDigitalCall(strike, expiry float64) Contract {
	return Contract{Type: ContractDigitalCall, Strike: strike, Expiry: expiry}
}

// NewDigitalPut creates a cash-or-nothing put paying one unit at expiry.
func NewDigitalPut(strike, expiry float64) Contract {
	return Contract{Type: ContractDigitalPut, Strike: strike, Expiry: expiry}
}

// NewForward creates a forward contract on the underlying.
func NewForward(expiry float64) Contract {
	return Contract{Type: ContractForward, Expiry: expiry}
}

// NewZeroCouponBond creates a zero-coupon bond with unit face value.
func NewZeroCouponBond(expiry float64) Contract {
	return Contract{Type: ContractZeroCouponBond, Expiry: expiry, Face: 1}
}

// NewAsianCall creates an arithmetic-average Asian call contract.
func NewAsianCall(strike, expiry float64) Contract {
	return Contract{Type: ContractAsianCall, Strike: strike, Expiry: expiry}
}

// NewAsianPut creates an arithmetic-average Asian put contract.
func NewAsianPut(strike, expiry float64) Contract {
	return Contract{Type: ContractAsianPut, Strike: strike, Expiry: expiry}
}

// Validate checks the contract terms for use by any pricing engine.
func (c Contract) Validate() error {
	if !c.Type.Valid() {
		return errors.NewValidationError("type", string(c.Type), "unrecognized contract type")
	}
	if c.Type.NeedsStrike() && (!finite(c.Strike) || c.Strike <= 0) {
		return errors.NewValidationError("strike", c.Strike, "must be positive and finite")
	}
	if !finite(c.Expiry) || c.Expiry < 0 {
		return errors.NewValidationError("expiry", c.Expiry, "must be non-negative and finite")
	}
	if c.Type == ContractZeroCouponBond && (!finite(c.Face) || c.Face <= 0) {
		return errors.NewValidationError("face", c.Face, "must be positive and finite")
	}
	return nil
}
