// Package taxation computes the yearly tax of a rental investment under each legal
// regime and picks the most favourable one.
package taxation

import (
	"fmt"

	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

// Regime is a closed set of tax regimes. Only this package can add variants.
type Regime interface {
	Code() domain.RegimeCode
	Label() string
	regime()
}

// MicroFoncier taxes bare rentals after a flat abatement.
type MicroFoncier struct{}

// RealFoncier deducts actual charges and interest from bare rentals.
type RealFoncier struct{}

// MicroBIC taxes furnished rentals after an abatement depending on Variant.
type MicroBIC struct {
	Variant domain.RentalType
}

// RealFurnished deducts charges, interest and depreciation from furnished rentals.
type RealFurnished struct{}

// Corporate applies corporate income tax, plus the dividend flat tax when Distribute.
type Corporate struct {
	Distribute bool
}

func (MicroFoncier) Code() domain.RegimeCode  { return domain.RegimeMicroFoncier }
func (RealFoncier) Code() domain.RegimeCode   { return domain.RegimeReelFoncier }
func (MicroBIC) Code() domain.RegimeCode      { return domain.RegimeMicroBIC }
func (RealFurnished) Code() domain.RegimeCode { return domain.RegimeLMNPReel }
func (Corporate) Code() domain.RegimeCode     { return domain.RegimeCorporate }

func (MicroFoncier) Label() string  { return "Micro-foncier" }
func (RealFoncier) Label() string   { return "Régime réel foncier" }
func (RealFurnished) Label() string { return "LMNP au réel" }

func (r MicroBIC) Label() string {
	switch r.Variant {
	case domain.RentalTourismClassified:
		return "Micro-BIC (meublé de tourisme classé)"
	case domain.RentalTourismUnclassified:
		return "Micro-BIC (meublé de tourisme non classé)"
	default:
		return "Micro-BIC"
	}
}

func (r Corporate) Label() string {
	if r.Distribute {
		return "IS avec distribution"
	}
	return "IS sans distribution"
}

func (MicroFoncier) regime()  {}
func (RealFoncier) regime()   {}
func (MicroBIC) regime()      {}
func (RealFurnished) regime() {}
func (Corporate) regime()     {}

// Eligible lists the regimes available to a structure and rental type, in
// comparison order.
func Eligible(s domain.Structure, rental domain.RentalType) []Regime {
	if s.Corporate() {
		return []Regime{Corporate{Distribute: s.DistributeDividends}}
	}
	if rental.Furnished() {
		return []Regime{MicroBIC{Variant: rental}, RealFurnished{}}
	}
	return []Regime{MicroFoncier{}, RealFoncier{}}
}

// ForCode resolves a requested regime. Auto and corporate structures return nil.
func ForCode(code domain.RegimeCode, s domain.Structure, rental domain.RentalType) (Regime, error) {
	if s.Corporate() {
		return Corporate{Distribute: s.DistributeDividends}, nil
	}
	switch code {
	case domain.RegimeAuto, "":
		return nil, nil
	case domain.RegimeMicroFoncier:
		return MicroFoncier{}, nil
	case domain.RegimeReelFoncier:
		return RealFoncier{}, nil
	case domain.RegimeMicroBIC:
		return MicroBIC{Variant: rental}, nil
	case domain.RegimeLMNPReel:
		return RealFurnished{}, nil
	default:
		return nil, fmt.Errorf("unknown tax regime %q", code)
	}
}

// UsesDepreciation reports whether r deducts depreciation.
func UsesDepreciation(r Regime) bool {
	switch r.(type) {
	case RealFurnished, Corporate:
		return true
	default:
		return false
	}
}
