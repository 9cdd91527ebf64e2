package taxation

import (
	"fmt"
	"math"

	"github.com/smallbiznis/immolens/internal/depreciation"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

const source = "taxation"

// Input is one fiscal year of rental activity.
type Input struct {
	Year              int
	GrossRent         float64
	DeductibleCharges float64
	Interest          float64
	LoanInsurance     float64
	// MarginalRate is the household's marginal income tax rate in percent.
	MarginalRate float64
	// Depreciation holds the uncapped amounts of the year.
	Depreciation domain.DepreciationLine
}

// State is carried from one year to the next. It is a value: Compute never
// mutates the state it receives.
type State struct {
	Deficits          DeficitQueue
	DepreciationCarry float64
}

// Compute applies r to one year and returns the outcome and the next state.
func Compute(r Regime, in Input, st State, cfg paramdomain.ResolvedConfiguration) (domain.TaxOutcome, State) {
	switch r := r.(type) {
	case MicroFoncier:
		return micro(r, in, cfg.MicroFoncier, cfg.Tax.SocialLevyProperty), st
	case MicroBIC:
		return micro(r, in, microBICRates(r.Variant, cfg), cfg.Tax.SocialLevyFurnished), st
	case RealFoncier:
		return realFoncier(r, in, st, cfg)
	case RealFurnished:
		return realFurnished(r, in, st, cfg)
	case Corporate:
		return corporate(r, in, st, cfg)
	default:
		panic(fmt.Sprintf("taxation: unhandled regime %T", r))
	}
}

func microBICRates(variant domain.RentalType, cfg paramdomain.ResolvedConfiguration) paramdomain.MicroRegime {
	switch variant {
	case domain.RentalTourismClassified:
		return cfg.MicroBIC.TourismClassified
	case domain.RentalTourismUnclassified:
		return cfg.MicroBIC.TourismUnclassified
	default:
		return cfg.MicroBIC.LongTerm
	}
}

func newOutcome(r Regime) domain.TaxOutcome {
	return domain.TaxOutcome{Code: r.Code(), Label: r.Label(), Eligible: true}
}

func micro(r Regime, in Input, rates paramdomain.MicroRegime, levy float64) domain.TaxOutcome {
	out := newOutcome(r)
	out.TaxableBase = math.Max(0, in.GrossRent*(1-rates.Abatement))
	out.IncomeTax = out.TaxableBase * in.MarginalRate / 100
	out.SocialLevies = out.TaxableBase * levy
	out.TaxDue = out.IncomeTax + out.SocialLevies

	if in.GrossRent > rates.Ceiling {
		out.Eligible = false
		out.Alerts = append(out.Alerts, domain.NewAlert(domain.SeverityWarning, source, "micro_ceiling_exceeded",
			fmt.Sprintf("%s: annual rent %.0f exceeds the %.0f eligibility ceiling", r.Label(), in.GrossRent, rates.Ceiling)))
	}
	return out
}

func preTaxResult(in Input) float64 {
	return in.GrossRent - in.DeductibleCharges - in.Interest - in.LoanInsurance
}

func realFoncier(r RealFoncier, in Input, st State, cfg paramdomain.ResolvedConfiguration) (domain.TaxOutcome, State) {
	out := newOutcome(r)
	deficits := st.Deficits.Expire(in.Year, cfg.Deficit.LifetimeYears)
	net := preTaxResult(in)

	if net >= 0 {
		var used float64
		deficits, used = deficits.Consume(net)
		out.DeficitUsed = used
		out.TaxableBase = net - used
		out.IncomeTax = out.TaxableBase * in.MarginalRate / 100
		out.SocialLevies = out.TaxableBase * cfg.Tax.SocialLevyProperty
		out.TaxDue = out.IncomeTax + out.SocialLevies
		return out, State{Deficits: deficits, DepreciationCarry: st.DepreciationCarry}
	}

	deficit := -net
	// interest can only be offset against future rental income
	nonInterest := math.Min(deficit, in.DeductibleCharges)
	offset := math.Min(nonInterest, cfg.Deficit.GlobalIncomeCap)
	carried := deficit - offset

	out.GlobalIncomeOffset = offset
	out.DeficitCreated = carried
	if offset > 0 {
		out.Alerts = append(out.Alerts, domain.NewAlert(domain.SeverityInfo, source, "deficit_global_income_offset",
			fmt.Sprintf("A property deficit of %.0f is offset against global income", offset)))
	}
	return out, State{Deficits: deficits.Push(in.Year, carried), DepreciationCarry: st.DepreciationCarry}
}

func realFurnished(r RealFurnished, in Input, st State, cfg paramdomain.ResolvedConfiguration) (domain.TaxOutcome, State) {
	out, next, base := depreciatingBase(r, in, st, cfg.Deficit.LifetimeYears)
	out.TaxableBase = base
	out.IncomeTax = base * in.MarginalRate / 100
	out.SocialLevies = base * cfg.Tax.SocialLevyFurnished
	out.TaxDue = out.IncomeTax + out.SocialLevies
	return out, next
}

func corporate(r Corporate, in Input, st State, cfg paramdomain.ResolvedConfiguration) (domain.TaxOutcome, State) {
	// corporate losses never expire
	out, next, base := depreciatingBase(r, in, st, 0)
	out.TaxableBase = base
	out.CorporateTax = CorporateTax(base, cfg.Corporate)
	if r.Distribute {
		out.DividendTax = math.Max(0, base-out.CorporateTax) * cfg.Corporate.DividendFlatTax
	}
	out.TaxDue = out.CorporateTax + out.DividendTax
	return out, next
}

// depreciatingBase runs the deficit queue on the pre-depreciation result, then
// deducts depreciation up to what remains.
func depreciatingBase(r Regime, in Input, st State, lifetime int) (domain.TaxOutcome, State, float64) {
	out := newOutcome(r)
	deficits := st.Deficits.Expire(in.Year, lifetime)
	result := preTaxResult(in)

	var remaining float64
	if result >= 0 {
		var used float64
		deficits, used = deficits.Consume(result)
		out.DeficitUsed = used
		remaining = result - used
	} else {
		out.DeficitCreated = -result
		deficits = deficits.Push(in.Year, -result)
	}

	line, carry := depreciation.Apply(in.Depreciation, remaining, st.DepreciationCarry)
	out.Depreciation = &line
	return out, State{Deficits: deficits, DepreciationCarry: carry}, remaining - line.Deducted
}

// CorporateTax applies the reduced rate up to the threshold and the standard rate above.
func CorporateTax(base float64, rates paramdomain.CorporateRates) float64 {
	if base <= 0 {
		return 0
	}
	return math.Min(base, rates.ReducedThreshold)*rates.ReducedRate +
		math.Max(0, base-rates.ReducedThreshold)*rates.StandardRate
}
