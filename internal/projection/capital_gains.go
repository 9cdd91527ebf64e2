package projection

import (
	"cmp"
	"math"
	"slices"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/smallbiznis/immolens/internal/taxation"
)

// IncomeTaxRebate returns the holding-period rebate on the income-tax part of a
// private capital gain, in percent.
func IncomeTaxRebate(years int) float64 {
	switch {
	case years <= 5:
		return 0
	case years <= 21:
		return 6 * float64(years-5)
	default:
		return 100
	}
}

// SocialLevyRebate returns the slower rebate applied to social levies, in percent.
func SocialLevyRebate(years int) float64 {
	switch {
	case years <= 5:
		return 0
	case years <= 21:
		return 1.65 * float64(years-5)
	case years == 22:
		return 28
	case years < 30:
		return 28 + 9*float64(years-22)
	default:
		return 100
	}
}

// CapitalGain computes the tax on a notional resale after holding years.
// cumulativeDepreciation is the total depreciation actually deducted.
func CapitalGain(sale float64, holding int, in domain.Input, regime taxation.Regime, cumulativeDepreciation float64, cfg paramdomain.ResolvedConfiguration) domain.CapitalGainResult {
	res := domain.CapitalGainResult{
		HoldingYears: holding,
		SalePrice:    sale,
		ResaleCosts:  sale*cfg.Resale.AgencyFeeRate + cfg.Resale.DiagnosticsFee,
	}

	if _, ok := regime.(taxation.Corporate); ok {
		// companies are taxed on the gain over net book value, without rebates
		res.PurchaseBase = in.Property.Price + in.Property.RenovationCost - cumulativeDepreciation
		res.GrossGain = sale - res.PurchaseBase
		res.TaxableGain = math.Max(0, res.GrossGain)
		res.CorporateTax = taxation.CorporateTax(res.TaxableGain, cfg.Corporate)
		res.TotalTax = res.CorporateTax
		return res
	}

	res.PurchaseBase = in.Property.Price * (1 + cfg.CapitalGains.AcquisitionForfait)
	res.GrossGain = sale - res.PurchaseBase
	if _, ok := regime.(taxation.RealFurnished); ok {
		res.ReintegratedDepreciation = cumulativeDepreciation
	}
	res.TaxableGain = math.Max(0, res.GrossGain+res.ReintegratedDepreciation)

	res.IncomeTaxRebate = IncomeTaxRebate(holding)
	res.SocialLevyRebate = SocialLevyRebate(holding)
	incomeBase := res.TaxableGain * (1 - res.IncomeTaxRebate/100)
	socialBase := res.TaxableGain * (1 - res.SocialLevyRebate/100)

	res.IncomeTax = incomeBase * cfg.CapitalGains.IncomeTaxRate
	res.SocialLevies = socialBase * cfg.CapitalGains.SocialLevyRate
	res.Surtax = surtax(incomeBase, cfg.CapitalGains)
	res.TotalTax = res.IncomeTax + res.SocialLevies + res.Surtax
	return res
}

// surtax is progressive: each bracket rate applies only to the slice of base
// between its lower bound and the next bracket.
func surtax(base float64, rules paramdomain.CapitalGainsRules) float64 {
	if base <= rules.SurtaxFloor {
		return 0
	}
	brackets := slices.SortedFunc(slices.Values(rules.SurtaxBrackets), func(a, b paramdomain.Bracket) int {
		return cmp.Compare(a.From, b.From)
	})

	var total float64
	for i, b := range brackets {
		if base <= b.From {
			break
		}
		upper := base
		if i+1 < len(brackets) {
			upper = math.Min(base, brackets[i+1].From)
		}
		total += (upper - b.From) * b.Rate
	}
	return total
}
