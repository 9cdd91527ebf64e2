// Package projection simulates the investment year by year up to a resale horizon.
package projection

import (
	"math"
	"strings"

	"github.com/smallbiznis/immolens/internal/charges"
	"github.com/smallbiznis/immolens/internal/depreciation"
	"github.com/smallbiznis/immolens/internal/financing"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/smallbiznis/immolens/internal/taxation"
)

type Params struct {
	Input     domain.Input
	Config    paramdomain.ResolvedConfiguration
	Financing domain.FinancingResult
	Regime    taxation.Regime
}

// Run simulates years 1..horizon. Tax state is threaded from one year to the next
// as a value.
func Run(p Params) domain.ProjectionResult {
	in, cfg := p.Input, p.Config
	horizon := in.Options.HorizonYears
	if horizon <= 0 {
		horizon = cfg.Projection.HorizonYears
	}

	plan := depreciation.NewPlan(in.Property, in.Options.DepreciationMode, cfg)
	depreciates := taxation.UsesDepreciation(p.Regime)
	rentGrowth := in.Options.RentGrowth / 100
	chargeInflation := in.Options.ChargeInflation / 100
	appreciation := in.Options.Appreciation / 100
	markdown := cfg.Energy.Markdown[strings.ToUpper(in.Property.EnergyRating)]

	res := domain.ProjectionResult{
		HorizonYears: horizon,
		Years:        make([]domain.ProjectionYear, 0, horizon),
	}

	var (
		state         taxation.State
		cumulative    float64
		capitalRepaid float64
		deducted      float64
		monthlyRent   = in.Operating.MonthlyRent
		flows         = make([]float64, 0, horizon+1)
	)
	flows = append(flows, -in.Financing.DownPayment)

	for y := 1; y <= horizon; y++ {
		calendar := in.Options.FiscalYear + y - 1
		frozen := RentFrozen(in.Property.EnergyRating, calendar, cfg.Energy)
		if y > 1 && !frozen {
			monthlyRent *= 1 + rentGrowth
		}

		ch := charges.Inflate(in.Operating, cfg, math.Pow(1+chargeInflation, float64(y-1)), monthlyRent)
		loan := financing.YearSlice(p.Financing.Schedule, y)

		taxIn := taxation.Input{
			Year:              y,
			GrossRent:         ch.EffectiveRent,
			DeductibleCharges: ch.Deductible,
			Interest:          loan.Interest,
			LoanInsurance:     loan.Insurance,
			MarginalRate:      in.Structure.MarginalRate,
		}
		if depreciates {
			taxIn.Depreciation = plan.Year(y)
		}
		var outcome domain.TaxOutcome
		outcome, state = taxation.Compute(p.Regime, taxIn, state, cfg)

		net := ch.EffectiveRent - ch.Total - loan.Interest - loan.Principal - loan.Insurance - outcome.TaxDue
		cumulative += net
		capitalRepaid += loan.Principal
		if outcome.Depreciation != nil {
			deducted += outcome.Depreciation.Deducted
		}

		value := in.Property.Price * math.Pow(1+appreciation, float64(y)) * (1 - markdown)
		res.Years = append(res.Years, domain.ProjectionYear{
			Year:               y,
			CalendarYear:       calendar,
			Rent:               ch.EffectiveRent,
			Charges:            ch.Total,
			LoanPrincipal:      loan.Principal,
			LoanInterest:       loan.Interest,
			LoanInsurance:      loan.Insurance,
			TaxDue:             outcome.TaxDue,
			NetCashflow:        net,
			CumulativeCashflow: cumulative,
			CapitalRepaid:      capitalRepaid,
			PropertyValue:      value,
			OutstandingBalance: loan.ClosingBalance,
			NetWorth:           value - loan.ClosingBalance,
			RentFrozen:         frozen,
			Depreciation:       outcome.Depreciation,
		})
		flows = append(flows, net)
	}

	last := res.Years[len(res.Years)-1]
	gain := CapitalGain(last.PropertyValue, horizon, in, p.Regime, deducted, cfg)
	gain.NetProceeds = last.PropertyValue - last.OutstandingBalance - gain.TotalTax - gain.ResaleCosts

	res.CapitalGain = gain
	res.CumulativeCashflow = cumulative
	res.FinalNetWorth = last.NetWorth
	res.TotalEnrichment = last.NetWorth + cumulative - in.Financing.DownPayment - gain.TotalTax - gain.ResaleCosts

	flows[len(flows)-1] += last.NetWorth - gain.TotalTax - gain.ResaleCosts
	res.IRR = IRR(flows)
	return res
}

// RentFrozen reports whether rent indexation is forbidden in calendar year.
func RentFrozen(rating string, calendar int, rules paramdomain.EnergyRules) bool {
	switch strings.ToUpper(rating) {
	case "F", "G":
		return true
	case "E":
		return rules.FreezeEFromYear > 0 && calendar >= rules.FreezeEFromYear
	default:
		return false
	}
}
