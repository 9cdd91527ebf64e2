// Package profitability derives yields and cashflow from financing and charges.
package profitability

import (
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/smallbiznis/immolens/pkg/money"
)

func Calculate(in domain.Input, fin domain.FinancingResult, ch domain.ChargesResult) domain.ProfitabilityResult {
	debtService := fin.MonthlyTotal * 12
	cashflow := ch.EffectiveRent - ch.Total - debtService
	netYield := money.Percent(ch.EffectiveRent-ch.Total, fin.AcquisitionCost)
	borrowingCost := in.Financing.AnnualRate + in.Financing.InsuranceRate

	res := domain.ProfitabilityResult{
		// market convention: gross yield ignores occupancy
		GrossYield:        money.Percent(ch.NominalRent, in.Property.Price),
		NetYield:          netYield,
		AnnualDebtService: debtService,
		AnnualCashflow:    cashflow,
		MonthlyCashflow:   cashflow / 12,
		AfterTaxCashflow:  cashflow,
		BorrowingCost:     borrowingCost,
	}
	if ch.NominalRent > 0 {
		res.PriceToRent = in.Property.Price / ch.NominalRent
	}
	if in.Financing.DownPayment > 0 {
		leverage := (netYield - borrowingCost) * fin.Principal / in.Financing.DownPayment
		res.Leverage = &leverage
	}
	return res
}

// WithTax completes the result once the first-year tax is known.
func WithTax(res domain.ProfitabilityResult, ch domain.ChargesResult, acquisitionCost, taxDue float64) domain.ProfitabilityResult {
	res.NetNetYield = money.Percent(ch.EffectiveRent-ch.Total-taxDue, acquisitionCost)
	res.AfterTaxCashflow = res.AnnualCashflow - taxDue
	return res
}
