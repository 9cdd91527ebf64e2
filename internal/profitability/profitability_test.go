package profitability

import (
	"testing"

	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	in := domain.Input{
		Property:  domain.Property{Price: 200_000},
		Financing: domain.Financing{DownPayment: 40_000, AnnualRate: 3.5, InsuranceRate: 0.3},
	}
	fin := domain.FinancingResult{AcquisitionCost: 216_000, Principal: 176_000, MonthlyTotal: 1_064.73}
	ch := domain.ChargesResult{NominalRent: 10_800, EffectiveRent: 10_800, Total: 2_400}

	res := Calculate(in, fin, ch)
	assert.InDelta(t, 5.4, res.GrossYield, 1e-9)
	assert.InDelta(t, 8_400.0/216_000*100, res.NetYield, 1e-9)
	assert.InDelta(t, 1_064.73*12, res.AnnualDebtService, 1e-9)
	assert.InDelta(t, 10_800-2_400-1_064.73*12, res.AnnualCashflow, 1e-9)
	assert.InDelta(t, res.AnnualCashflow/12, res.MonthlyCashflow, 1e-9)
	assert.InDelta(t, 3.8, res.BorrowingCost, 1e-9)
	assert.InDelta(t, 200_000.0/10_800, res.PriceToRent, 1e-9)

	require.NotNil(t, res.Leverage)
	assert.InDelta(t, (res.NetYield-3.8)*176_000/40_000, *res.Leverage, 1e-9)
}

func TestLeverageUndefinedWithoutDownPayment(t *testing.T) {
	in := domain.Input{Property: domain.Property{Price: 100_000}}
	res := Calculate(in, domain.FinancingResult{AcquisitionCost: 110_000, Principal: 110_000}, domain.ChargesResult{NominalRent: 6_000, EffectiveRent: 6_000})
	assert.Nil(t, res.Leverage)
}

func TestGrossYieldIgnoresOccupancy(t *testing.T) {
	in := domain.Input{Property: domain.Property{Price: 100_000}}
	res := Calculate(in, domain.FinancingResult{AcquisitionCost: 108_000}, domain.ChargesResult{NominalRent: 6_000, EffectiveRent: 5_400})
	assert.InDelta(t, 6.0, res.GrossYield, 1e-9)
	assert.InDelta(t, 5.0, res.NetYield, 1e-9)
}

func TestWithTax(t *testing.T) {
	ch := domain.ChargesResult{EffectiveRent: 10_000, Total: 2_000}
	res := WithTax(domain.ProfitabilityResult{AnnualCashflow: -1_000}, ch, 200_000, 500)
	assert.InDelta(t, 3.75, res.NetNetYield, 1e-9)
	assert.Equal(t, -1_500.0, res.AfterTaxCashflow)
}
