package financing

import (
	"math"
	"testing"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/smallbiznis/immolens/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment(t *testing.T) {
	t.Run("reference_loan", func(t *testing.T) {
		m := MonthlyPayment(200_000, 3.5, 240)
		assert.Equal(t, 1159.92, money.Cents(m))
		assert.Equal(t, 1209.92, money.Cents(m+200_000*0.003/12))
	})

	t.Run("annuity_invariant", func(t *testing.T) {
		for _, tc := range []struct {
			principal, rate float64
			years           int
		}{
			{150_000, 1.2, 15},
			{320_000, 4.75, 25},
			{90_000, 7, 10},
		} {
			m := MonthlyPayment(tc.principal, tc.rate, tc.years*12)
			r := tc.rate / 100 / 12
			pv := m * (1 - math.Pow(1+r, -float64(tc.years*12))) / r
			assert.InDelta(t, tc.principal, pv, 1e-6)
		}
	})

	t.Run("zero_rate", func(t *testing.T) {
		assert.Equal(t, 1000.0, MonthlyPayment(120_000, 0, 120))
	})

	t.Run("nothing_borrowed", func(t *testing.T) {
		assert.Equal(t, 0.0, MonthlyPayment(0, 3, 240))
	})
}

func TestNotary(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()

	t.Run("existing_property", func(t *testing.T) {
		fees := Notary(domain.Property{Price: 200_000}, cfg)
		emoluments := 6_500*0.0387 + 10_500*0.01596 + 43_000*0.01064 + 140_000*0.00799
		assert.InDelta(t, emoluments, fees.Emoluments, 1e-9)
		assert.InDelta(t, emoluments*0.2, fees.EmolumentsVAT, 1e-9)
		assert.InDelta(t, 200_000*0.0580665, fees.TransferTax, 1e-9)
		assert.Equal(t, 1200.0, fees.Disbursements)
		assert.InDelta(t, emoluments*1.2+200_000*0.0580665+1200, fees.Total, 1e-9)
	})

	t.Run("furniture_excluded_and_reduced_rate_for_new", func(t *testing.T) {
		fees := Notary(domain.Property{Price: 110_000, FurnitureValue: 10_000, Condition: domain.ConditionNew}, cfg)
		assert.Equal(t, 100_000.0, fees.Base)
		assert.InDelta(t, 100_000*0.00715, fees.TransferTax, 1e-9)
	})

	t.Run("small_base_stays_in_first_bracket", func(t *testing.T) {
		fees := Notary(domain.Property{Price: 5_000}, cfg)
		assert.InDelta(t, 5_000*0.0387, fees.Emoluments, 1e-9)
	})
}

func TestCalculate(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	in := domain.Input{
		Property:  domain.Property{Price: 200_000, RenovationCost: 10_000},
		Financing: domain.Financing{DownPayment: 40_000, AnnualRate: 3.5, TermYears: 20, InsuranceRate: 0.3, LenderFees: 1_000},
	}

	res := Calculate(in, cfg)
	notary := Notary(in.Property, cfg)
	assert.InDelta(t, 200_000+notary.Total+10_000+1_000, res.AcquisitionCost, 1e-9)
	assert.InDelta(t, res.AcquisitionCost-40_000, res.Principal, 1e-9)
	require.Len(t, res.Schedule, 20)

	var repaid float64
	for _, y := range res.Schedule {
		repaid += y.Principal
	}
	assert.InDelta(t, res.Principal, repaid, 1e-6)
	assert.Equal(t, 0.0, res.Schedule[19].ClosingBalance)
	assert.Greater(t, res.Schedule[0].Interest, res.Schedule[19].Interest)

	flatInsurance := res.Principal * 0.003 / 12
	assert.InDelta(t, flatInsurance, res.MonthlyInsurance, 1e-9)
	assert.InDelta(t, flatInsurance*240, res.TotalInsurance, 1e-6)
	assert.InDelta(t, res.TotalInterest+res.TotalInsurance+1_000, res.TotalCreditCost, 1e-9)
}

func TestDecliningInsuranceFollowsBalance(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	in := domain.Input{
		Property:  domain.Property{Price: 150_000},
		Financing: domain.Financing{AnnualRate: 3, TermYears: 15, InsuranceRate: 0.36, InsuranceMode: domain.InsuranceDeclining},
	}

	res := Calculate(in, cfg)
	flat := res.MonthlyInsurance * 12
	assert.InDelta(t, flat, res.Schedule[0].Insurance, flat*0.05)
	assert.Less(t, res.Schedule[14].Insurance, res.Schedule[0].Insurance/5)
	assert.Less(t, res.TotalInsurance, res.MonthlyInsurance*180)
}

func TestDownPaymentAboveCostBorrowsNothing(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	in := domain.Input{
		Property:  domain.Property{Price: 100_000},
		Financing: domain.Financing{DownPayment: 500_000, AnnualRate: 3, TermYears: 10},
	}

	res := Calculate(in, cfg)
	assert.Equal(t, 0.0, res.Principal)
	assert.Equal(t, 0.0, res.MonthlyTotal)
	assert.Equal(t, 0.0, YearSlice(res.Schedule, 3).Interest)
	assert.Equal(t, 11, YearSlice(res.Schedule, 11).Year)
}
