package taxation

import (
	"testing"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicroFoncier(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()

	t.Run("below_ceiling", func(t *testing.T) {
		out, _ := Compute(MicroFoncier{}, Input{Year: 1, GrossRent: 12_000, MarginalRate: 30}, State{}, cfg)
		assert.InDelta(t, 8_400, out.TaxableBase, 1e-9)
		assert.InDelta(t, 8_400*(0.30+0.172), out.TaxDue, 1e-9)
		assert.True(t, out.Eligible)
		assert.Empty(t, out.Alerts)
	})

	t.Run("above_ceiling", func(t *testing.T) {
		out, _ := Compute(MicroFoncier{}, Input{Year: 1, GrossRent: 15_001, MarginalRate: 30}, State{}, cfg)
		assert.False(t, out.Eligible)
		require.Len(t, out.Alerts, 1)
		assert.Equal(t, domain.SeverityWarning, out.Alerts[0].Severity)
		assert.Equal(t, "micro_ceiling_exceeded", out.Alerts[0].Code)
	})

	t.Run("at_ceiling", func(t *testing.T) {
		out, _ := Compute(MicroFoncier{}, Input{Year: 1, GrossRent: 15_000, MarginalRate: 30}, State{}, cfg)
		assert.True(t, out.Eligible)
	})
}

func TestMicroBICVariants(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	cases := []struct {
		variant domain.RentalType
		base    float64
	}{
		{domain.RentalFurnished, 5_000},
		{domain.RentalTourismClassified, 2_900},
		{domain.RentalTourismUnclassified, 7_000},
	}
	for _, tc := range cases {
		t.Run(string(tc.variant), func(t *testing.T) {
			out, _ := Compute(MicroBIC{Variant: tc.variant}, Input{GrossRent: 10_000, MarginalRate: 11}, State{}, cfg)
			assert.InDelta(t, tc.base, out.TaxableBase, 1e-9)
			assert.InDelta(t, tc.base*(0.11+0.186), out.TaxDue, 1e-9)
		})
	}

	out, _ := Compute(MicroBIC{Variant: domain.RentalTourismUnclassified}, Input{GrossRent: 16_000}, State{}, cfg)
	assert.False(t, out.Eligible)
}

func TestCorporateTax(t *testing.T) {
	rates := paramdomain.DefaultConfiguration().Corporate
	assert.InDelta(t, 6_000, CorporateTax(40_000, rates), 1e-9)
	assert.InDelta(t, 42_500*0.15+57_500*0.25, CorporateTax(100_000, rates), 1e-9)
	assert.Equal(t, 0.0, CorporateTax(-5_000, rates))
}

func TestCorporateDistribution(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	in := Input{Year: 1, GrossRent: 100_000}

	retained, _ := Compute(Corporate{}, in, State{}, cfg)
	assert.InDelta(t, 20_750, retained.TaxDue, 1e-9)
	assert.Equal(t, 0.0, retained.DividendTax)

	distributed, _ := Compute(Corporate{Distribute: true}, in, State{}, cfg)
	assert.InDelta(t, (100_000-20_750)*0.30, distributed.DividendTax, 1e-9)
	assert.InDelta(t, 20_750+(100_000-20_750)*0.30, distributed.TaxDue, 1e-9)
}

func TestCorporateLossesNeverExpire(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	_, st := Compute(Corporate{}, Input{Year: 1, GrossRent: 1_000, DeductibleCharges: 6_000}, State{}, cfg)
	assert.Equal(t, 5_000.0, st.Deficits.Total())

	out, st := Compute(Corporate{}, Input{Year: 25, GrossRent: 8_000}, st, cfg)
	assert.Equal(t, 5_000.0, out.DeficitUsed)
	assert.Equal(t, 3_000.0, out.TaxableBase)
	assert.Equal(t, 0, st.Deficits.Len())
}

func TestRealFoncierDeficit(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()

	t.Run("within_global_cap", func(t *testing.T) {
		out, st := Compute(RealFoncier{}, Input{Year: 1, GrossRent: 5_000, DeductibleCharges: 8_000, Interest: 4_000}, State{}, cfg)
		assert.Equal(t, 0.0, out.TaxDue)
		assert.Equal(t, 7_000.0, out.GlobalIncomeOffset)
		assert.Equal(t, 0.0, out.DeficitCreated)
		assert.Equal(t, 0, st.Deficits.Len())
		require.Len(t, out.Alerts, 1)
		assert.Equal(t, domain.SeverityInfo, out.Alerts[0].Severity)
	})

	t.Run("above_global_cap", func(t *testing.T) {
		out, st := Compute(RealFoncier{}, Input{Year: 1, GrossRent: 5_000, DeductibleCharges: 20_000, Interest: 3_000}, State{}, cfg)
		assert.Equal(t, 10_700.0, out.GlobalIncomeOffset)
		assert.Equal(t, 7_300.0, out.DeficitCreated)
		assert.Equal(t, []domain.DeficitBucket{{YearIncurred: 1, Remaining: 7_300}}, st.Deficits.Buckets())

		next, _ := Compute(RealFoncier{}, Input{Year: 2, GrossRent: 10_000, MarginalRate: 30}, st, cfg)
		assert.Equal(t, 7_300.0, next.DeficitUsed)
		assert.Equal(t, 2_700.0, next.TaxableBase)
		assert.InDelta(t, 2_700*(0.30+0.172), next.TaxDue, 1e-9)
	})

	t.Run("interest_part_is_carried_only", func(t *testing.T) {
		out, st := Compute(RealFoncier{}, Input{Year: 1, GrossRent: 2_000, DeductibleCharges: 1_000, Interest: 5_000}, State{}, cfg)
		assert.Equal(t, 1_000.0, out.GlobalIncomeOffset)
		assert.Equal(t, 3_000.0, st.Deficits.Total())
	})

	t.Run("expired_deficit_is_dropped", func(t *testing.T) {
		st := State{Deficits: NewDeficitQueue().Push(1, 5_000)}
		out, next := Compute(RealFoncier{}, Input{Year: 12, GrossRent: 3_000}, st, cfg)
		assert.Equal(t, 0.0, out.DeficitUsed)
		assert.Equal(t, 3_000.0, out.TaxableBase)
		assert.Equal(t, 0, next.Deficits.Len())
		// the caller's state is unchanged
		assert.Equal(t, 5_000.0, st.Deficits.Total())
	})
}

func TestRealFurnishedDepreciationCap(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	in := Input{
		Year:              1,
		GrossRent:         10_800,
		DeductibleCharges: 2_000,
		Interest:          5_000,
		LoanInsurance:     500,
		MarginalRate:      30,
		Depreciation:      domain.DepreciationLine{Year: 1, Total: 6_000},
	}

	out, st := Compute(RealFurnished{}, in, State{}, cfg)
	require.NotNil(t, out.Depreciation)
	assert.InDelta(t, 3_300, out.Depreciation.Deducted, 1e-9)
	assert.InDelta(t, 2_700, st.DepreciationCarry, 1e-9)
	assert.InDelta(t, 0, out.TaxableBase, 1e-9)
	assert.InDelta(t, 0, out.TaxDue, 1e-9)

	in.Year = 2
	in.Interest = 0
	out, st = Compute(RealFurnished{}, in, st, cfg)
	// 8 300 of result against 6 000 of the year plus 2 700 carried
	assert.InDelta(t, 8_300, out.Depreciation.Deducted, 1e-9)
	assert.InDelta(t, 400, st.DepreciationCarry, 1e-9)
}

func TestRealFurnishedDeficitKeepsDepreciation(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	in := Input{Year: 1, GrossRent: 3_000, DeductibleCharges: 5_000, Depreciation: domain.DepreciationLine{Total: 4_000}}

	out, st := Compute(RealFurnished{}, in, State{}, cfg)
	assert.Equal(t, 2_000.0, out.DeficitCreated)
	assert.Equal(t, 0.0, out.GlobalIncomeOffset)
	assert.Equal(t, 0.0, out.Depreciation.Deducted)
	assert.Equal(t, 4_000.0, st.DepreciationCarry)
	assert.Equal(t, 2_000.0, st.Deficits.Total())
}

func TestUsesDepreciation(t *testing.T) {
	assert.True(t, UsesDepreciation(RealFurnished{}))
	assert.True(t, UsesDepreciation(Corporate{}))
	assert.False(t, UsesDepreciation(RealFoncier{}))
	assert.False(t, UsesDepreciation(MicroBIC{}))
	assert.False(t, UsesDepreciation(MicroFoncier{}))
}
