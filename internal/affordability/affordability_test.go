package affordability

import (
	"testing"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func householdInput(income, debt float64, term int) domain.Input {
	return domain.Input{
		Property:  domain.Property{Condition: domain.ConditionExisting},
		Financing: domain.Financing{TermYears: term},
		Operating: domain.Operating{MonthlyRent: 1_000},
		Structure: domain.Structure{LegalForm: domain.LegalFormIndividual, MonthlyIncome: income, ExistingMonthlyDebt: debt, ExistingMonthlyCharges: 200},
		Options:   domain.Options{RentalIncomeWeighting: 70},
	}
}

func codes(alerts []domain.Alert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Code)
	}
	return out
}

func TestHouseholdRatio(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	res, alerts := Analyze(householdInput(4_000, 300, 20), 1_000, cfg)

	want := (300.0 + 1_000) / (4_000 + 0.7*1_000) * 100
	assert.InDelta(t, want, res.Ratio, 1e-9)
	assert.True(t, res.Compliant)
	assert.False(t, res.NearLimit)
	assert.InDelta(t, 4_000+700-300-1_000-200, res.ResidualIncome, 1e-9)
	assert.InDelta(t, 70, res.Weighting, 1e-9)
	assert.Empty(t, alerts)
}

func TestRatioBreach(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	res, alerts := Analyze(householdInput(2_000, 500, 20), 1_000, cfg)

	assert.False(t, res.RatioCompliant)
	assert.False(t, res.Compliant)
	assert.Contains(t, codes(alerts), "debt_ratio_exceeded")
}

func TestRatioNearLimit(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	// 1 340 / 3 940 = 34.01 %
	in := householdInput(3_240, 340, 20)
	res, alerts := Analyze(in, 1_000, cfg)

	assert.True(t, res.Compliant)
	assert.True(t, res.NearLimit)
	assert.Equal(t, []string{"debt_ratio_near_limit"}, codes(alerts))
}

func TestTermCompliance(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()

	res, alerts := Analyze(householdInput(6_000, 0, 26), 1_000, cfg)
	assert.False(t, res.TermCompliant)
	assert.False(t, res.Compliant)
	assert.Contains(t, codes(alerts), "loan_term_exceeded")

	in := householdInput(6_000, 0, 27)
	in.Property.Condition = domain.ConditionNew
	res, _ = Analyze(in, 1_000, cfg)
	assert.True(t, res.TermCompliant)
	assert.Equal(t, 27, res.MaxTermYears)
}

func TestWeightingCappedAtMaximum(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	in := householdInput(3_000, 0, 20)
	in.Options.RentalIncomeWeighting = 100

	res, _ := Analyze(in, 1_000, cfg)
	assert.InDelta(t, 90, res.Weighting, 1e-9)
	assert.InDelta(t, 1_000/(3_000+900.0)*100, res.Ratio, 1e-9)
}

func TestZeroDenominator(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	in := householdInput(0, 0, 20)
	in.Options.RentalIncomeWeighting = 0

	res, alerts := Analyze(in, 1_000, cfg)
	assert.Equal(t, 100.0, res.Ratio)
	assert.False(t, res.Compliant)
	assert.ElementsMatch(t, []string{"income_missing", "debt_ratio_exceeded"}, codes(alerts))
}

func TestCorporateShareholders(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	in := householdInput(0, 0, 20)
	in.Structure = domain.Structure{
		LegalForm: domain.LegalFormCorporate,
		Shareholders: []domain.Shareholder{
			{Name: "alice", OwnershipPct: 60, MonthlyIncome: 5_000},
			{Name: "bob", OwnershipPct: 40, MonthlyIncome: 1_000, ExistingMonthlyDebt: 300},
		},
	}

	res, alerts := Analyze(in, 1_000, cfg)
	require.Len(t, res.Borrowers, 2)

	alice := res.Borrowers[0]
	assert.InDelta(t, 600, alice.NewPayment, 1e-9)
	assert.InDelta(t, 600/(5_000+420.0)*100, alice.Ratio, 1e-9)
	assert.True(t, alice.Compliant)

	bob := res.Borrowers[1]
	assert.InDelta(t, (300+400)/(1_000+280.0)*100, bob.Ratio, 1e-9)
	assert.False(t, bob.Compliant)

	assert.InDelta(t, bob.Ratio, res.Ratio, 1e-9)
	assert.False(t, res.Compliant)
	assert.Equal(t, []string{"debt_ratio_exceeded_bob"}, codes(alerts))
}
