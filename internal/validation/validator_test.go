package validation

import (
	"errors"
	"testing"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
  "property": {"price": 200000, "energy_rating": "c"},
  "financing": {"down_payment": 40000, "annual_rate": 3.5, "term_years": 20, "insurance_rate": 0.3},
  "operating": {"monthly_rent": 900, "rental_type": "furnished"},
  "structure": {"tax_regime": "lmnp_reel", "marginal_rate": 30, "monthly_income": 4000}
}`

func decode(t *testing.T, v *Validator, payload string) domain.RawInput {
	t.Helper()
	raw, err := v.Decode([]byte(payload))
	require.NoError(t, err)
	return raw
}

func asValidation(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr
}

func TestValidateAppliesDefaults(t *testing.T) {
	v := New()
	cfg := paramdomain.DefaultConfiguration()

	in, alerts, err := v.Validate(decode(t, v, validPayload), cfg)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	assert.Equal(t, "C", in.Property.EnergyRating)
	assert.Equal(t, domain.PropertyApartment, in.Property.Type)
	assert.Equal(t, domain.ConditionExisting, in.Property.Condition)
	assert.Equal(t, 0.15, in.Property.LandShare)
	assert.Equal(t, domain.InsuranceFlat, in.Financing.InsuranceMode)
	assert.Equal(t, domain.LegalFormIndividual, in.Structure.LegalForm)
	assert.Equal(t, domain.RegimeLMNPReel, in.Structure.TaxRegime)
	assert.Equal(t, 20, in.Options.HorizonYears)
	assert.Equal(t, domain.ProfileIncome, in.Options.Profile)
	assert.Equal(t, domain.DepreciationComponents, in.Options.DepreciationMode)
	assert.Equal(t, paramdomain.DefaultFiscalYear, in.Options.FiscalYear)
	assert.InDelta(t, 1.5, in.Options.RentGrowth, 1e-9)
	assert.InDelta(t, 2.0, in.Options.ChargeInflation, 1e-9)
	assert.InDelta(t, 1.0, in.Options.Appreciation, 1e-9)
	assert.InDelta(t, 70.0, in.Options.RentalIncomeWeighting, 1e-9)
}

func TestValidateDefaultsRegimeAndRate(t *testing.T) {
	v := New()
	raw := decode(t, v, `{
	  "property": {"price": 100000},
	  "financing": {"down_payment": 10000, "annual_rate": 3, "term_years": 15},
	  "operating": {"monthly_rent": 600},
	  "options": {"rental_income_weighting": 95}
	}`)

	in, _, err := v.Validate(raw, paramdomain.DefaultConfiguration())
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeAuto, in.Structure.TaxRegime)
	assert.Equal(t, 30.0, in.Structure.MarginalRate)
	assert.Equal(t, domain.RentalBare, in.Operating.RentalType)
	assert.InDelta(t, 90.0, in.Options.RentalIncomeWeighting, 1e-9)
}

func TestDecodeTypeMismatchNamesField(t *testing.T) {
	_, err := New().Decode([]byte(`{"property": {"price": "cheap"}}`))

	verr := asValidation(t, err)
	assert.Equal(t, "property.price", verr.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	assert.Equal(t, CodeInvalidType, verr.Details["code"])
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	for name, payload := range map[string]string{
		"empty":    "  ",
		"syntax":   `{"property": `,
		"trailing": `{} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New().Decode([]byte(payload))
			assert.ErrorIs(t, err, domain.ErrInvalidPayload)
		})
	}
}

func TestSchemaViolations(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		field   string
		code    string
	}{
		{
			name:    "missing section",
			payload: `{"financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900}}`,
			field:   "property",
			code:    CodeRequired,
		},
		{
			name:    "zero price",
			payload: `{"property": {"price": 0}, "financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900}}`,
			field:   "property.price",
			code:    CodeOutOfRange,
		},
		{
			name:    "missing rate",
			payload: `{"property": {"price": 1}, "financing": {"term_years": 20}, "operating": {"monthly_rent": 900}}`,
			field:   "financing.annual_rate",
			code:    CodeRequired,
		},
		{
			name:    "term too long",
			payload: `{"property": {"price": 1}, "financing": {"annual_rate": 3, "term_years": 41}, "operating": {"monthly_rent": 900}}`,
			field:   "financing.term_years",
			code:    CodeOutOfRange,
		},
		{
			name:    "energy rating",
			payload: `{"property": {"price": 1, "energy_rating": "H"}, "financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900}}`,
			field:   "property.energy_rating",
			code:    CodeInvalidValue,
		},
		{
			name:    "marginal bracket",
			payload: `{"property": {"price": 1}, "financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900}, "structure": {"marginal_rate": 25}}`,
			field:   "structure.marginal_rate",
			code:    CodeInvalidValue,
		},
		{
			name:    "unknown rental type",
			payload: `{"property": {"price": 1}, "financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900, "rental_type": "seasonal"}}`,
			field:   "operating.rental_type",
			code:    CodeInvalidValue,
		},
		{
			name:    "shareholder without name",
			payload: `{"property": {"price": 1}, "financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900}, "structure": {"legal_form": "corporate", "shareholders": [{"ownership_pct": 100}]}}`,
			field:   "structure.shareholders[0].name",
			code:    CodeRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			err := v.Schema(decode(t, v, tc.payload))

			verr := asValidation(t, err)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.code, verr.Details["code"])
		})
	}
}

func TestBusinessRules(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		field   string
		reason  error
	}{
		{
			name:    "down payment above cost",
			payload: `{"property": {"price": 100000}, "financing": {"down_payment": 200000, "annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900}}`,
			field:   "financing.down_payment",
			reason:  domain.ErrDownPaymentExceedsCost,
		},
		{
			name:    "company without shareholders",
			payload: `{"property": {"price": 100000}, "financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900}, "structure": {"legal_form": "corporate"}}`,
			field:   "structure.shareholders",
			reason:  domain.ErrMissingShareholders,
		},
		{
			name:    "ownership incomplete",
			payload: `{"property": {"price": 100000}, "financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900}, "structure": {"legal_form": "corporate", "shareholders": [{"name": "alice", "ownership_pct": 60}, {"name": "bob", "ownership_pct": 30}]}}`,
			field:   "structure.shareholders",
			reason:  domain.ErrOwnershipNotComplete,
		},
		{
			name:    "furnished regime on bare rental",
			payload: `{"property": {"price": 100000}, "financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900, "rental_type": "bare"}, "structure": {"tax_regime": "lmnp_reel"}}`,
			field:   "structure.tax_regime",
			reason:  domain.ErrRegimeMismatch,
		},
		{
			name:    "property regime on furnished rental",
			payload: `{"property": {"price": 100000}, "financing": {"annual_rate": 3, "term_years": 20}, "operating": {"monthly_rent": 900, "rental_type": "tourism_classified"}, "structure": {"tax_regime": "micro_foncier"}}`,
			field:   "structure.tax_regime",
			reason:  domain.ErrRegimeMismatch,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			_, _, err := v.Validate(decode(t, v, tc.payload), paramdomain.DefaultConfiguration())

			verr := asValidation(t, err)
			assert.Equal(t, tc.field, verr.Field)
			assert.ErrorIs(t, err, tc.reason)
		})
	}
}

func TestCorporateOwnershipWithinTolerance(t *testing.T) {
	v := New()
	raw := decode(t, v, `{
	  "property": {"price": 100000},
	  "financing": {"down_payment": 20000, "annual_rate": 3, "term_years": 20},
	  "operating": {"monthly_rent": 900},
	  "structure": {"legal_form": "corporate", "tax_regime": "micro_foncier", "shareholders": [
	    {"name": " alice ", "ownership_pct": 33.333},
	    {"name": "bob", "ownership_pct": 66.667}
	  ]}
	}`)

	in, _, err := v.Validate(raw, paramdomain.DefaultConfiguration())
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeCorporate, in.Structure.TaxRegime)
	require.Len(t, in.Structure.Shareholders, 2)
	assert.Equal(t, "alice", in.Structure.Shareholders[0].Name)
}

func TestAdvisoryAlerts(t *testing.T) {
	v := New()
	raw := decode(t, v, `{
	  "property": {"price": 100000},
	  "financing": {"down_payment": 0, "annual_rate": 3, "term_years": 30},
	  "operating": {"monthly_rent": 900, "vacancy_rate": 5, "occupancy_rate": 90}
	}`)

	in, alerts, err := v.Validate(raw, paramdomain.DefaultConfiguration())
	require.NoError(t, err)
	require.NotNil(t, in.Operating.OccupancyRate)

	bySeverity := map[string]domain.Severity{}
	for _, a := range alerts {
		assert.Equal(t, source, a.Source)
		bySeverity[a.Code] = a.Severity
	}
	assert.Equal(t, map[string]domain.Severity{
		"long_term_loan":  domain.SeverityWarning,
		"no_down_payment": domain.SeverityInfo,
		"vacancy_ignored": domain.SeverityInfo,
	}, bySeverity)
}
