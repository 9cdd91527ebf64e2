package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/smallbiznis/immolens/internal/financing"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

const (
	defaultMarginalRate = 30
	longLoanYears       = 25
	ownershipTolerance  = 0.01
)

// Validate is Schema followed by Normalize.
func (v *Validator) Validate(raw domain.RawInput, cfg paramdomain.ResolvedConfiguration) (domain.Input, []domain.Alert, error) {
	if err := v.Schema(raw); err != nil {
		return domain.Input{}, nil, err
	}
	return v.Normalize(raw, cfg)
}

// Normalize fills defaults and enforces the rules spanning several fields. raw must
// already satisfy Schema.
func (v *Validator) Normalize(raw domain.RawInput, cfg paramdomain.ResolvedConfiguration) (domain.Input, []domain.Alert, error) {
	in := domain.Input{
		Property:  property(raw.Property, cfg),
		Financing: financingInput(raw.Financing),
		Operating: operating(raw.Operating),
		Structure: structure(raw.Structure),
		Options:   options(raw.Options, cfg),
	}

	if err := checkStructure(in); err != nil {
		return domain.Input{}, nil, err
	}
	if in.Structure.Corporate() {
		in.Structure.TaxRegime = domain.RegimeCorporate
	}

	_, cost := financing.AcquisitionCost(in.Property, in.Financing, cfg)
	if in.Financing.DownPayment > cost {
		return domain.Input{}, nil, domain.NewValidationError("financing.down_payment", domain.ErrDownPaymentExceedsCost,
			fmt.Sprintf("down payment %.0f exceeds the acquisition cost %.0f", in.Financing.DownPayment, cost),
			map[string]any{"down_payment": in.Financing.DownPayment, "acquisition_cost": math.Round(cost)})
	}

	return in, advisories(in), nil
}

func checkStructure(in domain.Input) error {
	s := in.Structure
	if s.Corporate() {
		if len(s.Shareholders) == 0 {
			return domain.NewValidationError("structure.shareholders", domain.ErrMissingShareholders,
				"a company needs at least one shareholder", nil)
		}
		var total float64
		for _, sh := range s.Shareholders {
			total += sh.OwnershipPct
		}
		if math.Abs(total-100) > ownershipTolerance {
			return domain.NewValidationError("structure.shareholders", domain.ErrOwnershipNotComplete,
				fmt.Sprintf("ownership sums to %.2f %%, expected 100 %%", total),
				map[string]any{"total": total})
		}
		return nil
	}

	furnished := in.Operating.RentalType.Furnished()
	switch s.TaxRegime {
	case domain.RegimeMicroFoncier, domain.RegimeReelFoncier:
		if furnished {
			return regimeMismatch(s.TaxRegime, in.Operating.RentalType)
		}
	case domain.RegimeMicroBIC, domain.RegimeLMNPReel:
		if !furnished {
			return regimeMismatch(s.TaxRegime, in.Operating.RentalType)
		}
	}
	return nil
}

func regimeMismatch(regime domain.RegimeCode, rental domain.RentalType) error {
	return domain.NewValidationError("structure.tax_regime", domain.ErrRegimeMismatch,
		fmt.Sprintf("regime %s does not apply to %s rentals", regime, rental),
		map[string]any{"tax_regime": regime, "rental_type": rental})
}

func advisories(in domain.Input) []domain.Alert {
	var alerts []domain.Alert
	if in.Financing.TermYears > longLoanYears {
		a := domain.NewAlert(domain.SeverityWarning, source, "long_term_loan",
			fmt.Sprintf("A %d-year loan is rarely granted by lenders", in.Financing.TermYears))
		a.Field = "financing.term_years"
		alerts = append(alerts, a)
	}
	if in.Financing.DownPayment == 0 {
		a := domain.NewAlert(domain.SeverityInfo, source, "no_down_payment",
			"The purchase is fully financed, lenders usually expect fees to be covered")
		a.Field = "financing.down_payment"
		alerts = append(alerts, a)
	}
	if in.Operating.OccupancyRate != nil && in.Operating.VacancyRate > 0 {
		a := domain.NewAlert(domain.SeverityInfo, source, "vacancy_ignored",
			"The vacancy rate is ignored because an occupancy rate is given")
		a.Field = "operating.vacancy_rate"
		alerts = append(alerts, a)
	}
	return alerts
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func property(p *domain.RawProperty, cfg paramdomain.ResolvedConfiguration) domain.Property {
	out := domain.Property{
		Price:          valueOr(p.Price, 0),
		RenovationCost: valueOr(p.RenovationCost, 0),
		FurnitureValue: valueOr(p.FurnitureValue, 0),
		Surface:        valueOr(p.Surface, 0),
		Type:           domain.PropertyType(valueOr(p.PropertyType, string(domain.PropertyApartment))),
		Condition:      domain.Condition(valueOr(p.Condition, string(domain.ConditionExisting))),
		LandShare:      valueOr(p.LandShare, cfg.Depreciation.LandShare),
	}
	if p.EnergyRating != nil {
		out.EnergyRating = strings.ToUpper(strings.TrimSpace(*p.EnergyRating))
	}
	return out
}

func financingInput(f *domain.RawFinancing) domain.Financing {
	return domain.Financing{
		DownPayment:   valueOr(f.DownPayment, 0),
		AnnualRate:    valueOr(f.AnnualRate, 0),
		TermYears:     valueOr(f.TermYears, 0),
		InsuranceRate: valueOr(f.InsuranceRate, 0),
		InsuranceMode: domain.InsuranceMode(valueOr(f.InsuranceMode, string(domain.InsuranceFlat))),
		LenderFees:    valueOr(f.LenderFees, 0),
	}
}

func operating(o *domain.RawOperating) domain.Operating {
	return domain.Operating{
		MonthlyRent:        valueOr(o.MonthlyRent, 0),
		CondoFees:          valueOr(o.CondoFees, 0),
		RecoverableCharges: valueOr(o.RecoverableCharges, 0),
		PropertyTax:        valueOr(o.PropertyTax, 0),
		Insurance:          valueOr(o.Insurance, 0),
		BusinessTax:        valueOr(o.BusinessTax, 0),
		OtherCharges:       valueOr(o.OtherCharges, 0),
		ManagementRate:     valueOr(o.ManagementRate, 0),
		VacancyRate:        valueOr(o.VacancyRate, 0),
		MaintenanceRate:    valueOr(o.MaintenanceRate, 0),
		RentalType:         domain.RentalType(valueOr(o.RentalType, string(domain.RentalBare))),
		OccupancyRate:      o.OccupancyRate,
	}
}

func structure(s *domain.RawStructure) domain.Structure {
	if s == nil {
		s = &domain.RawStructure{}
	}
	out := domain.Structure{
		LegalForm:              domain.LegalForm(valueOr(s.LegalForm, string(domain.LegalFormIndividual))),
		TaxRegime:              domain.RegimeCode(valueOr(s.TaxRegime, string(domain.RegimeAuto))),
		MarginalRate:           valueOr(s.MarginalRate, defaultMarginalRate),
		MonthlyIncome:          valueOr(s.MonthlyIncome, 0),
		ExistingMonthlyDebt:    valueOr(s.ExistingMonthlyDebt, 0),
		ExistingMonthlyCharges: valueOr(s.ExistingMonthlyCharges, 0),
		DistributeDividends:    valueOr(s.DistributeDividends, false),
	}
	for _, sh := range s.Shareholders {
		out.Shareholders = append(out.Shareholders, domain.Shareholder{
			Name:                   strings.TrimSpace(valueOr(sh.Name, "")),
			OwnershipPct:           valueOr(sh.OwnershipPct, 0),
			MonthlyIncome:          valueOr(sh.MonthlyIncome, 0),
			ExistingMonthlyDebt:    valueOr(sh.ExistingMonthlyDebt, 0),
			ExistingMonthlyCharges: valueOr(sh.ExistingMonthlyCharges, 0),
		})
	}
	return out
}

func options(o *domain.RawOptions, cfg paramdomain.ResolvedConfiguration) domain.Options {
	if o == nil {
		o = &domain.RawOptions{}
	}
	maxWeighting := cfg.Affordability.MaxRentalWeighting * 100
	return domain.Options{
		HorizonYears:          valueOr(o.HorizonYears, cfg.Projection.HorizonYears),
		Profile:               domain.InvestorProfile(valueOr(o.InvestorProfile, string(domain.ProfileIncome))),
		DepreciationMode:      domain.DepreciationMode(valueOr(o.DepreciationMode, string(domain.DepreciationComponents))),
		FiscalYear:            valueOr(o.FiscalYear, cfg.FiscalYear),
		RentGrowth:            valueOr(o.RentGrowth, cfg.Inflation.RentGrowth*100),
		ChargeInflation:       valueOr(o.ChargeInflation, cfg.Inflation.ChargeInflation*100),
		Appreciation:          valueOr(o.Appreciation, cfg.Inflation.Appreciation*100),
		RentalIncomeWeighting: math.Min(valueOr(o.RentalIncomeWeighting, cfg.Affordability.RentalWeighting*100), maxWeighting),
	}
}
