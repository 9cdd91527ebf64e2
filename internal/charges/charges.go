// Package charges computes the annual operating charges of a rental property.
package charges

import (
	"math"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

// Calculate returns the first-year charge breakdown.
func Calculate(op domain.Operating, cfg paramdomain.ResolvedConfiguration) domain.ChargesResult {
	return Inflate(op, cfg, 1, op.MonthlyRent)
}

// Inflate recomputes the breakdown for a later year: fixed amounts are scaled by
// factor and proportional charges follow monthlyRent.
func Inflate(op domain.Operating, cfg paramdomain.ResolvedConfiguration, factor, monthlyRent float64) domain.ChargesResult {
	nominal := monthlyRent * 12
	effective := nominal
	if op.OccupancyRate != nil {
		effective = nominal * *op.OccupancyRate / 100
	}

	res := domain.ChargesResult{
		NominalRent:   nominal,
		EffectiveRent: effective,
		CondoNet:      math.Max(0, op.CondoFees-op.RecoverableCharges) * factor,
		PropertyTax:   op.PropertyTax * factor,
		Insurance:     op.Insurance * factor,
		OtherCharges:  op.OtherCharges * factor,
		BusinessTax:   op.BusinessTax * factor,
	}
	if nominal < cfg.Charges.BusinessTaxExemptionThreshold && res.BusinessTax > 0 {
		res.BusinessTax = 0
		res.BusinessTaxExempt = true
	}
	res.Fixed = res.CondoNet + res.PropertyTax + res.Insurance + res.OtherCharges + res.BusinessTax

	res.Management = effective * op.ManagementRate / 100
	res.Maintenance = effective * op.MaintenanceRate / 100
	if op.OccupancyRate == nil {
		res.Vacancy = nominal * op.VacancyRate / 100
	}
	res.Proportional = res.Management + res.Maintenance + res.Vacancy

	res.Total = res.Fixed + res.Proportional
	// the vacancy provision is a rent haircut, not a tax-deductible expense
	res.Deductible = res.Total - res.Vacancy
	return res
}
