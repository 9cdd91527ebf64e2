package charges

import (
	"testing"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/stretchr/testify/assert"
)

func baseOperating() domain.Operating {
	return domain.Operating{
		MonthlyRent:        900,
		CondoFees:          1_200,
		RecoverableCharges: 400,
		PropertyTax:        900,
		Insurance:          150,
		OtherCharges:       50,
		ManagementRate:     7,
		MaintenanceRate:    3,
		VacancyRate:        5,
	}
}

func TestCalculate(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	res := Calculate(baseOperating(), cfg)

	assert.Equal(t, 10_800.0, res.NominalRent)
	assert.Equal(t, 10_800.0, res.EffectiveRent)
	assert.Equal(t, 800.0, res.CondoNet)
	assert.Equal(t, 1_900.0, res.Fixed)
	assert.InDelta(t, 756, res.Management, 1e-9)
	assert.InDelta(t, 324, res.Maintenance, 1e-9)
	assert.InDelta(t, 540, res.Vacancy, 1e-9)
	assert.InDelta(t, 1_900+756+324+540, res.Total, 1e-9)
	assert.InDelta(t, res.Total-540, res.Deductible, 1e-9)
}

func TestOccupancySupersedesVacancy(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	op := baseOperating()
	occupancy := 90.0
	op.OccupancyRate = &occupancy

	res := Calculate(op, cfg)
	assert.Equal(t, 10_800.0, res.NominalRent)
	assert.InDelta(t, 9_720, res.EffectiveRent, 1e-9)
	assert.Equal(t, 0.0, res.Vacancy)
	assert.InDelta(t, 9_720*0.07, res.Management, 1e-9)
	assert.InDelta(t, res.Total, res.Deductible, 1e-9)
}

func TestBusinessTaxExemption(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()

	t.Run("below_threshold", func(t *testing.T) {
		op := domain.Operating{MonthlyRent: 400, BusinessTax: 300}
		res := Calculate(op, cfg)
		assert.True(t, res.BusinessTaxExempt)
		assert.Equal(t, 0.0, res.BusinessTax)
	})

	t.Run("above_threshold", func(t *testing.T) {
		op := domain.Operating{MonthlyRent: 900, BusinessTax: 300}
		res := Calculate(op, cfg)
		assert.False(t, res.BusinessTaxExempt)
		assert.Equal(t, 300.0, res.BusinessTax)
	})
}

func TestInflateScalesFixedAmounts(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	res := Inflate(baseOperating(), cfg, 1.1, 1_000)

	assert.Equal(t, 12_000.0, res.NominalRent)
	assert.InDelta(t, 1_900*1.1, res.Fixed, 1e-9)
	assert.InDelta(t, 12_000*0.07, res.Management, 1e-9)
}
