package depreciation

import (
	"testing"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/stretchr/testify/assert"
)

func TestComponentYearOne(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	plan := NewPlan(domain.Property{Price: 200_000, LandShare: 0.15}, domain.DepreciationComponents, cfg)

	v := 170_000.0
	assert.InDelta(t, v, plan.Building, 1e-9)
	assert.InDelta(t, v*(0.40/50+0.20/25+0.20/15+0.20/10), plan.Year(1).Building, 1e-9)
}

func TestComponentCutoffs(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	plan := NewPlan(domain.Property{Price: 100_000}, domain.DepreciationComponents, cfg)
	v := plan.Building

	cases := []struct {
		year int
		want float64
	}{
		{10, v * (0.40/50 + 0.20/25 + 0.20/15 + 0.20/10)},
		{11, v * (0.40/50 + 0.20/25 + 0.20/15)},
		{15, v * (0.40/50 + 0.20/25 + 0.20/15)},
		{16, v * (0.40/50 + 0.20/25)},
		{25, v * (0.40/50 + 0.20/25)},
		{26, v * 0.40 / 50},
		{50, v * 0.40 / 50},
		{51, 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, plan.Year(tc.year).Building, 1e-9, "year %d", tc.year)
	}
}

func TestStraightLine(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	plan := NewPlan(domain.Property{Price: 330_000}, domain.DepreciationStraightLine, cfg)

	assert.InDelta(t, 10_000, plan.Year(1).Building, 1e-9)
	assert.InDelta(t, 10_000, plan.Year(33).Building, 1e-9)
	assert.Equal(t, 0.0, plan.Year(34).Building)
}

func TestFurnitureAndRenovationDurations(t *testing.T) {
	cfg := paramdomain.DefaultConfiguration()
	plan := NewPlan(domain.Property{Price: 107_000, FurnitureValue: 7_000, RenovationCost: 15_000}, domain.DepreciationComponents, cfg)

	assert.InDelta(t, 100_000, plan.Building, 1e-9)
	assert.Equal(t, 1_000.0, plan.Year(7).Furniture)
	assert.Equal(t, 0.0, plan.Year(8).Furniture)
	assert.Equal(t, 1_000.0, plan.Year(15).Renovation)
	assert.Equal(t, 0.0, plan.Year(16).Renovation)
	line := plan.Year(1)
	assert.InDelta(t, line.Building+line.Furniture+line.Renovation, line.Total, 1e-9)
}

func TestApply(t *testing.T) {
	line := domain.DepreciationLine{Year: 1, Total: 6_000}

	t.Run("fully_absorbed", func(t *testing.T) {
		got, carry := Apply(line, 10_000, 0)
		assert.Equal(t, 6_000.0, got.Deducted)
		assert.Equal(t, 0.0, carry)
	})

	t.Run("capped_at_base", func(t *testing.T) {
		got, carry := Apply(line, 4_000, 500)
		assert.Equal(t, 4_000.0, got.Cap)
		assert.Equal(t, 4_000.0, got.Deducted)
		assert.Equal(t, 2_500.0, carry)
		assert.Equal(t, 2_500.0, got.CarriedForward)
	})

	t.Run("negative_base_carries_everything", func(t *testing.T) {
		got, carry := Apply(line, -3_000, 1_000)
		assert.Equal(t, 0.0, got.Cap)
		assert.Equal(t, 0.0, got.Deducted)
		assert.Equal(t, 7_000.0, carry)
	})
}
