// Package depreciation builds the yearly depreciation of a property and caps the
// deductible part against the taxable base.
package depreciation

import (
	"math"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

// Plan is the depreciable asset split for one property.
type Plan struct {
	Mode              domain.DepreciationMode
	Building          float64
	Components        []paramdomain.Component
	StraightLineYears int
	Furniture         float64
	FurnitureYears    int
	Renovation        float64
	RenovationYears   int
}

// NewPlan excludes land and furniture from the building value.
func NewPlan(p domain.Property, mode domain.DepreciationMode, cfg paramdomain.ResolvedConfiguration) Plan {
	if mode == "" {
		mode = domain.DepreciationComponents
	}
	return Plan{
		Mode:              mode,
		Building:          math.Max(0, p.Price-p.FurnitureValue) * (1 - p.LandShare),
		Components:        append([]paramdomain.Component(nil), cfg.Depreciation.Components...),
		StraightLineYears: cfg.Depreciation.StraightLineYears,
		Furniture:         p.FurnitureValue,
		FurnitureYears:    cfg.Depreciation.FurnitureYears,
		Renovation:        p.RenovationCost,
		RenovationYears:   cfg.Depreciation.RenovationYears,
	}
}

// Year returns the uncapped amounts for year y (1-based). Each part stops
// contributing after its own duration.
func (p Plan) Year(y int) domain.DepreciationLine {
	line := domain.DepreciationLine{
		Year:       y,
		Building:   p.building(y),
		Furniture:  straightLine(p.Furniture, p.FurnitureYears, y),
		Renovation: straightLine(p.Renovation, p.RenovationYears, y),
	}
	line.Total = line.Building + line.Furniture + line.Renovation
	return line
}

func (p Plan) building(y int) float64 {
	if p.Mode == domain.DepreciationStraightLine {
		return straightLine(p.Building, p.StraightLineYears, y)
	}
	var total float64
	for _, c := range p.Components {
		total += straightLine(p.Building*c.Weight, c.Years, y)
	}
	return total
}

func straightLine(value float64, years, y int) float64 {
	if value <= 0 || years <= 0 || y < 1 || y > years {
		return 0
	}
	return value / float64(years)
}

// Apply deducts the year amount plus carry up to base and returns the new carry.
// Depreciation never creates or deepens a deficit.
func Apply(line domain.DepreciationLine, base, carry float64) (domain.DepreciationLine, float64) {
	available := line.Total + carry
	line.Cap = math.Max(0, base)
	line.Deducted = math.Min(available, line.Cap)
	line.CarriedForward = available - line.Deducted
	return line, line.CarriedForward
}
