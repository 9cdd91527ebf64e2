package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIRR(t *testing.T) {
	t.Run("bond_like_flows", func(t *testing.T) {
		assert.InDelta(t, 10, IRR([]float64{-100, 10, 10, 110}), 1e-6)
	})

	t.Run("no_negative_flow", func(t *testing.T) {
		assert.Equal(t, 0.0, IRR([]float64{100, 10, 10, 110}))
	})

	t.Run("no_positive_flow", func(t *testing.T) {
		assert.Equal(t, 0.0, IRR([]float64{-100, -10}))
	})

	t.Run("negative_rate", func(t *testing.T) {
		assert.InDelta(t, -10, IRR([]float64{-100, 90}), 1e-6)
	})

	t.Run("deep_loss_over_several_years", func(t *testing.T) {
		// first Newton step lands below -100 %
		assert.InDelta(t, -42.44, IRR([]float64{-100, 10, 10, 10}), 0.01)
	})

	t.Run("zero_down_payment", func(t *testing.T) {
		assert.InDelta(t, 0, IRR([]float64{0, 0}), 1e-12)
	})
}

func TestIRRLosingRentalSeries(t *testing.T) {
	flows := []float64{-40_000}
	for year := 1; year <= 20; year++ {
		flows = append(flows, -1_500)
	}
	flows[20] += 35_000

	rate := IRR(flows)
	assert.Less(t, rate, -4.0)
	assert.Greater(t, rate, -5.0)

	below, _ := npvAndDerivative(flows, rate/100-1e-4)
	above, _ := npvAndDerivative(flows, rate/100+1e-4)
	assert.Greater(t, below, 0.0)
	assert.Less(t, above, 0.0)
}
