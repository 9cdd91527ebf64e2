package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 1159.92, Cents(1159.9195))
	assert.Equal(t, 3.0, Euros(2.5))
	assert.Equal(t, -3.0, Euros(-2.5))
	assert.Equal(t, 5.4, Rate(5.4))
}

func TestPercentGuardsZeroWhole(t *testing.T) {
	assert.Equal(t, 0.0, Percent(10, 0))
	assert.Equal(t, 25.0, Percent(25, 100))
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 0.0, ClampFloat(-5, 0, 100))
	assert.Equal(t, 100.0, ClampFloat(105, 0, 100))
	assert.Equal(t, 42.0, ClampFloat(42, 0, 100))
}
