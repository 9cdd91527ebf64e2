package projection

import "math"

const (
	irrMaxIterations = 100
	irrInitialGuess  = 0.1
	irrTolerance     = 1e-7

	// bisection bracket used when Newton does not settle
	irrLowerBound = -0.9999
	irrUpperBound = 10.0
)

// IRR solves the internal rate of return of yearly flows and returns it in
// percent. Newton's method runs first, with steps below -100 % damped halfway
// towards -1. When Newton does not converge the rate is bisected between -99.99 %
// and 1000 %. It returns 0 when the flows never change sign or no root is found.
func IRR(flows []float64) float64 {
	if !hasSignChange(flows) {
		return 0
	}
	if rate, ok := newtonIRR(flows); ok {
		return rate * 100
	}
	if rate, ok := bisectIRR(flows); ok {
		return rate * 100
	}
	return 0
}

func newtonIRR(flows []float64) (float64, bool) {
	rate := irrInitialGuess
	for i := 0; i < irrMaxIterations; i++ {
		npv, derivative := npvAndDerivative(flows, rate)
		if derivative == 0 || math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			return 0, false
		}
		next := rate - npv/derivative
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, false
		}
		if next <= -1 {
			next = (rate - 1) / 2
		}
		if math.Abs(next-rate) < irrTolerance {
			return next, true
		}
		rate = next
	}
	return 0, false
}

func bisectIRR(flows []float64) (float64, bool) {
	lo, hi := irrLowerBound, irrUpperBound
	npvLo, _ := npvAndDerivative(flows, lo)
	npvHi, _ := npvAndDerivative(flows, hi)
	if math.IsNaN(npvLo) || math.IsNaN(npvHi) || npvLo*npvHi > 0 {
		return 0, false
	}
	for i := 0; i < 4*irrMaxIterations && hi-lo > irrTolerance; i++ {
		mid := (lo + hi) / 2
		npvMid, _ := npvAndDerivative(flows, mid)
		if npvMid == 0 {
			return mid, true
		}
		if (npvMid > 0) == (npvLo > 0) {
			lo, npvLo = mid, npvMid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}

func npvAndDerivative(flows []float64, rate float64) (float64, float64) {
	var npv, derivative float64
	for t, cf := range flows {
		discount := math.Pow(1+rate, float64(t))
		npv += cf / discount
		derivative -= float64(t) * cf / (discount * (1 + rate))
	}
	return npv, derivative
}

func hasSignChange(flows []float64) bool {
	var negative, positive bool
	for _, cf := range flows {
		switch {
		case cf < 0:
			negative = true
		case cf > 0:
			positive = true
		}
	}
	return negative && positive
}
