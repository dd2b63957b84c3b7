package diffexp

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat"
)

// Caps the prior degrees of freedom so the pooled t distribution stays
// finite; at this size it is indistinguishable from a normal.
const maxPriorDF = 1e6

// squeezeVar estimates the scaled-F prior for the per-gene sample variances
// by moment matching on log variances, so that per-gene inference can borrow
// strength from the whole gene population. Returns the prior degrees of
// freedom and prior variance. A prior df of 0 means no usable prior could be
// estimated and variances pass through unmoderated.
func squeezeVar(s2 []float64, df float64) (priorDF, priorVar float64) {
	var e []float64
	for _, v := range s2 {
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			e = append(e, math.Log(v)-mathext.Digamma(df/2)+math.Log(df/2))
		}
	}
	if len(e) < 2 {
		return 0, 0
	}

	emean := stat.Mean(e, nil)
	evar := stat.Variance(e, nil)

	excess := evar - trigamma(df/2)
	if excess <= 0 {
		// The observed variances are no more dispersed than chi-squared
		// sampling alone would make them: the prior dominates completely.
		return maxPriorDF, math.Exp(emean)
	}

	priorDF = 2 * trigammaInverse(excess)
	if priorDF > maxPriorDF {
		priorDF = maxPriorDF
	}
	priorVar = math.Exp(emean + mathext.Digamma(priorDF/2) - math.Log(priorDF/2))

	return priorDF, priorVar
}

// trigamma computes the second derivative of the log-gamma function via the
// standard recurrence up to x >= 6 followed by the asymptotic expansion.
func trigamma(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}

	out := 0.0
	for x < 6 {
		out += 1 / (x * x)
		x++
	}

	// Asymptotic series with Bernoulli-number coefficients.
	inv := 1 / x
	inv2 := inv * inv
	out += inv * (1 + inv*(0.5+inv*(1.0/6-inv2*(1.0/30-inv2*(1.0/42-inv2/30)))))

	return out
}

// trigammaInverse solves trigamma(y) = x for y. Trigamma is strictly
// decreasing on (0, inf), so bisection is safe and fully deterministic.
func trigammaInverse(x float64) float64 {
	lo, hi := 1e-4, 1e7
	if x >= trigamma(lo) {
		return lo
	}
	if x <= trigamma(hi) {
		return hi
	}

	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if trigamma(mid) > x {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2
}
