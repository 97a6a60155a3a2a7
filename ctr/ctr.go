package ctr

import "math"

// Logit maps the given probability onto the real line. The probability is
// clipped to [eps, 1-eps] first so that 0 and 1 stay finite.
func Logit(p float64, eps float64) float64 {
	p = math.Max(eps, math.Min(1-eps, p))
	return math.Log(p / (1 - p))
}

// Expit is the inverse of Logit, the logistic sigmoid.
func Expit(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}

	e := math.Exp(x)
	return e / (1 + e)
}
